package utils

import "sort"

// ConvertEnvs convert env variables passed as a map to a list of them.
// The list is sorted by key so that command invocations are reproducible.
func ConvertEnvs(m map[string]string) []string {
	s := make([]string, 0, len(m))
	for k, v := range m {
		s = append(s, k+"="+v)
	}
	sort.Strings(s)
	return s
}

// MergeStringMaps merges maps left to right, the rightmost value wins for
// duplicate keys. Nil maps are skipped.
func MergeStringMaps(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
