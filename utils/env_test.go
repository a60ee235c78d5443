package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvertEnvs(t *testing.T) {
	got := ConvertEnvs(map[string]string{
		"KEY_SIZE":    "2048",
		"EASY_RSA":    "/opt/easy-rsa",
		"KEY_COUNTRY": "DE",
	})

	want := []string{
		"EASY_RSA=/opt/easy-rsa",
		"KEY_COUNTRY=DE",
		"KEY_SIZE=2048",
	}
	if !cmp.Equal(got, want) {
		t.Errorf("ConvertEnvs() mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestMergeStringMaps(t *testing.T) {
	type args struct {
		maps []map[string]string
	}
	tests := []struct {
		name string
		args args
		want map[string]string
	}{
		{
			name: "nil maps",
			args: args{
				maps: []map[string]string{nil, nil},
			},
			want: map[string]string{},
		},
		{
			name: "rightmost wins",
			args: args{
				maps: []map[string]string{
					{"KEY_DIR": "/keys/a", "KEY_SIZE": "1024"},
					{"KEY_SIZE": "2048"},
				},
			},
			want: map[string]string{"KEY_DIR": "/keys/a", "KEY_SIZE": "2048"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeStringMaps(tt.args.maps...); !cmp.Equal(got, tt.want) {
				t.Errorf("MergeStringMaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
