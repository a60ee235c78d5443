package pki

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/whatevsz/openvpn-helper/constants"
	"github.com/whatevsz/openvpn-helper/utils"
)

// ArtifactStatus is the lifecycle position of one artifact: generated means
// all its raw files exist in the working directory, published means all its
// destinations exist in the publish tree.
type ArtifactStatus struct {
	Name      string
	Generated bool
	Published bool
}

// Status reports the lifecycle position of every fixed artifact plus any
// client certificates found in the working directory.
func (p *Pipeline) Status() []ArtifactStatus {
	artifacts := []Artifact{
		CAArtifact(),
		ServerArtifact(),
		DHArtifact(),
		TLSAuthArtifact(),
		CRLArtifact(),
	}

	for _, cn := range p.clientNames() {
		artifacts = append(artifacts, ClientArtifact(cn))
	}

	statuses := make([]ArtifactStatus, 0, len(artifacts))
	for _, a := range artifacts {
		statuses = append(statuses, ArtifactStatus{
			Name:      a.Name,
			Generated: p.generated(a),
			Published: p.published(a),
		})
	}

	return statuses
}

func (p *Pipeline) published(a Artifact) bool {
	for _, f := range a.Files {
		if !utils.FileExists(filepath.Join(p.paths.SubtreeDir(f.Subtree), f.Target)) {
			return false
		}
	}
	return true
}

// clientNames derives client common names from the cert files the toolkit
// left in the working directory.
func (p *Pipeline) clientNames() []string {
	entries, err := os.ReadDir(p.paths.KeysDir())
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".crt") {
			continue
		}
		cn := strings.TrimSuffix(name, ".crt")
		if cn == "ca" || cn == constants.ServerCertName {
			continue
		}
		names = append(names, cn)
	}

	sort.Strings(names)

	return names
}
