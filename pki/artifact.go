package pki

import (
	"path/filepath"

	"github.com/whatevsz/openvpn-helper/constants"
)

// Kind enumerates the closed set of artifact kinds the pipeline manages.
type Kind int

const (
	KindCA Kind = iota
	KindServer
	KindDH
	KindTLSAuth
	KindCRL
	KindClient
)

// FileMapping ties one raw file in the working directory to its destination
// in the publish tree.
type FileMapping struct {
	// Source is the file name inside the working directory.
	Source string
	// Subtree is the publish subtree the file is copied into.
	Subtree string
	// Target is the destination path relative to the subtree.
	Target string
}

// Artifact describes one managed artifact kind as data: the files the
// toolkit produces for it, where they get published, and which files must
// already exist before generation may run.
type Artifact struct {
	Kind Kind
	// Name is the human readable artifact name used in log output.
	Name string
	// CommonName is set for client artifacts only.
	CommonName string
	// Files are the working directory files and their publish destinations.
	Files []FileMapping
	// Requires lists working directory files that must exist before the
	// artifact can be generated.
	Requires []string
}

// SourceFiles returns the working directory file names of the artifact.
func (a Artifact) SourceFiles() []string {
	s := make([]string, 0, len(a.Files))
	for _, f := range a.Files {
		s = append(s, f.Source)
	}
	return s
}

// CAArtifact returns the certificate authority artifact. The certificate is
// shared with both ends, the key never leaves the secret subtree.
func CAArtifact() Artifact {
	return Artifact{
		Kind: KindCA,
		Name: "certificate authority",
		Files: []FileMapping{
			{Source: constants.CACertFile, Subtree: constants.SubtreeShared, Target: constants.CACertFile},
			{Source: constants.CAKeyFile, Subtree: constants.SubtreeSecret, Target: constants.CAKeyFile},
		},
	}
}

// ServerArtifact returns the server certificate artifact.
func ServerArtifact() Artifact {
	return Artifact{
		Kind: KindServer,
		Name: "server certificate",
		Files: []FileMapping{
			{Source: constants.ServerCertFile, Subtree: constants.SubtreeServer, Target: constants.ServerCertFile},
			{Source: constants.ServerKeyFile, Subtree: constants.SubtreeServer, Target: constants.ServerKeyFile},
		},
	}
}

// DHArtifact returns the Diffie-Hellman parameters artifact.
func DHArtifact() Artifact {
	return Artifact{
		Kind: KindDH,
		Name: "DH parameters",
		Files: []FileMapping{
			{Source: constants.DHParamsFile, Subtree: constants.SubtreeServer, Target: constants.DHParamsFile},
		},
	}
}

// TLSAuthArtifact returns the TLS auth (HMAC) key artifact.
func TLSAuthArtifact() Artifact {
	return Artifact{
		Kind: KindTLSAuth,
		Name: "TLS auth key",
		Files: []FileMapping{
			{Source: constants.TLSAuthKeyFile, Subtree: constants.SubtreeShared, Target: constants.TLSAuthKeyFile},
		},
	}
}

// CRLArtifact returns the certificate revocation list artifact. Signing a
// CRL needs existing CA material.
func CRLArtifact() Artifact {
	return Artifact{
		Kind: KindCRL,
		Name: "certificate revocation list",
		Files: []FileMapping{
			{Source: constants.CRLFile, Subtree: constants.SubtreeServer, Target: constants.CRLFile},
		},
		Requires: []string{constants.CACertFile, constants.CAKeyFile},
	}
}

// ClientArtifact returns the certificate artifact of a single client. The
// pair is published under a per-client directory with fixed file names so
// that downstream consumption does not depend on the common name.
func ClientArtifact(commonName string) Artifact {
	return Artifact{
		Kind:       KindClient,
		Name:       "client certificate for " + commonName,
		CommonName: commonName,
		Files: []FileMapping{
			{
				Source:  commonName + ".crt",
				Subtree: constants.SubtreeClients,
				Target:  filepath.Join(commonName, constants.ClientCertFile),
			},
			{
				Source:  commonName + ".key",
				Subtree: constants.SubtreeClients,
				Target:  filepath.Join(commonName, constants.ClientKeyFile),
			},
		},
	}
}
