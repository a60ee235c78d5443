package pki

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	helpererrors "github.com/whatevsz/openvpn-helper/errors"
	"github.com/whatevsz/openvpn-helper/utils"
)

// LoadVars reads the parameter source file of an instance into a key/value
// map. The map is handed to external commands explicitly; the process
// environment is never mutated. Callers re-load on every generating call,
// values are not cached across artifact kinds.
func LoadVars(path string) (map[string]string, error) {
	if !utils.FileExists(path) {
		return nil, errors.Wrapf(helpererrors.ErrPathNotFound, "parameter source %s", path)
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse parameter source %s", path)
	}

	return vars, nil
}

type clientManifest struct {
	Clients []string `yaml:"clients"`
}

// LoadClientManifest reads the optional per-instance client manifest, a yaml
// file listing the client common names to issue certificates for.
func LoadClientManifest(path string) ([]string, error) {
	b, err := utils.ReadFileContent(path)
	if err != nil {
		return nil, errors.Wrapf(helpererrors.ErrPathNotFound, "client manifest %s", path)
	}

	var m clientManifest
	if err := yaml.UnmarshalStrict(b, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse client manifest %s", path)
	}

	if len(m.Clients) == 0 {
		return nil, errors.Wrapf(helpererrors.ErrIncorrectInput,
			"client manifest %s lists no clients", path)
	}

	return m.Clients, nil
}
