// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package pki

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/whatevsz/openvpn-helper/constants"
	helpererrors "github.com/whatevsz/openvpn-helper/errors"
	"github.com/whatevsz/openvpn-helper/utils"
)

const (
	dirPerm = os.FileMode(0o755)

	clientManifestSuffix = ".clients.yml"
)

// InstancePaths derives all the absolute paths and filenames used for one VPN
// instance. All paths are deduced from three inputs: the installation root,
// the publish root and the instance name.
type InstancePaths struct {
	root        string
	publishRoot string
	instance    string
}

// NewInstancePaths constructs an InstancePaths for the given instance.
// The publish root defaults to a deploy dir under the installation root
// when left empty.
func NewInstancePaths(root, publishRoot, instance string) (*InstancePaths, error) {
	if instance == "" {
		return nil, errors.Wrap(helpererrors.ErrIncorrectInput, "instance name must not be empty")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if publishRoot == "" {
		publishRoot = filepath.Join(absRoot, constants.PublishDirName)
	}

	absPublishRoot, err := filepath.Abs(publishRoot)
	if err != nil {
		return nil, err
	}

	return &InstancePaths{
		root:        absRoot,
		publishRoot: absPublishRoot,
		instance:    instance,
	}, nil
}

// InstanceName returns the name of the instance the paths belong to.
func (p *InstancePaths) InstanceName() string {
	return p.instance
}

// EasyRSADir returns the external toolkit root directory.
func (p *InstancePaths) EasyRSADir() string {
	return filepath.Join(p.root, constants.EasyRSADirName)
}

// VarsDir returns the directory holding per-instance parameter source files.
func (p *InstancePaths) VarsDir() string {
	return filepath.Join(p.root, constants.VarsDirName)
}

// VarsFile returns the parameter source file of the instance.
func (p *InstancePaths) VarsFile() string {
	return filepath.Join(p.VarsDir(), p.instance)
}

// ClientManifestFile returns the optional client manifest of the instance.
func (p *InstancePaths) ClientManifestFile() string {
	return filepath.Join(p.VarsDir(), p.instance+clientManifestSuffix)
}

// KeysDir returns the working directory the toolkit writes raw artifacts to.
func (p *InstancePaths) KeysDir() string {
	return filepath.Join(p.root, constants.KeysDirName, p.instance)
}

// KeyFile returns the path of a raw artifact file in the working directory.
func (p *InstancePaths) KeyFile(name string) string {
	return filepath.Join(p.KeysDir(), name)
}

// PublishRoot returns the root of the publish tree for all instances.
func (p *InstancePaths) PublishRoot() string {
	return p.publishRoot
}

// PublishDir returns the publish tree of the instance.
func (p *InstancePaths) PublishDir() string {
	return filepath.Join(p.publishRoot, p.instance)
}

// SubtreeDir returns one of the fixed publish subtrees of the instance.
func (p *InstancePaths) SubtreeDir(subtree string) string {
	return filepath.Join(p.PublishDir(), subtree)
}

// SecretDir returns the publish subtree holding private key material.
func (p *InstancePaths) SecretDir() string {
	return p.SubtreeDir(constants.SubtreeSecret)
}

// ServerDir returns the publish subtree holding the server-side bundle.
func (p *InstancePaths) ServerDir() string {
	return p.SubtreeDir(constants.SubtreeServer)
}

// SharedDir returns the publish subtree holding material used by both ends.
func (p *InstancePaths) SharedDir() string {
	return p.SubtreeDir(constants.SubtreeShared)
}

// ClientsDir returns the publish subtree holding per-client bundles.
func (p *InstancePaths) ClientsDir() string {
	return p.SubtreeDir(constants.SubtreeClients)
}

// ClientDir returns the publish directory of a single client.
func (p *InstancePaths) ClientDir(commonName string) string {
	return filepath.Join(p.ClientsDir(), commonName)
}

// Resolve validates the static inputs of the instance and idempotently
// creates its output directories, parents before children.
//
// The toolkit root, the vars dir, the publish root and the parameter source
// file are static dependencies; a missing one is a configuration error
// naming the exact path. The working directory, the publish dir and its four
// subtrees are outputs and get created, not reported.
func (p *InstancePaths) Resolve() error {
	for _, dir := range []string{p.EasyRSADir(), p.VarsDir(), p.publishRoot} {
		if !utils.DirExists(dir) {
			return errors.Wrapf(helpererrors.ErrPathNotFound, "directory %s", dir)
		}
	}

	if !utils.FileExists(p.VarsFile()) {
		return errors.Wrapf(helpererrors.ErrPathNotFound, "parameter source %s", p.VarsFile())
	}

	for _, dir := range []string{
		p.KeysDir(),
		p.PublishDir(),
		p.SecretDir(),
		p.ServerDir(),
		p.SharedDir(),
		p.ClientsDir(),
	} {
		if err := utils.CreateDirectory(dir, dirPerm); err != nil {
			return err
		}
	}

	return nil
}
