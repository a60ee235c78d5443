// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package pki

import (
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	helpererrors "github.com/whatevsz/openvpn-helper/errors"
	"github.com/whatevsz/openvpn-helper/runner"
	"github.com/whatevsz/openvpn-helper/utils"
)

// Pipeline drives the artifact lifecycle of one instance: generate raw files
// with the external toolkit unless they already exist, then unconditionally
// copy them into the publish tree. All steps are sequential and any failure
// terminates the run, state is left as of the last successful step.
type Pipeline struct {
	paths   *InstancePaths
	toolkit *Toolkit
	exec    runner.Executor
}

// NewPipeline initializes a Pipeline over resolved instance paths.
func NewPipeline(paths *InstancePaths, toolkit *Toolkit, exec runner.Executor) *Pipeline {
	return &Pipeline{
		paths:   paths,
		toolkit: toolkit,
		exec:    exec,
	}
}

// Paths returns the resolved instance paths the pipeline operates on.
func (p *Pipeline) Paths() *InstancePaths {
	return p.paths
}

// Build runs the two-phase algorithm for one artifact: generate-or-skip,
// then publish.
func (p *Pipeline) Build(a Artifact) error {
	if p.generated(a) {
		log.Infof("%s already present, skipping generation", a.Name)
	} else {
		if err := p.generate(a); err != nil {
			return err
		}
	}

	return p.publish(a)
}

// generated reports whether every raw file of the artifact already exists as
// a regular file in the working directory.
func (p *Pipeline) generated(a Artifact) bool {
	for _, src := range a.SourceFiles() {
		if !utils.FileExists(p.paths.KeyFile(src)) {
			return false
		}
	}
	return true
}

func (p *Pipeline) generate(a Artifact) error {
	for _, req := range a.Requires {
		if !utils.FileExists(p.paths.KeyFile(req)) {
			return errors.Wrapf(helpererrors.ErrPreconditionFailed,
				"%s requires %s", a.Name, p.paths.KeyFile(req))
		}
	}

	if a.Kind == KindTLSAuth {
		if err := CheckOpenVPNVersion(p.exec); err != nil {
			return err
		}
	}

	// the parameter source is re-read for every generating call so that
	// edits take effect mid-run
	vars, err := LoadVars(p.paths.VarsFile())
	if err != nil {
		return err
	}

	cmd := p.toolkit.GenerateCmd(a, vars)

	log.Infof("generating %s for instance %s", a.Name, p.paths.InstanceName())

	return p.run(cmd)
}

func (p *Pipeline) publish(a Artifact) error {
	for _, f := range a.Files {
		src := p.paths.KeyFile(f.Source)
		dst := filepath.Join(p.paths.SubtreeDir(f.Subtree), f.Target)

		// client bundles live in a per-common-name directory below the
		// clients subtree
		dstDir := filepath.Dir(dst)
		if dstDir != p.paths.SubtreeDir(f.Subtree) {
			if err := utils.CreateDirectory(dstDir, dirPerm); err != nil {
				return err
			}
		}

		log.Infof("publishing %s -> %s", src, dst)

		if err := utils.CopyFile(src, dst); err != nil {
			return errors.Wrapf(err, "failed to publish %s", src)
		}
	}

	return nil
}

// run executes a toolkit command and turns a non-zero exit into a fatal
// error carrying the captured output.
func (p *Pipeline) run(cmd *runner.ExecCmd) error {
	res, err := p.exec.RunCmd(cmd)
	if err != nil {
		return errors.Wrapf(err, "failed to run %q", cmd.GetCmdString())
	}

	if res.GetReturnCode() != 0 {
		log.Error(res.String())
		return errors.Wrapf(helpererrors.ErrCommandFailed, "%q exited with code %d, aborting",
			res.GetCmdString(), res.GetReturnCode())
	}

	log.Debugf("executed %q", res.GetCmdString())

	return nil
}

// CleanAll resets the toolkit working state of the instance. Published
// artifacts are deliberately left in place; purging the publish tree is an
// operator task.
func (p *Pipeline) CleanAll() error {
	vars, err := LoadVars(p.paths.VarsFile())
	if err != nil {
		return err
	}

	log.Infof("cleaning toolkit state for instance %s", p.paths.InstanceName())

	return p.run(p.toolkit.CleanAllCmd(vars))
}

// Bootstrap creates a fresh instance: reset, then CA, server certificate,
// DH parameters and TLS auth key in a fixed order. A failing step aborts
// the sequence, artifacts published by earlier steps stay published.
func (p *Pipeline) Bootstrap() error {
	if err := p.CleanAll(); err != nil {
		return err
	}

	for _, a := range []Artifact{
		CAArtifact(),
		ServerArtifact(),
		DHArtifact(),
		TLSAuthArtifact(),
	} {
		if err := p.Build(a); err != nil {
			return err
		}
	}

	return nil
}

// Revoke revokes a client certificate via the toolkit, which re-signs the
// CRL as a side effect, and re-publishes the fresh CRL.
func (p *Pipeline) Revoke(commonName string) error {
	vars, err := LoadVars(p.paths.VarsFile())
	if err != nil {
		return err
	}

	log.Infof("revoking client certificate %s for instance %s",
		commonName, p.paths.InstanceName())

	res, err := p.exec.RunCmd(p.toolkit.RevokeCmd(vars, commonName))
	if err != nil {
		return errors.Wrap(err, "failed to run revocation")
	}

	// revoke-full ends with a verify call that reports code 23 once the
	// certificate is revoked, which is the outcome we are after
	if rc := res.GetReturnCode(); rc != 0 && rc != 23 {
		log.Error(res.String())
		return errors.Wrapf(helpererrors.ErrCommandFailed, "%q exited with code %d, aborting",
			res.GetCmdString(), rc)
	}

	return p.publish(CRLArtifact())
}
