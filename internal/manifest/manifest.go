// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package manifest reads the package section of a pixi.toml manifest.
//
// The host normally sends the project model itself. The reader exists for
// running a backend by hand, where only the manifest is available.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/remimimimimi/pixi-build-backends/generator"
)

// FileName is the manifest file looked up inside a directory.
const FileName = "pixi.toml"

// ErrNoPackage is returned when the manifest has no package name.
var ErrNoPackage = errors.New("manifest has no [package] name")

// Manifest is the subset of pixi.toml a backend cares about.
type Manifest struct {
	Package   Package   `toml:"package"`
	Workspace Workspace `toml:"workspace"`

	// Project is the legacy name of the workspace table.
	Project Workspace `toml:"project"`
}

// Package is the [package] table. Fields may be inherited from the
// workspace with `field.workspace = true`.
type Package struct {
	Name        any   `toml:"name"`
	Version     any   `toml:"version"`
	Description any   `toml:"description"`
	License     any   `toml:"license"`
	Homepage    any   `toml:"homepage"`
	Repository  any   `toml:"repository"`
	Build       Build `toml:"build"`
}

// Build is the [package.build] table.
type Build struct {
	Backend Backend `toml:"backend"`
}

// Backend names the build backend the package uses.
type Backend struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	License     string `toml:"license"`
	Homepage    string `toml:"homepage"`
	Repository  string `toml:"repository"`
}

// ProjectModel is the JSON payload handed to a generator.
type ProjectModel = generator.ProjectModel

// Load reads the manifest at path. A directory is searched for FileName.
func Load(path string) (*Manifest, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, FileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest text.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// workspace returns the workspace table, falling back to [project].
func (m *Manifest) workspace() Workspace {
	if m.Workspace != (Workspace{}) {
		return m.Workspace
	}
	return m.Project
}

// ProjectModel resolves workspace inheritance and returns the package
// description.
func (m *Manifest) ProjectModel() (ProjectModel, error) {
	ws := m.workspace()
	var errs []error
	field := func(name string, v any, inherited string) string {
		s, err := resolve(v, inherited)
		if err != nil {
			errs = append(errs, fmt.Errorf("package.%s: %w", name, err))
		}
		return s
	}

	pm := ProjectModel{
		Name:        field("name", m.Package.Name, ws.Name),
		Version:     field("version", m.Package.Version, ws.Version),
		Description: field("description", m.Package.Description, ws.Description),
		License:     field("license", m.Package.License, ws.License),
		Homepage:    field("homepage", m.Package.Homepage, ws.Homepage),
		Repository:  field("repository", m.Package.Repository, ws.Repository),
	}
	if err := errors.Join(errs...); err != nil {
		return ProjectModel{}, err
	}
	if pm.Name == "" {
		return ProjectModel{}, ErrNoPackage
	}
	return pm, nil
}

// ProjectModelJSON returns ProjectModel encoded as JSON.
func (m *Manifest) ProjectModelJSON() ([]byte, error) {
	pm, err := m.ProjectModel()
	if err != nil {
		return nil, err
	}
	return json.Marshal(pm)
}

func resolve(v any, inherited string) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case map[string]any:
		if ws, _ := v["workspace"].(bool); ws {
			return inherited, nil
		}
		return "", errors.New("table must be {workspace = true}")
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
