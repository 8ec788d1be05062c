// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RecipeRequest carries the inputs of a recipe generation. Payload fields
// are opaque JSON text and are passed through uninterpreted.
type RecipeRequest struct {
	// ProjectModel describes the package being built.
	ProjectModel string

	// Config is the backend-specific configuration.
	Config string

	// ManifestPath is the path of the project manifest, possibly relative.
	ManifestPath string

	// HostPlatform is the conda platform of the build host (e.g., "linux-64").
	HostPlatform string

	// Editable requests an editable (development) install.
	Editable bool

	// Variants lists the variant keys in use.
	Variants string
}

// ProjectModel holds the package fields of a project model that
// generators copy into a recipe.
type ProjectModel struct {
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	Description   string `json:"description,omitempty"`
	License       string `json:"license,omitempty"`
	LicenseFile   string `json:"license_file,omitempty"`
	Homepage      string `json:"homepage,omitempty"`
	Repository    string `json:"repository,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}

// Project decodes the package fields of r.ProjectModel. Other fields are
// ignored. A versioned model of the form {"version": ..., "data": {...}} is
// unwrapped. An empty or null model yields the zero ProjectModel.
func (r RecipeRequest) Project() (ProjectModel, error) {
	data := bytes.TrimSpace([]byte(r.ProjectModel))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ProjectModel{}, nil
	}

	var versioned struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &versioned); err != nil {
		return ProjectModel{}, fmt.Errorf("decode project model: %w", err)
	}
	if d := bytes.TrimSpace(versioned.Data); len(d) > 0 && d[0] == '{' {
		data = d
	}

	var pm ProjectModel
	if err := json.Unmarshal(data, &pm); err != nil {
		return ProjectModel{}, fmt.Errorf("decode project model: %w", err)
	}
	return pm, nil
}

// GlobsRequest carries the inputs of input-glob extraction.
type GlobsRequest struct {
	// Config is the backend-specific configuration (opaque JSON text).
	Config string

	// WorkDir is the working directory of the build.
	WorkDir string

	// Editable requests an editable (development) install.
	Editable bool
}
