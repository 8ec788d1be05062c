// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNilIntermediate is returned by [Generated.SetIntermediate] for a nil recipe.
var ErrNilIntermediate = errors.New("recipe: nil intermediate recipe")

// Generated is the envelope a generator hands back to the host. It owns at
// most one intermediate recipe plus the build and metadata input globs.
type Generated struct {
	intermediate  *Intermediate
	buildGlobs    []string
	metadataGlobs []string
	released      bool
	onFree        func()
}

// NewGenerated returns an empty envelope owned by the caller.
func NewGenerated(opts ...Option) *Generated {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Generated{onFree: o.onRelease}
}

// SetIntermediate moves ownership of r into the envelope. Any recipe the
// envelope previously held is freed. After a successful call the caller must
// not release r; the envelope does that.
func (g *Generated) SetIntermediate(r *Intermediate) error {
	g.mustBeLive("SetIntermediate")
	if r == nil {
		return ErrNilIntermediate
	}
	if r == g.intermediate {
		return nil
	}
	switch r.state {
	case released:
		return ErrReleased
	case transferred:
		return ErrTransferred
	}
	if g.intermediate != nil {
		g.intermediate.free()
	}
	r.state = transferred
	g.intermediate = r
	return nil
}

// Intermediate returns the recipe held by the envelope, or nil.
// The envelope keeps ownership.
func (g *Generated) Intermediate() *Intermediate {
	return g.intermediate
}

// AddBuildGlob appends a glob whose matches trigger a rebuild.
// Duplicates are kept.
func (g *Generated) AddBuildGlob(glob string) {
	g.mustBeLive("AddBuildGlob")
	g.buildGlobs = append(g.buildGlobs, glob)
}

// AddMetadataGlob appends a glob whose matches trigger metadata regeneration.
// Duplicates are kept.
func (g *Generated) AddMetadataGlob(glob string) {
	g.mustBeLive("AddMetadataGlob")
	g.metadataGlobs = append(g.metadataGlobs, glob)
}

// BuildGlobs returns a copy of the build input globs in insertion order.
func (g *Generated) BuildGlobs() []string {
	return append([]string(nil), g.buildGlobs...)
}

// MetadataGlobs returns a copy of the metadata input globs in insertion order.
func (g *Generated) MetadataGlobs() []string {
	return append([]string(nil), g.metadataGlobs...)
}

// Released reports whether the envelope has been freed.
func (g *Generated) Released() bool {
	return g.released
}

// Release frees the envelope and the recipe it owns. A nil envelope is a no-op.
func (g *Generated) Release() error {
	if g == nil {
		return nil
	}
	if g.released {
		return ErrReleased
	}
	if g.intermediate != nil {
		g.intermediate.free()
		g.intermediate = nil
	}
	g.buildGlobs = nil
	g.metadataGlobs = nil
	g.released = true
	if g.onFree != nil {
		g.onFree()
		g.onFree = nil
	}
	return nil
}

// MarshalJSON encodes the envelope in the host wire format:
// recipe, metadata_input_globs, build_input_globs.
func (g *Generated) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.document())
}

// ParseGenerated decodes an envelope from its JSON wire form. The envelope
// owns the decoded recipe; the caller owns the envelope.
func ParseGenerated(data []byte, opts ...Option) (*Generated, error) {
	var doc generatedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("recipe: parse generated recipe: %w", err)
	}
	g := NewGenerated(opts...)
	if doc.Recipe != nil {
		r, err := doc.Recipe.intermediate()
		if err != nil {
			_ = g.Release()
			return nil, err
		}
		r.state = transferred
		g.intermediate = r
	}
	g.metadataGlobs = append([]string(nil), doc.MetadataInputGlobs...)
	g.buildGlobs = append([]string(nil), doc.BuildInputGlobs...)
	return g, nil
}

// MarshalYAML implements yaml.Marshaler with the same layout as MarshalJSON.
func (g *Generated) MarshalYAML() (any, error) {
	return g.document(), nil
}

// Text renders the envelope as YAML.
func (g *Generated) Text() (string, error) {
	return encodeYAML(g.document())
}

func (g *Generated) mustBeLive(op string) {
	if g.released {
		panic("recipe: " + op + " called on released generated recipe")
	}
}
