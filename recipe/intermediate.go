// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package recipe defines the intermediate recipe model that generators fill
// in, and the generated-recipe envelope that carries it back to the host.
//
// Both types follow an explicit ownership protocol. A value has exactly one
// owner at a time: the generator that allocated it, or the envelope it was
// moved into. The owner releases it exactly once. Release on an already
// released value reports [ErrReleased]; release through a reference whose
// ownership was moved reports [ErrTransferred] and frees nothing.
package recipe

import (
	"errors"
	"strings"
)

var (
	// ErrReleased is returned when a recipe or envelope is released twice.
	ErrReleased = errors.New("recipe: already released")

	// ErrTransferred is returned when a recipe is released or moved again
	// after its ownership was moved into an envelope.
	ErrTransferred = errors.New("recipe: ownership transferred to envelope")
)

type ownership uint8

const (
	owned ownership = iota
	transferred
	released
)

// SourceLocation is one place the host fetches package sources from.
type SourceLocation struct {
	// Path is a filesystem path, a URL, or a git repository reference.
	Path string

	// IsURL marks Path as a URL to download.
	IsURL bool

	// Checksum is the expected SHA-256 of the source (empty = none).
	Checksum string

	// IsGit marks Path as a git repository.
	IsGit bool
}

// Package identifies the package a recipe builds.
type Package struct {
	Name    string
	Version string
}

// About is the descriptive metadata of a package. Empty fields are omitted
// from the wire form.
type About struct {
	Homepage      string
	License       string
	LicenseFile   string
	Summary       string
	Description   string
	Documentation string
	Repository    string
}

// Intermediate describes how to build one package: its identity, a build
// script, the locations its sources come from, and optional metadata.
type Intermediate struct {
	pkg     Package
	script  []string
	sources []SourceLocation
	about   About
	state   ownership
	onFree  func()
}

// NewIntermediate returns an empty recipe owned by the caller.
// Most generators should allocate through an [Allocator] instead.
func NewIntermediate(opts ...Option) *Intermediate {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Intermediate{onFree: o.onRelease}
}

// SetPackage sets the package name and version.
func (r *Intermediate) SetPackage(name, version string) {
	r.mustBeLive("SetPackage")
	r.pkg = Package{Name: name, Version: version}
}

// Package returns the package name and version.
func (r *Intermediate) Package() Package {
	return r.pkg
}

// SetAbout replaces the package metadata.
func (r *Intermediate) SetAbout(about About) {
	r.mustBeLive("SetAbout")
	r.about = about
}

// About returns the package metadata.
func (r *Intermediate) About() About {
	return r.about
}

// SetBuildScript replaces the build script. The script is opaque text; it
// is split into lines and a single trailing newline is dropped.
func (r *Intermediate) SetBuildScript(script string) {
	r.mustBeLive("SetBuildScript")
	script = strings.TrimSuffix(script, "\n")
	if script == "" {
		r.script = nil
		return
	}
	r.script = strings.Split(script, "\n")
}

// BuildScript returns the build script as newline-terminated text.
func (r *Intermediate) BuildScript() string {
	if len(r.script) == 0 {
		return ""
	}
	return strings.Join(r.script, "\n") + "\n"
}

// ScriptLines returns a copy of the build script lines.
func (r *Intermediate) ScriptLines() []string {
	return append([]string(nil), r.script...)
}

// ClearSources removes every source location.
func (r *Intermediate) ClearSources() {
	r.mustBeLive("ClearSources")
	r.sources = nil
}

// AddSourcePath appends a source location. The path is not checked against
// the filesystem.
func (r *Intermediate) AddSourcePath(path string, isURL bool, checksum string, isGit bool) {
	r.AddSource(SourceLocation{Path: path, IsURL: isURL, Checksum: checksum, IsGit: isGit})
}

// AddSource appends a source location.
func (r *Intermediate) AddSource(src SourceLocation) {
	r.mustBeLive("AddSource")
	r.sources = append(r.sources, src)
}

// Sources returns a copy of the source locations in insertion order.
func (r *Intermediate) Sources() []SourceLocation {
	return append([]SourceLocation(nil), r.sources...)
}

// Released reports whether the recipe has been freed.
func (r *Intermediate) Released() bool {
	return r.state == released
}

// Text renders the recipe as YAML. It does not modify the recipe.
func (r *Intermediate) Text() (string, error) {
	return encodeYAML(r.document())
}

// Release frees the recipe. A nil recipe is a no-op.
func (r *Intermediate) Release() error {
	if r == nil {
		return nil
	}
	switch r.state {
	case released:
		return ErrReleased
	case transferred:
		return ErrTransferred
	}
	r.free()
	return nil
}

// free drops the recipe regardless of who holds the reference. Only the
// current owner may call it.
func (r *Intermediate) free() {
	r.pkg = Package{}
	r.about = About{}
	r.script = nil
	r.sources = nil
	r.state = released
	if r.onFree != nil {
		r.onFree()
		r.onFree = nil
	}
}

func (r *Intermediate) mustBeLive(op string) {
	if r.state == released {
		panic("recipe: " + op + " called on released intermediate recipe")
	}
}
