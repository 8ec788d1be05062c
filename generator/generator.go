// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the contract between the build host and a
// toolchain recipe generator.
//
// A generator answers three questions for the host: how the sources are
// built ([Generator.GenerateRecipe]), which files invalidate a build
// ([Generator.ExtractInputGlobs]), and which variant axes exist
// ([Generator.DefaultVariants]). The host never talks to a generator
// directly. It holds a [Handle], which hides the concrete type and enforces
// the ownership and release rules.
package generator

import (
	"context"

	"github.com/remimimimimi/pixi-build-backends/recipe"
)

// Generator is the interface that all toolchain generators must implement.
type Generator interface {
	// Metadata returns information about this generator.
	Metadata() Metadata

	// GenerateRecipe produces the recipe for one package. On success the
	// returned envelope is owned by the caller. On error it is nil and the
	// generator has released everything it allocated.
	GenerateRecipe(ctx context.Context, req RecipeRequest) (*recipe.Generated, error)

	// ExtractInputGlobs returns globs beyond the defaults that should
	// trigger a rebuild, or NoAdditionalGlobs.
	ExtractInputGlobs(ctx context.Context, req GlobsRequest) (InputGlobs, error)

	// DefaultVariants returns the default variant axes for hostPlatform,
	// or NoVariantDefaults.
	DefaultVariants(ctx context.Context, hostPlatform string) (VariantDefaults, error)

	// Release frees the generator state. The host calls it exactly once.
	Release() error
}

// Metadata describes a generator.
type Metadata struct {
	// Name is the short identifier (e.g., "autotools", "cmake").
	Name string

	// Version is the generator version (semver).
	Version string

	// Description is a human-readable description.
	Description string

	// URL is the homepage/documentation URL (optional).
	URL string
}

// Logger is the diagnostic sink handed to generators. *log.Logger from
// github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// Factory constructs a generator bound to logger.
type Factory func(logger Logger) (Generator, error)
