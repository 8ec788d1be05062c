// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package autotools implements a recipe generator for projects built with
// ./configure && make && make install.
package autotools

import (
	"context"
	"errors"

	"github.com/remimimimimi/pixi-build-backends/generator"
	"github.com/remimimimimi/pixi-build-backends/recipe"
)

// Generator implements [generator.Generator] for autotools projects.
//
// It holds no per-request state: ExtractInputGlobs and DefaultVariants
// always decline, and GenerateRecipe depends only on the manifest path.
type Generator struct {
	alloc    recipe.Allocator
	log      generator.Logger
	resolve  func(string) (string, error)
	released bool
}

var _ generator.Generator = (*Generator)(nil)

// Option configures a Generator.
type Option func(*Generator)

// WithAllocator sets the allocator used for recipes and envelopes.
func WithAllocator(a recipe.Allocator) Option {
	return func(g *Generator) {
		g.alloc = a
	}
}

// WithResolver replaces the source directory resolver.
func WithResolver(fn func(manifestPath string) (string, error)) Option {
	return func(g *Generator) {
		g.resolve = fn
	}
}

// New creates an autotools generator that logs to logger.
func New(logger generator.Logger, opts ...Option) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("autotools: nil logger")
	}
	g := &Generator{
		alloc:   recipe.Heap,
		log:     logger,
		resolve: generator.ResolveSourceDir,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Factory is a [generator.Factory] for the default autotools generator.
func Factory(logger generator.Logger) (generator.Generator, error) {
	g, err := New(logger)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:        Name,
		Version:     Version,
		Description: "Generate build recipes for GNU autotools projects",
		URL:         "https://github.com/remimimimimi/pixi-build-backends",
	}
}

// GenerateRecipe builds the recipe for the package whose manifest is at
// req.ManifestPath. The package name, version and metadata come from
// req.ProjectModel; the remaining request fields are accepted and ignored.
func (g *Generator) GenerateRecipe(_ context.Context, req generator.RecipeRequest) (*recipe.Generated, error) {
	g.log.Debug("generate_recipe requested", "manifest_path", req.ManifestPath, "host_platform", req.HostPlatform, "editable", req.Editable)

	r, err := g.alloc.NewIntermediate()
	if err != nil {
		return nil, generator.AllocationError(Name, msgAllocIntermediate, err)
	}

	r.SetBuildScript(Script())
	g.describe(r, req)

	dir, err := g.resolve(req.ManifestPath)
	if err != nil {
		_ = r.Release()
		return nil, generator.ResolutionError(Name, msgResolveSource, err)
	}
	g.log.Info("generate_recipe", "manifest_path", req.ManifestPath, "source_dir", dir)

	r.ClearSources()
	r.AddSourcePath(dir, false, "", false)

	if text, err := r.Text(); err == nil {
		g.log.Info("intermediate_recipe:\n" + text)
	}

	out, err := g.alloc.NewGenerated()
	if err != nil {
		_ = r.Release()
		return nil, generator.AllocationError(Name, msgAllocGenerated, err)
	}
	if err := out.SetIntermediate(r); err != nil {
		_ = r.Release()
		_ = out.Release()
		return nil, err
	}
	out.AddBuildGlob(BuildGlob)
	out.AddMetadataGlob(ManifestGlob)

	g.log.Info("generate_recipe completed successfully")
	return out, nil
}

// describe copies the package identity and metadata from the project model.
// The model is advisory: one that cannot be read leaves the recipe without
// them.
func (g *Generator) describe(r *recipe.Intermediate, req generator.RecipeRequest) {
	pm, err := req.Project()
	if err != nil {
		g.log.Warn("project model ignored", "err", err)
		return
	}
	if pm.Name == "" {
		return
	}
	r.SetPackage(pm.Name, pm.Version)
	r.SetAbout(recipe.About{
		Homepage:      pm.Homepage,
		License:       pm.License,
		LicenseFile:   pm.LicenseFile,
		Summary:       pm.Description,
		Documentation: pm.Documentation,
		Repository:    pm.Repository,
	})
}

// ExtractInputGlobs declines: BuildGlob already covers every input.
func (g *Generator) ExtractInputGlobs(context.Context, generator.GlobsRequest) (generator.InputGlobs, error) {
	return generator.NoAdditionalGlobs(), nil
}

// DefaultVariants declines: autotools projects have no variant axes.
func (g *Generator) DefaultVariants(context.Context, string) (generator.VariantDefaults, error) {
	return generator.NoVariantDefaults(), nil
}

// Release frees the generator state. A second call is an error.
func (g *Generator) Release() error {
	if g.released {
		return errors.New("autotools: generator already released")
	}
	g.released = true
	return nil
}

// Released reports whether Release has been called.
func (g *Generator) Released() bool {
	return g.released
}
