// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package autotools

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/remimimimimi/pixi-build-backends/generator"
	"github.com/remimimimimi/pixi-build-backends/recipe"
	"github.com/remimimimimi/pixi-build-backends/recipe/recipetest"
)

func newTestGenerator(t testing.TB, opts ...Option) *Generator {
	t.Helper()
	g, err := New(log.New(io.Discard), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func chdirProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pixi.toml"), []byte("[package]\nname = \"hello\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	return dir
}

func TestGenerateRecipe(t *testing.T) {
	chdirProject(t)

	tests := []struct {
		name         string
		manifestPath string
		wantSource   string
	}{
		{name: "manifest in cwd", manifestPath: "pixi.toml", wantSource: "."},
		{name: "empty path", manifestPath: "", wantSource: "."},
		{name: "nested manifest", manifestPath: "./a/b/manifest.toml", wantSource: "a/b"},
		{name: "directory", manifestPath: "a/", wantSource: "a/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := &recipetest.Allocator{}
			g := newTestGenerator(t, WithAllocator(alloc))

			out, err := g.GenerateRecipe(context.Background(), generator.RecipeRequest{
				ManifestPath: tt.manifestPath,
				HostPlatform: "linux-64",
			})
			if err != nil {
				t.Fatalf("GenerateRecipe() error = %v", err)
			}

			r := out.Intermediate()
			if r == nil {
				t.Fatal("envelope has no intermediate recipe")
			}
			if diff := cmp.Diff(BuildSteps(), r.ScriptLines()); diff != "" {
				t.Errorf("script mismatch (-want +got):\n%s", diff)
			}
			wantSources := []recipe.SourceLocation{{Path: tt.wantSource}}
			if diff := cmp.Diff(wantSources, r.Sources()); diff != "" {
				t.Errorf("sources mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"**"}, out.BuildGlobs()); diff != "" {
				t.Errorf("build globs mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"pixi.toml"}, out.MetadataGlobs()); diff != "" {
				t.Errorf("metadata globs mismatch (-want +got):\n%s", diff)
			}

			if err := out.Release(); err != nil {
				t.Fatal(err)
			}
			if got := alloc.Live(); got != 0 {
				t.Errorf("Live() after Release = %d, want 0", got)
			}
		})
	}
}

func TestGenerateRecipePackageMetadata(t *testing.T) {
	chdirProject(t)

	tests := []struct {
		name      string
		model     string
		wantPkg   recipe.Package
		wantAbout recipe.About
	}{
		{
			name:    "full model",
			model:   `{"name":"zlib","version":"1.3.1","description":"compression library","license":"Zlib","homepage":"https://zlib.net","repository":"https://github.com/madler/zlib"}`,
			wantPkg: recipe.Package{Name: "zlib", Version: "1.3.1"},
			wantAbout: recipe.About{
				Homepage:   "https://zlib.net",
				License:    "Zlib",
				Summary:    "compression library",
				Repository: "https://github.com/madler/zlib",
			},
		},
		{name: "unnamed model", model: `{"version":"1.0"}`},
		{name: "empty model", model: "{}"},
		{name: "unreadable model", model: "not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(t)
			out, err := g.GenerateRecipe(context.Background(), generator.RecipeRequest{
				ProjectModel: tt.model,
				ManifestPath: "pixi.toml",
			})
			if err != nil {
				t.Fatalf("GenerateRecipe() error = %v", err)
			}
			defer out.Release()

			r := out.Intermediate()
			if diff := cmp.Diff(tt.wantPkg, r.Package()); diff != "" {
				t.Errorf("package mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantAbout, r.About()); diff != "" {
				t.Errorf("about mismatch (-want +got):\n%s", diff)
			}
			if got := len(r.Sources()); got != 1 {
				t.Errorf("got %d sources, want 1", got)
			}
		})
	}
}

func TestGenerateRecipeAllocationFailure(t *testing.T) {
	chdirProject(t)

	tests := []struct {
		name    string
		alloc   *recipetest.Allocator
		wantMsg string
	}{
		{
			name:    "intermediate",
			alloc:   &recipetest.Allocator{FailIntermediateAt: 1},
			wantMsg: "autotools: failed to allocate intermediate recipe",
		},
		{
			name:    "envelope",
			alloc:   &recipetest.Allocator{FailGeneratedAt: 1},
			wantMsg: "autotools: failed to allocate generated recipe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(t, WithAllocator(tt.alloc))

			out, err := g.GenerateRecipe(context.Background(), generator.RecipeRequest{ManifestPath: "pixi.toml"})
			if out != nil {
				t.Error("GenerateRecipe() returned an envelope on failure")
			}
			if !generator.IsKind(err, generator.KindAllocation) {
				t.Fatalf("GenerateRecipe() error = %v, want allocation error", err)
			}
			if !strings.HasPrefix(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want prefix %q", err.Error(), tt.wantMsg)
			}
			if !errors.Is(err, recipetest.ErrInjected) {
				t.Errorf("error does not wrap the allocator failure: %v", err)
			}
			if got := tt.alloc.Live(); got != 0 {
				t.Errorf("Live() = %d, want 0", got)
			}
			if g.Released() {
				t.Error("generator released by a failed generation")
			}
		})
	}
}

func TestGenerateRecipeResolutionFailure(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name         string
		opts         []Option
		manifestPath string
	}{
		{
			name:         "resolver error",
			opts:         []Option{WithResolver(func(string) (string, error) { return "", boom })},
			manifestPath: "pixi.toml",
		},
		{
			name:         "NUL byte",
			manifestPath: "pixi\x00.toml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := &recipetest.Allocator{}
			g := newTestGenerator(t, append(tt.opts, WithAllocator(alloc))...)

			out, err := g.GenerateRecipe(context.Background(), generator.RecipeRequest{ManifestPath: tt.manifestPath})
			if out != nil {
				t.Error("GenerateRecipe() returned an envelope on failure")
			}
			if !generator.IsKind(err, generator.KindResolution) {
				t.Fatalf("GenerateRecipe() error = %v, want resolution error", err)
			}
			if !strings.HasPrefix(err.Error(), "autotools: failed to determine source directory") {
				t.Errorf("error = %q", err.Error())
			}
			if got := alloc.Allocated(); got != 1 {
				t.Errorf("Allocated() = %d, want 1", got)
			}
			if got := alloc.Live(); got != 0 {
				t.Errorf("Live() = %d, want 0", got)
			}
		})
	}
}

func TestGenerateRecipeDeterministic(t *testing.T) {
	chdirProject(t)
	g := newTestGenerator(t)
	segment := rapid.StringMatching(`[a-z]{1,8}`)

	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(segment, 0, 4).Draw(t, "parts")
		path := strings.Join(append(parts, "pixi.toml"), "/")
		req := generator.RecipeRequest{ManifestPath: path}

		first, err := g.GenerateRecipe(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		defer first.Release()
		second, err := g.GenerateRecipe(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		defer second.Release()

		if diff := cmp.Diff(first.Intermediate().ScriptLines(), second.Intermediate().ScriptLines()); diff != "" {
			t.Fatalf("scripts differ:\n%s", diff)
		}
		if diff := cmp.Diff(first.Intermediate().Sources(), second.Intermediate().Sources()); diff != "" {
			t.Fatalf("sources differ:\n%s", diff)
		}
		if n := len(first.Intermediate().Sources()); n != 1 {
			t.Fatalf("got %d sources, want 1", n)
		}
		if len(first.BuildGlobs()) == 0 || len(first.MetadataGlobs()) == 0 {
			t.Fatal("empty glob list on success")
		}
	})
}

func TestGenerateRecipeLogs(t *testing.T) {
	chdirProject(t)

	var buf bytes.Buffer
	g, err := New(log.New(&buf))
	if err != nil {
		t.Fatal(err)
	}
	out, err := g.GenerateRecipe(context.Background(), generator.RecipeRequest{ManifestPath: "pixi.toml"})
	if err != nil {
		t.Fatal(err)
	}
	defer out.Release()

	logged := buf.String()
	for _, want := range []string{
		"manifest_path=pixi.toml",
		"source_dir=.",
		"intermediate_recipe:",
		"generate_recipe completed successfully",
	} {
		if !strings.Contains(logged, want) {
			t.Errorf("log missing %q:\n%s", want, logged)
		}
	}
}

func TestDecliningOperations(t *testing.T) {
	alloc := &recipetest.Allocator{}
	g := newTestGenerator(t, WithAllocator(alloc))
	ctx := context.Background()

	globs, err := g.ExtractInputGlobs(ctx, generator.GlobsRequest{Config: "{}", WorkDir: ".", Editable: true})
	if err != nil {
		t.Fatalf("ExtractInputGlobs() error = %v", err)
	}
	if globs.Provided() {
		t.Errorf("ExtractInputGlobs() = %v, want NoAdditionalGlobs", globs.Globs())
	}

	v, err := g.DefaultVariants(ctx, "linux-64")
	if err != nil {
		t.Fatalf("DefaultVariants() error = %v", err)
	}
	if v.Provided() {
		t.Errorf("DefaultVariants() = %v, want NoVariantDefaults", v.Keys())
	}

	if got := alloc.Allocated(); got != 0 {
		t.Errorf("declining operations allocated %d objects", got)
	}
	if g.Released() {
		t.Error("declining operations released the generator")
	}
}

func TestRelease(t *testing.T) {
	g := newTestGenerator(t)
	if err := g.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := g.Release(); err == nil {
		t.Error("second Release() error = nil")
	}
}

func TestNewRejectsNilLogger(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) error = nil")
	}

	// A failed factory must return an untyped nil so callers can compare.
	g, err := Factory(nil)
	if err == nil {
		t.Error("Factory(nil) error = nil")
	}
	if g != nil {
		t.Errorf("Factory(nil) = %#v, want nil", g)
	}
}

func TestHandleConstruction(t *testing.T) {
	g, err := Factory(log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	h, err := generator.NewHandle(g)
	if err != nil {
		t.Fatalf("NewHandle() error = %v", err)
	}
	if got := h.Name(); got != Name {
		t.Errorf("Name() = %q, want %q", got, Name)
	}
	if err := h.Release(); err != nil {
		t.Fatal(err)
	}
	if !g.(*Generator).Released() {
		t.Error("handle Release did not reach the generator")
	}
}
