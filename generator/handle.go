// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/remimimimimi/pixi-build-backends/recipe"
)

// Handle is the host's view of a generator. It exposes the operations
// without the concrete type and guarantees the generator is released once.
//
// A Handle is not safe for concurrent use.
type Handle struct {
	gen      Generator
	meta     Metadata
	released bool
}

// NewHandle wraps g. If g cannot be wrapped it is released before
// NewHandle returns, so the caller never has to clean up.
func NewHandle(g Generator) (*Handle, error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	meta := g.Metadata()
	if meta.Name == "" {
		if err := g.Release(); err != nil {
			return nil, errors.Join(ErrUnnamedGenerator, err)
		}
		return nil, ErrUnnamedGenerator
	}
	return &Handle{gen: g, meta: meta}, nil
}

// Metadata returns the generator metadata captured at construction.
func (h *Handle) Metadata() Metadata {
	return h.meta
}

// Name returns the generator name.
func (h *Handle) Name() string {
	return h.meta.Name
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	return h.released
}

// GenerateRecipe asks the generator for a recipe. A successful result always
// carries an intermediate recipe with at least one source; the caller owns
// it and must release it.
func (h *Handle) GenerateRecipe(ctx context.Context, req RecipeRequest) (*recipe.Generated, error) {
	if h.released {
		return nil, ErrHandleReleased
	}
	out, err := h.gen.GenerateRecipe(ctx, req)
	if err != nil {
		// The envelope is not inspected on the failure branch.
		return nil, &OperationError{Op: OpGenerateRecipe, Err: err}
	}
	if out == nil {
		return nil, &OperationError{Op: OpGenerateRecipe, Err: ErrNoRecipe}
	}
	if err := checkGenerated(out); err != nil {
		if rerr := out.Release(); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return nil, &OperationError{Op: OpGenerateRecipe, Err: err}
	}
	return out, nil
}

func checkGenerated(out *recipe.Generated) error {
	r := out.Intermediate()
	if r == nil {
		return ErrNoIntermediate
	}
	if len(r.Sources()) == 0 {
		return ErrNoSources
	}
	return nil
}

// ExtractInputGlobs asks the generator for additional input globs.
func (h *Handle) ExtractInputGlobs(ctx context.Context, req GlobsRequest) (InputGlobs, error) {
	if h.released {
		return NoAdditionalGlobs(), ErrHandleReleased
	}
	globs, err := h.gen.ExtractInputGlobs(ctx, req)
	if err != nil {
		return NoAdditionalGlobs(), &OperationError{Op: OpExtractInputGlobs, Err: err}
	}
	return globs, nil
}

// DefaultVariants asks the generator for default variants.
func (h *Handle) DefaultVariants(ctx context.Context, hostPlatform string) (VariantDefaults, error) {
	if h.released {
		return NoVariantDefaults(), ErrHandleReleased
	}
	v, err := h.gen.DefaultVariants(ctx, hostPlatform)
	if err != nil {
		return NoVariantDefaults(), &OperationError{Op: OpDefaultVariants, Err: err}
	}
	return v, nil
}

// Release releases the generator. Only the first call reaches it.
func (h *Handle) Release() error {
	if h.released {
		return ErrHandleReleased
	}
	h.released = true
	if err := h.gen.Release(); err != nil {
		return fmt.Errorf("release %s generator: %w", h.meta.Name, err)
	}
	return nil
}
