// SPDX-License-Identifier: MIT

// Package recipetest provides an allocator that counts live recipes and can
// fail on demand.
package recipetest

import (
	"errors"
	"sync"

	"github.com/remimimimimi/pixi-build-backends/recipe"
)

// ErrInjected is returned by an [Allocator] when a configured failure fires.
var ErrInjected = errors.New("recipetest: injected allocation failure")

// Allocator implements recipe.Allocator and tracks every value it hands out.
//
// FailIntermediateAt and FailGeneratedAt are 1-based call indices; the call
// with that index fails. Zero means never fail.
type Allocator struct {
	FailIntermediateAt int
	FailGeneratedAt    int

	mu            sync.Mutex
	intermediates int
	generated     int
	allocated     int
	freed         int
}

var _ recipe.Allocator = (*Allocator)(nil)

// NewIntermediate implements recipe.Allocator.
func (a *Allocator) NewIntermediate() (*recipe.Intermediate, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.intermediates++
	if a.intermediates == a.FailIntermediateAt {
		return nil, ErrInjected
	}
	a.allocated++
	return recipe.NewIntermediate(recipe.WithReleaseHook(a.release)), nil
}

// NewGenerated implements recipe.Allocator.
func (a *Allocator) NewGenerated() (*recipe.Generated, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generated++
	if a.generated == a.FailGeneratedAt {
		return nil, ErrInjected
	}
	a.allocated++
	return recipe.NewGenerated(recipe.WithReleaseHook(a.release)), nil
}

func (a *Allocator) release() {
	a.mu.Lock()
	a.freed++
	a.mu.Unlock()
}

// Live returns the number of values allocated but not yet freed.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated - a.freed
}

// Allocated returns the number of successful allocations.
func (a *Allocator) Allocated() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated
}

// Released returns the number of values freed.
func (a *Allocator) Released() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.freed
}

// Calls returns how many times each constructor was called, including
// calls that failed.
func (a *Allocator) Calls() (intermediates, generated int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.intermediates, a.generated
}
