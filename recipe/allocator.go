// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package recipe

// Allocator creates recipes and envelopes. Generators allocate through an
// Allocator so tests can inject failures and count live values.
//
// A nil result with a nil error is never returned.
type Allocator interface {
	NewIntermediate() (*Intermediate, error)
	NewGenerated() (*Generated, error)
}

// Heap is the default Allocator. It never fails.
var Heap Allocator = heap{}

type heap struct{}

func (heap) NewIntermediate() (*Intermediate, error) { return NewIntermediate(), nil }
func (heap) NewGenerated() (*Generated, error)       { return NewGenerated(), nil }

// Option configures a newly allocated recipe or envelope.
type Option func(*options)

type options struct {
	onRelease func()
}

// WithReleaseHook registers fn to run once when the value is freed.
func WithReleaseHook(fn func()) Option {
	return func(o *options) {
		o.onRelease = fn
	}
}
