// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "testing"

func mockFactory(name string) Factory {
	return func(Logger) (Generator, error) {
		return newMock(name), nil
	}
}

func TestRegistry(t *testing.T) {
	// Reset registry before and after test
	Reset()
	defer Reset()

	t.Run("Register and Get", func(t *testing.T) {
		Register("test", mockFactory("test"))

		f, ok := Get("test")
		if !ok {
			t.Fatal("expected to find registered generator")
		}
		g, err := f(nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := g.Metadata().Name; got != "test" {
			t.Errorf("got name %q, want %q", got, "test")
		}
	})

	t.Run("Get nonexistent", func(t *testing.T) {
		_, ok := Get("nonexistent")
		if ok {
			t.Error("expected not to find nonexistent generator")
		}
	})

	t.Run("List", func(t *testing.T) {
		Reset()
		Register("zebra", mockFactory("zebra"))
		Register("alpha", mockFactory("alpha"))

		names := List()
		if len(names) != 2 {
			t.Fatalf("got %d generators, want 2", len(names))
		}
		// Should be sorted
		if names[0] != "alpha" || names[1] != "zebra" {
			t.Errorf("got %v, want [alpha zebra]", names)
		}
	})

	t.Run("Duplicate panics", func(t *testing.T) {
		Reset()
		Register("dup", mockFactory("dup"))

		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic on duplicate registration")
			}
		}()
		Register("dup", mockFactory("dup"))
	})

	t.Run("Nil factory panics", func(t *testing.T) {
		Reset()
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic on nil factory")
			}
		}()
		Register("nil", nil)
	})
}
