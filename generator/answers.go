// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"encoding/json"
	"maps"
	"slices"
)

// InputGlobs is the answer to ExtractInputGlobs. The zero value declines.
type InputGlobs struct {
	globs    []string
	provided bool
}

// NoAdditionalGlobs declines: the defaults already cover every input.
func NoAdditionalGlobs() InputGlobs {
	return InputGlobs{}
}

// ProvideGlobs answers with an explicit glob list. An empty list is still an
// answer and differs from NoAdditionalGlobs.
func ProvideGlobs(globs ...string) InputGlobs {
	return InputGlobs{globs: append([]string{}, globs...), provided: true}
}

// Provided reports whether the generator gave an answer.
func (a InputGlobs) Provided() bool { return a.provided }

// Globs returns a copy of the globs; nil when declined.
func (a InputGlobs) Globs() []string {
	if !a.provided {
		return nil
	}
	return append([]string{}, a.globs...)
}

// MarshalJSON encodes a declined answer as null.
func (a InputGlobs) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Globs())
}

// MarshalYAML implements yaml.Marshaler.
func (a InputGlobs) MarshalYAML() (any, error) {
	if !a.provided {
		return nil, nil
	}
	return a.Globs(), nil
}

// VariantDefaults is the answer to DefaultVariants. The zero value declines.
type VariantDefaults struct {
	values   map[string][]string
	provided bool
}

// NoVariantDefaults declines: the generator has no variant opinion.
func NoVariantDefaults() VariantDefaults {
	return VariantDefaults{}
}

// ProvideVariants answers with variant axes mapped to their default values.
func ProvideVariants(values map[string][]string) VariantDefaults {
	cp := make(map[string][]string, len(values))
	for k, v := range values {
		cp[k] = append([]string{}, v...)
	}
	return VariantDefaults{values: cp, provided: true}
}

// Provided reports whether the generator gave an answer.
func (v VariantDefaults) Provided() bool { return v.provided }

// Keys returns the variant keys, sorted.
func (v VariantDefaults) Keys() []string {
	return slices.Sorted(maps.Keys(v.values))
}

// Values returns the defaults for key.
func (v VariantDefaults) Values(key string) []string {
	return append([]string(nil), v.values[key]...)
}

// MarshalJSON encodes a declined answer as null.
func (v VariantDefaults) MarshalJSON() ([]byte, error) {
	if !v.provided {
		return []byte("null"), nil
	}
	return json.Marshal(v.values)
}

// MarshalYAML implements yaml.Marshaler.
func (v VariantDefaults) MarshalYAML() (any, error) {
	if !v.provided {
		return nil, nil
	}
	return v.values, nil
}
