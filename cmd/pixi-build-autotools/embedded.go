// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"github.com/remimimimimi/pixi-build-backends/generator"
	"github.com/remimimimimi/pixi-build-backends/generators/autotools"
)

// backend is the generator this executable serves.
const backend = autotools.Name

func init() {
	generator.Register(autotools.Name, autotools.Factory)
}
