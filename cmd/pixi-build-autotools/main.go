// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command pixi-build-autotools is the pixi build backend for GNU autotools
// projects.
//
// Usage:
//
//	pixi-build-autotools <command> [flags]
//
// Commands:
//
//	generate-recipe       Print the build recipe for a package
//	extract-input-globs   Print additional rebuild globs (always null)
//	default-variants      Print default variants (always null)
//	capabilities          Print the backend name and operations
//	version               Show version information
//
// Environment:
//
//	PIXI_PROJECT_MANIFEST  Default for --manifest-path
//	PBB_LOG_FILE           Diagnostic log path (default: $TMPDIR/autotools-backend.log)
//	PBB_LOG_LEVEL          debug, info, warn, or error
//	PBB_LOG_DISABLED       Disable the diagnostic log
//	PBB_CONFIG             Settings file (YAML, TOML, or JSON)
package main

import (
	"fmt"
	"os"

	"github.com/remimimimimi/pixi-build-backends/dispatch"
	"github.com/remimimimimi/pixi-build-backends/generator"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	factory, ok := generator.Get(backend)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: no generator registered as %q\n", backend)
		os.Exit(dispatch.ExitFailure)
	}
	os.Exit(dispatch.Main(backend, factory, os.Args,
		dispatch.WithBuildInfo(dispatch.BuildInfo{Version: version, Commit: commit, Date: date}),
	))
}
