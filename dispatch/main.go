// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/remimimimimi/pixi-build-backends/generator"
	"github.com/remimimimimi/pixi-build-backends/internal/config"
	"github.com/remimimimimi/pixi-build-backends/internal/logging"
)

// Exit codes returned by Main.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Main runs backend name built by factory with the process arguments and
// returns the exit code. The generator is released exactly once, whether
// construction, dispatch, or nothing fails.
func Main(name string, factory generator.Factory, args []string, opts ...Option) int {
	args = programArgs(args)
	o := newOptions(opts)

	settings, cfgErr := config.Load(name)
	if cfgErr != nil {
		fmt.Fprintf(o.stderr, "%s: using default settings: %v\n", name, cfgErr)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.New(settings, name)
	}
	logger.Info(filepath.Base(args[0])+" backend starting", "argc", len(args))

	fail := func(err error) int {
		fmt.Fprintf(o.stderr, "%s backend failed: %v\n", name, err)
		logger.Error("dispatch returned error", "err", err)
		return ExitFailure
	}

	g, err := factory(logger)
	if err != nil {
		return fail(fmt.Errorf("%s: failed to allocate generator state: %w", name, err))
	}
	h, err := generator.NewHandle(g)
	if err != nil {
		return fail(fmt.Errorf("%s: failed to create generator handle: %w", name, err))
	}
	defer func() {
		if err := h.Release(); err != nil {
			logger.Warn("release generator", "err", err)
		}
	}()

	runOpts := append([]Option{WithManifestPath(settings.ManifestPath)}, opts...)
	runOpts = append(runOpts, WithLogger(logger))
	if err := Run(context.Background(), h, args, runOpts...); err != nil {
		return fail(err)
	}
	logger.Info("dispatch exited normally")
	return ExitOK
}
