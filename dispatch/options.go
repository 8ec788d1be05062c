// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package dispatch

import (
	"io"
	"os"

	"github.com/remimimimimi/pixi-build-backends/generator"
	"github.com/remimimimimi/pixi-build-backends/internal/config"
)

// Option configures Run and Main.
type Option func(*options)

type options struct {
	stdout       io.Writer
	stderr       io.Writer
	stdin        io.Reader
	logger       generator.Logger
	manifestPath string
	hostPlatform string
	build        BuildInfo
}

// BuildInfo identifies the executable build.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func newOptions(opts []Option) *options {
	o := &options{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		stdin:        os.Stdin,
		manifestPath: config.DefaultManifest,
		build:        BuildInfo{Version: "dev", Commit: "unknown", Date: "unknown"},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStdout sets where command output is written.
func WithStdout(w io.Writer) Option {
	return func(o *options) { o.stdout = w }
}

// WithStderr sets where human-readable errors are written.
func WithStderr(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}

// WithStdin sets where "-" payloads are read from.
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithLogger sets the diagnostic logger. Main builds one from the runtime
// settings when none is given.
func WithLogger(l generator.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithManifestPath sets the default of --manifest-path.
func WithManifestPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.manifestPath = path
		}
	}
}

// WithHostPlatform sets the default of --host-platform.
func WithHostPlatform(platform string) Option {
	return func(o *options) { o.hostPlatform = platform }
}

// WithBuildInfo sets what the version subcommand reports.
func WithBuildInfo(info BuildInfo) Option {
	return func(o *options) { o.build = info }
}
