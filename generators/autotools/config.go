// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package autotools

const (
	// Name identifies the generator and prefixes its error messages.
	Name = "autotools"

	// Version is the generator version.
	Version = "0.1.0"

	// ParallelJobsEnv is read by the build script at build time to pick the
	// make job count.
	ParallelJobsEnv = "PBB_PARALLEL_BUILD_JOBS"

	// DefaultParallelJobs is used when ParallelJobsEnv is unset.
	DefaultParallelJobs = 1

	// BuildGlob matches every file under the source directory.
	BuildGlob = "**"

	// ManifestGlob matches the project manifest.
	ManifestGlob = "pixi.toml"
)

// Error messages.
const (
	msgAllocIntermediate = "failed to allocate intermediate recipe"
	msgResolveSource     = "failed to determine source directory"
	msgAllocGenerated    = "failed to allocate generated recipe"
)
