// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package autotools

import (
	"strconv"
	"strings"
)

// BuildSteps returns the build script as individual shell commands:
// configure into $PREFIX, build with the requested job count, install.
func BuildSteps() []string {
	return []string{
		`./configure --prefix="$PREFIX"`,
		`make -j"${` + ParallelJobsEnv + `:-` + strconv.Itoa(DefaultParallelJobs) + `}"`,
		`make install`,
	}
}

// Script returns the build script as newline-terminated text.
func Script() string {
	return strings.Join(BuildSteps(), "\n") + "\n"
}
