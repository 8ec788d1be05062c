// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"os"
	"strings"
)

// ResolveSourceDir returns the directory holding the package sources for
// manifestPath.
//
// Leading "./" segments are dropped. A path naming an existing directory is
// returned as is; otherwise the text before the last separator is used, or
// "." when there is none. The filesystem is only read, never written.
func ResolveSourceDir(manifestPath string) (string, error) {
	if strings.IndexByte(manifestPath, 0) >= 0 {
		return "", fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidManifestPath, manifestPath)
	}
	if manifestPath == "" {
		return ".", nil
	}

	p := manifestPath
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	if p == "" {
		return ".", nil
	}

	if fi, err := os.Stat(p); err == nil && fi.IsDir() {
		return p, nil
	}

	i := lastSeparator(p)
	if i <= 0 {
		return ".", nil
	}
	return p[:i], nil
}

func lastSeparator(p string) int {
	i := strings.LastIndexByte(p, '/')
	if os.PathSeparator != '/' {
		i = max(i, strings.LastIndexByte(p, os.PathSeparator))
	}
	return i
}
