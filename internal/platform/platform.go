// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package platform maps Go target names to conda platform identifiers.
package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// Unknown is returned for targets conda has no platform name for.
const Unknown = "unknown"

var linuxArch = map[string]string{
	"amd64":   "64",
	"386":     "32",
	"arm64":   "aarch64",
	"arm":     "armv7l",
	"ppc64le": "ppc64le",
	"ppc64":   "ppc64",
	"s390x":   "s390x",
	"riscv64": "riscv64",
	"loong64": "loong64",
}

var windowsArch = map[string]string{
	"amd64": "64",
	"386":   "32",
	"arm64": "arm64",
}

var darwinArch = map[string]string{
	"amd64": "64",
	"arm64": "arm64",
}

// Current returns the conda platform of the running process
// (e.g., "linux-64", "osx-arm64").
func Current() string {
	return For(runtime.GOOS, runtime.GOARCH)
}

// For returns the conda platform for a GOOS/GOARCH pair, or Unknown.
func For(goos, goarch string) string {
	var (
		prefix string
		arches map[string]string
	)
	switch goos {
	case Linux:
		prefix, arches = "linux", linuxArch
	case Darwin:
		prefix, arches = "osx", darwinArch
	case Windows:
		prefix, arches = "win", windowsArch
	default:
		return Unknown
	}
	arch, ok := arches[goarch]
	if !ok {
		return Unknown
	}
	return prefix + "-" + arch
}
