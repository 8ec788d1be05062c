// SPDX-License-Identifier: MIT

package platform

import (
	"runtime"
	"testing"
)

func TestFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"linux", "amd64", "linux-64"},
		{"linux", "arm64", "linux-aarch64"},
		{"linux", "ppc64le", "linux-ppc64le"},
		{"linux", "arm", "linux-armv7l"},
		{"darwin", "amd64", "osx-64"},
		{"darwin", "arm64", "osx-arm64"},
		{"windows", "amd64", "win-64"},
		{"windows", "arm64", "win-arm64"},
		{"darwin", "386", Unknown},
		{"plan9", "amd64", Unknown},
		{"linux", "wasm", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			if got := For(tt.goos, tt.goarch); got != tt.want {
				t.Errorf("For(%q, %q) = %q, want %q", tt.goos, tt.goarch, got, tt.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	if got, want := Current(), For(runtime.GOOS, runtime.GOARCH); got != want {
		t.Errorf("Current() = %q, want %q", got, want)
	}
}
