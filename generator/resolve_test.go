// SPDX-License-Identifier: MIT

package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestResolveSourceDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll(filepath.Join("somedir", "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", "."},
		{"bare file", "manifest.toml", "."},
		{"dot slash file", "./pixi.toml", "."},
		{"nested file", "./a/b/manifest.toml", "a/b"},
		{"repeated dot slash", "././a/pixi.toml", "a"},
		{"existing dir with slash", "somedir/", "somedir/"},
		{"existing dir", "somedir", "somedir"},
		{"existing nested dir", "./somedir/nested", "somedir/nested"},
		{"missing dir", "missing/", "missing"},
		{"root file", "/pixi.toml", "."},
		{"absolute file", "/no/such/dir/pixi.toml", "/no/such/dir"},
		{"absolute existing dir", dir, dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSourceDir(tt.path)
			if err != nil {
				t.Fatalf("ResolveSourceDir(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ResolveSourceDir(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveSourceDirNUL(t *testing.T) {
	_, err := ResolveSourceDir("pixi\x00.toml")
	if !errors.Is(err, ErrInvalidManifestPath) {
		t.Errorf("ResolveSourceDir(NUL) error = %v, want %v", err, ErrInvalidManifestPath)
	}
}

func TestResolveSourceDirProperties(t *testing.T) {
	t.Chdir(t.TempDir())
	segment := rapid.StringMatching(`[a-z]{1,6}`)

	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(segment, 0, 5).Draw(t, "parts")
		dots := rapid.IntRange(0, 3).Draw(t, "dots")
		file := rapid.SampledFrom([]string{"pixi.toml", "manifest.toml", ""}).Draw(t, "file")
		path := strings.Repeat("./", dots) + strings.Join(append(parts, file), "/")

		first, err := ResolveSourceDir(path)
		if err != nil {
			t.Fatalf("ResolveSourceDir(%q) error = %v", path, err)
		}
		second, _ := ResolveSourceDir(path)
		if first != second {
			t.Fatalf("ResolveSourceDir(%q) not deterministic: %q vs %q", path, first, second)
		}
		if first == "" {
			t.Fatalf("ResolveSourceDir(%q) returned empty string", path)
		}
		stripped := strings.TrimLeft(path, "./")
		if first != "." && !strings.HasPrefix(stripped, first) {
			t.Fatalf("ResolveSourceDir(%q) = %q, not a prefix of %q", path, first, stripped)
		}
	})
}

func TestResolveSourceDirIdempotentOnDirs(t *testing.T) {
	root := t.TempDir()
	segment := rapid.StringMatching(`[a-z]{1,6}`)

	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(segment, 1, 4).Draw(t, "parts")
		dir := filepath.Join(append([]string{root}, parts...)...)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}

		first, err := ResolveSourceDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if first != dir {
			t.Fatalf("ResolveSourceDir(%q) = %q, want the directory itself", dir, first)
		}
		second, _ := ResolveSourceDir(first)
		if second != first {
			t.Fatalf("ResolveSourceDir not idempotent: %q then %q", first, second)
		}
	})
}
