// SPDX-License-Identifier: MIT

// Package testutil provides testing utilities for pixi build backends.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Case represents a parsed test case from a txtar archive.
type Case struct {
	// Name is the test case name (typically the filename without extension).
	Name string

	// Description is the first comment block before any files.
	Description string

	// Args contains the command line parsed from the "Args: ..." line in the
	// description, without the program name.
	Args []string

	// Env contains KEY=VALUE pairs from the "Env: ..." line.
	Env []string

	// Exit is the expected exit code from the "Exit: N" line (default 0).
	Exit int

	// Files maps relative paths under "input/" to content. They are written
	// into the working directory before the case runs.
	Files map[string][]byte

	// Want maps output names (e.g., "stdout") to expected content.
	Want map[string][]byte
}

// ParseCase parses a txtar archive into a test Case.
// The archive should contain:
//   - A description comment (text before first file)
//   - Zero or more "input/<path>" files
//   - One or more "want/<name>" files with expected output
//
// The description must contain an "Args: a b c" line and may contain
// "Env: K=V ..." and "Exit: N" lines.
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
		Files:       make(map[string][]byte),
		Want:        make(map[string][]byte),
	}

	hasArgs, err := c.parseHeader()
	if err != nil {
		return nil, err
	}
	if !hasArgs {
		return nil, fmt.Errorf("missing Args: line in description")
	}

	for _, f := range ar.Files {
		switch {
		case strings.HasPrefix(f.Name, "input/"):
			c.Files[strings.TrimPrefix(f.Name, "input/")] = f.Data
		case strings.HasPrefix(f.Name, "want/"):
			c.Want[strings.TrimPrefix(f.Name, "want/")] = f.Data
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected input/* or want/*)", f.Name)
		}
	}

	if len(c.Want) == 0 {
		return nil, fmt.Errorf("missing want/* files in archive")
	}

	return c, nil
}

// parseHeader extracts "Args:", "Env:" and "Exit:" lines from the description.
func (c *Case) parseHeader() (hasArgs bool, err error) {
	for _, line := range strings.Split(c.Description, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Args:"):
			c.Args = strings.Fields(strings.TrimPrefix(line, "Args:"))
			hasArgs = true
		case strings.HasPrefix(line, "Env:"):
			for _, kv := range strings.Fields(strings.TrimPrefix(line, "Env:")) {
				if !strings.Contains(kv, "=") {
					return false, fmt.Errorf("bad Env: entry %q (want KEY=VALUE)", kv)
				}
				c.Env = append(c.Env, kv)
			}
		case strings.HasPrefix(line, "Exit:"):
			c.Exit, err = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Exit:")))
			if err != nil {
				return false, fmt.Errorf("bad Exit: line: %w", err)
			}
		}
	}
	return hasArgs, nil
}

// RunFunc runs the command under test in dir with args and env and returns
// its outputs by name plus the exit code.
type RunFunc func(t *testing.T, dir string, args, env []string) (map[string][]byte, int)

// Run executes the test case using the provided run function.
// Input files are written to a fresh directory first. Only outputs named in
// the archive are compared.
func (c *Case) Run(t *testing.T, run RunFunc) map[string][]byte {
	t.Helper()

	dir := t.TempDir()
	for name, data := range c.Files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, code := run(t, dir, c.Args, c.Env)
	if code != c.Exit {
		t.Errorf("exit code = %d, want %d\nstderr:\n%s", code, c.Exit, got["stderr"])
	}

	for wantFile, wantContent := range c.Want {
		gotContent, ok := got[wantFile]
		if !ok {
			t.Errorf("missing output: %q", wantFile)
			continue
		}

		// Normalize line endings and trailing whitespace
		wantNorm := normalizeContent(wantContent)
		gotNorm := normalizeContent(gotContent)

		if diff := cmp.Diff(wantNorm, gotNorm); diff != "" {
			t.Errorf("output %q mismatch (-want +got):\n%s", wantFile, diff)
		}
	}
	return got
}

// normalizeContent normalizes content for comparison:
// - Trims trailing whitespace from each line
// - Ensures consistent line endings
// - Trims trailing newlines
func normalizeContent(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	result := strings.Join(lines, "\n")
	return strings.TrimRight(result, "\n")
}

// UpdateArchive updates a txtar archive with new outputs for the names the
// archive already expects. Used for golden file updates with -update flag.
func UpdateArchive(ar *txtar.Archive, got map[string][]byte) *txtar.Archive {
	result := &txtar.Archive{
		Comment: ar.Comment,
	}

	var wantFiles []string
	for _, f := range ar.Files {
		if strings.HasPrefix(f.Name, "input/") {
			result.Files = append(result.Files, f)
			continue
		}
		wantFiles = append(wantFiles, strings.TrimPrefix(f.Name, "want/"))
	}
	sort.Strings(wantFiles)

	for _, name := range wantFiles {
		content := got[name]
		// Ensure trailing newline
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
		result.Files = append(result.Files, txtar.File{
			Name: "want/" + name,
			Data: content,
		})
	}

	return result
}

// FormatArchive formats an archive to bytes.
func FormatArchive(ar *txtar.Archive) []byte {
	return txtar.Format(ar)
}

// LoadTestCases loads all txtar test cases from a directory.
func LoadTestCases(t *testing.T, dir string) []*Case {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}

	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}

		cases = append(cases, c)
	}

	// Sort by name for determinism
	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases
}
