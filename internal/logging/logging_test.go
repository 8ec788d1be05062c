// SPDX-License-Identifier: MIT

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remimimimimi/pixi-build-backends/internal/config"
)

func TestAppendFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend.log")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0o644))

	w := &AppendFile{Path: path}
	n, err := w.Write([]byte("one\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	_, _ = w.Write([]byte("two\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing\none\ntwo\n", string(data))
}

func TestAppendFileSwallowsErrors(t *testing.T) {
	w := &AppendFile{Path: filepath.Join(t.TempDir(), "missing", "dir", "backend.log")}
	n, err := w.Write([]byte("lost\n"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestNewWritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend.log")
	logger := New(config.Settings{LogFile: path, LogLevel: "info"}, "autotools")

	logger.Info("generate_recipe", "manifest_path", "pixi.toml", "source_dir", ".")
	logger.Debug("hidden")
	logger.Info("generate_recipe completed successfully")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "autotools")
	assert.Contains(t, lines[0], "source_dir=.")
	assert.Contains(t, lines[1], "completed successfully")
	assert.NotContains(t, string(data), "hidden")
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestNewDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend.log")
	logger := New(config.Settings{LogFile: path, LogLevel: "debug", LogDisabled: true}, "autotools")
	logger.Error("dropped")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "disabled logger created %s", path)
}

func TestNewWriterLevel(t *testing.T) {
	var sb strings.Builder
	logger := NewWriter(&sb, log.WarnLevel, "")
	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, sb.String(), "quiet")
	assert.Contains(t, sb.String(), "loud")
}
