// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package logging builds the diagnostic logger handed to generators.
//
// Diagnostics go to an append-only file so they never mix with the
// machine-readable output on stdout. Logging is best effort: write
// failures are dropped and never change the outcome of an operation.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/remimimimimi/pixi-build-backends/internal/config"
)

// AppendFile is an io.Writer that appends each write to the file at Path.
// The file is opened and closed on every write, so records survive a crash
// and concurrent processes can share the file.
type AppendFile struct {
	Path string

	mu sync.Mutex
}

// Write appends p to the file. It always reports success.
func (a *AppendFile) Write(p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return len(p), nil
	}
	_, _ = f.Write(p)
	_ = f.Close()
	return len(p), nil
}

// New returns a logger for settings. When logging is disabled the logger
// discards everything.
func New(s config.Settings, prefix string) *log.Logger {
	if s.LogDisabled {
		return Discard()
	}
	return NewWriter(&AppendFile{Path: s.LogFile}, s.Level(), prefix)
}

// NewWriter returns a logger writing newline-terminated records to w.
func NewWriter(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
