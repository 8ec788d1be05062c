// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package dispatch turns command lines from the build host into calls on a
// generator handle.
//
// [Run] is the only code that invokes handle operations. [Main] is the
// process entry point shared by every backend executable: it builds the
// generator, wraps it in a handle, runs the dispatcher, and releases the
// handle before returning the exit code.
package dispatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/remimimimimi/pixi-build-backends/generator"
	"github.com/remimimimimi/pixi-build-backends/internal/logging"
	"github.com/remimimimimi/pixi-build-backends/internal/manifest"
	"github.com/remimimimimi/pixi-build-backends/internal/platform"
)

// DefaultProgramName is used when argv is empty.
const DefaultProgramName = "pixi-build-backend"

// Defaults for payload flags that were not given.
const (
	defaultConfig   = "{}"
	defaultVariants = "[]"
)

// Run parses args (argv including the program name) and performs the
// requested operation on h. It does not release h.
func Run(ctx context.Context, h *generator.Handle, args []string, opts ...Option) error {
	o := newOptions(opts)
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	args = programArgs(args)

	root := newRootCmd(h, o, filepath.Base(args[0]))
	root.SetArgs(args[1:])
	root.SetOut(o.stdout)
	root.SetErr(o.stderr)
	root.SetIn(o.stdin)
	return root.ExecuteContext(ctx)
}

// programArgs returns args, or just the default program name when empty.
func programArgs(args []string) []string {
	if len(args) == 0 {
		return []string{DefaultProgramName}
	}
	return args
}

func newRootCmd(h *generator.Handle, o *options, prog string) *cobra.Command {
	meta := h.Metadata()
	root := &cobra.Command{
		Use:           prog,
		Short:         fmt.Sprintf("%s - pixi build backend for %s projects", prog, meta.Name),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newGenerateRecipeCmd(h, o),
		newExtractInputGlobsCmd(h, o),
		newDefaultVariantsCmd(h, o),
		newCapabilitiesCmd(h),
		newVersionCmd(o, prog),
	)
	return root
}

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", string(FormatJSON), "output format (json, yaml)")
}

func newGenerateRecipeCmd(h *generator.Handle, o *options) *cobra.Command {
	var (
		manifestPath string
		projectModel string
		cfg          string
		hostPlatform string
		editable     bool
		variants     string
		format       string
	)
	cmd := &cobra.Command{
		Use:   "generate-recipe",
		Short: "Generate the build recipe for a package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := ParseFormat(format)
			if err != nil {
				return err
			}
			payloads := &payloadReader{stdin: cmd.InOrStdin()}

			req := generator.RecipeRequest{
				ManifestPath: manifestPath,
				HostPlatform: hostPlatform,
				Editable:     editable,
			}
			if projectModel != "" {
				req.ProjectModel, err = payloads.read("project-model", projectModel, "")
			} else {
				req.ProjectModel = projectModelFromManifest(o.logger, manifestPath)
			}
			if err != nil {
				return err
			}
			if req.Config, err = payloads.read("config", cfg, defaultConfig); err != nil {
				return err
			}
			if req.Variants, err = payloads.read("variants", variants, defaultVariants); err != nil {
				return err
			}

			out, err := h.GenerateRecipe(cmd.Context(), req)
			if err != nil {
				return err
			}
			defer func() {
				if err := out.Release(); err != nil {
					o.logger.Warn("release generated recipe", "err", err)
				}
			}()
			return write(cmd.OutOrStdout(), f, out)
		},
	}
	hostDefault := o.hostPlatform
	if hostDefault == "" {
		hostDefault = platform.Current()
	}
	cmd.Flags().StringVar(&manifestPath, "manifest-path", o.manifestPath, "path to the project manifest")
	cmd.Flags().StringVar(&projectModel, "project-model", "", "project model payload file, or - for stdin (default: read from the manifest)")
	cmd.Flags().StringVar(&cfg, "config", "", "backend configuration payload file, or - for stdin")
	cmd.Flags().StringVar(&hostPlatform, "host-platform", hostDefault, "conda platform of the build host")
	cmd.Flags().BoolVar(&editable, "editable", false, "request an editable install")
	cmd.Flags().StringVar(&variants, "variants", "", "variant keys payload file, or - for stdin")
	addFormatFlag(cmd, &format)
	return cmd
}

// projectModelFromManifest reads the project model from the manifest. The
// generator treats the model as opaque, so failures are logged and an empty
// object is used.
func projectModelFromManifest(logger generator.Logger, path string) string {
	m, err := manifest.Load(path)
	if err != nil {
		logger.Warn("no project model from manifest", "manifest_path", path, "err", err)
		return defaultConfig
	}
	data, err := m.ProjectModelJSON()
	if err != nil {
		logger.Warn("no project model from manifest", "manifest_path", path, "err", err)
		return defaultConfig
	}
	return string(data)
}

func newExtractInputGlobsCmd(h *generator.Handle, o *options) *cobra.Command {
	var (
		cfg      string
		workDir  string
		editable bool
		format   string
	)
	cmd := &cobra.Command{
		Use:   "extract-input-globs",
		Short: "Print globs beyond the defaults that trigger a rebuild",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := ParseFormat(format)
			if err != nil {
				return err
			}
			payloads := &payloadReader{stdin: cmd.InOrStdin()}
			req := generator.GlobsRequest{WorkDir: workDir, Editable: editable}
			if req.Config, err = payloads.read("config", cfg, defaultConfig); err != nil {
				return err
			}

			globs, err := h.ExtractInputGlobs(cmd.Context(), req)
			if err != nil {
				return err
			}
			o.logger.Debug("extract_input_globs", "provided", globs.Provided())
			return write(cmd.OutOrStdout(), f, globs)
		},
	}
	cmd.Flags().StringVar(&cfg, "config", "", "backend configuration payload file, or - for stdin")
	cmd.Flags().StringVar(&workDir, "work-directory", ".", "working directory of the build")
	cmd.Flags().BoolVar(&editable, "editable", false, "request an editable install")
	addFormatFlag(cmd, &format)
	return cmd
}

func newDefaultVariantsCmd(h *generator.Handle, o *options) *cobra.Command {
	var (
		hostPlatform string
		format       string
	)
	cmd := &cobra.Command{
		Use:   "default-variants",
		Short: "Print the default build variants for a host platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := ParseFormat(format)
			if err != nil {
				return err
			}
			v, err := h.DefaultVariants(cmd.Context(), hostPlatform)
			if err != nil {
				return err
			}
			o.logger.Debug("default_variants", "host_platform", hostPlatform, "provided", v.Provided())
			return write(cmd.OutOrStdout(), f, v)
		},
	}
	hostDefault := o.hostPlatform
	if hostDefault == "" {
		hostDefault = platform.Current()
	}
	cmd.Flags().StringVar(&hostPlatform, "host-platform", hostDefault, "conda platform of the build host")
	addFormatFlag(cmd, &format)
	return cmd
}

// Capabilities describes a backend to the host.
type Capabilities struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Operations  []string `json:"operations" yaml:"operations"`
}

func newCapabilitiesCmd(h *generator.Handle) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "Print the backend name, version, and supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := ParseFormat(format)
			if err != nil {
				return err
			}
			meta := h.Metadata()
			return write(cmd.OutOrStdout(), f, Capabilities{
				Name:        meta.Name,
				Version:     meta.Version,
				Description: meta.Description,
				Operations: []string{
					generator.OpGenerateRecipe,
					generator.OpExtractInputGlobs,
					generator.OpDefaultVariants,
				},
			})
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newVersionCmd(o *options, prog string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit: %s, built: %s)\n", prog, o.build.Version, o.build.Commit, o.build.Date)
		},
	}
}
