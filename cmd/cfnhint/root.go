// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/cfn-hint/cmd/cfnhint/commands"
	"github.com/walteh/cfn-hint/cmd/cfnhint/opts"
	"github.com/walteh/cfn-hint/pkg/config"
	"github.com/walteh/cfn-hint/pkg/log"
	"github.com/walteh/cfn-hint/pkg/source"
	"github.com/walteh/cfn-hint/pkg/status"
)

// streams are the process's standard streams
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// rootFlags holds the values of the root command's flags
type rootFlags struct {
	inputs      []string
	stdin       bool
	outputDir   string
	logFile     string
	diff        bool
	quiet       bool
	debug       bool
	concurrency int
	configFile  string
}

// NewCommand creates the root command. The exit code of a processing run is
// stored in code.
func NewCommand(s streams, code *status.Code) *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "cfnhint [flags] [inputs...]",
		Short: "Apply cfn-hint replace directives to CloudFormation templates",
		Long: `cfnhint rewrites the line following every

  # cfn-hint: replace: <pattern> with: <replacement>

comment using a regular expression substitution. Inputs are files, glob
patterns (** is recursive), github:owner/repo/path@ref references, or a
single document on stdin ("-" or --stdin).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, stdin, err := f.resolveConfig(cmd, args)
			if err != nil {
				return err
			}

			logger, closeLog, err := setupLogging(cfg, s.err)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := logger.WithContext(cmd.Context())
			logger.Debug().Stringer("config", cfg).Bool("stdin", stdin).Msg("starting cfnhint")

			o, err := newRootOpts(ctx, cfg, stdin, s)
			if err != nil {
				return err
			}

			*code = commands.Process(ctx, o)
			return nil
		},
	}

	addRootFlags(cmd, f)
	cmd.AddCommand(commands.NewVersionCmd(FormatVersion))

	return cmd
}

// addRootFlags adds the root command's flags
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.inputs, "input", "i", nil, "input files, glob patterns or github: refs")
	flags.BoolVar(&f.stdin, "stdin", false, `read one document from stdin ("-" works too)`)
	flags.StringVarP(&f.outputDir, "output-dir", "o", "", "write modified files here instead of printing them")
	flags.StringVar(&f.logFile, "log", "", "log file path (JSON lines), stderr when unset")
	flags.BoolVar(&f.diff, "diff", false, "print a unified diff instead of the document")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "suppress logs and console output, exit code only")
	flags.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	flags.IntVarP(&f.concurrency, "concurrency", "j", config.DefaultConcurrency, "documents processed in parallel")
	flags.StringVarP(&f.configFile, "config", "c", "", "config file (.yaml, .yml, .json or .hcl)")

	cmd.MarkFlagsMutuallyExclusive("input", "stdin")
}

// resolveConfig merges the config file with flags set on the command line
func (f *rootFlags) resolveConfig(cmd *cobra.Command, args []string) (*config.Config, bool, error) {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.Load(cmd.Context(), f.configFile)
		if err != nil {
			return nil, false, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	stdin := f.stdin
	inputs := append([]string{}, f.inputs...)
	for _, arg := range args {
		if source.IsStdinArg(arg) {
			stdin = true
			continue
		}
		inputs = append(inputs, arg)
	}

	if stdin && len(inputs) > 0 {
		return nil, false, errors.New("stdin cannot be combined with input files")
	}
	if len(inputs) > 0 {
		cfg.Inputs = inputs
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if flags.Changed("log") {
		cfg.Log = f.logFile
	}
	if flags.Changed("diff") {
		cfg.Diff = f.diff
	}
	if flags.Changed("quiet") {
		cfg.Quiet = f.quiet
	}
	if flags.Changed("debug") {
		cfg.Debug = f.debug
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, errors.Errorf("validating flags: %w", err)
	}

	if !stdin && len(cfg.Inputs) == 0 {
		return nil, false, errors.New("no inputs given, pass --input, positional patterns, --stdin or a config file with inputs")
	}

	return cfg, stdin, nil
}

// newRootOpts creates the options shared by commands
func newRootOpts(ctx context.Context, cfg *config.Config, stdin bool, s streams) (*opts.RootOpts, error) {
	out, summary := s.out, s.err
	if cfg.Quiet {
		out, summary = nil, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}

	return &opts.RootOpts{
		Config:     cfg,
		Stdin:      stdin,
		In:         s.in,
		Console:    log.New(out),
		UserLogger: status.NewUserLogger(ctx, summary),
		Resolver:   source.NewResolver(wd),
	}, nil
}

// setupLogging builds the logger the flags ask for. The returned func closes
// the log file, if any.
func setupLogging(cfg *config.Config, stderr io.Writer) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	switch {
	case cfg.Quiet:
		return zerolog.Nop(), noop, nil
	case cfg.Log != "":
		fh, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), noop, errors.Errorf("opening log file: %w", err)
		}
		return zerolog.New(fh).Level(level).With().Timestamp().Logger(), fh.Close, nil
	default:
		w := zerolog.ConsoleWriter{Out: stderr, NoColor: color.NoColor, TimeFormat: time.TimeOnly}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), noop, nil
	}
}
