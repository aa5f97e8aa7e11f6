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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/cfn-hint/pkg/document"
	"github.com/walteh/cfn-hint/pkg/log"
	"github.com/walteh/cfn-hint/pkg/source"
	"github.com/walteh/cfn-hint/pkg/status"
)

// 🏃 Runner processes documents
type Runner struct {
	opts    Options
	console *log.Console
	process func(ctx context.Context, content string) *document.Result
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) *Runner {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	console := opts.Console
	if console == nil {
		console = log.New(nil)
	}
	return &Runner{
		opts:    opts,
		console: console,
		process: document.Process,
	}
}

// 🏃 Run processes every source and reports what happened to each one.
// Per document failures are recorded, never returned.
func (r *Runner) Run(ctx context.Context, sources []source.Source) *status.Report {
	logger := zerolog.Ctx(ctx)
	report := status.NewReport()

	if len(sources) == 0 {
		logger.Error().Msg("no input documents were found matching the provided inputs")
		report.Fail(status.CodeNoInput)
		return report
	}

	logger.Debug().
		Stringer("mode", r.opts.Mode()).
		Int("documents", len(sources)).
		Int("concurrency", r.opts.Concurrency).
		Msg("starting run")

	if r.opts.OutputDir != "" && hasFiles(sources) {
		if err := EnsureOutputDir(r.opts.OutputDir); err != nil {
			logger.Error().Err(err).Str("output_dir", r.opts.OutputDir).Msg("could not create output directory")
			report.Fail(status.CodeWriteFailure)
			return report
		}
		logger.Info().Str("output_dir", r.opts.OutputDir).Msg("output directory set")
	}

	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)

	for _, src := range sources {
		g.Go(func() error {
			report.Record(r.runOne(ctx, src))
			return nil
		})
	}

	// workers never return errors
	_ = g.Wait()

	return report
}

func hasFiles(sources []source.Source) bool {
	for _, s := range sources {
		if !s.Stream() {
			return true
		}
	}
	return false
}
