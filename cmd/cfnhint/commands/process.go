package commands

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/cfn-hint/cmd/cfnhint/opts"
	"github.com/walteh/cfn-hint/pkg/operation"
	"github.com/walteh/cfn-hint/pkg/source"
	"github.com/walteh/cfn-hint/pkg/status"
)

// Process resolves the configured inputs, runs them and prints the summary.
// It returns the exit code for the run.
func Process(ctx context.Context, o *opts.RootOpts) status.Code {
	logger := zerolog.Ctx(ctx)

	var sources []source.Source
	if o.Stdin {
		logger.Info().Msg("reading from stdin")
		sources = []source.Source{source.NewStdin(o.In)}
	} else {
		resolved, err := o.Resolver.Resolve(ctx, o.Config.Inputs)
		if err != nil {
			logger.Error().Err(err).Msg("resolving inputs")
			return status.CodeGeneralFailure
		}
		sources = resolved
	}

	runner := operation.NewRunner(operation.Options{
		OutputDir:   o.Config.OutputDir,
		Diff:        o.Config.Diff,
		Concurrency: o.Config.Concurrency,
		Console:     o.Console,
	})

	report := runner.Run(ctx, sources)

	// stdout carries the document in stdin mode
	if !o.Stdin {
		o.UserLogger.LogSummary(report)
	}

	return report.Code()
}
