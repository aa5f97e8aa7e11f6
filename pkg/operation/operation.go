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
	"fmt"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/cfn-hint/pkg/diff"
	"github.com/walteh/cfn-hint/pkg/document"
	"github.com/walteh/cfn-hint/pkg/log"
	"github.com/walteh/cfn-hint/pkg/source"
	"github.com/walteh/cfn-hint/pkg/status"
)

// 🎛️ Mode is how a changed document is emitted
type Mode int

const (
	ModePrint Mode = iota // Print the rewritten document
	ModeDiff              // Print a unified diff
	ModeWrite             // Write into the output directory
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeDiff:
		return "diff"
	case ModeWrite:
		return "write"
	default:
		return "print"
	}
}

// 🔧 Options contains configuration for the runner
type Options struct {
	// OutputDir receives rewritten documents
	OutputDir string
	// Diff prints a unified diff instead of the document
	Diff bool
	// Concurrency bounds how many documents are processed at once
	Concurrency int
	// Console receives documents and diffs, discarded when nil
	Console *log.Console
}

// Mode returns the output mode the options select
func (o Options) Mode() Mode {
	switch {
	case o.Diff:
		return ModeDiff
	case o.OutputDir != "":
		return ModeWrite
	default:
		return ModePrint
	}
}

// 💥 InternalError is a panic recovered while processing a document
type InternalError struct {
	Document string
	Value    any
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error while processing %s: %v", e.Document, e.Value)
}

// 📄 runOne takes one document from read to output
func (r *Runner) runOne(ctx context.Context, src source.Source) status.Outcome {
	// LogEvents adds the document field itself
	eventCtx := ctx
	logger := zerolog.Ctx(ctx).With().Str("document", src.Name()).Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().Msg("processing document")

	original, err := src.Read(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("error reading document")
		return status.Outcome{Document: src.Name(), Status: status.StatusReadFailed, Err: err}
	}

	res, err := r.safeProcess(ctx, src.Name(), original)
	if err != nil {
		return status.Outcome{Document: src.Name(), Status: status.StatusInternalFailed, Err: err}
	}

	document.LogEvents(eventCtx, src.Name(), res.Events)

	out := status.Outcome{
		Document: src.Name(),
		Status:   status.StatusUnchanged,
		Applied:  res.Applied,
		Problems: res.Failures(),
	}
	changed := res.Content != original
	if changed {
		out.Status = status.StatusModified
	}

	if src.Stream() {
		r.emitStream(original, res.Content)
		return out
	}

	if !changed {
		logger.Info().Msg("no changes made")
		return out
	}

	switch r.opts.Mode() {
	case ModeDiff:
		r.console.PrintDiff(diff.Unified(original, res.Content, src.Name()))
	case ModeWrite:
		dest := filepath.Join(r.opts.OutputDir, src.BaseName())
		if err := WriteFileAtomic(ctx, dest, []byte(res.Content)); err != nil {
			logger.Error().Err(err).Str("destination", dest).Msg("failed to write output file")
			out.Status = status.StatusWriteFailed
			out.Err = err
			return out
		}
		logger.Info().Str("destination", dest).Msg("wrote modified document")
		out.Status = status.StatusWritten
		out.Destination = dest
	default:
		r.console.PrintDocument(src.Name(), res.Content)
	}

	return out
}

// emitStream prints a stdin document, changed or not
func (r *Runner) emitStream(original, modified string) {
	if r.opts.Diff {
		r.console.PrintDiff(diff.Unified(original, modified, ""))
		return
	}
	r.console.PrintDocument("", modified)
}

// 🛟 safeProcess runs the processor and turns a panic into an error
func (r *Runner) safeProcess(ctx context.Context, name, content string) (res *document.Result, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.WithStack(&InternalError{Document: name, Value: v})
			zerolog.Ctx(ctx).Error().
				Err(err).
				Str("stack", string(debug.Stack())).
				Msg("internal error while processing document")
		}
	}()

	return r.process(ctx, content), nil
}
