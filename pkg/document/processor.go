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

// Package document applies cfn-hint directives to whole documents.
package document

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/cfn-hint/pkg/hint"
	"github.com/walteh/cfn-hint/pkg/text"
)

// 📦 Result is the outcome of processing one document
type Result struct {
	Content string  // Rewritten document
	Events  []Event // What happened, in line order
	Applied int     // Lines changed by a hint
}

// Changed reports whether any line was rewritten
func (r *Result) Changed() bool {
	return r.Applied > 0
}

// Failures counts events that reported an error or warning
func (r *Result) Failures() int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind != EventApplied {
			n++
		}
	}
	return n
}

// 🏃 Process applies every hint in content to the line that follows it.
//
// Hint lines are always kept. A hint that does not parse leaves the next line
// to be processed on its own, a hint whose pattern does not compile leaves its
// target unmodified, and a hint on the last line is reported and ignored.
// Process never fails; problems are returned as events.
func Process(ctx context.Context, content string) *Result {
	logger := zerolog.Ctx(ctx)

	lines := Split(content)
	cursor := NewCursor(lines)
	res := &Result{}

	var out strings.Builder
	out.Grow(len(content))

	for {
		line, ok := cursor.Next()
		if !ok {
			break
		}

		out.WriteString(line.String())

		if !hint.IsHintLine(line.Content) {
			continue
		}

		hintLine := cursor.Position()

		h, err := hint.Parse(line.String())
		if err != nil {
			res.Events = append(res.Events, Event{Kind: EventHintFormat, Line: hintLine, Hint: line.Content, Err: err})
			continue
		}

		target, ok := cursor.Next()
		if !ok {
			res.Events = append(res.Events, Event{Kind: EventHintAtEOF, Line: hintLine, Hint: strings.TrimSpace(line.Content)})
			break
		}

		replaced, err := text.Replace(target.String(), h.Pattern, h.Replacement)
		if err != nil {
			res.Events = append(res.Events, Event{Kind: EventRegexCompile, Line: hintLine, Hint: line.Content, Err: err})
			out.WriteString(target.String())
			continue
		}

		logger.Debug().
			Int("target_line", hintLine+1).
			Str("pattern", h.Pattern).
			Int("replacements", replaced.ReplacementCount).
			Msg("applying hint")

		out.WriteString(replaced.ModifiedContent)
		res.Events = append(res.Events, Event{Kind: EventApplied, Line: hintLine, Hint: line.Content, Replacements: replaced.ReplacementCount})
		if replaced.WasModified() {
			res.Applied++
		}
	}

	res.Content = out.String()
	return res
}
