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

// Package diff produces classified unified diffs between two documents.
package diff

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/walteh/cfn-hint/pkg/document"
)

// ContextLines is the number of unchanged lines shown around each change
const ContextLines = 3

// 🏷️ Kind classifies a line of diff output
type Kind int

const (
	KindContext    Kind = iota // Unchanged line
	KindFileHeader             // "---" or "+++"
	KindHunkHeader             // "@@ ... @@"
	KindAddition               // "+" line
	KindRemoval                // "-" line
	KindNoChanges              // Notice emitted when the documents are equal
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindFileHeader:
		return "file_header"
	case KindHunkHeader:
		return "hunk_header"
	case KindAddition:
		return "addition"
	case KindRemoval:
		return "removal"
	case KindNoChanges:
		return "no_changes"
	default:
		return "unknown"
	}
}

// 📄 Line is one classified line of diff output, without a line terminator
type Line struct {
	Kind Kind
	Text string
}

// 🔍 Unified returns the unified diff of original against modified.
//
// The sequence is computed lazily as it is ranged over. When the documents are
// identical it yields a single KindNoChanges line.
func Unified(original, modified, label string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		a := lineStrings(original)
		b := lineStrings(modified)

		groups := difflib.NewMatcher(a, b).GetGroupedOpCodes(ContextLines)
		if len(groups) == 0 {
			yield(Line{Kind: KindNoChanges, Text: noChangesText(label)})
			return
		}

		suffix := ""
		if label != "" {
			suffix = fmt.Sprintf(" (%s)", label)
		}

		if !yield(Line{Kind: KindFileHeader, Text: "--- original" + suffix}) {
			return
		}
		if !yield(Line{Kind: KindFileHeader, Text: "+++ modified" + suffix}) {
			return
		}

		for _, group := range groups {
			first, last := group[0], group[len(group)-1]
			header := fmt.Sprintf("@@ -%s +%s @@", formatRange(first.I1, last.I2), formatRange(first.J1, last.J2))
			if !yield(Line{Kind: KindHunkHeader, Text: header}) {
				return
			}

			for _, op := range group {
				if op.Tag == 'e' {
					for _, l := range a[op.I1:op.I2] {
						if !yield(Line{Kind: KindContext, Text: " " + trimTerminator(l)}) {
							return
						}
					}
					continue
				}
				if op.Tag == 'r' || op.Tag == 'd' {
					for _, l := range a[op.I1:op.I2] {
						if !yield(Line{Kind: KindRemoval, Text: "-" + trimTerminator(l)}) {
							return
						}
					}
				}
				if op.Tag == 'r' || op.Tag == 'i' {
					for _, l := range b[op.J1:op.J2] {
						if !yield(Line{Kind: KindAddition, Text: "+" + trimTerminator(l)}) {
							return
						}
					}
				}
			}
		}
	}
}

// Lines collects Unified into a slice
func Lines(original, modified, label string) []Line {
	var out []Line
	for l := range Unified(original, modified, label) {
		out = append(out, l)
	}
	return out
}

// String renders Unified as plain text, one line per diff line
func String(original, modified, label string) string {
	var b strings.Builder
	for l := range Unified(original, modified, label) {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func noChangesText(label string) string {
	if label == "" {
		return "No changes detected."
	}
	return fmt.Sprintf("No changes detected for (%s).", label)
}

// formatRange renders a hunk range in unified diff form
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}

func lineStrings(content string) []string {
	lines := document.Split(content)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func trimTerminator(s string) string {
	return strings.TrimRight(s, "\r\n")
}
