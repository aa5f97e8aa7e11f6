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

// Package log prints rewritten documents and diffs to the console.
package log

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/cfn-hint/pkg/diff"
)

// 🎨 Diff styling
var (
	hunkColor     = color.New(color.FgCyan)
	addColor      = color.New(color.FgGreen)
	removeColor   = color.New(color.FgRed)
	noChangeColor = color.New(color.FgGreen)

	addEmphasis    = color.New(color.FgGreen, color.ReverseVideo)
	removeEmphasis = color.New(color.FgRed, color.ReverseVideo)
)

// 🖥️ Console writes whole documents and diffs. Each call holds the lock for
// the full block so output from concurrent documents never interleaves.
type Console struct {
	out io.Writer
	mu  sync.Mutex
}

// 🏭 New creates a console writing to out. A nil out discards everything.
func New(out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{out: out}
}

// 📄 PrintDocument prints a rewritten document. A non-empty name adds a
// header line naming the document.
func (c *Console) PrintDocument(name, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name != "" {
		fmt.Fprintf(c.out, "--- # Modified content for %s\n", name)
	}
	fmt.Fprintln(c.out, content)
}

// 🔍 PrintDiff prints a classified diff. Paired removal and addition runs get
// their changed characters emphasized.
func (c *Console) PrintDiff(lines iter.Seq[diff.Line]) {
	var all []diff.Line
	for l := range lines {
		all = append(all, l)
	}

	var b strings.Builder
	for i := 0; i < len(all); {
		l := all[i]
		if l.Kind != diff.KindRemoval {
			b.WriteString(formatLine(l))
			b.WriteByte('\n')
			i++
			continue
		}

		removals := run(all[i:], diff.KindRemoval)
		additions := run(all[i+len(removals):], diff.KindAddition)
		i += len(removals) + len(additions)

		if len(removals) != len(additions) {
			for _, r := range removals {
				b.WriteString(formatLine(r))
				b.WriteByte('\n')
			}
			for _, a := range additions {
				b.WriteString(formatLine(a))
				b.WriteByte('\n')
			}
			continue
		}

		added := make([]string, len(additions))
		for j := range removals {
			old, neu := emphasize(removals[j].Text[1:], additions[j].Text[1:])
			b.WriteString(removeColor.Sprint("-") + old + "\n")
			added[j] = neu
		}
		for _, a := range added {
			b.WriteString(addColor.Sprint("+") + a + "\n")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, b.String())
}

// formatLine colors a single diff line by kind
func formatLine(l diff.Line) string {
	switch l.Kind {
	case diff.KindHunkHeader:
		return hunkColor.Sprint(l.Text)
	case diff.KindAddition:
		return addColor.Sprint(l.Text)
	case diff.KindRemoval:
		return removeColor.Sprint(l.Text)
	case diff.KindNoChanges:
		return noChangeColor.Sprint(l.Text)
	default:
		return l.Text
	}
}

// run returns the leading lines of kind k
func run(lines []diff.Line, k diff.Kind) []diff.Line {
	n := 0
	for n < len(lines) && lines[n].Kind == k {
		n++
	}
	return lines[:n]
}

// emphasize renders old and new with the characters that differ highlighted
func emphasize(old, neu string) (string, string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(old, neu, false))

	var o, n strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			o.WriteString(removeColor.Sprint(d.Text))
			n.WriteString(addColor.Sprint(d.Text))
		case diffmatchpatch.DiffDelete:
			o.WriteString(removeEmphasis.Sprint(d.Text))
		case diffmatchpatch.DiffInsert:
			n.WriteString(addEmphasis.Sprint(d.Text))
		}
	}
	return o.String(), n.String()
}
