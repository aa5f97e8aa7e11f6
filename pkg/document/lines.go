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

package document

import "strings"

// 📄 Line is one line of a document and the terminator that ended it
type Line struct {
	Content    string // Text without the terminator
	Terminator string // "\n", "\r\n", "\r" or "" for an unterminated last line
}

// String returns the line exactly as it appeared in the document
func (l Line) String() string {
	return l.Content + l.Terminator
}

// ✂️ Split breaks content into lines, keeping each terminator.
// Join(Split(s)) == s for every s.
func Split(content string) []Line {
	var lines []Line

	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines = append(lines, Line{Content: content[start:i], Terminator: "\n"})
			start = i + 1
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				lines = append(lines, Line{Content: content[start:i], Terminator: "\r\n"})
				i++
			} else {
				lines = append(lines, Line{Content: content[start:i], Terminator: "\r"})
			}
			start = i + 1
		}
	}

	if start < len(content) {
		lines = append(lines, Line{Content: content[start:]})
	}

	return lines
}

// 🧵 Join concatenates lines with their terminators
func Join(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Content)
		b.WriteString(l.Terminator)
	}
	return b.String()
}

// 👉 Cursor walks a fixed slice of lines forward only. A line returned by
// Next is never returned again.
type Cursor struct {
	lines []Line
	pos   int
}

// NewCursor creates a cursor positioned before the first line
func NewCursor(lines []Line) *Cursor {
	return &Cursor{lines: lines}
}

// Next returns the next line, or false when the lines are exhausted
func (c *Cursor) Next() (Line, bool) {
	if c.pos >= len(c.lines) {
		return Line{}, false
	}
	l := c.lines[c.pos]
	c.pos++
	return l, true
}

// Position is the 1-based number of the line last returned by Next
func (c *Cursor) Position() int {
	return c.pos
}
