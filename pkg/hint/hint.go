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

// Package hint parses cfn-hint replace directives.
package hint

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	// Marker identifies a hint line. It may appear anywhere in the line.
	Marker = "# cfn-hint: replace:"

	// Format is the expected shape of a hint line, used in error messages.
	Format = "# cfn-hint: replace: <pattern> with: <replacement>"

	delimiter = " with: "
)

// 💬 Hint is a single replace directive
type Hint struct {
	Pattern     string // Regular expression source
	Replacement string // Substitution template
}

// ❌ FormatError reports a hint line that does not follow Format
type FormatError struct {
	Line   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid hint format, expected '%s': %s", Format, e.Reason)
}

// 🔍 IsHintLine reports whether line carries the hint marker
func IsHintLine(line string) bool {
	return strings.Contains(line, Marker)
}

// 📝 Parse extracts the pattern and replacement from a hint line.
//
// Everything after the second colon of the line is trimmed and split on the
// first " with: ". A pattern that itself contains " with: " is cut short, and
// colons ahead of the marker shift the split point; both are accepted as part
// of the grammar.
func Parse(line string) (*Hint, error) {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) < 3 {
		return nil, errors.WithStack(&FormatError{Line: line, Reason: "missing 'replace:' section"})
	}

	body := strings.TrimSpace(parts[2])

	pattern, replacement, ok := strings.Cut(body, delimiter)
	if !ok {
		return nil, errors.WithStack(&FormatError{Line: line, Reason: fmt.Sprintf("missing %q delimiter", delimiter)})
	}

	return &Hint{
		Pattern:     pattern,
		Replacement: replacement,
	}, nil
}

// String renders the hint back into directive form
func (h *Hint) String() string {
	return fmt.Sprintf("%s %s%s%s", Marker, h.Pattern, delimiter, h.Replacement)
}
