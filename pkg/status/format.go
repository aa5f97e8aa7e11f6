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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	docIndent   = 4  // spaces to indent document entries
	nameWidth   = 35 // Base width for document name
	statusWidth = 15 // Width for status text
)

// OutcomeFormatter defines how document outcomes are rendered
type OutcomeFormatter interface {
	// FormatOutcome formats one document outcome
	FormatOutcome(o Outcome) string

	// FormatTotals formats the closing tally of a run
	FormatTotals(processed, changed, failed int) string
}

// DefaultFormatter renders outcomes as aligned, colored columns
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// 🎯 FormatOutcome formats a document outcome for display
func (f *DefaultFormatter) FormatOutcome(o Outcome) string {
	var prefix string
	switch {
	case o.Status.Failed():
		prefix = color.RedString("✗")
	case o.Status == StatusWritten:
		prefix = color.GreenString("✓")
	case o.Status == StatusModified:
		prefix = color.YellowString("⟳")
	default:
		prefix = color.HiBlackString("-")
	}

	detail := fmt.Sprintf("%d applied", o.Applied)
	if o.Problems > 0 {
		detail += fmt.Sprintf(", %d skipped", o.Problems)
	}
	if o.Destination != "" {
		detail += " → " + o.Destination
	}
	if o.Err != nil {
		detail = o.Err.Error()
	}

	return fmt.Sprintf("%s%s %-*s %-*s %s",
		strings.Repeat(" ", docIndent),
		prefix,
		nameWidth, o.Document,
		statusWidth, o.Status.String(),
		detail,
	)
}

// FormatTotals formats the tally with emojis
func (f *DefaultFormatter) FormatTotals(processed, changed, failed int) string {
	if failed > 0 {
		return fmt.Sprintf("❌ %d documents, %d changed, %d failed", processed, changed, failed)
	}
	return fmt.Sprintf("✅ %d documents, %d changed", processed, changed)
}
