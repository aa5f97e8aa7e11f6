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

// Package text applies regular expression substitutions to single lines.
package text

import (
	"fmt"
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// ❌ CompileError reports a pattern or replacement template that cannot be used
type CompileError struct {
	Pattern     string
	Replacement string
	Err         error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid regex pattern: '%s'. details: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// 📊 ReplacementResult contains the outcome of applying one substitution
type ReplacementResult struct {
	// OriginalContent is the line before substitution, terminator included
	OriginalContent string

	// ModifiedContent is the line after substitution
	ModifiedContent string

	// ReplacementCount is the number of non-overlapping matches replaced
	ReplacementCount int
}

// WasModified reports whether the substitution changed the line
func (r *ReplacementResult) WasModified() bool {
	return r.OriginalContent != r.ModifiedContent
}

// 🔄 Replace compiles pattern and replaces every match in line with replacement.
//
// The pattern is compiled on every call. line is expected to carry its line
// terminator, so a pattern able to match "\n" or "\r" can rewrite it.
func Replace(line, pattern, replacement string) (*ReplacementResult, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.WithStack(&CompileError{Pattern: pattern, Replacement: replacement, Err: err})
	}

	tmpl, err := translateTemplate(re, replacement)
	if err != nil {
		return nil, errors.WithStack(&CompileError{Pattern: pattern, Replacement: replacement, Err: err})
	}

	return &ReplacementResult{
		OriginalContent:  line,
		ModifiedContent:  re.ReplaceAllString(line, tmpl),
		ReplacementCount: len(re.FindAllStringIndex(line, -1)),
	}, nil
}

// Apply is Replace reduced to the rewritten line
func Apply(line, pattern, replacement string) (string, error) {
	res, err := Replace(line, pattern, replacement)
	if err != nil {
		return "", err
	}
	return res.ModifiedContent, nil
}

// 🔢 Count returns the number of non-overlapping matches of pattern in line
func Count(line, pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, errors.WithStack(&CompileError{Pattern: pattern, Err: err})
	}
	return len(re.FindAllStringIndex(line, -1)), nil
}
