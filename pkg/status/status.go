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
	"sort"
	"sync"
)

// 🚦 Code is a process exit code. Higher codes are more severe.
type Code int

const (
	CodeSuccess         Code = 0
	CodeGeneralFailure  Code = 1 // Bad flags or configuration
	CodeNoInput         Code = 2 // No input documents resolved
	CodeReadFailure     Code = 3 // A document could not be read
	CodeWriteFailure    Code = 4 // A document could not be written
	CodeInternalFailure Code = 8 // Unexpected failure while processing a document
)

// String returns a string representation of Code
func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeGeneralFailure:
		return "general failure"
	case CodeNoInput:
		return "no input"
	case CodeReadFailure:
		return "read failure"
	case CodeWriteFailure:
		return "write failure"
	case CodeInternalFailure:
		return "internal failure"
	default:
		return "unknown"
	}
}

// Worst returns the most severe of codes
func Worst(codes ...Code) Code {
	worst := CodeSuccess
	for _, c := range codes {
		if c > worst {
			worst = c
		}
	}
	return worst
}

// 📊 DocumentStatus is what happened to one document
type DocumentStatus int

const (
	StatusUnknown        DocumentStatus = iota
	StatusUnchanged                     // No hint changed the document
	StatusModified                      // Changed and printed or diffed
	StatusWritten                       // Changed and written to the output directory
	StatusReadFailed                    // Could not be read
	StatusWriteFailed                   // Could not be written
	StatusInternalFailed                // Processing failed unexpectedly
)

// String returns a string representation of DocumentStatus
func (s DocumentStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusWritten:
		return "written"
	case StatusReadFailed:
		return "read failed"
	case StatusWriteFailed:
		return "write failed"
	case StatusInternalFailed:
		return "internal error"
	default:
		return "unknown"
	}
}

// Code maps the status to the exit code it contributes
func (s DocumentStatus) Code() Code {
	switch s {
	case StatusReadFailed:
		return CodeReadFailure
	case StatusWriteFailed:
		return CodeWriteFailure
	case StatusInternalFailed:
		return CodeInternalFailure
	default:
		return CodeSuccess
	}
}

// Failed reports whether the status is a failure
func (s DocumentStatus) Failed() bool {
	return s.Code() != CodeSuccess
}

// 📄 Outcome describes the result of processing one document
type Outcome struct {
	Document    string         // Document name as shown to the user
	Status      DocumentStatus // What happened
	Applied     int            // Lines rewritten by hints
	Problems    int            // Hint errors and warnings
	Destination string         // Output path, for StatusWritten
	Err         error          // Cause, for failures
}

// 📋 Report collects outcomes for a run. It is safe for concurrent use.
type Report struct {
	mu       sync.Mutex
	outcomes []Outcome
	code     Code
}

// 🏭 NewReport creates an empty report
func NewReport() *Report {
	return &Report{}
}

// Record adds an outcome
func (r *Report) Record(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// Fail raises the run's exit code without a document outcome, for failures
// that happen before any document is processed
func (r *Report) Fail(c Code) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.code = Worst(r.code, c)
}

// Outcomes returns the recorded outcomes sorted by document name
func (r *Report) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Document < out[j].Document
	})
	return out
}

// Code returns the worst exit code across all outcomes
func (r *Report) Code() Code {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := r.code
	for _, o := range r.outcomes {
		code = Worst(code, o.Status.Code())
	}
	return code
}

// Count returns how many outcomes have status s
func (r *Report) Count(s DocumentStatus) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, o := range r.outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}
