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

// Package source resolves input arguments into readable documents.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 📥 Source is one input document
type Source interface {
	// Name is how the document is shown to the user
	Name() string
	// BaseName is the file name used when writing to an output directory
	BaseName() string
	// Stream reports whether the document came from stdin
	Stream() bool
	// Read returns the whole document
	Read(ctx context.Context) (string, error)
}

// ❌ ReadError reports a document that could not be read
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// 📄 File is a document on the local filesystem
type File struct {
	path string
	name string
}

// NewFile creates a file source. name is the display name; path is used when
// name is empty.
func NewFile(path, name string) *File {
	if name == "" {
		name = path
	}
	return &File{path: path, name: name}
}

func (f *File) Name() string     { return f.name }
func (f *File) BaseName() string { return filepath.Base(f.path) }
func (f *File) Stream() bool     { return false }
func (f *File) Path() string     { return f.path }

func (f *File) Read(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", errors.WithStack(&ReadError{Source: f.name, Err: err})
	}
	return string(data), nil
}

// StdinName is the display name of the stdin document
const StdinName = "<stdin>"

// 📥 Stdin is a document read from a single stream
type Stdin struct {
	r io.Reader
}

// NewStdin creates a stream source over r
func NewStdin(r io.Reader) *Stdin {
	return &Stdin{r: r}
}

func (s *Stdin) Name() string     { return StdinName }
func (s *Stdin) BaseName() string { return "stdin" }
func (s *Stdin) Stream() bool     { return true }

func (s *Stdin) Read(ctx context.Context) (string, error) {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return "", errors.WithStack(&ReadError{Source: StdinName, Err: err})
	}
	return string(data), nil
}
