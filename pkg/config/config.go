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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultConcurrency is the number of documents processed at once.
const DefaultConcurrency = 1

// 📚 Config holds the settings a run can take from a file
type Config struct {
	Inputs      []string `json:"inputs,omitempty" yaml:"inputs,omitempty" hcl:"inputs,optional"`
	OutputDir   string   `json:"output_dir,omitempty" yaml:"output_dir,omitempty" hcl:"output_dir,optional"`
	Log         string   `json:"log,omitempty" yaml:"log,omitempty" hcl:"log,optional"`
	Diff        bool     `json:"diff,omitempty" yaml:"diff,omitempty" hcl:"diff,optional"`
	Quiet       bool     `json:"quiet,omitempty" yaml:"quiet,omitempty" hcl:"quiet,optional"`
	Debug       bool     `json:"debug,omitempty" yaml:"debug,omitempty" hcl:"debug,optional"`
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{Concurrency: DefaultConcurrency}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Stringer("config", cfg).Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills defaults
func (cfg *Config) Validate() error {
	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	for i, in := range cfg.Inputs {
		if strings.TrimSpace(in) == "" {
			return errors.Errorf("inputs[%d] is empty", i)
		}
	}

	if cfg.OutputDir != "" {
		cfg.OutputDir = filepath.Clean(cfg.OutputDir)
	}
	if cfg.Log != "" {
		cfg.Log = filepath.Clean(cfg.Log)
	}

	return nil
}

// 🏷️ Mode names the output mode the config selects
func (cfg *Config) Mode() string {
	switch {
	case cfg.Diff:
		return "diff"
	case cfg.OutputDir != "":
		return "write"
	default:
		return "print"
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("inputs=%v mode=%s concurrency=%d", cfg.Inputs, cfg.Mode(), cfg.Concurrency)
}
