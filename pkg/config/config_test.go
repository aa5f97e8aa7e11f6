package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml_full",
			filename: ".cfnhint.yaml",
			config: `
inputs:
  - templates/*.yaml
  - github:acme/infra/stack.yaml@main
output_dir: build/out/
diff: false
concurrency: 4
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"templates/*.yaml", "github:acme/infra/stack.yaml@main"}, cfg.Inputs)
				assert.Equal(t, "build/out", cfg.OutputDir)
				assert.Equal(t, 4, cfg.Concurrency)
				assert.Equal(t, "write", cfg.Mode())
			},
		},
		{
			name:     "yaml_empty_document",
			filename: "empty.yml",
			config:   "",
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Inputs)
				assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
				assert.Equal(t, "print", cfg.Mode())
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    "bad.yaml",
			config:      "outputs: x\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:     "json_diff",
			filename: "cfg.json",
			config:   `{"inputs": ["a.yaml"], "diff": true, "quiet": true}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"a.yaml"}, cfg.Inputs)
				assert.True(t, cfg.Diff)
				assert.True(t, cfg.Quiet)
				assert.Equal(t, "diff", cfg.Mode())
			},
		},
		{
			name:        "json_unknown_field",
			filename:    "cfg.json",
			config:      `{"input": ["a.yaml"]}`,
			wantErr:     true,
			errContains: "unknown field",
		},
		{
			name:     "hcl_basic",
			filename: "cfg.hcl",
			config: `
inputs      = ["**/*.yaml"]
log         = "run.log"
debug       = true
concurrency = 2
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"**/*.yaml"}, cfg.Inputs)
				assert.Equal(t, "run.log", cfg.Log)
				assert.True(t, cfg.Debug)
				assert.Equal(t, 2, cfg.Concurrency)
			},
		},
		{
			name:        "hcl_syntax_error",
			filename:    "cfg.hcl",
			config:      `inputs = [`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "negative_concurrency",
			filename:    "cfg.yaml",
			config:      "concurrency: -1\n",
			wantErr:     true,
			errContains: "concurrency must not be negative",
		},
		{
			name:        "blank_input",
			filename:    "cfg.yaml",
			config:      "inputs: ['  ']\n",
			wantErr:     true,
			errContains: "inputs[0] is empty",
		},
		{
			name:        "unsupported_extension",
			filename:    "cfg.toml",
			config:      "inputs = []",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644))

			cfg, err := Load(context.Background(), path)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestHCLEnvVariables(t *testing.T) {
	p := &HCLParser{Environ: func() []string {
		return []string{"BUILD_DIR=/tmp/build", "MALFORMED"}
	}}

	cfg, err := p.Parse(context.Background(), "cfg.hcl", []byte(`output_dir = "${env.BUILD_DIR}/templates"`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/build/templates", cfg.OutputDir)
}

func TestHCLEmptyEnvironment(t *testing.T) {
	p := &HCLParser{Environ: func() []string { return nil }}

	cfg, err := p.Parse(context.Background(), "cfg.hcl", []byte(`diff = true`))
	require.NoError(t, err)
	assert.True(t, cfg.Diff)
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, GetParser("a.YAML"))
	assert.IsType(t, &YAMLParser{}, GetParser("a.yml"))
	assert.IsType(t, &JSONParser{}, GetParser("a.json"))
	assert.IsType(t, &HCLParser{}, GetParser("a.hcl"))
	assert.Nil(t, GetParser("a.txt"))
}

func TestConfigString(t *testing.T) {
	cfg := &Config{Inputs: []string{"a.yaml"}, Diff: true, Concurrency: 3}
	assert.Equal(t, "inputs=[a.yaml] mode=diff concurrency=3", cfg.String())
}
