package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func names(sources []Source) []string {
	var out []string
	for _, s := range sources {
		out = append(out, filepath.ToSlash(s.Name()))
	}
	return out
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"templates/app.yml":         "a",
		"templates/db.yml":          "b",
		"templates/nested/net.yml":  "c",
		"templates/readme.md":       "d",
		"other/app.yml":             "e",
		"templates/dir.yml/keep.md": "f",
	})

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "single_level_glob",
			patterns: []string{"templates/*.yml"},
			want:     []string{"templates/app.yml", "templates/db.yml"},
		},
		{
			name:     "recursive_glob",
			patterns: []string{"**/*.yml"},
			want:     []string{"other/app.yml", "templates/app.yml", "templates/db.yml", "templates/nested/net.yml"},
		},
		{
			name:     "literal_path",
			patterns: []string{"./templates/readme.md"},
			want:     []string{"templates/readme.md"},
		},
		{
			name:     "overlapping_patterns_deduplicated",
			patterns: []string{"templates/db.yml", "templates/*.yml", "templates/db.yml"},
			want:     []string{"templates/app.yml", "templates/db.yml"},
		},
		{
			name:     "directories_skipped",
			patterns: []string{"templates/dir.yml"},
			want:     nil,
		},
		{
			name:     "no_match",
			patterns: []string{"missing/*.yml"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(dir)
			got, err := r.Resolve(context.Background(), tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestResolveAbsoluteAndParent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/one.yml": "1",
		"b/two.yml": "2",
	})

	r := NewResolver(filepath.Join(dir, "a"))

	got, err := r.Resolve(context.Background(), []string{filepath.Join(dir, "b", "*.yml")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "b", "two.yml"), got[0].Name())
	assert.Equal(t, "two.yml", got[0].BaseName())

	got, err = r.Resolve(context.Background(), []string{"../b/*.yml"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "b", "two.yml"), got[0].Name())
}

func TestResolveBadPattern(t *testing.T) {
	r := NewResolver(t.TempDir())
	_, err := r.Resolve(context.Background(), []string{"templates/[.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expanding pattern")
}

func TestFileRead(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"x.yml": "a\r\nb"})

	f := NewFile(filepath.Join(dir, "x.yml"), "x.yml")
	got, err := f.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb", got)
	assert.False(t, f.Stream())

	missing := NewFile(filepath.Join(dir, "missing.yml"), "")
	_, err = missing.Read(context.Background())
	require.Error(t, err)

	var rerr *ReadError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, filepath.Join(dir, "missing.yml"), rerr.Source)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStdinRead(t *testing.T) {
	s := NewStdin(strings.NewReader("hello\n"))
	got, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello\n", got)
	assert.True(t, s.Stream())
	assert.Equal(t, StdinName, s.Name())
}

func TestIsStdinArg(t *testing.T) {
	assert.True(t, IsStdinArg("-"))
	assert.False(t, IsStdinArg("--"))
	assert.False(t, IsStdinArg("file.yml"))
}
