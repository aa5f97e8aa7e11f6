package source

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔎 Resolver turns input arguments into sources
type Resolver struct {
	// BaseDir anchors relative patterns, usually the working directory
	BaseDir string
	// GitHub fetches github: inputs; created on first use when nil
	GitHub ContentsGetter
}

// NewResolver creates a resolver anchored at baseDir
func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir}
}

// Resolve expands every input. Glob matches are regular files only, are
// deduplicated, and are returned sorted by path ahead of any github: inputs.
// A pattern that matches nothing is logged and skipped.
func (r *Resolver) Resolve(ctx context.Context, inputs []string) ([]Source, error) {
	logger := zerolog.Ctx(ctx)

	files := map[string]*File{}
	var remote []Source

	for _, input := range inputs {
		if IsGitHubRef(input) {
			src, err := r.gitHubSource(ctx, input)
			if err != nil {
				return nil, errors.Errorf("resolving %s: %w", input, err)
			}
			remote = append(remote, src)
			continue
		}

		matches, err := r.glob(input)
		if err != nil {
			return nil, errors.Errorf("expanding pattern %q: %w", input, err)
		}

		if len(matches) == 0 {
			logger.Warn().Str("pattern", input).Msg("no files matched the pattern")
			continue
		}

		for _, m := range matches {
			if _, ok := files[m.path]; !ok {
				files[m.path] = m
			}
		}
	}

	sorted := make([]*File, 0, len(files))
	for _, f := range files {
		sorted = append(sorted, f)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].path < sorted[j].path
	})

	out := make([]Source, 0, len(sorted)+len(remote))
	for _, f := range sorted {
		out = append(out, f)
	}
	return append(out, remote...), nil
}

// glob expands one pattern relative to BaseDir
func (r *Resolver) glob(pattern string) ([]*File, error) {
	if filepath.IsAbs(pattern) {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		out := make([]*File, 0, len(matches))
		for _, m := range matches {
			out = append(out, NewFile(m, m))
		}
		return out, nil
	}

	clean := filepath.Clean(pattern)
	if !filepath.IsLocal(clean) {
		return r.glob(filepath.Join(r.base(), clean))
	}

	matches, err := doublestar.Glob(os.DirFS(r.base()), filepath.ToSlash(clean), doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	out := make([]*File, 0, len(matches))
	for _, m := range matches {
		rel := filepath.FromSlash(m)
		out = append(out, NewFile(filepath.Join(r.base(), rel), rel))
	}
	return out, nil
}

func (r *Resolver) base() string {
	if r.BaseDir == "" {
		return "."
	}
	return r.BaseDir
}

// IsStdinArg reports whether an input argument names stdin
func IsStdinArg(arg string) bool {
	return strings.TrimSpace(arg) == "-"
}
