package source

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// GitHubPrefix marks an input as a file hosted on GitHub:
// github:owner/repo/path/to/file.yaml@ref
const GitHubPrefix = "github:"

// 🔌 ContentsGetter is the part of the GitHub repositories API used here
type ContentsGetter interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// IsGitHubRef reports whether input names a GitHub file
func IsGitHubRef(input string) bool {
	return strings.HasPrefix(input, GitHubPrefix)
}

// 🐙 GitHubRef identifies a single file in a GitHub repository
type GitHubRef struct {
	Owner string
	Repo  string
	Path  string
	Ref   string // Branch, tag or sha; empty for the default branch
}

// ParseGitHubRef parses github:owner/repo/path@ref
func ParseGitHubRef(input string) (*GitHubRef, error) {
	rest, ok := strings.CutPrefix(input, GitHubPrefix)
	if !ok {
		return nil, errors.Errorf("missing %q prefix", GitHubPrefix)
	}

	ref := ""
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest, ref = rest[:at], rest[at+1:]
		if ref == "" {
			return nil, errors.New("empty ref after @")
		}
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || strings.Trim(parts[2], "/") == "" {
		return nil, errors.Errorf("invalid GitHub reference %q, expected %sowner/repo/path[@ref]", input, GitHubPrefix)
	}

	return &GitHubRef{
		Owner: parts[0],
		Repo:  parts[1],
		Path:  strings.Trim(parts[2], "/"),
		Ref:   ref,
	}, nil
}

// String renders the reference back into input form
func (g *GitHubRef) String() string {
	s := GitHubPrefix + g.Owner + "/" + g.Repo + "/" + g.Path
	if g.Ref != "" {
		s += "@" + g.Ref
	}
	return s
}

// 📄 GitHubFile is a document fetched through the GitHub contents API
type GitHubFile struct {
	ref    *GitHubRef
	client ContentsGetter
}

// NewGitHubFile creates a GitHub source
func NewGitHubFile(ref *GitHubRef, client ContentsGetter) *GitHubFile {
	return &GitHubFile{ref: ref, client: client}
}

func (g *GitHubFile) Name() string     { return g.ref.String() }
func (g *GitHubFile) BaseName() string { return path.Base(g.ref.Path) }
func (g *GitHubFile) Stream() bool     { return false }

func (g *GitHubFile) Read(ctx context.Context) (string, error) {
	zerolog.Ctx(ctx).Debug().
		Str("owner", g.ref.Owner).
		Str("repo", g.ref.Repo).
		Str("path", g.ref.Path).
		Str("ref", g.ref.Ref).
		Msg("fetching file from github")

	var opts *github.RepositoryContentGetOptions
	if g.ref.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: g.ref.Ref}
	}

	file, dir, _, err := g.client.GetContents(ctx, g.ref.Owner, g.ref.Repo, g.ref.Path, opts)
	if err != nil {
		return "", errors.WithStack(&ReadError{Source: g.Name(), Err: err})
	}
	if file == nil || dir != nil {
		return "", errors.WithStack(&ReadError{Source: g.Name(), Err: errors.New("path is a directory")})
	}

	content, err := file.GetContent()
	if err != nil {
		return "", errors.WithStack(&ReadError{Source: g.Name(), Err: errors.Errorf("decoding content: %w", err)})
	}
	return content, nil
}

func (r *Resolver) gitHubSource(ctx context.Context, input string) (Source, error) {
	ref, err := ParseGitHubRef(input)
	if err != nil {
		return nil, err
	}

	if r.GitHub == nil {
		r.GitHub = NewGitHubClient(os.Getenv("GITHUB_TOKEN")).Repositories
	}

	return NewGitHubFile(ref, r.GitHub), nil
}

// 🏭 NewGitHubClient creates a GitHub API client, authenticated when token
// is set
func NewGitHubClient(token string) *github.Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}
