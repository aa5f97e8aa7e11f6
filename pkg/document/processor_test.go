package document

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cfn-hint/pkg/hint"
	"github.com/walteh/cfn-hint/pkg/text"
	"gitlab.com/tozd/go/errors"
)

func kinds(events []Event) []EventKind {
	var out []EventKind
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantEvents  []EventKind
		wantApplied int
	}{
		{
			name:        "simple_hint",
			content:     "# cfn-hint: replace: foo with: bar\nfoo baz\n",
			want:        "# cfn-hint: replace: foo with: bar\nbar baz\n",
			wantEvents:  []EventKind{EventApplied},
			wantApplied: 1,
		},
		{
			name:        "group_reference",
			content:     "# cfn-hint: replace: (\\d+) with: [\\1]\ncount: 42\n",
			want:        "# cfn-hint: replace: (\\d+) with: [\\1]\ncount: [42]\n",
			wantEvents:  []EventKind{EventApplied},
			wantApplied: 1,
		},
		{
			name:       "no_hints_is_identity",
			content:    "Resources:\r\n  Bucket:\n    Type: AWS::S3::Bucket\r\n",
			want:       "Resources:\r\n  Bucket:\n    Type: AWS::S3::Bucket\r\n",
			wantEvents: nil,
		},
		{
			name:       "empty_document",
			content:    "",
			want:       "",
			wantEvents: nil,
		},
		{
			name:       "malformed_hint_does_not_consume_next_line",
			content:    "# cfn-hint: replace: foo bar\nfoo\n",
			want:       "# cfn-hint: replace: foo bar\nfoo\n",
			wantEvents: []EventKind{EventHintFormat},
		},
		{
			name:        "malformed_hint_followed_by_hint",
			content:     "# cfn-hint: replace: broken\n# cfn-hint: replace: a with: b\na\n",
			want:        "# cfn-hint: replace: broken\n# cfn-hint: replace: a with: b\nb\n",
			wantEvents:  []EventKind{EventHintFormat, EventApplied},
			wantApplied: 1,
		},
		{
			name:       "hint_at_eof",
			content:    "a: 1\n# cfn-hint: replace: a with: b\n",
			want:       "a: 1\n# cfn-hint: replace: a with: b\n",
			wantEvents: []EventKind{EventHintAtEOF},
		},
		{
			name:       "hint_at_eof_without_newline",
			content:    "# cfn-hint: replace: a with: b",
			want:       "# cfn-hint: replace: a with: b",
			wantEvents: []EventKind{EventHintAtEOF},
		},
		{
			name:       "invalid_regex_keeps_target",
			content:    "# cfn-hint: replace: (foo with: bar\nfoo\nfoo\n",
			want:       "# cfn-hint: replace: (foo with: bar\nfoo\nfoo\n",
			wantEvents: []EventKind{EventRegexCompile},
		},
		{
			name:        "hint_target_is_not_a_hint",
			content:     "# cfn-hint: replace: cfn with: CFN\n# cfn-hint: replace: a with: b\na\n",
			want:        "# cfn-hint: replace: cfn with: CFN\n# CFN-hint: replace: a with: b\na\n",
			wantEvents:  []EventKind{EventApplied},
			wantApplied: 1,
		},
		{
			name:        "inline_hint",
			content:     "Image: nginx  # cfn-hint: replace: x with: y\nTag: x\n",
			want:        "Image: nginx  # cfn-hint: replace: x with: y\nTag: x\n",
			wantEvents:  []EventKind{EventApplied},
			wantApplied: 0,
		},
		{
			name:        "crlf_preserved_on_target",
			content:     "# cfn-hint: replace: old with: new\r\nold value\r\nnext\r\n",
			want:        "# cfn-hint: replace: old with: new\r\nnew value\r\nnext\r\n",
			wantEvents:  []EventKind{EventApplied},
			wantApplied: 1,
		},
		{
			name:        "only_following_line_changes",
			content:     "foo\n# cfn-hint: replace: foo with: bar\nfoo\nfoo\n",
			want:        "foo\n# cfn-hint: replace: foo with: bar\nbar\nfoo\n",
			wantEvents:  []EventKind{EventApplied},
			wantApplied: 1,
		},
		{
			name:        "pattern_matches_nothing",
			content:     "# cfn-hint: replace: zzz with: bar\nfoo\n",
			want:        "# cfn-hint: replace: zzz with: bar\nfoo\n",
			wantEvents:  []EventKind{EventApplied},
			wantApplied: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Process(context.Background(), tt.content)

			require.NotNil(t, res)
			assert.Equal(t, tt.want, res.Content)
			assert.Equal(t, tt.wantEvents, kinds(res.Events))
			assert.Equal(t, tt.wantApplied, res.Applied)
			assert.Equal(t, tt.wantApplied > 0, res.Changed())
		})
	}
}

func TestProcessEventDetails(t *testing.T) {
	content := strings.Join([]string{
		"a: 1",
		"# cfn-hint: replace: missing delimiter",
		"# cfn-hint: replace: ( with: x",
		"b: 2",
		"# cfn-hint: replace: b with: c",
	}, "\n")

	res := Process(context.Background(), content)

	require.Len(t, res.Events, 3)
	assert.Equal(t, content, res.Content)
	assert.Equal(t, 3, res.Failures())

	assert.Equal(t, EventHintFormat, res.Events[0].Kind)
	assert.Equal(t, 2, res.Events[0].Line)
	var ferr *hint.FormatError
	assert.True(t, errors.As(res.Events[0].Err, &ferr))

	assert.Equal(t, EventRegexCompile, res.Events[1].Kind)
	assert.Equal(t, 3, res.Events[1].Line)
	var cerr *text.CompileError
	assert.True(t, errors.As(res.Events[1].Err, &cerr))

	assert.Equal(t, EventHintAtEOF, res.Events[2].Kind)
	assert.Equal(t, 5, res.Events[2].Line)
	assert.Equal(t, "# cfn-hint: replace: b with: c", res.Events[2].Hint)
}

func TestProcessIdempotence(t *testing.T) {
	t.Run("convergent", func(t *testing.T) {
		content := "# cfn-hint: replace: dev with: prod\nEnv: dev\n"

		first := Process(context.Background(), content)
		second := Process(context.Background(), first.Content)

		assert.Equal(t, "# cfn-hint: replace: dev with: prod\nEnv: prod\n", first.Content)
		assert.Equal(t, first.Content, second.Content, "pattern no longer matches, second pass is a no-op")
		assert.False(t, second.Changed())
	})

	t.Run("divergent", func(t *testing.T) {
		content := "# cfn-hint: replace: (x+) with: \\1x\nsize: x\n"

		first := Process(context.Background(), content)
		second := Process(context.Background(), first.Content)

		assert.Equal(t, "# cfn-hint: replace: (x+) with: \\1x\nsize: xx\n", first.Content)
		assert.Equal(t, "# cfn-hint: replace: (x+) with: \\1x\nsize: xxx\n", second.Content, "pattern still matches, every pass changes the line again")
	})
}

func TestLogEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	res := Process(context.Background(), "# cfn-hint: replace: nope\n# cfn-hint: replace: a with: b\n")
	LogEvents(ctx, "template.yaml", res.Events)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], `"level":"error"`)
	assert.Contains(t, lines[0], `"event":"hint_format"`)
	assert.Contains(t, lines[0], `"document":"template.yaml"`)
	assert.Contains(t, lines[0], "skipping hint due to error")

	assert.Contains(t, lines[1], `"level":"warn"`)
	assert.Contains(t, lines[1], `"event":"hint_at_eof"`)
}
