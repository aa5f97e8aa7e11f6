package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Line
	}{
		{
			name:    "empty",
			content: "",
			want:    nil,
		},
		{
			name:    "single_unterminated",
			content: "abc",
			want:    []Line{{Content: "abc"}},
		},
		{
			name:    "lf",
			content: "a\nb\n",
			want:    []Line{{"a", "\n"}, {"b", "\n"}},
		},
		{
			name:    "mixed_terminators",
			content: "a\r\nb\nc\rd",
			want:    []Line{{"a", "\r\n"}, {"b", "\n"}, {"c", "\r"}, {"d", ""}},
		},
		{
			name:    "blank_lines",
			content: "\n\r\n\r",
			want:    []Line{{"", "\n"}, {"", "\r\n"}, {"", "\r"}},
		},
		{
			name:    "cr_then_lf_on_next_line",
			content: "a\r\r\n",
			want:    []Line{{"a", "\r"}, {"", "\r\n"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.content)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.content, Join(got), "join should restore the original content")
		})
	}
}

func TestCursor(t *testing.T) {
	lines := Split("one\ntwo\nthree")
	cursor := NewCursor(lines)

	assert.Equal(t, 0, cursor.Position())

	var seen []string
	for {
		l, ok := cursor.Next()
		if !ok {
			break
		}
		seen = append(seen, l.Content)
	}

	require.Equal(t, []string{"one", "two", "three"}, seen)
	assert.Equal(t, 3, cursor.Position())

	_, ok := cursor.Next()
	assert.False(t, ok, "exhausted cursor should stay exhausted")
}
