package diff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/easelhq/easel/internal/artifact"
	"github.com/easelhq/easel/internal/diff"
)

func TestCompute_LineGranularity(t *testing.T) {
	t.Parallel()

	oldText := "package main\n\nfunc main() {\n\tprintln(\"hello\")\n}\n"
	newText := "package main\n\nfunc main() {\n\tprintln(\"hello, world\")\n}\n"

	spans := diff.Compute(oldText, newText, diff.Lines)
	require.NotEmpty(t, spans)

	var added, removed int
	for _, s := range spans {
		switch s.Op {
		case diff.Added:
			added++
			assert.Contains(t, s.Text, "hello, world")
		case diff.Removed:
			removed++
			assert.Contains(t, s.Text, "hello")
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestCompute_WordGranularity(t *testing.T) {
	t.Parallel()

	spans := diff.Compute("the quick brown fox", "the quick red fox", diff.Words)

	var removed, added []string
	for _, s := range spans {
		switch s.Op {
		case diff.Removed:
			removed = append(removed, s.Text)
		case diff.Added:
			added = append(added, s.Text)
		}
	}
	assert.Equal(t, []string{"brown"}, removed)
	assert.Equal(t, []string{"red"}, added)
}

func TestCompute_Identical(t *testing.T) {
	t.Parallel()

	for _, g := range []diff.Granularity{diff.Chars, diff.Words, diff.Lines} {
		spans := diff.Compute("same content\n", "same content\n", g)
		require.Len(t, spans, 1)
		assert.Equal(t, diff.Unchanged, spans[0].Op)
	}
}

func TestCompute_EmptySides(t *testing.T) {
	t.Parallel()

	spans := diff.Compute("", "new content", diff.Chars)
	require.Len(t, spans, 1)
	assert.Equal(t, diff.Added, spans[0].Op)

	spans = diff.Compute("old content", "", diff.Chars)
	require.Len(t, spans, 1)
	assert.Equal(t, diff.Removed, spans[0].Op)

	assert.Empty(t, diff.Compute("", "", diff.Chars))
}

func TestApplyAndRevert(t *testing.T) {
	t.Parallel()

	oldText := "alpha\nbeta\ngamma\n"
	newText := "alpha\ndelta\ngamma\nepsilon\n"

	for _, g := range []diff.Granularity{diff.Chars, diff.Words, diff.Lines} {
		spans := diff.Compute(oldText, newText, g)
		assert.Equal(t, newText, diff.Apply(spans))
		assert.Equal(t, oldText, diff.Revert(spans))
	}
}

func TestGranularityFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  artifact.Type
		want diff.Granularity
	}{
		{artifact.TypeCode, diff.Lines},
		{artifact.TypeHTML, diff.Lines},
		{artifact.TypeReact, diff.Lines},
		{artifact.TypeSVG, diff.Lines},
		{artifact.TypeMermaid, diff.Lines},
		{artifact.TypeMarkdown, diff.Words},
		{artifact.TypeImage, diff.Words},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, diff.GranularityFor(tt.typ), "type %s", tt.typ)
	}
}

func TestOpString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unchanged", diff.Unchanged.String())
	assert.Equal(t, "added", diff.Added.String())
	assert.Equal(t, "removed", diff.Removed.String())
}

// The round-trip property is the contract the renderer relies on: for any
// two byte sequences (valid UTF-8 or not) and any granularity, replaying the
// spans forwards reproduces the new text and replaying them backwards
// reproduces the old text.
func TestComputeRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		oldText := string(rapid.SliceOf(rapid.Byte()).Draw(t, "old"))
		newText := string(rapid.SliceOf(rapid.Byte()).Draw(t, "new"))
		g := rapid.SampledFrom([]diff.Granularity{
			diff.Chars, diff.Words, diff.Lines,
		}).Draw(t, "granularity")

		spans := diff.Compute(oldText, newText, g)
		assert.Equal(t, newText, diff.Apply(spans))
		assert.Equal(t, oldText, diff.Revert(spans))
	})
}

// Content is arbitrary bytes, not guaranteed UTF-8 (binary-ish artifact
// payloads, mojibake). The round trip must preserve the exact bytes rather
// than silently substituting replacement characters.
func TestComputeRoundTrip_InvalidUTF8(t *testing.T) {
	t.Parallel()

	oldText := "abc\xff\xfedef"
	newText := "abc\xff\xfeDEF"

	for _, g := range []diff.Granularity{diff.Chars, diff.Words, diff.Lines} {
		spans := diff.Compute(oldText, newText, g)
		assert.Equal(t, newText, diff.Apply(spans), "granularity %d", g)
		assert.Equal(t, oldText, diff.Revert(spans), "granularity %d", g)
	}

	// Invalid bytes on one side only.
	spans := diff.Compute("plain text", "plain \x80 text", diff.Chars)
	assert.Equal(t, "plain \x80 text", diff.Apply(spans))
	assert.Equal(t, "plain text", diff.Revert(spans))
}

// Word diffs of large inputs can see more distinct tokens than there are
// code points below the surrogate range; the token encoding must stay
// lossless past that point.
func TestComputeRoundTrip_ManyDistinctTokens(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 60000; i++ {
		fmt.Fprintf(&b, "token%d ", i)
	}
	oldText := b.String()
	newText := oldText + "tail"

	spans := diff.Compute(oldText, newText, diff.Words)
	assert.Equal(t, newText, diff.Apply(spans))
	assert.Equal(t, oldText, diff.Revert(spans))

	var added []string
	for _, s := range spans {
		if s.Op == diff.Added {
			added = append(added, s.Text)
		}
	}
	assert.Equal(t, []string{"tail"}, added)
}
