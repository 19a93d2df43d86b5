// Package diff computes structural differences between two versions of
// artifact content for display purposes.
//
// Diffing is purely textual (no AST awareness) and is built on
// diff-match-patch. Word and line granularity reuse the character-level
// algorithm by encoding each distinct token as one rune; character
// granularity on content that is not valid UTF-8 goes through the same
// encoding so that raw bytes survive the round trip.
//
// All functions are pure and safe for concurrent use.
package diff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/easelhq/easel/internal/artifact"
)

// Op classifies one span of a diff.
type Op int

const (
	Unchanged Op = iota
	Added
	Removed
)

// String returns a short label for the op.
func (o Op) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Span is one contiguous run of the diff. The concatenation of Unchanged
// and Removed spans is exactly the old content; Unchanged and Added spans
// concatenate to exactly the new content.
type Span struct {
	Op   Op
	Text string
}

// Granularity selects the unit of comparison.
type Granularity int

const (
	Chars Granularity = iota
	Words
	Lines
)

// GranularityFor returns the recommended display granularity for an
// artifact type: lines for code-like content, words for text.
func GranularityFor(t artifact.Type) Granularity {
	switch t {
	case artifact.TypeCode, artifact.TypeHTML, artifact.TypeReact,
		artifact.TypeSVG, artifact.TypeMermaid:
		return Lines
	default:
		return Words
	}
}

// Compute diffs oldText against newText at the given granularity.
func Compute(oldText, newText string, g Granularity) []Span {
	dmp := diffmatchpatch.New()

	var diffs []diffmatchpatch.Diff
	switch g {
	case Lines:
		diffs = tokenDiff(dmp, splitLines(oldText), splitLines(newText))
	case Words:
		diffs = tokenDiff(dmp, splitWords(oldText), splitWords(newText))
	default:
		if utf8.ValidString(oldText) && utf8.ValidString(newText) {
			diffs = dmp.DiffMain(oldText, newText, false)
		} else {
			// DiffMain converts inputs through []rune, replacing invalid
			// bytes with U+FFFD. Encoding byte-preserving tokens instead
			// keeps the exact input bytes in the spans.
			diffs = tokenDiff(dmp, splitRunes(oldText), splitRunes(newText))
		}
	}

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		spans = append(spans, Span{Op: opFor(d.Type), Text: d.Text})
	}
	return spans
}

// Apply reconstructs the new content from a diff: unchanged and added spans
// are kept, removed spans are dropped. Apply(Compute(old, new, g)) equals
// new for every granularity.
func Apply(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Op != Removed {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Revert reconstructs the old content from a diff: unchanged and removed
// spans are kept, added spans are dropped.
func Revert(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Op != Added {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func opFor(t diffmatchpatch.Operation) Op {
	switch t {
	case diffmatchpatch.DiffInsert:
		return Added
	case diffmatchpatch.DiffDelete:
		return Removed
	default:
		return Unchanged
	}
}

// tokenDiff runs the character-level diff over token-encoded inputs and
// decodes the result back into text diffs.
func tokenDiff(dmp *diffmatchpatch.DiffMatchPatch, oldTokens, newTokens []string) []diffmatchpatch.Diff {
	oldEnc, newEnc, decode := tokensToChars(oldTokens, newTokens)
	diffs := dmp.DiffMain(oldEnc, newEnc, false)
	return charsToTokens(diffs, decode)
}

// tokensToChars encodes both token sequences as strings of runes, one rune
// per distinct token. Rune values start at 1 and skip the surrogate range
// U+D800..U+DFFF, which Go strings cannot carry: writing a surrogate emits
// U+FFFD and would decode to the wrong token. Capacity is therefore the
// count of non-surrogate code points, about 1.1 million distinct tokens.
func tokensToChars(oldTokens, newTokens []string) (string, string, map[rune]string) {
	index := make(map[string]rune)
	decode := make(map[rune]string)
	next := rune(1)

	encode := func(tokens []string) string {
		var b strings.Builder
		for _, tok := range tokens {
			r, ok := index[tok]
			if !ok {
				if next == 0xD800 {
					next = 0xE000
				}
				r = next
				next++
				index[tok] = r
				decode[r] = tok
			}
			b.WriteRune(r)
		}
		return b.String()
	}

	return encode(oldTokens), encode(newTokens), decode
}

// charsToTokens decodes diffs produced on token-encoded strings back into
// text diffs.
func charsToTokens(diffs []diffmatchpatch.Diff, decode map[rune]string) []diffmatchpatch.Diff {
	out := make([]diffmatchpatch.Diff, 0, len(diffs))
	for _, d := range diffs {
		var b strings.Builder
		for _, r := range d.Text {
			b.WriteString(decode[r])
		}
		out = append(out, diffmatchpatch.Diff{Type: d.Type, Text: b.String()})
	}
	return out
}

// splitWords splits s into alternating runs of whitespace and
// non-whitespace. The runs concatenate back to s exactly, which is what
// makes the word diff round-trip.
func splitWords(s string) []string {
	var tokens []string
	start := 0
	var inSpace bool
	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if i == 0 {
			inSpace = isSpace
			continue
		}
		if isSpace != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
			inSpace = isSpace
		}
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// splitLines splits s after every newline. The segments concatenate back to
// s exactly, including a trailing segment without a newline.
func splitLines(s string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			tokens = append(tokens, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// splitRunes splits s into individual UTF-8 sequences; an invalid byte
// becomes its own one-byte token so the original bytes are preserved.
func splitRunes(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		tokens = append(tokens, s[i:i+size])
		i += size
	}
	return tokens
}
