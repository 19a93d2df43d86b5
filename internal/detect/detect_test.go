package detect_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/easelhq/easel/internal/artifact"
	"github.com/easelhq/easel/internal/detect"
)

func fencedCode(lang string, lines int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "```%s\n", lang)
	b.WriteString("function calculateTotal(items) {\n")
	for i := 0; i < lines-3; i++ {
		fmt.Fprintf(&b, "  total += items[%d].price;\n", i)
	}
	b.WriteString("}\n```")
	return b.String()
}

func TestDetector_SingleCodeBlock(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	r := d.Detect(fencedCode("javascript", 40))
	assert.True(t, r.ShouldCreate)
	assert.Equal(t, artifact.TypeCode, r.Type)
	assert.Equal(t, "javascript", r.Language)
	assert.InDelta(t, 0.9, r.Confidence, 1e-9)
	// Title comes from the first declaration in the block.
	assert.Equal(t, "calculateTotal", r.Title)
	assert.True(t, d.ShouldMaterialize(r))
}

func TestDetector_ShortSnippetStaysInline(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	r := d.Detect("```python\nprint('hi')\n```")
	assert.False(t, r.ShouldCreate)
	assert.Zero(t, r.Confidence)
	assert.False(t, d.ShouldMaterialize(r))
}

func TestDetector_MarkerOverridesEverything(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	// One line of content, no heuristic would fire; the marker still does.
	r := d.Detect(`<artifact type="code" language="go" title="Rate Limiter"> x`)
	require.True(t, r.ShouldCreate)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, artifact.TypeCode, r.Type)
	assert.Equal(t, "go", r.Language)
	assert.Equal(t, "Rate Limiter", r.Title)
}

func TestDetector_MarkerWithUnknownTypeIgnored(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	r := d.Detect(`<artifact type="video" title="Clip">`)
	assert.False(t, r.ShouldCreate)
}

func TestDetector_MultipleCodeBlocks(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	content := "# Building a Parser\n\n" +
		fencedCode("go", 20) + "\n\nand then\n\n" + fencedCode("go", 20)
	r := d.Detect(content)
	require.True(t, r.ShouldCreate)
	assert.Equal(t, artifact.TypeMarkdown, r.Type)
	assert.InDelta(t, 0.8, r.Confidence, 1e-9)
	assert.Equal(t, "Building a Parser", r.Title)
}

func TestDetector_HTMLDocument(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	t.Run("with title element", func(t *testing.T) {
		t.Parallel()
		r := d.Detect("<!DOCTYPE html>\n<html>\n<head><title>Landing Page</title></head>\n<body></body>\n</html>")
		require.True(t, r.ShouldCreate)
		assert.Equal(t, artifact.TypeHTML, r.Type)
		assert.InDelta(t, 0.95, r.Confidence, 1e-9)
		assert.Equal(t, "Landing Page", r.Title)
	})

	t.Run("without title element", func(t *testing.T) {
		t.Parallel()
		body := "<html>\n<body>\n" + strings.Repeat("<p>hello</p>\n", 10) + "</body>\n</html>"
		r := d.Detect(body)
		require.True(t, r.ShouldCreate)
		assert.InDelta(t, 0.85, r.Confidence, 1e-9)
		assert.Equal(t, "HTML Document", r.Title)
	})

	t.Run("quoted html inside a fence does not count", func(t *testing.T) {
		t.Parallel()
		r := d.Detect("```html\n<html><body></body></html>\n```")
		assert.False(t, r.ShouldCreate)
	})
}

func TestDetector_ReactComponent(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	src := "import React from 'react';\n\nexport default function TodoList() {\n  return <ul/>;\n}\n"
	r := d.Detect(src)
	require.True(t, r.ShouldCreate)
	assert.Equal(t, artifact.TypeReact, r.Type)
	assert.Equal(t, "jsx", r.Language)
	assert.InDelta(t, 0.95, r.Confidence, 1e-9)
	assert.Equal(t, "TodoList", r.Title)
}

func TestDetector_SVG(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	r := d.Detect(`<svg xmlns="http://www.w3.org/2000/svg"><circle r="4"/></svg>`)
	require.True(t, r.ShouldCreate)
	assert.Equal(t, artifact.TypeSVG, r.Type)
	assert.Equal(t, 1.0, r.Confidence)
}

func TestDetector_Mermaid(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	t.Run("fenced", func(t *testing.T) {
		t.Parallel()
		r := d.Detect("```mermaid\nsequenceDiagram\n  A->>B: hello\n```")
		require.True(t, r.ShouldCreate)
		assert.Equal(t, artifact.TypeMermaid, r.Type)
		assert.Equal(t, 1.0, r.Confidence)
		assert.Equal(t, "Sequence Diagram", r.Title)
	})

	t.Run("bare keyword", func(t *testing.T) {
		t.Parallel()
		r := d.Detect("flowchart TD\n  A --> B")
		require.True(t, r.ShouldCreate)
		assert.Equal(t, artifact.TypeMermaid, r.Type)
		assert.Equal(t, "Flowchart", r.Title)
	})
}

// A large mermaid diagram inside a plain fence classifies as code: the fenced
// rule runs first and first match wins. The ordering is deliberate and this
// test pins it.
func TestDetector_RuleOrderIsFixed(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	var b strings.Builder
	b.WriteString("```\nflowchart TD\n")
	for i := 0; i < 35; i++ {
		fmt.Fprintf(&b, "  n%d --> n%d\n", i, i+1)
	}
	b.WriteString("```")

	r := d.Detect(b.String())
	require.True(t, r.ShouldCreate)
	assert.Equal(t, artifact.TypeCode, r.Type)
	assert.InDelta(t, 0.9, r.Confidence, 1e-9)
}

func TestDetector_StructuredText(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	var b strings.Builder
	b.WriteString("# Project Plan\n\n")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "- task %d\n", i)
		fmt.Fprintf(&b, "  detail line for task %d\n", i)
	}
	r := d.Detect(b.String())
	require.True(t, r.ShouldCreate)
	assert.Equal(t, artifact.TypeMarkdown, r.Type)
	assert.InDelta(t, 0.75, r.Confidence, 1e-9)
	assert.Equal(t, "Project Plan", r.Title)
	// Exactly at the default threshold, so it materializes.
	assert.True(t, d.ShouldMaterialize(r))
}

func TestDetector_Intent(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	content := "Here you go:\nstep one\nstep two\nstep three\nstep four\nstep five"

	r := d.DetectInContext(content, "please build me a react component for the sidebar")
	require.True(t, r.ShouldCreate)
	assert.Equal(t, artifact.TypeReact, r.Type)
	assert.InDelta(t, 0.7, r.Confidence, 1e-9)
	// 0.7 sits below the default 0.75 threshold: detected, not materialized.
	assert.False(t, d.ShouldMaterialize(r))

	t.Run("no request means no intent match", func(t *testing.T) {
		t.Parallel()
		r := d.DetectInContext(content, "")
		assert.False(t, r.ShouldCreate)
	})

	t.Run("too short even with request", func(t *testing.T) {
		t.Parallel()
		r := d.DetectInContext("done", "create a script")
		assert.False(t, r.ShouldCreate)
	})
}

func TestDetector_IntentTitles(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())
	content := strings.Repeat("line\n", 6)

	tests := []struct {
		request   string
		wantType  artifact.Type
		wantTitle string
	}{
		{"write a python script that scrapes news", artifact.TypeCode, "Python Script"},
		{"create a landing page for my shop", artifact.TypeHTML, "Landing Page"},
		{"generate a flowchart of the pipeline", artifact.TypeMermaid, "Flowchart Of The Pipeline"},
		{"design an svg logo with gradients", artifact.TypeSVG, "Svg Logo"},
	}
	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			t.Parallel()
			r := d.DetectInContext(content, tt.request)
			require.True(t, r.ShouldCreate)
			assert.Equal(t, tt.wantType, r.Type)
			assert.Equal(t, tt.wantTitle, r.Title)
		})
	}
}

func TestDetector_PlainProse(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	r := d.Detect("The quick brown fox jumps over the lazy dog. Nothing to see here.")
	assert.False(t, r.ShouldCreate)
	assert.Equal(t, "no heuristic matched", r.Reason)
}

func TestDetector_CustomMinLines(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.Config{MinLines: 5, Threshold: 0.75})

	r := d.Detect(fencedCode("go", 6))
	assert.True(t, r.ShouldCreate)
	assert.Equal(t, artifact.TypeCode, r.Type)
}

// Detection is pure: for any input and any threshold, ShouldMaterialize
// implies ShouldCreate, confidence stays in [0,1], and repeated runs agree.
func TestDetector_Invariants(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		content := rapid.String().Draw(t, "content")
		request := rapid.String().Draw(t, "request")
		threshold := rapid.Float64Range(0.01, 1.0).Draw(t, "threshold")

		d := detect.New(detect.Config{Threshold: threshold})
		r1 := d.DetectInContext(content, request)
		r2 := d.DetectInContext(content, request)

		assert.Equal(t, r1, r2)
		assert.GreaterOrEqual(t, r1.Confidence, 0.0)
		assert.LessOrEqual(t, r1.Confidence, 1.0)
		if d.ShouldMaterialize(r1) {
			assert.True(t, r1.ShouldCreate)
			assert.GreaterOrEqual(t, r1.Confidence, threshold)
		}
		if r1.ShouldCreate {
			assert.NoError(t, artifact.ValidateType(r1.Type))
		}
	})
}

// Confidence never decreases as a code block or structured document grows:
// below the line threshold it is 0, at and above it the rule's fixed
// confidence. There is no shape where more lines demote the result.
func TestDetector_ConfidenceMonotonicInLineCount(t *testing.T) {
	t.Parallel()
	d := detect.New(detect.DefaultConfig())

	t.Run("single code block", func(t *testing.T) {
		t.Parallel()
		prev := 0.0
		for lines := 3; lines <= 60; lines++ {
			r := d.Detect(fencedCode("go", lines))
			assert.GreaterOrEqual(t, r.Confidence, prev, "at %d lines", lines)
			prev = r.Confidence
		}
	})

	t.Run("structured document", func(t *testing.T) {
		t.Parallel()
		prev := 0.0
		for lines := 5; lines <= 60; lines += 5 {
			var b strings.Builder
			b.WriteString("# Notes\n")
			for i := 0; i < lines-1; i++ {
				fmt.Fprintf(&b, "- item %d\n", i)
			}
			r := d.Detect(b.String())
			assert.GreaterOrEqual(t, r.Confidence, prev, "at %d lines", lines)
			prev = r.Confidence
		}
	})
}
