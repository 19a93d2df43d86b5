package detect

import "strings"

// fence is one fenced code block extracted from the input.
type fence struct {
	lang    string
	content string
}

func (f fence) lineCount() int {
	if f.content == "" {
		return 0
	}
	return strings.Count(f.content, "\n") + 1
}

// document is the pre-parsed view of one detection input: the raw text, its
// fenced blocks, and the prose that remains once fences are removed. Rules
// that look for document markup or structural signals inspect the prose so
// that quoted code cannot trigger them.
type document struct {
	raw       string
	prose     string
	fences    []fence
	lineCount int
}

// parseDocument splits content into fenced blocks and surrounding prose.
// A fence opens with ``` (optionally tagged with a language) and closes with
// the next ``` line; an unterminated fence runs to the end of input.
func parseDocument(content string) *document {
	lines := strings.Split(content, "\n")

	doc := &document{
		raw:       content,
		lineCount: len(lines),
	}

	var prose, block []string
	var lang string
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				doc.fences = append(doc.fences, fence{
					lang:    lang,
					content: strings.Join(block, "\n"),
				})
				block = nil
				inFence = false
				continue
			}
			lang = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "```")))
			inFence = true
			continue
		}

		if inFence {
			block = append(block, line)
		} else {
			prose = append(prose, line)
		}
	}

	if inFence {
		doc.fences = append(doc.fences, fence{
			lang:    lang,
			content: strings.Join(block, "\n"),
		})
	}

	doc.prose = strings.Join(prose, "\n")
	return doc
}
