package detect

import (
	"regexp"
	"strings"

	"github.com/easelhq/easel/internal/artifact"
)

// declarationRes extract a name from the first function/class/const
// declaration in a code block, tried in order.
var declarationRes = []*regexp.Regexp{
	regexp.MustCompile(`function\s+([A-Za-z_$][\w$]*)\s*\(`),
	regexp.MustCompile(`class\s+([A-Za-z_][\w]*)`),
	regexp.MustCompile(`def\s+([A-Za-z_][\w]*)\s*\(`),
	regexp.MustCompile(`func\s+(?:\([^)]*\)\s*)?([A-Za-z_][\w]*)\s*\(`),
	regexp.MustCompile(`(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=`),
}

// declarationTitle returns the name of the first recognizable declaration
// in code, or "" when none is found.
func declarationTitle(code string) string {
	for _, re := range declarationRes {
		if m := re.FindStringSubmatch(code); m != nil {
			return m[1]
		}
	}
	return ""
}

// languageDisplayNames covers tags whose display form is not a simple
// capitalization.
var languageDisplayNames = map[string]string{
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"jsx":        "JSX",
	"tsx":        "TSX",
	"cpp":        "C++",
	"csharp":     "C#",
	"html":       "HTML",
	"css":        "CSS",
	"sql":        "SQL",
	"json":       "JSON",
	"yaml":       "YAML",
	"php":        "PHP",
}

// languageTitle builds a fallback title from a fence's language tag.
func languageTitle(lang string) string {
	if lang == "" {
		return "Code"
	}
	name, ok := languageDisplayNames[lang]
	if !ok {
		name = strings.ToUpper(lang[:1]) + lang[1:]
	}
	return name + " Code"
}

// firstHeaderTitle returns the text of the first markdown header in prose,
// or "" when there is none.
func firstHeaderTitle(prose string) string {
	if m := firstHeaderRe.FindStringSubmatch(prose); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// componentName extracts the exported component name from React source.
// Component names must start with an uppercase letter; anything else is not
// a component and is ignored.
func componentName(src string) string {
	for _, re := range componentNameRes {
		if m := re.FindStringSubmatch(src); m != nil {
			return m[1]
		}
	}
	return ""
}

// defaultTitle is the per-type fallback when no better title can be
// inferred.
func defaultTitle(typ artifact.Type) string {
	switch typ {
	case artifact.TypeCode:
		return "Code"
	case artifact.TypeHTML:
		return "HTML Document"
	case artifact.TypeReact:
		return "React Component"
	case artifact.TypeSVG:
		return "SVG Graphic"
	case artifact.TypeMarkdown:
		return "Document"
	case artifact.TypeMermaid:
		return "Diagram"
	case artifact.TypeImage:
		return "Image"
	default:
		return "Artifact"
	}
}

// titleFromObject turns the object noun phrase of a creation request into a
// display title: trailing qualifiers after common prepositions are dropped
// and the remainder is title-cased.
func titleFromObject(object string) string {
	object = strings.TrimSpace(strings.Trim(object, ".!?,"))
	for _, sep := range []string{" that ", " which ", " with ", " using ", " for "} {
		if i := strings.Index(strings.ToLower(object), sep); i > 0 {
			object = object[:i]
		}
	}

	words := strings.Fields(object)
	if len(words) > 6 {
		words = words[:6]
	}
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	if len(words) == 0 {
		return "Artifact"
	}
	return strings.Join(words, " ")
}
