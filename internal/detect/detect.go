package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/easelhq/easel/internal/artifact"
)

const (
	// DefaultMinLines is the fenced-code line threshold below which a
	// snippet stays inline chat text regardless of keyword matches.
	DefaultMinLines = 30

	// DefaultThreshold is the confidence floor for materializing an
	// artifact.
	DefaultThreshold = 0.75

	// intentMinLines is the minimum content length for the
	// conversational-intent fallback rule.
	intentMinLines = 5

	// documentMinLines is the minimum content length for document markup
	// without an explicit <title> element.
	documentMinLines = 10
)

// Config tunes the detection heuristics.
type Config struct {
	// MinLines is the line-count threshold for the fenced-code and
	// structured-document rules. Default: DefaultMinLines.
	MinLines int

	// Threshold is the minimum confidence at which ShouldMaterialize
	// reports true. Default: DefaultThreshold.
	Threshold float64
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		MinLines:  DefaultMinLines,
		Threshold: DefaultThreshold,
	}
}

// Result is the outcome of one detection pass.
//
// ShouldCreate reports whether any rule matched; Confidence qualifies how
// strongly. Callers decide materialization against a threshold (see
// Detector.ShouldMaterialize) rather than from ShouldCreate alone.
type Result struct {
	ShouldCreate bool          `json:"should_create"`
	Confidence   float64       `json:"confidence"`
	Type         artifact.Type `json:"type,omitempty"`
	Language     string        `json:"language,omitempty"`
	Title        string        `json:"title,omitempty"`
	Reason       string        `json:"reason"`
}

// Detector classifies generated content. The zero value is not useful;
// construct with New.
type Detector struct {
	cfg Config
}

// New creates a Detector. Zero fields in cfg fall back to defaults.
func New(cfg Config) *Detector {
	if cfg.MinLines <= 0 {
		cfg.MinLines = DefaultMinLines
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Detector{cfg: cfg}
}

// Detect classifies content without conversational context.
// Pure and deterministic; never fails.
func (d *Detector) Detect(content string) Result {
	return d.DetectInContext(content, "")
}

// DetectInContext classifies content with the immediately preceding user
// message available for the conversational-intent fallback rule.
//
// Rules run in a fixed order and the first match wins:
//
//  1. explicit <artifact> marker (confidence 1.0)
//  2. single large fenced code block (0.9)
//  3. multiple fenced blocks past the threshold (0.8)
//  4. HTML document markup (0.95 with <title>, else 0.85)
//  5. React import signature (0.95)
//  6. standalone SVG markup (1.0)
//  7. Mermaid diagram block (1.0)
//  8. structured long-form text (0.75)
//  9. explicit creation request in userRequest (0.7)
func (d *Detector) DetectInContext(content, userRequest string) Result {
	doc := parseDocument(content)

	checks := []func(*document) (Result, bool){
		d.matchMarker,
		d.matchSingleCodeBlock,
		d.matchMultipleCodeBlocks,
		d.matchHTMLDocument,
		d.matchReactComponent,
		d.matchSVG,
		d.matchMermaid,
		d.matchStructuredText,
		func(doc *document) (Result, bool) { return d.matchIntent(doc, userRequest) },
	}

	for _, check := range checks {
		if r, ok := check(doc); ok {
			r.ShouldCreate = true
			return r
		}
	}

	return Result{Reason: "no heuristic matched"}
}

// ShouldMaterialize reports whether r clears the configured confidence
// threshold. Results between a rule match and the threshold stay inline
// as chat text.
func (d *Detector) ShouldMaterialize(r Result) bool {
	return r.ShouldCreate && r.Confidence >= d.cfg.Threshold
}

// markerRe matches the author-supplied override marker, e.g.
//
//	<artifact type="code" language="go" title="Rate Limiter">
var (
	markerRe         = regexp.MustCompile(`<artifact\s+([^>]*?)/?>`)
	markerAttrRe     = regexp.MustCompile(`(\w+)="([^"]*)"`)
	htmlDocRe        = regexp.MustCompile(`(?i)<(!DOCTYPE\s+html|html|head|body)[\s>]`)
	htmlTitleRe      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	reactImportRe    = regexp.MustCompile(`(?m)^\s*import\s+(?:React\b|.*from\s+['"]react['"])`)
	headerLineRe     = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	listLineRe       = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+\S`)
	tableLineRe      = regexp.MustCompile(`(?m)^\s*\|.*\|\s*$`)
	firstHeaderRe    = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	intentRe         = regexp.MustCompile(`(?i)\b(?:build|create|make|generate|write|design)\s+(?:me\s+)?(?:(?:an|a|the)\s+)?([^.!?\n]+)`)
	componentNameRes = []*regexp.Regexp{
		regexp.MustCompile(`export\s+default\s+function\s+([A-Z]\w*)`),
		regexp.MustCompile(`function\s+([A-Z]\w*)\s*\(`),
		regexp.MustCompile(`(?:const|let)\s+([A-Z]\w*)\s*=`),
		regexp.MustCompile(`class\s+([A-Z]\w*)\s+extends`),
	}
)

// matchMarker implements rule 1: an unambiguous structured marker is the
// override escape hatch and always takes priority over heuristics.
func (d *Detector) matchMarker(doc *document) (Result, bool) {
	m := markerRe.FindStringSubmatch(doc.raw)
	if m == nil {
		return Result{}, false
	}

	attrs := make(map[string]string)
	for _, kv := range markerAttrRe.FindAllStringSubmatch(m[1], -1) {
		attrs[strings.ToLower(kv[1])] = kv[2]
	}

	typ := artifact.Type(attrs["type"])
	if artifact.ValidateType(typ) != nil {
		return Result{}, false
	}

	title := attrs["title"]
	if title == "" {
		title = defaultTitle(typ)
	}

	return Result{
		Confidence: 1.0,
		Type:       typ,
		Language:   attrs["language"],
		Title:      title,
		Reason:     "explicit artifact marker",
	}, true
}

// matchSingleCodeBlock implements rule 2.
func (d *Detector) matchSingleCodeBlock(doc *document) (Result, bool) {
	if len(doc.fences) != 1 {
		return Result{}, false
	}
	block := doc.fences[0]
	if block.lineCount() < d.cfg.MinLines {
		return Result{}, false
	}

	title := declarationTitle(block.content)
	if title == "" {
		title = languageTitle(block.lang)
	}

	return Result{
		Confidence: 0.9,
		Type:       artifact.TypeCode,
		Language:   block.lang,
		Title:      title,
		Reason:     fmt.Sprintf("single fenced code block of %d lines", block.lineCount()),
	}, true
}

// matchMultipleCodeBlocks implements rule 3: several blocks summing past the
// threshold read as a tutorial-style document, not one code file.
func (d *Detector) matchMultipleCodeBlocks(doc *document) (Result, bool) {
	if len(doc.fences) < 2 {
		return Result{}, false
	}
	total := 0
	for _, b := range doc.fences {
		total += b.lineCount()
	}
	if total < d.cfg.MinLines {
		return Result{}, false
	}

	title := firstHeaderTitle(doc.prose)
	if title == "" {
		title = "Code Walkthrough"
	}

	return Result{
		Confidence: 0.8,
		Type:       artifact.TypeMarkdown,
		Title:      title,
		Reason:     fmt.Sprintf("%d fenced blocks totaling %d lines", len(doc.fences), total),
	}, true
}

// matchHTMLDocument implements rule 4. Markup inside fenced blocks does not
// count; a tutorial quoting HTML is not itself an HTML document.
func (d *Detector) matchHTMLDocument(doc *document) (Result, bool) {
	if !htmlDocRe.MatchString(doc.prose) {
		return Result{}, false
	}

	if m := htmlTitleRe.FindStringSubmatch(doc.prose); m != nil {
		title := strings.TrimSpace(m[1])
		if title == "" {
			title = defaultTitle(artifact.TypeHTML)
		}
		return Result{
			Confidence: 0.95,
			Type:       artifact.TypeHTML,
			Title:      title,
			Reason:     "document markup with title element",
		}, true
	}

	if doc.lineCount < documentMinLines {
		return Result{}, false
	}
	return Result{
		Confidence: 0.85,
		Type:       artifact.TypeHTML,
		Title:      defaultTitle(artifact.TypeHTML),
		Reason:     "document markup without title element",
	}, true
}

// matchReactComponent implements rule 5.
func (d *Detector) matchReactComponent(doc *document) (Result, bool) {
	if !reactImportRe.MatchString(doc.raw) {
		return Result{}, false
	}

	title := componentName(doc.raw)
	if title == "" {
		title = defaultTitle(artifact.TypeReact)
	}

	return Result{
		Confidence: 0.95,
		Type:       artifact.TypeReact,
		Language:   "jsx",
		Title:      title,
		Reason:     "react import signature",
	}, true
}

// matchSVG implements rule 6: standalone vector markup, not SVG quoted
// inside a larger document.
func (d *Detector) matchSVG(doc *document) (Result, bool) {
	trimmed := strings.TrimSpace(doc.raw)
	if !strings.HasPrefix(trimmed, "<svg") || !strings.Contains(trimmed, "</svg>") {
		return Result{}, false
	}

	title := defaultTitle(artifact.TypeSVG)
	if m := htmlTitleRe.FindStringSubmatch(trimmed); m != nil && strings.TrimSpace(m[1]) != "" {
		title = strings.TrimSpace(m[1])
	}

	return Result{
		Confidence: 1.0,
		Type:       artifact.TypeSVG,
		Title:      title,
		Reason:     "standalone svg markup",
	}, true
}

// mermaidKeywords maps a diagram-opening keyword to a display title.
// Order matters: longer, more specific keywords first.
var mermaidKeywords = []struct {
	keyword string
	title   string
}{
	{"sequenceDiagram", "Sequence Diagram"},
	{"classDiagram", "Class Diagram"},
	{"stateDiagram", "State Diagram"},
	{"erDiagram", "ER Diagram"},
	{"flowchart", "Flowchart"},
	{"gantt", "Gantt Chart"},
	{"pie", "Pie Chart"},
	{"graph", "Flowchart"},
}

// matchMermaid implements rule 7. Matches a mermaid-tagged fence or bare
// content opening with a diagram keyword.
func (d *Detector) matchMermaid(doc *document) (Result, bool) {
	body := ""
	for _, b := range doc.fences {
		if strings.EqualFold(b.lang, "mermaid") {
			body = b.content
			break
		}
	}
	if body == "" {
		trimmed := strings.TrimSpace(doc.raw)
		for _, kw := range mermaidKeywords {
			if strings.HasPrefix(trimmed, kw.keyword) {
				body = trimmed
				break
			}
		}
	}
	if body == "" {
		return Result{}, false
	}

	title := "Diagram"
	for _, kw := range mermaidKeywords {
		if strings.HasPrefix(strings.TrimSpace(body), kw.keyword) {
			title = kw.title
			break
		}
	}

	return Result{
		Confidence: 1.0,
		Type:       artifact.TypeMermaid,
		Title:      title,
		Reason:     "mermaid diagram block",
	}, true
}

// matchStructuredText implements rule 8: long-form text with at least two
// structural signals (headers, lists, tables).
func (d *Detector) matchStructuredText(doc *document) (Result, bool) {
	if doc.lineCount < d.cfg.MinLines {
		return Result{}, false
	}

	signals := 0
	for _, re := range []*regexp.Regexp{headerLineRe, listLineRe, tableLineRe} {
		if re.MatchString(doc.prose) {
			signals++
		}
	}
	if signals < 2 {
		return Result{}, false
	}

	title := firstHeaderTitle(doc.prose)
	if title == "" {
		title = "Document"
	}

	return Result{
		Confidence: 0.75,
		Type:       artifact.TypeMarkdown,
		Title:      title,
		Reason:     fmt.Sprintf("structured text with %d signals over %d lines", signals, doc.lineCount),
	}, true
}

// matchIntent implements rule 9: the preceding user turn asked for something
// to be built and the reply is long enough to plausibly be it.
func (d *Detector) matchIntent(doc *document, userRequest string) (Result, bool) {
	if userRequest == "" || doc.lineCount < intentMinLines {
		return Result{}, false
	}
	m := intentRe.FindStringSubmatch(userRequest)
	if m == nil {
		return Result{}, false
	}

	object := strings.TrimSpace(m[1])
	typ := typeFromRequest(object)
	title := titleFromObject(object)

	return Result{
		Confidence: 0.7,
		Type:       typ,
		Title:      title,
		Reason:     "explicit creation request in preceding user turn",
	}, true
}

// typeFromRequest infers an artifact type from keywords in the request's
// object noun phrase.
func typeFromRequest(object string) artifact.Type {
	lower := strings.ToLower(object)
	switch {
	case containsAny(lower, "react component", "component", "jsx"):
		return artifact.TypeReact
	case containsAny(lower, "web page", "webpage", "website", "html", "landing page"):
		return artifact.TypeHTML
	case containsAny(lower, "diagram", "flowchart", "sequence chart"):
		return artifact.TypeMermaid
	case containsAny(lower, "svg", "logo", "icon"):
		return artifact.TypeSVG
	case containsAny(lower, "script", "function", "program", "class", "parser", "algorithm", "code"):
		return artifact.TypeCode
	default:
		return artifact.TypeMarkdown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
