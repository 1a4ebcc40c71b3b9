package report

import (
	"regexp"
	"strings"
)

// LineKind classifies one line of markdown-like agent text.
type LineKind int

const (
	LineParagraph LineKind = iota
	LineHeading1
	LineHeading2
	LineHeading3
	LineBullet
	LineNumbered
	LineBlank
)

// Line is one classified line with its marker prefix removed.
type Line struct {
	Kind LineKind
	Text string
}

var numberedPattern = regexp.MustCompile(`^\d+\.\s`)

// ClassifyLine maps a raw line onto the small markdown subset the
// agent uses: three heading levels, bullets, numbered items, blanks,
// and plain paragraphs.
func ClassifyLine(line string) Line {
	switch {
	case strings.HasPrefix(line, "### "):
		return Line{Kind: LineHeading3, Text: line[4:]}
	case strings.HasPrefix(line, "## "):
		return Line{Kind: LineHeading2, Text: line[3:]}
	case strings.HasPrefix(line, "# "):
		return Line{Kind: LineHeading1, Text: line[2:]}
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return Line{Kind: LineBullet, Text: line[2:]}
	case numberedPattern.MatchString(line):
		return Line{Kind: LineNumbered, Text: numberedPattern.ReplaceAllString(line, "")}
	case strings.TrimSpace(line) == "":
		return Line{Kind: LineBlank}
	default:
		return Line{Kind: LineParagraph, Text: line}
	}
}

// ClassifyLines classifies every line of a block of text.
func ClassifyLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, ClassifyLine(l))
	}
	return lines
}

// Span is a run of inline text, emphasized or not.
type Span struct {
	Text string
	Bold bool
}

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// BoldSpans splits text on paired ** markers. Unpaired or absent
// markers are left literal.
func BoldSpans(text string) []Span {
	matches := boldPattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return []Span{{Text: text}}
	}

	var spans []Span
	last := 0
	for _, m := range matches {
		if m[0] > last {
			spans = append(spans, Span{Text: text[last:m[0]]})
		}
		spans = append(spans, Span{Text: text[m[2]:m[3]], Bold: true})
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
