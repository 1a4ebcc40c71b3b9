package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lyzr-apps/storecheck/internal/report"
)

// RenderMarkdown writes the agent's markdown-like text to the
// terminal: headings bolded and colored, bullets and numbered items
// indented, **bold** spans emphasized, unknown markup left literal.
func RenderMarkdown(w io.Writer, text string) {
	if text == "" {
		return
	}
	number := 0
	for _, line := range report.ClassifyLines(text) {
		switch line.Kind {
		case report.LineHeading1:
			fmt.Fprintf(w, "%s\n", Bold(Cyan(line.Text)))
		case report.LineHeading2:
			fmt.Fprintf(w, "%s\n", Bold(line.Text))
		case report.LineHeading3:
			fmt.Fprintf(w, "%s\n", Bold(line.Text))
		case report.LineBullet:
			number = 0
			fmt.Fprintf(w, "  • %s\n", renderInline(line.Text))
		case report.LineNumbered:
			number++
			fmt.Fprintf(w, "  %d. %s\n", number, renderInline(line.Text))
		case report.LineBlank:
			fmt.Fprintln(w)
		default:
			number = 0
			fmt.Fprintf(w, "%s\n", renderInline(line.Text))
		}
	}
}

func renderInline(text string) string {
	spans := report.BoldSpans(text)
	var b strings.Builder
	for _, span := range spans {
		if span.Bold {
			b.WriteString(Bold(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}
