// Package html renders tables found in PPTX presentations as HTML fragments
// with externalized CSS classes.
//
// The pipeline is strictly one way: theme resolution feeds style
// classification, classification feeds content rendering, everything meets
// in the final assembly. All state lives in per-call values, concurrent
// conversions are independent.
package html

import (
	"fmt"
	stdhtml "html"
	"strings"

	"go.uber.org/zap"

	"ptc/css"
	"ptc/pptx"
)

// Options adjusts a single conversion.
type Options struct {
	// Extra user stylesheet whose rules are appended after generated ones.
	Stylesheet *css.Stylesheet

	// Slot colors replacing whatever the document theme resolves to.
	ThemeOverrides map[string]string

	Log *zap.Logger
}

// Generate renders every table of the presentation into one HTML string: a
// style block with all generated (and user supplied) CSS rules followed by
// the table fragments in slide-then-shape order. A presentation without
// tables yields a style block and no fragments, which is not an error.
func Generate(prs *pptx.Presentation, opts Options) string {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	reg := NewRegistry()
	theme := ResolveTheme(prs.ThemeBlob(), log)
	theme.Override(opts.ThemeOverrides, log)

	var blocks []string
	for i := range prs.Slides {
		slide := &prs.Slides[i]
		for j := range slide.Shapes {
			shape := &slide.Shapes[j]
			if !shape.HasTable() {
				continue
			}
			blocks = append(blocks, renderTable(reg, theme, shape.Table()))
		}
	}
	log.Debug("Tables rendered", zap.Int("tables", len(blocks)), zap.Int("cssRules", reg.Len()))

	rules := reg.Rules()
	if opts.Stylesheet != nil {
		// user rules go after generated ones so they can override
		rules = append(rules, opts.Stylesheet.Lines()...)
	}

	var b strings.Builder
	b.WriteString("<style>\n")
	for _, rule := range rules {
		b.WriteString(rule)
		b.WriteByte('\n')
	}
	b.WriteString("</style>")
	b.WriteString(strings.Join(blocks, "<br/>"))
	return b.String()
}

// Document wraps a generated fragment into a minimal standalone HTML page.
func Document(title, fragment string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\"/>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", stdhtml.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// ConvertFile is the single call entry point: opens the presentation at
// path and renders it. Only a document which cannot be opened or parsed as
// a presentation is an error.
func ConvertFile(path string, opts Options) (string, error) {
	prs, err := pptx.Open(path, opts.Log)
	if err != nil {
		return "", fmt.Errorf("unable to parse presentation: %w", err)
	}
	return Generate(prs, opts), nil
}
