package html

import (
	stdhtml "html"
	"strings"

	"ptc/pptx"
)

// renderRun converts one run to inline HTML. Text is always escaped; style
// classes wrap it in a span, bold/italic/underline nest outer to inner in
// that fixed order. An empty run renders to nothing and registers nothing.
func renderRun(reg *Registry, theme ThemeColors, run *pptx.Run) string {
	if run.Text == "" {
		return ""
	}

	var classes []string
	classes = append(classes, textColorClass(reg, theme, run.Color)...)
	classes = append(classes, fontClasses(reg, run.Font, run.Size)...)

	out := stdhtml.EscapeString(run.Text)
	if len(classes) > 0 {
		out = `<span class="` + strings.Join(classes, " ") + `">` + out + `</span>`
	}
	if run.Underline {
		out = "<u>" + out + "</u>"
	}
	if run.Italic {
		out = "<i>" + out + "</i>"
	}
	if run.Bold {
		out = "<b>" + out + "</b>"
	}
	return out
}

// renderParagraph concatenates run output and decides whether the paragraph
// is a list item. Paragraphs indented past the top level or carrying an
// explicit bullet character are bullets.
func renderParagraph(reg *Registry, theme ThemeColors, p *pptx.Paragraph) (text string, bullet bool) {
	var b strings.Builder
	for i := range p.Runs {
		b.WriteString(renderRun(reg, theme, &p.Runs[i]))
	}
	return strings.TrimSpace(b.String()), p.Level > 0 || p.Bullet
}

// renderCellContent assembles paragraph output for one cell. When any
// paragraph is a bullet the whole cell becomes a single unordered list and
// every paragraph turns into a list item, bullet or not. That folding of
// plain lines into list items mirrors the upstream behavior, see DESIGN.md.
func renderCellContent(reg *Registry, theme ThemeColors, cell *pptx.Cell) string {
	var (
		parts     []string
		anyBullet bool
	)
	for i := range cell.Paragraphs {
		text, bullet := renderParagraph(reg, theme, &cell.Paragraphs[i])
		if text == "" {
			continue
		}
		parts = append(parts, text)
		anyBullet = anyBullet || bullet
	}
	if len(parts) == 0 {
		return ""
	}

	if anyBullet {
		var b strings.Builder
		b.WriteString("<ul>")
		for _, part := range parts {
			b.WriteString("<li>")
			b.WriteString(part)
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		return b.String()
	}
	return strings.Join(parts, "<br/>")
}
