package pptx

import (
	"ptc/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the parsed presentation. It exists
// solely for manual inspection during debugging and for debug reports.
func (p *Presentation) String() string {
	if p == nil {
		return "<nil Presentation>"
	}
	return treeWriter{debug.NewTreeWriter()}.presentation(p).String()
}

func (tw treeWriter) presentation(p *Presentation) treeWriter {
	tw.Line(0, "Presentation slides=%d themeBytes=%d", len(p.Slides), len(p.themeBlob))
	for i := range p.Slides {
		tw.slide(1, &p.Slides[i])
	}
	return tw
}

func (tw treeWriter) slide(depth int, s *Slide) {
	tables := 0
	for i := range s.Shapes {
		if s.Shapes[i].HasTable() {
			tables++
		}
	}
	tw.Line(depth, "Slide[%d] shapes=%d tables=%d", s.Index, len(s.Shapes), tables)
	for i := range s.Shapes {
		shape := &s.Shapes[i]
		if !shape.HasTable() {
			continue
		}
		tw.Line(depth+1, "Shape name=%q", shape.Name)
		tw.table(depth+2, shape.Table())
	}
}

func (tw treeWriter) table(depth int, t *Table) {
	tw.Line(depth, "Table %dx%d", t.Rows(), t.Cols())
	for r := range t.Rows() {
		for c := range t.Cols() {
			tw.cell(depth+1, r, c, t.CellAt(r, c))
		}
	}
}

func (tw treeWriter) cell(depth, r, c int, cell *Cell) {
	tw.Line(depth, "Cell[%d,%d] span=%dx%d", r, c, cell.ColSpan, cell.RowSpan)
	tw.Flags(depth+1, map[string]bool{"spanned": cell.Spanned})
	if cell.Fill != nil {
		tw.color(depth+1, "fill", cell.Fill)
	}
	for i := range cell.Paragraphs {
		tw.paragraph(depth+1, &cell.Paragraphs[i])
	}
}

func (tw treeWriter) paragraph(depth int, p *Paragraph) {
	tw.Line(depth, "Paragraph align=%q lvl=%d", p.Align, p.Level)
	tw.Flags(depth+1, map[string]bool{"bullet": p.Bullet})
	for i := range p.Runs {
		tw.run(depth+1, &p.Runs[i])
	}
}

func (tw treeWriter) run(depth int, r *Run) {
	tw.TextBlock(depth, "Run", r.Text)
	tw.Flags(depth+1, map[string]bool{"b": r.Bold, "i": r.Italic, "u": r.Underline})
	if r.Color != nil {
		tw.color(depth+1, "color", r.Color)
	}
	if r.Font != "" {
		tw.Line(depth+1, "font=%q", r.Font)
	}
	if r.Size != 0 {
		tw.Line(depth+1, "size=%gpt", r.Size)
	}
}

func (tw treeWriter) color(depth int, label string, c *Color) {
	if c.Slot != "" {
		tw.Line(depth, "%s=scheme(%s)", label, c.Slot)
	} else {
		tw.Line(depth, "%s=#%s", label, c.Hex)
	}
}
