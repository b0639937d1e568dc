package html

import (
	"fmt"
	"strings"

	"ptc/pptx"
)

// Base classes shared by every generated table and cell.
const (
	tableClass = "ppt-table"
	cellClass  = "ppt-cell"

	tableCSS = "border-collapse:collapse; width:100%"
	cellCSS  = "border:1px solid #d0d0d0; padding:4px 8px; vertical-align:middle"
)

// renderTable converts one table shape to an HTML table element. Cells
// hidden by a neighbor's merge span produce no output, anchor cells emit
// their span as colspan/rowspan attributes.
func renderTable(reg *Registry, theme ThemeColors, table *pptx.Table) string {
	reg.Add("."+tableClass, tableCSS)
	reg.Add("."+cellClass, cellCSS)

	rows := make([]string, 0, table.Rows())
	for r := range table.Rows() {
		var b strings.Builder
		b.WriteString("<tr>")
		for c := range table.Cols() {
			cell := table.CellAt(r, c)
			if cell.Spanned {
				continue
			}
			b.WriteString(renderCell(reg, theme, cell))
		}
		b.WriteString("</tr>")
		rows = append(rows, b.String())
	}

	return fmt.Sprintf("<table class=%q>\n%s\n</table>", tableClass, strings.Join(rows, "\n"))
}

func renderCell(reg *Registry, theme ThemeColors, cell *pptx.Cell) string {
	classes := []string{cellClass}
	classes = append(classes, alignClass(reg, cellAlign(cell)))
	classes = append(classes, backgroundClasses(reg, theme, cell.Fill)...)
	classes = dedupe(classes)

	var b strings.Builder
	b.WriteString("<td")
	if cell.ColSpan > 1 {
		fmt.Fprintf(&b, ` colspan="%d"`, cell.ColSpan)
	}
	if cell.RowSpan > 1 {
		fmt.Fprintf(&b, ` rowspan="%d"`, cell.RowSpan)
	}
	fmt.Fprintf(&b, ` class="%s">`, strings.Join(classes, " "))
	b.WriteString(renderCellContent(reg, theme, cell))
	b.WriteString("</td>")
	return b.String()
}

// cellAlign takes the cell's alignment from the first paragraph carrying an
// explicit one, the way the whole cell is aligned in practice.
func cellAlign(cell *pptx.Cell) string {
	for i := range cell.Paragraphs {
		if a := cell.Paragraphs[i].Align; a != "" {
			return a
		}
	}
	return ""
}

// dedupe removes duplicate class names keeping first occurrence order.
func dedupe(classes []string) []string {
	seen := make(map[string]struct{}, len(classes))
	out := classes[:0]
	for _, c := range classes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
