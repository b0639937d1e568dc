package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Slide XML walking. We follow the same approach as theme parsing: element
// tags are matched by local name only so that both p: and a: namespace
// prefixes (and any aliases a producer may pick) are handled uniformly.

func parseSlide(root *etree.Element, log *zap.Logger) Slide {
	var slide Slide

	spTree := findFirst(root, "cSld", "spTree")
	if spTree == nil {
		log.Debug("Slide has no shape tree", zap.String("root", root.Tag))
		return slide
	}

	collectShapes(spTree, &slide, log)
	return slide
}

// collectShapes walks the shape tree in document order descending into
// groups so that tables inside grouped shapes are not lost.
func collectShapes(el *etree.Element, slide *Slide, log *zap.Logger) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "graphicFrame":
			slide.Shapes = append(slide.Shapes, parseGraphicFrame(child, log))
		case "sp", "pic", "cxnSp":
			slide.Shapes = append(slide.Shapes, Shape{Name: shapeName(child)})
		case "grpSp":
			collectShapes(child, slide, log)
		}
	}
}

func parseGraphicFrame(el *etree.Element, log *zap.Logger) Shape {
	shape := Shape{Name: shapeName(el)}

	tbl := findFirst(el, "graphic", "graphicData", "tbl")
	if tbl == nil {
		// graphic frames also carry charts and diagrams which we do not render
		return shape
	}

	table := &Table{}
	for _, tr := range tbl.ChildElements() {
		if tr.Tag != "tr" {
			continue
		}
		var row []Cell
		for _, tc := range tr.ChildElements() {
			if tc.Tag != "tc" {
				continue
			}
			row = append(row, parseCell(tc))
		}
		table.cells = append(table.cells, row)
	}
	if len(table.cells) == 0 {
		log.Debug("Table without rows, ignoring", zap.String("shape", shape.Name))
		return shape
	}
	shape.table = table
	return shape
}

func parseCell(el *etree.Element) Cell {
	cell := Cell{
		ColSpan: spanAttr(el, "gridSpan"),
		RowSpan: spanAttr(el, "rowSpan"),
		Spanned: boolAttr(el, "hMerge") || boolAttr(el, "vMerge"),
	}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "txBody":
			for _, p := range child.ChildElements() {
				if p.Tag == "p" {
					cell.Paragraphs = append(cell.Paragraphs, parseParagraph(p))
				}
			}
		case "tcPr":
			if fill := findFirst(child, "solidFill"); fill != nil {
				cell.Fill = parseColor(fill)
			}
		}
	}
	return cell
}

func parseParagraph(el *etree.Element) Paragraph {
	var para Paragraph

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "pPr":
			para.Align = child.SelectAttrValue("algn", "")
			if lvl, err := strconv.Atoi(child.SelectAttrValue("lvl", "")); err == nil && lvl > 0 {
				para.Level = lvl
			}
			for _, pr := range child.ChildElements() {
				switch pr.Tag {
				case "buChar", "buAutoNum":
					para.Bullet = true
				case "buNone":
					para.Bullet = false
				}
			}
		case "r", "fld":
			para.Runs = append(para.Runs, parseRun(child))
		case "br":
			para.Runs = append(para.Runs, Run{Text: "\n"})
		}
	}
	return para
}

func parseRun(el *etree.Element) Run {
	var run Run

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "rPr":
			run.Bold = boolAttr(child, "b")
			run.Italic = boolAttr(child, "i")
			if u := child.SelectAttrValue("u", ""); u != "" && u != "none" {
				run.Underline = true
			}
			// sz is in hundredths of a point
			if sz, err := strconv.Atoi(child.SelectAttrValue("sz", "")); err == nil && sz > 0 {
				run.Size = float64(sz) / 100
			}
			for _, pr := range child.ChildElements() {
				switch pr.Tag {
				case "solidFill":
					run.Color = parseColor(pr)
				case "latin":
					run.Font = pr.SelectAttrValue("typeface", "")
				}
			}
		case "t":
			run.Text = child.Text()
		}
	}
	return run
}

// parseColor extracts color from a solidFill container. Only direct sRGB
// values and scheme references are recognized, other DrawingML color kinds
// (preset, system, HSL) are treated as absent.
func parseColor(fill *etree.Element) *Color {
	for _, child := range fill.ChildElements() {
		switch child.Tag {
		case "srgbClr":
			if val := child.SelectAttrValue("val", ""); len(val) == 6 {
				return &Color{Hex: strings.ToUpper(val)}
			}
		case "schemeClr":
			if val := child.SelectAttrValue("val", ""); val != "" {
				return &Color{Slot: val}
			}
		}
	}
	return nil
}

func shapeName(el *etree.Element) string {
	for _, child := range el.ChildElements() {
		if strings.HasPrefix(child.Tag, "nv") && strings.HasSuffix(child.Tag, "Pr") {
			if cNvPr := findFirst(child, "cNvPr"); cNvPr != nil {
				return cNvPr.SelectAttrValue("name", "")
			}
		}
	}
	return ""
}

// findFirst descends through the given chain of local tag names returning
// the first matching element at each step.
func findFirst(el *etree.Element, tags ...string) *etree.Element {
	cur := el
	for _, tag := range tags {
		var next *etree.Element
		for _, child := range cur.ChildElements() {
			if child.Tag == tag {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func spanAttr(el *etree.Element, name string) int {
	if v, err := strconv.Atoi(el.SelectAttrValue(name, "")); err == nil && v > 1 {
		return v
	}
	return 1
}

func boolAttr(el *etree.Element, name string) bool {
	v := el.SelectAttrValue(name, "")
	return v == "1" || v == "true"
}
