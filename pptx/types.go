package pptx

// Strongly typed representation of the parts of a PresentationML document we
// care about: slides, shapes and the tables they carry. Geometry, images and
// non-table shapes are intentionally not modeled.

// Presentation is a parsed PPTX document.
type Presentation struct {
	Slides []Slide
	Props  CoreProps

	themeBlob []byte
}

// CoreProps carries document metadata from docProps/core.xml. All fields are
// optional, missing part leaves them empty.
type CoreProps struct {
	Title   string
	Creator string
	Created string // as stored, typically W3CDTF
}

// ThemeBlob returns raw bytes of the first theme part of the document or nil
// when the document has no theme.
func (p *Presentation) ThemeBlob() []byte {
	return p.themeBlob
}

// Slide holds shapes of a single slide in document order.
type Slide struct {
	Index  int // 1-based slide number from the part name
	Shapes []Shape
}

// Shape is a slide shape. Only graphic frames carrying tables have any
// content here, everything else is kept as an empty placeholder so that
// shape order stays meaningful.
type Shape struct {
	Name  string
	table *Table
}

// HasTable reports whether the shape carries a table.
func (s *Shape) HasTable() bool {
	return s.table != nil
}

// Table returns the shape's table or nil.
func (s *Shape) Table() *Table {
	return s.table
}

// Table is a rectangular grid of cells.
type Table struct {
	cells [][]Cell
}

// NewTable builds a table from a cell grid, mostly useful for assembling
// presentations programmatically.
func NewTable(cells [][]Cell) *Table {
	return &Table{cells: cells}
}

// NewTableShape builds a shape carrying the given table.
func NewTableShape(name string, t *Table) Shape {
	return Shape{Name: name, table: t}
}

// Rows returns the number of table rows.
func (t *Table) Rows() int {
	return len(t.cells)
}

// Cols returns the number of table columns.
func (t *Table) Cols() int {
	if len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// CellAt returns the cell at the given row and column indexes. It never
// fails: indexes outside of the grid return an empty non-spanned cell so
// that callers iterating declared dimensions of a malformed table keep
// producing output.
func (t *Table) CellAt(row, col int) *Cell {
	if row < 0 || row >= len(t.cells) || col < 0 || col >= len(t.cells[row]) {
		return &Cell{ColSpan: 1, RowSpan: 1}
	}
	return &t.cells[row][col]
}

// Cell is a single table cell.
type Cell struct {
	Paragraphs []Paragraph

	// Explicit fill of the cell, nil when the cell has no direct solid fill.
	Fill *Color

	// Merge geometry. ColSpan and RowSpan are always >= 1 and are only
	// meaningful on the anchor cell of a merge; Spanned marks continuation
	// cells hidden by some anchor's span.
	ColSpan int
	RowSpan int
	Spanned bool
}

// Paragraph groups runs sharing block level formatting.
type Paragraph struct {
	Runs []Run

	// Align is the raw DrawingML algn token ("l", "ctr", "r", "just", ...)
	// or empty when unset.
	Align string

	// Level is the indentation level, 0 for top level paragraphs.
	Level int

	// Bullet is set when paragraph properties carry an explicit bullet
	// character. A <a:buNone/> resets it.
	Bullet bool
}

// Run is a styled text span.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool

	// Color is the explicit run color, nil when inherited.
	Color *Color

	// Font is the latin typeface name, empty when inherited.
	Font string

	// Size is the font size in points, 0 when inherited. DrawingML stores
	// hundredths of a point, the conversion happens during parsing.
	Size float64
}

// Color is either a direct sRGB value or a reference to a theme color slot,
// never both.
type Color struct {
	Hex  string // "RRGGBB" without leading # when direct
	Slot string // scheme slot name ("accent1", "tx2", ...) when referenced
}
