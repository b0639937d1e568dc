package html

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"ptc/css"
	"ptc/pptx"
)

func testPresentation(tables ...*pptx.Table) *pptx.Presentation {
	prs := &pptx.Presentation{}
	slide := pptx.Slide{Index: 1}
	for _, tbl := range tables {
		slide.Shapes = append(slide.Shapes, pptx.NewTableShape("Table", tbl))
	}
	prs.Slides = append(prs.Slides, slide)
	return prs
}

func TestGenerate_NoTables(t *testing.T) {
	out := Generate(testPresentation(), Options{Log: zaptest.NewLogger(t)})

	if out != "<style>\n</style>" {
		t.Errorf("Generate() = %q, want empty style block only", out)
	}
}

func TestGenerate_SingleTable(t *testing.T) {
	table := pptx.NewTable([][]pptx.Cell{{textCell("Hello")}})
	out := Generate(testPresentation(table), Options{Log: zaptest.NewLogger(t)})

	if !strings.HasPrefix(out, "<style>\n") {
		t.Errorf("output must start with style block: %q", out)
	}
	for _, frag := range []string{
		".ppt-table { " + tableCSS + "; }",
		".ppt-cell { " + cellCSS + "; }",
		`<table class="ppt-table">`,
		">Hello</td>",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q:\n%s", frag, out)
		}
	}
	if strings.Contains(out, "<br/><table") {
		t.Error("single table must not be preceded by separator")
	}
}

func TestGenerate_MultipleTablesSeparated(t *testing.T) {
	table := pptx.NewTable([][]pptx.Cell{{textCell("x")}})
	out := Generate(testPresentation(table, table), Options{Log: zaptest.NewLogger(t)})

	if strings.Count(out, "<table") != 2 {
		t.Fatalf("want 2 tables:\n%s", out)
	}
	if !strings.Contains(out, "</table><br/><table") {
		t.Errorf("tables must be separated by <br/>:\n%s", out)
	}
}

func TestGenerate_NoDuplicateRules(t *testing.T) {
	cell := textCell("x")
	cell.Paragraphs[0].Runs[0].Color = &pptx.Color{Hex: "FF0000"}
	table := pptx.NewTable([][]pptx.Cell{{cell}})

	out := Generate(testPresentation(table, table), Options{Log: zaptest.NewLogger(t)})

	rule := ".text-FF0000 { color:#FF0000; }"
	if got := strings.Count(out, rule); got != 1 {
		t.Errorf("rule %q appears %d times, want 1:\n%s", rule, got, out)
	}
}

func TestGenerate_UserStylesheetAppended(t *testing.T) {
	sheet := css.NewParser(zaptest.NewLogger(t)).Parse([]byte(".custom { color: red; }"))
	table := pptx.NewTable([][]pptx.Cell{{textCell("x")}})

	out := Generate(testPresentation(table), Options{Stylesheet: sheet, Log: zaptest.NewLogger(t)})

	custom := strings.Index(out, ".custom")
	generated := strings.Index(out, ".ppt-table")
	closing := strings.Index(out, "</style>")
	if custom == -1 {
		t.Fatalf("user rule missing:\n%s", out)
	}
	if custom < generated {
		t.Error("user rules must come after generated ones")
	}
	if custom > closing {
		t.Error("user rules must be inside the style block")
	}
}

func TestDocument(t *testing.T) {
	out := Document("T & Co", "<table></table>")

	for _, frag := range []string{
		"<!DOCTYPE html>",
		"<title>T &amp; Co</title>",
		"<body>\n<table></table>",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("document missing %q:\n%s", frag, out)
		}
	}
}

func TestConvertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(path, minimalPPTX(t), 0644); err != nil {
		t.Fatalf("unable to write fixture: %v", err)
	}

	out, err := ConvertFile(path, Options{Log: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if !strings.Contains(out, "<style>") {
		t.Errorf("output missing style block: %q", out)
	}
}

func TestConvertFile_Missing(t *testing.T) {
	if _, err := ConvertFile("/nonexistent/deck.pptx", Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConvertFile_NotPresentation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.pptx")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatalf("unable to write fixture: %v", err)
	}
	if _, err := ConvertFile(path, Options{}); err == nil {
		t.Error("expected error for non-presentation input")
	}
}

// minimalPPTX builds the smallest zip the reader accepts as a presentation.
func minimalPPTX(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range map[string]string{
		"[Content_Types].xml":  `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"ppt/presentation.xml": `<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`,
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("unable to create %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(data)); err != nil {
			t.Fatalf("unable to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unable to finalize zip: %v", err)
	}
	return buf.Bytes()
}
