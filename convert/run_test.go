package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"ptc/config"
	"ptc/pptx"
	"ptc/state"
)

// testContext builds a context carrying initialized LocalEnv the way the CLI
// front end does before dispatching commands.
func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("unable to load default configuration: %v", err)
	}
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	return ctx
}

func TestProcess_SingleFile(t *testing.T) {
	ctx := testContext(t)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "deck.pptx")
	if err := os.WriteFile(src, fixturePPTX(t), 0644); err != nil {
		t.Fatalf("unable to write fixture: %v", err)
	}

	if err := process(ctx, src, dstDir, state.EnvFromContext(ctx).Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	out := filepath.Join(dstDir, "deck.html")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	// default layout is a standalone page
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Errorf("output is not a standalone document:\n%s", data)
	}
	if !strings.Contains(string(data), "<style>") {
		t.Errorf("output missing style block:\n%s", data)
	}
}

func TestProcess_FragmentLayout(t *testing.T) {
	ctx := testContext(t)
	env := state.EnvFromContext(ctx)
	env.Cfg.Document.Layout = config.OutputLayoutFragment

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "deck.pptx")
	if err := os.WriteFile(src, fixturePPTX(t), 0644); err != nil {
		t.Fatalf("unable to write fixture: %v", err)
	}

	if err := process(ctx, src, dstDir, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dstDir, "deck.html"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Errorf("fragment layout produced a full document:\n%s", data)
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx := testContext(t)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	sub := filepath.Join(srcDir, "q1")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{filepath.Join(srcDir, "one.pptx"), filepath.Join(sub, "two.pptx")} {
		if err := os.WriteFile(name, fixturePPTX(t), 0644); err != nil {
			t.Fatalf("unable to write fixture: %v", err)
		}
	}
	// noise that must be skipped
	if err := os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("text"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := process(ctx, srcDir, dstDir, state.EnvFromContext(ctx).Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	for _, out := range []string{
		filepath.Join(dstDir, "one.html"),
		filepath.Join(dstDir, "q1", "two.html"),
	} {
		if _, err := os.Stat(out); err != nil {
			t.Errorf("expected output %s: %v", out, err)
		}
	}
}

func TestProcess_DirectoryNoDirs(t *testing.T) {
	ctx := testContext(t)
	env := state.EnvFromContext(ctx)
	env.NoDirs = true

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	sub := filepath.Join(srcDir, "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "deck.pptx"), fixturePPTX(t), 0644); err != nil {
		t.Fatalf("unable to write fixture: %v", err)
	}

	if err := process(ctx, srcDir, dstDir, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dstDir, "deck.html")); err != nil {
		t.Errorf("expected flattened output: %v", err)
	}
}

func TestProcess_Archive(t *testing.T) {
	ctx := testContext(t)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	arc := filepath.Join(srcDir, "decks.zip")
	data := fixtureZip(t, map[string]string{
		"inner/deck.pptx": string(fixturePPTX(t)),
		"inner/notes.txt": "text",
	})
	if err := os.WriteFile(arc, data, 0644); err != nil {
		t.Fatalf("unable to write archive: %v", err)
	}

	if err := process(ctx, arc, dstDir, state.EnvFromContext(ctx).Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dstDir, "inner", "deck.html")); err != nil {
		t.Errorf("expected output from archive: %v", err)
	}
}

func TestProcess_MissingSource(t *testing.T) {
	ctx := testContext(t)
	if err := process(ctx, "/nonexistent/deck.pptx", t.TempDir(), state.EnvFromContext(ctx).Log); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestProcess_ExistingOutput(t *testing.T) {
	ctx := testContext(t)
	env := state.EnvFromContext(ctx)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "deck.pptx")
	if err := os.WriteFile(src, fixturePPTX(t), 0644); err != nil {
		t.Fatalf("unable to write fixture: %v", err)
	}
	out := filepath.Join(dstDir, "deck.html")
	if err := os.WriteFile(out, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	// without overwrite the old file stays, process logs and moves on
	if err := process(ctx, src, dstDir, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if data, _ := os.ReadFile(out); string(data) != "old" {
		t.Error("existing output was overwritten without permission")
	}

	env.Overwrite = true
	if err := process(ctx, src, dstDir, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if data, _ := os.ReadFile(out); string(data) == "old" {
		t.Error("existing output was not overwritten")
	}
}

func TestBuildOutputPath(t *testing.T) {
	ctx := testContext(t)
	env := state.EnvFromContext(ctx)
	prs := &pptx.Presentation{}

	t.Run("default template", func(t *testing.T) {
		got := buildOutputPath(prs, filepath.Join("sub", "deck.pptx"), string(filepath.Separator)+"out", env)
		want := filepath.Join(string(filepath.Separator)+"out", "sub", "deck.html")
		if got != want {
			t.Errorf("buildOutputPath() = %q, want %q", got, want)
		}
	})

	t.Run("nodirs flattens", func(t *testing.T) {
		env.NoDirs = true
		defer func() { env.NoDirs = false }()

		got := buildOutputPath(prs, filepath.Join("sub", "deck.pptx"), string(filepath.Separator)+"out", env)
		want := filepath.Join(string(filepath.Separator)+"out", "deck.html")
		if got != want {
			t.Errorf("buildOutputPath() = %q, want %q", got, want)
		}
	})

	t.Run("template with metadata", func(t *testing.T) {
		old := env.Cfg.Document.OutputNameTemplate
		env.Cfg.Document.OutputNameTemplate = "{{ .Title }}-{{ .SourceFile }}"
		defer func() { env.Cfg.Document.OutputNameTemplate = old }()

		titled := &pptx.Presentation{Props: pptx.CoreProps{Title: "Review"}}
		got := buildOutputPath(titled, "deck.pptx", string(filepath.Separator)+"out", env)
		want := filepath.Join(string(filepath.Separator)+"out", "Review-deck.html")
		if got != want {
			t.Errorf("buildOutputPath() = %q, want %q", got, want)
		}
	})

	t.Run("broken template falls back", func(t *testing.T) {
		old := env.Cfg.Document.OutputNameTemplate
		env.Cfg.Document.OutputNameTemplate = "{{ .NoSuchField }}"
		defer func() { env.Cfg.Document.OutputNameTemplate = old }()

		got := buildOutputPath(prs, "deck.pptx", string(filepath.Separator)+"out", env)
		want := filepath.Join(string(filepath.Separator)+"out", "deck.html")
		if got != want {
			t.Errorf("buildOutputPath() = %q, want %q", got, want)
		}
	})

	t.Run("transliteration", func(t *testing.T) {
		env.Cfg.Document.FileNameTransliterate = true
		defer func() { env.Cfg.Document.FileNameTransliterate = false }()

		got := buildOutputPath(prs, "Доклад.pptx", string(filepath.Separator)+"out", env)
		want := filepath.Join(string(filepath.Separator)+"out", "doklad.html")
		if got != want {
			t.Errorf("buildOutputPath() = %q, want %q", got, want)
		}
	})
}
