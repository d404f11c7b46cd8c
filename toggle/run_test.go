package toggle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"fenced/codeblock"
	"fenced/config"
	"fenced/dom"
	"fenced/schema"
	"fenced/state"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<document title="Notes on Go">
  <h level="1">Intro</h>
  <p id="a">first</p>
  <p id="b">second</p>
  <blockquote><p id="c">quoted</p></blockquote>
</document>`

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	return &state.LocalEnv{
		Cfg: &config.Config{
			Version: 1,
			Document: config.DocumentConfig{
				SelectorAttr: "id",
				FallbackName: "document",
			},
		},
		Log: zaptest.NewLogger(t),
	}
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.xml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestReadDocumentErrors(t *testing.T) {
	log := zaptest.NewLogger(t)

	if _, err := readDocument(filepath.Join(t.TempDir(), "missing.xml"), log); err == nil {
		t.Fatal("expected error for missing input")
	}

	bad := filepath.Join(t.TempDir(), "bad.xml")
	if err := os.WriteFile(bad, []byte("<document><bogus/></document>"), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, err := readDocument(bad, log); err == nil {
		t.Fatal("expected error for unknown element")
	}
}

func TestSelectBlocks(t *testing.T) {
	log := zaptest.NewLogger(t)
	doc, err := readDocument(writeSample(t), log)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	sel, err := selectBlocks(doc, "id", []string{"a", "b"})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if got := len(sel.Blocks()); got != 2 {
		t.Fatalf("selected %d blocks, want 2", got)
	}

	if _, err := selectBlocks(doc, "id", []string{"a", "zzz"}); err == nil {
		t.Fatal("expected error for unknown block id")
	}
}

func TestWriteDocument(t *testing.T) {
	env := testEnv(t)
	doc, err := readDocument(writeSample(t), env.Log)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	dst := t.TempDir()
	if err := writeDocument(doc, dst, env, env.Log); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// title is slugified for the output name
	path := filepath.Join(dst, "notes-on-go.xml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !strings.Contains(string(data), `<p id="a">`) {
		t.Fatalf("output does not round trip content:\n%s", data)
	}

	// second write without overwrite must fail
	if err := writeDocument(doc, dst, env, env.Log); err == nil {
		t.Fatal("expected error for existing destination")
	}
	env.Overwrite = true
	if err := writeDocument(doc, dst, env, env.Log); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}

func TestWriteDocumentFallbackName(t *testing.T) {
	env := testEnv(t)
	doc := dom.NewDocument(env.Log)
	doc.AppendBlock(doc.Root(), dom.NodeParagraph, nil)

	dst := t.TempDir()
	if err := writeDocument(doc, dst, env, env.Log); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "document.xml")); err != nil {
		t.Fatalf("fallback name not used: %v", err)
	}
}

func TestPipelineToggle(t *testing.T) {
	env := testEnv(t)
	doc, err := readDocument(writeSample(t), env.Log)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	sel, err := selectBlocks(doc, "id", []string{"a", "b"})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}

	tgl := codeblock.NewCommand(doc, schema.NewGuard(schema.Default()), "go", env.Log)
	tgl.SetSelection(sel)
	if !tgl.Enabled {
		t.Fatal("toggle should be enabled for bare paragraphs")
	}
	if err := tgl.Execute(); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := dom.CheckInvariants(doc); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}

	a := doc.BlockByAttr("id", "a")
	if a.Parent().Type() != dom.NodeCodeBlock {
		t.Fatalf("block a not wrapped, parent is %s", a.Parent().Type())
	}
	if got := a.Parent().Attr(codeblock.LanguageAttr); got != "go" {
		t.Fatalf("language attribute = %q, want go", got)
	}
}
