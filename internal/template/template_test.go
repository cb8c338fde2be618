package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractReturnsDistinctTokensInOrder(t *testing.T) {
	text := "{{PROJECT_NAME}} uses {{STACK}} and {{PROJECT_NAME}} again, not {{lower}} or {{MIXED_case}}."
	got := Extract(text)
	want := []string{"PROJECT_NAME", "STACK"}
	if len(got) != len(want) {
		t.Fatalf("extract = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("extract = %v, want %v", got, want)
		}
	}
}

func TestReplaceHitsEveryOccurrence(t *testing.T) {
	got := Replace("{{PROJECT_NAME}} and {{PROJECT_NAME}}", "PROJECT_NAME", "Foo")
	if got != "Foo and Foo" {
		t.Fatalf("replace = %q", got)
	}
}

func TestStripRemovesUnknownTokensSilently(t *testing.T) {
	got := Strip("before {{NEVER_BOUND}} after")
	if got != "before  after" {
		t.Fatalf("strip = %q", got)
	}
	if len(Extract(got)) != 0 {
		t.Fatalf("tokens remain after strip: %q", got)
	}
}

func TestNormalizeWhitespaceContract(t *testing.T) {
	in := "title   \n\n\n\n\nbody\t\nend"
	got := Normalize(in)
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank runs must collapse to two newlines: %q", got)
	}
	if strings.Contains(got, " \n") || strings.Contains(got, "\t\n") {
		t.Fatalf("trailing whitespace must be trimmed: %q", got)
	}
	if !strings.HasSuffix(got, "end\n") || strings.HasSuffix(got, "\n\n") {
		t.Fatalf("exactly one trailing newline required: %q", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(""); got != "\n" {
		t.Fatalf("normalize(\"\") = %q", got)
	}
}

func TestEngineLoadAndRenderResolvesUnderRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("hello {{WHO}}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine := NewEngine(dir)
	got, err := engine.LoadAndRender("doc.md", map[string]string{"WHO": "world"})
	if err != nil {
		t.Fatalf("load and render: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("rendered = %q", got)
	}
}

func TestEngineLoadWrapsReadFailure(t *testing.T) {
	engine := NewEngine(t.TempDir())
	_, err := engine.Load("missing.md")
	if err == nil {
		t.Fatalf("expected error for missing template")
	}
	if !strings.Contains(err.Error(), "template: read") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReplaceAllIsDeterministic(t *testing.T) {
	vars := map[string]string{"B": "{{A}}", "A": "done"}
	first := ReplaceAll("{{B}}", vars)
	for i := 0; i < 20; i++ {
		if got := ReplaceAll("{{B}}", vars); got != first {
			t.Fatalf("replacement order must not vary: %q vs %q", got, first)
		}
	}
}
