package writer

import (
	"fmt"
	"path/filepath"

	"github.com/trellishq/trellis/internal/layout"
	"github.com/trellishq/trellis/internal/merge"
	"github.com/trellishq/trellis/internal/plugin"
)

// DocumentWriter persists the assembled root document at the project root.
// Content already on disk merges through the Markdown strategy, so a
// hand-edited document keeps its text and a repeated run changes nothing.
type DocumentWriter struct {
	layout *layout.Layout
	files  plugin.Files
}

// NewDocumentWriter builds a writer over the given layout and file facade.
func NewDocumentWriter(lay *layout.Layout, files plugin.Files) *DocumentWriter {
	return &DocumentWriter{layout: lay, files: files}
}

// Write merges content over any existing root document and writes the
// result.
func (w *DocumentWriter) Write(content string, ctx *plugin.Context) Result {
	path := w.layout.RootDocPath()
	result := Result{Kind: KindDocument, Name: filepath.Base(path), Path: path}
	final := content
	if w.files.Exists(path) {
		prior, err := w.files.ReadText(path)
		if err != nil {
			return w.fail(result, fmt.Errorf("writer: document %s: %w", result.Name, err), ctx)
		}
		merged := merge.Markdown(prior, content, merge.MarkdownOptions{})
		if merged == prior || ensureTrailingNewline(merged) == prior {
			return result
		}
		final = merged
	}
	if err := w.files.WriteText(path, ensureTrailingNewline(final)); err != nil {
		return w.fail(result, fmt.Errorf("writer: document %s: %w", result.Name, err), ctx)
	}
	ctx.Console.Success("wrote %s", rel(w.layout.Root(), path))
	return result
}

func (w *DocumentWriter) fail(result Result, err error, ctx *plugin.Context) Result {
	result.Err = err
	ctx.Console.Warning("%s", err)
	return result
}
