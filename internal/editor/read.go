package editor

import (
	"strings"

	"github.com/HendryAvila/docket/internal/faults"
)

// Document is a snapshot of a file's text.
type Document struct {
	Content  string `json:"content"`
	Chars    int    `json:"chars"`
	Lines    int    `json:"lines"`
	Numbered string `json:"numbered,omitempty"`
}

// Read returns the document text, optionally with a line-numbered view.
func (e *Editor) Read(path string, withLineNumbers bool) (*Document, error) {
	doc, err := e.load(path)
	if err != nil {
		return nil, err
	}
	d := &Document{Content: doc, Chars: len(doc), Lines: countLines(doc)}
	if withLineNumbers {
		lines := strings.Split(doc, "\n")
		d.Numbered = numbered(lines, 0, len(lines), -1, -1)
	}
	return d, nil
}

// Locate returns verbatim occurrences of text, at most limit (0 = all), so
// callers can compute offsets from current content instead of guessing.
func (e *Editor) Locate(path, text string, limit int) ([]Occurrence, error) {
	if text == "" {
		return nil, faults.InvalidParams("text to locate must not be empty")
	}
	doc, err := e.load(path)
	if err != nil {
		return nil, err
	}
	return findAll(doc, text, limit), nil
}
