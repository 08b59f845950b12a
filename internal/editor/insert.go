package editor

import (
	"strings"
)

// InsertPreview shows the inserted span in its surroundings.
type InsertPreview struct {
	StartLine     int      `json:"start_line"`
	EndLine       int      `json:"end_line"`
	ContextBefore []string `json:"context_before"`
	Inserted      string   `json:"inserted"`
	ContextAfter  []string `json:"context_after"`
	// Simple is a line-numbered rendering with the inserted text truncated.
	Simple string `json:"simple"`
}

// InsertResult reports the outcome of Insert. When Success is false the
// document was not modified and the mismatch fields explain why.
type InsertResult struct {
	Success  bool   `json:"success"`
	Position string `json:"position"`
	Offset   int    `json:"offset"`

	InsertedText string         `json:"inserted_text,omitempty"`
	Preview      *InsertPreview `json:"preview,omitempty"`
	CharsBefore  int            `json:"chars_before"`
	CharsAfter   int            `json:"chars_after"`
	LinesBefore  int            `json:"lines_before"`
	LinesAfter   int            `json:"lines_after"`

	Reason      string      `json:"reason,omitempty"`
	Expected    *string     `json:"expected_line_before,omitempty"`
	Actual      *string     `json:"actual_line_before,omitempty"`
	Occurrences []LineMatch `json:"occurrences,omitempty"`
	Hint        string      `json:"hint,omitempty"`
}

// Insert splices text into the document at pos. If expectedLineBefore is
// non-nil, the line preceding the insertion point must equal it exactly.
//
// Start prepends text followed by a blank line, End appends text after a
// blank line, and an offset splices raw. Offsets beyond the document are
// treated as End.
func (e *Editor) Insert(path string, pos Position, text string, expectedLineBefore *string) (*InsertResult, error) {
	doc, err := e.load(path)
	if err != nil {
		return nil, err
	}

	if pos.kind == posOffset && pos.offset > len(doc) {
		pos = End()
	}

	var (
		at        int
		updated   string
		spanStart int
	)
	switch pos.kind {
	case posStart:
		at = 0
		updated = text + "\n\n" + doc
		spanStart = 0
	case posOffset:
		at = pos.offset
		if !onRuneBoundary(doc, at) {
			return nil, errNotRuneBoundary("position", at)
		}
		updated = doc[:at] + text + doc[at:]
		spanStart = at
	default:
		at = len(doc)
		updated = doc + "\n\n" + text
		spanStart = len(doc) + 2
	}

	res := &InsertResult{
		Position:    pos.String(),
		Offset:      at,
		CharsBefore: len(doc),
		LinesBefore: countLines(doc),
	}

	if expectedLineBefore != nil {
		actual := lineBefore(doc, at)
		if actual != *expectedLineBefore {
			want := *expectedLineBefore
			res.Reason = "line_mismatch"
			res.Expected = &want
			res.Actual = &actual
			res.Occurrences = matchingLines(doc, want)
			res.CharsAfter = len(doc)
			res.LinesAfter = res.LinesBefore
			res.Hint = mismatchHint(len(res.Occurrences))
			return res, nil
		}
	}

	if err := e.persist(path, updated); err != nil {
		return nil, err
	}

	res.Success = true
	res.InsertedText = text
	res.CharsAfter = len(updated)
	res.LinesAfter = countLines(updated)
	res.Preview = e.insertPreview(updated, spanStart, spanStart+len(text))
	return res, nil
}

func (e *Editor) insertPreview(doc string, start, end int) *InsertPreview {
	lines := strings.Split(doc, "\n")
	first := lineAt(doc, start)
	last := first
	if end > start {
		last = lineAt(doc, end-1)
	}

	from := max(0, first-contextLines)
	to := min(len(lines), last+1+contextLines)

	p := &InsertPreview{
		StartLine:     first + 1,
		EndLine:       last + 1,
		ContextBefore: append([]string{}, lines[from:first]...),
		Inserted:      truncate(doc[start:end], e.previewLen),
		ContextAfter:  append([]string{}, lines[last+1:to]...),
	}

	var b strings.Builder
	b.WriteString(numbered(lines, from, first, -1, -1))
	for _, l := range strings.Split(p.Inserted, "\n") {
		b.WriteString("+ ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(numbered(lines, last+1, to, -1, -1))
	p.Simple = b.String()
	return p
}

func mismatchHint(n int) string {
	switch n {
	case 0:
		return "The expected line does not appear anywhere in the document. Re-read the document and retry with a current line."
	case 1:
		return "The expected line exists elsewhere. Retry using the listed offset as the position."
	default:
		return "The expected line appears several times. Pick the intended occurrence and retry using its offset as the position."
	}
}
