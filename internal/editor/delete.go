package editor

import (
	"strings"

	"github.com/HendryAvila/docket/internal/faults"
)

// DeleteResult reports the outcome of Delete.
type DeleteResult struct {
	Success      bool   `json:"success"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	Line         int    `json:"line"`
	DeletedChars int    `json:"deleted_chars,omitempty"`
	Deleted      string `json:"deleted,omitempty"`
	CharsBefore  int    `json:"chars_before"`
	CharsAfter   int    `json:"chars_after"`

	Reason      string       `json:"reason,omitempty"`
	Expected    *string      `json:"expected_content,omitempty"`
	Actual      *string      `json:"actual_content,omitempty"`
	Occurrences []Occurrence `json:"occurrences,omitempty"`
	Hint        string       `json:"hint,omitempty"`
}

// Delete removes doc[start:end]. If expectedContent is non-nil the range
// must hold that text, compared with surrounding whitespace trimmed.
func (e *Editor) Delete(path string, start, end int, expectedContent *string) (*DeleteResult, error) {
	if start < 0 || end <= start {
		return nil, faults.InvalidParams("invalid range [%d, %d): need 0 <= start < end", start, end)
	}

	doc, err := e.load(path)
	if err != nil {
		return nil, err
	}
	if end > len(doc) {
		return nil, faults.InvalidParams("invalid range [%d, %d): document is only %d bytes", start, end, len(doc))
	}
	if !onRuneBoundary(doc, start) {
		return nil, errNotRuneBoundary("start", start)
	}
	if !onRuneBoundary(doc, end) {
		return nil, errNotRuneBoundary("end", end)
	}

	target := doc[start:end]
	res := &DeleteResult{
		Start:       start,
		End:         end,
		Line:        lineAt(doc, start) + 1,
		CharsBefore: len(doc),
	}

	if expectedContent != nil && strings.TrimSpace(target) != strings.TrimSpace(*expectedContent) {
		want := *expectedContent
		actual := truncate(target, e.previewLen)
		res.Reason = "content_mismatch"
		res.Expected = &want
		res.Actual = &actual
		res.Occurrences = findAll(doc, want, 0)
		res.CharsAfter = len(doc)
		if len(res.Occurrences) == 0 {
			res.Hint = "The expected content does not appear in the document. Re-read it before retrying."
		} else {
			res.Hint = "The expected content exists at the listed offsets. Retry with the matching start and end."
		}
		return res, nil
	}

	updated := doc[:start] + doc[end:]
	if err := e.persist(path, updated); err != nil {
		return nil, err
	}

	res.Success = true
	res.DeletedChars = end - start
	res.Deleted = truncate(target, e.previewLen)
	res.CharsAfter = len(updated)
	return res, nil
}
