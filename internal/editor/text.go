package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// snippetRadius is how many bytes of context surround a match.
const snippetRadius = 40

// Occurrence locates a verbatim match inside a document.
type Occurrence struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Context string `json:"context"`
}

// LineMatch is a whole line equal to some expected text.
type LineMatch struct {
	Line   int    `json:"line"`
	Offset int    `json:"offset"`
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// lineAt returns the 0-based index of the line containing offset.
func lineAt(doc string, offset int) int {
	if offset > len(doc) {
		offset = len(doc)
	}
	return strings.Count(doc[:offset], "\n")
}

// countLines counts lines the way an editor shows them: "" has one line.
func countLines(doc string) int {
	return strings.Count(doc, "\n") + 1
}

// lineBefore returns the line immediately preceding an insertion point.
// At the start of a line that is the previous line; inside a line it is
// the line itself.
func lineBefore(doc string, offset int) string {
	if offset <= 0 {
		return ""
	}
	lines := strings.Split(doc, "\n")
	idx := lineAt(doc, offset)
	if doc[offset-1] == '\n' {
		idx--
	}
	return lines[idx]
}

// findAll returns every non-overlapping occurrence of needle.
func findAll(doc, needle string, limit int) []Occurrence {
	if needle == "" {
		return nil
	}
	var out []Occurrence
	from := 0
	for from <= len(doc) {
		i := strings.Index(doc[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(needle)
		out = append(out, Occurrence{
			Start:   start,
			End:     end,
			Line:    lineAt(doc, start) + 1,
			Context: snippet(doc, start, end),
		})
		if limit > 0 && len(out) >= limit {
			break
		}
		from = end
	}
	return out
}

// matchingLines returns every line equal to want, with one line of context.
func matchingLines(doc, want string) []LineMatch {
	lines := strings.Split(doc, "\n")
	var out []LineMatch
	offset := 0
	for i, line := range lines {
		if line == want {
			m := LineMatch{Line: i + 1, Offset: offset + len(line)}
			if i > 0 {
				m.Before = lines[i-1]
			}
			if i+1 < len(lines) {
				m.After = lines[i+1]
			}
			out = append(out, m)
		}
		offset += len(line) + 1
	}
	return out
}

// snippet returns the match with up to snippetRadius bytes on each side,
// widened to rune boundaries.
func snippet(doc string, start, end int) string {
	from := start - snippetRadius
	if from < 0 {
		from = 0
	}
	for from > 0 && !utf8.RuneStart(doc[from]) {
		from--
	}
	to := end + snippetRadius
	if to > len(doc) {
		to = len(doc)
	}
	for to < len(doc) && !utf8.RuneStart(doc[to]) {
		to++
	}
	s := doc[from:to]
	if from > 0 {
		s = "..." + s
	}
	if to < len(doc) {
		s += "..."
	}
	return s
}

// truncate shortens s to max runes, appending an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

// onRuneBoundary reports whether offset does not split a UTF-8 sequence.
func onRuneBoundary(doc string, offset int) bool {
	return offset <= 0 || offset >= len(doc) || utf8.RuneStart(doc[offset])
}

// numbered renders lines[from:to] with 1-based line numbers, marking the
// lines in [markFrom, markTo] with '>'.
func numbered(lines []string, from, to, markFrom, markTo int) string {
	width := len(fmt.Sprint(to))
	var b strings.Builder
	for i := from; i < to; i++ {
		marker := " "
		if i >= markFrom && i <= markTo {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s%*d| %s\n", marker, width, i+1, lines[i])
	}
	return b.String()
}
