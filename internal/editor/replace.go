package editor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/HendryAvila/docket/internal/faults"
)

const (
	maxCandidates = 3
	prefixLength  = 50
)

var (
	headingRe     = regexp.MustCompile(`(?m)^#{1,6}[ \t]+\S.*$`)
	factRe        = regexp.MustCompile(`Fact \d+:`)
	capitalPairRe = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
)

// Candidate is a near match offered when the search text is missing.
type Candidate struct {
	Strategy string `json:"strategy"`
	Text     string `json:"text"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Line     int    `json:"line"`
	Context  string `json:"context"`
}

// ReplaceResult reports the outcome of Replace.
type ReplaceResult struct {
	Success     bool         `json:"success"`
	Count       int          `json:"count"`
	Positions   []Occurrence `json:"positions,omitempty"`
	LengthDelta int          `json:"length_delta"`
	CharsBefore int          `json:"chars_before"`
	CharsAfter  int          `json:"chars_after"`

	Reason     string      `json:"reason,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
	Hint       string      `json:"hint,omitempty"`
}

// Replace substitutes the first (or every, with all) occurrence of search.
func (e *Editor) Replace(path, search, replacement string, all bool) (*ReplaceResult, error) {
	if search == "" {
		return nil, faults.InvalidParams("search text must not be empty")
	}

	doc, err := e.load(path)
	if err != nil {
		return nil, err
	}

	res := &ReplaceResult{CharsBefore: len(doc), CharsAfter: len(doc)}

	if replacement == search {
		res.Reason = "no_op"
		res.Hint = "The replacement is identical to the search text, so nothing would change."
		return res, nil
	}

	limit := 1
	if all {
		limit = 0
	}
	positions := findAll(doc, search, limit)
	if len(positions) == 0 {
		res.Reason = "not_found"
		res.Candidates = candidates(doc, search)
		if len(res.Candidates) == 0 {
			res.Hint = "The search text was not found and no similar text was detected. Re-read the document."
		} else {
			res.Hint = "The search text was not found verbatim. Check the candidates, then retry with the exact current text."
		}
		return res, nil
	}

	var updated string
	if all {
		updated = strings.ReplaceAll(doc, search, replacement)
	} else {
		updated = strings.Replace(doc, search, replacement, 1)
	}

	if err := e.persist(path, updated); err != nil {
		return nil, err
	}

	res.Success = true
	res.Count = len(positions)
	res.Positions = positions
	res.CharsAfter = len(updated)
	res.LengthDelta = len(updated) - len(doc)
	return res, nil
}

// candidates tries, in order, a prefix match, key phrases and the first
// non-blank line. The first strategy that finds anything wins.
func candidates(doc, search string) []Candidate {
	if prefix := runePrefix(search, prefixLength); prefix != search {
		if out := collect(doc, "prefix", []string{prefix}); len(out) > 0 {
			return out
		}
	}

	if out := collect(doc, "key_phrase", keyPhrases(search)); len(out) > 0 {
		return out
	}

	if strings.Contains(search, "\n") {
		for _, line := range strings.Split(search, "\n") {
			if l := strings.TrimSpace(line); l != "" {
				return collect(doc, "first_line", []string{l})
			}
		}
	}
	return nil
}

func collect(doc, strategy string, phrases []string) []Candidate {
	var out []Candidate
	for _, phrase := range phrases {
		for _, occ := range findAll(doc, phrase, maxCandidates-len(out)) {
			out = append(out, Candidate{
				Strategy: strategy,
				Text:     phrase,
				Start:    occ.Start,
				End:      occ.End,
				Line:     occ.Line,
				Context:  occ.Context,
			})
		}
		if len(out) >= maxCandidates {
			break
		}
	}
	return out
}

// keyPhrases extracts markdown headings, "Fact N:" markers and capitalized
// word pairs, deduplicated in order of appearance.
func keyPhrases(search string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(matches []string) {
		for _, m := range matches {
			m = strings.TrimSpace(m)
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	add(headingRe.FindAllString(search, -1))
	add(factRe.FindAllString(search, -1))
	add(capitalPairRe.FindAllString(search, -1))
	return out
}

func runePrefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
