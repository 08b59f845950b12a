package database

import "strings"

// Palette is the set of colors an option may carry.
var Palette = []string{"default", "gray", "brown", "orange", "yellow", "green", "blue", "purple", "pink", "red"}

// cyclePalette assigns colors to options created without one.
var cyclePalette = Palette[1:]

// MatchColor maps free-form input onto the palette: exact match first,
// then substring containment either way, then the closest name within
// edit distance 2. It reports false when nothing is close enough.
func MatchColor(input string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", false
	}
	for _, c := range Palette {
		if c == in {
			return c, true
		}
	}
	for _, c := range Palette {
		if strings.Contains(in, c) || strings.Contains(c, in) {
			return c, true
		}
	}

	best, bestDist := "", 3
	for _, c := range Palette {
		if d := levenshtein(in, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// normalizeOptions snaps option colors to the palette. Options without a
// color cycle through the palette; unrecognized colors become "default".
func normalizeOptions(opts []Option) []Option {
	out := make([]Option, 0, len(opts))
	seen := map[string]bool{}
	for i, o := range opts {
		o.Value = strings.TrimSpace(o.Value)
		if o.Value == "" || seen[o.Value] {
			continue
		}
		seen[o.Value] = true
		switch {
		case o.Color == "":
			o.Color = cyclePalette[i%len(cyclePalette)]
		default:
			if c, ok := MatchColor(o.Color); ok {
				o.Color = c
			} else {
				o.Color = "default"
			}
		}
		out = append(out, o)
	}
	return out
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
