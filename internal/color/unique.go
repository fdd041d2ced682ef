package color

import "strings"

// UniqueTrim removes case-insensitive duplicates keeping first occurrences, stops at n
// entries and backfills with random colours when fewer than n remain.
func (g *Generator) UniqueTrim(colors []string, n int) []string {
	return g.uniqueTrim(colors, n)
}

func (g *Generator) uniqueTrim(colors []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for _, c := range colors {
		if len(out) == n {
			break
		}
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	for len(out) < n {
		out = append(out, g.RandomHex())
	}
	return out
}
