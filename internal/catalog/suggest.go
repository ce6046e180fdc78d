package catalog

import (
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"

	"ponydex/internal/names"
)

type Suggestion struct {
	ID    string
	Name  string
	Score float64
}

type keySource []tableKey

func (s keySource) String(i int) string { return s[i].key }
func (s keySource) Len() int            { return len(s) }

// Suggest ranks table entries close to query, combining edit distance for
// typos with subsequence matching for abbreviations. Each id appears once.
func (t *NameTable) Suggest(query string, limit int) []Suggestion {
	q := names.Normalize(query, t.options)
	if q == "" {
		return nil
	}

	keys := t.sortedKeys()
	best := make(map[string]Suggestion)
	consider := func(entry NameEntry, score float64) {
		if current, ok := best[entry.ID]; ok && current.Score >= score {
			return
		}
		best[entry.ID] = Suggestion{ID: entry.ID, Name: entry.Name, Score: score}
	}

	for _, k := range keys {
		dist := levenshtein.ComputeDistance(q, k.key)
		if dist <= levenshteinLimit(utf8.RuneCountInString(k.key)) {
			consider(k.entry, 1-0.1*float64(dist))
		}
	}

	for rank, m := range fuzzy.FindFrom(q, keySource(keys)) {
		score := 0.6 - 0.01*float64(rank)
		if score < 0.1 {
			score = 0.1
		}
		consider(keys[m.Index].entry, score)
	}

	out := make([]Suggestion, 0, len(best))
	for _, s := range best {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
