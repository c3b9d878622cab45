package listing

import "strings"

// Regions maps a region bucket to the keywords that place an artwork in it
// when found in its location notes.
type Regions map[string][]string

var DefaultRegions = Regions{
	"nsw": {"sydney", "nsw"},
	"sa":  {"adelaide", "south australia", "sa"},
	"wa":  {"perth", "western australia", "wa"},
}

// Normalized returns a copy with lower-cased, trimmed keys and keywords.
// Empty keywords are dropped so they cannot match every record.
func (r Regions) Normalized() Regions {
	out := make(Regions, len(r))
	for name, words := range r {
		key := normalize(name)
		if key == "" {
			continue
		}
		for _, w := range words {
			if w = normalize(w); w != "" {
				out[key] = append(out[key], w)
			}
		}
	}
	return out
}

// Match reports whether notes fall in the named bucket. Unknown buckets
// match nothing. region and notes are compared case-insensitively.
func (r Regions) Match(region, notes string) bool {
	words, ok := r[region]
	if !ok {
		return false
	}
	notes = strings.ToLower(notes)
	for _, w := range words {
		if strings.Contains(notes, w) {
			return true
		}
	}
	return false
}
