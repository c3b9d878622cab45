package listing

import (
	"strings"

	"gallery-admin/internal/domain/works"
)

type predicate func(a *works.Artwork) bool

// predicates builds the active checks in evaluation order. Status always
// comes first; the rest are present only when their parameter is set.
func predicates(q Query, regions Regions) []predicate {
	preds := []predicate{func(a *works.Artwork) bool { return a.IsApproved() }}

	if q.Search != "" {
		term := q.Search
		preds = append(preds, func(a *works.Artwork) bool {
			return strings.Contains(strings.ToLower(a.Title), term) ||
				strings.Contains(strings.ToLower(a.Description), term) ||
				strings.Contains(strings.ToLower(a.ArtistName), term)
		})
	}
	if q.Type != "" {
		typ := q.Type
		preds = append(preds, func(a *works.Artwork) bool {
			return strings.Contains(strings.ToLower(a.Type), typ)
		})
	}
	if q.Period != "" {
		period := q.Period
		preds = append(preds, func(a *works.Artwork) bool {
			return strings.ToLower(a.Period) == period
		})
	}
	if q.Location != "" {
		region := q.Location
		preds = append(preds, func(a *works.Artwork) bool {
			return regions.Match(region, a.LocationNotes)
		})
	}
	return preds
}

// Filter keeps the records that pass every active predicate, in input order.
// The input slice is not modified.
func Filter(all []works.Artwork, q Query, regions Regions) []works.Artwork {
	preds := predicates(q, regions)
	out := make([]works.Artwork, 0, len(all))
next:
	for i := range all {
		for _, p := range preds {
			if !p(&all[i]) {
				continue next
			}
		}
		out = append(out, all[i])
	}
	return out
}
