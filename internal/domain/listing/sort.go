package listing

import (
	"slices"
	"strings"
	"time"

	"gallery-admin/internal/domain/works"
)

type SortKey string

const (
	SortTitleAsc   SortKey = "title-asc"
	SortTitleDesc  SortKey = "title-desc"
	SortDateNewest SortKey = "date-newest"
	SortDateOldest SortKey = "date-oldest"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortTitleAsc, SortTitleDesc, SortDateNewest, SortDateOldest:
		return true
	}
	return false
}

// Sort orders items in place. Titles compare byte-wise, so "Banana" sorts
// before "apple". Dates missing or unparseable sort as the epoch. Equal keys
// keep their filter order. Unknown keys leave items untouched.
func Sort(items []works.Artwork, key SortKey) {
	switch key {
	case SortTitleAsc:
		slices.SortStableFunc(items, func(a, b works.Artwork) int {
			return strings.Compare(a.Title, b.Title)
		})
	case SortTitleDesc:
		slices.SortStableFunc(items, func(a, b works.Artwork) int {
			return strings.Compare(b.Title, a.Title)
		})
	case SortDateNewest:
		sortByDate(items, true)
	case SortDateOldest:
		sortByDate(items, false)
	}
}

type dated struct {
	at  time.Time
	art works.Artwork
}

// sortByDate parses each timestamp once rather than on every comparison.
func sortByDate(items []works.Artwork, newestFirst bool) {
	keyed := make([]dated, len(items))
	for i, a := range items {
		keyed[i] = dated{at: a.CreatedTime(), art: a}
	}
	slices.SortStableFunc(keyed, func(a, b dated) int {
		if newestFirst {
			return b.at.Compare(a.at)
		}
		return a.at.Compare(b.at)
	})
	for i := range keyed {
		items[i] = keyed[i].art
	}
}
