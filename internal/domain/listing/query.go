// Package listing turns the full submissions snapshot into one page of the
// public collection: approved records only, optional filters, optional sort,
// clamped page window.
package listing

import (
	"net/url"
	"strconv"
	"strings"
)

const DefaultLimit = 8

// Query is the normalized set of collection parameters. Text filters are
// lower-cased and trimmed; an empty filter is skipped.
type Query struct {
	Search   string
	Type     string
	Period   string
	Location string
	Sort     SortKey

	// Page and Limit are 0 when absent or not a number; Paginate substitutes
	// the defaults.
	Page  int
	Limit int
}

// ParseQuery reads the collection parameters from a request query string.
// "keyword" is accepted in place of "search".
func ParseQuery(v url.Values) Query {
	search := v.Get("search")
	if strings.TrimSpace(search) == "" {
		search = v.Get("keyword")
	}
	return Query{
		Search:   normalize(search),
		Type:     normalize(v.Get("type")),
		Period:   normalize(v.Get("period")),
		Location: normalize(v.Get("location")),
		Sort:     SortKey(strings.TrimSpace(v.Get("sort"))),
		Page:     atoi(v.Get("page")),
		Limit:    atoi(v.Get("limit")),
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
