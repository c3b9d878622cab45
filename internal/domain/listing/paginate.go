package listing

import "gallery-admin/internal/domain/works"

// Window is the clamped page position over a result set of Total records.
type Window struct {
	Total      int
	TotalPages int
	Page       int
	Limit      int
	Offset     int
	End        int
}

// Paginate clamps page into [1, TotalPages] (1 when there are no pages) and
// falls back to defaultLimit, then DefaultLimit, for a non-positive limit.
// It never fails.
func Paginate(total, page, limit, defaultLimit int) Window {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if total < 0 {
		total = 0
	}

	pages := (total + limit - 1) / limit
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return Window{
		Total:      total,
		TotalPages: pages,
		Page:       page,
		Limit:      limit,
		Offset:     offset,
		End:        end,
	}
}

// Result is the collection reply body.
type Result struct {
	Total       int             `json:"total"`
	TotalPages  int             `json:"total_pages"`
	CurrentPage int             `json:"current_page"`
	Limit       int             `json:"limit"`
	Artworks    []works.Artwork `json:"artworks"`
}

// Respond copies the window out of items. Artworks is never nil.
func Respond(items []works.Artwork, w Window) Result {
	page := make([]works.Artwork, w.End-w.Offset)
	copy(page, items[w.Offset:w.End])
	return Result{
		Total:       w.Total,
		TotalPages:  w.TotalPages,
		CurrentPage: w.Page,
		Limit:       w.Limit,
		Artworks:    page,
	}
}
