package listing

import "gallery-admin/internal/domain/works"

type Options struct {
	Regions      Regions
	DefaultLimit int
}

func DefaultOptions() Options {
	return Options{Regions: DefaultRegions, DefaultLimit: DefaultLimit}
}

// Run filters, sorts and paginates one snapshot. snapshot is left untouched.
func Run(snapshot []works.Artwork, q Query, opts Options) Result {
	regions := opts.Regions
	if regions == nil {
		regions = DefaultRegions
	}
	matched := Filter(snapshot, q, regions)
	Sort(matched, q.Sort)
	w := Paginate(len(matched), q.Page, q.Limit, opts.DefaultLimit)
	return Respond(matched, w)
}
