package main

import (
	"net/url"
	"path/filepath"
	"strconv"

	"gallery-admin/config"
	"gallery-admin/internal/domain/listing"
	"gallery-admin/internal/domain/works"
	"gallery-admin/internal/infra/jsonstore"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var (
		search, typ, period, location, sort, regionsFile string
		page, limit                                      int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run the public collection listing against submissions.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := listing.DefaultOptions()
			if regionsFile != "" {
				regions, err := config.LoadRegions(regionsFile)
				if err != nil {
					return err
				}
				opts.Regions = listing.Regions(regions).Normalized()
			}

			file := jsonstore.New[works.Artwork](filepath.Join(dataDir, jsonstore.SubmissionsFile), jsonstore.Required())
			all, err := file.All(cmd.Context())
			if err != nil {
				return err
			}

			v := url.Values{}
			set := func(key, value string) {
				if value != "" {
					v.Set(key, value)
				}
			}
			set("search", search)
			set("type", typ)
			set("period", period)
			set("location", location)
			set("sort", sort)
			if page > 0 {
				v.Set("page", strconv.Itoa(page))
			}
			if limit > 0 {
				v.Set("limit", strconv.Itoa(limit))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(listing.Run(all, listing.ParseQuery(v), opts))
		},
	}

	f := cmd.Flags()
	f.StringVar(&search, "search", "", "substring of title, artist or description")
	f.StringVar(&typ, "type", "", "substring of the artwork type")
	f.StringVar(&period, "period", "", "exact period")
	f.StringVar(&location, "location", "", "region bucket, e.g. nsw")
	f.StringVar(&sort, "sort", "", "title-asc, title-desc, date-newest or date-oldest")
	f.IntVar(&page, "page", 1, "page number")
	f.IntVar(&limit, "limit", 0, "page size")
	f.StringVar(&regionsFile, "regions", "", "YAML file overriding the region table")
	return cmd
}
