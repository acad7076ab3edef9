package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/criteria"
)

// CriteriaOptions collects filter and sort flags. Flags override the same
// keys given in --query.
type CriteriaOptions struct {
	Query     string
	Name      string
	Rating    string
	PriceMin  string
	PriceMax  string
	Stars     string
	Line      string
	Meals     string
	Regions   string
	WiFi      string
	Operators string
	Sort      string
}

func AddCriteriaArgs(cmd *cobra.Command, o *CriteriaOptions) {
	f := cmd.Flags()
	f.StringVar(&o.Query, "query", "",
		"Criteria in query-string form, e.g. 'filter_stars=4,5&sort_by=price,asc'.")
	f.StringVar(&o.Name, "name", "", "Hotel name pattern (case-insensitive regexp).")
	f.StringVar(&o.Rating, "rating", "", "Minimum rating.")
	f.StringVar(&o.PriceMin, "price-min", "", "Minimum price.")
	f.StringVar(&o.PriceMax, "price-max", "", "Maximum price.")
	f.StringVar(&o.Stars, "stars", "", "Comma separated star categories.")
	f.StringVar(&o.Line, "line", "", "Comma separated beach lines.")
	f.StringVar(&o.Meals, "meals", "", "Comma separated meal plans; any one matches.")
	f.StringVar(&o.Regions, "regions", "", "Comma separated region ids.")
	f.StringVar(&o.WiFi, "wifi", "", "Comma separated Wi-Fi tiers.")
	f.StringVar(&o.Operators, "operators", "", "Comma separated operator ids; any one matches.")
	f.StringVar(&o.Sort, "sort", "",
		"One of 'price,asc', 'price,desc' or 'rating,desc'. Defaults to 'rating,desc'.")
}

// Criteria builds the criteria described by the flags.
func (o *CriteriaOptions) Criteria() (criteria.Criteria, error) {
	base, err := criteria.ParseQuery(o.Query)
	if err != nil {
		return criteria.Criteria{}, err
	}
	values := base.Values()
	if _, ok := values[criteria.KeySort]; !ok && o.Query == "" {
		values[criteria.KeySort] = criteria.Default().Sort().String()
	}
	for key, v := range map[string]string{
		criteria.KeyName:      o.Name,
		criteria.KeyRating:    o.Rating,
		criteria.KeyPriceMin:  o.PriceMin,
		criteria.KeyPriceMax:  o.PriceMax,
		criteria.KeyStars:     o.Stars,
		criteria.KeyLine:      o.Line,
		criteria.KeyMeals:     o.Meals,
		criteria.KeyRegions:   o.Regions,
		criteria.KeyWiFi:      o.WiFi,
		criteria.KeyOperators: o.Operators,
		criteria.KeySort:      o.Sort,
	} {
		if v != "" {
			values[key] = v
		}
	}
	return criteria.Parse(values), nil
}
