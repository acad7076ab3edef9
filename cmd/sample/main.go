// Command sample writes a synthetic catalog response for trying tourcatalog
// without a live data source.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type options struct {
	count     int
	seed      int64
	requestID string
	out       string
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic catalog response",
		Example: `
sample --count 500 > hotels.json
sample --count 50 --out hotels.json && tourcatalog ui -f hotels.json --follow
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if opts.out != "" {
				f, err := os.Create(opts.out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return write(w, opts)
		},
	}

	rootCmd.Flags().IntVarP(&opts.count, "count", "n", 200, "number of hotels")
	rootCmd.Flags().Int64Var(&opts.seed, "seed", 1, "random seed; the same seed gives the same catalog")
	rootCmd.Flags().StringVar(&opts.requestID, "request-id", "", "request id stamped on the response (default: a uuid derived from --seed)")
	rootCmd.Flags().StringVarP(&opts.out, "out", "o", "", "write to this file instead of stdout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	cities    = []string{"Sochi", "Adler", "Gelendzhik", "Anapa", "Yalta", "Alushta", "Evpatoria"}
	prefixes  = []string{"Grand", "Azure", "Black Sea", "Coral", "Sunny", "Pearl", "Golden"}
	suffixes  = []string{"Resort", "Hotel", "Spa", "Inn", "Palace", "Residence", "Lodge"}
	meals     = []string{"RO", "BB", "HB", "FB", "AI"}
	wifiTiers = []string{"FREE_ALL", "FREE_LOBBY", "PAID", "NONE"}
)

type option struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
}

func write(w io.Writer, opts options) error {
	r := rand.New(rand.NewSource(opts.seed))
	requestID := opts.requestID
	if requestID == "" {
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return err
		}
		requestID = id.String()
	}

	hotels := make([]map[string]any, 0, opts.count)
	for i := 0; i < opts.count; i++ {
		price := 1500 + r.Intn(300)*50
		pansion := map[string]int{}
		for _, m := range meals {
			if r.Intn(3) == 0 {
				pansion[m] = price + r.Intn(40)*100
			}
		}
		if len(pansion) == 0 {
			pansion["RO"] = price
		}
		operators := []int{1 + r.Intn(5)}
		if r.Intn(2) == 0 {
			operators = append(operators, 6+r.Intn(4))
		}

		hotels = append(hotels, map[string]any{
			"hotel": map[string]any{
				"id":       1000 + i,
				"name":     fmt.Sprintf("%s %s %d", prefixes[r.Intn(len(prefixes))], suffixes[r.Intn(len(suffixes))], i+1),
				"city":     cities[r.Intn(len(cities))],
				"link":     fmt.Sprintf("hotel/%d", 1000+i),
				"rating":   float64(20+r.Intn(31)) / 10,
				"stars":    1 + r.Intn(5),
				"place_id": 1 + r.Intn(len(cities)),
				"features": map[string]any{
					"line":           1 + r.Intn(3),
					"wi_fi":          wifiTiers[r.Intn(len(wifiTiers))],
					"beach_distance": 50 * (1 + r.Intn(40)),
				},
			},
			"min_price":      price,
			"pansion_prices": pansion,
			"operators":      operators,
			"extras": map[string]any{
				"previous_price": price + price*r.Intn(30)/100,
			},
		})
	}

	filters := map[string][]option{
		"stars": {{1, "1*"}, {2, "2*"}, {3, "3*"}, {4, "4*"}, {5, "5*"}},
		"line":  {{1, "1st line"}, {2, "2nd line"}, {3, "3rd line"}},
	}
	for _, m := range meals {
		filters["meals"] = append(filters["meals"], option{m, m})
	}
	for _, t := range wifiTiers {
		filters["wifi"] = append(filters["wifi"], option{t, t})
	}
	for i, c := range cities {
		filters["regions"] = append(filters["regions"], option{i + 1, c})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"success": true,
		"main":    map[string]any{"request_id": requestID},
		"hotels":  hotels,
		"filters": filters,
	})
}
