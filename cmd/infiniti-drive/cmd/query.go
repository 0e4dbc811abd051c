package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/infinitidrive/infiniti-drive/internal/config"
	"github.com/infinitidrive/infiniti-drive/pkg/catalogue"
	"github.com/infinitidrive/infiniti-drive/pkg/logger"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

func queryCommand() *cobra.Command {
	var (
		raw        catalogue.RawCriteria
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Fetch listings from the CMS once and run a catalogue query locally",
		Long: "Loads every listing from the configured CMS, applies the same search, filter,\n" +
			"and sort rules as the API, and prints the result. Filter values are taken as\n" +
			"text, so malformed prices fall back to their defaults exactly as on the site.",
		Example: `  infiniti-drive query --brand BMW --sort year-new
  infiniti-drive query --max-price 1000000 --visibility available --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.CMS.FetchTimeout)
			defer cancel()

			res, err := newSource(&cfg.CMS, log).FetchListings(ctx)
			if err != nil {
				return err
			}

			criteria := catalogue.ParseCriteria(raw)
			results := catalogue.Query(res.Listings, criteria)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d listings match\n\n", len(results), len(res.Listings))
			if len(results) == 0 {
				return nil
			}
			return printListings(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&raw.Search, "search", "", "case-insensitive name search")
	cmd.Flags().StringVar(&raw.Brand, "brand", "", "exact brand, or 'any'")
	cmd.Flags().StringVar(&raw.PriceMin, "min-price", "", "minimum price (inclusive)")
	cmd.Flags().StringVar(&raw.PriceMax, "max-price", "", "maximum price (inclusive, defaults to 5000000)")
	cmd.Flags().StringVar(&raw.Visibility, "visibility", "", "all, available, or sold")
	cmd.Flags().StringVar(&raw.Sort, "sort", "", "sort key")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func init() {
	rootCmd.AddCommand(queryCommand())
}

func printListings(w io.Writer, listings []domain.Listing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tPRICE\tYEAR\tKM\tSOLD")
	for i := range listings {
		l := &listings[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%v\n",
			l.ID, l.Name, l.Brand, l.Price, l.Year, l.KmDriven, l.Sold)
	}
	return tw.Flush()
}
