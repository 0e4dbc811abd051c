package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/infinitidrive/infiniti-drive/internal/api/client"
)

func listingsCmd() *cobra.Command {
	listingsRoot := &cobra.Command{
		Use:   "listings",
		Short: "Browse the catalogue",
		Long: "Search, filter, and sort the bikes in the Infiniti Drive catalogue,\n" +
			"or show the full specification of a single listing.",
	}

	listingsRoot.AddCommand(
		listingsListCmd(),
		listingsGetCmd(),
	)

	return listingsRoot
}

func listingsListCmd() *cobra.Command {
	var (
		search      string
		brand       string
		priceMin    int
		priceMax    int
		visibility  string
		sortKey     string
		partitioned bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bikes with optional filters",
		Long: "List catalogue bikes with optional search text, brand, price range,\n" +
			"sold visibility, and sort order. Unset filters use the server defaults.",
		Example: `  # Everything, sorted by name
  idctl listings list

  # BMWs, newest first
  idctl listings list --brand BMW --sort year-new

  # Under five lakh, cheapest first
  idctl listings list --max-price 500000 --sort price-low

  # Available and sold bikes in separate sections
  idctl listings list --partitioned`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListListings(context.Background(), &apiclient.ListListingsParams{
				Search:      search,
				Brand:       brand,
				PriceMin:    priceMin,
				PriceMax:    priceMax,
				Visibility:  visibility,
				Sort:        sortKey,
				Partitioned: partitioned,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			fmt.Printf("Showing %d of %d bikes\n\n", resp.Shown, resp.Total)
			return printSections(os.Stdout, resp)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name search")
	cmd.Flags().StringVar(&brand, "brand", "", "exact brand, or 'any'")
	cmd.Flags().IntVar(&priceMin, "min-price", 0, "minimum price (inclusive)")
	cmd.Flags().IntVar(&priceMax, "max-price", 0, "maximum price (inclusive, 0 for the catalogue default)")
	cmd.Flags().StringVar(&visibility, "visibility", "", "all, available, or sold")
	cmd.Flags().
		StringVar(&sortKey, "sort", "", "sort order (name, price-low, price-high, year-new, year-old, km-low, km-high)")
	cmd.Flags().BoolVar(&partitioned, "partitioned", false, "show available and sold bikes separately")

	return cmd
}

func listingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show listing details",
		Example: `  idctl listings get 4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			l, err := c.GetListing(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(l)
			}

			return printListingDetail(os.Stdout, l)
		},
	}
}
