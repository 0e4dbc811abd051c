package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

func homeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show featured bikes and catalogue totals",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.Home(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			switch resp.State {
			case domain.ViewLoading:
				fmt.Println("Listings are still loading, try again shortly.")
				return nil
			case domain.ViewError:
				return fmt.Errorf("listings could not be loaded: %s", resp.Error)
			}

			fmt.Printf("%d bikes (%d available, %d sold)\n", resp.Total, resp.Available, resp.Sold)
			if len(resp.Brands) > 0 {
				fmt.Printf("Brands: %s\n", strings.Join(resp.Brands, ", "))
			}
			if len(resp.Featured) == 0 {
				return nil
			}
			fmt.Print("\nFeatured\n")
			return printListingsTable(os.Stdout, resp.Featured)
		},
	}
}
