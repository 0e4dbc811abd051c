package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func brandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List the brands in the catalogue",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListBrands(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Brands) == 0 {
				fmt.Println("No brands found.")
				return nil
			}
			for _, b := range resp.Brands {
				fmt.Println(b)
			}
			return nil
		},
	}
}
