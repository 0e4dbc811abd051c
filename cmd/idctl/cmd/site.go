package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func siteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact",
		Short: "Show the dealership contact details",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			site, err := c.Site(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(site)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("Name:\t%s\n", site.Name)
			if site.Tagline != "" {
				tw.writef("Tagline:\t%s\n", site.Tagline)
			}
			tw.writef("Phone:\t%s\n", strings.Join(site.Phones, ", "))
			tw.writef("Email:\t%s\n", strings.Join(site.Emails, ", "))
			if site.Address != "" {
				tw.writef("Address:\t%s\n", site.Address)
			}
			for i, h := range site.Hours {
				label := ""
				if i == 0 {
					label = "Hours:"
				}
				tw.writef("%s\t%s\n", label, h)
			}
			return tw.finish()
		},
	}
}
