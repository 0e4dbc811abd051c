package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/infinitidrive/infiniti-drive/internal/api/client"
)

func enquireCmd() *cobra.Command {
	var req apiclient.EnquiryRequest

	cmd := &cobra.Command{
		Use:   "enquire",
		Short: "Send an enquiry to the dealership",
		Example: `  # Ask about a specific bike
  idctl enquire --name "Asha Nair" --email asha@example.com \
    --subject bike --listing 1 --message "Is the Z900 still available?"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			receipt, err := c.SubmitEnquiry(context.Background(), &req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(receipt)
			}

			fmt.Printf("Thank you for your message! Your reference is %s.\n", receipt.Reference)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "reply email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().
		StringVar(&req.Subject, "subject", "", "general, bike, financing, service, trade, or other")
	cmd.Flags().StringVar(&req.Message, "message", "", "enquiry text")
	cmd.Flags().StringVar(&req.ListingID, "listing", "", "ID of the bike the enquiry is about")

	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	cobra.CheckErr(cmd.MarkFlagRequired("email"))
	cobra.CheckErr(cmd.MarkFlagRequired("message"))

	return cmd
}
