package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	customerEmail    string
	customerPassword string
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Customer portal operations",
}

var customerRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List a customer's ticket history",
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs, err := client.CustomerRequests(ctx, customerEmail, customerPassword)
		if err != nil {
			return err
		}

		if len(reqs) == 0 {
			fmt.Println("No tickets found")
			return nil
		}

		for _, r := range reqs {
			fmt.Println(renderRequestLine(r))
		}
		return nil
	},
}

func init() {
	customerRequestsCmd.Flags().StringVarP(&customerEmail, "email", "e", "", "customer email (required)")
	customerRequestsCmd.Flags().StringVarP(&customerPassword, "password", "p", "", "ticket password (required)")
	customerRequestsCmd.MarkFlagRequired("email")
	customerRequestsCmd.MarkFlagRequired("password")
	customerCmd.AddCommand(customerRequestsCmd)
}
