package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	fieldCategory int
	statusAll     bool
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Work with ticket categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ticket categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := client.ListCategories(ctx)
		if err != nil {
			return err
		}

		if len(cats) == 0 {
			fmt.Println("No categories found")
			return nil
		}

		for _, c := range cats {
			line := fmt.Sprintf("%4d  %s", c.ID, c.Name)
			if c.Group != "" {
				line += fmt.Sprintf("  (%s)", c.Group)
			}
			if c.Deleted {
				line += "  [deleted]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var fieldCmd = &cobra.Command{
	Use:     "field",
	Aliases: []string{"fields"},
	Short:   "Work with custom fields",
}

var fieldListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom field definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := client.ListCustomFields(ctx, fieldCategory)
		if err != nil {
			return err
		}

		if len(fields) == 0 {
			fmt.Println("No custom fields found")
			return nil
		}

		for _, f := range fields {
			line := fmt.Sprintf("%4d  %s  (%s)", f.ID, f.Name, f.Type)
			if f.Required {
				line += "  required"
			}
			if len(f.ListItems) > 0 {
				line += fmt.Sprintf("  options: %d", len(f.ListItems))
			}
			fmt.Println(line)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"statuses"},
	Short:   "Work with status types",
}

var statusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List status types (requires credentials)",
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses, err := client.ListStatusTypes(ctx, !statusAll)
		if err != nil {
			return err
		}

		for _, s := range statuses {
			fmt.Printf("%4d  %s\n", s.ID, s.Name)
		}
		return nil
	},
}

func init() {
	fieldListCmd.Flags().IntVarP(&fieldCategory, "category", "c", 0, "only fields visible for this category ID (requires credentials)")
	statusListCmd.Flags().BoolVar(&statusAll, "all", false, "include inactive status types")

	categoryCmd.AddCommand(categoryListCmd)
	fieldCmd.AddCommand(fieldListCmd)
	statusCmd.AddCommand(statusListCmd)
}
