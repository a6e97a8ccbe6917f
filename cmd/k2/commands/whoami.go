package commands

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewWhoAmICommand creates the whoami command.
func NewWhoAmICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated identity",
		Long:  "Display the organisation and API key the CLI is authenticated as",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			identity, err := client.Auth().WhoAmI(ctx)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(identity)
			case OutputFormatYAML:
				return StandardYAMLRenderer(identity)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Key name", identity.Name)
				_ = table.Append("Key ID", identity.APIKeyID)
				_ = table.Append("Org ID", identity.OrgID)

				_ = table.Render()

				return nil
			}
		},
	}
}
