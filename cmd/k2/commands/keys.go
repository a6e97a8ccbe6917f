package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewKeysCommand creates the API keys command group.
func NewKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"key", "api-keys"},
		Short:   "Manage API keys",
		Long:    "List, create, rotate, and revoke API keys",
	}

	cmd.AddCommand(newKeysListCommand())
	cmd.AddCommand(newKeysCreateCommand())
	cmd.AddCommand(newKeysRotateCommand())
	cmd.AddCommand(newKeysRevokeCommand())

	return cmd
}

func newKeysListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			keys, err := client.Auth().ListAPIKeys(ctx)
			if err != nil {
				return fmt.Errorf("failed to list API keys: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(keys.Keys)
			case OutputFormatYAML:
				return StandardYAMLRenderer(keys.Keys)
			default:
				if len(keys.Keys) == 0 {
					_, _ = os.Stdout.WriteString("No API keys found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "ID", "Revoked", "Last used")

				for _, key := range keys.Keys {
					_ = table.Append(key.Name, key.ID,
						strconv.FormatBool(key.Revoked), orNotAvailable(key.LastUsedAt))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newKeysCreateCommand() *cobra.Command {
	var orgID string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an API key",
		Long:  "Create an API key; the secret is printed once and never shown again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			if orgID == "" {
				orgID = client.OrgID()
			}

			result, err := client.Auth().CreateAPIKey(ctx, orgID, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to create API key: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(result)
			case OutputFormatYAML:
				return StandardYAMLRenderer(result)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Created API key '%s' (ID: %s)\n", result.Name, result.ID)
				_, _ = fmt.Fprintf(os.Stdout, "Secret (shown once): %s\n", result.APIKey)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organisation ID (defaults to the authenticated org)")

	return cmd
}

func newKeysRotateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate KEY_ID",
		Short: "Rotate an API key",
		Long:  "Replace the key's secret; the old secret stops working immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Auth().RotateAPIKey(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to rotate API key: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Rotated API key '%s'\n", result.Name)
			_, _ = fmt.Fprintf(os.Stdout, "New secret (shown once): %s\n", result.APIKey)

			return nil
		},
	}
}

func newKeysRevokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke KEY_ID",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Auth().RevokeAPIKey(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to revoke API key: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Revoked API key %s\n", result.ID)

			return nil
		},
	}
}
