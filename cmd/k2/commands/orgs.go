package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// NewOrgsCommand creates the organisations command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organisations", "org"},
		Short:   "Manage organisations",
		Long:    "List, inspect, and create Knowledge2 organisations",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())
	cmd.AddCommand(newOrgsCreateCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organisations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			orgs, err := client.Orgs().List(ctx, k2.NewListParams().WithLimit(limit))
			if err != nil {
				return fmt.Errorf("failed to list organisations: %w", err)
			}

			return outputOrgs(orgs.Orgs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results")

	return cmd
}

func outputOrgs(orgs []k2.Org) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(orgs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(orgs)
	default:
		if len(orgs) == 0 {
			_, _ = os.Stdout.WriteString("No organisations found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID", "Contact")

		for _, org := range orgs {
			_ = table.Append(org.Name, org.ID, orNotAvailable(org.ContactEmail))
		}

		_ = table.Render()

		return nil
	}
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORG_ID",
		Short: "Get organisation details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			org, err := client.Orgs().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get organisation: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(org)
			case OutputFormatYAML:
				return StandardYAMLRenderer(org)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Name", org.Name)
				_ = table.Append("ID", org.ID)
				_ = table.Append("Contact", orNotAvailable(org.ContactEmail))

				_ = table.Render()

				return nil
			}
		},
	}
}

func newOrgsCreateCommand() *cobra.Command {
	var contactEmail string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an organisation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			org, err := client.Orgs().Create(ctx, args[0], contactEmail)
			if err != nil {
				return fmt.Errorf("failed to create organisation: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(org)
			case OutputFormatYAML:
				return StandardYAMLRenderer(org)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Successfully created organisation '%s' (ID: %s)\n", org.Name, org.ID)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&contactEmail, "contact-email", "", "contact email for the organisation")

	return cmd
}
