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

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		Long:    "List, inspect, and create Knowledge2 projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsCreateCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			var projects []k2.Project

			if all {
				projects, err = client.Projects().Iterate(ctx, 0).All()
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}
			} else {
				list, err := client.Projects().List(ctx, k2.NewListParams())
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}

				projects = list.Projects
			}

			return outputProjects(projects)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")

	return cmd
}

func outputProjects(projects []k2.Project) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(projects)
	case OutputFormatYAML:
		return StandardYAMLRenderer(projects)
	default:
		if len(projects) == 0 {
			_, _ = os.Stdout.WriteString("No projects found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID", "Org")

		for _, project := range projects {
			_ = table.Append(project.Name, project.ID, project.OrgID)
		}

		_ = table.Render()

		return nil
	}
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Get project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			project, err := client.Projects().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(project)
			case OutputFormatYAML:
				return StandardYAMLRenderer(project)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Name", project.Name)
				_ = table.Append("ID", project.ID)
				_ = table.Append("Org", project.OrgID)

				_ = table.Render()

				return nil
			}
		},
	}
}

func newProjectsCreateCommand() *cobra.Command {
	var orgID string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
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

			project, err := client.Projects().Create(ctx, orgID, args[0])
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(project)
			case OutputFormatYAML:
				return StandardYAMLRenderer(project)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Successfully created project '%s' (ID: %s)\n", project.Name, project.ID)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organisation ID (defaults to the authenticated org)")

	return cmd
}
