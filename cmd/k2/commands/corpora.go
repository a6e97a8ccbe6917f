package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// NewCorporaCommand creates the corpora command group.
func NewCorporaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "corpora",
		Aliases: []string{"corpus"},
		Short:   "Manage corpora",
		Long:    "List, inspect, create, update, and delete Knowledge2 corpora",
	}

	cmd.AddCommand(newCorporaListCommand())
	cmd.AddCommand(newCorporaGetCommand())
	cmd.AddCommand(newCorporaStatusCommand())
	cmd.AddCommand(newCorporaCreateCommand())
	cmd.AddCommand(newCorporaUpdateCommand())
	cmd.AddCommand(newCorporaDeleteCommand())
	cmd.AddCommand(newCorporaModelsCommand())

	return cmd
}

func newCorporaListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List corpora",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			var corpora []k2.Corpus

			if all {
				corpora, err = client.Corpora().Iterate(ctx, 0).All()
				if err != nil {
					return fmt.Errorf("failed to list corpora: %w", err)
				}
			} else {
				list, err := client.Corpora().List(ctx, k2.NewListParams())
				if err != nil {
					return fmt.Errorf("failed to list corpora: %w", err)
				}

				corpora = list.Corpora
			}

			return outputCorpora(corpora)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")

	return cmd
}

func outputCorpora(corpora []k2.Corpus) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(corpora)
	case OutputFormatYAML:
		return StandardYAMLRenderer(corpora)
	default:
		if len(corpora) == 0 {
			_, _ = os.Stdout.WriteString("No corpora found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID", "Project", "Created")

		for _, corpus := range corpora {
			_ = table.Append(corpus.Name, corpus.ID, corpus.ProjectID, orNotAvailable(corpus.CreatedAt))
		}

		_ = table.Render()

		return nil
	}
}

func newCorporaGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CORPUS_NAME_OR_ID",
		Short: "Get corpus details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			corpusID, err := resolveCorpusID(ctx, client, args[0])
			if err != nil {
				return err
			}

			corpus, err := client.Corpora().Get(ctx, corpusID)
			if err != nil {
				return fmt.Errorf("failed to get corpus: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(corpus)
			case OutputFormatYAML:
				return StandardYAMLRenderer(corpus)
			default:
				return renderCorpusTable(corpus)
			}
		},
	}
}

func renderCorpusTable(corpus *k2.Corpus) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", corpus.Name)
	_ = table.Append("ID", corpus.ID)
	_ = table.Append("Project", corpus.ProjectID)
	_ = table.Append("Description", orNotAvailable(corpus.Description))
	_ = table.Append("Current model", orNotAvailable(corpus.CurrentModelID))
	_ = table.Append("Created", orNotAvailable(corpus.CreatedAt))

	_ = table.Render()

	return nil
}

func newCorporaStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status CORPUS_NAME_OR_ID",
		Short: "Show corpus ingestion and index status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			corpusID, err := resolveCorpusID(ctx, client, args[0])
			if err != nil {
				return err
			}

			status, err := client.Corpora().GetStatus(ctx, corpusID)
			if err != nil {
				return fmt.Errorf("failed to get corpus status: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(status)
			case OutputFormatYAML:
				return StandardYAMLRenderer(status)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Status", status.Status)
				_ = table.Append("Retrieval ready", strconv.FormatBool(status.RetrievalReady))
				_ = table.Append("Documents", strconv.Itoa(status.DocumentCount))
				_ = table.Append("Processing", strconv.Itoa(status.DocumentsProcessing))
				_ = table.Append("Failed", strconv.Itoa(status.DocumentsFailed))
				_ = table.Append("Dense index", orNotAvailable(status.DenseStatus))
				_ = table.Append("Sparse index", orNotAvailable(status.SparseStatus))
				_ = table.Append("Graph index", orNotAvailable(status.GraphStatus))

				_ = table.Render()

				return nil
			}
		},
	}
}

func newCorporaCreateCommand() *cobra.Command {
	var (
		projectID   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return ErrCorpusNameRequired
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			corpus, err := client.Corpora().Create(ctx, &k2.CorpusCreateRequest{
				ProjectID:   projectID,
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create corpus: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(corpus)
			case OutputFormatYAML:
				return StandardYAMLRenderer(corpus)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Successfully created corpus '%s' (ID: %s)\n", corpus.Name, corpus.ID)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID")
	cmd.Flags().StringVar(&description, "description", "", "corpus description")

	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newCorporaUpdateCommand() *cobra.Command {
	var (
		newName     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update CORPUS_NAME_OR_ID",
		Short: "Update a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			corpusID, err := resolveCorpusID(ctx, client, args[0])
			if err != nil {
				return err
			}

			request := &k2.CorpusUpdateRequest{}
			hasUpdate := false

			if newName != "" {
				request.Name = &newName
				hasUpdate = true
			}

			if description != "" {
				request.Description = &description
				hasUpdate = true
			}

			if !hasUpdate {
				_, _ = os.Stdout.WriteString("No updates specified\n")

				return nil
			}

			corpus, err := client.Corpora().Update(ctx, corpusID, request)
			if err != nil {
				return fmt.Errorf("failed to update corpus: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully updated corpus '%s' (ID: %s)\n", corpus.Name, corpus.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "new corpus name")
	cmd.Flags().StringVar(&description, "description", "", "new corpus description")

	return cmd
}

func newCorporaDeleteCommand() *cobra.Command {
	var (
		force bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "delete CORPUS_NAME_OR_ID",
		Short: "Delete a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			corpusID, err := resolveCorpusID(ctx, client, args[0])
			if err != nil {
				return err
			}

			if !yes {
				reader := bufio.NewReader(os.Stdin)
				fmt.Printf("Really delete corpus '%s'? (y/N): ", args[0])

				answer, _ := reader.ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					_, _ = os.Stdout.WriteString("Aborted\n")

					return nil
				}
			}

			result, err := client.Corpora().Delete(ctx, corpusID, force)
			if err != nil {
				return fmt.Errorf("failed to delete corpus: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s\n", result.Message)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete even with active deployments")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func newCorporaModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models CORPUS_NAME_OR_ID",
		Short: "List the retrieval models of a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			corpusID, err := resolveCorpusID(ctx, client, args[0])
			if err != nil {
				return err
			}

			models, err := client.Corpora().IterateModels(ctx, corpusID, 0).All()
			if err != nil {
				return fmt.Errorf("failed to list corpus models: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(models)
			case OutputFormatYAML:
				return StandardYAMLRenderer(models)
			default:
				if len(models) == 0 {
					_, _ = os.Stdout.WriteString("No models found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Base model", "Dim", "Version")

				for _, model := range models {
					_ = table.Append(model.ID, orNotAvailable(model.BaseModel),
						strconv.Itoa(model.EmbeddingDim), strconv.Itoa(model.Version))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}
