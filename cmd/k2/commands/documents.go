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

// NewDocumentsCommand creates the documents command group.
func NewDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs", "doc"},
		Short:   "Manage documents",
		Long:    "Upload, list, inspect, and delete documents within a corpus",
	}

	cmd.AddCommand(newDocumentsListCommand())
	cmd.AddCommand(newDocumentsGetCommand())
	cmd.AddCommand(newDocumentsUploadCommand())
	cmd.AddCommand(newDocumentsDeleteCommand())

	return cmd
}

func newDocumentsListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list CORPUS_NAME_OR_ID",
		Short: "List documents in a corpus",
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

			var documents []k2.Document

			if all {
				documents, err = client.Documents().Iterate(ctx, corpusID, 0).All()
				if err != nil {
					return fmt.Errorf("failed to list documents: %w", err)
				}
			} else {
				list, err := client.Documents().List(ctx, corpusID, k2.NewListParams())
				if err != nil {
					return fmt.Errorf("failed to list documents: %w", err)
				}

				documents = list.Documents
			}

			return outputDocuments(documents)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")

	return cmd
}

func outputDocuments(documents []k2.Document) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(documents)
	case OutputFormatYAML:
		return StandardYAMLRenderer(documents)
	default:
		if len(documents) == 0 {
			_, _ = os.Stdout.WriteString("No documents found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Source", "Status", "Created")

		for _, document := range documents {
			_ = table.Append(document.ID, orNotAvailable(document.SourceURI),
				orNotAvailable(document.Status), orNotAvailable(document.CreatedAt))
		}

		_ = table.Render()

		return nil
	}
}

func newDocumentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOC_ID",
		Short: "Get document details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			document, err := client.Documents().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get document: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(document)
			case OutputFormatYAML:
				return StandardYAMLRenderer(document)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("ID", document.ID)
				_ = table.Append("Corpus", document.CorpusID)
				_ = table.Append("Source", orNotAvailable(document.SourceURI))
				_ = table.Append("Status", orNotAvailable(document.Status))
				_ = table.Append("Created", orNotAvailable(document.CreatedAt))

				_ = table.Render()

				return nil
			}
		},
	}
}

func newDocumentsUploadCommand() *cobra.Command {
	var (
		filePath  string
		sourceURI string
		wait      bool
	)

	cmd := &cobra.Command{
		Use:   "upload CORPUS_NAME_OR_ID",
		Short: "Upload a text document",
		Long:  "Upload a text file into a corpus; ingestion runs as a job",
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

			content, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading document file: %w", err)
			}

			uri := sourceURI
			if uri == "" {
				uri = "file://" + filePath
			}

			result, err := client.Documents().Upload(ctx, corpusID, &k2.DocumentCreateRequest{
				SourceURI: uri,
				RawText:   string(content),
			})
			if err != nil {
				return fmt.Errorf("failed to upload document: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Accepted document %s (ingestion job %s)\n", result.DocID, result.JobID)

			if wait {
				_, _ = os.Stdout.WriteString("Waiting for ingestion to complete...\n")

				job, err := client.Jobs().PollUntilComplete(ctx, result.JobID)
				if err != nil {
					return fmt.Errorf("ingestion failed: %w", err)
				}

				_, _ = fmt.Fprintf(os.Stdout, "Ingestion %s\n", job.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "path to the text file to upload")
	cmd.Flags().StringVar(&sourceURI, "source-uri", "", "source URI to record (defaults to the file path)")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the ingestion job to finish")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newDocumentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DOC_ID",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Documents().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete document: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s\n", result.Message)

			return nil
		},
	}
}
