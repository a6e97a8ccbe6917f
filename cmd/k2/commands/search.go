package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	var (
		topK     int
		hybrid   bool
		rerank   bool
		generate bool
	)

	cmd := &cobra.Command{
		Use:   "search CORPUS_NAME_OR_ID QUERY",
		Short: "Search a corpus",
		Long:  "Run a retrieval query against a corpus, optionally generating an answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[1] == "" {
				return ErrQueryRequired
			}

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

			request := &k2.SearchRequest{
				Query: args[1],
				TopK:  topK,
			}

			if hybrid {
				enabled := true
				request.Hybrid = &k2.SearchHybridConfig{Enabled: &enabled}
			}

			if rerank {
				enabled := true
				request.Rerank = &k2.SearchRerankConfig{Enabled: &enabled}
			}

			if generate {
				response, err := client.Search().SearchGenerate(ctx, corpusID, request)
				if err != nil {
					return fmt.Errorf("failed to generate answer: %w", err)
				}

				return outputGeneratedAnswer(response)
			}

			response, err := client.Search().Search(ctx, corpusID, request)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			return outputSearchResults(response.Results)
		},
	}

	cmd.Flags().IntVar(&topK, "top-k", 10, "number of results")
	cmd.Flags().BoolVar(&hybrid, "hybrid", false, "enable hybrid dense/sparse retrieval")
	cmd.Flags().BoolVar(&rerank, "rerank", false, "rerank results")
	cmd.Flags().BoolVar(&generate, "generate", false, "generate an answer from the results")

	return cmd
}

func outputSearchResults(results []k2.SearchResult) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(results)
	case OutputFormatYAML:
		return StandardYAMLRenderer(results)
	default:
		if len(results) == 0 {
			_, _ = os.Stdout.WriteString("No results\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Rank", "Chunk", "Score", "Text")

		for i, result := range results {
			score := NotAvailable
			if result.Score != nil {
				score = strconv.FormatFloat(*result.Score, 'f', 4, 64)
			}

			_ = table.Append(strconv.Itoa(i+1), result.ChunkID, score, truncate(result.Text, 80))
		}

		_ = table.Render()

		return nil
	}
}

func outputGeneratedAnswer(response *k2.SearchGenerateResponse) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(response)
	case OutputFormatYAML:
		return StandardYAMLRenderer(response)
	default:
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", response.Answer)

		if len(response.UsedSources) > 0 {
			_, _ = os.Stdout.WriteString("\nSources:\n")

			for _, source := range response.UsedSources {
				_, _ = fmt.Fprintf(os.Stdout, "  - %s\n", source)
			}
		}

		return nil
	}
}

// truncate shortens s for table display.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return s[:limit-3] + "..."
}
