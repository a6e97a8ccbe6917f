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

// NewUsageCommand creates the usage command group.
func NewUsageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show API usage",
		Long:  "Report request volume and latency for the organisation",
	}

	cmd.AddCommand(newUsageSummaryCommand())
	cmd.AddCommand(newUsageByCorpusCommand())
	cmd.AddCommand(newUsageByKeyCommand())

	return cmd
}

func newUsageSummaryCommand() *cobra.Command {
	var (
		rangeValue string
		corpusID   string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a usage summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := client.Usage().GetSummary(ctx, rangeValue, corpusID)
			if err != nil {
				return fmt.Errorf("failed to get usage summary: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(summary)
			case OutputFormatYAML:
				return StandardYAMLRenderer(summary)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Range", summary.Range)
				_ = table.Append("Total requests", strconv.Itoa(summary.TotalRequests))

				if summary.LatencyP50Ms != nil {
					_ = table.Append("Latency p50 (ms)", strconv.FormatFloat(*summary.LatencyP50Ms, 'f', 1, 64))
				}

				if summary.LatencyP95Ms != nil {
					_ = table.Append("Latency p95 (ms)", strconv.FormatFloat(*summary.LatencyP95Ms, 'f', 1, 64))
				}

				if summary.ErrorRate != nil {
					_ = table.Append("Error rate", strconv.FormatFloat(*summary.ErrorRate, 'f', 4, 64))
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&rangeValue, "range", "7d", "time range (e.g. 24h, 7d, 30d)")
	cmd.Flags().StringVar(&corpusID, "corpus", "", "scope the summary to a single corpus")

	return cmd
}

func newUsageByCorpusCommand() *cobra.Command {
	var rangeValue string

	cmd := &cobra.Command{
		Use:   "by-corpus",
		Short: "Show usage broken down by corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			usage, err := client.Usage().GetByCorpus(ctx, rangeValue)
			if err != nil {
				return fmt.Errorf("failed to get usage by corpus: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(usage)
			case OutputFormatYAML:
				return StandardYAMLRenderer(usage)
			default:
				if len(usage.Corpora) == 0 {
					_, _ = os.Stdout.WriteString("No usage recorded\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Corpus", "ID", "Requests")

				for _, entry := range usage.Corpora {
					_ = table.Append(orNotAvailable(entry.CorpusName), entry.CorpusID, strconv.Itoa(entry.Count))
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&rangeValue, "range", "7d", "time range (e.g. 24h, 7d, 30d)")

	return cmd
}

func newUsageByKeyCommand() *cobra.Command {
	var rangeValue string

	cmd := &cobra.Command{
		Use:   "by-key",
		Short: "Show usage broken down by API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			usage, err := client.Usage().GetByKey(ctx, rangeValue)
			if err != nil {
				return fmt.Errorf("failed to get usage by key: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(usage)
			case OutputFormatYAML:
				return StandardYAMLRenderer(usage)
			default:
				if len(usage.Keys) == 0 {
					_, _ = os.Stdout.WriteString("No usage recorded\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "ID", "Requests")

				for _, entry := range usage.Keys {
					_ = table.Append(orNotAvailable(entry.KeyName), entry.APIKeyID, strconv.Itoa(entry.Count))
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&rangeValue, "range", "7d", "time range (e.g. 24h, 7d, 30d)")

	return cmd
}
