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

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Manage asynchronous jobs",
		Long:    "List, inspect, watch, cancel, and retry server-side jobs",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsGetCommand())
	cmd.AddCommand(newJobsWatchCommand())
	cmd.AddCommand(newJobsCancelCommand())
	cmd.AddCommand(newJobsRetryCommand())

	return cmd
}

func newJobsListCommand() *cobra.Command {
	var (
		corpus  string
		jobType string
		status  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			params := k2.NewListParams()

			if corpus != "" {
				corpusID, err := resolveCorpusID(ctx, client, corpus)
				if err != nil {
					return err
				}

				params.WithFilter("corpus_id", corpusID)
			}

			if jobType != "" {
				params.WithFilter("job_type", jobType)
			}

			if status != "" {
				params.WithFilter("status", status)
			}

			jobs, err := client.Jobs().List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			return outputJobs(jobs.Jobs)
		},
	}

	cmd.Flags().StringVar(&corpus, "corpus", "", "filter by corpus name or ID")
	cmd.Flags().StringVar(&jobType, "type", "", "filter by job type")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")

	return cmd
}

func outputJobs(jobs []k2.Job) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(jobs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(jobs)
	default:
		if len(jobs) == 0 {
			_, _ = os.Stdout.WriteString("No jobs found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Type", "Status", "Created")

		for _, job := range jobs {
			_ = table.Append(job.ID, job.JobType, job.Status, orNotAvailable(job.CreatedAt))
		}

		_ = table.Render()

		return nil
	}
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get JOB_ID",
		Short: "Get job details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			job, err := client.Jobs().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			return outputJobDetails(job)
		},
	}
}

func outputJobDetails(job *k2.Job) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(job)
	case OutputFormatYAML:
		return StandardYAMLRenderer(job)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		_ = table.Append("ID", job.ID)
		_ = table.Append("Type", job.JobType)
		_ = table.Append("Status", job.Status)
		_ = table.Append("Created", orNotAvailable(job.CreatedAt))
		_ = table.Append("Updated", orNotAvailable(job.UpdatedAt))

		if job.ErrorMessage != "" {
			_ = table.Append("Error", job.ErrorMessage)
		}

		_ = table.Render()

		return nil
	}
}

func newJobsWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch JOB_ID",
		Short: "Wait for a job to complete",
		Long:  "Poll a job until it reaches a terminal state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			_, _ = fmt.Fprintf(os.Stdout, "Watching job %s...\n", args[0])

			job, err := client.Jobs().PollUntilComplete(ctx, args[0])
			if err != nil {
				return err
			}

			return outputJobDetails(job)
		},
	}
}

func newJobsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel JOB_ID",
		Short: "Cancel a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Jobs().Cancel(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to cancel job: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Job %s: %s\n", args[0], result.Status)

			return nil
		},
	}
}

func newJobsRetryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "retry JOB_ID",
		Short: "Retry a failed job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Jobs().Retry(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to retry job: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Job %s: %s\n", args[0], result.Status)

			return nil
		},
	}
}
