package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
)

// Static errors for config subcommands.
var (
	ErrUnknownConfigKey = errors.New("unknown config key")
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the saved CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadCLIConfig()
			if err != nil {
				return err
			}

			display := *config
			if display.APIKey != "" {
				display.APIKey = constants.MaskedSecret
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(display)
			case OutputFormatYAML:
				return StandardYAMLRenderer(display)
			default:
				return renderConfigTable(&display)
			}
		},
	}
}

func renderConfigTable(config *cliConfig) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Value")

	_ = table.Append("api", orNotAvailable(config.API))
	_ = table.Append("api-key", orNotAvailable(config.APIKey))
	_ = table.Append("org", orNotAvailable(config.Org))
	_ = table.Append("output", orNotAvailable(config.Output))

	_ = table.Render()

	return nil
}

func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: api, api-key, org, output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigKey(args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigKey(args[0], "")
		},
	}
}

func updateConfigKey(key, value string) error {
	config, err := loadCLIConfig()
	if err != nil {
		return err
	}

	switch key {
	case "api":
		config.API = value
	case "api-key":
		config.APIKey = value
	case "org":
		config.Org = value
	case "output":
		config.Output = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	if err := saveCLIConfig(config); err != nil {
		return err
	}

	if value == "" {
		_, _ = fmt.Fprintf(os.Stdout, "Unset '%s'\n", key)
	} else {
		_, _ = fmt.Fprintf(os.Stdout, "Set '%s'\n", key)
	}

	return nil
}
