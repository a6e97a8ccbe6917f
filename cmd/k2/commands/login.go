package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2client"
)

// cliConfig is the shape of ~/.k2/config.yml.
type cliConfig struct {
	API    string `yaml:"api,omitempty"`
	APIKey string `yaml:"api-key,omitempty"`
	Org    string `yaml:"org,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// configPath returns the CLI config file path.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".k2", "config.yml"), nil
}

// loadCLIConfig reads the saved config, returning an empty config when none
// exists.
func loadCLIConfig() (*cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cliConfig{}, nil
		}

		return nil, fmt.Errorf("reading config: %w", err)
	}

	var config cliConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &config, nil
}

// saveCLIConfig writes the config with key-file permissions; it holds an API
// key.
func saveCLIConfig(config *cliConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiHost string
		apiKey  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to Knowledge2",
		Long:  "Validate an API key against the Knowledge2 API and save it for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiHost == "" {
				apiHost = viper.GetString("api")
			}

			if apiHost == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Printf("API host [%s]: ", k2.DefaultAPIHost)

				input, _ := reader.ReadString('\n')

				apiHost = strings.TrimSpace(input)
				if apiHost == "" {
					apiHost = k2.DefaultAPIHost
				}
			}

			if apiKey == "" {
				fmt.Print("API key: ")

				byteKey, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}

				apiKey = strings.TrimSpace(string(byteKey))

				fmt.Println()
			}

			if apiKey == "" {
				return ErrAPIKeyRequired
			}

			// Validate the key and discover the org before saving anything.
			ctx := context.Background()

			client, err := k2client.New(ctx, &k2.Config{APIHost: apiHost, APIKey: apiKey})
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer client.Close()

			identity, err := client.Auth().WhoAmI(ctx)
			if err != nil {
				return fmt.Errorf("failed to validate API key: %w", err)
			}

			config, err := loadCLIConfig()
			if err != nil {
				return err
			}

			config.API = apiHost
			config.APIKey = apiKey
			config.Org = identity.OrgID

			if err := saveCLIConfig(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in as '%s' (org %s)\n", identity.Name, identity.OrgID)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiHost, "api", "", "API host URL")
	cmd.Flags().StringVar(&apiKey, "key", "", "API key (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of Knowledge2",
		Long:  "Remove the saved API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadCLIConfig()
			if err != nil {
				return err
			}

			if config.APIKey == "" {
				return ErrNotLoggedIn
			}

			config.APIKey = ""
			config.Org = ""

			if err := saveCLIConfig(config); err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("Logged out\n")

			return nil
		},
	}
}
