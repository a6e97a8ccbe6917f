package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// versionInfo is the build metadata stamped at link time.
type versionInfo struct {
	Version   string `json:"version"    yaml:"version"`
	Commit    string `json:"commit"     yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform"   yaml:"platform"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   version,
				Commit:    commit,
				BuildDate: date,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(info)
			case OutputFormatYAML:
				return StandardYAMLRenderer(info)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "k2 %s (commit %s, built %s, %s %s)\n",
					info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)

				return nil
			}
		},
	}
}
