package cli

import (
	"github.com/spf13/cobra"
)

// Stamped at build time, e.g.
//
//	go build -ldflags "-X github.com/grans-labs/grans-cli/internal/adapters/driving/cli.buildSHA=$(git rev-parse --short HEAD) \
//	                   -X github.com/grans-labs/grans-cli/internal/adapters/driving/cli.buildDate=$(date -u +%Y-%m-%d)"
var (
	buildSHA  = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version banner",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("grans version %s\n", versionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString builds the banner; an unstamped build reports "dev".
func versionString() string {
	switch {
	case buildSHA != "" && buildDate != "":
		return buildSHA + " (built " + buildDate + ")"
	case buildSHA != "":
		return buildSHA
	case buildDate != "":
		return "dev (built " + buildDate + ")"
	default:
		return "dev"
	}
}
