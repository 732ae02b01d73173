package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	appVersion string
	buildTime  string
)

// SetVersion records the build metadata and wires Cobra's --version flag.
// The same version string is sent to the backend as X-App-Version.
func SetVersion(v, bt string) {
	appVersion = v
	buildTime = bt
	rootCmd.Version = v
}

func clientVersion() string {
	if appVersion == "" {
		return "dev"
	}
	return appVersion
}

// versionCmd prints the client version and build details.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jrss-console %s\n", clientVersion())
		fmt.Printf("  go:    %s\n", runtime.Version())
		if buildTime != "" {
			fmt.Printf("  built: %s\n", buildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
