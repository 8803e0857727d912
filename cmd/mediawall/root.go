package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"mediawall/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	catalogURL string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediawall",
	Short: "A terminal viewer and mirroring tool for a self-hosted media wall",
	Long: `Media Wall is a command-line companion for a self-hosted media server.

It renders the server's video and image catalog as an endlessly scrolling
masonry wall in the terminal, with lazy loading, visibility-driven playback
and idle auto-scroll, and can mirror the catalog to local disk.

Features:
  - Masonry grid layout balanced across columns
  - Lazy media loading driven by scroll position
  - Autoplay for items visible in the viewport
  - Idle auto-scroll that yields to user input
  - Tag filtering and shuffle
  - Concurrent catalog mirroring with rate limiting`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet || logLevel == "error" {
			ui.Quiet = true
		}

		// The view command owns the whole screen; no logo there.
		switch cmd.Name() {
		case "view", "version", "help", "completion":
		default:
			ui.PrintLogo()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.mediawall.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&catalogURL, "catalog-url", "", "media backend address (default http://localhost:8000)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.SetVersionTemplate(`Media Wall {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// globalFlags collects the persistent flags into the config merge map.
func globalFlags() map[string]interface{} {
	flags := make(map[string]interface{})
	if catalogURL != "" {
		flags["catalog-url"] = catalogURL
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}
	return flags
}
