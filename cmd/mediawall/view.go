package main

import (
	"os"

	"github.com/spf13/cobra"

	"mediawall/pkg/catalog"
	"mediawall/pkg/config"
	"mediawall/pkg/logger"
	"mediawall/pkg/ui"
	"mediawall/pkg/ui/tui"
)

var (
	// View command flags
	viewColumnWidth float64
	viewAutoplay    bool
	viewAutoScroll  bool
	viewShuffle     bool
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Render the media wall in the terminal",
	Long: `Open the backend's catalog as a scrolling masonry wall.

Items load as they approach the viewport and unload once they have been
out of view for a moment. Videos autoplay while visible and pause when
scrolled away. After five seconds without input the wall scrolls by
itself until the next interaction.`,
	Example: `  # View the wall with default settings
  mediawall view

  # Point at a different backend and shuffle the order
  mediawall view --catalog-url http://nas.local:8000 --shuffle

  # Wider columns, no autoplay
  mediawall view --column-width 32 --autoplay=false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().Float64Var(&viewColumnWidth, "column-width", 0, "column width in terminal cells")
	viewCmd.Flags().BoolVar(&viewAutoplay, "autoplay", true, "autoplay items visible in the viewport")
	viewCmd.Flags().BoolVar(&viewAutoScroll, "auto-scroll", false, "scroll automatically after idle")
	viewCmd.Flags().BoolVar(&viewShuffle, "shuffle", false, "shuffle the wall on startup")
}

func runView(cmd *cobra.Command) error {
	ui.Quiet = true // nothing may leak onto the alternate screen

	flags := globalFlags()
	if viewColumnWidth > 0 {
		flags["column-width"] = viewColumnWidth
	}
	if cmd.Flags().Changed("autoplay") {
		flags["autoplay"] = viewAutoplay
	}
	if cmd.Flags().Changed("auto-scroll") {
		flags["auto-scroll"] = viewAutoScroll
	}
	if cmd.Flags().Changed("shuffle") {
		flags["shuffle"] = viewShuffle
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	logger.Initialize(&cfg.Logging)
	log := logger.GetLogger()
	log.WithField("catalog", cfg.Catalog.BaseURL).Info("starting wall viewer")

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, cfg.Catalog.MaxRetries, log)

	t := tui.NewTUI(cfg, client, log)
	if err := t.Start(); err != nil {
		log.WithError(err).Error("wall viewer exited with error")
		return err
	}
	return nil
}
