package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediawall/internal/downloader"
	"mediawall/pkg/catalog"
	"mediawall/pkg/config"
	"mediawall/pkg/logger"
	"mediawall/pkg/ui"
)

var (
	// Download command flags
	downloadOutput     string
	downloadConcurrent int
	downloadTag        string
	downloadOverwrite  bool
	downloadSkipVideos bool
	downloadSkipImages bool
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Mirror the backend's media catalog to local disk",
	Long: `Download every file in the backend's catalog to a local directory.

Files already present in the output directory are skipped, so an
interrupted run can simply be started again.`,
	Example: `  # Mirror everything to the default directory
  mediawall download

  # Mirror one tag to a specific directory with more workers
  mediawall download --tag sunsets --output ./wall --concurrent 5

  # Images only, refreshing files that already exist
  mediawall download --skip-videos --overwrite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runDownload(cmd)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output directory for the mirror")
	downloadCmd.Flags().IntVar(&downloadConcurrent, "concurrent", 0, "number of concurrent downloads")
	downloadCmd.Flags().StringVarP(&downloadTag, "tag", "t", "", "mirror only items carrying this tag")
	downloadCmd.Flags().BoolVar(&downloadOverwrite, "overwrite", false, "re-download files that already exist")
	downloadCmd.Flags().BoolVar(&downloadSkipVideos, "skip-videos", false, "skip video files")
	downloadCmd.Flags().BoolVar(&downloadSkipImages, "skip-images", false, "skip image files")
}

func runDownload(cmd *cobra.Command) {
	flags := globalFlags()
	if downloadOutput != "" {
		flags["output"] = downloadOutput
	}
	if downloadConcurrent > 0 {
		flags["concurrent"] = downloadConcurrent
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}
	cfg.Download.OverwriteExisting = downloadOverwrite
	cfg.Download.SkipVideos = downloadSkipVideos
	cfg.Download.SkipImages = downloadSkipImages

	logger.Initialize(&cfg.Logging)
	log := logger.GetLogger()

	ui.PrintInfo("Catalog", cfg.Catalog.BaseURL)
	ui.PrintInfo("Output", cfg.Download.OutputDirectory)
	if downloadTag != "" {
		ui.PrintInfo("Tag", downloadTag)
	}

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Download.DownloadTimeout, cfg.Catalog.MaxRetries, log)
	service := downloader.NewService(client, cfg, log)

	summary, err := service.Run(downloadTag)
	if err != nil {
		log.WithError(err).Error("mirror run failed")
		ui.PrintError("MIRROR FAILED", err.Error())
		os.Exit(1)
	}

	if summary.Failed > 0 {
		ui.PrintWarning(fmt.Sprintf("%d of %d files failed", summary.Failed, summary.Total))
		os.Exit(1)
	}
	ui.PrintSuccess("[MIRROR COMPLETED SUCCESSFULLY]")
}
