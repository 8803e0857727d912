// Package downloader mirrors the backend's media folders to local disk
// through a bounded worker pool.
package downloader

import (
	"fmt"
	"path"

	"mediawall/pkg/catalog"
	"mediawall/pkg/config"
	"mediawall/pkg/logger"
	"mediawall/pkg/models"
	"mediawall/pkg/ratelimit"
	"mediawall/pkg/storage"
	"mediawall/pkg/ui"
)

// Summary is the outcome of one mirror run.
type Summary struct {
	Total      int
	Downloaded int
	Skipped    int
	Failed     int
}

// Service wires the catalog client, the storage manager and the worker
// pool into the download command.
type Service struct {
	client *catalog.Client
	cfg    *config.Config
	log    logger.Logger
}

// NewService creates a mirror service.
func NewService(client *catalog.Client, cfg *config.Config, log logger.Logger) *Service {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Service{client: client, cfg: cfg, log: log}
}

// Run fetches the library, enqueues every eligible item and drains the
// results, printing a console progress line along the way.
func (s *Service) Run(tagFilter string) (*Summary, error) {
	lib, err := s.client.FetchLibrary(false)
	if err != nil {
		return nil, fmt.Errorf("fetching library: %w", err)
	}

	items := lib.Items
	if tagFilter != "" {
		items = models.FilterByTag(items, tagFilter)
	}
	items = s.filterKinds(items)

	if len(items) == 0 {
		return &Summary{}, nil
	}

	store, err := storage.NewManager(s.cfg.Download.OutputDirectory)
	if err != nil {
		return nil, fmt.Errorf("preparing output directory: %w", err)
	}

	var mediaStore MediaStore = store
	if s.cfg.Download.OverwriteExisting {
		mediaStore = overwriteStore{store}
	}

	limiter := ratelimit.PerMinute(s.cfg.Download.RequestsPerMinute)
	pool := NewWorkerPool(s.cfg.Download.ConcurrentDownloads, s.client, mediaStore, limiter, s.log)
	pool.Start()

	go func() {
		for _, item := range items {
			job := DownloadJob{
				Filename: path.Base(item.SourcePath),
				URL:      item.SourcePath,
				Kind:     item.Kind,
			}
			if err := pool.Submit(job); err != nil {
				return
			}
		}
		pool.Stop()
	}()

	tracker := ui.NewMirrorTracker(len(items))
	summary := &Summary{Total: len(items)}

	for result := range pool.Results() {
		switch {
		case result.Skipped:
			summary.Skipped++
			tracker.SkippedExisting()
		case result.Success:
			summary.Downloaded++
			tracker.Downloaded()
		default:
			summary.Failed++
			tracker.DownloadFailed()
			s.log.WithError(result.Error).WithField("filename", result.Job.Filename).
				Error("mirror failed for file")
		}
		tracker.PrintProgress()
	}
	tracker.PrintSummary()

	return summary, nil
}

// overwriteStore hides existing files from the pool so they are
// fetched again.
type overwriteStore struct {
	*storage.Manager
}

func (overwriteStore) IsDownloaded(string) bool { return false }

func (s *Service) filterKinds(items []models.MediaItem) []models.MediaItem {
	d := s.cfg.Download
	if !d.SkipVideos && !d.SkipImages {
		return items
	}
	out := items[:0:0]
	for _, item := range items {
		if d.SkipVideos && item.Kind == models.KindVideo {
			continue
		}
		if d.SkipImages && item.Kind == models.KindImage {
			continue
		}
		out = append(out, item)
	}
	return out
}
