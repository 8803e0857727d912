package downloader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"mediawall/pkg/logger"
	"mediawall/pkg/models"
	"mediawall/pkg/ratelimit"
)

// DownloadJob represents a single file to mirror
type DownloadJob struct {
	Filename string
	URL      string
	Kind     models.Kind
}

// DownloadResult represents the outcome of a download job
type DownloadResult struct {
	Job      DownloadJob
	Success  bool
	Skipped  bool
	Error    error
	Duration time.Duration
	Size     int
}

// MediaFetcher fetches one media file from the backend
type MediaFetcher interface {
	DownloadMedia(url string) ([]byte, error)
}

// MediaStore persists fetched files
type MediaStore interface {
	IsDownloaded(filename string) bool
	SaveMedia(r io.Reader, filename string) error
}

// WorkerPool manages concurrent download workers
type WorkerPool struct {
	numWorkers  int
	jobQueue    chan DownloadJob
	resultQueue chan DownloadResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	fetcher     MediaFetcher
	store       MediaStore
	rateLimiter ratelimit.Limiter
	logger      logger.Logger
}

// NewWorkerPool creates a download worker pool
func NewWorkerPool(
	numWorkers int,
	fetcher MediaFetcher,
	store MediaStore,
	rateLimiter ratelimit.Limiter,
	log logger.Logger,
) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	if log == nil {
		log = logger.GetLogger()
	}

	return &WorkerPool{
		numWorkers:  numWorkers,
		jobQueue:    make(chan DownloadJob, numWorkers*2),
		resultQueue: make(chan DownloadResult, numWorkers),
		ctx:         ctx,
		cancel:      cancel,
		fetcher:     fetcher,
		store:       store,
		rateLimiter: rateLimiter,
		logger:      log,
	}
}

// Start launches all workers
func (wp *WorkerPool) Start() {
	wp.logger.InfoWithFields("Starting worker pool", map[string]interface{}{
		"num_workers": wp.numWorkers,
	})

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop closes the queue, drains remaining jobs and shuts the pool down
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()

	wp.logger.Info("Worker pool stopped")
}

// Submit adds a new download job to the queue
func (wp *WorkerPool) Submit(job DownloadJob) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool is shutting down")
	}
}

// Results returns the channel download outcomes arrive on
func (wp *WorkerPool) Results() <-chan DownloadResult {
	return wp.resultQueue
}

// worker is the main worker routine
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobQueue {
		select {
		case <-wp.ctx.Done():
			return
		default:
		}

		result := wp.processJob(job, id)

		select {
		case wp.resultQueue <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob mirrors a single file
func (wp *WorkerPool) processJob(job DownloadJob, workerID int) DownloadResult {
	start := time.Now()
	result := DownloadResult{Job: job}

	// Files already on disk are skipped, which is also how an
	// interrupted run resumes.
	if wp.store.IsDownloaded(job.Filename) {
		result.Success = true
		result.Skipped = true
		result.Duration = time.Since(start)
		return result
	}

	if !wp.rateLimiter.Allow() {
		wp.logger.DebugWithFields("Worker waiting for rate limit", map[string]interface{}{
			"worker_id": workerID,
			"filename":  job.Filename,
		})
		wp.rateLimiter.Wait()
	}

	data, err := wp.fetcher.DownloadMedia(job.URL)
	if err != nil {
		result.Error = fmt.Errorf("download failed: %w", err)
		result.Duration = time.Since(start)

		wp.logger.ErrorWithFields("Worker failed to download media", map[string]interface{}{
			"worker_id": workerID,
			"filename":  job.Filename,
			"error":     err.Error(),
		})
		return result
	}

	result.Size = len(data)

	if err := wp.store.SaveMedia(bytes.NewReader(data), job.Filename); err != nil {
		result.Error = fmt.Errorf("save failed: %w", err)
		result.Duration = time.Since(start)

		wp.logger.ErrorWithFields("Worker failed to save media", map[string]interface{}{
			"worker_id": workerID,
			"filename":  job.Filename,
			"error":     err.Error(),
		})
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)

	logger.LogDownload(job.Filename, string(job.Kind), true, nil)
	return result
}

// GetQueueSize returns the current number of queued jobs
func (wp *WorkerPool) GetQueueSize() int {
	return len(wp.jobQueue)
}
