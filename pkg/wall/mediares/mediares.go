// Package mediares backs the lifecycle controllers with real media
// resources. The terminal cannot decode video, so a resource here is a
// lightweight HTTP probe: it verifies the source exists and is a
// supported media type, and reports intrinsic dimensions when the
// backend provided them up front. Completions arrive asynchronously on
// a shared results channel that the grid drains on its tick.
package mediares

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"mediawall/pkg/errors"
	"mediawall/pkg/logger"
	"mediawall/pkg/models"
	"mediawall/pkg/wall/lifecycle"
)

// Result is one finished load attempt.
type Result struct {
	ItemID string
	Source string
	Media  lifecycle.Media
	Err    *errors.Error
}

// Prober creates per-item resources that share one HTTP client and one
// results channel.
type Prober struct {
	client  *http.Client
	results chan Result
	log     logger.Logger
}

// NewProber builds a prober. The buffer bounds how many completions may
// be outstanding before probe goroutines block.
func NewProber(timeout time.Duration, buffer int, log logger.Logger) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if buffer <= 0 {
		buffer = 64
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Prober{
		client:  &http.Client{Timeout: timeout},
		results: make(chan Result, buffer),
		log:     log,
	}
}

// Results is the channel completions arrive on.
func (p *Prober) Results() <-chan Result {
	return p.results
}

// ForItem returns a lifecycle.Resource bound to one item. Known
// dimensions from the catalog descriptor pass through so the grid can
// correct estimated slot heights without decoding anything.
func (p *Prober) ForItem(itemID string, known lifecycle.Media) lifecycle.Resource {
	return &resource{prober: p, itemID: itemID, known: known}
}

type resource struct {
	prober *Prober
	itemID string
	known  lifecycle.Media
	cancel context.CancelFunc
	state  playbackState
}

type playbackState struct {
	playing bool
}

func (r *resource) Load(source string) {
	ext := strings.ToLower(filepath.Ext(source))
	if !models.IsMediaExtension(ext) {
		r.prober.results <- Result{
			ItemID: r.itemID,
			Source: source,
			Err:    errors.UnsupportedSource(source),
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.probe(ctx, source)
}

func (r *resource) probe(ctx context.Context, source string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, source, nil)
	if err != nil {
		r.prober.results <- Result{
			ItemID: r.itemID,
			Source: source,
			Err:    errors.UnsupportedSource(source),
		}
		return
	}

	resp, err := r.prober.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Released before the probe finished; nobody is waiting.
			return
		}
		r.prober.results <- Result{
			ItemID: r.itemID,
			Source: source,
			Err:    errors.Decode(err.Error(), 0),
		}
		return
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.prober.results <- Result{
			ItemID: r.itemID,
			Source: source,
			Err:    errors.Decode(resp.Status, resp.StatusCode),
		}
		return
	}

	r.prober.results <- Result{
		ItemID: r.itemID,
		Source: source,
		Media:  r.known,
	}
}

func (r *resource) Release() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.state.playing = false
}

func (r *resource) Play()  { r.state.playing = true }
func (r *resource) Pause() { r.state.playing = false }

// Playing reports whether the resource was last told to play. The TUI
// reads this to animate playing cells.
func (r *resource) Playing() bool { return r.state.playing }
