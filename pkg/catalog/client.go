package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mediawall/pkg/errors"
	"mediawall/pkg/logger"
	"mediawall/pkg/metadata"
	"mediawall/pkg/models"
	"mediawall/pkg/retry"
)

// Client talks to the metadata backend that indexes the media folders.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     logger.Logger
}

// NewClient creates a new catalog client.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		maxRetries: maxRetries,
		logger:     log,
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs one GET against the backend and decodes the JSON body into
// out, mapping failures onto the shared error taxonomy.
func (c *Client) get(url string, out interface{}) error {
	start := time.Now()

	resp, err := c.httpClient.Get(url)
	duration := time.Since(start)
	if err != nil {
		c.logger.ErrorWithFields("catalog request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return errors.New(errors.ErrorTypeNetwork, fmt.Sprintf("network error: %v", err), 0)
	}
	defer resp.Body.Close()

	logger.LogRequest(http.MethodGet, url, resp.StatusCode, float64(duration.Milliseconds()))

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrorTypeNotFound, "catalog endpoint not found", resp.StatusCode)
	case resp.StatusCode >= 500:
		return errors.New(errors.ErrorTypeServerError, "catalog backend error", resp.StatusCode)
	default:
		return errors.New(errors.ErrorTypeUnknown, fmt.Sprintf("unexpected status %d", resp.StatusCode), resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.New(errors.ErrorTypeNetwork, fmt.Sprintf("failed to read response: %v", err), 0)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.New(errors.ErrorTypeParsing, fmt.Sprintf("failed to decode listing: %v", err), resp.StatusCode)
	}

	return nil
}

// getWithRetry wraps get in the shared retry policy.
func (c *Client) getWithRetry(url string, out interface{}) error {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = c.maxRetries
	cfg.Logger = c.logger
	return retry.Do(func() error {
		return c.get(url, out)
	}, cfg)
}

// FetchVideos retrieves the video listing.
func (c *Client) FetchVideos(refresh bool) (*VideoList, error) {
	var list VideoList
	if err := c.getWithRetry(listingURL(c.baseURL, VideosEndpoint, refresh), &list); err != nil {
		return nil, err
	}
	if list.Folder == "" {
		list.Folder = VideosFolder
	}
	return &list, nil
}

// FetchImages retrieves the image listing.
func (c *Client) FetchImages(refresh bool) (*ImageList, error) {
	var list ImageList
	if err := c.getWithRetry(listingURL(c.baseURL, ImagesEndpoint, refresh), &list); err != nil {
		return nil, err
	}
	if list.Folder == "" {
		list.Folder = ImagesFolder
	}
	return &list, nil
}

// FetchMusic retrieves the background-music track listing.
func (c *Client) FetchMusic() (*MusicList, error) {
	var list MusicList
	if err := c.getWithRetry(listingURL(c.baseURL, MusicEndpoint, false), &list); err != nil {
		return nil, err
	}
	if list.Folder == "" {
		list.Folder = MusicFolder
	}
	return &list, nil
}

// FetchLibrary retrieves videos, images and music and flattens them into
// grid items. Missing titles are derived from filenames. A failure of the
// music listing is not fatal; the wall works without background tracks.
func (c *Client) FetchLibrary(refresh bool) (*Library, error) {
	videos, err := c.FetchVideos(refresh)
	if err != nil {
		return nil, fmt.Errorf("fetching videos: %w", err)
	}

	images, err := c.FetchImages(refresh)
	if err != nil {
		return nil, fmt.Errorf("fetching images: %w", err)
	}

	// Source paths must be absolute URLs: the viewer's prober and the
	// downloader both hand them straight to an http.Client.
	items := make([]models.MediaItem, 0, len(videos.Videos)+len(images.Images))
	for _, d := range videos.Videos {
		if d.Title == "" {
			d.Title = metadata.DisplayTitle(d.Filename)
		}
		items = append(items, models.NewMediaItem(d, MediaURL(c.baseURL, videos.Folder, "")))
	}
	for _, d := range images.Images {
		if d.Title == "" {
			d.Title = metadata.DisplayTitle(d.Filename)
		}
		items = append(items, models.NewMediaItem(d, MediaURL(c.baseURL, images.Folder, "")))
	}

	lib := &Library{Items: items}

	music, err := c.FetchMusic()
	if err != nil {
		c.logger.WithError(err).Warn("music listing unavailable, continuing without tracks")
	} else {
		lib.Tracks = music.Tracks
	}

	c.logger.InfoWithFields("catalog loaded", map[string]interface{}{
		"videos": len(videos.Videos),
		"images": len(images.Images),
		"tracks": len(lib.Tracks),
	})

	return lib, nil
}

// DownloadMedia fetches one media file's bytes from the backend.
func (c *Client) DownloadMedia(url string) ([]byte, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeNetwork, fmt.Sprintf("network error: %v", err), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.New(errors.ErrorTypeNotFound, "media file not found", resp.StatusCode)
		}
		return nil, errors.New(errors.ErrorTypeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
