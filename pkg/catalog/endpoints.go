package catalog

import "strings"

// Backend API paths. Media files themselves are served from the listing's
// folder, resolved as folder + filename.
const (
	VideosEndpoint = "/api/videos"
	ImagesEndpoint = "/api/images"
	MusicEndpoint  = "/api/music"
	TagsEndpoint   = "/api/tags"

	VideosFolder = "/videos/"
	ImagesFolder = "/images/"
	MusicFolder  = "/music/"
)

// listingURL builds a listing endpoint URL, optionally forcing the backend
// to bypass its scan cache.
func listingURL(baseURL, endpoint string, refresh bool) string {
	url := strings.TrimRight(baseURL, "/") + endpoint
	if refresh {
		url += "?refresh=1"
	}
	return url
}

// MediaURL resolves the absolute URL of one media file.
func MediaURL(baseURL, folder, filename string) string {
	return strings.TrimRight(baseURL, "/") + folder + filename
}
