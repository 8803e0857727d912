package catalog

import "mediawall/pkg/models"

// VideoList is the payload of the backend's video listing endpoint.
type VideoList struct {
	Folder      string              `json:"folder"`
	Generated   string              `json:"generated"`
	ScanPath    string              `json:"scan_path"`
	TotalSize   int64               `json:"total_size"`
	TotalVideos int                 `json:"total_videos"`
	Videos      []models.Descriptor `json:"videos"`
}

// ImageList is the payload of the backend's image listing endpoint.
type ImageList struct {
	Folder      string              `json:"folder"`
	Generated   string              `json:"generated"`
	ScanPath    string              `json:"scan_path"`
	TotalSize   int64               `json:"total_size"`
	TotalImages int                 `json:"total_images"`
	Images      []models.Descriptor `json:"images"`
}

// Track is one background-music entry.
type Track struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Title    string `json:"title"`
}

// MusicList is the payload of the backend's music listing endpoint.
type MusicList struct {
	Folder    string  `json:"folder"`
	Generated string  `json:"generated"`
	Tracks    []Track `json:"tracks"`
}

// Library is the combined catalog used to seed the wall: grid items plus
// background tracks.
type Library struct {
	Items  []models.MediaItem
	Tracks []Track
}
