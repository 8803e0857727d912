package models

import (
	"encoding/json"
	"math/rand"
	"path"
	"strconv"
	"strings"
)

// Kind identifies the media variant of a grid entry.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Fallback aspect ratios used when a descriptor carries no resolvable
// dimension information.
const (
	DefaultVideoAspectRatio = 16.0 / 9.0
	DefaultImageAspectRatio = 4.0 / 3.0
)

// FlexInt is an integer that unmarshals from either a JSON number or a
// numeric string. The backend's nested metadata dimensions are emitted in
// both forms.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	// Some encoders emit dimensions as floats ("1920.0").
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(v)
	return nil
}

// Dimensions is the nested pixel-dimension block inside a descriptor's
// metadata.
type Dimensions struct {
	Width  FlexInt `json:"width"`
	Height FlexInt `json:"height"`
}

// Metadata is the free-form metadata block attached to a descriptor. Only
// the dimension fields participate in aspect-ratio resolution; everything
// else is carried opaquely.
type Metadata struct {
	Dimensions *Dimensions            `json:"dimensions,omitempty"`
	Extra      map[string]interface{} `json:"-"`
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	type alias Metadata
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = Metadata(a)
	// Keep unrecognized fields for display purposes.
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err == nil {
		delete(raw, "dimensions")
		if len(raw) > 0 {
			m.Extra = raw
		}
	}
	return nil
}

// Descriptor is one media entry as shaped by the metadata backend.
type Descriptor struct {
	Filename        string    `json:"filename"`
	Type            string    `json:"type,omitempty"`
	MediaType       string    `json:"mediaType,omitempty"`
	Title           string    `json:"title,omitempty"`
	Size            int64     `json:"size,omitempty"`
	Modified        string    `json:"modified,omitempty"`
	Width           int       `json:"width,omitempty"`
	Height          int       `json:"height,omitempty"`
	AspectRatio     float64   `json:"aspect_ratio,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	Metadata        *Metadata `json:"metadata,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
}

// ResolvedKind determines the media kind, preferring the explicit type
// fields and falling back to the filename extension.
func (d Descriptor) ResolvedKind() Kind {
	switch strings.ToLower(d.MediaType) {
	case "video":
		return KindVideo
	case "image":
		return KindImage
	}
	switch strings.ToLower(d.Type) {
	case "video":
		return KindVideo
	case "image":
		return KindImage
	}
	return KindForExtension(path.Ext(d.Filename))
}

// videoExtensions and imageExtensions mirror the backend's scan filters.
var videoExtensions = map[string]bool{
	".mp4": true, ".webm": true, ".avi": true, ".mov": true, ".mkv": true,
	".flv": true, ".wmv": true, ".m4v": true, ".3gp": true,
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".avif": true,
}

// KindForExtension maps a file extension to a media kind. Unknown
// extensions are treated as video so they still get a working fallback
// ratio.
func KindForExtension(ext string) Kind {
	ext = strings.ToLower(ext)
	if imageExtensions[ext] {
		return KindImage
	}
	return KindVideo
}

// IsMediaExtension reports whether the extension names a supported video or
// image format.
func IsMediaExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return videoExtensions[ext] || imageExtensions[ext]
}

// ResolveAspectRatio resolves a descriptor's width/height ratio with fixed
// precedence: explicit pixel dimensions in metadata, then top-level
// width/height, then the normalized aspect_ratio field, then the per-kind
// fallback. It never fails.
func ResolveAspectRatio(d Descriptor, kind Kind) float64 {
	if d.Metadata != nil && d.Metadata.Dimensions != nil {
		w, h := int(d.Metadata.Dimensions.Width), int(d.Metadata.Dimensions.Height)
		if w > 0 && h > 0 {
			return float64(w) / float64(h)
		}
	}
	if d.Width > 0 && d.Height > 0 {
		return float64(d.Width) / float64(d.Height)
	}
	if d.AspectRatio > 0 {
		return d.AspectRatio
	}
	if kind == KindImage {
		return DefaultImageAspectRatio
	}
	return DefaultVideoAspectRatio
}

// MediaItem is one immutable grid entry. Reshuffling or refiltering the
// catalog produces a new slice of items, never in-place mutation.
type MediaItem struct {
	ID          string
	Kind        Kind
	SourcePath  string
	Title       string
	AspectRatio float64
	Tags        []string
}

// NewMediaItem builds a grid entry from a backend descriptor. The source
// path joins the folder prefix with the filename; the catalog client
// passes an absolute folder URL so the result is directly fetchable.
func NewMediaItem(d Descriptor, baseFolder string) MediaItem {
	kind := d.ResolvedKind()
	return MediaItem{
		ID:          d.Filename,
		Kind:        kind,
		SourcePath:  baseFolder + d.Filename,
		Title:       d.Title,
		AspectRatio: ResolveAspectRatio(d, kind),
		Tags:        d.Tags,
	}
}

// HasTag reports whether the item carries the given tag.
func (m MediaItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Shuffle returns a new randomly ordered slice. The input is left
// untouched.
func Shuffle(items []MediaItem, rng *rand.Rand) []MediaItem {
	out := make([]MediaItem, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// FilterByTag returns a new slice holding only items carrying the tag. An
// empty tag selects everything.
func FilterByTag(items []MediaItem, tag string) []MediaItem {
	if tag == "" {
		out := make([]MediaItem, len(items))
		copy(out, items)
		return out
	}
	var out []MediaItem
	for _, it := range items {
		if it.HasTag(tag) {
			out = append(out, it)
		}
	}
	return out
}
