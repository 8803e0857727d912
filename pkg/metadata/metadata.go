package metadata

import (
	"regexp"
	"sort"
	"strings"

	"mediawall/pkg/models"
)

// Filename patterns produced by the gallery exporter. The leading timestamp
// and numeric id are noise; the trailing segment is the real title.
var (
	underscorePattern = regexp.MustCompile(`^\d{8}T\d{6}_\d+_[^_]+_(.+)$`)
	spacedPattern     = regexp.MustCompile(`(?i)^\d{8}T\d{6}\s+\d+\s+\w+\s+\w+\s+(.+)$`)
	prefixPattern     = regexp.MustCompile(`^\d{8}T\d{6}[_\s]+\d+[_\s]+`)
	multiSpace        = regexp.MustCompile(`\s+`)
)

// DisplayTitle derives a human-readable title from an exported media
// filename.
func DisplayTitle(filename string) string {
	title := filename
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		title = filename[:idx]
	}

	if m := underscorePattern.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(strings.ReplaceAll(m[1], "_", " "))
	}
	if m := spacedPattern.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}

	cleaned := prefixPattern.ReplaceAllString(title, "")
	cleaned = strings.ReplaceAll(cleaned, "_", " ")
	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return title
	}

	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// TagCount is one aggregated tag with its occurrence count.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AggregateTags counts tag occurrences across items, sorted
// case-insensitively by name to match the backend's tag listing.
func AggregateTags(items []models.MediaItem) []TagCount {
	counts := make(map[string]int)
	for _, it := range items {
		for _, t := range it.Tags {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, TagCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// TagNames returns just the sorted tag names from an aggregation.
func TagNames(counts []TagCount) []string {
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Name
	}
	return names
}
