package domain

import (
	"path"
	"path/filepath"
	"strings"
)

// Kind tells whether a playlist entry carries video or audio only
type Kind int

const (
	KindVideo Kind = iota
	KindAudio
)

func (k Kind) String() string {
	if k == KindAudio {
		return "audio"
	}
	return "video"
}

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".ogg":  {},
	".oga":  {},
	".wav":  {},
	".flac": {},
	".m4a":  {},
	".aac":  {},
	".opus": {},
}

// MediaItem represents a single playlist entry
type MediaItem struct {
	Source string // path or URL handed to the player
	Title  string
	Kind   Kind
}

// IsRemote reports whether the source is a URL rather than a local path
func (m MediaItem) IsRemote() bool {
	return strings.Contains(m.Source, "://")
}

// NewMediaItem builds an item from a source, resolving relative local paths against baseDir
func NewMediaItem(source, baseDir string) MediaItem {
	resolved := source
	if !strings.Contains(source, "://") && baseDir != "" {
		resolved = filepath.Join(baseDir, strings.TrimPrefix(source, "/"))
	}

	base := path.Base(filepath.ToSlash(source))
	ext := strings.ToLower(path.Ext(base))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}

	kind := KindVideo
	if _, ok := audioExtensions[ext]; ok {
		kind = KindAudio
	}

	title := strings.TrimSuffix(base, path.Ext(base))
	if title == "" || title == "." || title == "/" {
		title = source
	}

	return MediaItem{
		Source: resolved,
		Title:  title,
		Kind:   kind,
	}
}

// NewPlaylist converts configured sources into playlist entries
func NewPlaylist(sources []string, baseDir string) []MediaItem {
	items := make([]MediaItem, len(sources))
	for i, source := range sources {
		items[i] = NewMediaItem(source, baseDir)
	}
	return items
}
