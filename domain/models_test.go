package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMediaItem(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		baseDir   string
		wantSrc   string
		wantTitle string
		wantKind  Kind
	}{
		{
			name:      "absolute video",
			source:    "/RST.mp4",
			wantSrc:   "/RST.mp4",
			wantTitle: "RST",
			wantKind:  KindVideo,
		},
		{
			name:      "audio extension is case-insensitive",
			source:    "AudioBook.MP3",
			wantSrc:   "AudioBook.MP3",
			wantTitle: "AudioBook",
			wantKind:  KindAudio,
		},
		{
			name:      "relative path joins base dir",
			source:    "/POH.mp3",
			baseDir:   "/srv/media",
			wantSrc:   filepath.Join("/srv/media", "POH.mp3"),
			wantTitle: "POH",
			wantKind:  KindAudio,
		},
		{
			name:      "url keeps source and strips query from extension",
			source:    "https://example.com/live/track.ogg?token=1",
			baseDir:   "/srv/media",
			wantSrc:   "https://example.com/live/track.ogg?token=1",
			wantTitle: "track",
			wantKind:  KindAudio,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewMediaItem(tt.source, tt.baseDir)
			assert.Equal(t, tt.wantSrc, item.Source)
			assert.Equal(t, tt.wantTitle, item.Title)
			assert.Equal(t, tt.wantKind, item.Kind)
		})
	}
}

func TestNewPlaylist_PreservesOrder(t *testing.T) {
	items := NewPlaylist([]string{"/a.mp4", "/b.mp3", "/c.mkv"}, "")

	assert.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Title)
	assert.Equal(t, "b", items[1].Title)
	assert.Equal(t, "c", items[2].Title)
	assert.False(t, items[0].IsRemote())
}
