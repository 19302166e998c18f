// Package probe reads the length of local audio files so the playlist can
// show durations before the player has loaded them.
package probe

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/yhkl-dev/NaviPlayer/domain"
)

// ErrUnsupported is returned for formats without a decoder
var ErrUnsupported = errors.New("unsupported format")

// Duration decodes the header of an mp3, ogg or wav file and returns its length
func Duration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".ogg", ".oga", ".wav":
	default:
		return 0, errors.Wrapf(ErrUnsupported, "%s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "open media")
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return 0, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// Durations probes every local audio entry concurrently.
// Entries that are remote, video or undecodable are absent from the result.
func Durations(items []domain.MediaItem, maxWorkers int) map[int]time.Duration {
	var mu sync.Mutex
	result := make(map[int]time.Duration)

	p := pool.New().WithMaxGoroutines(max(1, maxWorkers))
	for i, item := range items {
		if item.Kind != domain.KindAudio || item.IsRemote() {
			continue
		}
		i, item := i, item // per-iteration copies; go.mod targets go 1.21 loop semantics
		p.Go(func() {
			d, err := Duration(item.Source)
			if err != nil {
				log.Debug().Err(err).Str("source", item.Source).Msg("probe skipped")
				return
			}
			mu.Lock()
			result[i] = d
			mu.Unlock()
		})
	}
	p.Wait()

	return result
}
