// internal/words/watch.go
//
// Hot reload of a word file. The parent directory is watched (editors often
// replace files via rename) and events are filtered by file name.

package words

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch reloads list from path whenever the file is written or recreated.
// It blocks until ctx is done. A reload that yields no usable words keeps
// the previous list.
func Watch(ctx context.Context, path string, list *List) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	log.Info().Str("file", abs).Msg("watching word list")

	// Debounce bursts of writes from a single save.
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			reload(abs, list)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("word list watcher")
		}
	}
}

func reload(path string, list *List) {
	ws, err := readWordFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("reload word list")
		return
	}
	if err := list.Replace(ws); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("reload word list")
		return
	}
	log.Info().Str("file", path).Int("words", list.Len()).Msg("word list reloaded")
}
