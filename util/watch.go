package util

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
)

// Watch calls handle with the path of a file from files every time it is
// written or created, until ctx is done. Directories are watched instead of
// files so that editors replacing a file on save are noticed too.
func Watch(ctx context.Context, files []string, handle func(file string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return karma.Format(err, "unable to create file watcher")
	}
	defer watcher.Close()

	watched := map[string]string{}
	dirs := map[string]struct{}{}

	for _, file := range files {
		watched[filepath.Clean(file)] = file
		dirs[filepath.Dir(file)] = struct{}{}
	}

	for dir := range dirs {
		err := watcher.Add(dir)
		if err != nil {
			return karma.Format(err, "unable to watch directory %q", dir)
		}

		log.Debugf(nil, "watching %s", dir)
	}

	log.Infof(nil, "watching %d file(s) for changes", len(watched))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			file, ok := watched[filepath.Clean(event.Name)]
			if !ok {
				continue
			}

			log.Tracef(nil, "fsnotify event: %s", event)

			handle(file)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Errorf(err, "file watcher failed")
		}
	}
}
