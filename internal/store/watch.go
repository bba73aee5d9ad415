package store

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads a File when another process rewrites it.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching f. onChange runs on the watcher goroutine after each
// successful reload, so it must only hand the notification off to the owner
// of any state it touches.
//
// The directory is watched rather than the file because saves replace the
// file by rename.
func (f *File) Watch(onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch store: %w", err)
	}
	if err := fw.Add(filepath.Dir(f.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch store: %w", err)
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	name := filepath.Clean(f.path)
	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if err := f.Reload(); err != nil {
					log.Printf("store: reload after %s: %v", event.Op, err)
					continue
				}
				if onChange != nil {
					onChange()
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Printf("store: watch: %v", err)
			}
		}
	}()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
