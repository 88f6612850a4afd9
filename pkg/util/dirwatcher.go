/*
   R16 - fantasy console
   Copyright (c) 2023, The R16 Authors

   This file is part of R16.

   R16 is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   R16 is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with R16. If not, see <http://www.gnu.org/licenses/>.
*/

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

/*
	NewDirWatcher creates a recursive watcher for the directory tree rooted in
	dir. Directories created later on are added to the watch. Events for files
	are only passed on when accept returns true for the file's path. A nil
	accept passes on all events. The watcher does nothing until started.
*/
func NewDirWatcher(dir string, accept func(path string) bool) (*DirWatcher, error) {

	if accept == nil {
		accept = func(string) bool { return true }
	}

	ret := &DirWatcher{
		accept:  accept,
		release: make(chan bool, 1),
	}

	var err error
	if ret.watcher, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}

	if err := filepath.Walk(dir, ret.addDirWalking); err != nil {
		log.Errorf("error walking directory '%s': %v", dir, err)
		ret.watcher.Close()
		return nil, err
	}

	return ret, nil
}

//
type DirWatcher struct {
	watcher *fsnotify.Watcher
	accept  func(string) bool
	release chan bool
	running atomic.Bool
}

/*
	Start runs the watch loop. The handler is called for every accepted event.
	Once no further events arrived for the backoff duration, flush is called.
	Handler and flush are always called from the same go routine, so clients
	need no locking of their own for state touched only by these two.
*/
func (dw *DirWatcher) Start(backoff time.Duration,
	handler func(fsnotify.Event) error, flush func() error) error {

	if dw.watcher == nil {
		return fmt.Errorf("directory watcher not initialized or stopped")
	}

	if !dw.running.CompareAndSwap(false, true) {
		return fmt.Errorf("directory watcher already started")
	}

	go func() {

		var flushC <-chan time.Time

		defer func() {
			dw.running.Store(false)
			log.Debug("directory watcher routine exiting")
			dw.release <- true
		}()

		for {
			select {

			case evt, ok := <-dw.watcher.Events:
				if !ok {
					return
				}
				if !dw.handleEvent(evt) {
					continue
				}
				if err := handler(evt); err != nil {
					log.Errorf("error in watch event handler: %v", err)
				}
				flushC = time.After(backoff)

			case err, ok := <-dw.watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("directory watcher error: %v", err)

			case <-flushC:
				flushC = nil
				if err := flush(); err != nil {
					log.Errorf("error flushing: %v", err)
				}
			}
		}
	}()

	return nil
}

/*
	Stop signals this directory watcher to stop, and waits until its routine
	has ended. A stopped directory watcher cannot be started again.
*/
func (dw *DirWatcher) Stop() {
	if dw.watcher == nil {
		return
	}
	log.Info("closing directory watcher")
	if err := dw.watcher.Close(); err != nil {
		log.Errorf("could not close file watcher: %v", err)
	}
	if dw.running.Load() {
		<-dw.release
	}
	dw.watcher = nil
}

// handleEvent keeps the watch list in sync with the tree, and reports whether
// the event should be passed on.
func (dw *DirWatcher) handleEvent(evt fsnotify.Event) bool {

	log.WithFields(
		log.Fields{"path": evt.Name, "op": evt.Op}).Debug("handling event")

	if evt.Op&fsnotify.Create != 0 {
		if info, err := os.Lstat(evt.Name); err == nil && info.IsDir() {
			dw.addDir(evt.Name, info)
			return false
		}
	}

	return dw.accept(evt.Name)
}

//
func (dw *DirWatcher) addDirWalking(
	path string, info os.FileInfo, err error) error {
	if err != nil {
		return err
	}
	return dw.addDir(path, info)
}

//
func (dw *DirWatcher) addDir(path string, info os.FileInfo) error {

	if !info.Mode().IsDir() {
		return nil
	}

	if err := dw.watcher.Add(path); err != nil {
		log.Errorf("error adding watch for directory '%s': %v", path, err)
		return err
	}

	log.WithField("path", path).Debug("starting directory watch")
	return nil
}
