// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// watchDebounce coalesces bursts of events, such as a script running
// several "notepad add" commands back to back.
const watchDebounce = 50 * time.Millisecond

// Watch calls changed whenever the file holding key is rewritten, by
// this store or by another process. It returns a function that stops
// the watcher and waits for it to exit. changed runs on the watcher's
// goroutine.
//
// The directory is watched rather than the file: Put replaces the file
// by renaming a temporary over it, which creates a new inode that a
// file-level watch would miss. Both IN_MOVED_TO (atomic replace) and
// IN_CLOSE_WRITE (an editor writing in place) count as changes.
func (store *File) Watch(key string, changed func()) (func(), error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("kvstore: inotify: %w", err)
	}
	if _, err := unix.InotifyAddWatch(fd, store.directory, unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("kvstore: watching %s: %w", store.directory, err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		store.watchLoop(fd, key+".json", changed, stop)
	}()

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		close(stop)
		<-done
	}, nil
}

// watchLoop polls the inotify fd with a short timeout so that stop is
// noticed promptly.
func (store *File) watchLoop(fd int, filename string, changed func(), stop <-chan struct{}) {
	defer unix.Close(fd)

	buffer := make([]byte, 4096)
	for {
		select {
		case <-stop:
			return
		default:
		}

		descriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(descriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			store.logger.Warn("file watcher stopped", "directory", store.directory, "error", err)
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			store.logger.Warn("file watcher stopped", "directory", store.directory, "error", err)
			return
		}
		if !eventsName(buffer[:bytesRead], filename) {
			continue
		}

		time.Sleep(watchDebounce)
		drainEvents(fd, buffer)

		store.logger.Debug("stored value changed", "file", filename)
		changed()
	}
}

// eventsName reports whether any inotify event in buffer names
// filename. Layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded to alignment
//	};
func eventsName(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}
		name := buffer[offset+unix.SizeofInotifyEvent : offset+eventSize]
		for index, character := range name {
			if character == 0 {
				name = name[:index]
				break
			}
		}
		if string(name) == filename {
			return true
		}
		offset += eventSize
	}
	return false
}

// drainEvents discards pending events until the fd would block.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
