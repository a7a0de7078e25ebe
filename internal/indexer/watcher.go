/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package indexer

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures the debouncer converting filesystem-change bursts
// into single re-index wake-ups (§4.7 step 6).
type WatchOptions struct {
	DebounceMs int
	PollMs     int
}

func (o WatchOptions) debounce() time.Duration {
	if o.DebounceMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(o.DebounceMs) * time.Millisecond
}

func (o WatchOptions) maxPoll() time.Duration {
	if o.PollMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(o.PollMs) * time.Millisecond
}

// watchChanges watches root recursively and sends a signal on wake whenever
// a debounce window elapses with at least one filesystem event; every new
// event restarts the window. While no event is pending the timer runs with
// the maxPoll period, and its expiry alone sends nothing. It returns once
// ctx is cancelled.
func watchChanges(ctx context.Context, root string, opts WatchOptions, wake chan<- struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	debounce := time.NewTimer(opts.maxPoll())
	defer debounce.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			pending = true
			if !debounce.Stop() {
				<-debounce.C
			}
			debounce.Reset(opts.debounce())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return err
			}
		case <-debounce.C:
			if pending {
				pending = false
				select {
				case wake <- struct{}{}:
				case <-ctx.Done():
					return nil
				}
			}
			debounce.Reset(opts.maxPoll())
		}
	}
}
