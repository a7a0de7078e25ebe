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
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// WalkOptions controls which paths the walker skips (§4.7 step 2).
type WalkOptions struct {
	// IncludeGitIgnored disables .gitignore filtering entirely.
	IncludeGitIgnored bool
	// IncludeHidden includes dotfiles/dotdirs other than .git.
	IncludeHidden bool
}

// entry is one filesystem path handed from the walker to the classifier
// worker pool.
type entry struct {
	relPath string
	absPath string
	dirent  fs.DirEntry
}

// walk traverses root and sends every non-skipped entry on out, closing out
// when done or ctx is cancelled. It never descends into .git. This is the
// first of §4.7's four pipeline stages.
func walk(ctx context.Context, root string, opts WalkOptions, out chan<- entry) error {
	defer close(out)

	var ignore *gitignore.GitIgnore
	if !opts.IncludeGitIgnored {
		if m, err := gitignore.NewGitIgnore(filepath.Join(root, ".gitignore")); err == nil {
			ignore = m
		}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ignore != nil && ignore.Match(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- entry{relPath: rel, absPath: path, dirent: d}:
			return nil
		}
	})
}
