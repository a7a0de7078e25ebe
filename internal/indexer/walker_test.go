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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectPaths(t *testing.T, root string, opts WalkOptions) []string {
	t.Helper()
	out := make(chan entry, 100)
	require.NoError(t, walk(context.Background(), root, opts, out))

	var paths []string
	for e := range out {
		paths = append(paths, e.relPath)
	}
	return paths
}

func TestWalkFindsFilesAndDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("x"), 0o644))

	paths := collectPaths(t, root, WalkOptions{})
	assert.ElementsMatch(t, []string{"a.txt", "sub", filepath.Join("sub", "b.txt")}, paths)
}

func TestWalkSkipsGitDirectoryEntirely(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "config"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

	paths := collectPaths(t, root, WalkOptions{IncludeHidden: true})
	assert.Equal(t, []string{"a.txt"}, paths)
}

func TestWalkExcludesHiddenEntriesUnlessIncluded(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

	assert.Equal(t, []string{"a.txt"}, collectPaths(t, root, WalkOptions{}))
	assert.ElementsMatch(t, []string{".env", "a.txt"}, collectPaths(t, root, WalkOptions{IncludeHidden: true}))
}

func TestWalkHonorsGitignoreUnlessIncludeGitIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("ignored.txt\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "kept.txt"), []byte("x"), 0o644))

	filtered := collectPaths(t, root, WalkOptions{IncludeHidden: true})
	assert.NotContains(t, filtered, "ignored.txt")
	assert.Contains(t, filtered, "kept.txt")

	all := collectPaths(t, root, WalkOptions{IncludeHidden: true, IncludeGitIgnored: true})
	assert.Contains(t, all, "ignored.txt")
}

func TestWalkStopsOnContextCancellation(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, string(rune('a'+i))+".txt"), []byte("x"), 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan entry, 1)
	err := walk(ctx, root, WalkOptions{}, out)
	assert.ErrorIs(t, err, context.Canceled)
}
