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

// Package indexer implements the per-workspace directory-listing and
// content-mirroring process (§4.7): walk -> classify -> upload -> aggregate
// into WorkspaceDirectory resources, optionally repeating on filesystem
// change.
package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
)

// maxUploadConcurrency bounds concurrent S3 PUT/multipart calls across the
// whole indexer pass, independent of how many entry workers are running.
const maxUploadConcurrency = 8

// entryChannelSize and resultChannelSize are the bounded inter-stage
// channels §4.7's "Concurrency" paragraph calls for.
const (
	entryChannelSize  = 1000
	resultChannelSize = 1000
)

// Config is the fixed, per-process configuration of one indexer run,
// populated from cmd/indexer's flags.
type Config struct {
	Workspace     string
	Namespace     string
	Root          string
	Bucket        string
	KeyPrefix     string
	UploadContent     bool
	IncludeHidden     bool
	IncludeGitIgnored bool
	Watch             bool
	WatchOptions      WatchOptions
}

// classifiedEntry is one walked path after classification, tagged with the
// parent directory it belongs to in the aggregation stage.
type classifiedEntry struct {
	parentPath string
	entry      kubimov1.DirectoryEntry
}

// Indexer owns the bijective key sets, the cache-marker-backed object
// store, and the previous pass's resource/object sets needed to prune
// stale state (§4.7 step 5). None of its fields are safe for concurrent use
// from outside a single Run call; DirKeySet/FileKeySet/Store each guard
// their own state internally (§5).
type Indexer struct {
	cfg    Config
	client *cluster.Client
	store  *Store

	dirKeys  *DirKeySet
	fileKeys *FileKeySet
	sem      *semaphore.Weighted

	prevNames map[string]struct{}

	urlsMu      sync.Mutex
	prevURLs    map[string]struct{}
	currentURLs map[string]struct{}
}

// New builds an Indexer around an already-configured cluster client and
// object store. seed must be called once before the first indexOnce (Run
// does this automatically); it's what populates prevNames/prevURLs, so
// indexOnce is only safe to call standalone, as the tests do, after seed.
func New(cfg Config, cl *cluster.Client, store *Store) *Indexer {
	return &Indexer{
		cfg:         cfg,
		client:      cl,
		store:       store,
		dirKeys:     NewDirKeySet(),
		fileKeys:    NewFileKeySet(),
		sem:         semaphore.NewWeighted(maxUploadConcurrency),
		prevNames:   make(map[string]struct{}),
		prevURLs:    make(map[string]struct{}),
		currentURLs: make(map[string]struct{}),
	}
}

// Run seeds the key sets from existing cluster state, performs one full
// indexing pass, and then, if configured to watch, repeats on every
// debounced filesystem change until ctx is cancelled (§4.7 steps 1-6).
func (ix *Indexer) Run(ctx context.Context) error {
	if err := ix.seed(ctx); err != nil {
		return err
	}
	if err := ix.indexOnce(ctx); err != nil {
		return err
	}
	if !ix.cfg.Watch {
		return nil
	}

	wake := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchChanges(gctx, ix.cfg.Root, ix.cfg.WatchOptions, wake)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-wake:
				if err := ix.indexOnce(gctx); err != nil {
					return err
				}
			}
		}
	})
	return g.Wait()
}

// seed lists every existing WorkspaceDirectory for this workspace and
// rebuilds the bijective key sets and cache-marker table from their
// resource names, entries and rendering URLs (§4.7 step 1).
func (ix *Indexer) seed(ctx context.Context) error {
	list := &kubimov1.WorkspaceDirectoryList{}
	err := ix.client.ListAll(ctx, list,
		client.InNamespace(ix.cfg.Namespace),
		client.MatchingFields{kubimov1.WorkspaceDirectoryFieldWorkspace: ix.cfg.Workspace},
	)
	if err != nil {
		return fmt.Errorf("indexer: seed: list WorkspaceDirectory: %w", err)
	}

	ix.prevNames = make(map[string]struct{}, len(list.Items))
	ix.prevURLs = make(map[string]struct{})
	ix.currentURLs = make(map[string]struct{})

	for _, wd := range list.Items {
		ix.prevNames[wd.Name] = struct{}{}
		if key, err := ParseResourceKey(ix.cfg.Workspace, wd.Name); err == nil {
			ix.dirKeys.Seed(wd.Spec.Path, key)
		}

		for _, e := range wd.Spec.Entries {
			if e.Kind != kubimov1.DirectoryEntryKindFile || e.File == nil {
				continue
			}
			path := filepath.Join(wd.Spec.Path, e.Name)

			if e.File.ContentURL != "" {
				ix.prevURLs[e.File.ContentURL] = struct{}{}
				if id, ext, err := ParseObjectURL(ix.cfg.Bucket, ix.cfg.KeyPrefix, e.File.ContentURL); err == nil {
					ix.fileKeys.Seed(path, id, ext)
				}
			}
			if e.File.Marimo == nil {
				continue
			}
			if e.File.Marimo.MetaJSON != "" {
				ix.prevURLs[e.File.Marimo.MetaJSON] = struct{}{}
			}
			for _, r := range e.File.Marimo.Renderings {
				ix.prevURLs[r.URL] = struct{}{}
				if bucket, key, err := SplitObjectURL(r.URL); err == nil {
					ix.store.SeedMarker(bucket, key, r.CRC32, r.ETag)
				}
			}
		}
	}
	return nil
}

// indexOnce runs the walker, classify, upload and aggregate stages exactly
// once, then deletes whatever resources and objects the previous pass
// produced but this one didn't (§4.7 steps 2-5).
func (ix *Indexer) indexOnce(ctx context.Context) error {
	pathsCh := make(chan entry, entryChannelSize)
	resultsCh := make(chan classifiedEntry, resultChannelSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return walk(gctx, ix.cfg.Root, WalkOptions{
			IncludeHidden:     ix.cfg.IncludeHidden,
			IncludeGitIgnored: ix.cfg.IncludeGitIgnored,
		}, pathsCh)
	})

	workers := runtime.GOMAXPROCS(0)
	var workerWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		workerWG.Add(1)
		g.Go(func() error {
			defer workerWG.Done()
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case e, ok := <-pathsCh:
					if !ok {
						return nil
					}
					ce, err := ix.classify(gctx, e)
					if err != nil {
						// §7: indexer upload/classify errors are logged and
						// skipped for that entry; the pass as a whole never
						// blocks on a single bad file.
						log.Printf("indexer: skipping %s: %v", e.relPath, err)
						continue
					}
					select {
					case resultsCh <- ce:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
			}
		})
	}

	go func() {
		workerWG.Wait()
		close(resultsCh)
	}()

	dirs := make(map[string][]kubimov1.DirectoryEntry)
	for ce := range resultsCh {
		dirs[ce.parentPath] = append(dirs[ce.parentPath], ce.entry)
	}

	if err := g.Wait(); err != nil {
		return err
	}

	currentNames := make(map[string]struct{}, len(dirs))
	for dirPath, entries := range dirs {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		name := ix.dirKeys.ResourceName(ix.cfg.Workspace, dirPath)
		wd := &kubimov1.WorkspaceDirectory{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ix.cfg.Namespace},
			Spec: kubimov1.WorkspaceDirectorySpec{
				Workspace: ix.cfg.Workspace,
				Path:      dirPath,
				Entries:   entries,
			},
		}
		if err := ix.client.Patch(ctx, wd); err != nil {
			return fmt.Errorf("indexer: patch WorkspaceDirectory %s: %w", name, err)
		}
		currentNames[name] = struct{}{}
	}

	if err := ix.pruneStaleResources(ctx, currentNames); err != nil {
		return err
	}
	if err := ix.pruneStaleObjects(ctx); err != nil {
		return err
	}

	ix.prevNames = currentNames
	ix.urlsMu.Lock()
	ix.prevURLs = ix.currentURLs
	ix.currentURLs = make(map[string]struct{})
	ix.urlsMu.Unlock()
	return nil
}

func (ix *Indexer) pruneStaleResources(ctx context.Context, current map[string]struct{}) error {
	for name := range ix.prevNames {
		if _, ok := current[name]; ok {
			continue
		}
		wd := &kubimov1.WorkspaceDirectory{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ix.cfg.Namespace},
		}
		if _, err := ix.client.Delete(ctx, wd); err != nil {
			return fmt.Errorf("indexer: delete stale WorkspaceDirectory %s: %w", name, err)
		}
	}
	return nil
}

func (ix *Indexer) pruneStaleObjects(ctx context.Context) error {
	ix.urlsMu.Lock()
	prev := ix.prevURLs
	cur := ix.currentURLs
	ix.urlsMu.Unlock()

	for url := range prev {
		if _, ok := cur[url]; ok {
			continue
		}
		bucket, key, err := SplitObjectURL(url)
		if err != nil {
			continue
		}
		if err := ix.store.Delete(ctx, bucket, key); err != nil {
			return fmt.Errorf("indexer: delete stale object %s: %w", url, err)
		}
	}
	return nil
}

func (ix *Indexer) trackURL(url string) {
	ix.urlsMu.Lock()
	ix.currentURLs[url] = struct{}{}
	ix.urlsMu.Unlock()
}

// classify turns one walked entry into a directory/symlink/file
// DirectoryEntry, uploading content and marimo metadata for files as
// configured (§4.7 step 3).
func (ix *Indexer) classify(ctx context.Context, e entry) (classifiedEntry, error) {
	info, err := e.dirent.Info()
	if err != nil {
		return classifiedEntry{}, err
	}

	parent := filepath.Dir(e.relPath)
	if parent == "." {
		parent = ""
	}

	modified := metav1.NewTime(info.ModTime())
	de := kubimov1.DirectoryEntry{Name: e.dirent.Name(), Modified: &modified}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		de.Kind = kubimov1.DirectoryEntryKindSymlink
	case e.dirent.IsDir():
		de.Kind = kubimov1.DirectoryEntryKindDirectory
	default:
		de.Kind = kubimov1.DirectoryEntryKindFile
		fe, err := ix.classifyFile(ctx, e, info)
		if err != nil {
			return classifiedEntry{}, err
		}
		de.File = fe
	}

	return classifiedEntry{parentPath: parent, entry: de}, nil
}

func (ix *Indexer) classifyFile(ctx context.Context, e entry, info fs.FileInfo) (*kubimov1.FileEntry, error) {
	fe := &kubimov1.FileEntry{Size: info.Size()}
	ext := strings.TrimPrefix(filepath.Ext(e.relPath), ".")
	isPy := ext == "py"

	var source []byte
	if isPy || ix.cfg.UploadContent {
		data, err := os.ReadFile(e.absPath)
		if err != nil {
			return nil, err
		}
		source = data
	}

	if isPy && isMarimoNotebook(source) {
		meta, err := ix.uploadMarimoMeta(ctx, e.relPath, source)
		if err != nil {
			return nil, err
		}
		fe.Marimo = meta
	}

	if ix.cfg.UploadContent {
		url, err := ix.uploadContent(ctx, e.relPath, ext, source)
		if err != nil {
			return nil, err
		}
		fe.ContentURL = url
	}

	return fe, nil
}

// uploadMarimoMeta uploads the parsed function signatures as a
// "<file>.meta.json" sidecar. Actually rendering a notebook to
// .md/.html/.ipynb requires running marimo's own exporter, which has no Go
// binding anywhere in the example corpus; this indexer uploads only the
// metadata it can derive from the source text, leaving MarimoMeta.Renderings
// empty rather than fabricating rendered output it cannot produce.
func (ix *Indexer) uploadMarimoMeta(ctx context.Context, path string, source []byte) (*kubimov1.MarimoMeta, error) {
	sigs := parseMarimoFunctions(source)
	payload, err := json.Marshal(sigs)
	if err != nil {
		return nil, err
	}

	if err := ix.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	key := ix.fileKeys.ObjectKey(ix.cfg.KeyPrefix, path+".meta", "json")
	_, _, err = ix.store.PutIfChanged(ctx, ix.cfg.Bucket, key, payload)
	ix.sem.Release(1)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("s3://%s/%s", ix.cfg.Bucket, key)
	ix.trackURL(url)
	return &kubimov1.MarimoMeta{Functions: sigs, MetaJSON: url}, nil
}

func (ix *Indexer) uploadContent(ctx context.Context, path, ext string, content []byte) (string, error) {
	key := ix.fileKeys.ObjectKey(ix.cfg.KeyPrefix, path, ext)

	if err := ix.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	_, _, err := ix.store.PutIfChanged(ctx, ix.cfg.Bucket, key, content)
	ix.sem.Release(1)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("s3://%s/%s", ix.cfg.Bucket, key)
	ix.trackURL(url)
	return url, nil
}
