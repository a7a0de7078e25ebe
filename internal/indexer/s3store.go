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
	"bytes"
	"context"
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cache "github.com/patrickmn/go-cache"

	"github.com/aqora-io/kubimo/internal/metrics"
)

const (
	minMultipartSize = 10 * 1024 * 1024
	multipartDivisor = 10_000
)

// contentTypes maps the extensions §4.7 step 4 names explicitly; anything
// else falls back to octet-stream.
var contentTypes = map[string]string{
	".json":  "application/json",
	".ipynb": "application/x-ipynb+json",
	".html":  "text/html",
	".md":    "text/markdown",
}

func contentTypeFor(ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// multipartThreshold is the size at or above which an object upload uses
// S3 multipart rather than a single PUT (§4.7 step 4).
func multipartThreshold(size int64) bool {
	threshold := int64(minMultipartSize)
	if divided := (size + multipartDivisor - 1) / multipartDivisor; divided > threshold {
		threshold = divided
	}
	return size >= threshold
}

// marker is the cached (crc32, etag) pair for one previously uploaded
// object, keyed by "bucket/key" (§4.7 step 1's cacheMarkers table).
type marker struct {
	crc32 string
	etag  string
}

// Store wraps an S3 client with the CRC32/ETag upload cache §4.7 describes.
// cacheMarkers is a go-cache instance, itself internally mutex-guarded, so
// no separate lock is needed around lookups/inserts here.
type Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	markers  *cache.Cache
}

// NewStore builds a Store around an already-configured S3 client.
func NewStore(client *s3.Client) *Store {
	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		markers:  cache.New(cache.NoExpiration, time.Hour),
	}
}

// SeedMarker pre-populates the cache-marker table from a WorkspaceDirectory
// resource read back on startup (§4.7 step 1).
func (s *Store) SeedMarker(bucket, key, crc32hex, etag string) {
	s.markers.Set(bucket+"/"+key, marker{crc32: crc32hex, etag: etag}, cache.NoExpiration)
}

// PutIfChanged uploads content to bucket/key unless the cached marker's
// ETag still matches the object's current remote HEAD (§4.7 step 4),
// returning the content's CRC32 hex digest and the resulting ETag.
func (s *Store) PutIfChanged(ctx context.Context, bucket, key string, content []byte) (crc32hex, etag string, err error) {
	sum := crc32.ChecksumIEEE(content)
	crc32hex = strconv.FormatUint(uint64(sum), 16)

	cacheKey := bucket + "/" + key
	if cached, ok := s.markers.Get(cacheKey); ok {
		m := cached.(marker)
		if m.crc32 == crc32hex {
			if head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &bucket, Key: &key}); err == nil && head.ETag != nil && *head.ETag == m.etag {
				metrics.IndexerUploadResults.Increment("skip", nil)
				return crc32hex, m.etag, nil
			}
		}
	}

	start := time.Now()
	etag, err = s.put(ctx, bucket, key, content)
	metrics.IndexerUploadLatency.Observe("upload", time.Since(start))
	metrics.IndexerUploadResults.Increment("upload", err)
	if err != nil {
		return "", "", err
	}

	s.markers.Set(cacheKey, marker{crc32: crc32hex, etag: etag}, cache.NoExpiration)
	return crc32hex, etag, nil
}

func (s *Store) put(ctx context.Context, bucket, key string, content []byte) (string, error) {
	ext := key[strings.LastIndex(key, ".")+1:]
	contentType := contentTypeFor(ext)

	if multipartThreshold(int64(len(content))) {
		out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      &bucket,
			Key:         &key,
			Body:        bytes.NewReader(content),
			ContentType: &contentType,
		})
		if err != nil {
			return "", err
		}
		if out.ETag == nil {
			return "", fmt.Errorf("indexer: multipart upload of %s returned no ETag", key)
		}
		return *out.ETag, nil
	}

	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(content),
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}
	if out.ETag == nil {
		return "", fmt.Errorf("indexer: put of %s returned no ETag", key)
	}
	return *out.ETag, nil
}

// Delete removes bucket/key, used for stale-object cleanup (§4.7 step 5).
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &bucket, Key: &key})
	return err
}
