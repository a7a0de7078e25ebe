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
	"hash/crc32"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultipartThresholdSmallObjectStaysSingleShot(t *testing.T) {
	assert.False(t, multipartThreshold(1024))
}

func TestMultipartThresholdAtMinimumTriggersMultipart(t *testing.T) {
	assert.True(t, multipartThreshold(minMultipartSize))
}

func TestContentTypeForKnownExtensions(t *testing.T) {
	assert.Equal(t, "text/html", contentTypeFor("html"))
	assert.Equal(t, "application/x-ipynb+json", contentTypeFor(".ipynb"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("py"))
}

// fakeS3 answers just enough of the S3 HTTP surface (PUT, HEAD, DELETE) for
// Store's unit tests. headMiss controls whether HEAD reports the object
// absent (404, forcing Store to re-upload) or present with etag.
type fakeS3 struct {
	etag        string
	headMiss    bool
	puts, heads int
	deletes     int
}

func (f *fakeS3) handler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		f.puts++
		w.Header().Set("ETag", f.etag)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		f.heads++
		if f.headMiss {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("ETag", f.etag)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		f.deletes++
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T, f *fakeS3) *Store {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(f.handler))
	t.Cleanup(srv.Close)

	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("test", "test", ""),
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(srv.URL)
		o.UsePathStyle = true
	})
	return NewStore(client)
}

func TestPutIfChangedUploadsOnCacheMiss(t *testing.T) {
	f := &fakeS3{etag: `"abc123"`}
	store := newTestStore(t, f)

	crc, etag, err := store.PutIfChanged(context.Background(), "bucket", "dir/file.txt", []byte("hello"))
	require.NoError(t, err)
	assert.NotEmpty(t, crc)
	assert.Equal(t, `"abc123"`, etag)
	assert.Equal(t, 1, f.puts)
}

func TestPutIfChangedSkipsWhenMarkerAndRemoteETagMatch(t *testing.T) {
	content := []byte("hello")
	crc := strconv.FormatUint(uint64(crc32.ChecksumIEEE(content)), 16)

	f := &fakeS3{etag: `"abc123"`}
	store := newTestStore(t, f)
	store.SeedMarker("bucket", "dir/file.txt", crc, `"abc123"`)

	gotCRC, etag, err := store.PutIfChanged(context.Background(), "bucket", "dir/file.txt", content)
	require.NoError(t, err)
	assert.Equal(t, crc, gotCRC)
	assert.Equal(t, `"abc123"`, etag)
	assert.Equal(t, 1, f.heads)
	assert.Equal(t, 0, f.puts)
}

func TestStoreDeleteCallsDeleteObject(t *testing.T) {
	f := &fakeS3{}
	store := newTestStore(t, f)
	require.NoError(t, store.Delete(context.Background(), "bucket", "dir/file.txt"))
	assert.Equal(t, 1, f.deletes)
}
