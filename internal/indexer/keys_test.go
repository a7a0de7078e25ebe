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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirKeySetIsStableAndBijective(t *testing.T) {
	s := NewDirKeySet()
	a := s.KeyFor("/foo")
	b := s.KeyFor("/bar")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, s.KeyFor("/foo"))
}

func TestDirKeySetResourceNameFormat(t *testing.T) {
	s := NewDirKeySet()
	name := s.ResourceName("w1", "/foo")
	assert.Regexp(t, `^w1-[0-9A-HJKMNP-TV-Z]+$`, name)
}

func TestDirKeySetSeedAdvancesAllocator(t *testing.T) {
	s := NewDirKeySet()
	s.Seed("/existing", 5)
	assert.Equal(t, uint32(6), s.KeyFor("/new"))
}

func TestFileKeySetIsStableAndBijective(t *testing.T) {
	s := NewFileKeySet()
	idA, _ := s.KeyFor("/a.py", "py")
	idB, _ := s.KeyFor("/b.py", "py")
	assert.NotEqual(t, idA, idB)
	idA2, _ := s.KeyFor("/a.py", "py")
	assert.Equal(t, idA, idA2)
}

func TestFileKeySetObjectURLFormat(t *testing.T) {
	s := NewFileKeySet()
	url := s.ObjectURL("bucket", "prefix/", "/a.py", "py")
	assert.Regexp(t, `^s3://bucket/prefix/[0-9A-HJKMNP-TV-Z]+\.py$`, url)
}

func TestParseResourceKeyRoundTrips(t *testing.T) {
	s := NewDirKeySet()
	name := s.ResourceName("w1", "/foo")
	key, err := ParseResourceKey("w1", name)
	assert.NoError(t, err)
	assert.Equal(t, s.KeyFor("/foo"), key)
}

func TestParseResourceKeyRejectsOtherWorkspace(t *testing.T) {
	s := NewDirKeySet()
	name := s.ResourceName("w1", "/foo")
	_, err := ParseResourceKey("w2", name)
	assert.Error(t, err)
}

func TestParseObjectURLRoundTrips(t *testing.T) {
	s := NewFileKeySet()
	url := s.ObjectURL("bucket", "prefix/", "/a.py", "py")
	bucket, _, err := SplitObjectURL(url)
	assert.NoError(t, err)
	assert.Equal(t, "bucket", bucket)

	id, ext, err := ParseObjectURL("bucket", "prefix/", url)
	assert.NoError(t, err)
	assert.Equal(t, "py", ext)
	wantID, _ := s.KeyFor("/a.py", "py")
	assert.Equal(t, wantID, id)
}

func TestSplitObjectURL(t *testing.T) {
	bucket, key, err := SplitObjectURL("s3://bucket/prefix/abc.py")
	assert.NoError(t, err)
	assert.Equal(t, "bucket", bucket)
	assert.Equal(t, "prefix/abc.py", key)
}
