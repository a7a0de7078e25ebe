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

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// MarimoRendering is one cached rendering of a marimo notebook (e.g. the
// .html, .md or .ipynb export), uploaded to S3 alongside the source file.
type MarimoRendering struct {
	// Format is the rendering's extension, e.g. "html", "md", "ipynb".
	Format string `json:"format"`
	// URL is the s3://bucket/key location of the rendering.
	URL string `json:"url"`
	// CRC32 is the checksum of the uploaded content, in hex.
	CRC32 string `json:"crc32"`
	// ETag is the object store's ETag for the uploaded content.
	ETag string `json:"etag"`
}

// MarimoFunctionSignature describes one @app.function-decorated function
// the indexer parsed out of a marimo notebook.
type MarimoFunctionSignature struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters,omitempty"`
	Returns    string   `json:"returns,omitempty"`
}

// MarimoMeta is the notebook metadata attached to a file entry that the
// indexer classified as a marimo notebook (§9).
type MarimoMeta struct {
	// Functions are the parsed function signatures.
	// +optional
	Functions []MarimoFunctionSignature `json:"functions,omitempty"`
	// Renderings are the cached renderings uploaded alongside the source.
	// +optional
	Renderings []MarimoRendering `json:"renderings,omitempty"`
	// MetaJSON is the URL of the uploaded <file>.meta.json sidecar.
	// +optional
	MetaJSON string `json:"metaJson,omitempty"`
}

// FileEntry is the file-specific payload of a directory entry.
type FileEntry struct {
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// Marimo is set when the file was classified as a marimo notebook.
	// +optional
	Marimo *MarimoMeta `json:"marimo,omitempty"`
	// ContentURL is set when the indexer mirrored the file's raw content
	// to the object store.
	// +optional
	ContentURL string `json:"contentUrl,omitempty"`
}

// DirectoryEntryKind discriminates the three kinds of filesystem entries a
// WorkspaceDirectory entry can describe.
// +kubebuilder:validation:Enum=directory;symlink;file
type DirectoryEntryKind string

const (
	DirectoryEntryKindDirectory DirectoryEntryKind = "directory"
	DirectoryEntryKindSymlink   DirectoryEntryKind = "symlink"
	DirectoryEntryKindFile      DirectoryEntryKind = "file"
)

// DirectoryEntry describes one filesystem entry within a WorkspaceDirectory.
type DirectoryEntry struct {
	// Name is the entry's base name (not a full path).
	Name string `json:"name"`
	// Created is the entry's creation time, if known.
	// +optional
	Created *metav1.Time `json:"created,omitempty"`
	// Modified is the entry's last modification time.
	// +optional
	Modified *metav1.Time `json:"modified,omitempty"`
	// Kind discriminates directory/symlink/file.
	Kind DirectoryEntryKind `json:"kind"`
	// File carries file-specific metadata. Only set when Kind == file.
	// +optional
	File *FileEntry `json:"file,omitempty"`
}

// WorkspaceDirectorySpec defines the desired state of a WorkspaceDirectory:
// a single directory listing materialized by the workspace indexer.
type WorkspaceDirectorySpec struct {
	// Workspace is the name of the owning Workspace.
	Workspace string `json:"workspace"`
	// Path is the directory's path relative to the workspace root.
	Path string `json:"path"`
	// Entries is the directory's contents, sorted by name.
	// +optional
	Entries []DirectoryEntry `json:"entries,omitempty"`
}

// WorkspaceDirectoryStatus defines the observed state of a
// WorkspaceDirectory.
type WorkspaceDirectoryStatus struct {
	// +optional
	Conditions []Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=bmowd
// +kubebuilder:printcolumn:name="Workspace",type=string,JSONPath=`.spec.workspace`
// +kubebuilder:printcolumn:name="Path",type=string,JSONPath=`.spec.path`

// WorkspaceDirectory materializes one directory listing for a Workspace, as
// emitted by the indexer.
type WorkspaceDirectory struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   WorkspaceDirectorySpec   `json:"spec,omitempty"`
	Status WorkspaceDirectoryStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// WorkspaceDirectoryList contains a list of WorkspaceDirectory.
type WorkspaceDirectoryList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []WorkspaceDirectory `json:"items"`
}

func init() {
	SchemeBuilder.Register(&WorkspaceDirectory{}, &WorkspaceDirectoryList{})
}

// WorkspaceDirectoryFieldWorkspace is the selector field path for
// WorkspaceDirectory.spec.workspace.
const WorkspaceDirectoryFieldWorkspace = "spec.workspace"
