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
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// WorkspaceIndexerPod customizes the pod the indexer runs as.
type WorkspaceIndexerPod struct {
	// +optional
	Env []corev1.EnvVar `json:"env,omitempty"`
	// +optional
	EnvFrom []corev1.EnvFromSource `json:"envFrom,omitempty"`
}

// WorkspaceIndexer declares that the workspace should run a content indexer
// (§4.7) whenever an Edit Runner is active for it (I7).
type WorkspaceIndexer struct {
	// Schedule is stored as given. No controller in this module reads it;
	// in particular, no CacheJob is created from it.
	// +optional
	Schedule string `json:"schedule,omitempty"`
	// Bucket is the S3 bucket content is mirrored to.
	Bucket string `json:"bucket"`
	// KeyPrefix is prepended to every object key the indexer writes.
	// +optional
	KeyPrefix string `json:"keyPrefix,omitempty"`
	// Pod customizes the indexer pod's environment.
	// +optional
	Pod WorkspaceIndexerPod `json:"pod,omitempty"`
}

// WorkspaceSpec defines the desired state of a Workspace.
type WorkspaceSpec struct {
	// Storage is the {min, max} PVC size requirement. Min becomes the PVC's
	// requests.storage, Max its limits.storage.
	// +optional
	Storage StorageRequirement `json:"storage,omitempty"`
	// InitContainers are appended after the built-in init-dirs
	// init-container in the workspace's init Job.
	// +optional
	InitContainers []corev1.Container `json:"initContainers,omitempty"`
	// Volumes are mounted into the init Job's pod alongside the PVC volume.
	// +kubebuilder:validation:MaxItems=25
	// +optional
	Volumes []corev1.Volume `json:"volumes,omitempty"`
	// Indexer, if set, runs a long-lived content indexer for this
	// workspace whenever an Edit Runner is active (I7).
	// +optional
	Indexer *WorkspaceIndexer `json:"indexer,omitempty"`
}

// WorkspaceStatus defines the observed state of a Workspace.
type WorkspaceStatus struct {
	// Conditions is an ordered list of status conditions; at minimum a
	// Ready condition with reason JobComplete|JobNotComplete|JobFailed.
	// +optional
	Conditions []Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=bmow
// +kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// Workspace is a persistent, named home directory backed by a PVC and
// prepared by an init Job (which also runs any user init containers), with
// an optional storage range and an optional watch-driven content indexer.
// There is no built-in git or S3 seeding; any seeding is whatever the user
// init containers do.
type Workspace struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   WorkspaceSpec   `json:"spec,omitempty"`
	Status WorkspaceStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// WorkspaceList contains a list of Workspace.
type WorkspaceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Workspace `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Workspace{}, &WorkspaceList{})
}
