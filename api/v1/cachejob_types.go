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

// CacheJobSpec defines the desired state of a CacheJob: a one-shot
// warm-cache Job tied to a Workspace.
type CacheJobSpec struct {
	// Workspace is the name of the Workspace to warm the cache for.
	Workspace string `json:"workspace"`

	// LogLevel is passed through to the cache container's --log-level
	// flag, if set.
	// +optional
	LogLevel string `json:"logLevel,omitempty"`

	// Memory is the {min, max} memory requirement.
	// +optional
	Memory ResourceRequirement `json:"memory,omitempty"`

	// Cpu is the {min, max} cpu requirement.
	// +optional
	Cpu ResourceRequirement `json:"cpu,omitempty"`

	EnvSource `json:",inline"`

	// BackoffLimit overrides the Job's backoffLimit.
	// +optional
	BackoffLimit *int32 `json:"backoffLimit,omitempty"`
}

// CacheJobStatus defines the observed state of a CacheJob.
type CacheJobStatus struct {
	// +optional
	Conditions []Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=bmocj
// +kubebuilder:printcolumn:name="Workspace",type=string,JSONPath=`.spec.workspace`

// CacheJob is a one-shot warm-cache Job tied to a Workspace, which may
// co-schedule the workspace's indexer (§4.6).
type CacheJob struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   CacheJobSpec   `json:"spec,omitempty"`
	Status CacheJobStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// CacheJobList contains a list of CacheJob.
type CacheJobList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CacheJob `json:"items"`
}

func init() {
	SchemeBuilder.Register(&CacheJob{}, &CacheJobList{})
}

// CacheJobFieldWorkspace is the selector field path for CacheJob.spec.workspace.
const CacheJobFieldWorkspace = "spec.workspace"
