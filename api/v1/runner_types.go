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

// RunnerCommand selects the notebook server's run mode.
// +kubebuilder:validation:Enum=Edit;Run
type RunnerCommand string

const (
	RunnerCommandEdit RunnerCommand = "Edit"
	RunnerCommandRun  RunnerCommand = "Run"
)

// RunnerSpec defines the desired state of a Runner: a short-lived,
// network-reachable notebook server or headless app bound to exactly one
// Workspace.
type RunnerSpec struct {
	// Workspace is the name of the Workspace this runner is bound to.
	// Immutable after creation (I2).
	// +kubebuilder:validation:Required
	Workspace string `json:"workspace"`

	// Command selects whether the notebook server runs interactively
	// (Edit) or as a headless app (Run).
	// +kubebuilder:default=Edit
	Command RunnerCommand `json:"command,omitempty"`

	// LogLevel is passed through to the notebook server's --log-level
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

	// Ingress configures the runner's external HTTP exposure.
	// +optional
	Ingress *RunnerIngress `json:"ingress,omitempty"`

	// Lifecycle configures the inactivity-driven deletion policy.
	// +optional
	Lifecycle *RunnerLifecycle `json:"lifecycle,omitempty"`

	// Token, if set, is required by clients connecting to the notebook
	// server.
	// +optional
	Token string `json:"token,omitempty"`
}

// RunnerStatus defines the observed state of a Runner.
type RunnerStatus struct {
	// Conditions is an ordered list of status conditions.
	// +optional
	Conditions []Condition `json:"conditions,omitempty"`
	// LastActive is the last time the runner-status reconciler observed an
	// active connection. Monotonically non-decreasing (I8).
	// +optional
	LastActive *metav1.Time `json:"lastActive,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=bmor
// +kubebuilder:printcolumn:name="Workspace",type=string,JSONPath=`.spec.workspace`
// +kubebuilder:printcolumn:name="Command",type=string,JSONPath=`.spec.command`
// +kubebuilder:printcolumn:name="LastActive",type=date,JSONPath=`.status.lastActive`

// Runner is a short-lived, network-reachable notebook server or headless
// app bound to exactly one Workspace.
type Runner struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   RunnerSpec   `json:"spec,omitempty"`
	Status RunnerStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// RunnerList contains a list of Runner.
type RunnerList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Runner `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Runner{}, &RunnerList{})
}

// Selector field paths exported for use with typed field selectors (§6).
const (
	RunnerFieldWorkspace = "spec.workspace"
	RunnerFieldCommand   = "spec.command"
)
