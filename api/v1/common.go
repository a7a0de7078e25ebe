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
	"k8s.io/apimachinery/pkg/api/resource"
)

// Condition reasons for the Workspace Ready condition (§4.3).
const (
	ReasonJobComplete    = "JobComplete"
	ReasonJobNotComplete = "JobNotComplete"
	ReasonJobFailed      = "JobFailed"
)

// ConditionReady is the condition type every resource's Ready state is
// reported under.
const ConditionReady = "Ready"

// ConditionReconciliationError is a supplemental condition type name for
// the most recent reconcile failure. No reconciler in this module sets a
// condition of this type.
const ConditionReconciliationError = "ReconciliationError"

// StorageRequirement is a {min, max} storage requirement pair (I3: max >=
// min when both are set).
type StorageRequirement struct {
	// Min is the minimum storage requested.
	// +optional
	Min *resource.Quantity `json:"min,omitempty"`
	// Max is the maximum storage allowed (a limit).
	// +optional
	Max *resource.Quantity `json:"max,omitempty"`
}

// ResourceRequirement is a {min, max} cpu or memory requirement pair (I3:
// max >= min when both are set).
type ResourceRequirement struct {
	// Min is the minimum amount requested.
	// +optional
	Min *resource.Quantity `json:"min,omitempty"`
	// Max is the maximum amount allowed (a limit).
	// +optional
	Max *resource.Quantity `json:"max,omitempty"`
}

// EnvSource mirrors the subset of a container's env/envFrom configuration
// that Workspace/Runner/CacheJob pods accept from the user.
type EnvSource struct {
	// Env is a list of literal or downward-API environment variables.
	// +optional
	Env []corev1.EnvVar `json:"env,omitempty"`
	// EnvFrom sources whole ConfigMaps/Secrets as environment variables.
	// +optional
	EnvFrom []corev1.EnvFromSource `json:"envFrom,omitempty"`
}

// IngressTLS describes the TLS configuration of a Runner's ingress rule.
type IngressTLS struct {
	// Hosts are the DNS hostnames the TLS certificate covers. Only the
	// first is used as the ingress rule host (§4.4).
	// +kubebuilder:validation:MinItems=1
	Hosts []string `json:"hosts"`
	// ClusterIssuer is the cert-manager ClusterIssuer name, if certificates
	// should be requested automatically.
	// +optional
	ClusterIssuer string `json:"clusterIssuer,omitempty"`
	// SecretName overrides the default "{runner-name}-tls" secret name.
	// +optional
	SecretName string `json:"secretName,omitempty"`
}

// RunnerIngress describes the optional ingress exposure of a Runner.
type RunnerIngress struct {
	// ClassName overrides the operator's configured default ingress class.
	// +optional
	ClassName string `json:"className,omitempty"`
	// Path overrides the default "/{runner-name}" ingress path.
	// +optional
	Path string `json:"path,omitempty"`
	// TLS configures HTTPS termination, if set.
	// +optional
	TLS *IngressTLS `json:"tls,omitempty"`
}

// RunnerLifecycle configures the inactivity-driven deletion policy (§4.5,
// I8).
type RunnerLifecycle struct {
	// DeleteAfterSecsInactive deletes the Runner once it has had no active
	// connections for this many seconds.
	// +optional
	DeleteAfterSecsInactive *int64 `json:"deleteAfterSecsInactive,omitempty"`
}

// Condition follows the cluster's common condition shape; every resource's
// status carries an ordered list of these.
type Condition struct {
	// Type is the condition type, e.g. "Ready".
	Type string `json:"type"`
	// Status is one of True, False, Unknown.
	Status metav1.ConditionStatus `json:"status"`
	// Reason is a short, machine-readable reason for the condition's last
	// transition.
	// +optional
	Reason string `json:"reason,omitempty"`
	// Message is a human-readable explanation.
	// +optional
	Message string `json:"message,omitempty"`
	// LastTransitionTime is when the condition last changed state.
	// +optional
	LastTransitionTime metav1.Time `json:"lastTransitionTime,omitempty"`
}
