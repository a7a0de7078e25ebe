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

package quantity

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Coherent reports invariant I3 (max >= min) for a {min, max} requirement
// pair carried directly as cluster Quantity pointers, as Workspace, Runner
// and CacheJob specs store them. A pair with only one bound set, or
// neither, is trivially coherent.
func Coherent(min, max *resource.Quantity) bool {
	if min == nil || max == nil {
		return true
	}
	return max.Cmp(*min) >= 0
}

// Requirement builds a corev1.ResourceRequirements from the {min, max}
// cpu/memory pairs carried on a Workspace, Runner or CacheJob spec. Min
// becomes the request, Max the limit; a resource name is omitted entirely
// from its map (never set to an empty map) when its bound is absent,
// matching the Rust Resources builder's is_empty() guard that never emits
// an empty requests/limits map onto a container or PVC spec.
func Requirement(cpuMin, cpuMax, memMin, memMax *resource.Quantity) corev1.ResourceRequirements {
	requests := corev1.ResourceList{}
	limits := corev1.ResourceList{}

	if cpuMin != nil {
		requests[corev1.ResourceCPU] = *cpuMin
	}
	if cpuMax != nil {
		limits[corev1.ResourceCPU] = *cpuMax
	}
	if memMin != nil {
		requests[corev1.ResourceMemory] = *memMin
	}
	if memMax != nil {
		limits[corev1.ResourceMemory] = *memMax
	}

	out := corev1.ResourceRequirements{}
	if len(requests) > 0 {
		out.Requests = requests
	}
	if len(limits) > 0 {
		out.Limits = limits
	}
	return out
}

// PVCResourceList builds the storage-only ResourceList a
// PersistentVolumeClaim spec's Resources.Requests field expects, nil when
// size is unset.
func PVCResourceList(size *resource.Quantity) corev1.ResourceList {
	if size == nil {
		return nil
	}
	return corev1.ResourceList{corev1.ResourceStorage: *size}
}
