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

package workspace

import (
	"context"

	"github.com/pkg/errors"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
)

// reconcileStatus observes the init Job's conditions and projects them into
// the Workspace's Ready condition (§4.3), patching status only if changed.
func (r *Reconciler) reconcileStatus(ctx context.Context, ws *kubimov1.Workspace) error {
	job := &batchv1.Job{}
	exists, err := r.client.GetOptional(ctx, client.ObjectKeyFromObject(ws), job)
	if err != nil {
		return errors.Wrap(err, "workspace: fetch init Job")
	}

	status, reason, transition := jobReadyCondition(exists, job, ws.CreationTimestamp)

	next := metav1.Condition{
		Type:               kubimov1.ConditionReady,
		Status:             status,
		Reason:             reason,
		LastTransitionTime: transition,
	}

	if conditionEqual(findCondition(ws.Status.Conditions, kubimov1.ConditionReady), next) {
		return nil
	}

	ws.Status.Conditions = setCondition(ws.Status.Conditions, next)
	return r.client.PatchStatus(ctx, ws)
}

func jobReadyCondition(exists bool, job *batchv1.Job, createdAt metav1.Time) (metav1.ConditionStatus, string, metav1.Time) {
	if !exists {
		return metav1.ConditionFalse, kubimov1.ReasonJobNotComplete, createdAt
	}

	latest := createdAt
	var complete, failed bool
	for _, c := range job.Status.Conditions {
		if c.LastTransitionTime.After(latest.Time) {
			latest = c.LastTransitionTime
		}
		switch c.Type {
		case batchv1.JobComplete:
			complete = c.Status == corev1.ConditionTrue
		case batchv1.JobFailed:
			failed = c.Status == corev1.ConditionTrue
		}
	}

	switch {
	case failed:
		return metav1.ConditionFalse, kubimov1.ReasonJobFailed, latest
	case complete:
		return metav1.ConditionTrue, kubimov1.ReasonJobComplete, latest
	default:
		return metav1.ConditionFalse, kubimov1.ReasonJobNotComplete, latest
	}
}

func findCondition(conds []kubimov1.Condition, t string) *kubimov1.Condition {
	for i := range conds {
		if conds[i].Type == t {
			return &conds[i]
		}
	}
	return nil
}

func conditionEqual(existing *kubimov1.Condition, next metav1.Condition) bool {
	if existing == nil {
		return false
	}
	return existing.Status == next.Status &&
		existing.Reason == next.Reason &&
		existing.LastTransitionTime.Equal(&next.LastTransitionTime)
}

func setCondition(conds []kubimov1.Condition, next metav1.Condition) []kubimov1.Condition {
	kc := kubimov1.Condition{
		Type:               next.Type,
		Status:             next.Status,
		Reason:             next.Reason,
		LastTransitionTime: next.LastTransitionTime,
	}
	for i := range conds {
		if conds[i].Type == next.Type {
			conds[i] = kc
			return conds
		}
	}
	return append(conds, kc)
}
