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

package cachejob

import (
	"context"

	"github.com/pkg/errors"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/pkg/labels"
	"github.com/aqora-io/kubimo/internal/pkg/podcmd"
	"github.com/aqora-io/kubimo/internal/pkg/quantity"
)

// reconcileJob ensures the warm-cache Job: a cache container alone, or a
// cache init-container followed by a one-shot indexer container when the
// workspace declares an indexer and its long-lived indexer pod isn't
// currently Running (§4.6).
func (r *Reconciler) reconcileJob(ctx context.Context, cj *kubimov1.CacheJob) error {
	ws := &kubimov1.Workspace{}
	if err := r.client.Get(ctx, client.ObjectKey{Namespace: cj.Namespace, Name: cj.Spec.Workspace}, ws); err != nil {
		return errors.Wrap(err, "cachejob: get workspace")
	}

	coSchedule, err := r.wantsCoScheduledIndexer(ctx, ws)
	if err != nil {
		return errors.Wrap(err, "cachejob: determine indexer co-scheduling")
	}

	fsGroup := int64(1000)
	cacheContainer := corev1.Container{
		Name:         "cache",
		Image:        r.cfg.MarimoImage,
		Command:      podcmd.New("/", podcmd.ModeCache).WithLogLevel(cj.Spec.LogLevel).Args(),
		Env:          cj.Spec.Env,
		EnvFrom:      cj.Spec.EnvFrom,
		Resources:    quantity.Requirement(cj.Spec.Cpu.Min, cj.Spec.Cpu.Max, cj.Spec.Memory.Min, cj.Spec.Memory.Max),
		VolumeMounts: []corev1.VolumeMount{{Name: "home", MountPath: "/home/me"}},
	}

	var initContainers []corev1.Container
	containers := []corev1.Container{cacheContainer}
	if coSchedule {
		initContainers = []corev1.Container{cacheContainer}
		containers = []corev1.Container{indexerContainer(ws, r.cfg.IndexerImage)}
	}

	job := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{Name: cj.Name, Namespace: cj.Namespace},
		Spec: batchv1.JobSpec{
			BackoffLimit: cj.Spec.BackoffLimit,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels.Name(cj.Name)},
				Spec: corev1.PodSpec{
					RestartPolicy:   corev1.RestartPolicyNever,
					SecurityContext: &corev1.PodSecurityContext{FSGroup: &fsGroup},
					InitContainers:  initContainers,
					Containers:      containers,
					Volumes: []corev1.Volume{{
						Name:         "home",
						VolumeSource: corev1.VolumeSource{PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: ws.Name}},
					}},
				},
			},
		},
	}
	if err := controllerSetRef(cj, job, r.scheme); err != nil {
		return errors.Wrap(err, "cachejob: set Job owner reference")
	}
	return r.client.Patch(ctx, job)
}

// wantsCoScheduledIndexer reports whether the Job should run cache then
// indexer: true when the workspace declares an indexer and its long-lived
// indexer pod isn't currently Running.
func (r *Reconciler) wantsCoScheduledIndexer(ctx context.Context, ws *kubimov1.Workspace) (bool, error) {
	if ws.Spec.Indexer == nil {
		return false, nil
	}

	pod := &corev1.Pod{}
	err := r.client.Get(ctx, client.ObjectKey{Namespace: ws.Namespace, Name: ws.Name + "-indexer"}, pod)
	if apierrors.IsNotFound(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return pod.Status.Phase != corev1.PodRunning, nil
}

// indexerContainer builds the one-shot indexer container a cache Job runs
// when co-scheduling, reusing the same flag vocabulary the workspace
// reconciler's long-lived indexer pod passes, minus --watch: this container
// picks up the fresh on-disk state once and exits.
func indexerContainer(ws *kubimov1.Workspace, image string) corev1.Container {
	return corev1.Container{
		Name:  "indexer",
		Image: image,
		Args: []string{
			"--bucket", ws.Spec.Indexer.Bucket,
			"--key-prefix", ws.Spec.Indexer.KeyPrefix,
			"--upload-content",
			ws.Name,
			"/home/me",
		},
		Env:          ws.Spec.Indexer.Pod.Env,
		EnvFrom:      ws.Spec.Indexer.Pod.EnvFrom,
		VolumeMounts: []corev1.VolumeMount{{Name: "home", MountPath: "/home/me"}},
	}
}
