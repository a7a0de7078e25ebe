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
	"fmt"

	"github.com/pkg/errors"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/pkg/labels"
	"github.com/aqora-io/kubimo/internal/pkg/quantity"
)

func indexerName(ws *kubimov1.Workspace) string { return ws.Name + "-indexer" }

// reconcilePVC ensures a PersistentVolumeClaim named after the workspace,
// access mode ReadWriteOnce, resources from spec.storage.
func (r *Reconciler) reconcilePVC(ctx context.Context, ws *kubimov1.Workspace) error {
	pvc := &corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{Name: ws.Name, Namespace: ws.Namespace},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.ResourceRequirements{
				Requests: quantity.PVCResourceList(ws.Spec.Storage.Min),
				Limits:   quantity.PVCResourceList(ws.Spec.Storage.Max),
			},
		},
	}
	if err := setControllerRef(ws, pvc, r.scheme); err != nil {
		return errors.Wrap(err, "workspace: set PVC owner reference")
	}
	return r.client.Patch(ctx, pvc)
}

// reconcileInitJob ensures the one-time init Job: init-dirs init-container
// (mkdir workspace/, chown 1000), the user's additional init-containers
// appended after it, restart policy Never, fsGroup=1000, and a claim-backed
// volume alongside the user's volume list.
func (r *Reconciler) reconcileInitJob(ctx context.Context, ws *kubimov1.Workspace) error {
	fsGroup := int64(1000)
	runAsUser := int64(1000)

	initDirs := corev1.Container{
		Name:    "init-dirs",
		Image:   r.cfg.BusyboxImage,
		Command: []string{"sh", "-c", "mkdir -p /home/me/workspace && chown -R 1000:1000 /home/me"},
		VolumeMounts: []corev1.VolumeMount{
			{Name: "home", MountPath: "/home/me"},
		},
	}

	initContainers := append([]corev1.Container{initDirs}, ws.Spec.InitContainers...)
	for i := range initContainers[1:] {
		c := &initContainers[i+1]
		if hasVolumeMount(c.VolumeMounts, "home") {
			continue
		}
		c.VolumeMounts = append(c.VolumeMounts, corev1.VolumeMount{Name: "home", MountPath: "/home/me"})
	}

	volumes := append([]corev1.Volume{}, ws.Spec.Volumes...)
	volumes = append(volumes, corev1.Volume{
		Name: "home",
		VolumeSource: corev1.VolumeSource{
			PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: ws.Name},
		},
	})

	// The Job needs at least one regular container beyond its
	// init-containers; init-dirs plus the user's init-containers do the
	// actual one-time work, so the main container is a trivial completion
	// marker.
	done := corev1.Container{
		Name:    "init",
		Image:   r.cfg.BusyboxImage,
		Command: []string{"true"},
	}

	job := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{Name: ws.Name, Namespace: ws.Namespace},
		Spec: batchv1.JobSpec{
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels.Name(ws.Name)},
				Spec: corev1.PodSpec{
					RestartPolicy:    corev1.RestartPolicyNever,
					SecurityContext:  &corev1.PodSecurityContext{FSGroup: &fsGroup, RunAsUser: &runAsUser},
					InitContainers:   initContainers,
					Containers:       []corev1.Container{done},
					Volumes:          volumes,
				},
			},
		},
	}
	if err := setControllerRef(ws, job, r.scheme); err != nil {
		return errors.Wrap(err, "workspace: set init Job owner reference")
	}
	return r.client.Patch(ctx, job)
}

func hasVolumeMount(mounts []corev1.VolumeMount, name string) bool {
	for _, m := range mounts {
		if m.Name == name {
			return true
		}
	}
	return false
}

// reconcileIndexerRBAC ensures the ServiceAccount/Role/RoleBinding trio
// {workspace}-indexer granting full verbs on WorkspaceDirectory within the
// workspace's namespace, skipped entirely while the workspace is being
// deleted.
func (r *Reconciler) reconcileIndexerRBAC(ctx context.Context, ws *kubimov1.Workspace) error {
	if !ws.GetDeletionTimestamp().IsZero() {
		return nil
	}
	name := indexerName(ws)

	sa := &corev1.ServiceAccount{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ws.Namespace}}
	role := &rbacv1.Role{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ws.Namespace},
		Rules: []rbacv1.PolicyRule{{
			APIGroups: []string{kubimov1.GroupVersion.Group},
			Resources: []string{"workspacedirectories"},
			Verbs:     []string{"*"},
		}},
	}
	binding := &rbacv1.RoleBinding{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ws.Namespace},
		RoleRef:    rbacv1.RoleRef{APIGroup: rbacv1.GroupName, Kind: "Role", Name: name},
		Subjects:   []rbacv1.Subject{{Kind: rbacv1.ServiceAccountKind, Name: name, Namespace: ws.Namespace}},
	}

	for _, obj := range []client.Object{sa, role, binding} {
		if err := setControllerRef(ws, obj, r.scheme); err != nil {
			return errors.Wrap(err, "workspace: set indexer RBAC owner reference")
		}
		if err := r.client.Patch(ctx, obj); err != nil {
			return errors.Wrap(err, "workspace: patch indexer RBAC")
		}
	}
	return nil
}

// reconcileIndexerPod implements I7: the indexer pod exists iff the
// workspace declares an indexer AND an active Edit runner exists for it AND
// the workspace isn't being deleted; otherwise any existing pod is deleted.
func (r *Reconciler) reconcileIndexerPod(ctx context.Context, ws *kubimov1.Workspace) error {
	name := indexerName(ws)
	wants, err := r.wantsIndexerPod(ctx, ws)
	if err != nil {
		return errors.Wrap(err, "workspace: determine indexer pod lifecycle")
	}

	if !wants {
		pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ws.Namespace}}
		_, err := r.client.Delete(ctx, pod)
		return err
	}

	if ws.Spec.Indexer.Bucket == "" {
		return fmt.Errorf("workspace %s: indexer.bucket is required", ws.Name)
	}

	args := []string{
		"--bucket", ws.Spec.Indexer.Bucket,
		"--key-prefix", ws.Spec.Indexer.KeyPrefix,
		"--upload-content",
		"--watch",
		ws.Name,
		"/home/me",
	}

	fsGroup := int64(1000)
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ws.Namespace, Labels: labels.Name(name)},
		Spec: corev1.PodSpec{
			ServiceAccountName: name,
			SecurityContext:    &corev1.PodSecurityContext{FSGroup: &fsGroup},
			Containers: []corev1.Container{{
				Name:         "indexer",
				Image:        r.cfg.IndexerImage,
				Args:         args,
				Env:          ws.Spec.Indexer.Pod.Env,
				EnvFrom:      ws.Spec.Indexer.Pod.EnvFrom,
				VolumeMounts: []corev1.VolumeMount{{Name: "home", MountPath: "/home/me"}},
			}},
			Volumes: []corev1.Volume{{
				Name:         "home",
				VolumeSource: corev1.VolumeSource{PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: ws.Name}},
			}},
		},
	}
	if err := setControllerRef(ws, pod, r.scheme); err != nil {
		return errors.Wrap(err, "workspace: set indexer pod owner reference")
	}
	return r.client.Patch(ctx, pod)
}

func (r *Reconciler) wantsIndexerPod(ctx context.Context, ws *kubimov1.Workspace) (bool, error) {
	if ws.Spec.Indexer == nil || !ws.GetDeletionTimestamp().IsZero() {
		return false, nil
	}

	sel, err := runnerSelector(ws.Name)
	if err != nil {
		return false, err
	}

	list := &kubimov1.RunnerList{}
	if err := r.client.ListAll(ctx, list, client.InNamespace(ws.Namespace), &client.MatchingFieldsSelector{Selector: sel}); err != nil {
		return false, err
	}
	return len(list.Items) > 0, nil
}
