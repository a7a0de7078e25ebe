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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/config"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
)

func testScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	sch := runtime.NewScheme()
	require.NoError(t, clientgoscheme.AddToScheme(sch))
	require.NoError(t, kubimov1.AddToScheme(sch))
	return sch
}

func testConfig() *config.Config {
	return &config.Config{BusyboxImage: "busybox:1.36", IndexerImage: "kubimo/indexer:latest"}
}

func newReconciler(t *testing.T, objs ...client.Object) (*Reconciler, *cluster.Client) {
	t.Helper()
	b := fake.NewClientBuilder().
		WithScheme(testScheme(t)).
		WithStatusSubresource(&kubimov1.Workspace{}).
		WithIndex(&kubimov1.Runner{}, kubimov1.RunnerFieldWorkspace, func(obj client.Object) []string {
			return []string{obj.(*kubimov1.Runner).Spec.Workspace}
		}).
		WithIndex(&kubimov1.Runner{}, kubimov1.RunnerFieldCommand, func(obj client.Object) []string {
			return []string{string(obj.(*kubimov1.Runner).Spec.Command)}
		}).
		WithObjects(objs...)
	cl := cluster.New(b.Build())
	return New(cl, testScheme(t), testConfig()), cl
}

func TestReconcilePVCSetsResourcesFromStorage(t *testing.T) {
	min := resource.MustParse("2Gi")
	ws := &kubimov1.Workspace{
		ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"},
		Spec:       kubimov1.WorkspaceSpec{Storage: kubimov1.StorageRequirement{Min: &min}},
	}
	r, cl := newReconciler(t, ws)

	require.NoError(t, r.reconcilePVC(context.Background(), ws))

	pvc := &corev1.PersistentVolumeClaim{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(ws), pvc))
	assert.Equal(t, []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce}, pvc.Spec.AccessModes)
	got := pvc.Spec.Resources.Requests[corev1.ResourceStorage]
	assert.Equal(t, "2Gi", got.String())
	assert.Len(t, pvc.OwnerReferences, 1)
	assert.True(t, *pvc.OwnerReferences[0].Controller)
}

func TestWantsIndexerPodFalseWithoutIndexerSpec(t *testing.T) {
	ws := &kubimov1.Workspace{ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"}}
	r, _ := newReconciler(t, ws)

	got, err := r.wantsIndexerPod(context.Background(), ws)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestWantsIndexerPodTrueWithActiveEditRunner(t *testing.T) {
	ws := &kubimov1.Workspace{
		ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"},
		Spec:       kubimov1.WorkspaceSpec{Indexer: &kubimov1.WorkspaceIndexer{Bucket: "b"}},
	}
	runner := &kubimov1.Runner{
		ObjectMeta: metav1.ObjectMeta{Name: "r1", Namespace: "default"},
		Spec:       kubimov1.RunnerSpec{Workspace: "w1", Command: kubimov1.RunnerCommandEdit},
	}
	r, _ := newReconciler(t, ws, runner)

	got, err := r.wantsIndexerPod(context.Background(), ws)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestWantsIndexerPodFalseWhenOnlyRunCommandRunner(t *testing.T) {
	ws := &kubimov1.Workspace{
		ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"},
		Spec:       kubimov1.WorkspaceSpec{Indexer: &kubimov1.WorkspaceIndexer{Bucket: "b"}},
	}
	runner := &kubimov1.Runner{
		ObjectMeta: metav1.ObjectMeta{Name: "r1", Namespace: "default"},
		Spec:       kubimov1.RunnerSpec{Workspace: "w1", Command: kubimov1.RunnerCommandRun},
	}
	r, _ := newReconciler(t, ws, runner)

	got, err := r.wantsIndexerPod(context.Background(), ws)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestJobReadyConditionComplete(t *testing.T) {
	now := metav1.Now()
	job := &batchv1.Job{Status: batchv1.JobStatus{Conditions: []batchv1.JobCondition{
		{Type: batchv1.JobComplete, Status: corev1.ConditionTrue, LastTransitionTime: now},
	}}}
	status, reason, _ := jobReadyCondition(true, job, now)
	assert.Equal(t, metav1.ConditionTrue, status)
	assert.Equal(t, kubimov1.ReasonJobComplete, reason)
}

func TestJobReadyConditionFailed(t *testing.T) {
	now := metav1.Now()
	job := &batchv1.Job{Status: batchv1.JobStatus{Conditions: []batchv1.JobCondition{
		{Type: batchv1.JobFailed, Status: corev1.ConditionTrue, LastTransitionTime: now},
	}}}
	status, reason, _ := jobReadyCondition(true, job, now)
	assert.Equal(t, metav1.ConditionFalse, status)
	assert.Equal(t, kubimov1.ReasonJobFailed, reason)
}

func TestJobReadyConditionNotCompleteWhenJobMissing(t *testing.T) {
	now := metav1.Now()
	status, reason, transition := jobReadyCondition(false, &batchv1.Job{}, now)
	assert.Equal(t, metav1.ConditionFalse, status)
	assert.Equal(t, kubimov1.ReasonJobNotComplete, reason)
	assert.Equal(t, now, transition)
}
