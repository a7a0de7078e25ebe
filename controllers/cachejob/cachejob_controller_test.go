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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
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

func newReconciler(t *testing.T, objs ...client.Object) (*Reconciler, *cluster.Client) {
	t.Helper()
	b := fake.NewClientBuilder().WithScheme(testScheme(t)).WithObjects(objs...)
	cl := cluster.New(b.Build())
	cfg := &config.Config{MarimoImage: "kubimo/marimo:latest", IndexerImage: "kubimo/indexer:latest"}
	return New(cl, testScheme(t), cfg), cl
}

func TestReconcileJobSingleCacheContainerWithoutIndexer(t *testing.T) {
	ws := &kubimov1.Workspace{ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"}}
	cj := &kubimov1.CacheJob{
		ObjectMeta: metav1.ObjectMeta{Name: "c1", Namespace: "default"},
		Spec:       kubimov1.CacheJobSpec{Workspace: "w1"},
	}
	r, cl := newReconciler(t, ws, cj)

	require.NoError(t, r.reconcileJob(context.Background(), cj))

	job := &batchv1.Job{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(cj), job))
	assert.Empty(t, job.Spec.Template.Spec.InitContainers)
	assert.Len(t, job.Spec.Template.Spec.Containers, 1)
	assert.Equal(t, "cache", job.Spec.Template.Spec.Containers[0].Name)
}

func TestReconcileJobCoSchedulesIndexerWhenPodNotRunning(t *testing.T) {
	ws := &kubimov1.Workspace{
		ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"},
		Spec:       kubimov1.WorkspaceSpec{Indexer: &kubimov1.WorkspaceIndexer{Bucket: "b"}},
	}
	cj := &kubimov1.CacheJob{
		ObjectMeta: metav1.ObjectMeta{Name: "c1", Namespace: "default"},
		Spec:       kubimov1.CacheJobSpec{Workspace: "w1"},
	}
	r, cl := newReconciler(t, ws, cj)

	require.NoError(t, r.reconcileJob(context.Background(), cj))

	job := &batchv1.Job{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(cj), job))
	require.Len(t, job.Spec.Template.Spec.InitContainers, 1)
	assert.Equal(t, "cache", job.Spec.Template.Spec.InitContainers[0].Name)
	require.Len(t, job.Spec.Template.Spec.Containers, 1)
	assert.Equal(t, "indexer", job.Spec.Template.Spec.Containers[0].Name)
}

func TestReconcileJobSkipsIndexerWhenPodRunning(t *testing.T) {
	ws := &kubimov1.Workspace{
		ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"},
		Spec:       kubimov1.WorkspaceSpec{Indexer: &kubimov1.WorkspaceIndexer{Bucket: "b"}},
	}
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "w1-indexer", Namespace: "default"},
		Status:     corev1.PodStatus{Phase: corev1.PodRunning},
	}
	cj := &kubimov1.CacheJob{
		ObjectMeta: metav1.ObjectMeta{Name: "c1", Namespace: "default"},
		Spec:       kubimov1.CacheJobSpec{Workspace: "w1"},
	}
	r, cl := newReconciler(t, ws, pod, cj)

	require.NoError(t, r.reconcileJob(context.Background(), cj))

	job := &batchv1.Job{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(cj), job))
	assert.Empty(t, job.Spec.Template.Spec.InitContainers)
	assert.Len(t, job.Spec.Template.Spec.Containers, 1)
	assert.Equal(t, "cache", job.Spec.Template.Spec.Containers[0].Name)
}

func TestEnsureWorkspaceOwnerRefPatchesOnce(t *testing.T) {
	ws := &kubimov1.Workspace{ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"}}
	cj := &kubimov1.CacheJob{
		ObjectMeta: metav1.ObjectMeta{Name: "c1", Namespace: "default"},
		Spec:       kubimov1.CacheJobSpec{Workspace: "w1"},
	}
	r, cl := newReconciler(t, ws, cj)

	require.NoError(t, r.ensureWorkspaceOwnerRef(context.Background(), cj))

	got := &kubimov1.CacheJob{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(cj), got))
	require.Len(t, got.OwnerReferences, 1)
	assert.Equal(t, "w1", got.OwnerReferences[0].Name)
}
