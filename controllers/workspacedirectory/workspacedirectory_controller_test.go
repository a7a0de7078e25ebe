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

package workspacedirectory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
)

func testScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	sch := runtime.NewScheme()
	require.NoError(t, clientgoscheme.AddToScheme(sch))
	require.NoError(t, kubimov1.AddToScheme(sch))
	return sch
}

func TestApplySetsWorkspaceOwnerReference(t *testing.T) {
	sch := testScheme(t)
	ws := &kubimov1.Workspace{ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"}}
	wd := &kubimov1.WorkspaceDirectory{
		ObjectMeta: metav1.ObjectMeta{Name: "w1-root", Namespace: "default"},
		Spec:       kubimov1.WorkspaceDirectorySpec{Workspace: "w1", Path: "/"},
	}
	cl := cluster.New(fake.NewClientBuilder().WithScheme(sch).WithObjects(ws, wd).Build())
	r := New(cl, sch)

	_, err := r.Apply(context.Background(), wd)
	require.NoError(t, err)

	got := &kubimov1.WorkspaceDirectory{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(wd), got))
	require.Len(t, got.OwnerReferences, 1)
	assert.Equal(t, "w1", got.OwnerReferences[0].Name)
	assert.True(t, *got.OwnerReferences[0].Controller)
}

func TestApplyIsIdempotentOnceOwnerRefSet(t *testing.T) {
	sch := testScheme(t)
	ws := &kubimov1.Workspace{ObjectMeta: metav1.ObjectMeta{Name: "w1", Namespace: "default"}}
	wd := &kubimov1.WorkspaceDirectory{
		ObjectMeta: metav1.ObjectMeta{Name: "w1-root", Namespace: "default"},
		Spec:       kubimov1.WorkspaceDirectorySpec{Workspace: "w1", Path: "/"},
	}
	cl := cluster.New(fake.NewClientBuilder().WithScheme(sch).WithObjects(ws, wd).Build())
	r := New(cl, sch)

	_, err := r.Apply(context.Background(), wd)
	require.NoError(t, err)

	got := &kubimov1.WorkspaceDirectory{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(wd), got))

	_, err = r.Apply(context.Background(), got)
	require.NoError(t, err)
	require.Len(t, got.OwnerReferences, 1)
}
