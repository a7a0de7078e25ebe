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

package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
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
	cfg := &config.Config{MarimoImage: "kubimo/marimo:latest", IngressClassName: "nginx"}
	return New(cl, testScheme(t), cfg), cl
}

func TestReconcilePodLabelsAndProbes(t *testing.T) {
	rn := &kubimov1.Runner{
		ObjectMeta: metav1.ObjectMeta{Name: "r1", Namespace: "default"},
		Spec:       kubimov1.RunnerSpec{Workspace: "w1", Command: kubimov1.RunnerCommandEdit},
	}
	r, cl := newReconciler(t, rn)

	require.NoError(t, r.reconcilePod(context.Background(), rn))

	pod := &corev1.Pod{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(rn), pod))
	assert.Equal(t, map[string]string{"kubimo.aqora.io/name": "r1"}, pod.Labels)
	assert.Equal(t, "/r1/health", pod.Spec.Containers[0].StartupProbe.HTTPGet.Path)
	assert.Equal(t, int32(90), pod.Spec.Containers[0].StartupProbe.FailureThreshold)
}

func TestReconcilePodRunCommandUsesUnderscoreHealth(t *testing.T) {
	rn := &kubimov1.Runner{
		ObjectMeta: metav1.ObjectMeta{Name: "r1", Namespace: "default"},
		Spec:       kubimov1.RunnerSpec{Workspace: "w1", Command: kubimov1.RunnerCommandRun},
	}
	r, cl := newReconciler(t, rn)

	require.NoError(t, r.reconcilePod(context.Background(), rn))

	pod := &corev1.Pod{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(rn), pod))
	assert.Equal(t, "/r1/_health", pod.Spec.Containers[0].LivenessProbe.HTTPGet.Path)
}

func TestReconcileIngressWeirdNameEncodesPath(t *testing.T) {
	rn := &kubimov1.Runner{
		ObjectMeta: metav1.ObjectMeta{Name: "weird name", Namespace: "default"},
		Spec:       kubimov1.RunnerSpec{Workspace: "w1", Command: kubimov1.RunnerCommandEdit},
	}
	r, cl := newReconciler(t, rn)

	require.NoError(t, r.reconcileIngress(context.Background(), rn))

	ing := &networkingv1.Ingress{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(rn), ing))
	assert.Equal(t, "/weird%20name", ing.Spec.Rules[0].HTTP.Paths[0].Path)
}

func TestReconcileIngressWithTLSAddsClusterIssuerAnnotation(t *testing.T) {
	rn := &kubimov1.Runner{
		ObjectMeta: metav1.ObjectMeta{Name: "r1", Namespace: "default"},
		Spec: kubimov1.RunnerSpec{
			Workspace: "w1",
			Command:   kubimov1.RunnerCommandEdit,
			Ingress: &kubimov1.RunnerIngress{
				TLS: &kubimov1.IngressTLS{Hosts: []string{"r1.example.com"}, ClusterIssuer: "letsencrypt"},
			},
		},
	}
	r, cl := newReconciler(t, rn)

	require.NoError(t, r.reconcileIngress(context.Background(), rn))

	ing := &networkingv1.Ingress{}
	require.NoError(t, cl.Get(context.Background(), client.ObjectKeyFromObject(rn), ing))
	assert.Equal(t, "letsencrypt", ing.Annotations["cert-manager.io/cluster-issuer"])
	assert.Equal(t, "r1-tls", ing.Spec.TLS[0].SecretName)
	assert.Equal(t, "r1.example.com", ing.Spec.Rules[0].Host)
}
