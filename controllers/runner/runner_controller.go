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

// Package runner reconciles Runner resources into a Pod running the
// notebook server, a Service, and an Ingress (§4.4).
package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/config"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
	"github.com/aqora-io/kubimo/internal/reconciler"
)

// controllerName is the finalizer name (kubimo.aqora.io/controller, shared
// with every reconciler but runner-status). managerControllerName is this
// package's own controller-runtime registration name, kept distinct from
// runnerstatus's even though both watch *kubimov1.Runner.
const controllerName = "controller"
const managerControllerName = "runner"

// Reconciler drives a Runner's Pod, Service and Ingress toward the spec's
// desired state.
type Reconciler struct {
	client *cluster.Client
	scheme *runtime.Scheme
	cfg    *config.Config
}

// New builds a Runner Reconciler.
func New(cl *cluster.Client, scheme *runtime.Scheme, cfg *config.Config) *Reconciler {
	return &Reconciler{client: cl, scheme: scheme, cfg: cfg}
}

// Apply ensures the Runner's one-time workspace owner reference, then runs
// the Pod/Service/Ingress sub-steps concurrently.
func (r *Reconciler) Apply(ctx context.Context, rn *kubimov1.Runner) (reconciler.Action, error) {
	if err := r.ensureWorkspaceOwnerRef(ctx, rn); err != nil {
		return reconciler.Action{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.reconcilePod(gctx, rn) })
	g.Go(func() error { return r.reconcileService(gctx, rn) })
	g.Go(func() error { return r.reconcileIngress(gctx, rn) })
	if err := g.Wait(); err != nil {
		return reconciler.Action{}, err
	}
	return reconciler.AwaitChange(), nil
}

// Cleanup lets owner-reference garbage collection remove the Pod, Service
// and Ingress.
func (r *Reconciler) Cleanup(ctx context.Context, rn *kubimov1.Runner) (reconciler.Action, error) {
	return reconciler.AwaitChange(), nil
}

// ensureWorkspaceOwnerRef sets the Runner's controller owner reference to
// its Workspace exactly once (I2: the binding itself never changes, only
// the owner reference metadata needs to catch up after creation).
func (r *Reconciler) ensureWorkspaceOwnerRef(ctx context.Context, rn *kubimov1.Runner) error {
	if ref := metav1.GetControllerOf(rn); ref != nil && ref.Kind == "Workspace" && ref.Name == rn.Spec.Workspace {
		return nil
	}

	ws := &kubimov1.Workspace{}
	if err := r.client.Get(ctx, client.ObjectKey{Namespace: rn.Namespace, Name: rn.Spec.Workspace}, ws); err != nil {
		return err
	}
	if err := controllerutil.SetControllerReference(ws, rn, r.scheme); err != nil {
		return err
	}
	return r.client.Patch(ctx, rn)
}

func controllerSetRef(owner client.Object, child client.Object, scheme *runtime.Scheme) error {
	return controllerutil.SetControllerReference(owner, child, scheme)
}

// SetupWithManager registers the Runner controller.
func SetupWithManager(mgr ctrl.Manager, cl *cluster.Client, cfg *config.Config) error {
	r := New(cl, mgr.GetScheme(), cfg)
	h := reconciler.New(controllerName, cl, func() *kubimov1.Runner { return &kubimov1.Runner{} }, r)
	return ctrl.NewControllerManagedBy(mgr).
		Named(managerControllerName).
		For(&kubimov1.Runner{}).
		Complete(h)
}
