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

// Package cachejob reconciles CacheJob resources into a one-time workspace
// owner reference and a one-shot warm-cache Job, optionally co-scheduling
// the workspace's indexer (§4.6).
package cachejob

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
// package's own controller-runtime registration name.
const controllerName = "controller"
const managerControllerName = "cachejob"

// Reconciler drives a CacheJob's workspace owner reference and its one-shot
// Job toward the spec's desired state.
type Reconciler struct {
	client *cluster.Client
	scheme *runtime.Scheme
	cfg    *config.Config
}

// New builds a CacheJob Reconciler.
func New(cl *cluster.Client, scheme *runtime.Scheme, cfg *config.Config) *Reconciler {
	return &Reconciler{client: cl, scheme: scheme, cfg: cfg}
}

// Apply ensures, concurrently, the CacheJob's owner reference to its
// Workspace and the warm-cache Job itself.
func (r *Reconciler) Apply(ctx context.Context, cj *kubimov1.CacheJob) (reconciler.Action, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.ensureWorkspaceOwnerRef(gctx, cj) })
	g.Go(func() error { return r.reconcileJob(gctx, cj) })
	if err := g.Wait(); err != nil {
		return reconciler.Action{}, err
	}
	return reconciler.AwaitChange(), nil
}

// Cleanup lets owner-reference garbage collection remove the Job.
func (r *Reconciler) Cleanup(ctx context.Context, cj *kubimov1.CacheJob) (reconciler.Action, error) {
	return reconciler.AwaitChange(), nil
}

// ensureWorkspaceOwnerRef sets the CacheJob's controller owner reference to
// its Workspace exactly once, the same one-time pattern used by the Runner
// reconciler for its own Workspace binding.
func (r *Reconciler) ensureWorkspaceOwnerRef(ctx context.Context, cj *kubimov1.CacheJob) error {
	if ref := metav1.GetControllerOf(cj); ref != nil && ref.Kind == "Workspace" && ref.Name == cj.Spec.Workspace {
		return nil
	}

	ws := &kubimov1.Workspace{}
	if err := r.client.Get(ctx, client.ObjectKey{Namespace: cj.Namespace, Name: cj.Spec.Workspace}, ws); err != nil {
		return err
	}
	if err := controllerutil.SetControllerReference(ws, cj, r.scheme); err != nil {
		return err
	}
	return r.client.Patch(ctx, cj)
}

func controllerSetRef(owner client.Object, child client.Object, scheme *runtime.Scheme) error {
	return controllerutil.SetControllerReference(owner, child, scheme)
}

// SetupWithManager registers the CacheJob controller.
func SetupWithManager(mgr ctrl.Manager, cl *cluster.Client, cfg *config.Config) error {
	r := New(cl, mgr.GetScheme(), cfg)
	h := reconciler.New(controllerName, cl, func() *kubimov1.CacheJob { return &kubimov1.CacheJob{} }, r)
	return ctrl.NewControllerManagedBy(mgr).
		Named(managerControllerName).
		For(&kubimov1.CacheJob{}).
		Complete(h)
}
