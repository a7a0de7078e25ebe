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

// Package workspace reconciles Workspace resources into a PVC, an init Job,
// indexer RBAC and, conditionally, a long-lived indexer pod (§4.3).
package workspace

import (
	"context"

	"golang.org/x/sync/errgroup"
	batchv1 "k8s.io/api/batch/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/config"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
	"github.com/aqora-io/kubimo/internal/pkg/selector"
	"github.com/aqora-io/kubimo/internal/reconciler"
)

// controllerName is the finalizer/harness name this reconciler registers
// under (kubimo.aqora.io/controller, §6). The generic "controller" finalizer
// name is shared by every reconciler except runner-status (§6's only other
// finalizer), so the controller-runtime registration below uses its own,
// per-package name to stay unique within the manager.
const controllerName = "controller"
const managerControllerName = "workspace"

// Reconciler drives a Workspace's PVC, init Job, indexer RBAC and indexer
// pod toward the spec's desired state.
type Reconciler struct {
	client *cluster.Client
	scheme *runtime.Scheme
	cfg    *config.Config
}

// New builds a Workspace Reconciler.
func New(cl *cluster.Client, scheme *runtime.Scheme, cfg *config.Config) *Reconciler {
	return &Reconciler{client: cl, scheme: scheme, cfg: cfg}
}

// Apply runs the PVC, init Job, indexer RBAC and indexer pod sub-steps
// concurrently, failing the reconcile if any fails, then projects the init
// Job's status into the Ready condition.
func (r *Reconciler) Apply(ctx context.Context, ws *kubimov1.Workspace) (reconciler.Action, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.reconcilePVC(gctx, ws) })
	g.Go(func() error { return r.reconcileInitJob(gctx, ws) })
	g.Go(func() error { return r.reconcileIndexerRBAC(gctx, ws) })
	g.Go(func() error { return r.reconcileIndexerPod(gctx, ws) })
	if err := g.Wait(); err != nil {
		return reconciler.Action{}, err
	}

	if err := r.reconcileStatus(ctx, ws); err != nil {
		return reconciler.Action{}, err
	}
	return reconciler.AwaitChange(), nil
}

// Cleanup lets owner-reference garbage collection remove every child; the
// reconciler only needs to let its finalizer be removed (§4.3 terminal
// behavior).
func (r *Reconciler) Cleanup(ctx context.Context, ws *kubimov1.Workspace) (reconciler.Action, error) {
	return reconciler.AwaitChange(), nil
}

// SetupWithManager registers the Workspace controller, the field indexes
// the Runner lookup in reconcileIndexerPod depends on, and watches over the
// child kinds that feed the Ready condition.
func SetupWithManager(mgr ctrl.Manager, cl *cluster.Client, cfg *config.Config) error {
	if err := mgr.GetFieldIndexer().IndexField(context.Background(), &kubimov1.Runner{}, kubimov1.RunnerFieldWorkspace, func(obj client.Object) []string {
		return []string{obj.(*kubimov1.Runner).Spec.Workspace}
	}); err != nil {
		return err
	}
	if err := mgr.GetFieldIndexer().IndexField(context.Background(), &kubimov1.Runner{}, kubimov1.RunnerFieldCommand, func(obj client.Object) []string {
		return []string{string(obj.(*kubimov1.Runner).Spec.Command)}
	}); err != nil {
		return err
	}

	r := New(cl, mgr.GetScheme(), cfg)
	h := reconciler.New(controllerName, cl, func() *kubimov1.Workspace { return &kubimov1.Workspace{} }, r)
	return ctrl.NewControllerManagedBy(mgr).
		Named(managerControllerName).
		For(&kubimov1.Workspace{}).
		Owns(&batchv1.Job{}).
		Owns(&kubimov1.WorkspaceDirectory{}).
		Complete(h)
}

func setControllerRef(owner client.Object, child client.Object, scheme *runtime.Scheme) error {
	return controllerutil.SetControllerReference(owner, child, scheme)
}

// runnerSelector narrows a Runner list to Edit runners bound to
// workspaceName, rendering the typed field-selector grammar internal/pkg/selector
// builds (§4.1) through the field indexer registered in SetupWithManager.
func runnerSelector(workspaceName string) (fields.Selector, error) {
	sel := selector.New(
		selector.Eq(kubimov1.RunnerFieldWorkspace, workspaceName),
		selector.Eq(kubimov1.RunnerFieldCommand, string(kubimov1.RunnerCommandEdit)),
	)
	return fields.ParseSelector(sel.String())
}
