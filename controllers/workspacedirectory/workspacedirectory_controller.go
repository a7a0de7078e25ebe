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

// Package workspacedirectory reconciles WorkspaceDirectory resources into a
// single one-time controller-owner reference back to their Workspace; the
// indexer that creates these resources already fills in their spec, so the
// reconciler's only job is the ownership chain (§2, I1).
package workspacedirectory

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
	"github.com/aqora-io/kubimo/internal/reconciler"
)

// controllerName is the finalizer name (kubimo.aqora.io/controller, shared
// with every reconciler but runner-status). managerControllerName is this
// package's own controller-runtime registration name.
const controllerName = "controller"
const managerControllerName = "workspacedirectory"

// Reconciler maintains a WorkspaceDirectory's controller owner reference to
// its Workspace.
type Reconciler struct {
	client *cluster.Client
	scheme *runtime.Scheme
}

// New builds a WorkspaceDirectory Reconciler.
func New(cl *cluster.Client, scheme *runtime.Scheme) *Reconciler {
	return &Reconciler{client: cl, scheme: scheme}
}

// Apply sets the owner reference exactly once.
func (r *Reconciler) Apply(ctx context.Context, wd *kubimov1.WorkspaceDirectory) (reconciler.Action, error) {
	if ref := metav1.GetControllerOf(wd); ref != nil && ref.Kind == "Workspace" && ref.Name == wd.Spec.Workspace {
		return reconciler.AwaitChange(), nil
	}

	ws := &kubimov1.Workspace{}
	if err := r.client.Get(ctx, client.ObjectKey{Namespace: wd.Namespace, Name: wd.Spec.Workspace}, ws); err != nil {
		return reconciler.Action{}, err
	}
	if err := controllerutil.SetControllerReference(ws, wd, r.scheme); err != nil {
		return reconciler.Action{}, err
	}
	if err := r.client.Patch(ctx, wd); err != nil {
		return reconciler.Action{}, err
	}
	return reconciler.AwaitChange(), nil
}

// Cleanup has nothing to do beyond letting the finalizer come off.
func (r *Reconciler) Cleanup(ctx context.Context, wd *kubimov1.WorkspaceDirectory) (reconciler.Action, error) {
	return reconciler.AwaitChange(), nil
}

// SetupWithManager registers the WorkspaceDirectory controller.
func SetupWithManager(mgr ctrl.Manager, cl *cluster.Client) error {
	r := New(cl, mgr.GetScheme())
	h := reconciler.New(controllerName, cl, func() *kubimov1.WorkspaceDirectory { return &kubimov1.WorkspaceDirectory{} }, r)
	return ctrl.NewControllerManagedBy(mgr).
		Named(managerControllerName).
		For(&kubimov1.WorkspaceDirectory{}).
		Complete(h)
}
