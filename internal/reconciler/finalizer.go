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

package reconciler

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	"github.com/aqora-io/kubimo/internal/pkg/cluster"
)

// FinalizerName returns the namespaced, per-controller finalizer name §4.2
// requires, e.g. FinalizerName("runner_status") == "kubimo.aqora.io/runner_status".
func FinalizerName(controller string) string {
	return fmt.Sprintf("kubimo.aqora.io/%s", controller)
}

// Object is the constraint every resource the harness reconciles must
// satisfy: a controller-runtime client.Object.
type Object = client.Object

// Reconciler is the user-written logic the harness wraps.
type Reconciler[T Object] interface {
	Apply(ctx context.Context, obj T) (Action, error)
	Cleanup(ctx context.Context, obj T) (Action, error)
}

// finalizerGuard implements the state machine of §4.2 step 1: add the
// finalizer before the first apply; on seeing a deletion timestamp, run
// cleanup and only then remove it.
type finalizerGuard[T Object] struct {
	name   string
	client *cluster.Client
	inner  Reconciler[T]
}

func (f finalizerGuard[T]) reconcile(ctx context.Context, obj T) (Action, error) {
	if !obj.GetDeletionTimestamp().IsZero() {
		if !controllerutil.ContainsFinalizer(obj, f.name) {
			return AwaitChange(), nil
		}
		action, err := f.inner.Cleanup(ctx, obj)
		if err != nil {
			return action, err
		}
		controllerutil.RemoveFinalizer(obj, f.name)
		if err := f.client.Patch(ctx, obj); err != nil {
			return Action{}, fmt.Errorf("remove finalizer: %w", err)
		}
		return action, nil
	}

	if !controllerutil.ContainsFinalizer(obj, f.name) {
		controllerutil.AddFinalizer(obj, f.name)
		if err := f.client.Patch(ctx, obj); err != nil {
			return Action{}, fmt.Errorf("add finalizer: %w", err)
		}
		return AwaitChange(), nil
	}

	return f.inner.Apply(ctx, obj)
}
