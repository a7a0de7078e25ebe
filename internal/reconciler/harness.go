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
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/aqora-io/kubimo/internal/metrics"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
)

// Harness composes the finalizer guard, the backoff policy and the trace
// span around a user Reconciler, and exposes a controller-runtime
// reconcile.Reconciler at the boundary (§4.2).
type Harness[T Object] struct {
	name      string
	client    *cluster.Client
	backoff   *Backoff
	newObject func() T
	inner     Reconciler[T]
}

// New builds a Harness. newObject must return a freshly zeroed T on every
// call, since each reconcile needs its own object to decode into.
func New[T Object](name string, cl *cluster.Client, newObject func() T, inner Reconciler[T]) *Harness[T] {
	return &Harness[T]{
		name:      name,
		client:    cl,
		backoff:   NewBackoff(),
		newObject: newObject,
		inner:     inner,
	}
}

// Reconcile implements reconcile.Reconciler. It fetches the object, runs it
// through the finalizer/trace/backoff pipeline and translates the result
// back into a ctrl.Result.
func (h *Harness[T]) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	obj := h.newObject()
	if err := h.client.Get(ctx, req.NamespacedName, obj); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	guard := finalizerGuard[T]{name: FinalizerName(h.name), client: h.client, inner: h.inner}
	run := traced[T](h.name, guard.reconcile)

	start := time.Now()
	action, err := run(ctx, obj)
	metrics.ReconcileLatency.Observe(h.name, time.Since(start))
	metrics.ReconcileResults.Increment(h.name, err)

	if err != nil {
		wait := h.backoff.Next()
		berr := &Error{Err: err, Backoff: &wait}
		return berr.action().Result(), berr
	}

	h.backoff.Reset()
	return action.Result(), nil
}
