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

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"
)

var tracer = otel.Tracer("kubimo.aqora.io/reconciler")

// traced wraps a reconcile function in a span identifying kind, namespace
// and name, per §4.2 step 2, and logs the outcome at the end.
func traced[T Object](kind string, next func(ctx context.Context, obj T) (Action, error)) func(context.Context, T) (Action, error) {
	return func(ctx context.Context, obj T) (Action, error) {
		ctx, span := tracer.Start(ctx, "reconcile",
			trace.WithAttributes(
				attribute.String("kubimo.kind", kind),
				attribute.String("kubimo.namespace", obj.GetNamespace()),
				attribute.String("kubimo.name", obj.GetName()),
			),
		)
		defer span.End()

		log := ctrllog.FromContext(ctx).WithValues("kind", kind, "namespace", obj.GetNamespace(), "name", obj.GetName())

		action, err := next(ctx, obj)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error(err, "reconcile failed")
			return action, err
		}

		span.SetStatus(codes.Ok, "")
		logAction(log, action)
		return action, nil
	}
}

func logAction(log logr.Logger, action Action) {
	if action.requeue {
		log.V(1).Info("reconciled", "requeueAfter", action.requeueAfter)
		return
	}
	log.V(1).Info("reconciled", "action", "await_change")
}
