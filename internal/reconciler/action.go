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

// Package reconciler is a small middleware harness wrapping a user-written
// apply/cleanup pair with a finalizer guard, a backoff policy and a trace
// span (§4.2), independent of controller-runtime's built-in retry behavior.
package reconciler

import (
	"time"

	ctrl "sigs.k8s.io/controller-runtime"
)

// Action is what apply/cleanup return: either "do nothing until the next
// watch event" or "poll again after a fixed delay".
type Action struct {
	requeue      bool
	requeueAfter time.Duration
}

// AwaitChange returns an Action that does nothing until the next watch
// event fires.
func AwaitChange() Action {
	return Action{}
}

// RequeueAfter returns an Action that schedules another reconcile after d.
func RequeueAfter(d time.Duration) Action {
	return Action{requeue: true, requeueAfter: d}
}

// Result converts the Action into the ctrl.Result controller-runtime's
// manager expects at the outer boundary.
func (a Action) Result() ctrl.Result {
	if !a.requeue {
		return ctrl.Result{}
	}
	return ctrl.Result{RequeueAfter: a.requeueAfter}
}
