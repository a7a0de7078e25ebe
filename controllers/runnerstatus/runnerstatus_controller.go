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

// Package runnerstatus implements the lifecycle driver (§4.5): a polling
// reconciler that refreshes Runner.status.lastActive from the notebook
// server's connection count and deletes runners idle past their configured
// budget.
package runnerstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/config"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
	"github.com/aqora-io/kubimo/internal/reconciler"
)

const controllerName = "runner_status"

// HTTPDoer is the subset of *http.Client the poller depends on, so tests
// can substitute a stub transport without standing up a listener.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Reconciler polls each Runner's HTTP status endpoint on a fixed interval
// and drives lastActive / inactivity deletion.
type Reconciler struct {
	client *cluster.Client
	cfg    *config.Config
	http   HTTPDoer
}

// New builds a runner-status Reconciler. doer may be nil, in which case a
// plain http.Client with a short timeout is used.
func New(cl *cluster.Client, cfg *config.Config, doer HTTPDoer) *Reconciler {
	if doer == nil {
		doer = &http.Client{Timeout: 5 * time.Second}
	}
	return &Reconciler{client: cl, cfg: cfg, http: doer}
}

// connectionsResponse is the body GET {endpoint}/status/connections
// returns.
type connectionsResponse struct {
	Active int `json:"active"`
}

// Apply implements §4.5's six-step polling state machine.
func (r *Reconciler) Apply(ctx context.Context, rn *kubimov1.Runner) (reconciler.Action, error) {
	interval := r.cfg.RunnerStatus.Interval
	log := ctrllog.FromContext(ctx)

	if rn.Status.LastActive != nil && time.Since(rn.Status.LastActive.Time) < interval {
		return reconciler.RequeueAfter(interval), nil
	}

	endpoint := r.endpoint(rn)
	active, err := r.pollActive(ctx, endpoint)
	if err != nil {
		log.Info("runner status poll failed, treating as warning", "runner", rn.Name, "error", err.Error())
		return reconciler.RequeueAfter(interval), nil
	}

	if active > 0 {
		if err := r.patchLastActive(ctx, rn, metav1.Now()); err != nil {
			return reconciler.Action{}, err
		}
		return reconciler.RequeueAfter(interval), nil
	}

	if rn.Spec.Lifecycle != nil && rn.Spec.Lifecycle.DeleteAfterSecsInactive != nil {
		reference := referenceTime(rn)
		budget := time.Duration(*rn.Spec.Lifecycle.DeleteAfterSecsInactive) * time.Second
		if reference.Add(budget).Before(time.Now()) {
			log.Info("deleting inactive runner", "runner", rn.Name)
			if _, err := r.client.Delete(ctx, rn); err != nil {
				return reconciler.Action{}, err
			}
			return reconciler.AwaitChange(), nil
		}
	}

	return reconciler.RequeueAfter(interval), nil
}

// Cleanup has nothing to do: the runner is gone either way once deletion
// completes.
func (r *Reconciler) Cleanup(ctx context.Context, rn *kubimov1.Runner) (reconciler.Action, error) {
	return reconciler.AwaitChange(), nil
}

func referenceTime(rn *kubimov1.Runner) time.Time {
	if rn.Status.LastActive != nil {
		return rn.Status.LastActive.Time
	}
	return rn.CreationTimestamp.Time
}

func (r *Reconciler) patchLastActive(ctx context.Context, rn *kubimov1.Runner, now metav1.Time) error {
	rn.Status.LastActive = &now
	return r.client.PatchStatus(ctx, rn)
}

// endpoint resolves the runner's base polling URL by the configured
// resolution method, then appends the command-specific API prefix.
func (r *Reconciler) endpoint(rn *kubimov1.Runner) string {
	var base string
	switch r.cfg.RunnerStatus.Method {
	case config.RunnerStatusIngress:
		base = fmt.Sprintf("%s/%s/", r.cfg.RunnerStatus.Host, rn.Name)
	default:
		base = fmt.Sprintf("http://%s.%s.svc.cluster.local/%s/", rn.Name, rn.Namespace, rn.Name)
	}
	if rn.Spec.Command == kubimov1.RunnerCommandRun {
		return base + "_api"
	}
	return base + "api"
}

func (r *Reconciler) pollActive(ctx context.Context, endpoint string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/status/connections", nil)
	if err != nil {
		return 0, err
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("runner status endpoint returned %d", resp.StatusCode)
	}
	var body connectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Active, nil
}

// SetupWithManager registers the runner-status controller under its own
// finalizer namespace (kubimo.aqora.io/runner_status).
func SetupWithManager(mgr ctrl.Manager, cl *cluster.Client, cfg *config.Config) error {
	r := New(cl, cfg, nil)
	h := reconciler.New(controllerName, cl, func() *kubimov1.Runner { return &kubimov1.Runner{} }, r)
	return ctrl.NewControllerManagedBy(mgr).
		Named(controllerName).
		For(&kubimov1.Runner{}).
		Complete(h)
}
