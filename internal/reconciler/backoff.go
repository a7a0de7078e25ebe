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
	"fmt"
	"sync"
	"time"
)

// Backoff is an exponential backoff policy shared across every reconcile of
// one controller: a failing reconcile advances it, a succeeding one resets
// it. This mirrors the single Arc<Mutex<B>> the policy is wrapped in
// upstream — the backoff state belongs to the controller, not to any one
// object.
type Backoff struct {
	mu      sync.Mutex
	Initial time.Duration
	Max     time.Duration
	Factor  float64
	current time.Duration
}

// NewBackoff builds a Backoff with the operator's default policy: a 5s
// initial wait, doubling up to a 5m ceiling.
func NewBackoff() *Backoff {
	return &Backoff{Initial: 5 * time.Second, Max: 5 * time.Minute, Factor: 2}
}

// Next advances the policy and returns the wait duration to use.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current <= 0 {
		b.current = b.Initial
	} else {
		b.current = time.Duration(float64(b.current) * b.Factor)
		if b.current > b.Max {
			b.current = b.Max
		}
	}
	return b.current
}

// Reset returns the policy to its initial state, called after any
// successful reconcile.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = 0
}

// Error wraps a reconcile failure together with the next-wait duration the
// backoff policy assigned it. A nil Backoff means "await next change"
// rather than a time-based requeue.
type Error struct {
	Err     error
	Backoff *time.Duration
}

func (e *Error) Error() string {
	if e.Backoff != nil {
		return fmt.Sprintf("%s (next wait: %s)", e.Err, *e.Backoff)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// action converts the error policy into the Action a caller without its own
// error handling (e.g. the top-level harness) should report: a requeue at
// the assigned backoff, or an await-change if none was assigned.
func (e *Error) action() Action {
	if e.Backoff != nil {
		return RequeueAfter(*e.Backoff)
	}
	return AwaitChange()
}
