// Copyright 2025 Lumenkit
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package engine

import (
	"context"
	"time"
)

// Policy bounds a fixed-interval retry loop by a total wall-clock budget. The
// submission and confirmation loops use the same mechanism with different
// constants, so their timeout behaviors stay symmetric.
type Policy struct {
	Interval time.Duration
	Budget   time.Duration
}

// Attempts returns the maximum number of attempts the policy permits: one
// initial attempt plus one retry per full interval within the budget.
func (p Policy) Attempts() int {
	return int(p.Budget/p.Interval) + 1
}

// repeat runs the given step at the fixed interval of the policy until the
// step reports it is done or fails, or until the budget no longer leaves room
// for another interval. It returns false with a nil error when the budget ran
// out, which the caller maps to its stage-specific timeout error.
func (e *Engine) repeat(ctx context.Context, policy Policy, step func(context.Context) (bool, error)) (bool, error) {

	deadline := e.now().Add(policy.Budget)
	for {
		done, err := step(ctx)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if e.now().Add(policy.Interval).After(deadline) {
			return false, nil
		}
		err = e.sleep(ctx, policy.Interval)
		if err != nil {
			return false, err
		}
	}
}
