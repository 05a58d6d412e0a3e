/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

package ui

import (
	"time"

	"github.com/satelliteqe/robottelo/lib/log"
)

// CheckWindow is the single presence check bounds
type CheckWindow struct {
	Timeout time.Duration
	Poll    time.Duration
}

// ProgressWaiter waits for the background job progress indicator to go away.
// The first check is longer since the indicator needs time to show up, the
// next ones are short and repeated until overall Timeout.
type ProgressWaiter struct {
	Driver    Driver
	Clock     Clock
	Indicator func(jobID string) Query

	Timeout time.Duration
	First   CheckWindow
	Next    CheckWindow
}

// NewProgressWaiter creates waiter with the default windows
func NewProgressWaiter(drv Driver, indicator func(jobID string) Query) *ProgressWaiter {
	return &ProgressWaiter{
		Driver:    drv,
		Clock:     RealClock,
		Indicator: indicator,
		Timeout:   600 * time.Second,
		First:     CheckWindow{Timeout: 6 * time.Second, Poll: 2 * time.Second},
		Next:      CheckWindow{Timeout: time.Second, Poll: 500 * time.Millisecond},
	}
}

// Wait blocks until the indicator of the job is absent. Returns KindTimeout
// error if the indicator is still here when Timeout is reached.
func (w *ProgressWaiter) Wait(jobID string) error {
	logger := log.WithFunc("ui", "ProgressWaiter.Wait").With("job", jobID)
	clock := w.Clock
	if clock == nil {
		clock = RealClock
	}
	q := w.Indicator(jobID)
	deadline := clock.Now().Add(w.Timeout)

	present, err := w.check(q, w.First)
	if err != nil {
		return err
	}
	checks := 1
	for present {
		now := clock.Now()
		if !now.Before(deadline) {
			logger.Warn("Job is still in progress", "checks", checks, "timeout", w.Timeout)
			return Timeoutf("Job %q is still in progress after %s", jobID, w.Timeout)
		}
		pause := w.Next.Poll
		if left := deadline.Sub(now); left < pause {
			pause = left
		}
		clock.Sleep(pause)

		if present, err = w.check(q, w.Next); err != nil {
			return err
		}
		checks++
	}
	logger.Debug("Job is completed", "checks", checks)
	return nil
}

func (w *ProgressWaiter) check(q Query, win CheckWindow) (bool, error) {
	el, err := w.Driver.WaitUntilPresent(q, win.Timeout, win.Poll)
	if err != nil {
		return false, DriverError(err, "Unable to check progress indicator %s", q)
	}
	return el != nil, nil
}
