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

package ui_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/ui"
	"github.com/satelliteqe/robottelo/lib/ui/uitest"
)

var progress = locators.New(locators.XPath, "//a[contains(., '%s')]/../..//div[contains(@class, 'progress')]")

func newWaiter(drv *uitest.Driver) *ui.ProgressWaiter {
	w := ui.NewProgressWaiter(drv, progress.Format)
	w.Clock = drv.Clock
	return w
}

func Test_progress_waiter_checks_until_absent(t *testing.T) {
	drv := uitest.New()
	q := progress.Format("Version 1")
	drv.Presence(q, true, true, true, false)

	require.NoError(t, newWaiter(drv).Wait("Version 1"))
	assert.Equal(t, 4, drv.Checks(q))
}

func Test_progress_waiter_absent_from_start(t *testing.T) {
	drv := uitest.New()
	w := newWaiter(drv)
	start := drv.Clock.Now()

	require.NoError(t, w.Wait("Version 2"))
	assert.Equal(t, 1, drv.Checks(progress.Format("Version 2")))
	// Only the first window was spent
	assert.Equal(t, w.First.Timeout, drv.Clock.Now().Sub(start))
}

func Test_progress_waiter_timeout(t *testing.T) {
	drv := uitest.New()
	q := progress.Format("Version 3")
	drv.Presence(q, true)
	w := newWaiter(drv)
	w.Timeout = 10 * time.Second
	start := drv.Clock.Now()

	err := w.Wait("Version 3")
	require.ErrorIs(t, err, ui.ErrTimeout)
	assert.Contains(t, err.Error(), "Version 3")
	assert.Equal(t, w.Timeout, drv.Clock.Now().Sub(start))
	// First check plus one per poll interval
	assert.Equal(t, 1+int(w.Timeout/w.Next.Poll), drv.Checks(q))
}

func Test_progress_waiter_driver_failure(t *testing.T) {
	drv := uitest.New()
	drv.Fail(progress.Format("Version 1"), errors.New("page closed"))

	err := newWaiter(drv).Wait("Version 1")
	assert.ErrorIs(t, err, ui.ErrDriver)
}

func Test_progress_waiter_properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		present := rapid.IntRange(0, 40).Draw(rt, "present")
		timeout := time.Duration(rapid.IntRange(1, 120).Draw(rt, "timeout")) * time.Second
		poll := time.Duration(rapid.IntRange(100, 2000).Draw(rt, "poll")) * time.Millisecond

		drv := uitest.New()
		q := progress.Format("job")
		seq := make([]bool, present+1)
		for i := 0; i < present; i++ {
			seq[i] = true
		}
		drv.Presence(q, seq...)

		w := newWaiter(drv)
		w.Timeout = timeout
		w.Next.Poll = poll
		start := drv.Clock.Now()

		err := w.Wait("job")
		elapsed := drv.Clock.Now().Sub(start)

		// Never waits longer than the total timeout plus the window of the last check
		if elapsed > timeout+w.First.Timeout {
			rt.Fatalf("waited %s with timeout %s", elapsed, timeout)
		}
		expectTimeout := present > 0 && time.Duration(present-1)*poll >= timeout
		if !expectTimeout {
			if err != nil {
				rt.Fatalf("unexpected error: %v", err)
			}
			if drv.Checks(q) != present+1 {
				rt.Fatalf("expected %d checks, got %d", present+1, drv.Checks(q))
			}
			return
		}
		if !errors.Is(err, ui.ErrTimeout) {
			rt.Fatalf("expected timeout, got: %v", err)
		}
		if elapsed != timeout {
			rt.Fatalf("timed out after %s instead of %s", elapsed, timeout)
		}
	})
}
