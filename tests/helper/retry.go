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

package helper

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// Failer is an interface compatible with testing.T
type Failer interface {
	Helper()
	Log(args ...any)
	FailNow()
}

// R is passed to the retried function instead of testing.T
type R struct {
	fail   bool
	output []string
}

// Helper shows this struct as helper
func (*R) Helper() {}

var runFailed = struct{}{}

// FailNow stops the current attempt
func (r *R) FailNow() {
	r.fail = true
	panic(runFailed)
}

// Fatalf logs and stops the current attempt
func (r *R) Fatalf(format string, args ...any) {
	r.log(fmt.Sprintf(format, args...))
	r.FailNow()
}

// Errorf logs and marks the attempt as failed
func (r *R) Errorf(format string, args ...any) {
	r.log(fmt.Sprintf(format, args...))
	r.fail = true
}

// Check stops the attempt if err is not nil
func (r *R) Check(err error) {
	if err != nil {
		r.log(err.Error())
		r.FailNow()
	}
}

func (r *R) log(s string) {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = file[strings.LastIndex(file, "/")+1:]
	} else {
		file, line = "???", 1
	}
	r.output = append(r.output, fmt.Sprintf("%s:%d: %s", file, line, s))
}

// Retry runs f until it passes or the retryer gives up, then the last
// attempt output is logged and the test fails
func Retry(r Retryer, t Failer, f func(r *R)) {
	t.Helper()
	var rr *R
	for r.Continue() {
		rr = &R{}
		func() {
			defer func() {
				if p := recover(); p != nil && p != runFailed {
					panic(p)
				}
			}()
			f(rr)
		}()
		if !rr.fail {
			return
		}
	}
	if rr != nil && len(rr.output) > 0 {
		t.Log(strings.Join(rr.output, "\n"))
	}
	t.FailNow()
}

// Retryer decides if the operation should be repeated
type Retryer interface {
	Continue() bool
}

// Counter repeats the operation Count times with Wait in between
type Counter struct {
	Count int
	Wait  time.Duration

	done int
}

func (r *Counter) Continue() bool {
	if r.done >= r.Count {
		return false
	}
	if r.done > 0 {
		time.Sleep(r.Wait)
	}
	r.done++
	return true
}

// Timer repeats the operation during Timeout with Wait in between
type Timer struct {
	Timeout time.Duration
	Wait    time.Duration

	stop time.Time // Set on the first call
}

func (r *Timer) Continue() bool {
	if r.stop.IsZero() {
		r.stop = time.Now().Add(r.Timeout)
		return true
	}
	if time.Now().After(r.stop) {
		return false
	}
	time.Sleep(r.Wait)
	return true
}

// MockT captures the failure of the checked function
type MockT struct {
	testing.T

	FailNowCalled bool

	t *testing.T
}

func (m *MockT) FailNow() {
	m.FailNowCalled = true
	runtime.Goexit()
}

func (m *MockT) Log(args ...any) {
	m.t.Log(args...)
}

func (m *MockT) Logf(format string, args ...any) {
	m.t.Logf(format, args...)
}

func (m *MockT) Fatalf(format string, args ...any) {
	m.t.Logf(format, args...)
	m.FailNow()
}

// ExpectFailure fails the test if f completes without calling FailNow
func ExpectFailure(t *testing.T, f func(tt testing.TB)) {
	t.Helper()
	var wg sync.WaitGroup
	mockT := &MockT{t: t}

	wg.Add(1)
	go func() {
		defer wg.Done()
		f(mockT)
	}()
	wg.Wait()

	if !mockT.FailNowCalled {
		t.Fatalf("ExpectFailure: the function did not fail as expected")
	}
}
