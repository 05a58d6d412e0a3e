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

// Package helper allows to run playwright WebUI tests against the Satellite server
package helper

import (
	"os"
	"path"
	"path/filepath"
	"testing"
	"time"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/ui/contentviews"
	"github.com/satelliteqe/robottelo/lib/ui/pwdriver"
)

// SatPlaywright keeps the browser session of the particular test
type SatPlaywright struct {
	Session  *pwdriver.Session
	Registry *locators.Registry

	captureDir string
	timeout    time.Duration
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// NewPlaywright starts the browser for SATELLITE_URL and logs in with
// SATELLITE_USER and SATELLITE_PASSWORD, the test is skipped without url
func NewPlaywright(tb testing.TB) *SatPlaywright {
	tb.Helper()
	url := os.Getenv("SATELLITE_URL")
	if url == "" {
		tb.Skip("SATELLITE_URL is not set")
	}

	sp := &SatPlaywright{captureDir: filepath.Join(tb.TempDir(), "playwright")}
	if dir := os.Getenv("CAPTURE_DIR"); dir != "" {
		sp.captureDir = filepath.Join(dir, path.Base(tb.Name()))
	}

	var err error
	if sp.Registry, err = locators.Default(); err != nil {
		tb.Fatalf("ERROR: Could not load locators: %v", err)
	}

	// By default tests are running headless, but there could be a need to run them with UI
	opts := pwdriver.OptionsFromEnv(url)
	opts.CaptureDir = sp.captureDir
	sp.timeout = opts.Timeout
	if sp.Session, err = pwdriver.Launch(opts); err != nil {
		tb.Fatalf("ERROR: Could not launch browser: %v", err)
	}
	tb.Cleanup(func() {
		if err := sp.Session.Close(); err != nil {
			tb.Errorf("ERROR: %v", err)
		}
		sp.Cleanup(tb)
	})

	if err = sp.Session.Login(sp.Registry, envOr("SATELLITE_USER", "admin"), envOr("SATELLITE_PASSWORD", "changeme")); err != nil {
		sp.Session.Screenshot("login-failed")
		tb.Fatalf("ERROR: Could not login: %v", err)
	}
	return sp
}

// ContentViews returns the content views page of the session
func (sp *SatPlaywright) ContentViews(tb testing.TB) *contentviews.ContentViews {
	tb.Helper()
	cv, err := contentviews.New(sp.Session.Driver(), sp.Registry)
	if err != nil {
		tb.Fatalf("ERROR: Could not create content views page: %v", err)
	}
	if sp.timeout > 0 {
		cv.Timeouts.Element = sp.timeout
	}
	return cv
}

// Run executes the subtest with screenshots at the beginning and the end
func (sp *SatPlaywright) Run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()

	t.Run(name, func(t *testing.T) {
		sp.screenshot(t, "start")
		defer sp.screenshot(t, "end")

		fn(t)
	})
}

func (sp *SatPlaywright) screenshot(t *testing.T, phase string) {
	if _, err := sp.Session.Screenshot(path.Base(t.Name()) + "-" + phase); err != nil {
		t.Logf("WARNING: %v", err)
	}
}

// Cleanup removes the captures unless the test failed
func (sp *SatPlaywright) Cleanup(tb testing.TB) {
	tb.Helper()
	if tb.Failed() {
		tb.Log("INFO: Keeping captures for checking:", sp.captureDir)
		return
	}
	os.RemoveAll(sp.captureDir)
}
