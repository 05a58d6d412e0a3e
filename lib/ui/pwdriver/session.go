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

package pwdriver

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/ui"
)

// Options of the browser session
type Options struct {
	BaseURL    string        // Application url, all the entities are opened relative to it
	Browser    string        // chromium, firefox or webkit
	Headless   bool          // Run without browser window
	CaptureDir string        // Where to store screenshots and videos, disabled if empty
	Timeout    time.Duration // Default timeout of the actions
}

// OptionsFromEnv fills browser options from BROWSER and HEADFUL env variables
func OptionsFromEnv(baseURL string) Options {
	browser, ok := os.LookupEnv("BROWSER")
	if !ok {
		browser = "chromium"
	}
	return Options{
		BaseURL:  baseURL,
		Browser:  browser,
		Headless: os.Getenv("HEADFUL") == "",
		Timeout:  12 * time.Second,
	}
}

// Session is the running browser with one page, it should be closed by the
// owner when the work is done
type Session struct {
	opts Options

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	driver  *Driver

	stepMu sync.Mutex
	step   int
}

// Launch starts the browser and opens the page
func Launch(opts Options) (*Session, error) {
	logger := log.WithFunc("pwdriver", "Launch")
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("PWDriver: base url is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}

	s := &Session{opts: opts}
	var err error
	if s.pw, err = playwright.Run(); err != nil {
		return nil, fmt.Errorf("PWDriver: Could not start playwright: %v", err)
	}

	var browserType playwright.BrowserType
	switch opts.Browser {
	case "firefox":
		browserType = s.pw.Firefox
	case "webkit":
		browserType = s.pw.WebKit
	default:
		browserType = s.pw.Chromium
	}
	if s.browser, err = browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}); err != nil {
		s.Close()
		return nil, fmt.Errorf("PWDriver: Could not launch %s: %v", opts.Browser, err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(opts.BaseURL),
		// Test servers use self-signed certificates
		IgnoreHttpsErrors: playwright.Bool(true),
		AcceptDownloads:   playwright.Bool(true),
	}
	if opts.CaptureDir != "" {
		ctxOpts.RecordVideo = &playwright.RecordVideo{Dir: s.CaptureDir("video")}
	}
	if s.context, err = s.browser.NewContext(ctxOpts); err != nil {
		s.Close()
		return nil, fmt.Errorf("PWDriver: Could not create context: %v", err)
	}
	s.context.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))
	s.context.SetDefaultNavigationTimeout(float64(opts.Timeout.Milliseconds()))

	if s.page, err = s.context.NewPage(); err != nil {
		s.Close()
		return nil, fmt.Errorf("PWDriver: Could not create page: %v", err)
	}
	s.driver = NewDriver(s.page)

	logger.Info("Browser session started", "browser", opts.Browser, "url", opts.BaseURL, "headless", opts.Headless)
	return s, nil
}

// Page returns the playwright page of the session
func (s *Session) Page() playwright.Page {
	return s.page
}

// Driver returns ui.Driver of the session page
func (s *Session) Driver() *Driver {
	return s.driver
}

// Login opens the login page and signs in
func (s *Session) Login(reg *locators.Registry, username, password string) error {
	b, err := ui.NewBase(s.driver, reg, ui.EntityLogin, "login", "login.username")
	if err != nil {
		return err
	}
	return b.Login(username, password)
}

// CaptureDir returns path in the capture directory and creates the parent dirs
func (s *Session) CaptureDir(path ...string) string {
	out := filepath.Join(append([]string{s.opts.CaptureDir}, path...)...)
	os.MkdirAll(filepath.Dir(out), 0o755)
	return out
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Screenshot stores the page picture with the step number prefix and returns its path
func (s *Session) Screenshot(name string) (string, error) {
	if s.opts.CaptureDir == "" {
		return "", nil
	}
	s.stepMu.Lock()
	s.step++
	filename := fmt.Sprintf("%02d-%s.png", s.step, unsafeName.ReplaceAllString(name, "_"))
	s.stepMu.Unlock()

	path := s.CaptureDir("screenshots", filename)
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{Path: playwright.String(path)}); err != nil {
		return "", fmt.Errorf("PWDriver: Could not take screenshot %s: %v", filename, err)
	}
	return path, nil
}

// Close releases the browser, could be called on partially started session
func (s *Session) Close() error {
	var errs []error
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("context: %v", err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("browser: %v", err))
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("playwright: %v", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("PWDriver: Could not close session: %v", errs)
	}
	log.WithFunc("pwdriver", "Close").Debug("Browser session closed")
	return nil
}
