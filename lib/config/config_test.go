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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satelliteqe/robottelo/lib/ui"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "robottelo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_load_defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  hostname: sat.example.com\n"))
	require.NoError(t, err)

	assert.Equal(t, "admin", cfg.Server.AdminUsername)
	assert.Equal(t, "sat.example.com", cfg.Server.SSH.Host)
	assert.Equal(t, 22, cfg.Server.SSH.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.SSH.Timeout)
	assert.Equal(t, "https://sat.example.com", cfg.UI.URL)
	assert.Equal(t, 10*time.Minute, cfg.UI.ProgressTimeout)
	assert.True(t, cfg.UI.Headless)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Log.OtelEnabled)
	assert.Equal(t, "localhost:4317", cfg.Log.OtelEndpoint)
}

func Test_load_extended_durations(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
ui:
  url: https://other.example.com
  timeout: 30s
  progress_timeout: 1d
server:
  ssh:
    host: 10.0.0.5
    timeout: 1m30s
    pty: true
`))
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.UI.ProgressTimeout)
	assert.Equal(t, 30*time.Second, cfg.UI.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Server.SSH.Timeout)
	assert.Equal(t, "10.0.0.5", cfg.Server.SSH.Host)
	assert.True(t, cfg.Server.SSH.Pty)
	assert.Equal(t, "https://other.example.com", cfg.UI.URL)

	timeouts := cfg.Timeouts()
	assert.Equal(t, 30*time.Second, timeouts.Element)
	assert.Equal(t, ui.DefaultTimeouts().Ajax, timeouts.Ajax)
	assert.Equal(t, ui.DefaultTimeouts().Poll, timeouts.Poll)
	assert.Equal(t, cfg.UI.Timeout, cfg.Browser().Timeout)
}

func Test_load_env_overrides(t *testing.T) {
	t.Setenv("ROBOTTELO_SERVER_HOSTNAME", "env.example.com")
	t.Setenv("ROBOTTELO_SERVER_SSH_PORT", "2222")
	t.Setenv("ROBOTTELO_UI_BROWSER", "firefox")
	t.Setenv("ROBOTTELO_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "server:\n  hostname: file.example.com\n"))
	require.NoError(t, err)

	assert.Equal(t, "env.example.com", cfg.Server.Hostname)
	assert.Equal(t, 2222, cfg.Server.SSH.Port)
	assert.Equal(t, "firefox", cfg.Browser().Browser)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func Test_load_rejects_bad_values(t *testing.T) {
	for name, content := range map[string]string{
		"browser":  "ui:\n  browser: lynx\n",
		"level":    "log:\n  level: loud\n",
		"duration": "ui:\n  timeout: soon\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func Test_load_missing_file(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func Test_locators_override(t *testing.T) {
	override := filepath.Join(t.TempDir(), "locators.yaml")
	require.NoError(t, os.WriteFile(override, []byte("common.kt_search: [id, \"search-box\"]\n"), 0o600))

	cfg, err := Load(writeConfig(t, "ui:\n  locators: "+override+"\n"))
	require.NoError(t, err)

	reg, err := cfg.Locators()
	require.NoError(t, err)
	loc, ok := reg.Get("common.kt_search")
	require.True(t, ok)
	assert.Equal(t, "search-box", loc.Template)
	_, ok = reg.Get("contentviews.new")
	assert.True(t, ok)
}
