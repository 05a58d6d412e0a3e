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

// Package config loads the robottelo settings from yaml file and environment
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/remote"
	"github.com/satelliteqe/robottelo/lib/ui"
	"github.com/satelliteqe/robottelo/lib/ui/pwdriver"
	"github.com/satelliteqe/robottelo/lib/util"
)

// EnvPrefix of the overrides, "server.ssh.host" is ROBOTTELO_SERVER_SSH_HOST
const EnvPrefix = "ROBOTTELO"

// DefaultFile is looked up in the current directory when no path is given
const DefaultFile = "robottelo.yaml"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    log.Config   `mapstructure:"log"`
}

// ServerConfig describes the server under test
type ServerConfig struct {
	Hostname      string        `mapstructure:"hostname"`
	AdminUsername string        `mapstructure:"admin_username"`
	AdminPassword string        `mapstructure:"admin_password"`
	SSH           remote.Config `mapstructure:"ssh"` // Host defaults to hostname
}

// UIConfig describes the browser session
type UIConfig struct {
	URL             string        `mapstructure:"url"` // Defaults to https://<hostname>
	Browser         string        `mapstructure:"browser"`
	Headless        bool          `mapstructure:"headless"`
	Timeout         time.Duration `mapstructure:"timeout"`
	ProgressTimeout time.Duration `mapstructure:"progress_timeout"` // Max wait for the long running jobs
	Locators        string        `mapstructure:"locators"`         // Yaml file to override the embedded locators
	CaptureDir      string        `mapstructure:"capture_dir"`
}

var defaults = map[string]any{
	"server.hostname":       "",
	"server.admin_username": "admin",
	"server.admin_password": "changeme",
	"server.ssh.host":       "",
	"server.ssh.port":       22,
	"server.ssh.user":       "root",
	"server.ssh.password":   "",
	"server.ssh.key":        "",
	"server.ssh.timeout":    "10s",
	"server.ssh.pty":        false,

	"ui.url":              "",
	"ui.browser":          "chromium",
	"ui.headless":         true,
	"ui.timeout":          "12s",
	"ui.progress_timeout": "10m",
	"ui.locators":         "",
	"ui.capture_dir":      "",

	"log.level":         "info",
	"log.format":        "console",
	"log.timestamp":     true,
	"log.otel_enabled":  false,
	"log.otel_endpoint": log.DefaultOtelEndpoint,
}

// Load reads the config file (DefaultFile if path is empty and it exists)
// and applies the environment overrides on top of it
func Load(path string) (*Config, error) {
	logger := log.WithFunc("config", "Load")

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("Config: Unable to read config file %q: %v", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("Config: Unable to read config file: %v", err)
			}
			logger.Debug("No config file found, using defaults and env")
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		durationHook(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("Config: Unable to decode config: %v", err)
	}
	cfg.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Config loaded", "file", v.ConfigFileUsed(), "hostname", cfg.Server.Hostname)
	return &cfg, nil
}

// durationHook parses the durations with util.ParseDuration to allow "1d"
func durationHook() mapstructure.DecodeHookFuncType {
	durType := reflect.TypeOf(time.Duration(0))
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != durType || f.Kind() != reflect.String {
			return data, nil
		}
		return util.ParseDuration(data.(string))
	}
}

func (c *Config) applyFallbacks() {
	if c.Server.SSH.Host == "" {
		c.Server.SSH.Host = c.Server.Hostname
	}
	if c.UI.URL == "" && c.Server.Hostname != "" {
		c.UI.URL = "https://" + c.Server.Hostname
	}
}

// Validate checks the values which can't be fixed by defaults
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("Config: %v", err)
	}
	switch c.UI.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("Config: Unknown browser %q", c.UI.Browser)
	}
	if c.UI.Timeout <= 0 || c.UI.ProgressTimeout <= 0 {
		return fmt.Errorf("Config: ui timeouts must be positive")
	}
	return nil
}

// Locators returns the embedded locators merged with the override file
func (c *Config) Locators() (*locators.Registry, error) {
	reg, err := locators.Default()
	if err != nil {
		return nil, err
	}
	if c.UI.Locators == "" {
		return reg, nil
	}
	override, err := locators.LoadFile(c.UI.Locators)
	if err != nil {
		return nil, fmt.Errorf("Config: Unable to load locators override: %v", err)
	}
	return reg.Merge(override), nil
}

// Browser returns the playwright session options
func (c *Config) Browser() pwdriver.Options {
	return pwdriver.Options{
		BaseURL:    c.UI.URL,
		Browser:    c.UI.Browser,
		Headless:   c.UI.Headless,
		CaptureDir: c.UI.CaptureDir,
		Timeout:    c.UI.Timeout,
	}
}

// Timeouts returns the waits of the entity pages with the configured element
// timeout, the other ones keep the defaults
func (c *Config) Timeouts() ui.Timeouts {
	t := ui.DefaultTimeouts()
	t.Element = c.UI.Timeout
	return t
}
