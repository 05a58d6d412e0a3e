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

package locators

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locators.yaml
var defaultLocators []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Registry maps symbolic keys to locators. It's filled once on load and
// never modified after, so it's safe to share between sessions.
type Registry struct {
	locators map[string]Locator
}

// Default returns the registry with locators embedded into the binary
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Load(bytes.NewReader(defaultLocators))
	})
	return defaultRegistry, defaultErr
}

// Load parses the yaml map of `key: [strategy, template]` items
func Load(r io.Reader) (*Registry, error) {
	locs := make(map[string]Locator)
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&locs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("Unable to parse locators: %v", err)
	}
	return &Registry{locators: locs}, nil
}

// LoadFile reads the locators yaml file
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to open locators file %q: %v", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Merge returns a new registry where locators of other override the ones in r
func (r *Registry) Merge(other *Registry) *Registry {
	out := &Registry{locators: make(map[string]Locator, len(r.locators)+len(other.locators))}
	for k, v := range r.locators {
		out.locators[k] = v
	}
	for k, v := range other.locators {
		out.locators[k] = v
	}
	return out
}

// Get returns locator by key
func (r *Registry) Get(key string) (Locator, bool) {
	l, ok := r.locators[key]
	return l, ok
}

// Must returns locator by key and panics if it's not here. Page objects
// are validating their keys on creation, so it's a programming error.
func (r *Registry) Must(key string) Locator {
	l, ok := r.locators[key]
	if !ok {
		panic(fmt.Sprintf("locators: unknown key %q", key))
	}
	return l
}

// Query is a shortcut for Must(key).Query()
func (r *Registry) Query(key string) Query {
	return r.Must(key).Query()
}

// Format is a shortcut for Must(key).Format(value)
func (r *Registry) Format(key, value string) Query {
	return r.Must(key).Format(value)
}

// Validate checks that all the keys are present in the registry
func (r *Registry) Validate(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if _, ok := r.locators[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing locators: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Keys returns sorted list of the known keys
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.locators))
	for k := range r.locators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
