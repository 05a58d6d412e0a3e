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

package cli

import (
	"context"
	"fmt"
)

// Subcommand is the hammer resource like "partition-table" or "host"
type Subcommand struct {
	Hammer *Hammer
	Name   string
}

// Create runs `<name> create` and returns the records hammer printed
func (s *Subcommand) Create(ctx context.Context, opts Options) ([]Record, error) {
	res, err := s.Hammer.Execute(ctx, s.Name, "create", opts, true)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

// Info returns the single record describing the resource, nil if hammer printed nothing
func (s *Subcommand) Info(ctx context.Context, opts Options) (Record, error) {
	res, err := s.Hammer.Execute(ctx, s.Name, "info", opts, true)
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, nil
	}
	return res.Records[0], nil
}

// List returns all the records matching the options
func (s *Subcommand) List(ctx context.Context, opts Options) ([]Record, error) {
	res, err := s.Hammer.Execute(ctx, s.Name, "list", opts, true)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

// Exists searches for the resource where field equals value and returns the
// first exact match or nil when there is none
func (s *Subcommand) Exists(ctx context.Context, field, value string) (Record, error) {
	records, err := s.List(ctx, Options{"search": fmt.Sprintf("%s = %q", field, value)})
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		// The server side search could be fuzzy so double check the value,
		// records without the field never match
		if v, ok := rec[field]; ok && v == value {
			return rec, nil
		}
	}
	return nil, nil
}

// Update runs `<name> update`
func (s *Subcommand) Update(ctx context.Context, opts Options) error {
	_, err := s.Hammer.Execute(ctx, s.Name, "update", opts, false)
	return err
}

// Delete runs `<name> delete`
func (s *Subcommand) Delete(ctx context.Context, opts Options) error {
	_, err := s.Hammer.Execute(ctx, s.Name, "delete", opts, false)
	return err
}

// Dump returns the raw output lines of `<name> dump`
func (s *Subcommand) Dump(ctx context.Context, opts Options) ([]string, error) {
	res, err := s.Hammer.Execute(ctx, s.Name, "dump", opts, false)
	if err != nil {
		return nil, err
	}
	return res.Stdout, nil
}
