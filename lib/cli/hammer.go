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

// Package cli runs the hammer command line client on the server under test
// and parses its csv output
package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/remote"
)

// Runner executes the command on the server
type Runner interface {
	Execute(ctx context.Context, cmd string) (*remote.Result, error)
}

// Uploader places the local file on the server
type Uploader interface {
	Upload(localPath, remotePath string) error
}

// Transport is the remote connection able to run commands and upload files
type Transport interface {
	Runner
	Uploader
}

// Options are the command flags, "name" becomes `--name=value`
type Options map[string]string

// Record is the row of the csv output with lowercase column names
type Record map[string]string

// ReturnCodeError is returned when hammer exits with non-zero status
type ReturnCodeError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ReturnCodeError) Error() string {
	return fmt.Sprintf("Command %q returned non-zero exit status %d: %s", e.Command, e.Code, strings.TrimSpace(e.Stderr))
}

// Hammer builds and runs the hammer commands
type Hammer struct {
	Runner   Runner
	Username string
	Password string
	Binary   string // Defaults to "hammer"
}

// Response of the hammer command
type Response struct {
	*remote.Result
	Records []Record // Parsed csv output if requested
}

// Construct builds the command line, flags are sorted to keep it stable
func (h *Hammer) Construct(subcommand, action string, opts Options, csvOutput bool) string {
	bin := h.Binary
	if bin == "" {
		bin = "hammer"
	}
	parts := []string{"LANG=en_US", bin}
	if h.Username != "" {
		parts = append(parts, "-u", shellescape.Quote(h.Username))
	}
	if h.Password != "" {
		parts = append(parts, "-p", shellescape.Quote(h.Password))
	}
	if csvOutput {
		parts = append(parts, "--output=csv")
	}
	parts = append(parts, subcommand, action)

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, "--"+k+"="+shellescape.Quote(opts[k]))
	}
	return strings.Join(parts, " ")
}

// Execute runs the hammer command, non-zero exit status is ReturnCodeError
func (h *Hammer) Execute(ctx context.Context, subcommand, action string, opts Options, csvOutput bool) (*Response, error) {
	cmd := h.Construct(subcommand, action, opts, csvOutput)
	logger := log.WithFunc("cli", "Execute").With("subcommand", subcommand, "action", action)
	logger.Debug("Running hammer", "cmd", h.mask(cmd))

	res, err := h.Runner.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if res.ExitStatus != 0 {
		logger.Debug("Hammer failed", "exit_status", res.ExitStatus, "stderr", res.Stderr)
		return nil, &ReturnCodeError{Command: h.mask(cmd), Code: res.ExitStatus, Stderr: res.Stderr}
	}

	out := &Response{Result: res}
	if csvOutput {
		if out.Records, err = ParseCSV(res.Stdout); err != nil {
			return nil, fmt.Errorf("Unable to parse output of %s %s: %w", subcommand, action, err)
		}
	}
	return out, nil
}

// mask hides the password in the logged command
func (h *Hammer) mask(cmd string) string {
	if h.Password == "" {
		return cmd
	}
	return strings.Replace(cmd, "-p "+shellescape.Quote(h.Password), "-p ***", 1)
}

// ParseCSV converts the csv lines into records, the first line is the header
func ParseCSV(lines []string) ([]Record, error) {
	var data []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			data = append(data, l)
		}
	}
	if len(data) == 0 {
		return []Record{}, nil
	}

	rows, err := csv.NewReader(strings.NewReader(strings.Join(data, "\n"))).ReadAll()
	if err != nil {
		return nil, err
	}
	header := rows[0]
	for i, col := range header {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}
	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = strings.TrimSpace(row[i])
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
