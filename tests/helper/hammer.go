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
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Hammer exit codes used by the fake
const (
	HammerExitUsage    = 64
	HammerExitNotFound = 65
	HammerExitPerm     = 77
)

// FakePartitionTable is the partition table stored by the fake hammer
type FakePartitionTable struct {
	ID       int
	Name     string
	OSFamily string
	Layout   string
}

// FakeHammer emulates the partition-table subcommand of hammer
type FakeHammer struct {
	Username string // Credentials are checked when set
	Password string

	mu       sync.Mutex
	lastID   int
	tables   map[int]*FakePartitionTable
	commands []string
}

// NewFakeHammer creates the fake with no partition tables
func NewFakeHammer(username, password string) *FakeHammer {
	return &FakeHammer{Username: username, Password: password, tables: map[int]*FakePartitionTable{}}
}

// IsHammerCommand returns true if the shell command starts hammer
func IsHammerCommand(cmd string) bool {
	args, err := SplitShell(cmd)
	if err != nil {
		return false
	}
	args = skipEnv(args)
	return len(args) > 0 && path.Base(args[0]) == "hammer"
}

func skipEnv(args []string) []string {
	for len(args) > 0 && strings.Contains(args[0], "=") && !strings.HasPrefix(args[0], "-") {
		args = args[1:]
	}
	return args
}

// Commands returns the received command lines
func (h *FakeHammer) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.commands...)
}

// Table returns the copy of the stored partition table
func (h *FakeHammer) Table(name string) (FakePartitionTable, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, pt := range h.tables {
		if pt.Name == name {
			return *pt, true
		}
	}
	return FakePartitionTable{}, false
}

type hammerCall struct {
	user, pass string
	csv        bool
	subcommand string
	action     string
	opts       map[string]string
}

func parseHammer(cmd string) (*hammerCall, error) {
	args, err := SplitShell(cmd)
	if err != nil {
		return nil, err
	}
	args = skipEnv(args)[1:]

	call := &hammerCall{opts: map[string]string{}}
	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-u" || arg == "-p":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("option %s requires a value", arg)
			}
			i++
			if arg == "-u" {
				call.user = args[i]
			} else {
				call.pass = args[i]
			}
		case arg == "--output=csv" || arg == "--csv":
			call.csv = true
		case strings.HasPrefix(arg, "--"):
			key, value, ok := strings.Cut(arg[2:], "=")
			if !ok {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("option %s requires a value", arg)
				}
				i++
				value = args[i]
			}
			call.opts[key] = value
		default:
			positional = append(positional, arg)
		}
	}
	if len(positional) != 2 {
		return nil, fmt.Errorf("expected subcommand and action, got %q", positional)
	}
	call.subcommand, call.action = positional[0], positional[1]
	return call, nil
}

// Run executes the hammer command line and returns stdout, stderr and exit code
func (h *FakeHammer) Run(cmd string) (string, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands = append(h.commands, cmd)

	call, err := parseHammer(cmd)
	if err != nil {
		return "", "Error: " + err.Error() + "\n", HammerExitUsage
	}
	if h.Username != "" && (call.user != h.Username || call.pass != h.Password) {
		return "", "Invalid username or password\n", HammerExitPerm
	}
	if call.subcommand != "partition-table" {
		return "", fmt.Sprintf("Error: unknown subcommand %q\n", call.subcommand), HammerExitUsage
	}

	switch call.action {
	case "create":
		return h.create(call)
	case "list":
		return h.list(call)
	case "info":
		pt, stderr, code := h.find(call.opts)
		if pt == nil {
			return "", stderr, code
		}
		return output(call.csv, []string{"Id", "Name", "OS Family"}, [][]string{pt.row()}), "", 0
	case "dump":
		pt, stderr, code := h.find(call.opts)
		if pt == nil {
			return "", stderr, code
		}
		return pt.Layout + "\n", "", 0
	case "update":
		return h.update(call)
	case "delete":
		pt, stderr, code := h.find(call.opts)
		if pt == nil {
			return "", stderr, code
		}
		delete(h.tables, pt.ID)
		return "Partition table deleted\n", "", 0
	}
	return "", fmt.Sprintf("Error: unknown action %q\n", call.action), HammerExitUsage
}

func (pt *FakePartitionTable) row() []string {
	return []string{strconv.Itoa(pt.ID), pt.Name, pt.OSFamily}
}

func (h *FakeHammer) create(call *hammerCall) (string, string, int) {
	name := call.opts["name"]
	if name == "" || call.opts["file"] == "" {
		return "", "Error: Options --name, --file are required\n", HammerExitUsage
	}
	for _, pt := range h.tables {
		if pt.Name == name {
			return "", "Could not create the partition table:\n  Name has already been taken\n", HammerExitNotFound
		}
	}
	layout, err := os.ReadFile(call.opts["file"])
	if err != nil {
		return "", fmt.Sprintf("Error: %v\n", err), HammerExitNotFound
	}
	h.lastID++
	pt := &FakePartitionTable{ID: h.lastID, Name: name, OSFamily: call.opts["os-family"], Layout: string(layout)}
	h.tables[pt.ID] = pt
	return output(call.csv, []string{"Message", "Id", "Name"}, [][]string{{"Partition table created", strconv.Itoa(pt.ID), pt.Name}}), "", 0
}

var searchRe = regexp.MustCompile(`^\s*([\w-]+)\s*=\s*"?([^"]*)"?\s*$`)

func (h *FakeHammer) list(call *hammerCall) (string, string, int) {
	field, value := "", ""
	if search, ok := call.opts["search"]; ok {
		m := searchRe.FindStringSubmatch(search)
		if m == nil {
			return "", fmt.Sprintf("Error: unsupported search %q\n", search), HammerExitUsage
		}
		field, value = m[1], m[2]
	}

	ids := make([]int, 0, len(h.tables))
	for id := range h.tables {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var rows [][]string
	for _, id := range ids {
		pt := h.tables[id]
		switch field {
		case "":
		case "name":
			if pt.Name != value {
				continue
			}
		case "id":
			if strconv.Itoa(pt.ID) != value {
				continue
			}
		default:
			return "", fmt.Sprintf("Error: unknown search field %q\n", field), HammerExitUsage
		}
		rows = append(rows, pt.row())
	}
	return output(call.csv, []string{"Id", "Name", "OS Family"}, rows), "", 0
}

func (h *FakeHammer) update(call *hammerCall) (string, string, int) {
	pt, stderr, code := h.find(call.opts)
	if pt == nil {
		return "", stderr, code
	}
	if file, ok := call.opts["file"]; ok {
		layout, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Sprintf("Error: %v\n", err), HammerExitNotFound
		}
		pt.Layout = string(layout)
	}
	if newName, ok := call.opts["new-name"]; ok {
		pt.Name = newName
	}
	if family, ok := call.opts["os-family"]; ok {
		pt.OSFamily = family
	}
	return "Partition table updated\n", "", 0
}

// find locates the partition table by --id or --name
func (h *FakeHammer) find(opts map[string]string) (*FakePartitionTable, string, int) {
	if id, ok := opts["id"]; ok {
		n, err := strconv.Atoi(id)
		if err == nil {
			if pt, ok := h.tables[n]; ok {
				return pt, "", 0
			}
		}
		return nil, fmt.Sprintf("Could not find partition table %s\n", id), HammerExitNotFound
	}
	if name, ok := opts["name"]; ok {
		for _, pt := range h.tables {
			if pt.Name == name {
				return pt, "", 0
			}
		}
		return nil, fmt.Sprintf("Could not find partition table %s\n", name), HammerExitNotFound
	}
	return nil, "Error: Option --id or --name is required\n", HammerExitUsage
}

func output(asCSV bool, header []string, rows [][]string) string {
	var buf bytes.Buffer
	if !asCSV {
		for _, row := range rows {
			buf.WriteString(strings.Join(row, " | ") + "\n")
		}
		return buf.String()
	}
	w := csv.NewWriter(&buf)
	w.Write(header)
	w.WriteAll(rows)
	return buf.String()
}

// SplitShell splits the command line the way POSIX shell does for the
// plain words, single and double quotes and backslash escapes
func SplitShell(line string) ([]string, error) {
	var (
		out     []string
		word    strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, c := range line {
		switch {
		case escaped:
			word.WriteRune(c)
			escaped = false
		case quote == '\'':
			if c == '\'' {
				quote = 0
			} else {
				word.WriteRune(c)
			}
		case quote == '"':
			switch c {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				word.WriteRune(c)
			}
		case c == '\\':
			escaped, inWord = true, true
		case c == '\'' || c == '"':
			quote, inWord = c, true
		case c == ' ' || c == '\t' || c == '\n':
			if inWord {
				out = append(out, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(c)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, fmt.Errorf("unterminated quote or escape in %q", line)
	}
	if inWord {
		out = append(out, word.String())
	}
	return out, nil
}
