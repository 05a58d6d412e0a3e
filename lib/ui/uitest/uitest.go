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

// Package uitest provides in-memory ui.Driver which records the interactions
// and allows to script the page state for the workflow tests
package uitest

import (
	"strconv"
	"time"

	"github.com/satelliteqe/robottelo/lib/ui"
)

// Action kinds recorded by the fake driver
const (
	ActNavigate = "navigate"
	ActClick    = "click"
	ActType     = "type"
	ActAssign   = "assign"
	ActClear    = "clear"
	ActSelect   = "select"
	ActCheck    = "check"
)

// Action is the single recorded interaction
type Action struct {
	Kind   string
	Target string // Query string or entity for navigate
	Value  string
}

// Clock is the manual clock which moves only on Sleep and Advance
type Clock struct {
	now time.Time
}

// NewClock creates clock started at fixed moment
func NewClock() *Clock {
	return &Clock{now: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time        { return c.now }
func (c *Clock) Sleep(d time.Duration) { c.Advance(d) }

// Advance moves the clock forward
func (c *Clock) Advance(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

// Driver is the recording fake of ui.Driver
type Driver struct {
	Clock   *Clock
	Entity  string
	Actions []Action

	nodes    map[string][]*Node
	hooks    map[string][]func()
	presence map[string][]bool
	checks   map[string]int
	fails    map[string]error
}

var _ ui.Driver = (*Driver)(nil)

// New creates empty page
func New() *Driver {
	return &Driver{
		Clock:    NewClock(),
		nodes:    make(map[string][]*Node),
		hooks:    make(map[string][]func()),
		presence: make(map[string][]bool),
		checks:   make(map[string]int),
		fails:    make(map[string]error),
	}
}

// Add places one more element matching the query on the page
func (d *Driver) Add(q ui.Query, n *Node) *Node {
	if n == nil {
		n = &Node{}
	}
	n.bind(d, q.String())
	d.nodes[q.String()] = append(d.nodes[q.String()], n)
	return n
}

// Put makes sure there is element for the query and returns the first one
func (d *Driver) Put(q ui.Query) *Node {
	if n := d.Node(q); n != nil {
		return n
	}
	return d.Add(q, nil)
}

// Remove drops all the elements matching the query
func (d *Driver) Remove(q ui.Query) {
	delete(d.nodes, q.String())
}

// Node returns the first element of the query or nil
func (d *Driver) Node(q ui.Query) *Node {
	if list := d.nodes[q.String()]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// OnClick registers the hook executed after the click on the query
func (d *Driver) OnClick(q ui.Query, fn func()) {
	d.hooks[q.String()] = append(d.hooks[q.String()], fn)
}

// Presence scripts the results of the presence checks of the query, the last
// value stays once the sequence is consumed
func (d *Driver) Presence(q ui.Query, seq ...bool) {
	d.presence[q.String()] = seq
}

// Fail makes every interaction with the query return the error
func (d *Driver) Fail(q ui.Query, err error) {
	d.fails[q.String()] = err
}

// Checks returns how many times the presence of the query was checked
func (d *Driver) Checks(q ui.Query) int {
	return d.checks[q.String()]
}

// Clicked reports whether the query was clicked
func (d *Driver) Clicked(q ui.Query) bool {
	return d.Index(ActClick, q.String()) >= 0
}

// Index returns position of the first action of kind on target or -1
func (d *Driver) Index(kind, target string) int {
	for i, a := range d.Actions {
		if a.Kind == kind && a.Target == target {
			return i
		}
	}
	return -1
}

// ActionsOf returns actions of the kind in the recorded order
func (d *Driver) ActionsOf(kind string) []Action {
	var out []Action
	for _, a := range d.Actions {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func (d *Driver) record(kind, target, value string) {
	d.Actions = append(d.Actions, Action{Kind: kind, Target: target, Value: value})
}

func (d *Driver) click(key string) {
	d.record(ActClick, key, "")
	for _, fn := range d.hooks[key] {
		fn()
	}
}

// present consumes the scripted presence or checks the page
func (d *Driver) present(key string) *Node {
	d.checks[key]++
	if seq, ok := d.presence[key]; ok && len(seq) > 0 {
		val := seq[0]
		if len(seq) > 1 {
			d.presence[key] = seq[1:]
		}
		if !val {
			return nil
		}
		if list := d.nodes[key]; len(list) > 0 {
			return list[0]
		}
		n := &Node{}
		n.bind(d, key)
		return n
	}
	if list := d.nodes[key]; len(list) > 0 {
		return list[0]
	}
	return nil
}

func (d *Driver) target(q ui.Query) (*Node, error) {
	if err := d.fails[q.String()]; err != nil {
		return nil, err
	}
	n := d.Node(q)
	if n == nil {
		return nil, ui.NotFoundf("No element %s", q)
	}
	return n, nil
}

func (d *Driver) Navigate(entity string) error {
	d.record(ActNavigate, entity, "")
	d.Entity = entity
	return nil
}

func (d *Driver) Click(q ui.Query) error {
	if _, err := d.target(q); err != nil {
		return err
	}
	d.click(q.String())
	return nil
}

func (d *Driver) Find(q ui.Query) (ui.Element, error) {
	if err := d.fails[q.String()]; err != nil {
		return nil, err
	}
	if n := d.present(q.String()); n != nil {
		return n, nil
	}
	return nil, nil
}

func (d *Driver) FindAll(q ui.Query) ([]ui.Element, error) {
	if err := d.fails[q.String()]; err != nil {
		return nil, err
	}
	out := make([]ui.Element, 0, len(d.nodes[q.String()]))
	for _, n := range d.nodes[q.String()] {
		out = append(out, n)
	}
	return out, nil
}

// WaitUntilPresent spends the whole timeout on the fake clock when element is absent
func (d *Driver) WaitUntilPresent(q ui.Query, timeout, _ time.Duration) (ui.Element, error) {
	if err := d.fails[q.String()]; err != nil {
		return nil, err
	}
	if n := d.present(q.String()); n != nil {
		return n, nil
	}
	d.Clock.Advance(timeout)
	return nil, nil
}

func (d *Driver) TypeInto(q ui.Query, text string) error {
	n, err := d.target(q)
	if err != nil {
		return err
	}
	return n.TypeInto(text)
}

func (d *Driver) AssignValue(q ui.Query, value string) error {
	n, err := d.target(q)
	if err != nil {
		return err
	}
	return n.AssignValue(value)
}

func (d *Driver) Clear(q ui.Query) error {
	n, err := d.target(q)
	if err != nil {
		return err
	}
	d.record(ActClear, q.String(), "")
	n.Value = ""
	return nil
}

func (d *Driver) Select(q ui.Query, option string) error {
	n, err := d.target(q)
	if err != nil {
		return err
	}
	d.record(ActSelect, q.String(), option)
	n.Value = option
	return nil
}

func (d *Driver) SetChecked(q ui.Query, checked bool) error {
	n, err := d.target(q)
	if err != nil {
		return err
	}
	return n.SetChecked(checked)
}

func (d *Driver) IsEnabled(q ui.Query) (bool, error) {
	n, err := d.target(q)
	if err != nil {
		return false, err
	}
	return !n.Disabled, nil
}

func (*Driver) WaitForAjax(time.Duration) error {
	return nil
}

// Node is the fake element
type Node struct {
	Content  string // Visible text
	Value    string
	Attrs    map[string]string
	Checked  bool
	Disabled bool

	children map[string][]*Node
	d        *Driver
	key      string
}

var _ ui.Element = (*Node)(nil)

func (n *Node) bind(d *Driver, key string) {
	n.d = d
	n.key = key
	for ck, list := range n.children {
		for _, c := range list {
			c.bind(d, ck)
		}
	}
}

// Add places child element under the node
func (n *Node) Add(q ui.Query, child *Node) *Node {
	if child == nil {
		child = &Node{}
	}
	if n.children == nil {
		n.children = make(map[string][]*Node)
	}
	child.bind(n.d, q.String())
	n.children[q.String()] = append(n.children[q.String()], child)
	return child
}

func (n *Node) Click() error {
	n.d.click(n.key)
	return nil
}

func (n *Node) Text() (string, error) {
	return n.Content, nil
}

func (n *Node) Attribute(name string) (string, error) {
	if name == "value" {
		return n.Value, nil
	}
	return n.Attrs[name], nil
}

func (n *Node) Find(q ui.Query) (ui.Element, error) {
	if list := n.children[q.String()]; len(list) > 0 {
		return list[0], nil
	}
	return nil, nil
}

func (n *Node) TypeInto(text string) error {
	n.d.record(ActType, n.key, text)
	n.Value += text
	return nil
}

func (n *Node) AssignValue(value string) error {
	n.d.record(ActAssign, n.key, value)
	n.Value = value
	return nil
}

func (n *Node) SetChecked(checked bool) error {
	n.d.record(ActCheck, n.key, strconv.FormatBool(checked))
	n.Checked = checked
	return nil
}
