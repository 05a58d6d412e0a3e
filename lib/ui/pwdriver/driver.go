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
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/ui"
)

// ajaxIdle is true when the angular pages have no active jQuery requests
const ajaxIdle = `() => !window.jQuery || window.jQuery.active === 0`

// Driver implements ui.Driver on top of playwright page
type Driver struct {
	page playwright.Page

	// WaitState is the element state WaitUntilPresent waits for. Angular keeps
	// the hidden (ng-hide) elements attached, so visible is the default.
	WaitState *playwright.WaitForSelectorState
}

var _ ui.Driver = (*Driver)(nil)

// NewDriver wraps the page
func NewDriver(page playwright.Page) *Driver {
	return &Driver{page: page, WaitState: playwright.WaitForSelectorStateVisible}
}

func (d *Driver) waitState() *playwright.WaitForSelectorState {
	if d.WaitState == nil {
		return playwright.WaitForSelectorStateVisible
	}
	return d.WaitState
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (d *Driver) locate(q ui.Query) playwright.Locator {
	return d.page.Locator(Selector(q)).First()
}

// interaction translates playwright timeout of the action to missing element
func interaction(err error, q ui.Query, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return ui.NotFoundf("Unable to %s %s: element not found", action, q)
	}
	return ui.DriverError(err, "Unable to %s %s", action, q)
}

// Navigate opens the page of the entity relative to the base url
func (d *Driver) Navigate(entity string) error {
	log.WithFunc("pwdriver", "Navigate").Debug("Opening page", "entity", entity)
	if _, err := d.page.Goto("/" + strings.TrimPrefix(entity, "/")); err != nil {
		return ui.DriverError(err, "Unable to open %s", entity)
	}
	return nil
}

func (d *Driver) Click(q ui.Query) error {
	return interaction(d.locate(q).Click(), q, "click")
}

func (d *Driver) Find(q ui.Query) (ui.Element, error) {
	loc := d.page.Locator(Selector(q))
	count, err := loc.Count()
	if err != nil {
		return nil, ui.DriverError(err, "Unable to find %s", q)
	}
	if count == 0 {
		return nil, nil
	}
	return &Element{loc: loc.First()}, nil
}

func (d *Driver) FindAll(q ui.Query) ([]ui.Element, error) {
	locs, err := d.page.Locator(Selector(q)).All()
	if err != nil {
		return nil, ui.DriverError(err, "Unable to find %s", q)
	}
	out := make([]ui.Element, 0, len(locs))
	for _, loc := range locs {
		out = append(out, &Element{loc: loc})
	}
	return out, nil
}

// WaitUntilPresent waits for the element to reach WaitState (visible by
// default). The poll interval is handled by playwright itself.
func (d *Driver) WaitUntilPresent(q ui.Query, timeout, _ time.Duration) (ui.Element, error) {
	loc := d.locate(q)
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   d.waitState(),
		Timeout: ms(timeout),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		return nil, nil
	}
	if err != nil {
		return nil, ui.DriverError(err, "Unable to wait for %s", q)
	}
	return &Element{loc: loc}, nil
}

func (d *Driver) TypeInto(q ui.Query, text string) error {
	return interaction(d.locate(q).PressSequentially(text), q, "type into")
}

func (d *Driver) AssignValue(q ui.Query, value string) error {
	return interaction(assign(d.locate(q), value), q, "assign value to")
}

func (d *Driver) Clear(q ui.Query) error {
	return interaction(d.locate(q).Clear(), q, "clear")
}

func (d *Driver) Select(q ui.Query, option string) error {
	_, err := d.locate(q).SelectOption(playwright.SelectOptionValues{Labels: playwright.StringSlice(option)})
	return interaction(err, q, "select "+strconv.Quote(option)+" in")
}

func (d *Driver) SetChecked(q ui.Query, checked bool) error {
	return interaction(d.locate(q).SetChecked(checked), q, "check")
}

func (d *Driver) IsEnabled(q ui.Query) (bool, error) {
	enabled, err := d.locate(q).IsEnabled()
	return enabled, interaction(err, q, "check state of")
}

// WaitForAjax waits for the page requests to complete
func (d *Driver) WaitForAjax(timeout time.Duration) error {
	_, err := d.page.WaitForFunction(ajaxIdle, nil, playwright.PageWaitForFunctionOptions{Timeout: ms(timeout)})
	if errors.Is(err, playwright.ErrTimeout) {
		return ui.Timeoutf("Page requests are still active after %s", timeout)
	}
	return ui.DriverError(err, "Unable to wait for page requests")
}

// assign sets the value according to the kind of the form control
func assign(loc playwright.Locator, value string) error {
	kind, err := loc.Evaluate(`e => e.tagName.toLowerCase() + ":" + (e.type || "")`, nil)
	if err != nil {
		return err
	}
	switch k, _ := kind.(string); k {
	case "select:select-one", "select:select-multiple":
		_, err = loc.SelectOption(playwright.SelectOptionValues{Values: playwright.StringSlice(value)})
		return err
	case "input:checkbox", "input:radio":
		checked, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		return loc.SetChecked(checked)
	}
	return loc.Fill(value)
}

// Element is the resolved playwright locator
type Element struct {
	loc playwright.Locator
}

var _ ui.Element = (*Element)(nil)

func (e *Element) Click() error {
	return ui.DriverError(e.loc.Click(), "Unable to click element")
}

func (e *Element) Text() (string, error) {
	return e.loc.InnerText()
}

func (e *Element) Attribute(name string) (string, error) {
	if name == "value" {
		return e.loc.InputValue()
	}
	return e.loc.GetAttribute(name)
}

// Find looks for the child, relative xpath like `ancestor::tr` is supported
func (e *Element) Find(q ui.Query) (ui.Element, error) {
	loc := e.loc.Locator(Selector(q))
	count, err := loc.Count()
	if err != nil {
		return nil, ui.DriverError(err, "Unable to find %s", q)
	}
	if count == 0 {
		return nil, nil
	}
	return &Element{loc: loc.First()}, nil
}

func (e *Element) TypeInto(text string) error {
	return ui.DriverError(e.loc.PressSequentially(text), "Unable to type into element")
}

func (e *Element) AssignValue(value string) error {
	return ui.DriverError(assign(e.loc, value), "Unable to assign value to element")
}

func (e *Element) SetChecked(checked bool) error {
	return ui.DriverError(e.loc.SetChecked(checked), "Unable to check element")
}
