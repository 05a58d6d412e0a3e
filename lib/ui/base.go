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

package ui

import (
	"fmt"
	"time"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/log"
)

// Entity kinds known to the navigator
const (
	EntityLogin        = "users/login"
	EntityContentViews = "content_views"
)

// Keys of the locators used by Base
var BaseLocatorKeys = []string{
	"common.kt_search",
	"common.kt_search_button",
	"common.confirm_remove",
	"common.alert.success_sub_form",
	"login.username",
	"login.password",
	"login.submit",
}

// Timeouts of the base waits
type Timeouts struct {
	Element time.Duration // How long to wait for element to appear
	Poll    time.Duration // How often to check for the element
	Ajax    time.Duration // How long to wait for the page requests
}

// DefaultTimeouts returns the defaults which work fine on regular server
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Element: 12 * time.Second,
		Poll:    500 * time.Millisecond,
		Ajax:    30 * time.Second,
	}
}

// Base implements the routines shared by all the entity pages
type Base struct {
	Driver   Driver
	Locators *locators.Registry
	Timeouts Timeouts

	// Entity is the navigator kind of the page
	Entity string
	// Title is the human name of the entity for messages
	Title string
	// SearchKey is the templated locator of the entity search result
	SearchKey string
}

// NewBase creates the base and validates that all the required locators are here
func NewBase(drv Driver, reg *locators.Registry, entity, title, searchKey string, keys ...string) (*Base, error) {
	keys = append(append([]string{searchKey}, BaseLocatorKeys...), keys...)
	if err := reg.Validate(keys...); err != nil {
		return nil, fmt.Errorf("Unable to create %s page: %v", title, err)
	}
	return &Base{
		Driver:    drv,
		Locators:  reg,
		Timeouts:  DefaultTimeouts(),
		Entity:    entity,
		Title:     title,
		SearchKey: searchKey,
	}, nil
}

// Q returns the query of the non-templated locator
func (b *Base) Q(key string) Query {
	return b.Locators.Query(key)
}

// F returns the query of the templated locator
func (b *Base) F(key, value string) Query {
	return b.Locators.Format(key, value)
}

// Navigate opens the entity page
func (b *Base) Navigate() error {
	return DriverError(b.Driver.Navigate(b.Entity), "Unable to navigate to %s", b.Entity)
}

// WaitForAjax waits for the pending requests with the default timeout
func (b *Base) WaitForAjax() error {
	return b.WaitForAjaxTimeout(b.Timeouts.Ajax)
}

// WaitForAjaxTimeout waits for the pending requests
func (b *Base) WaitForAjaxTimeout(timeout time.Duration) error {
	return DriverError(b.Driver.WaitForAjax(timeout), "Page requests are not completed in %s", timeout)
}

// WaitUntil waits for the element with default timeouts, nil if it's not here
func (b *Base) WaitUntil(q Query) (Element, error) {
	el, err := b.Driver.WaitUntilPresent(q, b.Timeouts.Element, b.Timeouts.Poll)
	return el, DriverError(err, "Unable to wait for %s", q)
}

// Click clicks the element and waits for the page to settle
func (b *Base) Click(q Query) error {
	if err := b.Driver.Click(q); err != nil {
		return DriverError(err, "Unable to click %s", q)
	}
	return b.WaitForAjax()
}

// ClickElement clicks already found element and waits for the page to settle
func (b *Base) ClickElement(el Element) error {
	if err := el.Click(); err != nil {
		return DriverError(err, "Unable to click element")
	}
	return b.WaitForAjax()
}

// TextFieldUpdate replaces the text of the input
func (b *Base) TextFieldUpdate(q Query, text string) error {
	if err := b.Driver.Clear(q); err != nil {
		return DriverError(err, "Unable to clear %s", q)
	}
	return DriverError(b.Driver.TypeInto(q, text), "Unable to type into %s", q)
}

// Search navigates to the entity page and looks for the entity by name
func (b *Base) Search(name string) (Element, error) {
	logger := log.WithFunc("ui", "Search")
	logger.Debug("Searching", "entity", b.Title, "name", name)

	if err := b.Navigate(); err != nil {
		return nil, err
	}
	if err := b.TextFieldUpdate(b.Q("common.kt_search"), name); err != nil {
		return nil, err
	}
	if err := b.Click(b.Q("common.kt_search_button")); err != nil {
		return nil, err
	}
	el, err := b.WaitUntil(b.F(b.SearchKey, name))
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, NotFoundf("Could not find the %s %q", b.Title, name)
	}
	return el, nil
}

// SearchAndClick finds the entity and opens it
func (b *Base) SearchAndClick(name string) error {
	el, err := b.Search(name)
	if err != nil {
		return err
	}
	return b.ClickElement(el)
}

// EditEntity switches the inline field into edit mode, replaces the value and saves it
func (b *Base) EditEntity(editQ, fieldQ Query, value string, saveQ Query) error {
	if err := b.Click(editQ); err != nil {
		return err
	}
	if err := b.TextFieldUpdate(fieldQ, value); err != nil {
		return err
	}
	return b.Click(saveQ)
}

// DeleteEntity opens the entity, removes it and checks it's not found anymore
func (b *Base) DeleteEntity(name string, removeQ Query) error {
	logger := log.WithFunc("ui", "DeleteEntity")

	if err := b.SearchAndClick(name); err != nil {
		return err
	}
	if err := b.Click(removeQ); err != nil {
		return err
	}
	confirm, err := b.WaitUntil(b.Q("common.confirm_remove"))
	if err != nil {
		return err
	}
	if confirm == nil {
		return OperationFailedf("No confirmation to delete the %s %q", b.Title, name)
	}
	if err = b.ClickElement(confirm); err != nil {
		return err
	}

	if _, err = b.Search(name); err == nil {
		return OperationFailedf("The %s %q was not deleted", b.Title, name)
	} else if KindOf(err) != KindNotFound {
		return err
	}
	logger.Info("Deleted", "entity", b.Title, "name", name)
	return nil
}

// Login fills the login form and checks the form is gone
func (b *Base) Login(username, password string) error {
	if err := DriverError(b.Driver.Navigate(EntityLogin), "Unable to open login page"); err != nil {
		return err
	}
	if err := DriverError(b.Driver.AssignValue(b.Q("login.username"), username), "Unable to fill username"); err != nil {
		return err
	}
	if err := DriverError(b.Driver.AssignValue(b.Q("login.password"), password), "Unable to fill password"); err != nil {
		return err
	}
	if err := b.Click(b.Q("login.submit")); err != nil {
		return err
	}
	form, err := b.Driver.Find(b.Q("login.username"))
	if err != nil {
		return DriverError(err, "Unable to check login form")
	}
	if form != nil {
		return OperationFailedf("Unable to login as %q", username)
	}
	log.WithFunc("ui", "Login").Info("Logged in", "username", username)
	return nil
}
