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

// Package ui contains the building blocks of the page workflows: the
// driver capability surface, the base search/edit/delete routines, the
// job progress poller and the add/remove reconciliation helper
package ui

import (
	"time"

	"github.com/satelliteqe/robottelo/lib/locators"
)

// Query is the concrete element lookup
type Query = locators.Query

// Driver is the capability surface of the browser session. Lookups which
// found nothing are not errors: Find and WaitUntilPresent return nil
// element, errors are reserved for the driver failures and for the
// interactions with absent elements (KindNotFound).
type Driver interface {
	// Navigate opens the page of the given entity kind
	Navigate(entity string) error

	Click(q Query) error
	Find(q Query) (Element, error)
	FindAll(q Query) ([]Element, error)
	WaitUntilPresent(q Query, timeout, poll time.Duration) (Element, error)

	// TypeInto sends the keys to the element keeping the existing value
	TypeInto(q Query, text string) error
	// AssignValue replaces the value of the input
	AssignValue(q Query, value string) error
	Clear(q Query) error
	Select(q Query, option string) error
	SetChecked(q Query, checked bool) error
	IsEnabled(q Query) (bool, error)

	// WaitForAjax blocks until the page has no pending requests
	WaitForAjax(timeout time.Duration) error
}

// Element is the already resolved node of the page
type Element interface {
	Click() error
	Text() (string, error)
	// Attribute returns the attribute value, "value" returns the current input value
	Attribute(name string) (string, error)
	// Find looks for the child element, nil if not found
	Find(q Query) (Element, error)
	TypeInto(text string) error
	AssignValue(value string) error
	SetChecked(checked bool) error
}

// Clock allows to control the time in the polling loops
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock is the wall clock
var RealClock Clock = realClock{}
