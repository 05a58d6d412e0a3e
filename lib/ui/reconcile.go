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
	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/log"
)

// Direction of the reconciliation
type Direction int

const (
	Add Direction = iota
	Remove
)

func (d Direction) String() string {
	if d == Remove {
		return "remove"
	}
	return "add"
}

// Collection describes the pair of tabs used to assign items to the entity.
// Zero queries are skipped.
type Collection struct {
	// Name of the item kind for the messages: "repository", "content view"...
	Name string

	// AvailableTab lists the items which could be added
	AvailableTab Query
	// AssignedTab lists the items which already added
	AssignedTab Query
	// Search is the filter input of the tab
	Search Query
	// Item is the templated locator of the item row by name
	Item locators.Locator

	AddButton    Query
	RemoveButton Query

	// Success is the alert to wait after the action
	Success Query
	// Verify enables check of the item presence in the destination tab
	Verify bool
}

func (c *Collection) tabs(dir Direction) (src, dst Query) {
	if dir == Remove {
		return c.AssignedTab, c.AvailableTab
	}
	return c.AvailableTab, c.AssignedTab
}

func (c *Collection) button(dir Direction) Query {
	if dir == Remove {
		return c.RemoveButton
	}
	return c.AddButton
}

// Reconcile adds or removes the names one by one in the given order and stops
// on the first failure. Adding of already assigned item is skipped, removing
// of the item which is not assigned is KindNotFound.
func (b *Base) Reconcile(c *Collection, names []string, dir Direction) error {
	logger := log.WithFunc("ui", "Reconcile").With("collection", c.Name, "direction", dir.String())
	src, dst := c.tabs(dir)

	for _, name := range names {
		el, err := b.lookupItem(c, src, name)
		if err != nil {
			return err
		}
		if el == nil {
			if dir == Add {
				assigned, err := b.lookupItem(c, dst, name)
				if err != nil {
					return err
				}
				if assigned != nil {
					logger.Debug("Already assigned, skipping", "name", name)
					continue
				}
			}
			return NotFoundf("Could not find %s %q to %s", c.Name, name, dir)
		}

		if err = b.ClickElement(el); err != nil {
			return err
		}
		if err = b.Click(c.button(dir)); err != nil {
			return err
		}
		if !c.Success.IsZero() {
			alert, err := b.WaitUntil(c.Success)
			if err != nil {
				return err
			}
			if alert == nil {
				return OperationFailedf("Failed to %s %s %q: no success alert", dir, c.Name, name)
			}
		}
		if c.Verify {
			moved, err := b.lookupItem(c, dst, name)
			if err != nil {
				return err
			}
			if moved == nil {
				return OperationFailedf("Failed to %s %s %q: not found after the action", dir, c.Name, name)
			}
		}
		logger.Info("Done", "name", name)
	}
	return nil
}

// lookupItem opens the tab, filters it and waits for the item row
func (b *Base) lookupItem(c *Collection, tab Query, name string) (Element, error) {
	if !tab.IsZero() {
		if err := b.Click(tab); err != nil {
			return nil, err
		}
	}
	if !c.Search.IsZero() {
		if err := b.TextFieldUpdate(c.Search, name); err != nil {
			return nil, err
		}
	}
	return b.WaitUntil(c.Item.Format(name))
}
