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

// Package pwdriver runs the page workflows in the real browser through playwright
package pwdriver

import (
	"strconv"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/ui"
)

// Selector converts the query to playwright selector
func Selector(q ui.Query) string {
	switch q.Strategy {
	case locators.XPath:
		return "xpath=" + q.Value
	case locators.CSS:
		return "css=" + q.Value
	case locators.ID:
		return "css=[id=" + strconv.Quote(q.Value) + "]"
	case locators.Name:
		return "css=[name=" + strconv.Quote(q.Value) + "]"
	case locators.LinkText:
		return "css=a:text-is(" + strconv.Quote(q.Value) + ")"
	}
	// Unknown strategies are rejected by the registry, so only raw
	// playwright selectors could get here
	return q.Value
}
