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

package ui_test

import (
	"github.com/stretchr/testify/require"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/ui"
	"github.com/satelliteqe/robottelo/lib/ui/uitest"
)

// testingT is satisfied by both *testing.T and *rapid.T
type testingT interface {
	require.TestingT
	Helper()
}

func newBase(t testingT) (*ui.Base, *uitest.Driver, *locators.Registry) {
	t.Helper()
	reg, err := locators.Default()
	require.NoError(t, err)

	drv := uitest.New()
	b, err := ui.NewBase(drv, reg, ui.EntityContentViews, "content view", "contentviews.key_name")
	require.NoError(t, err)

	drv.Put(reg.Query("common.kt_search"))
	drv.Put(reg.Query("common.kt_search_button"))
	return b, drv, reg
}
