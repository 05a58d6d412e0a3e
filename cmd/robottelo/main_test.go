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

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath, logLevel = "", ""
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func Test_locator_formats_value(t *testing.T) {
	out, err := runRoot(t, "locator", "contentviews.key_name", "my-cv")
	require.NoError(t, err)

	assert.Equal(t, "xpath=//tr[@row-select='contentView']/td/a[contains(., 'my-cv')]\n", out)
}

func Test_locator_plain(t *testing.T) {
	out, err := runRoot(t, "locator", "login.submit")
	require.NoError(t, err)

	assert.Equal(t, "name=commit\n", out)
}

func Test_locator_errors(t *testing.T) {
	_, err := runRoot(t, "locator", "not.existing")
	assert.ErrorContains(t, err, "Unknown locator")

	_, err = runRoot(t, "locator", "contentviews.key_name")
	assert.ErrorContains(t, err, "needs a value")
}

func Test_bad_verbosity(t *testing.T) {
	_, err := runRoot(t, "-v", "loud", "locator", "login.submit")
	assert.Error(t, err)
}
