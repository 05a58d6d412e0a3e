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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/satelliteqe/robottelo/lib/ui"
)

func Test_error_kinds_match_sentinels(t *testing.T) {
	for _, tc := range []struct {
		err      error
		sentinel error
		kind     ui.Kind
	}{
		{ui.NotFoundf("no cv %q", "cv1"), ui.ErrNotFound, ui.KindNotFound},
		{ui.OperationFailedf("not deleted"), ui.ErrOperationFailed, ui.KindOperationFailed},
		{ui.InvalidArgumentf("bad type"), ui.ErrInvalidArgument, ui.KindInvalidArgument},
		{ui.Timeoutf("still here"), ui.ErrTimeout, ui.KindTimeout},
	} {
		wrapped := fmt.Errorf("workflow: %w", tc.err)
		assert.ErrorIs(t, wrapped, tc.sentinel)
		assert.Equal(t, tc.kind, ui.KindOf(wrapped))
		if tc.kind != ui.KindNotFound {
			assert.NotErrorIs(t, tc.err, ui.ErrNotFound)
		}
	}
}

func Test_error_message_names_entity(t *testing.T) {
	err := ui.NotFoundf("Could not find the content view %q", "cv1")
	assert.Equal(t, `Could not find the content view "cv1"`, err.Error())
}

func Test_driver_error(t *testing.T) {
	assert.NoError(t, ui.DriverError(nil, "never"))

	base := errors.New("target closed")
	err := ui.DriverError(base, "Unable to click %s", "xpath=//a")
	assert.ErrorIs(t, err, ui.ErrDriver)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "Unable to click xpath=//a: target closed", err.Error())

	// Already labeled errors keep their kind
	nf := ui.NotFoundf("missing")
	assert.Same(t, nf, ui.DriverError(nf, "Unable to click"))
	assert.Equal(t, ui.Kind(""), ui.KindOf(base))
}
