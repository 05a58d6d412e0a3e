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

package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateName returns a random lowercase name of the given length which
// is safe to use for entity names, labels and remote file names
func GenerateName(length int) string {
	if length <= 0 {
		length = 8
	}
	var sb strings.Builder
	for sb.Len() < length {
		sb.WriteString(strings.ReplaceAll(uuid.NewString(), "-", ""))
	}
	name := []byte(sb.String()[:length])
	// Names starting with digit are rejected by some of the forms
	if name[0] >= '0' && name[0] <= '9' {
		name[0] = 'a' + (name[0] - '0')
	}
	return string(name)
}
