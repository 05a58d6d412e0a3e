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
	"fmt"
	"os"
)

// WriteTempFile stores the content into a new file in dir (default temp dir
// if empty) and returns its path, the caller is responsible to remove it
func WriteTempFile(dir, pattern, content string) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("Unable to create temp file: %v", err)
	}
	defer f.Close()

	if _, err = f.WriteString(content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("Unable to write temp file %q: %v", f.Name(), err)
	}

	return f.Name(), nil
}
