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
	"os"
	"path/filepath"
	"testing"
)

func Test_generate_name(t *testing.T) {
	for _, length := range []int{1, 6, 32, 50} {
		name := GenerateName(length)
		if len(name) != length {
			t.Fatalf("GenerateName(%d) = %q; wrong length", length, name)
		}
		if name[0] >= '0' && name[0] <= '9' {
			t.Fatalf("GenerateName(%d) = %q; starts with digit", length, name)
		}
	}
	if GenerateName(12) == GenerateName(12) {
		t.Fatalf("GenerateName returned the same name twice")
	}
	if len(GenerateName(0)) != 8 {
		t.Fatalf("GenerateName(0) should fall back to 8 symbols")
	}
}

func Test_write_temp_file(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTempFile(dir, "ptable-*", "This is a test partition table file\n")
	if err != nil {
		t.Fatalf("Unable to write temp file: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("File %q is not in %q", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "This is a test partition table file\n" {
		t.Fatalf("Unexpected file content %q: %v", data, err)
	}
}
