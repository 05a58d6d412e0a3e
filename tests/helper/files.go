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

// Simplifies work with file testing
package helper

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// CreateRandomFiles puts the amount of 1KB random files into dir
func CreateRandomFiles(dir string, amount int) ([]string, error) {
	var out []string
	data := make([]byte, 1024)
	for i := range amount {
		if _, err := rand.Read(data); err != nil {
			return nil, fmt.Errorf("Unable to generate test data: %v", err)
		}
		path := filepath.Join(dir, "testfile_"+strconv.Itoa(i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("Unable to write test file %q: %v", path, err)
		}
		out = append(out, path)
	}
	return out, nil
}

// CompareFiles returns error if the files content differs
func CompareFiles(path1, path2 string) error {
	hash1, err := fileHash(path1)
	if err != nil {
		return err
	}
	hash2, err := fileHash(path2)
	if err != nil {
		return err
	}
	if !bytes.Equal(hash1, hash2) {
		return fmt.Errorf("Files differ: %q and %q", path1, path2)
	}
	return nil
}

// CompareDirFiles checks every file of dir1 is present in dir2 with the same content
func CompareDirFiles(dir1, dir2 string) error {
	return filepath.Walk(dir1, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		relPath, err := filepath.Rel(dir1, path)
		if err != nil {
			return err
		}
		return CompareFiles(path, filepath.Join(dir2, relPath))
	})
}

func fileHash(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to open file %q: %v", path, err)
	}
	defer f.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return nil, err
	}
	return hash.Sum(nil), nil
}
