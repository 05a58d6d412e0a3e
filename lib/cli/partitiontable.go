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

package cli

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/util"
)

// DefaultPartitionTableContent is used when the factory got no content or file
const DefaultPartitionTableContent = "Fake ptable"

// RemoteTmpDir is where the factories upload the files
const RemoteTmpDir = "/tmp"

// PartitionTable returns the `hammer partition-table` subcommand
func PartitionTable(h *Hammer) *Subcommand {
	return &Subcommand{Hammer: h, Name: "partition-table"}
}

// MakePartitionTable creates the partition table and returns its record
//
// Missing name is generated and os-family defaults to Redhat. When no
// remote "file" is given the "content" (or the default one) is written to
// the local temp file and uploaded to the server.
func MakePartitionTable(ctx context.Context, t Transport, h *Hammer, opts Options) (Record, error) {
	logger := log.WithFunc("cli", "MakePartitionTable")

	args := Options{
		"name":      util.GenerateName(8),
		"os-family": "Redhat",
	}
	content := DefaultPartitionTableContent
	for k, v := range opts {
		if k == "content" {
			content = v
			continue
		}
		args[k] = v
	}

	if _, ok := args["file"]; !ok {
		remotePath, err := UploadContent(t, content)
		if err != nil {
			return nil, fmt.Errorf("Unable to upload partition table content: %w", err)
		}
		args["file"] = remotePath
	}

	pt := PartitionTable(h)
	if _, err := pt.Create(ctx, args); err != nil {
		return nil, fmt.Errorf("Unable to create partition table %q: %w", args["name"], err)
	}
	rec, err := pt.Exists(ctx, "name", args["name"])
	if err != nil {
		return nil, fmt.Errorf("Unable to find created partition table %q: %w", args["name"], err)
	}
	if rec == nil {
		return nil, fmt.Errorf("Partition table %q was not created", args["name"])
	}
	logger.Debug("Partition table created", "name", args["name"], "id", rec["id"])
	return rec, nil
}

// UploadContent writes the content to the private local temp dir and uploads
// it to the server under a fresh generated name, the remote path is returned.
// The local copy never shares the path with the remote one, so the upload works
// against the localhost server too.
func UploadContent(t Uploader, content string) (string, error) {
	dir, err := os.MkdirTemp("", "robottelo-upload-")
	if err != nil {
		return "", fmt.Errorf("Unable to create local temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	local, err := util.WriteTempFile(dir, "content-*.txt", content)
	if err != nil {
		return "", err
	}

	remotePath := path.Join(RemoteTmpDir, "robottelo-"+util.GenerateName(12)+".txt")
	if err := t.Upload(local, remotePath); err != nil {
		return "", err
	}
	return remotePath, nil
}
