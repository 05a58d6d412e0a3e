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
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/satelliteqe/robottelo/lib/cli"
	"github.com/satelliteqe/robottelo/lib/remote"
)

func hammer(client *remote.Client) *cli.Hammer {
	return &cli.Hammer{
		Runner:   client,
		Username: cfg.Server.AdminUsername,
		Password: cfg.Server.AdminPassword,
	}
}

func printRecord(w io.Writer, rec cli.Record) {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, rec[k])
	}
}

// withHammer connects to the server and runs fn with the partition-table subcommand
func withHammer(cmd *cobra.Command, fn func(client *remote.Client, h *cli.Hammer) error) error {
	client, err := dial(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client, hammer(client))
}

func newPtableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptable",
		Short: "Manage partition tables with hammer",
	}

	var name, content, file, osFamily string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create partition table, the content is uploaded to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.Options{}
			for k, v := range map[string]string{"name": name, "content": content, "file": file, "os-family": osFamily} {
				if v != "" {
					opts[k] = v
				}
			}
			return withHammer(cmd, func(client *remote.Client, h *cli.Hammer) error {
				rec, err := cli.MakePartitionTable(cmd.Context(), client, h, opts)
				if err != nil {
					return err
				}
				printRecord(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}
	create.Flags().StringVar(&name, "name", "", "name of the partition table (generated if empty)")
	create.Flags().StringVar(&content, "content", "", "layout of the partition table")
	create.Flags().StringVar(&file, "file", "", "layout file already present on the server")
	create.Flags().StringVar(&osFamily, "os-family", "", "operating system family (default Redhat)")

	cmd.AddCommand(create,
		&cobra.Command{
			Use:   "info <name>",
			Short: "Show the partition table",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHammer(cmd, func(_ *remote.Client, h *cli.Hammer) error {
					rec, err := cli.PartitionTable(h).Info(cmd.Context(), cli.Options{"name": args[0]})
					if err != nil {
						return err
					}
					if rec == nil {
						return fmt.Errorf("Robottelo: Partition table %q not found", args[0])
					}
					printRecord(cmd.OutOrStdout(), rec)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "dump <name>",
			Short: "Print the partition table layout",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHammer(cmd, func(_ *remote.Client, h *cli.Hammer) error {
					lines, err := cli.PartitionTable(h).Dump(cmd.Context(), cli.Options{"name": args[0]})
					for _, line := range lines {
						fmt.Fprintln(cmd.OutOrStdout(), line)
					}
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove the partition table",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHammer(cmd, func(_ *remote.Client, h *cli.Hammer) error {
					return cli.PartitionTable(h).Delete(cmd.Context(), cli.Options{"name": args[0]})
				})
			},
		},
	)

	return cmd
}
