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

	"github.com/spf13/cobra"

	"github.com/satelliteqe/robottelo/lib/remote"
)

func dial(cmd *cobra.Command) (*remote.Client, error) {
	client, err := remote.Dial(cmd.Context(), cfg.Server.SSH)
	if err != nil {
		return nil, fmt.Errorf("Robottelo: Unable to connect to %s: %w", cfg.Server.SSH.Addr(), err)
	}
	return client, nil
}

func newSSHCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run commands on the server",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run <command...>",
		Short: "Execute the command and print its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			res, err := client.Execute(cmd.Context(), joinArgs(args))
			if err != nil {
				return err
			}
			for _, line := range res.Stdout {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if res.Stderr != "" {
				fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
			}
			if res.ExitStatus != 0 {
				return fmt.Errorf("Robottelo: Command exited with status %d", res.ExitStatus)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "upload <local> <remote>",
		Short: "Copy the local file to the server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			return client.Upload(args[0], args[1])
		},
	})

	return cmd
}
