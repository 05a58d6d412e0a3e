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

// Robottelo drives the Satellite server under test from the command line:
// runs hammer and ssh commands and the content view UI workflows
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/satelliteqe/robottelo/lib/config"
	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/log"
)

var (
	cfgPath  string
	logLevel string
	cfg      *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "robottelo",
		Short:        "Robottelo",
		Long:         `Test automation helpers for the Satellite server`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(cfgPath); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err = log.Initialize(&cfg.Log); err != nil {
				return fmt.Errorf("Robottelo: Unable to initialize logging: %v", err)
			}
			log.WithFunc("main", cmd.Name()).Debug("Robottelo initialized", "config", cfgPath)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := log.Shutdown(ctx); err != nil {
				return fmt.Errorf("Robottelo: Unable to flush the logs: %v", err)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cfgPath, "cfg", "c", "", "yaml configuration file (default ./"+config.DefaultFile+")")
	flags.StringVarP(&logLevel, "verbosity", "v", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newLocatorCmd(), newSSHCmd(), newPtableCmd(), newCVCmd())
	return cmd
}

func newLocatorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locator <key> [value]",
		Short: "Print the query of the locator",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := cfg.Locators()
			if err != nil {
				return err
			}
			loc, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("Robottelo: Unknown locator %q", args[0])
			}
			var q locators.Query
			if len(args) > 1 {
				q = loc.Format(args[1])
			} else if loc.Templated() {
				return fmt.Errorf("Robottelo: Locator %q needs a value", args[0])
			} else {
				q = loc.Query()
			}
			fmt.Fprintln(cmd.OutOrStdout(), q.String())
			return nil
		},
	}
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
