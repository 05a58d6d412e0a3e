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

	"github.com/satelliteqe/robottelo/lib/ui/contentviews"
	"github.com/satelliteqe/robottelo/lib/ui/pwdriver"
)

// withContentViews launches the browser, logs in and runs fn on the page
func withContentViews(fn func(cv *contentviews.ContentViews) error) error {
	reg, err := cfg.Locators()
	if err != nil {
		return err
	}
	sess, err := pwdriver.Launch(cfg.Browser())
	if err != nil {
		return err
	}
	defer sess.Close()

	if err = sess.Login(reg, cfg.Server.AdminUsername, cfg.Server.AdminPassword); err != nil {
		sess.Screenshot("login-failed")
		return err
	}
	cv, err := contentviews.New(sess.Driver(), reg)
	if err != nil {
		return err
	}
	cv.Timeouts = cfg.Timeouts()
	cv.Progress.Timeout = cfg.UI.ProgressTimeout

	if err = fn(cv); err != nil {
		sess.Screenshot("failed")
	}
	return err
}

func newCVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cv",
		Short: "Content view workflows in the browser",
	}

	var opts contentviews.CreateOptions
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create content view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContentViews(func(cv *contentviews.ContentViews) error {
				return cv.Create(args[0], opts)
			})
		},
	}
	create.Flags().StringVar(&opts.Label, "label", "", "content view label")
	create.Flags().StringVar(&opts.Description, "description", "", "content view description")
	create.Flags().BoolVar(&opts.Composite, "composite", false, "create composite content view")

	var comment string
	publish := &cobra.Command{
		Use:   "publish <name>",
		Short: "Publish new version and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContentViews(func(cv *contentviews.ContentViews) error {
				version, err := cv.Publish(args[0], comment)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			})
		},
	}
	publish.Flags().StringVar(&comment, "comment", "", "publish comment")

	promote := &cobra.Command{
		Use:   "promote <name> <version> <environment>",
		Short: "Promote the version to lifecycle environment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContentViews(func(cv *contentviews.ContentViews) error {
				return cv.Promote(args[0], args[1], args[2])
			})
		},
	}

	cmd.AddCommand(create, publish, promote)
	return cmd
}
