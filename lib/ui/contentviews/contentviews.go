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

// Package contentviews implements the Content Views page workflows
package contentviews

import (
	"fmt"
	"time"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/ui"
)

var locatorKeys = []string{
	"common.name", "common.label", "common.description", "common.create",
	"common.kt_table_search", "common.kt_table_search_button",

	"contentviews.new", "contentviews.composite", "contentviews.remove",
	"contentviews.copy", "contentviews.copy_name", "contentviews.copy_create",
	"contentviews.publish", "contentviews.publish_comment", "contentviews.ver_label",
	"contentviews.ver_num", "contentviews.publish_progress", "contentviews.version_name",
	"contentviews.promote_button", "contentviews.env_to_promote", "contentviews.promote_version",
	"contentviews.remove_ver", "contentviews.completely_remove_checkbox",
	"contentviews.delete_version_environments", "contentviews.delete_version_environment_checkbox",
	"contentviews.next_button", "contentviews.affected_button", "contentviews.confirm_remove_ver",
	"contentviews.change_env", "contentviews.change_cv",

	"contentviews.edit_name", "contentviews.edit_name_text", "contentviews.save_name",
	"contentviews.edit_description", "contentviews.edit_description_text", "contentviews.save_description",

	"contentviews.content_repo", "contentviews.yum_repositories", "contentviews.repo_name",
	"contentviews.repo_search", "contentviews.select_repo", "contentviews.add_repo",
	"contentviews.remove_repo", "contentviews.select_cv", "contentviews.add_cv", "contentviews.remove_cv",

	"contentviews.add_module", "contentviews.select_module", "contentviews.version_filter",
	"contentviews.select_module_ver", "contentviews.get_module_name",

	"contentviews.content_filters", "contentviews.search_filters", "contentviews.search_button",
	"contentviews.select_filter_name", "contentviews.filter_name", "contentviews.select_filter_checkbox",
	"contentviews.new_filter", "contentviews.remove_filter", "contentviews.content_type", "contentviews.type",

	"contentviews.input_pkg_name", "contentviews.select_pkg_version", "contentviews.equal_value",
	"contentviews.greater_min_value", "contentviews.less_max_value", "contentviews.add_pkg_button",
	"contentviews.packages", "contentviews.package_checkbox", "contentviews.package_version_type",
	"contentviews.package_version_value", "contentviews.package_edit", "contentviews.package_save",
	"contentviews.remove_packages",

	"contentviews.affected_repos_radio", "contentviews.affected_repos_checkboxes",
	"contentviews.affected_repo_checkbox", "contentviews.filter_update_repos",

	"contentviews.select_pkg_group_checkbox", "contentviews.add_pkg_group", "contentviews.remove_pkg_group",
	"contentviews.select_errata_checkbox", "contentviews.add_errata", "contentviews.remove_errata",
	"contentviews.erratum_type_checkbox", "contentviews.erratum_date_type",
	"contentviews.calendar_date_input", "contentviews.calendar_date_button", "contentviews.save_erratum",

	"contentviews.version.package_name", "contentviews.version.package_version",
	"contentviews.version.package_release", "contentviews.version.package_arch",
	"contentviews.version.errata_id", "contentviews.version.errata_title",
	"contentviews.version.errata_type", "contentviews.version.puppet_module_name",

	"tab.contentviews.details", "tab.contentviews.versions", "tab.contentviews.content",
	"tab.contentviews.docker_content", "tab.contentviews.puppet_modules", "tab.contentviews.content_views",
	"tab.contentviews.repo_add", "tab.contentviews.repo_remove", "tab.contentviews.cv_add",
	"tab.contentviews.cv_remove", "tab.contentviews.filter_affected_repos",
	"tab.contentviews.pkg_group_add", "tab.contentviews.pkg_group_remove",
	"tab.contentviews.errata_add", "tab.contentviews.errata_remove",
	"tab.contentviews.version_packages", "tab.contentviews.version_errata",
	"tab.contentviews.version_puppet_modules",
}

// ContentViews manipulates content views from UI
type ContentViews struct {
	*ui.Base

	Progress *ui.ProgressWaiter
}

// New creates the page object, all the locators it needs should be in registry
func New(drv ui.Driver, reg *locators.Registry) (*ContentViews, error) {
	base, err := ui.NewBase(drv, reg, ui.EntityContentViews, "content view", "contentviews.key_name", locatorKeys...)
	if err != nil {
		return nil, err
	}
	return &ContentViews{
		Base:     base,
		Progress: ui.NewProgressWaiter(drv, reg.Must("contentviews.publish_progress").Format),
	}, nil
}

// SetClock replaces the clock of the publish and promote progress waits, the
// element waits are timed by the driver itself
func (cv *ContentViews) SetClock(clock ui.Clock) {
	cv.Progress.Clock = clock
}

// CreateOptions are the optional fields of the new content view
type CreateOptions struct {
	Label       string
	Description string
	Composite   bool
}

// open finds the content view and opens its page
func (cv *ContentViews) open(name string) error {
	return cv.SearchAndClick(name)
}

// Create creates a content view
func (cv *ContentViews) Create(name string, opts CreateOptions) error {
	logger := log.WithFunc("contentviews", "Create").With("name", name)

	if err := cv.Navigate(); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("contentviews.new")); err != nil {
		return err
	}
	field, err := cv.WaitUntil(cv.Q("common.name"))
	if err != nil {
		return err
	}
	if field == nil {
		return ui.OperationFailedf("Could not create new content view %q", name)
	}
	if err = ui.DriverError(field.TypeInto(name), "Unable to type name"); err != nil {
		return err
	}
	// Long names are validated by the server a bit longer
	timeout := 30 * time.Second
	if len(name) > 50 {
		timeout = 60 * time.Second
	}
	if err = cv.WaitForAjaxTimeout(timeout); err != nil {
		return err
	}

	if opts.Label != "" {
		if err = cv.typeInto("common.label", opts.Label); err != nil {
			return err
		}
	}
	if opts.Description != "" {
		if err = cv.typeInto("common.description", opts.Description); err != nil {
			return err
		}
	}
	if opts.Composite {
		if err = cv.Click(cv.Q("contentviews.composite")); err != nil {
			return err
		}
	}
	if err = cv.WaitForAjax(); err != nil {
		return err
	}
	if err = cv.Click(cv.Q("common.create")); err != nil {
		return err
	}
	logger.Info("Content view created", "composite", opts.Composite)
	return nil
}

func (cv *ContentViews) typeInto(key, text string) error {
	q := cv.Q(key)
	return ui.DriverError(cv.Driver.TypeInto(q, text), "Unable to type into %s", q)
}

// Update changes name and description of the content view, empty values are skipped
func (cv *ContentViews) Update(name, newName, newDescription string) error {
	if err := cv.open(name); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("tab.contentviews.details")); err != nil {
		return err
	}
	if newName != "" {
		err := cv.EditEntity(cv.Q("contentviews.edit_name"), cv.Q("contentviews.edit_name_text"),
			newName, cv.Q("contentviews.save_name"))
		if err != nil {
			return err
		}
	}
	if newDescription != "" {
		err := cv.EditEntity(cv.Q("contentviews.edit_description"), cv.Q("contentviews.edit_description_text"),
			newDescription, cv.Q("contentviews.save_description"))
		if err != nil {
			return err
		}
	}
	log.WithFunc("contentviews", "Update").Info("Content view updated", "name", name, "new_name", newName)
	return nil
}

// Delete removes the content view and makes sure it's not found anymore
func (cv *ContentViews) Delete(name string) error {
	return cv.DeleteEntity(name, cv.Q("contentviews.remove"))
}

// Copy copies an existing content view under the new name
func (cv *ContentViews) Copy(name, newName string) error {
	if newName == "" {
		return ui.InvalidArgumentf("Could not copy the content view %q without new name", name)
	}
	if err := cv.open(name); err != nil {
		return err
	}
	err := cv.EditEntity(cv.Q("contentviews.copy"), cv.Q("contentviews.copy_name"),
		newName, cv.Q("contentviews.copy_create"))
	if err != nil {
		return fmt.Errorf("Unable to copy content view %q: %w", name, err)
	}
	log.WithFunc("contentviews", "Copy").Info("Content view copied", "name", name, "new_name", newName)
	return nil
}
