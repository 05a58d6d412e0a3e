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

package contentviews

import (
	"fmt"
	"slices"
	"strings"

	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/ui"
)

// Package is the row of the version packages tab
type Package struct {
	Name    string
	Version string
	Release string
	Arch    string
}

// Erratum is the row of the version errata tab
type Erratum struct {
	ID    string
	Title string
	Type  string
}

// Publish creates new version of the content view and waits for the
// publishing to complete. Returns the version name like "Version 1".
func (cv *ContentViews) Publish(name, comment string) (string, error) {
	logger := log.WithFunc("contentviews", "Publish").With("name", name)

	if err := cv.open(name); err != nil {
		return "", err
	}
	if err := cv.Click(cv.Q("contentviews.publish")); err != nil {
		return "", err
	}

	// The version is known only on the publish form
	label, err := cv.waitText("contentviews.ver_label")
	if err != nil {
		return "", err
	}
	number, err := cv.waitText("contentviews.ver_num")
	if err != nil {
		return "", err
	}
	version := label + " " + number

	if comment != "" {
		if err = cv.typeInto("contentviews.publish_comment", comment); err != nil {
			return "", err
		}
	}
	if err = cv.Click(cv.Q("common.create")); err != nil {
		return "", err
	}
	if err = cv.Progress.Wait(version); err != nil {
		return "", err
	}
	logger.Info("Content view published", "version", version)
	return version, nil
}

func (cv *ContentViews) waitText(key string) (string, error) {
	el, err := cv.WaitUntil(cv.Q(key))
	if err != nil {
		return "", err
	}
	if el == nil {
		return "", ui.OperationFailedf("Could not find %s on the page", key)
	}
	txt, err := el.Text()
	if err != nil {
		return "", ui.DriverError(err, "Unable to get text of %s", key)
	}
	return strings.TrimSpace(txt), nil
}

// Promote promotes the version of content view to the environment
func (cv *ContentViews) Promote(name, version, env string) error {
	if err := cv.open(name); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("tab.contentviews.versions")); err != nil {
		return err
	}
	if err := cv.clickExisting(cv.F("contentviews.promote_button", version), "version %q", version); err != nil {
		return err
	}
	if err := cv.clickExisting(cv.F("contentviews.env_to_promote", env), "environment %q", env); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("contentviews.promote_version")); err != nil {
		return err
	}
	if err := cv.Progress.Wait(version); err != nil {
		return err
	}
	log.WithFunc("contentviews", "Promote").Info("Version promoted", "name", name, "version", version, "env", env)
	return nil
}

// clickExisting waits for the element and clicks it, KindNotFound names the item
func (cv *ContentViews) clickExisting(q ui.Query, format string, args ...any) error {
	el, err := cv.WaitUntil(q)
	if err != nil {
		return err
	}
	if el == nil {
		return ui.NotFoundf("Could not find the "+format, args...)
	}
	return cv.ClickElement(el)
}

// DeleteVersion completely removes the published version. The version which is
// used by environments, activation keys or content hosts could not be deleted:
// the UI disables "Next" button and KindOperationFailed is returned.
func (cv *ContentViews) DeleteVersion(name, version string) error {
	logger := log.WithFunc("contentviews", "DeleteVersion").With("name", name, "version", version)

	if err := cv.open(name); err != nil {
		return err
	}
	if err := cv.clickExisting(cv.F("contentviews.remove_ver", version), "version %q", version); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("contentviews.completely_remove_checkbox")); err != nil {
		return err
	}
	next := cv.Q("contentviews.next_button")
	enabled, err := cv.Driver.IsEnabled(next)
	if err != nil {
		return ui.DriverError(err, "Unable to check %s", next)
	}
	if !enabled {
		logger.Warn("Version is still in use")
		return ui.OperationFailedf("Could not delete %q of content view %q: version is still in use", version, name)
	}
	if err = cv.Click(next); err != nil {
		return err
	}
	if err = cv.Click(cv.Q("contentviews.confirm_remove_ver")); err != nil {
		return err
	}
	if err = cv.Progress.Wait(version); err != nil {
		return err
	}
	logger.Info("Version deleted")
	return nil
}

// ValidateVersionDeleted makes sure the version is not listed in content view anymore
func (cv *ContentViews) ValidateVersionDeleted(name, version string) error {
	if err := cv.open(name); err != nil {
		return err
	}
	el, err := cv.Driver.Find(cv.F("contentviews.version_name", version))
	if err != nil {
		return ui.DriverError(err, "Unable to look for version %q", version)
	}
	if el != nil {
		return ui.OperationFailedf("Selected version %q was not deleted successfully", version)
	}
	return nil
}

// ValidateVersionCannotBeDeleted checks that version can't be deleted since it
// has activation key or content host assigned to it
func (cv *ContentViews) ValidateVersionCannotBeDeleted(name, version string) error {
	if err := cv.open(name); err != nil {
		return err
	}
	if err := cv.clickExisting(cv.F("contentviews.remove_ver", version), "version %q", version); err != nil {
		return err
	}
	next := cv.Q("contentviews.next_button")
	if err := cv.Click(next); err != nil {
		return err
	}
	if _, err := cv.WaitUntil(cv.Q("contentviews.affected_button")); err != nil {
		return err
	}
	if _, err := cv.WaitUntil(next); err != nil {
		return err
	}
	if err := cv.WaitForAjax(); err != nil {
		return err
	}
	enabled, err := cv.Driver.IsEnabled(next)
	if err != nil {
		return ui.DriverError(err, "Unable to check %s", next)
	}
	if enabled {
		return ui.OperationFailedf(`"Next" button is enabled when it should not`)
	}
	return nil
}

// RemoveVersionFromEnvironments removes the version from the given lifecycle
// environments keeping it in the others
func (cv *ContentViews) RemoveVersionFromEnvironments(name, version string, envs []string) error {
	logger := log.WithFunc("contentviews", "RemoveVersionFromEnvironments").With("name", name, "version", version)

	if err := cv.SearchAndClick(name); err != nil {
		return err
	}
	if err := cv.clickExisting(cv.F("contentviews.remove_ver", version), "version %q", version); err != nil {
		return err
	}
	completely := cv.Q("contentviews.completely_remove_checkbox")
	if err := ui.DriverError(cv.Driver.SetChecked(completely, false), "Unable to uncheck %s", completely); err != nil {
		return err
	}

	rows, err := cv.Driver.FindAll(cv.Q("contentviews.delete_version_environments"))
	if err != nil {
		return ui.DriverError(err, "Unable to list environments")
	}
	all := make([]string, 0, len(rows))
	for _, row := range rows {
		txt, err := row.Text()
		if err != nil {
			return ui.DriverError(err, "Unable to read environment name")
		}
		all = append(all, strings.TrimSpace(txt))
	}
	for _, env := range envs {
		if !slices.Contains(all, env) {
			return ui.NotFoundf("Version %q is not in environment %q", version, env)
		}
	}

	for _, env := range all {
		q := cv.F("contentviews.delete_version_environment_checkbox", env)
		if err = ui.DriverError(cv.Driver.SetChecked(q, slices.Contains(envs, env)), "Unable to set %s", q); err != nil {
			return err
		}
	}
	if err = cv.Click(cv.Q("contentviews.next_button")); err != nil {
		return err
	}
	if err = cv.Click(cv.Q("contentviews.confirm_remove_ver")); err != nil {
		return err
	}
	if err = cv.Progress.Wait(version); err != nil {
		return err
	}
	logger.Info("Version removed from environments", "envs", envs)
	return nil
}

// MoveAffectedComponents moves activation keys and content hosts to another
// environment and content view during the version removal
func (cv *ContentViews) MoveAffectedComponents(env, contentView string) error {
	if err := cv.clickExisting(cv.F("contentviews.change_env", env), "environment %q", env); err != nil {
		return err
	}
	sel := cv.Q("contentviews.change_cv")
	if err := ui.DriverError(cv.Driver.Select(sel, contentView), "Unable to select content view %q", contentView); err != nil {
		return err
	}
	return cv.Click(cv.Q("contentviews.next_button"))
}

// VersionSearch opens content view versions and looks for the version
func (cv *ContentViews) VersionSearch(name, version string) (ui.Element, error) {
	if err := cv.open(name); err != nil {
		return nil, err
	}
	if err := cv.Click(cv.Q("tab.contentviews.versions")); err != nil {
		return nil, err
	}
	return cv.tableSearch(version, cv.F("contentviews.version_name", version), "version %q", version)
}

// tableSearch filters the details table and waits for the row
func (cv *ContentViews) tableSearch(term string, row ui.Query, format string, args ...any) (ui.Element, error) {
	search := cv.Q("common.kt_table_search")
	if err := ui.DriverError(cv.Driver.AssignValue(search, term), "Unable to fill %s", search); err != nil {
		return nil, err
	}
	if err := cv.Click(cv.Q("common.kt_table_search_button")); err != nil {
		return nil, err
	}
	el, err := cv.WaitUntil(row)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, ui.NotFoundf("Could not find the "+format, args...)
	}
	return el, nil
}

// openVersionTab opens the version and switches to its tab
func (cv *ContentViews) openVersionTab(name, version, tab string) error {
	el, err := cv.VersionSearch(name, version)
	if err != nil {
		return err
	}
	if err = cv.ClickElement(el); err != nil {
		return err
	}
	return cv.Click(cv.Q(tab))
}

// PackageSearch looks for the package in content view version, the package
// version is optional
func (cv *ContentViews) PackageSearch(name, version, pkgName, pkgVersion string) (ui.Element, error) {
	if err := cv.openVersionTab(name, version, "tab.contentviews.version_packages"); err != nil {
		return nil, err
	}
	term := pkgName
	if pkgVersion != "" {
		term = fmt.Sprintf("name = %q and version = %q", pkgName, pkgVersion)
	}
	return cv.tableSearch(term, cv.F("contentviews.version.package_name", pkgName), "package %q", pkgName)
}

// PuppetModuleSearch looks for the puppet module in content view version
func (cv *ContentViews) PuppetModuleSearch(name, version, module string) (ui.Element, error) {
	if err := cv.openVersionTab(name, version, "tab.contentviews.version_puppet_modules"); err != nil {
		return nil, err
	}
	return cv.tableSearch(module, cv.F("contentviews.version.puppet_module_name", module), "puppet module %q", module)
}

// columns reads texts of all the cells of the given columns, rows are
// truncated to the shortest column
func (cv *ContentViews) columns(keys ...string) ([][]string, error) {
	var cols [][]string
	rows := -1
	for _, key := range keys {
		els, err := cv.Driver.FindAll(cv.F(key, ""))
		if err != nil {
			return nil, ui.DriverError(err, "Unable to list %s", key)
		}
		col := make([]string, 0, len(els))
		for _, el := range els {
			txt, err := el.Text()
			if err != nil {
				return nil, ui.DriverError(err, "Unable to read %s", key)
			}
			col = append(col, strings.TrimSpace(txt))
		}
		if rows < 0 || len(col) < rows {
			rows = len(col)
		}
		cols = append(cols, col)
	}

	out := make([][]string, rows)
	for i := range out {
		out[i] = make([]string, len(cols))
		for c := range cols {
			out[i][c] = cols[c][i]
		}
	}
	return out, nil
}

// FetchVersionPackages returns all the packages of the content view version
func (cv *ContentViews) FetchVersionPackages(name, version string) ([]Package, error) {
	if err := cv.openVersionTab(name, version, "tab.contentviews.version_packages"); err != nil {
		return nil, err
	}
	rows, err := cv.columns("contentviews.version.package_name", "contentviews.version.package_version",
		"contentviews.version.package_release", "contentviews.version.package_arch")
	if err != nil {
		return nil, err
	}
	out := make([]Package, 0, len(rows))
	for _, r := range rows {
		out = append(out, Package{Name: r[0], Version: r[1], Release: r[2], Arch: r[3]})
	}
	return out, nil
}

// FetchVersionErrata returns all the errata of the content view version
func (cv *ContentViews) FetchVersionErrata(name, version string) ([]Erratum, error) {
	if err := cv.openVersionTab(name, version, "tab.contentviews.version_errata"); err != nil {
		return nil, err
	}
	rows, err := cv.columns("contentviews.version.errata_id", "contentviews.version.errata_title",
		"contentviews.version.errata_type")
	if err != nil {
		return nil, err
	}
	out := make([]Erratum, 0, len(rows))
	for _, r := range rows {
		out = append(out, Erratum{ID: r[0], Title: r[1], Type: r[2]})
	}
	return out, nil
}
