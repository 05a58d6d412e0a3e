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
	"slices"

	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/ui"
)

// PackageRule is the package entry of the package filter
type PackageRule struct {
	Name      string
	Predicate string   // One of AllVersions, EqualTo, GreaterThan, LessThan, Range
	Values    []string // Bound values, the amount depends on predicate
}

// PackageRuleUpdate selects the package rule and describes the changes, empty
// fields are not used
type PackageRuleUpdate struct {
	Name      string
	Predicate string
	Value     string

	NewName      string
	NewPredicate string
	NewValue     string
}

// ErratumDateRange are the changes of the erratum date and type filter, zero
// fields are not changed
type ErratumDateRange struct {
	Types     []string // Subset of ErrataTypes to keep checked
	DateType  string   // DateUpdated or DateIssued
	StartDate string
	EndDate   string
}

// openFilters opens content view filters tab
func (cv *ContentViews) openFilters(name string) error {
	if err := cv.open(name); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("tab.contentviews.content")); err != nil {
		return err
	}
	return cv.Click(cv.Q("contentviews.content_filters"))
}

func (cv *ContentViews) searchFilters(term string) error {
	if err := cv.TextFieldUpdate(cv.Q("contentviews.search_filters"), term); err != nil {
		return err
	}
	if err := cv.WaitForAjax(); err != nil {
		return err
	}
	return cv.Click(cv.Q("contentviews.search_button"))
}

// SearchFilter looks for the filter of content view
func (cv *ContentViews) SearchFilter(name, filter string) (ui.Element, error) {
	if err := cv.openFilters(name); err != nil {
		return nil, err
	}
	if err := cv.searchFilters(filter); err != nil {
		return nil, err
	}
	el, err := cv.WaitUntil(cv.F("contentviews.filter_name", filter))
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, ui.NotFoundf("Could not find the filter %q of content view %q", filter, name)
	}
	return el, nil
}

// GoToFilterPage opens the filter of content view
func (cv *ContentViews) GoToFilterPage(name, filter string) error {
	if err := cv.openFilters(name); err != nil {
		return err
	}
	if err := cv.searchFilters(filter); err != nil {
		return err
	}
	return cv.clickExisting(cv.F("contentviews.select_filter_name", filter), "filter %q of content view %q", filter, name)
}

// AddFilter creates content view filter of the given type (include/exclude)
// and content type (package/package group/errata)
func (cv *ContentViews) AddFilter(name, filter, contentType, filterType, description string) error {
	if contentType == "" {
		return ui.InvalidArgumentf("Could not create filter %q without content type", filter)
	}
	if filterType == "" {
		return ui.InvalidArgumentf("Could not create filter %q without filter type", filter)
	}

	if err := cv.openFilters(name); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("contentviews.new_filter")); err != nil {
		return err
	}
	field, err := cv.WaitUntil(cv.Q("common.name"))
	if err != nil {
		return err
	}
	if field == nil {
		return ui.OperationFailedf("Could not create filter %q: no name field", filter)
	}
	if err = ui.DriverError(field.TypeInto(filter), "Unable to type filter name"); err != nil {
		return err
	}
	if err = cv.selectOption("contentviews.content_type", contentType); err != nil {
		return err
	}
	if err = cv.selectOption("contentviews.type", filterType); err != nil {
		return err
	}
	if description != "" {
		if err = cv.typeInto("common.description", description); err != nil {
			return err
		}
	}
	if err = cv.Click(cv.Q("common.create")); err != nil {
		return err
	}
	log.WithFunc("contentviews", "AddFilter").Info("Filter created", "name", name, "filter", filter,
		"content_type", contentType, "type", filterType)
	return nil
}

func (cv *ContentViews) selectOption(key, option string) error {
	q := cv.Q(key)
	return ui.DriverError(cv.Driver.Select(q, option), "Unable to select %q in %s", option, q)
}

func (cv *ContentViews) setChecked(q ui.Query, checked bool) error {
	return ui.DriverError(cv.Driver.SetChecked(q, checked), "Unable to set %s to %t", q, checked)
}

// RemoveFilter removes the filters from content view
func (cv *ContentViews) RemoveFilter(name string, filters []string) error {
	if err := cv.openFilters(name); err != nil {
		return err
	}
	// Previous search term hides the filters
	search := cv.Q("contentviews.search_filters")
	if err := ui.DriverError(cv.Driver.Clear(search), "Unable to clear %s", search); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("contentviews.search_button")); err != nil {
		return err
	}
	for _, filter := range filters {
		if err := cv.clickExisting(cv.F("contentviews.select_filter_checkbox", filter), "filter %q", filter); err != nil {
			return err
		}
	}
	if err := cv.Click(cv.Q("contentviews.remove_filter")); err != nil {
		return err
	}
	log.WithFunc("contentviews", "RemoveFilter").Info("Filters removed", "name", name, "filters", filters)
	return nil
}

// SelectPackageVersionValue fills the version bounds of the package rule
func (cv *ContentViews) SelectPackageVersionValue(predicate string, values ...string) error {
	if err := ValidatePredicate(predicate, values); err != nil {
		return err
	}
	for i, key := range predicates[predicate].fields {
		if err := cv.typeInto(key, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// AddPackagesToFilter adds package rules to the package filter. All the rules
// are validated before the page is touched.
func (cv *ContentViews) AddPackagesToFilter(name, filter string, rules []PackageRule) error {
	for _, r := range rules {
		if r.Name == "" {
			return ui.InvalidArgumentf("Package name is required")
		}
		if err := ValidatePredicate(r.Predicate, r.Values); err != nil {
			return err
		}
	}

	if err := cv.GoToFilterPage(name, filter); err != nil {
		return err
	}
	for _, r := range rules {
		if err := cv.TextFieldUpdate(cv.Q("contentviews.input_pkg_name"), r.Name); err != nil {
			return err
		}
		if err := cv.selectOption("contentviews.select_pkg_version", r.Predicate); err != nil {
			return err
		}
		if err := cv.SelectPackageVersionValue(r.Predicate, r.Values...); err != nil {
			return err
		}
		if err := cv.Click(cv.Q("contentviews.add_pkg_button")); err != nil {
			return err
		}
	}
	log.WithFunc("contentviews", "AddPackagesToFilter").Info("Packages added", "name", name, "filter", filter, "count", len(rules))
	return nil
}

// packageRows returns filter rows which package input value is accepted by match
func (cv *ContentViews) packageRows(match func(string) bool) ([]ui.Element, error) {
	rows, err := cv.Driver.FindAll(cv.Q("contentviews.packages"))
	if err != nil {
		return nil, ui.DriverError(err, "Unable to list filter packages")
	}
	var out []ui.Element
	for _, row := range rows {
		// Package name is available only as input value
		val, err := row.Attribute("value")
		if err != nil {
			return nil, ui.DriverError(err, "Unable to read package name")
		}
		if match(val) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (cv *ContentViews) child(row ui.Element, key string) (ui.Element, error) {
	el, err := row.Find(cv.Q(key))
	if err != nil {
		return nil, ui.DriverError(err, "Unable to find %s", key)
	}
	if el == nil {
		return nil, ui.NotFoundf("Could not find %s in package row", key)
	}
	return el, nil
}

// RemovePackagesFromFilter removes the package rules from the package filter
func (cv *ContentViews) RemovePackagesFromFilter(name, filter string, packages []string) error {
	if err := cv.GoToFilterPage(name, filter); err != nil {
		return err
	}
	found := make(map[string]bool, len(packages))
	rows, err := cv.packageRows(func(val string) bool {
		if slices.Contains(packages, val) {
			found[val] = true
			return true
		}
		return false
	})
	if err != nil {
		return err
	}
	for _, pkg := range packages {
		if !found[pkg] {
			return ui.NotFoundf("Could not find package %q in filter %q", pkg, filter)
		}
	}

	for _, row := range rows {
		checkbox, err := cv.child(row, "contentviews.package_checkbox")
		if err != nil {
			return err
		}
		if err = cv.ClickElement(checkbox); err != nil {
			return err
		}
	}
	if err = cv.Click(cv.Q("contentviews.remove_packages")); err != nil {
		return err
	}
	log.WithFunc("contentviews", "RemovePackagesFromFilter").Info("Packages removed", "name", name, "filter", filter, "packages", packages)
	return nil
}

// UpdatePackageFilter changes the package rule of the filter. Since the same
// package could be listed several times the rule is narrowed by predicate
// and value when they are set.
func (cv *ContentViews) UpdatePackageFilter(name, filter string, upd PackageRuleUpdate) error {
	var code, newCode string
	var err error
	if upd.Predicate != "" {
		if code, err = predicateCode(upd.Predicate); err != nil {
			return err
		}
	}
	if upd.NewPredicate != "" {
		if newCode, err = predicateCode(upd.NewPredicate); err != nil {
			return err
		}
	}

	if err = cv.GoToFilterPage(name, filter); err != nil {
		return err
	}
	rows, err := cv.packageRows(func(val string) bool { return val == upd.Name })
	if err != nil {
		return err
	}
	rows, err = cv.narrow(rows, "contentviews.package_version_type", code)
	if err != nil {
		return err
	}
	rows, err = cv.narrow(rows, "contentviews.package_version_value", upd.Value)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ui.NotFoundf("Package filter %q not found in filter %q", upd.Name, filter)
	}
	row := rows[0]

	edit, err := cv.child(row, "contentviews.package_edit")
	if err != nil {
		return err
	}
	if err = cv.ClickElement(edit); err != nil {
		return err
	}
	if upd.NewName != "" {
		if err = ui.DriverError(row.AssignValue(upd.NewName), "Unable to set package name"); err != nil {
			return err
		}
	}
	if newCode != "" {
		if err = cv.assignChild(row, "contentviews.package_version_type", newCode); err != nil {
			return err
		}
	}
	if upd.NewValue != "" {
		if err = cv.assignChild(row, "contentviews.package_version_value", upd.NewValue); err != nil {
			return err
		}
	}
	save, err := cv.child(row, "contentviews.package_save")
	if err != nil {
		return err
	}
	if err = cv.ClickElement(save); err != nil {
		return err
	}
	log.WithFunc("contentviews", "UpdatePackageFilter").Info("Package rule updated", "name", name, "filter", filter, "package", upd.Name)
	return nil
}

// narrow keeps the rows which child value equals to the wanted one
func (cv *ContentViews) narrow(rows []ui.Element, key, want string) ([]ui.Element, error) {
	if want == "" {
		return rows, nil
	}
	var out []ui.Element
	for _, row := range rows {
		el, err := row.Find(cv.Q(key))
		if err != nil {
			return nil, ui.DriverError(err, "Unable to find %s", key)
		}
		if el == nil {
			continue
		}
		val, err := el.Attribute("value")
		if err != nil {
			return nil, ui.DriverError(err, "Unable to read %s", key)
		}
		if val == want {
			out = append(out, row)
		}
	}
	return out, nil
}

func (cv *ContentViews) assignChild(row ui.Element, key, value string) error {
	el, err := cv.child(row, key)
	if err != nil {
		return err
	}
	return ui.DriverError(el.AssignValue(value), "Unable to set %s", key)
}

// UpdateFilterAffectedRepos limits the filter to the given repositories
func (cv *ContentViews) UpdateFilterAffectedRepos(name, filter string, repos []string) error {
	if err := cv.GoToFilterPage(name, filter); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("tab.contentviews.filter_affected_repos")); err != nil {
		return err
	}
	if err := cv.setChecked(cv.Q("contentviews.affected_repos_radio"), true); err != nil {
		return err
	}
	boxes, err := cv.Driver.FindAll(cv.Q("contentviews.affected_repos_checkboxes"))
	if err != nil {
		return ui.DriverError(err, "Unable to list repositories")
	}
	for _, box := range boxes {
		if err = ui.DriverError(box.SetChecked(false), "Unable to uncheck repository"); err != nil {
			return err
		}
	}
	for _, repo := range repos {
		if err = cv.setChecked(cv.F("contentviews.affected_repo_checkbox", repo), true); err != nil {
			return err
		}
	}
	if err = cv.Click(cv.Q("contentviews.filter_update_repos")); err != nil {
		return err
	}
	log.WithFunc("contentviews", "UpdateFilterAffectedRepos").Info("Affected repositories updated", "name", name, "filter", filter, "repos", repos)
	return nil
}

// selectAndApply switches the filter tab, checks all the items and applies the action
func (cv *ContentViews) selectAndApply(name, filter, tab, item string, items []string, button, kind string) error {
	if err := cv.GoToFilterPage(name, filter); err != nil {
		return err
	}
	if err := cv.Click(cv.Q(tab)); err != nil {
		return err
	}
	for _, it := range items {
		if err := cv.clickExisting(cv.F(item, it), "%s %q", kind, it); err != nil {
			return err
		}
	}
	return cv.Click(cv.Q(button))
}

// AddRemovePackageGroupsToFilter adds or removes package groups to/from the filter
func (cv *ContentViews) AddRemovePackageGroupsToFilter(name, filter string, groups []string, dir ui.Direction) error {
	tab, button := "tab.contentviews.pkg_group_add", "contentviews.add_pkg_group"
	if dir == ui.Remove {
		tab, button = "tab.contentviews.pkg_group_remove", "contentviews.remove_pkg_group"
	}
	err := cv.selectAndApply(name, filter, tab, "contentviews.select_pkg_group_checkbox", groups, button, "package group")
	if err != nil {
		return err
	}
	log.WithFunc("contentviews", "AddRemovePackageGroupsToFilter").Info("Package groups applied",
		"name", name, "filter", filter, "direction", dir.String(), "groups", groups)
	return nil
}

// AddRemoveErrataToFilter adds or removes errata to/from the filter
func (cv *ContentViews) AddRemoveErrataToFilter(name, filter string, ids []string, dir ui.Direction) error {
	tab, button := "tab.contentviews.errata_add", "contentviews.add_errata"
	if dir == ui.Remove {
		tab, button = "tab.contentviews.errata_remove", "contentviews.remove_errata"
	}
	err := cv.selectAndApply(name, filter, tab, "contentviews.select_errata_checkbox", ids, button, "erratum")
	if err != nil {
		return err
	}
	log.WithFunc("contentviews", "AddRemoveErrataToFilter").Info("Errata applied",
		"name", name, "filter", filter, "direction", dir.String(), "errata", ids)
	return nil
}

// EditErratumDateRangeFilter changes the erratum date and type filter. The
// arguments are validated before any interaction with the page. When
// openFilter is false the filter page should be already opened.
func (cv *ContentViews) EditErratumDateRangeFilter(name, filter string, edit ErratumDateRange, openFilter bool) error {
	if err := ValidateErrataTypes(edit.Types); err != nil {
		return err
	}
	if err := ValidateDateType(edit.DateType); err != nil {
		return err
	}

	if openFilter {
		if err := cv.GoToFilterPage(name, filter); err != nil {
			return err
		}
	}
	if edit.Types != nil {
		// The page disables the last checked type, so all the wanted types
		// are checked before the others are unchecked
		for _, t := range edit.Types {
			if err := cv.setChecked(cv.F("contentviews.erratum_type_checkbox", t), true); err != nil {
				return err
			}
		}
		for _, t := range ErrataTypes {
			if slices.Contains(edit.Types, t) {
				continue
			}
			if err := cv.setChecked(cv.F("contentviews.erratum_type_checkbox", t), false); err != nil {
				return err
			}
		}
	}
	if edit.DateType != "" {
		if err := cv.Click(cv.F("contentviews.erratum_date_type", edit.DateType)); err != nil {
			return err
		}
	}
	if edit.StartDate != "" {
		if err := cv.SetCalendarDateValue("start_date", edit.StartDate); err != nil {
			return err
		}
	}
	if edit.EndDate != "" {
		if err := cv.SetCalendarDateValue("end_date", edit.EndDate); err != nil {
			return err
		}
	}
	if err := cv.Click(cv.Q("contentviews.save_erratum")); err != nil {
		return err
	}
	log.WithFunc("contentviews", "EditErratumDateRangeFilter").Info("Erratum filter updated", "name", name, "filter", filter)
	return nil
}

// SetCalendarDateValue sets the date input and closes the calendar popup
// which hides the rest of the form
func (cv *ContentViews) SetCalendarDateValue(field, value string) error {
	q := cv.F("contentviews.calendar_date_input", field)
	if err := ui.DriverError(cv.Driver.AssignValue(q, value), "Unable to set %s", q); err != nil {
		return err
	}
	return cv.Click(cv.F("contentviews.calendar_date_button", field))
}
