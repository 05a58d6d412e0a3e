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
	"strings"

	"github.com/satelliteqe/robottelo/lib/log"
	"github.com/satelliteqe/robottelo/lib/ui"
)

// repositories describes the repository tabs of the content view
func (cv *ContentViews) repositories() *ui.Collection {
	return &ui.Collection{
		Name:         "repository",
		AvailableTab: cv.Q("tab.contentviews.repo_add"),
		AssignedTab:  cv.Q("tab.contentviews.repo_remove"),
		Search:       cv.Q("contentviews.repo_search"),
		Item:         cv.Locators.Must("contentviews.select_repo"),
		AddButton:    cv.Q("contentviews.add_repo"),
		RemoveButton: cv.Q("contentviews.remove_repo"),
		Success:      cv.Q("common.alert.success_sub_form"),
		Verify:       true,
	}
}

// components describes the content view tabs of the composite view
func (cv *ContentViews) components() *ui.Collection {
	return &ui.Collection{
		Name:         "content view",
		AvailableTab: cv.Q("tab.contentviews.cv_add"),
		AssignedTab:  cv.Q("tab.contentviews.cv_remove"),
		Item:         cv.Locators.Must("contentviews.select_cv"),
		AddButton:    cv.Q("contentviews.add_cv"),
		RemoveButton: cv.Q("contentviews.remove_cv"),
		Verify:       true,
	}
}

// AddRemoveRepos adds or removes the yum or docker repositories to/from the content view
func (cv *ContentViews) AddRemoveRepos(name string, repos []string, dir ui.Direction, repoType string) error {
	var tabs []string
	switch repoType {
	case RepoYum:
		tabs = []string{"tab.contentviews.content", "contentviews.content_repo"}
	case RepoDocker:
		tabs = []string{"tab.contentviews.docker_content"}
	default:
		return ui.InvalidArgumentf("Unknown repository type %q", repoType)
	}

	if err := cv.open(name); err != nil {
		return err
	}
	for _, key := range tabs {
		if err := cv.Click(cv.Q(key)); err != nil {
			return err
		}
	}
	if err := cv.Reconcile(cv.repositories(), repos, dir); err != nil {
		return err
	}
	log.WithFunc("contentviews", "AddRemoveRepos").Info("Repositories reconciled",
		"name", name, "type", repoType, "direction", dir.String(), "repos", repos)
	return nil
}

// AddRemoveCV adds or removes the content views to/from the composite view
func (cv *ContentViews) AddRemoveCV(composite string, names []string, dir ui.Direction) error {
	if err := cv.open(composite); err != nil {
		return err
	}
	if err := cv.Click(cv.Q("tab.contentviews.content_views")); err != nil {
		return err
	}
	if err := cv.Reconcile(cv.components(), names, dir); err != nil {
		return err
	}
	log.WithFunc("contentviews", "AddRemoveCV").Info("Content views reconciled",
		"composite", composite, "direction", dir.String(), "names", names)
	return nil
}

// AddPuppetModule adds the puppet module to content view. The filter term
// selects the module by author or by version.
func (cv *ContentViews) AddPuppetModule(name, module, filterTerm string) error {
	if err := cv.open(name); err != nil {
		return err
	}
	tab, err := cv.WaitUntil(cv.Q("tab.contentviews.puppet_modules"))
	if err != nil {
		return err
	}
	if tab == nil {
		return ui.NotFoundf("Could not find tab to add puppet modules")
	}
	if err = cv.ClickElement(tab); err != nil {
		return err
	}
	if err = cv.Click(cv.Q("contentviews.add_module")); err != nil {
		return err
	}
	if err = cv.TextFieldUpdate(cv.Q("contentviews.search_filters"), module); err != nil {
		return err
	}
	if err = cv.Click(cv.Q("contentviews.search_button")); err != nil {
		return err
	}
	if err = cv.clickExisting(cv.F("contentviews.select_module", module), "puppet module %q", module); err != nil {
		return err
	}
	if err = cv.TextFieldUpdate(cv.Q("contentviews.version_filter"), filterTerm); err != nil {
		return err
	}
	if err = cv.clickExisting(cv.F("contentviews.select_module_ver", filterTerm), "puppet module %q version %q", module, filterTerm); err != nil {
		return err
	}
	log.WithFunc("contentviews", "AddPuppetModule").Info("Puppet module added", "name", name, "module", module)
	return nil
}

// FetchPuppetModule returns name of the puppet module added to content view
func (cv *ContentViews) FetchPuppetModule(name, module string) (string, error) {
	if err := cv.open(name); err != nil {
		return "", err
	}
	if err := cv.Click(cv.Q("tab.contentviews.puppet_modules")); err != nil {
		return "", err
	}
	if err := cv.TextFieldUpdate(cv.Q("contentviews.search_filters"), module); err != nil {
		return "", err
	}
	el, err := cv.WaitUntil(cv.F("contentviews.get_module_name", module))
	if err != nil {
		return "", err
	}
	if el == nil {
		return "", ui.NotFoundf("Could not find puppet module %q in content view %q", module, name)
	}
	txt, err := el.Text()
	if err != nil {
		return "", ui.DriverError(err, "Unable to read puppet module name")
	}
	return strings.TrimSpace(txt), nil
}

// FetchYumContentRepoName returns name of the yum repository of content view
func (cv *ContentViews) FetchYumContentRepoName(name string) (string, error) {
	if err := cv.open(name); err != nil {
		return "", err
	}
	if err := cv.Click(cv.Q("tab.contentviews.content")); err != nil {
		return "", err
	}
	if err := cv.Click(cv.Q("contentviews.yum_repositories")); err != nil {
		return "", err
	}
	el, err := cv.WaitUntil(cv.Q("contentviews.repo_name"))
	if err != nil {
		return "", err
	}
	if el == nil {
		return "", ui.NotFoundf("Could not find yum repository of content view %q", name)
	}
	txt, err := el.Text()
	if err != nil {
		return "", ui.DriverError(err, "Unable to get text of repository")
	}
	return strings.TrimSpace(txt), nil
}
