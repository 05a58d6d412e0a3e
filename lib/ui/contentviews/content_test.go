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

package contentviews_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satelliteqe/robottelo/lib/ui"
	"github.com/satelliteqe/robottelo/lib/ui/contentviews"
	"github.com/satelliteqe/robottelo/lib/ui/uitest"
)

func Test_add_remove_repos_rejects_type(t *testing.T) {
	p := newPage(t, "cv1")

	err := p.cv.AddRemoveRepos("cv1", []string{"repo-a"}, ui.Add, "ostree")
	require.ErrorIs(t, err, ui.ErrInvalidArgument)
	assert.Empty(t, p.drv.Actions)
}

func Test_add_remove_repos(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("tab.contentviews.content", "contentviews.content_repo", "tab.contentviews.docker_content",
		"tab.contentviews.repo_add", "tab.contentviews.repo_remove", "contentviews.repo_search",
		"contentviews.add_repo", "contentviews.remove_repo")
	p.drv.Put(p.f("contentviews.select_repo", "repo-a"))
	p.drv.OnClick(p.q("contentviews.add_repo"), func() { p.drv.Put(p.q("common.alert.success_sub_form")) })

	require.NoError(t, p.cv.AddRemoveRepos("cv1", []string{"repo-a"}, ui.Add, contentviews.RepoYum))
	assert.True(t, p.clicked("contentviews.content_repo"))
	assert.True(t, p.clicked("contentviews.add_repo"))
	assert.Equal(t, "repo-a", p.drv.Node(p.q("contentviews.repo_search")).Value)

	p.drv.Actions = nil
	err := p.cv.AddRemoveRepos("cv1", []string{"repo-b"}, ui.Remove, contentviews.RepoDocker)
	require.ErrorIs(t, err, ui.ErrNotFound)
	assert.True(t, p.clicked("tab.contentviews.docker_content"))
	assert.False(t, p.clicked("contentviews.remove_repo"))
}

func Test_add_remove_cv(t *testing.T) {
	p := newPage(t, "composite1")
	p.put("tab.contentviews.content_views", "tab.contentviews.cv_add", "tab.contentviews.cv_remove",
		"contentviews.add_cv", "contentviews.remove_cv")
	member := p.f("contentviews.select_cv", "cv1")
	p.drv.Put(member)

	require.NoError(t, p.cv.AddRemoveCV("composite1", []string{"cv1"}, ui.Add))
	assert.True(t, p.clicked("contentviews.add_cv"))

	// Remove verifies the view is back in the available list
	p.drv.OnClick(p.q("contentviews.remove_cv"), func() { p.drv.Remove(member) })
	err := p.cv.AddRemoveCV("composite1", []string{"cv1"}, ui.Remove)
	assert.ErrorIs(t, err, ui.ErrOperationFailed)
}

func Test_add_puppet_module(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("contentviews.add_module", "contentviews.search_filters", "contentviews.search_button",
		"contentviews.version_filter")
	p.drv.Put(p.f("contentviews.select_module", "httpd"))
	p.drv.Put(p.f("contentviews.select_module_ver", "puppetlabs"))

	err := p.cv.AddPuppetModule("cv1", "httpd", "puppetlabs")
	require.ErrorIs(t, err, ui.ErrNotFound)
	assert.Contains(t, err.Error(), "puppet modules")

	p.put("tab.contentviews.puppet_modules")
	require.NoError(t, p.cv.AddPuppetModule("cv1", "httpd", "puppetlabs"))
	assert.Equal(t, "puppetlabs", p.drv.Node(p.q("contentviews.version_filter")).Value)
	assert.True(t, p.drv.Clicked(p.f("contentviews.select_module_ver", "puppetlabs")))
}

func Test_fetch_puppet_module(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("tab.contentviews.puppet_modules", "contentviews.search_filters")
	p.drv.Add(p.f("contentviews.get_module_name", "httpd"), &uitest.Node{Content: " httpd "})

	name, err := p.cv.FetchPuppetModule("cv1", "httpd")
	require.NoError(t, err)
	assert.Equal(t, "httpd", name)

	_, err = p.cv.FetchPuppetModule("cv1", "ntp")
	assert.ErrorIs(t, err, ui.ErrNotFound)
}

func Test_puppet_module_search(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("tab.contentviews.versions", "common.kt_table_search", "common.kt_table_search_button",
		"tab.contentviews.version_puppet_modules")
	p.drv.Put(p.f("contentviews.version_name", "Version 1"))
	p.drv.Put(p.f("contentviews.version.puppet_module_name", "httpd"))

	_, err := p.cv.PuppetModuleSearch("cv1", "Version 1", "httpd")
	require.NoError(t, err)
	assert.Equal(t, "httpd", p.drv.Node(p.q("common.kt_table_search")).Value)
}

func Test_fetch_yum_content_repo_name(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("tab.contentviews.content", "contentviews.yum_repositories")

	_, err := p.cv.FetchYumContentRepoName("cv1")
	require.ErrorIs(t, err, ui.ErrNotFound)

	p.drv.Put(p.q("contentviews.repo_name")).Content = "Fedora 25"
	name, err := p.cv.FetchYumContentRepoName("cv1")
	require.NoError(t, err)
	assert.Equal(t, "Fedora 25", name)
}
