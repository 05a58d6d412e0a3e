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
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satelliteqe/robottelo/lib/locators"
	"github.com/satelliteqe/robottelo/lib/ui"
	"github.com/satelliteqe/robottelo/lib/ui/contentviews"
	"github.com/satelliteqe/robottelo/lib/ui/uitest"
)

type testingT interface {
	require.TestingT
	Helper()
}

type page struct {
	cv  *contentviews.ContentViews
	drv *uitest.Driver
	reg *locators.Registry
}

// newPage creates content views page with one existing content view
func newPage(t testingT, name string) *page {
	t.Helper()
	reg, err := locators.Default()
	require.NoError(t, err)
	drv := uitest.New()
	cv, err := contentviews.New(drv, reg)
	require.NoError(t, err)
	cv.SetClock(drv.Clock)

	p := &page{cv: cv, drv: drv, reg: reg}
	p.put("common.kt_search", "common.kt_search_button")
	if name != "" {
		drv.Add(reg.Format("contentviews.key_name", name), &uitest.Node{Content: name})
	}
	return p
}

func (p *page) q(key string) ui.Query             { return p.reg.Query(key) }
func (p *page) f(key, value string) ui.Query      { return p.reg.Format(key, value) }
func (p *page) clicked(key string) bool           { return p.drv.Clicked(p.q(key)) }
func (p *page) index(kind string, q ui.Query) int { return p.drv.Index(kind, q.String()) }

func (p *page) put(keys ...string) {
	for _, key := range keys {
		p.drv.Put(p.q(key))
	}
}

// putFilter makes the filter page reachable
func (p *page) putFilter(filter string) {
	p.put("tab.contentviews.content", "contentviews.content_filters",
		"contentviews.search_filters", "contentviews.search_button")
	p.drv.Put(p.f("contentviews.select_filter_name", filter))
}

func Test_new_validates_locators(t *testing.T) {
	reg, err := locators.Load(strings.NewReader(`contentviews.key_name: [xpath, "//a[.='%s']"]`))
	require.NoError(t, err)

	_, err = contentviews.New(uitest.New(), reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contentviews.publish")
}

func Test_create(t *testing.T) {
	p := newPage(t, "")
	p.put("contentviews.new", "common.name", "common.label", "common.description",
		"contentviews.composite", "common.create")

	err := p.cv.Create("cv1", contentviews.CreateOptions{Label: "cv_1", Description: "test", Composite: true})
	require.NoError(t, err)

	assert.Equal(t, "cv1", p.drv.Node(p.q("common.name")).Value)
	assert.Equal(t, "cv_1", p.drv.Node(p.q("common.label")).Value)
	assert.Equal(t, "test", p.drv.Node(p.q("common.description")).Value)
	assert.True(t, p.clicked("contentviews.composite"))
	assert.Greater(t, p.index(uitest.ActClick, p.q("common.create")), p.index(uitest.ActClick, p.q("contentviews.composite")))
}

func Test_create_without_form(t *testing.T) {
	p := newPage(t, "")
	p.put("contentviews.new")

	err := p.cv.Create("cv1", contentviews.CreateOptions{})
	require.ErrorIs(t, err, ui.ErrOperationFailed)
	assert.Contains(t, err.Error(), `"cv1"`)
}

func Test_update(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("tab.contentviews.details",
		"contentviews.edit_name", "contentviews.edit_name_text", "contentviews.save_name",
		"contentviews.edit_description", "contentviews.edit_description_text", "contentviews.save_description")

	require.NoError(t, p.cv.Update("cv1", "cv2", ""))
	assert.Equal(t, "cv2", p.drv.Node(p.q("contentviews.edit_name_text")).Value)
	assert.False(t, p.clicked("contentviews.save_description"))

	err := p.cv.Update("missing", "cv3", "")
	assert.ErrorIs(t, err, ui.ErrNotFound)
}

func Test_copy(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("contentviews.copy", "contentviews.copy_name", "contentviews.copy_create")

	require.ErrorIs(t, p.cv.Copy("cv1", ""), ui.ErrInvalidArgument)
	assert.Empty(t, p.drv.Actions)

	require.NoError(t, p.cv.Copy("cv1", "cv1-copy"))
	assert.Equal(t, "cv1-copy", p.drv.Node(p.q("contentviews.copy_name")).Value)
	assert.True(t, p.clicked("contentviews.copy_create"))
}

func Test_delete(t *testing.T) {
	p := newPage(t, "cv1")
	row := p.f("contentviews.key_name", "cv1")
	p.put("contentviews.remove", "common.confirm_remove")
	p.drv.OnClick(p.q("common.confirm_remove"), func() { p.drv.Remove(row) })

	require.NoError(t, p.cv.Delete("cv1"))
	assert.ErrorIs(t, p.cv.Delete("cv1"), ui.ErrNotFound)
}

// putPublish scripts the publish form showing the version
func (p *page) putPublish(number string) {
	p.put("contentviews.publish", "contentviews.publish_comment", "common.create")
	p.drv.Put(p.q("contentviews.ver_label")).Content = "Version"
	p.drv.Put(p.q("contentviews.ver_num")).Content = number
}

func Test_publish_returns_version(t *testing.T) {
	p := newPage(t, "cv1")
	p.putPublish("1")
	progress := p.f("contentviews.publish_progress", "Version 1")
	p.drv.Presence(progress, true, true, false)

	version, err := p.cv.Publish("cv1", "first publish")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^Version \d+$`), version)
	assert.Equal(t, "Version 1", version)
	assert.Equal(t, "first publish", p.drv.Node(p.q("contentviews.publish_comment")).Value)
	assert.Equal(t, 3, p.drv.Checks(progress))
}

func Test_publish_stuck(t *testing.T) {
	p := newPage(t, "cv1")
	p.putPublish("2")
	p.drv.Presence(p.f("contentviews.publish_progress", "Version 2"), true)

	_, err := p.cv.Publish("cv1", "")
	require.ErrorIs(t, err, ui.ErrTimeout)
	assert.Empty(t, p.drv.Node(p.q("contentviews.publish_comment")).Value)
}

func Test_publish_stuck_waits_on_set_clock(t *testing.T) {
	p := newPage(t, "cv1")
	p.putPublish("2")
	p.drv.Presence(p.f("contentviews.publish_progress", "Version 2"), true)
	start := p.drv.Clock.Now()

	_, err := p.cv.Publish("cv1", "")
	require.ErrorIs(t, err, ui.ErrTimeout)
	assert.Same(t, p.drv.Clock, p.cv.Progress.Clock)
	assert.GreaterOrEqual(t, p.drv.Clock.Now().Sub(start), p.cv.Progress.Timeout)
}

func Test_publish_without_version(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("contentviews.publish")

	_, err := p.cv.Publish("cv1", "")
	assert.ErrorIs(t, err, ui.ErrOperationFailed)
}

func Test_promote(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("tab.contentviews.versions", "contentviews.promote_version")
	p.drv.Put(p.f("contentviews.promote_button", "Version 1"))
	p.drv.Put(p.f("contentviews.env_to_promote", "Dev"))

	require.NoError(t, p.cv.Promote("cv1", "Version 1", "Dev"))
	assert.True(t, p.drv.Clicked(p.f("contentviews.env_to_promote", "Dev")))
	assert.Equal(t, 1, p.drv.Checks(p.f("contentviews.publish_progress", "Version 1")))

	err := p.cv.Promote("cv1", "Version 1", "QA")
	require.ErrorIs(t, err, ui.ErrNotFound)
	assert.Contains(t, err.Error(), `"QA"`)
}

// putVersionRemoval makes the version removal wizard reachable
func (p *page) putVersionRemoval(version string, referenced bool) {
	p.drv.Put(p.f("contentviews.remove_ver", version))
	p.put("contentviews.completely_remove_checkbox", "contentviews.confirm_remove_ver", "contentviews.affected_button")
	p.drv.Put(p.q("contentviews.next_button")).Disabled = referenced
}

func Test_delete_version(t *testing.T) {
	p := newPage(t, "cv1")
	p.putVersionRemoval("Version 1", false)

	require.NoError(t, p.cv.DeleteVersion("cv1", "Version 1"))
	assert.True(t, p.clicked("contentviews.completely_remove_checkbox"))
	assert.True(t, p.clicked("contentviews.confirm_remove_ver"))
}

func Test_delete_referenced_version(t *testing.T) {
	p := newPage(t, "cv1")
	p.putVersionRemoval("Version 1", true)

	err := p.cv.DeleteVersion("cv1", "Version 1")
	require.ErrorIs(t, err, ui.ErrOperationFailed)
	assert.Contains(t, err.Error(), "still in use")
	assert.False(t, p.clicked("contentviews.next_button"))
	assert.False(t, p.clicked("contentviews.confirm_remove_ver"))
}

func Test_validate_version_deleted(t *testing.T) {
	p := newPage(t, "cv1")
	require.NoError(t, p.cv.ValidateVersionDeleted("cv1", "Version 1"))

	p.drv.Put(p.f("contentviews.version_name", "Version 1"))
	assert.ErrorIs(t, p.cv.ValidateVersionDeleted("cv1", "Version 1"), ui.ErrOperationFailed)
}

func Test_validate_version_cannot_be_deleted(t *testing.T) {
	p := newPage(t, "cv1")
	p.putVersionRemoval("Version 1", true)
	require.NoError(t, p.cv.ValidateVersionCannotBeDeleted("cv1", "Version 1"))

	p.drv.Node(p.q("contentviews.next_button")).Disabled = false
	assert.ErrorIs(t, p.cv.ValidateVersionCannotBeDeleted("cv1", "Version 1"), ui.ErrOperationFailed)
}

func Test_remove_version_from_environments(t *testing.T) {
	p := newPage(t, "cv1")
	p.putVersionRemoval("Version 1", false)
	p.drv.Node(p.q("contentviews.completely_remove_checkbox")).Checked = true
	for _, env := range []string{"Library", "Dev", "QA"} {
		p.drv.Add(p.q("contentviews.delete_version_environments"), &uitest.Node{Content: " " + env + " "})
		p.drv.Put(p.f("contentviews.delete_version_environment_checkbox", env)).Checked = true
	}

	require.NoError(t, p.cv.RemoveVersionFromEnvironments("cv1", "Version 1", []string{"Dev"}))

	assert.False(t, p.drv.Node(p.q("contentviews.completely_remove_checkbox")).Checked)
	for env, checked := range map[string]bool{"Library": false, "Dev": true, "QA": false} {
		assert.Equal(t, checked, p.drv.Node(p.f("contentviews.delete_version_environment_checkbox", env)).Checked, env)
	}
	assert.True(t, p.clicked("contentviews.confirm_remove_ver"))

	err := p.cv.RemoveVersionFromEnvironments("cv1", "Version 1", []string{"Prod"})
	assert.ErrorIs(t, err, ui.ErrNotFound)
}

func Test_move_affected_components(t *testing.T) {
	p := newPage(t, "")
	p.drv.Put(p.f("contentviews.change_env", "Library"))
	p.put("contentviews.change_cv", "contentviews.next_button")

	require.NoError(t, p.cv.MoveAffectedComponents("Library", "Default Organization View"))
	assert.Equal(t, "Default Organization View", p.drv.Node(p.q("contentviews.change_cv")).Value)
	assert.True(t, p.clicked("contentviews.next_button"))
}

func Test_fetch_version_content(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("tab.contentviews.versions", "common.kt_table_search", "common.kt_table_search_button",
		"tab.contentviews.version_packages", "tab.contentviews.version_errata")
	p.drv.Put(p.f("contentviews.version_name", "Version 1"))
	for _, row := range [][]string{{"bear", "4.1", "1", "noarch"}, {"camel", "0.1", "1", "noarch"}} {
		for i, key := range []string{"package_name", "package_version", "package_release", "package_arch"} {
			p.drv.Add(p.f("contentviews.version."+key, ""), &uitest.Node{Content: row[i]})
		}
	}
	p.drv.Add(p.f("contentviews.version.errata_id", ""), &uitest.Node{Content: "RHEA-2012:0001"})
	p.drv.Add(p.f("contentviews.version.errata_title", ""), &uitest.Node{Content: "Gorilla_Erratum"})
	p.drv.Add(p.f("contentviews.version.errata_type", ""), &uitest.Node{Content: "Enhancement"})
	// Incomplete row is not reported
	p.drv.Add(p.f("contentviews.version.errata_id", ""), &uitest.Node{Content: "RHSA-2012:0055"})

	pkgs, err := p.cv.FetchVersionPackages("cv1", "Version 1")
	require.NoError(t, err)
	assert.Equal(t, []contentviews.Package{
		{Name: "bear", Version: "4.1", Release: "1", Arch: "noarch"},
		{Name: "camel", Version: "0.1", Release: "1", Arch: "noarch"},
	}, pkgs)
	assert.Equal(t, "Version 1", p.drv.Node(p.q("common.kt_table_search")).Value)

	errata, err := p.cv.FetchVersionErrata("cv1", "Version 1")
	require.NoError(t, err)
	assert.Equal(t, []contentviews.Erratum{{ID: "RHEA-2012:0001", Title: "Gorilla_Erratum", Type: "Enhancement"}}, errata)
}

func Test_package_search(t *testing.T) {
	p := newPage(t, "cv1")
	p.put("tab.contentviews.versions", "common.kt_table_search", "common.kt_table_search_button",
		"tab.contentviews.version_packages")
	p.drv.Put(p.f("contentviews.version_name", "Version 1"))
	p.drv.Put(p.f("contentviews.version.package_name", "bear"))

	_, err := p.cv.PackageSearch("cv1", "Version 1", "bear", "4.1")
	require.NoError(t, err)
	assert.Equal(t, `name = "bear" and version = "4.1"`, p.drv.Node(p.q("common.kt_table_search")).Value)

	_, err = p.cv.PackageSearch("cv1", "Version 1", "walrus", "")
	assert.ErrorIs(t, err, ui.ErrNotFound)

	_, err = p.cv.VersionSearch("cv1", "Version 9")
	assert.ErrorIs(t, err, ui.ErrNotFound)
}
