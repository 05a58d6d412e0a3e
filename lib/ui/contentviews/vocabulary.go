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

	"github.com/satelliteqe/robottelo/lib/ui"
)

// Repository types of the content view
const (
	RepoYum    = "yum"
	RepoDocker = "docker"
)

// Filter content types as shown in the new filter form
const (
	ContentPackage      = "Package"
	ContentPackageGroup = "Package Group"
	ContentErratumByID  = "Erratum - by ID"
	ContentErratumDate  = "Erratum - Date and Type"
)

// Filter types
const (
	FilterInclude = "Include"
	FilterExclude = "Exclude"
)

// Package version predicates of the filter rule
const (
	AllVersions = "All Versions"
	EqualTo     = "Equal To"
	GreaterThan = "Greater Than"
	LessThan    = "Less Than"
	Range       = "Range"
)

// Errata types of the date range filter, the order is used on uncheck
const (
	ErratumSecurity    = "security"
	ErratumEnhancement = "enhancement"
	ErratumBugfix      = "bugfix"
)

// ErrataTypes lists all the erratum types in the fixed order
var ErrataTypes = []string{ErratumSecurity, ErratumEnhancement, ErratumBugfix}

// Date types of the date range filter
const (
	DateUpdated = "updated"
	DateIssued  = "issued"
)

// DateTypes lists allowed date types
var DateTypes = []string{DateUpdated, DateIssued}

// predicate describes the value inputs and the rule type stored in the page
type predicate struct {
	fields []string // Locator keys filled by the values in order
	code   string   // Value of the rule type select in the filter rows
}

var predicates = map[string]predicate{
	AllVersions: {code: "all"},
	EqualTo:     {fields: []string{"contentviews.equal_value"}, code: "equal"},
	GreaterThan: {fields: []string{"contentviews.greater_min_value"}, code: "greater"},
	LessThan:    {fields: []string{"contentviews.less_max_value"}, code: "less"},
	Range:       {fields: []string{"contentviews.greater_min_value", "contentviews.less_max_value"}, code: "range"},
}

// PredicateArity returns number of bound values the predicate requires
func PredicateArity(name string) (int, error) {
	p, ok := predicates[name]
	if !ok {
		return 0, ui.InvalidArgumentf("Could not find valid version type %q", name)
	}
	return len(p.fields), nil
}

// ValidatePredicate checks the predicate is known and has exactly the required
// amount of values
func ValidatePredicate(name string, values []string) error {
	arity, err := PredicateArity(name)
	if err != nil {
		return err
	}
	if len(values) != arity {
		return ui.InvalidArgumentf("Version type %q requires %d values, got %d", name, arity, len(values))
	}
	return nil
}

func predicateCode(name string) (string, error) {
	p, ok := predicates[name]
	if !ok {
		return "", ui.InvalidArgumentf("Could not find valid version type %q", name)
	}
	return p.code, nil
}

// ValidateErrataTypes checks the requested errata types: nil means the types
// are not changed, otherwise at least one known type is required and every
// type can be given only once
func ValidateErrataTypes(types []string) error {
	if types == nil {
		return nil
	}
	if len(types) == 0 {
		return ui.InvalidArgumentf("Errata types is empty, minimum required: one errata type")
	}
	for i, t := range types {
		if !slices.Contains(ErrataTypes, t) {
			return ui.InvalidArgumentf("Errata type %q is not allowed", t)
		}
		if slices.Contains(types[:i], t) {
			return ui.InvalidArgumentf("Errata type %q is given more than once", t)
		}
	}
	return nil
}

// ValidateDateType checks the date type, empty means not changed
func ValidateDateType(dateType string) error {
	if dateType != "" && !slices.Contains(DateTypes, dateType) {
		return ui.InvalidArgumentf("Date type %q is not allowed", dateType)
	}
	return nil
}
