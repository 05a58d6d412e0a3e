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

// Package locators describes how UI elements are resolved: a locator is a
// (strategy, template) pair which becomes a concrete query once the
// runtime value is substituted into the template
package locators

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Strategy tells the driver how to interpret the query value
type Strategy string

const (
	XPath    Strategy = "xpath"
	CSS      Strategy = "css"
	ID       Strategy = "id"
	Name     Strategy = "name"
	LinkText Strategy = "link_text"
)

// Placeholder is substituted by the runtime value in templates
const Placeholder = "%s"

// Valid returns true if the strategy is known
func (s Strategy) Valid() bool {
	switch s {
	case XPath, CSS, ID, Name, LinkText:
		return true
	}
	return false
}

// Locator is an immutable (strategy, template) description of an element
type Locator struct {
	Strategy Strategy
	Template string
}

// Query is a concrete lookup against the live UI tree
type Query struct {
	Strategy Strategy
	Value    string
}

// New creates a locator
func New(strategy Strategy, template string) Locator {
	return Locator{Strategy: strategy, Template: template}
}

// Templated returns true if the locator expects a runtime value
func (l Locator) Templated() bool {
	return strings.Contains(l.Template, Placeholder)
}

// Format substitutes the value into the template placeholder. Locators
// without placeholder are returned as is.
func (l Locator) Format(value string) Query {
	return Query{Strategy: l.Strategy, Value: strings.Replace(l.Template, Placeholder, value, 1)}
}

// Query returns the locator as a query without substitution
func (l Locator) Query() Query {
	return Query{Strategy: l.Strategy, Value: l.Template}
}

// IsZero returns true for the empty query
func (q Query) IsZero() bool {
	return q.Strategy == "" && q.Value == ""
}

func (q Query) String() string {
	return string(q.Strategy) + "=" + q.Value
}

// UnmarshalYAML reads locator from the two element sequence [strategy, template]
func (l *Locator) UnmarshalYAML(node *yaml.Node) error {
	var pair []string
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("line %d: locator should be a [strategy, template] pair: %v", node.Line, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: locator should be a [strategy, template] pair, got %d items", node.Line, len(pair))
	}
	l.Strategy = Strategy(pair[0])
	l.Template = pair[1]
	if !l.Strategy.Valid() {
		return fmt.Errorf("line %d: unknown locator strategy %q", node.Line, pair[0])
	}
	if l.Template == "" {
		return fmt.Errorf("line %d: empty locator template", node.Line)
	}
	if strings.Count(l.Template, Placeholder) > 1 {
		return fmt.Errorf("line %d: locator template %q has more than one placeholder", node.Line, l.Template)
	}
	return nil
}

// MarshalYAML writes locator as [strategy, template]
func (l Locator) MarshalYAML() (any, error) {
	return []string{string(l.Strategy), l.Template}, nil
}
