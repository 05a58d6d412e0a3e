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

package util

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Duration is a simple wrapper to add serialization functions and the
// day-based units which are handy in long running job timeouts
type Duration time.Duration

var unitMap = map[string]Duration{
	"d": 24,
	"D": 24,
	"w": 7 * 24,
	"W": 7 * 24,
	"M": 30 * 24,
	"y": 365 * 24,
	"Y": 365 * 24,
}

var durationPartRe = regexp.MustCompile(`(\d*\.\d+|\d+)[^\d.]*`)

// ParseDuration parses a duration string with the extended units
// Example: "10m", "1.5h", "1d12h" or "-1w"
func ParseDuration(s string) (time.Duration, error) {
	var d Duration
	if err := d.StoreStringDuration(s); err != nil {
		return 0, err
	}
	return time.Duration(d), nil
}

// MarshalJSON represents Duration as JSON string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON parses JSON string or number of nanoseconds as Duration
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.StoreStringDuration(value)
	default:
		return fmt.Errorf("incorrect duration type %T", v)
	}
}

// UnmarshalText allows to use Duration in yaml and env configuration
func (d *Duration) UnmarshalText(b []byte) error {
	return d.StoreStringDuration(string(b))
}

// StoreStringDuration parses a duration string into a duration
// Added time units: d(D), w(W), M, y(Y)
func (d *Duration) StoreStringDuration(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty duration")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	strs := durationPartRe.FindAllString(s, -1)
	if len(strs) == 0 || strings.Join(strs, "") != s {
		return fmt.Errorf("invalid duration %q", s)
	}
	var sumDur Duration
	for _, str := range strs {
		var hours Duration = 1
		for unit, h := range unitMap {
			if strings.HasSuffix(str, unit) {
				str = strings.TrimSuffix(str, unit) + "h"
				hours = h
				break
			}
		}

		dur, err := time.ParseDuration(str)
		if err != nil {
			return err
		}

		sumDur += Duration(dur) * hours
	}

	if neg {
		sumDur = -sumDur
	}

	*d = sumDur

	return nil
}

// String returns the standard Go representation
func (d Duration) String() string {
	return time.Duration(d).String()
}
