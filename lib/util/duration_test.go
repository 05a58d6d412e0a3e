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
	"fmt"
	"testing"
	"time"
)

var (
	TestDurationParseString = [][2]string{
		{`0s`, `0s`},
		{`0d`, `0s`},
		{`1d`, `24h0m0s`},
		{`10m`, `10m0s`},
		{`1.5h`, `1h30m0s`},
		{`500ms`, `500ms`},
		{`1w`, `168h0m0s`},
		{`10d5h2m3s`, `245h2m3s`},
		{`1M1d`, `744h0m0s`},
		{`-10y0w0d0h0m0s`, `-87600h0m0s`},
		{`1Y1M1W1D1h1m1s`, `9673h1m1s`},
	}
)

// Verify all the inputs will be parsed correctly
func Test_duration_parse_string(t *testing.T) {
	for _, testcase := range TestDurationParseString {
		t.Run(fmt.Sprintf("Testing `%s`", testcase[0]), func(t *testing.T) {
			out, err := ParseDuration(testcase[0])
			if err != nil || out.String() != testcase[1] {
				t.Fatalf("ParseDuration(`%s`) = `%s`, %v; want: `%s`", testcase[0], out, err, testcase[1])
			}
		})
	}
}

func Test_duration_parse_invalid(t *testing.T) {
	for _, in := range []string{``, `abc`, `10x`, `-`} {
		if _, err := ParseDuration(in); err == nil {
			t.Fatalf("ParseDuration(`%s`) expected to fail", in)
		}
	}
}

func Test_duration_json_roundtrip(t *testing.T) {
	var d Duration
	if err := d.UnmarshalJSON([]byte(`"2d"`)); err != nil {
		t.Fatalf("Unable to unmarshal: %v", err)
	}
	if time.Duration(d) != 48*time.Hour {
		t.Fatalf("Unexpected duration: %s", d)
	}
	out, err := d.MarshalJSON()
	if err != nil || string(out) != `"48h0m0s"` {
		t.Fatalf("Unexpected marshal result: %s, %v", out, err)
	}
}
