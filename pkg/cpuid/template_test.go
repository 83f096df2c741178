// Copyright 2024 The vmcheck Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cpuid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTemplateRoundTrip(t *testing.T) {
	c := New(testStatic())
	var buf bytes.Buffer
	if err := c.EncodeTemplate(&buf); err != nil {
		t.Fatalf("EncodeTemplate failed: %v", err)
	}
	got, err := DecodeTemplate(&buf)
	if err != nil {
		t.Fatalf("DecodeTemplate failed: %v", err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("template round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateIsReadable(t *testing.T) {
	c := New(testStatic())
	var buf bytes.Buffer
	if err := c.EncodeTemplate(&buf); err != nil {
		t.Fatalf("EncodeTemplate failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"vendor_id: GenuineIntel",
		"max_function: 31",
		"clflush_line_size: 8",
		"physical_address_bits: 39",
		"leaf_0x80000001:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("template missing %q:\n%s", want, out)
		}
	}
}

func TestTemplateRejectsBadFlagString(t *testing.T) {
	c := New(testStatic())
	var buf bytes.Buffer
	if err := c.EncodeTemplate(&buf); err != nil {
		t.Fatalf("EncodeTemplate failed: %v", err)
	}
	doc := strings.Replace(buf.String(), "0000_0000_0000_0000_0000_0000_0000_0000", "0000", 1)
	if _, err := DecodeTemplate(strings.NewReader(doc)); err == nil {
		t.Errorf("DecodeTemplate accepted a short flag string")
	}
}

func TestTemplateRejectsPackedOverflow(t *testing.T) {
	c := New(testStatic())
	var buf bytes.Buffer
	if err := c.EncodeTemplate(&buf); err != nil {
		t.Fatalf("EncodeTemplate failed: %v", err)
	}
	doc := strings.Replace(buf.String(), "stepping_id: 0", "stepping_id: 16", 1)
	if _, err := DecodeTemplate(strings.NewReader(doc)); err == nil {
		t.Errorf("DecodeTemplate accepted stepping 16 in a 4-bit field")
	}
}

func TestTemplateRejectsMissingPackedField(t *testing.T) {
	c := New(testStatic())
	var buf bytes.Buffer
	if err := c.EncodeTemplate(&buf); err != nil {
		t.Fatalf("EncodeTemplate failed: %v", err)
	}
	doc := strings.Replace(buf.String(), "stepping_id:", "stepping_idx:", 1)
	if _, err := DecodeTemplate(strings.NewReader(doc)); err == nil {
		t.Errorf("DecodeTemplate accepted a signature without stepping_id")
	}
}

func TestTemplateRejectsBadVendor(t *testing.T) {
	c := New(testStatic())
	var buf bytes.Buffer
	if err := c.EncodeTemplate(&buf); err != nil {
		t.Fatalf("EncodeTemplate failed: %v", err)
	}
	doc := strings.Replace(buf.String(), "GenuineIntel", "Intel", 1)
	if _, err := DecodeTemplate(strings.NewReader(doc)); err == nil {
		t.Errorf("DecodeTemplate accepted a 5-byte vendor ID")
	}
}
