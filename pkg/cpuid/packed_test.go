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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSignatureFields(t *testing.T) {
	// Nehalem: family 6, extended model 1, model 0xa, stepping 0.
	s := Signature(0x000106a0)
	if got, want := s.FamilyID(), uint8(6); got != want {
		t.Errorf("FamilyID() = %d, want %d", got, want)
	}
	if got, want := s.ExtendedModelID(), uint8(1); got != want {
		t.Errorf("ExtendedModelID() = %d, want %d", got, want)
	}
	if got, want := s.Model(), uint8(0xa); got != want {
		t.Errorf("Model() = %d, want %d", got, want)
	}
	if got, want := s.SteppingID(), uint8(0); got != want {
		t.Errorf("SteppingID() = %d, want %d", got, want)
	}
}

func TestSetFieldRejectsOverflow(t *testing.T) {
	s := Signature(0x000106a0)
	err := s.SetSteppingID(16)
	if err == nil {
		t.Fatalf("SetSteppingID(16) succeeded, want overflow error")
	}
	var oe *FieldOverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("SetSteppingID(16) = %v, want *FieldOverflowError", err)
	}
	if oe.Max != 15 {
		t.Errorf("overflow Max = %d, want 15", oe.Max)
	}
	if s != 0x000106a0 {
		t.Errorf("failed set modified value: %#x", uint32(s))
	}
}

func TestSetFieldKeepsNeighbors(t *testing.T) {
	s := Signature(0x000106a0)
	if err := s.SetSteppingID(15); err != nil {
		t.Fatalf("SetSteppingID(15) failed: %v", err)
	}
	if got, want := uint32(s), uint32(0x000106af); got != want {
		t.Errorf("after SetSteppingID(15): %#x, want %#x", got, want)
	}
	if got, want := s.Model(), uint8(0xa); got != want {
		t.Errorf("neighbor Model() changed to %d, want %d", got, want)
	}
}

func TestMiscInfoFieldMapRoundTrip(t *testing.T) {
	m := MiscInfo(0x12345678)
	got, err := MiscInfoFromFields(m.Fields())
	if err != nil {
		t.Fatalf("MiscInfoFromFields failed: %v", err)
	}
	// All 32 bits of leaf 1 ebx are named fields, so the map form is
	// lossless here.
	if got != m {
		t.Errorf("round trip of %#x = %#x", uint32(m), uint32(got))
	}
}

func TestFromFieldsMissing(t *testing.T) {
	fields := MiscInfo(0x12345678).Fields()
	delete(fields, "clflush_line_size")
	_, err := MiscInfoFromFields(fields)
	if err == nil {
		t.Fatalf("MiscInfoFromFields succeeded with missing field")
	}
	var me *MissingFieldError
	if !errors.As(err, &me) {
		t.Fatalf("MiscInfoFromFields = %v, want *MissingFieldError", err)
	}
	if me.Field != "clflush_line_size" {
		t.Errorf("missing field = %q, want %q", me.Field, "clflush_line_size")
	}
}

func TestFromFieldsOverflow(t *testing.T) {
	fields := InterruptThresholds(0).Fields()
	fields["interrupt_thresholds"] = 16
	if _, err := InterruptThresholdsFromFields(fields); err == nil {
		t.Errorf("InterruptThresholdsFromFields accepted out-of-range value")
	}
}

func TestFieldNames(t *testing.T) {
	got := CoreInfo(0).Fields()
	want := map[string]uint8{
		"physical_cores_minus_1": 0,
		"log2_max_apic_id":       0,
		"perf_tsc_size":          0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapFormIsLossyForReservedBits(t *testing.T) {
	// Bits 8..11 of leaf 0x80000008 ecx are reserved and have no named
	// field; the map form drops them.
	c := CoreInfo(0x00000f10)
	got, err := CoreInfoFromFields(c.Fields())
	if err != nil {
		t.Fatalf("CoreInfoFromFields failed: %v", err)
	}
	if got != CoreInfo(0x00000010) {
		t.Errorf("round trip of %#x = %#x, want reserved bits cleared", uint32(c), uint32(got))
	}
}
