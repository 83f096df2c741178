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

import "fmt"

// compareRule states how one packed subfield participates in coverage.
//
// The rule is part of the field's declaration so that exclusions are
// documented data rather than something to infer from the absence of a
// comparison in a covers body.
type compareRule int

const (
	// compareMin treats the field as a capability floor: the
	// reference must report at least the candidate's value.
	compareMin compareRule = iota

	// compareExact requires equality.
	compareExact

	// compareIgnore excludes the field from coverage entirely. Used
	// for identity values such as the initial local APIC ID, which
	// say nothing about available functionality.
	compareIgnore
)

// bitfield is one named subfield of a packed 32-bit register. Fields
// within a register never overlap; positions not covered by any field
// are reserved.
type bitfield struct {
	name  string
	shift uint
	width uint // 1 to 8 bits
	cmp   compareRule
}

func (f bitfield) max() uint8 {
	return uint8(1<<f.width - 1)
}

func (f bitfield) mask() uint32 {
	return uint32(1<<f.width-1) << f.shift
}

// getField extracts the field value. Pure bit extraction, no failure
// mode.
func getField(v uint32, f bitfield) uint8 {
	return uint8((v >> f.shift) & (1<<f.width - 1))
}

// setField returns v with exactly the field's bit span replaced by x.
// All other bits, reserved spans included, are untouched. A value that
// does not fit the field is rejected rather than truncated: truncation
// would silently misrepresent the capability being described.
func setField(v uint32, f bitfield, x uint8) (uint32, error) {
	if x > f.max() {
		return v, &FieldOverflowError{Field: f.name, Max: f.max()}
	}
	return v&^f.mask() | uint32(x)<<f.shift, nil
}

// fieldMap renders the labeled fields as a name to value mapping.
// Reserved bits are not representable in this form; the map codec is
// deliberately lossy for them.
func fieldMap(v uint32, fields []bitfield) map[string]uint8 {
	m := make(map[string]uint8, len(fields))
	for _, f := range fields {
		m[f.name] = getField(v, f)
	}
	return m
}

// fromFieldMap assembles a register from a name to value mapping.
// Every declared field must be present and in range.
func fromFieldMap(m map[string]uint8, fields []bitfield) (uint32, error) {
	var v uint32
	for _, f := range fields {
		x, ok := m[f.name]
		if !ok {
			return 0, &MissingFieldError{Field: f.name}
		}
		var err error
		if v, err = setField(v, f, x); err != nil {
			return 0, err
		}
	}
	return v, nil
}

// coversFields applies each field's comparison rule between a
// reference and a candidate register.
func coversFields(ref, cand uint32, fields []bitfield) bool {
	for _, f := range fields {
		switch f.cmp {
		case compareMin:
			if getField(ref, f) < getField(cand, f) {
				return false
			}
		case compareExact:
			if getField(ref, f) != getField(cand, f) {
				return false
			}
		case compareIgnore:
		}
	}
	return true
}

// FieldOverflowError is returned when a packed subfield is set to a
// value wider than the field.
type FieldOverflowError struct {
	Field string
	Max   uint8
}

// Error implements error.
func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("value does not fit packed field %s (max %d)", e.Field, e.Max)
}

// MissingFieldError is returned when a packed register is assembled
// from a mapping that omits a declared field.
type MissingFieldError struct {
	Field string
}

// Error implements error.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("packed field %s missing", e.Field)
}
