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
	"fmt"
	"strconv"
	"strings"
)

// Flags is a 32-bit register in which each bit independently indicates
// that one feature is present. The type parameter pins a value to a
// single register, so that leaf 1 ecx bits cannot be compared against
// leaf 7 ebx bits by accident.
//
// Bits this catalog does not name are reserved, and reserved bits are
// carried verbatim through construction and both codecs: a processor
// newer than the catalog may set them, and dropping them would
// misrepresent what was actually found on the hardware.
type Flags[T any] uint32

// Bits returns the raw register value, reserved bits included.
func (f Flags[T]) Bits() uint32 {
	return uint32(f)
}

// Contains reports whether every bit set in other is also set in f.
//
// This is, bit for bit, the coverage rule for flag registers.
func (f Flags[T]) Contains(other Flags[T]) bool {
	return f&other == other
}

// IsEmpty reports whether no bits are set.
func (f Flags[T]) IsEmpty() bool {
	return f == 0
}

// flagSeparator groups the encoded bit string into nibbles for
// readability. Decoding accepts the separator anywhere and in any
// quantity.
const flagSeparator = '_'

// String returns the register as a 32-character binary string, most
// significant bit first, nibble-grouped with underscores.
func (f Flags[T]) String() string {
	var sb strings.Builder
	sb.Grow(39)
	for i := 31; i >= 0; i-- {
		sb.WriteByte('0' + byte((f>>uint(i))&1))
		if i > 0 && i%4 == 0 {
			sb.WriteByte(flagSeparator)
		}
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler.
func (f Flags[T]) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Separators are
// stripped; what remains must be exactly 32 binary digits, otherwise a
// *DecodeError is returned.
func (f *Flags[T]) UnmarshalText(text []byte) error {
	s := strings.ReplaceAll(string(text), string(flagSeparator), "")
	if len(s) != 32 {
		return &DecodeError{Value: string(text), Reason: fmt.Sprintf("%d binary digits, want 32", len(s))}
	}
	v, err := strconv.ParseUint(s, 2, 32)
	if err != nil {
		return &DecodeError{Value: string(text), Reason: "not a base-2 numeral"}
	}
	*f = Flags[T](v)
	return nil
}

// DecodeError describes a malformed serialized flag register: wrong
// length or characters outside the binary digit set.
type DecodeError struct {
	Value  string
	Reason string
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding flag register %q: %s", e.Value, e.Reason)
}
