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
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeTemplate writes the aggregate to w as a YAML template. Flag
// registers render as 32-character bit strings and packed registers as
// named field maps, so a template can be reviewed and edited by hand.
//
// The template form drops the values of reserved packed bits; use the
// binary image when a byte-exact record is needed.
func (c *CPUID) EncodeTemplate(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(c)
}

// DecodeTemplate reads a YAML template produced by EncodeTemplate.
// Malformed flag strings and out-of-range or missing packed fields are
// rejected, never truncated.
func DecodeTemplate(r io.Reader) (*CPUID, error) {
	c := &CPUID{}
	if err := yaml.NewDecoder(r).Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}

// MarshalYAML implements yaml.Marshaler.MarshalYAML.
func (f Flags[T]) MarshalYAML() (any, error) {
	return f.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.UnmarshalYAML.
func (f *Flags[T]) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return f.UnmarshalText([]byte(s))
}

func unmarshalFields(node *yaml.Node) (map[string]uint8, error) {
	fields := make(map[string]uint8)
	if err := node.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// MarshalYAML implements yaml.Marshaler.MarshalYAML.
func (s Signature) MarshalYAML() (any, error) {
	return s.Fields(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.UnmarshalYAML.
func (s *Signature) UnmarshalYAML(node *yaml.Node) error {
	fields, err := unmarshalFields(node)
	if err != nil {
		return err
	}
	v, err := SignatureFromFields(fields)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.MarshalYAML.
func (m MiscInfo) MarshalYAML() (any, error) {
	return m.Fields(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.UnmarshalYAML.
func (m *MiscInfo) UnmarshalYAML(node *yaml.Node) error {
	fields, err := unmarshalFields(node)
	if err != nil {
		return err
	}
	v, err := MiscInfoFromFields(fields)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.MarshalYAML.
func (t InterruptThresholds) MarshalYAML() (any, error) {
	return t.Fields(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.UnmarshalYAML.
func (t *InterruptThresholds) UnmarshalYAML(node *yaml.Node) error {
	fields, err := unmarshalFields(node)
	if err != nil {
		return err
	}
	v, err := InterruptThresholdsFromFields(fields)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.MarshalYAML.
func (a AddressSizes) MarshalYAML() (any, error) {
	return a.Fields(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.UnmarshalYAML.
func (a *AddressSizes) UnmarshalYAML(node *yaml.Node) error {
	fields, err := unmarshalFields(node)
	if err != nil {
		return err
	}
	v, err := AddressSizesFromFields(fields)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.MarshalYAML.
func (c CoreInfo) MarshalYAML() (any, error) {
	return c.Fields(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.UnmarshalYAML.
func (c *CoreInfo) UnmarshalYAML(node *yaml.Node) error {
	fields, err := unmarshalFields(node)
	if err != nil {
		return err
	}
	v, err := CoreInfoFromFields(fields)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// vendorDoc is the template form of VendorInfo.
type vendorDoc struct {
	VendorID    string `yaml:"vendor_id"`
	MaxFunction uint32 `yaml:"max_function"`
}

// MarshalYAML implements yaml.Marshaler.MarshalYAML.
func (v VendorInfo) MarshalYAML() (any, error) {
	return vendorDoc{
		VendorID:    v.VendorID(),
		MaxFunction: v.MaxFunction,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.UnmarshalYAML.
func (v *VendorInfo) UnmarshalYAML(node *yaml.Node) error {
	var doc vendorDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	if len(doc.VendorID) != len(v.Vendor) {
		return fmt.Errorf("vendor ID must be %d bytes, got %q", len(v.Vendor), doc.VendorID)
	}
	copy(v.Vendor[:], doc.VendorID)
	v.MaxFunction = doc.MaxFunction
	return nil
}
