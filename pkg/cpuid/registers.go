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

// The packed register catalog: 32-bit registers subdivided into named
// numeric subfields. Unlike flag registers these carry quantities, not
// presence bits, so each declares its own coverage rule per field.

// Signature is leaf 0x1 eax, the processor version information.
//
// The whole signature identifies a processor model; no cross-model
// compatibility reasoning is attempted, so coverage requires the raw
// register to match exactly, reserved bits included.
type Signature uint32

var signatureFields = []bitfield{
	{"stepping_id", 0, 4, compareExact},
	{"model", 4, 4, compareExact},
	{"family_id", 8, 4, compareExact},
	{"processor_type", 12, 2, compareExact},
	{"extended_model_id", 16, 4, compareExact},
	{"extended_family_id", 20, 8, compareExact},
}

// SteppingID is bits 3:0.
func (s Signature) SteppingID() uint8 { return getField(uint32(s), signatureFields[0]) }

// Model is bits 7:4.
func (s Signature) Model() uint8 { return getField(uint32(s), signatureFields[1]) }

// FamilyID is bits 11:8.
func (s Signature) FamilyID() uint8 { return getField(uint32(s), signatureFields[2]) }

// ProcessorType is bits 13:12.
func (s Signature) ProcessorType() uint8 { return getField(uint32(s), signatureFields[3]) }

// ExtendedModelID is bits 19:16.
func (s Signature) ExtendedModelID() uint8 { return getField(uint32(s), signatureFields[4]) }

// ExtendedFamilyID is bits 27:20.
func (s Signature) ExtendedFamilyID() uint8 { return getField(uint32(s), signatureFields[5]) }

// SetSteppingID sets bits 3:0.
func (s *Signature) SetSteppingID(v uint8) error { return s.set(signatureFields[0], v) }

// SetModel sets bits 7:4.
func (s *Signature) SetModel(v uint8) error { return s.set(signatureFields[1], v) }

// SetFamilyID sets bits 11:8.
func (s *Signature) SetFamilyID(v uint8) error { return s.set(signatureFields[2], v) }

// SetProcessorType sets bits 13:12.
func (s *Signature) SetProcessorType(v uint8) error { return s.set(signatureFields[3], v) }

// SetExtendedModelID sets bits 19:16.
func (s *Signature) SetExtendedModelID(v uint8) error { return s.set(signatureFields[4], v) }

// SetExtendedFamilyID sets bits 27:20.
func (s *Signature) SetExtendedFamilyID(v uint8) error { return s.set(signatureFields[5], v) }

func (s *Signature) set(f bitfield, v uint8) error {
	n, err := setField(uint32(*s), f, v)
	if err != nil {
		return err
	}
	*s = Signature(n)
	return nil
}

// Fields returns the labeled subfields as a name to value mapping.
func (s Signature) Fields() map[string]uint8 { return fieldMap(uint32(s), signatureFields) }

// SignatureFromFields assembles a signature from a name to value
// mapping; every declared field must be present and in range.
func SignatureFromFields(m map[string]uint8) (Signature, error) {
	v, err := fromFieldMap(m, signatureFields)
	return Signature(v), err
}

func (s Signature) covers(o Signature) bool { return s == o }

// MiscInfo is leaf 0x1 ebx, the brand, CLFLUSH and topology bytes.
//
// The local APIC ID is a per-boot identity with no capability
// semantics and is ignored by coverage.
type MiscInfo uint32

var miscInfoFields = []bitfield{
	{"brand_index", 0, 8, compareExact},
	{"clflush_line_size", 8, 8, compareExact},
	{"max_logical_ids", 16, 8, compareMin},
	{"local_apic_id", 24, 8, compareIgnore},
}

// BrandIndex is bits 7:0.
func (m MiscInfo) BrandIndex() uint8 { return getField(uint32(m), miscInfoFields[0]) }

// CLFlushLineSize is bits 15:8, in 8-byte units.
func (m MiscInfo) CLFlushLineSize() uint8 { return getField(uint32(m), miscInfoFields[1]) }

// MaxLogicalIDs is bits 23:16, the maximum number of addressable
// logical processor IDs.
func (m MiscInfo) MaxLogicalIDs() uint8 { return getField(uint32(m), miscInfoFields[2]) }

// LocalAPICID is bits 31:24.
func (m MiscInfo) LocalAPICID() uint8 { return getField(uint32(m), miscInfoFields[3]) }

// SetBrandIndex sets bits 7:0.
func (m *MiscInfo) SetBrandIndex(v uint8) error { return m.set(miscInfoFields[0], v) }

// SetCLFlushLineSize sets bits 15:8.
func (m *MiscInfo) SetCLFlushLineSize(v uint8) error { return m.set(miscInfoFields[1], v) }

// SetMaxLogicalIDs sets bits 23:16.
func (m *MiscInfo) SetMaxLogicalIDs(v uint8) error { return m.set(miscInfoFields[2], v) }

// SetLocalAPICID sets bits 31:24.
func (m *MiscInfo) SetLocalAPICID(v uint8) error { return m.set(miscInfoFields[3], v) }

func (m *MiscInfo) set(f bitfield, v uint8) error {
	n, err := setField(uint32(*m), f, v)
	if err != nil {
		return err
	}
	*m = MiscInfo(n)
	return nil
}

// Fields returns the labeled subfields as a name to value mapping.
func (m MiscInfo) Fields() map[string]uint8 { return fieldMap(uint32(m), miscInfoFields) }

// MiscInfoFromFields assembles the register from a name to value
// mapping; every declared field must be present and in range.
func MiscInfoFromFields(f map[string]uint8) (MiscInfo, error) {
	v, err := fromFieldMap(f, miscInfoFields)
	return MiscInfo(v), err
}

func (m MiscInfo) covers(o MiscInfo) bool {
	return coversFields(uint32(m), uint32(o), miscInfoFields)
}

// InterruptThresholds is leaf 0x6 ebx. Bits 3:0 count the interrupt
// thresholds in the digital thermal sensor.
type InterruptThresholds uint32

var interruptThresholdsFields = []bitfield{
	{"interrupt_thresholds", 0, 4, compareMin},
}

// Count is bits 3:0.
func (t InterruptThresholds) Count() uint8 {
	return getField(uint32(t), interruptThresholdsFields[0])
}

// SetCount sets bits 3:0.
func (t *InterruptThresholds) SetCount(v uint8) error {
	n, err := setField(uint32(*t), interruptThresholdsFields[0], v)
	if err != nil {
		return err
	}
	*t = InterruptThresholds(n)
	return nil
}

// Fields returns the labeled subfields as a name to value mapping.
func (t InterruptThresholds) Fields() map[string]uint8 {
	return fieldMap(uint32(t), interruptThresholdsFields)
}

// InterruptThresholdsFromFields assembles the register from a name to
// value mapping.
func InterruptThresholdsFromFields(m map[string]uint8) (InterruptThresholds, error) {
	v, err := fromFieldMap(m, interruptThresholdsFields)
	return InterruptThresholds(v), err
}

func (t InterruptThresholds) covers(o InterruptThresholds) bool {
	return coversFields(uint32(t), uint32(o), interruptThresholdsFields)
}

// AddressSizes is leaf 0x80000008 eax, the physical and linear address
// widths. Both are capability floors for coverage: a snapshot taken on
// a machine with wider addresses cannot be resumed on narrower ones.
type AddressSizes uint32

var addressSizesFields = []bitfield{
	{"physical_address_bits", 0, 8, compareMin},
	{"linear_address_bits", 8, 8, compareMin},
}

// PhysicalAddressBits is bits 7:0.
func (a AddressSizes) PhysicalAddressBits() uint8 {
	return getField(uint32(a), addressSizesFields[0])
}

// LinearAddressBits is bits 15:8.
func (a AddressSizes) LinearAddressBits() uint8 {
	return getField(uint32(a), addressSizesFields[1])
}

// SetPhysicalAddressBits sets bits 7:0.
func (a *AddressSizes) SetPhysicalAddressBits(v uint8) error {
	return a.set(addressSizesFields[0], v)
}

// SetLinearAddressBits sets bits 15:8.
func (a *AddressSizes) SetLinearAddressBits(v uint8) error {
	return a.set(addressSizesFields[1], v)
}

func (a *AddressSizes) set(f bitfield, v uint8) error {
	n, err := setField(uint32(*a), f, v)
	if err != nil {
		return err
	}
	*a = AddressSizes(n)
	return nil
}

// Fields returns the labeled subfields as a name to value mapping.
func (a AddressSizes) Fields() map[string]uint8 {
	return fieldMap(uint32(a), addressSizesFields)
}

// AddressSizesFromFields assembles the register from a name to value
// mapping.
func AddressSizesFromFields(m map[string]uint8) (AddressSizes, error) {
	v, err := fromFieldMap(m, addressSizesFields)
	return AddressSizes(v), err
}

func (a AddressSizes) covers(o AddressSizes) bool {
	return coversFields(uint32(a), uint32(o), addressSizesFields)
}

// CoreInfo is leaf 0x80000008 ecx, core count and APIC ID topology.
type CoreInfo uint32

var coreInfoFields = []bitfield{
	{"physical_cores_minus_1", 0, 8, compareMin},
	{"log2_max_apic_id", 12, 4, compareMin},
	{"perf_tsc_size", 16, 2, compareMin},
}

// PhysicalCores is bits 7:0, the physical core count minus one.
func (c CoreInfo) PhysicalCores() uint8 { return getField(uint32(c), coreInfoFields[0]) }

// Log2MaxAPICID is bits 15:12.
func (c CoreInfo) Log2MaxAPICID() uint8 { return getField(uint32(c), coreInfoFields[1]) }

// PerfTSCSize is bits 17:16.
func (c CoreInfo) PerfTSCSize() uint8 { return getField(uint32(c), coreInfoFields[2]) }

// SetPhysicalCores sets bits 7:0.
func (c *CoreInfo) SetPhysicalCores(v uint8) error { return c.set(coreInfoFields[0], v) }

// SetLog2MaxAPICID sets bits 15:12.
func (c *CoreInfo) SetLog2MaxAPICID(v uint8) error { return c.set(coreInfoFields[1], v) }

// SetPerfTSCSize sets bits 17:16.
func (c *CoreInfo) SetPerfTSCSize(v uint8) error { return c.set(coreInfoFields[2], v) }

func (c *CoreInfo) set(f bitfield, v uint8) error {
	n, err := setField(uint32(*c), f, v)
	if err != nil {
		return err
	}
	*c = CoreInfo(n)
	return nil
}

// Fields returns the labeled subfields as a name to value mapping.
func (c CoreInfo) Fields() map[string]uint8 { return fieldMap(uint32(c), coreInfoFields) }

// CoreInfoFromFields assembles the register from a name to value
// mapping.
func CoreInfoFromFields(m map[string]uint8) (CoreInfo, error) {
	v, err := fromFieldMap(m, coreInfoFields)
	return CoreInfo(v), err
}

func (c CoreInfo) covers(o CoreInfo) bool {
	return coversFields(uint32(c), uint32(o), coreInfoFields)
}
