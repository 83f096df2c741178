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

// VendorInfo is leaf 0x0: the 12-byte vendor ID and the highest
// supported basic function.
type VendorInfo struct {
	Vendor      [12]byte
	MaxFunction uint32
}

// VendorID returns the vendor as a string, e.g. "GenuineIntel".
func (v *VendorInfo) VendorID() string {
	return string(v.Vendor[:])
}

// covers requires identical vendors: migrating a snapshot across
// vendors is not supported, whatever the rest of the feature sets
// say. The reference must also reach at least as many functions.
func (v *VendorInfo) covers(o *VendorInfo) bool {
	return v.Vendor == o.Vendor && v.MaxFunction >= o.MaxFunction
}

// vendorFromRegs assembles the 12-byte vendor ID from ebx:edx:ecx, the
// order the hardware reports it in.
func vendorFromRegs(bx, cx, dx uint32) (r [12]byte) {
	for i := uint(0); i < 4; i++ {
		r[i] = byte(bx >> (i * 8))
		r[4+i] = byte(dx >> (i * 8))
		r[8+i] = byte(cx >> (i * 8))
	}
	return r
}

// regsFromVendor is the inverse of vendorFromRegs.
func regsFromVendor(r [12]byte) (bx, cx, dx uint32) {
	for i := uint(0); i < 4; i++ {
		bx |= uint32(r[i]) << (i * 8)
		dx |= uint32(r[4+i]) << (i * 8)
		cx |= uint32(r[8+i]) << (i * 8)
	}
	return bx, cx, dx
}

// FeatureInfo is leaf 0x1: processor signature, misc bytes and the two
// basic feature flag registers.
type FeatureInfo struct {
	Signature Signature `yaml:"signature"`
	Misc      MiscInfo  `yaml:"misc"`
	ECX       Leaf1ECX  `yaml:"ecx"`
	EDX       Leaf1EDX  `yaml:"edx"`
}

func (l *FeatureInfo) covers(o *FeatureInfo) bool {
	return l.Signature.covers(o.Signature) &&
		l.Misc.covers(o.Misc) &&
		l.ECX.Contains(o.ECX) &&
		l.EDX.Contains(o.EDX)
}

// Thermal is leaf 0x6: thermal and power management.
type Thermal struct {
	EAX Leaf6EAX            `yaml:"eax"`
	ECX Leaf6ECX            `yaml:"ecx"`
	EBX InterruptThresholds `yaml:"ebx"`
}

func (l *Thermal) covers(o *Thermal) bool {
	return l.EAX.Contains(o.EAX) &&
		l.ECX.Contains(o.ECX) &&
		l.EBX.covers(o.EBX)
}

// ExtendedSub0 holds leaf 0x7 sub-leaf 0.
type ExtendedSub0 struct {
	EBX Leaf7EBX `yaml:"ebx"`
	ECX Leaf7ECX `yaml:"ecx"`
	EDX Leaf7EDX `yaml:"edx"`
}

// Extended is leaf 0x7: extended features across sub-leaves 0 and 1.
// Sub-leaf 0 is always present; sub-leaf 1 contributes only eax.
type Extended struct {
	Sub0    ExtendedSub0 `yaml:"sub_leaf_0"`
	Sub1EAX Leaf7Sub1EAX `yaml:"sub_leaf_1_eax"`
}

func (l *Extended) covers(o *Extended) bool {
	return l.Sub0.EBX.Contains(o.Sub0.EBX) &&
		l.Sub0.ECX.Contains(o.Sub0.ECX) &&
		l.Sub0.EDX.Contains(o.Sub0.EDX) &&
		l.Sub1EAX.Contains(o.Sub1EAX)
}

// ExtFeatureInfo is leaf 0x80000001: extended processor info. Field
// order matches the register report order (edx before ecx).
type ExtFeatureInfo struct {
	EDX ExtLeaf1EDX `yaml:"edx"`
	ECX ExtLeaf1ECX `yaml:"ecx"`
}

func (l *ExtFeatureInfo) covers(o *ExtFeatureInfo) bool {
	return l.EDX.Contains(o.EDX) && l.ECX.Contains(o.ECX)
}

// AddressInfo is leaf 0x80000008: address widths, extended capability
// flags and core topology.
type AddressInfo struct {
	EAX AddressSizes `yaml:"eax"`
	EBX ExtLeaf8EBX  `yaml:"ebx"`
	ECX CoreInfo     `yaml:"ecx"`
}

func (l *AddressInfo) covers(o *AddressInfo) bool {
	return l.EAX.covers(o.EAX) &&
		l.EBX.Contains(o.EBX) &&
		l.ECX.covers(o.ECX)
}
