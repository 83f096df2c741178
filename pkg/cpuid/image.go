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
	"encoding/binary"
	"fmt"
)

// ImageSize is the size of the fixed binary image of a CPUID
// aggregate.
const ImageSize = 100

// Image byte offsets. Registers are stored little-endian in catalog
// order, vendor bytes verbatim.
const (
	imgVendor      = 0
	imgMaxFunction = 12
	imgSignature   = 16
	imgMisc        = 20
	imgLeaf1ECX    = 24
	imgLeaf1EDX    = 28
	imgLeaf6EAX    = 32
	imgLeaf6ECX    = 36
	imgLeaf6EBX    = 40
	imgLeaf7EBX    = 44
	imgLeaf7ECX    = 48
	imgLeaf7EDX    = 52
	imgLeaf7S1EAX  = 56
	imgLeafDS1EAX  = 60
	imgLeaf12EAX   = 64
	imgLeaf14EBX   = 68
	imgLeaf19EBX   = 72
	imgExt1EDX     = 76
	imgExt1ECX     = 80
	imgExt8EAX     = 84
	imgExt8EBX     = 88
	imgExt8ECX     = 92
	imgExt1FEAX    = 96
)

// MarshalBinary implements encoding.BinaryMarshaler.MarshalBinary. The
// image is lossless: reserved flag bits and identity fields are
// preserved.
func (c *CPUID) MarshalBinary() ([]byte, error) {
	b := make([]byte, ImageSize)
	copy(b[imgVendor:], c.VendorInfo.Vendor[:])
	le := binary.LittleEndian
	le.PutUint32(b[imgMaxFunction:], c.VendorInfo.MaxFunction)
	le.PutUint32(b[imgSignature:], uint32(c.FeatureInfo.Signature))
	le.PutUint32(b[imgMisc:], uint32(c.FeatureInfo.Misc))
	le.PutUint32(b[imgLeaf1ECX:], c.FeatureInfo.ECX.Bits())
	le.PutUint32(b[imgLeaf1EDX:], c.FeatureInfo.EDX.Bits())
	le.PutUint32(b[imgLeaf6EAX:], c.Thermal.EAX.Bits())
	le.PutUint32(b[imgLeaf6ECX:], c.Thermal.ECX.Bits())
	le.PutUint32(b[imgLeaf6EBX:], uint32(c.Thermal.EBX))
	le.PutUint32(b[imgLeaf7EBX:], c.Extended.Sub0.EBX.Bits())
	le.PutUint32(b[imgLeaf7ECX:], c.Extended.Sub0.ECX.Bits())
	le.PutUint32(b[imgLeaf7EDX:], c.Extended.Sub0.EDX.Bits())
	le.PutUint32(b[imgLeaf7S1EAX:], c.Extended.Sub1EAX.Bits())
	le.PutUint32(b[imgLeafDS1EAX:], c.XSave.Bits())
	le.PutUint32(b[imgLeaf12EAX:], c.SGX.Bits())
	le.PutUint32(b[imgLeaf14EBX:], c.Trace.Bits())
	le.PutUint32(b[imgLeaf19EBX:], c.KeyLocker.Bits())
	le.PutUint32(b[imgExt1EDX:], c.ExtFeatures.EDX.Bits())
	le.PutUint32(b[imgExt1ECX:], c.ExtFeatures.ECX.Bits())
	le.PutUint32(b[imgExt8EAX:], uint32(c.AddressInfo.EAX))
	le.PutUint32(b[imgExt8EBX:], c.AddressInfo.EBX.Bits())
	le.PutUint32(b[imgExt8ECX:], uint32(c.AddressInfo.ECX))
	le.PutUint32(b[imgExt1FEAX:], c.Encryption.Bits())
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.UnmarshalBinary.
func (c *CPUID) UnmarshalBinary(b []byte) error {
	if len(b) != ImageSize {
		return fmt.Errorf("cpuid image must be %d bytes, got %d", ImageSize, len(b))
	}
	copy(c.VendorInfo.Vendor[:], b[imgVendor:])
	le := binary.LittleEndian
	c.VendorInfo.MaxFunction = le.Uint32(b[imgMaxFunction:])
	c.FeatureInfo.Signature = Signature(le.Uint32(b[imgSignature:]))
	c.FeatureInfo.Misc = MiscInfo(le.Uint32(b[imgMisc:]))
	c.FeatureInfo.ECX = Leaf1ECX(le.Uint32(b[imgLeaf1ECX:]))
	c.FeatureInfo.EDX = Leaf1EDX(le.Uint32(b[imgLeaf1EDX:]))
	c.Thermal.EAX = Leaf6EAX(le.Uint32(b[imgLeaf6EAX:]))
	c.Thermal.ECX = Leaf6ECX(le.Uint32(b[imgLeaf6ECX:]))
	c.Thermal.EBX = InterruptThresholds(le.Uint32(b[imgLeaf6EBX:]))
	c.Extended.Sub0.EBX = Leaf7EBX(le.Uint32(b[imgLeaf7EBX:]))
	c.Extended.Sub0.ECX = Leaf7ECX(le.Uint32(b[imgLeaf7ECX:]))
	c.Extended.Sub0.EDX = Leaf7EDX(le.Uint32(b[imgLeaf7EDX:]))
	c.Extended.Sub1EAX = Leaf7Sub1EAX(le.Uint32(b[imgLeaf7S1EAX:]))
	c.XSave = LeafDSub1EAX(le.Uint32(b[imgLeafDS1EAX:]))
	c.SGX = Leaf12EAX(le.Uint32(b[imgLeaf12EAX:]))
	c.Trace = Leaf14EBX(le.Uint32(b[imgLeaf14EBX:]))
	c.KeyLocker = Leaf19EBX(le.Uint32(b[imgLeaf19EBX:]))
	c.ExtFeatures.EDX = ExtLeaf1EDX(le.Uint32(b[imgExt1EDX:]))
	c.ExtFeatures.ECX = ExtLeaf1ECX(le.Uint32(b[imgExt1ECX:]))
	c.AddressInfo.EAX = AddressSizes(le.Uint32(b[imgExt8EAX:]))
	c.AddressInfo.EBX = ExtLeaf8EBX(le.Uint32(b[imgExt8EBX:]))
	c.AddressInfo.ECX = CoreInfo(le.Uint32(b[imgExt8ECX:]))
	c.Encryption = ExtLeaf1FEAX(le.Uint32(b[imgExt1FEAX:]))
	return nil
}
