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

// leafIndex binds a (function, index) pair to the aggregate fields
// that hold its registers. The catalog is closed: these are the only
// pairs the model queries, stores and serializes.
type leafIndex struct {
	function uint32
	index    uint32
	read     func(*CPUID) Out
	write    func(*CPUID, Out)
}

var catalog = []leafIndex{
	{
		function: 0x0,
		read: func(c *CPUID) Out {
			bx, cx, dx := regsFromVendor(c.VendorInfo.Vendor)
			return Out{Eax: c.VendorInfo.MaxFunction, Ebx: bx, Ecx: cx, Edx: dx}
		},
		write: func(c *CPUID, out Out) {
			c.VendorInfo.MaxFunction = out.Eax
			c.VendorInfo.Vendor = vendorFromRegs(out.Ebx, out.Ecx, out.Edx)
		},
	},
	{
		function: 0x1,
		read: func(c *CPUID) Out {
			return Out{
				Eax: uint32(c.FeatureInfo.Signature),
				Ebx: uint32(c.FeatureInfo.Misc),
				Ecx: c.FeatureInfo.ECX.Bits(),
				Edx: c.FeatureInfo.EDX.Bits(),
			}
		},
		write: func(c *CPUID, out Out) {
			c.FeatureInfo.Signature = Signature(out.Eax)
			c.FeatureInfo.Misc = MiscInfo(out.Ebx)
			c.FeatureInfo.ECX = Leaf1ECX(out.Ecx)
			c.FeatureInfo.EDX = Leaf1EDX(out.Edx)
		},
	},
	{
		function: 0x6,
		read: func(c *CPUID) Out {
			return Out{
				Eax: c.Thermal.EAX.Bits(),
				Ebx: uint32(c.Thermal.EBX),
				Ecx: c.Thermal.ECX.Bits(),
			}
		},
		write: func(c *CPUID, out Out) {
			c.Thermal.EAX = Leaf6EAX(out.Eax)
			c.Thermal.EBX = InterruptThresholds(out.Ebx)
			c.Thermal.ECX = Leaf6ECX(out.Ecx)
		},
	},
	{
		function: 0x7,
		read: func(c *CPUID) Out {
			return Out{
				Ebx: c.Extended.Sub0.EBX.Bits(),
				Ecx: c.Extended.Sub0.ECX.Bits(),
				Edx: c.Extended.Sub0.EDX.Bits(),
			}
		},
		write: func(c *CPUID, out Out) {
			c.Extended.Sub0.EBX = Leaf7EBX(out.Ebx)
			c.Extended.Sub0.ECX = Leaf7ECX(out.Ecx)
			c.Extended.Sub0.EDX = Leaf7EDX(out.Edx)
		},
	},
	{
		function: 0x7,
		index:    0x1,
		read: func(c *CPUID) Out {
			return Out{Eax: c.Extended.Sub1EAX.Bits()}
		},
		write: func(c *CPUID, out Out) {
			c.Extended.Sub1EAX = Leaf7Sub1EAX(out.Eax)
		},
	},
	{
		function: 0xd,
		index:    0x1,
		read: func(c *CPUID) Out {
			return Out{Eax: c.XSave.Bits()}
		},
		write: func(c *CPUID, out Out) {
			c.XSave = LeafDSub1EAX(out.Eax)
		},
	},
	{
		function: 0x12,
		read: func(c *CPUID) Out {
			return Out{Eax: c.SGX.Bits()}
		},
		write: func(c *CPUID, out Out) {
			c.SGX = Leaf12EAX(out.Eax)
		},
	},
	{
		function: 0x14,
		read: func(c *CPUID) Out {
			return Out{Ebx: c.Trace.Bits()}
		},
		write: func(c *CPUID, out Out) {
			c.Trace = Leaf14EBX(out.Ebx)
		},
	},
	{
		function: 0x19,
		read: func(c *CPUID) Out {
			return Out{Ebx: c.KeyLocker.Bits()}
		},
		write: func(c *CPUID, out Out) {
			c.KeyLocker = Leaf19EBX(out.Ebx)
		},
	},
	{
		function: 0x80000001,
		read: func(c *CPUID) Out {
			return Out{
				Ecx: c.ExtFeatures.ECX.Bits(),
				Edx: c.ExtFeatures.EDX.Bits(),
			}
		},
		write: func(c *CPUID, out Out) {
			c.ExtFeatures.ECX = ExtLeaf1ECX(out.Ecx)
			c.ExtFeatures.EDX = ExtLeaf1EDX(out.Edx)
		},
	},
	{
		function: 0x80000008,
		read: func(c *CPUID) Out {
			return Out{
				Eax: uint32(c.AddressInfo.EAX),
				Ebx: c.AddressInfo.EBX.Bits(),
				Ecx: uint32(c.AddressInfo.ECX),
			}
		},
		write: func(c *CPUID, out Out) {
			c.AddressInfo.EAX = AddressSizes(out.Eax)
			c.AddressInfo.EBX = ExtLeaf8EBX(out.Ebx)
			c.AddressInfo.ECX = CoreInfo(out.Ecx)
		},
	},
	{
		function: 0x8000001f,
		read: func(c *CPUID) Out {
			return Out{Eax: c.Encryption.Bits()}
		},
		write: func(c *CPUID, out Out) {
			c.Encryption = ExtLeaf1FEAX(out.Eax)
		},
	},
}
