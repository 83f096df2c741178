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

// Package cpuid models the x86 CPUID feature surface of a processor
// and decides whether a virtual machine snapshot taken on one host can
// be restored on another.
//
// A CPUID aggregate is built once, from a Function source (the live
// processor via Native, or a recorded Static map), and is immutable
// afterwards. Compatibility is a one-way covers relation: a host covers
// a snapshot when every capability the snapshot's processor advertised
// is also advertised by the host. Identity fields such as the local
// APIC ID are excluded from the comparison.
package cpuid

import (
	"fmt"
)

// In is the input to a CPUID query: the function in eax and, for
// leaves with sub-leaves, the index in ecx.
type In struct {
	Eax uint32
	Ecx uint32
}

// Out is the result of a CPUID query.
type Out struct {
	Eax uint32
	Ebx uint32
	Ecx uint32
	Edx uint32
}

// Function is a CPUID instruction source.
type Function interface {
	Query(In) Out
}

// CPUID is the aggregated feature model of a single processor. It is
// built once by New and read-only from then on.
type CPUID struct {
	VendorInfo  VendorInfo     `yaml:"leaf_0x0"`
	FeatureInfo FeatureInfo    `yaml:"leaf_0x1"`
	Thermal     Thermal        `yaml:"leaf_0x6"`
	Extended    Extended       `yaml:"leaf_0x7"`
	XSave       LeafDSub1EAX   `yaml:"leaf_0xd_sub_1_eax"`
	SGX         Leaf12EAX      `yaml:"leaf_0x12_eax"`
	Trace       Leaf14EBX      `yaml:"leaf_0x14_ebx"`
	KeyLocker   Leaf19EBX      `yaml:"leaf_0x19_ebx"`
	ExtFeatures ExtFeatureInfo `yaml:"leaf_0x80000001"`
	AddressInfo AddressInfo    `yaml:"leaf_0x80000008"`
	Encryption  ExtLeaf1FEAX   `yaml:"leaf_0x8000001f_eax"`
}

// New builds a CPUID aggregate by querying fn for every modeled
// (function, index) pair. Leaves the source does not implement come
// back as all-zero registers, which is what real hardware reports for
// out-of-range functions.
func New(fn Function) *CPUID {
	c := &CPUID{}
	for _, l := range catalog {
		l.write(c, fn.Query(In{Eax: l.function, Ecx: l.index}))
	}
	return c
}

// Registers returns the raw register values the aggregate holds for
// the given (function, index) pair, and whether the pair is modeled.
func (c *CPUID) Registers(function, index uint32) (Out, bool) {
	for _, l := range catalog {
		if l.function == function && l.index == index {
			return l.read(c), true
		}
	}
	return Out{}, false
}

// Covers returns true if a snapshot taken on a processor described by
// o can run on a processor described by c. The relation is not
// symmetric: flag registers require c to be a superset, capability
// numerics require c to be at least as large, the processor signature
// must match exactly and identity fields are ignored.
func (c *CPUID) Covers(o *CPUID) bool {
	return c.VendorInfo.covers(&o.VendorInfo) &&
		c.FeatureInfo.covers(&o.FeatureInfo) &&
		c.Thermal.covers(&o.Thermal) &&
		c.Extended.covers(&o.Extended) &&
		c.XSave.Contains(o.XSave) &&
		c.SGX.Contains(o.SGX) &&
		c.Trace.Contains(o.Trace) &&
		c.KeyLocker.Contains(o.KeyLocker) &&
		c.ExtFeatures.covers(&o.ExtFeatures) &&
		c.AddressInfo.covers(&o.AddressInfo) &&
		c.Encryption.Contains(o.Encryption)
}

// ErrIncompatible is returned by CheckCompatible when the receiver
// does not cover the candidate.
type ErrIncompatible struct {
	reason string
}

// Error implements error.Error.
func (e *ErrIncompatible) Error() string {
	return e.reason
}

// CheckCompatible is Covers with a diagnostic: it returns nil when c
// covers o and an ErrIncompatible naming the first mismatched leaf
// otherwise.
func (c *CPUID) CheckCompatible(o *CPUID) error {
	switch {
	case c.VendorInfo.Vendor != o.VendorInfo.Vendor:
		return &ErrIncompatible{reason: fmt.Sprintf("vendor mismatch: %q vs %q", c.VendorInfo.VendorID(), o.VendorInfo.VendorID())}
	case c.VendorInfo.MaxFunction < o.VendorInfo.MaxFunction:
		return &ErrIncompatible{reason: fmt.Sprintf("max function 0x%x below required 0x%x", c.VendorInfo.MaxFunction, o.VendorInfo.MaxFunction)}
	case !c.FeatureInfo.covers(&o.FeatureInfo):
		return &ErrIncompatible{reason: "leaf 0x1 (feature information) not covered"}
	case !c.Thermal.covers(&o.Thermal):
		return &ErrIncompatible{reason: "leaf 0x6 (thermal and power management) not covered"}
	case !c.Extended.covers(&o.Extended):
		return &ErrIncompatible{reason: "leaf 0x7 (extended features) not covered"}
	case !c.XSave.Contains(o.XSave):
		return &ErrIncompatible{reason: "leaf 0xd (extended state) not covered"}
	case !c.SGX.Contains(o.SGX):
		return &ErrIncompatible{reason: "leaf 0x12 (SGX) not covered"}
	case !c.Trace.Contains(o.Trace):
		return &ErrIncompatible{reason: "leaf 0x14 (processor trace) not covered"}
	case !c.KeyLocker.Contains(o.KeyLocker):
		return &ErrIncompatible{reason: "leaf 0x19 (key locker) not covered"}
	case !c.ExtFeatures.covers(&o.ExtFeatures):
		return &ErrIncompatible{reason: "leaf 0x80000001 (extended processor info) not covered"}
	case !c.AddressInfo.covers(&o.AddressInfo):
		return &ErrIncompatible{reason: "leaf 0x80000008 (address sizes) not covered"}
	case !c.Encryption.Contains(o.Encryption):
		return &ErrIncompatible{reason: "leaf 0x8000001f (memory encryption) not covered"}
	}
	return nil
}
