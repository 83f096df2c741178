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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testStatic returns a plausible Intel-looking CPUID source.
func testStatic() Static {
	return Static{
		{Eax: 0x0}: {
			Eax: 0x1f,
			Ebx: 0x756e6547, // "Genu"
			Ecx: 0x6c65746e, // "ntel"
			Edx: 0x49656e69, // "ineI"
		},
		{Eax: 0x1}: {
			Eax: 0x000106a0,
			Ebx: 0x00100800,
			Ecx: (X86FeatureSSE3 | X86FeatureAES | X86FeatureXSAVE | X86FeatureAVX).Bits(),
			Edx: (X86FeatureFPU | X86FeatureTSC | X86FeaturePAE | X86FeatureMMX | X86FeatureSSE | X86FeatureSSE2).Bits(),
		},
		{Eax: 0x6}: {
			Eax: (X86FeatureDTHERM | X86FeatureARAT).Bits(),
			Ebx: 0x2,
			Ecx: X86FeatureHWCoordFeedback.Bits(),
		},
		{Eax: 0x7}: {
			Ebx: (X86FeatureFSGSBase | X86FeatureAVX2 | X86FeatureSMEP | X86FeatureSMAP).Bits(),
			Ecx: 0,
			Edx: 0,
		},
		{Eax: 0x7, Ecx: 0x1}: {
			Eax: X86FeatureAVXVNNI.Bits(),
		},
		{Eax: 0xd, Ecx: 0x1}: {
			Eax: (X86FeatureXSAVEOPT | X86FeatureXSAVEC).Bits(),
		},
		{Eax: 0x12}:       {},
		{Eax: 0x14}:       {Ebx: X86FeaturePTWRITE.Bits()},
		{Eax: 0x19}:       {},
		{Eax: 0x80000001}: {Ecx: X86FeatureLAHF64.Bits(), Edx: (X86FeatureSYSCALL | X86FeatureNX | X86FeatureRDTSCP | X86FeatureLM).Bits()},
		{Eax: 0x80000008}: {Eax: 0x3027, Ecx: 0x4007},
		{Eax: 0x8000001f}: {},
	}
}

func TestNewReadsCatalog(t *testing.T) {
	c := New(testStatic())
	if got, want := c.VendorInfo.VendorID(), "GenuineIntel"; got != want {
		t.Errorf("VendorID() = %q, want %q", got, want)
	}
	if got, want := c.VendorInfo.MaxFunction, uint32(0x1f); got != want {
		t.Errorf("MaxFunction = %#x, want %#x", got, want)
	}
	if !c.FeatureInfo.ECX.Contains(X86FeatureAVX) {
		t.Errorf("AVX missing from leaf 1 ecx")
	}
	if got, want := c.FeatureInfo.Misc.CLFlushLineSize(), uint8(8); got != want {
		t.Errorf("CLFlushLineSize() = %d, want %d", got, want)
	}
	if got, want := c.Thermal.EBX.Count(), uint8(2); got != want {
		t.Errorf("interrupt thresholds = %d, want %d", got, want)
	}
	if got, want := c.AddressInfo.EAX.PhysicalAddressBits(), uint8(39); got != want {
		t.Errorf("PhysicalAddressBits() = %d, want %d", got, want)
	}
	if got, want := c.AddressInfo.ECX.PhysicalCores(), uint8(7); got != want {
		t.Errorf("PhysicalCores() = %d, want %d", got, want)
	}
}

func TestRegisters(t *testing.T) {
	c := New(testStatic())
	out, ok := c.Registers(0x1, 0x0)
	if !ok {
		t.Fatalf("Registers(0x1, 0x0) not modeled")
	}
	if got, want := out.Eax, uint32(0x000106a0); got != want {
		t.Errorf("leaf 1 eax = %#x, want %#x", got, want)
	}
	if _, ok := c.Registers(0x2, 0x0); ok {
		t.Errorf("Registers(0x2, 0x0) modeled, want not modeled")
	}
}

func TestCoversReflexive(t *testing.T) {
	c := New(testStatic())
	if !c.Covers(c) {
		t.Errorf("aggregate does not cover itself")
	}
}

func TestCoversMonotonic(t *testing.T) {
	src := testStatic()
	candidate := New(src)

	// A reference with one extra feature flag still covers the
	// candidate, but not the other way around.
	out := src[In{Eax: 0x1}]
	out.Ecx |= X86FeaturePOPCNT.Bits()
	src.Set(In{Eax: 0x1}, out)
	reference := New(src)

	if !reference.Covers(candidate) {
		t.Errorf("reference with extra flag does not cover candidate")
	}
	if candidate.Covers(reference) {
		t.Errorf("candidate covers reference with extra flag")
	}
}

func TestCoversVendorMismatch(t *testing.T) {
	intel := New(testStatic())

	src := testStatic()
	src.Set(In{Eax: 0x0}, Out{
		Eax: 0x1f,
		Ebx: 0x68747541, // "Auth"
		Ecx: 0x444d4163, // "cAMD"
		Edx: 0x69746e65, // "enti"
	})
	amd := New(src)

	if got, want := amd.VendorInfo.VendorID(), "AuthenticAMD"; got != want {
		t.Fatalf("VendorID() = %q, want %q", got, want)
	}
	if intel.Covers(amd) || amd.Covers(intel) {
		t.Errorf("cross-vendor coverage, want none in either direction")
	}
}

func TestCoversMaxFunction(t *testing.T) {
	candidate := New(testStatic())

	src := testStatic()
	out := src[In{Eax: 0x0}]
	out.Eax = 0x16
	src.Set(In{Eax: 0x0}, out)
	reference := New(src)

	if reference.Covers(candidate) {
		t.Errorf("reference with lower max function covers candidate")
	}
}

func TestCoversNumericMinimums(t *testing.T) {
	candidate := New(testStatic())

	src := testStatic()
	out := src[In{Eax: 0x80000008}]
	out.Eax = 0x3024 // 36 physical bits, below the candidate's 39
	src.Set(In{Eax: 0x80000008}, out)
	reference := New(src)

	if reference.Covers(candidate) {
		t.Errorf("reference with fewer physical address bits covers candidate")
	}
	if !candidate.Covers(reference) {
		t.Errorf("candidate with more physical address bits does not cover reference")
	}
}

func TestCoversIgnoresAPICID(t *testing.T) {
	candidate := New(testStatic())

	src := testStatic()
	out := src[In{Eax: 0x1}]
	out.Ebx |= 0x05000000 // local APIC ID 5
	src.Set(In{Eax: 0x1}, out)
	reference := New(src)

	if !reference.Covers(candidate) || !candidate.Covers(reference) {
		t.Errorf("local APIC ID affects coverage, want ignored")
	}
}

func TestCoversSignatureExact(t *testing.T) {
	candidate := New(testStatic())

	src := testStatic()
	out := src[In{Eax: 0x1}]
	out.Eax = 0x000106a5 // same model, later stepping
	src.Set(In{Eax: 0x1}, out)
	reference := New(src)

	// Signatures compare raw: any difference fails both directions.
	if reference.Covers(candidate) || candidate.Covers(reference) {
		t.Errorf("differing signatures cover, want exact match required")
	}
}

func TestCheckCompatible(t *testing.T) {
	reference := New(testStatic())

	src := testStatic()
	out := src[In{Eax: 0x7}]
	out.Ebx |= X86FeatureAVX512F.Bits()
	src.Set(In{Eax: 0x7}, out)
	candidate := New(src)

	err := reference.CheckCompatible(candidate)
	if err == nil {
		t.Fatalf("CheckCompatible succeeded, want leaf 0x7 mismatch")
	}
	if _, ok := err.(*ErrIncompatible); !ok {
		t.Errorf("CheckCompatible = %T, want *ErrIncompatible", err)
	}
	if !strings.Contains(err.Error(), "0x7") {
		t.Errorf("CheckCompatible = %q, want mention of leaf 0x7", err)
	}

	if err := candidate.CheckCompatible(reference); err != nil {
		t.Errorf("CheckCompatible in covering direction = %v, want nil", err)
	}
}

func TestCheckCompatibleAgreesWithCovers(t *testing.T) {
	reference := New(testStatic())
	for _, mutate := range []func(Static){
		func(s Static) {}, // identical
		func(s Static) {
			out := s[In{Eax: 0x6}]
			out.Ebx = 0x4
			s.Set(In{Eax: 0x6}, out)
		},
		func(s Static) {
			out := s[In{Eax: 0x8000001f}]
			out.Eax = X86FeatureSEV.Bits()
			s.Set(In{Eax: 0x8000001f}, out)
		},
	} {
		src := testStatic()
		mutate(src)
		candidate := New(src)
		covers := reference.Covers(candidate)
		err := reference.CheckCompatible(candidate)
		if covers != (err == nil) {
			t.Errorf("Covers = %t but CheckCompatible = %v", covers, err)
		}
	}
}

func TestStaticRoundTrip(t *testing.T) {
	c := New(testStatic())
	got := New(c.ToStatic())
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("New(ToStatic()) mismatch (-want +got):\n%s", diff)
	}
}

func TestStaticMissingLeavesAreZero(t *testing.T) {
	c := New(Static{})
	if c.VendorInfo.MaxFunction != 0 || !c.FeatureInfo.ECX.IsEmpty() {
		t.Errorf("empty source produced non-zero aggregate")
	}
	// A zero aggregate is still self-consistent.
	if !c.Covers(c) {
		t.Errorf("zero aggregate does not cover itself")
	}
}
