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
	"testing"

	"github.com/google/go-cmp/cmp"

	"vmcheck.dev/vmcheck/pkg/kvm"
)

func TestEntriesRoundTrip(t *testing.T) {
	c := New(testStatic())
	list := c.ToEntries()
	got := FromEntries(list)
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("entry round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToEntriesCoversCatalog(t *testing.T) {
	list := New(testStatic()).ToEntries()
	if got, want := list.Len(), len(catalog); got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	e, ok := list.Get(0x7, 0x1)
	if !ok {
		t.Fatalf("no entry for leaf 0x7 sub-leaf 1")
	}
	if got, want := e.Eax, X86FeatureAVXVNNI.Bits(); got != want {
		t.Errorf("leaf 0x7 sub-leaf 1 eax = %#x, want %#x", got, want)
	}
}

func TestFromEntriesMissingPairs(t *testing.T) {
	// Only leaf 0 present: every other modeled pair must come back
	// zero, not fail.
	list := kvm.NewEntryList([]kvm.Entry{
		{Function: 0x0, Eax: 0x1f, Ebx: 0x756e6547, Ecx: 0x6c65746e, Edx: 0x49656e69},
	})
	c := FromEntries(list)
	if got, want := c.VendorInfo.VendorID(), "GenuineIntel"; got != want {
		t.Errorf("VendorID() = %q, want %q", got, want)
	}
	if !c.FeatureInfo.ECX.IsEmpty() || c.FeatureInfo.Signature != 0 {
		t.Errorf("absent leaf 1 did not decode as zero")
	}
}

func TestFromEntriesIgnoresUnmodeled(t *testing.T) {
	c := New(testStatic())
	entries := make([]kvm.Entry, 0, c.ToEntries().Len()+1)
	for e := range c.ToEntries().All() {
		entries = append(entries, e)
	}
	// KVM reports many leaves the model does not track; they must not
	// disturb the aggregate.
	entries = append(entries, kvm.Entry{Function: 0x2, Eax: 0xdeadbeef})
	got := FromEntries(kvm.NewEntryList(entries))
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("unmodeled entry changed aggregate (-want +got):\n%s", diff)
	}
}
