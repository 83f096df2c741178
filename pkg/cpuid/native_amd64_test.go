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

//go:build amd64
// +build amd64

package cpuid

import (
	"testing"
)

func TestHostVendor(t *testing.T) {
	c := HostCPUID()
	switch v := c.VendorInfo.VendorID(); v {
	case "GenuineIntel", "AuthenticAMD":
	default:
		t.Logf("unrecognized vendor %q", v)
	}
	if c.VendorInfo.MaxFunction == 0 {
		t.Errorf("host reports max function 0")
	}
}

func TestHostSelfCoverage(t *testing.T) {
	c := HostCPUID()
	if !c.Covers(c) {
		t.Errorf("host does not cover itself")
	}
	if err := c.CheckCompatible(c); err != nil {
		t.Errorf("CheckCompatible(self) = %v, want nil", err)
	}
}

func TestNativeUnmodeledIsZero(t *testing.T) {
	var n Native
	if got := n.Query(In{Eax: 0x2}); got != (Out{}) {
		t.Errorf("Query(unmodeled leaf) = %+v, want zero", got)
	}
}

func TestHostStaticRoundTrip(t *testing.T) {
	c := HostCPUID()
	if got := New(c.ToStatic()); *got != *c {
		t.Errorf("New(ToStatic()) differs from host aggregate")
	}
}
