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
	"vmcheck.dev/vmcheck/pkg/kvm"
)

// ToEntries converts the aggregate to a KVM entry list, one entry per
// modeled (function, index) pair in catalog order.
func (c *CPUID) ToEntries() *kvm.EntryList {
	entries := make([]kvm.Entry, 0, len(catalog))
	for _, l := range catalog {
		out := l.read(c)
		entries = append(entries, kvm.Entry{
			Function: l.function,
			Index:    l.index,
			Eax:      out.Eax,
			Ebx:      out.Ebx,
			Ecx:      out.Ecx,
			Edx:      out.Edx,
		})
	}
	return kvm.NewEntryList(entries)
}

// entryFunction adapts a KVM entry list to the Function interface.
// Pairs the list does not carry resolve to zero registers.
type entryFunction struct {
	list *kvm.EntryList
}

// Query implements Function.Query.
func (f *entryFunction) Query(in In) Out {
	e, ok := f.list.Get(in.Eax, in.Ecx)
	if !ok {
		return Out{}
	}
	return Out{Eax: e.Eax, Ebx: e.Ebx, Ecx: e.Ecx, Edx: e.Edx}
}

// FromEntries builds an aggregate from a KVM entry list, typically the
// result of kvm.GetSupportedCPUID. Modeled pairs absent from the list
// come back zero.
func FromEntries(list *kvm.EntryList) *CPUID {
	return New(&entryFunction{list: list})
}
