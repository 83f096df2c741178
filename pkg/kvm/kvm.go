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

// Package kvm exchanges CPUID data with the Linux KVM hypervisor in
// its kvm_cpuid2 wire layout.
package kvm

import (
	"encoding/binary"
	"fmt"
	"iter"
)

// Entry mirrors struct kvm_cpuid_entry2 from the KVM ABI.
type Entry struct {
	Function uint32
	Index    uint32
	Flags    uint32
	Eax      uint32
	Ebx      uint32
	Ecx      uint32
	Edx      uint32
	_        [3]uint32
}

// EntryList is an ordered list of KVM CPUID entries. Order is
// preserved from construction; duplicates are allowed and Get resolves
// to the first match, as KVM itself does.
type EntryList struct {
	entries []Entry
}

// NewEntryList builds a list from the given entries. The slice is
// copied; the caller keeps ownership of its argument.
func NewEntryList(entries []Entry) *EntryList {
	l := &EntryList{entries: make([]Entry, len(entries))}
	copy(l.entries, entries)
	return l
}

// Len returns the number of entries.
func (l *EntryList) Len() int {
	return len(l.entries)
}

// Get returns the first entry with the given function and index, and
// whether one exists.
func (l *EntryList) Get(function, index uint32) (Entry, bool) {
	for _, e := range l.entries {
		if e.Function == function && e.Index == index {
			return e, true
		}
	}
	return Entry{}, false
}

// At returns the i-th entry. It panics if i is out of range.
func (l *EntryList) At(i int) Entry {
	return l.entries[i]
}

// All returns an iterator over the entries in list order.
func (l *EntryList) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

const (
	// headerSize is the size of the kvm_cpuid2 header: nent plus
	// padding.
	headerSize = 8

	// entrySize is the size of one kvm_cpuid_entry2.
	entrySize = 40
)

// ToBytes encodes the list in the kvm_cpuid2 layout: a little-endian
// entry count, 4 bytes of padding, then the packed entries.
func (l *EntryList) ToBytes() []byte {
	b := make([]byte, headerSize+entrySize*len(l.entries))
	le := binary.LittleEndian
	le.PutUint32(b, uint32(len(l.entries)))
	for i, e := range l.entries {
		off := headerSize + entrySize*i
		le.PutUint32(b[off:], e.Function)
		le.PutUint32(b[off+4:], e.Index)
		le.PutUint32(b[off+8:], e.Flags)
		le.PutUint32(b[off+12:], e.Eax)
		le.PutUint32(b[off+16:], e.Ebx)
		le.PutUint32(b[off+20:], e.Ecx)
		le.PutUint32(b[off+24:], e.Edx)
	}
	return b
}

// EntryListFromBytes decodes a kvm_cpuid2 image produced by ToBytes or
// read back from the kernel. The length must match the declared entry
// count exactly.
func EntryListFromBytes(b []byte) (*EntryList, error) {
	if len(b) < headerSize {
		return nil, fmt.Errorf("kvm_cpuid2 image too short: %d bytes", len(b))
	}
	le := binary.LittleEndian
	nent := int(le.Uint32(b))
	if want := headerSize + entrySize*nent; len(b) != want {
		return nil, fmt.Errorf("kvm_cpuid2 image declares %d entries (%d bytes), got %d bytes", nent, want, len(b))
	}
	entries := make([]Entry, nent)
	for i := range entries {
		off := headerSize + entrySize*i
		entries[i] = Entry{
			Function: le.Uint32(b[off:]),
			Index:    le.Uint32(b[off+4:]),
			Flags:    le.Uint32(b[off+8:]),
			Eax:      le.Uint32(b[off+12:]),
			Ebx:      le.Uint32(b[off+16:]),
			Ecx:      le.Uint32(b[off+20:]),
			Edx:      le.Uint32(b[off+24:]),
		}
	}
	return &EntryList{entries: entries}, nil
}
