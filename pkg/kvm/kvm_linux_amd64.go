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

//go:build linux && amd64
// +build linux,amd64

package kvm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	_KVM_GET_SUPPORTED_CPUID = 0xc008ae05
	_KVM_NR_CPUID_ENTRIES    = 256
)

// rawEntry mirrors kvm_cpuid_entry2 for the ioctl buffer.
type rawEntry struct {
	function uint32
	index    uint32
	flags    uint32
	eax      uint32
	ebx      uint32
	ecx      uint32
	edx      uint32
	_        [3]uint32
}

// rawList mirrors kvm_cpuid2 with a fixed maximum entry count.
type rawList struct {
	nr      uint32
	_       uint32
	entries [_KVM_NR_CPUID_ENTRIES]rawEntry
}

// GetSupportedCPUID queries the running kernel for the CPUID entries
// KVM can expose to a guest, via KVM_GET_SUPPORTED_CPUID on /dev/kvm.
func GetSupportedCPUID() (*EntryList, error) {
	fd, err := unix.Open("/dev/kvm", unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening /dev/kvm: %w", err)
	}
	defer unix.Close(fd)

	raw := &rawList{nr: _KVM_NR_CPUID_ENTRIES}
	if _, _, errno := unix.RawSyscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		_KVM_GET_SUPPORTED_CPUID,
		uintptr(unsafe.Pointer(raw))); errno != 0 {
		return nil, fmt.Errorf("KVM_GET_SUPPORTED_CPUID failed: %w", errno)
	}
	if raw.nr > _KVM_NR_CPUID_ENTRIES {
		return nil, fmt.Errorf("kernel reported %d CPUID entries, max %d", raw.nr, _KVM_NR_CPUID_ENTRIES)
	}

	entries := make([]Entry, raw.nr)
	for i := range entries {
		e := &raw.entries[i]
		entries[i] = Entry{
			Function: e.function,
			Index:    e.index,
			Flags:    e.flags,
			Eax:      e.eax,
			Ebx:      e.ebx,
			Ecx:      e.ecx,
			Edx:      e.edx,
		}
	}
	return &EntryList{entries: entries}, nil
}
