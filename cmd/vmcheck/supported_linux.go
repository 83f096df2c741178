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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"vmcheck.dev/vmcheck/pkg/cpuid"
	"vmcheck.dev/vmcheck/pkg/kvm"
)

func init() {
	extraCommands = append(extraCommands, new(Supported))
}

// Supported implements subcommands.Command for the "kvm-supported"
// command.
type Supported struct {
	raw bool
}

// Name implements subcommands.Command.Name.
func (*Supported) Name() string {
	return "kvm-supported"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Supported) Synopsis() string {
	return "show the CPUID feature model KVM can expose to a guest"
}

// Usage implements subcommands.Command.Usage.
func (*Supported) Usage() string {
	return `kvm-supported [-raw]

The kvm-supported command queries /dev/kvm for the CPUID entries the
hypervisor can expose to a guest and prints the resulting feature model
as a YAML template. With -raw, it prints the entries themselves instead.

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Supported) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&s.raw, "raw", false, "print raw KVM entries instead of the feature model")
}

// Execute implements subcommands.Command.Execute.
func (s *Supported) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	list, err := kvm.GetSupportedCPUID()
	if err != nil {
		logrus.Errorf("querying KVM: %v", err)
		return subcommands.ExitFailure
	}
	logrus.Debugf("KVM reported %d CPUID entries", list.Len())

	if s.raw {
		for e := range list.All() {
			fmt.Printf("function=%#010x index=%#x flags=%#x eax=%#010x ebx=%#010x ecx=%#010x edx=%#010x\n",
				e.Function, e.Index, e.Flags, e.Eax, e.Ebx, e.Ecx, e.Edx)
		}
		return subcommands.ExitSuccess
	}

	if err := cpuid.FromEntries(list).EncodeTemplate(os.Stdout); err != nil {
		logrus.Errorf("encoding template: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
