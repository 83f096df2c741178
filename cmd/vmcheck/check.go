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

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"vmcheck.dev/vmcheck/pkg/cpuid"
)

// Check implements subcommands.Command for the "check" command.
type Check struct {
	reference string
	explain   bool
}

// Name implements subcommands.Command.Name.
func (*Check) Name() string {
	return "check"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Check) Synopsis() string {
	return "check whether a recorded snapshot can run on a reference processor"
}

// Usage implements subcommands.Command.Usage.
func (*Check) Usage() string {
	return `check [-reference <file>] [-explain] <snapshot-file>

The check command decides whether the processor the snapshot was recorded
on is covered by the reference processor. The reference defaults to the
running processor; -reference loads it from a file instead. Files ending
in .yaml or .yml are read as templates, anything else as binary images.

Exits 0 when the snapshot is compatible and 1 when it is not.

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *Check) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.reference, "reference", "", "reference processor file, the running processor if empty")
	f.BoolVar(&c.explain, "explain", false, "report the first incompatible leaf instead of a plain verdict")
}

// Execute implements subcommands.Command.Execute.
func (c *Check) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	candidate, err := loadAggregate(f.Arg(0))
	if err != nil {
		logrus.Errorf("loading snapshot %s: %v", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	var reference *cpuid.CPUID
	if c.reference == "" {
		reference = cpuid.HostCPUID()
	} else if reference, err = loadAggregate(c.reference); err != nil {
		logrus.Errorf("loading reference %s: %v", c.reference, err)
		return subcommands.ExitFailure
	}

	if c.explain {
		if err := reference.CheckCompatible(candidate); err != nil {
			fmt.Println("incompatible:", err)
			return subcommands.ExitFailure
		}
		fmt.Println("compatible")
		return subcommands.ExitSuccess
	}

	if !reference.Covers(candidate) {
		fmt.Println("incompatible")
		return subcommands.ExitFailure
	}
	fmt.Println("compatible")
	return subcommands.ExitSuccess
}
