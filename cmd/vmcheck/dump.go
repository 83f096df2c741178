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
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"vmcheck.dev/vmcheck/pkg/cpuid"
)

// Dump implements subcommands.Command for the "dump" command.
type Dump struct {
	output string
}

// Name implements subcommands.Command.Name.
func (*Dump) Name() string {
	return "dump"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Dump) Synopsis() string {
	return "record the CPUID feature model of the running processor"
}

// Usage implements subcommands.Command.Usage.
func (*Dump) Usage() string {
	return `dump [-o <file>]

The dump command records the CPUID feature model of the running processor.
Files ending in .yaml or .yml are written as an editable YAML template;
anything else is written as the fixed binary image. Without -o, the YAML
template is written to stdout.

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (d *Dump) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.output, "o", "", "output file, stdout if empty")
}

// Execute implements subcommands.Command.Execute.
func (d *Dump) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	c := cpuid.HostCPUID()
	logrus.Debugf("host vendor %q, max function %#x", c.VendorInfo.VendorID(), c.VendorInfo.MaxFunction)

	if d.output == "" {
		if err := c.EncodeTemplate(os.Stdout); err != nil {
			logrus.Errorf("encoding template: %v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := saveAggregate(c, d.output); err != nil {
		logrus.Errorf("writing %s: %v", d.output, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func isTemplatePath(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func saveAggregate(c *cpuid.CPUID, path string) error {
	if isTemplatePath(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := c.EncodeTemplate(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	b, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func loadAggregate(path string) (*cpuid.CPUID, error) {
	if isTemplatePath(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return cpuid.DecodeTemplate(f)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &cpuid.CPUID{}
	if err := c.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return c, nil
}
