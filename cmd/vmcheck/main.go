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

// Binary vmcheck records processor CPUID feature models and checks
// whether a VM snapshot taken on one host can be restored on another.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var verbose = flag.Bool("verbose", false, "enable debug logging")

// extraCommands is filled in by platform-specific files.
var extraCommands []subcommands.Command

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(Dump), "")
	subcommands.Register(new(Check), "")
	for _, cmd := range extraCommands {
		subcommands.Register(cmd, "")
	}

	flag.Parse()
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
