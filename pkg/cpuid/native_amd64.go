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

// Native executes the CPUID instruction on the running processor. It
// answers only for the modeled (function, index) pairs; everything
// else reports zero registers, so two Native-built aggregates compare
// on the modeled surface alone.
type Native struct{}

// native executes the CPUID instruction.
func native(in In) Out

// Query implements Function.Query.
func (*Native) Query(in In) Out {
	for _, l := range catalog {
		if l.function == in.Eax && l.index == in.Ecx {
			return native(in)
		}
	}
	return Out{}
}

// HostCPUID returns the aggregate feature model of the running
// processor.
func HostCPUID() *CPUID {
	return New(&Native{})
}
