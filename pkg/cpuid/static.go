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

// Static is a recorded CPUID function. Missing entries return the
// zero Out, matching what hardware reports for functions above the
// supported maximum.
type Static map[In]Out

// Query implements Function.Query.
func (s Static) Query(in In) Out {
	return s[in]
}

// Set modifies the given (function, index) pair, returning the
// modified map. This allows building synthetic sources for tests.
func (s Static) Set(in In, out Out) Static {
	s[in] = out
	return s
}

// ToStatic records the aggregate as a Static map covering every
// modeled (function, index) pair. New(c.ToStatic()) reproduces c.
func (c *CPUID) ToStatic() Static {
	s := make(Static, len(catalog))
	for _, l := range catalog {
		s[In{Eax: l.function, Ecx: l.index}] = l.read(c)
	}
	return s
}
