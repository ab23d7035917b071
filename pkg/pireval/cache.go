// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package pireval

// callEntry is one memoized invocation: the exact argument tuple it was
// computed for, and the result it reduced to.
type callEntry struct {
	args   []*Exp
	result *Exp
}

// funCache holds every memoized invocation of a single function, plus its
// own hit/miss/invocation counters.
type funCache struct {
	buckets     map[uint64][]callEntry
	hits        uint64
	misses      uint64
	invocations uint64
}

// CallCache memoizes function invocations keyed by structurally-verified
// argument equality, one bucket set per function name.  A bucket lookup
// only trusts DefinitelyEqual (Trivalent Yes): an Unknown match must fall
// through to a fresh evaluation, since two symbolic argument tuples that
// cannot be proven equal might still reduce to different results.
type CallCache struct {
	funcs map[FunID]*funCache
}

// NewCallCache constructs an empty cache.
func NewCallCache() *CallCache {
	return &CallCache{funcs: map[FunID]*funCache{}}
}

func (c *CallCache) funcEntry(fun FunID) *funCache {
	fc, ok := c.funcs[fun]
	if !ok {
		fc = &funCache{buckets: map[uint64][]callEntry{}}
		c.funcs[fun] = fc
	}
	return fc
}

func argsHash(args []*Exp) uint64 {
	s := newFnvState()
	for _, a := range args {
		hashExprInto(s, a)
	}
	return s.h
}

// Lookup searches for a previously cached result for fun applied to args.
// Every call (hit or miss) increments the function's invocation counter.
func (c *CallCache) Lookup(fun FunID, args []*Exp) (*Exp, bool) {
	fc := c.funcEntry(fun)
	fc.invocations++
	bucket := fc.buckets[argsHash(args)]
	for _, entry := range bucket {
		if len(entry.args) != len(args) {
			continue
		}
		allEqual := true
		for i := range args {
			if !DefinitelyEqual(entry.args[i], args[i]) {
				allEqual = false
				break
			}
		}
		if allEqual {
			fc.hits++
			return entry.result, true
		}
	}
	fc.misses++
	return nil, false
}

// Insert records a freshly computed result for fun applied to args.
func (c *CallCache) Insert(fun FunID, args []*Exp, result *Exp) {
	fc := c.funcEntry(fun)
	key := argsHash(args)
	fc.buckets[key] = append(fc.buckets[key], callEntry{args: args, result: result})
}

// Stats reports the hit/miss/invocation counters for a single function, for
// diagnostics.go to log at the end of a top-level evaluation.
type Stats struct {
	Invocations uint64
	Hits        uint64
	Misses      uint64
}

// Stats returns the current counters for fun, or the zero value if fun was
// never looked up.
func (c *CallCache) Stats(fun FunID) Stats {
	fc, ok := c.funcs[fun]
	if !ok {
		return Stats{}
	}
	return Stats{Invocations: fc.invocations, Hits: fc.hits, Misses: fc.misses}
}

// AllStats returns per-function counters for every function the cache has
// ever been queried about, keyed by function name.
func (c *CallCache) AllStats() map[FunID]Stats {
	out := make(map[FunID]Stats, len(c.funcs))
	for fun, fc := range c.funcs {
		out[fun] = Stats{Invocations: fc.invocations, Hits: fc.hits, Misses: fc.misses}
	}
	return out
}
