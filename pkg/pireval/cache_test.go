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

import "testing"

func Test_CallCache_HitAfterInsert_01(t *testing.T) {
	c := NewCallCache()
	args := []*Exp{intLit(5)}
	if _, ok := c.Lookup("fact", args); ok {
		t.Fatalf("expected miss before any insert")
	}
	c.Insert("fact", args, intLit(120))

	result, ok := c.Lookup("fact", []*Exp{intLit(5)})
	if !ok {
		t.Fatalf("expected hit for structurally-equal argument tuple")
	}
	if EqualExpr(result, intLit(120)) != Yes {
		t.Errorf("expected cached result 120, got %s", String(result))
	}

	stats := c.Stats("fact")
	if stats.Invocations != 2 || stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func Test_CallCache_UnknownArgsAlwaysMiss_02(t *testing.T) {
	c := NewCallCache()
	c.Insert("f", []*Exp{freeVar("x")}, intLit(1))

	// A different free variable can never be proven equal to x, so this
	// must miss even though both are "symbolic arguments".
	if _, ok := c.Lookup("f", []*Exp{freeVar("y")}); ok {
		t.Errorf("expected miss for Unknown-equal argument")
	}
}

func Test_CallCache_PerFunctionIsolation_03(t *testing.T) {
	c := NewCallCache()
	c.Insert("f", []*Exp{intLit(1)}, intLit(10))
	c.Insert("g", []*Exp{intLit(1)}, intLit(20))

	rf, _ := c.Lookup("f", []*Exp{intLit(1)})
	rg, _ := c.Lookup("g", []*Exp{intLit(1)})
	if EqualExpr(rf, intLit(10)) != Yes || EqualExpr(rg, intLit(20)) != Yes {
		t.Errorf("expected separate memo tables per function")
	}
}
