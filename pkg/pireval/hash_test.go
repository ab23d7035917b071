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

func Test_HashExpr_ConsistentWithEqual_01(t *testing.T) {
	a := NewExp(Span{}, IntUnbounded, &Binary{Op: OpMul, Lhs: intLit(2), Rhs: freeVar("x")})
	b := NewExp(Span{}, IntUnbounded, &Binary{Op: OpMul, Lhs: intLit(2), Rhs: freeVar("x")})
	if EqualExpr(a, b) != Yes {
		t.Fatalf("fixture precondition failed: a and b must be Yes-equal")
	}
	if HashExpr(a) != HashExpr(b) {
		t.Errorf("HashExpr(a) != HashExpr(b) despite EqualExpr == Yes")
	}
}

func Test_HashExpr_TriggersExcluded_02(t *testing.T) {
	inner := freeVar("x")
	withTrig := NewExp(Span{}, IntUnbounded, &WithTriggers{Triggers: [][]*Exp{{intLit(1)}}, Body: inner})
	if HashExpr(withTrig) != HashExpr(inner) {
		t.Errorf("HashExpr should ignore WithTriggers wrapper")
	}
}

func Test_HashExpr_LikelyDistinct_03(t *testing.T) {
	a := intLit(1)
	b := intLit(2)
	if HashExpr(a) == HashExpr(b) {
		t.Errorf("expected distinct hashes for distinct literals (not guaranteed, but should hold for this fixture)")
	}
}

func Test_HashType_04(t *testing.T) {
	a := IntType(IntRange{Kind: RangeI, Width: 32})
	b := IntType(IntRange{Kind: RangeI, Width: 32})
	c := IntType(IntRange{Kind: RangeI, Width: 64})
	if HashType(a) != HashType(b) {
		t.Errorf("expected equal types to hash equal")
	}
	if HashType(a) == HashType(c) {
		t.Errorf("expected distinct widths to hash distinct")
	}
}
