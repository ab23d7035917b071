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

import (
	"math/big"
	"testing"
)

func intLit(v int64) *Exp {
	return NewExp(Span{}, IntUnbounded, &Const{Value: IntConstant(big.NewInt(v))})
}

func boolLit(b bool) *Exp {
	return NewExp(Span{}, Bool, &Const{Value: BoolConstant(b)})
}

func freeVar(name string) *Exp {
	return NewExp(Span{}, IntUnbounded, &Var{ID: PlainVar(name)})
}

func Test_EqualExpr_Const_01(t *testing.T) {
	check_EqualExpr(t, intLit(3), intLit(3), Yes)
	check_EqualExpr(t, intLit(3), intLit(4), No)
	check_EqualExpr(t, boolLit(true), boolLit(true), Yes)
	check_EqualExpr(t, boolLit(true), boolLit(false), No)
	check_EqualExpr(t, intLit(3), boolLit(true), No)
}

func Test_EqualExpr_Var_02(t *testing.T) {
	check_EqualExpr(t, freeVar("x"), freeVar("x"), Yes)
	check_EqualExpr(t, freeVar("x"), freeVar("y"), Unknown)
	check_EqualExpr(t, freeVar("x"), intLit(3), Unknown)
}

func Test_EqualExpr_Binary_03(t *testing.T) {
	a := NewExp(Span{}, IntUnbounded, &Binary{Op: OpAdd, Lhs: intLit(1), Rhs: freeVar("x")})
	b := NewExp(Span{}, IntUnbounded, &Binary{Op: OpAdd, Lhs: intLit(1), Rhs: freeVar("x")})
	c := NewExp(Span{}, IntUnbounded, &Binary{Op: OpAdd, Lhs: intLit(1), Rhs: freeVar("y")})
	check_EqualExpr(t, a, b, Yes)
	check_EqualExpr(t, a, c, Unknown)
}

func Test_EqualExpr_Ctor_04(t *testing.T) {
	some := func(v *Exp) *Exp {
		return NewExp(Span{}, Type{Kind: TypeDatatype, Path: "Option"}, &Ctor{
			Datatype: "Option", Variant: "Some",
			Fields: []CtorField{{Name: "value", Value: v}},
		})
	}
	none := NewExp(Span{}, Type{Kind: TypeDatatype, Path: "Option"}, &Ctor{Datatype: "Option", Variant: "None"})

	check_EqualExpr(t, some(intLit(1)), some(intLit(1)), Yes)
	check_EqualExpr(t, some(intLit(1)), some(intLit(2)), No)
	check_EqualExpr(t, some(intLit(1)), none, No)
}

func Test_EqualExpr_WithTriggers_05(t *testing.T) {
	inner := freeVar("x")
	withTrig := NewExp(Span{}, IntUnbounded, &WithTriggers{Triggers: [][]*Exp{{intLit(9)}}, Body: inner})
	check_EqualExpr(t, withTrig, inner, Yes)
}

func Test_EqualType_06(t *testing.T) {
	a := IntType(IntRange{Kind: RangeU, Width: 8})
	b := IntType(IntRange{Kind: RangeU, Width: 8})
	c := IntType(IntRange{Kind: RangeU, Width: 16})
	if !EqualType(a, b) {
		t.Errorf("expected U(8) == U(8)")
	}
	if EqualType(a, c) {
		t.Errorf("expected U(8) != U(16)")
	}
}

func check_EqualExpr(t *testing.T, a, b *Exp, want Trivalent) {
	t.Helper()
	if got := EqualExpr(a, b); got != want {
		t.Errorf("EqualExpr(%s, %s) = %v, want %v", String(a), String(b), got, want)
	}
}
