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

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestScenarios_EndToEnd evaluates every end-to-end reduction scenario this
// evaluator is required to reproduce and snapshots its rendered residual, so
// a change in any fold/short-circuit/memoization path shows up as a diff
// against the committed snapshot.
func TestScenarios_EndToEnd(t *testing.T) {
	scenarios := []struct {
		name  string
		build func() (*Exp, FunctionTable, Mode)
	}{
		{"S1_arith_folding", func() (*Exp, FunctionTable, Mode) {
			lhs := NewExp(Span{}, IntUnbounded, &Binary{Op: OpAdd, Lhs: intLit(2), Rhs: intLit(3)})
			rhs := NewExp(Span{}, IntUnbounded, &Binary{Op: OpSub, Lhs: intLit(4), Rhs: intLit(1)})
			return NewExp(Span{}, IntUnbounded, &Binary{Op: OpMul, Lhs: lhs, Rhs: rhs}), EmptyFunctionTable{}, Residual
		}},
		{"S2_fact_must_reduce", func() (*Exp, FunctionTable, Mode) {
			call, table := factExprForTest(5)
			e := NewExp(Span{}, Bool, &Binary{Op: OpEq, Lhs: call, Rhs: intLit(120)})
			return e, table, MustReduce
		}},
		{"S3_seq_index", func() (*Exp, FunctionTable, Mode) {
			s := seqCall("push", seqCall("push", seqCall("empty"), intLit(10)), intLit(20))
			e := NewExp(Span{}, IntUnbounded, &Call{Fun: FunID(DefaultSeqFunctionPrefix + "index"), Args: []*Exp{s, intLit(1)}})
			return e, EmptyFunctionTable{}, Residual
		}},
		{"S4_self_subtract_and_mul_zero", func() (*Exp, FunctionTable, Mode) {
			xMinusX := NewExp(Span{}, IntUnbounded, &Binary{Op: OpSub, Lhs: freeVar("x"), Rhs: freeVar("x")})
			yTimes0 := NewExp(Span{}, IntUnbounded, &Binary{Op: OpMul, Lhs: freeVar("y"), Rhs: intLit(0)})
			return NewExp(Span{}, IntUnbounded, &Binary{Op: OpAdd, Lhs: xMinusX, Rhs: yTimes0}), EmptyFunctionTable{}, Residual
		}},
		{"S5_clip_out_of_range_preserved", func() (*Exp, FunctionTable, Mode) {
			u8 := IntRange{Kind: RangeU, Width: 8}
			v := NewExp(Span{}, IntType(u8), &Const{Value: IntConstant(big.NewInt(300))})
			return NewExp(Span{}, IntType(u8), &Unary{Op: OpClip, ClipRange: u8, Arg: v}), EmptyFunctionTable{}, Residual
		}},
		{"S6_clip_in_range_dropped", func() (*Exp, FunctionTable, Mode) {
			u8 := IntRange{Kind: RangeU, Width: 8}
			v := NewExp(Span{}, IntType(u8), &Const{Value: IntConstant(big.NewInt(42))})
			return NewExp(Span{}, IntType(u8), &Unary{Op: OpClip, ClipRange: u8, Arg: v}), EmptyFunctionTable{}, Residual
		}},
		{"S7_if_both_branches_residual", func() (*Exp, FunctionTable, Mode) {
			p := NewExp(Span{}, Bool, &Var{ID: PlainVar("p")})
			then := NewExp(Span{}, IntUnbounded, &Binary{Op: OpAdd, Lhs: intLit(1), Rhs: intLit(1)})
			return NewExp(Span{}, IntUnbounded, &If{Cond: p, Then: then, Else: intLit(3)}), EmptyFunctionTable{}, Residual
		}},
		{"S8_call_lambda_beta_reduces", func() (*Exp, FunctionTable, Mode) {
			xID := PlainVar("x")
			formal := Binder{Name: xID, Typ: IntUnbounded}
			xVar := NewExp(Span{}, IntUnbounded, &Var{ID: xID})
			body := NewExp(Span{}, IntUnbounded, &Binary{Op: OpAdd, Lhs: xVar, Rhs: intLit(1)})
			lambdaTyp := Type{Kind: TypeLambda, Elems: []Type{IntUnbounded}, Result: &IntUnbounded}
			lam := NewExp(Span{}, lambdaTyp, &Bind{Bnd: Bnd{Kind: QuantOrLetKind{Kind: BndLambda, Formals: []Binder{formal}}}, Body: body})
			return NewExp(Span{}, IntUnbounded, &CallLambda{Typ: IntUnbounded, Lam: lam, Args: []*Exp{intLit(7)}}), EmptyFunctionTable{}, Residual
		}},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			exp, table, mode := sc.build()
			result, err := EvalExpr(exp, table, Config{RLimitSeconds: 5, Mode: mode})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			snaps.MatchSnapshot(t, sc.name, String(result))
		})
	}
}
