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

var seqIntTyp = Type{Kind: TypeDatatype, Path: "pivot::seq::Seq", TypeArgs: []Type{IntUnbounded}}

func seqCall(name string, args ...*Exp) *Exp {
	return NewExp(Span{}, seqIntTyp, &Call{Fun: FunID(DefaultSeqFunctionPrefix + name), Args: args})
}

func Test_Seq_PushIndex_01(t *testing.T) {
	// Seq::index(Seq::push(Seq::push(Seq::empty, 10), 20), 1) -- spec scenario S3.
	s := seqCall("push", seqCall("push", seqCall("empty"), intLit(10)), intLit(20))
	indexed := NewExp(Span{}, IntUnbounded, &Call{
		Fun:  FunID(DefaultSeqFunctionPrefix + "index"),
		Args: []*Exp{s, intLit(1)},
	})

	result, err := EvalExpr(indexed, EmptyFunctionTable{}, Config{RLimitSeconds: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	check_IntResult(t, result, 20)
}

func Test_Seq_Len_02(t *testing.T) {
	s := seqCall("push", seqCall("push", seqCall("empty"), intLit(1)), intLit(2))
	lenExp := NewExp(Span{}, IntUnbounded, &Call{Fun: FunID(DefaultSeqFunctionPrefix + "len"), Args: []*Exp{s}})

	result, err := EvalExpr(lenExp, EmptyFunctionTable{}, Config{RLimitSeconds: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	check_IntResult(t, result, 2)
}

func Test_Seq_ExtEqual_03(t *testing.T) {
	a := seqCall("push", seqCall("empty"), intLit(7))
	b := seqCall("push", seqCall("empty"), intLit(7))
	eq := NewExp(Span{}, Bool, &Call{Fun: FunID(DefaultSeqFunctionPrefix + "ext_equal"), Args: []*Exp{a, b}})

	result, err := EvalExpr(eq, EmptyFunctionTable{}, Config{RLimitSeconds: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := isBoolConst(result)
	if !ok || !v {
		t.Errorf("expected ext_equal to fold to true, got %s", String(result))
	}
}

func Test_Seq_IndexOutOfRangeStaysResidual_04(t *testing.T) {
	s := seqCall("push", seqCall("empty"), intLit(1))
	indexed := NewExp(Span{}, IntUnbounded, &Call{
		Fun:  FunID(DefaultSeqFunctionPrefix + "index"),
		Args: []*Exp{s, intLit(5)},
	})

	result, err := EvalExpr(indexed, EmptyFunctionTable{}, Config{RLimitSeconds: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.X.(*Call); !ok {
		t.Errorf("expected out-of-range index to remain a residual call, got %s", String(result))
	}
}

func check_IntResult(t *testing.T, e *Exp, want int64) {
	t.Helper()
	v, ok := isIntConst(e)
	if !ok {
		t.Fatalf("expected integer constant, got %s", String(e))
	}
	if v.Int64() != want {
		t.Errorf("expected %d, got %s", want, v)
	}
}
