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

func Test_VarID_01(t *testing.T) {
	a := PlainVar("x")
	b := PlainVar("x")
	if a != b {
		t.Errorf("expected PlainVar(\"x\") == PlainVar(\"x\"), got %v != %v", a, b)
	}
	c := DisambigVar("x", 1)
	if a == c {
		t.Errorf("expected PlainVar(\"x\") != DisambigVar(\"x\", 1)")
	}
	d := DisambigVar("x", 1)
	if c != d {
		t.Errorf("expected DisambigVar(\"x\",1) == DisambigVar(\"x\",1)")
	}
}

func Test_Exp_Like_02(t *testing.T) {
	span := Span{File: "t.pi", Line: 3, Col: 7}
	orig := NewExp(span, Bool, &Const{Value: BoolConstant(true)})
	rebuilt := orig.Like(&Const{Value: BoolConstant(false)})

	if rebuilt.Span != span {
		t.Errorf("Like should preserve span, got %v", rebuilt.Span)
	}
	if !EqualType(rebuilt.Type, Bool) {
		t.Errorf("Like should preserve type")
	}
	if c := rebuilt.X.(*Const); c.Value.Bool {
		t.Errorf("Like should install the new payload")
	}
}

func Test_Constant_03(t *testing.T) {
	i := IntConstant(big.NewInt(42))
	if i.IsBool {
		t.Errorf("IntConstant must not be IsBool")
	}
	if i.Int.Cmp(big.NewInt(42)) != 0 {
		t.Errorf("expected 42, got %s", i.Int)
	}
}
