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
	"fmt"
	"reflect"
	"strings"
)

// String renders e as a Lisp-style S-expression, the representation used
// for debug traces and for the scenario snapshot tests in
// scenario_snapshot_test.go.
func String(e *Exp) string {
	var b strings.Builder
	writeLisp(&b, e)
	return b.String()
}

func writeList(b *strings.Builder, items ...string) {
	b.WriteByte('(')
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(it)
	}
	b.WriteByte(')')
}

func lispOf(e *Exp) string {
	var b strings.Builder
	writeLisp(&b, e)
	return b.String()
}

func writeLisp(b *strings.Builder, e *Exp) {
	switch x := e.X.(type) {
	case *Const:
		if x.Value.IsBool {
			fmt.Fprintf(b, "%t", x.Value.Bool)
		} else {
			b.WriteString(x.Value.Int.String())
		}
	case *Var:
		b.WriteString(varIDString(x.ID))
	case *VarLoc:
		writeList(b, "varloc", varIDString(x.ID))
	case *VarAt:
		writeList(b, "varat", varIDString(x.ID), fmt.Sprintf("%d", x.Phase))
	case *Loc:
		writeList(b, "loc", lispOf(x.Arg))
	case *Old:
		writeList(b, "old", varIDString(x.ID), varIDString(x.UID))
	case *Call:
		items := []string{"call", string(x.Fun)}
		for _, a := range x.Args {
			items = append(items, lispOf(a))
		}
		writeList(b, items...)
	case *CallLambda:
		items := []string{"apply", lispOf(x.Lam)}
		for _, a := range x.Args {
			items = append(items, lispOf(a))
		}
		writeList(b, items...)
	case *Ctor:
		items := []string{x.Datatype + "::" + x.Variant}
		for _, f := range x.Fields {
			items = append(items, fmt.Sprintf("%s=%s", f.Name, lispOf(f.Value)))
		}
		writeList(b, items...)
	case *Unary:
		writeList(b, unaryOpSymbol(x.Op), lispOf(x.Arg))
	case *UnaryOpr:
		writeList(b, unaryOprOpSymbol(x), lispOf(x.Arg))
	case *Binary:
		writeList(b, binaryOpSymbol(x.Op), lispOf(x.Lhs), lispOf(x.Rhs))
	case *If:
		writeList(b, "if", lispOf(x.Cond), lispOf(x.Then), lispOf(x.Else))
	case *Bind:
		writeList(b, "bind", bndKindSymbol(x.Bnd.Kind.Kind), lispOf(x.Body))
	case *WithTriggers:
		writeList(b, "with-triggers", lispOf(x.Body))
	case *Interp:
		writeList(b, "free", varIDString(x.ID))
	default:
		panic(fmt.Sprintf("pireval: unknown expression variant %q", reflect.TypeOf(e.X).Name()))
	}
}

func varIDString(id VarID) string {
	if id.HasDisambig {
		return fmt.Sprintf("%s#%d", id.Name, id.Disambig)
	}
	return id.Name
}

func unaryOpSymbol(op UnaryOp) string {
	switch op {
	case OpNot:
		return "not"
	case OpBitNot:
		return "bitnot"
	case OpClip:
		return "clip"
	default: // OpTrigger
		return "trigger"
	}
}

func unaryOprOpSymbol(u *UnaryOpr) string {
	switch u.Op {
	case OprBox:
		return "box"
	case OprUnbox:
		return "unbox"
	case OprHasType:
		return "has-type"
	case OprIsVariant:
		return fmt.Sprintf("is-%s::%s", u.Datatype, u.Variant)
	default: // OprField
		return "field:" + u.Field
	}
}

func binaryOpSymbol(op BinaryOp) string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpImplies:
		return "implies"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpEuclideanDiv:
		return "div"
	case OpEuclideanMod:
		return "mod"
	case OpBitXor:
		return "^"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpShr:
		return ">>"
	default: // OpShl
		return "<<"
	}
}

func bndKindSymbol(k BndKind) string {
	switch k {
	case BndLet:
		return "let"
	case BndQuant:
		return "quant"
	case BndLambda:
		return "lambda"
	default: // BndChoose
		return "choose"
	}
}
