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

import "math/big"

// ============================================================================
// Span
// ============================================================================

// Span is an opaque source-location record attached to every node, carried
// through but never inspected by the evaluator beyond propagation to
// freshly built nodes and error reports.
type Span struct {
	File string
	Line uint
	Col  uint
}

// ============================================================================
// Identifiers
// ============================================================================

// FunID names a user-defined function in the function table.
type FunID string

// VarID identifies a variable: a name plus an optional disambiguator, the
// same key shape the Environment uses.  Var/VarLoc/VarAt/Old all carry one.
type VarID struct {
	Name        string
	Disambig    uint64
	HasDisambig bool
}

// PlainVar constructs a VarID with no disambiguator (as used by Let bindings).
func PlainVar(name string) VarID { return VarID{Name: name} }

// DisambigVar constructs a VarID with an explicit disambiguator (as used when
// binding a function's formal parameters).
func DisambigVar(name string, disambig uint64) VarID {
	return VarID{Name: name, Disambig: disambig, HasDisambig: true}
}

// ============================================================================
// Expression
// ============================================================================

// Exp is an immutable IR tree node: a source span, a declared type, and a
// tagged payload.  The evaluator never mutates a reachable *Exp; every
// reduction step allocates a fresh node.
type Exp struct {
	Span Span
	Type Type
	X    ExpX
}

// ExpX is the closed set of expression payloads.  Each variant is its own
// struct implementing this marker interface, one payload struct per
// variant.
type ExpX interface {
	isExpX()
}

// NewExp constructs a node inheriting the given span/type, matching
// component A's contract that derived nodes inherit the enclosing position.
func NewExp(span Span, typ Type, x ExpX) *Exp {
	return &Exp{Span: span, Type: typ, X: x}
}

// Like builds a new node sharing e's span and type but with a different
// payload -- the common case of "rebuild this node with a reduced child".
func (e *Exp) Like(x ExpX) *Exp {
	return &Exp{Span: e.Span, Type: e.Type, X: x}
}

// ----------------------------------------------------------------------------
// Const
// ----------------------------------------------------------------------------

// Constant is a boolean or arbitrary-precision integer literal.
type Constant struct {
	IsBool bool
	Bool   bool
	Int    *big.Int
}

// BoolConstant constructs a boolean literal.
func BoolConstant(b bool) Constant { return Constant{IsBool: true, Bool: b} }

// IntConstant constructs an integer literal.
func IntConstant(i *big.Int) Constant { return Constant{Int: i} }

// Const is a boolean or integer literal.
type Const struct{ Value Constant }

func (*Const) isExpX() {}

// ----------------------------------------------------------------------------
// Var and friends
// ----------------------------------------------------------------------------

// Var is a named variable; its identity for equality purposes is its VarID.
type Var struct{ ID VarID }

func (*Var) isExpX() {}

// VarLoc is an opaque mutable-place marker, treated symbolically by
// identity only.
type VarLoc struct{ ID VarID }

func (*VarLoc) isExpX() {}

// VarAt is an opaque phase-qualified place marker.
type VarAt struct {
	ID    VarID
	Phase uint64
}

func (*VarAt) isExpX() {}

// Loc wraps a place expression, treated symbolically.
type Loc struct{ Arg *Exp }

func (*Loc) isExpX() {}

// Old refers to a variable's value at a prior program point.
type Old struct {
	ID  VarID
	UID VarID
}

func (*Old) isExpX() {}

// ----------------------------------------------------------------------------
// Call / CallLambda
// ----------------------------------------------------------------------------

// Call invokes a named IR function with type and value arguments.
type Call struct {
	Fun  FunID
	Typs []Type
	Args []*Exp
}

func (*Call) isExpX() {}

// CallLambda applies a lambda value to arguments.
type CallLambda struct {
	Typ  Type
	Lam  *Exp
	Args []*Exp
}

func (*CallLambda) isExpX() {}

// ----------------------------------------------------------------------------
// Ctor
// ----------------------------------------------------------------------------

// CtorField is one named field of a datatype constructor invocation.
type CtorField struct {
	Name  string
	Value *Exp
}

// Ctor constructs a datatype value.
type Ctor struct {
	Datatype string
	Variant  string
	Fields   []CtorField
}

func (*Ctor) isExpX() {}

// ----------------------------------------------------------------------------
// Unary / UnaryOpr
// ----------------------------------------------------------------------------

// UnaryOp is the closed set of plain unary operators.
type UnaryOp uint8

// The unary operator variants.
const (
	OpNot UnaryOp = iota
	OpBitNot
	OpClip
	OpTrigger
)

// Unary applies a plain unary operator.
type Unary struct {
	Op UnaryOp
	// ClipRange is populated when Op == OpClip.
	ClipRange IntRange
	Arg       *Exp
}

func (*Unary) isExpX() {}

// UnaryOprOp is the closed set of "opr" unary operators -- the ones that
// additionally carry type/datatype metadata.
type UnaryOprOp uint8

// The UnaryOpr operator variants.
const (
	OprBox UnaryOprOp = iota
	OprUnbox
	OprHasType
	OprIsVariant
	OprField
)

// UnaryOpr applies a polymorphism coercion, type test, variant test, or
// field projection.
type UnaryOpr struct {
	Op UnaryOprOp
	// BoxTyp is populated for Box/Unbox/HasType.
	BoxTyp Type
	// Datatype/Variant are populated for IsVariant.
	Datatype string
	Variant  string
	// Field is populated for Field.
	Field string
	Arg   *Exp
}

func (*UnaryOpr) isExpX() {}

// ----------------------------------------------------------------------------
// Binary
// ----------------------------------------------------------------------------

// BinaryOp is the closed set of binary operators.
type BinaryOp uint8

// The binary operator variants.
const (
	OpAnd BinaryOp = iota
	OpOr
	OpXor
	OpImplies
	OpEq
	OpNe
	OpLe
	OpGe
	OpLt
	OpGt
	OpAdd
	OpSub
	OpMul
	OpEuclideanDiv
	OpEuclideanMod
	OpBitXor
	OpBitAnd
	OpBitOr
	OpShr
	OpShl
)

// Binary applies a binary operator to two operands.
type Binary struct {
	Op       BinaryOp
	Lhs, Rhs *Exp
}

func (*Binary) isExpX() {}

// ----------------------------------------------------------------------------
// If
// ----------------------------------------------------------------------------

// If is a conditional expression.
type If struct {
	Cond, Then, Else *Exp
}

func (*If) isExpX() {}

// ----------------------------------------------------------------------------
// WithTriggers
// ----------------------------------------------------------------------------

// WithTriggers wraps an expression with SMT trigger hints that are excluded
// from both equality and hashing (spec.md §4.C).
type WithTriggers struct {
	Triggers [][]*Exp
	Body     *Exp
}

func (*WithTriggers) isExpX() {}

// ----------------------------------------------------------------------------
// Interp (evaluator-private)
// ----------------------------------------------------------------------------

// InterpKind is the closed set of evaluator-private payloads.
type InterpKind uint8

// The only InterpExp variant currently defined.
const (
	InterpFreeVar InterpKind = iota
)

// Interp is an evaluator-private node.  FreeVar(id) hides a name from the
// environment so bound/free shadowing cannot occur during evaluation.
type Interp struct {
	Kind InterpKind
	ID   VarID
}

func (*Interp) isExpX() {}
