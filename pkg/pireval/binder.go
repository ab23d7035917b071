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

// Binder is one formal: a name and its declared type.  Used both for Let
// bindings and quantifier/closure formals.
type Binder struct {
	Name VarID
	Typ  Type
}

// LetBinder pairs a Binder with the expression it is bound to.
type LetBinder struct {
	Name Binder
	Arg  *Exp
}

// BndKind identifies which binding form a Bnd node represents.
type BndKind uint8

// The closed set of binding forms.
const (
	BndLet BndKind = iota
	BndQuant
	BndLambda
	BndChoose
)

// QuantKind distinguishes universal from existential quantification; only
// meaningful when Bnd.Kind == BndQuant.
type QuantKind uint8

// The two quantifier flavours.
const (
	QuantForall QuantKind = iota
	QuantExists
)

// Bnd is the payload of a Bind node: which binding form, its formals (or
// Let pairs), and for Choose, the Boolean body that picks a witness.
type Bnd struct {
	Kind QuantOrLetKind
}

// QuantOrLetKind carries the union of a Bnd's binding-specific fields.  It
// is kept as a single struct (rather than an interface per BndKind) because
// every field is small and Bind's evaluator dispatches on Kind directly.
type QuantOrLetKind struct {
	Kind BndKind
	// Lets is populated when Kind == BndLet.
	Lets []LetBinder
	// Formals is populated when Kind is BndQuant, BndLambda, or BndChoose.
	Formals []Binder
	// Quant is populated when Kind == BndQuant.
	Quant QuantKind
	// ChooseBody is populated when Kind == BndChoose: the Boolean condition
	// the witness must satisfy.
	ChooseBody *Exp
}

// Bind is a binding-form expression: Let, Forall/Exists, Lambda, or Choose,
// wrapping a body expression.
type Bind struct {
	Bnd  Bnd
	Body *Exp
}

func (*Bind) isExpX() {}
