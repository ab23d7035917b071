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

// ArchSizeMinBits is the architectural minimum width guaranteed for USize and
// ISize integer ranges.  Matches the "compile-time constant" spec.md calls
// out for these ranges.
const ArchSizeMinBits = 32

// IntRangeKind identifies which flavour of integer range a Type(Int(...))
// carries.
type IntRangeKind uint8

// The closed set of integer ranges supported by the IR.
const (
	RangeInt IntRangeKind = iota
	RangeNat
	RangeU
	RangeI
	RangeUSize
	RangeISize
)

// IntRange describes an integer type's range: unbounded, naturals, or a
// fixed-width signed/unsigned range.  Width is only meaningful for RangeU
// and RangeI.
type IntRange struct {
	Kind  IntRangeKind
	Width uint
}

// Equals checks whether two integer ranges are the identical range.
func (r IntRange) Equals(o IntRange) bool {
	return r.Kind == o.Kind && (r.Kind != RangeU && r.Kind != RangeI || r.Width == o.Width)
}

// TypeKind identifies the tagged variant of a Type.
type TypeKind uint8

// The closed set of type forms the interpreter must be able to compare and
// hash, even though most (beyond Bool/Int) are opaque to it.
const (
	TypeBool TypeKind = iota
	TypeInt
	TypeTuple
	TypeLambda
	TypeDatatype
	TypeBoxed
	TypeTypParam
	TypeTypeID
	TypeAir
)

// Type is a tagged representation of the closed type set described in
// spec.md §3.2.  Only Bool/Int carry interpreter-relevant structure; the
// remaining forms are opaque tags the interpreter must still be able to
// compare and hash.
type Type struct {
	Kind TypeKind
	// IntR is populated when Kind == TypeInt.
	IntR IntRange
	// Elems holds Tuple element types, or a Lambda's formal types.
	Elems []Type
	// Result holds a Lambda's result type.
	Result *Type
	// Boxed holds the inner type for TypeBoxed.
	Boxed *Type
	// Path names a Datatype, a TypParam, or an opaque Air tag.
	Path string
	// TypeArgs holds a Datatype's type arguments.
	TypeArgs []Type
}

// Bool is the singleton boolean type.
var Bool = Type{Kind: TypeBool}

// IntType constructs an integer type with the given range.
func IntType(r IntRange) Type {
	return Type{Kind: TypeInt, IntR: r}
}

// NatType is a convenience constructor for the naturals.
var NatType = IntType(IntRange{Kind: RangeNat})

// IntUnbounded is a convenience constructor for unbounded integers.
var IntUnbounded = IntType(IntRange{Kind: RangeInt})
