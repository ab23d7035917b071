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

// Trivalent is the three-valued result of a structural-equality check: two
// expressions may be provably equal, provably distinct, or -- because one or
// both sides are symbolic -- simply undecidable without further reduction.
type Trivalent uint8

// The three possible outcomes of EqualExpr/EqualType/EqualBinders.
const (
	Yes Trivalent = iota
	No
	Unknown
)

// and3 combines two Trivalent verdicts the way a conjunction of equality
// checks on sub-terms must: any No wins outright, else any Unknown taints
// the result, else Yes.
func and3(a, b Trivalent) Trivalent {
	if a == No || b == No {
		return No
	}
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return Yes
}

func and3All(vs ...Trivalent) Trivalent {
	r := Yes
	for _, v := range vs {
		r = and3(r, v)
	}
	return r
}

func boolTri(b bool) Trivalent {
	if b {
		return Yes
	}
	return No
}

// equalVarID compares two variable identities; VarID is a plain comparable
// value so this is always decidable.
func equalVarID(a, b VarID) bool {
	return a.Name == b.Name && a.HasDisambig == b.HasDisambig && a.Disambig == b.Disambig
}

// unwrapTriggers strips a WithTriggers wrapper, since triggers are hints to
// an external solver and carry no equality-relevant content (spec.md §4.C).
func unwrapTriggers(e *Exp) *Exp {
	for {
		wt, ok := e.X.(*WithTriggers)
		if !ok {
			return e
		}
		e = wt.Body
	}
}

// EqualExpr decides whether two expression trees denote the same value.
// Yes/No are only returned when the comparison is sound regardless of how
// any remaining symbolic sub-terms eventually reduce; anything else yields
// Unknown.  Memoization callers (component F) must only trust a Yes verdict
// when looking up a call-cache entry.
func EqualExpr(a, b *Exp) Trivalent {
	a = unwrapTriggers(a)
	b = unwrapTriggers(b)

	switch ax := a.X.(type) {
	case *Const:
		bx, ok := b.X.(*Const)
		if !ok {
			return Unknown
		}
		if ax.Value.IsBool != bx.Value.IsBool {
			return No
		}
		if ax.Value.IsBool {
			return boolTri(ax.Value.Bool == bx.Value.Bool)
		}
		return boolTri(ax.Value.Int.Cmp(bx.Value.Int) == 0)

	case *Var:
		bx, ok := b.X.(*Var)
		if !ok {
			return Unknown
		}
		if equalVarID(ax.ID, bx.ID) {
			return Yes
		}
		return Unknown

	case *VarLoc:
		bx, ok := b.X.(*VarLoc)
		if !ok {
			return Unknown
		}
		if equalVarID(ax.ID, bx.ID) {
			return Yes
		}
		return Unknown

	case *VarAt:
		bx, ok := b.X.(*VarAt)
		if !ok {
			return Unknown
		}
		if equalVarID(ax.ID, bx.ID) && ax.Phase == bx.Phase {
			return Yes
		}
		return Unknown

	case *Loc:
		bx, ok := b.X.(*Loc)
		if !ok {
			return Unknown
		}
		return EqualExpr(ax.Arg, bx.Arg)

	case *Old:
		bx, ok := b.X.(*Old)
		if !ok {
			return Unknown
		}
		if equalVarID(ax.ID, bx.ID) && equalVarID(ax.UID, bx.UID) {
			return Yes
		}
		return Unknown

	case *Call:
		bx, ok := b.X.(*Call)
		if !ok {
			return Unknown
		}
		if ax.Fun != bx.Fun || !equalTypeSlice(ax.Typs, bx.Typs) {
			return Unknown
		}
		return equalExprSlice(ax.Args, bx.Args)

	case *CallLambda:
		bx, ok := b.X.(*CallLambda)
		if !ok {
			return Unknown
		}
		return and3(EqualExpr(ax.Lam, bx.Lam), equalExprSlice(ax.Args, bx.Args))

	case *Ctor:
		bx, ok := b.X.(*Ctor)
		if !ok {
			return Unknown
		}
		if ax.Datatype != bx.Datatype {
			// Different datatype: always disjoint.
			return No
		}
		if ax.Variant != bx.Variant {
			// Distinct constructors of the same datatype always produce
			// disjoint values.
			return No
		}
		if len(ax.Fields) != len(bx.Fields) {
			return No
		}
		r := Yes
		for _, fa := range ax.Fields {
			var found *CtorField
			for i := range bx.Fields {
				if bx.Fields[i].Name == fa.Name {
					found = &bx.Fields[i]
					break
				}
			}
			if found == nil {
				return No
			}
			r = and3(r, EqualExpr(fa.Value, found.Value))
		}
		return r

	case *Unary:
		bx, ok := b.X.(*Unary)
		if !ok || ax.Op != bx.Op {
			return Unknown
		}
		if ax.Op == OpClip && !ax.ClipRange.Equals(bx.ClipRange) {
			return Unknown
		}
		return EqualExpr(ax.Arg, bx.Arg)

	case *UnaryOpr:
		bx, ok := b.X.(*UnaryOpr)
		if !ok || ax.Op != bx.Op {
			return Unknown
		}
		switch ax.Op {
		case OprBox, OprUnbox, OprHasType:
			if !EqualType(ax.BoxTyp, bx.BoxTyp) {
				return Unknown
			}
		case OprIsVariant:
			if ax.Datatype != bx.Datatype || ax.Variant != bx.Variant {
				return Unknown
			}
		case OprField:
			if ax.Datatype != bx.Datatype || ax.Field != bx.Field {
				return Unknown
			}
		}
		return EqualExpr(ax.Arg, bx.Arg)

	case *Binary:
		bx, ok := b.X.(*Binary)
		if !ok || ax.Op != bx.Op {
			return Unknown
		}
		return and3(EqualExpr(ax.Lhs, bx.Lhs), EqualExpr(ax.Rhs, bx.Rhs))

	case *If:
		bx, ok := b.X.(*If)
		if !ok {
			return Unknown
		}
		return and3All(EqualExpr(ax.Cond, bx.Cond), EqualExpr(ax.Then, bx.Then), EqualExpr(ax.Else, bx.Else))

	case *Bind:
		bx, ok := b.X.(*Bind)
		if !ok {
			return Unknown
		}
		return equalBind(ax, bx)

	case *Interp:
		bx, ok := b.X.(*Interp)
		if !ok {
			return Unknown
		}
		if ax.Kind != bx.Kind {
			return Unknown
		}
		return boolTri(equalVarID(ax.ID, bx.ID))

	default:
		return Unknown
	}
}

func equalExprSlice(as, bs []*Exp) Trivalent {
	if len(as) != len(bs) {
		// A mismatched argument count can't rule out equality the way a
		// mismatched constructor variant can: the callee's own type
		// discipline is what's supposed to prevent this, not equality.
		return Unknown
	}
	r := Yes
	for i := range as {
		r = and3(r, EqualExpr(as[i], bs[i]))
		if r == No {
			return No
		}
	}
	return r
}

func equalBind(a, b *Bind) Trivalent {
	if a.Bnd.Kind.Kind != b.Bnd.Kind.Kind {
		return Unknown
	}
	if !EqualBinders(a.Bnd.Kind.Formals, b.Bnd.Kind.Formals) {
		return Unknown
	}
	switch a.Bnd.Kind.Kind {
	case BndLet:
		if len(a.Bnd.Kind.Lets) != len(b.Bnd.Kind.Lets) {
			return Unknown
		}
		r := EqualExpr(a.Body, b.Body)
		for i := range a.Bnd.Kind.Lets {
			if !equalVarID(a.Bnd.Kind.Lets[i].Name.Name, b.Bnd.Kind.Lets[i].Name.Name) {
				return Unknown
			}
			if !EqualType(a.Bnd.Kind.Lets[i].Name.Typ, b.Bnd.Kind.Lets[i].Name.Typ) {
				return Unknown
			}
			r = and3(r, EqualExpr(a.Bnd.Kind.Lets[i].Arg, b.Bnd.Kind.Lets[i].Arg))
		}
		return r
	case BndQuant:
		if a.Bnd.Kind.Quant != b.Bnd.Kind.Quant {
			return Unknown
		}
		return EqualExpr(a.Body, b.Body)
	case BndChoose:
		return and3(EqualExpr(a.Bnd.Kind.ChooseBody, b.Bnd.Kind.ChooseBody), EqualExpr(a.Body, b.Body))
	default: // BndLambda
		return EqualExpr(a.Body, b.Body)
	}
}

// EqualBinders compares two formal-parameter lists by declared type and
// position; names are irrelevant to whether two binder shapes match.
func EqualBinders(as, bs []Binder) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !EqualType(as[i].Typ, bs[i].Typ) {
			return false
		}
	}
	return true
}

// EqualType decides structural type equality.  Every Type field is static
// metadata fixed at construction time, so -- unlike EqualExpr -- this is
// always fully decidable.
func EqualType(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TypeInt:
		return a.IntR.Equals(b.IntR)
	case TypeTuple:
		return equalTypeSlice(a.Elems, b.Elems)
	case TypeLambda:
		if !equalTypeSlice(a.Elems, b.Elems) {
			return false
		}
		if (a.Result == nil) != (b.Result == nil) {
			return false
		}
		if a.Result == nil {
			return true
		}
		return EqualType(*a.Result, *b.Result)
	case TypeDatatype:
		return a.Path == b.Path && equalTypeSlice(a.TypeArgs, b.TypeArgs)
	case TypeBoxed:
		if (a.Boxed == nil) != (b.Boxed == nil) {
			return false
		}
		if a.Boxed == nil {
			return true
		}
		return EqualType(*a.Boxed, *b.Boxed)
	case TypeTypParam, TypeTypeID, TypeAir:
		return a.Path == b.Path
	default: // TypeBool
		return true
	}
}

func equalTypeSlice(as, bs []Type) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !EqualType(as[i], bs[i]) {
			return false
		}
	}
	return true
}

// DefinitelyEqual reports whether two expressions are structurally equal
// beyond any doubt -- the guard every call-cache lookup (component F) and
// algebraic simplification in eval.go must use before trusting a match.
func DefinitelyEqual(a, b *Exp) bool {
	return EqualExpr(a, b) == Yes
}
