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
	"encoding/binary"
	"hash/fnv"
)

// fnvState accumulates an FNV-1a hash over a stream of sub-hashes via
// offset64/prime64 XOR-then-multiply folding.
type fnvState struct {
	h uint64
}

func newFnvState() *fnvState {
	return &fnvState{h: fnvOffset64}
}

const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

func (s *fnvState) mix(v uint64) {
	s.h ^= v
	s.h *= fnvPrime64
}

func (s *fnvState) mixString(str string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(str))
	s.mix(h.Sum64())
}

func (s *fnvState) mixBytes(b []byte) {
	h := fnv.New64a()
	_, _ = h.Write(b)
	s.mix(h.Sum64())
}

func (s *fnvState) mixUint(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	s.mixBytes(buf[:])
}

// HashExpr computes a structural hash over an expression tree such that
// EqualExpr(a, b) == Yes implies HashExpr(a) == HashExpr(b).  Triggers are
// excluded, matching EqualExpr's WithTriggers transparency.  Sub-terms for
// which EqualExpr can only ever answer Unknown (distinct Var/Call/Old
// identities) are still hashed on their literal identity: that keeps the
// implication sound even though it is not an "iff" -- two Unknown-equal
// expressions are permitted to collide.
func HashExpr(e *Exp) uint64 {
	s := newFnvState()
	hashExprInto(s, e)
	return s.h
}

func hashExprInto(s *fnvState, e *Exp) {
	e = unwrapTriggers(e)
	switch x := e.X.(type) {
	case *Const:
		s.mixUint(1)
		if x.Value.IsBool {
			s.mixUint(0)
			if x.Value.Bool {
				s.mixUint(1)
			} else {
				s.mixUint(0)
			}
		} else {
			s.mixUint(1)
			s.mixBytes(x.Value.Int.Bytes())
			s.mixUint(uint64(x.Value.Int.Sign()))
		}
	case *Var:
		s.mixUint(2)
		hashVarID(s, x.ID)
	case *VarLoc:
		s.mixUint(3)
		hashVarID(s, x.ID)
	case *VarAt:
		s.mixUint(4)
		hashVarID(s, x.ID)
		s.mixUint(x.Phase)
	case *Loc:
		s.mixUint(5)
		hashExprInto(s, x.Arg)
	case *Old:
		s.mixUint(6)
		hashVarID(s, x.ID)
		hashVarID(s, x.UID)
	case *Call:
		s.mixUint(7)
		s.mixString(string(x.Fun))
		for _, t := range x.Typs {
			hashTypeInto(s, t)
		}
		for _, a := range x.Args {
			hashExprInto(s, a)
		}
	case *CallLambda:
		s.mixUint(8)
		hashExprInto(s, x.Lam)
		for _, a := range x.Args {
			hashExprInto(s, a)
		}
	case *Ctor:
		s.mixUint(9)
		s.mixString(x.Datatype)
		s.mixString(x.Variant)
		// Fields are combined order-independently, since EqualExpr matches
		// constructor fields by name rather than by position.
		var fields uint64
		for _, f := range x.Fields {
			fs := newFnvState()
			fs.mixString(f.Name)
			hashExprInto(fs, f.Value)
			fields += fs.h
		}
		s.mixUint(fields)
	case *Unary:
		s.mixUint(10)
		s.mixUint(uint64(x.Op))
		if x.Op == OpClip {
			s.mixUint(uint64(x.ClipRange.Kind))
			s.mixUint(uint64(x.ClipRange.Width))
		}
		hashExprInto(s, x.Arg)
	case *UnaryOpr:
		s.mixUint(11)
		s.mixUint(uint64(x.Op))
		hashTypeInto(s, x.BoxTyp)
		s.mixString(x.Datatype)
		s.mixString(x.Variant)
		s.mixString(x.Field)
		hashExprInto(s, x.Arg)
	case *Binary:
		s.mixUint(12)
		s.mixUint(uint64(x.Op))
		hashExprInto(s, x.Lhs)
		hashExprInto(s, x.Rhs)
	case *If:
		s.mixUint(13)
		hashExprInto(s, x.Cond)
		hashExprInto(s, x.Then)
		hashExprInto(s, x.Else)
	case *Bind:
		s.mixUint(14)
		hashBindInto(s, x)
	case *Interp:
		s.mixUint(15)
		s.mixUint(uint64(x.Kind))
		hashVarID(s, x.ID)
	default:
		s.mixUint(255)
	}
}

func hashVarID(s *fnvState, id VarID) {
	s.mixString(id.Name)
	if id.HasDisambig {
		s.mixUint(1)
		s.mixUint(id.Disambig)
	} else {
		s.mixUint(0)
	}
}

func hashBindInto(s *fnvState, b *Bind) {
	s.mixUint(uint64(b.Bnd.Kind.Kind))
	for _, f := range b.Bnd.Kind.Formals {
		hashTypeInto(s, f.Typ)
	}
	switch b.Bnd.Kind.Kind {
	case BndLet:
		for _, l := range b.Bnd.Kind.Lets {
			hashTypeInto(s, l.Name.Typ)
			hashExprInto(s, l.Arg)
		}
	case BndQuant:
		s.mixUint(uint64(b.Bnd.Kind.Quant))
	case BndChoose:
		hashExprInto(s, b.Bnd.Kind.ChooseBody)
	}
	hashExprInto(s, b.Body)
}

// HashType computes a structural hash over a Type such that
// EqualType(a, b) implies HashType(a) == HashType(b).
func HashType(t Type) uint64 {
	s := newFnvState()
	hashTypeInto(s, t)
	return s.h
}

func hashTypeInto(s *fnvState, t Type) {
	s.mixUint(uint64(t.Kind))
	switch t.Kind {
	case TypeInt:
		s.mixUint(uint64(t.IntR.Kind))
		s.mixUint(uint64(t.IntR.Width))
	case TypeTuple:
		for _, e := range t.Elems {
			hashTypeInto(s, e)
		}
	case TypeLambda:
		for _, e := range t.Elems {
			hashTypeInto(s, e)
		}
		if t.Result != nil {
			hashTypeInto(s, *t.Result)
		}
	case TypeDatatype:
		s.mixString(t.Path)
		for _, e := range t.TypeArgs {
			hashTypeInto(s, e)
		}
	case TypeBoxed:
		if t.Boxed != nil {
			hashTypeInto(s, *t.Boxed)
		}
	case TypeTypParam, TypeTypeID, TypeAir:
		s.mixString(t.Path)
	}
}
