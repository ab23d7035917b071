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
	"strings"
)

// DefaultSeqFunctionPrefix is the canonical fully-qualified name prefix
// identifying the built-in sequence datatype's primitives when Config does
// not override it.
const DefaultSeqFunctionPrefix = "pivot::seq::Seq::"

// seqPrim is the closed set of sequence primitive names this evaluator
// recognizes, independent of the configured canonical prefix.
type seqPrim uint8

const (
	seqNotPrim seqPrim = iota
	seqEmpty
	seqNew
	seqPush
	seqUpdate
	seqSubrange
	seqAdd
	seqLen
	seqIndex
	seqExtEqual
	seqLast
)

func classifySeqFun(prefix string, fun FunID) (prim seqPrim, isProducer bool) {
	name := string(fun)
	if !strings.HasPrefix(name, prefix) {
		return seqNotPrim, false
	}
	switch strings.TrimPrefix(name, prefix) {
	case "empty":
		return seqEmpty, true
	case "new":
		return seqNew, true
	case "push":
		return seqPush, true
	case "update":
		return seqUpdate, true
	case "subrange":
		return seqSubrange, true
	case "add":
		return seqAdd, true
	case "len":
		return seqLen, false
	case "index":
		return seqIndex, false
	case "ext_equal":
		return seqExtEqual, false
	case "last":
		return seqLast, false
	default:
		return seqNotPrim, false
	}
}

// SeqResult is the sub-evaluator's lazy view of a sequence-valued
// expression: either every element has been reduced to a ground Exp
// (Concrete), or the sequence's shape could not be determined (Symbolic,
// in which case Elems is empty and seqOf returns the residual expression
// alongside it).
type SeqResult struct {
	Concrete bool
	Elems    []*Exp
}

// unwrapBoxUnbox strips any nesting of Box/Unbox wrappers, matching
// spec.md §4.G's "pass-through through Box/Unbox wrappers is transparent".
func unwrapBoxUnbox(e *Exp) *Exp {
	for {
		opr, ok := e.X.(*UnaryOpr)
		if !ok || (opr.Op != OprBox && opr.Op != OprUnbox) {
			return e
		}
		e = opr.Arg
	}
}

func asConcreteInt(e *Exp) (*big.Int, bool) {
	c, ok := e.X.(*Const)
	if !ok || c.Value.IsBool {
		return nil, false
	}
	return c.Value.Int, true
}

func intConst(like *Exp, v int64) *Exp {
	return like.Like(&Const{Value: IntConstant(big.NewInt(v))})
}

func boolConst(like *Exp, b bool) *Exp {
	return like.Like(&Const{Value: BoolConstant(b)})
}

// seqOf evaluates e as a sequence-valued expression, returning a Concrete
// decomposition of its elements when its shape can be determined, and always
// a fully-evaluated residual expression (for a Concrete result, its
// empty/push materialization), so callers that fall back to a residual
// never see a nil operand.  This is eval_seq_producing's recursive core: it
// is itself how nested producer calls such as push(push(empty, 10), 20)
// become Concrete.
func (ctx *Ctx) seqOf(e *Exp) (res SeqResult, residual *Exp, err error) {
	defer func() {
		if err == nil && res.Concrete && residual == nil {
			residual = ctx.materializeSeq(unwrapBoxUnbox(e), res.Elems)
		}
	}()
	inner := unwrapBoxUnbox(e)
	call, ok := inner.X.(*Call)
	if !ok {
		evaluated, err := ctx.eval(e)
		return SeqResult{}, evaluated, err
	}
	prim, isProducer := classifySeqFun(ctx.cfg.SeqFunctionPrefix, call.Fun)
	if !isProducer {
		evaluated, err := ctx.eval(e)
		return SeqResult{}, evaluated, err
	}

	rebuild := func(args []*Exp) *Exp {
		return inner.Like(&Call{Fun: call.Fun, Typs: call.Typs, Args: args})
	}

	switch prim {
	case seqEmpty:
		return SeqResult{Concrete: true}, nil, nil

	case seqPush:
		if len(call.Args) != 2 {
			evaluated, err := ctx.eval(e)
			return SeqResult{}, evaluated, err
		}
		sRes, sResidual, err := ctx.seqOf(call.Args[0])
		if err != nil {
			return SeqResult{}, nil, err
		}
		xEval, err := ctx.eval(call.Args[1])
		if err != nil {
			return SeqResult{}, nil, err
		}
		if sRes.Concrete {
			elems := append(append([]*Exp{}, sRes.Elems...), xEval)
			return SeqResult{Concrete: true, Elems: elems}, nil, nil
		}
		return SeqResult{}, rebuild([]*Exp{sResidual, xEval}), nil

	case seqUpdate:
		if len(call.Args) != 3 {
			evaluated, err := ctx.eval(e)
			return SeqResult{}, evaluated, err
		}
		sRes, sResidual, err := ctx.seqOf(call.Args[0])
		if err != nil {
			return SeqResult{}, nil, err
		}
		iEval, err := ctx.eval(call.Args[1])
		if err != nil {
			return SeqResult{}, nil, err
		}
		xEval, err := ctx.eval(call.Args[2])
		if err != nil {
			return SeqResult{}, nil, err
		}
		if sRes.Concrete {
			if iv, ok := asConcreteInt(iEval); ok && iv.Sign() >= 0 && iv.IsInt64() && iv.Int64() < int64(len(sRes.Elems)) {
				elems := append([]*Exp{}, sRes.Elems...)
				elems[iv.Int64()] = xEval
				return SeqResult{Concrete: true, Elems: elems}, nil, nil
			}
		}
		return SeqResult{}, rebuild([]*Exp{sResidual, iEval, xEval}), nil

	case seqSubrange:
		if len(call.Args) != 3 {
			evaluated, err := ctx.eval(e)
			return SeqResult{}, evaluated, err
		}
		sRes, sResidual, err := ctx.seqOf(call.Args[0])
		if err != nil {
			return SeqResult{}, nil, err
		}
		loEval, err := ctx.eval(call.Args[1])
		if err != nil {
			return SeqResult{}, nil, err
		}
		hiEval, err := ctx.eval(call.Args[2])
		if err != nil {
			return SeqResult{}, nil, err
		}
		if sRes.Concrete {
			lo, loOK := asConcreteInt(loEval)
			hi, hiOK := asConcreteInt(hiEval)
			if loOK && hiOK && lo.Sign() >= 0 && lo.Cmp(hi) <= 0 && hi.IsInt64() && hi.Int64() <= int64(len(sRes.Elems)) {
				return SeqResult{Concrete: true, Elems: append([]*Exp{}, sRes.Elems[lo.Int64():hi.Int64()]...)}, nil, nil
			}
		}
		return SeqResult{}, rebuild([]*Exp{sResidual, loEval, hiEval}), nil

	case seqAdd:
		if len(call.Args) != 2 {
			evaluated, err := ctx.eval(e)
			return SeqResult{}, evaluated, err
		}
		sRes, sResidual, err := ctx.seqOf(call.Args[0])
		if err != nil {
			return SeqResult{}, nil, err
		}
		tRes, tResidual, err := ctx.seqOf(call.Args[1])
		if err != nil {
			return SeqResult{}, nil, err
		}
		if sRes.Concrete && tRes.Concrete {
			elems := append(append([]*Exp{}, sRes.Elems...), tRes.Elems...)
			return SeqResult{Concrete: true, Elems: elems}, nil, nil
		}
		return SeqResult{}, rebuild([]*Exp{sResidual, tResidual}), nil

	case seqNew:
		if len(call.Args) != 2 {
			evaluated, err := ctx.eval(e)
			return SeqResult{}, evaluated, err
		}
		lenEval, err := ctx.eval(call.Args[0])
		if err != nil {
			return SeqResult{}, nil, err
		}
		lamEval, err := ctx.eval(call.Args[1])
		if err != nil {
			return SeqResult{}, nil, err
		}
		lenVal, lenOK := asConcreteInt(lenEval)
		bind, lamOK := lamEval.X.(*Bind)
		if lenOK && lamOK && bind.Bnd.Kind.Kind == BndLambda && len(bind.Bnd.Kind.Formals) == 1 && lenVal.Sign() >= 0 && lenVal.IsInt64() {
			n := lenVal.Int64()
			elems := make([]*Exp, 0, n)
			formal := bind.Bnd.Kind.Formals[0]
			for i := int64(0); i < n; i++ {
				ctx.env.PushScope()
				ctx.env.Insert(formal.Name, intConst(lamEval, i))
				v, err := ctx.eval(bind.Body)
				ctx.env.PopScope()
				if err != nil {
					return SeqResult{}, nil, err
				}
				elems = append(elems, v)
			}
			return SeqResult{Concrete: true, Elems: elems}, nil, nil
		}
		return SeqResult{}, rebuild([]*Exp{lenEval, lamEval}), nil

	default:
		evaluated, err := ctx.eval(e)
		return SeqResult{}, evaluated, err
	}
}

// evalSeqProducing is the entry point the main evaluator calls for a Call
// node identified as a sequence producer: it returns the fully reduced or
// residual expression representing the resulting sequence value.
func (ctx *Ctx) evalSeqProducing(call *Exp) (*Exp, error) {
	res, residual, err := ctx.seqOf(call)
	if err != nil {
		return nil, err
	}
	if !res.Concrete {
		return residual, nil
	}
	return ctx.materializeSeq(call, res.Elems), nil
}

// materializeSeq rebuilds a Concrete decomposition back into canonical
// empty/push call-chain form, the representation producer results take
// when embedded in a larger residual expression.
func (ctx *Ctx) materializeSeq(like *Exp, elems []*Exp) *Exp {
	acc := like.Like(&Call{Fun: FunID(ctx.cfg.SeqFunctionPrefix + "empty")})
	pushFun := FunID(ctx.cfg.SeqFunctionPrefix + "push")
	for _, el := range elems {
		acc = like.Like(&Call{Fun: pushFun, Args: []*Exp{acc, el}})
	}
	return acc
}

// evalSeqConsuming is the entry point the main evaluator calls for a Call
// node identified as a sequence consumer.
func (ctx *Ctx) evalSeqConsuming(call *Exp, c *Call) (*Exp, error) {
	prim, _ := classifySeqFun(ctx.cfg.SeqFunctionPrefix, c.Fun)
	switch prim {
	case seqLen:
		sRes, sResidual, err := ctx.seqOf(c.Args[0])
		if err != nil {
			return nil, err
		}
		if sRes.Concrete {
			return intConst(call, int64(len(sRes.Elems))), nil
		}
		return call.Like(&Call{Fun: c.Fun, Typs: c.Typs, Args: []*Exp{sResidual}}), nil

	case seqIndex:
		sRes, sResidual, err := ctx.seqOf(c.Args[0])
		if err != nil {
			return nil, err
		}
		iEval, err := ctx.eval(c.Args[1])
		if err != nil {
			return nil, err
		}
		if sRes.Concrete {
			if iv, ok := asConcreteInt(iEval); ok && iv.Sign() >= 0 && iv.IsInt64() && iv.Int64() < int64(len(sRes.Elems)) {
				return sRes.Elems[iv.Int64()], nil
			}
		}
		return call.Like(&Call{Fun: c.Fun, Typs: c.Typs, Args: []*Exp{sResidual, iEval}}), nil

	case seqLast:
		sRes, sResidual, err := ctx.seqOf(c.Args[0])
		if err != nil {
			return nil, err
		}
		if sRes.Concrete && len(sRes.Elems) > 0 {
			return sRes.Elems[len(sRes.Elems)-1], nil
		}
		return call.Like(&Call{Fun: c.Fun, Typs: c.Typs, Args: []*Exp{sResidual}}), nil

	case seqExtEqual:
		sRes, sResidual, err := ctx.seqOf(c.Args[0])
		if err != nil {
			return nil, err
		}
		tRes, tResidual, err := ctx.seqOf(c.Args[1])
		if err != nil {
			return nil, err
		}
		if sRes.Concrete && tRes.Concrete {
			if len(sRes.Elems) != len(tRes.Elems) {
				return boolConst(call, false), nil
			}
			allYes := true
			for i := range sRes.Elems {
				switch EqualExpr(sRes.Elems[i], tRes.Elems[i]) {
				case No:
					return boolConst(call, false), nil
				case Unknown:
					allYes = false
				}
			}
			if allYes {
				return boolConst(call, true), nil
			}
		}
		return call.Like(&Call{Fun: c.Fun, Typs: c.Typs, Args: []*Exp{sResidual, tResidual}}), nil

	default:
		return call, nil
	}
}
