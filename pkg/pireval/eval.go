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
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
)

// Ctx is the transient state owned exclusively by one top-level EvalExpr
// invocation: environment, call cache, and the wall-clock deadline. Nothing
// here is shared across invocations, matching spec.md §3.5/§5's "no global
// state, safely re-entrant" requirement.
//
// There is deliberately no whole-expression memo keyed by node identity
// alone: function bodies, lambda bodies, and Let bodies are shared nodes
// re-evaluated under different environments, so a raw *Exp -> *Exp cache
// would return one call's result for another's arguments. Memoization is
// provided solely by the call cache (component F), which keys on the
// evaluated argument tuple rather than on the shared body node -- matching
// the reference interpreter, which has no such whole-eval memo either.
type Ctx struct {
	cfg      Config
	funSsts  FunctionTable
	env      *Environment
	cache    *CallCache
	deadline time.Time
	logger   *logrus.Entry
	depth    int
}

func newCtx(funSsts FunctionTable, cfg Config) *Ctx {
	return &Ctx{
		cfg:      cfg,
		funSsts:  funSsts,
		env:      NewEnvironment(),
		cache:    NewCallCache(),
		deadline: time.Now().Add(time.Duration(cfg.RLimitSeconds) * time.Second),
		logger:   cfg.Logger,
	}
}

// eval is the main evaluator's recursive entry point. It applies the
// wall-clock budget check described in spec.md §4.H before dispatching on
// e.X's concrete variant.
func (ctx *Ctx) eval(e *Exp) (*Exp, error) {
	if time.Now().After(ctx.deadline) {
		return nil, &InterpError{kind: KindTimeout, span: e.Span}
	}

	ctx.depth++
	if ctx.logger != nil {
		ctx.logger.Debugf("%seval %s", indent(ctx.depth), String(e))
	}
	result, err := ctx.evalDispatch(e)
	ctx.depth--
	if err != nil {
		return nil, err
	}
	if ctx.logger != nil {
		ctx.logger.Debugf("%s=> %s", indent(ctx.depth), String(result))
	}
	return result, nil
}

func indent(depth int) string {
	b := make([]byte, depth)
	for i := range b {
		b[i] = '\t'
	}
	return string(b)
}

func (ctx *Ctx) evalDispatch(e *Exp) (*Exp, error) {
	switch x := e.X.(type) {
	case *Const:
		return e, nil
	case *Var:
		if v, ok := ctx.env.Lookup(x.ID); ok {
			return v, nil
		}
		return e.Like(&Interp{Kind: InterpFreeVar, ID: x.ID}), nil
	case *VarLoc, *VarAt, *Loc, *Old, *WithTriggers, *Interp:
		return e, nil
	case *Unary:
		return ctx.evalUnary(e, x)
	case *UnaryOpr:
		return ctx.evalUnaryOpr(e, x)
	case *Binary:
		return ctx.evalBinary(e, x)
	case *If:
		return ctx.evalIf(e, x)
	case *Call:
		return ctx.evalCall(e, x)
	case *CallLambda:
		return ctx.evalCallLambda(e, x)
	case *Ctor:
		return ctx.evalCtor(e, x)
	case *Bind:
		return ctx.evalBind(e, x)
	default:
		panic(fmt.Sprintf("pireval: unknown expression variant %T", x))
	}
}

// ----------------------------------------------------------------------------
// Unary / UnaryOpr
// ----------------------------------------------------------------------------

func (ctx *Ctx) evalUnary(like *Exp, u *Unary) (*Exp, error) {
	arg, err := ctx.eval(u.Arg)
	if err != nil {
		return nil, err
	}
	rebuilt := like.Like(&Unary{Op: u.Op, ClipRange: u.ClipRange, Arg: arg})

	if c, ok := arg.X.(*Const); ok {
		if c.Value.IsBool {
			switch u.Op {
			case OpNot:
				return boolConst(like, !c.Value.Bool), nil
			default: // BitNot, Clip, Trigger have no bool-operand meaning; preserve
				return rebuilt, nil
			}
		}
		switch u.Op {
		case OpBitNot:
			w := rangeWidth(like.Type.IntR)
			inv := new(big.Int).Not(c.Value.Int)
			var truncated *big.Int
			if like.Type.IntR.Kind == RangeI || like.Type.IntR.Kind == RangeISize {
				truncated = truncateSigned(inv, w)
			} else {
				truncated = truncateUnsigned(inv, w)
			}
			return like.likeInt(truncated), nil
		case OpClip:
			if clipInRange(c.Value.Int, u.ClipRange) {
				return arg, nil
			}
			return rebuilt, nil
		default: // Not, Trigger on an int operand: preserve
			return rebuilt, nil
		}
	}

	if innerUnary, ok := arg.X.(*Unary); ok && u.Op == OpNot && innerUnary.Op == OpNot {
		return innerUnary.Arg, nil
	}

	return rebuilt, nil
}

// likeInt rebuilds an integer constant node sharing like's span/type --
// small helper so evalUnary/evalBinary don't repeat the Const boilerplate
// for arbitrary big.Int results.
func (e *Exp) likeInt(v *big.Int) *Exp {
	return e.Like(&Const{Value: IntConstant(v)})
}

func (ctx *Ctx) evalUnaryOpr(like *Exp, u *UnaryOpr) (*Exp, error) {
	arg, err := ctx.eval(u.Arg)
	if err != nil {
		return nil, err
	}
	rebuilt := like.Like(&UnaryOpr{Op: u.Op, BoxTyp: u.BoxTyp, Datatype: u.Datatype, Variant: u.Variant, Field: u.Field, Arg: arg})

	switch u.Op {
	case OprBox, OprHasType:
		return rebuilt, nil
	case OprUnbox:
		if inner, ok := arg.X.(*UnaryOpr); ok && inner.Op == OprBox {
			return inner.Arg, nil
		}
		return rebuilt, nil
	case OprIsVariant:
		if ctor, ok := arg.X.(*Ctor); ok {
			return boolConst(like, ctor.Datatype == u.Datatype && ctor.Variant == u.Variant), nil
		}
		return rebuilt, nil
	case OprField:
		if ctor, ok := arg.X.(*Ctor); ok {
			for _, f := range ctor.Fields {
				if f.Name == u.Field {
					return f.Value, nil
				}
			}
		}
		return rebuilt, nil
	default:
		return rebuilt, nil
	}
}

// ----------------------------------------------------------------------------
// Binary
// ----------------------------------------------------------------------------

func isBoolConst(e *Exp) (bool, bool) {
	c, ok := e.X.(*Const)
	if !ok || !c.Value.IsBool {
		return false, false
	}
	return c.Value.Bool, true
}

func isIntConst(e *Exp) (*big.Int, bool) {
	c, ok := e.X.(*Const)
	if !ok || c.Value.IsBool {
		return nil, false
	}
	return c.Value.Int, true
}

func (ctx *Ctx) evalBinary(like *Exp, b *Binary) (*Exp, error) {
	lhs, err := ctx.eval(b.Lhs)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case OpAnd:
		return ctx.evalAnd(like, b, lhs)
	case OpOr:
		return ctx.evalOr(like, b, lhs)
	case OpImplies:
		return ctx.evalImplies(like, b, lhs)
	}

	rhs, err := ctx.eval(b.Rhs)
	if err != nil {
		return nil, err
	}
	rebuilt := like.Like(&Binary{Op: b.Op, Lhs: lhs, Rhs: rhs})

	switch b.Op {
	case OpXor:
		if lv, lok := isBoolConst(lhs); lok {
			if rv, rok := isBoolConst(rhs); rok {
				return boolConst(like, lv != rv), nil
			}
			if lv {
				return ctx.eval(like.Like(&Unary{Op: OpNot, Arg: rhs})) // Xor(true, x) = Not x
			}
			return rhs, nil // Xor(false, x) = x
		}
		if rv, rok := isBoolConst(rhs); rok {
			if rv {
				return ctx.eval(like.Like(&Unary{Op: OpNot, Arg: lhs})) // Xor(x, true) = Not x
			}
			return lhs, nil // Xor(x, false) = x
		}
		return rebuilt, nil
	case OpEq, OpNe:
		switch EqualExpr(lhs, rhs) {
		case Yes:
			return boolConst(like, b.Op == OpEq), nil
		case No:
			return boolConst(like, b.Op == OpNe), nil
		default:
			return rebuilt, nil
		}
	case OpLe, OpGe, OpLt, OpGt:
		if l, lok := isIntConst(lhs); lok {
			if r, rok := isIntConst(rhs); rok {
				return boolConst(like, compareInts(b.Op, l, r)), nil
			}
		}
		return rebuilt, nil
	case OpAdd, OpSub, OpMul, OpEuclideanDiv, OpEuclideanMod:
		return ctx.evalArith(like, b.Op, lhs, rhs, rebuilt)
	case OpBitXor, OpBitAnd, OpBitOr, OpShr, OpShl:
		return ctx.evalBitwise(like, b.Op, lhs, rhs, rebuilt)
	default:
		return rebuilt, nil
	}
}

func compareInts(op BinaryOp, l, r *big.Int) bool {
	c := l.Cmp(r)
	switch op {
	case OpLe:
		return c <= 0
	case OpGe:
		return c >= 0
	case OpLt:
		return c < 0
	default: // OpGt
		return c > 0
	}
}

func (ctx *Ctx) evalAnd(like *Exp, b *Binary, lhs *Exp) (*Exp, error) {
	if v, ok := isBoolConst(lhs); ok && !v {
		return lhs, nil // And(false, x) = false, x not evaluated
	}
	rhs, err := ctx.eval(b.Rhs)
	if err != nil {
		return nil, err
	}
	if v, ok := isBoolConst(lhs); ok && v {
		return rhs, nil // And(true, x) = x
	}
	// lhs is symbolic here, since both const cases above already returned.
	if rv, rok := isBoolConst(rhs); rok {
		if !rv {
			return rhs, nil // And(x, false) = false
		}
		return lhs, nil // And(x, true) = x
	}
	return like.Like(&Binary{Op: OpAnd, Lhs: lhs, Rhs: rhs}), nil
}

func (ctx *Ctx) evalOr(like *Exp, b *Binary, lhs *Exp) (*Exp, error) {
	if v, ok := isBoolConst(lhs); ok && v {
		return lhs, nil // Or(true, x) = true, x not evaluated
	}
	rhs, err := ctx.eval(b.Rhs)
	if err != nil {
		return nil, err
	}
	if v, ok := isBoolConst(lhs); ok && !v {
		return rhs, nil // Or(false, x) = x
	}
	// lhs is symbolic here, since both const cases above already returned.
	if rv, rok := isBoolConst(rhs); rok {
		if rv {
			return rhs, nil // Or(x, true) = true
		}
		return lhs, nil // Or(x, false) = x
	}
	return like.Like(&Binary{Op: OpOr, Lhs: lhs, Rhs: rhs}), nil
}

func (ctx *Ctx) evalImplies(like *Exp, b *Binary, lhs *Exp) (*Exp, error) {
	if v, ok := isBoolConst(lhs); ok && !v {
		return boolConst(like, true), nil // Implies(false, x) = true, x not evaluated
	}
	rhs, err := ctx.eval(b.Rhs)
	if err != nil {
		return nil, err
	}
	if v, ok := isBoolConst(lhs); ok && v {
		return rhs, nil // Implies(true, x) = x
	}
	if v, ok := isBoolConst(rhs); ok && !v {
		// Implies(x, false) = Not(x), simplified recursively.
		return ctx.eval(like.Like(&Unary{Op: OpNot, Arg: lhs}))
	}
	return like.Like(&Binary{Op: OpImplies, Lhs: lhs, Rhs: rhs}), nil
}

func (ctx *Ctx) evalArith(like *Exp, op BinaryOp, lhs, rhs, rebuilt *Exp) (*Exp, error) {
	li, lok := isIntConst(lhs)
	ri, rok := isIntConst(rhs)

	if lok && rok {
		switch op {
		case OpAdd:
			return rebuilt.likeInt(new(big.Int).Add(li, ri)), nil
		case OpSub:
			return rebuilt.likeInt(new(big.Int).Sub(li, ri)), nil
		case OpMul:
			return rebuilt.likeInt(new(big.Int).Mul(li, ri)), nil
		case OpEuclideanDiv:
			if ri.Sign() == 0 {
				return rebuilt, nil // division by zero preserved symbolically
			}
			return rebuilt.likeInt(euclideanDiv(li, ri)), nil
		case OpEuclideanMod:
			if ri.Sign() == 0 {
				return rebuilt, nil
			}
			return rebuilt.likeInt(euclideanMod(li, ri)), nil
		}
	}

	if lok && li.Sign() == 0 && op == OpAdd {
		return rhs, nil // 0 + x = x
	}
	if lok && li.Sign() == 0 && op == OpMul {
		return rebuilt.likeInt(big.NewInt(0)), nil // 0 * x = 0
	}
	if lok && li.Cmp(bigOne) == 0 && op == OpMul {
		return rhs, nil // 1 * x = x
	}
	if rok && ri.Sign() == 0 && (op == OpAdd || op == OpSub) {
		return lhs, nil // x + 0 = x, x - 0 = x
	}
	if rok && ri.Sign() == 0 && op == OpMul {
		return rebuilt.likeInt(big.NewInt(0)), nil // x * 0 = 0
	}
	// x mod 1 yields 1, not 0: preserved verbatim from the original
	// interpreter's arithmetic folding table.
	if rok && ri.Cmp(bigOne) == 0 && op == OpEuclideanMod {
		return rebuilt.likeInt(big.NewInt(1)), nil
	}
	if rok && ri.Cmp(bigOne) == 0 && (op == OpMul || op == OpEuclideanDiv) {
		return lhs, nil // x * 1 = x, x / 1 = x
	}
	if op == OpSub && DefinitelyEqual(lhs, rhs) {
		return rebuilt.likeInt(big.NewInt(0)), nil // x - x = 0
	}
	return rebuilt, nil
}

func (ctx *Ctx) evalBitwise(like *Exp, op BinaryOp, lhs, rhs, rebuilt *Exp) (*Exp, error) {
	li, lok := isIntConst(lhs)
	ri, rok := isIntConst(rhs)

	if lok && rok {
		switch op {
		case OpBitXor:
			return rebuilt.likeInt(new(big.Int).Xor(li, ri)), nil
		case OpBitAnd:
			return rebuilt.likeInt(new(big.Int).And(li, ri)), nil
		case OpBitOr:
			return rebuilt.likeInt(new(big.Int).Or(li, ri)), nil
		case OpShr, OpShl:
			if !ri.IsUint64() {
				return rebuilt, nil
			}
			shift := uint(ri.Uint64())
			w := rangeWidth(like.Type.IntR)
			var shifted *big.Int
			if op == OpShr {
				shifted = new(big.Int).Rsh(li, shift)
			} else {
				shifted = new(big.Int).Lsh(li, shift)
			}
			if like.Type.IntR.Kind == RangeI || like.Type.IntR.Kind == RangeISize {
				return rebuilt.likeInt(truncateSigned(shifted, w)), nil
			}
			return rebuilt.likeInt(truncateUnsigned(shifted, w)), nil
		}
	}

	if (lok && li.Sign() == 0 || rok && ri.Sign() == 0) && op == OpBitAnd {
		return rebuilt.likeInt(big.NewInt(0)), nil // 0 & x = x & 0 = 0
	}
	if lok && li.Sign() == 0 && op == OpBitOr {
		return rhs, nil // 0 | x = x
	}
	if rok && ri.Sign() == 0 && op == OpBitOr {
		return lhs, nil // x | 0 = x
	}
	if DefinitelyEqual(lhs, rhs) {
		switch op {
		case OpBitXor:
			return rebuilt.likeInt(big.NewInt(0)), nil // x ^ x = 0
		case OpBitAnd, OpBitOr:
			return lhs, nil // x & x = x, x | x = x
		}
	}
	return rebuilt, nil
}

// ----------------------------------------------------------------------------
// If
// ----------------------------------------------------------------------------

func (ctx *Ctx) evalIf(like *Exp, n *If) (*Exp, error) {
	cond, err := ctx.eval(n.Cond)
	if err != nil {
		return nil, err
	}
	if v, ok := isBoolConst(cond); ok {
		if v {
			return ctx.eval(n.Then)
		}
		return ctx.eval(n.Else)
	}
	then, err := ctx.eval(n.Then)
	if err != nil {
		return nil, err
	}
	els, err := ctx.eval(n.Else)
	if err != nil {
		return nil, err
	}
	return like.Like(&If{Cond: cond, Then: then, Else: els}), nil
}

// ----------------------------------------------------------------------------
// Call / CallLambda
// ----------------------------------------------------------------------------

func (ctx *Ctx) evalCall(like *Exp, c *Call) (*Exp, error) {
	if result, ok := ctx.cache.Lookup(c.Fun, c.Args); ok {
		return result, nil
	}

	evaluated := make([]*Exp, len(c.Args))
	for i, a := range c.Args {
		v, err := ctx.eval(a)
		if err != nil {
			return nil, err
		}
		evaluated[i] = v
	}

	if result, ok := ctx.cache.Lookup(c.Fun, evaluated); ok {
		return result, nil
	}

	evaluatedCall := like.Like(&Call{Fun: c.Fun, Typs: c.Typs, Args: evaluated})

	var (
		result *Exp
		err    error
	)
	prim, isProducer := classifySeqFun(ctx.cfg.SeqFunctionPrefix, c.Fun)
	switch {
	case isProducer:
		result, err = ctx.evalSeqProducing(like)
	case prim != seqNotPrim:
		result, err = ctx.evalSeqConsuming(evaluatedCall, &Call{Fun: c.Fun, Typs: c.Typs, Args: evaluated})
	default:
		if params, body, ok := ctx.funSsts.Lookup(c.Fun); ok {
			ctx.env.PushScope()
			for i, p := range params {
				ctx.env.Insert(p.Name, evaluated[i])
			}
			result, err = ctx.eval(body)
			ctx.env.PopScope()
		} else {
			result, err = evaluatedCall, nil
		}
	}
	if err != nil {
		return nil, err
	}

	ctx.cache.Insert(c.Fun, evaluated, result)
	return result, nil
}

func (ctx *Ctx) evalCallLambda(like *Exp, cl *CallLambda) (*Exp, error) {
	lam, err := ctx.eval(cl.Lam)
	if err != nil {
		return nil, err
	}
	bind, ok := lam.X.(*Bind)
	if !ok || bind.Bnd.Kind.Kind != BndLambda {
		panic("pireval: CallLambda applied to a non-lambda value")
	}
	if len(bind.Bnd.Kind.Formals) != len(cl.Args) {
		panic("pireval: CallLambda arity mismatch")
	}

	evaluated := make([]*Exp, len(cl.Args))
	for i, a := range cl.Args {
		v, err := ctx.eval(a)
		if err != nil {
			return nil, err
		}
		evaluated[i] = v
	}

	ctx.env.PushScope()
	for i, formal := range bind.Bnd.Kind.Formals {
		ctx.env.Insert(formal.Name, evaluated[i])
	}
	result, err := ctx.eval(bind.Body)
	ctx.env.PopScope()
	return result, err
}

// ----------------------------------------------------------------------------
// Ctor
// ----------------------------------------------------------------------------

func (ctx *Ctx) evalCtor(like *Exp, c *Ctor) (*Exp, error) {
	fields := make([]CtorField, len(c.Fields))
	for i, f := range c.Fields {
		v, err := ctx.eval(f.Value)
		if err != nil {
			return nil, err
		}
		fields[i] = CtorField{Name: f.Name, Value: v}
	}
	return like.Like(&Ctor{Datatype: c.Datatype, Variant: c.Variant, Fields: fields}), nil
}

// ----------------------------------------------------------------------------
// Bind
// ----------------------------------------------------------------------------

func (ctx *Ctx) evalBind(like *Exp, bnd *Bind) (*Exp, error) {
	if bnd.Bnd.Kind.Kind != BndLet {
		return like, nil // Quant/Lambda/Choose are returned unchanged
	}

	lets := bnd.Bnd.Kind.Lets
	// Per DESIGN.md's Open Question resolution, Let bindings are
	// simultaneous: every binder's value is evaluated in the scope
	// enclosing the Let, none may see another's result.
	values := make([]*Exp, len(lets))
	for i, l := range lets {
		v, err := ctx.eval(l.Arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	ctx.env.PushScope()
	for i, l := range lets {
		ctx.env.Insert(l.Name.Name, values[i])
	}
	result, err := ctx.eval(bnd.Body)
	ctx.env.PopScope()
	return result, err
}
