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

	"github.com/sirupsen/logrus"
)

// Mode selects what EvalExpr does with a residual that did not reduce to a
// literal.
type Mode uint8

// The two evaluation modes spec.md §4.I distinguishes.
const (
	// Residual returns the (possibly non-literal) reduced expression so the
	// caller can hand it to an external decision procedure.
	Residual Mode = iota
	// MustReduce requires the residual to be exactly Const(Bool(true));
	// anything else is reported as ComputeNotTrue.
	MustReduce
)

// FunctionTable resolves a user-defined function's formal parameters and
// body. The zero value of any implementation must behave as an empty table
// (every Lookup returns ok=false) so callers with no recursive functions to
// unroll can pass a trivial implementation.
type FunctionTable interface {
	Lookup(f FunID) (params []Binder, body *Exp, ok bool)
}

// EmptyFunctionTable is a FunctionTable with no entries, for callers (e.g.
// S1/S3/S4/S5/S6/S7/S8 in spec.md §8) that evaluate without any recursive
// function definitions in scope.
type EmptyFunctionTable struct{}

// Lookup always reports a miss.
func (EmptyFunctionTable) Lookup(FunID) ([]Binder, *Exp, bool) { return nil, nil, false }

// MapFunctionTable is a FunctionTable backed by a plain map, sufficient for
// the demo subcommands in cmd/pireval and for tests.
type MapFunctionTable map[FunID]struct {
	Params []Binder
	Body   *Exp
}

// Lookup resolves fun's entry from the backing map.
func (t MapFunctionTable) Lookup(fun FunID) ([]Binder, *Exp, bool) {
	e, ok := t[fun]
	if !ok {
		return nil, nil, false
	}
	return e.Params, e.Body, true
}

// Config carries EvalExpr's tuning knobs: the resource budget, the
// evaluation mode, an optional diagnostic logger, and the sequence
// datatype's canonical name prefix.
type Config struct {
	// RLimitSeconds bounds the wall-clock budget for the whole invocation.
	RLimitSeconds uint
	// Mode selects Residual or MustReduce behavior.
	Mode Mode
	// Logger receives Debug-level evaluation traces and cache statistics
	// when non-nil. A nil Logger produces no diagnostic output.
	Logger *logrus.Entry
	// SeqFunctionPrefix identifies the built-in sequence datatype's
	// primitives by canonical fully-qualified name. Defaults to
	// DefaultSeqFunctionPrefix when empty.
	SeqFunctionPrefix string
}

func (c Config) withDefaults() Config {
	if c.SeqFunctionPrefix == "" {
		c.SeqFunctionPrefix = DefaultSeqFunctionPrefix
	}
	return c
}

// ErrorKind identifies which of the two recoverable InterpError variants
// occurred.
type ErrorKind uint8

// The two recoverable error kinds spec.md §6 defines.  Every other failure
// mode (malformed CallLambda, an unsupported bit width, an unknown
// expression variant) indicates an upstream IR-invariant violation and is
// a panic rather than an InterpError, per spec.md §7.3/§7.4.
const (
	KindTimeout ErrorKind = iota
	KindComputeNotTrue
)

// InterpError is the error EvalExpr returns on Timeout or, in MustReduce
// mode, ComputeNotTrue.
type InterpError struct {
	kind ErrorKind
	span Span
}

// Kind reports which recoverable failure occurred.
func (e *InterpError) Kind() ErrorKind { return e.kind }

// Span reports the source location associated with the failure: the
// expression being evaluated when a timeout tripped, or the top-level
// expression's span for ComputeNotTrue.
func (e *InterpError) Span() Span { return e.span }

func (e *InterpError) Error() string {
	switch e.kind {
	case KindTimeout:
		return fmt.Sprintf("pireval: evaluation timed out at %s:%d:%d", e.span.File, e.span.Line, e.span.Col)
	default:
		return fmt.Sprintf("pireval: residual is not true at %s:%d:%d", e.span.File, e.span.Line, e.span.Col)
	}
}

// EvalExpr is the core's single external operation: it simplifies exp as
// far as possible given funSsts and cfg, and -- in MustReduce mode --
// requires the result to be exactly Const(Bool(true)).
func EvalExpr(exp *Exp, funSsts FunctionTable, cfg Config) (*Exp, error) {
	cfg = cfg.withDefaults()
	ctx := newCtx(funSsts, cfg)

	result, err := ctx.eval(exp)
	if err != nil {
		return nil, err
	}
	result = unhideFreeVars(result)

	if cfg.Logger != nil {
		logCacheStats(cfg.Logger, ctx.cache)
	}

	switch cfg.Mode {
	case MustReduce:
		if v, ok := isBoolConst(result); ok && v {
			return result, nil
		}
		return nil, &InterpError{kind: KindComputeNotTrue, span: exp.Span}
	default:
		return result, nil
	}
}

// unhideFreeVars replaces every residual Interp(FreeVar(id)) node with
// Var(id), undoing the hiding eval.go's Var case applies to prevent
// binder-descent shadowing confusion during evaluation.
func unhideFreeVars(e *Exp) *Exp {
	switch x := e.X.(type) {
	case *Interp:
		if x.Kind == InterpFreeVar {
			return e.Like(&Var{ID: x.ID})
		}
		return e
	case *Const, *Var, *VarLoc, *VarAt, *Old:
		return e
	case *Loc:
		return e.Like(&Loc{Arg: unhideFreeVars(x.Arg)})
	case *Call:
		return e.Like(&Call{Fun: x.Fun, Typs: x.Typs, Args: unhideFreeVarsAll(x.Args)})
	case *CallLambda:
		return e.Like(&CallLambda{Typ: x.Typ, Lam: unhideFreeVars(x.Lam), Args: unhideFreeVarsAll(x.Args)})
	case *Ctor:
		fields := make([]CtorField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = CtorField{Name: f.Name, Value: unhideFreeVars(f.Value)}
		}
		return e.Like(&Ctor{Datatype: x.Datatype, Variant: x.Variant, Fields: fields})
	case *Unary:
		return e.Like(&Unary{Op: x.Op, ClipRange: x.ClipRange, Arg: unhideFreeVars(x.Arg)})
	case *UnaryOpr:
		return e.Like(&UnaryOpr{Op: x.Op, BoxTyp: x.BoxTyp, Datatype: x.Datatype, Variant: x.Variant, Field: x.Field, Arg: unhideFreeVars(x.Arg)})
	case *Binary:
		return e.Like(&Binary{Op: x.Op, Lhs: unhideFreeVars(x.Lhs), Rhs: unhideFreeVars(x.Rhs)})
	case *If:
		return e.Like(&If{Cond: unhideFreeVars(x.Cond), Then: unhideFreeVars(x.Then), Else: unhideFreeVars(x.Else)})
	case *Bind:
		return e.Like(&Bind{Bnd: unhideFreeVarsBnd(x.Bnd), Body: unhideFreeVars(x.Body)})
	case *WithTriggers:
		return e.Like(&WithTriggers{Triggers: x.Triggers, Body: unhideFreeVars(x.Body)})
	default:
		return e
	}
}

func unhideFreeVarsBnd(b Bnd) Bnd {
	k := b.Kind
	switch k.Kind {
	case BndLet:
		lets := make([]LetBinder, len(k.Lets))
		for i, l := range k.Lets {
			lets[i] = LetBinder{Name: l.Name, Arg: unhideFreeVars(l.Arg)}
		}
		k.Lets = lets
	case BndChoose:
		k.ChooseBody = unhideFreeVars(k.ChooseBody)
	}
	return Bnd{Kind: k}
}

func unhideFreeVarsAll(es []*Exp) []*Exp {
	out := make([]*Exp, len(es))
	for i, e := range es {
		out[i] = unhideFreeVars(e)
	}
	return out
}
