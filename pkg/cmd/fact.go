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
package cmd

import (
	"fmt"
	"math/big"

	"github.com/proofcompute/pireval/pkg/pireval"
	"github.com/spf13/cobra"
)

// factCmd evaluates a recursive factorial call through a user-defined
// FunctionTable, demonstrating per-call memoization via the evaluator's call
// cache.
var factCmd = &cobra.Command{
	Use:   "fact",
	Short: "Evaluate fact(n) via a recursive IR function definition.",
	Run: func(cmd *cobra.Command, args []string) {
		n := GetInt64(cmd, "n")
		exp, table := factExpr(n)

		cfg := pireval.Config{
			RLimitSeconds: GetUint(cmd, "rlimit"),
			Mode:          pireval.Residual,
		}
		if GetFlag(cmd, "verbose") {
			cfg.Logger = rootLogger(cmd)
		}

		result, err := pireval.EvalExpr(exp, table, cfg)
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Println(pireval.String(result))
	},
}

// factExpr builds the IR for:
//
//	fact(x) = if x <= 1 then 1 else x * fact(x - 1)
//
// applied to the literal n.
func factExpr(n int64) (*pireval.Exp, pireval.FunctionTable) {
	intTyp := pireval.IntType(pireval.IntRange{Kind: pireval.RangeInt})
	boolTyp := pireval.Bool
	xID := pireval.PlainVar("x")

	xVar := pireval.NewExp(pireval.Span{}, intTyp, &pireval.Var{ID: xID})
	one := pireval.NewExp(pireval.Span{}, intTyp, &pireval.Const{Value: pireval.IntConstant(big.NewInt(1))})

	cond := pireval.NewExp(pireval.Span{}, boolTyp, &pireval.Binary{Op: pireval.OpLe, Lhs: xVar, Rhs: one})
	xMinus1 := pireval.NewExp(pireval.Span{}, intTyp, &pireval.Binary{Op: pireval.OpSub, Lhs: xVar, Rhs: one})
	recurse := pireval.NewExp(pireval.Span{}, intTyp, &pireval.Call{Fun: "fact", Args: []*pireval.Exp{xMinus1}})
	xTimesRecurse := pireval.NewExp(pireval.Span{}, intTyp, &pireval.Binary{Op: pireval.OpMul, Lhs: xVar, Rhs: recurse})

	body := pireval.NewExp(pireval.Span{}, intTyp, &pireval.If{Cond: cond, Then: one, Else: xTimesRecurse})

	table := pireval.MapFunctionTable{
		"fact": {Params: []pireval.Binder{{Name: xID, Typ: intTyp}}, Body: body},
	}

	nExp := pireval.NewExp(pireval.Span{}, intTyp, &pireval.Const{Value: pireval.IntConstant(big.NewInt(n))})
	call := pireval.NewExp(pireval.Span{}, intTyp, &pireval.Call{Fun: "fact", Args: []*pireval.Exp{nExp}})

	return call, table
}

func init() {
	rootCmd.AddCommand(factCmd)
	factCmd.Flags().Int64("n", 5, "the factorial argument")
}
