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

// seqCmd builds a push-chain of length n and evaluates len(seq), showing the
// sequence sub-evaluator collapsing a producer chain into a concrete length
// without ever materializing the chain into the residual.
var seqCmd = &cobra.Command{
	Use:   "seq",
	Short: "Push n elements onto an empty sequence and evaluate its length.",
	Run: func(cmd *cobra.Command, args []string) {
		n := GetInt64(cmd, "n")
		exp := seqLenExpr(n)

		cfg := pireval.Config{
			RLimitSeconds: GetUint(cmd, "rlimit"),
			Mode:          pireval.Residual,
		}
		if GetFlag(cmd, "verbose") {
			cfg.Logger = rootLogger(cmd)
		}

		result, err := pireval.EvalExpr(exp, pireval.EmptyFunctionTable{}, cfg)
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Println(pireval.String(result))
	},
}

func seqLenExpr(n int64) *pireval.Exp {
	intTyp := pireval.IntType(pireval.IntRange{Kind: pireval.RangeInt})
	seqTyp := pireval.Type{Kind: pireval.TypeDatatype, Path: "pivot::seq::Seq", TypeArgs: []pireval.Type{intTyp}}

	emptyFun := pireval.FunID(pireval.DefaultSeqFunctionPrefix + "empty")
	pushFun := pireval.FunID(pireval.DefaultSeqFunctionPrefix + "push")
	lenFun := pireval.FunID(pireval.DefaultSeqFunctionPrefix + "len")

	acc := pireval.NewExp(pireval.Span{}, seqTyp, &pireval.Call{Fun: emptyFun})
	for i := int64(0); i < n; i++ {
		elem := pireval.NewExp(pireval.Span{}, intTyp, &pireval.Const{Value: pireval.IntConstant(big.NewInt(i))})
		acc = pireval.NewExp(pireval.Span{}, seqTyp, &pireval.Call{Fun: pushFun, Args: []*pireval.Exp{acc, elem}})
	}

	return pireval.NewExp(pireval.Span{}, intTyp, &pireval.Call{Fun: lenFun, Args: []*pireval.Exp{acc}})
}

func init() {
	rootCmd.AddCommand(seqCmd)
	seqCmd.Flags().Int64("n", 3, "number of elements to push")
}
