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

// clipCmd evaluates Clip(I(width), value), demonstrating that an
// out-of-range value is preserved symbolically rather than truncated --
// a fixed-width Clip only drops its wrapper when the value already fits.
var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Evaluate Clip(I(width), value): dropped when in range, preserved symbolically otherwise.",
	Run: func(cmd *cobra.Command, args []string) {
		width := GetUint(cmd, "width")
		value := GetInt64(cmd, "value")
		exp := clipExpr(width, value)

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

func clipExpr(width uint, value int64) *pireval.Exp {
	rng := pireval.IntRange{Kind: pireval.RangeI, Width: width}
	typ := pireval.IntType(rng)
	v := pireval.NewExp(pireval.Span{}, typ, &pireval.Const{Value: pireval.IntConstant(big.NewInt(value))})

	return pireval.NewExp(pireval.Span{}, typ, &pireval.Unary{Op: pireval.OpClip, ClipRange: rng, Arg: v})
}

func init() {
	rootCmd.AddCommand(clipCmd)
	clipCmd.Flags().Uint("width", 8, "bit width of the signed clip range")
	clipCmd.Flags().Int64("value", 200, "the value to clip")
}
