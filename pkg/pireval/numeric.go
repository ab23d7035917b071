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

	"github.com/proofcompute/pireval/pkg/util"
)

var bigZero = big.NewInt(0)
var bigOne = big.NewInt(1)

// euclideanDiv computes Dafny-style Euclidean division: for any divisor
// d != 0, the remainder is always in [0, |d|), regardless of the signs of
// the numerator and divisor.  Go's native big.Int.QuoRem truncates toward
// zero, which only agrees with this definition when both operands are
// non-negative, so the negative cases are corrected explicitly.
func euclideanDiv(a, b *big.Int) *big.Int {
	q := new(big.Int)
	r := new(big.Int)
	q.QuoRem(a, b, r)
	if r.Sign() < 0 {
		if b.Sign() > 0 {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return q
}

// euclideanMod computes the Euclidean remainder companion to euclideanDiv:
// always non-negative, always strictly less than |b|.
func euclideanMod(a, b *big.Int) *big.Int {
	r := new(big.Int)
	r.Mod(a, new(big.Int).Abs(b))
	return r
}

// truncateUnsigned reduces a value modulo 2^width, producing the canonical
// unsigned representative in [0, 2^width).
func truncateUnsigned(v *big.Int, width uint) *big.Int {
	mod := new(big.Int).Lsh(bigOne, width)
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	return r
}

// truncateSigned reduces a value to its two's-complement representative in
// [-2^(width-1), 2^(width-1) - 1].
func truncateSigned(v *big.Int, width uint) *big.Int {
	u := truncateUnsigned(v, width)
	half := new(big.Int).Lsh(bigOne, width-1)
	if u.Cmp(half) >= 0 {
		full := new(big.Int).Lsh(bigOne, width)
		u.Sub(u, full)
	}
	return u
}

// unsignedRange returns the inclusive [0, 2^width) interval for an
// n-bit unsigned range.
func unsignedRange(width uint) *util.Interval {
	max := new(big.Int).Sub(new(big.Int).Lsh(bigOne, width), bigOne)
	return util.NewInterval(bigZero, max)
}

// signedRange returns the inclusive [-2^(width-1), 2^(width-1)-1] interval
// for an n-bit signed range -- the Open Question resolution recorded in
// DESIGN.md.
func signedRange(width uint) *util.Interval {
	half := new(big.Int).Lsh(bigOne, width-1)
	min := new(big.Int).Neg(half)
	max := new(big.Int).Sub(half, bigOne)
	return util.NewInterval(min, max)
}

// rangeWidth resolves a RangeU/RangeI/RangeUSize/RangeISize's effective bit
// width, substituting the architectural minimum for the size-dependent
// variants.  Any other range, or a width outside {8, 16, 32, 64, 128}, is an
// IR-invariant violation and panics.
func rangeWidth(r IntRange) uint {
	switch r.Kind {
	case RangeUSize, RangeISize:
		return ArchSizeMinBits
	case RangeU, RangeI:
		switch r.Width {
		case 8, 16, 32, 64, 128:
			return r.Width
		}
	}
	panic("pireval: unsupported bit width for a fixed-width integer operation")
}

// intervalFor returns the containment interval for a fixed-width or natural
// integer range, or nil for an unbounded RangeInt -- Clip against an
// unbounded range is always the identity and never fails.
func intervalFor(r IntRange) *util.Interval {
	switch r.Kind {
	case RangeNat:
		return util.NewInterval(bigZero, new(big.Int).Lsh(bigOne, 4096))
	case RangeU, RangeUSize:
		return unsignedRange(rangeWidth(r))
	case RangeI, RangeISize:
		return signedRange(rangeWidth(r))
	default:
		return nil
	}
}

// clipInRange reports whether v already lies within range r -- Clip is a
// no-op when this holds, matching the "already in range" fast path
// original_source takes before doing any truncation arithmetic.
func clipInRange(v *big.Int, r IntRange) bool {
	iv := intervalFor(r)
	if iv == nil {
		return true
	}
	return iv.Contains(v)
}

// There is no exported truncating Clip(v, r) helper: the Clip operator
// (evalUnary's OpClip case) never truncates an out-of-range value, it
// preserves the wrapper symbolically per spec.md §4.H. truncateUnsigned
// and truncateSigned remain available directly for the operators that do
// truncate -- BitNot and the Shl/Shr bitwise folds in evalBitwise.
