// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bigint

import (
	"math/big"

	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// Add sets z = x + y and returns z, matching math/big's in-place
// output-parameter convention.
func (z *Int) Add(x, y *Int) *Int {
	z.v.Add(&x.v, &y.v)
	return z
}

// Sub sets z = x - y and returns z.
func (z *Int) Sub(x, y *Int) *Int {
	z.v.Sub(&x.v, &y.v)
	return z
}

// Mul sets z = x * y and returns z.
func (z *Int) Mul(x, y *Int) *Int {
	z.v.Mul(&x.v, &y.v)
	return z
}

// Div sets z = x / y truncated toward zero and returns z.
func (z *Int) Div(x, y *Int) (*Int, error) {
	if y.IsZero() {
		return nil, cerr.New(cerr.KindInvalidArgument, "division by zero")
	}
	z.v.Quo(&x.v, &y.v)
	return z, nil
}

// DivMod sets quo = x/y (truncated toward zero) and rem = x - quo*y
// (same sign as the dividend, C semantics) in one pass.
func DivMod(x, y, quo, rem *Int) error {
	if y.IsZero() {
		return cerr.New(cerr.KindInvalidArgument, "division by zero")
	}
	quo.v.QuoRem(&x.v, &y.v, &rem.v)
	return nil
}

// Rem sets z = x % y with the same sign as the dividend (C semantics)
// and returns z.
func (z *Int) Rem(x, y *Int) (*Int, error) {
	if y.IsZero() {
		return nil, cerr.New(cerr.KindInvalidArgument, "division by zero")
	}
	z.v.Rem(&x.v, &y.v)
	return z, nil
}

// Mod sets z = x mod y with the same sign as the divisor (floored
// modulo) and returns z.
func (z *Int) Mod(x, y *Int) (*Int, error) {
	if y.IsZero() {
		return nil, cerr.New(cerr.KindInvalidArgument, "division by zero")
	}
	z.v.Mod(&x.v, &y.v)
	if z.v.Sign() != 0 && y.v.Sign() < 0 && z.v.Sign() > 0 {
		z.v.Add(&z.v, &y.v)
	}
	return z, nil
}

// GCD sets z = gcd(|x|, |y|) and returns z.
func (z *Int) GCD(x, y *Int) *Int {
	z.v.GCD(nil, nil, new(big.Int).Abs(&x.v), new(big.Int).Abs(&y.v))
	return z
}

// Pow sets z = x^exp and returns z.
func (z *Int) Pow(x *Int, exp uint64) *Int {
	z.v.Exp(&x.v, new(big.Int).SetUint64(exp), nil)
	return z
}

// ModPow sets z = x^y mod m and returns z.
func (z *Int) ModPow(x, y, m *Int) (*Int, error) {
	if m.IsZero() {
		return nil, cerr.New(cerr.KindInvalidArgument, "modulus is zero")
	}
	z.v.Exp(&x.v, &y.v, &m.v)
	return z, nil
}

// ModInverse sets z = the multiplicative inverse of x modulo m and
// returns z, failing if x has no inverse mod m.
func (z *Int) ModInverse(x, m *Int) (*Int, error) {
	if m.IsZero() {
		return nil, cerr.New(cerr.KindInvalidArgument, "modulus is zero")
	}
	r := z.v.ModInverse(&x.v, &m.v)
	if r == nil {
		return nil, cerr.New(cerr.KindInvalidArgument, "%s has no inverse mod %s", x.v.String(), m.v.String())
	}
	return z, nil
}

// Abs sets z = |x| and returns z.
func (z *Int) Abs(x *Int) *Int {
	z.v.Abs(&x.v)
	return z
}

// Neg sets z = -x and returns z.
func (z *Int) Neg(x *Int) *Int {
	z.v.Neg(&x.v)
	return z
}

// Incr sets z = x + 1 and returns z.
func (z *Int) Incr(x *Int) *Int {
	z.v.Add(&x.v, big.NewInt(1))
	return z
}

// Decr sets z = x - 1 and returns z.
func (z *Int) Decr(x *Int) *Int {
	z.v.Sub(&x.v, big.NewInt(1))
	return z
}

// Sign returns -1, 0, or +1 depending on the sign of i.
func (i *Int) Sign() int {
	return i.v.Sign()
}

// And sets z = x & y (two's complement) and returns z.
func (z *Int) And(x, y *Int) *Int {
	z.v.And(&x.v, &y.v)
	return z
}

// Or sets z = x | y (two's complement) and returns z.
func (z *Int) Or(x, y *Int) *Int {
	z.v.Or(&x.v, &y.v)
	return z
}

// Xor sets z = x ^ y (two's complement) and returns z.
func (z *Int) Xor(x, y *Int) *Int {
	z.v.Xor(&x.v, &y.v)
	return z
}

// Not sets z = ^x (two's complement) and returns z.
func (z *Int) Not(x *Int) *Int {
	z.v.Not(&x.v)
	return z
}

// Lsh sets z = x << n and returns z.
func (z *Int) Lsh(x *Int, n uint) *Int {
	z.v.Lsh(&x.v, n)
	return z
}

// Rsh sets z = x >> n, arithmetic (sign-extending), and returns z.
func (z *Int) Rsh(x *Int, n uint) *Int {
	z.v.Rsh(&x.v, n)
	return z
}

// TestBit reports whether bit n of i's two's-complement representation is set.
func (i *Int) TestBit(n uint) bool {
	return i.v.Bit(int(n)) == 1
}

// SetBit sets z = x with bit n set and returns z.
func (z *Int) SetBit(x *Int, n uint) *Int {
	z.v.SetBit(&x.v, int(n), 1)
	return z
}

// ClearBit sets z = x with bit n cleared and returns z.
func (z *Int) ClearBit(x *Int, n uint) *Int {
	z.v.SetBit(&x.v, int(n), 0)
	return z
}

// FlipBit sets z = x with bit n flipped and returns z.
func (z *Int) FlipBit(x *Int, n uint) *Int {
	cur := x.v.Bit(int(n))
	z.v.SetBit(&x.v, int(n), 1-cur)
	return z
}

// BitCount returns the population count over i's two's-complement
// representation (the minimal form, not sign-extended).
func (i *Int) BitCount() int {
	b := toTwosComplement(&i.v)
	count := 0
	for _, by := range b {
		for by != 0 {
			count += int(by & 1)
			by >>= 1
		}
	}
	return count
}

// BitLen returns the width in bits of the minimal two's-complement byte
// encoding that Bytes produces, sign bit included: 8 times its length.
// The width is counted in whole bytes, not in single bits.
func (i *Int) BitLen() int {
	return len(toTwosComplement(&i.v)) * 8
}

// IsZero reports whether i is zero.
func (i *Int) IsZero() bool {
	return i.v.Sign() == 0
}

// Equal reports whether i and other have the same mathematical value.
func (i *Int) Equal(other *Int) bool {
	return i.v.Cmp(&other.v) == 0
}

// Cmp returns -1, 0, or +1 as i is less than, equal to, or greater than other.
func (i *Int) Cmp(other *Int) int {
	return i.v.Cmp(&other.v)
}

// String renders i in base 10.
func (i *Int) String() string {
	return i.v.String()
}
