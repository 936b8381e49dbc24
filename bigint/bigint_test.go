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

package bigint_test

import (
	"math"
	"testing"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRoundTrip(t *testing.T) {
	values := []string{"0", "1", "-1", "123456789012345678901234567890", "-98765432109876543210"}
	for _, v := range values {
		for base := 2; base <= 36; base++ {
			t.Run(v, func(t *testing.T) {
				x, err := bigint.NewFromString(v, 10)
				require.NoError(t, err)
				s, err := x.Text(base)
				require.NoError(t, err)
				y, err := bigint.NewFromString(s, base)
				require.NoError(t, err)
				assert.True(t, x.Equal(y))
			})
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, -128, 256, -256, math.MaxInt32, math.MinInt32}
	for _, v := range values {
		for _, order := range []bigint.ByteOrder{bigint.BigEndian, bigint.LittleEndian} {
			x := bigint.NewFromI64(v)
			b := x.Bytes(order)
			y, err := bigint.NewFromBytes(b, order)
			require.NoError(t, err)
			assert.True(t, x.Equal(y), "value %d order %v", v, order)
		}
	}
}

func TestBytesMinimalAtPowerOfTwoBoundary(t *testing.T) {
	cases := []struct {
		v    int64
		want []byte
	}{
		{-128, []byte{0x80}},
		{-32768, []byte{0x80, 0x00}},
		{-255, []byte{0xff, 0x01}},
	}
	for _, c := range cases {
		got := bigint.NewFromI64(c.v).Bytes(bigint.BigEndian)
		assert.Equal(t, c.want, got, "value %d", c.v)
	}
}

func TestDivModLaw(t *testing.T) {
	cases := [][2]int64{{7, 3}, {-7, 3}, {7, -3}, {-7, -3}, {100, 7}}
	for _, c := range cases {
		x := bigint.NewFromI64(c[0])
		y := bigint.NewFromI64(c[1])
		quo, rem := bigint.New(), bigint.New()
		require.NoError(t, bigint.DivMod(x, y, quo, rem))
		// (x/y)*y + rem == x
		tmp := bigint.New().Mul(quo, y)
		got := bigint.New().Add(tmp, rem)
		assert.True(t, x.Equal(got), "x=%d y=%d", c[0], c[1])
	}
}

func TestRemSameSignAsDividend(t *testing.T) {
	rem, err := bigint.New().Rem(bigint.NewFromI64(-7), bigint.NewFromI64(3))
	require.NoError(t, err)
	assert.Equal(t, "-1", rem.String())
}

func TestModSameSignAsDivisor(t *testing.T) {
	m, err := bigint.New().Mod(bigint.NewFromI64(7), bigint.NewFromI64(-3))
	require.NoError(t, err)
	assert.Equal(t, "-2", m.String())
}

func TestDivisionByZeroFails(t *testing.T) {
	_, err := bigint.New().Div(bigint.NewFromI64(1), bigint.New())
	assert.Error(t, err)
}

func TestModPow(t *testing.T) {
	x := bigint.NewFromI64(4)
	y := bigint.NewFromI64(13)
	m := bigint.NewFromI64(497)
	z, err := bigint.New().ModPow(x, y, m)
	require.NoError(t, err)
	s, _ := z.Text(10)
	assert.Equal(t, "445", s)
}

func TestSign(t *testing.T) {
	assert.Equal(t, 0, bigint.New().Sign())
	assert.Equal(t, 1, bigint.NewFromI64(5).Sign())
	assert.Equal(t, -1, bigint.NewFromI64(-5).Sign())
}

func TestInt64Boundary(t *testing.T) {
	x := bigint.NewFromI64(math.MinInt64)
	assert.Equal(t, int64(math.MinInt64), x.Int64())
}

func TestMulOverflowsToBignum(t *testing.T) {
	x := bigint.NewFromI64(math.MaxInt64)
	z := bigint.New().Mul(x, x)
	assert.False(t, z.Int64() == z.Big().Int64() && z.Big().IsInt64())
}

func TestBitOps(t *testing.T) {
	z := bigint.New().SetBit(bigint.New(), 3)
	assert.True(t, z.TestBit(3))
	z = bigint.New().ClearBit(z, 3)
	assert.False(t, z.TestBit(3))
}

func TestAssign(t *testing.T) {
	src := bigint.NewFromI64(42)
	dst := bigint.New()
	bigint.Assign(dst, src)
	assert.True(t, dst.Equal(src))
}

func TestInvalidBase(t *testing.T) {
	_, err := bigint.NewFromString("10", 1)
	assert.Error(t, err)
	_, err = bigint.NewFromString("10", 37)
	assert.Error(t, err)
}

func TestInvalidDigits(t *testing.T) {
	_, err := bigint.NewFromString("12z", 2)
	assert.Error(t, err)
}
