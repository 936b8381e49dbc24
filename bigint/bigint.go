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

// Package bigint implements an arbitrary-precision signed integer over
// math/big, exposing the output-parameter arithmetic convention this
// corpus already uses for native-asset quantities (see apollo's
// models.go, which reaches for math/big directly for the same reason).
package bigint

import (
	"math/big"

	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// ByteOrder selects the byte ordering used by Bytes/FromBytes.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// Int is a signed arbitrary-precision integer. The zero value is a
// ready-to-use zero; New returns a pointer to one, and the NewFrom*
// functions return initialised values.
type Int struct {
	v big.Int
}

// New returns a new Int with value zero.
func New() *Int {
	return &Int{}
}

// NewFromI64 constructs an Int from a signed 64-bit integer.
func NewFromI64(n int64) *Int {
	i := New()
	i.v.SetInt64(n)
	return i
}

// NewFromU64 constructs an Int from an unsigned 64-bit integer.
func NewFromU64(n uint64) *Int {
	i := New()
	i.v.SetUint64(n)
	return i
}

// NewFromString parses s in the given base (2-36).
func NewFromString(s string, base int) (*Int, error) {
	if base < 2 || base > 36 {
		return nil, cerr.New(cerr.KindInvalidArgument, "base %d out of range [2,36]", base)
	}
	i := New()
	_, ok := i.v.SetString(s, base)
	if !ok {
		return nil, cerr.New(cerr.KindConversionFailed, "invalid digits for base %d: %q", base, s)
	}
	return i, nil
}

// NewFromBytes decodes data as a minimal two's-complement signed integer
// in the given byte order.
func NewFromBytes(data []byte, order ByteOrder) (*Int, error) {
	if len(data) == 0 {
		return New(), nil
	}
	buf := data
	if order == LittleEndian {
		buf = reversed(data)
	}
	negative := buf[0]&0x80 != 0
	i := New()
	if !negative {
		i.v.SetBytes(buf)
		return i, nil
	}
	// Two's complement: invert bits, add one, negate.
	inv := make([]byte, len(buf))
	for idx, b := range buf {
		inv[idx] = ^b
	}
	magnitude := new(big.Int).SetBytes(inv)
	magnitude.Add(magnitude, big.NewInt(1))
	i.v.Neg(magnitude)
	return i, nil
}

// Clone returns a deep copy of i.
func (i *Int) Clone() *Int {
	out := New()
	out.v.Set(&i.v)
	return out
}

// Assign copies src's value into dst without reallocating dst.
func Assign(dst, src *Int) {
	dst.v.Set(&src.v)
}

// Int64 truncates i to a signed 64-bit integer; behavior is undefined
// (wraps) if i is out of range, matching the C source's documented contract.
func (i *Int) Int64() int64 {
	return i.v.Int64()
}

// Uint64 truncates i to an unsigned 64-bit integer; behavior is
// undefined if i is out of range.
func (i *Int) Uint64() uint64 {
	return i.v.Uint64()
}

// Text renders i in the given base (2-36).
func (i *Int) Text(base int) (string, error) {
	if base < 2 || base > 36 {
		return "", cerr.New(cerr.KindInvalidArgument, "base %d out of range [2,36]", base)
	}
	return i.v.Text(base), nil
}

// Bytes returns the minimal two's-complement encoding of i in the given
// byte order. Zero encodes as a single 0x00 byte.
func (i *Int) Bytes(order ByteOrder) []byte {
	out := toTwosComplement(&i.v)
	if order == LittleEndian {
		return reversed(out)
	}
	return out
}

// AbsBytes returns the big-endian magnitude of i with no sign bit, the
// form used by CBOR tag-2/tag-3 bignums (sign carried by the tag).
func (i *Int) AbsBytes() []byte {
	return new(big.Int).Abs(&i.v).Bytes()
}

// FromAbsBytes sets i's sign and big-endian magnitude separately, the
// form used when decoding CBOR tag-2/tag-3 bignums.
func FromAbsBytes(magnitude []byte, negative bool) *Int {
	i := New()
	i.v.SetBytes(magnitude)
	if negative {
		i.v.Neg(&i.v)
	}
	return i
}

// Big exposes the underlying *big.Int for packages within this module
// that need direct math/big interop (the cbor and value packages).
func (i *Int) Big() *big.Int {
	return &i.v
}

// FromBig returns a new Int holding a copy of b's value; later changes
// to b do not affect it.
func FromBig(b *big.Int) *Int {
	out := New()
	out.v.Set(b)
	return out
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for idx, v := range b {
		out[len(b)-1-idx] = v
	}
	return out
}

// toTwosComplement returns the minimal two's-complement big-endian byte
// encoding of v, including a leading sign byte when required.
func toTwosComplement(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{0}
	}
	if v.Sign() > 0 {
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	// Negative: two's complement over the minimal byte length covering
	// the magnitude plus sign bit.
	mag := new(big.Int).Abs(v)
	nbits := mag.BitLen()
	nbytes := nbits/8 + 1
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nbytes*8))
	twos := new(big.Int).Add(mod, v)
	b := twos.Bytes()
	for len(b) < nbytes {
		b = append([]byte{0}, b...)
	}
	// nbytes over-allocates by one byte when mag is an exact power of two
	// on a byte boundary (e.g. 128, 32768): trim the redundant leading
	// 0xff as long as doing so doesn't flip the sign bit of what remains.
	for len(b) > 1 && b[0] == 0xff && b[1]&0x80 != 0 {
		b = b[1:]
	}
	return b
}
