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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 23, 24, 255, 256, 65535, 65536, 4294967295, 4294967296, 1<<64 - 1}
	for _, v := range values {
		w := cbor.NewWriter()
		w.WriteUint(v)
		r := cbor.NewReader(w.Encode())
		got, err := r.ReadUint()
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, cbor.Finished, r.PeekState())
	}
}

func TestIntRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, -24, -25, -256, -257, -4294967296}
	for _, v := range values {
		w := cbor.NewWriter()
		w.WriteInt(v)
		r := cbor.NewReader(w.Encode())
		got, err := r.ReadInt()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestBigIntRoundTripWithinI64(t *testing.T) {
	x := bigint.NewFromI64(42)
	w := cbor.NewWriter()
	w.WriteBigInt(x)
	enc := w.Encode()
	assert.Equal(t, []byte{0x18, 0x2a}, enc)
}

func TestBigIntRoundTripBeyondI64(t *testing.T) {
	x := bigint.NewFromU64(1 << 63)
	y := bigint.New().Mul(x, bigint.NewFromU64(4))
	w := cbor.NewWriter()
	w.WriteBigInt(y)
	enc := w.Encode()
	assert.Equal(t, byte(0xc2), enc[0]) // tag 2, unsigned bignum
	r := cbor.NewReader(enc)
	got, err := r.ReadBigInt()
	require.NoError(t, err)
	assert.True(t, y.Equal(got))
}

func TestNegativeBignum(t *testing.T) {
	x := bigint.New().Neg(bigint.New().Mul(bigint.NewFromU64(1<<63), bigint.NewFromU64(4)))
	w := cbor.NewWriter()
	w.WriteBigInt(x)
	enc := w.Encode()
	assert.Equal(t, byte(0xc3), enc[0]) // tag 3, negative bignum
	r := cbor.NewReader(enc)
	got, err := r.ReadBigInt()
	require.NoError(t, err)
	assert.True(t, x.Equal(got))
}

func TestBignumWrappingNonBytestringFails(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteTag(cbor.TagUnsignedBignum)
	w.WriteUint(5)
	r := cbor.NewReader(w.Encode())
	_, err := r.ReadBigInt()
	assert.Error(t, err)
}

func TestArrayRoundTrip(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteStartArray(3, false)
	w.WriteUint(1)
	w.WriteUint(2)
	w.WriteUint(3)
	require.NoError(t, w.WriteEndArray())

	r := cbor.NewReader(w.Encode())
	length, indef, err := r.ReadStartArray()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), length)
	assert.False(t, indef)
	for i := uint64(0); i < length; i++ {
		v, err := r.ReadUint()
		require.NoError(t, err)
		assert.Equal(t, i+1, v)
	}
	require.NoError(t, r.ReadEndArray())
	assert.Equal(t, cbor.Finished, r.PeekState())
}

func TestIndefiniteArrayRoundTrip(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteStartArray(0, true)
	w.WriteUint(1)
	w.WriteUint(2)
	require.NoError(t, w.WriteEndArray())

	r := cbor.NewReader(w.Encode())
	_, indef, err := r.ReadStartArray()
	require.NoError(t, err)
	assert.True(t, indef)
	assert.Equal(t, cbor.UnsignedInteger, r.PeekState())
	v1, err := r.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v1)
	v2, err := r.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v2)
	assert.Equal(t, cbor.EndArray, r.PeekState())
	require.NoError(t, r.ReadEndArray())
}

func TestMapRoundTrip(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteStartMap(2, false)
	w.WriteUint(1)
	w.WriteUint(4)
	w.WriteUint(2)
	w.WriteUint(5)
	require.NoError(t, w.WriteEndMap())
	// matches spec.md §8: PlutusData Map{1->4,2->5} prefix shape
	assert.Equal(t, "a201040205", hex.EncodeToString(w.Encode()))

	r := cbor.NewReader(w.Encode())
	length, indef, err := r.ReadStartMap()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), length)
	assert.False(t, indef)
	k1, _ := r.ReadUint()
	v1, _ := r.ReadUint()
	k2, _ := r.ReadUint()
	v2, _ := r.ReadUint()
	assert.Equal(t, []uint64{1, 4, 2, 5}, []uint64{k1, v1, k2, v2})
	require.NoError(t, r.ReadEndMap())
}

func TestByteStringIndefiniteChunks(t *testing.T) {
	data := make([]byte, 130)
	for i := range data {
		data[i] = byte(i)
	}
	w := cbor.NewWriter()
	w.WriteByteStringChunked(data, 64)
	r := cbor.NewReader(w.Encode())
	got, err := r.ReadByteString()
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestTextStringUTF8Validation(t *testing.T) {
	bad := []byte{0x61, 0xff} // 1-byte text string containing an invalid UTF-8 byte
	r := cbor.NewReader(bad)
	_, err := r.ReadTextString()
	assert.Error(t, err)
}

func TestSkipValueNested(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteStartArray(2, false)
	w.WriteStartMap(1, false)
	w.WriteTextString("k")
	w.WriteUint(1)
	require.NoError(t, w.WriteEndMap())
	w.WriteBool(true)
	require.NoError(t, w.WriteEndArray())

	r := cbor.NewReader(w.Encode())
	require.NoError(t, r.SkipValue())
	assert.Equal(t, cbor.Finished, r.PeekState())
}

func TestEncodedValueCache(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteStartArray(2, false)
	w.WriteUint(1)
	w.WriteUint(2)
	require.NoError(t, w.WriteEndArray())
	full := w.Encode()

	r := cbor.NewReader(full)
	ev, err := r.EncodedValue()
	require.NoError(t, err)
	assert.Equal(t, full, ev)
	assert.Equal(t, 0, r.BytesRead()) // EncodedValue does not consume
}

func TestBookmarkRestore(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteUint(1)
	w.WriteUint(2)
	r := cbor.NewReader(w.Encode())
	bm := r.Bookmark()
	v, err := r.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
	r.Restore(bm)
	v, err = r.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestNonMinimalIntegerRejected(t *testing.T) {
	// 0x18 0x05 encodes 5 using the 1-byte form though it fits in the
	// header nibble directly: non-minimal, must be rejected by default.
	r := cbor.NewReader([]byte{0x18, 0x05})
	_, err := r.ReadUint()
	assert.Error(t, err)

	r2 := cbor.NewReader([]byte{0x18, 0x05}, cbor.WithLenientIntegers())
	v, err := r2.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)
}

func TestArrayLengthMismatch(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteStartArray(2, false)
	w.WriteUint(1)
	r := cbor.NewReader(w.Encode())
	_, _, err := r.ReadStartArray()
	require.NoError(t, err)
	_, err = r.ReadUint()
	require.NoError(t, err)
	err = r.ReadEndArray()
	assert.Error(t, err)
}
