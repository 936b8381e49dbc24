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

package ledger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/ledger"
)

func samplePolicyID(fill byte) hash.Blake2b224 {
	h, _ := hash.Blake2b224FromBytes(bytes.Repeat([]byte{fill}, 28))
	return h
}

func TestMultiAsset_SetGetZeroRemoves(t *testing.T) {
	m := ledger.NewMultiAsset()
	policy := samplePolicyID(0xaa)
	name, err := ledger.NewAssetName([]byte("token"))
	require.NoError(t, err)

	m.Set(policy, name, bigint.NewFromI64(42))
	assert.False(t, m.IsEmpty())
	assert.Equal(t, int64(42), m.Get(policy, name).Int64())

	m.Set(policy, name, bigint.NewFromI64(0))
	assert.True(t, m.IsEmpty())
}

func TestMultiAsset_AssetNameTooLong(t *testing.T) {
	_, err := ledger.NewAssetName(bytes.Repeat([]byte{1}, 33))
	require.Error(t, err)
}

func TestValue_ToCBOR_CoinOnly(t *testing.T) {
	v := ledger.NewValue(1000)
	w := cbor.NewWriter()
	v.ToCBOR(w)
	encoded := w.Encode()

	r := cbor.NewReader(encoded)
	decoded, err := ledger.DecodeValue(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), decoded.Coin)
	assert.True(t, decoded.Assets.IsEmpty())
}

func TestValue_ToCBOR_WithAssets(t *testing.T) {
	policy := samplePolicyID(0xbb)
	name, err := ledger.NewAssetName([]byte("gold"))
	require.NoError(t, err)
	m := ledger.NewMultiAsset()
	m.Set(policy, name, bigint.NewFromI64(7))
	v := ledger.NewValueWithAssets(500, m)

	w := cbor.NewWriter()
	v.ToCBOR(w)
	r := cbor.NewReader(w.Encode())
	decoded, err := ledger.DecodeValue(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), decoded.Coin)
	assert.Equal(t, int64(7), decoded.Assets.Get(policy, name).Int64())
}

func TestValue_AddSub(t *testing.T) {
	policy := samplePolicyID(0xcc)
	name, _ := ledger.NewAssetName([]byte("x"))
	m1 := ledger.NewMultiAsset()
	m1.Set(policy, name, bigint.NewFromI64(10))
	a := ledger.NewValueWithAssets(100, m1)

	m2 := ledger.NewMultiAsset()
	m2.Set(policy, name, bigint.NewFromI64(3))
	b := ledger.NewValueWithAssets(40, m2)

	var sum ledger.Value
	sum.Add(a, b)
	assert.Equal(t, uint64(140), sum.Coin)
	assert.Equal(t, int64(13), sum.Assets.Get(policy, name).Int64())

	var diff ledger.Value
	diff.Sub(a, b)
	assert.Equal(t, uint64(60), diff.Coin)
	assert.Equal(t, int64(7), diff.Assets.Get(policy, name).Int64())
}

func TestValue_GTE(t *testing.T) {
	v := ledger.NewValue(100)
	assert.True(t, v.GTE(ledger.NewValue(100)))
	assert.True(t, v.GTE(ledger.NewValue(50)))
	assert.False(t, v.GTE(ledger.NewValue(101)))
}

func TestValue_IsZero(t *testing.T) {
	assert.True(t, ledger.NewValue(0).IsZero())
	assert.False(t, ledger.NewValue(1).IsZero())
}

func TestValue_AssetMap_ReservesZeroKeyForLovelace(t *testing.T) {
	v := ledger.NewValue(250)
	m := v.AssetMap()
	qty, ok := m[ledger.AssetID{}]
	require.True(t, ok)
	assert.Equal(t, int64(250), qty.Int64())
}
