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

package coinselection_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/coinselection"
	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/ledger"
)

func sampleAddress() []byte { return bytes.Repeat([]byte{0x61}, 29) }

func lovelaceUtxo(t *testing.T, seed byte, coin uint64) ledger.Utxo {
	t.Helper()
	u, err := ledger.NewUtxoBuilder().
		WithTxId(bytes.Repeat([]byte{seed}, 32)).
		WithIndex(0).
		WithAddress(sampleAddress()).
		WithLovelace(coin).
		Build()
	require.NoError(t, err)
	return u
}

func assetUtxo(t *testing.T, seed byte, coin uint64, policy hash.Blake2b224, name string, qty int64) ledger.Utxo {
	t.Helper()
	assetName, err := ledger.NewAssetName([]byte(name))
	require.NoError(t, err)
	u, err := ledger.NewUtxoBuilder().
		WithTxId(bytes.Repeat([]byte{seed}, 32)).
		WithIndex(0).
		WithAddress(sampleAddress()).
		WithLovelace(coin).
		WithAssets(ledger.Asset{PolicyID: policy, AssetName: assetName, Quantity: bigint.NewFromI64(qty)}).
		Build()
	require.NoError(t, err)
	return u
}

func TestLargestFirst_SelectsLargestLovelaceFirst(t *testing.T) {
	u1 := lovelaceUtxo(t, 1, 4027026464)
	u2 := lovelaceUtxo(t, 2, 4027026465)
	u3 := lovelaceUtxo(t, 3, 4027026466)

	selection, remaining, err := coinselection.NewLargestFirst().Select(
		nil,
		[]ledger.Utxo{u1, u2, u3},
		ledger.NewValue(1000),
	)
	require.NoError(t, err)

	require.Len(t, selection, 1)
	assert.Equal(t, uint64(4027026466), selection[0].Output.Amount().Coin)

	require.Len(t, remaining, 2)
	assert.Equal(t, uint64(4027026465), remaining[0].Output.Amount().Coin)
	assert.Equal(t, uint64(4027026464), remaining[1].Output.Amount().Coin)
}

func TestLargestFirst_PreSelectedAlreadySatisfyingReturnsImmediately(t *testing.T) {
	pre := lovelaceUtxo(t, 1, 10_000)
	avail := lovelaceUtxo(t, 2, 4027026464)

	selection, remaining, err := coinselection.NewLargestFirst().Select(
		[]ledger.Utxo{pre},
		[]ledger.Utxo{avail},
		ledger.NewValue(1000),
	)
	require.NoError(t, err)

	require.Len(t, selection, 1)
	assert.Equal(t, uint64(10_000), selection[0].Output.Amount().Coin)
	require.Len(t, remaining, 1)
	assert.Equal(t, uint64(4027026464), remaining[0].Output.Amount().Coin)
}

func TestLargestFirst_GrowsSelectionPastPreSelected(t *testing.T) {
	pre := lovelaceUtxo(t, 1, 4027026465)
	u64 := lovelaceUtxo(t, 2, 4027026464)
	u66 := lovelaceUtxo(t, 3, 4027026466)

	selection, remaining, err := coinselection.NewLargestFirst().Select(
		[]ledger.Utxo{pre},
		[]ledger.Utxo{u64, u66},
		ledger.NewValue(4027026467),
	)
	require.NoError(t, err)

	require.Len(t, selection, 2)
	assert.Equal(t, uint64(4027026465), selection[0].Output.Amount().Coin)
	assert.Equal(t, uint64(4027026466), selection[1].Output.Amount().Coin)

	require.Len(t, remaining, 1)
	assert.Equal(t, uint64(4027026464), remaining[0].Output.Amount().Coin)
}

func TestLargestFirst_SelectsLargestFirstPerAsset(t *testing.T) {
	policy := hash.NewBlake2b224([]byte("policy"))

	small := assetUtxo(t, 1, 2_000_000, policy, "token", 5)
	big := assetUtxo(t, 2, 2_000_000, policy, "token", 50)

	target := ledger.NewValueWithAssets(0, func() *ledger.MultiAsset {
		m := ledger.NewMultiAsset()
		name, err := ledger.NewAssetName([]byte("token"))
		require.NoError(t, err)
		m.Set(policy, name, bigint.NewFromI64(30))
		return m
	}())

	selection, remaining, err := coinselection.NewLargestFirst().Select(
		nil,
		[]ledger.Utxo{small, big},
		target,
	)
	require.NoError(t, err)

	require.Len(t, selection, 1)
	assert.Equal(t, uint64(2_000_000), selection[0].Output.Amount().Coin)
	name, err := ledger.NewAssetName([]byte("token"))
	require.NoError(t, err)
	assert.Equal(t, int64(50), selection[0].Output.Amount().Assets.Get(policy, name).Int64())

	require.Len(t, remaining, 1)
}

func TestLargestFirst_EnsuresOneInputForZeroTarget(t *testing.T) {
	u1 := lovelaceUtxo(t, 1, 5_000_000)
	u2 := lovelaceUtxo(t, 2, 1_000_000)

	selection, remaining, err := coinselection.NewLargestFirst().Select(
		nil,
		[]ledger.Utxo{u1, u2},
		ledger.NewValue(0),
	)
	require.NoError(t, err)

	require.Len(t, selection, 1)
	assert.Equal(t, uint64(5_000_000), selection[0].Output.Amount().Coin)
	require.Len(t, remaining, 1)
}

func TestLargestFirst_BalanceInsufficientFails(t *testing.T) {
	u1 := lovelaceUtxo(t, 1, 1_000_000)
	u2 := lovelaceUtxo(t, 2, 2_000_000)

	_, _, err := coinselection.NewLargestFirst().Select(
		nil,
		[]ledger.Utxo{u1, u2},
		ledger.NewValue(99_999_999_999),
	)
	require.Error(t, err)
}

func TestLargestFirst_DedupesUtxoPresentInBothLists(t *testing.T) {
	shared := lovelaceUtxo(t, 9, 4027026465)
	other := lovelaceUtxo(t, 8, 4027026464)
	bigger := lovelaceUtxo(t, 7, 4027026466)

	selection, remaining, err := coinselection.NewLargestFirst().Select(
		[]ledger.Utxo{shared},
		[]ledger.Utxo{shared, other, bigger},
		ledger.NewValue(4027026467),
	)
	require.NoError(t, err)

	require.Len(t, selection, 2)
	assert.Equal(t, uint64(4027026465), selection[0].Output.Amount().Coin)
	assert.Equal(t, uint64(4027026466), selection[1].Output.Amount().Coin)

	require.Len(t, remaining, 1)
	assert.Equal(t, uint64(4027026464), remaining[0].Output.Amount().Coin)
}
