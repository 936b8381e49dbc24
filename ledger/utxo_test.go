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

	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/ledger"
)

func sampleTxID() []byte {
	return bytes.Repeat([]byte{0xab}, 32)
}

func sampleAddressBytes() []byte {
	return bytes.Repeat([]byte{0x61}, 29)
}

func TestTransactionInputBuilder_Build(t *testing.T) {
	in, err := ledger.NewTransactionInputBuilder().
		WithTxId(sampleTxID()).
		WithIndex(3).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), in.Index)
}

func TestTransactionInputBuilder_MissingTxId(t *testing.T) {
	_, err := ledger.NewTransactionInputBuilder().WithIndex(0).Build()
	require.Error(t, err)
}

func TestTransactionInputBuilder_InvalidTxId(t *testing.T) {
	_, err := ledger.NewTransactionInputBuilder().WithTxId([]byte{1, 2, 3}).Build()
	require.Error(t, err)
}

func TestTransactionInput_CBORRoundTrip(t *testing.T) {
	in, err := ledger.NewTransactionInputBuilder().
		WithTxId(sampleTxID()).
		WithIndex(1).
		Build()
	require.NoError(t, err)

	w := cbor.NewWriter()
	in.ToCBOR(w)

	r := cbor.NewReader(w.Encode())
	decoded, err := ledger.DecodeTransactionInput(r)
	require.NoError(t, err)
	assert.True(t, in.Equal(decoded))
}

func TestTransactionInput_ToPlutusData(t *testing.T) {
	in, err := ledger.NewTransactionInputBuilder().
		WithTxId(sampleTxID()).
		WithIndex(2).
		Build()
	require.NoError(t, err)

	pd := in.ToPlutusData()
	require.NotNil(t, pd)
}

func TestTransactionOutputBuilder_RequiresAddress(t *testing.T) {
	_, err := ledger.NewTransactionOutputBuilder().WithLovelace(100).Build()
	require.Error(t, err)
}

func TestTransactionOutputBuilder_Build(t *testing.T) {
	out, err := ledger.NewTransactionOutputBuilder().
		WithAddress(sampleAddressBytes()).
		WithLovelace(5_000_000).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), out.Amount().Coin)
}

func TestTransactionOutput_CBORRoundTrip(t *testing.T) {
	out, err := ledger.NewTransactionOutputBuilder().
		WithAddress(sampleAddressBytes()).
		WithLovelace(2_000_000).
		Build()
	require.NoError(t, err)

	w := cbor.NewWriter()
	out.ToCBOR(w)
	r := cbor.NewReader(w.Encode())
	decoded, err := ledger.DecodeTransactionOutput(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000), decoded.Amount().Coin)
	assert.True(t, out.Address().Equal(decoded.Address()))
}

func TestTransactionOutput_WithDatumHash(t *testing.T) {
	dh := bytes.Repeat([]byte{0x99}, 32)
	out, err := ledger.NewTransactionOutputBuilder().
		WithAddress(sampleAddressBytes()).
		WithLovelace(1).
		WithDatumHash(dh).
		Build()
	require.NoError(t, err)

	got := out.DatumHash()
	require.NotNil(t, got)
	assert.Equal(t, dh, got.Bytes())

	w := cbor.NewWriter()
	out.ToCBOR(w)
	r := cbor.NewReader(w.Encode())
	decoded, err := ledger.DecodeTransactionOutput(r)
	require.NoError(t, err)
	require.NotNil(t, decoded.DatumHash())
	assert.Equal(t, dh, decoded.DatumHash().Bytes())
}

func TestTransactionOutput_SetAmountClearsCache(t *testing.T) {
	out, err := ledger.NewTransactionOutputBuilder().
		WithAddress(sampleAddressBytes()).
		WithLovelace(1).
		Build()
	require.NoError(t, err)

	w1 := cbor.NewWriter()
	out.ToCBOR(w1)

	out.SetAmount(ledger.NewValue(999))

	w2 := cbor.NewWriter()
	out.ToCBOR(w2)
	assert.NotEqual(t, w1.Encode(), w2.Encode())

	r := cbor.NewReader(w2.Encode())
	decoded, err := ledger.DecodeTransactionOutput(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(999), decoded.Amount().Coin)
}

func TestTransactionBody_MutatingNestedOutputClearsBodyCache(t *testing.T) {
	in, err := ledger.NewTransactionInputBuilder().WithTxId(sampleTxID()).WithIndex(0).Build()
	require.NoError(t, err)
	out, err := ledger.NewTransactionOutputBuilder().
		WithAddress(sampleAddressBytes()).
		WithLovelace(1_000_000).
		Build()
	require.NoError(t, err)

	body, err := ledger.NewTransactionBodyBuilder().
		WithInputs(in).
		WithOutputs(out).
		WithFee(170_000).
		Build()
	require.NoError(t, err)

	w := cbor.NewWriter()
	body.ToCBOR(w)
	decoded, err := ledger.DecodeTransactionBody(cbor.NewReader(w.Encode()))
	require.NoError(t, err)

	decoded.Outputs()[0].SetAmount(ledger.NewValue(9_999_999))

	w2 := cbor.NewWriter()
	decoded.ToCBOR(w2)
	redecoded, err := ledger.DecodeTransactionBody(cbor.NewReader(w2.Encode()))
	require.NoError(t, err)
	require.Len(t, redecoded.Outputs(), 1)
	assert.Equal(t, uint64(9_999_999), redecoded.Outputs()[0].Amount().Coin)
}

func TestUtxoBuilder_Build(t *testing.T) {
	u, err := ledger.NewUtxoBuilder().
		WithTxId(sampleTxID()).
		WithIndex(0).
		WithAddress(sampleAddressBytes()).
		WithLovelace(10).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), u.Input.Index)
	assert.Equal(t, uint64(10), u.Output.Amount().Coin)
}

func TestUtxoBuilder_PropagatesInputError(t *testing.T) {
	_, err := ledger.NewUtxoBuilder().
		WithTxId([]byte{1}).
		WithAddress(sampleAddressBytes()).
		WithLovelace(1).
		Build()
	require.Error(t, err)
}
