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

package value_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlutusConstrCBOREncoding(t *testing.T) {
	// spec.md §8: Constr(0, [Int(1), Int(2)]) encodes to d8799f0102ff
	c := value.NewPlutusConstr(0,
		value.NewPlutusInt(bigint.NewFromI64(1)),
		value.NewPlutusInt(bigint.NewFromI64(2)),
	)
	w := cbor.NewWriter()
	c.ToCBOR(w)
	assert.Equal(t, "d8799f0102ff", w.EncodeHex())
}

func TestPlutusConstrHighAlternativeUsesGenericTag(t *testing.T) {
	c := value.NewPlutusConstr(200, value.NewPlutusInt(bigint.NewFromI64(1)))
	w := cbor.NewWriter()
	c.ToCBOR(w)
	enc := w.Encode()
	assert.Equal(t, byte(0xd8), enc[0])
	assert.Equal(t, byte(0x66), enc[1]) // tag 102
}

func TestPlutusMapCBOREncoding(t *testing.T) {
	// spec.md §8: Map{1->4, 2->5, 3->6} encodes to a3010402050306
	m := value.NewPlutusMap(
		value.PlutusMapEntry{Key: value.NewPlutusInt(bigint.NewFromI64(1)), Value: value.NewPlutusInt(bigint.NewFromI64(4))},
		value.PlutusMapEntry{Key: value.NewPlutusInt(bigint.NewFromI64(2)), Value: value.NewPlutusInt(bigint.NewFromI64(5))},
		value.PlutusMapEntry{Key: value.NewPlutusInt(bigint.NewFromI64(3)), Value: value.NewPlutusInt(bigint.NewFromI64(6))},
	)
	w := cbor.NewWriter()
	m.ToCBOR(w)
	assert.Equal(t, "a3010402050306", w.EncodeHex())
}

func TestPlutusListFromCBOR(t *testing.T) {
	raw, err := hex.DecodeString("9f0102030405ff")
	require.NoError(t, err)
	r := cbor.NewReader(raw)
	p, err := value.DecodePlutusData(r)
	require.NoError(t, err)

	list, err := value.AsList(p)
	require.NoError(t, err)
	require.Len(t, list.Items, 5)
	for i, item := range list.Items {
		n, err := value.AsInteger(item)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), n.Int64())
	}
}

func TestPlutusMapFromCBOR(t *testing.T) {
	raw, err := hex.DecodeString("a3010402050306")
	require.NoError(t, err)
	r := cbor.NewReader(raw)
	p, err := value.DecodePlutusData(r)
	require.NoError(t, err)

	m, err := value.AsMap(p)
	require.NoError(t, err)
	require.Len(t, m.Entries, 3)

	k1, err := value.AsInteger(m.Entries[0].Key)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), k1.Uint64())
	v1, err := value.AsInteger(m.Entries[0].Value)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), v1.Uint64())
}

func TestPlutusBytesChunkedOverSixtyFour(t *testing.T) {
	data := make([]byte, 130)
	for i := range data {
		data[i] = byte(i)
	}
	b := value.NewPlutusBytes(data)
	w := cbor.NewWriter()
	b.ToCBOR(w)

	r := cbor.NewReader(w.Encode())
	p, err := value.DecodePlutusData(r)
	require.NoError(t, err)
	got, err := value.AsBytes(p)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestPlutusDataCacheReplay(t *testing.T) {
	raw, _ := hex.DecodeString("d8799f0102ff")
	r := cbor.NewReader(raw)
	p, err := value.DecodePlutusData(r)
	require.NoError(t, err)

	w := cbor.NewWriter()
	p.ToCBOR(w)
	assert.Equal(t, raw, w.Encode())
}

func TestPlutusDataJSONRoundTrip(t *testing.T) {
	c := value.NewPlutusConstr(0,
		value.NewPlutusInt(bigint.NewFromI64(1)),
		value.NewPlutusBytes([]byte{0xde, 0xad}),
	)
	j, err := value.PlutusDataToJSON(c)
	require.NoError(t, err)

	decoded, err := value.PlutusDataFromJSON(j)
	require.NoError(t, err)
	assert.True(t, c.Equal(decoded))
}

func TestAsIntegerWrongVariantFails(t *testing.T) {
	_, err := value.AsInteger(value.NewPlutusBytes([]byte{0x01}))
	assert.Error(t, err)
}

func TestUnknownTagRejected(t *testing.T) {
	w := cbor.NewWriter()
	w.WriteTag(99)
	w.WriteUint(1)
	r := cbor.NewReader(w.Encode())
	_, err := value.DecodePlutusData(r)
	assert.Error(t, err)
}
