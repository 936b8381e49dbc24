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

func TestMetadatumCBORRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString("9f01029f0102030405ff9f0102030405ff05ff")
	require.NoError(t, err)

	r := cbor.NewReader(raw)
	m, err := value.DecodeMetadatum(r)
	require.NoError(t, err)

	w := cbor.NewWriter()
	m.ToCBOR(w)
	assert.Equal(t, raw, w.Encode())
}

func TestMetadatumIntRoundTrip(t *testing.T) {
	m := value.NewMetadatumInt(bigint.NewFromI64(42))
	w := cbor.NewWriter()
	m.ToCBOR(w)

	r := cbor.NewReader(w.Encode())
	got, err := value.DecodeMetadatum(r)
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}

func TestMetadatumBytesTooLongRejected(t *testing.T) {
	_, err := value.NewMetadatumBytes(make([]byte, 65))
	assert.Error(t, err)
}

func TestMetadatumTextTooLongRejected(t *testing.T) {
	big := make([]byte, 65)
	for i := range big {
		big[i] = 'a'
	}
	_, err := value.NewMetadatumText(string(big))
	assert.Error(t, err)
}

func TestMetadatumMapEquality(t *testing.T) {
	k1, _ := value.NewMetadatumText("a")
	v1 := value.NewMetadatumInt(bigint.NewFromI64(1))
	k2, _ := value.NewMetadatumText("a")
	v2 := value.NewMetadatumInt(bigint.NewFromI64(1))

	m1 := value.NewMetadatumMap(value.MetadatumMapEntry{Key: k1, Value: v1})
	m2 := value.NewMetadatumMap(value.MetadatumMapEntry{Key: k2, Value: v2})
	assert.True(t, m1.Equal(m2))
}

func TestMetadatumNoSchemaJSONRoundTrip(t *testing.T) {
	key, _ := value.NewMetadatumText("k")
	text, _ := value.NewMetadatumText("v")
	m := value.NewMetadatumMap(value.MetadatumMapEntry{Key: key, Value: text})

	j, err := m.ToNoSchemaJSON()
	require.NoError(t, err)

	decoded, err := value.MetadatumFromNoSchemaJSON(j)
	require.NoError(t, err)
	assert.True(t, m.Equal(decoded))
}

func TestMetadatumNoSchemaJSONRejectsNonTextKeys(t *testing.T) {
	intKey := value.NewMetadatumInt(bigint.NewFromI64(1))
	val := value.NewMetadatumInt(bigint.NewFromI64(2))
	m := value.NewMetadatumMap(value.MetadatumMapEntry{Key: intKey, Value: val})

	_, err := m.ToNoSchemaJSON()
	assert.Error(t, err)
}

func TestMetadatumCIP116JSONInteger(t *testing.T) {
	m := value.NewMetadatumInt(bigint.NewFromI64(0))
	j, err := value.ToCIP116JSON(m)
	require.NoError(t, err)
	assert.Contains(t, string(j), `"tag": "int"`)
	assert.Contains(t, string(j), `"value": "0"`)
}

func TestMetadatumClearCache(t *testing.T) {
	raw, _ := hex.DecodeString("820102")
	r := cbor.NewReader(raw)
	m, err := value.DecodeMetadatum(r)
	require.NoError(t, err)

	list, ok := m.(*value.MetadatumList)
	require.True(t, ok)
	list.ClearCache()

	w := cbor.NewWriter()
	list.ToCBOR(w)
	assert.Equal(t, raw, w.Encode())
}
