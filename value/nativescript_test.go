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
	"testing"

	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeScriptPubkeyHash(t *testing.T) {
	kh, err := hash.Blake2b224FromHex("966e394a544f242081e41d1965137b1bb412ac230d40ed5407821c37")
	require.NoError(t, err)
	s := value.NewNativeScriptPubkey(kh)

	w := cbor.NewWriter()
	s.ToCBOR(w)
	assert.Equal(t, "8200581c966e394a544f242081e41d1965137b1bb412ac230d40ed5407821c37", w.EncodeHex())

	h := value.ScriptHash(s)
	assert.Equal(t, "44e8537337e941f125478607b7ab91515b5eca4ef647b10c16c63ed2", h.String())
}

func TestNativeScriptAtLeastHash(t *testing.T) {
	kh, err := hash.Blake2b224FromHex("966e394a544f242081e41d1965137b1bb412ac230d40ed5407821c37")
	require.NoError(t, err)

	s := value.NewNativeScriptNofK(2,
		value.NewNativeScriptInvalidAfter(3000),
		value.NewNativeScriptPubkey(kh),
		value.NewNativeScriptInvalidBefore(4000),
	)

	w := cbor.NewWriter()
	s.ToCBOR(w)
	assert.Equal(t, "830302838205190bb88200581c966e394a544f242081e41d1965137b1bb412ac230d40ed5407821c378204190fa0", w.EncodeHex())

	h := value.ScriptHash(s)
	assert.Equal(t, "a1fe3a12ce7c1d7e8c0621d97970cf3092f5c1f7677adc954a96c09b", h.String())
}

func TestNativeScriptCBORRoundTrip(t *testing.T) {
	kh, _ := hash.Blake2b224FromHex("966e394a544f242081e41d1965137b1bb412ac230d40ed5407821c37")
	s := value.NewNativeScriptAll(
		value.NewNativeScriptPubkey(kh),
		value.NewNativeScriptInvalidAfter(3000),
	)
	w := cbor.NewWriter()
	s.ToCBOR(w)
	raw := w.Encode()

	r := cbor.NewReader(raw)
	decoded, err := value.DecodeNativeScript(r)
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))

	w2 := cbor.NewWriter()
	decoded.ToCBOR(w2)
	assert.Equal(t, raw, w2.Encode())
}

func TestNativeScriptJSONRoundTrip(t *testing.T) {
	kh, _ := hash.Blake2b224FromHex("966e394a544f242081e41d1965137b1bb412ac230d40ed5407821c37")
	s := value.NewNativeScriptNofK(1, value.NewNativeScriptPubkey(kh))

	j, err := value.NativeScriptToJSON(s)
	require.NoError(t, err)

	decoded, err := value.NativeScriptFromJSON(j)
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))
}

func TestNativeScriptUnknownTypeRejected(t *testing.T) {
	_, err := value.NativeScriptFromJSON([]byte(`{"type":"bogus"}`))
	assert.Error(t, err)
}
