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
	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/ledger"
)

func sample28(fill byte) []byte { return bytes.Repeat([]byte{fill}, 28) }
func sample32(fill byte) []byte { return bytes.Repeat([]byte{fill}, 32) }

func TestPoolBuilder_Build(t *testing.T) {
	cert, err := ledger.NewPoolBuilder().
		WithOperator(sample28(1)).
		WithVrfKeyHash(sample32(2)).
		WithPledge(1_000_000).
		WithCost(340_000_000).
		WithMargin(1, 100).
		WithRewardAccount(sample28(3)).
		WithOwners(sample28(4)).
		WithRelays(ledger.PoolRelay{Port: 3001, Hostname: "relay.example.com"}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), cert.Pledge)

	w := cbor.NewWriter()
	cert.ToCBOR(w)
	assert.NotEmpty(t, w.Encode())
}

func TestPoolBuilder_ZeroMarginDenominator(t *testing.T) {
	_, err := ledger.NewPoolBuilder().
		WithOperator(sample28(1)).
		WithVrfKeyHash(sample32(2)).
		WithMargin(1, 0).
		WithRewardAccount(sample28(3)).
		Build()
	require.Error(t, err)
}

func TestPoolBuilder_InvalidVrfKeyHash(t *testing.T) {
	_, err := ledger.NewPoolBuilder().
		WithOperator(sample28(1)).
		WithVrfKeyHash([]byte{1, 2}).
		Build()
	require.Error(t, err)
}

func TestDRepRegistrationBuilder_Build(t *testing.T) {
	cert, err := ledger.NewDRepRegistrationBuilder().
		WithCredential(sample28(5)).
		WithDeposit(500_000_000).
		WithAnchor("https://example.com/drep.json", sample32(6)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000_000), cert.Deposit)
	require.NotNil(t, cert.Anchor)

	w := cbor.NewWriter()
	cert.ToCBOR(w)
	assert.NotEmpty(t, w.Encode())
}

func TestDRepRegistrationBuilder_MissingCredential(t *testing.T) {
	_, err := ledger.NewDRepRegistrationBuilder().WithDeposit(1).Build()
	require.Error(t, err)
}

func TestStakeRegistrationCertificate_ToCBOR(t *testing.T) {
	h, err := hash.Blake2b224FromBytes(sample28(7))
	require.NoError(t, err)
	cert := ledger.StakeRegistrationCertificate{
		Credential: ledger.Credential{Type: ledger.CredentialTypeKeyHash, Hash: h},
	}
	w := cbor.NewWriter()
	cert.ToCBOR(w)
	assert.NotEmpty(t, w.Encode())
}
