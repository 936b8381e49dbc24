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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/cardano-core/ledger"
)

func TestUnitInterval_CBORRoundTrip(t *testing.T) {
	u := ledger.UnitInterval{Numerator: 1, Denominator: 2}
	data, err := u.MarshalCBOR()
	require.NoError(t, err)

	var decoded ledger.UnitInterval
	require.NoError(t, decoded.UnmarshalCBOR(data))
	assert.Equal(t, u, decoded)
}

func TestProtocolParameterUpdate_SparseEncode(t *testing.T) {
	fee := uint64(44)
	update := ledger.ProtocolParameterUpdate{MinFeeA: &fee}

	data, err := update.ToCBORBytes()
	require.NoError(t, err)

	decoded, err := ledger.DecodeProtocolParameterUpdate(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.MinFeeA)
	assert.Equal(t, fee, *decoded.MinFeeA)
	assert.Nil(t, decoded.MinFeeB)
}

func TestProtocolParameterUpdate_DRepVotingThresholds(t *testing.T) {
	thresholds := ledger.DRepVotingThresholds{
		MotionNoConfidence: ledger.UnitInterval{Numerator: 1, Denominator: 2},
		CommitteeNormal:    ledger.UnitInterval{Numerator: 2, Denominator: 3},
	}
	update := ledger.ProtocolParameterUpdate{DRepVotingThresholds: &thresholds}

	data, err := update.ToCBORBytes()
	require.NoError(t, err)

	decoded, err := ledger.DecodeProtocolParameterUpdate(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.DRepVotingThresholds)
	assert.Equal(t, thresholds.MotionNoConfidence, decoded.DRepVotingThresholds.MotionNoConfidence)
}
