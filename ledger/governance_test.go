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

func TestCommitteeMemberBuilder_Build(t *testing.T) {
	member, err := ledger.NewCommitteeMemberBuilder().
		WithColdKey(sample28(1)).
		WithHotKey(sample28(2)).
		WithExpiryEpoch(500).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(500), member.ExpiryEpoch)
	require.NotNil(t, member.HotCredential)
}

func TestCommitteeMemberBuilder_MissingColdKey(t *testing.T) {
	_, err := ledger.NewCommitteeMemberBuilder().WithExpiryEpoch(1).Build()
	require.Error(t, err)
}

func TestCommitteeMemberBuilder_ResignAnchorBadHashLength(t *testing.T) {
	_, err := ledger.NewCommitteeMemberBuilder().
		WithColdKey(sample28(1)).
		WithResignAnchor("https://example.com", []byte{1, 2, 3}).
		Build()
	require.Error(t, err)
}

func TestConstitutionBuilder_Build(t *testing.T) {
	c, err := ledger.NewConstitutionBuilder().
		WithAnchor("https://example.com/constitution", sample32(9)).
		WithScriptHash(sample28(10)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/constitution", c.Anchor.URL)
}

func TestConstitutionBuilder_RequiresAnchorURL(t *testing.T) {
	_, err := ledger.NewConstitutionBuilder().Build()
	require.Error(t, err)
}

func TestVoterBuilder_InvalidType(t *testing.T) {
	_, err := ledger.NewVoterBuilder().WithType(5).WithHash(sample28(1)).Build()
	require.Error(t, err)
}

func TestVoterBuilder_Build(t *testing.T) {
	v, err := ledger.NewVoterBuilder().WithType(2).WithHash(sample28(1)).Build()
	require.NoError(t, err)
	assert.Equal(t, ledger.VoterTypeDRepKeyHash, v.Type)
}

func TestVotingProcedureBuilder_RequiresVote(t *testing.T) {
	_, err := ledger.NewVotingProcedureBuilder().Build()
	require.Error(t, err)
}

func TestVotingProcedureBuilder_Build(t *testing.T) {
	p, err := ledger.NewVotingProcedureBuilder().WithVote(1).Build()
	require.NoError(t, err)
	assert.Equal(t, ledger.VoteYes, p.Vote)
}

func TestVotingProcedures_VoteOverwrites(t *testing.T) {
	voter, err := ledger.NewVoterBuilder().WithType(0).WithHash(sample28(1)).Build()
	require.NoError(t, err)
	action := ledger.GovActionId{Index: 0}

	vp := ledger.NewVotingProcedures()
	assert.True(t, vp.IsEmpty())

	vp.Vote(*voter, action, ledger.VotingProcedure{Vote: ledger.VoteNo})
	vp.Vote(*voter, action, ledger.VotingProcedure{Vote: ledger.VoteYes})
	assert.False(t, vp.IsEmpty())

	// The second vote replaced the first: a body carrying vp has the same
	// id as one carrying only the Yes vote.
	bodyID := func(p *ledger.VotingProcedures) any {
		in, err := ledger.NewTransactionInputBuilder().WithTxId(sampleTxID()).WithIndex(0).Build()
		require.NoError(t, err)
		out, err := ledger.NewTransactionOutputBuilder().WithAddress(sampleAddressBytes()).WithLovelace(1_000_000).Build()
		require.NoError(t, err)
		body, err := ledger.NewTransactionBodyBuilder().WithInputs(in).WithOutputs(out).WithFee(170_000).WithVotingProcedures(p).Build()
		require.NoError(t, err)
		return body.Id()
	}
	yesOnly := ledger.NewVotingProcedures()
	yesOnly.Vote(*voter, action, ledger.VotingProcedure{Vote: ledger.VoteYes})
	assert.Equal(t, bodyID(yesOnly), bodyID(vp))
}

func TestProposalProcedureBuilder_Build(t *testing.T) {
	p, err := ledger.NewProposalProcedureBuilder().
		WithDeposit(100_000_000_000).
		WithRewardAccount(sample28(11)).
		WithAnchor("https://example.com/proposal", sample32(12)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000_000), p.Deposit)
}

func TestProposalProcedureBuilder_RequiresRewardAccount(t *testing.T) {
	_, err := ledger.NewProposalProcedureBuilder().
		WithAnchor("https://example.com", nil).
		Build()
	require.Error(t, err)
}
