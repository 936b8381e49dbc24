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

package ledger

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/hash"
)

// GovAnchor points at off-chain governance metadata (CIP-1694): a URL and
// the Blake2b-256 hash of the document it resolves to.
type GovAnchor struct {
	URL      string
	DataHash hash.Blake2b256
}

func (a *GovAnchor) toCBOR(w *cbor.Writer) {
	w.WriteStartArray(2, false)
	w.WriteTextString(a.URL)
	w.WriteByteString(a.DataHash.Bytes())
	_ = w.WriteEndArray()
}

func decodeGovAnchor(r *cbor.Reader) (*GovAnchor, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return nil, err
	}
	url, err := r.ReadTextString()
	if err != nil {
		return nil, err
	}
	hb, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	dh, err := hash.Blake2b256FromBytes(hb)
	if err != nil {
		return nil, err
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return &GovAnchor{URL: url, DataHash: dh}, nil
}

// GovAnchorBuilder builds a GovAnchor.
type GovAnchorBuilder interface {
	WithURL(url string) GovAnchorBuilder
	WithDataHash(h []byte) GovAnchorBuilder
	Build() (*GovAnchor, error)
}

type govAnchorBuilder struct {
	url      string
	dataHash []byte
}

// NewGovAnchorBuilder creates a new governance-anchor builder.
func NewGovAnchorBuilder() GovAnchorBuilder {
	return &govAnchorBuilder{}
}

func (b *govAnchorBuilder) WithURL(url string) GovAnchorBuilder {
	b.url = url
	return b
}

func (b *govAnchorBuilder) WithDataHash(h []byte) GovAnchorBuilder {
	b.dataHash = h
	return b
}

func (b *govAnchorBuilder) Build() (*GovAnchor, error) {
	if b.url == "" {
		return nil, errors.New("URL is required")
	}
	anchor := &GovAnchor{URL: b.url}
	if len(b.dataHash) > 0 {
		dh, err := hash.Blake2b256FromBytes(b.dataHash)
		if err != nil {
			return nil, fmt.Errorf("dataHash: %w", err)
		}
		anchor.DataHash = dh
	}
	return anchor, nil
}

// CommitteeMember is a constitutional-committee member's on-chain state:
// its cold credential, optional hot credential, expiry epoch, and
// resignation status.
type CommitteeMember struct {
	ColdCredential Credential
	HotCredential  *Credential
	ExpiryEpoch    uint64
	Resigned       bool
	ResignAnchor   *GovAnchor
}

// CommitteeMemberBuilder builds a CommitteeMember.
type CommitteeMemberBuilder interface {
	WithColdKey(key []byte) CommitteeMemberBuilder
	WithHotKey(key []byte) CommitteeMemberBuilder
	WithExpiryEpoch(epoch uint64) CommitteeMemberBuilder
	WithResigned(resigned bool) CommitteeMemberBuilder
	WithResignAnchor(url string, dataHash []byte) CommitteeMemberBuilder
	Build() (*CommitteeMember, error)
}

type committeeMemberBuilder struct {
	coldKey      []byte
	hotKey       []byte
	expiryEpoch  uint64
	resigned     bool
	resignAnchor *GovAnchor
	resignErr    error
}

// NewCommitteeMemberBuilder creates a new committee-member builder.
func NewCommitteeMemberBuilder() CommitteeMemberBuilder {
	return &committeeMemberBuilder{}
}

func (b *committeeMemberBuilder) WithColdKey(key []byte) CommitteeMemberBuilder {
	b.coldKey = key
	return b
}

func (b *committeeMemberBuilder) WithHotKey(key []byte) CommitteeMemberBuilder {
	b.hotKey = key
	return b
}

func (b *committeeMemberBuilder) WithExpiryEpoch(epoch uint64) CommitteeMemberBuilder {
	b.expiryEpoch = epoch
	return b
}

func (b *committeeMemberBuilder) WithResigned(resigned bool) CommitteeMemberBuilder {
	b.resigned = resigned
	return b
}

func (b *committeeMemberBuilder) WithResignAnchor(
	url string,
	dataHash []byte,
) CommitteeMemberBuilder {
	if url == "" {
		return b
	}
	anchor := &GovAnchor{URL: url}
	if len(dataHash) > 0 {
		dh, err := hash.Blake2b256FromBytes(dataHash)
		if err != nil {
			b.resignErr = fmt.Errorf("resign anchor dataHash: %w", err)
			return b
		}
		b.resignErr = nil
		anchor.DataHash = dh
	}
	b.resignAnchor = anchor
	return b
}

func (b *committeeMemberBuilder) Build() (*CommitteeMember, error) {
	if len(b.coldKey) == 0 {
		return nil, errors.New("cold key is required")
	}
	if b.resignErr != nil {
		return nil, b.resignErr
	}
	coldHash, err := hash.Blake2b224FromBytes(b.coldKey)
	if err != nil {
		return nil, fmt.Errorf("cold key: %w", err)
	}
	member := &CommitteeMember{
		ColdCredential: Credential{Type: CredentialTypeKeyHash, Hash: coldHash},
		ExpiryEpoch:    b.expiryEpoch,
		Resigned:       b.resigned,
		ResignAnchor:   b.resignAnchor,
	}
	if len(b.hotKey) > 0 {
		hotHash, err := hash.Blake2b224FromBytes(b.hotKey)
		if err != nil {
			return nil, fmt.Errorf("hot key: %w", err)
		}
		member.HotCredential = &Credential{Type: CredentialTypeKeyHash, Hash: hotHash}
	}
	return member, nil
}

// Constitution is the on-chain constitution: an anchor to its text plus an
// optional guardrail script hash.
type Constitution struct {
	Anchor     GovAnchor
	ScriptHash []byte
}

// ConstitutionBuilder builds a Constitution.
type ConstitutionBuilder interface {
	WithAnchor(url string, dataHash []byte) ConstitutionBuilder
	WithScriptHash(h []byte) ConstitutionBuilder
	Build() (*Constitution, error)
}

type constitutionBuilder struct {
	anchorURL  string
	dataHash   []byte
	scriptHash []byte
}

// NewConstitutionBuilder creates a new constitution builder.
func NewConstitutionBuilder() ConstitutionBuilder {
	return &constitutionBuilder{}
}

func (b *constitutionBuilder) WithAnchor(url string, dataHash []byte) ConstitutionBuilder {
	b.anchorURL = url
	b.dataHash = dataHash
	return b
}

func (b *constitutionBuilder) WithScriptHash(h []byte) ConstitutionBuilder {
	b.scriptHash = h
	return b
}

func (b *constitutionBuilder) Build() (*Constitution, error) {
	if b.anchorURL == "" {
		return nil, errors.New("anchor URL is required")
	}
	if len(b.scriptHash) > 0 && len(b.scriptHash) != 28 {
		return nil, fmt.Errorf("scriptHash must be exactly 28 bytes, got %d", len(b.scriptHash))
	}
	constitution := &Constitution{
		Anchor:     GovAnchor{URL: b.anchorURL},
		ScriptHash: b.scriptHash,
	}
	if len(b.dataHash) > 0 {
		dh, err := hash.Blake2b256FromBytes(b.dataHash)
		if err != nil {
			return nil, fmt.Errorf("dataHash: %w", err)
		}
		constitution.Anchor.DataHash = dh
	}
	return constitution, nil
}

// VoterType identifies who cast a VotingProcedure (CIP-1694 §governance
// actions): a constitutional-committee member, a DRep, or an SPO.
type VoterType uint8

const (
	VoterTypeCommitteeHotKeyHash VoterType = iota
	VoterTypeCommitteeHotScriptHash
	VoterTypeDRepKeyHash
	VoterTypeDRepScriptHash
	VoterTypeStakePoolKeyHash
)

// Voter is a (type, hash-28) pair identifying a governance-action voter.
type Voter struct {
	Type VoterType
	Hash hash.Blake2b224
}

func (v Voter) toCBOR(w *cbor.Writer) {
	w.WriteStartArray(2, false)
	w.WriteUint(uint64(v.Type))
	w.WriteByteString(v.Hash.Bytes())
	_ = w.WriteEndArray()
}

func decodeVoter(r *cbor.Reader) (Voter, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return Voter{}, err
	}
	typ, err := r.ReadUint()
	if err != nil {
		return Voter{}, err
	}
	hb, err := r.ReadByteString()
	if err != nil {
		return Voter{}, err
	}
	h, err := hash.Blake2b224FromBytes(hb)
	if err != nil {
		return Voter{}, err
	}
	if err := r.ReadEndArray(); err != nil {
		return Voter{}, err
	}
	return Voter{Type: VoterType(typ), Hash: h}, nil
}

// VoterBuilder builds a Voter.
type VoterBuilder interface {
	WithType(voterType uint8) VoterBuilder
	WithHash(h []byte) VoterBuilder
	Build() (*Voter, error)
}

type voterBuilder struct {
	voterType uint8
	hash      []byte
}

// NewVoterBuilder creates a new voter builder.
func NewVoterBuilder() VoterBuilder {
	return &voterBuilder{}
}

func (b *voterBuilder) WithType(voterType uint8) VoterBuilder {
	b.voterType = voterType
	return b
}

func (b *voterBuilder) WithHash(h []byte) VoterBuilder {
	b.hash = h
	return b
}

func (b *voterBuilder) Build() (*Voter, error) {
	if len(b.hash) == 0 {
		return nil, errors.New("hash is required")
	}
	if b.voterType > 4 {
		return nil, fmt.Errorf("invalid voter type %d, must be 0-4", b.voterType)
	}
	h, err := hash.Blake2b224FromBytes(b.hash)
	if err != nil {
		return nil, err
	}
	return &Voter{Type: VoterType(b.voterType), Hash: h}, nil
}

// Vote is a cast ballot value: no, yes, or abstain.
type Vote uint8

const (
	VoteNo Vote = iota
	VoteYes
	VoteAbstain
)

// VotingProcedure is a single voter's ballot on one governance action.
type VotingProcedure struct {
	Vote   Vote
	Anchor *GovAnchor
}

func (p VotingProcedure) toCBOR(w *cbor.Writer) {
	w.WriteStartArray(2, false)
	w.WriteUint(uint64(p.Vote))
	if p.Anchor != nil {
		p.Anchor.toCBOR(w)
	} else {
		w.WriteNull()
	}
	_ = w.WriteEndArray()
}

// VotingProcedureBuilder builds a VotingProcedure.
type VotingProcedureBuilder interface {
	WithVote(vote uint8) VotingProcedureBuilder
	WithAnchor(url string, dataHash []byte) VotingProcedureBuilder
	Build() (*VotingProcedure, error)
}

type votingProcedureBuilder struct {
	vote      uint8
	voteSet   bool
	anchorURL string
	dataHash  []byte
}

// NewVotingProcedureBuilder creates a new voting-procedure builder.
func NewVotingProcedureBuilder() VotingProcedureBuilder {
	return &votingProcedureBuilder{}
}

func (b *votingProcedureBuilder) WithVote(vote uint8) VotingProcedureBuilder {
	b.vote = vote
	b.voteSet = true
	return b
}

func (b *votingProcedureBuilder) WithAnchor(url string, dataHash []byte) VotingProcedureBuilder {
	b.anchorURL = url
	b.dataHash = dataHash
	return b
}

func (b *votingProcedureBuilder) Build() (*VotingProcedure, error) {
	if !b.voteSet {
		return nil, errors.New("vote is required; call WithVote(0), WithVote(1), or WithVote(2)")
	}
	if b.vote > 2 {
		return nil, fmt.Errorf("invalid vote value %d, must be 0 (no), 1 (yes), or 2 (abstain)", b.vote)
	}
	procedure := &VotingProcedure{Vote: Vote(b.vote)}
	if b.anchorURL != "" {
		anchor := &GovAnchor{URL: b.anchorURL}
		if len(b.dataHash) > 0 {
			dh, err := hash.Blake2b256FromBytes(b.dataHash)
			if err != nil {
				return nil, fmt.Errorf("dataHash: %w", err)
			}
			anchor.DataHash = dh
		}
		procedure.Anchor = anchor
	}
	return procedure, nil
}

func decodeVotingProcedure(r *cbor.Reader) (VotingProcedure, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return VotingProcedure{}, err
	}
	vote, err := r.ReadUint()
	if err != nil {
		return VotingProcedure{}, err
	}
	var anchor *GovAnchor
	if r.PeekState() == cbor.Null {
		if err := r.ReadNull(); err != nil {
			return VotingProcedure{}, err
		}
	} else {
		anchor, err = decodeGovAnchor(r)
		if err != nil {
			return VotingProcedure{}, err
		}
	}
	if err := r.ReadEndArray(); err != nil {
		return VotingProcedure{}, err
	}
	return VotingProcedure{Vote: Vote(vote), Anchor: anchor}, nil
}

// GovActionId identifies a governance action by the transaction that
// proposed it and its index within that transaction's proposal list.
type GovActionId struct {
	TxId  hash.Blake2b256
	Index uint64
}

func (id GovActionId) toCBOR(w *cbor.Writer) {
	w.WriteStartArray(2, false)
	w.WriteByteString(id.TxId.Bytes())
	w.WriteUint(id.Index)
	_ = w.WriteEndArray()
}

func decodeGovActionId(r *cbor.Reader) (GovActionId, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return GovActionId{}, err
	}
	hb, err := r.ReadByteString()
	if err != nil {
		return GovActionId{}, err
	}
	txId, err := hash.Blake2b256FromBytes(hb)
	if err != nil {
		return GovActionId{}, err
	}
	index, err := r.ReadUint()
	if err != nil {
		return GovActionId{}, err
	}
	if err := r.ReadEndArray(); err != nil {
		return GovActionId{}, err
	}
	return GovActionId{TxId: txId, Index: index}, nil
}

// VotingProcedures maps each voter to their ballots, keyed by the
// governance action being voted on. It mirrors the CDDL voting_procedures
// structure: {voter => {gov_action_id => voting_procedure}}.
type VotingProcedures struct {
	entries []votingProceduresEntry
}

type votingProceduresEntry struct {
	voter     Voter
	ballots   []votingBallot
}

type votingBallot struct {
	actionId  GovActionId
	procedure VotingProcedure
}

// NewVotingProcedures creates an empty VotingProcedures set.
func NewVotingProcedures() *VotingProcedures {
	return &VotingProcedures{}
}

// Vote records voter's ballot on actionId, overwriting any prior vote by
// the same voter on the same action.
func (v *VotingProcedures) Vote(voter Voter, actionId GovActionId, procedure VotingProcedure) {
	for i := range v.entries {
		if v.entries[i].voter == voter {
			for j := range v.entries[i].ballots {
				if v.entries[i].ballots[j].actionId == actionId {
					v.entries[i].ballots[j].procedure = procedure
					return
				}
			}
			v.entries[i].ballots = append(v.entries[i].ballots, votingBallot{actionId, procedure})
			return
		}
	}
	v.entries = append(v.entries, votingProceduresEntry{
		voter:   voter,
		ballots: []votingBallot{{actionId, procedure}},
	})
}

// IsEmpty reports whether no votes have been recorded.
func (v *VotingProcedures) IsEmpty() bool {
	return v == nil || len(v.entries) == 0
}

func (v *VotingProcedures) toCBOR(w *cbor.Writer) {
	w.WriteStartMap(uint64(len(v.entries)), false)
	for _, e := range v.entries {
		e.voter.toCBOR(w)
		w.WriteStartMap(uint64(len(e.ballots)), false)
		for _, b := range e.ballots {
			b.actionId.toCBOR(w)
			b.procedure.toCBOR(w)
		}
		_ = w.WriteEndMap()
	}
	_ = w.WriteEndMap()
}

// decodeVotingProcedures parses the {voter => {gov_action_id =>
// voting_procedure}} map into a VotingProcedures set.
func decodeVotingProcedures(r *cbor.Reader) (*VotingProcedures, error) {
	n, _, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	vp := NewVotingProcedures()
	for i := uint64(0); i < n; i++ {
		voter, err := decodeVoter(r)
		if err != nil {
			return nil, err
		}
		m, _, err := r.ReadStartMap()
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < m; j++ {
			actionId, err := decodeGovActionId(r)
			if err != nil {
				return nil, err
			}
			procedure, err := decodeVotingProcedure(r)
			if err != nil {
				return nil, err
			}
			vp.Vote(voter, actionId, procedure)
		}
		if err := r.ReadEndMap(); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return vp, nil
}

// ProposalProcedure is a single governance-action proposal: its deposit,
// the reward account it refunds to, an anchor to its rationale, and the
// raw CBOR of the governance action itself (action-specific payloads are
// carried opaquely; only the envelope is interpreted here).
type ProposalProcedure struct {
	Deposit       uint64
	RewardAccount Address
	Anchor        GovAnchor
	Action        []byte
}

func (p ProposalProcedure) toCBOR(w *cbor.Writer) {
	w.WriteStartArray(4, false)
	w.WriteUint(p.Deposit)
	w.WriteByteString(p.RewardAccount.Bytes())
	if len(p.Action) > 0 {
		w.WriteRawBytes(p.Action)
	} else {
		w.WriteStartArray(0, false)
		_ = w.WriteEndArray()
	}
	p.Anchor.toCBOR(w)
	_ = w.WriteEndArray()
}

func decodeProposalProcedure(r *cbor.Reader) (ProposalProcedure, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return ProposalProcedure{}, err
	}
	deposit, err := r.ReadUint()
	if err != nil {
		return ProposalProcedure{}, err
	}
	addr, err := r.ReadByteString()
	if err != nil {
		return ProposalProcedure{}, err
	}
	action, err := r.EncodedValue()
	if err != nil {
		return ProposalProcedure{}, err
	}
	if err := r.SkipValue(); err != nil {
		return ProposalProcedure{}, err
	}
	anchor, err := decodeGovAnchor(r)
	if err != nil {
		return ProposalProcedure{}, err
	}
	if err := r.ReadEndArray(); err != nil {
		return ProposalProcedure{}, err
	}
	return ProposalProcedure{
		Deposit:       deposit,
		RewardAccount: NewAddress(addr),
		Anchor:        *anchor,
		Action:        action,
	}, nil
}

// ProposalProcedureBuilder builds a ProposalProcedure.
type ProposalProcedureBuilder interface {
	WithDeposit(lovelace uint64) ProposalProcedureBuilder
	WithRewardAccount(addr []byte) ProposalProcedureBuilder
	WithAnchor(url string, dataHash []byte) ProposalProcedureBuilder
	WithAction(rawCBOR []byte) ProposalProcedureBuilder
	Build() (*ProposalProcedure, error)
}

type proposalProcedureBuilder struct {
	deposit       uint64
	rewardAccount []byte
	anchorURL     string
	dataHash      []byte
	action        []byte
}

// NewProposalProcedureBuilder creates a new proposal-procedure builder.
func NewProposalProcedureBuilder() ProposalProcedureBuilder {
	return &proposalProcedureBuilder{}
}

func (b *proposalProcedureBuilder) WithDeposit(lovelace uint64) ProposalProcedureBuilder {
	b.deposit = lovelace
	return b
}

func (b *proposalProcedureBuilder) WithRewardAccount(addr []byte) ProposalProcedureBuilder {
	b.rewardAccount = addr
	return b
}

func (b *proposalProcedureBuilder) WithAnchor(url string, dataHash []byte) ProposalProcedureBuilder {
	b.anchorURL = url
	b.dataHash = dataHash
	return b
}

func (b *proposalProcedureBuilder) WithAction(rawCBOR []byte) ProposalProcedureBuilder {
	b.action = rawCBOR
	return b
}

func (b *proposalProcedureBuilder) Build() (*ProposalProcedure, error) {
	if len(b.rewardAccount) == 0 {
		return nil, errors.New("reward account is required")
	}
	if b.anchorURL == "" {
		return nil, errors.New("anchor URL is required")
	}
	proc := &ProposalProcedure{
		Deposit:       b.deposit,
		RewardAccount: NewAddress(b.rewardAccount),
		Anchor:        GovAnchor{URL: b.anchorURL},
		Action:        b.action,
	}
	if len(b.dataHash) > 0 {
		dh, err := hash.Blake2b256FromBytes(b.dataHash)
		if err != nil {
			return nil, fmt.Errorf("dataHash: %w", err)
		}
		proc.Anchor.DataHash = dh
	}
	return proc, nil
}
