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
	"fmt"

	fxcbor "github.com/fxamacker/cbor/v2"
)

// UnitInterval is a rational number in [0, 1], the shape every governance
// voting threshold and pool-margin-like parameter takes in the ledger
// CDDL. It is carried through fxamacker/cbor/v2 rather than this module's
// own streaming codec, since it only ever lives inside the peripheral
// protocol-parameter-update substructures below.
type UnitInterval struct {
	Numerator   uint64
	Denominator uint64
}

// MarshalCBOR encodes u as a tag-30 rational-number pair, per the
// `rational_number = #6.30([uint, uint])` CDDL rule.
func (u UnitInterval) MarshalCBOR() ([]byte, error) {
	return fxcbor.Marshal(fxcbor.Tag{
		Number:  30,
		Content: []uint64{u.Numerator, u.Denominator},
	})
}

// UnmarshalCBOR decodes a tag-30 rational-number pair into u.
func (u *UnitInterval) UnmarshalCBOR(data []byte) error {
	var tag fxcbor.Tag
	if err := fxcbor.Unmarshal(data, &tag); err != nil {
		return err
	}
	if tag.Number != 30 {
		return fmt.Errorf("unit interval: expected tag 30, got %d", tag.Number)
	}
	pair, ok := tag.Content.([]any)
	if !ok || len(pair) != 2 {
		return fmt.Errorf("unit interval: expected a 2-element array, got %T", tag.Content)
	}
	num, ok := toUint64(pair[0])
	if !ok {
		return fmt.Errorf("unit interval: numerator is not an integer")
	}
	denom, ok := toUint64(pair[1])
	if !ok {
		return fmt.Errorf("unit interval: denominator is not an integer")
	}
	u.Numerator = num
	u.Denominator = denom
	return nil
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

// DRepVotingThresholds is the ten governance-action-type-specific
// participation thresholds a DRep vote must clear for the action to
// ratify (CIP-1694), supplemented from the original system's
// protocol-parameter test fixtures since spec.md's distillation dropped
// it but TransactionBody's update field cannot round-trip without it.
type DRepVotingThresholds struct {
	MotionNoConfidence    UnitInterval `cbor:"0,keyasint"`
	CommitteeNormal       UnitInterval `cbor:"1,keyasint"`
	CommitteeNoConfidence UnitInterval `cbor:"2,keyasint"`
	UpdateConstitution    UnitInterval `cbor:"3,keyasint"`
	HardForkInitiation    UnitInterval `cbor:"4,keyasint"`
	PPNetworkGroup        UnitInterval `cbor:"5,keyasint"`
	PPEconomicGroup       UnitInterval `cbor:"6,keyasint"`
	PPTechnicalGroup      UnitInterval `cbor:"7,keyasint"`
	PPGovernanceGroup     UnitInterval `cbor:"8,keyasint"`
	TreasuryWithdrawal    UnitInterval `cbor:"9,keyasint"`
}

// PoolVotingThresholds is the stake-pool-operator participation
// thresholds, the SPO-side counterpart to DRepVotingThresholds.
type PoolVotingThresholds struct {
	MotionNoConfidence   UnitInterval `cbor:"0,keyasint"`
	CommitteeNormal      UnitInterval `cbor:"1,keyasint"`
	CommitteeNoConfidence UnitInterval `cbor:"2,keyasint"`
	HardForkInitiation   UnitInterval `cbor:"3,keyasint"`
	PPSecurityGroup      UnitInterval `cbor:"4,keyasint"`
}

// ProtocolVersion is a (major, minor) protocol-version pair.
type ProtocolVersion struct {
	Major uint64 `cbor:"0,keyasint"`
	Minor uint64 `cbor:"1,keyasint"`
}

// ExUnits bounds Plutus script execution: memory and CPU steps.
type ExUnits struct {
	Memory uint64 `cbor:"0,keyasint"`
	Steps  uint64 `cbor:"1,keyasint"`
}

// ExUnitPrices prices a unit of memory and a unit of CPU step, in
// lovelace-fraction terms.
type ExUnitPrices struct {
	MemPrice   UnitInterval `cbor:"0,keyasint"`
	StepsPrice UnitInterval `cbor:"1,keyasint"`
}

// ProtocolParameterUpdate is a sparse update proposal: every field is a
// pointer, present in the encoded map only when non-nil, matching the
// ledger's `protocol_param_update` CDDL map of optional key/value pairs.
// It carries TransactionBody's key-6 `update` field and backs the
// protocol-parameter-change branch of governance-action proposals.
type ProtocolParameterUpdate struct {
	MinFeeA                       *uint64               `cbor:"0,keyasint,omitempty"`
	MinFeeB                       *uint64               `cbor:"1,keyasint,omitempty"`
	MaxBlockBodySize              *uint64               `cbor:"2,keyasint,omitempty"`
	MaxTxSize                     *uint64               `cbor:"3,keyasint,omitempty"`
	MaxBlockHeaderSize            *uint64               `cbor:"4,keyasint,omitempty"`
	KeyDeposit                    *uint64               `cbor:"5,keyasint,omitempty"`
	PoolDeposit                   *uint64               `cbor:"6,keyasint,omitempty"`
	MaxEpoch                      *uint64               `cbor:"7,keyasint,omitempty"`
	NOpt                          *uint64               `cbor:"8,keyasint,omitempty"`
	PoolPledgeInfluence           *UnitInterval         `cbor:"9,keyasint,omitempty"`
	ExpansionRate                 *UnitInterval         `cbor:"10,keyasint,omitempty"`
	TreasuryGrowthRate            *UnitInterval         `cbor:"11,keyasint,omitempty"`
	ProtocolVersion               *ProtocolVersion      `cbor:"14,keyasint,omitempty"`
	MinPoolCost                   *uint64               `cbor:"16,keyasint,omitempty"`
	AdaPerUtxoByte                *uint64               `cbor:"17,keyasint,omitempty"`
	ExecutionCosts                *ExUnitPrices         `cbor:"19,keyasint,omitempty"`
	MaxTxExUnits                  *ExUnits              `cbor:"20,keyasint,omitempty"`
	MaxBlockExUnits               *ExUnits              `cbor:"21,keyasint,omitempty"`
	MaxValueSize                  *uint64               `cbor:"22,keyasint,omitempty"`
	CollateralPercentage          *uint64               `cbor:"23,keyasint,omitempty"`
	MaxCollateralInputs           *uint64               `cbor:"24,keyasint,omitempty"`
	PoolVotingThresholds          *PoolVotingThresholds `cbor:"25,keyasint,omitempty"`
	DRepVotingThresholds          *DRepVotingThresholds `cbor:"26,keyasint,omitempty"`
	MinCommitteeSize              *uint64               `cbor:"27,keyasint,omitempty"`
	CommitteeTermLimit            *uint64               `cbor:"28,keyasint,omitempty"`
	GovActionLifetime              *uint64               `cbor:"29,keyasint,omitempty"`
	GovActionDeposit               *uint64               `cbor:"30,keyasint,omitempty"`
	DRepDeposit                    *uint64               `cbor:"31,keyasint,omitempty"`
	DRepInactivityPeriod           *uint64               `cbor:"32,keyasint,omitempty"`
	MinFeeRefScriptCostPerByte     *UnitInterval         `cbor:"33,keyasint,omitempty"`
}

// ToCBORBytes serializes the update as a CBOR map via fxamacker/cbor/v2's
// struct-tag marshaling, the peripheral-substructure codec this module
// reserves for governance/update types (see DESIGN.md).
func (p *ProtocolParameterUpdate) ToCBORBytes() ([]byte, error) {
	return fxcbor.Marshal(p)
}

// DecodeProtocolParameterUpdate parses a CBOR-encoded protocol parameter
// update map.
func DecodeProtocolParameterUpdate(data []byte) (*ProtocolParameterUpdate, error) {
	var p ProtocolParameterUpdate
	if err := fxcbor.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update pairs a protocol-parameter update proposal with the epoch at
// which it is to take effect, the shape TransactionBody's `update` field
// (map key 6) carries: {genesis_delegate_hash => update} plus the epoch.
type Update struct {
	Proposals map[string]ProtocolParameterUpdate
	Epoch     uint64
}

// ToCBORBytes serializes the update via fxamacker/cbor/v2.
func (u *Update) ToCBORBytes() ([]byte, error) {
	return fxcbor.Marshal(struct {
		Proposals map[string]ProtocolParameterUpdate `cbor:"0,keyasint"`
		Epoch     uint64                              `cbor:"1,keyasint"`
	}{u.Proposals, u.Epoch})
}

// DecodeUpdate parses a CBOR-encoded update proposal.
func DecodeUpdate(data []byte) (*Update, error) {
	var wire struct {
		Proposals map[string]ProtocolParameterUpdate `cbor:"0,keyasint"`
		Epoch     uint64                              `cbor:"1,keyasint"`
	}
	if err := fxcbor.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	return &Update{Proposals: wire.Proposals, Epoch: wire.Epoch}, nil
}
