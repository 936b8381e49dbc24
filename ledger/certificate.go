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
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// CredentialType distinguishes a key-hash credential from a script-hash one.
type CredentialType uint8

const (
	CredentialTypeKeyHash CredentialType = iota
	CredentialTypeScriptHash
)

// Credential is a (type, hash-28) pair used throughout certificates and
// governance structures to refer to a stake key, script, or DRep.
type Credential struct {
	Type CredentialType
	Hash hash.Blake2b224
}

func (c Credential) toCBOR(w *cbor.Writer) {
	w.WriteStartArray(2, false)
	w.WriteUint(uint64(c.Type))
	w.WriteByteString(c.Hash.Bytes())
	_ = w.WriteEndArray()
}

func decodeCredential(r *cbor.Reader) (Credential, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return Credential{}, err
	}
	typ, err := r.ReadUint()
	if err != nil {
		return Credential{}, err
	}
	hb, err := r.ReadByteString()
	if err != nil {
		return Credential{}, err
	}
	h, err := hash.Blake2b224FromBytes(hb)
	if err != nil {
		return Credential{}, err
	}
	if err := r.ReadEndArray(); err != nil {
		return Credential{}, err
	}
	return Credential{Type: CredentialType(typ), Hash: h}, nil
}

// Certificate is any transaction-body certificate variant. Every variant
// encodes as a CBOR array whose first element is the certificate-type
// discriminator used throughout the Cardano ledger CDDL.
type Certificate interface {
	ToCBOR(w *cbor.Writer)
	certType() uint64
}

const (
	certTypeStakeRegistration   = 0
	certTypeStakeDeregistration = 1
	certTypePoolRegistration    = 3
	certTypePoolRetirement      = 4
	certTypeDRepRegistration    = 16
	certTypeDRepDeregistration  = 17
)

// StakeRegistrationCertificate registers a stake credential.
type StakeRegistrationCertificate struct {
	Credential Credential
}

func (c StakeRegistrationCertificate) certType() uint64 { return certTypeStakeRegistration }

func (c StakeRegistrationCertificate) ToCBOR(w *cbor.Writer) {
	w.WriteStartArray(2, false)
	w.WriteUint(c.certType())
	c.Credential.toCBOR(w)
	_ = w.WriteEndArray()
}

// StakeDeregistrationCertificate deregisters a stake credential.
type StakeDeregistrationCertificate struct {
	Credential Credential
}

func (c StakeDeregistrationCertificate) certType() uint64 { return certTypeStakeDeregistration }

func (c StakeDeregistrationCertificate) ToCBOR(w *cbor.Writer) {
	w.WriteStartArray(2, false)
	w.WriteUint(c.certType())
	c.Credential.toCBOR(w)
	_ = w.WriteEndArray()
}

// PoolRelay is a stake pool's network relay. Only the single-host-by-name
// form is modelled, which covers the common pool-registration case; the
// by-address and multi-host forms are left to a future extension.
type PoolRelay struct {
	Port     uint16
	Hostname string
}

// PoolMetadata is a pool's off-chain metadata pointer.
type PoolMetadata struct {
	URL  string
	Hash hash.Blake2b256
}

// PoolRegistrationCertificate registers (or re-registers) a stake pool.
type PoolRegistrationCertificate struct {
	Operator      hash.Blake2b224
	VrfKeyHash    hash.Blake2b256
	Pledge        uint64
	Cost          uint64
	MarginNum     uint64
	MarginDenom   uint64
	RewardAccount hash.Blake2b224
	Owners        []hash.Blake2b224
	Relays        []PoolRelay
	Metadata      *PoolMetadata
}

func (c *PoolRegistrationCertificate) certType() uint64 { return certTypePoolRegistration }

func (c *PoolRegistrationCertificate) ToCBOR(w *cbor.Writer) {
	w.WriteStartArray(10, false)
	w.WriteUint(c.certType())
	w.WriteByteString(c.Operator.Bytes())
	w.WriteByteString(c.VrfKeyHash.Bytes())
	w.WriteUint(c.Pledge)
	w.WriteUint(c.Cost)
	w.WriteTag(cbor.TagRational)
	w.WriteStartArray(2, false)
	w.WriteUint(c.MarginNum)
	w.WriteUint(c.MarginDenom)
	_ = w.WriteEndArray()
	w.WriteByteString(c.RewardAccount.Bytes())
	w.WriteStartArray(uint64(len(c.Owners)), false)
	for _, o := range c.Owners {
		w.WriteByteString(o.Bytes())
	}
	_ = w.WriteEndArray()
	w.WriteStartArray(uint64(len(c.Relays)), false)
	for _, r := range c.Relays {
		w.WriteStartArray(3, false)
		w.WriteUint(0)
		w.WriteUint(uint64(r.Port))
		w.WriteTextString(r.Hostname)
		_ = w.WriteEndArray()
	}
	_ = w.WriteEndArray()
	if c.Metadata != nil {
		w.WriteStartArray(2, false)
		w.WriteTextString(c.Metadata.URL)
		w.WriteByteString(c.Metadata.Hash.Bytes())
		_ = w.WriteEndArray()
	} else {
		w.WriteNull()
	}
	_ = w.WriteEndArray()
}

// PoolBuilder builds a PoolRegistrationCertificate.
type PoolBuilder interface {
	WithOperator(keyHash []byte) PoolBuilder
	WithVrfKeyHash(h []byte) PoolBuilder
	WithPledge(lovelace uint64) PoolBuilder
	WithCost(lovelace uint64) PoolBuilder
	WithMargin(numerator, denominator uint64) PoolBuilder
	WithRewardAccount(keyHash []byte) PoolBuilder
	WithOwners(owners ...[]byte) PoolBuilder
	WithRelays(relays ...PoolRelay) PoolBuilder
	WithMetadata(url string, h []byte) PoolBuilder
	Build() (*PoolRegistrationCertificate, error)
}

type poolBuilder struct {
	operator        hash.Blake2b224
	vrfKeyHash      hash.Blake2b256
	vrfErr          error
	pledge          uint64
	cost            uint64
	marginNum       uint64
	marginDenom     uint64
	marginDenomZero bool
	rewardAccount   hash.Blake2b224
	owners          []hash.Blake2b224
	relays          []PoolRelay
	metadata        *PoolMetadata
	metadataErr     error
}

// NewPoolBuilder creates a new stake-pool registration certificate builder.
func NewPoolBuilder() PoolBuilder {
	return &poolBuilder{marginDenom: 1}
}

func (p *poolBuilder) WithOperator(keyHash []byte) PoolBuilder {
	p.operator, _ = hash.Blake2b224FromBytes(keyHash)
	return p
}

func (p *poolBuilder) WithVrfKeyHash(h []byte) PoolBuilder {
	vk, err := hash.Blake2b256FromBytes(h)
	if err != nil {
		p.vrfErr = fmt.Errorf("invalid VRF key hash: %w", err)
	} else {
		p.vrfKeyHash = vk
		p.vrfErr = nil
	}
	return p
}

func (p *poolBuilder) WithPledge(lovelace uint64) PoolBuilder {
	p.pledge = lovelace
	return p
}

func (p *poolBuilder) WithCost(lovelace uint64) PoolBuilder {
	p.cost = lovelace
	return p
}

func (p *poolBuilder) WithMargin(numerator, denominator uint64) PoolBuilder {
	if denominator == 0 {
		p.marginDenomZero = true
		return p
	}
	p.marginDenomZero = false
	p.marginNum = numerator
	p.marginDenom = denominator
	return p
}

func (p *poolBuilder) WithRewardAccount(keyHash []byte) PoolBuilder {
	p.rewardAccount, _ = hash.Blake2b224FromBytes(keyHash)
	return p
}

func (p *poolBuilder) WithOwners(owners ...[]byte) PoolBuilder {
	p.owners = make([]hash.Blake2b224, len(owners))
	for i, o := range owners {
		p.owners[i], _ = hash.Blake2b224FromBytes(o)
	}
	return p
}

func (p *poolBuilder) WithRelays(relays ...PoolRelay) PoolBuilder {
	p.relays = relays
	return p
}

func (p *poolBuilder) WithMetadata(url string, h []byte) PoolBuilder {
	metaHash, err := hash.Blake2b256FromBytes(h)
	if err != nil {
		p.metadataErr = fmt.Errorf("invalid pool metadata hash: %w", err)
		return p
	}
	p.metadataErr = nil
	p.metadata = &PoolMetadata{URL: url, Hash: metaHash}
	return p
}

func (p *poolBuilder) Build() (*PoolRegistrationCertificate, error) {
	if p.vrfErr != nil {
		return nil, p.vrfErr
	}
	if p.metadataErr != nil {
		return nil, p.metadataErr
	}
	if p.marginDenomZero {
		return nil, errors.New("pool margin denominator cannot be zero")
	}
	return &PoolRegistrationCertificate{
		Operator:      p.operator,
		VrfKeyHash:    p.vrfKeyHash,
		Pledge:        p.pledge,
		Cost:          p.cost,
		MarginNum:     p.marginNum,
		MarginDenom:   p.marginDenom,
		RewardAccount: p.rewardAccount,
		Owners:        p.owners,
		Relays:        p.relays,
		Metadata:      p.metadata,
	}, nil
}

// PoolRetirementCertificate retires a stake pool at a given epoch.
type PoolRetirementCertificate struct {
	Operator hash.Blake2b224
	Epoch    uint64
}

func (c PoolRetirementCertificate) certType() uint64 { return certTypePoolRetirement }

func (c PoolRetirementCertificate) ToCBOR(w *cbor.Writer) {
	w.WriteStartArray(3, false)
	w.WriteUint(c.certType())
	w.WriteByteString(c.Operator.Bytes())
	w.WriteUint(c.Epoch)
	_ = w.WriteEndArray()
}

// DRepRegistrationCertificate registers a DRep credential for governance
// voting (CIP-1694).
type DRepRegistrationCertificate struct {
	Credential Credential
	Deposit    uint64
	Anchor     *GovAnchor
}

func (c *DRepRegistrationCertificate) certType() uint64 { return certTypeDRepRegistration }

func (c *DRepRegistrationCertificate) ToCBOR(w *cbor.Writer) {
	w.WriteStartArray(4, false)
	w.WriteUint(c.certType())
	c.Credential.toCBOR(w)
	w.WriteUint(c.Deposit)
	if c.Anchor != nil {
		c.Anchor.toCBOR(w)
	} else {
		w.WriteNull()
	}
	_ = w.WriteEndArray()
}

// DRepRegistrationBuilder builds a DRepRegistrationCertificate.
type DRepRegistrationBuilder interface {
	WithCredential(cred []byte) DRepRegistrationBuilder
	WithAnchor(url string, dataHash []byte) DRepRegistrationBuilder
	WithDeposit(lovelace uint64) DRepRegistrationBuilder
	Build() (*DRepRegistrationCertificate, error)
}

type drepRegistrationBuilder struct {
	credential []byte
	anchorURL  string
	dataHash   []byte
	deposit    uint64
}

// NewDRepRegistrationBuilder creates a new DRep registration certificate builder.
func NewDRepRegistrationBuilder() DRepRegistrationBuilder {
	return &drepRegistrationBuilder{}
}

func (b *drepRegistrationBuilder) WithCredential(cred []byte) DRepRegistrationBuilder {
	b.credential = cred
	return b
}

func (b *drepRegistrationBuilder) WithAnchor(url string, dataHash []byte) DRepRegistrationBuilder {
	b.anchorURL = url
	b.dataHash = dataHash
	return b
}

func (b *drepRegistrationBuilder) WithDeposit(lovelace uint64) DRepRegistrationBuilder {
	b.deposit = lovelace
	return b
}

func (b *drepRegistrationBuilder) Build() (*DRepRegistrationCertificate, error) {
	if len(b.credential) == 0 {
		return nil, cerr.New(cerr.KindInvalidArgument, "credential is required")
	}
	credHash, err := hash.Blake2b224FromBytes(b.credential)
	if err != nil {
		return nil, err
	}
	cert := &DRepRegistrationCertificate{
		Credential: Credential{Type: CredentialTypeKeyHash, Hash: credHash},
		Deposit:    b.deposit,
	}
	if b.anchorURL != "" {
		anchor := &GovAnchor{URL: b.anchorURL}
		if len(b.dataHash) > 0 {
			dh, err := hash.Blake2b256FromBytes(b.dataHash)
			if err != nil {
				return nil, fmt.Errorf("invalid anchor data hash: %w", err)
			}
			anchor.DataHash = dh
		}
		cert.Anchor = anchor
	}
	return cert, nil
}

// DRepDeregistrationCertificate deregisters a DRep credential and returns
// its deposit.
type DRepDeregistrationCertificate struct {
	Credential Credential
	Deposit    uint64
}

func (c DRepDeregistrationCertificate) certType() uint64 { return certTypeDRepDeregistration }

func (c DRepDeregistrationCertificate) ToCBOR(w *cbor.Writer) {
	w.WriteStartArray(3, false)
	w.WriteUint(c.certType())
	c.Credential.toCBOR(w)
	w.WriteUint(c.Deposit)
	_ = w.WriteEndArray()
}

// DecodeCertificate decodes any of the Certificate variants this module
// models, dispatching on the array's leading certificate-type
// discriminator.
func DecodeCertificate(r *cbor.Reader) (Certificate, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return nil, err
	}
	typ, err := r.ReadUint()
	if err != nil {
		return nil, err
	}
	var cert Certificate
	switch typ {
	case certTypeStakeRegistration:
		cred, err := decodeCredential(r)
		if err != nil {
			return nil, err
		}
		cert = StakeRegistrationCertificate{Credential: cred}
	case certTypeStakeDeregistration:
		cred, err := decodeCredential(r)
		if err != nil {
			return nil, err
		}
		cert = StakeDeregistrationCertificate{Credential: cred}
	case certTypePoolRegistration:
		operator, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		operatorHash, err := hash.Blake2b224FromBytes(operator)
		if err != nil {
			return nil, err
		}
		vrf, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		vrfHash, err := hash.Blake2b256FromBytes(vrf)
		if err != nil {
			return nil, err
		}
		pledge, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		cost, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadTag(); err != nil {
			return nil, err
		}
		if _, _, err := r.ReadStartArray(); err != nil {
			return nil, err
		}
		marginNum, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		marginDenom, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		if err := r.ReadEndArray(); err != nil {
			return nil, err
		}
		reward, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		rewardHash, err := hash.Blake2b224FromBytes(reward)
		if err != nil {
			return nil, err
		}
		if _, _, err := r.ReadStartArray(); err != nil {
			return nil, err
		}
		var owners []hash.Blake2b224
		for r.PeekState() != cbor.EndArray {
			ob, err := r.ReadByteString()
			if err != nil {
				return nil, err
			}
			oh, err := hash.Blake2b224FromBytes(ob)
			if err != nil {
				return nil, err
			}
			owners = append(owners, oh)
		}
		if err := r.ReadEndArray(); err != nil {
			return nil, err
		}
		if _, _, err := r.ReadStartArray(); err != nil {
			return nil, err
		}
		var relays []PoolRelay
		for r.PeekState() != cbor.EndArray {
			if _, _, err := r.ReadStartArray(); err != nil {
				return nil, err
			}
			if _, err := r.ReadUint(); err != nil { // relay-type discriminator
				return nil, err
			}
			port, err := r.ReadUint()
			if err != nil {
				return nil, err
			}
			host, err := r.ReadTextString()
			if err != nil {
				return nil, err
			}
			if err := r.ReadEndArray(); err != nil {
				return nil, err
			}
			relays = append(relays, PoolRelay{Port: uint16(port), Hostname: host})
		}
		if err := r.ReadEndArray(); err != nil {
			return nil, err
		}
		var metadata *PoolMetadata
		if r.PeekState() == cbor.Null {
			if err := r.ReadNull(); err != nil {
				return nil, err
			}
		} else {
			if _, _, err := r.ReadStartArray(); err != nil {
				return nil, err
			}
			url, err := r.ReadTextString()
			if err != nil {
				return nil, err
			}
			mh, err := r.ReadByteString()
			if err != nil {
				return nil, err
			}
			metaHash, err := hash.Blake2b256FromBytes(mh)
			if err != nil {
				return nil, err
			}
			if err := r.ReadEndArray(); err != nil {
				return nil, err
			}
			metadata = &PoolMetadata{URL: url, Hash: metaHash}
		}
		cert = &PoolRegistrationCertificate{
			Operator:      operatorHash,
			VrfKeyHash:    vrfHash,
			Pledge:        pledge,
			Cost:          cost,
			MarginNum:     marginNum,
			MarginDenom:   marginDenom,
			RewardAccount: rewardHash,
			Owners:        owners,
			Relays:        relays,
			Metadata:      metadata,
		}
	case certTypePoolRetirement:
		operator, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		operatorHash, err := hash.Blake2b224FromBytes(operator)
		if err != nil {
			return nil, err
		}
		epoch, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		cert = PoolRetirementCertificate{Operator: operatorHash, Epoch: epoch}
	case certTypeDRepRegistration:
		cred, err := decodeCredential(r)
		if err != nil {
			return nil, err
		}
		deposit, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		var anchor *GovAnchor
		if r.PeekState() == cbor.Null {
			if err := r.ReadNull(); err != nil {
				return nil, err
			}
		} else {
			anchor, err = decodeGovAnchor(r)
			if err != nil {
				return nil, err
			}
		}
		cert = &DRepRegistrationCertificate{Credential: cred, Deposit: deposit, Anchor: anchor}
	case certTypeDRepDeregistration:
		cred, err := decodeCredential(r)
		if err != nil {
			return nil, err
		}
		deposit, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		cert = DRepDeregistrationCertificate{Credential: cred, Deposit: deposit}
	default:
		return nil, fmt.Errorf("unknown certificate type %d", typ)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return cert, nil
}
