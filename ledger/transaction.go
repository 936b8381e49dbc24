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

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
	"github.com/blinklabs-io/cardano-core/value"
)

// Withdrawals maps a reward account address to the lovelace amount being
// withdrawn from it.
type Withdrawals struct {
	entries []withdrawalEntry
}

type withdrawalEntry struct {
	account Address
	amount  uint64
}

// NewWithdrawals returns an empty Withdrawals set.
func NewWithdrawals() *Withdrawals {
	return &Withdrawals{}
}

// Set records a withdrawal amount for account, overwriting any prior
// entry for the same account.
func (w *Withdrawals) Set(account []byte, amount uint64) {
	addr := NewAddress(account)
	for i := range w.entries {
		if w.entries[i].account.Equal(addr) {
			w.entries[i].amount = amount
			return
		}
	}
	w.entries = append(w.entries, withdrawalEntry{addr, amount})
}

// IsEmpty reports whether no withdrawals have been recorded.
func (w *Withdrawals) IsEmpty() bool {
	return w == nil || len(w.entries) == 0
}

func (w *Withdrawals) toCBOR(writer *cbor.Writer) {
	writer.WriteStartMap(uint64(len(w.entries)), false)
	for _, e := range w.entries {
		writer.WriteByteString(e.account.Bytes())
		writer.WriteUint(e.amount)
	}
	_ = writer.WriteEndMap()
}

// TransactionWitnessSet carries the signatures and scripts authorizing a
// transaction's inputs and certificates. Only the raw payloads are
// modelled — verifying a witness against its input is outside scope
// (spec.md places signature/script validation out of scope).
type TransactionWitnessSet struct {
	VkeyWitnesses    [][]byte // each a 64-byte signature || 32-byte vkey concat, opaque here
	NativeScripts    []value.NativeScript
	BootstrapWitness [][]byte
	PlutusData       []value.PlutusData
	PlutusV1Scripts  [][]byte
	PlutusV2Scripts  [][]byte
	PlutusV3Scripts  [][]byte
	Redeemers        []byte // raw CBOR of the redeemers structure, carried opaquely
}

// NewTransactionWitnessSet returns an empty witness set.
func NewTransactionWitnessSet() *TransactionWitnessSet {
	return &TransactionWitnessSet{}
}

func (w *TransactionWitnessSet) toCBOR(writer *cbor.Writer) {
	fields := 0
	if len(w.VkeyWitnesses) > 0 {
		fields++
	}
	if len(w.NativeScripts) > 0 {
		fields++
	}
	if len(w.BootstrapWitness) > 0 {
		fields++
	}
	if len(w.PlutusData) > 0 {
		fields++
	}
	if len(w.PlutusV1Scripts) > 0 {
		fields++
	}
	if len(w.PlutusV2Scripts) > 0 {
		fields++
	}
	if len(w.PlutusV3Scripts) > 0 {
		fields++
	}
	if len(w.Redeemers) > 0 {
		fields++
	}
	writer.WriteStartMap(uint64(fields), false)
	if len(w.VkeyWitnesses) > 0 {
		writer.WriteUint(0)
		writer.WriteStartArray(uint64(len(w.VkeyWitnesses)), false)
		for _, vk := range w.VkeyWitnesses {
			writer.WriteRawBytes(vk)
		}
		_ = writer.WriteEndArray()
	}
	if len(w.NativeScripts) > 0 {
		writer.WriteUint(1)
		writer.WriteStartArray(uint64(len(w.NativeScripts)), false)
		for _, s := range w.NativeScripts {
			s.ToCBOR(writer)
		}
		_ = writer.WriteEndArray()
	}
	if len(w.BootstrapWitness) > 0 {
		writer.WriteUint(2)
		writer.WriteStartArray(uint64(len(w.BootstrapWitness)), false)
		for _, bw := range w.BootstrapWitness {
			writer.WriteRawBytes(bw)
		}
		_ = writer.WriteEndArray()
	}
	if len(w.PlutusData) > 0 {
		writer.WriteUint(4)
		writer.WriteStartArray(uint64(len(w.PlutusData)), false)
		for _, d := range w.PlutusData {
			d.ToCBOR(writer)
		}
		_ = writer.WriteEndArray()
	}
	if len(w.PlutusV1Scripts) > 0 {
		writer.WriteUint(3)
		writer.WriteStartArray(uint64(len(w.PlutusV1Scripts)), false)
		for _, s := range w.PlutusV1Scripts {
			writer.WriteByteString(s)
		}
		_ = writer.WriteEndArray()
	}
	if len(w.PlutusV2Scripts) > 0 {
		writer.WriteUint(6)
		writer.WriteStartArray(uint64(len(w.PlutusV2Scripts)), false)
		for _, s := range w.PlutusV2Scripts {
			writer.WriteByteString(s)
		}
		_ = writer.WriteEndArray()
	}
	if len(w.PlutusV3Scripts) > 0 {
		writer.WriteUint(7)
		writer.WriteStartArray(uint64(len(w.PlutusV3Scripts)), false)
		for _, s := range w.PlutusV3Scripts {
			writer.WriteByteString(s)
		}
		_ = writer.WriteEndArray()
	}
	if len(w.Redeemers) > 0 {
		writer.WriteUint(5)
		writer.WriteRawBytes(w.Redeemers)
	}
	_ = writer.WriteEndMap()
}

// TransactionWitnessSetBuilder builds a TransactionWitnessSet.
type TransactionWitnessSetBuilder interface {
	WithVkeyWitnesses(witnesses ...[]byte) TransactionWitnessSetBuilder
	WithNativeScripts(scripts ...value.NativeScript) TransactionWitnessSetBuilder
	WithBootstrapWitnesses(witnesses ...[]byte) TransactionWitnessSetBuilder
	WithPlutusData(data ...value.PlutusData) TransactionWitnessSetBuilder
	WithPlutusV1Scripts(scripts ...[]byte) TransactionWitnessSetBuilder
	WithPlutusV2Scripts(scripts ...[]byte) TransactionWitnessSetBuilder
	WithPlutusV3Scripts(scripts ...[]byte) TransactionWitnessSetBuilder
	WithRedeemers(raw []byte) TransactionWitnessSetBuilder
	Build() (*TransactionWitnessSet, error)
}

type witnessSetBuilder struct {
	set TransactionWitnessSet
}

// NewTransactionWitnessSetBuilder creates a new witness-set builder.
func NewTransactionWitnessSetBuilder() TransactionWitnessSetBuilder {
	return &witnessSetBuilder{}
}

func (b *witnessSetBuilder) WithVkeyWitnesses(w ...[]byte) TransactionWitnessSetBuilder {
	b.set.VkeyWitnesses = append(b.set.VkeyWitnesses, w...)
	return b
}

func (b *witnessSetBuilder) WithNativeScripts(s ...value.NativeScript) TransactionWitnessSetBuilder {
	b.set.NativeScripts = append(b.set.NativeScripts, s...)
	return b
}

func (b *witnessSetBuilder) WithBootstrapWitnesses(w ...[]byte) TransactionWitnessSetBuilder {
	b.set.BootstrapWitness = append(b.set.BootstrapWitness, w...)
	return b
}

func (b *witnessSetBuilder) WithPlutusData(d ...value.PlutusData) TransactionWitnessSetBuilder {
	b.set.PlutusData = append(b.set.PlutusData, d...)
	return b
}

func (b *witnessSetBuilder) WithPlutusV1Scripts(s ...[]byte) TransactionWitnessSetBuilder {
	b.set.PlutusV1Scripts = append(b.set.PlutusV1Scripts, s...)
	return b
}

func (b *witnessSetBuilder) WithPlutusV2Scripts(s ...[]byte) TransactionWitnessSetBuilder {
	b.set.PlutusV2Scripts = append(b.set.PlutusV2Scripts, s...)
	return b
}

func (b *witnessSetBuilder) WithPlutusV3Scripts(s ...[]byte) TransactionWitnessSetBuilder {
	b.set.PlutusV3Scripts = append(b.set.PlutusV3Scripts, s...)
	return b
}

func (b *witnessSetBuilder) WithRedeemers(raw []byte) TransactionWitnessSetBuilder {
	b.set.Redeemers = raw
	return b
}

func (b *witnessSetBuilder) Build() (*TransactionWitnessSet, error) {
	out := b.set
	return &out, nil
}

// TransactionBody is the signable, hashable core of a Cardano
// transaction: its inputs, outputs, fee, and every optional field the
// ledger CDDL allows. It owns its children (inputs, outputs,
// certificates, proposals) and carries an originalBytes cache cleared by
// every mutator.
type TransactionBody struct {
	originalBytes

	inputs      []TransactionInput
	outputs     []TransactionOutput
	fee         uint64
	ttl         *uint64
	certs       []Certificate
	withdrawals *Withdrawals
	update      *Update
	auxDataHash *hash.Blake2b256
	validStart  *uint64
	mint        *MultiAsset
	scriptHash  *hash.Blake2b256
	collateral  []TransactionInput
	reqSigners  []hash.Blake2b224
	networkID   *uint8
	collReturn  *TransactionOutput
	totalColl   *uint64
	refInputs   []TransactionInput
	votingProc  *VotingProcedures
	proposals   []ProposalProcedure
	treasury    *uint64
	donation    *uint64

	witnesses *TransactionWitnessSet
	valid     bool
}

// Inputs returns the transaction's consumed inputs.
func (t *TransactionBody) Inputs() []TransactionInput { return t.inputs }

// Outputs returns the transaction's produced outputs.
func (t *TransactionBody) Outputs() []TransactionOutput { return t.outputs }

// Fee returns the transaction fee in lovelace.
func (t *TransactionBody) Fee() uint64 { return t.fee }

// TTL returns the transaction's time-to-live slot, if set.
func (t *TransactionBody) TTL() (uint64, bool) {
	if t.ttl == nil {
		return 0, false
	}
	return *t.ttl, true
}

// Certificates returns the transaction's certificates.
func (t *TransactionBody) Certificates() []Certificate { return t.certs }

// Witnesses returns the transaction's witness set.
func (t *TransactionBody) Witnesses() *TransactionWitnessSet { return t.witnesses }

// IsValid reports the transaction's validity flag (Alonzo+ phase-2
// validation outcome marker; always true for transactions built without
// an explicit WithValid(false) call).
func (t *TransactionBody) IsValid() bool { return t.valid }

// SetFee replaces the fee, clearing the cache.
func (t *TransactionBody) SetFee(fee uint64) {
	t.fee = fee
	t.clearCache()
}

// SetTTL replaces the time-to-live slot, clearing the cache.
func (t *TransactionBody) SetTTL(ttl uint64) {
	t.ttl = &ttl
	t.clearCache()
}

// ClearCache drops the body's original-bytes cache, forcing the next
// ToCBOR call to re-derive the encoding from current field values.
func (t *TransactionBody) ClearCache() {
	t.clearCache()
}

// attachChildren registers the body as the cache-invalidation parent of
// every owned child that carries its own originalBytes cache, so that a
// mutation reached through an accessor (e.g. body.Outputs()[i].SetAmount)
// invalidates the body's cache too instead of leaving ToCBOR/Id to replay
// stale, pre-mutation bytes. Must be called once the body's children are
// in their final place — after Build() assembles them or DecodeTransactionBody
// finishes decoding, and before the body's own cache is populated.
func (t *TransactionBody) attachChildren() {
	for i := range t.outputs {
		t.outputs[i].attachParent(t.clearCache)
	}
	if t.collReturn != nil {
		t.collReturn.attachParent(t.clearCache)
	}
}

// Id returns the transaction id: Blake2b-256 of the body's canonical CBOR.
func (t *TransactionBody) Id() hash.Blake2b256 {
	w := cbor.NewWriter()
	t.ToCBOR(w)
	return hash.NewBlake2b256(w.Encode())
}

// ToCBOR encodes the body as the integer-keyed map spec'd by the ledger
// CDDL: keys 0-22, omitting every absent optional field. Keys 10 and 12
// are reserved (voting-procedures predecessors no longer emitted by this
// era) and never appear.
func (t *TransactionBody) ToCBOR(w *cbor.Writer) {
	if raw, ok := t.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	fields := 3 // inputs, outputs, fee always present
	if t.ttl != nil {
		fields++
	}
	if len(t.certs) > 0 {
		fields++
	}
	if !t.withdrawals.IsEmpty() {
		fields++
	}
	if t.update != nil {
		fields++
	}
	if t.auxDataHash != nil {
		fields++
	}
	if t.validStart != nil {
		fields++
	}
	if !t.mint.IsEmpty() {
		fields++
	}
	if t.scriptHash != nil {
		fields++
	}
	if len(t.collateral) > 0 {
		fields++
	}
	if len(t.reqSigners) > 0 {
		fields++
	}
	if t.networkID != nil {
		fields++
	}
	if t.collReturn != nil {
		fields++
	}
	if t.totalColl != nil {
		fields++
	}
	if len(t.refInputs) > 0 {
		fields++
	}
	if !t.votingProc.IsEmpty() {
		fields++
	}
	if len(t.proposals) > 0 {
		fields++
	}
	if t.treasury != nil {
		fields++
	}
	if t.donation != nil {
		fields++
	}

	w.WriteStartMap(uint64(fields), false)

	w.WriteUint(0)
	w.WriteStartArray(uint64(len(t.inputs)), false)
	for _, in := range t.inputs {
		in.ToCBOR(w)
	}
	_ = w.WriteEndArray()

	w.WriteUint(1)
	w.WriteStartArray(uint64(len(t.outputs)), false)
	for i := range t.outputs {
		t.outputs[i].ToCBOR(w)
	}
	_ = w.WriteEndArray()

	w.WriteUint(2)
	w.WriteUint(t.fee)

	if t.ttl != nil {
		w.WriteUint(3)
		w.WriteUint(*t.ttl)
	}
	if len(t.certs) > 0 {
		w.WriteUint(4)
		w.WriteStartArray(uint64(len(t.certs)), false)
		for _, c := range t.certs {
			c.ToCBOR(w)
		}
		_ = w.WriteEndArray()
	}
	if !t.withdrawals.IsEmpty() {
		w.WriteUint(5)
		t.withdrawals.toCBOR(w)
	}
	if t.update != nil {
		raw, err := t.update.ToCBORBytes()
		if err == nil {
			w.WriteUint(6)
			w.WriteRawBytes(raw)
		}
	}
	if t.auxDataHash != nil {
		w.WriteUint(7)
		w.WriteByteString(t.auxDataHash.Bytes())
	}
	if t.validStart != nil {
		w.WriteUint(8)
		w.WriteUint(*t.validStart)
	}
	if !t.mint.IsEmpty() {
		w.WriteUint(9)
		t.mint.ToCBOR(w)
	}
	if t.scriptHash != nil {
		w.WriteUint(11)
		w.WriteByteString(t.scriptHash.Bytes())
	}
	if len(t.collateral) > 0 {
		w.WriteUint(13)
		w.WriteStartArray(uint64(len(t.collateral)), false)
		for _, in := range t.collateral {
			in.ToCBOR(w)
		}
		_ = w.WriteEndArray()
	}
	if len(t.reqSigners) > 0 {
		w.WriteUint(14)
		w.WriteStartArray(uint64(len(t.reqSigners)), false)
		for _, s := range t.reqSigners {
			w.WriteByteString(s.Bytes())
		}
		_ = w.WriteEndArray()
	}
	if t.networkID != nil {
		w.WriteUint(15)
		w.WriteUint(uint64(*t.networkID))
	}
	if t.collReturn != nil {
		w.WriteUint(16)
		t.collReturn.ToCBOR(w)
	}
	if t.totalColl != nil {
		w.WriteUint(17)
		w.WriteUint(*t.totalColl)
	}
	if len(t.refInputs) > 0 {
		w.WriteUint(18)
		w.WriteStartArray(uint64(len(t.refInputs)), false)
		for _, in := range t.refInputs {
			in.ToCBOR(w)
		}
		_ = w.WriteEndArray()
	}
	if !t.votingProc.IsEmpty() {
		w.WriteUint(19)
		t.votingProc.toCBOR(w)
	}
	if len(t.proposals) > 0 {
		w.WriteUint(20)
		w.WriteStartArray(uint64(len(t.proposals)), false)
		for _, p := range t.proposals {
			p.toCBOR(w)
		}
		_ = w.WriteEndArray()
	}
	if t.treasury != nil {
		w.WriteUint(21)
		w.WriteUint(*t.treasury)
	}
	if t.donation != nil {
		w.WriteUint(22)
		w.WriteUint(*t.donation)
	}
	_ = w.WriteEndMap()
}

// DecodeTransactionBody decodes a transaction-body map and populates the
// original-bytes cache.
func DecodeTransactionBody(r *cbor.Reader) (*TransactionBody, error) {
	raw, err := r.EncodedValue()
	if err != nil {
		return nil, err
	}
	if _, _, err := r.ReadStartMap(); err != nil {
		return nil, err
	}
	body := &TransactionBody{valid: true}
	for r.PeekState() != cbor.EndMap {
		key, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		switch key {
		case 0:
			if err := decodeInputArray(r, &body.inputs); err != nil {
				return nil, err
			}
		case 1:
			if _, _, err := r.ReadStartArray(); err != nil {
				return nil, err
			}
			for r.PeekState() != cbor.EndArray {
				out, err := DecodeTransactionOutput(r)
				if err != nil {
					return nil, err
				}
				body.outputs = append(body.outputs, out)
			}
			if err := r.ReadEndArray(); err != nil {
				return nil, err
			}
		case 2:
			fee, err := r.ReadUint()
			if err != nil {
				return nil, err
			}
			body.fee = fee
		case 3:
			ttl, err := r.ReadUint()
			if err != nil {
				return nil, err
			}
			body.ttl = &ttl
		case 4:
			n, _, err := r.ReadStartArray()
			if err != nil {
				return nil, err
			}
			certs := make([]Certificate, 0, n)
			for i := uint64(0); i < n; i++ {
				cert, err := DecodeCertificate(r)
				if err != nil {
					return nil, err
				}
				certs = append(certs, cert)
			}
			if err := r.ReadEndArray(); err != nil {
				return nil, err
			}
			body.certs = certs
		case 5:
			if _, _, err := r.ReadStartMap(); err != nil {
				return nil, err
			}
			wd := NewWithdrawals()
			for r.PeekState() != cbor.EndMap {
				acct, err := r.ReadByteString()
				if err != nil {
					return nil, err
				}
				amt, err := r.ReadUint()
				if err != nil {
					return nil, err
				}
				wd.Set(acct, amt)
			}
			if err := r.ReadEndMap(); err != nil {
				return nil, err
			}
			body.withdrawals = wd
		case 6:
			raw, err := r.EncodedValue()
			if err != nil {
				return nil, err
			}
			if err := r.SkipValue(); err != nil {
				return nil, err
			}
			u, err := DecodeUpdate(raw)
			if err != nil {
				return nil, err
			}
			body.update = u
		case 7:
			hb, err := r.ReadByteString()
			if err != nil {
				return nil, err
			}
			h, err := hash.Blake2b256FromBytes(hb)
			if err != nil {
				return nil, err
			}
			body.auxDataHash = &h
		case 8:
			vs, err := r.ReadUint()
			if err != nil {
				return nil, err
			}
			body.validStart = &vs
		case 9:
			m, err := DecodeMultiAsset(r)
			if err != nil {
				return nil, err
			}
			body.mint = m
		case 11:
			hb, err := r.ReadByteString()
			if err != nil {
				return nil, err
			}
			h, err := hash.Blake2b256FromBytes(hb)
			if err != nil {
				return nil, err
			}
			body.scriptHash = &h
		case 13:
			if err := decodeInputArray(r, &body.collateral); err != nil {
				return nil, err
			}
		case 14:
			if _, _, err := r.ReadStartArray(); err != nil {
				return nil, err
			}
			for r.PeekState() != cbor.EndArray {
				hb, err := r.ReadByteString()
				if err != nil {
					return nil, err
				}
				h, err := hash.Blake2b224FromBytes(hb)
				if err != nil {
					return nil, err
				}
				body.reqSigners = append(body.reqSigners, h)
			}
			if err := r.ReadEndArray(); err != nil {
				return nil, err
			}
		case 15:
			n, err := r.ReadUint()
			if err != nil {
				return nil, err
			}
			net := uint8(n)
			body.networkID = &net
		case 16:
			out, err := DecodeTransactionOutput(r)
			if err != nil {
				return nil, err
			}
			body.collReturn = &out
		case 17:
			tc, err := r.ReadUint()
			if err != nil {
				return nil, err
			}
			body.totalColl = &tc
		case 18:
			if err := decodeInputArray(r, &body.refInputs); err != nil {
				return nil, err
			}
		case 19:
			vp, err := decodeVotingProcedures(r)
			if err != nil {
				return nil, err
			}
			body.votingProc = vp
		case 20:
			n, _, err := r.ReadStartArray()
			if err != nil {
				return nil, err
			}
			proposals := make([]ProposalProcedure, 0, n)
			for i := uint64(0); i < n; i++ {
				p, err := decodeProposalProcedure(r)
				if err != nil {
					return nil, err
				}
				proposals = append(proposals, p)
			}
			if err := r.ReadEndArray(); err != nil {
				return nil, err
			}
			body.proposals = proposals
		case 21:
			tv, err := r.ReadUint()
			if err != nil {
				return nil, err
			}
			body.treasury = &tv
		case 22:
			d, err := r.ReadUint()
			if err != nil {
				return nil, err
			}
			body.donation = &d
		default:
			if err := r.SkipValue(); err != nil {
				return nil, err
			}
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	body.attachChildren()
	body.setCache(raw)
	return body, nil
}

func decodeInputArray(r *cbor.Reader, into *[]TransactionInput) error {
	if _, _, err := r.ReadStartArray(); err != nil {
		return err
	}
	for r.PeekState() != cbor.EndArray {
		in, err := DecodeTransactionInput(r)
		if err != nil {
			return err
		}
		*into = append(*into, in)
	}
	return r.ReadEndArray()
}

// ToPlutusData renders the body's consumed inputs and produced outputs in
// the Plutus ScriptContext's TxInfo shape is out of scope; this exposes
// only the body's own constructor form: Constr(0, [inputs, outputs, fee]).
func (t *TransactionBody) ToPlutusData() value.PlutusData {
	inputs := make([]value.PlutusData, len(t.inputs))
	for i, in := range t.inputs {
		inputs[i] = in.ToPlutusData()
	}
	outputs := make([]value.PlutusData, len(t.outputs))
	for i := range t.outputs {
		outputs[i] = t.outputs[i].ToPlutusData()
	}
	return value.NewPlutusConstr(0,
		value.NewPlutusList(inputs...),
		value.NewPlutusList(outputs...),
		value.NewPlutusInt(bigint.NewFromU64(t.fee)),
	)
}

func (t *TransactionBody) String() string {
	return fmt.Sprintf(
		"TransactionBody{id=%s, inputs=%d, outputs=%d, fee=%d}",
		t.Id().String(), len(t.inputs), len(t.outputs), t.fee,
	)
}

// TransactionBodyBuilder builds a TransactionBody.
type TransactionBodyBuilder interface {
	WithInputs(inputs ...TransactionInput) TransactionBodyBuilder
	WithOutputs(outputs ...TransactionOutput) TransactionBodyBuilder
	WithFee(fee uint64) TransactionBodyBuilder
	WithTTL(ttl uint64) TransactionBodyBuilder
	WithCertificates(certs ...Certificate) TransactionBodyBuilder
	WithWithdrawals(w *Withdrawals) TransactionBodyBuilder
	WithUpdate(u *Update) TransactionBodyBuilder
	WithAuxDataHash(h []byte) TransactionBodyBuilder
	WithValidityIntervalStart(slot uint64) TransactionBodyBuilder
	WithMint(assets ...Asset) TransactionBodyBuilder
	WithScriptDataHash(h []byte) TransactionBodyBuilder
	WithCollateral(inputs ...TransactionInput) TransactionBodyBuilder
	WithRequiredSigners(hashes ...[]byte) TransactionBodyBuilder
	WithNetworkID(id uint8) TransactionBodyBuilder
	WithCollateralReturn(out TransactionOutput) TransactionBodyBuilder
	WithTotalCollateral(lovelace uint64) TransactionBodyBuilder
	WithReferenceInputs(inputs ...TransactionInput) TransactionBodyBuilder
	WithVotingProcedures(vp *VotingProcedures) TransactionBodyBuilder
	WithProposalProcedures(procs ...ProposalProcedure) TransactionBodyBuilder
	WithTreasuryValue(lovelace uint64) TransactionBodyBuilder
	WithDonation(lovelace uint64) TransactionBodyBuilder
	WithWitnesses(w *TransactionWitnessSet) TransactionBodyBuilder
	WithValid(valid bool) TransactionBodyBuilder
	Build() (*TransactionBody, error)
}

type transactionBodyBuilder struct {
	body      TransactionBody
	hashErr   error
	signerErr error
}

// NewTransactionBodyBuilder creates a new transaction-body builder.
func NewTransactionBodyBuilder() TransactionBodyBuilder {
	return &transactionBodyBuilder{body: TransactionBody{valid: true}}
}

func (b *transactionBodyBuilder) WithInputs(inputs ...TransactionInput) TransactionBodyBuilder {
	b.body.inputs = append(b.body.inputs, inputs...)
	return b
}

func (b *transactionBodyBuilder) WithOutputs(outputs ...TransactionOutput) TransactionBodyBuilder {
	b.body.outputs = append(b.body.outputs, outputs...)
	return b
}

func (b *transactionBodyBuilder) WithFee(fee uint64) TransactionBodyBuilder {
	b.body.fee = fee
	return b
}

func (b *transactionBodyBuilder) WithTTL(ttl uint64) TransactionBodyBuilder {
	b.body.ttl = &ttl
	return b
}

func (b *transactionBodyBuilder) WithCertificates(certs ...Certificate) TransactionBodyBuilder {
	b.body.certs = append(b.body.certs, certs...)
	return b
}

func (b *transactionBodyBuilder) WithWithdrawals(w *Withdrawals) TransactionBodyBuilder {
	b.body.withdrawals = w
	return b
}

func (b *transactionBodyBuilder) WithUpdate(u *Update) TransactionBodyBuilder {
	b.body.update = u
	return b
}

func (b *transactionBodyBuilder) WithAuxDataHash(h []byte) TransactionBodyBuilder {
	if h == nil {
		return b
	}
	dh, err := hash.Blake2b256FromBytes(h)
	if err != nil {
		b.hashErr = fmt.Errorf("invalid aux data hash: %w", err)
	} else {
		b.hashErr = nil
		b.body.auxDataHash = &dh
	}
	return b
}

func (b *transactionBodyBuilder) WithValidityIntervalStart(slot uint64) TransactionBodyBuilder {
	b.body.validStart = &slot
	return b
}

func (b *transactionBodyBuilder) WithMint(assets ...Asset) TransactionBodyBuilder {
	b.body.mint = buildMultiAsset(assets)
	return b
}

func (b *transactionBodyBuilder) WithScriptDataHash(h []byte) TransactionBodyBuilder {
	if h == nil {
		return b
	}
	dh, err := hash.Blake2b256FromBytes(h)
	if err != nil {
		b.hashErr = fmt.Errorf("invalid script data hash: %w", err)
	} else {
		b.hashErr = nil
		b.body.scriptHash = &dh
	}
	return b
}

func (b *transactionBodyBuilder) WithCollateral(inputs ...TransactionInput) TransactionBodyBuilder {
	b.body.collateral = append(b.body.collateral, inputs...)
	return b
}

func (b *transactionBodyBuilder) WithRequiredSigners(hashes ...[]byte) TransactionBodyBuilder {
	for _, h := range hashes {
		rs, err := hash.Blake2b224FromBytes(h)
		if err != nil {
			b.signerErr = fmt.Errorf("invalid required signer hash: %w", err)
			continue
		}
		b.signerErr = nil
		b.body.reqSigners = append(b.body.reqSigners, rs)
	}
	return b
}

func (b *transactionBodyBuilder) WithNetworkID(id uint8) TransactionBodyBuilder {
	b.body.networkID = &id
	return b
}

func (b *transactionBodyBuilder) WithCollateralReturn(out TransactionOutput) TransactionBodyBuilder {
	b.body.collReturn = &out
	return b
}

func (b *transactionBodyBuilder) WithTotalCollateral(lovelace uint64) TransactionBodyBuilder {
	b.body.totalColl = &lovelace
	return b
}

func (b *transactionBodyBuilder) WithReferenceInputs(inputs ...TransactionInput) TransactionBodyBuilder {
	b.body.refInputs = append(b.body.refInputs, inputs...)
	return b
}

func (b *transactionBodyBuilder) WithVotingProcedures(vp *VotingProcedures) TransactionBodyBuilder {
	b.body.votingProc = vp
	return b
}

func (b *transactionBodyBuilder) WithProposalProcedures(procs ...ProposalProcedure) TransactionBodyBuilder {
	b.body.proposals = append(b.body.proposals, procs...)
	return b
}

func (b *transactionBodyBuilder) WithTreasuryValue(lovelace uint64) TransactionBodyBuilder {
	b.body.treasury = &lovelace
	return b
}

func (b *transactionBodyBuilder) WithDonation(lovelace uint64) TransactionBodyBuilder {
	b.body.donation = &lovelace
	return b
}

func (b *transactionBodyBuilder) WithWitnesses(w *TransactionWitnessSet) TransactionBodyBuilder {
	b.body.witnesses = w
	return b
}

func (b *transactionBodyBuilder) WithValid(valid bool) TransactionBodyBuilder {
	b.body.valid = valid
	return b
}

func (b *transactionBodyBuilder) Build() (*TransactionBody, error) {
	if b.hashErr != nil {
		return nil, b.hashErr
	}
	if b.signerErr != nil {
		return nil, b.signerErr
	}
	if len(b.body.inputs) == 0 {
		return nil, cerr.New(cerr.KindInvalidArgument, "at least one input is required")
	}
	if len(b.body.outputs) == 0 {
		return nil, cerr.New(cerr.KindInvalidArgument, "at least one output is required")
	}
	if b.body.witnesses == nil {
		b.body.witnesses = NewTransactionWitnessSet()
	}
	out := b.body
	out.attachChildren()
	return &out, nil
}
