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

// Package ledger implements the transaction data model: inputs, outputs,
// values, UTXOs, the transaction body, and the certificate/governance
// substructures it references. Each structured type follows the builder
// shape used throughout this module: With* chaining, deferred-error
// fields resolved at Build(), and an originalBytes cache cleared by
// every mutator and every ancestor up the ownership chain.
package ledger

import (
	"fmt"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
	"github.com/blinklabs-io/cardano-core/value"
)

// PlutusLanguage identifies a script language for ScriptRef and witness
// scripts; native scripts use prefix byte 0x00 in the script-hash
// preimage (value.ScriptHash), Plutus v1/v2/v3 use 0x01/0x02/0x03.
type PlutusLanguage uint8

const (
	LanguageNative PlutusLanguage = iota
	LanguagePlutusV1
	LanguagePlutusV2
	LanguagePlutusV3
)

// Asset is a single native-asset entry used when building outputs, mints,
// or withdrawals that carry multi-asset value.
type Asset struct {
	PolicyID  hash.Blake2b224
	AssetName AssetName
	Quantity  *bigint.Int
}

func buildMultiAsset(assets []Asset) *MultiAsset {
	if len(assets) == 0 {
		return nil
	}
	m := NewMultiAsset()
	for _, a := range assets {
		m.Set(a.PolicyID, a.AssetName, a.Quantity)
	}
	return m
}

// TransactionInput is (tx_id: hash-32, index: u64).
type TransactionInput struct {
	originalBytes
	TxID  hash.Blake2b256
	Index uint64
}

// TransactionInputBuilder builds a TransactionInput.
type TransactionInputBuilder interface {
	WithTxId(txId []byte) TransactionInputBuilder
	WithIndex(idx uint64) TransactionInputBuilder
	Build() (TransactionInput, error)
}

type transactionInputBuilder struct {
	txId    []byte
	txIdErr error
	index   uint64
}

// NewTransactionInputBuilder creates a new transaction input builder.
func NewTransactionInputBuilder() TransactionInputBuilder {
	return &transactionInputBuilder{}
}

func (b *transactionInputBuilder) WithTxId(txId []byte) TransactionInputBuilder {
	id, err := hash.Blake2b256FromBytes(txId)
	if err != nil {
		b.txIdErr = fmt.Errorf("invalid transaction id: %w", err)
	} else {
		b.txId = id[:]
		b.txIdErr = nil
	}
	return b
}

func (b *transactionInputBuilder) WithIndex(idx uint64) TransactionInputBuilder {
	b.index = idx
	return b
}

func (b *transactionInputBuilder) Build() (TransactionInput, error) {
	if b.txIdErr != nil {
		return TransactionInput{}, b.txIdErr
	}
	if b.txId == nil {
		return TransactionInput{}, cerr.New(cerr.KindInvalidArgument, "transaction id is required")
	}
	id, _ := hash.Blake2b256FromBytes(b.txId)
	return TransactionInput{TxID: id, Index: b.index}, nil
}

// ToCBOR encodes the input as the two-element [tx_id, index] array, or
// replays the decode-time cache verbatim when present.
func (i *TransactionInput) ToCBOR(w *cbor.Writer) {
	if raw, ok := i.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(2, false)
	w.WriteByteString(i.TxID.Bytes())
	w.WriteUint(i.Index)
	_ = w.WriteEndArray()
}

// DecodeTransactionInput decodes a [tx_id, index] array and populates the
// original-bytes cache from the exact bytes consumed.
func DecodeTransactionInput(r *cbor.Reader) (TransactionInput, error) {
	raw, err := r.EncodedValue()
	if err != nil {
		return TransactionInput{}, err
	}
	if _, _, err := r.ReadStartArray(); err != nil {
		return TransactionInput{}, err
	}
	idBytes, err := r.ReadByteString()
	if err != nil {
		return TransactionInput{}, err
	}
	id, err := hash.Blake2b256FromBytes(idBytes)
	if err != nil {
		return TransactionInput{}, err
	}
	idx, err := r.ReadUint()
	if err != nil {
		return TransactionInput{}, err
	}
	if err := r.ReadEndArray(); err != nil {
		return TransactionInput{}, err
	}
	in := TransactionInput{TxID: id, Index: idx}
	in.setCache(raw)
	return in, nil
}

// Equal reports structural equality.
func (i TransactionInput) Equal(other TransactionInput) bool {
	return i.TxID == other.TxID && i.Index == other.Index
}

// ToPlutusData renders the input as Constr(0, [tx_id, index]), the shape
// Plutus scripts receive a TxOutRef in.
func (i TransactionInput) ToPlutusData() value.PlutusData {
	return value.NewPlutusConstr(0,
		value.NewPlutusBytes(i.TxID.Bytes()),
		value.NewPlutusInt(bigint.NewFromU64(i.Index)),
	)
}

func (i TransactionInput) String() string {
	return fmt.Sprintf("%s#%d", i.TxID.String(), i.Index)
}

// TransactionOutput is (address, value, optional datum, optional
// script-ref).
type TransactionOutput struct {
	originalBytes
	address       Address
	amount        Value
	datum         value.PlutusData
	datumHash     *hash.Blake2b256
	scriptRefLang PlutusLanguage
	scriptRef     []byte
}

// Address returns the output's address.
func (o *TransactionOutput) Address() Address { return o.address }

// Amount returns the output's value.
func (o *TransactionOutput) Amount() Value { return o.amount }

// Datum returns the inline datum, if any.
func (o *TransactionOutput) Datum() value.PlutusData { return o.datum }

// DatumHash returns the datum hash, if any.
func (o *TransactionOutput) DatumHash() *hash.Blake2b256 { return o.datumHash }

// ScriptRef returns the raw reference-script bytes and its language, if any.
func (o *TransactionOutput) ScriptRef() (PlutusLanguage, []byte) {
	return o.scriptRefLang, o.scriptRef
}

// SetAmount replaces the output's value, clearing the cache.
func (o *TransactionOutput) SetAmount(v Value) {
	o.amount = v
	o.clearCache()
}

// TransactionOutputBuilder builds a TransactionOutput.
type TransactionOutputBuilder interface {
	WithAddress(addr []byte) TransactionOutputBuilder
	WithLovelace(amount uint64) TransactionOutputBuilder
	WithAssets(assets ...Asset) TransactionOutputBuilder
	WithDatum(datum value.PlutusData) TransactionOutputBuilder
	WithDatumHash(hash []byte) TransactionOutputBuilder
	WithScriptRef(language PlutusLanguage, script []byte) TransactionOutputBuilder
	Build() (TransactionOutput, error)
}

type transactionOutputBuilder struct {
	address   Address
	amount    uint64
	assets    *MultiAsset
	datum     value.PlutusData
	datumHash *hash.Blake2b256
	hashErr   error
	refLang   PlutusLanguage
	refBytes  []byte
}

// NewTransactionOutputBuilder creates a new transaction output builder.
func NewTransactionOutputBuilder() TransactionOutputBuilder {
	return &transactionOutputBuilder{}
}

func (b *transactionOutputBuilder) WithAddress(addr []byte) TransactionOutputBuilder {
	b.address = NewAddress(addr)
	return b
}

func (b *transactionOutputBuilder) WithLovelace(amount uint64) TransactionOutputBuilder {
	b.amount = amount
	return b
}

func (b *transactionOutputBuilder) WithAssets(assets ...Asset) TransactionOutputBuilder {
	b.assets = buildMultiAsset(assets)
	return b
}

func (b *transactionOutputBuilder) WithDatum(datum value.PlutusData) TransactionOutputBuilder {
	b.datum = datum
	return b
}

func (b *transactionOutputBuilder) WithDatumHash(h []byte) TransactionOutputBuilder {
	if h != nil {
		dh, err := hash.Blake2b256FromBytes(h)
		if err != nil {
			b.hashErr = fmt.Errorf("invalid datum hash: %w", err)
		} else {
			b.datumHash = &dh
			b.hashErr = nil
		}
	}
	return b
}

func (b *transactionOutputBuilder) WithScriptRef(language PlutusLanguage, script []byte) TransactionOutputBuilder {
	b.refLang = language
	b.refBytes = script
	return b
}

func (b *transactionOutputBuilder) Build() (TransactionOutput, error) {
	if b.hashErr != nil {
		return TransactionOutput{}, b.hashErr
	}
	if len(b.address) == 0 {
		return TransactionOutput{}, cerr.New(cerr.KindInvalidArgument, "address is required")
	}
	return TransactionOutput{
		address:       b.address,
		amount:        NewValueWithAssets(b.amount, b.assets),
		datum:         b.datum,
		datumHash:     b.datumHash,
		scriptRefLang: b.refLang,
		scriptRef:     b.refBytes,
	}, nil
}

// datumOptionHash and datumOptionInline are the datum-option
// discriminators Babbage+ outputs write as the first element of the
// map key 2 array: 0 for a datum hash, 1 for an inline datum.
const (
	datumOptionHash   = 0
	datumOptionInline = 1
)

// ToCBOR encodes the output as a Babbage-era map: {0: address, 1: value,
// [2: datum-option], [3: script-ref]}.
func (o *TransactionOutput) ToCBOR(w *cbor.Writer) {
	if raw, ok := o.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	fields := 2
	if o.datum != nil || o.datumHash != nil {
		fields++
	}
	if o.scriptRef != nil {
		fields++
	}
	w.WriteStartMap(uint64(fields), false)
	w.WriteUint(0)
	w.WriteByteString(o.address.Bytes())
	w.WriteUint(1)
	o.amount.ToCBOR(w)
	if o.datumHash != nil {
		w.WriteUint(2)
		w.WriteStartArray(2, false)
		w.WriteUint(datumOptionHash)
		w.WriteByteString(o.datumHash.Bytes())
		_ = w.WriteEndArray()
	} else if o.datum != nil {
		w.WriteUint(2)
		w.WriteStartArray(2, false)
		w.WriteUint(datumOptionInline)
		inner := cbor.NewWriter()
		o.datum.ToCBOR(inner)
		w.WriteTag(cbor.TagEncodedCbor)
		w.WriteByteString(inner.Encode())
		_ = w.WriteEndArray()
	}
	if o.scriptRef != nil {
		w.WriteUint(3)
		inner := cbor.NewWriter()
		inner.WriteStartArray(2, false)
		inner.WriteUint(uint64(o.scriptRefLang))
		inner.WriteByteString(o.scriptRef)
		_ = inner.WriteEndArray()
		w.WriteTag(cbor.TagEncodedCbor)
		w.WriteByteString(inner.Encode())
	}
	_ = w.WriteEndMap()
}

// DecodeTransactionOutput decodes a Babbage-era output map and populates
// the original-bytes cache.
func DecodeTransactionOutput(r *cbor.Reader) (TransactionOutput, error) {
	raw, err := r.EncodedValue()
	if err != nil {
		return TransactionOutput{}, err
	}
	if _, _, err := r.ReadStartMap(); err != nil {
		return TransactionOutput{}, err
	}
	var out TransactionOutput
	for r.PeekState() != cbor.EndMap {
		key, err := r.ReadUint()
		if err != nil {
			return TransactionOutput{}, err
		}
		switch key {
		case 0:
			addrBytes, err := r.ReadByteString()
			if err != nil {
				return TransactionOutput{}, err
			}
			out.address = NewAddress(addrBytes)
		case 1:
			v, err := DecodeValue(r)
			if err != nil {
				return TransactionOutput{}, err
			}
			out.amount = v
		case 2:
			if _, _, err := r.ReadStartArray(); err != nil {
				return TransactionOutput{}, err
			}
			tag, err := r.ReadUint()
			if err != nil {
				return TransactionOutput{}, err
			}
			switch tag {
			case datumOptionHash:
				hb, err := r.ReadByteString()
				if err != nil {
					return TransactionOutput{}, err
				}
				dh, err := hash.Blake2b256FromBytes(hb)
				if err != nil {
					return TransactionOutput{}, err
				}
				out.datumHash = &dh
			case datumOptionInline:
				if _, err := r.ReadTag(); err != nil {
					return TransactionOutput{}, err
				}
				enc, err := r.ReadByteString()
				if err != nil {
					return TransactionOutput{}, err
				}
				inner := cbor.NewReader(enc)
				pd, err := value.DecodePlutusData(inner)
				if err != nil {
					return TransactionOutput{}, err
				}
				out.datum = pd
			default:
				return TransactionOutput{}, cerr.New(cerr.KindInvalidCborValue, "unknown datum option tag %d", tag)
			}
			if err := r.ReadEndArray(); err != nil {
				return TransactionOutput{}, err
			}
		case 3:
			if _, err := r.ReadTag(); err != nil {
				return TransactionOutput{}, err
			}
			enc, err := r.ReadByteString()
			if err != nil {
				return TransactionOutput{}, err
			}
			inner := cbor.NewReader(enc)
			if _, _, err := inner.ReadStartArray(); err != nil {
				return TransactionOutput{}, err
			}
			lang, err := inner.ReadUint()
			if err != nil {
				return TransactionOutput{}, err
			}
			script, err := inner.ReadByteString()
			if err != nil {
				return TransactionOutput{}, err
			}
			if err := inner.ReadEndArray(); err != nil {
				return TransactionOutput{}, err
			}
			out.scriptRefLang = PlutusLanguage(lang)
			out.scriptRef = script
		default:
			if err := r.SkipValue(); err != nil {
				return TransactionOutput{}, err
			}
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return TransactionOutput{}, err
	}
	out.setCache(raw)
	return out, nil
}

// ToPlutusData renders the output in the Plutus TxOut shape:
// Constr(0, [address, value, datum-option, script-ref-option]).
func (o *TransactionOutput) ToPlutusData() value.PlutusData {
	var datumField value.PlutusData
	switch {
	case o.datum != nil:
		datumField = value.NewPlutusConstr(2, o.datum) // OutputDatum
	case o.datumHash != nil:
		datumField = value.NewPlutusConstr(1, value.NewPlutusBytes(o.datumHash.Bytes()))
	default:
		datumField = value.NewPlutusConstr(0)
	}
	var refField value.PlutusData
	if o.scriptRef != nil {
		refField = value.NewPlutusConstr(0, value.NewPlutusBytes(o.scriptRef))
	} else {
		refField = value.NewPlutusConstr(1)
	}
	return value.NewPlutusConstr(0,
		value.NewPlutusBytes(o.address.Bytes()),
		valueToPlutusData(o.amount),
		datumField,
		refField,
	)
}

// valueToPlutusData renders a Value as the Plutus Value map shape: an
// association list keyed by policy id (empty bytes reserved for ada)
// of association lists keyed by asset name.
func valueToPlutusData(v Value) value.PlutusData {
	entries := []value.PlutusMapEntry{{
		Key:   value.NewPlutusBytes(nil),
		Value: value.NewPlutusMap(value.PlutusMapEntry{Key: value.NewPlutusBytes(nil), Value: value.NewPlutusInt(bigint.NewFromU64(v.Coin))}),
	}}
	if !v.Assets.IsEmpty() {
		for _, p := range v.Assets.sortedPolicies() {
			var assetEntries []value.PlutusMapEntry
			for _, n := range sortedAssetNames(v.Assets.policies[p]) {
				assetEntries = append(assetEntries, value.PlutusMapEntry{
					Key:   value.NewPlutusBytes([]byte(n)),
					Value: value.NewPlutusInt(v.Assets.policies[p][n].Clone()),
				})
			}
			entries = append(entries, value.PlutusMapEntry{
				Key:   value.NewPlutusBytes(p.Bytes()),
				Value: value.NewPlutusMap(assetEntries...),
			})
		}
	}
	return value.NewPlutusMap(entries...)
}

func (o *TransactionOutput) String() string {
	return fmt.Sprintf("Output{address=%s, coin=%d}", o.address.String(), o.amount.Coin)
}

// Utxo is a (input, output) pair, identified uniquely by its input.
type Utxo struct {
	Input  TransactionInput
	Output TransactionOutput
}

// UtxoBuilder builds a Utxo.
type UtxoBuilder interface {
	WithTxId(txId []byte) UtxoBuilder
	WithIndex(idx uint64) UtxoBuilder
	WithAddress(addr []byte) UtxoBuilder
	WithLovelace(amount uint64) UtxoBuilder
	WithAssets(assets ...Asset) UtxoBuilder
	WithDatum(datum value.PlutusData) UtxoBuilder
	WithDatumHash(hash []byte) UtxoBuilder
	WithScriptRef(language PlutusLanguage, script []byte) UtxoBuilder
	Build() (Utxo, error)
}

type utxoBuilder struct {
	input  transactionInputBuilder
	output transactionOutputBuilder
}

// NewUtxoBuilder creates a new UTXO builder.
func NewUtxoBuilder() UtxoBuilder {
	return &utxoBuilder{}
}

func (u *utxoBuilder) WithTxId(txId []byte) UtxoBuilder {
	u.input.WithTxId(txId)
	return u
}

func (u *utxoBuilder) WithIndex(idx uint64) UtxoBuilder {
	u.input.WithIndex(idx)
	return u
}

func (u *utxoBuilder) WithAddress(addr []byte) UtxoBuilder {
	u.output.WithAddress(addr)
	return u
}

func (u *utxoBuilder) WithLovelace(amount uint64) UtxoBuilder {
	u.output.WithLovelace(amount)
	return u
}

func (u *utxoBuilder) WithAssets(assets ...Asset) UtxoBuilder {
	u.output.WithAssets(assets...)
	return u
}

func (u *utxoBuilder) WithDatum(datum value.PlutusData) UtxoBuilder {
	u.output.WithDatum(datum)
	return u
}

func (u *utxoBuilder) WithDatumHash(h []byte) UtxoBuilder {
	u.output.WithDatumHash(h)
	return u
}

func (u *utxoBuilder) WithScriptRef(language PlutusLanguage, script []byte) UtxoBuilder {
	u.output.WithScriptRef(language, script)
	return u
}

func (u *utxoBuilder) Build() (Utxo, error) {
	in, err := u.input.Build()
	if err != nil {
		return Utxo{}, err
	}
	out, err := u.output.Build()
	if err != nil {
		return Utxo{}, err
	}
	return Utxo{Input: in, Output: out}, nil
}
