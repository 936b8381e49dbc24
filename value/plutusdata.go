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

package value

import (
	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// PlutusDataBytesChunkSize is the chunk size byte strings longer than
// 64 bytes are split into when CBOR-encoded as an indefinite sequence.
const PlutusDataBytesChunkSize = 64

// PlutusData is the on-chain data model Plutus scripts consume: a
// superset of Metadatum with an additional Constr (algebraic data
// type constructor) variant.
type PlutusData interface {
	isPlutusData()
	ToCBOR(w *cbor.Writer)
	Equal(other PlutusData) bool
}

// PlutusConstr is a tagged ADT constructor: an alternative index plus
// an ordered sequence of fields.
type PlutusConstr struct {
	originalBytes
	Alternative uint64
	Fields      []PlutusData
}

// PlutusMapEntry is one key/value pair of a PlutusMap, order-preserved.
type PlutusMapEntry struct {
	Key   PlutusData
	Value PlutusData
}

// PlutusMap is an ordered sequence of PlutusData key/value pairs.
type PlutusMap struct {
	originalBytes
	Entries []PlutusMapEntry
}

// PlutusList is an ordered sequence of PlutusData values.
type PlutusList struct {
	originalBytes
	Items []PlutusData
}

// PlutusInt wraps an arbitrary-precision integer.
type PlutusInt struct {
	originalBytes
	Value *bigint.Int
}

// PlutusBytes wraps a byte string. Strings longer than
// PlutusDataBytesChunkSize are CBOR-encoded as indefinite chunks.
type PlutusBytes struct {
	originalBytes
	Value []byte
}

func (*PlutusConstr) isPlutusData() {}
func (*PlutusMap) isPlutusData()    {}
func (*PlutusList) isPlutusData()   {}
func (*PlutusInt) isPlutusData()    {}
func (*PlutusBytes) isPlutusData()  {}

// NewPlutusConstr builds a Constr PlutusData.
func NewPlutusConstr(alternative uint64, fields ...PlutusData) *PlutusConstr {
	return &PlutusConstr{Alternative: alternative, Fields: fields}
}

// NewPlutusMap builds a Map PlutusData, preserving insertion order.
func NewPlutusMap(entries ...PlutusMapEntry) *PlutusMap {
	return &PlutusMap{Entries: entries}
}

// NewPlutusList builds a List PlutusData.
func NewPlutusList(items ...PlutusData) *PlutusList {
	return &PlutusList{Items: items}
}

// NewPlutusInt builds an Integer PlutusData.
func NewPlutusInt(v *bigint.Int) *PlutusInt {
	return &PlutusInt{Value: v}
}

// NewPlutusBytes builds a Bytes PlutusData.
func NewPlutusBytes(b []byte) *PlutusBytes {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &PlutusBytes{Value: cp}
}

// constrTag returns the CBOR tag (and whether the generic tag-102
// wrapping applies) for a given alternative, per spec.md §4.C.1: 0-6
// use 121-127, 7-127 use 1280-1400, and 128+ fall back to the generic
// tag 102 wrapping a definite [alternative, fields] array.
func constrTag(alt uint64) (tag uint64, generic bool) {
	switch {
	case alt <= 6:
		return cbor.TagPlutusConstrLo + alt, false
	case alt <= 127:
		return cbor.TagPlutusConstrLo2 + (alt - 7), false
	default:
		return cbor.TagPlutusGeneric, true
	}
}

// ToCBOR writes the constructor, replaying cached original bytes if present.
func (p *PlutusConstr) ToCBOR(w *cbor.Writer) {
	if raw, ok := p.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	tag, generic := constrTag(p.Alternative)
	w.WriteTag(tag)
	if generic {
		w.WriteStartArray(2, false)
		w.WriteUint(p.Alternative)
		w.WriteStartArray(uint64(len(p.Fields)), true)
		for _, f := range p.Fields {
			f.ToCBOR(w)
		}
		_ = w.WriteEndArray()
		_ = w.WriteEndArray()
		return
	}
	w.WriteStartArray(uint64(len(p.Fields)), true)
	for _, f := range p.Fields {
		f.ToCBOR(w)
	}
	_ = w.WriteEndArray()
}

// ToCBOR writes the map, replaying cached original bytes if present.
func (p *PlutusMap) ToCBOR(w *cbor.Writer) {
	if raw, ok := p.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartMap(uint64(len(p.Entries)), false)
	for _, e := range p.Entries {
		e.Key.ToCBOR(w)
		e.Value.ToCBOR(w)
	}
	_ = w.WriteEndMap()
}

// ToCBOR writes the list, replaying cached original bytes if present.
func (p *PlutusList) ToCBOR(w *cbor.Writer) {
	if raw, ok := p.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(uint64(len(p.Items)), true)
	for _, item := range p.Items {
		item.ToCBOR(w)
	}
	_ = w.WriteEndArray()
}

// ToCBOR writes the integer, replaying cached original bytes if present.
func (p *PlutusInt) ToCBOR(w *cbor.Writer) {
	if raw, ok := p.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteBigInt(p.Value)
}

// ToCBOR writes the byte string, chunking payloads over
// PlutusDataBytesChunkSize bytes, or replaying cached original bytes.
func (p *PlutusBytes) ToCBOR(w *cbor.Writer) {
	if raw, ok := p.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	if len(p.Value) > PlutusDataBytesChunkSize {
		w.WriteByteStringChunked(p.Value, PlutusDataBytesChunkSize)
		return
	}
	w.WriteByteString(p.Value)
}

// Equal reports structural equality, ignoring cached bytes.
func (p *PlutusConstr) Equal(other PlutusData) bool {
	o, ok := other.(*PlutusConstr)
	if !ok || p.Alternative != o.Alternative || len(p.Fields) != len(o.Fields) {
		return false
	}
	for i := range p.Fields {
		if !p.Fields[i].Equal(o.Fields[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality, ignoring cached bytes.
func (p *PlutusMap) Equal(other PlutusData) bool {
	o, ok := other.(*PlutusMap)
	if !ok || len(p.Entries) != len(o.Entries) {
		return false
	}
	for i := range p.Entries {
		if !p.Entries[i].Key.Equal(o.Entries[i].Key) || !p.Entries[i].Value.Equal(o.Entries[i].Value) {
			return false
		}
	}
	return true
}

// Equal reports structural equality, ignoring cached bytes.
func (p *PlutusList) Equal(other PlutusData) bool {
	o, ok := other.(*PlutusList)
	if !ok || len(p.Items) != len(o.Items) {
		return false
	}
	for i := range p.Items {
		if !p.Items[i].Equal(o.Items[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality, ignoring cached bytes.
func (p *PlutusInt) Equal(other PlutusData) bool {
	o, ok := other.(*PlutusInt)
	return ok && p.Value.Equal(o.Value)
}

// Equal reports structural equality, ignoring cached bytes.
func (p *PlutusBytes) Equal(other PlutusData) bool {
	o, ok := other.(*PlutusBytes)
	if !ok || len(p.Value) != len(o.Value) {
		return false
	}
	for i := range p.Value {
		if p.Value[i] != o.Value[i] {
			return false
		}
	}
	return true
}

// AsInteger returns the wrapped BigInt, failing with
// KindInvalidPlutusDataConversion if p is not an Integer.
func AsInteger(p PlutusData) (*bigint.Int, error) {
	v, ok := p.(*PlutusInt)
	if !ok {
		return nil, cerr.New(cerr.KindInvalidPlutusDataConversion, "plutus data is not an integer")
	}
	return v.Value, nil
}

// AsBytes returns the wrapped byte string, failing with
// KindInvalidPlutusDataConversion if p is not Bytes.
func AsBytes(p PlutusData) ([]byte, error) {
	v, ok := p.(*PlutusBytes)
	if !ok {
		return nil, cerr.New(cerr.KindInvalidPlutusDataConversion, "plutus data is not bytes")
	}
	return v.Value, nil
}

// AsList returns the wrapped PlutusList, failing with
// KindInvalidPlutusDataConversion if p is not a List.
func AsList(p PlutusData) (*PlutusList, error) {
	v, ok := p.(*PlutusList)
	if !ok {
		return nil, cerr.New(cerr.KindInvalidPlutusDataConversion, "plutus data is not a list")
	}
	return v, nil
}

// AsMap returns the wrapped PlutusMap, failing with
// KindInvalidPlutusDataConversion if p is not a Map.
func AsMap(p PlutusData) (*PlutusMap, error) {
	v, ok := p.(*PlutusMap)
	if !ok {
		return nil, cerr.New(cerr.KindInvalidPlutusDataConversion, "plutus data is not a map")
	}
	return v, nil
}

// AsConstr returns the wrapped PlutusConstr, failing with
// KindInvalidPlutusDataConversion if p is not a Constr.
func AsConstr(p PlutusData) (*PlutusConstr, error) {
	v, ok := p.(*PlutusConstr)
	if !ok {
		return nil, cerr.New(cerr.KindInvalidPlutusDataConversion, "plutus data is not a constructor")
	}
	return v, nil
}

// DecodePlutusData reads one PlutusData value and caches the exact
// bytes consumed so a later ToCBOR reproduces them unchanged.
func DecodePlutusData(r *cbor.Reader) (PlutusData, error) {
	raw, err := r.EncodedValue()
	if err != nil {
		return nil, err
	}
	state := r.PeekState()
	switch state {
	case cbor.UnsignedInteger, cbor.NegativeInteger:
		v, err := r.ReadBigInt()
		if err != nil {
			return nil, err
		}
		p := &PlutusInt{Value: v}
		p.setCache(raw)
		return p, nil
	case cbor.ByteString, cbor.StartIndefiniteByteString:
		b, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		p := &PlutusBytes{Value: b}
		p.setCache(raw)
		return p, nil
	case cbor.StartArray:
		if _, _, err := r.ReadStartArray(); err != nil {
			return nil, err
		}
		var items []PlutusData
		for r.PeekState() != cbor.EndArray {
			item, err := DecodePlutusData(r)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if err := r.ReadEndArray(); err != nil {
			return nil, err
		}
		p := &PlutusList{Items: items}
		p.setCache(raw)
		return p, nil
	case cbor.StartMap:
		if _, _, err := r.ReadStartMap(); err != nil {
			return nil, err
		}
		var entries []PlutusMapEntry
		for r.PeekState() != cbor.EndMap {
			k, err := DecodePlutusData(r)
			if err != nil {
				return nil, err
			}
			v, err := DecodePlutusData(r)
			if err != nil {
				return nil, err
			}
			entries = append(entries, PlutusMapEntry{Key: k, Value: v})
		}
		if err := r.ReadEndMap(); err != nil {
			return nil, err
		}
		p := &PlutusMap{Entries: entries}
		p.setCache(raw)
		return p, nil
	case cbor.Tag:
		return decodePlutusConstr(r, raw)
	default:
		return nil, cerr.New(cerr.KindUnexpectedCborType, "plutus data: unexpected cbor state %s", state)
	}
}

func decodePlutusConstr(r *cbor.Reader, raw []byte) (PlutusData, error) {
	tag, err := r.ReadTag()
	if err != nil {
		return nil, err
	}
	switch {
	case tag >= cbor.TagPlutusConstrLo && tag <= cbor.TagPlutusConstrHi:
		fields, err := decodePlutusFieldArray(r)
		if err != nil {
			return nil, err
		}
		p := &PlutusConstr{Alternative: tag - cbor.TagPlutusConstrLo, Fields: fields}
		p.setCache(raw)
		return p, nil
	case tag >= cbor.TagPlutusConstrLo2 && tag <= cbor.TagPlutusConstrHi2:
		fields, err := decodePlutusFieldArray(r)
		if err != nil {
			return nil, err
		}
		p := &PlutusConstr{Alternative: (tag - cbor.TagPlutusConstrLo2) + 7, Fields: fields}
		p.setCache(raw)
		return p, nil
	case tag == cbor.TagPlutusGeneric:
		length, _, err := r.ReadStartArray()
		if err != nil {
			return nil, err
		}
		if length != 2 {
			return nil, cerr.New(cerr.KindInvalidCborArraySize, "generic plutus constr: expected 2-element array, got %d", length)
		}
		alt, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		fields, err := decodePlutusFieldArray(r)
		if err != nil {
			return nil, err
		}
		if err := r.ReadEndArray(); err != nil {
			return nil, err
		}
		p := &PlutusConstr{Alternative: alt, Fields: fields}
		p.setCache(raw)
		return p, nil
	case tag == cbor.TagUnsignedBignum || tag == cbor.TagNegativeBignum:
		// not a constr tag: a bignum, whose byte-string magnitude follows the tag
		v, err := decodeBignumAfterTag(r, tag)
		if err != nil {
			return nil, err
		}
		p := &PlutusInt{Value: v}
		p.setCache(raw)
		return p, nil
	default:
		return nil, cerr.New(cerr.KindInvalidCborValue, "plutus data: unsupported tag %d", tag)
	}
}

func decodePlutusFieldArray(r *cbor.Reader) ([]PlutusData, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return nil, err
	}
	var fields []PlutusData
	for r.PeekState() != cbor.EndArray {
		f, err := DecodePlutusData(r)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeBignumAfterTag(r *cbor.Reader, tag uint64) (*bigint.Int, error) {
	b, err := r.ReadByteString()
	if err != nil {
		return nil, cerr.Wrap(cerr.KindDecoding, err, "bignum must wrap a byte string")
	}
	return bigint.FromAbsBytes(b, tag == cbor.TagNegativeBignum), nil
}
