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
	"unicode/utf8"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// MetadatumMaxBytesLen bounds a Metadatum byte-string or text-string
// variant, the Cardano ledger rule for transaction_metadatum.
const MetadatumMaxBytesLen = 64

// Metadatum is the tagged union transaction auxiliary data is built
// from: an arbitrary-precision integer, a bounded byte or text string,
// or a list/map recursively made of other Metadatum values.
type Metadatum interface {
	isMetadatum()
	ToCBOR(w *cbor.Writer)
	Equal(other Metadatum) bool
}

// MetadatumInt wraps an arbitrary-precision integer.
type MetadatumInt struct {
	originalBytes
	Value *bigint.Int
}

// MetadatumBytes wraps a byte string of at most MetadatumMaxBytesLen bytes.
type MetadatumBytes struct {
	originalBytes
	Value []byte
}

// MetadatumText wraps a UTF-8 string of at most MetadatumMaxBytesLen bytes.
type MetadatumText struct {
	originalBytes
	Value string
}

// MetadatumList wraps an ordered sequence of Metadatum values.
type MetadatumList struct {
	originalBytes
	Items []Metadatum
}

// MetadatumMapEntry is one key/value pair of a MetadatumMap, order-preserved.
type MetadatumMapEntry struct {
	Key   Metadatum
	Value Metadatum
}

// MetadatumMap wraps an ordered sequence of Metadatum key/value pairs.
type MetadatumMap struct {
	originalBytes
	Entries []MetadatumMapEntry
}

func (*MetadatumInt) isMetadatum()  {}
func (*MetadatumBytes) isMetadatum() {}
func (*MetadatumText) isMetadatum() {}
func (*MetadatumList) isMetadatum() {}
func (*MetadatumMap) isMetadatum()  {}

// NewMetadatumInt builds an integer Metadatum.
func NewMetadatumInt(v *bigint.Int) *MetadatumInt {
	return &MetadatumInt{Value: v}
}

// NewMetadatumBytes builds a byte-string Metadatum, rejecting payloads
// longer than MetadatumMaxBytesLen.
func NewMetadatumBytes(b []byte) (*MetadatumBytes, error) {
	if len(b) > MetadatumMaxBytesLen {
		return nil, cerr.New(cerr.KindInvalidArgument, "metadatum bytes: %d exceeds max of %d", len(b), MetadatumMaxBytesLen)
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return &MetadatumBytes{Value: cp}, nil
}

// NewMetadatumText builds a text-string Metadatum, rejecting strings
// longer than MetadatumMaxBytesLen bytes.
func NewMetadatumText(s string) (*MetadatumText, error) {
	if len(s) > MetadatumMaxBytesLen {
		return nil, cerr.New(cerr.KindInvalidArgument, "metadatum text: %d bytes exceeds max of %d", len(s), MetadatumMaxBytesLen)
	}
	if !utf8.ValidString(s) {
		return nil, cerr.New(cerr.KindInvalidArgument, "metadatum text: invalid UTF-8")
	}
	return &MetadatumText{Value: s}, nil
}

// NewMetadatumList builds a list Metadatum.
func NewMetadatumList(items ...Metadatum) *MetadatumList {
	return &MetadatumList{Items: items}
}

// NewMetadatumMap builds a map Metadatum, preserving insertion order.
func NewMetadatumMap(entries ...MetadatumMapEntry) *MetadatumMap {
	return &MetadatumMap{Entries: entries}
}

// ToCBOR writes the integer, replaying cached original bytes if present.
func (m *MetadatumInt) ToCBOR(w *cbor.Writer) {
	if raw, ok := m.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteBigInt(m.Value)
}

// ToCBOR writes the byte string, replaying cached original bytes if present.
func (m *MetadatumBytes) ToCBOR(w *cbor.Writer) {
	if raw, ok := m.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteByteString(m.Value)
}

// ToCBOR writes the text string, replaying cached original bytes if present.
func (m *MetadatumText) ToCBOR(w *cbor.Writer) {
	if raw, ok := m.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteTextString(m.Value)
}

// ToCBOR writes the list, replaying cached original bytes if present.
func (m *MetadatumList) ToCBOR(w *cbor.Writer) {
	if raw, ok := m.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(uint64(len(m.Items)), false)
	for _, item := range m.Items {
		item.ToCBOR(w)
	}
	_ = w.WriteEndArray()
}

// ToCBOR writes the map, replaying cached original bytes if present.
func (m *MetadatumMap) ToCBOR(w *cbor.Writer) {
	if raw, ok := m.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartMap(uint64(len(m.Entries)), false)
	for _, e := range m.Entries {
		e.Key.ToCBOR(w)
		e.Value.ToCBOR(w)
	}
	_ = w.WriteEndMap()
}

// ClearCache drops the cached original bytes for this value and,
// recursively, for every value it contains. Any code that mutates a
// decoded Metadatum tree in place must call this first.
func (m *MetadatumInt) ClearCache()  { m.clearCache() }
func (m *MetadatumBytes) ClearCache() { m.clearCache() }
func (m *MetadatumText) ClearCache() { m.clearCache() }
func (m *MetadatumList) ClearCache() {
	m.clearCache()
	for _, item := range m.Items {
		clearMetadatumCache(item)
	}
}
func (m *MetadatumMap) ClearCache() {
	m.clearCache()
	for _, e := range m.Entries {
		clearMetadatumCache(e.Key)
		clearMetadatumCache(e.Value)
	}
}

func clearMetadatumCache(m Metadatum) {
	switch v := m.(type) {
	case *MetadatumInt:
		v.ClearCache()
	case *MetadatumBytes:
		v.ClearCache()
	case *MetadatumText:
		v.ClearCache()
	case *MetadatumList:
		v.ClearCache()
	case *MetadatumMap:
		v.ClearCache()
	}
}

// Equal reports structural equality, ignoring cached bytes.
func (m *MetadatumInt) Equal(other Metadatum) bool {
	o, ok := other.(*MetadatumInt)
	return ok && m.Value.Equal(o.Value)
}

// Equal reports structural equality, ignoring cached bytes.
func (m *MetadatumBytes) Equal(other Metadatum) bool {
	o, ok := other.(*MetadatumBytes)
	if !ok || len(m.Value) != len(o.Value) {
		return false
	}
	for i := range m.Value {
		if m.Value[i] != o.Value[i] {
			return false
		}
	}
	return true
}

// Equal reports structural equality, ignoring cached bytes.
func (m *MetadatumText) Equal(other Metadatum) bool {
	o, ok := other.(*MetadatumText)
	return ok && m.Value == o.Value
}

// Equal reports structural equality, ignoring cached bytes.
func (m *MetadatumList) Equal(other Metadatum) bool {
	o, ok := other.(*MetadatumList)
	if !ok || len(m.Items) != len(o.Items) {
		return false
	}
	for i := range m.Items {
		if !m.Items[i].Equal(o.Items[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality, ignoring cached bytes.
func (m *MetadatumMap) Equal(other Metadatum) bool {
	o, ok := other.(*MetadatumMap)
	if !ok || len(m.Entries) != len(o.Entries) {
		return false
	}
	for i := range m.Entries {
		if !m.Entries[i].Key.Equal(o.Entries[i].Key) || !m.Entries[i].Value.Equal(o.Entries[i].Value) {
			return false
		}
	}
	return true
}

// DecodeMetadatum reads one Metadatum value, dispatching on the
// reader's next major type and caching the exact bytes consumed so a
// later ToCBOR reproduces them unchanged.
func DecodeMetadatum(r *cbor.Reader) (Metadatum, error) {
	raw, err := r.EncodedValue()
	if err != nil {
		return nil, err
	}
	state := r.PeekState()
	switch state {
	case cbor.UnsignedInteger, cbor.NegativeInteger, cbor.Tag:
		v, err := r.ReadBigInt()
		if err != nil {
			return nil, err
		}
		m := &MetadatumInt{Value: v}
		m.setCache(raw)
		return m, nil
	case cbor.ByteString, cbor.StartIndefiniteByteString:
		b, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		if len(b) > MetadatumMaxBytesLen {
			return nil, cerr.New(cerr.KindInvalidCborValue, "metadatum bytes: %d exceeds max of %d", len(b), MetadatumMaxBytesLen)
		}
		m := &MetadatumBytes{Value: b}
		m.setCache(raw)
		return m, nil
	case cbor.TextString, cbor.StartIndefiniteTextString:
		s, err := r.ReadTextString()
		if err != nil {
			return nil, err
		}
		if len(s) > MetadatumMaxBytesLen {
			return nil, cerr.New(cerr.KindInvalidCborValue, "metadatum text: %d bytes exceeds max of %d", len(s), MetadatumMaxBytesLen)
		}
		m := &MetadatumText{Value: s}
		m.setCache(raw)
		return m, nil
	case cbor.StartArray:
		if _, _, err := r.ReadStartArray(); err != nil {
			return nil, err
		}
		var items []Metadatum
		for r.PeekState() != cbor.EndArray {
			item, err := DecodeMetadatum(r)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if err := r.ReadEndArray(); err != nil {
			return nil, err
		}
		m := &MetadatumList{Items: items}
		m.setCache(raw)
		return m, nil
	case cbor.StartMap:
		if _, _, err := r.ReadStartMap(); err != nil {
			return nil, err
		}
		var entries []MetadatumMapEntry
		for r.PeekState() != cbor.EndMap {
			k, err := DecodeMetadatum(r)
			if err != nil {
				return nil, err
			}
			v, err := DecodeMetadatum(r)
			if err != nil {
				return nil, err
			}
			entries = append(entries, MetadatumMapEntry{Key: k, Value: v})
		}
		if err := r.ReadEndMap(); err != nil {
			return nil, err
		}
		m := &MetadatumMap{Entries: entries}
		m.setCache(raw)
		return m, nil
	default:
		return nil, cerr.New(cerr.KindUnexpectedCborType, "metadatum: unexpected cbor state %s", state)
	}
}
