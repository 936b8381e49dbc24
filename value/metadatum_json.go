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
	"bytes"
	"encoding/hex"
	"encoding/json"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// ToNoSchemaJSON renders m using the no-schema metadata JSON
// encoding: maps with all-text keys become JSON objects, lists become
// arrays, byte strings become "0x"-prefixed hex, and integers outside
// the JSON-safe range become strings. Values that cannot be represented
// this way (non-string map keys, top-level scalars) fail with
// KindInvalidMetadatumConversion.
func (m *MetadatumMap) ToNoSchemaJSON() ([]byte, error) {
	v, err := noSchemaValue(m)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}

func noSchemaValue(m Metadatum) (any, error) {
	switch v := m.(type) {
	case *MetadatumInt:
		if v.Value.Big().IsInt64() {
			n := v.Value.Int64()
			if n >= -(1<<53) && n <= 1<<53 {
				return n, nil
			}
		}
		s, err := v.Value.Text(10)
		if err != nil {
			return nil, err
		}
		return s, nil
	case *MetadatumBytes:
		return "0x" + hex.EncodeToString(v.Value), nil
	case *MetadatumText:
		return v.Value, nil
	case *MetadatumList:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			jv, err := noSchemaValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = jv
		}
		return out, nil
	case *MetadatumMap:
		out := make(map[string]any, len(v.Entries))
		keys := make([]string, 0, len(v.Entries))
		for _, e := range v.Entries {
			key, ok := e.Key.(*MetadatumText)
			if !ok {
				return nil, cerr.New(cerr.KindInvalidMetadatumConversion, "no-schema json requires text map keys")
			}
			jv, err := noSchemaValue(e.Value)
			if err != nil {
				return nil, err
			}
			out[key.Value] = jv
			keys = append(keys, key.Value)
		}
		return orderedMap{keys: keys, values: out}, nil
	default:
		return nil, cerr.New(cerr.KindInvalidMetadatumConversion, "unsupported metadatum variant")
	}
}

// orderedMap preserves the original key insertion order through
// json.Marshal, since Go maps would otherwise re-sort keys.
type orderedMap struct {
	keys   []string
	values map[string]any
}

func (o orderedMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range o.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// cip116Node mirrors the CIP-116 tagged-JSON schema: every Metadatum
// renders as {"tag": ..., "value"|"contents": ...}.
type cip116Node struct {
	Tag      string       `json:"tag"`
	Value    *string      `json:"value,omitempty"`
	Contents []cip116Item `json:"contents,omitempty"`
}

type cip116Item struct {
	Key   *cip116Node `json:"key,omitempty"`
	Value *cip116Node `json:"value,omitempty"`
}

// ToCIP116JSON renders m using the CIP-116 detailed metadata schema,
// which is lossless for every Metadatum shape (unlike ToNoSchemaJSON).
func ToCIP116JSON(m Metadatum) ([]byte, error) {
	node, err := cip116Value(m)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(node, "", "  ")
}

func cip116Value(m Metadatum) (*cip116Node, error) {
	switch v := m.(type) {
	case *MetadatumInt:
		s, err := v.Value.Text(10)
		if err != nil {
			return nil, err
		}
		return &cip116Node{Tag: "int", Value: &s}, nil
	case *MetadatumBytes:
		s := hex.EncodeToString(v.Value)
		return &cip116Node{Tag: "bytes", Value: &s}, nil
	case *MetadatumText:
		s := v.Value
		return &cip116Node{Tag: "string", Value: &s}, nil
	case *MetadatumList:
		items := make([]cip116Item, len(v.Items))
		for i, it := range v.Items {
			n, err := cip116Value(it)
			if err != nil {
				return nil, err
			}
			items[i] = cip116Item{Value: n}
		}
		return &cip116Node{Tag: "list", Contents: items}, nil
	case *MetadatumMap:
		items := make([]cip116Item, len(v.Entries))
		for i, e := range v.Entries {
			k, err := cip116Value(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := cip116Value(e.Value)
			if err != nil {
				return nil, err
			}
			items[i] = cip116Item{Key: k, Value: val}
		}
		return &cip116Node{Tag: "map", Contents: items}, nil
	default:
		return nil, cerr.New(cerr.KindInvalidMetadatumConversion, "unsupported metadatum variant")
	}
}

// MetadatumFromNoSchemaJSON parses the no-schema metadata JSON encoding
// back into a Metadatum tree. Object key order is preserved by walking
// json.Decoder tokens directly rather than decoding into a Go map,
// since plain map[string]any would lose it.
func MetadatumFromNoSchemaJSON(b []byte) (Metadatum, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	m, err := decodeJSONToken(dec)
	if err != nil {
		return nil, cerr.Wrap(cerr.KindInvalidJSON, err, "invalid metadatum json")
	}
	return m, nil
}

func decodeJSONToken(dec *json.Decoder) (Metadatum, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var entries []MetadatumMapEntry
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				keyStr, ok := keyTok.(string)
				if !ok {
					return nil, cerr.New(cerr.KindInvalidJSON, "non-string object key")
				}
				key, err := NewMetadatumText(keyStr)
				if err != nil {
					return nil, err
				}
				val, err := decodeJSONToken(dec)
				if err != nil {
					return nil, err
				}
				entries = append(entries, MetadatumMapEntry{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return NewMetadatumMap(entries...), nil
		case '[':
			var items []Metadatum
			for dec.More() {
				item, err := decodeJSONToken(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return NewMetadatumList(items...), nil
		}
	case string:
		return NewMetadatumText(t)
	case json.Number:
		i, err := bigint.NewFromString(t.String(), 10)
		if err != nil {
			return nil, cerr.Wrap(cerr.KindInvalidJSON, err, "invalid metadatum integer %q", t.String())
		}
		return NewMetadatumInt(i), nil
	case bool:
		return nil, cerr.New(cerr.KindInvalidJSON, "booleans are not valid metadatum json")
	case nil:
		return nil, cerr.New(cerr.KindInvalidJSON, "null is not a valid metadatum json value")
	}
	return nil, cerr.New(cerr.KindInvalidJSON, "unsupported json token")
}
