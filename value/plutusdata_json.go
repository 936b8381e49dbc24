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
	"encoding/hex"
	"encoding/json"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// plutusDataJSON mirrors the standard cardano-cli Plutus-data JSON
// schema: {"constructor":n,"fields":[...]} | {"map":[{"k":...,"v":...}]}
// | {"list":[...]} | {"int":n} | {"bytes":"hex"}.
type plutusDataJSON struct {
	Constructor *uint64               `json:"constructor,omitempty"`
	Fields      []plutusDataJSON       `json:"fields,omitempty"`
	Map         []plutusDataMapEntryJSON `json:"map,omitempty"`
	List        []plutusDataJSON       `json:"list,omitempty"`
	Int         *string                `json:"int,omitempty"`
	Bytes       *string                `json:"bytes,omitempty"`
}

type plutusDataMapEntryJSON struct {
	K plutusDataJSON `json:"k"`
	V plutusDataJSON `json:"v"`
}

// PlutusDataToJSON renders p using the standard cardano-cli-compatible
// Plutus-data JSON schema. Integers are emitted as JSON strings to
// avoid precision loss outside the float64-safe range.
func PlutusDataToJSON(p PlutusData) ([]byte, error) {
	node, err := plutusDataToNode(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

func plutusDataToNode(p PlutusData) (plutusDataJSON, error) {
	switch v := p.(type) {
	case *PlutusConstr:
		fields := make([]plutusDataJSON, len(v.Fields))
		for i, f := range v.Fields {
			n, err := plutusDataToNode(f)
			if err != nil {
				return plutusDataJSON{}, err
			}
			fields[i] = n
		}
		alt := v.Alternative
		return plutusDataJSON{Constructor: &alt, Fields: fields}, nil
	case *PlutusMap:
		entries := make([]plutusDataMapEntryJSON, len(v.Entries))
		for i, e := range v.Entries {
			k, err := plutusDataToNode(e.Key)
			if err != nil {
				return plutusDataJSON{}, err
			}
			val, err := plutusDataToNode(e.Value)
			if err != nil {
				return plutusDataJSON{}, err
			}
			entries[i] = plutusDataMapEntryJSON{K: k, V: val}
		}
		return plutusDataJSON{Map: entries}, nil
	case *PlutusList:
		items := make([]plutusDataJSON, len(v.Items))
		for i, it := range v.Items {
			n, err := plutusDataToNode(it)
			if err != nil {
				return plutusDataJSON{}, err
			}
			items[i] = n
		}
		return plutusDataJSON{List: items}, nil
	case *PlutusInt:
		s, err := v.Value.Text(10)
		if err != nil {
			return plutusDataJSON{}, err
		}
		return plutusDataJSON{Int: &s}, nil
	case *PlutusBytes:
		s := hex.EncodeToString(v.Value)
		return plutusDataJSON{Bytes: &s}, nil
	default:
		return plutusDataJSON{}, cerr.New(cerr.KindInvalidPlutusDataConversion, "unsupported plutus data variant")
	}
}

// PlutusDataFromJSON parses the standard cardano-cli-compatible
// Plutus-data JSON schema back into a PlutusData tree.
func PlutusDataFromJSON(b []byte) (PlutusData, error) {
	var node plutusDataJSON
	if err := json.Unmarshal(b, &node); err != nil {
		return nil, cerr.Wrap(cerr.KindInvalidJSON, err, "invalid plutus data json")
	}
	return plutusDataFromNode(node)
}

func plutusDataFromNode(node plutusDataJSON) (PlutusData, error) {
	switch {
	case node.Constructor != nil:
		fields := make([]PlutusData, len(node.Fields))
		for i, f := range node.Fields {
			v, err := plutusDataFromNode(f)
			if err != nil {
				return nil, err
			}
			fields[i] = v
		}
		return NewPlutusConstr(*node.Constructor, fields...), nil
	case node.Map != nil:
		entries := make([]PlutusMapEntry, len(node.Map))
		for i, e := range node.Map {
			k, err := plutusDataFromNode(e.K)
			if err != nil {
				return nil, err
			}
			v, err := plutusDataFromNode(e.V)
			if err != nil {
				return nil, err
			}
			entries[i] = PlutusMapEntry{Key: k, Value: v}
		}
		return NewPlutusMap(entries...), nil
	case node.List != nil:
		items := make([]PlutusData, len(node.List))
		for i, it := range node.List {
			v, err := plutusDataFromNode(it)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return NewPlutusList(items...), nil
	case node.Int != nil:
		i, err := bigint.NewFromString(*node.Int, 10)
		if err != nil {
			return nil, cerr.Wrap(cerr.KindInvalidJSON, err, "invalid plutus data integer %q", *node.Int)
		}
		return NewPlutusInt(i), nil
	case node.Bytes != nil:
		b, err := hex.DecodeString(*node.Bytes)
		if err != nil {
			return nil, cerr.Wrap(cerr.KindInvalidJSON, err, "invalid plutus data bytes %q", *node.Bytes)
		}
		return NewPlutusBytes(b), nil
	default:
		return nil, cerr.New(cerr.KindInvalidJSON, "plutus data json: no recognised field")
	}
}
