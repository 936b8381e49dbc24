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
	"encoding/json"

	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// nativeScriptJSON mirrors the wire shape spec.md §4.C.3 defines:
// {"type": "sig"|"all"|"any"|"atLeast"|"before"|"after", ...}.
type nativeScriptJSON struct {
	Type     string              `json:"type"`
	KeyHash  string              `json:"keyHash,omitempty"`
	Scripts  []nativeScriptJSON  `json:"scripts,omitempty"`
	Required *uint32             `json:"required,omitempty"`
	Slot     *uint64             `json:"slot,omitempty"`
}

// NativeScriptFromJSON parses the {"type": ...} script JSON shape.
func NativeScriptFromJSON(b []byte) (NativeScript, error) {
	var node nativeScriptJSON
	if err := json.Unmarshal(b, &node); err != nil {
		return nil, cerr.Wrap(cerr.KindInvalidJSON, err, "invalid native script json")
	}
	return nativeScriptFromNode(node)
}

func nativeScriptFromNode(node nativeScriptJSON) (NativeScript, error) {
	switch node.Type {
	case "sig":
		kh, err := hash.Blake2b224FromHex(node.KeyHash)
		if err != nil {
			return nil, cerr.Wrap(cerr.KindInvalidJSON, err, "invalid keyHash")
		}
		return NewNativeScriptPubkey(kh), nil
	case "all":
		scripts, err := nativeScriptsFromNodes(node.Scripts)
		if err != nil {
			return nil, err
		}
		return NewNativeScriptAll(scripts...), nil
	case "any":
		scripts, err := nativeScriptsFromNodes(node.Scripts)
		if err != nil {
			return nil, err
		}
		return NewNativeScriptAny(scripts...), nil
	case "atLeast":
		if node.Required == nil {
			return nil, cerr.New(cerr.KindInvalidJSON, "atLeast script missing required")
		}
		scripts, err := nativeScriptsFromNodes(node.Scripts)
		if err != nil {
			return nil, err
		}
		return NewNativeScriptNofK(*node.Required, scripts...), nil
	case "before":
		if node.Slot == nil {
			return nil, cerr.New(cerr.KindInvalidJSON, "before script missing slot")
		}
		return NewNativeScriptInvalidBefore(*node.Slot), nil
	case "after":
		if node.Slot == nil {
			return nil, cerr.New(cerr.KindInvalidJSON, "after script missing slot")
		}
		return NewNativeScriptInvalidAfter(*node.Slot), nil
	default:
		return nil, cerr.New(cerr.KindInvalidNativeScriptType, "unknown native script type %q", node.Type)
	}
}

func nativeScriptsFromNodes(nodes []nativeScriptJSON) ([]NativeScript, error) {
	out := make([]NativeScript, len(nodes))
	for i, n := range nodes {
		s, err := nativeScriptFromNode(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// NativeScriptToJSON renders s using the {"type": ...} script JSON shape.
func NativeScriptToJSON(s NativeScript) ([]byte, error) {
	node, err := nativeScriptToNode(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

func nativeScriptToNode(s NativeScript) (nativeScriptJSON, error) {
	switch v := s.(type) {
	case *NativeScriptPubkey:
		return nativeScriptJSON{Type: "sig", KeyHash: v.KeyHash.String()}, nil
	case *NativeScriptAll:
		scripts, err := nativeScriptNodesFrom(v.Scripts)
		if err != nil {
			return nativeScriptJSON{}, err
		}
		return nativeScriptJSON{Type: "all", Scripts: scripts}, nil
	case *NativeScriptAny:
		scripts, err := nativeScriptNodesFrom(v.Scripts)
		if err != nil {
			return nativeScriptJSON{}, err
		}
		return nativeScriptJSON{Type: "any", Scripts: scripts}, nil
	case *NativeScriptNofK:
		scripts, err := nativeScriptNodesFrom(v.Scripts)
		if err != nil {
			return nativeScriptJSON{}, err
		}
		req := v.Required
		return nativeScriptJSON{Type: "atLeast", Required: &req, Scripts: scripts}, nil
	case *NativeScriptInvalidBefore:
		slot := v.Slot
		return nativeScriptJSON{Type: "before", Slot: &slot}, nil
	case *NativeScriptInvalidAfter:
		slot := v.Slot
		return nativeScriptJSON{Type: "after", Slot: &slot}, nil
	default:
		return nativeScriptJSON{}, cerr.New(cerr.KindInvalidNativeScriptType, "unsupported native script variant")
	}
}

func nativeScriptNodesFrom(scripts []NativeScript) ([]nativeScriptJSON, error) {
	out := make([]nativeScriptJSON, len(scripts))
	for i, s := range scripts {
		n, err := nativeScriptToNode(s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
