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
	"bytes"
	"sort"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// AssetNameMaxLen is the maximum length, in bytes, of a native-asset name.
const AssetNameMaxLen = 32

// AssetName is a native-asset name, at most AssetNameMaxLen bytes.
type AssetName []byte

// NewAssetName validates and wraps a native-asset name.
func NewAssetName(b []byte) (AssetName, error) {
	if len(b) > AssetNameMaxLen {
		return nil, cerr.New(
			cerr.KindInvalidArgument,
			"asset name exceeds %d bytes (got %d)",
			AssetNameMaxLen,
			len(b),
		)
	}
	return AssetName(append([]byte(nil), b...)), nil
}

// AssetID flattens a (policy-id, asset-name) pair into a single map key.
// The reserved zero pair — empty policy, empty asset name — represents
// lovelace in the asset-id view returned by Value.AssetMap.
type AssetID struct {
	PolicyID  hash.Blake2b224
	AssetName string
}

// MultiAsset is a two-level mapping from policy-id to asset-name to a
// signed quantity. Entries with a zero quantity are never materialized;
// setting a quantity to zero removes the entry.
type MultiAsset struct {
	// PreferTag258 is copied when the MultiAsset is cloned, but
	// DecodeMultiAsset does not set it and ToCBOR does not read it;
	// MultiAsset itself is always encoded as a map.
	PreferTag258 bool

	policies map[hash.Blake2b224]map[string]*bigint.Int
}

// NewMultiAsset returns an empty MultiAsset.
func NewMultiAsset() *MultiAsset {
	return &MultiAsset{policies: make(map[hash.Blake2b224]map[string]*bigint.Int)}
}

// Set stores qty under (policy, name), removing the entry if qty is zero.
func (m *MultiAsset) Set(policy hash.Blake2b224, name AssetName, qty *bigint.Int) {
	key := string(name)
	if qty.IsZero() {
		if assets, ok := m.policies[policy]; ok {
			delete(assets, key)
			if len(assets) == 0 {
				delete(m.policies, policy)
			}
		}
		return
	}
	if m.policies == nil {
		m.policies = make(map[hash.Blake2b224]map[string]*bigint.Int)
	}
	if _, ok := m.policies[policy]; !ok {
		m.policies[policy] = make(map[string]*bigint.Int)
	}
	m.policies[policy][key] = qty.Clone()
}

// Get returns the quantity stored under (policy, name), or zero if absent.
func (m *MultiAsset) Get(policy hash.Blake2b224, name AssetName) *bigint.Int {
	if assets, ok := m.policies[policy]; ok {
		if q, ok := assets[string(name)]; ok {
			return q.Clone()
		}
	}
	return bigint.New()
}

// IsEmpty reports whether the multi-asset map has no entries.
func (m *MultiAsset) IsEmpty() bool {
	return m == nil || len(m.policies) == 0
}

// sortedPolicies returns policy ids in canonical (bytewise lexicographic)
// order, the CBOR canonical map-key ordering rule this module applies
// when encoding a value that was not decoded (and so has no byte cache).
func (m *MultiAsset) sortedPolicies() []hash.Blake2b224 {
	out := make([]hash.Blake2b224, 0, len(m.policies))
	for p := range m.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

func sortedAssetNames(assets map[string]*bigint.Int) []string {
	out := make([]string, 0, len(assets))
	for n := range assets {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// ToCBOR encodes the multi-asset map as a definite-length CBOR map of
// policy-id to (definite-length map of asset-name to signed quantity).
func (m *MultiAsset) ToCBOR(w *cbor.Writer) {
	policies := m.sortedPolicies()
	w.WriteStartMap(uint64(len(policies)), false)
	for _, p := range policies {
		w.WriteByteString(p.Bytes())
		names := sortedAssetNames(m.policies[p])
		w.WriteStartMap(uint64(len(names)), false)
		for _, n := range names {
			w.WriteByteString([]byte(n))
			w.WriteBigInt(m.policies[p][n])
		}
		_ = w.WriteEndMap()
	}
	_ = w.WriteEndMap()
}

// DecodeMultiAsset decodes a policy-id -> asset-name -> quantity CBOR map.
func DecodeMultiAsset(r *cbor.Reader) (*MultiAsset, error) {
	if _, _, err := r.ReadStartMap(); err != nil {
		return nil, err
	}
	m := NewMultiAsset()
	for r.PeekState() != cbor.EndMap {
		policyBytes, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		policy, err := hash.Blake2b224FromBytes(policyBytes)
		if err != nil {
			return nil, err
		}
		if _, _, err := r.ReadStartMap(); err != nil {
			return nil, err
		}
		for r.PeekState() != cbor.EndMap {
			nameBytes, err := r.ReadByteString()
			if err != nil {
				return nil, err
			}
			name, err := NewAssetName(nameBytes)
			if err != nil {
				return nil, err
			}
			qty, err := r.ReadBigInt()
			if err != nil {
				return nil, err
			}
			m.Set(policy, name, qty)
		}
		if err := r.ReadEndMap(); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return m, nil
}

// Equal reports structural equality between two multi-asset maps.
func (m *MultiAsset) Equal(other *MultiAsset) bool {
	if m.IsEmpty() && other.IsEmpty() {
		return true
	}
	if m.IsEmpty() != other.IsEmpty() {
		return false
	}
	if len(m.policies) != len(other.policies) {
		return false
	}
	for p, assets := range m.policies {
		oassets, ok := other.policies[p]
		if !ok || len(assets) != len(oassets) {
			return false
		}
		for n, q := range assets {
			oq, ok := oassets[n]
			if !ok || q.Cmp(oq) != 0 {
				return false
			}
		}
	}
	return true
}

// clone returns a deep copy.
func (m *MultiAsset) clone() *MultiAsset {
	out := NewMultiAsset()
	out.PreferTag258 = m.PreferTag258
	for p, assets := range m.policies {
		for n, q := range assets {
			name := AssetName(n)
			out.Set(p, name, q)
		}
	}
	return out
}

// Value is a (coin, multi-asset) pair: the lovelace quantity plus any
// native assets. A nil *MultiAsset is equivalent to an empty one.
type Value struct {
	Coin   uint64
	Assets *MultiAsset
}

// NewValue returns a coin-only Value.
func NewValue(coin uint64) Value {
	return Value{Coin: coin}
}

// NewValueWithAssets returns a Value carrying native assets alongside coin.
func NewValueWithAssets(coin uint64, assets *MultiAsset) Value {
	return Value{Coin: coin, Assets: assets}
}

// AssetMap flattens the value into an asset-id -> quantity view, with the
// zero AssetID (empty policy, empty name) reserved for lovelace.
func (v Value) AssetMap() map[AssetID]*bigint.Int {
	out := make(map[AssetID]*bigint.Int)
	out[AssetID{}] = bigint.NewFromU64(v.Coin)
	if v.Assets.IsEmpty() {
		return out
	}
	for p, assets := range v.Assets.policies {
		for n, q := range assets {
			out[AssetID{PolicyID: p, AssetName: n}] = q.Clone()
		}
	}
	return out
}

// Add writes the component-wise sum of a and b into v.
func (v *Value) Add(a, b Value) {
	v.Coin = a.Coin + b.Coin
	merged := NewMultiAsset()
	for id, qty := range a.AssetMap() {
		if id == (AssetID{}) {
			continue
		}
		merged.Set(id.PolicyID, AssetName(id.AssetName), qty)
	}
	for id, qty := range b.AssetMap() {
		if id == (AssetID{}) {
			continue
		}
		sum := bigint.New()
		sum.Add(merged.Get(id.PolicyID, AssetName(id.AssetName)), qty)
		merged.Set(id.PolicyID, AssetName(id.AssetName), sum)
	}
	if merged.IsEmpty() {
		v.Assets = nil
	} else {
		v.Assets = merged
	}
}

// Sub writes the component-wise difference a-b into v. Resulting asset
// quantities may be negative; interpreting a negative quantity as a
// deficit or a burn is the caller's responsibility (spec §3, Value).
// Coin is unsigned: when b.Coin exceeds a.Coin the result's Coin is 0.
func (v *Value) Sub(a, b Value) {
	neg := NewMultiAsset()
	if !b.Assets.IsEmpty() {
		for p, assets := range b.Assets.policies {
			for n, q := range assets {
				negQ := bigint.New()
				negQ.Neg(q)
				neg.Set(p, AssetName(n), negQ)
			}
		}
	}
	negCoin := Value{Assets: neg}
	// a.Coin - b.Coin is computed directly on uint64 and clamped at 0
	// when b.Coin is larger; assets go through Add with the negated
	// operand.
	sum := Value{}
	sum.Add(Value{Assets: a.Assets}, negCoin)
	v.Assets = sum.Assets
	if b.Coin > a.Coin {
		v.Coin = 0
	} else {
		v.Coin = a.Coin - b.Coin
	}
}

// GTE reports whether v is component-wise greater-than-or-equal to
// target: its coin is no smaller, and for every asset present in target
// v carries at least that quantity. Assets present only in v do not
// affect the comparison.
func (v Value) GTE(target Value) bool {
	if v.Coin < target.Coin {
		return false
	}
	if target.Assets.IsEmpty() {
		return true
	}
	for p, assets := range target.Assets.policies {
		for n, q := range assets {
			have := v.Assets.Get(p, AssetName(n))
			if have.Cmp(q) < 0 {
				return false
			}
		}
	}
	return true
}

// IsZero reports whether v carries zero lovelace and no native assets.
func (v Value) IsZero() bool {
	return v.Coin == 0 && v.Assets.IsEmpty()
}

// ToCBOR encodes v per the standard ledger value CDDL: a bare coin
// integer when there are no native assets, otherwise [coin, multiasset].
func (v Value) ToCBOR(w *cbor.Writer) {
	if v.Assets.IsEmpty() {
		w.WriteUint(v.Coin)
		return
	}
	w.WriteStartArray(2, false)
	w.WriteUint(v.Coin)
	v.Assets.ToCBOR(w)
	_ = w.WriteEndArray()
}

// DecodeValue decodes either CBOR shape value may take.
func DecodeValue(r *cbor.Reader) (Value, error) {
	switch r.PeekState() {
	case cbor.UnsignedInteger:
		coin, err := r.ReadUint()
		if err != nil {
			return Value{}, err
		}
		return NewValue(coin), nil
	case cbor.StartArray:
		if _, _, err := r.ReadStartArray(); err != nil {
			return Value{}, err
		}
		coin, err := r.ReadUint()
		if err != nil {
			return Value{}, err
		}
		assets, err := DecodeMultiAsset(r)
		if err != nil {
			return Value{}, err
		}
		if err := r.ReadEndArray(); err != nil {
			return Value{}, err
		}
		return NewValueWithAssets(coin, assets), nil
	default:
		return Value{}, cerr.New(cerr.KindUnexpectedCborType, "expected value: uint or [coin, multiasset]")
	}
}
