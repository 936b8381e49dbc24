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

// Package coinselection picks UTXOs to fund a transaction target value.
package coinselection

import (
	"bytes"
	"sort"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
	"github.com/blinklabs-io/cardano-core/ledger"
)

// sameUtxo reports whether a and b represent the same outpoint carrying
// the same value — the equality the reference implementation uses to
// keep pre-selected and available disjoint even when a caller passes in
// a UTXO that happens to appear, value-for-value, in both lists.
func sameUtxo(a, b ledger.Utxo) bool {
	if a.Input.TxID != b.Input.TxID || a.Input.Index != b.Input.Index {
		return false
	}
	if !bytes.Equal(a.Output.Address().Bytes(), b.Output.Address().Bytes()) {
		return false
	}
	av, bv := a.Output.Amount(), b.Output.Amount()
	if av.Coin != bv.Coin {
		return false
	}
	return av.Assets.Equal(bv.Assets)
}

// Selector picks UTXOs from available, on top of whatever is already
// pre-selected, to cover target. It returns the full selection (including
// pre-selected) and whatever was left over in available.
type Selector interface {
	Select(preSelected, available []ledger.Utxo, target ledger.Value) (selection, remaining []ledger.Utxo, err error)
}

// LargestFirst is a Selector that, for every asset the target requires
// (lovelace included), grows the selection by repeatedly taking the
// remaining UTXO holding the largest quantity of that asset until the
// requirement is met. Every UTXO is moved whole: picking one contributes
// all of its value at once, so unrelated assets it carries may overshoot.
type LargestFirst struct{}

// NewLargestFirst returns a LargestFirst coin selector.
func NewLargestFirst() *LargestFirst {
	return &LargestFirst{}
}

// amountOf returns the quantity of id carried by v, treating the zero
// AssetID as lovelace, matching ledger.Value.AssetMap's reserved key.
func amountOf(v ledger.Value, id ledger.AssetID) *bigint.Int {
	if id == (ledger.AssetID{}) {
		return bigint.NewFromU64(v.Coin)
	}
	if v.Assets.IsEmpty() {
		return bigint.New()
	}
	return v.Assets.Get(id.PolicyID, ledger.AssetName(id.AssetName))
}

// targetAssetOrder returns the asset ids target requires, lovelace
// first, the rest in canonical (policy-id, then asset-name) byte order
// so a given target always walks its assets in the same sequence.
func targetAssetOrder(target ledger.Value) []ledger.AssetID {
	m := target.AssetMap()
	ids := make([]ledger.AssetID, 0, len(m))
	for id := range m {
		if id == (ledger.AssetID{}) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if cmp := bytes.Compare(ids[i].PolicyID.Bytes(), ids[j].PolicyID.Bytes()); cmp != 0 {
			return cmp < 0
		}
		return ids[i].AssetName < ids[j].AssetName
	})
	return append([]ledger.AssetID{{}}, ids...)
}

// selectForAsset grows selection with entries taken from remaining,
// largest-amount-of-id first, until accumulated holds at least
// required of id. It mutates accumulated, selection and remaining in
// place and reports a balance-insufficient error if remaining runs dry
// first.
func selectForAsset(
	id ledger.AssetID,
	required *bigint.Int,
	accumulated *ledger.Value,
	selection, remaining *[]ledger.Utxo,
) error {
	if amountOf(*accumulated, id).Cmp(required) >= 0 {
		return nil
	}

	sort.SliceStable(*remaining, func(i, j int) bool {
		return amountOf((*remaining)[i].Output.Amount(), id).Cmp(amountOf((*remaining)[j].Output.Amount(), id)) > 0
	})

	for amountOf(*accumulated, id).Cmp(required) < 0 {
		if len(*remaining) == 0 {
			return cerr.New(
				cerr.KindBalanceInsufficient,
				"insufficient balance to cover asset %x/%q",
				id.PolicyID.Bytes(),
				id.AssetName,
			)
		}
		next := (*remaining)[0]
		*remaining = (*remaining)[1:]
		*selection = append(*selection, next)
		accumulated.Add(*accumulated, next.Output.Amount())
	}
	return nil
}

// Select implements Selector for LargestFirst, per the five-step
// algorithm: accept an already-satisfying pre-selection as-is, ensure at
// least one input exists for a zero-valued target, then grow the
// selection one asset at a time until every asset target requires is
// covered.
func (s *LargestFirst) Select(
	preSelected, available []ledger.Utxo,
	target ledger.Value,
) ([]ledger.Utxo, []ledger.Utxo, error) {
	selection := append([]ledger.Utxo(nil), preSelected...)
	remaining := append([]ledger.Utxo(nil), available...)

	// available is contractually disjoint from pre_selected, but a caller
	// that hands in the same outpoint+value in both lists must not see it
	// counted twice: drop it from remaining so it cannot also be picked
	// by the per-asset selection below.
	for _, p := range selection {
		for i, r := range remaining {
			if sameUtxo(p, r) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}

	accumulated := ledger.NewValue(0)
	for _, u := range selection {
		accumulated.Add(accumulated, u.Output.Amount())
	}

	if len(selection) > 0 && accumulated.GTE(target) {
		return selection, remaining, nil
	}

	if len(selection) == 0 && target.IsZero() {
		if err := selectForAsset(ledger.AssetID{}, bigint.NewFromU64(1), &accumulated, &selection, &remaining); err != nil {
			return nil, nil, err
		}
	}

	for _, id := range targetAssetOrder(target) {
		required := amountOf(target, id)
		if err := selectForAsset(id, required, &accumulated, &selection, &remaining); err != nil {
			return nil, nil, err
		}
	}

	return selection, remaining, nil
}
