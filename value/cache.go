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

// Package value implements the recursive, self-describing value models
// transactions carry as data rather than control structure: transaction
// metadata (Metadatum), Plutus script data (PlutusData) and native
// multi-signature scripts (NativeScript). All three mirror the
// teacher's lcommon.TransactionMetadatum/Datum/NativeScript sum types,
// decoded through this module's own cbor package instead of
// gouroboros's, and each retains the exact bytes it was decoded from so
// re-encoding an untouched value reproduces its original wire
// representation bit for bit (needed for hash stability).
package value

// originalBytes caches the exact CBOR span a value was decoded from.
// Embed it in every variant struct; ToCBOR replays the cache when
// present instead of re-deriving a (possibly non-canonical) encoding,
// and any constructor or mutator that changes a value's content must
// clear it first.
type originalBytes struct {
	raw []byte
}

func (o *originalBytes) setCache(b []byte) {
	cp := make([]byte, len(b))
	copy(cp, b)
	o.raw = cp
}

func (o *originalBytes) clearCache() {
	o.raw = nil
}

func (o *originalBytes) cached() ([]byte, bool) {
	return o.raw, o.raw != nil
}
