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

import "encoding/hex"

// Address is an opaque output address: the raw bytes of whatever address
// format the caller supplies. Bech32/Byron-base58 parsing and validation
// are an external collaborator's job, not this library's (spec §1 places
// "address parsing" out of scope) — the transaction model only needs to
// carry the bytes through CBOR encode/decode untouched.
type Address []byte

// NewAddress wraps raw address bytes. An empty address is permitted at
// construction time; TransactionOutputBuilder.Build rejects it.
func NewAddress(raw []byte) Address {
	return Address(append([]byte(nil), raw...))
}

// Bytes returns the address's raw bytes.
func (a Address) Bytes() []byte {
	return []byte(a)
}

// String renders the address as lowercase hex, since this module does
// not know the address's bech32 human-readable part.
func (a Address) String() string {
	return hex.EncodeToString(a)
}

// Equal reports whether two addresses carry the same bytes.
func (a Address) Equal(other Address) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}
