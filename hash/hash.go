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

// Package hash provides the two fixed-size Blake2b digests the ledger
// uses as content-addressed identifiers: Blake2b-224 for script and
// credential hashes, Blake2b-256 for transaction and auxiliary-data
// hashes (RFC 7693), mirroring the fixed-array Blake2b224/Blake2b256
// types the teacher's ledger package works with throughout.
package hash

import (
	"encoding/hex"

	"github.com/blinklabs-io/cardano-core/internal/cerr"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b224Size = 28
	Blake2b256Size = 32
)

// Blake2b224 is a 28-byte Blake2b digest.
type Blake2b224 [Blake2b224Size]byte

// Blake2b256 is a 32-byte Blake2b digest.
type Blake2b256 [Blake2b256Size]byte

// NewBlake2b224 computes the Blake2b-224 digest of data.
func NewBlake2b224(data []byte) Blake2b224 {
	h, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		// blake2b.New only fails for an invalid key or out-of-range
		// size; Blake2b224Size is a compile-time constant within range.
		panic(err)
	}
	h.Write(data)
	var out Blake2b224
	copy(out[:], h.Sum(nil))
	return out
}

// NewBlake2b256 computes the Blake2b-256 digest of data.
func NewBlake2b256(data []byte) Blake2b256 {
	sum := blake2b.Sum256(data)
	return Blake2b256(sum)
}

// Bytes returns the digest as a byte slice.
func (h Blake2b224) Bytes() []byte { return h[:] }

// Bytes returns the digest as a byte slice.
func (h Blake2b256) Bytes() []byte { return h[:] }

// String returns the digest as lowercase hex.
func (h Blake2b224) String() string { return hex.EncodeToString(h[:]) }

// String returns the digest as lowercase hex.
func (h Blake2b256) String() string { return hex.EncodeToString(h[:]) }

// IsZero reports whether the digest is all-zero (the unset sentinel).
func (h Blake2b224) IsZero() bool { return h == Blake2b224{} }

// IsZero reports whether the digest is all-zero (the unset sentinel).
func (h Blake2b256) IsZero() bool { return h == Blake2b256{} }

// Blake2b224FromBytes validates and wraps a 28-byte slice.
func Blake2b224FromBytes(b []byte) (Blake2b224, error) {
	var out Blake2b224
	if len(b) != Blake2b224Size {
		return out, cerr.New(cerr.KindInvalidArgument, "expected %d bytes, got %d", Blake2b224Size, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Blake2b256FromBytes validates and wraps a 32-byte slice.
func Blake2b256FromBytes(b []byte) (Blake2b256, error) {
	var out Blake2b256
	if len(b) != Blake2b256Size {
		return out, cerr.New(cerr.KindInvalidArgument, "expected %d bytes, got %d", Blake2b256Size, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Blake2b224FromHex parses a 56-character hex string into a Blake2b224.
func Blake2b224FromHex(s string) (Blake2b224, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Blake2b224{}, cerr.Wrap(cerr.KindConversionFailed, err, "invalid hex %q", s)
	}
	return Blake2b224FromBytes(b)
}

// Blake2b256FromHex parses a 64-character hex string into a Blake2b256.
func Blake2b256FromHex(s string) (Blake2b256, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Blake2b256{}, cerr.Wrap(cerr.KindConversionFailed, err, "invalid hex %q", s)
	}
	return Blake2b256FromBytes(b)
}
