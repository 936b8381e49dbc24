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
	"github.com/blinklabs-io/cardano-core/cbor"
	"github.com/blinklabs-io/cardano-core/hash"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// NativeScript is Cardano's non-Plutus scripting language: boolean
// combinators (All/Any/NofK) over signature (Pubkey) and time-lock
// (InvalidBefore/InvalidAfter) predicates.
type NativeScript interface {
	isNativeScript()
	ToCBOR(w *cbor.Writer)
	Equal(other NativeScript) bool
}

// nativeScriptDiscriminator values, per spec.md §4.C.2.
const (
	discriminatorPubkey        = 0
	discriminatorAll           = 1
	discriminatorAny           = 2
	discriminatorNofK          = 3
	discriminatorInvalidBefore = 4
	discriminatorInvalidAfter  = 5
)

// NativeScriptPubkey requires a signature from the given key hash.
type NativeScriptPubkey struct {
	originalBytes
	KeyHash hash.Blake2b224
}

// NativeScriptAll requires every sub-script to be satisfied.
type NativeScriptAll struct {
	originalBytes
	Scripts []NativeScript
}

// NativeScriptAny requires at least one sub-script to be satisfied.
type NativeScriptAny struct {
	originalBytes
	Scripts []NativeScript
}

// NativeScriptNofK requires at least Required of the sub-scripts to be
// satisfied.
type NativeScriptNofK struct {
	originalBytes
	Required uint32
	Scripts  []NativeScript
}

// NativeScriptInvalidBefore is satisfied only at or after Slot.
type NativeScriptInvalidBefore struct {
	originalBytes
	Slot uint64
}

// NativeScriptInvalidAfter is satisfied only strictly before Slot.
type NativeScriptInvalidAfter struct {
	originalBytes
	Slot uint64
}

func (*NativeScriptPubkey) isNativeScript()        {}
func (*NativeScriptAll) isNativeScript()           {}
func (*NativeScriptAny) isNativeScript()           {}
func (*NativeScriptNofK) isNativeScript()          {}
func (*NativeScriptInvalidBefore) isNativeScript() {}
func (*NativeScriptInvalidAfter) isNativeScript()  {}

// NewNativeScriptPubkey builds a Pubkey script.
func NewNativeScriptPubkey(keyHash hash.Blake2b224) *NativeScriptPubkey {
	return &NativeScriptPubkey{KeyHash: keyHash}
}

// NewNativeScriptAll builds an All script.
func NewNativeScriptAll(scripts ...NativeScript) *NativeScriptAll {
	return &NativeScriptAll{Scripts: scripts}
}

// NewNativeScriptAny builds an Any script.
func NewNativeScriptAny(scripts ...NativeScript) *NativeScriptAny {
	return &NativeScriptAny{Scripts: scripts}
}

// NewNativeScriptNofK builds an NofK script.
func NewNativeScriptNofK(required uint32, scripts ...NativeScript) *NativeScriptNofK {
	return &NativeScriptNofK{Required: required, Scripts: scripts}
}

// NewNativeScriptInvalidBefore builds an InvalidBefore time-lock script.
func NewNativeScriptInvalidBefore(slot uint64) *NativeScriptInvalidBefore {
	return &NativeScriptInvalidBefore{Slot: slot}
}

// NewNativeScriptInvalidAfter builds an InvalidAfter time-lock script.
func NewNativeScriptInvalidAfter(slot uint64) *NativeScriptInvalidAfter {
	return &NativeScriptInvalidAfter{Slot: slot}
}

// ToCBOR writes [0, keyHash], replaying cached original bytes if present.
func (s *NativeScriptPubkey) ToCBOR(w *cbor.Writer) {
	if raw, ok := s.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(2, false)
	w.WriteUint(discriminatorPubkey)
	w.WriteByteString(s.KeyHash.Bytes())
	_ = w.WriteEndArray()
}

// ToCBOR writes [1, [scripts...]], replaying cached original bytes if present.
func (s *NativeScriptAll) ToCBOR(w *cbor.Writer) {
	if raw, ok := s.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(2, false)
	w.WriteUint(discriminatorAll)
	writeScriptArray(w, s.Scripts)
	_ = w.WriteEndArray()
}

// ToCBOR writes [2, [scripts...]], replaying cached original bytes if present.
func (s *NativeScriptAny) ToCBOR(w *cbor.Writer) {
	if raw, ok := s.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(2, false)
	w.WriteUint(discriminatorAny)
	writeScriptArray(w, s.Scripts)
	_ = w.WriteEndArray()
}

// ToCBOR writes [3, required, [scripts...]], replaying cached original
// bytes if present.
func (s *NativeScriptNofK) ToCBOR(w *cbor.Writer) {
	if raw, ok := s.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(3, false)
	w.WriteUint(discriminatorNofK)
	w.WriteUint(uint64(s.Required))
	writeScriptArray(w, s.Scripts)
	_ = w.WriteEndArray()
}

// ToCBOR writes [4, slot], replaying cached original bytes if present.
func (s *NativeScriptInvalidBefore) ToCBOR(w *cbor.Writer) {
	if raw, ok := s.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(2, false)
	w.WriteUint(discriminatorInvalidBefore)
	w.WriteUint(s.Slot)
	_ = w.WriteEndArray()
}

// ToCBOR writes [5, slot], replaying cached original bytes if present.
func (s *NativeScriptInvalidAfter) ToCBOR(w *cbor.Writer) {
	if raw, ok := s.cached(); ok {
		w.WriteRawBytes(raw)
		return
	}
	w.WriteStartArray(2, false)
	w.WriteUint(discriminatorInvalidAfter)
	w.WriteUint(s.Slot)
	_ = w.WriteEndArray()
}

func writeScriptArray(w *cbor.Writer, scripts []NativeScript) {
	w.WriteStartArray(uint64(len(scripts)), false)
	for _, s := range scripts {
		s.ToCBOR(w)
	}
	_ = w.WriteEndArray()
}

// Equal reports structural equality, ignoring cached bytes.
func (s *NativeScriptPubkey) Equal(other NativeScript) bool {
	o, ok := other.(*NativeScriptPubkey)
	return ok && s.KeyHash == o.KeyHash
}

// Equal reports structural equality, ignoring cached bytes.
func (s *NativeScriptAll) Equal(other NativeScript) bool {
	o, ok := other.(*NativeScriptAll)
	return ok && equalScriptSlices(s.Scripts, o.Scripts)
}

// Equal reports structural equality, ignoring cached bytes.
func (s *NativeScriptAny) Equal(other NativeScript) bool {
	o, ok := other.(*NativeScriptAny)
	return ok && equalScriptSlices(s.Scripts, o.Scripts)
}

// Equal reports structural equality, ignoring cached bytes.
func (s *NativeScriptNofK) Equal(other NativeScript) bool {
	o, ok := other.(*NativeScriptNofK)
	return ok && s.Required == o.Required && equalScriptSlices(s.Scripts, o.Scripts)
}

// Equal reports structural equality, ignoring cached bytes.
func (s *NativeScriptInvalidBefore) Equal(other NativeScript) bool {
	o, ok := other.(*NativeScriptInvalidBefore)
	return ok && s.Slot == o.Slot
}

// Equal reports structural equality, ignoring cached bytes.
func (s *NativeScriptInvalidAfter) Equal(other NativeScript) bool {
	o, ok := other.(*NativeScriptInvalidAfter)
	return ok && s.Slot == o.Slot
}

func equalScriptSlices(a, b []NativeScript) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ScriptHash computes the deterministic native-script hash, Blake2b-224
// over a single prefix byte 0x00 followed by the canonical CBOR
// encoding of the script (spec.md §4.C.4). The prefix distinguishes
// native scripts from Plutus v1/v2/v3, which use prefixes 0x01/0x02/0x03.
func ScriptHash(s NativeScript) hash.Blake2b224 {
	w := cbor.NewWriter()
	s.ToCBOR(w)
	payload := append([]byte{0x00}, w.Encode()...)
	return hash.NewBlake2b224(payload)
}

// DecodeNativeScript reads one NativeScript value, dispatching on its
// leading discriminator and caching the exact bytes consumed.
func DecodeNativeScript(r *cbor.Reader) (NativeScript, error) {
	raw, err := r.EncodedValue()
	if err != nil {
		return nil, err
	}
	length, _, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	if length < 2 {
		return nil, cerr.New(cerr.KindInvalidCborArraySize, "native script: array too short")
	}
	discriminator, err := r.ReadUint()
	if err != nil {
		return nil, err
	}
	var out NativeScript
	switch discriminator {
	case discriminatorPubkey:
		b, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		kh, err := hash.Blake2b224FromBytes(b)
		if err != nil {
			return nil, err
		}
		out = &NativeScriptPubkey{KeyHash: kh}
	case discriminatorAll:
		scripts, err := readScriptArray(r)
		if err != nil {
			return nil, err
		}
		out = &NativeScriptAll{Scripts: scripts}
	case discriminatorAny:
		scripts, err := readScriptArray(r)
		if err != nil {
			return nil, err
		}
		out = &NativeScriptAny{Scripts: scripts}
	case discriminatorNofK:
		required, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		scripts, err := readScriptArray(r)
		if err != nil {
			return nil, err
		}
		out = &NativeScriptNofK{Required: uint32(required), Scripts: scripts}
	case discriminatorInvalidBefore:
		slot, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		out = &NativeScriptInvalidBefore{Slot: slot}
	case discriminatorInvalidAfter:
		slot, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		out = &NativeScriptInvalidAfter{Slot: slot}
	default:
		return nil, cerr.New(cerr.KindInvalidNativeScriptType, "native script: unknown discriminator %d", discriminator)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	setNativeScriptCache(out, raw)
	return out, nil
}

func readScriptArray(r *cbor.Reader) ([]NativeScript, error) {
	if _, _, err := r.ReadStartArray(); err != nil {
		return nil, err
	}
	var scripts []NativeScript
	for r.PeekState() != cbor.EndArray {
		s, err := DecodeNativeScript(r)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return scripts, nil
}

func setNativeScriptCache(s NativeScript, raw []byte) {
	switch v := s.(type) {
	case *NativeScriptPubkey:
		v.setCache(raw)
	case *NativeScriptAll:
		v.setCache(raw)
	case *NativeScriptAny:
		v.setCache(raw)
	case *NativeScriptNofK:
		v.setCache(raw)
	case *NativeScriptInvalidBefore:
		v.setCache(raw)
	case *NativeScriptInvalidAfter:
		v.setCache(raw)
	}
}
