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

package cbor

import (
	"math"
	"unicode/utf8"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// Reader decodes a single CBOR byte sequence, tracking a stack of open
// containers so EndArray/EndMap can be told apart from the break marker
// that closes an indefinite-length container.
type Reader struct {
	data    []byte
	off     int
	stack   []frame
	opts    Options
	lastErr string
}

// NewReader wraps data for decoding.
func NewReader(data []byte, opts ...Option) *Reader {
	return &Reader{data: data, opts: applyOptions(opts)}
}

// LastError returns the message of the most recent failed operation, or
// the empty string if none has failed yet.
func (r *Reader) LastError() string {
	return r.lastErr
}

func (r *Reader) fail(err *cerr.Error) *cerr.Error {
	msg := err.Error()
	if len(msg) > 1023 {
		msg = msg[:1023]
	}
	r.lastErr = msg
	return err
}

// BytesRead returns the number of bytes consumed so far.
func (r *Reader) BytesRead() int {
	return r.off
}

// RemainderBytes returns the unconsumed tail of the input.
func (r *Reader) RemainderBytes() []byte {
	return r.data[r.off:]
}

// Bookmark captures the current decode position (offset and open
// container stack) so it can be restored later.
type Bookmark struct {
	off   int
	stack []frame
}

// Bookmark snapshots the reader's position.
func (r *Reader) Bookmark() Bookmark {
	stack := make([]frame, len(r.stack))
	copy(stack, r.stack)
	return Bookmark{off: r.off, stack: stack}
}

// Restore rewinds the reader to a previously captured Bookmark.
func (r *Reader) Restore(b Bookmark) {
	r.off = b.off
	r.stack = make([]frame, len(b.stack))
	copy(r.stack, b.stack)
}

func (r *Reader) top() *frame {
	if len(r.stack) == 0 {
		return nil
	}
	return &r.stack[len(r.stack)-1]
}

// afterItem accounts for one complete data item having been consumed
// at the current nesting level (a container closing via EndArray/EndMap
// counts as a single item against its own parent).
func (r *Reader) afterItem() {
	f := r.top()
	if f == nil || f.indefinite {
		return
	}
	if f.remaining > 0 {
		f.remaining--
	}
}

// PeekState inspects the next data item without consuming it.
func (r *Reader) PeekState() State {
	if f := r.top(); f != nil && !f.indefinite && f.remaining == 0 {
		if f.kind == frameMap {
			return EndMap
		}
		return EndArray
	}
	if r.off >= len(r.data) {
		if len(r.stack) == 0 {
			return Finished
		}
		return Undefined
	}
	b := r.data[r.off]
	major := b >> 5
	add := b & 0x1f

	if major == 7 && add == 31 {
		if f := r.top(); f != nil {
			switch f.kind {
			case frameMap:
				return EndMap
			case frameArray:
				return EndArray
			}
		}
		return Undefined
	}

	switch major {
	case 0:
		return UnsignedInteger
	case 1:
		return NegativeInteger
	case 2:
		if add == 31 {
			return StartIndefiniteByteString
		}
		return ByteString
	case 3:
		if add == 31 {
			return StartIndefiniteTextString
		}
		return TextString
	case 4:
		return StartArray
	case 5:
		return StartMap
	case 6:
		return Tag
	case 7:
		switch add {
		case 20, 21:
			return Boolean
		case 22:
			return Null
		case 23:
			return Undefined
		case 24:
			return SimpleValue
		case 25:
			return HalfPrecisionFloat
		case 26:
			return SinglePrecisionFloat
		case 27:
			return DoublePrecisionFloat
		default:
			return SimpleValue
		}
	}
	return Undefined
}

// readHeaderValue decodes the trailing length/value bytes of a major-type
// header whose additional-info nibble is add, starting right after the
// header byte at off. Returns the decoded value and the offset past it.
func (r *Reader) readHeaderValue(off int, add byte) (uint64, int, *cerr.Error) {
	switch {
	case add < 24:
		return uint64(add), off, nil
	case add == 24:
		if off+1 > len(r.data) {
			return 0, 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer reading 1-byte length")
		}
		v := uint64(r.data[off])
		if !r.opts.LenientIntegers && v < 24 {
			return 0, 0, cerr.New(cerr.KindDecoding, "non-minimal integer encoding")
		}
		return v, off + 1, nil
	case add == 25:
		if off+2 > len(r.data) {
			return 0, 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer reading 2-byte length")
		}
		v := uint64(r.data[off])<<8 | uint64(r.data[off+1])
		if !r.opts.LenientIntegers && v < 256 {
			return 0, 0, cerr.New(cerr.KindDecoding, "non-minimal integer encoding")
		}
		return v, off + 2, nil
	case add == 26:
		if off+4 > len(r.data) {
			return 0, 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer reading 4-byte length")
		}
		v := uint64(0)
		for i := 0; i < 4; i++ {
			v = v<<8 | uint64(r.data[off+i])
		}
		if !r.opts.LenientIntegers && v < 65536 {
			return 0, 0, cerr.New(cerr.KindDecoding, "non-minimal integer encoding")
		}
		return v, off + 4, nil
	case add == 27:
		if off+8 > len(r.data) {
			return 0, 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer reading 8-byte length")
		}
		v := uint64(0)
		for i := 0; i < 8; i++ {
			v = v<<8 | uint64(r.data[off+i])
		}
		if !r.opts.LenientIntegers && v < (uint64(1)<<32) {
			return 0, 0, cerr.New(cerr.KindDecoding, "non-minimal integer encoding")
		}
		return v, off + 8, nil
	default:
		return 0, 0, cerr.New(cerr.KindDecoding, "invalid additional-info nibble %d", add)
	}
}

func (r *Reader) requireMajor(expected byte) (byte, *cerr.Error) {
	if r.off >= len(r.data) {
		return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer")
	}
	b := r.data[r.off]
	major := b >> 5
	if major != expected {
		return 0, cerr.New(
			cerr.KindUnexpectedCborType,
			"expected major type %d, got %d",
			expected, major,
		)
	}
	return b & 0x1f, nil
}

// ReadUint reads the next item as an unsigned integer (major type 0).
func (r *Reader) ReadUint() (uint64, error) {
	add, err := r.requireMajor(0)
	if err != nil {
		return 0, r.fail(err)
	}
	v, newOff, err := r.readHeaderValue(r.off+1, add)
	if err != nil {
		return 0, r.fail(err)
	}
	r.off = newOff
	r.afterItem()
	return v, nil
}

// ReadInt reads the next item as a signed integer (major type 0 or 1).
func (r *Reader) ReadInt() (int64, error) {
	if r.off >= len(r.data) {
		return 0, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer"))
	}
	major := r.data[r.off] >> 5
	add := r.data[r.off] & 0x1f
	if major != 0 && major != 1 {
		return 0, r.fail(cerr.New(cerr.KindUnexpectedCborType, "expected integer major type, got %d", major))
	}
	v, newOff, cErr := r.readHeaderValue(r.off+1, add)
	if cErr != nil {
		return 0, r.fail(cErr)
	}
	r.off = newOff
	r.afterItem()
	if major == 0 {
		return int64(v), nil
	}
	return -1 - int64(v), nil
}

// ReadBigInt reads the next item as an integer of any size: a CBOR
// primitive integer, or a tag-2/tag-3 bignum wrapping a byte string
// magnitude.
func (r *Reader) ReadBigInt() (*bigint.Int, error) {
	state := r.PeekState()
	switch state {
	case UnsignedInteger:
		v, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		return bigint.NewFromU64(v), nil
	case NegativeInteger:
		add, _ := r.requireMajor(1)
		v, newOff, cErr := r.readHeaderValue(r.off+1, add)
		if cErr != nil {
			return nil, r.fail(cErr)
		}
		r.off = newOff
		r.afterItem()
		magnitude := bigint.NewFromU64(v)
		one := bigint.NewFromU64(1)
		mag := bigint.New().Add(magnitude, one)
		return bigint.New().Neg(mag), nil
	case Tag:
		tag, err := r.ReadTag()
		if err != nil {
			return nil, err
		}
		if tag != TagUnsignedBignum && tag != TagNegativeBignum {
			return nil, r.fail(cerr.New(cerr.KindUnexpectedCborType, "expected bignum tag, got %d", tag))
		}
		switch r.PeekState() {
		case ByteString, StartIndefiniteByteString:
		default:
			return nil, r.fail(cerr.New(cerr.KindDecoding, "bignum tag wraps non-bytestring"))
		}
		magnitude, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		return bigint.FromAbsBytes(magnitude, tag == TagNegativeBignum), nil
	default:
		return nil, r.fail(cerr.New(cerr.KindUnexpectedCborType, "expected integer or bignum, got %s", state))
	}
}

// ReadBool reads the next item as a boolean (major 7, simple 20/21).
func (r *Reader) ReadBool() (bool, error) {
	add, err := r.requireMajor(7)
	if err != nil {
		return false, r.fail(err)
	}
	if add != 20 && add != 21 {
		return false, r.fail(cerr.New(cerr.KindUnexpectedCborType, "expected boolean, got simple %d", add))
	}
	r.off++
	r.afterItem()
	return add == 21, nil
}

// ReadNull consumes a CBOR null (major 7, simple 22).
func (r *Reader) ReadNull() error {
	add, err := r.requireMajor(7)
	if err != nil {
		return r.fail(err)
	}
	if add != 22 {
		return r.fail(cerr.New(cerr.KindUnexpectedCborType, "expected null, got simple %d", add))
	}
	r.off++
	r.afterItem()
	return nil
}

// ReadSimpleValue reads a CBOR simple value (major 7, not bool/null/float).
func (r *Reader) ReadSimpleValue() (uint8, error) {
	add, err := r.requireMajor(7)
	if err != nil {
		return 0, r.fail(err)
	}
	if add < 24 {
		r.off++
		r.afterItem()
		return add, nil
	}
	if add == 24 {
		if r.off+2 > len(r.data) {
			return 0, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer"))
		}
		v := r.data[r.off+1]
		r.off += 2
		r.afterItem()
		return v, nil
	}
	return 0, r.fail(cerr.New(cerr.KindUnexpectedCborType, "expected simple value, got additional %d", add))
}

// ReadFloat reads a half/single/double precision float as a float64.
func (r *Reader) ReadFloat() (float64, error) {
	add, err := r.requireMajor(7)
	if err != nil {
		return 0, r.fail(err)
	}
	switch add {
	case 25:
		if r.off+3 > len(r.data) {
			return 0, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer"))
		}
		bits := uint16(r.data[r.off+1])<<8 | uint16(r.data[r.off+2])
		r.off += 3
		r.afterItem()
		return float64(halfToFloat32(bits)), nil
	case 26:
		if r.off+5 > len(r.data) {
			return 0, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer"))
		}
		bits := uint32(0)
		for i := 0; i < 4; i++ {
			bits = bits<<8 | uint32(r.data[r.off+1+i])
		}
		r.off += 5
		r.afterItem()
		return float64(math.Float32frombits(bits)), nil
	case 27:
		if r.off+9 > len(r.data) {
			return 0, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer"))
		}
		bits := uint64(0)
		for i := 0; i < 8; i++ {
			bits = bits<<8 | uint64(r.data[r.off+1+i])
		}
		r.off += 9
		r.afterItem()
		return math.Float64frombits(bits), nil
	default:
		return 0, r.fail(cerr.New(cerr.KindUnexpectedCborType, "expected float, got additional %d", add))
	}
}

// ReadTextString reads the next item as a UTF-8 text string (major 3),
// concatenating indefinite-length chunks.
func (r *Reader) ReadTextString() (string, error) {
	b, err := r.readStringMajor(3)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", r.fail(cerr.New(cerr.KindDecoding, "invalid UTF-8 in text string"))
	}
	return string(b), nil
}

// ReadByteString reads the next item as a byte string (major 2),
// concatenating indefinite-length chunks.
func (r *Reader) ReadByteString() ([]byte, error) {
	return r.readStringMajor(2)
}

func (r *Reader) readStringMajor(major byte) ([]byte, error) {
	if r.off >= len(r.data) {
		return nil, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer"))
	}
	b := r.data[r.off]
	gotMajor := b >> 5
	if gotMajor != major {
		return nil, r.fail(cerr.New(cerr.KindUnexpectedCborType, "expected major type %d, got %d", major, gotMajor))
	}
	add := b & 0x1f
	if add == 31 {
		// Indefinite: chunks of the same major type terminated by a break.
		off := r.off + 1
		var out []byte
		for {
			if off >= len(r.data) {
				return nil, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer in indefinite string"))
			}
			if r.data[off] == 0xFF {
				off++
				break
			}
			chunkMajor := r.data[off] >> 5
			chunkAdd := r.data[off] & 0x1f
			if chunkMajor != major || chunkAdd == 31 {
				return nil, r.fail(cerr.New(cerr.KindDecoding, "malformed indefinite string chunk"))
			}
			v, newOff, cErr := r.readHeaderValue(off+1, chunkAdd)
			if cErr != nil {
				return nil, r.fail(cErr)
			}
			if newOff+int(v) > len(r.data) {
				return nil, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer in string chunk"))
			}
			out = append(out, r.data[newOff:newOff+int(v)]...)
			off = newOff + int(v)
		}
		r.off = off
		r.afterItem()
		if out == nil {
			out = []byte{}
		}
		return out, nil
	}
	v, newOff, cErr := r.readHeaderValue(r.off+1, add)
	if cErr != nil {
		return nil, r.fail(cErr)
	}
	if newOff+int(v) > len(r.data) {
		return nil, r.fail(cerr.New(cerr.KindDecoding, "unexpected end of buffer in string"))
	}
	out := r.data[newOff : newOff+int(v)]
	r.off = newOff + int(v)
	r.afterItem()
	return out, nil
}

// ReadTag reads the next item's tag number (major 6). The wrapped value
// must be read immediately afterward with the appropriate Read* call.
func (r *Reader) ReadTag() (uint64, error) {
	add, err := r.requireMajor(6)
	if err != nil {
		return 0, r.fail(err)
	}
	v, newOff, cErr := r.readHeaderValue(r.off+1, add)
	if cErr != nil {
		return 0, r.fail(cErr)
	}
	r.off = newOff
	return v, nil
}

// ReadStartArray begins reading an array (major 4), returning its
// length and whether it is indefinite (length is 0 and meaningless when
// indefinite is true).
func (r *Reader) ReadStartArray() (length uint64, indefinite bool, err error) {
	add, cErr := r.requireMajor(4)
	if cErr != nil {
		return 0, false, r.fail(cErr)
	}
	if add == 31 {
		r.off++
		r.stack = append(r.stack, frame{kind: frameArray, indefinite: true})
		return 0, true, nil
	}
	v, newOff, cErr := r.readHeaderValue(r.off+1, add)
	if cErr != nil {
		return 0, false, r.fail(cErr)
	}
	r.off = newOff
	r.stack = append(r.stack, frame{kind: frameArray, remaining: v})
	return v, false, nil
}

// ReadEndArray closes the array opened by the matching ReadStartArray.
func (r *Reader) ReadEndArray() error {
	f := r.top()
	if f == nil || f.kind != frameArray {
		return r.fail(cerr.New(cerr.KindDecoding, "unmatched end-array"))
	}
	if f.indefinite {
		if r.off >= len(r.data) || r.data[r.off] != 0xFF {
			return r.fail(cerr.New(cerr.KindDecoding, "malformed indefinite-array break-stop"))
		}
		r.off++
	} else if f.remaining != 0 {
		return r.fail(cerr.New(cerr.KindInvalidCborArraySize, "array has %d unread elements", f.remaining))
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.afterItem()
	return nil
}

// ReadStartMap begins reading a map (major 5), returning its pair
// count and whether it is indefinite.
func (r *Reader) ReadStartMap() (length uint64, indefinite bool, err error) {
	add, cErr := r.requireMajor(5)
	if cErr != nil {
		return 0, false, r.fail(cErr)
	}
	if add == 31 {
		r.off++
		r.stack = append(r.stack, frame{kind: frameMap, indefinite: true})
		return 0, true, nil
	}
	v, newOff, cErr := r.readHeaderValue(r.off+1, add)
	if cErr != nil {
		return 0, false, r.fail(cErr)
	}
	r.off = newOff
	r.stack = append(r.stack, frame{kind: frameMap, remaining: v * 2})
	return v, false, nil
}

// ReadEndMap closes the map opened by the matching ReadStartMap.
func (r *Reader) ReadEndMap() error {
	f := r.top()
	if f == nil || f.kind != frameMap {
		return r.fail(cerr.New(cerr.KindDecoding, "unmatched end-map"))
	}
	if f.indefinite {
		if r.off >= len(r.data) || r.data[r.off] != 0xFF {
			return r.fail(cerr.New(cerr.KindDecoding, "malformed indefinite-map break-stop"))
		}
		r.off++
	} else if f.remaining != 0 {
		return r.fail(cerr.New(cerr.KindInvalidCborArraySize, "map has %d unread entries", f.remaining))
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.afterItem()
	return nil
}

// SkipValue advances past the next complete data item at any depth.
func (r *Reader) SkipValue() error {
	newOff, cErr := r.scanValue(r.off, 0)
	if cErr != nil {
		return r.fail(cErr)
	}
	r.off = newOff
	r.afterItem()
	return nil
}

// EncodedValue returns the byte slice spanning the next complete item
// without consuming it, for populating an original-bytes cache.
func (r *Reader) EncodedValue() ([]byte, error) {
	newOff, cErr := r.scanValue(r.off, 0)
	if cErr != nil {
		return nil, r.fail(cErr)
	}
	return r.data[r.off:newOff], nil
}

// scanValue returns the offset just past the complete data item
// starting at off, without touching the reader's own offset or stack.
func (r *Reader) scanValue(off int, depth int) (int, *cerr.Error) {
	if depth > r.opts.MaxDepth {
		return 0, cerr.New(cerr.KindDecoding, "exceeded max nesting depth %d", r.opts.MaxDepth)
	}
	if off >= len(r.data) {
		return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer")
	}
	b := r.data[off]
	major := b >> 5
	add := b & 0x1f

	switch major {
	case 0, 1:
		_, newOff, err := r.readHeaderValue(off+1, add)
		return newOff, err
	case 2, 3:
		if add == 31 {
			cursor := off + 1
			for {
				if cursor >= len(r.data) {
					return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer in indefinite string")
				}
				if r.data[cursor] == 0xFF {
					return cursor + 1, nil
				}
				chunkAdd := r.data[cursor] & 0x1f
				v, newOff, err := r.readHeaderValue(cursor+1, chunkAdd)
				if err != nil {
					return 0, err
				}
				cursor = newOff + int(v)
			}
		}
		v, newOff, err := r.readHeaderValue(off+1, add)
		if err != nil {
			return 0, err
		}
		if newOff+int(v) > len(r.data) {
			return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer in string")
		}
		return newOff + int(v), nil
	case 4:
		if add == 31 {
			cursor := off + 1
			for {
				if cursor >= len(r.data) {
					return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer in indefinite array")
				}
				if r.data[cursor] == 0xFF {
					return cursor + 1, nil
				}
				var err *cerr.Error
				cursor, err = r.scanValue(cursor, depth+1)
				if err != nil {
					return 0, err
				}
			}
		}
		count, newOff, err := r.readHeaderValue(off+1, add)
		if err != nil {
			return 0, err
		}
		cursor := newOff
		for i := uint64(0); i < count; i++ {
			cursor, err = r.scanValue(cursor, depth+1)
			if err != nil {
				return 0, err
			}
		}
		return cursor, nil
	case 5:
		if add == 31 {
			cursor := off + 1
			for {
				if cursor >= len(r.data) {
					return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer in indefinite map")
				}
				if r.data[cursor] == 0xFF {
					return cursor + 1, nil
				}
				var err *cerr.Error
				cursor, err = r.scanValue(cursor, depth+1) // key
				if err != nil {
					return 0, err
				}
				cursor, err = r.scanValue(cursor, depth+1) // value
				if err != nil {
					return 0, err
				}
			}
		}
		count, newOff, err := r.readHeaderValue(off+1, add)
		if err != nil {
			return 0, err
		}
		cursor := newOff
		for i := uint64(0); i < count; i++ {
			cursor, err = r.scanValue(cursor, depth+1)
			if err != nil {
				return 0, err
			}
			cursor, err = r.scanValue(cursor, depth+1)
			if err != nil {
				return 0, err
			}
		}
		return cursor, nil
	case 6:
		_, newOff, err := r.readHeaderValue(off+1, add)
		if err != nil {
			return 0, err
		}
		return r.scanValue(newOff, depth+1)
	case 7:
		switch add {
		case 25:
			if off+3 > len(r.data) {
				return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer")
			}
			return off + 3, nil
		case 26:
			if off+5 > len(r.data) {
				return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer")
			}
			return off + 5, nil
		case 27:
			if off+9 > len(r.data) {
				return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer")
			}
			return off + 9, nil
		case 24:
			if off+2 > len(r.data) {
				return 0, cerr.New(cerr.KindDecoding, "unexpected end of buffer")
			}
			return off + 2, nil
		case 31:
			return 0, cerr.New(cerr.KindDecoding, "unexpected break marker")
		default:
			return off + 1, nil
		}
	}
	return 0, cerr.New(cerr.KindDecoding, "invalid major type %d", major)
}

// halfToFloat32 converts an IEEE 754 binary16 value to float32.
func halfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	var bits uint32
	switch exp {
	case 0:
		if frac == 0 {
			bits = sign << 31
		} else {
			// Subnormal half -> normalize into float32.
			e := -1
			for frac&0x400 == 0 {
				frac <<= 1
				e--
			}
			frac &= 0x3ff
			exp32 := uint32(int32(127-15+1) + int32(e))
			bits = sign<<31 | exp32<<23 | frac<<13
		}
	case 0x1f:
		bits = sign<<31 | 0xff<<23 | frac<<13
	default:
		exp32 := exp - 15 + 127
		bits = sign<<31 | exp32<<23 | frac<<13
	}
	return math.Float32frombits(bits)
}
