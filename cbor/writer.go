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
	"bytes"
	"encoding/hex"

	"github.com/blinklabs-io/cardano-core/bigint"
	"github.com/blinklabs-io/cardano-core/internal/cerr"
)

// Writer appends canonical CBOR to an internal growable buffer.
type Writer struct {
	buf     bytes.Buffer
	stack   []frame
	lastErr string
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// LastError returns the message of the most recent failed operation.
func (w *Writer) LastError() string {
	return w.lastErr
}

func (w *Writer) fail(err *cerr.Error) *cerr.Error {
	msg := err.Error()
	if len(msg) > 1023 {
		msg = msg[:1023]
	}
	w.lastErr = msg
	return err
}

func (w *Writer) top() *frame {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

func (w *Writer) afterItem() {
	if f := w.top(); f != nil && !f.indefinite && f.remaining > 0 {
		f.remaining--
	}
}

func writeHeader(buf *bytes.Buffer, major byte, v uint64) {
	hdr := major << 5
	switch {
	case v < 24:
		buf.WriteByte(hdr | byte(v))
	case v <= 0xff:
		buf.WriteByte(hdr | 24)
		buf.WriteByte(byte(v))
	case v <= 0xffff:
		buf.WriteByte(hdr | 25)
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v))
	case v <= 0xffffffff:
		buf.WriteByte(hdr | 26)
		for i := 3; i >= 0; i-- {
			buf.WriteByte(byte(v >> (8 * uint(i))))
		}
	default:
		buf.WriteByte(hdr | 27)
		for i := 7; i >= 0; i-- {
			buf.WriteByte(byte(v >> (8 * uint(i))))
		}
	}
}

// WriteUint writes an unsigned integer (major type 0).
func (w *Writer) WriteUint(v uint64) {
	writeHeader(&w.buf, 0, v)
	w.afterItem()
}

// WriteInt writes a signed integer, choosing major type 0 or 1.
func (w *Writer) WriteInt(v int64) {
	if v >= 0 {
		w.WriteUint(uint64(v))
		return
	}
	writeHeader(&w.buf, 1, uint64(-1-v))
	w.afterItem()
}

// WriteBigInt writes i as a primitive integer when it fits an int64,
// otherwise as a tag-2/tag-3 bignum wrapping its big-endian magnitude.
func (w *Writer) WriteBigInt(i *bigint.Int) {
	if i.Big().IsInt64() {
		w.WriteInt(i.Int64())
		return
	}
	tag := TagUnsignedBignum
	if i.Sign() < 0 {
		tag = TagNegativeBignum
	}
	w.WriteTag(tag)
	w.WriteByteString(i.AbsBytes())
}

// WriteBool writes a boolean (major 7, simple 20/21).
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(0xf5)
	} else {
		w.buf.WriteByte(0xf4)
	}
	w.afterItem()
}

// WriteNull writes CBOR null (major 7, simple 22).
func (w *Writer) WriteNull() {
	w.buf.WriteByte(0xf6)
	w.afterItem()
}

// WriteSimpleValue writes a CBOR simple value.
func (w *Writer) WriteSimpleValue(v uint8) {
	if v < 24 {
		w.buf.WriteByte(0xe0 | v)
	} else {
		w.buf.WriteByte(0xf8)
		w.buf.WriteByte(v)
	}
	w.afterItem()
}

// WriteTextString writes a UTF-8 text string (major 3, definite length).
func (w *Writer) WriteTextString(s string) {
	writeHeader(&w.buf, 3, uint64(len(s)))
	w.buf.WriteString(s)
	w.afterItem()
}

// WriteByteString writes a byte string (major 2, definite length).
func (w *Writer) WriteByteString(b []byte) {
	writeHeader(&w.buf, 2, uint64(len(b)))
	w.buf.Write(b)
	w.afterItem()
}

// WriteByteStringChunked writes b as an indefinite-length byte string
// split into chunks of at most chunkSize bytes each, the PlutusData
// rule for byte strings longer than 64 bytes (spec.md §4.C.1).
func (w *Writer) WriteByteStringChunked(b []byte, chunkSize int) {
	w.buf.WriteByte(0x5f)
	for len(b) > 0 {
		n := chunkSize
		if n > len(b) {
			n = len(b)
		}
		writeHeader(&w.buf, 2, uint64(n))
		w.buf.Write(b[:n])
		b = b[n:]
	}
	w.buf.WriteByte(0xFF)
	w.afterItem()
}

// WriteTag writes a tag number (major 6). The wrapped value must follow.
func (w *Writer) WriteTag(tag uint64) {
	writeHeader(&w.buf, 6, tag)
}

// WriteStartArray opens an array. indefinite==true ignores length.
func (w *Writer) WriteStartArray(length uint64, indefinite bool) {
	if indefinite {
		w.buf.WriteByte(0x9f)
		w.stack = append(w.stack, frame{kind: frameArray, indefinite: true})
		return
	}
	writeHeader(&w.buf, 4, length)
	w.stack = append(w.stack, frame{kind: frameArray, remaining: length})
}

// WriteEndArray closes the array opened by the matching WriteStartArray.
func (w *Writer) WriteEndArray() error {
	f := w.top()
	if f == nil || f.kind != frameArray {
		return w.fail(cerr.New(cerr.KindInvalidArgument, "unmatched end-array"))
	}
	if f.indefinite {
		w.buf.WriteByte(0xFF)
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.afterItem()
	return nil
}

// WriteStartMap opens a map of length key-value pairs. indefinite==true
// ignores length.
func (w *Writer) WriteStartMap(length uint64, indefinite bool) {
	if indefinite {
		w.buf.WriteByte(0xbf)
		w.stack = append(w.stack, frame{kind: frameMap, indefinite: true})
		return
	}
	writeHeader(&w.buf, 5, length)
	w.stack = append(w.stack, frame{kind: frameMap, remaining: length * 2})
}

// WriteEndMap closes the map opened by the matching WriteStartMap.
func (w *Writer) WriteEndMap() error {
	f := w.top()
	if f == nil || f.kind != frameMap {
		return w.fail(cerr.New(cerr.KindInvalidArgument, "unmatched end-map"))
	}
	if f.indefinite {
		w.buf.WriteByte(0xFF)
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.afterItem()
	return nil
}

// WriteRawBytes appends raw bytes verbatim, the cache-replay path used
// to emit a previously-decoded value's original bytes unchanged.
func (w *Writer) WriteRawBytes(b []byte) {
	w.buf.Write(b)
	w.afterItem()
}

// Encode returns the encoded byte slice.
func (w *Writer) Encode() []byte {
	return w.buf.Bytes()
}

// EncodeHex returns the encoded bytes as a lowercase hex string.
func (w *Writer) EncodeHex() string {
	return hex.EncodeToString(w.buf.Bytes())
}

// EncodedSize returns the number of bytes written so far.
func (w *Writer) EncodedSize() int {
	return w.buf.Len()
}
