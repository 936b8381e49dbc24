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

// Package cerr defines the closed set of error kinds shared by every
// component of the core: bigint, cbor, value, ledger, coinselection.
package cerr

import "fmt"

// Kind is one of the closed set of error kinds a core operation may fail with.
type Kind int

const (
	KindSuccess Kind = iota
	KindPointerIsNull
	KindInvalidArgument
	KindMemoryAllocationFailed
	KindDecoding
	KindUnexpectedCborType
	KindInvalidCborValue
	KindInvalidCborArraySize
	KindInsufficientBufferSize
	KindInvalidJSON
	KindConversionFailed
	KindInvalidPlutusDataConversion
	KindInvalidMetadatumConversion
	KindInvalidNativeScriptType
	KindInvalidScriptLanguage
	KindElementNotFound
	KindBalanceInsufficient
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindPointerIsNull:
		return "pointer-is-null"
	case KindInvalidArgument:
		return "invalid-argument"
	case KindMemoryAllocationFailed:
		return "memory-allocation-failed"
	case KindDecoding:
		return "decoding"
	case KindUnexpectedCborType:
		return "unexpected-cbor-type"
	case KindInvalidCborValue:
		return "invalid-cbor-value"
	case KindInvalidCborArraySize:
		return "invalid-cbor-array-size"
	case KindInsufficientBufferSize:
		return "insufficient-buffer-size"
	case KindInvalidJSON:
		return "invalid-json"
	case KindConversionFailed:
		return "conversion-failed"
	case KindInvalidPlutusDataConversion:
		return "invalid-plutus-data-conversion"
	case KindInvalidMetadatumConversion:
		return "invalid-metadatum-conversion"
	case KindInvalidNativeScriptType:
		return "invalid-native-script-type"
	case KindInvalidScriptLanguage:
		return "invalid-script-language"
	case KindElementNotFound:
		return "element-not-found"
	case KindBalanceInsufficient:
		return "balance-insufficient"
	default:
		return "unknown"
	}
}

// Error is the value every core operation returns on failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind, so callers
// can do errors.Is(err, cerr.Sentinel(cerr.KindBalanceInsufficient)),
// or more simply compare (*Error).Kind after errors.As.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind, wrapping an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Sentinel is a zero-message *Error usable with errors.Is for a given kind.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error, and
// returns false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if as(err, &e) {
		return e.Kind, true
	}
	return KindSuccess, false
}

// as is a tiny local errors.As to avoid importing errors just for this.
func as(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
