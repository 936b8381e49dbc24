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

// Options configures Reader behavior, mirroring the DecOptions /
// EncOptions functional-option idiom fxamacker/cbor/v2 exposes for the
// same kind of codec-wide tuning.
type Options struct {
	// MaxDepth bounds container nesting SkipValue/EncodedValue will
	// descend into before giving up with a decoding error. Zero means
	// the default of 64.
	MaxDepth int
	// LenientIntegers disables the canonical non-minimal-integer check,
	// accepting any admissible header length for a given value.
	LenientIntegers bool
}

// Option mutates an Options value.
type Option func(*Options)

// WithMaxDepth overrides the maximum container nesting depth.
func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithLenientIntegers disables the canonical-minimal-integer check.
func WithLenientIntegers() Option {
	return func(o *Options) { o.LenientIntegers = true }
}

func defaultOptions() Options {
	return Options{MaxDepth: 64}
}

func applyOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = 64
	}
	return o
}
