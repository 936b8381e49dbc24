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

// originalBytes caches the exact CBOR bytes a value was decoded from, the
// same discipline the value package applies to Metadatum/PlutusData/
// NativeScript. Transaction-model types embed it so a decode-then-encode
// cycle is byte-identical until the value (or an ancestor) is mutated.
type originalBytes struct {
	raw    []byte
	parent func()
}

func (c *originalBytes) setCache(raw []byte) {
	c.raw = append([]byte(nil), raw...)
}

// clearCache drops this node's cache and propagates up to whatever
// ancestor registered itself via attachParent — the strongest invariant
// in the cache discipline: a mutation below must invalidate every
// container above it, or the parent's cache would still replay bytes
// describing the pre-mutation child.
func (c *originalBytes) clearCache() {
	c.raw = nil
	if c.parent != nil {
		c.parent()
	}
}

func (c *originalBytes) cached() ([]byte, bool) {
	return c.raw, c.raw != nil
}

// attachParent registers the callback invoked when this node's cache is
// cleared, so a child can propagate invalidation to its owner.
func (c *originalBytes) attachParent(fn func()) {
	c.parent = fn
}
