// MIT License
//
// Copyright (c) 2023-2026 Gridwire Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package schema

// Wire tags are the single-byte discriminators prefixing every encoded
// object. They let the stream writer encode cyclic and shared-reference
// object graphs without duplication or recursion: a fresh object gets a
// session-local handle the instant its encoding begins, so later encounters
// emit TagHandle instead of re-encoding. The byte values are part of the
// on-wire format and must never change.
const (
	// TagNull marks an absent reference.
	TagNull byte = 0x70
	// TagHandle marks a back-reference to an already-emitted object within
	// the current serialization session, by relative index.
	TagHandle byte = 0x71
	// TagObject marks a fresh object described by a class descriptor.
	TagObject byte = 0x72
)

// TagName returns a diagnostic name for a wire tag byte.
func TagName(tag byte) string {
	switch tag {
	case TagNull:
		return "NULL"
	case TagHandle:
		return "HANDLE"
	case TagObject:
		return "OBJECT"
	default:
		return "UNKNOWN"
	}
}
