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

import (
	"crypto/sha1" //nolint:gosec // schema fingerprint, not a security boundary; the wire format fixes the digest
	"reflect"
)

// Fingerprint derives the 64-bit schema fingerprint for type t with the given
// field list.
//
// When t implements Versioned and is not an enumeration type, the published
// SchemaVersion is returned unchanged so deployments that version their types
// explicitly keep their wire identity.
//
// Otherwise the fingerprint is a SHA-1 digest seeded with the UTF-8 bytes of
// the qualified type name followed by, for each field in the order supplied,
// the bytes of the field name then the bytes of the declared-type name. The
// first eight digest bytes are packed little-endian (byte 0 least
// significant) into the result. The packing and concatenation order are part
// of the wire format: fingerprints are compared across process boundaries, so
// they must match bit for bit on every implementation.
//
// The caller is responsible for supplying fields in a deterministic order;
// the calculator imposes none. Everywhere in this repository descriptors are
// built with fields sorted lexicographically by name.
//
// The error return exists for contract parity with digest acquisition
// failures; with crypto/sha1 compiled in it is always nil.
func Fingerprint(t reflect.Type, fields []Field) (int64, error) {
	if !isEnum(t) && implements(t, versionedType) {
		return versionOf(t), nil
	}

	md := sha1.New()
	md.Write([]byte(typeName(t)))

	for i := range fields {
		md.Write([]byte(fields[i].Name))
		md.Write([]byte(fields[i].TypeName))
	}

	digest := md.Sum(nil)

	n := len(digest)
	if n > 8 {
		n = 8
	}

	// Little-endian packing of the leading digest bytes.
	var fingerprint int64
	for i := n - 1; i >= 0; i-- {
		fingerprint = (fingerprint << 8) | int64(digest[i])
	}

	return fingerprint, nil
}

// versionOf returns the published schema version of a Versioned type,
// instantiating a zero value when the method has a pointer receiver.
func versionOf(t reflect.Type) int64 {
	if t.Implements(versionedType) {
		return reflect.Zero(t).Interface().(Versioned).SchemaVersion()
	}
	return reflect.New(t).Interface().(Versioned).SchemaVersion()
}
