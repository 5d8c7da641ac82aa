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

// Package schema is the type-descriptor core of the gridwire serialization
// protocol. It resolves runtime types to cached, precomputed descriptors (by
// type identity and by compact numeric wire id), derives stable 64-bit schema
// fingerprints, and records the field offsets the rawfield accessors consume
// on the encode/decode hot path.
package schema

import (
	"encoding"
	"fmt"
	"reflect"
)

// Kind classifies a serializable field for raw offset access.
type Kind uint8

const (
	// KindBool is a 1-byte boolean field.
	KindBool Kind = iota
	// KindInt8 is an 8-bit integer field (signed or unsigned).
	KindInt8
	// KindInt16 is a 16-bit integer field (signed or unsigned).
	KindInt16
	// KindInt32 is a 32-bit integer field (signed or unsigned).
	KindInt32
	// KindInt64 is a 64-bit integer field (signed or unsigned).
	KindInt64
	// KindFloat32 is a 32-bit floating point field.
	KindFloat32
	// KindFloat64 is a 64-bit floating point field.
	KindFloat64
	// KindRune is a character field.
	KindRune
	// KindRef is a reference field (pointer, interface, string, slice, map,
	// array or nested struct) accessed through its declared type.
	KindRef
)

var kindNames = [...]string{
	KindBool:    "bool",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindRune:    "rune",
	KindRef:     "ref",
}

// String returns the kind name
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Flags describes special handling applied to a descriptor's type.
type Flags uint8

const (
	// FlagEnum marks an enumeration type: a defined integer type carrying
	// declared constants and a Stringer implementation.
	FlagEnum Flags = 1 << iota
	// FlagBinaryMarshaler marks a type that handles its own encoding through
	// encoding.BinaryMarshaler instead of field-by-field access.
	FlagBinaryMarshaler
)

// Has reports whether all bits of f are set.
func (fs Flags) Has(f Flags) bool {
	return fs&f == f
}

// Field is the cached metadata for one serializable field: its name, declared
// type, access kind and byte offset within an instance of the owning type.
type Field struct {
	// Name is the field name as declared.
	Name string
	// TypeName is the qualified name of the field's declared type. It feeds
	// the schema fingerprint and must stay stable across releases.
	TypeName string
	// Kind selects the rawfield accessor pair for this field.
	Kind Kind
	// Offset is the field's byte offset within an instance, valid for exactly
	// the descriptor's type.
	Offset uintptr
	// Type is the field's declared runtime type, needed for KindRef access.
	Type reflect.Type
}

// Versioned is the native structural-versioning mechanism. A type that
// implements it publishes its own schema version, which the fingerprint
// calculator returns unchanged instead of deriving a digest. This preserves
// wire compatibility with deployments that version their types explicitly.
type Versioned interface {
	// SchemaVersion returns the published version identifier of the type's
	// serialization shape.
	SchemaVersion() int64
}

// Descriptor is the cached serialization metadata for one runtime type. A
// descriptor is immutable once published by the registry: field order and
// offsets are fixed for its lifetime and match the byte layout the wire
// writer and reader assume.
type Descriptor struct {
	rtype       reflect.Type
	name        string
	id          uint32
	fingerprint int64
	flags       Flags
	fields      []Field
	loader      *Loader
}

// Type returns the runtime type the descriptor describes.
func (d *Descriptor) Type() reflect.Type {
	return d.rtype
}

// Name returns the qualified type name.
func (d *Descriptor) Name() string {
	return d.name
}

// ID returns the compact numeric wire identifier standing in for the
// qualified type name on the wire.
func (d *Descriptor) ID() uint32 {
	return d.id
}

// Fingerprint returns the 64-bit schema fingerprint: the native published
// version when the type is Versioned, the computed fallback otherwise.
func (d *Descriptor) Fingerprint() int64 {
	return d.fingerprint
}

// Flags returns the special-handling flags.
func (d *Descriptor) Flags() Flags {
	return d.flags
}

// Fields returns the ordered serializable fields. The returned slice is the
// descriptor's own and must not be modified.
func (d *Descriptor) Fields() []Field {
	return d.fields
}

// Loader returns the loader that defined the descriptor's type, or nil for
// process-scoped types that are never unloaded.
func (d *Descriptor) Loader() *Loader {
	return d.loader
}

// TypeNameOf returns the qualified name of the runtime type of v, which may
// be a value, a pointer to a value, or a reflect.Type. Named types qualify
// with their full package path so two packages sharing a base name cannot
// collide on the wire.
func TypeNameOf(v any) string {
	return typeName(reflectType(v))
}

func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// reflectType returns the runtime type of v, unwrapping one level of pointer
// indirection so callers can pass new(T).
func reflectType(v any) reflect.Type {
	var rtype reflect.Type
	switch _type := v.(type) {
	case reflect.Type:
		rtype = _type
	default:
		rtype = reflect.TypeOf(v)
		if rtype.Kind() == reflect.Pointer {
			rtype = rtype.Elem()
		}
	}
	return rtype
}

var (
	versionedType       = reflect.TypeOf((*Versioned)(nil)).Elem()
	binaryMarshalerType = reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem()
	stringerType        = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// isEnum reports whether t is an enumeration type: a defined integer type
// that prints its constants through fmt.Stringer.
func isEnum(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return false
	}
	if t.Name() == "" {
		return false
	}
	return t.Implements(stringerType) || reflect.PointerTo(t).Implements(stringerType)
}

// implements reports whether t or *t satisfies iface.
func implements(t reflect.Type, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}
