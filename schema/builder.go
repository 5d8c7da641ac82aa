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
	"errors"
	"fmt"
	"reflect"
	"sort"

	gerrors "github.com/tochemey/gridwire/errors"
	"github.com/tochemey/gridwire/hash"
	"github.com/tochemey/gridwire/internal/errorschain"
)

// fieldTag is the struct tag controlling field inclusion. A field tagged
// `gridwire:"-"` is excluded from serialization.
const fieldTag = "gridwire"

// Builder constructs a descriptor for a resolved type: it inspects the
// serializable fields, computes their offsets and kinds, and determines the
// schema fingerprint and wire id. The registry caches the result; a builder
// itself holds no state between calls and is safe for concurrent use.
type Builder interface {
	// Build constructs the descriptor for t. It returns an error joined with
	// errors.ErrSerializationSetup when the type cannot be described.
	Build(t reflect.Type) (*Descriptor, error)
}

// BuilderOption configures a builder at creation time.
type BuilderOption func(*reflectBuilder)

// WithBuilderHasher sets the hasher deriving default wire ids.
func WithBuilderHasher(hasher hash.Hasher) BuilderOption {
	return func(b *reflectBuilder) {
		b.hasher = hasher
	}
}

// WithBuilderDirectory sets the directory consulted for wire id overrides.
// When the directory also implements IDDirectory, its id for a type name
// takes precedence over the hash-derived default.
func WithBuilderDirectory(directory Directory) BuilderOption {
	return func(b *reflectBuilder) {
		b.directory = directory
	}
}

// WithRequireVersioned makes the builder reject struct types that neither
// publish a schema version nor encode themselves. Deployments that pin wire
// identity explicitly use it to catch unversioned types at descriptor build
// time instead of after a silent fingerprint change.
func WithRequireVersioned() BuilderOption {
	return func(b *reflectBuilder) {
		b.requireVersioned = true
	}
}

type reflectBuilder struct {
	hasher           hash.Hasher
	directory        Directory
	requireVersioned bool
}

var _ Builder = (*reflectBuilder)(nil)

// NewBuilder creates a reflection-based builder.
func NewBuilder(opts ...BuilderOption) Builder {
	builder := &reflectBuilder{
		hasher: hash.DefaultHasher(),
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder
}

// Build implements Builder. Serializable fields are the struct fields not
// tagged `gridwire:"-"`, sorted lexicographically by name; the sorted order
// is the order the fingerprint consumes and the order the wire writer walks.
// Non-struct types produce a descriptor with an empty field list.
func (b *reflectBuilder) Build(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", gerrors.ErrSerializationSetup)
	}

	if b.requireVersioned && t.Kind() == reflect.Struct &&
		!implements(t, versionedType) && !implements(t, binaryMarshalerType) {
		return nil, fmt.Errorf("%w: %s does not publish a schema version", gerrors.ErrSerializationSetup, typeName(t))
	}

	fields, err := b.fieldsOf(t)
	if err != nil {
		return nil, errors.Join(gerrors.ErrSerializationSetup, err)
	}

	fingerprint, err := Fingerprint(t, fields)
	if err != nil {
		return nil, errors.Join(gerrors.ErrSerializationSetup, err)
	}

	name := typeName(t)

	var flags Flags
	if isEnum(t) {
		flags |= FlagEnum
	}
	if implements(t, binaryMarshalerType) {
		flags |= FlagBinaryMarshaler
	}

	return &Descriptor{
		rtype:       t,
		name:        name,
		id:          b.idOf(name),
		fingerprint: fingerprint,
		flags:       flags,
		fields:      fields,
	}, nil
}

// fieldsOf collects the serializable fields of t in lexicographic name
// order. Every unsupported field is reported, not just the first.
func (b *reflectBuilder) fieldsOf(t reflect.Type) ([]Field, error) {
	if t.Kind() != reflect.Struct {
		return nil, nil
	}

	fields := make([]Field, 0, t.NumField())
	chain := errorschain.New(errorschain.ReturnAll())

	for i := 0; i < t.NumField(); i++ {
		structField := t.Field(i)
		if structField.Tag.Get(fieldTag) == "-" {
			continue
		}

		kind, ok := kindOf(structField.Type)
		if !ok {
			chain.AddError(fmt.Errorf("field %s.%s has unsupported type %s", typeName(t), structField.Name, structField.Type))
			continue
		}

		fields = append(fields, Field{
			Name:     structField.Name,
			TypeName: typeName(structField.Type),
			Kind:     kind,
			Offset:   structField.Offset,
			Type:     structField.Type,
		})
	}

	if err := chain.Error(); err != nil {
		return nil, err
	}

	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})

	return fields, nil
}

// idOf derives the wire id for a qualified type name: the directory's
// declared id when one exists, the hash-derived default otherwise.
func (b *reflectBuilder) idOf(name string) uint32 {
	if ids, ok := b.directory.(IDDirectory); ok {
		if id, found := ids.IDForName(name); found {
			return id
		}
	}
	return uint32(b.hasher.HashCode([]byte(name)))
}

// kindOf classifies a field type for raw offset access. Signedness does not
// change the memory layout, so unsigned integers share the signed kinds.
func kindOf(t reflect.Type) (Kind, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return KindBool, true
	case reflect.Int8, reflect.Uint8:
		return KindInt8, true
	case reflect.Int16, reflect.Uint16:
		return KindInt16, true
	case reflect.Int32, reflect.Uint32:
		return KindInt32, true
	case reflect.Int64, reflect.Uint64, reflect.Int, reflect.Uint:
		return KindInt64, true
	case reflect.Float32:
		return KindFloat32, true
	case reflect.Float64:
		return KindFloat64, true
	case reflect.Pointer, reflect.Interface, reflect.String,
		reflect.Slice, reflect.Map, reflect.Array, reflect.Struct:
		return KindRef, true
	default:
		// Chan, Func, Complex64/128, UnsafePointer have no wire representation.
		return 0, false
	}
}

// WireID returns the default hash-derived wire id for a qualified type name.
func WireID(name string) uint32 {
	return uint32(defaultHasher.HashCode([]byte(name)))
}

var defaultHasher = hash.DefaultHasher()
