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

package remote

import (
	"encoding/binary"
	"errors"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/tochemey/gridwire/internal/bufferpool"
	"github.com/tochemey/gridwire/schema"
)

// CBORMarshaller errors.
var (
	// ErrNilMessage is returned by [CBORMarshaller.Marshal] when the supplied
	// value is nil.
	ErrNilMessage = errors.New("remote: message is nil")

	// ErrEncodeFailed is returned when CBOR marshaling fails. It wraps the
	// underlying CBOR library error.
	ErrEncodeFailed = errors.New("remote: failed to encode message")

	// ErrDecodeFailed is returned when CBOR unmarshaling fails. It wraps the
	// underlying CBOR library error.
	ErrDecodeFailed = errors.New("remote: failed to decode message")

	// ErrInvalidFrame is returned by [CBORMarshaller.Unmarshal] when the byte
	// slice is too short or its length header is inconsistent with the actual
	// payload size.
	ErrInvalidFrame = errors.New("remote: malformed or truncated frame")

	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortNone,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixDynamic,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8DecodeInvalid,
	}
)

// frameHeaderLen is the fixed frame prefix: total length plus wire id.
const frameHeaderLen = 8

// CBORMarshaller is a [Marshaller] implementation that encodes values using
// the Concise Binary Object Representation (CBOR) in a length-prefixed,
// self-describing frame. The frame embeds the value's numeric wire id, taken
// from its schema descriptor, so the receiver can resolve the concrete Go
// type at runtime through its registry and loader.
//
// # Frame layout
//
// Both header fields are big-endian uint32.
//
// ┌──────────┬──────────┬──────────────┐
// │ totalLen │ wire id  │ CBOR bytes   │
// │ 4 bytes  │ 4 bytes  │ M bytes      │
// │ uint32BE │ uint32BE │ raw CBOR     │
// └──────────┴──────────┴──────────────┘
//
//	totalLen = 4 + 4 + M   (covers the entire frame including itself)
//
// # Usage
//
// A CBORMarshaller holds no per-call state and is safe for concurrent use.
// Register concrete types before exchanging them:
//
//	marshaller := remote.NewCBORMarshaller()
//	marshaller.Register(new(OrderEvent), new(TradeTick))
//
// Registration publishes the types in the marshaller's loader and wire-id
// directory; [CBORMarshaller.Unmarshal] fails with an unknown-type error for
// ids that were never registered on the receiving side.
type CBORMarshaller struct {
	encMode cbor.EncMode // immutable after construction, thread-safe
	decMode cbor.DecMode // immutable after construction, thread-safe

	registry *schema.Registry
	loader   *schema.Loader
}

// enforce the Marshaller interface at compile time.
var _ Marshaller = (*CBORMarshaller)(nil)

// CBOROption configures a CBORMarshaller at creation time.
type CBOROption func(*CBORMarshaller)

// WithRegistry sets the descriptor registry. Defaults to the process-wide
// registry.
func WithRegistry(registry *schema.Registry) CBOROption {
	return func(m *CBORMarshaller) {
		m.registry = registry
	}
}

// WithLoader sets the loader consulted on the decode path. Defaults to a
// fresh loader private to the marshaller.
func WithLoader(loader *schema.Loader) CBOROption {
	return func(m *CBORMarshaller) {
		m.loader = loader
	}
}

// NewCBORMarshaller returns a ready-to-use [CBORMarshaller].
func NewCBORMarshaller(opts ...CBOROption) *CBORMarshaller {
	encMode, _ := cborEncOpts.EncMode()
	decMode, _ := cborDecOpts.DecMode()

	marshaller := &CBORMarshaller{
		encMode: encMode,
		decMode: decMode,
	}

	for _, opt := range opts {
		opt(marshaller)
	}

	if marshaller.registry == nil {
		marshaller.registry = schema.Default()
	}
	if marshaller.loader == nil {
		marshaller.loader = schema.NewLoader("remote")
	}

	return marshaller
}

// Register publishes one or more Go types in the marshaller's registry and
// loader so their wire ids resolve on the decode path. Pass a value of each
// type, typically a pointer to the zero value:
//
//	marshaller.Register(new(OrderEvent), new(TradeTick))
func (m *CBORMarshaller) Register(values ...any) {
	m.registry.RegisterTypes(m.loader, values...)
}

// Marshal implements [Marshaller]. It resolves the value's schema descriptor,
// encodes the value with CBOR into a pooled buffer, and produces a
// self-describing frame carrying the descriptor's wire id so [Unmarshal] can
// resolve the concrete type without out-of-band coordination.
//
// Returns [ErrNilMessage] if v is nil.
// Returns a descriptor construction error for values the schema layer cannot
// describe.
// Returns [ErrEncodeFailed] wrapping the CBOR error on encode failure.
func (m *CBORMarshaller) Marshal(v any) ([]byte, error) {
	rtype := reflect.TypeOf(v)
	if rtype == nil {
		return nil, ErrNilMessage
	}
	if rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}

	desc, err := m.registry.ResolveByType(rtype)
	if err != nil {
		return nil, err
	}

	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	if err := m.encMode.NewEncoder(buf).Encode(v); err != nil {
		return nil, errors.Join(ErrEncodeFailed, err)
	}

	// single allocation for the output frame
	totalLen := frameHeaderLen + buf.Len()
	out := make([]byte, 0, totalLen)

	var hdr [frameHeaderLen]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(totalLen))
	binary.BigEndian.PutUint32(hdr[4:8], desc.ID())
	out = append(out, hdr[:]...)
	out = append(out, buf.Bytes()...)
	return out, nil
}

// Unmarshal implements [Marshaller]. It decodes a frame produced by
// [Marshal], resolves the concrete Go type from the embedded wire id through
// the registry and loader, and unmarshals the CBOR payload into a fresh
// instance of that type. The returned value is a pointer to the decoded
// value; callers recover the original concrete type with a type assertion.
//
// Returns [ErrInvalidFrame] for truncated or malformed frames.
// Returns an unknown-type error when the wire id was never registered.
// Returns [ErrDecodeFailed] wrapping the CBOR error on unmarshal failure.
func (m *CBORMarshaller) Unmarshal(data []byte) (any, error) {
	if len(data) < frameHeaderLen {
		return nil, ErrInvalidFrame
	}

	totalLen := int(binary.BigEndian.Uint32(data[0:4]))
	if len(data) < totalLen || totalLen < frameHeaderLen {
		return nil, ErrInvalidFrame
	}

	id := binary.BigEndian.Uint32(data[4:8])
	desc, err := m.registry.ResolveByID(id, m.loader)
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(desc.Type())
	if err := m.decMode.Unmarshal(data[frameHeaderLen:totalLen], ptr.Interface()); err != nil {
		return nil, errors.Join(ErrDecodeFailed, err)
	}

	return ptr.Interface(), nil
}
