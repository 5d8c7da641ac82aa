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

// Package remote carries descriptor-driven payloads across the wire: a
// pluggable Marshaller contract, a CBOR implementation of it, and the
// client-facing adapter that frames payloads for transport headers.
package remote

// Message marks a type as eligible for the client transport. The client
// adapter refuses anything that does not carry the marker, before any
// encoding work happens, so arbitrary application values cannot leak onto a
// protocol connection by accident.
type Message interface {
	// WireMessage is a marker with no behavior. Implement it on types that
	// are meant to travel through ClientMarshaller.
	WireMessage()
}

// Marshaller is the extension point for plugging a wire format into the
// transport layer.
//
// # Responsibilities
//
// A Marshaller implementation is responsible for two complementary
// operations:
//   - [Marshaller.Marshal]: encode an arbitrary Go value into a
//     self-describing byte slice that can be safely transmitted over the
//     network.
//   - [Marshaller.Unmarshal]: decode that byte slice back into a Go value
//     with the exact concrete type it had before encoding. The caller uses a
//     type assertion on the returned value, so the round-trip must preserve
//     the original dynamic type.
//
// # Self-description requirement
//
// The receiving end must reconstruct the correct Go type without out-of-band
// coordination, so the encoded bytes must embed enough information (a
// registered numeric wire id, typically) for [Marshaller.Unmarshal] to
// determine which concrete type to instantiate.
//
// # Concurrency
//
// A single Marshaller instance may be called from multiple goroutines
// concurrently. Implementations must be safe for concurrent use without
// external synchronization.
//
// # Error handling
//
// Both methods must return a non-nil error when encoding or decoding fails.
// Returning a nil error alongside a nil or zero value is incorrect and may
// cause silent data loss.
type Marshaller interface {
	// Marshal encodes v into a byte slice suitable for transmission over the
	// network. The encoding must be self-describing so that
	// [Marshaller.Unmarshal] can reconstruct the original concrete type on
	// the remote node without additional context.
	//
	// Returns the encoded bytes and a nil error on success.
	// Returns a nil slice and a descriptive non-nil error on failure.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data produced by [Marshaller.Marshal] and returns
	// the original Go value with its concrete type restored. The caller will
	// use a type assertion on the returned value, so the dynamic type must
	// match what was passed to Marshal.
	//
	// Implementations must validate the payload and return an error for
	// truncated, corrupted, or unrecognized input rather than panicking.
	Unmarshal(data []byte) (any, error)
}
