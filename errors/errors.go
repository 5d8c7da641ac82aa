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

// Package errors defines the error kinds surfaced by the gridwire
// serialization core. All errors are sentinel values meant to be matched
// with errors.Is; richer context is attached by wrapping.
package errors

import "errors"

var (
	// ErrSerializationSetup is returned when descriptor construction or
	// fingerprinting fails because of an environment problem. It indicates a
	// broken deployment, not bad data, and is not retryable.
	ErrSerializationSetup = errors.New("serialization setup failed")

	// ErrUnknownType is returned when a wire identifier does not map to a
	// loadable type, or when the mapped name cannot be resolved by the
	// supplied loader. Callers may retry after the missing type is deployed.
	ErrUnknownType = errors.New("unknown wire type")

	// ErrUnsupportedPayload is returned by the client marshaller when the
	// value offered for marshaling is not part of the accepted message
	// capability set. It is surfaced immediately and never retried.
	ErrUnsupportedPayload = errors.New("unsupported payload type")

	// ErrIO is the catch-all translation at the client marshaller boundary
	// for any underlying encode or decode failure. The narrowing is part of
	// the adapter's declared contract; the underlying cause stays attached
	// for inspection but the kind is always ErrIO.
	ErrIO = errors.New("marshalling i/o failure")
)
