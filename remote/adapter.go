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
	"errors"
	"fmt"

	gerrors "github.com/tochemey/gridwire/errors"
)

// ClientMarshaller adapts a [Marshaller] to the client transport. It gates
// outgoing values on the [Message] capability marker before any encoding
// work, reserves a caller-specified header region in front of the encoded
// payload so the transport can stamp its header without a second copy, and
// narrows every underlying encode or decode failure to the generic
// errors.ErrIO so protocol internals do not leak to client callers.
type ClientMarshaller struct {
	inner Marshaller
}

// NewClientMarshaller wraps a Marshaller for client transport use.
func NewClientMarshaller(inner Marshaller) *ClientMarshaller {
	return &ClientMarshaller{inner: inner}
}

// Marshal encodes obj and returns a buffer whose first headerOffset bytes
// are zero and reserved for the transport header, with the encoded payload
// occupying the rest.
//
// Values that do not implement [Message] are rejected with
// errors.ErrUnsupportedPayload before any encoding work happens. A negative
// headerOffset and any underlying encode failure surface as errors.ErrIO.
func (c *ClientMarshaller) Marshal(obj any, headerOffset int) ([]byte, error) {
	if _, ok := obj.(Message); !ok {
		return nil, fmt.Errorf("%w: %T", gerrors.ErrUnsupportedPayload, obj)
	}
	if headerOffset < 0 {
		return nil, fmt.Errorf("%w: negative header offset %d", gerrors.ErrIO, headerOffset)
	}

	payload, err := c.inner.Marshal(obj)
	if err != nil {
		return nil, errors.Join(gerrors.ErrIO, err)
	}

	out := make([]byte, headerOffset+len(payload))
	copy(out[headerOffset:], payload)
	return out, nil
}

// Unmarshal decodes a payload produced by the remote side and returns it as
// a [Message]. Decode failures, and decoded values that do not carry the
// Message capability, surface as errors.ErrIO.
func (c *ClientMarshaller) Unmarshal(data []byte) (Message, error) {
	decoded, err := c.inner.Unmarshal(data)
	if err != nil {
		return nil, errors.Join(gerrors.ErrIO, err)
	}

	message, ok := decoded.(Message)
	if !ok {
		return nil, fmt.Errorf("%w: decoded %T is not a wire message", gerrors.ErrIO, decoded)
	}
	return message, nil
}
