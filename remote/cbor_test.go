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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/gridwire/errors"
	"github.com/tochemey/gridwire/schema"
)

type pingEvent struct {
	Seq  int64
	Node string
}

func (pingEvent) WireMessage() {}

type plainRecord struct {
	Value int32
}

type brokenEvent struct {
	Stream chan int
}

func (brokenEvent) WireMessage() {}

func newTestMarshaller() *CBORMarshaller {
	registry := schema.NewRegistry(schema.WithDirectory(schema.NewDirectory()))
	return NewCBORMarshaller(WithRegistry(registry))
}

func TestCBORMarshal(t *testing.T) {
	t.Run("With round trip", func(t *testing.T) {
		marshaller := newTestMarshaller()
		marshaller.Register(new(pingEvent))

		sent := &pingEvent{Seq: 42, Node: "node-1"}
		frame, err := marshaller.Marshal(sent)
		require.NoError(t, err)
		require.NotEmpty(t, frame)

		decoded, err := marshaller.Unmarshal(frame)
		require.NoError(t, err)
		received, ok := decoded.(*pingEvent)
		require.True(t, ok)
		assert.Equal(t, sent, received)
	})

	t.Run("With frame layout", func(t *testing.T) {
		marshaller := newTestMarshaller()
		marshaller.Register(new(pingEvent))

		frame, err := marshaller.Marshal(&pingEvent{Seq: 1})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(frame), 8)

		assert.EqualValues(t, len(frame), binary.BigEndian.Uint32(frame[0:4]))
		assert.Equal(t, schema.WireID(schema.TypeNameOf(new(pingEvent))), binary.BigEndian.Uint32(frame[4:8]))
	})

	t.Run("With nil message", func(t *testing.T) {
		marshaller := newTestMarshaller()
		frame, err := marshaller.Marshal(nil)
		require.Error(t, err)
		assert.Nil(t, frame)
		assert.True(t, errors.Is(err, ErrNilMessage))
	})

	t.Run("With undescribable type", func(t *testing.T) {
		marshaller := newTestMarshaller()
		frame, err := marshaller.Marshal(&brokenEvent{})
		require.Error(t, err)
		assert.Nil(t, frame)
		assert.True(t, errors.Is(err, gerrors.ErrSerializationSetup))
	})
}

func TestCBORUnmarshal(t *testing.T) {
	t.Run("With truncated frame", func(t *testing.T) {
		marshaller := newTestMarshaller()
		for _, data := range [][]byte{nil, {}, {0x00}, {0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00}} {
			decoded, err := marshaller.Unmarshal(data)
			require.Error(t, err)
			assert.Nil(t, decoded)
			assert.True(t, errors.Is(err, ErrInvalidFrame))
		}
	})

	t.Run("With inconsistent length header", func(t *testing.T) {
		marshaller := newTestMarshaller()
		marshaller.Register(new(pingEvent))

		frame, err := marshaller.Marshal(&pingEvent{Seq: 1})
		require.NoError(t, err)

		// claim more bytes than the frame carries
		binary.BigEndian.PutUint32(frame[0:4], uint32(len(frame)+1))
		_, err = marshaller.Unmarshal(frame)
		assert.True(t, errors.Is(err, ErrInvalidFrame))

		// claim less than the fixed header
		binary.BigEndian.PutUint32(frame[0:4], 4)
		_, err = marshaller.Unmarshal(frame)
		assert.True(t, errors.Is(err, ErrInvalidFrame))
	})

	t.Run("With unregistered wire id", func(t *testing.T) {
		sender := newTestMarshaller()
		sender.Register(new(pingEvent))
		frame, err := sender.Marshal(&pingEvent{Seq: 1})
		require.NoError(t, err)

		// the receiving side never registered pingEvent
		receiver := newTestMarshaller()
		decoded, err := receiver.Unmarshal(frame)
		require.Error(t, err)
		assert.Nil(t, decoded)
		assert.True(t, errors.Is(err, gerrors.ErrUnknownType))
	})

	t.Run("With corrupt payload", func(t *testing.T) {
		marshaller := newTestMarshaller()
		marshaller.Register(new(pingEvent))

		frame := make([]byte, 9)
		binary.BigEndian.PutUint32(frame[0:4], 9)
		binary.BigEndian.PutUint32(frame[4:8], schema.WireID(schema.TypeNameOf(new(pingEvent))))
		frame[8] = 0x01 // CBOR integer, not a map

		decoded, err := marshaller.Unmarshal(frame)
		require.Error(t, err)
		assert.Nil(t, decoded)
		assert.True(t, errors.Is(err, ErrDecodeFailed))
	})
}
