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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/gridwire/errors"
)

type orderEvent struct {
	Venue    string
	Amount   int64
	Currency string
	internal chan int `gridwire:"-"`
	Filled   bool
}

type badEvent struct {
	Stream chan int
	Done   func()
	OK     int32
}

type selfDescribing struct {
	Raw []byte
}

func (selfDescribing) MarshalBinary() ([]byte, error) { return nil, nil }

type severity uint8

func (severity) String() string { return "severity" }

func TestBuild(t *testing.T) {
	builder := NewBuilder()

	t.Run("With lexicographic field order", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(orderEvent{}))
		require.NoError(t, err)
		require.NotNil(t, desc)

		names := make([]string, 0, len(desc.Fields()))
		for _, field := range desc.Fields() {
			names = append(names, field.Name)
		}
		assert.Equal(t, []string{"Amount", "Currency", "Filled", "Venue"}, names)
	})

	t.Run("With offsets from the concrete layout", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(orderEvent{}))
		require.NoError(t, err)

		rtype := reflect.TypeOf(orderEvent{})
		for _, field := range desc.Fields() {
			structField, ok := rtype.FieldByName(field.Name)
			require.True(t, ok)
			assert.Equal(t, structField.Offset, field.Offset, field.Name)
			assert.Equal(t, structField.Type, field.Type, field.Name)
		}
	})

	t.Run("With kinds", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(orderEvent{}))
		require.NoError(t, err)

		kinds := make(map[string]Kind)
		for _, field := range desc.Fields() {
			kinds[field.Name] = field.Kind
		}
		assert.Equal(t, KindInt64, kinds["Amount"])
		assert.Equal(t, KindRef, kinds["Currency"])
		assert.Equal(t, KindBool, kinds["Filled"])
		assert.Equal(t, KindRef, kinds["Venue"])
	})

	t.Run("With excluded field", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(orderEvent{}))
		require.NoError(t, err)
		for _, field := range desc.Fields() {
			assert.NotEqual(t, "internal", field.Name)
		}
	})

	t.Run("With every unsupported field reported", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(badEvent{}))
		require.Error(t, err)
		assert.Nil(t, desc)
		assert.True(t, errors.Is(err, gerrors.ErrSerializationSetup))
		assert.Contains(t, err.Error(), "Stream")
		assert.Contains(t, err.Error(), "Done")
	})

	t.Run("With nil type", func(t *testing.T) {
		desc, err := builder.Build(nil)
		require.Error(t, err)
		assert.Nil(t, desc)
		assert.True(t, errors.Is(err, gerrors.ErrSerializationSetup))
	})

	t.Run("With enum flag", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(severity(0)))
		require.NoError(t, err)
		assert.True(t, desc.Flags().Has(FlagEnum))
		assert.Empty(t, desc.Fields())
	})

	t.Run("With binary marshaler flag", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(selfDescribing{}))
		require.NoError(t, err)
		assert.True(t, desc.Flags().Has(FlagBinaryMarshaler))
	})

	t.Run("With default wire id", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(orderEvent{}))
		require.NoError(t, err)
		assert.Equal(t, WireID(TypeNameOf(new(orderEvent))), desc.ID())
	})

	t.Run("With directory declared id", func(t *testing.T) {
		directory := NewDirectory()
		directory.Add(7, TypeNameOf(new(orderEvent)))

		declared := NewBuilder(WithBuilderDirectory(directory))
		desc, err := declared.Build(reflect.TypeOf(orderEvent{}))
		require.NoError(t, err)
		assert.Equal(t, uint32(7), desc.ID())
	})

	t.Run("With versioned requirement", func(t *testing.T) {
		strict := NewBuilder(WithRequireVersioned())

		desc, err := strict.Build(reflect.TypeOf(orderEvent{}))
		require.Error(t, err)
		assert.Nil(t, desc)
		assert.True(t, errors.Is(err, gerrors.ErrSerializationSetup))

		// a published schema version satisfies the policy
		_, err = strict.Build(reflect.TypeOf(versionedEvent{}))
		require.NoError(t, err)

		// self-encoding types are exempt
		_, err = strict.Build(reflect.TypeOf(selfDescribing{}))
		require.NoError(t, err)
	})

	t.Run("With name", func(t *testing.T) {
		desc, err := builder.Build(reflect.TypeOf(orderEvent{}))
		require.NoError(t, err)
		assert.Equal(t, "github.com/tochemey/gridwire/schema.orderEvent", desc.Name())
	})
}
