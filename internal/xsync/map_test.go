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

package xsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("With set and get", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("foo", 42)
		value, ok := m.Get("foo")
		require.True(t, ok)
		assert.Equal(t, 42, value)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("With get or set", func(t *testing.T) {
		m := NewMap[string, int]()
		value, loaded := m.GetOrSet("foo", 1)
		assert.False(t, loaded)
		assert.Equal(t, 1, value)

		value, loaded = m.GetOrSet("foo", 2)
		assert.True(t, loaded)
		assert.Equal(t, 1, value)
	})

	t.Run("With concurrent get or set", func(t *testing.T) {
		m := NewMap[string, *int]()
		winners := make([]*int, 16)
		var wg sync.WaitGroup
		for i := range winners {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				candidate := new(int)
				*candidate = slot
				winner, _ := m.GetOrSet("key", candidate)
				winners[slot] = winner
			}(i)
		}
		wg.Wait()

		for _, winner := range winners {
			assert.Same(t, winners[0], winner)
		}
	})

	t.Run("With delete and reset", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)
		m.Delete("a")
		_, ok := m.Get("a")
		assert.False(t, ok)
		assert.ElementsMatch(t, []string{"b"}, m.Keys())

		m.Reset()
		assert.Equal(t, 0, m.Len())
	})

	t.Run("With range", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)
		seen := make(map[string]int)
		m.Range(func(k string, v int) {
			seen[k] = v
		})
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, seen)
	})
}
