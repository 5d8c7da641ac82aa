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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	t.Run("With wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("%w: type=%d", ErrUnknownType, 42)
		assert.True(t, errors.Is(wrapped, ErrUnknownType))
		assert.False(t, errors.Is(wrapped, ErrSerializationSetup))
	})

	t.Run("With join", func(t *testing.T) {
		cause := errors.New("connection reset")
		joined := errors.Join(ErrIO, cause)
		assert.True(t, errors.Is(joined, ErrIO))
		assert.True(t, errors.Is(joined, cause))
	})

	t.Run("With distinct kinds", func(t *testing.T) {
		kinds := []error{ErrSerializationSetup, ErrUnknownType, ErrUnsupportedPayload, ErrIO}
		for i, a := range kinds {
			for j, b := range kinds {
				if i != j {
					assert.False(t, errors.Is(a, b))
				}
			}
		}
	})
}
