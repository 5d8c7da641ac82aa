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
	"reflect"

	"github.com/google/uuid"
)

// HandleTable is the encode-side, session-scoped mapping from object
// identity to a monotonically assigned integer handle. The stream writer
// assigns a handle the moment it starts encoding an object (before any field
// is written) and consults the table before encoding every nested reference,
// so shared and cyclic references, including self-references reached while
// the object's own fields are still being written, emit TagHandle instead
// of recursing.
//
// A table lives for exactly one serialization session and is not safe for
// concurrent use; sessions are single-threaded by construction.
type HandleTable struct {
	session string
	handles map[uintptr]int
}

// NewHandleTable creates an empty table with a fresh session id.
func NewHandleTable() *HandleTable {
	return &HandleTable{
		session: uuid.NewString(),
		handles: make(map[uintptr]int),
	}
}

// Session returns the session id, used only in diagnostics.
func (h *HandleTable) Session() string {
	return h.session
}

// Assign returns the handle for obj, assigning the next one when the object
// has not been seen in this session. The boolean reports whether the object
// already had a handle, in which case the caller emits TagHandle.
func (h *HandleTable) Assign(obj any) (int, bool) {
	key := identityOf(obj)
	if handle, ok := h.handles[key]; ok {
		return handle, true
	}
	handle := len(h.handles)
	h.handles[key] = handle
	return handle, false
}

// Lookup returns the handle already assigned to obj in this session.
func (h *HandleTable) Lookup(obj any) (int, bool) {
	handle, ok := h.handles[identityOf(obj)]
	return handle, ok
}

// Len returns the number of objects assigned a handle in this session.
func (h *HandleTable) Len() int {
	return len(h.handles)
}

// identityOf derives the identity key of a reference value. Object-graph
// nodes are reference kinds; handle identity over value kinds is meaningless
// and panics.
func identityOf(obj any) uintptr {
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.Pointer()
	default:
		panic("schema: handle identity requires a reference value")
	}
}

// HandleList is the decode-side counterpart: objects register in encounter
// order as they materialize, and back-references resolve by handle index.
// Like HandleTable it is session-scoped and not safe for concurrent use.
type HandleList struct {
	objects []any
}

// NewHandleList creates an empty list.
func NewHandleList() *HandleList {
	return &HandleList{}
}

// Register appends a freshly materialized object and returns its handle. The
// stream reader registers an object before decoding its fields, mirroring
// the encode-side assignment point, so self-references resolve.
func (l *HandleList) Register(obj any) int {
	l.objects = append(l.objects, obj)
	return len(l.objects) - 1
}

// Resolve returns the object registered under the given handle.
func (l *HandleList) Resolve(handle int) (any, bool) {
	if handle < 0 || handle >= len(l.objects) {
		return nil, false
	}
	return l.objects[handle], true
}

// Len returns the number of registered objects.
func (l *HandleList) Len() int {
	return len(l.objects)
}
