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

// Package rawfield reads and writes typed struct fields at a precomputed byte
// offset, bypassing per-field reflective lookups on the serialization hot
// path.
//
// Every accessor takes the base address of a struct instance (see [BaseOf])
// and a field offset previously computed by the schema builder from the
// concrete type's layout. No bounds or type checking is performed: passing an
// offset that was not produced by the builder for a field of the matching
// kind on a compatible type is undefined behavior, not a recoverable error.
// Offsets are validated once, at descriptor build time, never per call.
//
// The accessors perform no synchronization. Callers that mutate a field
// concurrently with other accesses must provide their own ordering per the Go
// memory model.
package rawfield

import (
	"reflect"
	"unsafe"
)

// BaseOf returns the base address of the struct a non-nil pointer points to.
// The returned address is only valid while the caller keeps the original
// pointer reachable. BaseOf panics when v is not a non-nil pointer; every
// other misuse of this package is undefined behavior.
func BaseOf(v any) unsafe.Pointer {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		panic("rawfield: BaseOf requires a non-nil pointer")
	}
	return unsafe.Pointer(rv.Pointer())
}

// Int8 reads the int8 field at the given offset.
func Int8(base unsafe.Pointer, off uintptr) int8 {
	return *(*int8)(unsafe.Add(base, off))
}

// SetInt8 writes the int8 field at the given offset.
func SetInt8(base unsafe.Pointer, off uintptr, v int8) {
	*(*int8)(unsafe.Add(base, off)) = v
}

// Int16 reads the int16 field at the given offset.
func Int16(base unsafe.Pointer, off uintptr) int16 {
	return *(*int16)(unsafe.Add(base, off))
}

// SetInt16 writes the int16 field at the given offset.
func SetInt16(base unsafe.Pointer, off uintptr, v int16) {
	*(*int16)(unsafe.Add(base, off)) = v
}

// Int32 reads the int32 field at the given offset.
func Int32(base unsafe.Pointer, off uintptr) int32 {
	return *(*int32)(unsafe.Add(base, off))
}

// SetInt32 writes the int32 field at the given offset.
func SetInt32(base unsafe.Pointer, off uintptr, v int32) {
	*(*int32)(unsafe.Add(base, off)) = v
}

// Int64 reads the int64 field at the given offset.
func Int64(base unsafe.Pointer, off uintptr) int64 {
	return *(*int64)(unsafe.Add(base, off))
}

// SetInt64 writes the int64 field at the given offset.
func SetInt64(base unsafe.Pointer, off uintptr, v int64) {
	*(*int64)(unsafe.Add(base, off)) = v
}

// Float32 reads the float32 field at the given offset.
func Float32(base unsafe.Pointer, off uintptr) float32 {
	return *(*float32)(unsafe.Add(base, off))
}

// SetFloat32 writes the float32 field at the given offset.
func SetFloat32(base unsafe.Pointer, off uintptr, v float32) {
	*(*float32)(unsafe.Add(base, off)) = v
}

// Float64 reads the float64 field at the given offset.
func Float64(base unsafe.Pointer, off uintptr) float64 {
	return *(*float64)(unsafe.Add(base, off))
}

// SetFloat64 writes the float64 field at the given offset.
func SetFloat64(base unsafe.Pointer, off uintptr, v float64) {
	*(*float64)(unsafe.Add(base, off)) = v
}

// Rune reads the rune (character) field at the given offset.
func Rune(base unsafe.Pointer, off uintptr) rune {
	return *(*rune)(unsafe.Add(base, off))
}

// SetRune writes the rune (character) field at the given offset.
func SetRune(base unsafe.Pointer, off uintptr, v rune) {
	*(*rune)(unsafe.Add(base, off)) = v
}

// Bool reads the bool field at the given offset.
func Bool(base unsafe.Pointer, off uintptr) bool {
	return *(*bool)(unsafe.Add(base, off))
}

// SetBool writes the bool field at the given offset.
func SetBool(base unsafe.Pointer, off uintptr, v bool) {
	*(*bool)(unsafe.Add(base, off)) = v
}

// Ref reads the reference field of declared type t at the given offset. The
// access goes through reflect.NewAt so the garbage collector always observes
// a well-formed pointer slot.
func Ref(base unsafe.Pointer, off uintptr, t reflect.Type) any {
	return reflect.NewAt(t, unsafe.Add(base, off)).Elem().Interface()
}

// SetRef writes the reference field of declared type t at the given offset.
// A nil v stores the zero value of t.
func SetRef(base unsafe.Pointer, off uintptr, t reflect.Type, v any) {
	slot := reflect.NewAt(t, unsafe.Add(base, off)).Elem()
	if v == nil {
		slot.Set(reflect.Zero(t))
		return
	}
	slot.Set(reflect.ValueOf(v))
}
