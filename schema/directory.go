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
	"github.com/tochemey/gridwire/internal/xsync"
)

// Directory maps a compact numeric wire id to the qualified name of a
// loadable type. The registry consults it on a by-id cache miss before asking
// the loader for the type itself.
type Directory interface {
	// NameForID returns the qualified type name registered for a wire id.
	NameForID(id uint32) (string, bool)
}

// IDDirectory is the optional upgrade a Directory can implement to declare
// explicit wire ids. The builder prefers a declared id over the hash-derived
// default, which lets a deployment keep ids stable across renames.
type IDDirectory interface {
	// IDForName returns the declared wire id for a qualified type name.
	IDForName(name string) (uint32, bool)
}

// MapDirectory is an in-memory Directory safe for concurrent use.
type MapDirectory struct {
	names *xsync.Map[uint32, string]
	ids   *xsync.Map[string, uint32]
}

var (
	_ Directory   = (*MapDirectory)(nil)
	_ IDDirectory = (*MapDirectory)(nil)
)

// NewDirectory creates an empty MapDirectory.
func NewDirectory() *MapDirectory {
	return &MapDirectory{
		names: xsync.NewMap[uint32, string](),
		ids:   xsync.NewMap[string, uint32](),
	}
}

// Add declares an explicit id for a qualified type name.
func (d *MapDirectory) Add(id uint32, name string) {
	d.names.Set(id, name)
	d.ids.Set(name, id)
}

// AddTypes declares the given types under their default hash-derived ids.
// Pass a value of each type, typically a pointer to the zero value.
func (d *MapDirectory) AddTypes(values ...any) {
	for _, v := range values {
		name := TypeNameOf(v)
		d.Add(WireID(name), name)
	}
}

// NameForID implements Directory.
func (d *MapDirectory) NameForID(id uint32) (string, bool) {
	return d.names.Get(id)
}

// IDForName implements IDDirectory.
func (d *MapDirectory) IDForName(name string) (uint32, bool) {
	return d.ids.Get(name)
}
