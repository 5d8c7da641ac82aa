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

	"github.com/tochemey/gridwire/internal/xsync"
)

// Loader is a named logical scope that owns a set of loadable types. It is
// the unload unit of the registry: types defined through a loader are
// collectively invalidated when the loader is unloaded. It also resolves
// qualified type names for wire-id lookups, standing in for a dynamic
// type-loading context.
type Loader struct {
	name  string
	types *xsync.Map[string, reflect.Type]
}

// NewLoader creates a loader with the given scope name.
func NewLoader(name string) *Loader {
	return &Loader{
		name:  name,
		types: xsync.NewMap[string, reflect.Type](),
	}
}

// Name returns the loader's scope name.
func (l *Loader) Name() string {
	return l.name
}

// Define registers types with the loader. Pass a value of each type,
// typically a pointer to the zero value:
//
//	loader.Define(new(OrderEvent), new(TradeTick))
func (l *Loader) Define(values ...any) {
	for _, v := range values {
		rtype := reflectType(v)
		l.types.Set(typeName(rtype), rtype)
	}
}

// TypeOf resolves a qualified type name to the runtime type the loader
// defines for it.
func (l *Loader) TypeOf(name string) (reflect.Type, bool) {
	return l.types.Get(name)
}

// Types returns the qualified names of every type the loader defines.
func (l *Loader) Types() []string {
	return l.types.Keys()
}
