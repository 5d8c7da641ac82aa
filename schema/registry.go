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
	"fmt"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/gridwire/errors"
	"github.com/tochemey/gridwire/internal/xsync"
	"github.com/tochemey/gridwire/log"
)

// Registry is the concurrent descriptor cache: one map keyed by type
// identity, one by numeric wire id. Both maps share descriptor instances
// opportunistically but are not required to stay in lock-step; a descriptor
// reachable only by id is legal.
//
// Concurrent first-time resolutions of the same type may construct redundant
// descriptors; the first successful insertion wins and later racers discard
// their own construction and reuse the winner. Descriptors are never mutated
// after publication, so readers never observe a partially constructed one.
type Registry struct {
	byType *xsync.Map[reflect.Type, *Descriptor]
	byID   *xsync.Map[uint32, *Descriptor]

	// owners and owned track which loader defined which type; they are
	// registration state, not cache state, and survive Reset.
	owners *xsync.Map[reflect.Type, *Loader]
	owned  *xsync.Map[string, mapset.Set[reflect.Type]]

	builder   Builder
	directory Directory
	logger    log.Logger

	hits   atomic.Int64
	misses atomic.Int64
	builds atomic.Int64
}

// Option configures a registry at creation time.
type Option func(*Registry)

// WithBuilder sets the descriptor builder.
func WithBuilder(builder Builder) Option {
	return func(r *Registry) {
		r.builder = builder
	}
}

// WithDirectory sets the wire-id directory consulted by ResolveByID. When no
// builder is supplied the directory is also wired into the default builder
// so declared ids take effect on construction.
func WithDirectory(directory Directory) Option {
	return func(r *Registry) {
		r.directory = directory
	}
}

// WithLogger sets the logger for debug-level cache events. Defaults to the
// discard logger; the registry never logs errors, it propagates them.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	registry := &Registry{
		byType: xsync.NewMap[reflect.Type, *Descriptor](),
		byID:   xsync.NewMap[uint32, *Descriptor](),
		owners: xsync.NewMap[reflect.Type, *Loader](),
		owned:  xsync.NewMap[string, mapset.Set[reflect.Type]](),
		logger: log.DiscardLogger,
	}

	for _, opt := range opts {
		opt(registry)
	}

	if registry.builder == nil {
		registry.builder = NewBuilder(WithBuilderDirectory(registry.directory))
	}

	return registry
}

// defaultRegistry is the process-wide registry shared by components that are
// not handed an explicit instance.
var defaultRegistry = NewRegistry(WithDirectory(NewDirectory()))

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// RegisterTypes defines the given types in the loader and records the loader
// as their owner, so a later OnUnload(loader) evicts their descriptors. When
// the registry's directory is a MapDirectory the types are also published
// under their wire ids for by-id resolution. Pass a value of each type,
// typically a pointer to the zero value.
func (r *Registry) RegisterTypes(loader *Loader, values ...any) {
	loader.Define(values...)

	for _, v := range values {
		rtype := reflectType(v)
		r.owners.Set(rtype, loader)
		members, _ := r.owned.GetOrSet(loader.Name(), mapset.NewSet[reflect.Type]())
		members.Add(rtype)
	}

	if directory, ok := r.directory.(*MapDirectory); ok {
		directory.AddTypes(values...)
	}
}

// ResolveByType returns the cached descriptor for t, constructing and
// publishing it on first resolution. It never returns a nil descriptor with
// a nil error. Construction failures surface as errors.ErrSerializationSetup.
func (r *Registry) ResolveByType(t reflect.Type) (*Descriptor, error) {
	if desc, ok := r.byType.Get(t); ok {
		r.hits.Inc()
		return desc, nil
	}

	r.misses.Inc()

	desc, err := r.builder.Build(t)
	if err != nil {
		return nil, err
	}
	r.builds.Inc()

	if loader, ok := r.owners.Get(t); ok {
		desc.loader = loader
	}

	winner, loaded := r.byType.GetOrSet(t, desc)
	if !loaded {
		// First successful insertion: share the descriptor with the by-id
		// map opportunistically.
		r.byID.GetOrSet(winner.id, winner)
		r.logger.Debugf("cached descriptor type=%s id=%d fingerprint=%d", winner.name, winner.id, winner.fingerprint)
	}

	return winner, nil
}

// ResolveByID returns the cached descriptor for a wire id. On a miss it maps
// the id to a qualified type name through the directory, resolves the type
// with the given loader, and caches the constructed descriptor under the id.
// It returns errors.ErrUnknownType when the id cannot be mapped to a loadable
// type, and errors.ErrSerializationSetup for construction failures.
func (r *Registry) ResolveByID(id uint32, loader *Loader) (*Descriptor, error) {
	if desc, ok := r.byID.Get(id); ok {
		r.hits.Inc()
		return desc, nil
	}

	r.misses.Inc()

	if r.directory == nil {
		return nil, fmt.Errorf("%w: no directory configured for id=%d", gerrors.ErrUnknownType, id)
	}

	name, ok := r.directory.NameForID(id)
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", gerrors.ErrUnknownType, id)
	}

	if loader == nil {
		return nil, fmt.Errorf("%w: no loader supplied for %s", gerrors.ErrUnknownType, name)
	}

	rtype, ok := loader.TypeOf(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not defined by loader %s", gerrors.ErrUnknownType, name, loader.Name())
	}

	desc, err := r.ResolveByType(rtype)
	if err != nil {
		return nil, err
	}

	winner, _ := r.byID.GetOrSet(id, desc)
	return winner, nil
}

// OnUnload removes every cached-by-type entry whose type was defined by the
// loader, along with by-id entries holding those descriptors, so subsequent
// resolutions reconstruct. Readers already holding a descriptor keep using
// it; removal only affects future lookups. A resolution in flight during the
// unload may legitimately re-cache an entry the unload does not see; that
// staleness window is accepted, not locked away.
func (r *Registry) OnUnload(loader *Loader) {
	if loader == nil {
		return
	}

	members, ok := r.owned.Get(loader.Name())
	if !ok {
		return
	}

	// Only cache entries go; the loader tags stay attached so a later
	// re-resolution is stamped with its owner again.
	evicted := 0
	members.Each(func(rtype reflect.Type) bool {
		r.byType.Delete(rtype)
		evicted++
		return false
	})

	staleIDs := make([]uint32, 0, evicted)
	r.byID.Range(func(id uint32, desc *Descriptor) {
		if desc.loader == loader {
			staleIDs = append(staleIDs, id)
		}
	})
	for _, id := range staleIDs {
		r.byID.Delete(id)
	}

	r.logger.Debugf("unloaded loader=%s types=%d", loader.Name(), evicted)
}

// Reset clears both descriptor maps unconditionally. It is intended for test
// isolation only: it does not understand loader ownership and must not be
// used as a production invalidation path.
func (r *Registry) Reset() {
	r.byType.Reset()
	r.byID.Reset()
}

// Stats is a snapshot of the registry's cache counters.
type Stats struct {
	// Hits counts resolutions served from a cache map.
	Hits int64
	// Misses counts resolutions that did not find a cached entry.
	Misses int64
	// Builds counts successful descriptor constructions, including redundant
	// ones that lost the insertion race.
	Builds int64
}

// Stats returns a snapshot of the cache counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
		Builds: r.builds.Load(),
	}
}
