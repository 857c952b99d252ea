/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

// Package unmanaged is the sole extension point that lets opaque,
// host-defined data cross the dump boundary (§4.7). A Factory installs the
// three callbacks an [arena.UnmanagedSlot] needs; the core never inspects
// the resulting Ptr, it only calls the callbacks it was handed.
package unmanaged

import (
	"fmt"

	"github.com/swamp/dump/internal/arena"
	"github.com/swamp/dump/typeinfo"
)

// Factory constructs a host object into slot for the given Unmanaged type.
// It must install Ptr and all three callbacks before returning; Decode calls
// Deserialize immediately afterwards, and the encoder and the ASCII printer
// call Serialize and ToString on the resulting slot later.
//
// ctx is passed through from the top-level Decode call unchanged, so a
// single Factory can serve several unrelated unmanaged type names by
// switching on t.Name.
type Factory func(ctx any, t *typeinfo.Type, slot *arena.UnmanagedSlot) error

// Registry is a name-indexed collection of constructors for unmanaged
// values, the shape suggested for the extension point in the design notes:
// "a registered factory map indexed by type name, returning an object that
// implements serialize/deserialize". It is not required by the core -- any
// Factory closure works -- but is convenient for hosts with more than a
// handful of unmanaged types.
type Registry struct {
	ctors map[string]func() (ptr any, serialize func([]byte) (int, error), deserialize func([]byte) (int, error), toString func() string)
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]func() (any, func([]byte) (int, error), func([]byte) (int, error), func() string))}
}

// Register associates name with a constructor. Calling Register twice for
// the same name replaces the previous constructor.
func (r *Registry) Register(
	name string,
	ctor func() (ptr any, serialize func([]byte) (int, error), deserialize func([]byte) (int, error), toString func() string),
) {
	r.ctors[name] = ctor
}

// Factory returns a Factory backed by this registry. Lookup by t.Name; an
// unregistered name is an error, matching the "missing factory" failure
// mode described in §4.3 (but discovered one level up, inside the registry,
// rather than as a nil *Factory).
func (r *Registry) Factory() Factory {
	return func(_ any, t *typeinfo.Type, slot *arena.UnmanagedSlot) error {
		ctor, ok := r.ctors[t.Name]
		if !ok {
			return fmt.Errorf("unmanaged: no constructor registered for %q", t.Name)
		}
		ptr, ser, de, str := ctor()
		slot.TypeName = t.Name
		slot.Ptr = ptr
		slot.Serialize = ser
		slot.Deserialize = de
		slot.ToString = str
		return nil
	}
}
