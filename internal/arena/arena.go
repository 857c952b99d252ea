/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

// Package arena is an append-only allocator for the heap-backed headers that
// back String, Blob, Array, List and Unmanaged values: see §3 of the design
// notes ("Arenas").
//
// Unlike a C arena, this one hands out ordinary Go pointers rather than
// offsets into a raw byte slab: the values it allocates already participate
// in the garbage collector's normal tracing, so there is no need for the
// keep-alive-by-aliasing trick a non-collected runtime would require. What
// an Arena buys us instead is the one property the decoder actually needs:
// a single place the caller can point at to say "everything reachable from
// here has the same lifetime", and a cheap way to discard it all at once.
package arena

// Arena is an append-only store of decoded heap objects. The zero Arena is
// empty and ready to use.
//
// A decode call is handed two arenas: one for ordinary dynamic values
// (String, Blob, Array, List) and a second, separate one for
// Unmanaged values, so a caller that wants to tear down host objects on a
// different schedule than plain data can do so (see the Unmanaged arena
// discussion in §3).
type Arena struct {
	objects []any
	live    int
}

// New allocates a copy of value on the arena and returns a pointer to it.
func New[T any](a *Arena, value T) *T {
	p := new(T)
	*p = value
	a.objects = append(a.objects, p)
	a.live++
	return p
}

// Count returns the number of objects allocated on this arena since the last
// Free.
func (a *Arena) Count() int { return a.live }

// Free discards every object this arena has allocated. Any pointer obtained
// from this arena must not be used after Free; the caller alone is
// responsible for knowing when that is safe, per the resource model in §5.
func (a *Arena) Free() {
	a.objects = a.objects[:0]
	a.live = 0
}
