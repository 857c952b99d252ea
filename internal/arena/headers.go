/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package arena

// String is the heap header for a dynamically-sized string value. It mirrors
// the flat-layout shape `String{characterCount, characters[0-terminated]}`:
// Bytes never includes the trailing NUL the wire format appends, since Go
// strings are not NUL-terminated.
type String struct {
	Bytes []byte
}

// CharacterCount returns the number of bytes in the string, not counting the
// wire-format terminator.
func (s *String) CharacterCount() int { return len(s.Bytes) }

func (s *String) String() string { return string(s.Bytes) }

// Blob is the heap header for an uninterpreted octet sequence.
type Blob struct {
	Octets []byte
}

// OctetCount returns the number of octets in the blob.
func (b *Blob) OctetCount() int { return len(b.Octets) }

// Array is the heap header for a fixed-size homogeneous sequence. Value
// holds Count items, each logically ItemSize bytes in the flat layout the
// RTTI describes; in this implementation Value is a slice of whatever the
// item representation the caller put there (see dump.Value for the shape
// used by the core).
type Array struct {
	Count    int
	ItemSize uint32
	Value    []any
}

// List is the heap header for a variable-length homogeneous sequence. Same
// shape as Array; kept as a distinct type because the two kinds have
// distinct wire and text representations even though their headers coincide.
type List struct {
	Count    int
	ItemSize uint32
	Value    []any
}

// UnmanagedSlot is the heap header for an opaque, host-defined value. The
// core never looks inside Ptr; it only calls the three installed callbacks.
// See package unmanaged for the factory contract that installs these.
type UnmanagedSlot struct {
	TypeName string
	Ptr      any

	// Serialize writes the value's encoding into buf and returns the number
	// of bytes written, or a negative error code on failure.
	Serialize func(buf []byte) (int, error)

	// Deserialize reads the value's encoding from buf and returns the number
	// of bytes consumed, or a negative error code on failure.
	Deserialize func(buf []byte) (int, error)

	// ToString renders the value for the ASCII printer.
	ToString func() string
}

// AlignOf suggests a natural alignment for an item of the given flat-layout
// size. This allocator does not place items in a raw buffer, so the result
// is never dereferenced; it exists only so callers that got itemAlign from a
// decoded typeinfo chunk have something sensible to pass through when they
// don't have a real alignment of their own (e.g. NewArray/NewList in the
// root package).
func AlignOf(itemSize uint32) uint32 {
	switch {
	case itemSize >= 8:
		return 8
	case itemSize >= 4:
		return 4
	case itemSize >= 2:
		return 2
	default:
		return 1
	}
}

// AllocString allocates a String header holding a copy of data.
func (a *Arena) AllocString(data []byte) *String {
	cp := append([]byte(nil), data...)
	return New(a, String{Bytes: cp})
}

// AllocBlob allocates a Blob header holding a copy of data.
func (a *Arena) AllocBlob(data []byte) *Blob {
	cp := append([]byte(nil), data...)
	return New(a, Blob{Octets: cp})
}

// AllocArrayPrepared allocates an Array header with count uninitialized
// item slots, ready for the caller to fill in by index.
func (a *Arena) AllocArrayPrepared(count int, itemSize, itemAlign uint32) *Array {
	_ = itemAlign // carried for contract fidelity; this allocator needs no alignment of its own.
	return New(a, Array{Count: count, ItemSize: itemSize, Value: make([]any, count)})
}

// AllocListPrepared allocates a List header with count uninitialized item
// slots, ready for the caller to fill in by index.
func (a *Arena) AllocListPrepared(count int, itemSize, itemAlign uint32) *List {
	_ = itemAlign
	return New(a, List{Count: count, ItemSize: itemSize, Value: make([]any, count)})
}

// AllocUnmanaged allocates an empty UnmanagedSlot named typeName, ready for
// a factory callback to install its Ptr and function pointers.
func (a *Arena) AllocUnmanaged(typeName string) *UnmanagedSlot {
	return New(a, UnmanagedSlot{TypeName: typeName})
}
