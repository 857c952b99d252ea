/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package dump

import "github.com/swamp/dump/internal/arena"

// Value is an in-memory swamp value: the counterpart to a typeinfo.Type
// node, one level down. Per the design notes (§9, "Type-driven dispatch
// with flat layout"), this module takes the memory-safe option explicitly
// preferred there: a parallel tree of typed values whose shape is
// determined at runtime from the RTTI, rather than raw offset arithmetic
// over a byte buffer. A Value therefore carries no kind tag of its own --
// which field is meaningful is decided entirely by the typeinfo.Type the
// traversal is holding at the same moment, exactly as a flat-layout read at
// `target + field.offset` would be decided by the type, not by anything
// stored at that address.
//
// The zero Value is the zero value of every kind simultaneously (false, 0,
// no fields); constructors below exist for clarity at call sites, not
// because the zero value is unsafe to use directly.
type Value struct {
	Bool bool  // Boolean
	Int  int32 // Int, Fixed, Char

	Str  *arena.String // String
	Blob *arena.Blob   // Blob

	Fields []Value // Record, Tuple: one entry per typeinfo.Type.Fields

	Variant       int     // Custom: index into typeinfo.Type.Variants
	VariantFields []Value // Custom: one entry per the chosen variant's Fields

	Arr  *arena.Array // Array
	List *arena.List  // List

	Unmanaged *arena.UnmanagedSlot // Unmanaged
}

func NewBool(v bool) Value { return Value{Bool: v} }
func NewInt(v int32) Value { return Value{Int: v} }
func NewFixed(v int32) Value { return Value{Int: v} }
func NewChar(v rune) Value { return Value{Int: int32(v)} }

// NewString allocates a String header on a and wraps it in a Value.
func NewString(a *arena.Arena, s string) Value {
	return Value{Str: a.AllocString([]byte(s))}
}

// NewBlob allocates a Blob header on a and wraps it in a Value.
func NewBlob(a *arena.Arena, octets []byte) Value {
	return Value{Blob: a.AllocBlob(octets)}
}

// NewRecord wraps field values in declared order. Used for both Record and
// Tuple kinds.
func NewRecord(fields ...Value) Value { return Value{Fields: fields} }

// NewCustom wraps a Custom value: variant is the index into the type's
// Variants, params are that variant's field values in declared order.
func NewCustom(variant int, params ...Value) Value {
	return Value{Variant: variant, VariantFields: params}
}

// NewArray allocates an Array header on a holding items, boxed for storage
// in the arena's untyped Value slice.
func NewArray(a *arena.Arena, itemSize uint32, items []Value) Value {
	hdr := a.AllocArrayPrepared(len(items), itemSize, arena.AlignOf(itemSize))
	for i, v := range items {
		hdr.Value[i] = v
	}
	return Value{Arr: hdr}
}

// NewList allocates a List header on a holding items.
func NewList(a *arena.Arena, itemSize uint32, items []Value) Value {
	hdr := a.AllocListPrepared(len(items), itemSize, arena.AlignOf(itemSize))
	for i, v := range items {
		hdr.Value[i] = v
	}
	return Value{List: hdr}
}

// NewUnmanaged wraps an already-constructed UnmanagedSlot.
func NewUnmanaged(slot *arena.UnmanagedSlot) Value { return Value{Unmanaged: slot} }

// arrayItems and listItems unbox the untyped per-item storage back into
// []Value, the shape every dispatcher in this package actually walks.
func arrayItems(a *arena.Array) []Value {
	out := make([]Value, len(a.Value))
	for i, v := range a.Value {
		out[i], _ = v.(Value)
	}
	return out
}

func listItems(l *arena.List) []Value {
	out := make([]Value, len(l.Value))
	for i, v := range l.Value {
		out[i], _ = v.(Value)
	}
	return out
}

// ArrayItems returns the items of v.Arr as []Value. It is the exported
// counterpart of arrayItems, for the ascii and yamldump packages, which walk
// a Value tree but live outside this package.
func (v Value) ArrayItems() []Value {
	if v.Arr == nil {
		return nil
	}
	return arrayItems(v.Arr)
}

// ListItems returns the items of v.List as []Value.
func (v Value) ListItems() []Value {
	if v.List == nil {
		return nil
	}
	return listItems(v.List)
}
