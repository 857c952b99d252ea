/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package typeinfo

// The constructors below build a Type tree in memory. They exist so that
// callers that are not fed a Type by the real typeinfo decoder (tests, the
// examples in this repository, a host embedding this package directly) have
// a convenient way to describe one. The decoder that turns a serialized
// typeinfo chunk into a Type tree lives outside this module; see §1 of the
// design notes.

// NewInt returns the primitive Int type: a 4-byte little-endian signed
// integer.
func NewInt() *Type { return &Type{Kind: Int, Name: "Int"} }

// NewFixed returns the Fixed type: a 32-bit fixed-point value with an
// implicit scale factor of 1000.
func NewFixed() *Type { return &Type{Kind: Fixed, Name: "Fixed"} }

// NewBoolean returns the Boolean type.
func NewBoolean() *Type { return &Type{Kind: Boolean, Name: "Bool"} }

// NewChar returns the Char type, encoded on the wire exactly like Int.
func NewChar() *Type { return &Type{Kind: Char, Name: "Char"} }

// NewString returns the String type.
func NewString() *Type { return &Type{Kind: String, Name: "String"} }

// NewBlob returns the Blob type: an uninterpreted octet sequence.
func NewBlob() *Type { return &Type{Kind: Blob, Name: "Blob"} }

// NewFunction returns the unserializable Function type.
func NewFunction() *Type { return &Type{Kind: Function, Name: "Function"} }

// NewAny, NewAnyMatchingTypes and NewResourceName are the three special
// forms that the ASCII printer renders as placeholders and every serializer
// rejects outright.
func NewAny() *Type             { return &Type{Kind: Any, Name: "Any"} }
func NewAnyMatchingTypes() *Type { return &Type{Kind: AnyMatchingTypes, Name: "AnyMatchingTypes"} }
func NewResourceName() *Type    { return &Type{Kind: ResourceName, Name: "ResourceName"} }

// NewRecord returns a Record type with the given name and fields, in
// declared order.
func NewRecord(name string, fields ...Field) *Type {
	return &Type{Kind: Record, Name: name, Fields: fields}
}

// NewTuple returns a Tuple type. Fields are positional and NewTuple leaves
// each Field.Name empty; the binary encoder and decoder and the ASCII
// printer never read it, while the YAML emitter and parser use it as the key
// of each element's line.
func NewTuple(items ...*Type) *Type {
	fields := make([]Field, len(items))
	for i, t := range items {
		fields[i] = Field{Type: t}
	}
	return &Type{Kind: Tuple, Name: "Tuple", Fields: fields}
}

// NewArray returns a fixed-size homogeneous Array type of the given item
// type, count and per-item flat-layout footprint.
func NewArray(item *Type, count int, itemSize, itemAlign uint32) *Type {
	return &Type{
		Kind: Array, Name: "Array", Item: item,
		FixedCount: count, ItemSize: itemSize, ItemAlign: itemAlign,
	}
}

// NewList returns a variable-length homogeneous List type of the given item
// type and per-item flat-layout footprint.
func NewList(item *Type, itemSize, itemAlign uint32) *Type {
	return &Type{Kind: List, Name: "List", Item: item, ItemSize: itemSize, ItemAlign: itemAlign}
}

// NewCustom returns a Custom tagged union with the given name and variants.
// Variant.Index must match each variant's position on the wire (the 1-byte
// discriminant written before its fields).
func NewCustom(name string, variants ...Variant) *Type {
	return &Type{Kind: Custom, Name: name, Variants: variants}
}

// NewAlias returns an Alias named name that stands transparently for target.
func NewAlias(name string, target *Type) *Type {
	return &Type{Kind: Alias, Name: name, Target: target}
}

// NewUnmanaged returns an Unmanaged type identified by name. The name is
// passed to the unmanaged factory so it can decide which concrete host type
// to construct; see package unmanaged.
func NewUnmanaged(name string) *Type {
	return &Type{Kind: Unmanaged, Name: name}
}
