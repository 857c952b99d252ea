/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

// Package typeinfo is the runtime type information (RTTI) tree that drives
// every traversal in [github.com/swamp/dump]. A Type is read-only and
// externally owned: the dump engine never mutates one, it only walks it
// alongside a value of the same shape.
package typeinfo

import "fmt"

// Kind discriminates the shape of a Type node. Every serializer in this
// module dispatches on Kind, never on the value being serialized.
type Kind int

const (
	Int Kind = iota
	Fixed
	Boolean
	Char
	String
	Blob
	Record
	Tuple
	Array
	List
	Custom
	Alias
	Function
	Unmanaged
	Any
	AnyMatchingTypes
	ResourceName
)

var kindNames = [...]string{
	Int: "Int", Fixed: "Fixed", Boolean: "Boolean", Char: "Char",
	String: "String", Blob: "Blob", Record: "Record", Tuple: "Tuple",
	Array: "Array", List: "List", Custom: "Custom", Alias: "Alias",
	Function: "Function", Unmanaged: "Unmanaged", Any: "Any",
	AnyMatchingTypes: "AnyMatchingTypes", ResourceName: "ResourceName",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Simple reports whether k renders inline in the ASCII printer (see
// printRecord in package ascii): Boolean, Int, Fixed and String never force
// a newline before the field that holds them.
func (k Kind) Simple() bool {
	switch k {
	case Boolean, Int, Fixed, String:
		return true
	default:
		return false
	}
}
