/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

// Package ascii renders a dump.Value as a human-readable ASCII form: a
// colored variant using ANSI SGR escapes, and a plain variant that omits
// them. Neither is meant to be parsed back; see package yamldump for the
// text format in this module that round-trips.
package ascii

// Flags selects optional rendering behavior, per §4.4 of the design notes.
type Flags uint32

const (
	// Alias prefixes an aliased value with "AliasName => " at every level
	// of aliasing encountered during the walk.
	Alias Flags = 1 << iota
	// BlobExpanded renders up to the first 2048 bytes of a Blob instead of
	// just its length.
	BlobExpanded
	// BlobAscii selects ASCII-wrapped rendering for an expanded Blob.
	// Ignored if BlobAutoFormat is also set.
	BlobAscii
	// BlobAutoFormat chooses ASCII or hex rendering per-blob, based on
	// whether every shown byte is printable.
	BlobAutoFormat
	// CustomTypeVariantPrefix prepends "TypeName:" before a Custom
	// variant's name.
	CustomTypeVariantPrefix
)

// printerState holds internal, one-shot printer state, not caller-facing
// flags. printTuple sets aliasOnce before each element, so an element whose
// type is an Alias is printed with its "AliasName => " prefix even without
// the Alias flag; printValue clears it at the next node it reaches, alias or
// not. noQuotesOnce, when set, makes the next String print without quotes;
// nothing in this package sets it.
type printerState struct {
	aliasOnce       bool
	noQuotesOnce    bool
}
