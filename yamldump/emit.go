/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

// Package yamldump converts between dump.Value and a conservative,
// block-style YAML 1.2 subset, per §4.5 and §4.6 of the design notes: two
// space indentation, "- " list markers, an optional "%YAML 1.2" prologue,
// and ">"/">@" block scalars for blobs. Comments, flow style, anchors, tags
// and quoted scalars are not supported in either direction.
//
// Unlike package ascii, this format round-trips: Parse(Emit(v, t), t)
// reproduces v structurally for type trees built from the kinds this package
// supports (no Function, Unmanaged or Any* node anywhere in the tree), within
// these limits: Emit returns an error for a sequence whose items are Tuples,
// Arrays or Lists, and for a Custom variant with a field that is not Int,
// Fixed, Boolean or Char; String values are written unquoted, so leading or
// trailing spaces and line breaks inside a string do not survive the trip.
package yamldump

import (
	"bytes"
	"fmt"
	"io"

	"github.com/swamp/dump"
	"github.com/swamp/dump/typeinfo"
)

const indentUnit = "  "

func prefix(level int) string {
	out := make([]byte, 0, len(indentUnit)*level)
	for range level {
		out = append(out, indentUnit...)
	}
	return string(out)
}

// Emit writes the "%YAML 1.2" prologue followed by the block-style encoding
// of v under type t.
func Emit(w io.Writer, v dump.Value, t *typeinfo.Type) error {
	buf := new(bytes.Buffer)
	buf.WriteString("%YAML 1.2\n---\n")
	t = typeinfo.Unalias(t)
	if t.Kind == typeinfo.Record {
		if err := emitRecordFields(buf, v, t, 0); err != nil {
			return err
		}
	} else if err := emitHanging(buf, v, t, 0); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// emitRecordFields writes "name: value" for every field, each on its own
// line at the given indentation level; value either sits inline after the
// colon or continues on subsequent, more indented lines.
func emitRecordFields(buf *bytes.Buffer, v dump.Value, t *typeinfo.Type, level int) error {
	for i, f := range t.Fields {
		var fv dump.Value
		if i < len(v.Fields) {
			fv = v.Fields[i]
		}
		buf.WriteString(prefix(level))
		buf.WriteString(f.Name)
		buf.WriteString(":")
		if err := emitAfterColon(buf, fv, f.Type, level); err != nil {
			return err
		}
	}
	return nil
}

// emitAfterColon writes whatever follows a "name:" (or "- key:") prefix
// whose column has already been written: a space and a scalar on the same
// line, a blob's block-scalar header and indented body, or a newline
// followed by a nested structure one level deeper.
func emitAfterColon(buf *bytes.Buffer, v dump.Value, t *typeinfo.Type, level int) error {
	t = typeinfo.Unalias(t)
	switch t.Kind {
	case typeinfo.Record, typeinfo.Tuple, typeinfo.Array, typeinfo.List:
		buf.WriteString("\n")
		return emitHanging(buf, v, t, level+1)
	case typeinfo.Blob:
		return emitBlob(buf, v, level)
	default:
		buf.WriteString(" ")
		if err := emitScalar(buf, v, t); err != nil {
			return err
		}
		buf.WriteString("\n")
		return nil
	}
}

// emitHanging writes a value that owns its own line(s) starting at level,
// with no leading "name:" of its own (the caller already wrote one, or this
// is the top-level document).
func emitHanging(buf *bytes.Buffer, v dump.Value, t *typeinfo.Type, level int) error {
	switch t.Kind {
	case typeinfo.Record:
		return emitRecordFields(buf, v, t, level)
	case typeinfo.Tuple:
		return emitRecordFields(buf, dump.NewRecord(v.Fields...), &typeinfo.Type{Kind: typeinfo.Record, Fields: t.Fields}, level)
	case typeinfo.Array:
		return emitSequence(buf, v.ArrayItems(), t.Item, level)
	case typeinfo.List:
		return emitSequence(buf, v.ListItems(), t.Item, level)
	case typeinfo.Blob:
		buf.WriteString(prefix(level) + blobMarker(v))
		buf.WriteString("\n")
		return emitBlobBody(buf, v, level)
	default:
		buf.WriteString(prefix(level))
		if err := emitScalar(buf, v, t); err != nil {
			return err
		}
		buf.WriteString("\n")
		return nil
	}
}

func emitSequence(buf *bytes.Buffer, items []dump.Value, itemType *typeinfo.Type, level int) error {
	itemType = typeinfo.Unalias(itemType)
	for _, item := range items {
		buf.WriteString(prefix(level))
		buf.WriteString("- ")
		if itemType.Kind == typeinfo.Record {
			if err := emitRecordAfterDash(buf, item, itemType, level); err != nil {
				return err
			}
			continue
		}
		if itemType.Kind == typeinfo.Blob {
			buf.WriteString(blobMarker(item) + "\n")
			if err := emitBlobBody(buf, item, level); err != nil {
				return err
			}
			continue
		}
		if err := emitScalar(buf, item, itemType); err != nil {
			return err
		}
		buf.WriteString("\n")
	}
	return nil
}

// emitRecordAfterDash emits a record whose first field sits on the same
// line as the "- " marker, with the remaining fields aligned one level
// deeper -- the same column the first field started at. See S3 in the
// design notes for the exact shape this produces.
func emitRecordAfterDash(buf *bytes.Buffer, v dump.Value, t *typeinfo.Type, level int) error {
	for i, f := range t.Fields {
		var fv dump.Value
		if i < len(v.Fields) {
			fv = v.Fields[i]
		}
		if i > 0 {
			buf.WriteString(prefix(level + 1))
		}
		buf.WriteString(f.Name)
		buf.WriteString(":")
		if err := emitAfterColon(buf, fv, f.Type, level+1); err != nil {
			return err
		}
	}
	return nil
}

// emitScalar renders a value that fits on the remainder of the current
// line: every primitive, plus Custom (whose own parameters must themselves
// be scalar; see emitCustomInline).
func emitScalar(buf *bytes.Buffer, v dump.Value, t *typeinfo.Type) error {
	t = typeinfo.Unalias(t)
	switch t.Kind {
	case typeinfo.Boolean:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case typeinfo.Int, typeinfo.Char:
		fmt.Fprintf(buf, "%d", v.Int)
		return nil
	case typeinfo.Fixed:
		fmt.Fprintf(buf, "%.3f", float64(v.Int)/1000.0)
		return nil
	case typeinfo.String:
		if v.Str != nil {
			buf.WriteString(v.Str.String())
		}
		return nil
	case typeinfo.Custom:
		return emitCustomInline(buf, v, t)
	default:
		return fmt.Errorf("yamldump: cannot emit a %s value inline", t.Kind)
	}
}

func emitCustomInline(buf *bytes.Buffer, v dump.Value, t *typeinfo.Type) error {
	if v.Variant < 0 || v.Variant >= len(t.Variants) {
		return fmt.Errorf("yamldump: variant index %d out of range for %s", v.Variant, t.Name)
	}
	variant := t.Variants[v.Variant]
	buf.WriteString(variant.Name)
	for i, f := range variant.Fields {
		k := typeinfo.Unalias(f.Type).Kind
		if k != typeinfo.Int && k != typeinfo.Fixed && k != typeinfo.Boolean && k != typeinfo.Char {
			return fmt.Errorf("yamldump: variant %s.%s has a field this emitter cannot pack into a single whitespace-separated line", t.Name, variant.Name)
		}
		buf.WriteString(" ")
		var fv dump.Value
		if i < len(v.VariantFields) {
			fv = v.VariantFields[i]
		}
		if err := emitScalar(buf, fv, f.Type); err != nil {
			return err
		}
	}
	return nil
}

// emitBlob writes a space, the block-scalar marker, and the indented body,
// for the common case where the marker follows a "name:" or "- " column
// already written by the caller on the same line.
func emitBlob(buf *bytes.Buffer, v dump.Value, level int) error {
	buf.WriteString(" " + blobMarker(v) + "\n")
	return emitBlobBody(buf, v, level)
}

// blobMarker picks ">" for an ASCII-safe body, ">@" for one that needs hex.
func blobMarker(v dump.Value) string {
	var octets []byte
	if v.Blob != nil {
		octets = v.Blob.Octets
	}
	if allPrintable(octets) {
		return ">"
	}
	return ">@"
}

// emitBlobBody writes the block-scalar body implied by blobMarker(v), two
// spaces per level, on the lines following the header line the caller has
// already terminated with "\n".
func emitBlobBody(buf *bytes.Buffer, v dump.Value, level int) error {
	var octets []byte
	if v.Blob != nil {
		octets = v.Blob.Octets
	}

	if !allPrintable(octets) {
		for i := 0; i < len(octets); i++ {
			if i%16 == 0 {
				if i > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(prefix(level + 1))
			} else {
				buf.WriteString(" ")
			}
			fmt.Fprintf(buf, "%02x", octets[i])
		}
		if len(octets) > 0 {
			buf.WriteString("\n")
		}
		return nil
	}

	// Printable bodies split on their own embedded newlines, one source
	// line per output line, so the parser can reconstruct the exact
	// original bytes by joining lines back together with '\n'.
	lines := bytes.Split(octets, []byte("\n"))
	for _, line := range lines {
		buf.WriteString(prefix(level + 1))
		buf.Write(line)
		buf.WriteString("\n")
	}
	return nil
}

func allPrintable(b []byte) bool {
	for _, c := range b {
		if c != '\n' && (c < 32 || c > 126) {
			return false
		}
	}
	return true
}
