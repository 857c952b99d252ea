/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package dump

import (
	"github.com/swamp/dump/internal/dbg"
	"github.com/swamp/dump/internal/stream"
	"github.com/swamp/dump/typeinfo"
	"go.uber.org/zap"
)

// maxShortLength is the largest count a 1-byte length prefix can carry: the
// limit on Array/List element counts, and one more than the limit on String
// byte length (the string prefix also counts the NUL terminator, so a string
// holds at most 254 bytes).
const maxShortLength = 255

// Encode writes a 3-byte version header followed by the encoding of v under
// type t, per §4.2. The returned error, if any, is an *Error carrying one of
// the Code constants.
func Encode(out *stream.Out, v Value, t *typeinfo.Type) error {
	writeVersion(out, CurrentVersion)
	return EncodeRaw(out, v, t)
}

// EncodeRaw is Encode without the version header, for embedding a dump
// payload inside a larger framed message.
func EncodeRaw(out *stream.Out, v Value, t *typeinfo.Type) error {
	return encodeValue(out, v, t)
}

func encodeValue(out *stream.Out, v Value, t *typeinfo.Type) error {
	switch t.Kind {
	case typeinfo.Boolean:
		if v.Bool {
			out.WriteU8(1)
		} else {
			out.WriteU8(0)
		}
		return nil

	case typeinfo.Int, typeinfo.Fixed, typeinfo.Char:
		out.WriteI32(v.Int)
		return nil

	case typeinfo.String:
		if v.Str == nil {
			return errf(CodeCannotSerialize, "nil String value")
		}
		n := v.Str.CharacterCount()
		if n+1 > maxShortLength {
			return errf(CodeCannotSerialize, "string of %d bytes exceeds the 254-byte wire limit", n)
		}
		out.WriteU8(uint8(n + 1))
		out.WriteOctets(v.Str.Bytes)
		out.WriteU8(0)
		return nil

	case typeinfo.Blob:
		if v.Blob == nil {
			return errf(CodeCannotSerialize, "nil Blob value")
		}
		out.WriteU32(uint32(v.Blob.OctetCount()))
		out.WriteOctets(v.Blob.Octets)
		return nil

	case typeinfo.Record, typeinfo.Tuple:
		if len(v.Fields) != len(t.Fields) {
			return errf(CodeArityMismatch, "%s has %d fields, value has %d", t.Kind, len(t.Fields), len(v.Fields))
		}
		for i, f := range t.Fields {
			if err := encodeValue(out, v.Fields[i], f.Type); err != nil {
				return err
			}
		}
		return nil

	case typeinfo.Array:
		return encodeSequence(out, arrayItems(v.Arr), t.Item)

	case typeinfo.List:
		return encodeSequence(out, listItems(v.List), t.Item)

	case typeinfo.Custom:
		if v.Variant < 0 || v.Variant >= len(t.Variants) {
			dbg.Diagnostic("encode: variant index out of range", zap.Int("index", v.Variant), zap.String("type", t.Name))
			return errf(CodeCannotSerialize, "variant index %d out of range for %s", v.Variant, t.Name)
		}
		variant := t.Variants[v.Variant]
		if len(v.VariantFields) != len(variant.Fields) {
			return errf(CodeArityMismatch, "variant %s.%s expects %d fields, value has %d", t.Name, variant.Name, len(variant.Fields), len(v.VariantFields))
		}
		out.WriteU8(uint8(variant.Index))
		for i, f := range variant.Fields {
			if err := encodeValue(out, v.VariantFields[i], f.Type); err != nil {
				return err
			}
		}
		return nil

	case typeinfo.Alias:
		return encodeValue(out, v, typeinfo.Unalias(t))

	case typeinfo.Unmanaged:
		if v.Unmanaged == nil || v.Unmanaged.Serialize == nil {
			dbg.Diagnostic("encode: unmanaged value has no serialize callback", zap.String("type", t.Name))
			return errf(CodeCannotSerialize, "unmanaged value %s has no serialize callback", t.Name)
		}
		// Encode into a scratch buffer sized generously, then splice the
		// bytes the callback actually used; the callback reports how much
		// of its buffer it consumed.
		scratch := make([]byte, 4096)
		n, err := v.Unmanaged.Serialize(scratch)
		if err != nil || n < 0 {
			return errf(CodeCannotSerialize, "unmanaged serialize for %s failed: %v", t.Name, err)
		}
		out.WriteOctets(scratch[:n])
		return nil

	case typeinfo.Function:
		dbg.Diagnostic("encode: cannot serialize a function value")
		return errf(CodeCannotSerialize, "cannot serialize a Function value")

	case typeinfo.Any, typeinfo.AnyMatchingTypes, typeinfo.ResourceName:
		return errf(CodeCannotSerialize, "cannot serialize a %s value", t.Kind)

	default:
		return errf(CodeCannotSerialize, "unsupported kind %s", t.Kind)
	}
}

func encodeSequence(out *stream.Out, items []Value, itemType *typeinfo.Type) error {
	if len(items) > maxShortLength {
		return errf(CodeCannotSerialize, "sequence of %d elements exceeds the 255-element wire limit", len(items))
	}
	out.WriteU8(uint8(len(items)))
	for _, item := range items {
		if err := encodeValue(out, item, itemType); err != nil {
			return err
		}
	}
	return nil
}
