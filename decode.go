/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package dump

import (
	"github.com/swamp/dump/internal/arena"
	"github.com/swamp/dump/internal/dbg"
	"github.com/swamp/dump/internal/stream"
	"github.com/swamp/dump/typeinfo"
	"github.com/swamp/dump/unmanaged"
	"go.uber.org/zap"
)

// Decode reads and validates the 3-byte version header, then decodes a
// value of type t from the remainder of in. dynArena backs String, Blob,
// Array and List allocations (Record, Tuple and Custom values are plain Go
// slices and take nothing from either arena); unmanagedArena backs Unmanaged
// allocations, per the two-arena model in §3. factory and ctx are only
// consulted if t's tree contains an Unmanaged node; either may be nil
// otherwise.
func Decode(
	in *stream.In, t *typeinfo.Type,
	factory unmanaged.Factory, ctx any,
	dynArena, unmanagedArena *arena.Arena,
) (Value, error) {
	v, err := readVersion(in)
	if err != nil {
		return Value{}, err
	}
	if !v.Compatible() {
		dbg.Diagnostic("decode: incompatible version header",
			zap.Uint8("major", v.Major), zap.Uint8("minor", v.Minor))
		return Value{}, errf(CodeCannotSerialize, "unsupported version %d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return DecodeRaw(in, t, factory, ctx, dynArena, unmanagedArena)
}

// DecodeRaw is Decode without the version header, for reading a dump
// payload embedded inside a larger framed message.
func DecodeRaw(
	in *stream.In, t *typeinfo.Type,
	factory unmanaged.Factory, ctx any,
	dynArena, unmanagedArena *arena.Arena,
) (Value, error) {
	return decodeValue(in, t, factory, ctx, dynArena, unmanagedArena)
}

func decodeValue(
	in *stream.In, t *typeinfo.Type,
	factory unmanaged.Factory, ctx any,
	dynArena, unmanagedArena *arena.Arena,
) (Value, error) {
	switch t.Kind {
	case typeinfo.Boolean:
		b, err := in.ReadU8()
		if err != nil {
			return Value{}, err
		}
		return NewBool(b != 0), nil

	case typeinfo.Int, typeinfo.Fixed, typeinfo.Char:
		n, err := in.ReadI32()
		if err != nil {
			return Value{}, err
		}
		return Value{Int: n}, nil

	case typeinfo.String:
		lenByte, err := in.ReadU8()
		if err != nil {
			return Value{}, err
		}
		if lenByte == 0 {
			return Value{}, errf(CodeCannotSerialize, "string length prefix is zero, expected at least 1 for the terminator")
		}
		chars, err := in.ReadOctets(int(lenByte) - 1)
		if err != nil {
			return Value{}, err
		}
		if _, err := in.ReadU8(); err != nil { // NUL terminator
			return Value{}, err
		}
		return Value{Str: dynArena.AllocString(chars)}, nil

	case typeinfo.Blob:
		n, err := in.ReadU32()
		if err != nil {
			return Value{}, err
		}
		octets, err := in.ReadOctets(int(n))
		if err != nil {
			return Value{}, err
		}
		return Value{Blob: dynArena.AllocBlob(octets)}, nil

	case typeinfo.Record, typeinfo.Tuple:
		fields := make([]Value, len(t.Fields))
		for i, f := range t.Fields {
			fv, err := decodeValue(in, f.Type, factory, ctx, dynArena, unmanagedArena)
			if err != nil {
				return Value{}, err
			}
			fields[i] = fv
		}
		return Value{Fields: fields}, nil

	case typeinfo.Array:
		items, err := decodeSequence(in, t.Item, factory, ctx, dynArena, unmanagedArena)
		if err != nil {
			return Value{}, err
		}
		return NewArray(dynArena, t.ItemSize, items), nil

	case typeinfo.List:
		items, err := decodeSequence(in, t.Item, factory, ctx, dynArena, unmanagedArena)
		if err != nil {
			return Value{}, err
		}
		return NewList(dynArena, t.ItemSize, items), nil

	case typeinfo.Custom:
		idx, err := in.ReadU8()
		if err != nil {
			return Value{}, err
		}
		if int(idx) >= len(t.Variants) {
			dbg.Diagnostic("decode: variant index out of range", zap.Uint8("index", idx), zap.String("type", t.Name))
			return Value{}, errf(CodeCannotSerialize, "variant index %d out of range for %s", idx, t.Name)
		}
		variant := t.Variants[idx]
		params := make([]Value, len(variant.Fields))
		for i, f := range variant.Fields {
			pv, err := decodeValue(in, f.Type, factory, ctx, dynArena, unmanagedArena)
			if err != nil {
				return Value{}, err
			}
			params[i] = pv
		}
		return NewCustom(int(idx), params...), nil

	case typeinfo.Alias:
		return decodeValue(in, typeinfo.Unalias(t), factory, ctx, dynArena, unmanagedArena)

	case typeinfo.Unmanaged:
		if factory == nil {
			dbg.Diagnostic("decode: unmanaged value with no factory", zap.String("type", t.Name))
			return Value{}, errf(CodeUnmanagedNoFactory, "no factory supplied for unmanaged type %s", t.Name)
		}
		slot := unmanagedArena.AllocUnmanaged(t.Name)
		if err := factory(ctx, t, slot); err != nil {
			return Value{}, errf(CodeUnmanagedNoFactory, "factory for %s failed: %v", t.Name, err)
		}
		if slot.Deserialize == nil {
			return Value{}, errf(CodeUnmanagedNoFactory, "factory for %s installed no deserialize callback", t.Name)
		}
		n, err := slot.Deserialize(in.PeekRemaining())
		if err != nil || n < 0 {
			return Value{}, errf(CodeCannotSerialize, "unmanaged deserialize for %s failed: %v", t.Name, err)
		}
		if err := in.Advance(n); err != nil {
			return Value{}, err
		}
		return NewUnmanaged(slot), nil

	case typeinfo.Function:
		return Value{}, errf(CodeCannotSerialize, "cannot deserialize a Function value")

	case typeinfo.Any, typeinfo.AnyMatchingTypes, typeinfo.ResourceName:
		return Value{}, errf(CodeCannotSerialize, "cannot deserialize a %s value", t.Kind)

	default:
		return Value{}, errf(CodeCannotSerialize, "unsupported kind %s", t.Kind)
	}
}

func decodeSequence(
	in *stream.In, itemType *typeinfo.Type,
	factory unmanaged.Factory, ctx any,
	dynArena, unmanagedArena *arena.Arena,
) ([]Value, error) {
	count, err := in.ReadU8()
	if err != nil {
		return nil, err
	}
	items := make([]Value, count)
	for i := range items {
		v, err := decodeValue(in, itemType, factory, ctx, dynArena, unmanagedArena)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}
