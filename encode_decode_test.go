/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package dump_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swamp/dump"
	"github.com/swamp/dump/internal/arena"
	"github.com/swamp/dump/internal/stream"
	"github.com/swamp/dump/typeinfo"
)

// positionType builds the { x: Int, y: Int } record used throughout §8's S2
// scenario.
func positionType() *typeinfo.Type {
	return typeinfo.NewRecord("Position",
		typeinfo.Field{Name: "x", Type: typeinfo.NewInt()},
		typeinfo.Field{Name: "y", Type: typeinfo.NewInt()},
	)
}

func maybeIntType() *typeinfo.Type {
	return typeinfo.NewCustom("Maybe",
		typeinfo.Variant{Index: 0, Name: "Not"},
		typeinfo.Variant{Index: 1, Name: "Just", Fields: []typeinfo.Field{{Name: "value", Type: typeinfo.NewInt()}}},
	)
}

// s2Type builds the full record from §8 scenario S2.
func s2Type() *typeinfo.Type {
	pos := positionType()
	return typeinfo.NewRecord("Scenario",
		typeinfo.Field{Name: "a", Type: typeinfo.NewBoolean()},
		typeinfo.Field{Name: "name", Type: typeinfo.NewString()},
		typeinfo.Field{Name: "pos", Type: pos},
		typeinfo.Field{Name: "ar", Type: typeinfo.NewArray(pos, 2, 8, 4)},
		typeinfo.Field{Name: "ma", Type: maybeIntType()},
		typeinfo.Field{Name: "ti", Type: typeinfo.NewBlob()},
	)
}

func s2Value(a *arena.Arena) dump.Value {
	pos := func(x, y int32) dump.Value {
		return dump.NewRecord(dump.NewInt(x), dump.NewInt(y))
	}
	return dump.NewRecord(
		dump.NewBool(true),
		dump.NewString(a, "hello"),
		pos(10, 120),
		dump.NewArray(a, 8, []dump.Value{pos(11, 121), pos(12, 122)}),
		dump.NewCustom(0),
		dump.NewBlob(a, []byte("1234567890")),
	)
}

// TestPrimitiveRoundTrip is §8 scenario S1.
func TestPrimitiveRoundTrip(t *testing.T) {
	out := stream.NewOut(16)
	require.NoError(t, dump.Encode(out, dump.NewInt(42), typeinfo.NewInt()))
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x2A, 0x00, 0x00, 0x00}, out.Bytes())

	in := stream.NewIn(out.Bytes())
	var dyn, unm arena.Arena
	v, err := dump.Decode(in, typeinfo.NewInt(), nil, nil, &dyn, &unm)
	require.NoError(t, err)
	assert.Equal(t, int32(42), v.Int)
}

// TestRecordRoundTrip is §8 scenario S2.
func TestRecordRoundTrip(t *testing.T) {
	var a arena.Arena
	typ := s2Type()
	v := s2Value(&a)

	out := stream.NewOut(64)
	require.NoError(t, dump.Encode(out, v, typ))

	var dyn, unm arena.Arena
	in := stream.NewIn(out.Bytes())
	decoded, err := dump.Decode(in, typ, nil, nil, &dyn, &unm)
	require.NoError(t, err)

	assert.Equal(t, v.Fields[0].Bool, decoded.Fields[0].Bool)
	assert.Equal(t, v.Fields[1].Str.String(), decoded.Fields[1].Str.String())
	assert.Equal(t, v.Fields[2].Fields[0].Int, decoded.Fields[2].Fields[0].Int)
	assert.Equal(t, v.Fields[2].Fields[1].Int, decoded.Fields[2].Fields[1].Int)

	origItems := v.Fields[3].ArrayItems()
	decItems := decoded.Fields[3].ArrayItems()
	require.Len(t, decItems, len(origItems))
	for i := range origItems {
		assert.Equal(t, origItems[i].Fields[0].Int, decItems[i].Fields[0].Int)
		assert.Equal(t, origItems[i].Fields[1].Int, decItems[i].Fields[1].Int)
	}

	assert.Equal(t, v.Fields[4].Variant, decoded.Fields[4].Variant)
	assert.Equal(t, v.Fields[5].Blob.Octets, decoded.Fields[5].Blob.Octets)
}

// TestCustomVariantEncoding is §8 scenario S4.
func TestCustomVariantEncoding(t *testing.T) {
	typ := maybeIntType()

	out := stream.NewOut(8)
	require.NoError(t, dump.Encode(out, dump.NewCustom(1, dump.NewInt(99)), typ))
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x01, 0x63, 0x00, 0x00, 0x00}, out.Bytes())

	out2 := stream.NewOut(8)
	require.NoError(t, dump.Encode(out2, dump.NewCustom(0), typ))
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, out2.Bytes())
}

// TestVersionRejection is §8 scenario S5.
func TestVersionRejection(t *testing.T) {
	in := stream.NewIn([]byte{0x01, 0x00, 0x00})
	var dyn, unm arena.Arena
	_, err := dump.Decode(in, typeinfo.NewInt(), nil, nil, &dyn, &unm)
	require.Error(t, err)
	var derr *dump.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dump.CodeCannotSerialize, derr.Code)
}

// TestMissingUnmanagedFactory is §8 scenario S6.
func TestMissingUnmanagedFactory(t *testing.T) {
	var a arena.Arena
	// {0, 1, 0} version header with no body: Decode must fail on the
	// Unmanaged branch before it would try to read anything past it.
	in := stream.NewIn([]byte{0x00, 0x01, 0x00})

	_, err := dump.Decode(in, typeinfo.NewUnmanaged("Handle"), nil, nil, &a, &a)
	require.Error(t, err)
	var derr *dump.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dump.CodeUnmanagedNoFactory, derr.Code)
}

func TestDeterminism(t *testing.T) {
	var a arena.Arena
	typ := s2Type()
	v := s2Value(&a)

	out1 := stream.NewOut(64)
	out2 := stream.NewOut(64)
	require.NoError(t, dump.Encode(out1, v, typ))
	require.NoError(t, dump.Encode(out2, v, typ))
	assert.Equal(t, out1.Bytes(), out2.Bytes())
}

func TestAliasTransparency(t *testing.T) {
	alias := typeinfo.NewAlias("Age", typeinfo.NewInt())

	outAlias := stream.NewOut(8)
	require.NoError(t, dump.Encode(outAlias, dump.NewInt(7), alias))

	outPlain := stream.NewOut(8)
	require.NoError(t, dump.Encode(outPlain, dump.NewInt(7), typeinfo.NewInt()))

	assert.Equal(t, outPlain.Bytes(), outAlias.Bytes())
}

func TestStringOverflowRejected(t *testing.T) {
	var a arena.Arena
	long := make([]byte, 255)
	for i := range long {
		long[i] = 'a'
	}
	out := stream.NewOut(260)
	err := dump.Encode(out, dump.NewString(&a, string(long)), typeinfo.NewString())
	require.Error(t, err)
	var derr *dump.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dump.CodeCannotSerialize, derr.Code)
}

func TestArrayCountRoundTrip(t *testing.T) {
	var a arena.Arena
	itemType := typeinfo.NewInt()
	arrType := typeinfo.NewArray(itemType, 5, 4, 4)
	items := make([]dump.Value, 5)
	for i := range items {
		items[i] = dump.NewInt(int32(i))
	}
	v := dump.NewArray(&a, 4, items)

	out := stream.NewOut(32)
	require.NoError(t, dump.Encode(out, v, arrType))

	var dyn, unm arena.Arena
	in := stream.NewIn(out.Bytes())
	decoded, err := dump.Decode(in, arrType, nil, nil, &dyn, &unm)
	require.NoError(t, err)
	assert.Len(t, decoded.ArrayItems(), 5)
}
