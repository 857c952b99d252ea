/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package ascii_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swamp/dump"
	"github.com/swamp/dump/ascii"
	"github.com/swamp/dump/internal/arena"
	"github.com/swamp/dump/typeinfo"
)

func TestPrintNoColorRecord(t *testing.T) {
	typ := typeinfo.NewRecord("Position",
		typeinfo.Field{Name: "x", Type: typeinfo.NewInt()},
		typeinfo.Field{Name: "y", Type: typeinfo.NewInt()},
	)
	v := dump.NewRecord(dump.NewInt(11), dump.NewInt(121))

	buf := make([]byte, 128)
	n, err := ascii.PrintNoColor(buf, v, typ, 0)
	require.NoError(t, err)
	out := string(buf[:n-1]) // drop the trailing NUL
	assert.Equal(t, "{ x = 11, y = 121 }", out)
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintColorUsesEscapes(t *testing.T) {
	typ := typeinfo.NewBoolean()
	buf := make([]byte, 64)
	n, err := ascii.Print(buf, dump.NewBool(true), typ, 0)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "\x1b[")
}

// TestMonotoneLength is §8 property 7: the printer never writes past
// len(buf)-6, regardless of how small the caller's buffer is (above the
// 64-byte floor).
func TestMonotoneLength(t *testing.T) {
	var a arena.Arena
	typ := typeinfo.NewRecord("Wide",
		typeinfo.Field{Name: "s", Type: typeinfo.NewString()},
	)
	v := dump.NewRecord(dump.NewString(&a, strings.Repeat("x", 500)))

	buf := make([]byte, 64)
	_, err := ascii.PrintNoColor(buf, v, typ, 0)
	require.Error(t, err)

	buf2 := make([]byte, 4096)
	n, err := ascii.PrintNoColor(buf2, v, typ, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, n, len(buf2))
}

func TestBlobExpandedAutoFormat(t *testing.T) {
	var a arena.Arena
	typ := typeinfo.NewBlob()
	v := dump.NewBlob(&a, []byte("hello world"))

	buf := make([]byte, 256)
	n, err := ascii.PrintNoColor(buf, v, typ, ascii.BlobExpanded|ascii.BlobAutoFormat)
	require.NoError(t, err)
	out := string(buf[:n-1])
	assert.Contains(t, out, "blob 11")
	assert.Contains(t, out, "hello world")
}

func TestPrintTupleWraps(t *testing.T) {
	typ := typeinfo.NewTuple(typeinfo.NewInt(), typeinfo.NewInt(), typeinfo.NewInt())
	v := dump.NewRecord(dump.NewInt(1), dump.NewInt(2), dump.NewInt(3))

	buf := make([]byte, 128)
	n, err := ascii.PrintNoColor(buf, v, typ, 0)
	require.NoError(t, err)
	out := string(buf[:n-1])
	assert.Equal(t, "( 1\n, 2\n, 3 )", out)
}

func TestPrintTupleAliasOnce(t *testing.T) {
	aliased := typeinfo.NewAlias("Age", typeinfo.NewInt())
	typ := typeinfo.NewTuple(aliased, typeinfo.NewInt())
	v := dump.NewRecord(dump.NewInt(7), dump.NewInt(8))

	buf := make([]byte, 128)
	n, err := ascii.PrintNoColor(buf, v, typ, 0)
	require.NoError(t, err)
	out := string(buf[:n-1])
	assert.Equal(t, "( Age => 7\n, 8 )", out)
}

func TestPrintRecordWrapsOnNonSimpleField(t *testing.T) {
	inner := typeinfo.NewRecord("Inner", typeinfo.Field{Name: "v", Type: typeinfo.NewInt()})
	typ := typeinfo.NewRecord("Outer",
		typeinfo.Field{Name: "a", Type: typeinfo.NewInt()},
		typeinfo.Field{Name: "b", Type: inner},
	)
	v := dump.NewRecord(dump.NewInt(1), dump.NewRecord(dump.NewInt(2)))

	buf := make([]byte, 256)
	n, err := ascii.PrintNoColor(buf, v, typ, 0)
	require.NoError(t, err)
	out := string(buf[:n-1])
	assert.Equal(t, "{ a = 1\n, b = { v = 2 } }", out)
}

func TestCustomVariantPrefix(t *testing.T) {
	typ := typeinfo.NewCustom("Maybe",
		typeinfo.Variant{Index: 0, Name: "Not"},
		typeinfo.Variant{Index: 1, Name: "Just", Fields: []typeinfo.Field{{Name: "value", Type: typeinfo.NewInt()}}},
	)
	buf := make([]byte, 64)
	n, err := ascii.PrintNoColor(buf, dump.NewCustom(1, dump.NewInt(99)), typ, ascii.CustomTypeVariantPrefix)
	require.NoError(t, err)
	assert.Equal(t, "Maybe:Just 99", string(buf[:n-1]))
}
