/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package yamldump_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/swamp/dump"
	"github.com/swamp/dump/internal/arena"
	"github.com/swamp/dump/typeinfo"
	"github.com/swamp/dump/yamldump"
)

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

// s2Type and s2Value reproduce §8 scenario S2/S3 from the design notes.
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
		dump.NewBlob(a, []byte("1234567890\nabcdefghij")),
	)
}

// TestEmitMatchesScenario checks the literal shape of §8 scenario S3.
func TestEmitMatchesScenario(t *testing.T) {
	var a arena.Arena
	buf := new(bytes.Buffer)
	require.NoError(t, yamldump.Emit(buf, s2Value(&a), s2Type()))

	want := "%YAML 1.2\n---\n" +
		"a: true\n" +
		"name: hello\n" +
		"pos:\n" +
		"  x: 10\n" +
		"  y: 120\n" +
		"ar:\n" +
		"  - x: 11\n" +
		"    y: 121\n" +
		"  - x: 12\n" +
		"    y: 122\n" +
		"ma: Not\n" +
		"ti: >\n" +
		"  1234567890\n" +
		"  abcdefghij\n"

	assert.Equal(t, want, buf.String())
}

// TestRoundTrip is §8 property 6 applied to scenario S2/S3.
func TestRoundTrip(t *testing.T) {
	var a arena.Arena
	typ := s2Type()
	orig := s2Value(&a)

	buf := new(bytes.Buffer)
	require.NoError(t, yamldump.Emit(buf, orig, typ))

	var dynArena arena.Arena
	decoded, err := yamldump.Parse(buf.Bytes(), typ, &dynArena)
	require.NoError(t, err)

	assert.Equal(t, orig.Fields[0].Bool, decoded.Fields[0].Bool)
	assert.Equal(t, orig.Fields[1].Str.String(), decoded.Fields[1].Str.String())
	assert.Equal(t, orig.Fields[2].Fields[0].Int, decoded.Fields[2].Fields[0].Int)
	assert.Equal(t, orig.Fields[2].Fields[1].Int, decoded.Fields[2].Fields[1].Int)

	origItems := orig.Fields[3].ArrayItems()
	decItems := decoded.Fields[3].ArrayItems()
	require.Len(t, decItems, len(origItems))
	for i := range origItems {
		assert.Equal(t, origItems[i].Fields[0].Int, decItems[i].Fields[0].Int)
		assert.Equal(t, origItems[i].Fields[1].Int, decItems[i].Fields[1].Int)
	}

	assert.Equal(t, orig.Fields[4].Variant, decoded.Fields[4].Variant)
	assert.Equal(t, orig.Fields[5].Blob.Octets, decoded.Fields[5].Blob.Octets)
}

// TestEmitCrosschecksWithGenericYAML verifies the hand-rolled emitter
// produces YAML a general-purpose parser accepts, independent of this
// module's own Parse.
func TestEmitCrosschecksWithGenericYAML(t *testing.T) {
	var a arena.Arena
	buf := new(bytes.Buffer)
	require.NoError(t, yamldump.Emit(buf, s2Value(&a), s2Type()))

	// Strip the "%YAML 1.2" directive line: yaml.v3 accepts "---" document
	// markers but not a bare "%YAML" directive outside a full stream
	// context.
	body := bytes.TrimPrefix(buf.Bytes(), []byte("%YAML 1.2\n"))

	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(body, &generic))
	assert.Equal(t, true, generic["a"])
	assert.Equal(t, "hello", generic["name"])

	pos, ok := generic["pos"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10, pos["x"])
}

func TestHexBlobRoundTrip(t *testing.T) {
	var a arena.Arena
	typ := typeinfo.NewRecord("Holder",
		typeinfo.Field{Name: "raw", Type: typeinfo.NewBlob()},
	)
	octets := []byte{0x00, 0x01, 0xFE, 0xFF, 0x10, 0x20}
	v := dump.NewRecord(dump.NewBlob(&a, octets))

	buf := new(bytes.Buffer)
	require.NoError(t, yamldump.Emit(buf, v, typ))
	assert.Contains(t, buf.String(), "raw: >@\n")

	var dynArena arena.Arena
	decoded, err := yamldump.Parse(buf.Bytes(), typ, &dynArena)
	require.NoError(t, err)
	assert.Equal(t, octets, decoded.Fields[0].Blob.Octets)
}

func TestFieldMismatchIsReported(t *testing.T) {
	typ := positionType()
	var dynArena arena.Arena
	_, err := yamldump.Parse([]byte("x: 1\nz: 2\n"), typ, &dynArena)
	require.Error(t, err)
	var derr *dump.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dump.CodeFieldMismatch, derr.Code)
}
