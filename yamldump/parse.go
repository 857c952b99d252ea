/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package yamldump

import (
	"math"
	"strconv"
	"strings"

	"github.com/swamp/dump"
	"github.com/swamp/dump/internal/arena"
	"github.com/swamp/dump/internal/stream"
	"github.com/swamp/dump/typeinfo"
)

// line is one physical line of input, already split off its trailing '\n'
// and measured for leading-space indentation. Blank lines are kept (content
// == "") rather than dropped at tokenization time, because a blob body can
// legitimately contain one.
type line struct {
	indent  int
	content string
	lineNo  int
}

// tokenize splits data into lines and records each one's indentation level,
// per the two-space unit in §4.6: a line's indent field is its leading
// space count divided by two, matching the level argument emit.go's prefix
// threads through every emit*/parse* pair. A line indented by an odd number
// of spaces, or by a tab, is a format error: this subset has no notion of a
// "half level".
func tokenize(data []byte) ([]line, error) {
	txt := stream.NewText(data)
	var lines []line
	var cur []byte
	col := -1
	lineNo := 1

	toLevel := func() (int, error) {
		if col < 0 {
			return 0, nil
		}
		if col%2 != 0 {
			return 0, dump.NewError(dump.CodeYAMLFormat, "line %d: odd indentation (%d spaces)", lineNo, col)
		}
		return col / 2, nil
	}

	flush := func() error {
		level, err := toLevel()
		if err != nil {
			return err
		}
		lines = append(lines, line{indent: level, content: string(cur), lineNo: lineNo})
		cur = nil
		col = -1
		return nil
	}

	for {
		ch, ok := txt.ReadCh()
		if !ok {
			if len(cur) > 0 || col >= 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			return lines, nil
		}
		if ch == '\r' {
			continue
		}
		if ch == '\n' {
			if err := flush(); err != nil {
				return nil, err
			}
			lineNo = txt.Line()
			continue
		}
		if col < 0 {
			if ch == ' ' {
				col = 1
				continue
			}
			if ch == '\t' {
				return nil, dump.NewError(dump.CodeYAMLFormat, "line %d: tab indentation is not supported", lineNo)
			}
			col = 0
		} else if col > 0 && len(cur) == 0 {
			if ch == ' ' {
				col++
				continue
			}
			if ch == '\t' {
				return nil, dump.NewError(dump.CodeYAMLFormat, "line %d: tab indentation is not supported", lineNo)
			}
		}
		cur = append(cur, ch)
	}
}

// parser walks lines under the guidance of a typeinfo tree. It never
// backtracks across a structural decision: every branch below is chosen by
// the RTTI before any input is consulted, so there is nothing to
// disambiguate from the text alone.
type parser struct {
	lines []line
	pos   int
	arena *arena.Arena
}

func (p *parser) skipBlank() {
	for p.pos < len(p.lines) && p.lines[p.pos].content == "" {
		p.pos++
	}
}

func (p *parser) peek() (line, bool) {
	if p.pos >= len(p.lines) {
		return line{}, false
	}
	return p.lines[p.pos], true
}

// Parse decodes a YAML document produced by Emit back into a dump.Value of
// type t. dynArena backs every String, Blob, Array and List header the
// result allocates. Parse has no Unmanaged or Function support: neither
// kind ever appears in an emitted document, so the RTTI is assumed not to
// require them here.
func Parse(data []byte, t *typeinfo.Type, dynArena *arena.Arena) (dump.Value, error) {
	lines, err := tokenize(data)
	if err != nil {
		return dump.Value{}, err
	}
	p := &parser{lines: lines, arena: dynArena}

	if l, ok := p.peek(); ok && l.content == "%YAML 1.2" {
		p.pos++
	}
	if l, ok := p.peek(); ok && l.content == "---" {
		p.pos++
	}
	p.skipBlank()

	t = typeinfo.Unalias(t)
	if t.Kind == typeinfo.Record {
		return p.parseRecordFields(t, 0)
	}
	return p.parseHanging(t, 0)
}

// parseRecordFields reads one "name: ..." line per field of t, in declared
// order, at the given indentation level.
func (p *parser) parseRecordFields(t *typeinfo.Type, level int) (dump.Value, error) {
	fields := make([]dump.Value, len(t.Fields))
	for i, f := range t.Fields {
		p.skipBlank()
		l, ok := p.peek()
		if !ok || l.indent != level {
			return dump.Value{}, dump.NewError(dump.CodeFieldMismatch, "expected field %q at indentation %d", f.Name, level)
		}
		rest, err := splitFieldName(l.content, f.Name)
		if err != nil {
			return dump.Value{}, err
		}
		fv, err := p.parseAfterColon(f.Type, level, rest)
		if err != nil {
			return dump.Value{}, err
		}
		fields[i] = fv
	}
	return dump.NewRecord(fields...), nil
}

// splitFieldName requires content to start with "name:" and returns
// whatever follows the colon unmodified (callers trim as needed).
func splitFieldName(content, name string) (string, error) {
	prefix := name + ":"
	if !strings.HasPrefix(content, prefix) {
		return "", dump.NewError(dump.CodeFieldMismatch, "expected %q, got %q", prefix, content)
	}
	return content[len(prefix):], nil
}

// parseAfterColon consumes whatever follows an already-matched "name:" (or
// "- name:") column: an inline scalar on the same line, a blob marker
// followed by an indented body, or a newline into a nested structure one
// level deeper. The current line (the header line itself) is consumed by
// this call in every branch.
func (p *parser) parseAfterColon(t *typeinfo.Type, level int, rest string) (dump.Value, error) {
	t = typeinfo.Unalias(t)
	switch t.Kind {
	case typeinfo.Record, typeinfo.Tuple, typeinfo.Array, typeinfo.List:
		if strings.TrimSpace(rest) != "" {
			return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "unexpected text %q after a %s field header", rest, t.Kind)
		}
		p.pos++
		return p.parseHanging(t, level+1)
	case typeinfo.Blob:
		hex, err := blobMarkerKind(rest)
		if err != nil {
			return dump.Value{}, err
		}
		p.pos++
		return p.parseBlobBody(level+1, hex)
	default:
		p.pos++
		return p.parseScalar(strings.TrimSpace(rest), t)
	}
}

func blobMarkerKind(rest string) (hex bool, err error) {
	switch strings.TrimSpace(rest) {
	case ">":
		return false, nil
	case ">@":
		return true, nil
	default:
		return false, dump.NewError(dump.CodeYAMLFormat, "expected a blob marker \">\" or \">@\", got %q", rest)
	}
}

// parseHanging reads a value that owns its own line(s) starting at level,
// with no "name:" of its own on the first of them: the counterpart of
// emitHanging.
func (p *parser) parseHanging(t *typeinfo.Type, level int) (dump.Value, error) {
	t = typeinfo.Unalias(t)
	switch t.Kind {
	case typeinfo.Record:
		return p.parseRecordFields(t, level)
	case typeinfo.Tuple:
		return p.parseRecordFields(&typeinfo.Type{Kind: typeinfo.Record, Fields: t.Fields}, level)
	case typeinfo.Array:
		items, err := p.parseSequence(t.Item, level)
		if err != nil {
			return dump.Value{}, err
		}
		return dump.NewArray(p.arena, t.ItemSize, items), nil
	case typeinfo.List:
		items, err := p.parseSequence(t.Item, level)
		if err != nil {
			return dump.Value{}, err
		}
		return dump.NewList(p.arena, t.ItemSize, items), nil
	case typeinfo.Blob:
		p.skipBlank()
		l, ok := p.peek()
		if !ok || l.indent != level {
			return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "expected a blob marker at indentation %d", level)
		}
		hex, err := blobMarkerKind(l.content)
		if err != nil {
			return dump.Value{}, err
		}
		p.pos++
		return p.parseBlobBody(level+1, hex)
	default:
		p.skipBlank()
		l, ok := p.peek()
		if !ok || l.indent != level {
			return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "expected a value at indentation %d", level)
		}
		p.pos++
		return p.parseScalar(l.content, t)
	}
}

// parseSequence reads zero or more "- " entries at level, per the element
// type itemType, stopping at the first line that is not a list entry at
// this level (end of sequence, dedent, or end of input).
func (p *parser) parseSequence(itemType *typeinfo.Type, level int) ([]dump.Value, error) {
	itemType = typeinfo.Unalias(itemType)
	var items []dump.Value
	for {
		p.skipBlank()
		l, ok := p.peek()
		if !ok || l.indent != level || !(l.content == "-" || strings.HasPrefix(l.content, "- ")) {
			break
		}
		rest := strings.TrimPrefix(l.content, "-")
		rest = strings.TrimPrefix(rest, " ")

		var item dump.Value
		var err error
		switch itemType.Kind {
		case typeinfo.Record:
			item, err = p.parseRecordAfterDash(itemType, level, rest)
		case typeinfo.Blob:
			var hex bool
			hex, err = blobMarkerKind(rest)
			if err == nil {
				p.pos++
				item, err = p.parseBlobBody(level+1, hex)
			}
		default:
			p.pos++
			item, err = p.parseScalar(strings.TrimSpace(rest), itemType)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// parseRecordAfterDash mirrors emitRecordAfterDash: the first field's
// "name: ..." sits on the same (already current) line as the dash, the
// rest are read at level+1.
func (p *parser) parseRecordAfterDash(t *typeinfo.Type, level int, restAfterDash string) (dump.Value, error) {
	fields := make([]dump.Value, len(t.Fields))
	for i, f := range t.Fields {
		var content string
		if i == 0 {
			content = restAfterDash
		} else {
			l, ok := p.peek()
			if !ok || l.indent != level+1 {
				return dump.Value{}, dump.NewError(dump.CodeFieldMismatch, "expected field %q at indentation %d", f.Name, level+1)
			}
			content = l.content
		}
		rest, err := splitFieldName(content, f.Name)
		if err != nil {
			return dump.Value{}, err
		}
		// emitRecordAfterDash always recurses at level+1 regardless of field
		// index (the inlined record behaves as though it hangs at level+1);
		// parseAfterColon must mirror that for nested (non-scalar) fields.
		fv, err := p.parseAfterColon(f.Type, level+1, rest)
		if err != nil {
			return dump.Value{}, err
		}
		fields[i] = fv
	}
	return dump.NewRecord(fields...), nil
}

// parseBlobBody reads the lines following a blob marker back into octets.
// For a hex body, digit pairs are read across as many lines as were
// written, ignoring the line breaks used only to keep rows short. For an
// ASCII body, each line is one source line, rejoined with '\n' -- the exact
// inverse of emitBlobBody's split.
func (p *parser) parseBlobBody(level int, hex bool) (dump.Value, error) {
	var bodyLines []string
	for {
		l, ok := p.peek()
		if !ok || l.indent != level {
			break
		}
		bodyLines = append(bodyLines, l.content)
		p.pos++
	}

	if hex {
		var hexDigits strings.Builder
		for _, l := range bodyLines {
			hexDigits.WriteString(strings.ReplaceAll(l, " ", ""))
		}
		s := hexDigits.String()
		if len(s)%2 != 0 {
			return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "hex blob body has an odd number of digits")
		}
		octets := make([]byte, len(s)/2)
		for i := range octets {
			n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
			if err != nil {
				return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "invalid hex digit pair %q", s[i*2:i*2+2])
			}
			octets[i] = byte(n)
		}
		return dump.NewBlob(p.arena, octets), nil
	}

	octets := []byte(strings.Join(bodyLines, "\n"))
	return dump.NewBlob(p.arena, octets), nil
}

func (p *parser) parseScalar(text string, t *typeinfo.Type) (dump.Value, error) {
	t = typeinfo.Unalias(t)
	switch t.Kind {
	case typeinfo.Boolean:
		switch text {
		case "true":
			return dump.NewBool(true), nil
		case "false":
			return dump.NewBool(false), nil
		default:
			return dump.Value{}, dump.NewError(dump.CodeExpectedBoolean, "expected \"true\" or \"false\", got %q", text)
		}
	case typeinfo.Int, typeinfo.Char:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "expected an integer, got %q", text)
		}
		return dump.NewInt(int32(n)), nil
	case typeinfo.Fixed:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "expected a fixed-point number, got %q", text)
		}
		return dump.NewFixed(int32(math.Round(f * 1000))), nil
	case typeinfo.String:
		return dump.NewString(p.arena, text), nil
	case typeinfo.Custom:
		return p.parseCustomInline(text, t)
	default:
		return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "cannot parse a %s value inline", t.Kind)
	}
}

// parseCustomInline is the inverse of emitCustomInline: the variant name
// followed by its scalar field values, separated by single spaces. Field
// kinds wider than a whitespace-free token (notably String) are rejected by
// the emitter, so none are expected here either.
func (p *parser) parseCustomInline(text string, t *typeinfo.Type) (dump.Value, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "expected a variant name for %s", t.Name)
	}
	name := tokens[0]
	idx := -1
	for i, variant := range t.Variants {
		if variant.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return dump.Value{}, dump.NewError(dump.CodeYAMLFormat, "unknown variant %q for %s", name, t.Name)
	}
	variant := t.Variants[idx]
	if len(tokens)-1 != len(variant.Fields) {
		return dump.Value{}, dump.NewError(dump.CodeArityMismatch, "variant %s.%s takes %d field(s), got %d", t.Name, name, len(variant.Fields), len(tokens)-1)
	}
	params := make([]dump.Value, len(variant.Fields))
	for i, f := range variant.Fields {
		fv, err := p.parseScalar(tokens[i+1], f.Type)
		if err != nil {
			return dump.Value{}, err
		}
		params[i] = fv
	}
	return dump.NewCustom(idx, params...), nil
}
