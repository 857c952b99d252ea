/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package ascii

import (
	"fmt"

	"github.com/swamp/dump"
	"github.com/swamp/dump/typeinfo"
)

// ANSI SGR codes used by the colored printer, per §4.4.
const (
	sgrFieldName    = 92
	sgrPunctuation  = 94
	sgrPunctuation2 = 35
	sgrString       = 33
	sgrQuote        = 91
	sgrInt          = 91
	sgrBool         = 92
	sgrVariant      = 95
)

const minBufferSize = 64

// overflowMargin is the number of trailing bytes the printer always keeps
// free for the terminator "\x1b[0m\x00" (5 bytes) plus one byte of slack.
const overflowMargin = 6

var errOverflow = fmt.Errorf("ascii: output buffer too small")

// writer is a bounded append cursor over a caller-owned buffer. It never
// writes past len(buf)-overflowMargin, which is the monotone-length
// property every printer entry point guarantees.
type writer struct {
	buf   []byte
	pos   int
	color bool
}

func (w *writer) writeString(s string) error {
	if w.pos+len(s) > len(w.buf)-overflowMargin {
		return errOverflow
	}
	w.pos += copy(w.buf[w.pos:], s)
	return nil
}

func (w *writer) sgr(code int) error {
	if !w.color {
		return nil
	}
	return w.writeString(fmt.Sprintf("\x1b[%dm", code))
}

func (w *writer) reset() error {
	if !w.color {
		return nil
	}
	return w.writeString("\x1b[0m")
}

// Print renders v under type t into buf using ANSI color escapes, and
// returns the number of bytes written (including the trailing NUL). buf
// must be at least 64 bytes.
func Print(buf []byte, v dump.Value, t *typeinfo.Type, flags Flags) (int, error) {
	return print(buf, v, t, flags, true)
}

// PrintNoColor is Print without ANSI escapes.
func PrintNoColor(buf []byte, v dump.Value, t *typeinfo.Type, flags Flags) (int, error) {
	return print(buf, v, t, flags, false)
}

func print(buf []byte, v dump.Value, t *typeinfo.Type, flags Flags, color bool) (int, error) {
	if len(buf) < minBufferSize {
		return 0, fmt.Errorf("ascii: buffer of %d bytes is below the %d-byte minimum", len(buf), minBufferSize)
	}
	w := &writer{buf: buf, color: color}
	st := &printerState{}
	if err := printValue(w, v, t, flags, st, 0); err != nil {
		return 0, err
	}
	if err := w.reset(); err != nil {
		return 0, err
	}
	if w.pos >= len(w.buf) {
		return 0, errOverflow
	}
	w.buf[w.pos] = 0
	w.pos++
	return w.pos, nil
}

func printValue(w *writer, v dump.Value, t *typeinfo.Type, flags Flags, st *printerState, indentation int) error {
	if t.Kind == typeinfo.Alias {
		if flags&Alias != 0 || st.aliasOnce {
			st.aliasOnce = false
			if err := w.writeString(t.Name + " => "); err != nil {
				return err
			}
		}
		return printValue(w, v, t.Target, flags, st, indentation)
	}
	st.aliasOnce = false

	switch t.Kind {
	case typeinfo.Boolean:
		if err := w.sgr(sgrBool); err != nil {
			return err
		}
		if v.Bool {
			return w.writeString("true")
		}
		return w.writeString("false")

	case typeinfo.Int:
		if err := w.sgr(sgrInt); err != nil {
			return err
		}
		return w.writeString(fmt.Sprintf("%d", v.Int))

	case typeinfo.Fixed:
		if err := w.sgr(sgrInt); err != nil {
			return err
		}
		return w.writeString(fmt.Sprintf("%.3f", float64(v.Int)/1000.0))

	case typeinfo.Char:
		if err := w.sgr(sgrString); err != nil {
			return err
		}
		return w.writeString(fmt.Sprintf("'%c'", rune(v.Int)))

	case typeinfo.String:
		return printString(w, v, st)

	case typeinfo.Blob:
		return printBlob(w, v, flags, indentation)

	case typeinfo.Record:
		return printRecord(w, v, t, flags, st, indentation)

	case typeinfo.Tuple:
		return printTuple(w, v, t, flags, st, indentation)

	case typeinfo.Array:
		return printSequence(w, v.ArrayItems(), t.Item, "[|", "|]", flags, st, indentation)

	case typeinfo.List:
		return printSequence(w, v.ListItems(), t.Item, "[", "]", flags, st, indentation)

	case typeinfo.Custom:
		return printCustom(w, v, t, flags, st, indentation)

	case typeinfo.Unmanaged:
		if v.Unmanaged == nil || v.Unmanaged.ToString == nil {
			return w.writeString("<unmanaged>")
		}
		return w.writeString(v.Unmanaged.ToString())

	case typeinfo.Any:
		return w.writeString("ANY")
	case typeinfo.AnyMatchingTypes:
		return w.writeString("*")
	case typeinfo.ResourceName:
		return w.writeString("@")
	case typeinfo.Function:
		return w.writeString("<function>")

	default:
		return fmt.Errorf("ascii: unsupported kind %s", t.Kind)
	}
}

func printString(w *writer, v dump.Value, st *printerState) error {
	noQuotes := st.noQuotesOnce
	st.noQuotesOnce = false

	text := ""
	if v.Str != nil {
		text = v.Str.String()
	}

	if !noQuotes {
		if err := w.sgr(sgrQuote); err != nil {
			return err
		}
		if err := w.writeString("\""); err != nil {
			return err
		}
	}
	if err := w.sgr(sgrString); err != nil {
		return err
	}
	if err := w.writeString(text); err != nil {
		return err
	}
	if !noQuotes {
		if err := w.sgr(sgrQuote); err != nil {
			return err
		}
		return w.writeString("\"")
	}
	return nil
}

func indent(n int) string {
	out := make([]byte, 0, n*4)
	for range n {
		out = append(out, "    "...)
	}
	return string(out)
}

func printRecord(w *writer, v dump.Value, t *typeinfo.Type, flags Flags, st *printerState, indentation int) error {
	if err := w.sgr(sgrPunctuation); err != nil {
		return err
	}
	if err := w.writeString("{ "); err != nil {
		return err
	}
	for i, f := range t.Fields {
		if i > 0 {
			nextSimple := f.Type.Kind.Simple()
			if nextSimple {
				if err := w.sgr(sgrPunctuation2); err != nil {
					return err
				}
				if err := w.writeString(", "); err != nil {
					return err
				}
			} else {
				if err := w.writeString("\n" + indent(indentation)); err != nil {
					return err
				}
				if err := w.sgr(sgrPunctuation2); err != nil {
					return err
				}
				if err := w.writeString(", "); err != nil {
					return err
				}
			}
		}
		if err := w.sgr(sgrFieldName); err != nil {
			return err
		}
		if err := w.writeString(f.Name); err != nil {
			return err
		}
		if err := w.sgr(sgrPunctuation); err != nil {
			return err
		}
		if err := w.writeString(" = "); err != nil {
			return err
		}
		var fv dump.Value
		if i < len(v.Fields) {
			fv = v.Fields[i]
		}
		if err := printValue(w, fv, f.Type, flags, st, indentation+1); err != nil {
			return err
		}
	}
	if err := w.sgr(sgrPunctuation); err != nil {
		return err
	}
	return w.writeString(" }")
}

func printTuple(w *writer, v dump.Value, t *typeinfo.Type, flags Flags, st *printerState, indentation int) error {
	if err := w.sgr(sgrPunctuation); err != nil {
		return err
	}
	if err := w.writeString("( "); err != nil {
		return err
	}
	for i, f := range t.Fields {
		if i > 0 {
			if err := w.writeString("\n" + indent(indentation)); err != nil {
				return err
			}
			if err := w.sgr(sgrPunctuation2); err != nil {
				return err
			}
			if err := w.writeString(", "); err != nil {
				return err
			}
		}
		var fv dump.Value
		if i < len(v.Fields) {
			fv = v.Fields[i]
		}
		st.aliasOnce = true
		if err := printValue(w, fv, f.Type, flags, st, indentation+1); err != nil {
			return err
		}
	}
	if err := w.sgr(sgrPunctuation); err != nil {
		return err
	}
	return w.writeString(" )")
}

func printSequence(w *writer, items []dump.Value, itemType *typeinfo.Type, open, close string, flags Flags, st *printerState, indentation int) error {
	if err := w.sgr(sgrPunctuation); err != nil {
		return err
	}
	if err := w.writeString(open + " "); err != nil {
		return err
	}
	multiline := len(items) > 1
	for i, item := range items {
		if i > 0 {
			if err := w.sgr(sgrPunctuation2); err != nil {
				return err
			}
			if multiline {
				if err := w.writeString(",\n" + indent(indentation)); err != nil {
					return err
				}
			} else if err := w.writeString(", "); err != nil {
				return err
			}
		}
		if err := printValue(w, item, itemType, flags, st, indentation+1); err != nil {
			return err
		}
	}
	if err := w.sgr(sgrPunctuation); err != nil {
		return err
	}
	return w.writeString(" " + close)
}

func printCustom(w *writer, v dump.Value, t *typeinfo.Type, flags Flags, st *printerState, indentation int) error {
	if v.Variant < 0 || v.Variant >= len(t.Variants) {
		return fmt.Errorf("ascii: variant index %d out of range for %s", v.Variant, t.Name)
	}
	variant := t.Variants[v.Variant]

	if err := w.sgr(sgrVariant); err != nil {
		return err
	}
	if flags&CustomTypeVariantPrefix != 0 {
		if err := w.writeString(t.Name + ":"); err != nil {
			return err
		}
	}
	if err := w.writeString(variant.Name); err != nil {
		return err
	}
	for i, f := range variant.Fields {
		if err := w.writeString(" "); err != nil {
			return err
		}
		var fv dump.Value
		if i < len(v.VariantFields) {
			fv = v.VariantFields[i]
		}
		if err := printValue(w, fv, f.Type, flags, st, indentation+1); err != nil {
			return err
		}
	}
	return nil
}
