/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package ascii

import (
	"fmt"

	"github.com/swamp/dump"
)

const blobExpandLimit = 2048

// printBlob implements the Blob rendering rules in §4.4: a bare "blob N" by
// default, or (with BlobExpanded) up to the first 2048 bytes rendered as
// wrapped ASCII or wrapped hex, auto-selected per BlobAutoFormat by whether
// every shown byte is printable.
func printBlob(w *writer, v dump.Value, flags Flags, indentation int) error {
	var octets []byte
	if v.Blob != nil {
		octets = v.Blob.Octets
	}

	if err := w.sgr(sgrPunctuation2); err != nil {
		return err
	}
	if err := w.writeString(fmt.Sprintf("blob %d", len(octets))); err != nil {
		return err
	}

	if flags&BlobExpanded == 0 {
		return nil
	}

	shown := octets
	if len(shown) > blobExpandLimit {
		shown = shown[:blobExpandLimit]
	}

	hex := flags&BlobAscii == 0
	if flags&BlobAutoFormat != 0 {
		hex = !allPrintable(shown)
	}

	if hex {
		return writeHexWrapped(w, shown, indentation)
	}
	return writeASCIIWrapped(w, shown, indentation)
}

func allPrintable(b []byte) bool {
	for _, c := range b {
		if c < 32 || c > 126 {
			return false
		}
	}
	return true
}

func wrapIndent(indentation int) string {
	out := make([]byte, 0, (indentation+1)*2)
	for range indentation + 1 {
		out = append(out, ".."...)
	}
	return string(out)
}

func writeASCIIWrapped(w *writer, octets []byte, indentation int) error {
	const width = 64
	pad := wrapIndent(indentation)
	for i := 0; i < len(octets); i += width {
		end := min(i+width, len(octets))
		if err := w.writeString("\n" + pad); err != nil {
			return err
		}
		if err := w.writeString(string(octets[i:end])); err != nil {
			return err
		}
	}
	return nil
}

func writeHexWrapped(w *writer, octets []byte, indentation int) error {
	const width = 32
	pad := wrapIndent(indentation)
	for i := 0; i < len(octets); i += width {
		end := min(i+width, len(octets))
		if err := w.writeString("\n" + pad); err != nil {
			return err
		}
		for _, c := range octets[i:end] {
			if err := w.writeString(fmt.Sprintf("%02X ", c)); err != nil {
				return err
			}
		}
	}
	return nil
}
