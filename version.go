/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package dump

import "github.com/swamp/dump/internal/stream"

// Version is the 3-byte header every top-level binary encoding begins with
// (§6, "Binary wire format"). Encode writes {0, 1, 0}; Decode accepts any
// {0, 1, patch} and rejects everything else with CodeCannotSerialize.
type Version struct {
	Major, Minor, Patch uint8
}

// CurrentVersion is the version this module writes.
var CurrentVersion = Version{Major: 0, Minor: 1, Patch: 0}

// Compatible reports whether a decoder built against CurrentVersion can read
// a stream carrying v. Per §6, any patch is accepted.
func (v Version) Compatible() bool {
	return v.Major == CurrentVersion.Major && v.Minor == CurrentVersion.Minor
}

func writeVersion(out *stream.Out, v Version) {
	out.WriteU8(v.Major)
	out.WriteU8(v.Minor)
	out.WriteU8(v.Patch)
}

func readVersion(in *stream.In) (Version, error) {
	major, err := in.ReadU8()
	if err != nil {
		return Version{}, err
	}
	minor, err := in.ReadU8()
	if err != nil {
		return Version{}, err
	}
	patch, err := in.ReadU8()
	if err != nil {
		return Version{}, err
	}
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}
