/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

// Package dump is a typed value serializer for the swamp runtime. Given an
// RTTI tree (package typeinfo) and a [Value] of that shape, it converts
// between that value and three external representations:
//
//   - a compact binary octet stream (Encode/Decode),
//   - a human-readable colored or plain ASCII form (package ascii; one-way,
//     not parseable back),
//   - a hand-editable YAML 1.2 subset (package yamldump).
//
// All three are driven by the same idea: a single recursive walk over the
// type tree that simultaneously walks the value tree, dispatching on
// typeinfo.Kind at every node. The five walkers (binary encode, binary
// decode, ASCII print, YAML emit, YAML parse; the colored and plain ASCII
// variants share one walk) share that skeleton and differ only in their
// per-kind leaf actions.
//
// # Scope
//
// This package does not decode RTTI itself, does not manage the runtime's
// heap or arenas beyond the minimal append-only allocator in
// internal/arena, and does not implement schema evolution: a value encoded
// against one Type must be decoded against an equal Type. ASCII output
// cannot be parsed back. Function values cannot be serialized in any
// format. See SPEC_FULL.md for the full list of non-goals.
package dump
