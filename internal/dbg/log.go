/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

// Package dbg is the process-wide diagnostic logger sink described in §5 and
// §7 of the design notes. The binary encoder and decoder emit a one-line
// diagnostic through here before returning some of their errors (a missing
// unmanaged factory, an out-of-range variant index, an incompatible version
// header, an unmanaged value with no serialize callback, an attempt to encode
// a Function), then return the error unchanged. The YAML parser, the ASCII
// printer and the encoder's and decoder's unsupported-kind branches return
// their errors without logging. Nothing in this module ever reads the logger
// back or branches on it; it is write-only from the core's point of view.
package dbg

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger = zap.NewNop()
)

// SetLogger replaces the process-wide logger. Passing nil restores a no-op
// logger. This is the only global, mutable state in the module.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Diagnostic logs a single-line explanation for a diagnosable error before
// it is returned to the caller.
func Diagnostic(msg string, fields ...zap.Field) {
	get().Warn(msg, fields...)
}
