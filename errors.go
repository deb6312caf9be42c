// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/dblspace

package dblspace

import "errors"

// Package errors. Decode failures wrap one of the first five with
// fmt.Errorf, so test them with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported format: signature mismatch")
	ErrInsufficientData  = errors.New("insufficient data in compressed stream")
	ErrInvalidEncoding   = errors.New("invalid encoding in compressed stream")
	ErrOutputOverflow    = errors.New("decoded data exceeds output capacity")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNilReader         = errors.New("reader is nil")
	ErrInputTooLarge     = errors.New("compressed input exceeds size limit")
	ErrNegativeCapacity  = errors.New("output capacity must be non-negative")
)
