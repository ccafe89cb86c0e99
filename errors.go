// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnsupportedTypeError is returned when a value has no encoding rule and
// neither Custom nor Convert handles it.
type UnsupportedTypeError struct {
	Path  string
	Value interface{}
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("pbjson: %s: cannot encode %T", e.Path, e.Value)
}

// CircularReferenceError is returned when the encoder detects a container
// or custom-converted value appearing twice on the current encode path.
type CircularReferenceError struct {
	Path string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("pbjson: %s: circular reference detected", e.Path)
}

// IllegalKeyError is returned when an object key is not text or exceeds
// 127 UTF-8 bytes and SkipIllegalKeys is false.
type IllegalKeyError struct {
	Path string
	Key  interface{}
}

func (e *IllegalKeyError) Error() string {
	return fmt.Sprintf("pbjson: %s: illegal object key %v", e.Path, e.Key)
}

// MalformedError is returned by the decoder for structurally invalid
// input: a reserved lead byte, an out-of-range key back-reference, a
// buffer that ends where a value or object key should begin, or invalid
// UTF-8 under the strict unicode policy.
type MalformedError struct {
	Offset int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("pbjson: malformed input at offset %d: %s", e.Offset, e.Reason)
}

// OverflowError is returned when a declared length exceeds the remaining
// buffer, or when the buffer ends inside a tag/length header.
type OverflowError struct {
	Reason string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("pbjson: %s", e.Reason)
}

func errUnsupportedType(path string, v interface{}) error {
	return errors.WithStack(&UnsupportedTypeError{Path: path, Value: v})
}

func errCircular(path string) error {
	return errors.WithStack(&CircularReferenceError{Path: path})
}

func errIllegalKey(path string, key interface{}) error {
	return errors.WithStack(&IllegalKeyError{Path: path, Key: key})
}

func errMalformedf(offset int, format string, args ...interface{}) error {
	return errors.WithStack(&MalformedError{Offset: offset, Reason: fmt.Sprintf(format, args...)})
}
