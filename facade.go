// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"bytes"
	"io"
)

// EncodeOption configures an Encoder built by the package-level Encode and
// EncodeTo functions.
type EncodeOption func(*Encoder)

func WithSkipIllegalKeys(skip bool) EncodeOption {
	return func(e *Encoder) { e.SkipIllegalKeys = skip }
}

func WithCheckCircular(check bool) EncodeOption {
	return func(e *Encoder) { e.CheckCircular = check }
}

func WithSortKeys(sort bool) EncodeOption {
	return func(e *Encoder) { e.SortKeys = sort }
}

func WithSortKeysFunc(less func(a, b Pair) bool) EncodeOption {
	return func(e *Encoder) {
		e.SortKeys = true
		e.SortKeysFunc = less
	}
}

func WithCustomEncoding(custom ...CustomEncoding) EncodeOption {
	return func(e *Encoder) { e.Custom = append(e.Custom, custom...) }
}

func WithConvert(fn func(v interface{}) (interface{}, error)) EncodeOption {
	return func(e *Encoder) { e.Convert = fn }
}

func WithForJSON(use bool) EncodeOption {
	return func(e *Encoder) { e.UseForJSON = use }
}

// Encode renders v as a PBJSON byte sequence.
func Encode(v interface{}, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo renders v as PBJSON and writes it to w.
func EncodeTo(w io.Writer, v interface{}, opts ...EncodeOption) error {
	enc := NewEncoder()
	for _, opt := range opts {
		opt(enc)
	}
	return enc.Encode(w, v)
}

// DecodeOption configures a Decoder built by the package-level Decode and
// DecodeFrom functions.
type DecodeOption func(*Decoder)

func WithDocumentClass(fn func() MutableDocument) DecodeOption {
	return func(d *Decoder) { d.DocumentClass = fn }
}

func WithFloatDecoder(fn FloatDecoder) DecodeOption {
	return func(d *Decoder) { d.FloatDecoder = fn }
}

func WithCustomDecoder(fn func(decoded interface{}) (interface{}, error)) DecodeOption {
	return func(d *Decoder) { d.Custom = fn }
}

func WithUnicodeErrors(policy UnicodeErrorPolicy) DecodeOption {
	return func(d *Decoder) { d.UnicodeErrors = policy }
}

// Decode parses a complete PBJSON byte sequence into a value tree.
func Decode(data []byte, opts ...DecodeOption) (interface{}, error) {
	dec := NewDecoder()
	for _, opt := range opts {
		opt(dec)
	}
	v, _, err := dec.Decode(data)
	return v, err
}

// DecodeFrom reads all of r and parses it as a single PBJSON document.
func DecodeFrom(r io.Reader, opts ...DecodeOption) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts...)
}
