// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"
)

// UnicodeErrorPolicy controls how the decoder handles invalid UTF-8 inside
// a Text value's content.
type UnicodeErrorPolicy int

const (
	UnicodeStrict UnicodeErrorPolicy = iota
	UnicodeReplace
	UnicodeIgnore
)

// MutableDocument lets a caller supply an alternate Object constructor —
// for example one that preserves key insertion order — instead of the
// default plain map.
type MutableDocument interface {
	Set(key string, value interface{})
}

// FloatDecoder parses the decimal digit string recovered from a Float
// payload. The default parses it as an IEEE-754 float64.
type FloatDecoder func(digits string) (interface{}, error)

// Decoder consumes a PBJSON byte sequence and rebuilds a value tree.
type Decoder struct {
	DocumentClass func() MutableDocument
	FloatDecoder  FloatDecoder
	Custom        func(decoded interface{}) (interface{}, error)
	UnicodeErrors UnicodeErrorPolicy
}

// NewDecoder returns a Decoder with its zero-value defaults: a plain-map
// document, float64 parsing, and strict Unicode handling.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// decodeState holds the key intern table for a single Decode call. It is
// growable and capped at 128 entries, built in the order keys are first
// seen across the whole document.
type decodeState struct {
	total int
	keys  []string
	dec   *Decoder
}

func (ds *decodeState) offset(data []byte) int { return ds.total - len(data) }

// Decode parses data as a single PBJSON document and returns the decoded
// value and the number of bytes consumed.
func (d *Decoder) Decode(data []byte) (interface{}, int, error) {
	ds := &decodeState{total: len(data), dec: d}
	v, rest, err := ds.decodeValue(data)
	if err != nil {
		return nil, 0, err
	}
	return v, len(data) - len(rest), nil
}

func (ds *decodeState) floatDecoder() FloatDecoder {
	if ds.dec.FloatDecoder != nil {
		return ds.dec.FloatDecoder
	}
	return func(digits string) (interface{}, error) {
		return strconv.ParseFloat(digits, 64)
	}
}

func (ds *decodeState) newDocument() MutableDocument {
	if ds.dec.DocumentClass != nil {
		return ds.dec.DocumentClass()
	}
	return make(nativeMap)
}

// nativeMap is the default Object result. Its underlying type is
// map[string]interface{}, as in encoding/json's decode-to-interface{}
// convention, but the decoded value's dynamic type is nativeMap, so a type
// assertion to map[string]interface{} does not match it.
type nativeMap map[string]interface{}

func (m nativeMap) Set(key string, value interface{}) { m[key] = value }

func (ds *decodeState) decodeValue(data []byte) (interface{}, []byte, error) {
	if len(data) == 0 {
		return nil, nil, errMalformedf(ds.offset(data), "unexpected end of input")
	}
	lead := data[0]
	rest := data[1:]

	if lead&majorMask == 0 {
		if reservedToken(lead) {
			return nil, nil, errMalformedf(ds.offset(data), "reserved lead byte 0x%02X", lead)
		}
		switch lead {
		case tokFalse:
			return false, rest, nil
		case tokTrue:
			return true, rest, nil
		case tokNull:
			return nil, rest, nil
		case tokPosInf:
			return math.Inf(1), rest, nil
		case tokNegInf:
			return math.Inf(-1), rest, nil
		case tokNaN:
			return math.NaN(), rest, nil
		case tokTerminatedArray:
			return ds.decodeTerminatedArray(rest)
		case tokCustom:
			v, rest2, err := ds.decodeValue(rest)
			if err != nil {
				return nil, nil, err
			}
			if ds.dec.Custom == nil {
				return v, rest2, nil
			}
			converted, err := ds.dec.Custom(v)
			if err != nil {
				return nil, nil, err
			}
			return converted, rest2, nil
		case tokTerminator:
			return nil, nil, errMalformedf(ds.offset(data), "unexpected array terminator")
		}
	}

	major, length, headerLen, err := decodeTagLength(data)
	if err != nil {
		return nil, nil, err
	}
	body := data[headerLen:]

	switch major {
	case majorInt, majorNegInt:
		return ds.decodeInt(data, body, major, length)
	case majorFloat:
		return ds.decodeFloat(data, body, length)
	case majorString:
		return ds.decodeString(data, body, length)
	case majorBinary:
		return ds.decodeBinary(data, body, length)
	case majorArray:
		return ds.decodeArray(body, length)
	case majorObject:
		return ds.decodeObject(body, length)
	}
	return nil, nil, errMalformedf(ds.offset(data), "unknown major type 0x%02X", major)
}

func (ds *decodeState) take(data, body []byte, length int) ([]byte, []byte, error) {
	if length < 0 || length > len(body) {
		return nil, nil, errOverflowf("declared length %d exceeds remaining buffer of %d bytes", length, len(body))
	}
	return body[:length], body[length:], nil
}

func (ds *decodeState) decodeInt(data, body []byte, major byte, length int) (interface{}, []byte, error) {
	content, rest, err := ds.take(data, body, length)
	if err != nil {
		return nil, nil, err
	}
	n := new(big.Int).SetBytes(content)
	if major == majorNegInt {
		n.Neg(n)
	}
	if n.IsInt64() {
		return n.Int64(), rest, nil
	}
	return n, rest, nil
}

func (ds *decodeState) decodeFloat(data, body []byte, length int) (interface{}, []byte, error) {
	content, rest, err := ds.take(data, body, length)
	if err != nil {
		return nil, nil, err
	}
	digits := unpackFloatDigits(content)
	v, err := ds.floatDecoder()(digits)
	if err != nil {
		return nil, nil, errMalformedf(ds.offset(data), "invalid float digits %q: %v", digits, err)
	}
	return v, rest, nil
}

func (ds *decodeState) decodeString(data, body []byte, length int) (interface{}, []byte, error) {
	content, rest, err := ds.take(data, body, length)
	if err != nil {
		return nil, nil, err
	}
	s, err := ds.decodeUTF8(data, content)
	if err != nil {
		return nil, nil, err
	}
	return s, rest, nil
}

func (ds *decodeState) decodeBinary(data, body []byte, length int) (interface{}, []byte, error) {
	content, rest, err := ds.take(data, body, length)
	if err != nil {
		return nil, nil, err
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, rest, nil
}

// decodeUTF8 validates content as UTF-8, applying the configured error
// policy when it isn't: strict fails, replace substitutes U+FFFD for each
// bad sequence, ignore drops them.
func (ds *decodeState) decodeUTF8(data, content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}
	switch ds.dec.UnicodeErrors {
	case UnicodeReplace:
		buf := make([]rune, 0, len(content))
		for i := 0; i < len(content); {
			r, size := utf8.DecodeRune(content[i:])
			buf = append(buf, r)
			i += size
		}
		return string(buf), nil
	case UnicodeIgnore:
		out := make([]byte, 0, len(content))
		for i := 0; i < len(content); {
			r, size := utf8.DecodeRune(content[i:])
			if r != utf8.RuneError || size > 1 {
				out = append(out, content[i:i+size]...)
			}
			i += size
		}
		return string(out), nil
	default:
		return "", errMalformedf(ds.offset(data), "invalid UTF-8 in text value")
	}
}

func (ds *decodeState) decodeArray(data []byte, length int) (interface{}, []byte, error) {
	result := make([]interface{}, 0, length)
	rest := data
	for i := 0; i < length; i++ {
		var v interface{}
		var err error
		v, rest, err = ds.decodeValue(rest)
		if err != nil {
			return nil, nil, err
		}
		result = append(result, v)
	}
	return result, rest, nil
}

// decodeTerminatedArray decodes the 0x0C ... 0x0F length-terminated Array
// form used by producers that don't know their element count in advance.
func (ds *decodeState) decodeTerminatedArray(data []byte) (interface{}, []byte, error) {
	result := []interface{}{}
	rest := data
	for {
		if len(rest) == 0 {
			return nil, nil, errMalformedf(ds.offset(rest), "unterminated length-terminated array")
		}
		if rest[0] == tokTerminator {
			rest = rest[1:]
			break
		}
		var v interface{}
		var err error
		v, rest, err = ds.decodeValue(rest)
		if err != nil {
			return nil, nil, err
		}
		result = append(result, v)
	}
	return result, rest, nil
}

// decodeObject decodes Object pairs, resolving key back-references
// against the per-document intern table.
func (ds *decodeState) decodeObject(data []byte, length int) (interface{}, []byte, error) {
	doc := ds.newDocument()
	rest := data
	for i := 0; i < length; i++ {
		if len(rest) == 0 {
			return nil, nil, errMalformedf(ds.offset(rest), "unexpected end of input reading object key")
		}
		keyToken := rest[0]
		rest = rest[1:]
		var key string
		if keyToken < 0x80 {
			keyLen := int(keyToken)
			if keyLen > len(rest) {
				return nil, nil, errOverflowf("object key length %d exceeds remaining buffer", keyLen)
			}
			var keyBytes []byte
			keyBytes, rest = rest[:keyLen], rest[keyLen:]
			var err error
			key, err = ds.decodeUTF8(rest, keyBytes)
			if err != nil {
				return nil, nil, err
			}
			if len(ds.keys) < 128 {
				ds.keys = append(ds.keys, key)
			}
		} else {
			idx := int(keyToken & 0x7F)
			if idx >= len(ds.keys) {
				return nil, nil, errMalformedf(ds.offset(rest), "key back-reference %d exceeds intern table of %d entries", idx, len(ds.keys))
			}
			key = ds.keys[idx]
		}
		var v interface{}
		var err error
		v, rest, err = ds.decodeValue(rest)
		if err != nil {
			return nil, nil, err
		}
		doc.Set(key, v)
	}
	return doc, rest, nil
}
