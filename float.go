// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// floatText renders v to the decimal digit string that the Float wire
// encoding packs into nibbles. For native Go floats this must be a
// shortest-round-tripping representation — strconv's -1 precision already
// provides that, at the bit width the value actually carries; a trailing
// ".0" is added for whole numbers so the nibble packer always sees a
// decimal point to strip or pair on.
func floatText(v interface{}) (s string, isNaN bool) {
	switch vt := v.(type) {
	case float32:
		return formatFloatText(float64(vt), 32)
	case float64:
		return formatFloatText(vt, 64)
	case decimal.Decimal:
		return vt.String(), false
	case *big.Float:
		if vt.IsInf() {
			if vt.Signbit() {
				return "-inf", false
			}
			return "inf", false
		}
		return vt.Text('g', -1), false
	}
	return "", false
}

func formatFloatText(v float64, bitSize int) (string, bool) {
	if math.IsNaN(v) {
		return "nan", true
	}
	if math.IsInf(v, 1) {
		return "inf", false
	}
	if math.IsInf(v, -1) {
		return "-inf", false
	}
	s := strconv.FormatFloat(v, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, false
}

// packFloatDigits packs a decimal digit string into the Float payload
// nibble stream: strip a leading '-' into a pending high nibble, strip one
// leading '0' before the decimal point, strip a trailing ".0", then pair
// the remaining characters into nibbles, padding an odd final nibble with
// the decimal-point nibble. It returns (special, isSpecial, payload):
// special is a singleton token (tokPosInf/tokNegInf) when the text denotes
// infinity, in which case payload is unused.
func packFloatDigits(s string) (special byte, isSpecial bool, payload []byte) {
	if s == "" {
		return 0, false, nil
	}
	if s[0] == 'n' || s[0] == 'N' {
		return tokNaN, true, nil
	}
	if s[0] == 'i' || s[0] == 'I' {
		return tokPosInf, true, nil
	}
	var pending *byte
	if s[0] == '-' {
		m := nibbleMinus
		pending = &m
		s = s[1:]
		if len(s) > 0 && (s[0] == 'i' || s[0] == 'I') {
			return tokNegInf, true, nil
		}
	}
	if len(s) > 0 && s[0] == '0' {
		s = s[1:]
	}
	if strings.HasSuffix(s, ".0") {
		s = s[:len(s)-2]
	}
	var out []byte
	for len(s) > 0 {
		c, _ := charNibble(s[0])
		s = s[1:]
		if pending == nil {
			p := c
			pending = &p
		} else {
			out = append(out, (*pending<<4)|c)
			pending = nil
		}
	}
	if pending != nil {
		out = append(out, (*pending<<4)|nibbleDecimal)
	}
	return 0, false, out
}

// unpackFloatDigits is the decoder's inverse of packFloatDigits: split
// each byte into high/low nibbles and map them back through the alphabet,
// dropping a trailing '.' left over from odd-length padding. An empty
// payload decodes to "0".
func unpackFloatDigits(payload []byte) string {
	if len(payload) == 0 {
		return "0"
	}
	buf := make([]byte, 0, len(payload)*2)
	for _, b := range payload {
		buf = append(buf, nibbleChar[b>>4])
		buf = append(buf, nibbleChar[b&0x0F])
	}
	if buf[len(buf)-1] == '.' {
		buf = buf[:len(buf)-1]
	}
	return string(buf)
}
