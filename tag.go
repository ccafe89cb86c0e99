// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import "fmt"

// Major types. The top three bits of a non-singleton lead byte.
const (
	majorInt    byte = 0x20 // 0b001: positive integer
	majorNegInt byte = 0x40 // 0b010: negative integer
	majorFloat  byte = 0x60 // 0b011: nibble-packed decimal digit string
	majorString byte = 0x80 // 0b100: UTF-8 text
	majorBinary byte = 0xA0 // 0b101: raw octets
	majorArray  byte = 0xC0 // 0b110: element count
	majorObject byte = 0xE0 // 0b111: pair count

	majorMask byte = 0xE0
)

// Lead bytes whose top three bits are 0b000 are immediate single-byte
// tokens rather than major-type/length headers.
const (
	tokFalse           byte = 0x00
	tokTrue            byte = 0x01
	tokNull            byte = 0x02
	tokPosInf          byte = 0x03
	tokNegInf          byte = 0x04
	tokNaN             byte = 0x05
	tokTerminatedArray byte = 0x0C
	tokCustom          byte = 0x0E
	tokTerminator      byte = 0x0F
)

// reservedToken reports whether b is an unassigned single-byte token:
// its top three bits are zero but it is none of the tokens above.
func reservedToken(b byte) bool {
	switch b {
	case tokFalse, tokTrue, tokNull, tokPosInf, tokNegInf, tokNaN,
		tokTerminatedArray, tokCustom, tokTerminator:
		return false
	}
	return b&majorMask == 0
}

// Float nibble alphabet. Each payload byte is two nibbles, high nibble
// first; nibbleChar maps a nibble back to its decimal-string character
// and charNibble is its inverse.
const (
	nibblePlus    byte = 0xA
	nibbleMinus   byte = 0xB
	nibbleDecimal byte = 0xD
	nibbleE       byte = 0xE
)

var nibbleChar = [16]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'+', '-', 0, '.', 'E', 0,
}

func charNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c == '+':
		return nibblePlus, true
	case c == '-':
		return nibbleMinus, true
	case c == '.':
		return nibbleDecimal, true
	case c == 'e' || c == 'E':
		return nibbleE, true
	}
	return 0, false
}

// encodeTagLength packs a major type and a non-negative length into the
// shortest of the four tag/length forms.
func encodeTagLength(major byte, length int) []byte {
	switch {
	case length < 0x10:
		return []byte{major | byte(length)}
	case length < 0x800:
		return []byte{major | 0x10 | byte(length>>8), byte(length)}
	case length < 0x70000:
		return []byte{
			major | 0x18 | byte(length>>16),
			byte(length >> 8),
			byte(length),
		}
	default:
		return []byte{
			major | 0x1F,
			byte(length >> 24), byte(length >> 16),
			byte(length >> 8), byte(length),
		}
	}
}

// decodeTagLength reads the major type and length from data, which must
// begin at the lead byte of a non-singleton value. It returns the major
// type, the decoded length, and the number of bytes the tag/length header
// itself occupied (so the caller can advance past it to the content).
func decodeTagLength(data []byte) (major byte, length int, headerLen int, err error) {
	if len(data) == 0 {
		return 0, 0, 0, errOverflowf("truncated tag/length header")
	}
	lead := data[0]
	major = lead & majorMask
	low := lead & 0x1F
	if low&0x10 == 0 {
		return major, int(low), 1, nil
	}
	if low&0x08 == 0 {
		if len(data) < 2 {
			return 0, 0, 0, errOverflowf("truncated 1-byte length extension")
		}
		length = (int(low&0x07) << 8) | int(data[1])
		return major, length, 2, nil
	}
	if low&0x07 != 0x07 {
		if len(data) < 3 {
			return 0, 0, 0, errOverflowf("truncated 2-byte length extension")
		}
		length = (int(low&0x07) << 16) | (int(data[1]) << 8) | int(data[2])
		return major, length, 3, nil
	}
	if len(data) < 5 {
		return 0, 0, 0, errOverflowf("truncated 4-byte length extension")
	}
	length = int(data[1])<<24 | int(data[2])<<16 | int(data[3])<<8 | int(data[4])
	return major, length, 5, nil
}

func errOverflowf(format string, args ...interface{}) error {
	return &OverflowError{Reason: fmt.Sprintf(format, args...)}
}
