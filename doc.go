/*
Package pbjson implements Packed Binary JSON, a compact binary
serialization of JSON-like values.

 Wire Format

 Basic Types:
 The following basic types are used as terminals below. Multi-byte
 lengths are big-endian.

 byte   1 byte  (8-bits)
 nibble 4 bits, packed two to a byte, high nibble first

 Lead byte:
 Every value begins with one lead byte. If its top three bits are all
 zero, the byte is a complete, self-describing token:

 "\x00"                False
 "\x01"                True
 "\x02"                Null
 "\x03"                Positive infinity
 "\x04"                Negative infinity
 "\x05"                NaN
 "\x0C" value* "\x0F"  Length-terminated array (unknown element count)
 "\x0E" value          Custom-tagged value
 "\x0F"                Array terminator (only valid after "\x0C")

 Otherwise the top three bits name a major type and the low five bits
 encode a length, in one of four growing forms:

 major | length          1 lead byte, length 0-15
 major | "\x10" length16  1 lead byte (3 length bits) + 1 byte
 major | "\x18" length24  1 lead byte (3 length bits) + 2 bytes
 major | "\x1F" length32  1 lead byte + 4 bytes

 major ::= "\x20"  Integer     (length = byte count of big-endian magnitude)
         | "\x40"  NegInteger  (same, negative)
         | "\x60"  Float       (length = nibble-packed digit-string byte count)
         | "\x80"  Text        (length = UTF-8 byte count)
         | "\xA0"  Binary      (length = byte count)
         | "\xC0"  Array       (length = element count)
         | "\xE0"  Object      (length = pair count)

 Object keys:
 Each Object pair begins with one key byte. If its top bit is clear it
 is a length (0-127) followed by that many UTF-8 bytes, which is also
 appended to a per-document, insertion-ordered intern table capped at
 128 entries. If the top bit is set, the low seven bits are a
 back-reference into that table.

 Float payload:
 A Float's content is the value's shortest round-tripping decimal
 digit string (e.g. "-4.5"), nibble-packed two digits per byte using
 the alphabet 0-9, '+', '-', '.', 'e'/'E', with a leading '-' folded
 into the first nibble pair and a trailing odd nibble padded with the
 decimal-point nibble.

 Examples:
 {"hello": "world"}
 "\xE1\x05hello\x85world"

 [1, 2.5, null]
 "\xC3\x21\x01\x62\x2D\x5D\x02"

Implementation Specific:

 Go types which serve as encoding sources:
	map[string]T, Pairs, struct
		Object. Pairs and struct keep their order unless SortKeys is
		set; a map is sorted by SortKeys or left in Go's randomized
		range order.
	[]T, [N]T, chan T
		Array. A chan is drained with the length-terminated form since
		its length is not known in advance.
	string, []byte, bool, nil
		Text, Binary, Bool, Null.
	int, int8..int64, uint, uint8..uint64, *big.Int
		Integer / NegInteger, magnitude in big-endian bytes.
	float32, float64, decimal.Decimal, *big.Float
		Float.

 Struct Tags:
	Field int `pbjson:"-"`                // Ignored.
	Field int `pbjson:"myName"`           // Encoded with key "myName".
	Field int `pbjson:"myName,omitempty"` // Key "myName". Skip if empty.
	Field int `pbjson:",omitempty"`       // Skip if empty (note the ',').

 Empty Value:
	Exactly the json package's rule: false, 0, any nil pointer or
	interface value, and any array, slice, map or string of length
	zero.

 ForJSONer and NamedTupler:
	A value implementing ForJSON() (interface{}, error) is encoded as
	whatever that method returns, when Encoder.UseForJSON is set. A
	value implementing AsPairs() Pairs is encoded as an Object built
	from those pairs, in their order unless SortKeys is set.

 Cycle detection:
	Encoder.CheckCircular (on by default) tracks the address of every
	map, slice, or pointer currently being encoded on the active path
	and fails with CircularReferenceError if one reappears.
*/
package pbjson
