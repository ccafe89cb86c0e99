// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"bytes"
	"math/big"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func encodeBytes(t *testing.T, v interface{}, opts ...EncodeOption) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := NewEncoder()
	for _, opt := range opts {
		opt(enc)
	}
	require.NoError(t, enc.Encode(&buf, v))
	return buf.Bytes()
}

func TestEncodeSingletons(t *testing.T) {
	require.Equal(t, []byte{tokNull}, encodeBytes(t, nil))
	require.Equal(t, []byte{tokTrue}, encodeBytes(t, true))
	require.Equal(t, []byte{tokFalse}, encodeBytes(t, false))
}

func TestEncodeFloat07(t *testing.T) {
	require.Equal(t, []byte{0x61, 0xD7}, encodeBytes(t, 0.7))
}

func TestEncodeIntegerGroups(t *testing.T) {
	require.Equal(t, []byte{0x20}, encodeBytes(t, 0))
	require.Equal(t, []byte{0x21, 0x01}, encodeBytes(t, 1))
	require.Equal(t, []byte{0x41, 0x01}, encodeBytes(t, -1))
}

func TestEncodeBigInt(t *testing.T) {
	n := new(big.Int)
	n.SetString("123456789012345678901234567890", 10)
	out := encodeBytes(t, n)
	require.Equal(t, byte(majorInt), out[0]&majorMask)
}

func TestEncodeText(t *testing.T) {
	out := encodeBytes(t, "hi")
	require.Equal(t, []byte{0x82, 'h', 'i'}, out)
}

func TestEncodeStringLongLength(t *testing.T) {
	s := make([]byte, 2100)
	for i := range s {
		s[i] = 'x'
	}
	out := encodeBytes(t, string(s))
	require.Equal(t, byte(0x98), out[0])
	require.Equal(t, []byte{0x08, 0x34}, out[1:3])
	require.Equal(t, s, out[3:])
}

func TestEncodeObjectSortedKeys(t *testing.T) {
	m := map[string]interface{}{
		"toast":  true,
		"burned": false,
	}
	out := encodeBytes(t, m, WithSortKeys(true))
	v, err := Decode(out)
	require.NoError(t, err)
	doc := v.(nativeMap)
	require.Equal(t, true, doc["toast"])
	require.Equal(t, false, doc["burned"])
}

func TestEncodeObjectKeyInterning(t *testing.T) {
	pairs := Pairs{
		{Key: "name", Value: Pairs{{Key: "name", Value: "x"}}},
	}
	out := encodeBytes(t, pairs)
	// The outer "name" key is written inline (0x04 "name"); the inner,
	// repeated "name" key must be a one-byte back-reference (0x80).
	require.Contains(t, out, byte(0x80))
}

func TestEncodeCircularSlice(t *testing.T) {
	x := make([]interface{}, 1)
	x[0] = x
	var buf bytes.Buffer
	err := NewEncoder().Encode(&buf, x)
	require.Error(t, err)
	require.IsType(t, &CircularReferenceError{}, errorsCause(err))
}

func TestEncodeCheckCircularDisabled(t *testing.T) {
	enc := NewEncoder()
	enc.CheckCircular = false
	var buf bytes.Buffer
	// A self-referential array with circular checking off would recurse
	// forever, so exercise a merely-repeated (not cyclic) shared slice
	// instead to show the option is honored without infinite recursion.
	shared := []interface{}{1, 2}
	v := []interface{}{shared, shared}
	require.NoError(t, enc.Encode(&buf, v))
}

func TestEncodeStructTags(t *testing.T) {
	type tags struct {
		Ignore     string `pbjson:"-"`
		Rename     string `pbjson:"rename_ok"`
		OmitRename string `pbjson:"omitrename_ok,omitempty"`
		Omit       string `pbjson:",omitempty"`
	}
	out := encodeBytes(t, tags{Ignore: "x", Rename: "bar", OmitRename: "", Omit: ""})
	v, err := Decode(out)
	require.NoError(t, err)
	doc := v.(nativeMap)
	require.Equal(t, map[string]interface{}{"rename_ok": "bar"}, map[string]interface{}(doc))
}

func TestEncodeUnexportedFieldIgnored(t *testing.T) {
	type unexported struct {
		foo string
	}
	out := encodeBytes(t, unexported{foo: "bar"})
	v, err := Decode(out)
	require.NoError(t, err)
	require.Empty(t, v.(nativeMap))
}

func TestEncodeIllegalKey(t *testing.T) {
	m := map[int]interface{}{1: "x"}
	var buf bytes.Buffer
	err := NewEncoder().Encode(&buf, m)
	require.Error(t, err)
	require.IsType(t, &IllegalKeyError{}, errorsCause(err))
}

func TestEncodeSkipIllegalKeys(t *testing.T) {
	m := map[int]interface{}{1: "x"}
	out := encodeBytes(t, m, WithSkipIllegalKeys(true))
	v, err := Decode(out)
	require.NoError(t, err)
	require.Empty(t, v.(nativeMap))
}

func TestEncodeCustomType(t *testing.T) {
	type money struct{ cents int64 }
	out := encodeBytes(t, money{cents: 500}, WithCustomEncoding(CustomEncoding{
		Type: reflect.TypeOf(money{}),
		Convert: func(v interface{}) (interface{}, error) {
			return v.(money).cents, nil
		},
	}))
	require.Equal(t, byte(tokCustom), out[0])
}

func TestEncodeDecimalFloat(t *testing.T) {
	d := decimal.RequireFromString("4.5")
	out := encodeBytes(t, d)
	require.Equal(t, []byte{0x62, 0x4D, 0x5D}, out)
}

// errorsCause unwraps a github.com/pkg/errors stack trace down to the
// concrete *XxxError value so tests can assert on its type.
func errorsCause(err error) error {
	type causer interface{ Cause() error }
	for err != nil {
		c, ok := err.(causer)
		if !ok {
			return err
		}
		err = c.Cause()
	}
	return err
}
