// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTerminatedArray(t *testing.T) {
	v, consumed, err := NewDecoder().Decode([]byte{0x0C, 0x20, 0x21, 0x01, 0x21, 0x02, 0x0F})
	require.NoError(t, err)
	require.Equal(t, 7, consumed)
	require.Equal(t, []interface{}{int64(0), int64(1), int64(2)}, v)
}

func TestDecodeSingletons(t *testing.T) {
	v, _, err := NewDecoder().Decode([]byte{tokFalse})
	require.NoError(t, err)
	require.Equal(t, false, v)

	v, _, err = NewDecoder().Decode([]byte{tokNull})
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestDecodeReservedByteRejected(t *testing.T) {
	_, _, err := NewDecoder().Decode([]byte{0x06})
	require.Error(t, err)
	require.IsType(t, &MalformedError{}, errorsCause(err))
}

func TestDecodeObjectKeyInterning(t *testing.T) {
	var buf []byte
	buf = append(buf, encodeTagLength(majorObject, 2)...)
	buf = append(buf, 4, 'n', 'a', 'm', 'e')
	buf = append(buf, encodeTagLength(majorString, 1)...)
	buf = append(buf, 'x')
	buf = append(buf, 0x80) // back-reference to "name"
	buf = append(buf, encodeTagLength(majorString, 1)...)
	buf = append(buf, 'y')

	v, _, err := NewDecoder().Decode(buf)
	require.NoError(t, err)
	doc := v.(nativeMap)
	require.Len(t, doc, 1)
	require.Equal(t, "y", doc["name"])
}

func TestDecodeKeyBackReferenceOutOfRange(t *testing.T) {
	var buf []byte
	buf = append(buf, encodeTagLength(majorObject, 1)...)
	buf = append(buf, 0x80) // references intern[0], but table is empty
	buf = append(buf, encodeTagLength(majorString, 1)...)
	buf = append(buf, 'x')

	_, _, err := NewDecoder().Decode(buf)
	require.Error(t, err)
}

func TestDecodeIntegerAndFloatRoundTrip(t *testing.T) {
	out, err := Encode(int64(-12345))
	require.NoError(t, err)
	v, err := Decode(out)
	require.NoError(t, err)
	require.Equal(t, int64(-12345), v)

	out, err = Encode(0.7)
	require.NoError(t, err)
	v, err = Decode(out)
	require.NoError(t, err)
	require.InDelta(t, 0.7, v.(float64), 1e-12)
}

func TestDecodeCustomDocumentClass(t *testing.T) {
	out, err := Encode(Pairs{{Key: "a", Value: 1}, {Key: "b", Value: 2}})
	require.NoError(t, err)

	got := &orderedHolder{vals: map[string]interface{}{}}
	v, err := Decode(out, WithDocumentClass(func() MutableDocument {
		return orderedDoc{got}
	}))
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, []string{"a", "b"}, got.keys)
	require.Equal(t, int64(1), got.vals["a"])
}

type orderedHolder struct {
	keys []string
	vals map[string]interface{}
}

type orderedDoc struct{ h *orderedHolder }

func (d orderedDoc) Set(key string, value interface{}) {
	d.h.keys = append(d.h.keys, key)
	d.h.vals[key] = value
}
