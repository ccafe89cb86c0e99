// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := map[string]interface{}{
		"burned": false,
		"toast":  true,
		"name":   "the best",
		"dimensions": map[string]interface{}{
			"thickness": 0.7,
			"width":     4.5,
		},
		"toppings": []interface{}{"jelly", "jam", "butter"},
	}
	data, err := Encode(in, WithSortKeys(true))
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	doc := out.(nativeMap)
	require.Equal(t, true, doc["toast"])
	require.Equal(t, false, doc["burned"])
	require.Equal(t, "the best", doc["name"])
}

func TestEncodeToDecodeFrom(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTo(&buf, []interface{}{1, 2, 3}))
	v, err := DecodeFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, v)
}

func TestDeeplyNestedArrayRoundTrips(t *testing.T) {
	var v interface{} = []interface{}{"Not too deep"}
	for i := 0; i < 18; i++ {
		v = []interface{}{v}
	}
	data, err := Encode(v)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	reencoded, err := Encode(decoded)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, reencoded))
}

func TestCustomTokenRoundTrip(t *testing.T) {
	type money struct{ cents int64 }
	data, err := Encode(money{cents: 1234}, WithCustomEncoding(CustomEncoding{
		Type: reflect.TypeOf(money{}),
		Convert: func(v interface{}) (interface{}, error) {
			return v.(money).cents, nil
		},
	}))
	require.NoError(t, err)

	seen := false
	v, err := Decode(data, WithCustomDecoder(func(decoded interface{}) (interface{}, error) {
		seen = true
		return decoded, nil
	}))
	require.NoError(t, err)
	require.True(t, seen)
	require.Equal(t, int64(1234), v)
}
