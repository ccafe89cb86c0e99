// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import (
	"io"
	"math/big"
	"reflect"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Pair is one (key, value) entry of an ordered object.
type Pair struct {
	Key   string
	Value interface{}
}

// Pairs is an ordered object — use it instead of a map when insertion
// order must survive encoding.
type Pairs []Pair

// AsPairs lets Pairs satisfy NamedTupler directly.
func (p Pairs) AsPairs() Pairs { return p }

// ForJSONer lets a value project itself to whatever gets encoded in its
// place.
type ForJSONer interface {
	ForJSON() (interface{}, error)
}

// NamedTupler lets a value project itself to an ordered key/value view,
// encoded as an Object.
type NamedTupler interface {
	AsPairs() Pairs
}

// CustomEncoding registers a conversion function for values of a specific
// concrete type. Matching values are written behind the opaque 0x0E
// custom token, followed by the recursively encoded conversion result.
type CustomEncoding struct {
	Type    reflect.Type
	Convert func(v interface{}) (interface{}, error)
}

// Encoder walks a value tree and writes PBJSON. The zero value is usable
// except CheckCircular defaults to false; use NewEncoder for the
// documented default (true).
type Encoder struct {
	SkipIllegalKeys bool
	CheckCircular   bool
	SortKeys        bool
	SortKeysFunc    func(a, b Pair) bool
	Custom          []CustomEncoding
	Convert         func(v interface{}) (interface{}, error)
	UseForJSON      bool
}

// NewEncoder returns an Encoder with CheckCircular enabled.
func NewEncoder() *Encoder {
	return &Encoder{CheckCircular: true}
}

// encodeState holds the key-intern table and cycle-detection markers for
// a single Encode call. Never shared across calls or goroutines.
type encodeState struct {
	w       io.Writer
	keys    map[string]int
	markers map[uintptr]bool
	enc     *Encoder
}

func (st *encodeState) write(p []byte) error {
	_, err := st.w.Write(p)
	return err
}

// Encode writes v to w in a single call. It constructs fresh per-call
// state, so an Encoder can be reused concurrently across calls.
func (e *Encoder) Encode(w io.Writer, v interface{}) error {
	st := &encodeState{
		w:    w,
		keys: make(map[string]int),
		enc:  e,
	}
	if e.CheckCircular {
		st.markers = make(map[uintptr]bool)
	}
	return st.encodeValue("", v)
}

func containerIdentity(v interface{}) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Ptr, reflect.Chan:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	}
	return 0, false
}

func (st *encodeState) enter(path string, v interface{}) (func(), error) {
	if st.markers == nil {
		return func() {}, nil
	}
	id, ok := containerIdentity(v)
	if !ok {
		return func() {}, nil
	}
	if st.markers[id] {
		return nil, errCircular(path)
	}
	st.markers[id] = true
	return func() { delete(st.markers, id) }, nil
}

// encodeValue dispatches v to its wire encoding: first the built-in
// scalar types, then integer and float kinds, then any registered
// custom-type converter, then an optional ForJSON projection, then
// pointers/maps/named-tuple values/structs/slices/arrays/channels, then a
// final Convert fallback before giving up with an unsupported-type error.
func (st *encodeState) encodeValue(path string, v interface{}) error {
	switch vt := v.(type) {
	case string:
		return st.encodeText(vt)
	case []byte:
		return st.encodeBytes(vt)
	case nil:
		return st.write([]byte{tokNull})
	case bool:
		if vt {
			return st.write([]byte{tokTrue})
		}
		return st.write([]byte{tokFalse})
	}

	if isIntegerValue(v) {
		return st.encodeInteger(v)
	}
	if isFloatValue(v) {
		return st.encodeFloat(v)
	}

	for _, c := range st.enc.Custom {
		if reflect.TypeOf(v) == c.Type {
			leave, err := st.enter(path, v)
			if err != nil {
				return err
			}
			defer leave()
			converted, err := c.Convert(v)
			if err != nil {
				return err
			}
			if err := st.write([]byte{tokCustom}); err != nil {
				return err
			}
			return st.encodeValue(path, converted)
		}
	}

	if st.enc.UseForJSON {
		if fj, ok := v.(ForJSONer); ok {
			projected, err := fj.ForJSON()
			if err != nil {
				return err
			}
			return st.encodeValue(path, projected)
		}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return st.write([]byte{tokNull})
		}
	}
	switch rv.Kind() {
	case reflect.Ptr:
		leave, err := st.enter(path, v)
		if err != nil {
			return err
		}
		defer leave()
		return st.encodeValue(path, rv.Elem().Interface())
	case reflect.Map:
		return st.encodeMapValue(path, v, rv)
	}

	if nt, ok := v.(NamedTupler); ok {
		return st.encodeObject(path, nt.AsPairs())
	}

	if rv.Kind() == reflect.Struct {
		return st.encodeStructValue(path, rv)
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return st.encodeSequence(path, rv)
	case reflect.Chan:
		return st.encodeTerminatedChan(path, rv)
	}

	if st.enc.Convert != nil {
		converted, err := st.enc.Convert(v)
		if err != nil {
			return err
		}
		return st.encodeValue(path, converted)
	}
	return errUnsupportedType(path, v)
}

func (st *encodeState) encodeText(s string) error {
	content := []byte(s)
	if err := st.write(encodeTagLength(majorString, len(content))); err != nil {
		return err
	}
	return st.write(content)
}

func (st *encodeState) encodeBytes(b []byte) error {
	if err := st.write(encodeTagLength(majorBinary, len(b))); err != nil {
		return err
	}
	return st.write(b)
}

// encodeInteger writes the value's sign as the major type and its
// magnitude as the minimal big-endian byte string (no leading zero byte;
// zero bytes for zero).
func (st *encodeState) encodeInteger(v interface{}) error {
	n := asBigInt(v)
	major := majorInt
	if n.Sign() < 0 {
		major = majorNegInt
		n = new(big.Int).Neg(n)
	}
	content := bigIntBytes(n)
	if err := st.write(encodeTagLength(major, len(content))); err != nil {
		return err
	}
	return st.write(content)
}

// bigIntBytes returns the minimal big-endian byte representation of a
// non-negative big.Int, with no leading zero byte and zero bytes for 0.
func bigIntBytes(n *big.Int) []byte {
	if n.Sign() == 0 {
		return nil
	}
	return n.Bytes()
}

func (st *encodeState) encodeFloat(v interface{}) error {
	s, isNaN := floatText(v)
	if isNaN {
		return st.write([]byte{tokNaN})
	}
	special, isSpecial, payload := packFloatDigits(s)
	if isSpecial {
		return st.write([]byte{special})
	}
	if err := st.write(encodeTagLength(majorFloat, len(payload))); err != nil {
		return err
	}
	return st.write(payload)
}

func (st *encodeState) encodeMapValue(path string, v interface{}, rv reflect.Value) error {
	pairs, err := pairsFromMap(path, rv, st.enc.SkipIllegalKeys)
	if err != nil {
		return err
	}
	leave, err := st.enter(path, v)
	if err != nil {
		return err
	}
	defer leave()
	return st.encodeObjectPairs(path, pairs)
}

func pairsFromMap(path string, rv reflect.Value, skipIllegal bool) (Pairs, error) {
	pairs := make(Pairs, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() != reflect.String {
			if skipIllegal {
				continue
			}
			return nil, errIllegalKey(path, k.Interface())
		}
		key := k.String()
		if len(key) > 127 {
			if skipIllegal {
				continue
			}
			return nil, errIllegalKey(path, key)
		}
		pairs = append(pairs, Pair{Key: key, Value: iter.Value().Interface()})
	}
	return pairs, nil
}

func (st *encodeState) encodeObject(path string, pairs Pairs) error {
	leave, err := st.enter(path, pairs)
	if err != nil {
		return err
	}
	defer leave()
	return st.encodeObjectPairs(path, pairs)
}

// encodeObjectPairs rejects keys longer than 127 bytes (or drops them when
// SkipIllegalKeys is set), sorts pairs if configured, then for each pair
// emits either a one-byte back-reference into the intern table or an inline
// key that grows it.
func (st *encodeState) encodeObjectPairs(path string, pairs Pairs) error {
	kept := make(Pairs, 0, len(pairs))
	for _, p := range pairs {
		if len(p.Key) > 127 {
			if st.enc.SkipIllegalKeys {
				continue
			}
			return errIllegalKey(path, p.Key)
		}
		kept = append(kept, p)
	}
	pairs = kept
	if st.enc.SortKeys {
		sorted := make(Pairs, len(pairs))
		copy(sorted, pairs)
		less := st.enc.SortKeysFunc
		if less == nil {
			less = func(a, b Pair) bool { return a.Key < b.Key }
		}
		sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
		pairs = sorted
	}
	if err := st.write(encodeTagLength(majorObject, len(pairs))); err != nil {
		return err
	}
	for _, p := range pairs {
		if idx, ok := st.keys[p.Key]; ok {
			if err := st.write([]byte{0x80 | byte(idx)}); err != nil {
				return err
			}
		} else {
			keyBytes := []byte(p.Key)
			if err := st.write([]byte{byte(len(keyBytes))}); err != nil {
				return err
			}
			if err := st.write(keyBytes); err != nil {
				return err
			}
			if len(st.keys) < 128 {
				st.keys[p.Key] = len(st.keys)
			}
		}
		childPath := catpath(path, p.Key)
		if err := st.encodeValue(childPath, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (st *encodeState) encodeSequence(path string, rv reflect.Value) error {
	leave, err := st.enter(path, rv.Interface())
	if err != nil {
		return err
	}
	defer leave()
	n := rv.Len()
	if err := st.write(encodeTagLength(majorArray, n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		childPath := catpath(path, strconv.Itoa(i))
		if err := st.encodeValue(childPath, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// encodeTerminatedChan drains a channel as a length-terminated Array,
// since its element count isn't known in advance.
func (st *encodeState) encodeTerminatedChan(path string, rv reflect.Value) error {
	leave, err := st.enter(path, rv.Interface())
	if err != nil {
		return err
	}
	defer leave()
	if err := st.write([]byte{tokTerminatedArray}); err != nil {
		return err
	}
	for {
		item, ok := rv.Recv()
		if !ok {
			break
		}
		if err := st.encodeValue(path, item.Interface()); err != nil {
			return err
		}
	}
	return st.write([]byte{tokTerminator})
}

func isIntegerValue(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		*big.Int:
		return true
	}
	return false
}

func asBigInt(v interface{}) *big.Int {
	switch vt := v.(type) {
	case int:
		return big.NewInt(int64(vt))
	case int8:
		return big.NewInt(int64(vt))
	case int16:
		return big.NewInt(int64(vt))
	case int32:
		return big.NewInt(int64(vt))
	case int64:
		return big.NewInt(vt)
	case uint:
		return new(big.Int).SetUint64(uint64(vt))
	case uint8:
		return new(big.Int).SetUint64(uint64(vt))
	case uint16:
		return new(big.Int).SetUint64(uint64(vt))
	case uint32:
		return new(big.Int).SetUint64(uint64(vt))
	case uint64:
		return new(big.Int).SetUint64(vt)
	case *big.Int:
		return vt
	}
	return big.NewInt(0)
}

func isFloatValue(v interface{}) bool {
	switch v.(type) {
	case float32, float64, *big.Float, decimal.Decimal:
		return true
	}
	return false
}
