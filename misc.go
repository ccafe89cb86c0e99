// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package pbjson

import "strings"

// catpath concatenates name onto path for error-message diagnostics
// (UnsupportedTypeError.Path, IllegalKeyError.Path, CircularReferenceError.Path).
func catpath(path, name string) string {
	if path == "" {
		return name
	}
	return strings.Join([]string{path, name}, ".")
}
