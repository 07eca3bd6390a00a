/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect

import (
	"path"
	"reflect"
	"strings"
	"sync"
)

// typeNameCache caches names by reflect.Type.
var typeNameCache sync.Map // key: reflect.Type, val: string

// Name returns a short, stable "pkg.Type" name for logs and metric labels.
// Pointer types are prefixed with "*" and generic instantiation parameters
// are stripped: "*cbx.Cache[int]" -> "*cbx.Cache".
func Name(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}

	prefix := ""
	base := t
	for base.Kind() == reflect.Pointer {
		prefix += "*"
		base = base.Elem()
	}

	name := stripTypeParams(base.Name())
	switch {
	case name == "":
		// Unnamed composite (func, anonymous struct, slice...): fall back to String.
		name = base.String()
	case base.PkgPath() != "":
		name = path.Base(base.PkgPath()) + "." + name
	}

	name = prefix + name
	typeNameCache.Store(t, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
