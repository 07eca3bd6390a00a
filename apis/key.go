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

package apis

import "reflect"

// Key identifies a service inside a Container. Name distinguishes several
// services of the same type, e.g. two collections of one capability.
type Key struct {
	Type reflect.Type
	Name string
}

// KeyOf returns the unnamed key for t.
func KeyOf(t reflect.Type) Key {
	return Key{Type: t}
}

// NamedKey returns the key for t under name.
func NamedKey(t reflect.Type, name string) Key {
	return Key{Type: t, Name: name}
}

// String renders the key for logs: "type" or "type#name".
func (k Key) String() string {
	t := "<nil>"
	if k.Type != nil {
		t = k.Type.String()
	}
	if k.Name == "" {
		return t
	}
	return t + "#" + k.Name
}
