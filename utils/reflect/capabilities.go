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
	"reflect"

	"dirpx.dev/fdx/apis"
)

// Capabilities derives the capability set of t from its method set.
// t is inspected exactly as given: for a struct with pointer receivers,
// pass the pointer type. A nil t has no capabilities.
func Capabilities(t reflect.Type) apis.Capabilities {
	var s apis.Capabilities
	if t == nil {
		return s
	}
	for _, c := range apis.AllCapabilities {
		if t.Implements(c.Interface()) {
			s = s.With(c)
		}
	}
	return s
}
