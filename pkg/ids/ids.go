// Copyright (c) 2026, The logicforge Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ids provides opaque identifiers for every registry-owned
// entity kind in the metamodel.
package ids

import "github.com/google/uuid"

// ID is an opaque reference to a registry-owned entity. Two IDs are
// the "same" entity iff they compare equal as strings; there is no
// other meaning to an ID's contents.
type ID string

// Empty reports whether id has never been assigned.
func (id ID) Empty() bool {
	return id == ""
}

// New returns a fresh, globally-unique ID. The recommended generator
// is RFC 4122 v4, per the external-interface contract.
func New() ID {
	return ID(uuid.New().String())
}
