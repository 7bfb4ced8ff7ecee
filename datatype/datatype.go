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

// Package datatype maps database type OIDs to the semantic types the
// gateway knows how to render.
//
// The table is closed and built once at init; lookups never fail. Unknown
// OIDs (including zero and negative values) resolve to Unsupported.
package datatype

import (
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring"
)

// DataType is an immutable entry of the type table.
// Compare values with ==; two DataTypes are equal iff their OIDs are.
type DataType struct {
	oid  int
	name string
	elem int // element OID; 0 when not an array type
}

// Supported types and their OIDs.
var (
	Boolean               = DataType{oid: 16, name: "BOOLEAN"}
	Bytea                 = DataType{oid: 17, name: "BYTEA"}
	Bigint                = DataType{oid: 20, name: "BIGINT"}
	Smallint              = DataType{oid: 21, name: "SMALLINT"}
	Integer               = DataType{oid: 23, name: "INTEGER"}
	Text                  = DataType{oid: 25, name: "TEXT"}
	Real                  = DataType{oid: 700, name: "REAL"}
	Float8                = DataType{oid: 701, name: "FLOAT8"}
	// Bpchar is char(n): blank-padded, fixed storage length.
	Bpchar                = DataType{oid: 1042, name: "BPCHAR"}
	// Varchar is varchar(n): not padded, variable storage length.
	Varchar               = DataType{oid: 1043, name: "VARCHAR"}
	Date                  = DataType{oid: 1082, name: "DATE"}
	Time                  = DataType{oid: 1083, name: "TIME"}
	Timestamp             = DataType{oid: 1114, name: "TIMESTAMP"}
	TimestampWithTimeZone = DataType{oid: 1184, name: "TIMESTAMP_WITH_TIME_ZONE"}
	Numeric               = DataType{oid: 1700, name: "NUMERIC"}

	Int2Array   = DataType{oid: 1005, name: "INT2ARRAY", elem: 21}
	Int4Array   = DataType{oid: 1007, name: "INT4ARRAY", elem: 23}
	Int8Array   = DataType{oid: 1016, name: "INT8ARRAY", elem: 20}
	BoolArray   = DataType{oid: 1000, name: "BOOLARRAY", elem: 16}
	TextArray   = DataType{oid: 1009, name: "TEXTARRAY", elem: 25}
	Float4Array = DataType{oid: 1021, name: "FLOAT4ARRAY"}
	Float8Array = DataType{oid: 1022, name: "FLOAT8ARRAY"}

	// Unsupported is returned for every OID outside the table.
	Unsupported = DataType{oid: -1, name: "UNSUPPORTED_TYPE"}
)

var (
	// byOID is the lookup index. It is written only during init.
	byOID map[int]DataType
	// sorted holds every supported type ordered by OID.
	sorted []DataType
	// notText holds the OIDs rendered in binary or numeric form.
	notText *roaring.Bitmap
)

func init() {
	all := []DataType{
		Boolean, Bytea, Bigint, Smallint, Integer, Text, Real, Float8,
		Bpchar, Varchar, Date, Time, Timestamp, TimestampWithTimeZone, Numeric,
		Int2Array, Int4Array, Int8Array, BoolArray, TextArray, Float4Array, Float8Array,
	}
	byOID = make(map[int]DataType, len(all))
	for _, t := range all {
		if _, dup := byOID[t.oid]; dup {
			panic("datatype: duplicate OID " + t.name)
		}
		byOID[t.oid] = t
	}
	sorted = slices.Clone(all)
	slices.SortFunc(sorted, func(a, b DataType) int { return a.oid - b.oid })

	notText = roaring.BitmapOf(
		uint32(Bigint.oid),
		uint32(Boolean.oid),
		uint32(Bytea.oid),
		uint32(Float8.oid),
		uint32(Integer.oid),
		uint32(Real.oid),
		uint32(Smallint.oid),
	)
	notText.RunOptimize()
}

// Get returns the DataType for oid, or Unsupported.
func Get(oid int) DataType {
	if t, ok := byOID[oid]; ok {
		return t
	}
	return Unsupported
}

// IsArrayType reports whether oid is a supported array type with a known
// element type.
func IsArrayType(oid int) bool {
	return Get(oid).IsArray()
}

// IsTextForm reports whether values of oid are rendered as text by default.
// Every OID is text except the small fixed set of binary, numeric and
// boolean types.
func IsTextForm(oid int) bool {
	if oid < 0 || int64(oid) > math.MaxUint32 {
		return true
	}
	return !notText.Contains(uint32(oid))
}

// Types returns every supported type ordered by OID. Unsupported is not included.
func Types() []DataType {
	return slices.Clone(sorted)
}

// OID returns the type's database identifier.
func (t DataType) OID() int { return t.oid }

// Elem returns the element type of an array type.
func (t DataType) Elem() (DataType, bool) {
	if t.elem == 0 {
		return DataType{}, false
	}
	return byOID[t.elem], true
}

// IsArray reports whether t has an element type.
func (t DataType) IsArray() bool {
	return t != Unsupported && t.elem != 0
}

// IsTextForm reports whether values of t are rendered as text by default.
func (t DataType) IsTextForm() bool { return IsTextForm(t.oid) }

// IsSupported reports whether t is not Unsupported.
func (t DataType) IsSupported() bool { return t != Unsupported }

func (t DataType) String() string {
	if t.name == "" {
		return "UNSUPPORTED_TYPE"
	}
	return t.name
}
