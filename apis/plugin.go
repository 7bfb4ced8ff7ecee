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

// OneRow is a single raw record as produced or consumed by an accessor.
type OneRow struct {
	Key  any
	Data any
}

// OneField is a single typed value. Type is a datatype OID.
type OneField struct {
	Type int
	Val  any
}

// Fragment describes one parallelizable unit of an external source.
// Metadata is the opaque split payload decoded by package fragment.
type Fragment struct {
	SourceName string
	Index      int
	Metadata   []byte
	UserData   []byte
}

// FragmentStats summarizes a source's fragments for query planning.
type FragmentStats struct {
	FragmentCount     int64
	FirstFragmentSize int64
	TotalSize         int64
}

// Accessor reads and writes raw records from and to an external source.
type Accessor interface {
	OpenForRead() (bool, error)
	ReadNextObject() (*OneRow, error)
	CloseForRead() error

	OpenForWrite() (bool, error)
	WriteNextObject(row *OneRow) (bool, error)
	CloseForWrite() error
}

// Resolver converts raw records into typed fields and back.
type Resolver interface {
	GetFields(row *OneRow) ([]OneField, error)
	SetFields(record []OneField) (*OneRow, error)
}

// Fragmenter splits a source into fragments.
type Fragmenter interface {
	GetFragments() ([]Fragment, error)
	GetFragmentStats() (*FragmentStats, error)
}

// StatsAccessor is an Accessor that can report exact statistics for the
// whole source, which lets simple aggregates be answered without a scan.
type StatsAccessor interface {
	Accessor

	// RetrieveStats collects statistics from the source.
	RetrieveStats() error
	// EmitAggObject returns the next aggregate row, or nil when exhausted.
	EmitAggObject() *OneRow
}

// ReadVectorizedResolver resolves a batch of raw records at once.
type ReadVectorizedResolver interface {
	GetFieldsForBatch(batch *OneRow) ([][]OneField, error)
}
