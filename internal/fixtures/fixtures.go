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

// Package fixtures provides small plugin implementations and a populated
// catalog for tests across the module.
package fixtures

import (
	"errors"

	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/loader"
	"dirpx.dev/fdx/registry"
)

// Registered plugin names.
const (
	TextAccessorName   = "org.greenplum.pxf.plugins.hdfs.LineBreakAccessor"
	StatsAccessorName  = "org.greenplum.pxf.plugins.hdfs.ParquetStatsAccessor"
	TextResolverName   = "org.greenplum.pxf.plugins.hdfs.StringPassResolver"
	VectorResolverName = "org.greenplum.pxf.plugins.hdfs.orc.ORCVectorizedResolver"
	FragmenterName     = "org.greenplum.pxf.plugins.hdfs.HdfsDataFragmenter"
	FailingName        = "org.greenplum.pxf.plugins.test.FailingAccessor"
	PanickingName      = "org.greenplum.pxf.plugins.test.PanickingAccessor"
	WrappedName        = "org.greenplum.pxf.plugins.test.WrappedFailureAccessor"
	MissingName        = "org.greenplum.pxf.plugins.test.DoesNotExist"
)

// ErrPluginInit is the error raised by the failing constructors.
var ErrPluginInit = errors.New("connection string is missing the 'jdbc:' prefix")

// TextAccessor is a plain accessor.
type TextAccessor struct {
	Attrs *apis.RequestAttributes
}

func (*TextAccessor) OpenForRead() (bool, error)                 { return true, nil }
func (*TextAccessor) ReadNextObject() (*apis.OneRow, error)      { return nil, nil }
func (*TextAccessor) CloseForRead() error                        { return nil }
func (*TextAccessor) OpenForWrite() (bool, error)                { return true, nil }
func (*TextAccessor) WriteNextObject(*apis.OneRow) (bool, error) { return true, nil }
func (*TextAccessor) CloseForWrite() error                       { return nil }

// StatsAccessor reports exact statistics.
type StatsAccessor struct {
	TextAccessor
	Count int64
}

func (a *StatsAccessor) RetrieveStats() error { a.Count = 42; return nil }

func (a *StatsAccessor) EmitAggObject() *apis.OneRow {
	return &apis.OneRow{Data: a.Count}
}

// TextResolver is a plain resolver.
type TextResolver struct{}

func (TextResolver) GetFields(row *apis.OneRow) ([]apis.OneField, error) {
	return []apis.OneField{{Type: 25, Val: row.Data}}, nil
}

func (TextResolver) SetFields(record []apis.OneField) (*apis.OneRow, error) {
	if len(record) == 0 {
		return &apis.OneRow{}, nil
	}
	return &apis.OneRow{Data: record[0].Val}, nil
}

// VectorResolver resolves batches.
type VectorResolver struct{ TextResolver }

func (VectorResolver) GetFieldsForBatch(batch *apis.OneRow) ([][]apis.OneField, error) {
	return [][]apis.OneField{{{Type: 25, Val: batch.Data}}}, nil
}

// Fragmenter returns a single fragment.
type Fragmenter struct{}

func (Fragmenter) GetFragments() ([]apis.Fragment, error) {
	return []apis.Fragment{{SourceName: "/tmp/data", Index: 0}}, nil
}

func (Fragmenter) GetFragmentStats() (*apis.FragmentStats, error) {
	return &apis.FragmentStats{FragmentCount: 1}, nil
}

// FailingAccessor's constructors always fail.
type FailingAccessor struct{ TextAccessor }

// WrappedAccessor's constructor fails the way reflective builders do:
// the plugin error arrives inside a wrapper.
type WrappedAccessor struct{ TextAccessor }

// Catalog returns a catalog with every fixture registered.
func Catalog() apis.Catalog {
	cat := registry.New()
	Register(cat)
	return cat
}

// Register adds every fixture to cat.
func Register(cat apis.Catalog) {
	registry.MustRegister(cat, registry.Describe(TextAccessorName,
		registry.NoArg(func() (*TextAccessor, error) { return &TextAccessor{}, nil }),
		registry.OneArg(func(a *apis.RequestAttributes) (*TextAccessor, error) {
			return &TextAccessor{Attrs: a}, nil
		}),
	))
	registry.MustRegister(cat, registry.Describe(StatsAccessorName,
		registry.NoArg(func() (*StatsAccessor, error) { return &StatsAccessor{}, nil }),
	))
	registry.MustRegister(cat, registry.Describe(TextResolverName,
		registry.NoArg(func() (TextResolver, error) { return TextResolver{}, nil }),
	))
	registry.MustRegister(cat, registry.Describe(VectorResolverName,
		registry.NoArg(func() (VectorResolver, error) { return VectorResolver{}, nil }),
	))
	registry.MustRegister(cat, registry.Describe(FragmenterName,
		registry.NoArg(func() (Fragmenter, error) { return Fragmenter{}, nil }),
	))
	registry.MustRegister(cat, registry.Describe(FailingName,
		registry.NoArg(func() (*FailingAccessor, error) { return nil, ErrPluginInit }),
	))
	registry.MustRegister(cat, registry.Describe(PanickingName,
		registry.NoArg(func() (*FailingAccessor, error) { panic(ErrPluginInit) }),
	))
	registry.MustRegister(cat, registry.Describe(WrappedName,
		registry.NoArg(func() (*WrappedAccessor, error) {
			return nil, &loader.InvocationError{Plugin: WrappedName, Cause: ErrPluginInit}
		}),
	))
}
