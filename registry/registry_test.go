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

package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/registry"
)

type options struct{ Path string }

type lineAccessor struct{ opts options }

func (*lineAccessor) OpenForRead() (bool, error)                 { return true, nil }
func (*lineAccessor) ReadNextObject() (*apis.OneRow, error)      { return nil, nil }
func (*lineAccessor) CloseForRead() error                        { return nil }
func (*lineAccessor) OpenForWrite() (bool, error)                { return true, nil }
func (*lineAccessor) WriteNextObject(*apis.OneRow) (bool, error) { return true, nil }
func (*lineAccessor) CloseForWrite() error                       { return nil }

type orcAccessor struct{ lineAccessor }

func (*orcAccessor) RetrieveStats() error        { return nil }
func (*orcAccessor) EmitAggObject() *apis.OneRow { return nil }

func newLine() (*lineAccessor, error) { return &lineAccessor{}, nil }

func newLineWith(o options) (*lineAccessor, error) { return &lineAccessor{opts: o}, nil }

func newOrc() (*orcAccessor, error) { return &orcAccessor{}, nil }

const (
	lineName = "org.greenplum.pxf.plugins.hdfs.LineBreakAccessor"
	orcName  = "org.greenplum.pxf.plugins.hdfs.orc.ORCVectorizedAccessor"
	jdbcName = "org.greenplum.pxf.plugins.jdbc.JdbcAccessor"
)

func TestDescribe(t *testing.T) {
	d := registry.Describe(lineName, registry.NoArg(newLine), registry.OneArg(newLineWith))

	assert.Equal(t, lineName, d.Name)
	assert.Equal(t, reflect.TypeOf(&lineAccessor{}), d.Type)
	assert.True(t, d.Capabilities.Has(apis.CapAccessor))
	assert.False(t, d.Capabilities.Has(apis.CapStatsAccessor))
	require.Len(t, d.Constructors, 2)

	zero, ok := d.Constructor(nil)
	require.True(t, ok)
	v, err := zero.New(nil)
	require.NoError(t, err)
	assert.IsType(t, &lineAccessor{}, v)

	one, ok := d.Constructor(reflect.TypeOf(options{}))
	require.True(t, ok)
	v, err = one.New(options{Path: "/tmp/a"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a", v.(*lineAccessor).opts.Path)

	_, err = one.New("not options")
	assert.Error(t, err)

	_, ok = d.Constructor(reflect.TypeOf(""))
	assert.False(t, ok)
}

func TestDescribe_StatsCapability(t *testing.T) {
	d := registry.Describe(orcName, registry.NoArg(newOrc))
	assert.Equal(t, apis.CapabilitiesOf(apis.CapAccessor, apis.CapStatsAccessor), d.Capabilities)
}

func TestRegister_IdempotentAndLookup(t *testing.T) {
	reg := registry.New()
	d := registry.Describe(lineName, registry.NoArg(newLine))

	require.NoError(t, reg.Register(d))
	// idempotent re-register with same type
	require.NoError(t, reg.Register(registry.Describe(lineName, registry.OneArg(newLineWith))))

	got, ok := reg.Lookup(lineName)
	require.True(t, ok)
	assert.Equal(t, d.Type, got.Type)
	assert.Equal(t, 1, reg.Count())

	_, ok = reg.Lookup("org.greenplum.pxf.plugins.hdfs.Missing")
	assert.False(t, ok)
	_, ok = reg.Lookup("")
	assert.False(t, ok)
}

func TestRegister_Conflict(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(registry.Describe(lineName, registry.NoArg(newLine))))

	err := reg.Register(registry.Describe(lineName, registry.NoArg(newOrc)))
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration)
}

func TestRegister_Errors(t *testing.T) {
	reg := registry.New()

	err := reg.Register(registry.Describe("", registry.NoArg(newLine)))
	assert.ErrorIs(t, err, registry.ErrEmptyName)

	err = reg.Register(apis.Descriptor{Name: "x", Constructors: []apis.Constructor{{}}})
	assert.ErrorIs(t, err, registry.ErrNilType)

	err = reg.Register(registry.Describe[*lineAccessor](lineName))
	assert.ErrorIs(t, err, registry.ErrNoConstructors)

	assert.Equal(t, 0, reg.Count())
}

func TestEntriesPrefixAndReset(t *testing.T) {
	reg := registry.New()
	registry.MustRegister(reg, registry.Describe(orcName, registry.NoArg(newOrc)))
	registry.MustRegister(reg, registry.Describe(jdbcName, registry.NoArg(newLine)))
	registry.MustRegister(reg, registry.Describe(lineName, registry.NoArg(newLine)))

	entries := reg.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{lineName, orcName, jdbcName}, names(entries))

	hdfs := reg.EntriesWithPrefix("org.greenplum.pxf.plugins.hdfs.")
	assert.Equal(t, []string{lineName, orcName}, names(hdfs))
	assert.Empty(t, reg.EntriesWithPrefix("com.pivotal.pxf"))

	reg.Reset()
	assert.Equal(t, 0, reg.Count())
	_, ok := reg.Lookup(lineName)
	assert.False(t, ok)
}

func TestMustRegister_Panics(t *testing.T) {
	reg := registry.New()
	registry.MustRegister(reg, registry.Describe(lineName, registry.NoArg(newLine)))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, registry.ErrConflictingRegistration))
	}()
	registry.MustRegister(reg, registry.Describe(lineName, registry.NoArg(newOrc)))
}

func names(ds []apis.Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}
