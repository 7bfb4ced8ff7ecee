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

package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/fdx/bridge"
)

// TestBridgeString verifies that String() returns stable tokens for all
// known values and a diagnostic form for unknown values.
func TestBridgeString(t *testing.T) {
	tests := []struct {
		b    bridge.Bridge
		want string
	}{
		{bridge.Write, "Write"},
		{bridge.ReadSampling, "ReadSampling"},
		{bridge.ReadAggregate, "ReadAggregate"},
		{bridge.ReadVectorized, "ReadVectorized"},
		{bridge.ReadPlain, "ReadPlain"},
		{bridge.Bridge(0), "Unknown(0)"},
		{bridge.Bridge(42), "Unknown(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.b.String())
	}
}

func TestParse(t *testing.T) {
	for _, b := range []bridge.Bridge{bridge.Write, bridge.ReadSampling, bridge.ReadAggregate, bridge.ReadVectorized, bridge.ReadPlain} {
		got, err := bridge.Parse(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	got, err := bridge.Parse("  readplain ")
	require.NoError(t, err)
	assert.Equal(t, bridge.ReadPlain, got)

	_, err = bridge.Parse("")
	assert.Error(t, err)
	_, err = bridge.Parse("ReadTurbo")
	assert.Error(t, err)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Equal(t, bridge.Write, bridge.MustParse("write"))
	assert.Panics(t, func() { bridge.MustParse("nope") })
}

func TestIsReadAndValid(t *testing.T) {
	assert.False(t, bridge.Write.IsRead())
	assert.True(t, bridge.Write.Valid())
	assert.True(t, bridge.ReadAggregate.IsRead())
	assert.False(t, bridge.Bridge(0).Valid())
	assert.False(t, bridge.Bridge(9).IsRead())
}

func TestText(t *testing.T) {
	text, err := bridge.ReadVectorized.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ReadVectorized", string(text))

	_, err = bridge.Bridge(0).MarshalText()
	assert.Error(t, err)

	var b bridge.Bridge
	require.NoError(t, b.UnmarshalText([]byte("ReadSampling")))
	assert.Equal(t, bridge.ReadSampling, b)
	assert.Error(t, b.UnmarshalText([]byte(" ")))
	assert.Equal(t, bridge.ReadSampling, b)
}
