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

package logging_test

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"dirpx.dev/fdx/utils/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel(" WARN "))
	assert.Equal(t, logging.DefaultLevel, logging.ParseLevel(""))
	assert.Equal(t, logging.DefaultLevel, logging.ParseLevel("chatty"))
}

func TestNewWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, "warn")

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Str("plugin", "x").Msg("shown")
	assert.Contains(t, buf.String(), `"plugin":"x"`)
	assert.Contains(t, buf.String(), `"time":`)
}

func TestStackMarshaler(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, "debug")

	log.Error().Stack().Err(errors.New("boom")).Msg("failed")
	assert.Contains(t, buf.String(), `"stack":[`)
	assert.Contains(t, buf.String(), "boom")
}
