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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	assert.Equal(t, config.DefaultFragmenterCacheEnabled, got.FragmenterCacheEnabled)
	assert.Equal(t, config.DefaultLegacyNamespaces(), got.LegacyNamespaces)
	assert.Equal(t, config.DefaultLogLevel, got.LogLevel)
	assert.Equal(t, config.DefaultConstructWorkers, got.ConstructWorkers)
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), config.NewConfig())
}

func TestDefaultConfig_NotShared(t *testing.T) {
	a := config.DefaultConfig()
	a.LegacyNamespaces[0].Current = "mutated"
	assert.Equal(t, "org.greenplum.pxf", config.DefaultConfig().LegacyNamespaces[0].Current)
}

func TestWithFragmenterCacheEnabled(t *testing.T) {
	assert.False(t, config.NewConfig(config.WithFragmenterCacheEnabled(false)).FragmenterCacheEnabled)
	assert.True(t, config.NewConfig(config.WithFragmenterCacheEnabled(true)).FragmenterCacheEnabled)
}

func TestWithLegacyNamespaces(t *testing.T) {
	ns := []apis.Namespace{{Deprecated: "com.example", Current: "org.example"}}
	c := config.NewConfig(config.WithLegacyNamespaces(ns...))
	assert.Equal(t, ns, c.LegacyNamespaces)

	ns[0].Current = "changed"
	assert.Equal(t, "org.example", c.LegacyNamespaces[0].Current)

	assert.Empty(t, config.NewConfig(config.WithLegacyNamespaces()).LegacyNamespaces)
}

func TestWithConstructWorkers(t *testing.T) {
	assert.Equal(t, 8, config.NewConfig(config.WithConstructWorkers(8)).ConstructWorkers)
	assert.Equal(t, config.DefaultConstructWorkers, config.NewConfig(config.WithConstructWorkers(0)).ConstructWorkers)
	assert.Equal(t, config.DefaultConstructWorkers, config.NewConfig(config.WithConstructWorkers(-3)).ConstructWorkers)
}

func TestWithLogLevel_EmptyResets(t *testing.T) {
	assert.Equal(t, "debug", config.NewConfig(config.WithLogLevel("debug")).LogLevel)
	assert.Equal(t, config.DefaultLogLevel, config.NewConfig(config.WithLogLevel("")).LogLevel)
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithFragmenterCacheEnabled(false),
		config.WithFragmenterCacheEnabled(true),
		config.WithConstructWorkers(2),
		config.WithConstructWorkers(5),
		config.WithLogLevel("warn"),
		config.WithLogLevel("error"),
	)

	assert.True(t, c.FragmenterCacheEnabled)
	assert.Equal(t, 5, c.ConstructWorkers)
	assert.Equal(t, "error", c.LogLevel)
}

// LoadTestSuite exercises Load against files and the environment.
type LoadTestSuite struct {
	suite.Suite
	dir string
}

func TestLoadSuite(t *testing.T) {
	suite.Run(t, new(LoadTestSuite))
}

func (s *LoadTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *LoadTestSuite) write(content string) string {
	p := filepath.Join(s.dir, "fdx.yaml")
	require.NoError(s.T(), os.WriteFile(p, []byte(content), 0o600))
	return p
}

func (s *LoadTestSuite) TestDefaultsWithoutFile() {
	cfg, err := config.Load("")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), config.DefaultConfig(), cfg)
}

func (s *LoadTestSuite) TestMissingFileIsNotAnError() {
	cfg, err := config.Load(filepath.Join(s.dir, "absent.yaml"))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), config.DefaultConfig(), cfg)
}

func (s *LoadTestSuite) TestFile() {
	p := s.write(`
fragmenter_cache_enabled: false
log_level: debug
construct_workers: 4
legacy_namespaces:
  - deprecated: com.acme.pxf
    current: org.acme.pxf
`)
	cfg, err := config.Load(p)
	require.NoError(s.T(), err)

	assert.False(s.T(), cfg.FragmenterCacheEnabled)
	assert.Equal(s.T(), "debug", cfg.LogLevel)
	assert.Equal(s.T(), 4, cfg.ConstructWorkers)
	assert.Equal(s.T(), []apis.Namespace{{Deprecated: "com.acme.pxf", Current: "org.acme.pxf"}}, cfg.LegacyNamespaces)
}

func (s *LoadTestSuite) TestPartialFileKeepsDefaults() {
	cfg, err := config.Load(s.write("log_level: warn\n"))
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "warn", cfg.LogLevel)
	assert.True(s.T(), cfg.FragmenterCacheEnabled)
	assert.Equal(s.T(), config.DefaultConstructWorkers, cfg.ConstructWorkers)
	assert.Equal(s.T(), config.DefaultLegacyNamespaces(), cfg.LegacyNamespaces)
}

func (s *LoadTestSuite) TestEnvOverridesFile() {
	s.T().Setenv("FDX_FRAGMENTER_CACHE_ENABLED", "false")
	s.T().Setenv("FDX_CONSTRUCT_WORKERS", "6")

	cfg, err := config.Load(s.write("construct_workers: 3\n"))
	require.NoError(s.T(), err)

	assert.False(s.T(), cfg.FragmenterCacheEnabled)
	assert.Equal(s.T(), 6, cfg.ConstructWorkers)
}

func (s *LoadTestSuite) TestOutOfRangeIsNormalized() {
	cfg, err := config.Load(s.write("construct_workers: 0\nlog_level: \"\"\n"))
	require.NoError(s.T(), err)

	assert.Equal(s.T(), config.DefaultConstructWorkers, cfg.ConstructWorkers)
	assert.Equal(s.T(), config.DefaultLogLevel, cfg.LogLevel)
}

func (s *LoadTestSuite) TestMalformedFile() {
	_, err := config.Load(s.write("log_level: [unterminated\n"))
	assert.Error(s.T(), err)
}
