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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/fdx/apis"
)

// EnvPrefix prefixes environment overrides, e.g. FDX_LOG_LEVEL.
const EnvPrefix = "FDX"

// Load reads a YAML config file at path and applies environment overrides.
// An empty path or a missing file yields the defaults plus the environment.
func Load(path string) (apis.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := DefaultConfig()
	v.SetDefault("fragmenter_cache_enabled", def.FragmenterCacheEnabled)
	v.SetDefault("legacy_namespaces", def.LegacyNamespaces)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("construct_workers", def.ConstructWorkers)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
				return apis.Config{}, fmt.Errorf("fdx(config): read %s: %w", path, err)
			}
		}
	}

	var cfg apis.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return apis.Config{}, fmt.Errorf("fdx(config): decode: %w", err)
	}
	return normalize(cfg), nil
}
