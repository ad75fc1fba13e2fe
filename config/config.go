// Copyright 2026 The sbomvet Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the YAML configuration of the assessment service:
// per-tenant plugin enablement, scanner settings and orchestration limits.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTenant is the tenant key used when a tenant has no explicit entry.
const DefaultTenant = "default"

// Duration wraps time.Duration so it can be written as "90s" or "5m" in the
// YAML document.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the top-level configuration document.
type Config struct {
	// Tenants maps tenant IDs to their plugin enablement.
	Tenants map[string]TenantConfig `yaml:"tenants"`
	// Scanner configures the external vulnerability scanner.
	Scanner ScannerConfig `yaml:"scanner"`
	// RunStorePath is the bbolt database file for run records. Empty keeps
	// records in memory.
	RunStorePath string `yaml:"run_store"`
	// MaxWorkers bounds plugin concurrency per assessment.
	MaxWorkers int `yaml:"max_workers"`
}

// TenantConfig is the per-tenant plugin enablement.
type TenantConfig struct {
	Plugins []string `yaml:"plugins"`
}

// ScannerConfig configures the external scanner binary.
type ScannerConfig struct {
	Binary  string   `yaml:"binary"`
	Timeout Duration `yaml:"timeout"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return FromBytes(raw)
}

// FromBytes parses a configuration document.
func FromBytes(raw []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration used when no config file is given:
// every built-in plugin enabled for the default tenant.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Scanner.Binary == "" {
		c.Scanner.Binary = "osv-scanner"
	}
	if c.Scanner.Timeout <= 0 {
		c.Scanner.Timeout = Duration(5 * time.Minute)
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = 4
	}
}

// PluginsForTenant returns the enabled plugin names for a tenant, falling
// back to the default tenant's entry. A nil return means every built-in
// plugin is enabled.
func (c *Config) PluginsForTenant(tenantID string) []string {
	if tenant, ok := c.Tenants[tenantID]; ok {
		return tenant.Plugins
	}
	if tenant, ok := c.Tenants[DefaultTenant]; ok {
		return tenant.Plugins
	}
	return nil
}
