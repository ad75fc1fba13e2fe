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

// Package list provides access to the built-in assessment plugins through an
// explicit name-keyed registry, resolved at orchestrator start rather than
// at call time.
package list

import (
	"fmt"
	"sort"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/scanner/osvscanner"
	"github.com/sbomvet/sbomvet/validator/bsi"
	"github.com/sbomvet/sbomvet/validator/cra"
	"github.com/sbomvet/sbomvet/validator/fda"
	"github.com/sbomvet/sbomvet/validator/fsct"
	"github.com/sbomvet/sbomvet/validator/ntia"
)

// registry maps plugin names to their constructors. Initialized once at
// startup and never mutated, so concurrent reads are safe.
var registry = map[string]func() plugin.Plugin{
	ntia.Name:       ntia.New,
	fsct.Name:       fsct.New,
	bsi.Name:        bsi.New,
	cra.Name:        cra.New,
	fda.Name:        fda.New,
	osvscanner.Name: osvscanner.New,
}

// FromName returns a new instance of the plugin with the given name.
func FromName(name string) (plugin.Plugin, error) {
	newPlugin, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown plugin %q", name)
	}
	return newPlugin(), nil
}

// FromNames returns a deduplicated list of plugins from a list of names.
func FromNames(names []string) ([]plugin.Plugin, error) {
	seen := map[string]bool{}
	var plugins []plugin.Plugin
	for _, name := range names {
		if seen[name] {
			continue
		}
		p, err := FromName(name)
		if err != nil {
			return nil, err
		}
		seen[name] = true
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// All returns one instance of every registered plugin, in name order.
func All() []plugin.Plugin {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	plugins := make([]plugin.Plugin, 0, len(names))
	for _, name := range names {
		plugins = append(plugins, registry[name]())
	}
	return plugins
}

// FromCategory returns one instance of every registered plugin in the given
// category.
func FromCategory(category plugin.Category) []plugin.Plugin {
	var plugins []plugin.Plugin
	for _, p := range All() {
		if p.Metadata().Category == category {
			plugins = append(plugins, p)
		}
	}
	return plugins
}
