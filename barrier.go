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

package sbomvet

import (
	"sync"

	"github.com/sbomvet/sbomvet/log"
	"github.com/sbomvet/sbomvet/plugin"
)

// categoryBarrier implements the partial-order scheduling constraint: a
// plugin that depends on category X is held back until every enabled plugin
// of X has reached a terminal state, then launched with X's computed
// DependencyStatus. Everything else runs concurrently.
type categoryBarrier struct {
	mu sync.Mutex
	// pending holds the number of not-yet-terminal plugins per category.
	pending map[plugin.Category]int
	waiting []*heldPlugin
	launch  func(p plugin.Plugin, deps *plugin.DependencyStatus)
	status  func(category plugin.Category) *plugin.DependencyStatus
	started bool
}

// heldPlugin is a dependent plugin waiting for its category to drain. An
// empty category means the plugin is runnable immediately.
type heldPlugin struct {
	p        plugin.Plugin
	category plugin.Category
}

func newCategoryBarrier(
	dependent []plugin.Plugin,
	pending map[plugin.Category]int,
	launch func(p plugin.Plugin, deps *plugin.DependencyStatus),
	status func(category plugin.Category) *plugin.DependencyStatus,
) *categoryBarrier {
	b := &categoryBarrier{
		pending: pending,
		launch:  launch,
		status:  status,
	}
	for _, p := range dependent {
		category := p.Requirements().DependsOn
		if category == p.Metadata().Category {
			// A category can't wait on itself; that would never drain.
			log.Warnf("Plugin %s declares a dependency on its own category %s; ignoring it",
				p.Metadata().Name, category)
			category = ""
		}
		b.waiting = append(b.waiting, &heldPlugin{p: p, category: category})
	}
	return b
}

// start releases every held plugin whose dependency categories are already
// terminal (e.g. because no plugin of that category is enabled). Must be
// called after all independent plugins were launched.
func (b *categoryBarrier) start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = true
	b.releaseReady()
}

// done marks one plugin of the category as terminal and releases any held
// plugins that became runnable.
func (b *categoryBarrier) done(category plugin.Category) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending[category] > 0 {
		b.pending[category]--
	}
	if b.started {
		b.releaseReady()
	}
}

// releaseReady launches all held plugins whose dependency category is
// terminal. Callers must hold b.mu.
func (b *categoryBarrier) releaseReady() {
	remaining := b.waiting[:0]
	for _, held := range b.waiting {
		if held.category != "" && b.pending[held.category] > 0 {
			remaining = append(remaining, held)
			continue
		}
		var deps *plugin.DependencyStatus
		if held.category != "" {
			deps = b.status(held.category)
		}
		b.launch(held.p, deps)
	}
	b.waiting = remaining
}
