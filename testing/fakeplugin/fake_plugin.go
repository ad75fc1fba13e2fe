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

// Package fakeplugin provides a Plugin implementation to be used in tests.
package fakeplugin

import (
	"context"
	"sync/atomic"

	"github.com/sbomvet/sbomvet/plugin"
)

// fakePlugin is a Plugin implementation to be used in tests. It returns a
// predefined set of findings or an error and counts its invocations.
type fakePlugin struct {
	md       plugin.Metadata
	reqs     plugin.Requirements
	findings []*plugin.Finding
	err      error
	panicMsg string
	calls    *atomic.Int32
	lastDeps *plugin.DependencyStatus
	assess   func(context.Context, *plugin.Target, *plugin.DependencyStatus) (*plugin.Result, error)
}

// Option configures a fake plugin.
type Option func(*fakePlugin)

// WithName sets the plugin name.
func WithName(name string) Option {
	return func(p *fakePlugin) { p.md.Name = name }
}

// WithCategory sets the plugin category.
func WithCategory(category plugin.Category) Option {
	return func(p *fakePlugin) { p.md.Category = category }
}

// WithDependsOn sets the plugin's cross-category requirement.
func WithDependsOn(category plugin.Category) Option {
	return func(p *fakePlugin) { p.reqs.DependsOn = category }
}

// WithFindings sets the findings returned by Assess.
func WithFindings(findings ...*plugin.Finding) Option {
	return func(p *fakePlugin) { p.findings = findings }
}

// WithErr makes Assess return err instead of a result.
func WithErr(err error) Option {
	return func(p *fakePlugin) { p.err = err }
}

// WithPanic makes Assess panic with the given message.
func WithPanic(msg string) Option {
	return func(p *fakePlugin) { p.panicMsg = msg }
}

// WithAssess replaces the whole Assess behavior.
func WithAssess(fn func(context.Context, *plugin.Target, *plugin.DependencyStatus) (*plugin.Result, error)) Option {
	return func(p *fakePlugin) { p.assess = fn }
}

// New creates a fake plugin. By default it is a compliance plugin named
// "fake" that returns a single passing finding.
func New(opts ...Option) plugin.Plugin {
	p := &fakePlugin{
		md: plugin.Metadata{
			Name:     "fake",
			Version:  "1.0.0",
			Category: plugin.CategoryCompliance,
		},
		findings: []*plugin.Finding{
			{ID: "fake-check", Title: "Fake check", Status: plugin.StatusPass},
		},
		calls: &atomic.Int32{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Calls returns how often the plugin's Assess was invoked. It returns 0 for
// plugins not created by this package.
func Calls(p plugin.Plugin) int {
	if fp, ok := p.(*fakePlugin); ok {
		return int(fp.calls.Load())
	}
	return 0
}

// LastDependencyStatus returns the DependencyStatus passed to the most recent
// Assess call, or nil.
func LastDependencyStatus(p plugin.Plugin) *plugin.DependencyStatus {
	if fp, ok := p.(*fakePlugin); ok {
		return fp.lastDeps
	}
	return nil
}

// Metadata returns the plugin metadata.
func (p *fakePlugin) Metadata() plugin.Metadata { return p.md }

// Requirements returns the plugin requirements.
func (p *fakePlugin) Requirements() *plugin.Requirements { return &p.reqs }

// Assess returns the configured findings or error.
func (p *fakePlugin) Assess(ctx context.Context, target *plugin.Target, deps *plugin.DependencyStatus) (*plugin.Result, error) {
	p.calls.Add(1)
	p.lastDeps = deps
	if p.assess != nil {
		return p.assess(ctx, target, deps)
	}
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	if p.err != nil {
		return nil, p.err
	}
	return plugin.NewResult(p.md, p.findings), nil
}
