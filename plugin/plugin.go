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

// Package plugin collects the common vocabulary shared by all assessment
// plugins and the orchestrator: the plugin interface, findings, summaries
// and the normalized result schema.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbomvet/sbomvet/document"
)

// SchemaVersion is the version of the normalized result schema emitted by
// all plugins. Bump whenever a field is added or its meaning changes.
const SchemaVersion = "1.0"

// Category is the assessment domain a plugin belongs to. Categories group
// plugins for cross-plugin dependency resolution.
type Category string

// Category values.
const (
	CategorySecurity    Category = "security"
	CategoryLicense     Category = "license"
	CategoryCompliance  Category = "compliance"
	CategoryAttestation Category = "attestation"
)

// KnownCategories lists all categories understood by the orchestrator.
var KnownCategories = []Category{
	CategorySecurity, CategoryLicense, CategoryCompliance, CategoryAttestation,
}

// Status is the outcome of one compliance rule evaluation.
type Status string

// Status values.
const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Severity is the canonical severity scale for security findings.
type Severity string

// Severity values, most severe first.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
	SeverityUnknown  Severity = "unknown"
)

// SeverityFromScore maps a numeric CVSS score (0.0-10.0) to a severity level.
func SeverityFromScore(score float64) Severity {
	switch {
	case score >= 9.0:
		return SeverityCritical
	case score >= 7.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Metadata is the identity a plugin advertises to the orchestrator.
type Metadata struct {
	// A unique name used to identify this plugin, e.g. "compliance/ntia".
	Name string `json:"name"`
	// Semantic version of the plugin, bumped whenever rule logic changes.
	Version string `json:"version"`
	// The assessment domain the plugin belongs to.
	Category Category `json:"category"`
}

// Requirements declares what a plugin needs from the orchestration
// environment before it can be invoked.
type Requirements struct {
	// DependsOn names a category whose plugins must all have reached a
	// terminal state for the current artifact before this plugin starts.
	// The orchestrator passes that category's computed DependencyStatus
	// into Assess. Empty means no dependency.
	DependsOn Category
}

// ComponentRef identifies the SBOM component a finding refers to.
type ComponentRef struct {
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	Ecosystem string `json:"ecosystem,omitempty"`
	// PURL is derived from the ecosystem and name when a mapping exists;
	// it lets consumers join findings back to SBOM component identifiers.
	PURL string `json:"purl,omitempty"`
}

// Finding is a single rule or vulnerability outcome within an assessment.
//
// Compliance-style findings carry a Status; security-style findings carry a
// Severity. A finding never mixes an error status with remediation text.
type Finding struct {
	// Stable identifier, prefixed with the producing standard or scanner,
	// e.g. "ntia-sbom-author" or "GHSA-xxxx".
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Severity of a security finding. Empty for compliance findings.
	Severity Severity `json:"severity,omitempty"`
	// Status of a compliance finding. Empty for security findings.
	Status Status `json:"status,omitempty"`
	// The component the finding refers to, if any.
	Component *ComponentRef `json:"component,omitempty"`
	// Numeric CVSS score, if one was determined.
	CVSSScore *float64 `json:"cvss_score,omitempty"`
	// Advisory or documentation URLs.
	References []string `json:"references,omitempty"`
	// Alternative identifiers for the same vulnerability (CVE, GHSA, ...).
	Aliases []string `json:"aliases,omitempty"`
	// Suggested remediation, if known.
	Remediation string `json:"remediation,omitempty"`
	// Arbitrary additional details.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks the structural invariants of a finding.
func (f *Finding) Validate() error {
	if f.ID == "" {
		return errors.New("finding has no ID")
	}
	if f.Status == "" && f.Severity == "" {
		return fmt.Errorf("finding %s carries neither a status nor a severity", f.ID)
	}
	if f.Status == StatusError && f.Remediation != "" {
		return fmt.Errorf("finding %s mixes an error status with remediation text", f.ID)
	}
	return nil
}

// Summary aggregates the findings of one assessment run.
type Summary struct {
	TotalFindings int `json:"total_findings"`
	PassCount     int `json:"pass_count"`
	FailCount     int `json:"fail_count"`
	WarningCount  int `json:"warning_count"`
	ErrorCount    int `json:"error_count"`
	// Histogram of security finding severities. Nil for compliance results.
	BySeverity map[Severity]int `json:"by_severity,omitempty"`
}

// Validate checks that the explicit counts never exceed the total.
func (s *Summary) Validate() error {
	if n := s.PassCount + s.FailCount + s.WarningCount + s.ErrorCount; n > s.TotalFindings {
		return fmt.Errorf("summary status counts (%d) exceed total findings (%d)", n, s.TotalFindings)
	}
	for sev, n := range s.BySeverity {
		if n > s.TotalFindings {
			return fmt.Errorf("summary severity count for %q (%d) exceeds total findings (%d)", sev, n, s.TotalFindings)
		}
	}
	return nil
}

// Summarize computes the aggregate counts for a list of findings.
func Summarize(findings []*Finding) Summary {
	s := Summary{TotalFindings: len(findings)}
	for _, f := range findings {
		switch f.Status {
		case StatusPass:
			s.PassCount++
		case StatusFail:
			s.FailCount++
		case StatusWarning:
			s.WarningCount++
		case StatusError:
			s.ErrorCount++
		}
		if f.Severity != "" {
			if s.BySeverity == nil {
				s.BySeverity = map[Severity]int{}
			}
			s.BySeverity[f.Severity]++
		}
	}
	return s
}

// Result is the complete, immutable output of one plugin invocation.
type Result struct {
	SchemaVersion string            `json:"schema_version"`
	PluginName    string            `json:"plugin_name"`
	PluginVersion string            `json:"plugin_version"`
	Category      Category          `json:"category"`
	AssessedAt    time.Time         `json:"assessed_at"`
	Summary       Summary           `json:"summary"`
	Findings      []*Finding        `json:"findings"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// NewResult wraps a list of findings into a schema-valid result for the
// given plugin identity, computing the summary.
func NewResult(md Metadata, findings []*Finding) *Result {
	return &Result{
		SchemaVersion: SchemaVersion,
		PluginName:    md.Name,
		PluginVersion: md.Version,
		Category:      md.Category,
		AssessedAt:    time.Now().UTC(),
		Summary:       Summarize(findings),
		Findings:      findings,
	}
}

// ResultFromErr converts a plugin failure into a schema-valid result holding
// a single error finding, so that every failure path still yields a complete
// result object.
func ResultFromErr(md Metadata, id string, err error) *Result {
	return NewResult(md, []*Finding{{
		ID:          id,
		Title:       "Assessment error",
		Description: err.Error(),
		Status:      StatusError,
	}})
}

// DependencyStatus is the cross-plugin state of one category, computed by
// the orchestrator after every enabled plugin of that category has reached a
// terminal state for an artifact. Plugins receive it read-only.
type DependencyStatus struct {
	Category Category `json:"category"`
	// Whether at least one plugin in the category passed.
	Satisfied      bool     `json:"satisfied"`
	PassingPlugins []string `json:"passing_plugins"`
	FailedPlugins  []string `json:"failed_plugins"`
}

// Target is the immutable input of one assessment run: the artifact
// identity, the path of the SBOM file and its parsed representation. It is
// built once per run by the orchestrator and shared read-only by every
// plugin of that run.
type Target struct {
	ArtifactID string
	Path       string
	Document   *document.Document
}

// Plugin is the interface every assessment plugin implements.
type Plugin interface {
	// Metadata returns the identity of this plugin.
	Metadata() Metadata
	// Requirements about the orchestration environment, e.g. "needs the
	// outcome of the attestation category".
	Requirements() *Requirements
	// Assess runs the assessment against the target. deps holds the
	// DependencyStatus for the category named in Requirements().DependsOn,
	// or nil if none was computable. Assess must return a schema-valid
	// result whenever err is nil, and must not mutate target or deps.
	Assess(ctx context.Context, target *Target, deps *DependencyStatus) (*Result, error)
}

// ValidateResult checks the structural invariants of a result and all its
// findings. The orchestrator rejects results that fail validation.
func ValidateResult(r *Result) error {
	if r == nil {
		return errors.New("nil result")
	}
	if r.SchemaVersion == "" {
		return errors.New("result has no schema version")
	}
	if r.PluginName == "" {
		return errors.New("result has no plugin name")
	}
	if err := r.Summary.Validate(); err != nil {
		return err
	}
	for _, f := range r.Findings {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}
