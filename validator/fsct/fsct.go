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

// Package fsct implements a compliance validator for the CISA Framing
// Software Component Transparency baseline attributes (third edition).
package fsct

import (
	"context"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/validator"
)

// Name is the unique name of this validator.
const Name = "compliance/fsct"

// preferredHash is the checksum algorithm the baseline recommends;
// components carrying only weaker algorithms degrade to a warning.
const preferredHash = "sha256"

var standard = validator.Standard{
	Name:    "Framing Software Component Transparency: Establishing a Common SBOM Baseline",
	Version: "3.0",
	URL:     "https://www.cisa.gov/resources-tools/resources/framing-software-component-transparency-2024",
}

var (
	ruleAuthor = validator.Rule{
		ID:          "fsct-sbom-author",
		Title:       "SBOM author",
		Description: "The SBOM must name its author.",
	}
	ruleTimestamp = validator.Rule{
		ID:          "fsct-sbom-timestamp",
		Title:       "SBOM timestamp",
		Description: "The SBOM must record its creation time, as ISO-8601.",
	}
	ruleLifecycle = validator.Rule{
		ID:          "fsct-sbom-lifecycle",
		Title:       "SBOM type",
		Description: "The SBOM must declare the lifecycle phase it was produced in.",
	}
	ruleName = validator.Rule{
		ID:          "fsct-component-name",
		Title:       "Component name",
		Description: "Every component must have a designated name.",
	}
	ruleVersion = validator.Rule{
		ID:          "fsct-component-version",
		Title:       "Component version",
		Description: "Every component must have a version string.",
	}
	ruleSupplier = validator.Rule{
		ID:          "fsct-component-supplier",
		Title:       "Component supplier",
		Description: "Every component must name its supplier.",
	}
	ruleIdentifier = validator.Rule{
		ID:          "fsct-component-identifier",
		Title:       "Component unique identifier",
		Description: "Every component must carry a unique identifier (purl, CPE or SWID).",
	}
	ruleHash = validator.Rule{
		ID:          "fsct-component-hash",
		Title:       "Component cryptographic hash",
		Description: "Every component should be verifiable through a cryptographic hash.",
	}
	ruleDependencies = validator.Rule{
		ID:          "fsct-dependency-relationships",
		Title:       "Relationships",
		Description: "The SBOM must declare the dependency relationships between components.",
	}
	ruleCompleteness = validator.Rule{
		ID:          "fsct-relationship-completeness",
		Title:       "Known unknowns",
		Description: "The SBOM must state whether the declared dependency graph is complete.",
	}
)

// Validator checks an SBOM against the FSCT baseline attributes.
type Validator struct{}

// New returns a new instance of the validator.
func New() plugin.Plugin { return &Validator{} }

// Metadata of the validator.
func (Validator) Metadata() plugin.Metadata {
	return plugin.Metadata{Name: Name, Version: "1.0.0", Category: plugin.CategoryCompliance}
}

// Requirements of the validator.
func (Validator) Requirements() *plugin.Requirements { return &plugin.Requirements{} }

// Assess evaluates one finding per baseline attribute.
func (v Validator) Assess(_ context.Context, target *plugin.Target, _ *plugin.DependencyStatus) (*plugin.Result, error) {
	doc := target.Document
	findings := []*plugin.Finding{
		validator.CheckAuthors(ruleAuthor, doc),
		validator.CheckTimestamp(ruleTimestamp, doc),
		validator.CheckLifecycle(ruleLifecycle, doc),
		validator.CheckName(ruleName, doc),
		validator.CheckVersion(ruleVersion, doc),
		validator.CheckSupplier(ruleSupplier, doc),
		validator.CheckIdentifiers(ruleIdentifier, doc),
		validator.CheckHashes(ruleHash, doc, preferredHash),
		validator.CheckDependencies(ruleDependencies, doc),
		validator.CheckCompleteness(ruleCompleteness, doc),
	}
	return validator.Result(v.Metadata(), standard, findings), nil
}
