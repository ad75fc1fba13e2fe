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

// Package fda implements a compliance validator for the SBOM expectations of
// the FDA premarket cybersecurity guidance for medical devices.
package fda

import (
	"context"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/validator"
)

// Name is the unique name of this validator.
const Name = "compliance/fda"

const preferredHash = "sha256"

var standard = validator.Standard{
	Name:    "FDA Cybersecurity in Medical Devices: Premarket Submissions",
	Version: "2023-09",
	URL:     "https://www.fda.gov/regulatory-information/search-fda-guidance-documents/cybersecurity-medical-devices-quality-system-considerations-and-content-premarket-submissions",
}

var (
	ruleAuthor = validator.Rule{
		ID:          "fda-sbom-author",
		Title:       "SBOM author",
		Description: "The SBOM must name the entity that created it.",
	}
	ruleTimestamp = validator.Rule{
		ID:          "fda-sbom-timestamp",
		Title:       "SBOM timestamp",
		Description: "The SBOM must record its creation time, as ISO-8601.",
	}
	ruleName = validator.Rule{
		ID:          "fda-component-name",
		Title:       "Component name",
		Description: "Every component must have a designated name.",
	}
	ruleVersion = validator.Rule{
		ID:          "fda-component-version",
		Title:       "Component version",
		Description: "Every component must have a version string.",
	}
	ruleManufacturer = validator.Rule{
		ID:          "fda-component-manufacturer",
		Title:       "Component manufacturer",
		Description: "Every component must name its manufacturer.",
	}
	ruleIdentifier = validator.Rule{
		ID:          "fda-component-identifier",
		Title:       "Component unique identifier",
		Description: "Every component must carry a unique identifier (purl, CPE or SWID).",
	}
	ruleHash = validator.Rule{
		ID:          "fda-component-hash",
		Title:       "Component integrity hash",
		Description: "Every component should be verifiable through a cryptographic hash.",
	}
	ruleDependencies = validator.Rule{
		ID:          "fda-dependency-relationships",
		Title:       "Dependency relationships",
		Description: "The SBOM must declare the dependency relationships between components.",
	}
	ruleCompleteness = validator.Rule{
		ID:          "fda-dependency-completeness",
		Title:       "Dependency completeness",
		Description: "The SBOM must state whether the declared dependency graph is complete.",
	}
	ruleAttestation = validator.Rule{
		ID:          "fda-provenance-attestation",
		Title:       "Provenance attestation",
		Description: "The artifact must pass at least one attestation assessment.",
	}
)

// Validator checks an SBOM against the FDA premarket guidance. It depends on
// the outcome of the attestation category for its provenance rule.
type Validator struct{}

// New returns a new instance of the validator.
func New() plugin.Plugin { return &Validator{} }

// Metadata of the validator.
func (Validator) Metadata() plugin.Metadata {
	return plugin.Metadata{Name: Name, Version: "1.0.0", Category: plugin.CategoryCompliance}
}

// Requirements of the validator.
func (Validator) Requirements() *plugin.Requirements {
	return &plugin.Requirements{DependsOn: plugin.CategoryAttestation}
}

// Assess evaluates one finding per required data element plus the
// attestation cross-check.
func (v Validator) Assess(_ context.Context, target *plugin.Target, deps *plugin.DependencyStatus) (*plugin.Result, error) {
	doc := target.Document
	findings := []*plugin.Finding{
		validator.CheckAuthors(ruleAuthor, doc),
		validator.CheckTimestamp(ruleTimestamp, doc),
		validator.CheckName(ruleName, doc),
		validator.CheckVersion(ruleVersion, doc),
		validator.CheckSupplier(ruleManufacturer, doc),
		validator.CheckIdentifiers(ruleIdentifier, doc),
		validator.CheckHashes(ruleHash, doc, preferredHash),
		validator.CheckDependencies(ruleDependencies, doc),
		validator.CheckCompleteness(ruleCompleteness, doc),
		validator.CheckCrossCategory(ruleAttestation, plugin.CategoryAttestation, deps),
	}
	return validator.Result(v.Metadata(), standard, findings), nil
}
