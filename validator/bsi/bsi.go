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

// Package bsi implements a compliance validator for the German BSI technical
// guideline TR-03183-2 (SBOM requirements).
package bsi

import (
	"context"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/validator"
)

// Name is the unique name of this validator.
const Name = "compliance/bsi"

// preferredHash is the algorithm TR-03183-2 asks for. Components carrying
// only other algorithms degrade the hash finding to a warning.
const preferredHash = "sha512"

// Minimum format versions accepted by the guideline. Older documents fail
// the format rule but every other rule still runs for diagnostic value.
const (
	minSPDX      = "2.3"
	minCycloneDX = "1.5"
)

var standard = validator.Standard{
	Name:    "BSI TR-03183-2 Cyber Resilience Requirements: Software Bill of Materials",
	Version: "2.0.0",
	URL:     "https://www.bsi.bund.de/dok/TR-03183",
}

var (
	ruleFormatVersion = validator.Rule{
		ID:          "bsi-format-version",
		Title:       "SBOM format and version",
		Description: "The SBOM must use SPDX >= 2.3 or CycloneDX >= 1.5.",
	}
	ruleCreator = validator.Rule{
		ID:          "bsi-sbom-creator",
		Title:       "SBOM creator",
		Description: "The SBOM must name the entity that created it.",
	}
	ruleCreatorContact = validator.Rule{
		ID:          "bsi-sbom-creator-contact",
		Title:       "SBOM creator contact",
		Description: "The SBOM creator must be reachable via a declared email address.",
	}
	ruleTimestamp = validator.Rule{
		ID:          "bsi-sbom-timestamp",
		Title:       "SBOM timestamp",
		Description: "The SBOM must record its creation time, as ISO-8601.",
	}
	ruleName = validator.Rule{
		ID:          "bsi-component-name",
		Title:       "Component name",
		Description: "Every component must have a designated name.",
	}
	ruleVersion = validator.Rule{
		ID:          "bsi-component-version",
		Title:       "Component version",
		Description: "Every component must have a version string.",
	}
	ruleCreatorOfComponent = validator.Rule{
		ID:          "bsi-component-creator",
		Title:       "Component creator",
		Description: "Every component must name its creator or supplier.",
	}
	ruleLicense = validator.Rule{
		ID:          "bsi-component-license",
		Title:       "Component license",
		Description: "Every component must declare an effective license.",
	}
	ruleHash = validator.Rule{
		ID:          "bsi-component-hash",
		Title:       "Component hash",
		Description: "Every executable component must carry a SHA-512 hash.",
	}
	ruleIdentifier = validator.Rule{
		ID:          "bsi-component-identifier",
		Title:       "Component unique identifier",
		Description: "Every component must carry a unique identifier (purl, CPE or SWID).",
	}
	ruleDependencies = validator.Rule{
		ID:          "bsi-dependency-relationships",
		Title:       "Dependencies",
		Description: "The SBOM must declare the dependencies between components.",
	}
	ruleCompleteness = validator.Rule{
		ID:          "bsi-dependency-completeness",
		Title:       "Dependency completeness",
		Description: "The SBOM must state whether the declared dependency graph is complete.",
	}
)

// Validator checks an SBOM against BSI TR-03183-2.
type Validator struct{}

// New returns a new instance of the validator.
func New() plugin.Plugin { return &Validator{} }

// Metadata of the validator.
func (Validator) Metadata() plugin.Metadata {
	return plugin.Metadata{Name: Name, Version: "1.0.0", Category: plugin.CategoryCompliance}
}

// Requirements of the validator.
func (Validator) Requirements() *plugin.Requirements { return &plugin.Requirements{} }

// Assess evaluates one finding per TR-03183-2 required data field.
func (v Validator) Assess(_ context.Context, target *plugin.Target, _ *plugin.DependencyStatus) (*plugin.Result, error) {
	doc := target.Document
	findings := []*plugin.Finding{
		validator.CheckFormatVersion(ruleFormatVersion, doc, minSPDX, minCycloneDX),
		validator.CheckAuthors(ruleCreator, doc),
		validator.CheckAuthorContact(ruleCreatorContact, doc),
		validator.CheckTimestamp(ruleTimestamp, doc),
		validator.CheckName(ruleName, doc),
		validator.CheckVersion(ruleVersion, doc),
		validator.CheckSupplier(ruleCreatorOfComponent, doc),
		validator.CheckLicenses(ruleLicense, doc),
		validator.CheckHashes(ruleHash, doc, preferredHash),
		validator.CheckIdentifiers(ruleIdentifier, doc),
		validator.CheckDependencies(ruleDependencies, doc),
		validator.CheckCompleteness(ruleCompleteness, doc),
	}
	return validator.Result(v.Metadata(), standard, findings), nil
}
