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

// Package cra implements a compliance validator for the SBOM obligations of
// the EU Cyber Resilience Act.
package cra

import (
	"context"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/validator"
)

// Name is the unique name of this validator.
const Name = "compliance/cra"

const preferredHash = "sha256"

// Minimum format versions; the CRA machine-readability requirement is read
// as the current widely-consumed format generations.
const (
	minSPDX      = "2.2"
	minCycloneDX = "1.4"
)

var standard = validator.Standard{
	Name:    "EU Cyber Resilience Act (Regulation (EU) 2024/2847), Annex II SBOM obligations",
	Version: "2024",
	URL:     "https://eur-lex.europa.eu/eli/reg/2024/2847/oj",
}

var (
	ruleFormatVersion = validator.Rule{
		ID:          "cra-format-version",
		Title:       "Machine-readable format",
		Description: "The SBOM must use a current machine-readable format (SPDX >= 2.2 or CycloneDX >= 1.4).",
	}
	ruleAuthor = validator.Rule{
		ID:          "cra-sbom-author",
		Title:       "SBOM author",
		Description: "The SBOM must name the entity that created it.",
	}
	ruleTimestamp = validator.Rule{
		ID:          "cra-sbom-timestamp",
		Title:       "SBOM timestamp",
		Description: "The SBOM must record its creation time, as ISO-8601.",
	}
	ruleName = validator.Rule{
		ID:          "cra-component-name",
		Title:       "Component name",
		Description: "Every component must have a designated name.",
	}
	ruleVersion = validator.Rule{
		ID:          "cra-component-version",
		Title:       "Component version",
		Description: "Every component must have a version string.",
	}
	ruleSupplier = validator.Rule{
		ID:          "cra-component-supplier",
		Title:       "Component manufacturer",
		Description: "Every component must name its manufacturer or supplier.",
	}
	ruleIdentifier = validator.Rule{
		ID:          "cra-component-identifier",
		Title:       "Component unique identifier",
		Description: "Every component must carry a unique identifier (purl, CPE or SWID).",
	}
	ruleLicense = validator.Rule{
		ID:          "cra-component-license",
		Title:       "Component license",
		Description: "Every component must declare its license.",
	}
	ruleHash = validator.Rule{
		ID:          "cra-component-hash",
		Title:       "Component integrity hash",
		Description: "Every component should be verifiable through a cryptographic hash.",
	}
	ruleCopyright = validator.Rule{
		ID:          "cra-component-copyright",
		Title:       "Component copyright",
		Description: "Every component must declare its copyright holder.",
	}
	ruleDependencies = validator.Rule{
		ID:          "cra-dependency-relationships",
		Title:       "Component dependencies",
		Description: "The SBOM must cover at least the top-level dependencies of the product.",
	}
)

// Validator checks an SBOM against the CRA Annex II obligations.
type Validator struct{}

// New returns a new instance of the validator.
func New() plugin.Plugin { return &Validator{} }

// Metadata of the validator.
func (Validator) Metadata() plugin.Metadata {
	return plugin.Metadata{Name: Name, Version: "1.0.0", Category: plugin.CategoryCompliance}
}

// Requirements of the validator.
func (Validator) Requirements() *plugin.Requirements { return &plugin.Requirements{} }

// Assess evaluates one finding per CRA required data field.
func (v Validator) Assess(_ context.Context, target *plugin.Target, _ *plugin.DependencyStatus) (*plugin.Result, error) {
	doc := target.Document
	findings := []*plugin.Finding{
		validator.CheckFormatVersion(ruleFormatVersion, doc, minSPDX, minCycloneDX),
		validator.CheckAuthors(ruleAuthor, doc),
		validator.CheckTimestamp(ruleTimestamp, doc),
		validator.CheckName(ruleName, doc),
		validator.CheckVersion(ruleVersion, doc),
		validator.CheckSupplier(ruleSupplier, doc),
		validator.CheckIdentifiers(ruleIdentifier, doc),
		validator.CheckLicenses(ruleLicense, doc),
		validator.CheckHashes(ruleHash, doc, preferredHash),
		validator.CheckCopyright(ruleCopyright, doc),
		validator.CheckDependencies(ruleDependencies, doc),
	}
	return validator.Result(v.Metadata(), standard, findings), nil
}
