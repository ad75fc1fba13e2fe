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

// Package ntia implements a compliance validator for the NTIA minimum
// elements for a Software Bill of Materials.
package ntia

import (
	"context"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/validator"
)

// Name is the unique name of this validator.
const Name = "compliance/ntia"

var standard = validator.Standard{
	Name:    "NTIA Minimum Elements for a Software Bill of Materials",
	Version: "2021-07-12",
	URL:     "https://www.ntia.gov/report/2021/minimum-elements-software-bill-materials-sbom",
}

// Rule IDs, one per required data element.
var (
	ruleAuthor = validator.Rule{
		ID:          "ntia-sbom-author",
		Title:       "Author of SBOM data",
		Description: "The SBOM must name the entity that created the SBOM data.",
	}
	ruleTimestamp = validator.Rule{
		ID:          "ntia-sbom-timestamp",
		Title:       "Timestamp",
		Description: "The SBOM must record when it was created, as ISO-8601.",
	}
	ruleName = validator.Rule{
		ID:          "ntia-component-name",
		Title:       "Component name",
		Description: "Every component must have a designated name.",
	}
	ruleVersion = validator.Rule{
		ID:          "ntia-component-version",
		Title:       "Component version",
		Description: "Every component must have a version string.",
	}
	ruleSupplier = validator.Rule{
		ID:          "ntia-component-supplier",
		Title:       "Supplier name",
		Description: "Every component must name its supplier.",
	}
	ruleIdentifier = validator.Rule{
		ID:          "ntia-component-identifier",
		Title:       "Other unique identifiers",
		Description: "Every component must carry a unique identifier (purl, CPE or SWID).",
	}
	ruleDependencies = validator.Rule{
		ID:          "ntia-dependency-relationships",
		Title:       "Dependency relationship",
		Description: "The SBOM must characterize the relationships between components.",
	}
)

// Validator checks an SBOM against the NTIA minimum elements.
type Validator struct{}

// New returns a new instance of the validator.
func New() plugin.Plugin { return &Validator{} }

// Metadata of the validator.
func (Validator) Metadata() plugin.Metadata {
	return plugin.Metadata{Name: Name, Version: "1.0.0", Category: plugin.CategoryCompliance}
}

// Requirements of the validator.
func (Validator) Requirements() *plugin.Requirements { return &plugin.Requirements{} }

// Assess evaluates one finding per NTIA minimum element.
func (v Validator) Assess(_ context.Context, target *plugin.Target, _ *plugin.DependencyStatus) (*plugin.Result, error) {
	doc := target.Document
	findings := []*plugin.Finding{
		validator.CheckAuthors(ruleAuthor, doc),
		validator.CheckTimestamp(ruleTimestamp, doc),
		validator.CheckName(ruleName, doc),
		validator.CheckVersion(ruleVersion, doc),
		validator.CheckSupplier(ruleSupplier, doc),
		validator.CheckIdentifiers(ruleIdentifier, doc),
		validator.CheckDependencies(ruleDependencies, doc),
	}
	return validator.Result(v.Metadata(), standard, findings), nil
}
