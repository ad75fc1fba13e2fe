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

// Package validator provides the rule evaluation helpers shared by the
// built-in compliance validators. Each helper evaluates one required data
// element of a standard against a parsed SBOM document and produces exactly
// one finding.
package validator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sbomvet/sbomvet/document"
	"github.com/sbomvet/sbomvet/plugin"
)

// Rule describes one required data element of a compliance standard.
type Rule struct {
	// ID is the stable, standard-prefixed finding ID, e.g. "ntia-sbom-author".
	ID string
	// Title is a short human-readable name of the requirement.
	Title string
	// Description explains what the requirement demands.
	Description string
}

// Standard identifies the compliance standard a validator implements.
// It is attached to every result's metadata.
type Standard struct {
	Name    string
	Version string
	URL     string
}

// Result wraps findings into a schema-valid result carrying the standard's
// identity in the result metadata.
func Result(md plugin.Metadata, std Standard, findings []*plugin.Finding) *plugin.Result {
	r := plugin.NewResult(md, findings)
	r.Metadata = map[string]string{
		"standard":         std.Name,
		"standard_version": std.Version,
		"source_url":       std.URL,
	}
	return r
}

// pass, warn and fail build the three ordinary finding outcomes for a rule.

func pass(rule Rule, detail string) *plugin.Finding {
	return finding(rule, plugin.StatusPass, detail)
}

func warn(rule Rule, detail string) *plugin.Finding {
	return finding(rule, plugin.StatusWarning, detail)
}

func fail(rule Rule, detail string) *plugin.Finding {
	return finding(rule, plugin.StatusFail, detail)
}

func finding(rule Rule, status plugin.Status, detail string) *plugin.Finding {
	desc := rule.Description
	if detail != "" {
		desc = rule.Description + " " + detail
	}
	return &plugin.Finding{
		ID:          rule.ID,
		Title:       rule.Title,
		Description: desc,
		Status:      status,
	}
}

// componentLabel names a component for failure detail text.
func componentLabel(c document.Component, index int) string {
	name, ok := c.Name()
	if !ok {
		return fmt.Sprintf("component #%d", index+1)
	}
	if version, ok := c.Version(); ok {
		return name + "@" + version
	}
	return name
}

// joinLabels renders the complete list of affected components. The list is
// never truncated so operators can act on every entry.
func joinLabels(labels []string) string {
	return strings.Join(labels, ", ")
}

// CheckComponents evaluates ok against every component in the document. The
// requirement fails if any component fails it, and the finding names every
// failing component. An empty component list passes vacuously.
func CheckComponents(rule Rule, doc *document.Document, ok func(document.Component) bool) *plugin.Finding {
	var failed []string
	for i, c := range doc.Components() {
		if !ok(c) {
			failed = append(failed, componentLabel(c, i))
		}
	}
	if len(failed) > 0 {
		return fail(rule, fmt.Sprintf("Missing for %d component(s): %s.", len(failed), joinLabels(failed)))
	}
	return pass(rule, "")
}

// CheckName checks that every component declares a name.
func CheckName(rule Rule, doc *document.Document) *plugin.Finding {
	return CheckComponents(rule, doc, func(c document.Component) bool {
		_, ok := c.Name()
		return ok
	})
}

// CheckVersion checks that every component declares a version.
func CheckVersion(rule Rule, doc *document.Document) *plugin.Finding {
	return CheckComponents(rule, doc, func(c document.Component) bool {
		_, ok := c.Version()
		return ok
	})
}

// CheckSupplier checks that every component declares a supplier or
// manufacturer, in either flat or nested form.
func CheckSupplier(rule Rule, doc *document.Document) *plugin.Finding {
	return CheckComponents(rule, doc, func(c document.Component) bool {
		_, ok := c.Supplier()
		return ok
	})
}

// CheckIdentifiers checks that every component carries at least one valid
// identifier from the purl/CPE/SWID allow-list. Identifiers of other
// reference types never satisfy the requirement.
func CheckIdentifiers(rule Rule, doc *document.Document) *plugin.Finding {
	return CheckComponents(rule, doc, func(c document.Component) bool {
		for _, id := range c.Identifiers() {
			if id.Valid() {
				return true
			}
		}
		return false
	})
}

// CheckLicenses checks that every component declares at least one license.
func CheckLicenses(rule Rule, doc *document.Document) *plugin.Finding {
	return CheckComponents(rule, doc, func(c document.Component) bool {
		return len(c.Licenses()) > 0
	})
}

// CheckCopyright checks that every component declares copyright text.
func CheckCopyright(rule Rule, doc *document.Document) *plugin.Finding {
	return CheckComponents(rule, doc, func(c document.Component) bool {
		_, ok := c.Copyright()
		return ok
	})
}

// CheckHashes evaluates the three-tier hash requirement: components without
// any hash fail, components lacking the preferred algorithm only degrade the
// finding to a warning, and full coverage with the preferred algorithm
// passes. preferred is a normalized algorithm name such as "sha512".
func CheckHashes(rule Rule, doc *document.Document, preferred string) *plugin.Finding {
	var missing, nonPreferred []string
	for i, c := range doc.Components() {
		hashes := c.Hashes()
		if len(hashes) == 0 {
			missing = append(missing, componentLabel(c, i))
			continue
		}
		hasPreferred := false
		for _, h := range hashes {
			if h.Algorithm == preferred {
				hasPreferred = true
				break
			}
		}
		if !hasPreferred {
			nonPreferred = append(nonPreferred, componentLabel(c, i))
		}
	}
	if len(missing) > 0 {
		return fail(rule, fmt.Sprintf("No checksum for %d component(s): %s.", len(missing), joinLabels(missing)))
	}
	if len(nonPreferred) > 0 {
		return warn(rule, fmt.Sprintf("Checksums present but %s is missing for %d component(s): %s.",
			strings.ToUpper(preferred), len(nonPreferred), joinLabels(nonPreferred)))
	}
	return pass(rule, "")
}

// timestampLayouts are the accepted ISO-8601 shapes for SBOM creation
// timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
}

// CheckTimestamp checks the document creation timestamp. A missing timestamp
// and a malformed one both fail, with distinct detail text.
func CheckTimestamp(rule Rule, doc *document.Document) *plugin.Finding {
	raw, ok := doc.CreatedAt()
	if !ok {
		return fail(rule, "No creation timestamp is declared.")
	}
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return pass(rule, "")
		}
	}
	return fail(rule, fmt.Sprintf("Creation timestamp %q is not valid ISO-8601.", raw))
}

// CheckAuthors checks that the document declares at least one author,
// creator or generating tool.
func CheckAuthors(rule Rule, doc *document.Document) *plugin.Finding {
	if len(doc.Authors()) == 0 {
		return fail(rule, "No SBOM author or creator is declared.")
	}
	return pass(rule, "")
}

// CheckAuthorContact checks that a document author declares a contact email.
func CheckAuthorContact(rule Rule, doc *document.Document) *plugin.Finding {
	if _, ok := doc.AuthorContact(); !ok {
		return fail(rule, "No contact email is declared for the SBOM creator.")
	}
	return pass(rule, "")
}

// CheckLifecycle checks that the document declares the lifecycle phase it
// was produced in.
func CheckLifecycle(rule Rule, doc *document.Document) *plugin.Finding {
	if len(doc.Lifecycles()) == 0 {
		return fail(rule, "No SBOM lifecycle phase is declared.")
	}
	return pass(rule, "")
}

// CheckDependencies checks that the document declares at least one
// dependency relationship.
func CheckDependencies(rule Rule, doc *document.Document) *plugin.Finding {
	if doc.DependencyCount() == 0 {
		return fail(rule, "The document declares no dependency relationships.")
	}
	return pass(rule, "")
}

// CheckCompleteness checks the explicit dependency completeness declaration:
// no declaration fails, a declared "incomplete" or "unknown" graph warns,
// and a declared complete graph passes.
func CheckCompleteness(rule Rule, doc *document.Document) *plugin.Finding {
	declared, ok := doc.Completeness()
	if !ok {
		return fail(rule, "No dependency completeness declaration was found.")
	}
	if declared != "complete" {
		return warn(rule, fmt.Sprintf("Dependency graph completeness is declared as %q.", declared))
	}
	return pass(rule, "")
}

// CheckFormatVersion checks that the document's format version meets the
// standard's minimum. Validators keep evaluating every other rule on
// unsupported legacy versions for diagnostic value.
func CheckFormatVersion(rule Rule, doc *document.Document, minSPDX, minCDX string) *plugin.Finding {
	var minimum string
	switch doc.Format {
	case document.FormatSPDX2, document.FormatSPDX3:
		minimum = minSPDX
	case document.FormatCycloneDX:
		minimum = minCDX
	default:
		return fail(rule, "The document format is not recognized.")
	}
	if versionLess(doc.SpecVersion, minimum) {
		return fail(rule, fmt.Sprintf("Document version %s is below the required minimum %s.", doc.SpecVersion, minimum))
	}
	return pass(rule, "")
}

// CheckCrossCategory translates the orchestrator-supplied dependency status
// of another assessment category into a finding: no status yields a warning,
// a satisfied status passes naming the contributing plugins, an unsatisfied
// one fails naming the failed plugins.
func CheckCrossCategory(rule Rule, category plugin.Category, deps *plugin.DependencyStatus) *plugin.Finding {
	if deps == nil || deps.Category != category {
		return warn(rule, fmt.Sprintf("No %s assessment outcome was available for this artifact.", category))
	}
	if deps.Satisfied {
		return pass(rule, fmt.Sprintf("Satisfied by: %s.", strings.Join(deps.PassingPlugins, ", ")))
	}
	return fail(rule, fmt.Sprintf("No %s plugin passed; failed: %s.", category, strings.Join(deps.FailedPlugins, ", ")))
}

// versionLess compares dotted version strings numerically, segment by
// segment.
func versionLess(a, b string) bool {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			return av < bv
		}
	}
	return false
}
