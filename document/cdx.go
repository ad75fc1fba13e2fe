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

package document

import (
	"strings"

	"github.com/CycloneDX/cyclonedx-go"
)

// CycloneDXComponent is the Component view over a CycloneDX component.
type CycloneDXComponent struct {
	c *cyclonedx.Component
}

// Name returns the component name.
func (v CycloneDXComponent) Name() (string, bool) {
	return v.c.Name, v.c.Name != ""
}

// Version returns the component version.
func (v CycloneDXComponent) Version() (string, bool) {
	return v.c.Version, v.c.Version != ""
}

// Supplier returns the supplier entity name, falling back to the flat
// author and publisher fields.
func (v CycloneDXComponent) Supplier() (string, bool) {
	if v.c.Supplier != nil && v.c.Supplier.Name != "" {
		return v.c.Supplier.Name, true
	}
	if v.c.Author != "" {
		return v.c.Author, true
	}
	if v.c.Publisher != "" {
		return v.c.Publisher, true
	}
	return "", false
}

// SupplierContact returns the first contact email of the supplier entity.
func (v CycloneDXComponent) SupplierContact() (string, bool) {
	if v.c.Supplier == nil || v.c.Supplier.Contact == nil {
		return "", false
	}
	for _, contact := range *v.c.Supplier.Contact {
		if contact.Email != "" {
			return contact.Email, true
		}
	}
	return "", false
}

// Identifiers returns the component's purl, CPE and SWID identifiers.
func (v CycloneDXComponent) Identifiers() []Identifier {
	var ids []Identifier
	if v.c.PackageURL != "" {
		ids = append(ids, Identifier{Kind: IdentifierPURL, Value: v.c.PackageURL})
	}
	if v.c.CPE != "" {
		ids = append(ids, Identifier{Kind: IdentifierCPE, Value: v.c.CPE})
	}
	if v.c.SWID != nil && v.c.SWID.TagID != "" {
		ids = append(ids, Identifier{Kind: IdentifierSWID, Value: v.c.SWID.TagID})
	}
	return ids
}

// Hashes returns the component checksums with normalized algorithm names.
func (v CycloneDXComponent) Hashes() []Hash {
	if v.c.Hashes == nil {
		return nil
	}
	var hashes []Hash
	for _, h := range *v.c.Hashes {
		if h.Value == "" {
			continue
		}
		hashes = append(hashes, Hash{
			Algorithm: normalizeHashAlgorithm(string(h.Algorithm)),
			Value:     h.Value,
		})
	}
	return hashes
}

// Licenses returns the declared license IDs, names and expressions.
func (v CycloneDXComponent) Licenses() []string {
	if v.c.Licenses == nil {
		return nil
	}
	var licenses []string
	for _, choice := range *v.c.Licenses {
		switch {
		case choice.Expression != "":
			licenses = append(licenses, choice.Expression)
		case choice.License != nil && choice.License.ID != "":
			licenses = append(licenses, choice.License.ID)
		case choice.License != nil && choice.License.Name != "":
			licenses = append(licenses, choice.License.Name)
		}
	}
	return licenses
}

// Copyright returns the component copyright text.
func (v CycloneDXComponent) Copyright() (string, bool) {
	return v.c.Copyright, v.c.Copyright != ""
}

func (d *Document) cdxComponents() []Component {
	if d.cdx.Components == nil {
		return nil
	}
	comps := make([]Component, 0, len(*d.cdx.Components))
	for i := range *d.cdx.Components {
		comps = append(comps, CycloneDXComponent{c: &(*d.cdx.Components)[i]})
	}
	return comps
}

func (d *Document) cdxAuthors() []string {
	if d.cdx.Metadata == nil {
		return nil
	}
	var authors []string
	if d.cdx.Metadata.Authors != nil {
		for _, a := range *d.cdx.Metadata.Authors {
			if a.Name != "" {
				authors = append(authors, a.Name)
			}
		}
	}
	if len(authors) > 0 {
		return authors
	}
	// SBOMs produced without a human author commonly declare only the
	// generating tool, which also satisfies the author requirement.
	if tools := d.cdx.Metadata.Tools; tools != nil {
		if tools.Tools != nil {
			for _, t := range *tools.Tools {
				if t.Name != "" {
					authors = append(authors, t.Name)
				}
			}
		}
		if tools.Components != nil {
			for _, c := range *tools.Components {
				if c.Name != "" {
					authors = append(authors, c.Name)
				}
			}
		}
	}
	return authors
}

func (d *Document) cdxAuthorContact() (string, bool) {
	if d.cdx.Metadata == nil || d.cdx.Metadata.Authors == nil {
		return "", false
	}
	for _, a := range *d.cdx.Metadata.Authors {
		if a.Email != "" {
			return a.Email, true
		}
	}
	return "", false
}

func (d *Document) cdxLifecycles() []string {
	if d.cdx.Metadata == nil || d.cdx.Metadata.Lifecycles == nil {
		return nil
	}
	var phases []string
	for _, l := range *d.cdx.Metadata.Lifecycles {
		if l.Phase != "" {
			phases = append(phases, string(l.Phase))
		} else if l.Name != "" {
			phases = append(phases, l.Name)
		}
	}
	return phases
}

func (d *Document) cdxDependencyCount() int {
	if d.cdx.Dependencies == nil {
		return 0
	}
	n := 0
	for _, dep := range *d.cdx.Dependencies {
		if dep.Dependencies != nil {
			n += len(*dep.Dependencies)
		}
	}
	return n
}

func (d *Document) cdxCompleteness() (string, bool) {
	if d.cdx.Compositions == nil {
		return "", false
	}
	for _, comp := range *d.cdx.Compositions {
		if comp.Aggregate != "" {
			return string(comp.Aggregate), true
		}
	}
	return "", false
}

// normalizeHashAlgorithm lower-cases an algorithm name and strips separators
// so that "SHA-256", "SHA256" and "sha256" compare equal.
func normalizeHashAlgorithm(algo string) string {
	algo = strings.ToLower(algo)
	algo = strings.ReplaceAll(algo, "-", "")
	algo = strings.ReplaceAll(algo, "_", "")
	return algo
}
