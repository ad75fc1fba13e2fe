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
	"github.com/sbomvet/sbomvet/purl"
)

// IdentifierKind is the type of a software identifier attached to a component.
type IdentifierKind string

// IdentifierKind values. Only these kinds satisfy "unique identifier"
// requirements; arbitrary external reference types do not.
const (
	IdentifierPURL IdentifierKind = "purl"
	IdentifierCPE  IdentifierKind = "cpe"
	IdentifierSWID IdentifierKind = "swid"
)

// Identifier is one software identifier (purl, CPE or SWID tag) of a component.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// Valid reports whether the identifier is syntactically usable. PURLs are
// checked against the purl spec; other kinds only need to be non-empty.
func (i Identifier) Valid() bool {
	if i.Value == "" {
		return false
	}
	if i.Kind == IdentifierPURL {
		return purl.Valid(i.Value)
	}
	return true
}

// Hash is one cryptographic checksum of a component, with the algorithm
// name normalized to lower case without separators (e.g. "sha256").
type Hash struct {
	Algorithm string
	Value     string
}

// Component is the format-independent, read-only view of one SBOM component.
// Accessors fail closed: a missing or unresolvable field reports absence
// instead of panicking.
type Component interface {
	// Name returns the component name.
	Name() (string, bool)
	// Version returns the component version.
	Version() (string, bool)
	// Supplier returns the name of the supplier or manufacturer, accepting
	// either a flat name field or a nested entity's name field.
	Supplier() (string, bool)
	// SupplierContact returns a contact address (email) for the supplier or
	// component author, if one is declared.
	SupplierContact() (string, bool)
	// Identifiers returns the component's software identifiers, filtered to
	// the purl/CPE/SWID allow-list.
	Identifiers() []Identifier
	// Hashes returns the component's checksums.
	Hashes() []Hash
	// Licenses returns the declared or concluded license expressions.
	Licenses() []string
	// Copyright returns the copyright text.
	Copyright() (string, bool)
}

// spdx2RefTypes maps SPDX 2.x external reference types to identifier kinds.
// Reference types outside this table are ignored.
var spdx2RefTypes = map[string]IdentifierKind{
	"purl":      IdentifierPURL,
	"cpe22Type": IdentifierCPE,
	"cpe23Type": IdentifierCPE,
	"swid":      IdentifierSWID,
}

// spdx3IdentifierTypes maps SPDX 3.x externalIdentifierType values to
// identifier kinds. Types outside this table are ignored.
var spdx3IdentifierTypes = map[string]IdentifierKind{
	"packageUrl": IdentifierPURL,
	"cpe22":      IdentifierCPE,
	"cpe23":      IdentifierCPE,
	"swid":       IdentifierSWID,
}
