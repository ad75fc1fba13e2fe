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

// Package document detects the format of raw SBOM bytes and exposes a typed,
// immutable view over the parsed document. CycloneDX documents are backed by
// cyclonedx-go, SPDX 2.x documents by spdx/tools-golang, and SPDX 3.x
// documents are accessed as a JSON-LD element graph.
package document

import (
	"bytes"
	"fmt"

	"github.com/CycloneDX/cyclonedx-go"
	"github.com/spdx/tools-golang/json"
	"github.com/spdx/tools-golang/spdx"
	"github.com/tidwall/gjson"
)

// Document is the immutable parsed representation of one SBOM artifact.
// It is created once per assessment run and never mutated; concurrent reads
// are safe.
type Document struct {
	// Raw holds the original input bytes.
	Raw []byte
	// Format is the detected format family.
	Format Format
	// SpecVersion is the declared version string, e.g. "2.3" or "1.5".
	SpecVersion string

	cdx   *cyclonedx.BOM
	spdx2 *spdx.Document
	// SPDX 3.x element graph, in declaration order.
	graph []gjson.Result
}

// Parse detects the format of raw and builds the format-specific
// representation. It returns ErrMalformedJSON or ErrUnknownFormat for inputs
// no assessment can be run on.
func Parse(raw []byte) (*Document, error) {
	format, version, err := Detect(raw)
	if err != nil {
		return nil, err
	}
	doc := &Document{Raw: raw, Format: format, SpecVersion: version}
	switch format {
	case FormatCycloneDX:
		bom := cyclonedx.BOM{}
		if err := cyclonedx.NewBOMDecoder(bytes.NewReader(raw), cyclonedx.BOMFileFormatJSON).Decode(&bom); err != nil {
			return nil, fmt.Errorf("decoding CycloneDX document: %w", err)
		}
		doc.cdx = &bom
	case FormatSPDX2:
		d, err := json.Read(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decoding SPDX document: %w", err)
		}
		doc.spdx2 = d
	case FormatSPDX3:
		doc.graph = gjson.GetBytes(raw, "@graph").Array()
	}
	return doc, nil
}

// Components returns the per-format component views: the CycloneDX
// components array, the SPDX 2.x packages array, or the SPDX 3.x graph
// elements of type software_Package.
func (d *Document) Components() []Component {
	switch d.Format {
	case FormatCycloneDX:
		return d.cdxComponents()
	case FormatSPDX2:
		return d.spdx2Packages()
	case FormatSPDX3:
		return d.spdx3Packages()
	}
	return nil
}

// Authors returns the names of the document-level authors or creators.
func (d *Document) Authors() []string {
	switch d.Format {
	case FormatCycloneDX:
		return d.cdxAuthors()
	case FormatSPDX2:
		return d.spdx2Creators()
	case FormatSPDX3:
		return d.spdx3Creators()
	}
	return nil
}

// AuthorContact returns a contact email declared for a document author.
func (d *Document) AuthorContact() (string, bool) {
	switch d.Format {
	case FormatCycloneDX:
		return d.cdxAuthorContact()
	case FormatSPDX2:
		return d.spdx2CreatorContact()
	case FormatSPDX3:
		return d.spdx3CreatorContact()
	}
	return "", false
}

// CreatedAt returns the raw creation timestamp string of the document.
// Callers are responsible for parsing it; a present but malformed timestamp
// is a different failure than a missing one.
func (d *Document) CreatedAt() (string, bool) {
	switch d.Format {
	case FormatCycloneDX:
		if d.cdx.Metadata == nil || d.cdx.Metadata.Timestamp == "" {
			return "", false
		}
		return d.cdx.Metadata.Timestamp, true
	case FormatSPDX2:
		if d.spdx2.CreationInfo == nil || d.spdx2.CreationInfo.Created == "" {
			return "", false
		}
		return d.spdx2.CreationInfo.Created, true
	case FormatSPDX3:
		created := d.graphFirst("CreationInfo").Get("created").String()
		return created, created != ""
	}
	return "", false
}

// Lifecycles returns the declared SBOM lifecycle phases (e.g. "build",
// "source"). For SPDX 2.x, which has no dedicated field, phases are read
// from the creator comment.
func (d *Document) Lifecycles() []string {
	switch d.Format {
	case FormatCycloneDX:
		return d.cdxLifecycles()
	case FormatSPDX2:
		return d.spdx2Lifecycles()
	case FormatSPDX3:
		return d.spdx3Lifecycles()
	}
	return nil
}

// DependencyCount returns the number of dependency relationships declared in
// the document.
func (d *Document) DependencyCount() int {
	switch d.Format {
	case FormatCycloneDX:
		return d.cdxDependencyCount()
	case FormatSPDX2:
		return d.spdx2DependencyCount()
	case FormatSPDX3:
		return d.spdx3DependencyCount()
	}
	return 0
}

// Completeness returns the declared completeness of the dependency graph
// ("complete", "incomplete" or "unknown") and whether any declaration was
// found at all.
func (d *Document) Completeness() (string, bool) {
	switch d.Format {
	case FormatCycloneDX:
		return d.cdxCompleteness()
	case FormatSPDX2:
		return d.spdx2Completeness()
	case FormatSPDX3:
		return d.spdx3Completeness()
	}
	return "", false
}

// graphFirst returns the first SPDX 3.x graph element of the given type, or
// an empty result if none exists.
func (d *Document) graphFirst(elementType string) gjson.Result {
	for _, el := range d.graph {
		if el.Get("type").String() == elementType {
			return el
		}
	}
	return gjson.Result{}
}
