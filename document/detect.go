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
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Format identifies the SBOM document format family.
type Format string

// Format values.
const (
	FormatUnknown   Format = "unknown"
	FormatSPDX2     Format = "spdx-2"
	FormatSPDX3     Format = "spdx-3"
	FormatCycloneDX Format = "cyclonedx"
)

var (
	// ErrMalformedJSON is returned when the input is not valid JSON.
	// This is a distinct outcome from an unrecognized format.
	ErrMalformedJSON = errors.New("document is not valid JSON")
	// ErrUnknownFormat is returned when valid JSON matches no known SBOM
	// format. This is terminal for the whole assessment.
	ErrUnknownFormat = errors.New("unrecognized SBOM format")
)

// Detect inspects raw bytes and returns the detected format and the declared
// version string. Detection probes individual fields and never fully
// unmarshals the document, so it cannot panic on structurally odd but valid
// JSON. Malformed JSON is reported as ErrMalformedJSON before any format
// logic runs.
func Detect(raw []byte) (Format, string, error) {
	if !gjson.ValidBytes(raw) {
		return FormatUnknown, "", ErrMalformedJSON
	}

	if v := gjson.GetBytes(raw, "spdxVersion"); v.Exists() {
		version := strings.TrimPrefix(v.String(), "SPDX-")
		if spdxMajor(version) >= 3 {
			return FormatSPDX3, version, nil
		}
		return FormatSPDX2, version, nil
	}

	if ctx := gjson.GetBytes(raw, "@context"); ctx.Exists() && strings.Contains(ctx.Raw, "spdx.org/rdf/3") {
		version := gjson.GetBytes(raw, `@graph.#(type=="CreationInfo").specVersion`).String()
		if version == "" {
			version = "3.0"
		}
		return FormatSPDX3, version, nil
	}

	if gjson.GetBytes(raw, "bomFormat").String() == "CycloneDX" {
		return FormatCycloneDX, gjson.GetBytes(raw, "specVersion").String(), nil
	}
	if gjson.GetBytes(raw, "specVersion").Exists() && gjson.GetBytes(raw, "components").Exists() {
		return FormatCycloneDX, gjson.GetBytes(raw, "specVersion").String(), nil
	}

	return FormatUnknown, "", ErrUnknownFormat
}

// spdxMajor extracts the major version from an SPDX version string like
// "2.3" or "3.0.1". Returns 0 if the string is unparsable.
func spdxMajor(version string) int {
	major, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0
	}
	return n
}
