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

// Package testsbom provides canonical SBOM documents for tests. Each document
// is fully conforming: every data element required by the built-in compliance
// standards is present, so validators produce zero failures on it. Tests
// derive negative cases by deleting or overwriting individual fields.
package testsbom

import (
	"testing"

	"github.com/tidwall/sjson"

	"github.com/sbomvet/sbomvet/document"
)

const cycloneDX = `{
  "bomFormat": "CycloneDX",
  "specVersion": "1.5",
  "serialNumber": "urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79",
  "version": 1,
  "metadata": {
    "timestamp": "2026-03-14T09:30:00Z",
    "lifecycles": [{"phase": "build"}],
    "authors": [{"name": "Acme SBOM Team", "email": "sbom@acme.example"}],
    "tools": {
      "components": [{"type": "application", "name": "acme-sbom-gen", "version": "2.1.0"}]
    },
    "component": {"type": "application", "bom-ref": "root-app", "name": "acme-app", "version": "4.0.1"}
  },
  "components": [
    {
      "type": "library",
      "bom-ref": "pkg-libalpha",
      "name": "libalpha",
      "version": "1.2.3",
      "supplier": {"name": "Alpha Software Ltd", "contact": [{"email": "security@alpha.example"}]},
      "purl": "pkg:golang/alpha.example/libalpha@1.2.3",
      "cpe": "cpe:2.3:a:alpha:libalpha:1.2.3:*:*:*:*:*:*:*",
      "hashes": [
        {"alg": "SHA-256", "content": "71f2b7b474d4f0078bb18e900fba06b4c25f86aca2d311954d159526e15367fb"},
        {"alg": "SHA-512", "content": "63e5b7b4a0dba9c0e6d97b4a2e12a1fa62d7be75744b7eac3e72209b4e9cda1fd5002abeca212f24e4b927731ba2ba86b7e60b757ce719261277b2227f226767"}
      ],
      "licenses": [{"license": {"id": "Apache-2.0"}}],
      "copyright": "Copyright 2024 Alpha Software Ltd"
    },
    {
      "type": "library",
      "bom-ref": "pkg-libbeta",
      "name": "libbeta",
      "version": "2.0.0",
      "supplier": {"name": "Beta Org", "contact": [{"email": "contact@beta.example"}]},
      "purl": "pkg:golang/beta.example/libbeta@2.0.0",
      "hashes": [
        {"alg": "SHA-256", "content": "0f343b0931126a20f133d67c2b018a3b5651d0f0ba00ba5f9a6f4e2e09a2b7a2"},
        {"alg": "SHA-512", "content": "b7e23ec29af22b0b4e41da31e868d57226121c84c915c2c4a0a2ba6b22f791ab73ae8e3b2cab86fa0c820ab668e0c3c0259b71ce000000000000000000000aaa"}
      ],
      "licenses": [{"license": {"id": "MIT"}}],
      "copyright": "Copyright 2023 Beta Org"
    }
  ],
  "dependencies": [
    {"ref": "root-app", "dependsOn": ["pkg-libalpha", "pkg-libbeta"]},
    {"ref": "pkg-libalpha", "dependsOn": ["pkg-libbeta"]}
  ],
  "compositions": [{"aggregate": "complete", "dependencies": ["root-app"]}]
}`

const spdx2 = `{
  "spdxVersion": "SPDX-2.3",
  "dataLicense": "CC0-1.0",
  "SPDXID": "SPDXRef-DOCUMENT",
  "name": "acme-app-4.0.1",
  "documentNamespace": "https://acme.example/spdx/acme-app-4.0.1",
  "creationInfo": {
    "created": "2026-03-14T09:30:00Z",
    "creators": [
      "Organization: Acme Corp (sbom@acme.example)",
      "Tool: acme-sbom-gen-2.1.0"
    ],
    "comment": "Lifecycle: build"
  },
  "packages": [
    {
      "name": "libalpha",
      "SPDXID": "SPDXRef-Package-libalpha",
      "versionInfo": "1.2.3",
      "supplier": "Organization: Alpha Software Ltd (security@alpha.example)",
      "downloadLocation": "https://alpha.example/libalpha-1.2.3.tar.gz",
      "checksums": [
        {"algorithm": "SHA256", "checksumValue": "71f2b7b474d4f0078bb18e900fba06b4c25f86aca2d311954d159526e15367fb"},
        {"algorithm": "SHA512", "checksumValue": "63e5b7b4a0dba9c0e6d97b4a2e12a1fa62d7be75744b7eac3e72209b4e9cda1fd5002abeca212f24e4b927731ba2ba86b7e60b757ce719261277b2227f226767"}
      ],
      "licenseConcluded": "Apache-2.0",
      "licenseDeclared": "Apache-2.0",
      "copyrightText": "Copyright 2024 Alpha Software Ltd",
      "externalRefs": [
        {
          "referenceCategory": "PACKAGE-MANAGER",
          "referenceType": "purl",
          "referenceLocator": "pkg:golang/alpha.example/libalpha@1.2.3"
        }
      ]
    },
    {
      "name": "libbeta",
      "SPDXID": "SPDXRef-Package-libbeta",
      "versionInfo": "2.0.0",
      "supplier": "Organization: Beta Org (contact@beta.example)",
      "downloadLocation": "https://beta.example/libbeta-2.0.0.tar.gz",
      "checksums": [
        {"algorithm": "SHA256", "checksumValue": "0f343b0931126a20f133d67c2b018a3b5651d0f0ba00ba5f9a6f4e2e09a2b7a2"},
        {"algorithm": "SHA512", "checksumValue": "b7e23ec29af22b0b4e41da31e868d57226121c84c915c2c4a0a2ba6b22f791ab73ae8e3b2cab86fa0c820ab668e0c3c0259b71ce000000000000000000000aaa"}
      ],
      "licenseConcluded": "MIT",
      "licenseDeclared": "MIT",
      "copyrightText": "Copyright 2023 Beta Org",
      "externalRefs": [
        {
          "referenceCategory": "PACKAGE-MANAGER",
          "referenceType": "purl",
          "referenceLocator": "pkg:golang/beta.example/libbeta@2.0.0"
        }
      ]
    }
  ],
  "relationships": [
    {"spdxElementId": "SPDXRef-DOCUMENT", "relationshipType": "DESCRIBES", "relatedSpdxElement": "SPDXRef-Package-libalpha"},
    {"spdxElementId": "SPDXRef-Package-libalpha", "relationshipType": "DEPENDS_ON", "relatedSpdxElement": "SPDXRef-Package-libbeta"},
    {"spdxElementId": "SPDXRef-Package-libbeta", "relationshipType": "DEPENDS_ON", "relatedSpdxElement": "NONE"}
  ]
}`

const spdx3 = `{
  "@context": "https://spdx.org/rdf/3.0.1/spdx-context.jsonld",
  "@graph": [
    {
      "type": "CreationInfo",
      "@id": "_:creationinfo",
      "specVersion": "3.0.1",
      "created": "2026-03-14T09:30:00Z",
      "createdBy": ["https://acme.example/agent/acme"]
    },
    {
      "type": "Organization",
      "spdxId": "https://acme.example/agent/acme",
      "creationInfo": "_:creationinfo",
      "name": "Acme Corp",
      "externalIdentifier": [
        {"type": "ExternalIdentifier", "externalIdentifierType": "email", "identifier": "sbom@acme.example"}
      ]
    },
    {
      "type": "Organization",
      "spdxId": "https://alpha.example/agent/alpha",
      "creationInfo": "_:creationinfo",
      "name": "Alpha Software Ltd",
      "externalIdentifier": [
        {"type": "ExternalIdentifier", "externalIdentifierType": "email", "identifier": "security@alpha.example"}
      ]
    },
    {
      "type": "software_Sbom",
      "spdxId": "https://acme.example/sbom/acme-app",
      "creationInfo": "_:creationinfo",
      "software_sbomType": ["build"],
      "rootElement": ["https://acme.example/pkg/libalpha"]
    },
    {
      "type": "software_Package",
      "spdxId": "https://acme.example/pkg/libalpha",
      "creationInfo": "_:creationinfo",
      "name": "libalpha",
      "software_packageVersion": "1.2.3",
      "suppliedBy": "https://alpha.example/agent/alpha",
      "software_copyrightText": "Copyright 2024 Alpha Software Ltd",
      "verifiedUsing": [
        {"type": "Hash", "algorithm": "sha256", "hashValue": "71f2b7b474d4f0078bb18e900fba06b4c25f86aca2d311954d159526e15367fb"},
        {"type": "Hash", "algorithm": "sha512", "hashValue": "63e5b7b4a0dba9c0e6d97b4a2e12a1fa62d7be75744b7eac3e72209b4e9cda1fd5002abeca212f24e4b927731ba2ba86b7e60b757ce719261277b2227f226767"}
      ],
      "externalIdentifier": [
        {"type": "ExternalIdentifier", "externalIdentifierType": "packageUrl", "identifier": "pkg:golang/alpha.example/libalpha@1.2.3"}
      ]
    },
    {
      "type": "software_Package",
      "spdxId": "https://acme.example/pkg/libbeta",
      "creationInfo": "_:creationinfo",
      "name": "libbeta",
      "software_packageVersion": "2.0.0",
      "suppliedBy": "https://alpha.example/agent/alpha",
      "software_copyrightText": "Copyright 2023 Beta Org",
      "verifiedUsing": [
        {"type": "Hash", "algorithm": "sha256", "hashValue": "0f343b0931126a20f133d67c2b018a3b5651d0f0ba00ba5f9a6f4e2e09a2b7a2"},
        {"type": "Hash", "algorithm": "sha512", "hashValue": "b7e23ec29af22b0b4e41da31e868d57226121c84c915c2c4a0a2ba6b22f791ab73ae8e3b2cab86fa0c820ab668e0c3c0259b71ce000000000000000000000aaa"}
      ],
      "externalIdentifier": [
        {"type": "ExternalIdentifier", "externalIdentifierType": "packageUrl", "identifier": "pkg:golang/beta.example/libbeta@2.0.0"}
      ]
    },
    {
      "type": "Relationship",
      "spdxId": "https://acme.example/rel/1",
      "creationInfo": "_:creationinfo",
      "relationshipType": "dependsOn",
      "from": "https://acme.example/pkg/libalpha",
      "to": ["https://acme.example/pkg/libbeta"],
      "completeness": "complete"
    },
    {
      "type": "Relationship",
      "spdxId": "https://acme.example/rel/2",
      "creationInfo": "_:creationinfo",
      "relationshipType": "hasDeclaredLicense",
      "from": "https://acme.example/pkg/libalpha",
      "to": ["https://spdx.org/licenses/Apache-2.0"]
    },
    {
      "type": "Relationship",
      "spdxId": "https://acme.example/rel/3",
      "creationInfo": "_:creationinfo",
      "relationshipType": "hasDeclaredLicense",
      "from": "https://acme.example/pkg/libbeta",
      "to": ["https://spdx.org/licenses/MIT"]
    }
  ]
}`

// CycloneDX returns the conforming CycloneDX 1.5 document.
func CycloneDX() []byte { return []byte(cycloneDX) }

// SPDX2 returns the conforming SPDX 2.3 JSON document.
func SPDX2() []byte { return []byte(spdx2) }

// SPDX3 returns the conforming SPDX 3.0.1 JSON-LD document.
func SPDX3() []byte { return []byte(spdx3) }

// All returns the conforming documents of every supported format, keyed by a
// short format label for subtest names.
func All() map[string][]byte {
	return map[string][]byte{
		"cyclonedx": CycloneDX(),
		"spdx2":     SPDX2(),
		"spdx3":     SPDX3(),
	}
}

// Without returns a copy of raw with the value at the sjson path removed.
func Without(t *testing.T, raw []byte, path string) []byte {
	t.Helper()
	out, err := sjson.DeleteBytes(raw, path)
	if err != nil {
		t.Fatalf("deleting %q: %v", path, err)
	}
	return out
}

// With returns a copy of raw with the value at the sjson path replaced.
func With(t *testing.T, raw []byte, path string, value any) []byte {
	t.Helper()
	out, err := sjson.SetBytes(raw, path, value)
	if err != nil {
		t.Fatalf("setting %q: %v", path, err)
	}
	return out
}

// Parse parses raw into a document, failing the test on error.
func Parse(t *testing.T, raw []byte) *document.Document {
	t.Helper()
	doc, err := document.Parse(raw)
	if err != nil {
		t.Fatalf("document.Parse(): %v", err)
	}
	return doc
}
