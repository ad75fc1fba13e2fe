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

package osvscanner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/scanner/osvscanner"
	"github.com/sbomvet/sbomvet/testing/testsbom"
)

const scanOutputJSON = `{
  "results": [
    {
      "source": {"path": "input.cdx.json", "type": "sbom"},
      "packages": [
        {
          "package": {"name": "libalpha", "version": "1.2.3", "ecosystem": "Go"},
          "vulnerabilities": [
            {
              "id": "GHSA-xxxx-yyyy-zzzz",
              "summary": "Remote code execution in libalpha",
              "details": "A crafted request executes arbitrary code.",
              "aliases": ["CVE-2026-0001"],
              "severity": [
                {"type": "CVSS_V3", "score": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"}
              ],
              "references": [
                {"type": "ADVISORY", "url": "https://example.com/advisory"}
              ]
            },
            {
              "id": "GHSA-aaaa-bbbb-cccc",
              "summary": "Path traversal in libalpha",
              "database_specific": {"severity": "MODERATE"}
            }
          ]
        }
      ]
    }
  ]
}`

// fakeBinary writes an executable shell script that records its arguments,
// prints output and exits with the given code.
func fakeBinary(t *testing.T, dir, output string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake scanner script requires a POSIX shell")
	}
	path := filepath.Join(dir, "fake-osv-scanner")
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %q\ncat <<'EOF'\n%s\nEOF\nexit %d\n",
		filepath.Join(dir, "args.txt"), output, exitCode)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("writing fake scanner: %v", err)
	}
	return path
}

func recordedArgs(t *testing.T, dir string) []string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(raw)), "\n")
}

func writeSBOM(t *testing.T, dir, name string, raw []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("writing SBOM file: %v", err)
	}
	return path
}

func target(t *testing.T, path string, raw []byte) *plugin.Target {
	t.Helper()
	return &plugin.Target{ArtifactID: filepath.Base(path), Path: path, Document: testsbom.Parse(t, raw)}
}

// scanCopies lists leftover suffixed scan copies in dir.
func scanCopies(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "sbomvet-*"))
	if err != nil {
		t.Fatalf("globbing scan copies: %v", err)
	}
	return matches
}

func TestAssessFindings(t *testing.T) {
	dir := t.TempDir()
	binary := fakeBinary(t, dir, scanOutputJSON, 1)
	path := writeSBOM(t, dir, "artifact.json", testsbom.CycloneDX())

	scanner := osvscanner.NewWithConfig(binary, time.Minute)
	result, err := scanner.Assess(context.Background(), target(t, path, testsbom.CycloneDX()), nil)
	if err != nil {
		t.Fatalf("Assess(): %v", err)
	}
	if err := plugin.ValidateResult(result); err != nil {
		t.Fatalf("ValidateResult(): %v", err)
	}

	score := 9.8
	component := &plugin.ComponentRef{Name: "libalpha", Version: "1.2.3", Ecosystem: "Go", PURL: "pkg:golang/libalpha@1.2.3"}
	want := []*plugin.Finding{
		{
			ID:          "GHSA-xxxx-yyyy-zzzz",
			Title:       "Remote code execution in libalpha",
			Description: "A crafted request executes arbitrary code.",
			Severity:    plugin.SeverityCritical,
			Component:   component,
			CVSSScore:   &score,
			References:  []string{"https://example.com/advisory"},
			Aliases:     []string{"CVE-2026-0001"},
		},
		{
			ID:        "GHSA-aaaa-bbbb-cccc",
			Title:     "Path traversal in libalpha",
			Severity:  plugin.SeverityMedium,
			Component: component,
		},
	}
	if diff := cmp.Diff(want, result.Findings); diff != "" {
		t.Errorf("Findings diff (-want +got):\n%s", diff)
	}
	if result.Summary.BySeverity[plugin.SeverityCritical] != 1 || result.Summary.BySeverity[plugin.SeverityMedium] != 1 {
		t.Errorf("Summary.BySeverity = %v, want one critical and one medium", result.Summary.BySeverity)
	}

	// The input lacked the .cdx.json suffix, so the scanner must have been
	// pointed at a suffixed sibling copy, and the copy must be gone now.
	args := recordedArgs(t, dir)
	sbomArg := ""
	for i, a := range args {
		if a == "--sbom" && i+1 < len(args) {
			sbomArg = args[i+1]
		}
	}
	if sbomArg == path || !strings.HasSuffix(sbomArg, ".cdx.json") {
		t.Errorf("scanner was invoked with %q, want a sibling copy ending in .cdx.json", sbomArg)
	}
	if leftover := scanCopies(t, dir); len(leftover) > 0 {
		t.Errorf("scan copies were not cleaned up: %v", leftover)
	}
}

func TestAssessSuffixedInputIsScannedInPlace(t *testing.T) {
	dir := t.TempDir()
	binary := fakeBinary(t, dir, `{"results": []}`, 0)
	path := writeSBOM(t, dir, "artifact.cdx.json", testsbom.CycloneDX())

	scanner := osvscanner.NewWithConfig(binary, time.Minute)
	result, err := scanner.Assess(context.Background(), target(t, path, testsbom.CycloneDX()), nil)
	if err != nil {
		t.Fatalf("Assess(): %v", err)
	}
	if len(result.Findings) != 0 {
		t.Errorf("Findings = %+v, want none for a clean scan", result.Findings)
	}

	args := recordedArgs(t, dir)
	found := false
	for _, a := range args {
		if a == path {
			found = true
		}
	}
	if !found {
		t.Errorf("scanner args %v do not contain the original path %q", args, path)
	}
	if leftover := scanCopies(t, dir); len(leftover) > 0 {
		t.Errorf("unexpected scan copies for already-suffixed input: %v", leftover)
	}
}

func TestAssessSPDX2Suffix(t *testing.T) {
	dir := t.TempDir()
	binary := fakeBinary(t, dir, `{"results": []}`, 0)
	path := writeSBOM(t, dir, "artifact.json", testsbom.SPDX2())

	scanner := osvscanner.NewWithConfig(binary, time.Minute)
	if _, err := scanner.Assess(context.Background(), target(t, path, testsbom.SPDX2()), nil); err != nil {
		t.Fatalf("Assess(): %v", err)
	}

	args := recordedArgs(t, dir)
	sbomArg := ""
	for i, a := range args {
		if a == "--sbom" && i+1 < len(args) {
			sbomArg = args[i+1]
		}
	}
	if !strings.HasSuffix(sbomArg, ".spdx.json") {
		t.Errorf("scanner was invoked with %q, want a copy ending in .spdx.json", sbomArg)
	}
}

func TestAssessUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeSBOM(t, dir, "artifact.json", testsbom.SPDX3())

	// The binary path points nowhere; for SPDX 3.x the subprocess must never
	// be invoked.
	scanner := osvscanner.NewWithConfig(filepath.Join(dir, "does-not-exist"), time.Minute)
	result, err := scanner.Assess(context.Background(), target(t, path, testsbom.SPDX3()), nil)
	if err != nil {
		t.Fatalf("Assess(): %v", err)
	}

	if len(result.Findings) != 1 {
		t.Fatalf("len(Findings) = %d, want 1", len(result.Findings))
	}
	f := result.Findings[0]
	if f.ID != "osv-scanner-unsupported-format" || f.Status != plugin.StatusWarning {
		t.Errorf("finding = %+v, want an unsupported-format warning", f)
	}
}

func TestAssessMissingBinary(t *testing.T) {
	dir := t.TempDir()
	path := writeSBOM(t, dir, "artifact.cdx.json", testsbom.CycloneDX())

	scanner := osvscanner.NewWithConfig(filepath.Join(dir, "does-not-exist"), time.Minute)
	result, err := scanner.Assess(context.Background(), target(t, path, testsbom.CycloneDX()), nil)
	if err != nil {
		t.Fatalf("Assess() error = %v, want subprocess failures folded into the result", err)
	}

	if result.Summary.ErrorCount != 1 {
		t.Fatalf("Summary.ErrorCount = %d, want 1; findings: %+v", result.Summary.ErrorCount, result.Findings)
	}
	if f := result.Findings[0]; f.ID != "osv-scanner-execution-error" {
		t.Errorf("finding ID = %q, want osv-scanner-execution-error", f.ID)
	}
}

func TestAssessTimeout(t *testing.T) {
	dir := t.TempDir()
	path := writeSBOM(t, dir, "artifact.cdx.json", testsbom.CycloneDX())

	binary := filepath.Join(dir, "slow-scanner")
	if err := os.WriteFile(binary, []byte("#!/bin/sh\nsleep 10\n"), 0755); err != nil {
		t.Fatalf("writing slow scanner: %v", err)
	}

	scanner := osvscanner.NewWithConfig(binary, 50*time.Millisecond)
	result, err := scanner.Assess(context.Background(), target(t, path, testsbom.CycloneDX()), nil)
	if err != nil {
		t.Fatalf("Assess(): %v", err)
	}

	if result.Summary.ErrorCount != 1 {
		t.Fatalf("Summary.ErrorCount = %d, want 1", result.Summary.ErrorCount)
	}
	if desc := result.Findings[0].Description; !strings.Contains(desc, "timed out") {
		t.Errorf("finding description %q does not mention the timeout", desc)
	}
}

func TestAssessMalformedOutput(t *testing.T) {
	dir := t.TempDir()
	binary := fakeBinary(t, dir, `{"results": [`, 1)
	path := writeSBOM(t, dir, "artifact.cdx.json", testsbom.CycloneDX())

	scanner := osvscanner.NewWithConfig(binary, time.Minute)
	result, err := scanner.Assess(context.Background(), target(t, path, testsbom.CycloneDX()), nil)
	if err != nil {
		t.Fatalf("Assess(): %v", err)
	}
	if f := result.Findings[0]; f.ID != "osv-scanner-output-error" || f.Status != plugin.StatusError {
		t.Errorf("finding = %+v, want an output-error finding", f)
	}
}
