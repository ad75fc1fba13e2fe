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

// Package osvscanner implements a security plugin that wraps the external
// osv-scanner binary: it prepares a correctly-suffixed input file, runs the
// binary under a bounded timeout with a minimal environment, and maps its
// JSON output into normalized findings.
package osvscanner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sbomvet/sbomvet/document"
	"github.com/sbomvet/sbomvet/log"
	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/purl"
)

// Name is the unique name of this plugin.
const Name = "security/osv-scanner"

// DefaultTimeout bounds a single scanner invocation.
const DefaultTimeout = 5 * time.Minute

// envAllowlist is the only set of variables forwarded from the calling
// process's environment into the subprocess. Everything else is withheld so
// the scanner cannot observe unrelated process state.
var envAllowlist = []string{
	"HOME", "PATH",
	"HTTP_PROXY", "HTTPS_PROXY", "NO_PROXY",
	"http_proxy", "https_proxy", "no_proxy",
	"SSL_CERT_FILE", "SSL_CERT_DIR",
}

// Scanner invokes the osv-scanner binary against an SBOM file.
type Scanner struct {
	// BinaryPath is the scanner executable. Defaults to "osv-scanner" on PATH.
	BinaryPath string
	// Timeout bounds the subprocess runtime. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// New returns a scanner plugin with default settings.
func New() plugin.Plugin { return &Scanner{} }

// NewWithConfig returns a scanner plugin with an explicit binary path and
// timeout.
func NewWithConfig(binaryPath string, timeout time.Duration) plugin.Plugin {
	return &Scanner{BinaryPath: binaryPath, Timeout: timeout}
}

// Metadata of the plugin.
func (Scanner) Metadata() plugin.Metadata {
	return plugin.Metadata{Name: Name, Version: "1.0.0", Category: plugin.CategorySecurity}
}

// Requirements of the plugin.
func (Scanner) Requirements() *plugin.Requirements { return &plugin.Requirements{} }

// requiredSuffix returns the file suffix the scanner binary uses to pick its
// SBOM parser. The decision is made from the detected content format, never
// from the input file name.
func requiredSuffix(format document.Format) (string, bool) {
	switch format {
	case document.FormatCycloneDX:
		return ".cdx.json", true
	case document.FormatSPDX2:
		return ".spdx.json", true
	default:
		return "", false
	}
}

// Assess runs the scanner against the target SBOM and returns one finding
// per discovered vulnerability. Subprocess failures (timeout, missing
// binary) are converted into a single error finding; the method never
// propagates them as errors.
func (s *Scanner) Assess(ctx context.Context, target *plugin.Target, _ *plugin.DependencyStatus) (*plugin.Result, error) {
	md := s.Metadata()

	suffix, ok := requiredSuffix(target.Document.Format)
	if !ok {
		// The binary cannot parse graph-based SPDX 3.x documents (or
		// anything else without a dedicated suffix), so don't invoke it.
		return plugin.NewResult(md, []*plugin.Finding{{
			ID:    "osv-scanner-unsupported-format",
			Title: "SBOM format not supported by scanner",
			Description: fmt.Sprintf("osv-scanner cannot parse %s %s documents; vulnerability scanning was skipped.",
				target.Document.Format, target.Document.SpecVersion),
			Status: plugin.StatusWarning,
		}}), nil
	}

	scanPath := target.Path
	if !strings.HasSuffix(strings.ToLower(scanPath), suffix) {
		tmpPath, cleanup, err := suffixedCopy(scanPath, suffix, target.Document.Raw)
		if err != nil {
			return plugin.ResultFromErr(md, "osv-scanner-input-error", err), nil
		}
		// The copy is removed on every exit path, including parse failures,
		// timeouts and a missing binary.
		defer cleanup()
		scanPath = tmpPath
	}

	stdout, runErr := s.run(ctx, scanPath)
	if runErr != nil {
		return plugin.ResultFromErr(md, "osv-scanner-execution-error", runErr), nil
	}

	findings, err := parseOutput(stdout)
	if err != nil {
		return plugin.ResultFromErr(md, "osv-scanner-output-error",
			fmt.Errorf("parsing scanner output: %w", err)), nil
	}
	return plugin.NewResult(md, findings), nil
}

// suffixedCopy writes raw into a uniquely-named sibling file carrying the
// required suffix and returns its path with a cleanup function.
func suffixedCopy(path, suffix string, raw []byte) (string, func(), error) {
	f, err := os.CreateTemp(filepath.Dir(path), "sbomvet-*"+suffix)
	if err != nil {
		return "", nil, fmt.Errorf("creating suffixed scan copy: %w", err)
	}
	tmpPath := f.Name()
	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf("Failed to remove scan copy %s: %v", tmpPath, err)
		}
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing suffixed scan copy: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing suffixed scan copy: %w", err)
	}
	return tmpPath, cleanup, nil
}

// run invokes the scanner subprocess and returns its stdout. Exit code 0
// means no findings, 1 means findings are present; any other code is logged
// and the output is still parsed best-effort.
func (s *Scanner) run(ctx context.Context, scanPath string) ([]byte, error) {
	binary := s.BinaryPath
	if binary == "" {
		binary = "osv-scanner"
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, "scan", "source", "--sbom", scanPath, "--format", "json")
	cmd.Dir = filepath.Dir(scanPath)
	cmd.Env = minimalEnv()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("scanner timed out after %v", timeout)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == 1 {
			// Findings present.
			return stdout.Bytes(), nil
		}
		log.Warnf("osv-scanner exited with code %d: %s", exitErr.ExitCode(), stderr.String())
		return stdout.Bytes(), nil
	}
	// Typically the binary was not found or not executable.
	return nil, fmt.Errorf("invoking scanner: %w", err)
}

// minimalEnv builds the allow-listed subprocess environment.
func minimalEnv() []string {
	env := make([]string, 0, len(envAllowlist))
	for _, key := range envAllowlist {
		if value, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+value)
		}
	}
	return env
}

// SeverityTypeCVSSV3 marks a CVSS v3 vector in a vulnerability's severity
// list; other type values (CVSS_V2, CVSS_V4, Ubuntu) are not resolved.
const SeverityTypeCVSSV3 = "CVSS_V3"

// Vulnerability mirrors one OSV record in the scanner's JSON output. The
// upstream schema bindings are proto-generated and do not decode cleanly
// from this JSON (enum-typed severity, struct-typed database_specific), so
// the fields consumed here are modeled locally.
type Vulnerability struct {
	ID               string          `json:"id"`
	Summary          string          `json:"summary"`
	Details          string          `json:"details"`
	Aliases          []string        `json:"aliases"`
	Severity         []SeverityEntry `json:"severity"`
	References       []Reference     `json:"references"`
	DatabaseSpecific map[string]any  `json:"database_specific"`
}

// SeverityEntry is one (type, score) severity declaration of a vulnerability.
type SeverityEntry struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

// Reference is one advisory or fix link of a vulnerability.
type Reference struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// scanOutput mirrors the scanner's JSON output document.
type scanOutput struct {
	Results []struct {
		Source struct {
			Path string `json:"path"`
		} `json:"source"`
		Packages []struct {
			Package struct {
				Name      string `json:"name"`
				Version   string `json:"version"`
				Ecosystem string `json:"ecosystem"`
			} `json:"package"`
			Vulnerabilities []Vulnerability `json:"vulnerabilities"`
		} `json:"packages"`
	} `json:"results"`
}

// parseOutput walks the result/package/vulnerability triples of the scanner
// output and converts each vulnerability into a finding.
func parseOutput(out []byte) ([]*plugin.Finding, error) {
	findings := []*plugin.Finding{}
	if len(bytes.TrimSpace(out)) == 0 {
		return findings, nil
	}
	parsed := scanOutput{}
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, err
	}
	for _, result := range parsed.Results {
		for _, pkg := range result.Packages {
			component := &plugin.ComponentRef{
				Name:      pkg.Package.Name,
				Version:   pkg.Package.Version,
				Ecosystem: pkg.Package.Ecosystem,
				PURL:      purl.FromEcosystem(pkg.Package.Ecosystem, pkg.Package.Name, pkg.Package.Version),
			}
			for i := range pkg.Vulnerabilities {
				findings = append(findings, vulnFinding(&pkg.Vulnerabilities[i], component))
			}
		}
	}
	return findings, nil
}

// vulnFinding converts one vulnerability into a normalized security finding.
func vulnFinding(vuln *Vulnerability, component *plugin.ComponentRef) *plugin.Finding {
	severity, score := ResolveSeverity(vuln)
	f := &plugin.Finding{
		ID:          vuln.ID,
		Title:       vuln.Summary,
		Description: vuln.Details,
		Severity:    severity,
		Component:   component,
		Aliases:     vuln.Aliases,
	}
	if f.Title == "" {
		f.Title = vuln.ID
	}
	if score >= 0 {
		s := score
		f.CVSSScore = &s
	}
	for _, ref := range vuln.References {
		if ref.URL != "" {
			f.References = append(f.References, ref.URL)
		}
	}
	return f
}
