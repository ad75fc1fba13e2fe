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

package osvscanner

import (
	"strconv"
	"strings"

	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"

	"github.com/sbomvet/sbomvet/plugin"
)

// ResolveSeverity determines the canonical severity level and numeric score
// of a vulnerability. Sources are consulted in priority order: a CVSS v3
// vector (trailing numeric score, computed base score, then an approximate
// impact heuristic), a textual severity field, a numeric score field, and
// finally a default of medium. The returned score is -1 when no numeric
// score could be determined.
func ResolveSeverity(vuln *Vulnerability) (plugin.Severity, float64) {
	for _, sev := range vuln.Severity {
		if sev.Type != SeverityTypeCVSSV3 {
			continue
		}
		if score, ok := scoreFromVector(sev.Score); ok {
			return plugin.SeverityFromScore(score), score
		}
	}

	if text, ok := databaseString(vuln, "severity"); ok {
		if level, ok := severityFromText(text); ok {
			return level, -1
		}
	}

	for _, key := range []string{"cvss_score", "score"} {
		if score, ok := databaseFloat(vuln, key); ok {
			return plugin.SeverityFromScore(score), score
		}
	}

	return plugin.SeverityMedium, -1
}

// scoreFromVector extracts a numeric score from a CVSS v3 vector string.
// Some databases append the score as a trailing vector segment; that value
// wins when present. Otherwise the base score is computed from the vector,
// with an approximate impact-based fallback for vectors the parser rejects.
func scoreFromVector(vector string) (float64, bool) {
	if !strings.HasPrefix(vector, "CVSS:3") {
		return 0, false
	}
	segments := strings.Split(vector, "/")
	if last := segments[len(segments)-1]; !strings.Contains(last, ":") {
		if score, err := strconv.ParseFloat(last, 64); err == nil && score >= 0 && score <= 10 {
			return score, true
		}
		vector = strings.Join(segments[:len(segments)-1], "/")
	}

	if strings.HasPrefix(vector, "CVSS:3.1/") {
		if vec, err := gocvss31.ParseVector(vector); err == nil {
			return vec.BaseScore(), true
		}
	}
	if strings.HasPrefix(vector, "CVSS:3.0/") {
		if vec, err := gocvss30.ParseVector(vector); err == nil {
			return vec.BaseScore(), true
		}
	}
	return impactHeuristic(vector)
}

// impactHeuristic approximates a score from the confidentiality, integrity
// and availability impact letters plus the scope flag. It is a documented
// best-effort fallback that ignores exploitability sub-metrics; the explicit
// numeric score is always preferred when present.
func impactHeuristic(vector string) (float64, bool) {
	score := 0.0
	matched := false
	for _, segment := range strings.Split(vector, "/") {
		metric, value, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		switch metric {
		case "C", "I", "A":
			matched = true
			switch value {
			case "H":
				score += 3.0
			case "L":
				score += 1.0
			}
		case "S":
			if value == "C" {
				score += 1.0
			}
		}
	}
	if !matched {
		return 0, false
	}
	return min(score, 10.0), true
}

// severityFromText maps a database-specific textual severity onto the
// canonical scale.
func severityFromText(text string) (plugin.Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "critical":
		return plugin.SeverityCritical, true
	case "high":
		return plugin.SeverityHigh, true
	case "medium", "moderate":
		return plugin.SeverityMedium, true
	case "low":
		return plugin.SeverityLow, true
	case "info", "informational", "none":
		return plugin.SeverityInfo, true
	}
	return plugin.SeverityUnknown, false
}

func databaseString(vuln *Vulnerability, key string) (string, bool) {
	value, ok := vuln.DatabaseSpecific[key]
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok && text != ""
}

func databaseFloat(vuln *Vulnerability, key string) (float64, bool) {
	value, ok := vuln.DatabaseSpecific[key]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		score, err := strconv.ParseFloat(v, 64)
		return score, err == nil
	}
	return 0, false
}
