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

// Package main provides the sbomvet CLI: it assesses an SBOM file with the
// configured compliance and security plugins and prints the report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sbomvet "github.com/sbomvet/sbomvet"
	"github.com/sbomvet/sbomvet/config"
	"github.com/sbomvet/sbomvet/log"
	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/plugin/list"
	"github.com/sbomvet/sbomvet/runstore"
	boltstore "github.com/sbomvet/sbomvet/runstore/bolt"
	"github.com/sbomvet/sbomvet/scanner/osvscanner"
)

type cliFlags struct {
	SBOMPath     string
	ConfigPath   string
	Tenant       string
	Plugins      string
	OutputFormat string
	OutputFile   string
	Reassess     string
	Verbose      bool
}

func main() {
	flags := parseFlags()

	if flags.Verbose {
		log.SetLogger(&log.DefaultLogger{Verbose: true})
	}

	if err := run(context.Background(), flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *cliFlags {
	flags := &cliFlags{}

	flag.StringVar(&flags.SBOMPath, "sbom", "", "Path to the SBOM file to assess (required)")
	flag.StringVar(&flags.ConfigPath, "config", "", "Path to the YAML config file")
	flag.StringVar(&flags.Tenant, "tenant", config.DefaultTenant, "Tenant whose plugin enablement to use")
	flag.StringVar(&flags.Plugins, "plugins", "", "Comma-separated plugin names, overriding the config (default: all)")
	flag.StringVar(&flags.OutputFormat, "format", "json", "Output format (json, text)")
	flag.StringVar(&flags.OutputFile, "output", "", "Output file (default: stdout)")
	flag.StringVar(&flags.Reassess, "reassess", "", "Reason for re-running plugins already recorded for this SBOM")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose logging")

	flag.Parse()

	return flags
}

func run(ctx context.Context, flags *cliFlags) error {
	if flags.SBOMPath == "" {
		flag.Usage()
		return fmt.Errorf("-sbom is required")
	}

	cfg := config.Default()
	if flags.ConfigPath != "" {
		loaded, err := config.Load(flags.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	plugins, err := selectPlugins(flags, cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	orch := sbomvet.New()
	orchCfg := &sbomvet.Config{
		Plugins:    plugins,
		Store:      store,
		MaxWorkers: cfg.MaxWorkers,
	}

	artifactID := filepath.Base(flags.SBOMPath)
	var report *sbomvet.AssessmentReport
	if flags.Reassess != "" {
		report, err = orch.EnqueueReassessment(ctx, orchCfg, artifactID, flags.SBOMPath, flags.Reassess)
	} else {
		report, err = orch.Assess(ctx, orchCfg, artifactID, flags.SBOMPath)
	}
	if report == nil {
		return err
	}
	if err != nil {
		log.Errorf("Assessment completed with errors: %v", err)
	}

	return outputReport(report, flags)
}

func selectPlugins(flags *cliFlags, cfg *config.Config) ([]plugin.Plugin, error) {
	names := cfg.PluginsForTenant(flags.Tenant)
	if flags.Plugins != "" {
		names = strings.Split(flags.Plugins, ",")
	}

	var plugins []plugin.Plugin
	var err error
	if names == nil {
		plugins = list.All()
	} else {
		plugins, err = list.FromNames(names)
		if err != nil {
			return nil, err
		}
	}

	// Apply the scanner settings from the config to any scanner instance.
	for i, p := range plugins {
		if p.Metadata().Name == osvscanner.Name {
			plugins[i] = osvscanner.NewWithConfig(cfg.Scanner.Binary, cfg.Scanner.Timeout.Std())
		}
	}
	return plugins, nil
}

func openStore(cfg *config.Config) (runstore.Store, func(), error) {
	if cfg.RunStorePath == "" {
		return runstore.NewMemory(), func() {}, nil
	}
	store, err := boltstore.Open(cfg.RunStorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening run store: %w", err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Errorf("Closing run store: %v", err)
		}
	}, nil
}

func outputReport(report *sbomvet.AssessmentReport, flags *cliFlags) error {
	var output []byte
	var err error

	switch strings.ToLower(flags.OutputFormat) {
	case "json":
		output, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		output = append(output, '\n')
	case "text":
		output = []byte(formatTextReport(report))
	default:
		return fmt.Errorf("unsupported output format: %s", flags.OutputFormat)
	}

	if flags.OutputFile != "" {
		return os.WriteFile(flags.OutputFile, output, 0644)
	}
	fmt.Print(string(output))
	return nil
}

func formatTextReport(report *sbomvet.AssessmentReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Artifact: %s\n", report.ArtifactID))
	sb.WriteString(fmt.Sprintf("Start Time: %s\n", report.StartTime.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("End Time: %s\n", report.EndTime.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Plugins Run: %d\n\n", len(report.Results)))

	for _, result := range report.Results {
		sb.WriteString(fmt.Sprintf("=== %s (%s) ===\n", result.PluginName, result.Category))
		sb.WriteString(fmt.Sprintf("  pass=%d fail=%d warning=%d error=%d\n",
			result.Summary.PassCount, result.Summary.FailCount,
			result.Summary.WarningCount, result.Summary.ErrorCount))
		for _, f := range result.Findings {
			status := string(f.Status)
			if status == "" {
				status = string(f.Severity)
			}
			sb.WriteString(fmt.Sprintf("  [%s] %s: %s\n", status, f.ID, f.Title))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
