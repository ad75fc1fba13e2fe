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

// Package log defines the logging seam of the module. Embedding systems
// replace the default stderr logger via SetLogger; library code only calls
// the package-level functions.
package log

import "log"

// Logger is the leveled, formatted logging interface the module writes to.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

var logger Logger = &DefaultLogger{}

// SetLogger replaces the active logger.
func SetLogger(l Logger) { logger = l }

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Debugf logs a formatted debug message. The default logger drops it unless
// Verbose is set.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// DefaultLogger writes level-prefixed lines to stderr through the standard
// library logger.
type DefaultLogger struct {
	Verbose bool // Whether debug logs should be shown.
}

func (DefaultLogger) Errorf(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}

func (DefaultLogger) Warnf(format string, args ...any) {
	log.Printf("WARN: "+format, args...)
}

func (DefaultLogger) Infof(format string, args ...any) {
	log.Printf("INFO: "+format, args...)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.Verbose {
		log.Printf("DEBUG: "+format, args...)
	}
}
