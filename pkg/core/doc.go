// Package core defines the shared language of the sqlclause system.
//
// This package contains:
//   - Dialect data (DialectConfig, QuoteConfig, PlaceholderStyle)
//   - Connector data (AdapterConfig, TargetConfig, Column, TableMetadata, Rows)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
