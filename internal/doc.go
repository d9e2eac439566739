// Package internal holds supporting code for the schemaorg library
// and its CLI.
//
// The internal tree is organized by responsibility:
// - config: environment configuration and logger construction
// - extract: JSON-LD extraction from HTML documents
// - metrics: Prometheus registry and instrumentation
// - sanitize: HTML sanitization policies used by the builders
//
// Code in internal/ is not meant for external import.
package internal
