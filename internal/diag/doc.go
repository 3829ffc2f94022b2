// Package diag defines the diagnostic model shared by the resolver, the
// driver and the CLI.
//
// Diagnostic is the central record: Severity, a stable numeric Code (see
// codes.go), a short Message, the Primary span and optional Notes pointing at
// related locations (for example both opens of an ambiguous name).
//
// Producers emit through a Reporter so they stay decoupled from storage.
// BagReporter collects into a Bag, which supports limits, sorting and
// deduplication. Rendering lives in internal/diagfmt.
package diag
