// Package cli implements the interactive MedXScan client: a REPL that
// composes the storage, auth, analysis and chat services from configuration
// and dispatches user commands to them.
package cli
