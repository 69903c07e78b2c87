// Package format holds pure formatting helpers shared by the CLI, the REPL
// and the TUI. Nothing in this package performs I/O.
package format
