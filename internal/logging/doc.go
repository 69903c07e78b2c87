// Package logging provides a unified logging interface for fibseq.
// It abstracts the underlying logging implementation, allowing consistent logging
// across the generator, the accessor and the CLI while supporting multiple backends.
package logging
