// Package ui holds the console color themes shared by the CLI, the REPL and
// the terminal explorer. It exposes ANSI escape helpers (ColorRed, ColorReset,
// ...) for plain output and lipgloss colors for the bubbletea views.
package ui
