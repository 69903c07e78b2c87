package cli

import (
	"testing"

	"github.com/agbru/fibseq/internal/ui"
)

// noColor disables escape codes for the duration of a test so output can
// be matched literally.
func noColor(t *testing.T) {
	t.Helper()
	saved := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(saved) })
}
