package apperrors

import (
	"fmt"
	"io"
)

// ColorProvider supplies the escape sequences used to highlight diagnostics.
// It keeps this package free of any dependency on the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleError prints a diagnostic for err and returns the matching exit code.
// A nil error prints nothing and returns ExitSuccess.
func HandleError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Timeout. %v%s\n", colors.Yellow(), err, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user.%s\n", colors.Yellow(), colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
