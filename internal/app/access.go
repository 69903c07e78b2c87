package app

import (
	"context"
	"errors"
	"io"

	"github.com/agbru/fibseq/internal/bounded"
	"github.com/agbru/fibseq/internal/cli"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/logging"
)

// runIndex looks up raw in the configured collection.
func (a *Application) runIndex(ctx context.Context, raw string, out io.Writer) int {
	collection, err := a.Config.Collection()
	if err != nil {
		return apperrors.HandleError(apperrors.NewConfigError("invalid --elements: %v", err), a.ErrWriter, cli.CLIColorProvider{})
	}

	attempt := bounded.Resolve(ctx, collection, raw)
	a.recorder.ObserveAccess(attempt.Err)
	a.logger.Debug("index resolved",
		logging.String("raw", attempt.Raw),
		logging.String("state", attempt.State().String()))

	cli.DisplayAccess(out, attempt, a.Config.Verbose)
	if attempt.Err != nil {
		return apperrors.HandleError(attempt.Err, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// runPrompt asks for one index on a.In and looks it up.
func (a *Application) runPrompt(ctx context.Context, out io.Writer) int {
	if !a.Config.Quiet {
		cli.PromptIndex(out)
	}

	raw, err := bounded.ReadIndex(a.In)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = apperrors.WrapError(err, "no index entered")
		}
		return apperrors.HandleError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	return a.runIndex(ctx, raw, out)
}
