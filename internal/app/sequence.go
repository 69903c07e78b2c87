package app

import (
	"context"
	"io"

	"github.com/agbru/fibseq/internal/cli"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
)

// runSequence generates the sequence with the configured width, or with
// every width in compare mode, and prints the outcome.
func (a *Application) runSequence(ctx context.Context, out io.Writer) int {
	generators := orchestration.GetGeneratorsToRun(a.Config, a.Factory)
	if len(generators) == 0 {
		return apperrors.HandleError(apperrors.NewConfigError("no generator for width %q", a.Config.Width), a.ErrWriter, cli.CLIColorProvider{})
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(generators, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	memory := metrics.NewMemoryCollector()
	before := memory.Snapshot()
	results := orchestration.ExecuteGenerations(ctx, generators, a.Config.Count, progressReporter, progressOut)
	delta := memory.Snapshot().Since(before)

	for _, res := range results {
		terms := 0
		if res.Sequence != nil {
			terms = len(res.Sequence.Terms)
		}
		a.recorder.ObserveGeneration(res.Name, terms, res.Duration, res.Err)
		if res.Err != nil {
			a.logger.Debug("generation failed", logging.String("width", res.Name), logging.Err(res.Err))
		}
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Separator:  a.Config.Separator,
	}
	code := a.analyzeResultsWithOutput(results, outputCfg, out)
	if code == apperrors.ExitSuccess && a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(delta, out)
	}
	return code
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.GenerationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Quiet mode prints the bare sequence, or only the error on stderr.
	if outputCfg.Quiet {
		if bestResult == nil {
			return apperrors.HandleError(firstError(results), a.ErrWriter, cli.CLIColorProvider{})
		}
		if len(results) > 1 && !allConsistent(results, bestResult) {
			return apperrors.ExitErrorMismatch
		}
		if err := cli.DisplaySequenceWithConfig(out, bestResult.Sequence, bestResult.Duration, bestResult.Name, false, outputCfg); err != nil {
			return apperrors.HandleError(err, a.ErrWriter, cli.CLIColorProvider{})
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		Count:     a.Config.Count,
		Separator: a.Config.Separator,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
	}
	presenter := cli.CLIResultPresenter{}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess && outputCfg.OutputFile != "" {
		if err := saveResult(bestResult, outputCfg, out); err != nil {
			return apperrors.HandleError(err, a.ErrWriter, cli.CLIColorProvider{})
		}
	}
	return exitCode
}

// saveResult writes the sequence to the output file and confirms on out.
func saveResult(res *orchestration.GenerationResult, cfg cli.OutputConfig, out io.Writer) error {
	if err := cli.WriteSequenceToFile(res.Sequence, res.Duration, res.Name, cfg); err != nil {
		return err
	}
	cli.DisplaySaved(out, cfg.OutputFile)
	return nil
}

func findBestResult(results []orchestration.GenerationResult) *orchestration.GenerationResult {
	var bestResult *orchestration.GenerationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func firstError(results []orchestration.GenerationResult) error {
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

func allConsistent(results []orchestration.GenerationResult, reference *orchestration.GenerationResult) bool {
	for _, res := range results {
		if res.Err == nil && !res.Sequence.Equal(reference.Sequence) {
			return false
		}
	}
	return true
}
