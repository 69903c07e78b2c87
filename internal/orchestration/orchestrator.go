package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/sequence"
)

// ProgressBufferMultiplier sizes the progress channel per generator.
const ProgressBufferMultiplier = 5

// ExecuteGenerations runs every generator concurrently for count and returns
// one result per generator, in input order. A failing generator does not
// cancel the others.
func ExecuteGenerations(ctx context.Context, generators []sequence.Generator, count uint64, progressReporter ProgressReporter, out io.Writer) []GenerationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]GenerationResult, len(generators))
	progressChan := make(chan sequence.ProgressUpdate, len(generators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(generators), out)

	for i, gen := range generators {
		g.Go(func() error {
			start := time.Now()
			seq, err := gen.GenerateTo(ctx, progressChan, i, count)
			results[i] = GenerationResult{
				Name: gen.Name(), Sequence: seq, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, then by
// duration), prints the comparison table and checks that every successful
// generator produced the same terms. It returns ExitErrorMismatch on
// disagreement, the first failure's exit code when nothing succeeded, and
// ExitSuccess otherwise.
func AnalyzeComparisonResults(results []GenerationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *GenerationResult
	var firstErr error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = results[i].Err
			}
			continue
		}
		successCount++
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No generator could complete the sequence.\n")
		return errHandler.HandleError(firstErr, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !res.Sequence.Equal(firstValid.Sequence) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Generators disagree: %s and %s.\n", firstValid.Name, res.Name)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
