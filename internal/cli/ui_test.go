package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/fibseq/internal/cli/mocks"
	"github.com/agbru/fibseq/internal/sequence"
)

func withSpinner(t *testing.T, s Spinner) {
	t.Helper()
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = original })
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)

	var last string
	var mu sync.Mutex
	gomock.InOrder(
		mockS.EXPECT().Start(),
		mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
			mu.Lock()
			last = s
			mu.Unlock()
		}).MinTimes(1),
		mockS.EXPECT().Stop(),
	)
	withSpinner(t, mockS)

	progressChan := make(chan sequence.ProgressUpdate)
	go func() {
		progressChan <- sequence.ProgressUpdate{GeneratorIndex: 0, Value: 0.5}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(last, "100.0%") {
		t.Errorf("final suffix = %q, want a full bar", last)
	}
}

func TestDisplayProgressZeroGenerators(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	withSpinner(t, mockS)

	progressChan := make(chan sequence.ProgressUpdate, 1)
	progressChan <- sequence.ProgressUpdate{}
	close(progressChan)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" generating")
	rs.Stop()
	if s.Suffix != " generating" {
		t.Errorf("Suffix = %q", s.Suffix)
	}
}

func TestFormatProgressSuffix(t *testing.T) {
	t.Parallel()
	got := FormatProgressSuffix("Generating", 0.5, 0)
	if !strings.HasPrefix(got, " Generating [") || !strings.Contains(got, "50.0%") {
		t.Errorf("FormatProgressSuffix = %q", got)
	}
}
