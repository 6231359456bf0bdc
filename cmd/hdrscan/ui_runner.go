package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hdrscan/internal/driver"
	"hdrscan/internal/source"
	"hdrscan/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.DirResult
	err     error
}

// runScanDirWithUI runs the batch scan in the background while Bubble
// Tea renders its events; the event channel closing ends the program.
func runScanDirWithUI(ctx context.Context, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.DirResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		o := opts
		o.Events = events
		fs, results, err := driver.ScanDir(ctx, dir, o)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("scanning "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the program can quit before the scan is done (ctrl+c); with no
	// reader left on events, workers would block on a full buffer, so
	// cancel to unblock their sends before waiting for the outcome
	cancel()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
