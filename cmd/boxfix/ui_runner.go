package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"boxfix/internal/driver"
	"boxfix/internal/ui"
)

type fixOutcome struct {
	results []driver.Result
	err     error
}

// runFixWithUI runs the driver in the background while a Bubble Tea
// model renders per-file progress from its event stream.
func runFixWithUI(ctx context.Context, title string, paths []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fixOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.FixPaths(ctx, paths, optsCopy)
		outcomeCh <- fixOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
