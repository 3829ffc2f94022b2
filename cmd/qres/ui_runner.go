package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"qres/internal/driver"
	"qres/internal/ui"
)

type resolveOutcome struct {
	result *driver.Result
	err    error
}

// runResolveWithUI runs req while a progress view consumes its events.
func runResolveWithUI(ctx context.Context, title string, req driver.Request) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan resolveOutcome, 1)

	go func() {
		req.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.ResolveUnits(ctx, req)
		outcomeCh <- resolveOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после ctrl+c модель больше не читает канал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
