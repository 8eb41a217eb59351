package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Spinner shows that a request is in flight
type Spinner struct {
	bar  *progressbar.ProgressBar
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewSpinner creates a spinner writing to out
func NewSpinner(out io.Writer, description string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(out),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\r")
		}),
	)
	return &Spinner{bar: bar, stop: make(chan struct{})}
}

// Start animates the spinner until Stop is called
func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				_ = s.bar.Add(1)
			}
		}
	}()
}

// Stop clears the spinner. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		s.wg.Wait()
		_ = s.bar.Finish()
	})
}

// WithSpinner runs fn while a spinner is shown on out
func WithSpinner(ctx context.Context, out io.Writer, description string, fn func(ctx context.Context) error) error {
	s := NewSpinner(out, description)
	s.Start()
	defer s.Stop()
	return fn(ctx)
}
