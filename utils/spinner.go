package utils

import (
	"fmt"
	"os"
	"time"
)

// spinnerFrames are cycled next to the message while the spinner runs.
const spinnerFrames = `|/-\`

// Spinner renders a rotating activity indicator on stderr.
type Spinner struct {
	done chan struct{}
}

// NewSpinner instantiates a new Spinner struct.
func NewSpinner() *Spinner {
	return &Spinner{}
}

// Start begins redrawing the indicator next to the message.
func (s *Spinner) Start(message string) {
	s.done = make(chan struct{}, 1)

	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s%c%s", message, SuccessColor, frame, DefaultColor)
			}
		}
	}()
}

// Stop halts the indicator and returns the cursor to the line start.
func (s *Spinner) Stop() {
	s.done <- struct{}{}
	fmt.Fprint(os.Stderr, "\r")
}
