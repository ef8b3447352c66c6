package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// spinnerFrames rise and fall like slices sliding back into place.
var spinnerFrames = []string{"▁", "▃", "▄", "▅", "▆", "▇", "█", "▇", "▆", "▅", "▄", "▃"}

const spinnerInterval = 80 * time.Millisecond

// Spinner shows a progress line with elapsed time on stderr until it is
// stopped or its context ends.
type Spinner struct {
	w       io.Writer
	message string
	ctx     context.Context

	stop      chan struct{}
	finished  chan struct{}
	stopOnce  sync.Once
	started   atomic.Bool
	cancelled atomic.Bool

	mu    sync.Mutex
	width int // printed width of the last line
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		w:        os.Stderr,
		message:  message,
		ctx:      ctx,
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start draws frames until Stop or the context ends.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	start := time.Now()
	go func() {
		defer close(s.finished)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.cancelled.Store(true)
				s.clearLine()
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.draw(spinnerLine(i, s.message, time.Since(start)))
			}
		}
	}()
}

// spinnerLine renders frame i of the spinner followed by the message and
// the elapsed whole seconds.
func spinnerLine(i int, message string, elapsed time.Duration) string {
	frame := spinnerFrames[i%len(spinnerFrames)]
	return styleIconSpinner.Render(frame) + " " + StyleDim.Render(fmt.Sprintf("%s %ds", message, int(elapsed.Seconds())))
}

func (s *Spinner) draw(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\r"+line)
	s.width = lipgloss.Width(line)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%*s\r", s.width, "")
		s.width = 0
	}
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.started.Load() {
		<-s.finished
	}
	s.clearLine()
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the context ended before Stop.
func (s *Spinner) Cancelled() bool {
	return s.cancelled.Load()
}
