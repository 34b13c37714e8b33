package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner draws a bubbles spinner on one terminal line while a backend call
// is in flight. It does not need a running tea.Program.
type Spinner struct {
	w       io.Writer
	style   spinner.Spinner
	message string

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		style:   spinner.Dot,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start draws the first frame and keeps animating until Stop.
func (s *Spinner) Start() {
	s.frame(0)
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.style.FPS)
		defer ticker.Stop()
		for i := 1; ; i++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				s.frame(i)
			}
		}
	}()
}

func (s *Spinner) frame(i int) {
	f := s.style.Frames[i%len(s.style.Frames)]
	fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(f), Dim(s.message))
}

// Stop clears the line and waits for the animation to end. Later calls are
// no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}

// StartSpinner starts a spinner and returns its Stop.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
