// Package submit holds what the gig and proposal controllers share: the
// in-flight guard, reply handling and the post-success redirect.
package submit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/alexanderramin/servio/internal/validation"
)

// DefaultRedirectDelay leaves the success toast on screen before navigating.
const DefaultRedirectDelay = 2 * time.Second

const (
	TitleSuccess    = "Action Successful"
	MessageRejected = "Server rejected the request. Please check your input."
)

var (
	// ErrInFlight is returned when a submit is attempted while another one
	// from the same controller has not finished.
	ErrInFlight = errors.New("a submission is already in progress")

	// ErrInvalid indicates local validation failed and nothing was sent.
	ErrInvalid = errors.New("submission failed validation")

	// ErrRejected indicates the server answered with a non-2xx status.
	ErrRejected = errors.New("submission rejected by server")
)

// Status is the terminal state of one submit attempt.
type Status string

const (
	StatusSucceeded   Status = "succeeded"
	StatusInvalid     Status = "invalid"
	StatusRejected    Status = "rejected"
	StatusUnreachable Status = "unreachable"
)

// Outcome describes how a submit attempt ended.
type Outcome struct {
	Status      Status
	StatusCode  int
	Reply       contract.Reply
	RedirectURL string
	Violations  []validation.Violation
}

// Guard is the in-flight flag of a controller.
type Guard struct {
	mu   sync.Mutex
	busy bool
}

// Acquire sets the flag and reports whether it was clear.
func (g *Guard) Acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

func (g *Guard) Release() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// Redirector navigates to the page the server pointed at.
type Redirector interface {
	Redirect(ctx context.Context, url string) error
}

// RedirectFunc adapts a function to Redirector.
type RedirectFunc func(ctx context.Context, url string) error

func (f RedirectFunc) Redirect(ctx context.Context, url string) error { return f(ctx, url) }

// Invalid raises one error toast per violation and returns the outcome.
func Invalid(n notify.Notifier, res validation.Result) (*Outcome, error) {
	for _, v := range res.Errors {
		notify.Error(n, v.Title, v.Message)
	}
	return &Outcome{Status: StatusInvalid, Violations: res.Errors}, ErrInvalid
}

// Sender posts a payload and turns the server reply into toasts.
type Sender struct {
	Gateway        transport.Gateway
	Notifier       notify.Notifier
	Redirector     Redirector
	RedirectDelay  time.Duration
	SuccessMessage string
	RejectTitle    string
}

// Send posts body to endpoint. A transport failure has already been shown
// to the user by the gateway, so it adds no toast of its own.
func (s Sender) Send(ctx context.Context, endpoint, csrfToken string, body any) (*Outcome, error) {
	n := notify.OrDiscard(s.Notifier)

	resp, err := s.Gateway.PostJSON(ctx, endpoint, csrfToken, body)
	if err != nil {
		return &Outcome{Status: StatusUnreachable}, err
	}

	reply := resp.Reply()
	out := &Outcome{StatusCode: resp.StatusCode, Reply: reply}

	if !resp.OK() {
		out.Status = StatusRejected
		msg := firstNonEmpty(reply.Message, MessageRejected)
		title := firstNonEmpty(reply.Error, s.RejectTitle, "Request Failed")
		notify.Error(n, title, msg)
		return out, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	out.Status = StatusSucceeded
	notify.Success(n, firstNonEmpty(reply.Title, TitleSuccess), firstNonEmpty(reply.Message, s.SuccessMessage))

	out.RedirectURL = reply.Target()
	if out.RedirectURL != "" && s.Redirector != nil {
		if err := s.redirect(ctx, out.RedirectURL); err != nil {
			return out, fmt.Errorf("redirecting to %s: %w", out.RedirectURL, err)
		}
	}
	return out, nil
}

func (s Sender) redirect(ctx context.Context, url string) error {
	if s.RedirectDelay > 0 {
		t := time.NewTimer(s.RedirectDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.Redirector.Redirect(ctx, url)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
