package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/servio/internal/cli/formatter"
	"github.com/alexanderramin/servio/internal/config"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/reference"
	"github.com/alexanderramin/servio/internal/service"
	"github.com/alexanderramin/servio/internal/submit"
	"github.com/alexanderramin/servio/internal/transport"
)

// ErrNeedInput is returned by commands that would prompt but run without a terminal.
var ErrNeedInput = errors.New("no terminal attached; pass the input as flags or a file")

// StoreOpener opens the draft store described by cfg.
type StoreOpener func(cfg config.Config) (service.DraftService, io.Closer, error)

// App holds what the commands share. Drafts and Gateway may be set up front
// (tests do); otherwise they are built from the resolved configuration.
type App struct {
	Drafts        service.DraftService
	Gateway       transport.Gateway
	OpenStore     StoreOpener
	IsInteractive func() bool
	Now           func() time.Time

	cfgFile  string
	cfg      config.Config
	out      io.Writer
	logger   *slog.Logger
	notifier notify.Notifier
	closer   io.Closer
	refs     *reference.Provider
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// setup runs once per command, after flags and config are resolved.
func (a *App) setup(cfg config.Config, out io.Writer, logger *slog.Logger) {
	a.cfg = cfg
	a.out = out
	a.logger = logger

	var n notify.Notifier = formatter.NewTerminalNotifier(out)
	if !a.interactive() {
		n = notify.Multi{n, notify.NewLogNotifier(logger.With("component", "toast"))}
	}
	a.notifier = n
}

func (a *App) drafts() (service.DraftService, error) {
	if a.Drafts != nil {
		return a.Drafts, nil
	}
	if a.OpenStore == nil {
		return nil, errors.New("no draft store configured")
	}
	svc, closer, err := a.OpenStore(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening draft store: %w", err)
	}
	a.Drafts, a.closer = svc, closer
	return svc, nil
}

func (a *App) gateway() transport.Gateway {
	if a.Gateway == nil {
		a.Gateway = transport.NewGateway(a.cfg.Transport(), a.notifier, a.callObserver())
	}
	return a.Gateway
}

func (a *App) callObserver() transport.Observer {
	if a.cfg.LogCalls {
		return transport.NewLogObserver(a.logger)
	}
	return transport.NoopObserver{}
}

// catalog looks up the taxonomy on a gateway of its own that never toasts.
// Reference data is optional for every command, so a miss only logs.
func (a *App) catalog(ctx context.Context) *reference.Catalog {
	if a.refs == nil {
		gw := transport.NewGateway(a.cfg.Transport(), notify.Discard, a.callObserver())
		a.refs = reference.NewProvider(gw, a.cfg.ReferenceTTL)
	}
	c, err := a.refs.Catalog(ctx)
	if err != nil {
		a.logger.Debug("reference data unavailable", "err", err)
		return nil
	}
	return c
}

func (a *App) redirector() submit.Redirector {
	return submit.RedirectFunc(func(_ context.Context, url string) error {
		fmt.Fprintf(a.out, "%s %s\n", formatter.Dim("→ continue at"), a.cfg.Transport().URL(url))
		return nil
	})
}

// record stores the result of one submit attempt against its draft.
func (a *App) record(ctx context.Context, d *domain.Draft, action string, out *submit.Outcome) error {
	if out == nil {
		return nil
	}
	svc, err := a.drafts()
	if err != nil {
		return err
	}
	sub := &domain.Submission{
		DraftID:     d.ID,
		Action:      action,
		Outcome:     string(out.Status),
		StatusCode:  out.StatusCode,
		Message:     outcomeMessage(out),
		RedirectURL: out.RedirectURL,
		CreatedAt:   a.now().UTC(),
	}
	return svc.RecordSubmission(ctx, sub)
}

func outcomeMessage(out *submit.Outcome) string {
	if len(out.Violations) > 0 {
		return out.Violations[0].Message
	}
	if out.Reply.Message != "" {
		return out.Reply.Message
	}
	return out.Reply.Error
}

func (a *App) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	a.Drafts = nil
	return err
}

// spin shows a spinner on interactive terminals only.
func (a *App) spin(msg string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(a.out, msg)
}
