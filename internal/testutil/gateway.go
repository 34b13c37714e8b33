package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/transport"
)

// Call is one request seen by a FakeGateway. Body is the JSON that would
// have been sent.
type Call struct {
	Endpoint  string
	CSRFToken string
	Body      json.RawMessage
}

// FakeGateway is a scripted transport.Gateway. With Fail set it behaves like
// an unreachable server: it raises the connectivity toast on Notifier and
// returns transport.ErrUnreachable.
type FakeGateway struct {
	mu       sync.Mutex
	Status   int
	Reply    string
	Fail     bool
	Notifier notify.Notifier
	calls    []Call

	// OnPost runs inside PostJSON before the response is returned.
	OnPost func()
}

func (g *FakeGateway) PostJSON(_ context.Context, endpoint, csrfToken string, payload any) (*transport.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transport.ErrEncode, err)
	}
	g.mu.Lock()
	g.calls = append(g.calls, Call{Endpoint: endpoint, CSRFToken: csrfToken, Body: body})
	hook := g.OnPost
	g.mu.Unlock()

	if hook != nil {
		hook()
	}
	if g.Fail {
		if g.Notifier != nil {
			notify.Error(g.Notifier, transport.TitleClientError, transport.MessageClientError)
		}
		return nil, fmt.Errorf("%w: connection refused", transport.ErrUnreachable)
	}
	status := g.Status
	if status == 0 {
		status = 200
	}
	return &transport.Response{StatusCode: status, Body: []byte(g.Reply)}, nil
}

func (g *FakeGateway) GetJSON(_ context.Context, endpoint string, out any) (*transport.Response, error) {
	if g.Fail {
		return nil, transport.ErrUnreachable
	}
	if out != nil && g.Reply != "" {
		if err := json.Unmarshal([]byte(g.Reply), out); err != nil {
			return nil, fmt.Errorf("%w: %v", transport.ErrDecode, err)
		}
	}
	return &transport.Response{StatusCode: 200, Body: []byte(g.Reply)}, nil
}

// Calls returns the recorded POSTs.
func (g *FakeGateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// LastBody decodes the body of the last POST into out.
func (g *FakeGateway) LastBody(out any) error {
	calls := g.Calls()
	if len(calls) == 0 {
		return fmt.Errorf("no calls recorded")
	}
	return json.Unmarshal(calls[len(calls)-1].Body, out)
}
