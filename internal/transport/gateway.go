// Package transport sends canonical payloads to the marketplace backend.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/notify"
)

const (
	// CSRFHeader carries the anti-forgery token on every POST.
	CSRFHeader = "X-CSRFToken"

	TitleClientError   = "Client Side Error"
	MessageClientError = "We couldn't reach the server. Please check your internet connection and try again."
)

// Response is a completed HTTP exchange, whatever its status.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Reply parses the body as a server reply, tolerating garbage.
func (r *Response) Reply() contract.Reply {
	return contract.ParseReply(r.Body)
}

// Gateway talks to the marketplace backend.
type Gateway interface {
	// PostJSON sends payload to endpoint. Any completed exchange is returned
	// without error, including 4xx and 5xx. A network failure raises the
	// connectivity toast and returns ErrUnreachable.
	PostJSON(ctx context.Context, endpoint, csrfToken string, payload any) (*Response, error)

	// GetJSON fetches endpoint and, for a 2xx reply, decodes the body into out.
	GetJSON(ctx context.Context, endpoint string, out any) (*Response, error)
}

// httpGateway implements Gateway over net/http.
type httpGateway struct {
	cfg      Config
	http     *http.Client
	notifier notify.Notifier
	observer Observer
}

// NewGateway creates a Gateway. Only the dial is bounded by a timeout; the
// caller's context governs the rest of the request.
func NewGateway(cfg Config, notifier notify.Notifier, observer Observer) Gateway {
	notifier = notify.OrDiscard(notifier)
	if observer == nil {
		observer = NoopObserver{}
	}
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = DefaultConfig().DialTimeout
	}
	return &httpGateway{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: dial,
				}).DialContext,
			},
		},
		notifier: notifier,
		observer: observer,
	}
}

func (g *httpGateway) PostJSON(ctx context.Context, endpoint, csrfToken string, payload any) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if csrfToken == "" {
		csrfToken = g.cfg.CSRFToken
	}

	url := g.cfg.URL(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if csrfToken != "" {
		req.Header.Set(CSRFHeader, csrfToken)
	}
	return g.do(req)
}

func (g *httpGateway) GetJSON(ctx context.Context, endpoint string, out any) (*Response, error) {
	url := g.cfg.URL(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.do(req)
	if err != nil {
		return nil, err
	}
	if resp.OK() && out != nil {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return resp, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}
	return resp, nil
}

func (g *httpGateway) do(req *http.Request) (*Response, error) {
	start := time.Now()
	event := CallEvent{Method: req.Method, URL: req.URL.String()}

	httpResp, err := g.http.Do(req)
	if err != nil {
		event.LatencyMs = time.Since(start).Milliseconds()
		event.ErrorCode = errorCode(err)
		g.observer.OnCallComplete(event)
		notify.Error(g.notifier, TitleClientError, MessageClientError)
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		// The status line arrived; a truncated body parses as an empty reply.
		body = nil
	}

	event.StatusCode = httpResp.StatusCode
	event.LatencyMs = time.Since(start).Milliseconds()
	event.Success = httpResp.StatusCode >= 200 && httpResp.StatusCode < 300
	if !event.Success {
		event.ErrorCode = fmt.Sprintf("HTTP_%d", httpResp.StatusCode)
	}
	g.observer.OnCallComplete(event)

	return &Response{StatusCode: httpResp.StatusCode, Body: body}, nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case isConnectionError(err):
		return "UNREACHABLE"
	default:
		return "UNKNOWN"
	}
}
