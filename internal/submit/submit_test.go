package submit

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/testutil"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/alexanderramin/servio/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRedirector struct {
	urls []string
}

func (r *recordingRedirector) Redirect(_ context.Context, url string) error {
	r.urls = append(r.urls, url)
	return nil
}

func TestGuard(t *testing.T) {
	var g Guard
	require.True(t, g.Acquire())
	assert.True(t, g.Busy())
	assert.False(t, g.Acquire())
	g.Release()
	assert.False(t, g.Busy())
	assert.True(t, g.Acquire())
}

func TestInvalid_OneToastPerViolation(t *testing.T) {
	var rec notify.Recorder
	res := validation.Result{Errors: []validation.Violation{
		{Code: validation.CodeTitleTooShort, Title: "Validation Error", Message: "a"},
		{Code: validation.CodeBudgetNotPositive, Title: "Validation Error", Message: "b"},
	}}

	out, err := Invalid(&rec, res)

	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, StatusInvalid, out.Status)
	assert.Len(t, out.Violations, 2)
	assert.Equal(t, 2, rec.Count("Validation Error"))
}

func TestSend_Success(t *testing.T) {
	var rec notify.Recorder
	redir := &recordingRedirector{}
	gw := &testutil.FakeGateway{Status: 201, Reply: `{"message":"Saved","url":"/gigs/abc"}`}
	s := Sender{Gateway: gw, Notifier: &rec, Redirector: redir, SuccessMessage: "default"}

	out, err := s.Send(context.Background(), "/x", "tok", map[string]int{"a": 1})

	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, out.Status)
	assert.Equal(t, "/gigs/abc", out.RedirectURL)
	assert.Equal(t, []string{"/gigs/abc"}, redir.urls)
	toasts := rec.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelSuccess, toasts[0].Level)
	assert.Equal(t, TitleSuccess, toasts[0].Title)
	assert.Equal(t, "Saved", toasts[0].Message)
	calls := gw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "tok", calls[0].CSRFToken)
	assert.JSONEq(t, `{"a":1}`, string(calls[0].Body))
}

func TestSend_SuccessDefaultsAndNoRedirect(t *testing.T) {
	var rec notify.Recorder
	redir := &recordingRedirector{}
	gw := &testutil.FakeGateway{Reply: `{"url":"/gigs/abc","redirect":false}`}
	s := Sender{Gateway: gw, Notifier: &rec, Redirector: redir, SuccessMessage: "Gig successfully saved!"}

	out, err := s.Send(context.Background(), "/x", "", struct{}{})

	require.NoError(t, err)
	assert.Empty(t, out.RedirectURL)
	assert.Empty(t, redir.urls)
	assert.Equal(t, "Gig successfully saved!", rec.Toasts()[0].Message)
}

func TestSend_Rejected(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantTitle string
		wantMsg   string
	}{
		{"server text", `{"message":"Title taken","error":"Duplicate"}`, "Duplicate", "Title taken"},
		{"fallback", `not json`, "Unable to Save", MessageRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec notify.Recorder
			gw := &testutil.FakeGateway{Status: 422, Reply: tt.reply}
			s := Sender{Gateway: gw, Notifier: &rec, RejectTitle: "Unable to Save"}

			out, err := s.Send(context.Background(), "/x", "", struct{}{})

			assert.ErrorIs(t, err, ErrRejected)
			assert.Equal(t, StatusRejected, out.Status)
			assert.Equal(t, 422, out.StatusCode)
			toasts := rec.Toasts()
			require.Len(t, toasts, 1)
			assert.Equal(t, tt.wantTitle, toasts[0].Title)
			assert.Equal(t, tt.wantMsg, toasts[0].Message)
		})
	}
}

func TestSend_UnreachableAddsNoToast(t *testing.T) {
	var rec notify.Recorder
	gw := &testutil.FakeGateway{Fail: true, Notifier: &rec}
	s := Sender{Gateway: gw, Notifier: &rec}

	out, err := s.Send(context.Background(), "/x", "", struct{}{})

	assert.ErrorIs(t, err, transport.ErrUnreachable)
	assert.Equal(t, StatusUnreachable, out.Status)
	assert.Len(t, rec.Toasts(), 1, "only the gateway's connectivity toast")
}

func TestSend_RedirectDelayHonoursContext(t *testing.T) {
	redir := &recordingRedirector{}
	gw := &testutil.FakeGateway{Reply: `{"redirect_url":"/next"}`}
	s := Sender{Gateway: gw, Redirector: redir, RedirectDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := s.Send(ctx, "/x", "", struct{}{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusSucceeded, out.Status)
	assert.Empty(t, redir.urls)
}
