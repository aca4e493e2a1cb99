// Package sspanel implements the PanelSession port against an SSPanel-style
// subscription panel.
package sspanel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
	"github.com/sspanel-tools/checkin-bot/internal/domain/port/driven"
)

// The panel rejects requests from unrecognized clients, so every call carries
// a browser user-agent and an Origin matching the panel itself.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/109.0.0.0 Safari/537.36"

// retSuccess is the status flag the panel returns for a successful call.
const retSuccess = 1

// defaultCheckinMessage is used when the panel omits msg from its response.
const defaultCheckinMessage = "checkin completed"

// alreadyCheckedIn lists the upstream wordings meaning the daily checkin was
// already claimed. The panel reports them under a failure flag, but an
// already-completed checkin is not a failure. Matched verbatim against
// observed panel responses; not generalized.
var alreadyCheckedIn = []string{"已经签到", "already checked in"}

// Compile-time interface satisfaction checks.
var (
	_ driven.PanelSession   = (*Session)(nil)
	_ driven.SessionFactory = (*Factory)(nil)
)

// Factory creates fresh sessions against one panel base URL.
type Factory struct {
	baseURL string
	timeout time.Duration
}

// NewFactory creates a session factory for the given panel base URL.
// A trailing slash on the URL is tolerated.
func NewFactory(baseURL string) *Factory {
	return &Factory{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
	}
}

// NewSession returns a session backed by a client with its own cookie jar.
// Sessions must not be reused across accounts: the cookies set by one
// account's login would leak into the next account's checkin.
func (f *Factory) NewSession() driven.PanelSession {
	client := resty.New().
		SetBaseURL(f.baseURL).
		SetTimeout(f.timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Origin", f.baseURL)

	return &Session{client: client}
}

// Session is a single authenticated panel session. Authenticate establishes
// the cookie state that Checkin relies on.
type Session struct {
	client *resty.Client
}

// panelResponse is the JSON envelope the panel returns on both endpoints.
type panelResponse struct {
	Ret int    `json:"ret"`
	Msg string `json:"msg"`
}

// Authenticate posts the login form to /auth/login and reports whether the
// panel accepted the credentials. Transport failures, non-2xx statuses and
// unparseable bodies all degrade to false with a logged diagnostic.
func (s *Session) Authenticate(ctx context.Context, account model.Account) bool {
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"email":  account.Email,
			"passwd": account.Password,
		}).
		Post("/auth/login")
	if err != nil {
		slog.Warn("login request failed", "error", err)
		return false
	}
	if resp.IsError() {
		slog.Warn("login rejected", "status", resp.StatusCode())
		return false
	}

	var body panelResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		slog.Warn("login response not parseable", "error", err)
		return false
	}

	return body.Ret == retSuccess
}

// Checkin issues a bodyless POST to /user/checkin on the session established
// by Authenticate. Unlike Authenticate, transport and parse failures are
// returned as errors so the caller can attach the detail to the account's
// outcome. The upstream message is carried verbatim.
func (s *Session) Checkin(ctx context.Context) (model.CheckinResult, error) {
	resp, err := s.client.R().SetContext(ctx).Post("/user/checkin")
	if err != nil {
		return model.CheckinResult{}, fmt.Errorf("checkin request: %w", err)
	}
	if resp.IsError() {
		return model.CheckinResult{}, fmt.Errorf("checkin returned status %d", resp.StatusCode())
	}

	var body panelResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return model.CheckinResult{}, fmt.Errorf("parse checkin response: %w", err)
	}

	message := body.Msg
	if message == "" {
		message = defaultCheckinMessage
	}

	succeeded := body.Ret == retSuccess
	if !succeeded && isAlreadyCheckedIn(message) {
		succeeded = true
	}

	return model.CheckinResult{Succeeded: succeeded, Message: message}, nil
}

func isAlreadyCheckedIn(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range alreadyCheckedIn {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
