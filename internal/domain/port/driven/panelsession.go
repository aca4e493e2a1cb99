// Package driven defines the driven ports implemented by outbound adapters.
package driven

import (
	"context"

	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
)

// PanelSession is one authenticated session against the panel. Cookie state
// established by Authenticate must remain visible to Checkin, so a session is
// scoped to a single account: obtain a fresh one per account and discard it.
type PanelSession interface {
	// Authenticate logs the account in. Transport failures, non-2xx statuses
	// and unparseable bodies all degrade to false with a logged diagnostic;
	// they are never surfaced as errors.
	Authenticate(ctx context.Context, account model.Account) bool
	// Checkin triggers the daily checkin on the authenticated session.
	Checkin(ctx context.Context) (model.CheckinResult, error)
}

// SessionFactory creates fresh panel sessions. One session per account keeps
// cookies from leaking across accounts.
type SessionFactory interface {
	NewSession() PanelSession
}
