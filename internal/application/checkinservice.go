// Package application contains the services driving the checkin workflow.
// Services depend only on port interfaces.
package application

import (
	"context"
	"log/slog"

	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
	"github.com/sspanel-tools/checkin-bot/internal/domain/port/driven"
)

// CheckinService runs the login+checkin cycle for every configured account.
type CheckinService struct {
	sessions driven.SessionFactory
}

// NewCheckinService creates a CheckinService using the given session factory.
func NewCheckinService(sessions driven.SessionFactory) *CheckinService {
	return &CheckinService{sessions: sessions}
}

// Run processes accounts strictly in order and returns one Outcome per
// account, input order preserved. A failure on one account never stops
// processing of the rest: every per-account failure mode is converted into
// that account's Outcome here, so Run itself cannot fail.
func (s *CheckinService) Run(ctx context.Context, accounts []model.Account) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(accounts))

	for i, account := range accounts {
		outcome := s.processAccount(ctx, account)
		slog.Info("account processed",
			"index", i+1,
			"total", len(accounts),
			"succeeded", outcome.Succeeded,
		)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// processAccount runs one full login+checkin cycle on a fresh session.
// The session is discarded afterwards so cookies never cross accounts.
func (s *CheckinService) processAccount(ctx context.Context, account model.Account) model.Outcome {
	session := s.sessions.NewSession()

	if !session.Authenticate(ctx, account) {
		return model.Outcome{
			Account:   account.Email,
			Succeeded: false,
			Message:   "login failed",
			Error:     "authentication failed",
		}
	}

	result, err := session.Checkin(ctx)
	if err != nil {
		return model.Outcome{
			Account:   account.Email,
			Succeeded: false,
			Message:   "checkin failed",
			Error:     err.Error(),
		}
	}

	return model.Outcome{
		Account:   account.Email,
		Succeeded: result.Succeeded,
		Message:   result.Message,
	}
}
