package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sspanel-tools/checkin-bot/internal/application"
	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
	"github.com/sspanel-tools/checkin-bot/internal/domain/port/driven"
)

// fakeSession scripts the behavior of one panel session.
type fakeSession struct {
	authOK       bool
	result       model.CheckinResult
	checkinErr   error
	authCalls    int
	checkinCalls int
}

func (f *fakeSession) Authenticate(_ context.Context, _ model.Account) bool {
	f.authCalls++
	return f.authOK
}

func (f *fakeSession) Checkin(_ context.Context) (model.CheckinResult, error) {
	f.checkinCalls++
	if f.checkinErr != nil {
		return model.CheckinResult{}, f.checkinErr
	}
	return f.result, nil
}

// fakeFactory hands out one scripted session per NewSession call.
type fakeFactory struct {
	sessions []*fakeSession
	next     int
}

func (f *fakeFactory) NewSession() driven.PanelSession {
	s := f.sessions[f.next]
	f.next++
	return s
}

var _ driven.SessionFactory = (*fakeFactory)(nil)

func TestRun_EmptyAccounts(t *testing.T) {
	svc := application.NewCheckinService(&fakeFactory{})

	outcomes := svc.Run(context.Background(), nil)

	assert.Empty(t, outcomes)
}

func TestRun_SuccessfulAccount(t *testing.T) {
	factory := &fakeFactory{sessions: []*fakeSession{
		{authOK: true, result: model.CheckinResult{Succeeded: true, Message: "got 100MB"}},
	}}
	svc := application.NewCheckinService(factory)

	outcomes := svc.Run(context.Background(), []model.Account{{Email: "a@example.com", Password: "pw"}})

	require.Len(t, outcomes, 1)
	assert.Equal(t, "a@example.com", outcomes[0].Account)
	assert.True(t, outcomes[0].Succeeded)
	assert.Equal(t, "got 100MB", outcomes[0].Message)
	assert.Empty(t, outcomes[0].Error)
}

func TestRun_AuthFailureSkipsCheckin(t *testing.T) {
	session := &fakeSession{authOK: false}
	svc := application.NewCheckinService(&fakeFactory{sessions: []*fakeSession{session}})

	outcomes := svc.Run(context.Background(), []model.Account{{Email: "a@example.com"}})

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Succeeded)
	assert.Equal(t, "login failed", outcomes[0].Message)
	assert.Equal(t, "authentication failed", outcomes[0].Error)
	assert.Equal(t, 0, session.checkinCalls)
}

func TestRun_CheckinErrorIsContained(t *testing.T) {
	svc := application.NewCheckinService(&fakeFactory{sessions: []*fakeSession{
		{authOK: true, checkinErr: errors.New("connection reset")},
	}})

	outcomes := svc.Run(context.Background(), []model.Account{{Email: "a@example.com"}})

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Succeeded)
	assert.Equal(t, "checkin failed", outcomes[0].Message)
	assert.Equal(t, "connection reset", outcomes[0].Error)
}

// A failing account must not block or alter the processing of later accounts.
func TestRun_FailureDoesNotStopBatch(t *testing.T) {
	factory := &fakeFactory{sessions: []*fakeSession{
		{authOK: false},
		{authOK: true, result: model.CheckinResult{Succeeded: true, Message: "got 50MB"}},
	}}
	svc := application.NewCheckinService(factory)

	accounts := []model.Account{
		{Email: "a@example.com", Password: "pw-a"},
		{Email: "b@example.com", Password: "pw-b"},
	}
	outcomes := svc.Run(context.Background(), accounts)

	require.Len(t, outcomes, 2)
	assert.Equal(t, "a@example.com", outcomes[0].Account)
	assert.False(t, outcomes[0].Succeeded)
	assert.Equal(t, "authentication failed", outcomes[0].Error)
	assert.Equal(t, "b@example.com", outcomes[1].Account)
	assert.True(t, outcomes[1].Succeeded)
	assert.Equal(t, "got 50MB", outcomes[1].Message)
}

// One fresh session per account: cookie isolation depends on it.
func TestRun_FreshSessionPerAccount(t *testing.T) {
	sessions := []*fakeSession{
		{authOK: true, result: model.CheckinResult{Succeeded: true, Message: "ok"}},
		{authOK: true, result: model.CheckinResult{Succeeded: true, Message: "ok"}},
		{authOK: true, result: model.CheckinResult{Succeeded: true, Message: "ok"}},
	}
	factory := &fakeFactory{sessions: sessions}
	svc := application.NewCheckinService(factory)

	accounts := []model.Account{{Email: "a"}, {Email: "b"}, {Email: "c"}}
	outcomes := svc.Run(context.Background(), accounts)

	require.Len(t, outcomes, 3)
	assert.Equal(t, 3, factory.next)
	for _, s := range sessions {
		assert.Equal(t, 1, s.authCalls)
		assert.Equal(t, 1, s.checkinCalls)
	}
}

// The reclassified flag from the session is carried through untouched.
func TestRun_CarriesReclassifiedSuccess(t *testing.T) {
	svc := application.NewCheckinService(&fakeFactory{sessions: []*fakeSession{
		{authOK: true, result: model.CheckinResult{Succeeded: true, Message: "您似乎已经签到过了..."}},
	}})

	outcomes := svc.Run(context.Background(), []model.Account{{Email: "a@example.com"}})

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Succeeded)
	assert.Equal(t, "您似乎已经签到过了...", outcomes[0].Message)
}
