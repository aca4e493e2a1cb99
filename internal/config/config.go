// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
)

// ErrMalformedConfig reports a credential blob whose lines do not form
// complete email/password pairs.
var ErrMalformedConfig = errors.New("malformed account config")

// Config holds the application configuration loaded from environment variables.
type Config struct {
	BaseURL       string
	Accounts      []model.Account
	OutputPath    string // GITHUB_OUTPUT file; empty selects the legacy stdout fallback.
	HistoryDBPath string // Run-history SQLite path; empty disables history.
}

// Load reads configuration from environment variables and returns a validated
// Config. URL (panel base address) and CONFIG (newline-delimited credential
// blob) are required; GITHUB_OUTPUT and CHECKIN_HISTORY_DB are optional.
func Load() (*Config, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("URL")), "/")
	if baseURL == "" {
		return nil, errors.New("URL environment variable is not set")
	}

	blob := os.Getenv("CONFIG")
	if strings.TrimSpace(blob) == "" {
		return nil, errors.New("CONFIG environment variable is not set")
	}

	accounts, err := ParseAccounts(blob)
	if err != nil {
		return nil, err
	}

	return &Config{
		BaseURL:       baseURL,
		Accounts:      accounts,
		OutputPath:    os.Getenv("GITHUB_OUTPUT"),
		HistoryDBPath: os.Getenv("CHECKIN_HISTORY_DB"),
	}, nil
}

// ParseAccounts parses a newline-delimited credential blob into ordered
// accounts. Lines alternate: email, then that account's password. An empty
// blob is valid and yields no accounts ("nothing configured"); a non-empty
// blob whose line count is odd is malformed and fails with ErrMalformedConfig.
func ParseAccounts(blob string) ([]model.Account, error) {
	trimmed := strings.TrimSpace(blob)
	if trimmed == "" {
		return []model.Account{}, nil
	}

	lines := strings.Split(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n")
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("%w: %d lines, email and password must come in pairs", ErrMalformedConfig, len(lines))
	}

	accounts := make([]model.Account, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		accounts = append(accounts, model.Account{
			Email:    strings.TrimSpace(lines[i]),
			Password: strings.TrimSpace(lines[i+1]),
		})
	}

	return accounts, nil
}
