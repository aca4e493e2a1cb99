// Package model contains the domain types shared across adapters and services.
package model

// Account holds the login credentials for one panel account.
// Immutable once parsed from configuration.
type Account struct {
	Email    string
	Password string
}
