package model

// CheckinResult carries the interpreted upstream response of one checkin call.
type CheckinResult struct {
	Succeeded bool
	Message   string
}

// Outcome is the final per-account result of one login+checkin attempt.
// Exactly one Outcome is produced per configured Account, in input order,
// and it is never mutated after creation.
type Outcome struct {
	Account   string // Account email. Redacted before it reaches any report.
	Succeeded bool
	Message   string
	Error     string // Empty when no error detail applies.
}
