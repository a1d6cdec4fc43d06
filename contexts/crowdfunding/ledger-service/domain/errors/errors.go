package errors

import "errors"

// These never leave the ledger as errors. Use cases turn them into the
// false / zero results that callers see.
var (
	ErrUserAlreadyRegistered = errors.New("user already registered")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrCampaignClosed        = errors.New("campaign is closed")
	ErrRaisedOverflow        = errors.New("contribution would overflow raised total")
	ErrCallerRequired        = errors.New("caller identity is required")
)
