package session

import "errors"

var (
	ErrLoginFailed     = errors.New("login rejected by backend")
	ErrLogoutFailed    = errors.New("logout rejected by backend")
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrInvalidSession  = errors.New("stored session failed integrity check")
	ErrMissingEmail    = errors.New("email is required")
)
