package auth

import "errors"

var (
	// Token exchange failures. Each carries its own user-facing message;
	// none are retried automatically.
	NetworkErr    = errors.New("could not reach the authentication server")
	AuthServerErr = errors.New("the authentication server rejected the sign-in")
	DecodeErr     = errors.New("unexpected response from the authentication server")

	// Callback anomalies. These reset the flow silently rather than
	// surfacing an error screen.
	StateMismatchErr     = errors.New("oauth state mismatch")
	MissingSavedStateErr = errors.New("no saved oauth state")
)
