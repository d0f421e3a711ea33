package service

import "github.com/martijn/skyboard/internal/core/domain"

const invalidCredentialsReason = "invalid username or password"

// invalidCredentials hides whether the username or the password was wrong.
func invalidCredentials(cause error) error {
	return &domain.AuthError{Reason: invalidCredentialsReason, Err: cause}
}

func unauthenticated(cause error) error {
	return &domain.AuthError{Reason: "not authenticated", Err: cause}
}
