// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a credential record cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyRegistered is returned when an OTP send or a
	// registration targets an email that already has a credential record.
	ErrEmailAlreadyRegistered = errors.New("an account with this email already exists")

	// ErrInvalidCredentials is returned on login with a wrong email or
	// password. Deliberately generic to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidOtp is returned when OTP verification fails. The pending
	// code, if any, is left untouched so the user can retry.
	ErrInvalidOtp = errors.New("invalid or expired verification code")

	// ErrOtpNotFound is returned by OTP repositories when no code is
	// pending for an email.
	ErrOtpNotFound = errors.New("no pending verification code")

	// ErrEmailNotVerified is returned on registration when the email has
	// no consumable verification marker, i.e. no code was ever verified.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrSessionNotFound is returned when a remember-me session cannot be
	// found by its token.
	ErrSessionNotFound = errors.New("session not found")
)
