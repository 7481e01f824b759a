// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shown by the FlowBank
// front end and the mapping from service and validation errors to them.
//
// Keeping every Msg* constant in one place keeps the wording consistent
// across pages.
package app

import (
	"errors"

	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/internal/validators"
)

const (
	// MsgInvalidCredentials is shown for every failed login. It does not
	// reveal whether the email is registered.
	MsgInvalidCredentials = "Invalid email or password. Please try again."

	// MsgEmailAlreadyRegistered is shown when registration hits a taken email.
	MsgEmailAlreadyRegistered = "This email is already registered."

	// MsgSessionExpired is shown on the login page after an inactivity
	// sign-out.
	MsgSessionExpired = "Your session has expired. Please login again."

	// MsgSignInRequired is shown when a protected action runs without a
	// session.
	MsgSignInRequired = "Please sign in to continue."

	// MsgResetUnavailable is shown for both a malformed and an unknown reset
	// email, so the reset page cannot be used to probe for accounts.
	MsgResetUnavailable = "We could not send a reset link. Please check the email address and try again."

	MsgSameAccount       = "Source and destination accounts must be different."
	MsgInvalidAmount     = "Please enter an amount greater than zero."
	MsgInsufficientFunds = "Insufficient funds in the selected account."

	MsgSubmitInProgress = "Please wait, your request is being processed."

	// Registration field messages.
	MsgInvalidFullName     = "Please enter your full name (at least 2 characters)."
	MsgInvalidEmail        = "Please enter a valid email address."
	MsgInvalidAge          = "You must be between 18 and 120 years old."
	MsgInvalidBirthYear    = "Please enter a valid birth year."
	MsgAgeMismatch         = "Age does not match birth year."
	MsgMissingIDType       = "Please select an ID type."
	MsgWeakPassword        = "Password must be at least 8 characters and include uppercase, lowercase, a number and a special character."
	MsgPasswordMismatch    = "Passwords do not match."
	MsgMissingDocument     = "Please upload an ID document."
	MsgUnsupportedDocument = "Only JPG, PNG, or PDF files are allowed."
	MsgDocumentTooLarge    = "File size must be less than 5MB."

	// MsgFixErrors is shown for validation failures without a specific
	// message.
	MsgFixErrors = "Please fix all errors before submitting."

	// MsgRegistrationSucceeded is shown on the login page after registering.
	MsgRegistrationSucceeded = "Registration successful! Please sign in."

	// MsgUnexpected is shown for storage and other internal failures.
	MsgUnexpected = "Something went wrong. Please try again."
)

// messages is checked in order; the first sentinel matched by errors.Is wins.
var messages = []struct {
	err error
	msg string
}{
	{service.ErrAuthenticationFailed, MsgInvalidCredentials},
	{service.ErrDuplicateEmail, MsgEmailAlreadyRegistered},
	{service.ErrSessionExpired, MsgSessionExpired},
	{service.ErrUnauthenticated, MsgSignInRequired},
	{service.ErrResetNotFound, MsgResetUnavailable},
	{service.ErrSameAccount, MsgSameAccount},
	{service.ErrInvalidAmount, MsgInvalidAmount},
	{service.ErrInsufficientFunds, MsgInsufficientFunds},
	{service.ErrSubmitInProgress, MsgSubmitInProgress},
	{validators.ErrInvalidFullName, MsgInvalidFullName},
	{validators.ErrInvalidAge, MsgInvalidAge},
	{validators.ErrInvalidBirthYear, MsgInvalidBirthYear},
	{validators.ErrAgeMismatch, MsgAgeMismatch},
	{validators.ErrMissingIDType, MsgMissingIDType},
	{validators.ErrWeakPassword, MsgWeakPassword},
	{validators.ErrPasswordMismatch, MsgPasswordMismatch},
	{validators.ErrMissingDocument, MsgMissingDocument},
	{validators.ErrUnsupportedDocument, MsgUnsupportedDocument},
	{validators.ErrDocumentTooLarge, MsgDocumentTooLarge},
}

// UserMessage returns the message to show for err. It returns "" for nil.
//
// An invalid email address maps to MsgInvalidEmail except on the reset
// page, which must use ResetMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	switch {
	case errors.Is(err, validators.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, validators.ErrValidation):
		return MsgFixErrors
	}

	return MsgUnexpected
}

// ResetMessage returns the message for a failed reset request. Malformed
// and unknown emails share MsgResetUnavailable.
func ResetMessage(err error) string {
	if errors.Is(err, validators.ErrInvalidEmail) || errors.Is(err, service.ErrResetNotFound) {
		return MsgResetUnavailable
	}
	return UserMessage(err)
}
