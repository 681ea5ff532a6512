package service

import (
	"errors"
)

var (
	ErrInsufficientTokens = errors.New("Insufficient tokens")
	ErrInvalidSignature   = errors.New("Invalid payment signature")
	ErrOrderNotFound      = errors.New("Payment not found")
	ErrAlreadyProcessed   = errors.New("Payment already processed")
	ErrUnknownPackage     = errors.New("Invalid package")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

// ValidationError reports bad client input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
