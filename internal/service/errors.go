package service

import "errors"

// Sentinel errors handlers translate into HTTP status codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrOrderFinal         = errors.New("order already in a final status")
	ErrRecordProtected    = errors.New("auto-synced record cannot be deleted directly")
	ErrAIUnavailable      = errors.New("recipe generation is temporarily unavailable")
)
