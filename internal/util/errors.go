package util

import "errors"

var (
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrMalformedSubmission  = errors.New("submission does not match quiz questions")
)
