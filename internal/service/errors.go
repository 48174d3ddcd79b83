package service

import "errors"

var (
	ErrForbidden     = errors.New("form belongs to another user")
	ErrNoQuestions   = errors.New("form has no questions to publish")
	ErrNotAccepting  = errors.New("form is not accepting responses")
	ErrInvalidStatus = errors.New("invalid status transition")
)
