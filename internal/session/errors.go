package session

import "errors"

var (
	ErrSessionExists   = errors.New("session_exists")
	ErrSessionNotFound = errors.New("session_not_found")
	ErrNotYourSession  = errors.New("not_your_session")
)
