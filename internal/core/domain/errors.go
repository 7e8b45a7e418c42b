package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrAuthorizationExpired = errors.New("authorization expired")
var ErrMalformedResponse = errors.New("malformed remote response")
var ErrCorruptedState = errors.New("corrupted persisted session state")

// ErrKeyNotFound is returned by session storage reads for absent keys.
var ErrKeyNotFound = errors.New("storage key not found")
