package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Unknown username and
	// wrong password both map here so the API never reveals which usernames
	// exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
