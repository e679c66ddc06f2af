package util

import "errors"

// Not-found and validation failures stay distinguishable from storage
// errors; controllers map them to user-facing messages with errors.Is.
var (
	ErrEmailNotFound     = errors.New("email not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidRating     = errors.New("feedback rating must be between 1 and 5")
	ErrQueryNotFound     = errors.New("query not found")
)
