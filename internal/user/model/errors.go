package model

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail indicates that the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateUsername indicates that the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials indicates a failed login. It does not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidUsername indicates that the username is empty.
	ErrInvalidUsername = errors.New("username is required")
	// ErrInvalidEmail indicates that the email is empty.
	ErrInvalidEmail = errors.New("email is required")
	// ErrInvalidPassword indicates that the password is empty.
	ErrInvalidPassword = errors.New("password is required")
	// ErrUsernameLength indicates that the trimmed username is outside 3..32 characters.
	ErrUsernameLength = errors.New("username must be 3 to 32 characters")
	// ErrPasswordTooLong indicates a password longer than bcrypt accepts.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

const (
	// MinUsernameLen and MaxUsernameLen bound the username in characters.
	MinUsernameLen = 3
	MaxUsernameLen = 32
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)
