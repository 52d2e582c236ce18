package entity

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflicting concurrent write, retry")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("forbidden")
	ErrUnknownKind        = errors.New("unknown catalog kind")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrSelfUnfollow       = errors.New("cannot unfollow yourself")
	ErrNoCast             = errors.New("catalog kind has no cast")
)
