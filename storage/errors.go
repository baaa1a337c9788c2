package storage

import "errors"

var (
	ErrNotFound    = errors.New("storage: not found")
	ErrInvalidCID  = errors.New("storage: invalid cid")
	ErrCIDMismatch = errors.New("storage: cid mismatch")
	ErrImmutable   = errors.New("storage: immutable artifact mismatch")
	ErrUnsigned    = errors.New("storage: module carries no claims token")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
