package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid product id")
	ErrUpstream  = errors.New("catalog upstream error")
)
