package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrParse        = errors.New("parse error")
	ErrInvalidRange = errors.New("invalid range")
	ErrPersistence  = errors.New("persistence failure")
	ErrUnauthorized = errors.New("unauthorized")
)
