package models

import "errors"

var (
	ErrInvalidCreds  = errors.New("invalid credentials")
	ErrTokensExpired = errors.New("tokens expired")
	ErrEmailTaken    = errors.New("email already registered")
	ErrCardNotFound  = errors.New("card not found")
	ErrCardExists    = errors.New("card with these last 4 digits already exists")
)
