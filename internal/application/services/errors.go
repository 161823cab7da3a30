package services

import "errors"

var (
	ErrComponentNotFound  = errors.New("component not found")
	ErrComponentExists    = errors.New("component already exists")
	ErrInvalidComponent   = errors.New("invalid component")
	ErrSessionNotFound    = errors.New("inspector session not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
