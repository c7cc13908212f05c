package config

import "errors"

var (
	ErrInvalidBaseURL  = errors.New("invalid site url")
	ErrInvalidAddr     = errors.New("invalid listen address")
	ErrInvalidTimeout  = errors.New("timeout must be positive")
	ErrInvalidRate     = errors.New("requests per second must not be negative")
	ErrInvalidValue    = errors.New("invalid value")
	ErrInvalidSnapshot = errors.New("failure snapshot ttl must be positive")
)
