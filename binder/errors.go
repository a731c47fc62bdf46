package binder

import "errors"

// Common binding errors
var (
	ErrInvalidTarget = errors.New("invalid bind target")
	ErrInvalidYAML   = errors.New("invalid YAML document")
	ErrInvalidValue  = errors.New("invalid configuration value")
	ErrInvalidTag    = errors.New("invalid bind tag")
)
