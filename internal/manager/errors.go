package manager

import "errors"

// Error variables for manager operations.
//
// ErrNotDirectory is worded so that wrapped errors read
// "<path> is not a valid directory".
var (
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrNotDirectory  = errors.New("is not a valid directory")
	ErrEmptyFilename = errors.New("filename cannot be empty")
)

// Error variables for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrInvalidColorMode   = errors.New("color must be auto, always, or never")
)
