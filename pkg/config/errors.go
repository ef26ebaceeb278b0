package config

import "errors"

var (
	// ErrNilPointer indicates a nil configuration pointer was passed to Load.
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrParsingConfig indicates environment variables could not be parsed
	// into the configuration struct.
	ErrParsingConfig = errors.New("config.parsing_failed")
)
