package config

import "errors"

var (
	// ErrInvalidConfig is returned when a document cannot be parsed.
	ErrInvalidConfig = errors.New("config: invalid document")

	// ErrNotMapping is returned when the document root is not a mapping.
	ErrNotMapping = errors.New("config: document root must be a mapping")
)
