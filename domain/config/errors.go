package config

import "errors"

// Domain errors for configuration operations.
var (
	// ErrConfigNotFound indicates the definition file was not found.
	ErrConfigNotFound = errors.New("definition file not found")

	// ErrInvalidFormat indicates the document could not be parsed.
	ErrInvalidFormat = errors.New("invalid definition format")

	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported definition format")

	// ErrValidationFailed indicates document validation failed.
	ErrValidationFailed = errors.New("definition validation failed")

	// ErrEnvExpansionFailed indicates environment variable expansion failed.
	ErrEnvExpansionFailed = errors.New("environment variable expansion failed")

	// ErrMissingEnvVar indicates a required environment variable is not set.
	ErrMissingEnvVar = errors.New("required environment variable not set")

	// ErrBuildFailed indicates building automata from a document failed.
	ErrBuildFailed = errors.New("failed to build automata from definition")

	// ErrSchemaGenerationFailed indicates JSON schema generation failed.
	ErrSchemaGenerationFailed = errors.New("failed to generate JSON schema")
)
