package service

import "errors"

var (
	// ErrMalformedLifecycle is returned when a contract is missing one or
	// more of the six canonical phases and a full-progress computation was
	// requested. Callers should run the structural migrator first.
	ErrMalformedLifecycle = errors.New("contract is missing required phases")

	// ErrMissingConfig is returned when a required configuration value is
	// absent. This is fatal: nothing is processed.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrContractNotFound is returned by store reads for unknown contract ids.
	ErrContractNotFound = errors.New("contract not found")
)
