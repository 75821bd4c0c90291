// Package common defines sentinel errors shared by the store, codec, service and
// renderer layers of ContactPro. Callers should use errors.Is to match these
// values; concrete errors wrap them with context via fmt.Errorf("...: %w").
package common

import "errors"

var (
	// ErrValidation is returned when a required contact field is missing.
	ErrValidation = errors.New("validation error")

	// ErrParse is returned when an import payload or stored document cannot be decoded.
	ErrParse = errors.New("parse error")

	// ErrNotFound is returned for unknown contact ids and for restore without a backup.
	ErrNotFound = errors.New("not found")

	// ErrImportInProgress rejects an import while another one is still running.
	ErrImportInProgress = errors.New("import already in progress")

	// ErrUnsupportedFormat is returned for export/import formats the codec does not know.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
