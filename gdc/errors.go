package gdc

import "errors"

// Sentinel errors for package gdc.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile = errors.New("expected file, got directory")

	// Input table errors
	ErrMissingColumn   = errors.New("required column missing")
	ErrDuplicateFileID = errors.New("duplicate file id")
	ErrEmptyTable      = errors.New("table has no header row")

	// Option errors
	ErrInvalidAction = errors.New("invalid action, expected none, copy or move")
	ErrInvalidCut    = errors.New("invalid prefix cut specification")

	// Organizer invariants
	ErrMissingMetadata      = errors.New("file has no sample sheet metadata")
	ErrInvalidBucketName    = errors.New("data category or data type is not a plain directory name")
	ErrDuplicateIdentifier  = errors.New("unique identifier is not unique within its bucket")
	ErrDestinationCollision = errors.New("two files share a destination path")
)
