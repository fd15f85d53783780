package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the registry matches exactly one of
// these with errors.Is.
var (
	// ErrInvalidArgument is returned for missing, malformed or conflicting input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a referenced project does not exist
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the requester may not act on a project
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIOFailure is returned when the snapshot cannot be read or written
	ErrIOFailure = errors.New("snapshot i/o failure")

	// ErrCorruptSnapshot is returned when a stored snapshot cannot be decoded
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// Project-related errors
var (
	ErrMissingValues    = fmt.Errorf("%w: one or more required values missing", ErrInvalidArgument)
	ErrCreatorIsMember  = fmt.Errorf("%w: creator cannot be own team member", ErrInvalidArgument)
	ErrDuplicateProject = fmt.Errorf("%w: duplicate project name for this creator", ErrInvalidArgument)
	ErrEmptyID          = fmt.Errorf("%w: empty id", ErrInvalidArgument)

	ErrProjectNotFound = fmt.Errorf("%w: project does not exist", ErrNotFound)

	ErrNoAccess   = fmt.Errorf("%w: no access", ErrPermissionDenied)
	ErrNotCreator = fmt.Errorf("%w: only the creator can delete a project", ErrPermissionDenied)
)
