package model

import "errors"

// Typed failures returned by core operations. The API layer is the only
// place these are translated into user-facing responses.
var (
	// ErrNotFound is returned when a user, folder or file does not exist,
	// or is not visible to the requester.
	ErrNotFound = errors.New("not found")
	// ErrQuotaExceeded is returned when a personal upload would push a
	// user's usage past their storage limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrFileTooLarge is returned when an upload exceeds the global
	// maximum file size.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrPermissionDenied is returned when the requester is not authorized
	// for the target folder or file.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidMembership is returned when a folder member set is empty,
	// contains the owner, contains duplicates or unknown users, or exceeds
	// the configured maximum.
	ErrInvalidMembership = errors.New("invalid folder membership")
	// ErrInvalidName is returned for empty or malformed names.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidSize is returned when a caller passes a negative byte
	// count to a quota operation.
	ErrInvalidSize = errors.New("invalid size")
	// ErrStorageIO is returned when the durable byte store or the metadata
	// store fails mid-operation. Any quota reservation already taken has
	// been released by the time this error propagates.
	ErrStorageIO = errors.New("storage i/o failure")
	// ErrUserExists is returned when a username is already taken.
	ErrUserExists = errors.New("username already taken")
	// ErrUserLimit is returned when the configured maximum number of
	// users has been reached.
	ErrUserLimit = errors.New("maximum number of users reached")
)
