package domain

import "errors"

var (
	// ErrOriginUnavailable indicates the upstream data provider could not serve the request
	ErrOriginUnavailable = errors.New("origin unavailable")

	// ErrTransformFailure indicates downloaded image bytes could not be decoded or resized
	ErrTransformFailure = errors.New("image transform failed")

	// ErrStorageWriteFailure indicates a blob storage upload did not complete
	ErrStorageWriteFailure = errors.New("storage write failed")

	// ErrLockContention indicates another process holds the materialization lock
	ErrLockContention = errors.New("materialization already in flight")

	// ErrInvalidSubject indicates an unknown kind or a non-positive entity ID
	ErrInvalidSubject = errors.New("invalid subject")
)
