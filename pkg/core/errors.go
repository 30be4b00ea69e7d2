package core

import "errors"

// Common errors.
var (
	ErrEmptyContent          = errors.New("note content is empty")
	ErrTitleTooLong          = errors.New("note title is too long")
	ErrNotFound              = errors.New("note not found")
	ErrCorruptState          = errors.New("persisted notes are corrupt")
	ErrPersistence           = errors.New("failed to persist notes")
	ErrUnsupportedCapability = errors.New("capability is not supported in this environment")
	ErrReadOnly              = errors.New("store is in read-only mode")
)
