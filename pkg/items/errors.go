package items

import "errors"

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrInvalidMove    = errors.New("cannot move a folder into itself or a folder below it")
	ErrInvalidSort    = errors.New("invalid sort order")
	ErrEmptyName      = errors.New("name is required")

	// ErrSessionClosed is returned when a request resolves after the session
	// was closed. Its result is discarded.
	ErrSessionClosed = errors.New("items session closed")

	// ErrStaleFetch is returned by a Fetch that was superseded by a later one.
	ErrStaleFetch = errors.New("fetch superseded by a newer fetch")
)
