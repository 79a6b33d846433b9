package kv

import "errors"

var (
	// ErrDBClosed is returned when operating on a closed store
	ErrDBClosed = errors.New("kv store is closed")

	// ErrKeyNotFound is returned when a key doesn't exist in the store
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnknownBackend is returned for unrecognized backend names
	ErrUnknownBackend = errors.New("unknown kv backend")

	// ErrBatchOperationFailed is returned when a batch operation fails
	ErrBatchOperationFailed = errors.New("batch operation failed")
)
