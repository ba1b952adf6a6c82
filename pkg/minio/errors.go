package minio

import "fmt"

// StorageError is returned by every MinIO operation that fails.
type StorageError struct {
	Code      string
	Message   string
	Operation string
	Cause     error
}

func (e *StorageError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("minio %s: %s", e.Operation, e.Message)
	}
	return "minio: " + e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewInvalidInputError(msg string) *StorageError {
	return &StorageError{Code: ErrCodeInvalidInput, Message: msg}
}

func NewConnectionError(err error) *StorageError {
	return &StorageError{Code: ErrCodeConnection, Message: "connection failed", Cause: err}
}

func NewBucketNotFoundError(bucket string) *StorageError {
	return &StorageError{Code: ErrCodeBucketNotFound, Message: fmt.Sprintf("bucket not found: %s", bucket)}
}
