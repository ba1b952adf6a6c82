package minio

import "time"

const (
	// HTTP transport for MinIO client
	maxIdleConns        = 16
	maxIdleConnsPerHost = 16
	idleConnTimeout     = 90 * time.Second
	disableCompression  = true
)

const (
	// MaxFileSizeBytes is the maximum upload file size (5GB).
	MaxFileSizeBytes = 5 * 1024 * 1024 * 1024
	// DefaultEndpointPort is appended to endpoint if no port.
	DefaultEndpointPort = ":9000"
)

const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeConnection     = "CONNECTION"
	ErrCodePermission     = "PERMISSION"
	ErrCodeBucketNotFound = "BUCKET_NOT_FOUND"
)
