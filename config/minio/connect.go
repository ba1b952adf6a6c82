package minio

import (
	"context"
	"fmt"

	"reportctl/config"
	"reportctl/pkg/minio"
)

// Connect creates a MinIO client for the artifact mirror and makes sure the
// bucket exists. The caller owns the client and closes it.
func Connect(ctx context.Context, cfg config.MinIOConfig) (minio.MinIO, error) {
	client, err := minio.NewMinIO(minio.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Region:    cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	if err := client.EnsureBucket(ctx, cfg.Bucket); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to prepare MinIO bucket %s: %w", cfg.Bucket, err)
	}
	return client, nil
}

// HealthCheck checks that MinIO answers and the mirror bucket is still there.
func HealthCheck(ctx context.Context, client minio.MinIO, bucket string) error {
	if client == nil {
		return fmt.Errorf("MinIO client not initialized")
	}
	if err := client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("MinIO health check failed: %w", err)
	}
	ok, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to look up MinIO bucket %s: %w", bucket, err)
	}
	if !ok {
		return fmt.Errorf("MinIO bucket %s does not exist", bucket)
	}
	return nil
}
