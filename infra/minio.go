package infra

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/atlashq/atlas-project-service/config"
)

// storageOpTimeout bounds every put/delete call; the minio client itself has
// no default deadline.
const storageOpTimeout = 30 * time.Second

// ObjectStorage is the narrow surface the file lifecycle needs from the
// content store.
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error
	DeleteObject(ctx context.Context, key string) error
	PresignedGetURL(ctx context.Context, key, downloadName string, expiry time.Duration) (string, error)
}

type MinioClient struct {
	Client   *minio.Client
	Admin    *madmin.AdminClient
	Bucket   string
	Endpoint string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	accessKey := cfg.Minio.AccessKey
	if accessKey == "" {
		panic("MinIO access key is not configured")
	}

	secretKey := cfg.Minio.SecretKey
	if secretKey == "" {
		panic("MinIO secret key is not configured")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	adminClient, err := madmin.New(endpoint, accessKey, secretKey, cfg.Minio.UseSSL)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO admin client: %v", err))
	}

	return &MinioClient{
		Client:   client,
		Admin:    adminClient,
		Bucket:   cfg.BucketName,
		Endpoint: endpoint,
	}
}

// EnsureBucket creates the configured bucket if it doesn't exist.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.Client.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (m *MinioClient) PutObject(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, storageOpTimeout)
	defer cancel()

	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	}
	_, err := m.Client.PutObject(ctx, m.Bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

func (m *MinioClient) DeleteObject(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, storageOpTimeout)
	defer cancel()

	err := m.Client.RemoveObject(ctx, m.Bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// PresignedGetURL issues a time-limited download URL. downloadName, when set,
// becomes the attachment filename the browser sees.
func (m *MinioClient) PresignedGetURL(ctx context.Context, key, downloadName string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	if downloadName != "" {
		reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	}

	presigned, err := m.Client.PresignedGetObject(ctx, m.Bucket, key, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}
	return presigned.String(), nil
}

// Health reports reachability of the storage backend.
func (m *MinioClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, storageOpTimeout)
	defer cancel()

	if _, err := m.Admin.ServerInfo(ctx); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
