package tracking

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore stores artifact payloads by path.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
}

// minioBlobStore keeps artifact payloads in a MinIO bucket.
type minioBlobStore struct {
	client *minio.Client
	bucket string
}

// NewMinioBlobStore connects to MinIO and ensures the artifact bucket exists.
func NewMinioBlobStore(ctx context.Context, conn MinioConnection) (BlobStore, error) {
	client, err := minio.New(conn.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conn.AccessKeyID, conn.SecretAccessKey, ""),
		Secure: conn.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, conn.BucketName)
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to check bucket %q: %w", conn.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, conn.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("tracking: failed to create bucket %q: %w", conn.BucketName, err)
		}
	}

	return &minioBlobStore{client: client, bucket: conn.BucketName}, nil
}

func (m *minioBlobStore) Put(ctx context.Context, path string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("tracking: failed to store artifact %q: %w", path, err)
	}
	return nil
}

func (m *minioBlobStore) Get(ctx context.Context, path string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to get artifact %q: %w", path, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("tracking: failed to read artifact %q: %w", path, err)
	}
	return data, nil
}
