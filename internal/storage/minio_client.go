package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"socialnet/internal/apperror"
	"socialnet/internal/config"
)

// resourceTypeAuto tells the store to infer the resource kind from the content.
const resourceTypeAuto = "auto"

var allowedMediaTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"video/mp4",
	"video/webm",
	"video/ogg",
}

// MediaStore uploads post media and removes it again by URL.
type MediaStore interface {
	Store(ctx context.Context, localPath string) (*MediaRef, error)
	Discard(ctx context.Context, mediaURL string) bool
}

// MediaReader streams stored media back to clients.
type MediaReader interface {
	Open(ctx context.Context, publicID string) (io.ReadCloser, minio.ObjectInfo, error)
}

// objectAPI is the subset of *minio.Client the adapter relies on.
type objectAPI interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

type MinIOClient struct {
	client objectAPI
	bucket string
	media  config.Media
	now    func() time.Time
}

func NewMinIOClient(ctx context.Context, cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinIO.BucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinIO.BucketName, err)
		}
		log.Printf("Created MinIO bucket %s", cfg.MinIO.BucketName)
	}

	return newMinIOClient(client, cfg.MinIO.BucketName, cfg.Media), nil
}

func newMinIOClient(client objectAPI, bucket string, media config.Media) *MinIOClient {
	return &MinIOClient{
		client: client,
		bucket: bucket,
		media:  media,
		now:    time.Now,
	}
}

// Store uploads the file at localPath and always removes it afterwards.
func (m *MinIOClient) Store(ctx context.Context, localPath string) (*MediaRef, error) {
	if localPath == "" {
		return nil, apperror.Validation("media file is required")
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove local upload %s: %v", localPath, err)
		}
	}()

	mtype, err := mimetype.DetectFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedMediaTypes...) {
		return nil, apperror.Validation("unsupported media type %s", mtype.String())
	}

	ext := mtype.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(localPath))
	}

	now := m.now()
	publicID := m.media.Folder + "/" + uuid.New().String()
	if m.media.Folder == "" {
		publicID = uuid.New().String()
	}

	info, err := m.client.FPutObject(ctx, m.bucket, publicID, localPath, minio.PutObjectOptions{
		ContentType: mtype.String(),
		UserMetadata: map[string]string{
			"resource-type": resourceTypeAuto,
			"extension":     ext,
			"uploaded-at":   now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return &MediaRef{
		URL:          BuildURL(m.media.PublicURL, publicID, ext, now),
		PublicID:     publicID,
		ContentType:  mtype.String(),
		ResourceType: resourceTypeAuto,
		Size:         info.Size,
	}, nil
}

// Discard removes the object behind mediaURL. It reports false when the URL
// cannot be resolved, the object is missing or the delete fails.
func (m *MinIOClient) Discard(ctx context.Context, mediaURL string) bool {
	publicID, ok := PublicIDFromURL(mediaURL)
	if !ok {
		log.Printf("Warning: cannot resolve media reference %q", mediaURL)
		return false
	}

	if _, err := m.client.StatObject(ctx, m.bucket, publicID, minio.StatObjectOptions{}); err != nil {
		log.Printf("Warning: media object %s not found: %v", publicID, err)
		return false
	}

	if err := m.client.RemoveObject(ctx, m.bucket, publicID, minio.RemoveObjectOptions{GovernanceBypass: true}); err != nil {
		log.Printf("Warning: failed to remove media object %s: %v", publicID, err)
		return false
	}

	return true
}

func (m *MinIOClient) Open(ctx context.Context, publicID string) (io.ReadCloser, minio.ObjectInfo, error) {
	info, err := m.client.StatObject(ctx, m.bucket, publicID, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, minio.ObjectInfo{}, apperror.ErrNotFound
		}
		return nil, minio.ObjectInfo{}, apperror.Upstream("stat media", err)
	}

	obj, err := m.client.GetObject(ctx, m.bucket, publicID, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, apperror.Upstream("get media", err)
	}

	return obj, info, nil
}
