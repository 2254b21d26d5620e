package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/util"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Folder namespaces within the bucket.
const (
	FolderProducts = "products"
	FolderColors   = "colors"
)

// File is one binary object to upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader writes image files to the object store and hands back their
// stable public URLs. Uploads are staged: the caller writes the product row
// only after every upload has confirmed, and calls Remove on the staged
// URLs if the row write fails.
type Uploader struct {
	client     *minio.Client
	bucket     string
	publicBase string
	logger     *zap.Logger
}

// Config for the object store connection.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	UseSSL        bool
}

// NewUploader creates an object storage client and verifies the bucket.
func NewUploader(cfg Config) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	return &Uploader{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:     util.GetLogger(),
	}, nil
}

// UploadAll writes every file under the folder namespace concurrently and
// returns their public URLs in input order. Any single failure aborts the
// whole batch and removes the objects that did land, so no orphans are
// left behind.
func (u *Uploader) UploadAll(ctx context.Context, folder string, files []File) ([]string, error) {
	urls := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			publicURL, err := u.upload(gctx, folder, f)
			if err != nil {
				return err
			}
			urls[i] = publicURL
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var landed []string
		for _, url := range urls {
			if url != "" {
				landed = append(landed, url)
			}
		}
		u.Remove(context.Background(), landed)
		return nil, err
	}

	return urls, nil
}

func (u *Uploader) upload(ctx context.Context, folder string, f File) (string, error) {
	key := fmt.Sprintf("%s/%s_%s", folder, uuid.New().String(), sanitizeName(f.Name))

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.client.PutObject(ctx, u.bucket, key,
		bytes.NewReader(f.Data), int64(len(f.Data)),
		minio.PutObjectOptions{ContentType: contentType, CacheControl: "max-age=3600"})
	if err != nil {
		util.ImageUploadsFailed.Inc()
		return "", fmt.Errorf("failed to upload %q: %w", f.Name, err)
	}

	util.ImageUploadsTotal.Inc()
	return fmt.Sprintf("%s/%s/%s", u.publicBase, u.bucket, key), nil
}

// Remove deletes previously uploaded objects by their public URLs. Used to
// clean up staged uploads when the row write fails; images dropped on edit
// are left in place. Failures are logged, not returned: a leaked
// object is recoverable, a failed delete must not fail the request.
func (u *Uploader) Remove(ctx context.Context, urls []string) {
	for _, publicURL := range urls {
		key, ok := u.objectKey(publicURL)
		if !ok {
			continue
		}
		if err := u.client.RemoveObject(ctx, u.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			u.logger.Warn("Failed to remove staged object",
				zap.String("key", key),
				zap.Error(err))
		}
	}
}

// objectKey extracts the bucket-relative key from one of our public URLs.
func (u *Uploader) objectKey(publicURL string) (string, bool) {
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}
	prefix := "/" + u.bucket + "/"
	if !strings.HasPrefix(parsed.Path, prefix) {
		return "", false
	}
	return strings.TrimPrefix(parsed.Path, prefix), true
}

func sanitizeName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}
