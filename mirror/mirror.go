// Package mirror copies an archive stored in S3-compatible object storage to
// local disk so it can be exported like any other archive.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/AndCook/rover-data-processor/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrUnsafeKey = errors.New("object key escapes destination")

type Mirror struct {
	client *minio.Client
	bucket string
	prefix string
}

type Stats struct {
	Downloaded int
	Skipped    int
	Bytes      int64
}

func New(cfg config.ArchiveConfig) (*Mirror, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	// empty keys sign anonymously, which public archives accept
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &Mirror{client: client, bucket: bucket, prefix: normalizePrefix(cfg.Prefix)}, nil
}

// Sync downloads every object under the prefix into dest. Files already on
// disk with the object's size are left alone.
func (m *Mirror) Sync(ctx context.Context, dest string) (*Stats, error) {
	stats := &Stats{}
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    m.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return stats, obj.Err
		}
		if obj.Key == "" || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		local, err := LocalPath(dest, m.prefix, obj.Key)
		if err != nil {
			return stats, err
		}
		if fi, err := os.Stat(local); err == nil && fi.Size() == obj.Size {
			stats.Skipped++
			continue
		}
		if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
			return stats, err
		}
		if err := m.client.FGetObject(ctx, m.bucket, obj.Key, local, minio.GetObjectOptions{}); err != nil {
			return stats, fmt.Errorf("get %s: %w", obj.Key, err)
		}
		stats.Downloaded++
		stats.Bytes += obj.Size
	}
	return stats, nil
}

// LocalPath maps an object key under prefix to a path inside dest.
func LocalPath(dest, prefix, key string) (string, error) {
	rel := strings.TrimPrefix(key, normalizePrefix(prefix))
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %s", ErrUnsafeKey, key)
		}
	}
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsafeKey, key)
	}
	return filepath.Join(dest, filepath.FromSlash(rel)), nil
}

func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
