package minio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"FundingIntel/backend/go/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewClient 根据配置创建 MinIO 客户端，并列出存储桶作为健康检查。
func NewClient(ctx context.Context, cfg *config.MinIOConfig) (*minio.Client, error) {
	c, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("无法创建 MinIO 客户端: %w", err)
	}
	if _, err := c.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("MinIO 初始化健康检查失败: %w", err)
	}
	return c, nil
}

// DocumentBucket 把用户上传的文档归档到一个存储桶中。
type DocumentBucket struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// NewDocumentBucket 创建归档器，存储桶不存在时自动创建。
func NewDocumentBucket(ctx context.Context, client *minio.Client, bucket string) (*DocumentBucket, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶 '%s' 失败: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建存储桶 '%s' 失败: %w", bucket, err)
		}
	}
	return &DocumentBucket{client: client, bucket: bucket, now: time.Now}, nil
}

// Archive 上传文档并返回对象键。
func (b *DocumentBucket) Archive(ctx context.Context, name string, data []byte, mimeType string) (string, error) {
	key := ObjectKey(b.now(), uuid.NewString(), name)
	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("上传文档到 MinIO 失败: %w", err)
	}
	return key, nil
}

// HealthCheck 检查存储桶是否可访问。
func (b *DocumentBucket) HealthCheck(ctx context.Context) error {
	if _, err := b.client.BucketExists(ctx, b.bucket); err != nil {
		return fmt.Errorf("MinIO 健康检查失败: %w", err)
	}
	return nil
}

// ObjectKey 生成形如 uploads/2024-06-01/<id>-<文件名> 的对象键。
func ObjectKey(at time.Time, id, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "document"
	}
	return path.Join("uploads", at.UTC().Format(time.DateOnly), id+"-"+base)
}
