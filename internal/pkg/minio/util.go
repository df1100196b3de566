package minio

import (
	"Harbor/internal/api/config"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// 附件访问链接的有效期，客户端持有的 URL 过期后需重新拉取消息
const presignExpiry = 15 * time.Minute

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}
	bucket := MainBucket

	uploadInfo, err := Client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}
	bucket := MainBucket

	err := Client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// ResolveURL 把对象引用换成可访问的链接
// UsePublicLink 开启时直接拼公共地址，否则返回限时的预签名地址
func ResolveURL(ctx context.Context, objectName string) string {
	if objectName == "" {
		return ""
	}

	cfg := config.Cfg.MinIO
	if cfg.UsePublicLink {
		return GetPublicURL(objectName)
	}

	signed, err := Client.PresignedGetObject(ctx, MainBucket, objectName, presignExpiry, url.Values{})
	if err != nil {
		log.WarnContext(ctx, "presign object failed, fallback to public url", "object", objectName, "err", err)
		return GetPublicURL(objectName)
	}
	return signed.String()
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	endpoint := cfg.ExternalEndpoint
	if endpoint == "" {
		endpoint = cfg.InternalEndpoint
	}

	protocol := "http"
	if cfg.InternalUseSSL || cfg.ExternalEndpoint != "" {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, MainBucket, objectName)
}
