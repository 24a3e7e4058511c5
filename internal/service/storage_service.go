package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/internal/util"
	"wealth_builder_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 将模块视频等对象键解析为可访问的链接
type StorageProvider interface {
	URL(ctx context.Context, key string) (string, error)
}

// LocalStorageProvider 本地存储，文件由 /uploads 静态路由提供
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) URL(ctx context.Context, key string) (string, error) {
	return "/uploads/" + strings.TrimPrefix(key, "/"), nil
}

// MinioStorageProvider MinIO 存储，返回预签名链接
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) URL(ctx context.Context, key string) (string, error) {
	u, err := p.Client.PresignedGetObject(ctx, p.Config.MinioBucket, key, urlExpiry(p.Config), url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign minio object: %w", err)
	}
	return u.String(), nil
}

// OSSStorageProvider 阿里云 OSS 存储，返回签名链接
type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) URL(ctx context.Context, key string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}
	signed, err := bucket.SignURL(key, oss.HTTPGet, int64(urlExpiry(p.Config).Seconds()))
	if err != nil {
		return "", fmt.Errorf("sign oss object: %w", err)
	}
	return signed, nil
}

func urlExpiry(cfg *config.StorageConfig) time.Duration {
	if cfg.URLExpiryMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(cfg.URLExpiryMinutes) * time.Minute
}

// StorageService 存储服务
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("MinIO storage unavailable, falling back to local", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("OSS storage unavailable, falling back to local", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

// ResolveURL 绝对链接原样返回，对象键交给存储后端生成访问链接
func (s *StorageService) ResolveURL(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	return s.Provider.URL(ctx, ref)
}
