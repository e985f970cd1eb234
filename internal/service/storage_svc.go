package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"pharmacy_erp/internal/config"
)

// ==================== 接口定义 ====================

// StoredObject 上传结果，Key 用于删除与签名
type StoredObject struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// StorageProvider 存储提供者接口
type StorageProvider interface {
	// Upload 上传到 folder 目录，文件名由 uuid 生成，仅保留原扩展名
	Upload(ctx context.Context, data []byte, folder, filename, contentType string) (*StoredObject, error)

	// Delete 删除文件
	Delete(ctx context.Context, key string) error

	// GetSignedURL 获取限时访问地址（处方扫描件等私有文件）
	GetSignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// 存储目录
const (
	FolderPrescriptions = "prescriptions"
	FolderProducts      = "products"
	FolderReceipts      = "receipts"
	FolderAttachments   = "attachments"

	MaxUploadSize = 10 << 20
)

// ==================== 工厂方法 ====================

// NewStorageProvider 按配置创建存储提供者
// s3 配置了 Endpoint 时按 S3 兼容存储（MinIO、COS 等）使用 path-style 访问
func NewStorageProvider(cfg config.StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "local", "":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== StorageService ====================

// StorageService 存储服务，校验大小与类型后交给 StorageProvider
type StorageService struct {
	provider StorageProvider
	http     *resty.Client
}

// NewStorageService 创建存储服务
func NewStorageService(cfg config.StorageConfig) (*StorageService, error) {
	provider, err := NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}
	return NewStorageServiceWithProvider(provider), nil
}

// NewStorageServiceWithProvider 使用已有 Provider 创建
func NewStorageServiceWithProvider(provider StorageProvider) *StorageService {
	return &StorageService{
		provider: provider,
		http:     resty.New().SetTimeout(30 * time.Second),
	}
}

// Upload 上传文件
func (s *StorageService) Upload(ctx context.Context, data []byte, folder, filename, contentType string) (*StoredObject, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detectContentType(data)
	}
	return s.provider.Upload(ctx, data, folder, filename, contentType)
}

// UploadImage 仅接受图片
func (s *StorageService) UploadImage(ctx context.Context, data []byte, folder, filename string) (*StoredObject, error) {
	contentType := detectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, contentType)
	}
	return s.Upload(ctx, data, folder, filename, contentType)
}

// UploadDocument 接受图片或 PDF（处方、票据）
func (s *StorageService) UploadDocument(ctx context.Context, data []byte, folder, filename string) (*StoredObject, error) {
	contentType := detectContentType(data)
	if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, contentType)
	}
	return s.Upload(ctx, data, folder, filename, contentType)
}

// UploadFromURL 下载远程图片后上传
func (s *StorageService) UploadFromURL(ctx context.Context, sourceURL, folder string) (*StoredObject, error) {
	resp, err := s.http.R().SetContext(ctx).Get(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("下载失败: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("下载失败: HTTP %d", resp.StatusCode())
	}
	name := "remote.jpg"
	if u, err := url.Parse(sourceURL); err == nil {
		name = path.Base(u.Path)
	}
	return s.UploadImage(ctx, resp.Body(), folder, name)
}

// Delete 删除文件
func (s *StorageService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.provider.Delete(ctx, key)
}

// GetSignedURL 获取签名 URL
func (s *StorageService) GetSignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return s.provider.GetSignedURL(ctx, key, expires)
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	presign   *s3.PresignClient
	bucket    string
	region    string
	endpoint  string
	cdnDomain string
	basePath  string
}

func NewS3Storage(cfg config.StorageConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		presign:   s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		cdnDomain: cfg.CDNDomain,
		basePath:  strings.Trim(cfg.BasePath, "/"),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, folder, filename, contentType string) (*StoredObject, error) {
	key := generateKey(s.basePath, folder, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("上传S3失败: %w", err)
	}

	return &StoredObject{Key: key, URL: s.publicURL(key), ContentType: contentType, Size: len(data)}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) GetSignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *S3Storage) publicURL(key string) string {
	switch {
	case s.cdnDomain != "":
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}

// ==================== 本地存储 ====================

// LocalStorage 写入本地目录，由路由以静态文件方式提供访问
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg config.StorageConfig) (*LocalStorage, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, data []byte, folder, filename, contentType string) (*StoredObject, error) {
	key := generateKey("", folder, filename)
	full := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}
	return &StoredObject{Key: key, URL: s.baseURL + "/" + key, ContentType: contentType, Size: len(data)}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if strings.Contains(key, "..") {
		return fmt.Errorf("%w: 非法路径", ErrInvalidInput)
	}
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStorage) GetSignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return s.baseURL + "/" + key, nil // 本地存储无需签名
}

// Root 本地根目录
func (s *LocalStorage) Root() string {
	return s.basePath
}

// ==================== 工具函数 ====================

// generateKey 生成 [base/]folder/2006/01/02/uuid.ext
func generateKey(base, folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 6 {
		ext = ".bin"
	}
	parts := make([]string, 0, 4)
	if base != "" {
		parts = append(parts, base)
	}
	if folder != "" {
		parts = append(parts, folder)
	}
	parts = append(parts, time.Now().Format("2006/01/02"), uuid.NewString()+ext)
	return strings.Join(parts, "/")
}

func detectContentType(data []byte) string {
	return http.DetectContentType(data)
}

// ==================== 错误定义 ====================

var (
	ErrEmptyFile       = fmt.Errorf("%w: 文件为空", ErrInvalidInput)
	ErrFileTooLarge    = fmt.Errorf("%w: 文件超过 10MB", ErrInvalidInput)
	ErrUnsupportedFile = fmt.Errorf("%w: 不支持的文件类型", ErrInvalidInput)
)
