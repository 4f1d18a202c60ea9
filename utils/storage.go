package utils

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/princinho/pepinterview/config"
	"google.golang.org/api/option"
)

// ObjectStore is where uploaded resumes live.
type ObjectStore interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, objectName string) error
	// ObjectName recovers the key from a URL previously returned by Upload.
	ObjectName(publicURL string) (string, error)
}

// NewObjectStore returns nil, nil when STORAGE_PROVIDER is empty.
func NewObjectStore(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "gcs":
		s, err := NewGCSStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "r2":
		s, err := NewR2Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown STORAGE_PROVIDER %q", cfg.Provider)
}

func ResumeObjectName(userID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("resumes/%s/%d-%s%s", userID, time.Now().UTC().Unix(), uuid.New().String(), ext)
}

type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, cfg config.StorageConfig) (*GCSStore, error) {
	if cfg.GCSBucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		path := cfg.CredentialsFile
		if !filepath.IsAbs(path) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(wd, path)
		}
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, path))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStore{client: client, bucket: cfg.GCSBucket}, nil
}

func (s *GCSStore) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "no-cache"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

func (s *GCSStore) Delete(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	if err := s.client.Bucket(s.bucket).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}
	return nil
}

func (s *GCSStore) ObjectName(raw string) (string, error) {
	return gcsObjectName(s.bucket, raw)
}

func gcsObjectName(bucket, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	host := strings.ToLower(u.Host)
	path := strings.TrimPrefix(u.Path, "/")

	// storage.googleapis.com/<bucket>/<object>
	if host == "storage.googleapis.com" {
		prefix := bucket + "/"
		if !strings.HasPrefix(path, prefix) {
			return "", fmt.Errorf("url bucket mismatch")
		}
		return strings.TrimPrefix(path, prefix), nil
	}

	// <bucket>.storage.googleapis.com/<object>
	if host == strings.ToLower(bucket)+".storage.googleapis.com" {
		if path == "" {
			return "", fmt.Errorf("missing object path")
		}
		return path, nil
	}

	return "", fmt.Errorf("not a gcs public url")
}

// R2Store talks to Cloudflare R2 through its S3-compatible API.
type R2Store struct {
	s3           *s3.Client
	bucket       string
	publicDomain string
}

func NewR2Store(ctx context.Context, cfg config.StorageConfig) (*R2Store, error) {
	if cfg.R2Bucket == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretKey == "" || cfg.R2Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Store{s3: client, bucket: cfg.R2Bucket, publicDomain: cfg.R2PublicDomain}, nil
}

func (s *R2Store) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(objectName),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return s.publicURL(objectName), nil
}

func (s *R2Store) Delete(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}
	return nil
}

func (s *R2Store) ObjectName(raw string) (string, error) {
	return r2ObjectName(s.publicDomain, s.bucket, raw)
}

func (s *R2Store) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicDomain, s.bucket, objectName)
}

// r2ObjectName understands the custom-domain form (<domain>/<bucket>/<object>)
// and falls back to stripping scheme and host for r2.dev URLs.
func r2ObjectName(domain, bucket, raw string) (string, error) {
	if domain != "" && strings.HasPrefix(raw, domain+"/"+bucket+"/") {
		return strings.TrimPrefix(raw, domain+"/"+bucket+"/"), nil
	}

	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(raw, prefix) {
			withoutScheme := strings.TrimPrefix(raw, prefix)
			slash := strings.Index(withoutScheme, "/")
			if slash == -1 || slash == len(withoutScheme)-1 {
				return "", fmt.Errorf("no object path in url")
			}
			return withoutScheme[slash+1:], nil
		}
	}

	return "", fmt.Errorf("not a recognised R2 public url")
}
