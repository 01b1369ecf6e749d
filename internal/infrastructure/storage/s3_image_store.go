// Package storage guarda imágenes (logos de negocio) en un almacén compatible con S3.
// Funciona con AWS S3, MinIO, DigitalOcean Spaces y Cloudflare R2.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jhoicas/Bizboard-api/internal/application/ports"
	"github.com/jhoicas/Bizboard-api/pkg/config"
)

var _ ports.ImageStore = (*S3ImageStore)(nil)

// putObjectAPI lo mínimo del cliente S3 que usa el store (sustituible en tests).
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore sube objetos públicos de lectura y devuelve su URL.
type S3ImageStore struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// NewS3ImageStore crea el cliente a partir de la configuración de almacenamiento.
func NewS3ImageStore(ctx context.Context, cfg config.StorageConfig) (*S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage/s3: S3_BUCKET no configurado")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	// credenciales estáticas: obligatorias para MinIO / R2 / Spaces
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConf, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return newS3ImageStore(s3.NewFromConfig(awsConf, clientOpts...), cfg), nil
}

func newS3ImageStore(client putObjectAPI, cfg config.StorageConfig) *S3ImageStore {
	baseURL := strings.TrimRight(cfg.PublicURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3ImageStore{client: client, bucket: cfg.Bucket, baseURL: baseURL}
}

// Upload sube body bajo key y devuelve la URL pública.
func (s *S3ImageStore) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	key = strings.TrimLeft(key, "/")
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("storage/s3: put %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL compone la URL pública del objeto.
func (s *S3ImageStore) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
