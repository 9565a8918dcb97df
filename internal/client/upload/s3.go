package upload

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/folio/internal/netx"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const presignExpires = 15 * time.Minute

// Presigner is the part of *s3.PresignClient the uploader needs.
type Presigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PublicBaseURL prefixes the object key in the returned URL.
	PublicBaseURL string
}

// NewPresignClient builds a presign client for cfg. A custom endpoint (MinIO
// and similar) switches to path-style addressing.
func NewPresignClient(ctx context.Context, cfg S3Config) (*s3.PresignClient, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client), nil
}

// S3Uploader stores images in a bucket through presigned PUT URLs.
type S3Uploader struct {
	presigner Presigner
	cfg       S3Config
	client    *http.Client
	clock     clockwork.Clock
}

var _ Uploader = (*S3Uploader)(nil)

func NewS3Uploader(p Presigner, cfg S3Config, client *http.Client, clock clockwork.Clock) *S3Uploader {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &S3Uploader{presigner: p, cfg: cfg, client: client, clock: clock}
}

// ObjectKey returns a fresh images/yyyy/mm/dd/<uuid><ext> key.
func (u *S3Uploader) ObjectKey(ext string) string {
	d := u.clock.Now().UTC()
	return fmt.Sprintf("images/%04d/%02d/%02d/%s%s", d.Year(), int(d.Month()), d.Day(), uuid.NewString(), ext)
}

func (u *S3Uploader) Upload(ctx context.Context, f File) (string, error) {
	if err := Validate(f); err != nil {
		return "", err
	}

	key := u.ObjectKey(f.Ext())
	req, err := u.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(f.ContentType),
	}, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}

	if err := netx.UploadToPresignedURL(ctx, u.client, req.URL, f.ContentType, f.Data); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key, nil
}
