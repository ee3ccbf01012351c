package cloudflare

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// KeyPrefix is the folder every exported flyer is stored under.
const KeyPrefix = "flyers"

type Config struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is the CDN origin serving the bucket. Empty means the R2 endpoint.
	PublicURL string
}

// R2 stores exported flyers in a Cloudflare R2 bucket through the S3 API.
type R2 struct {
	client    *s3.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

func getS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint(cfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})
	return client, nil
}

func endpoint(accountID string) string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
}

func New(ctx context.Context, cfg Config) (*R2, error) {
	client, err := getS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}

	public := strings.TrimRight(cfg.PublicURL, "/")
	if public == "" {
		public = endpoint(cfg.AccountID) + "/" + cfg.Bucket
	}
	return &R2{client: client, bucket: cfg.Bucket, publicURL: public, now: time.Now}, nil
}

// ObjectKey builds a URL-safe, collision free key for a download name:
// flyers/2006/01/02/<slug>-<uuid>.<ext>.
func ObjectKey(name string, now time.Time, id string) string {
	ext := strings.ToLower(filepath.Ext(name))
	stem := slug.Make(strings.TrimSuffix(name, filepath.Ext(name)))
	if stem == "" {
		stem = "flyer"
	}
	return path.Join(KeyPrefix, now.UTC().Format("2006/01/02"), stem+"-"+id+ext)
}

// Upload puts data under a fresh key and returns its public URL.
func (r *R2) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := ObjectKey(name, r.now(), uuid.NewString())

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(r.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", name)),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload file to R2: %w", err)
	}
	return r.publicURL + "/" + key, nil
}

// Delete removes the object behind a URL returned by Upload.
func (r *R2) Delete(ctx context.Context, fullURL string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKeyFromURL(fullURL)),
	})
	if err != nil {
		return fmt.Errorf("could not delete file from R2: %w", err)
	}
	return nil
}

// Prune deletes every exported flyer last modified before cutoff.
func (r *R2) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	pages := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(KeyPrefix + "/"),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return removed, fmt.Errorf("could not list R2 objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.LastModified == nil || !obj.LastModified.Before(cutoff) {
				continue
			}
			if err := r.Delete(ctx, r.publicURL+"/"+aws.ToString(obj.Key)); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

func (r *R2) objectKeyFromURL(url string) string {
	return strings.TrimPrefix(url, r.publicURL+"/")
}
