package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Options struct {
	Region string
	Bucket string
	// PublicURL is the base under which uploaded objects are reachable,
	// e.g. a CDN or the bucket website endpoint. Defaults to the virtual
	// hosted bucket URL when empty.
	PublicURL string
}

// Storage uploads image blobs to S3 and hands back public URLs.
type Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewStorage(ctx context.Context, opts Options) (*Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	baseURL := opts.PublicURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  opts.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *Storage) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the object whose public URL is given. URLs outside the
// configured base are ignored so stale rows never delete foreign objects.
func (s *Storage) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}
