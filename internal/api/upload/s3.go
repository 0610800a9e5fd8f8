package upload

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/FACorreiaa/storefront-api/config"
)

var _ Transport = (*S3Transport)(nil)

// PutObjectAPI is the slice of the S3 client the transport needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Transport uploads to an S3 compatible bucket (AWS, MinIO, R2).
type S3Transport struct {
	client        PutObjectAPI
	bucket        string
	publicBaseURL string
}

func NewS3Transport(ctx context.Context, cfg config.S3Config) (*S3Transport, error) {
	if cfg.Bucket == "" || cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("s3 transport requires bucket and publicBaseURL")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewS3TransportWithClient(client, cfg.Bucket, cfg.PublicBaseURL), nil
}

func NewS3TransportWithClient(client PutObjectAPI, bucket, publicBaseURL string) *S3Transport {
	return &S3Transport{client: client, bucket: bucket, publicBaseURL: publicBaseURL}
}

func (t *S3Transport) Name() string { return "s3" }

func (t *S3Transport) Put(ctx context.Context, key string, data []byte) (string, error) {
	_, err := t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(t.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return joinURL(t.publicBaseURL, key), nil
}
