package upload

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/config"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Transport_Put(t *testing.T) {
	client := &fakeS3{}
	tr := NewS3TransportWithClient(client, "media", "https://cdn.example.com/media/")

	png := []byte("\x89PNG\r\n\x1a\n0000")
	url, err := tr.Put(context.Background(), "partners/a.png", png)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/media/partners/a.png", url)
	assert.Equal(t, "media", aws.ToString(client.input.Bucket))
	assert.Equal(t, "partners/a.png", aws.ToString(client.input.Key))
	assert.Equal(t, int64(len(png)), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, "image/png", aws.ToString(client.input.ContentType))
	assert.Equal(t, png, client.body)
	assert.Equal(t, "s3", tr.Name())
}

func TestS3Transport_PutError(t *testing.T) {
	tr := NewS3TransportWithClient(&fakeS3{err: errors.New("AccessDenied")}, "media", "https://cdn.example.com")
	_, err := tr.Put(context.Background(), "a.png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestNewS3Transport_RequiresBucket(t *testing.T) {
	_, err := NewS3Transport(context.Background(), config.S3Config{PublicBaseURL: "https://cdn.example.com"})
	assert.Error(t, err)
}
