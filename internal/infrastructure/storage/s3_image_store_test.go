package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/pkg/config"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestUpload_DevuelveURLVirtualHosted(t *testing.T) {
	fp := &fakePutter{}
	st := newS3ImageStore(fp, config.StorageConfig{Bucket: "logos-bucket", Region: "us-east-2"})

	url, err := st.Upload(context.Background(), "/logos/b1/x.png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)
	assert.Equal(t, "https://logos-bucket.s3.us-east-2.amazonaws.com/logos/b1/x.png", url)
	assert.Equal(t, "logos/b1/x.png", aws.ToString(fp.in.Key))
	assert.Equal(t, "image/png", aws.ToString(fp.in.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(fp.in.ContentLength))
	assert.Equal(t, "png", fp.body)
}

func TestUpload_PublicURLConfigurada(t *testing.T) {
	st := newS3ImageStore(&fakePutter{}, config.StorageConfig{Bucket: "b", PublicURL: "https://cdn.example.com/"})

	url, err := st.Upload(context.Background(), "logos/a.jpg", "image/jpeg", strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logos/a.jpg", url)
}

func TestUpload_ErrorDelCliente(t *testing.T) {
	st := newS3ImageStore(&fakePutter{err: errors.New("boom")}, config.StorageConfig{Bucket: "b"})

	_, err := st.Upload(context.Background(), "k", "image/png", strings.NewReader("x"), 1)
	assert.ErrorContains(t, err, "boom")
}
