package media

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
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	data, _ := io.ReadAll(in.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, f.err
}

func TestPutReturnsPublicURL(t *testing.T) {
	fp := &fakePutter{}
	s := newStore(fp, "pingup-media", "https://cdn.example.com/")

	url, err := s.Put(context.Background(), "/messages/abc.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/messages/abc.png", url)
	assert.Equal(t, "pingup-media", aws.ToString(fp.input.Bucket))
	assert.Equal(t, "messages/abc.png", aws.ToString(fp.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fp.input.ContentType))
	assert.Equal(t, "png-bytes", fp.body)
}

func TestPutFailure(t *testing.T) {
	s := newStore(&fakePutter{err: errors.New("denied")}, "b", "https://cdn")

	_, err := s.Put(context.Background(), "k.png", "image/png", strings.NewReader(""))
	assert.ErrorContains(t, err, "denied")

	_, err = s.Put(context.Background(), "", "image/png", strings.NewReader(""))
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("messages", "Photo.JPG")
	assert.True(t, strings.HasPrefix(key, "messages/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, ObjectKey("messages", "Photo.JPG"))
}

func TestNewRequiresSettings(t *testing.T) {
	_, err := New(context.Background(), Options{Bucket: "b"})
	assert.Error(t, err)
}
