package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterpack/letterpack/internal/settings"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		in     string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://labels/2024/out.pdf", "labels", "2024/out.pdf", true},
		{"s3://labels", "labels", "", true},
		{"s3:///key", "", "", false},
		{"out.pdf", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, key, ok := ParseS3URL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestNewObjectKey(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	a := NewObjectKey("/archive/", ".pdf", now)
	b := NewObjectKey("archive", ".pdf", now)

	assert.True(t, strings.HasPrefix(a, "archive/2024/03/09/"), a)
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.NotEqual(t, a, b)
}

func TestLocalSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := NewLocalSink(dir)
	require.NoError(t, err)

	loc, err := sink.Put(context.Background(), "2024/a.pdf", ContentTypePDF, strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024", "a.pdf"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	for _, key := range []string{"", "../escape.pdf", "/abs.pdf"} {
		_, err := sink.Put(context.Background(), key, ContentTypePDF, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestNewS3SinkValidation(t *testing.T) {
	_, err := NewS3Sink(context.Background(), nil)
	assert.ErrorContains(t, err, "configuration is required")

	_, err = NewS3Sink(context.Background(), &settings.StorageConfig{})
	assert.ErrorContains(t, err, "bucket is required")
}

func TestNewS3SinkWithStaticCredentials(t *testing.T) {
	sink, err := NewS3Sink(context.Background(), &settings.StorageConfig{
		Bucket:       "labels",
		Endpoint:     "localhost:9000",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "labels", sink.Bucket())
	assert.IsType(t, &s3.Client{}, sink.client)
}

func TestS3SinkPut(t *testing.T) {
	fake := &fakeS3{}
	sink, err := NewS3Sink(context.Background(),
		&settings.StorageConfig{Bucket: "labels", Prefix: "/archive/"},
		WithClient(fake))
	require.NoError(t, err)

	loc, err := sink.Put(context.Background(), "a.pdf", ContentTypePDF, bytes.NewReader([]byte("%PDF")))
	require.NoError(t, err)
	assert.Equal(t, "s3://labels/archive/a.pdf", loc)

	require.Len(t, fake.inputs, 1)
	assert.Equal(t, "labels", aws.ToString(fake.inputs[0].Bucket))
	assert.Equal(t, "archive/a.pdf", aws.ToString(fake.inputs[0].Key))
	assert.Equal(t, ContentTypePDF, aws.ToString(fake.inputs[0].ContentType))
	assert.Equal(t, "%PDF", string(fake.bodies[0]))

	_, err = sink.Put(context.Background(), "", ContentTypePDF, bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrInvalidKey)

	fake.err = errors.New("denied")
	_, err = sink.Put(context.Background(), "b.pdf", ContentTypePDF, bytes.NewReader(nil))
	assert.ErrorContains(t, err, "denied")
}

func TestNew(t *testing.T) {
	sink, err := New(context.Background(), &settings.StorageConfig{})
	require.NoError(t, err)
	assert.Nil(t, sink)

	sink, err = New(context.Background(), &settings.StorageConfig{Driver: "local", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalSink{}, sink)

	_, err = New(context.Background(), &settings.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
