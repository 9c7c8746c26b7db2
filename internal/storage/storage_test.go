package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "photo.jpg", want: "photo.jpg"},
		{key: "/2024/photo.jpg", want: "2024/photo.jpg"},
		{key: "", wantErr: true},
		{key: "../etc/passwd", wantErr: true},
		{key: "a/../../b", wantErr: true},
		{key: "a\\b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cleanKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "uploads/")
	require.NoError(t, err)

	ctx := context.Background()
	url, err := store.Put(ctx, "hero.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/hero.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "hero.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	key, ok := store.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "hero.png", key)

	_, ok = store.KeyFromURL("https://cdn.example.com/hero.png")
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "hero.png"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// Deleting a missing file is not an error.
	assert.NoError(t, store.Delete(ctx, key))

	_, err = store.Put(ctx, "../escape.png", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

type fakeS3 struct {
	objects map[string]string
	types   map[string]string
	failPut bool
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]string{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("boom")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := *in.Bucket + "/" + *in.Key
	f.objects[key] = string(body)
	f.types[key] = *in.ContentType
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	client := newFakeS3()
	store := NewS3StoreWithClient(client, "media", "https://cdn.example.com/")

	ctx := context.Background()
	url, err := store.Put(ctx, "video/intro.mp4", strings.NewReader("mp4"), 3, "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/video/intro.mp4", url)
	assert.Equal(t, "mp4", client.objects["media/video/intro.mp4"])
	assert.Equal(t, "video/mp4", client.types["media/video/intro.mp4"])

	key, ok := store.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "video/intro.mp4", key)

	require.NoError(t, store.Delete(ctx, key))
	assert.Empty(t, client.objects)
}

func TestS3Store_PutFailure(t *testing.T) {
	client := newFakeS3()
	client.failPut = true
	store := NewS3StoreWithClient(client, "media", "https://cdn.example.com")

	_, err := store.Put(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.Error(t, err)
}

func TestNewS3Store_DerivesPublicURL(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Config{
		Bucket:       "media",
		Region:       "eu-central-1",
		Endpoint:     "http://localhost:9000/",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/media", store.publicURL)
}
