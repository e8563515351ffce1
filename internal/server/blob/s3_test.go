package blob

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in a map keyed by object key.
type fakeS3 struct {
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var contents []types.Object
	for k := range f.objects {
		if params.Prefix == nil || strings.HasPrefix(k, *params.Prefix) {
			contents = append(contents, types.Object{Key: aws.String(k)})
		}
	}
	return &s3.ListObjectsV2Output{Contents: contents}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	store := NewS3StoreWithClient(fake, "vault")
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "f1.st", []byte("payload")))

	got, err := store.Read(ctx, "f1.st")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)

	require.NoError(t, store.Delete(ctx, "f1.st"))
	_, err = store.Read(ctx, "f1.st")
	require.Error(t, err)
}

func TestS3Store_RemoveDirDeletesPrefix(t *testing.T) {
	fake := newFakeS3()
	store := NewS3StoreWithClient(fake, "vault")
	ctx := context.Background()

	require.NoError(t, store.CreateDir(ctx, "f1"))
	require.NoError(t, store.Write(ctx, "f1/0.chunk", []byte("aa")))
	require.NoError(t, store.Write(ctx, "f1/1.chunk", []byte("bb")))
	require.NoError(t, store.Write(ctx, "f2/0.chunk", []byte("cc")))

	require.NoError(t, store.RemoveDir(ctx, "f1"))

	_, err := store.Read(ctx, "f1/0.chunk")
	require.Error(t, err)
	_, err = store.Read(ctx, "f2/0.chunk")
	require.NoError(t, err, "other prefixes must be untouched")
}
