package filestore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/require"

	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func notFoundErr() error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusNotFound}},
			Err:      errors.New("not found"),
		},
	}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, notFoundErr()
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.objects[aws.ToString(in.Key)] = data
	f.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, notFoundErr()
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := aws.ToString(in.Prefix)
	delimiter := aws.ToString(in.Delimiter)
	keys := make([]string, 0, len(f.objects))
	for key := range f.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	seen := map[string]bool{}
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if delimiter != "" {
			if idx := strings.Index(rest, delimiter); idx >= 0 {
				cp := prefix + rest[:idx+len(delimiter)]
				if !seen[cp] {
					seen[cp] = true
					out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(cp)})
				}
				continue
			}
		}
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
		if in.MaxKeys != nil && int32(len(out.Contents)) >= *in.MaxKeys {
			break
		}
	}
	return out, nil
}

func TestS3Store_PutGetWithPrefix(t *testing.T) {
	fake := newFakeS3()
	store := newS3Store(fake, "bucket", "/wiki/")
	ctx := context.Background()
	require.Equal(t, "s3", store.Type())

	require.NoError(t, store.Put(ctx, "a/alice/page.md", []byte("# Hi")))
	require.Contains(t, fake.objects, "wiki/a/alice/page.md")

	data, err := store.Get(ctx, "a/alice/page.md")
	require.NoError(t, err)
	require.Equal(t, "# Hi", string(data))

	_, err = store.Get(ctx, "a/alice/missing.md")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestS3Store_StatAndList(t *testing.T) {
	store := newS3Store(newFakeS3(), "bucket", "")
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "b/bob/.config.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "b/bob/notes/one.md", []byte("1")))
	require.NoError(t, store.Put(ctx, "b/bob/readme.txt", []byte("r")))

	kind, err := store.Stat(ctx, "b/bob")
	require.NoError(t, err)
	require.Equal(t, KindDir, kind)
	kind, err = store.Stat(ctx, "b/bob/readme.txt")
	require.NoError(t, err)
	require.Equal(t, KindFile, kind)
	kind, err = store.Stat(ctx, "b/bo")
	require.NoError(t, err)
	require.Equal(t, KindNone, kind)

	names, err := store.List(ctx, "b/bob")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{".config.json", "notes", "readme.txt"}, names)

	_, err = store.List(ctx, "c/carol")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestS3Store_RejectsEscapingKeys(t *testing.T) {
	store := newS3Store(newFakeS3(), "bucket", "wiki")
	ctx := context.Background()
	require.Error(t, store.Put(ctx, "../x", []byte("x")))
	require.Error(t, store.Put(ctx, "", []byte("x")))
	_, err := store.Get(ctx, "/abs")
	require.Error(t, err)
}

func TestBuildEndpoint(t *testing.T) {
	require.Equal(t, "http://minio:9000", buildEndpoint("minio:9000", false))
	require.Equal(t, "https://minio:9000", buildEndpoint("minio:9000", true))
	require.Equal(t, "http://x", buildEndpoint("http://x", true))
}
