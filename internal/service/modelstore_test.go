package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pageza/chefcito/backend/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryS3 is an in-memory stand-in for the S3 object API.
type memoryS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryS3() *memoryS3 {
	return &memoryS3{objects: make(map[string][]byte)}
}

func (m *memoryS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memoryS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestFileModelStore(t *testing.T) {
	ctx := context.Background()
	store := NewFileModelStore(filepath.Join(t.TempDir(), "models", "ranker.json"))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrModelNotFound)

	r := recommend.NewRanker(16, 7)
	require.NoError(t, store.Save(ctx, r))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)
}

func TestFileModelStoreRejectsBadParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranker.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"w1":[],"b1":[],"w2":[],"b2":0}`), 0o644))

	_, err := NewFileModelStore(path).Load(context.Background())
	assert.ErrorIs(t, err, recommend.ErrInvalidParams)

	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))
	_, err = NewFileModelStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "failed to decode model")
}

func TestS3ModelStore(t *testing.T) {
	ctx := context.Background()
	client := newMemoryS3()
	store := NewS3ModelStoreWithClient(client, "models", "ranker.json")

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrModelNotFound)

	r := recommend.NewRanker(recommend.DefaultHiddenWidth, 3)
	require.NoError(t, store.Save(ctx, r))
	assert.Contains(t, client.objects, "models/ranker.json")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)
}
