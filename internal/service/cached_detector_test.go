package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"interioai/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDetector struct {
	mu    sync.Mutex
	items []string
	err   error
	calls int
}

func (f *fakeDetector) Detect(ctx context.Context, imagePath string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.items...), nil
}

type failingKVStore struct{}

func (failingKVStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}

func (failingKVStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("connection refused")
}

func newMiniredisStore(t *testing.T) (*miniredis.Miniredis, repository.KVStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, repository.NewRedisKVStore(client)
}

func TestCachedDetector_CachesByContent(t *testing.T) {
	mr, store := newMiniredisStore(t)
	inner := &fakeDetector{items: []string{"bed", "chair"}}
	d := NewCachedDetector(inner, store, time.Hour, zap.NewNop())
	path := writeTestImage(t)

	first, err := d.Detect(context.Background(), path)
	require.NoError(t, err)
	second, err := d.Detect(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"bed", "chair"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)

	sum := sha256.Sum256([]byte("jpeg-bytes"))
	key := "interioai:detect:" + hex.EncodeToString(sum[:])
	val, err := mr.Get(key)
	require.NoError(t, err)
	assert.JSONEq(t, `["bed","chair"]`, val)
	assert.Equal(t, time.Hour, mr.TTL(key))

	// same bytes under another name hit the same entry
	copyPath := filepath.Join(t.TempDir(), "copy.png")
	require.NoError(t, os.WriteFile(copyPath, []byte("jpeg-bytes"), 0o644))
	_, err = d.Detect(context.Background(), copyPath)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedDetector_EmptyResultNotCached(t *testing.T) {
	mr, store := newMiniredisStore(t)
	inner := &fakeDetector{}
	d := NewCachedDetector(inner, store, time.Hour, zap.NewNop())
	path := writeTestImage(t)

	for range 2 {
		items, err := d.Detect(context.Background(), path)
		require.NoError(t, err)
		assert.Empty(t, items)
	}
	assert.Equal(t, 2, inner.calls)
	assert.Empty(t, mr.Keys())
}

func TestCachedDetector_ErrorsPassThrough(t *testing.T) {
	_, store := newMiniredisStore(t)
	boom := NewExternalDependencyError("model-server", "detect", errors.New("timeout"))
	d := NewCachedDetector(&fakeDetector{err: boom}, store, time.Hour, zap.NewNop())

	_, err := d.Detect(context.Background(), writeTestImage(t))
	assert.ErrorIs(t, err, boom)
}

func TestCachedDetector_StoreFailureBypassed(t *testing.T) {
	inner := &fakeDetector{items: []string{"sofa"}}
	d := NewCachedDetector(inner, failingKVStore{}, time.Hour, zap.NewNop())

	items, err := d.Detect(context.Background(), writeTestImage(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"sofa"}, items)
}

func TestCachedDetector_CorruptEntry(t *testing.T) {
	mr, store := newMiniredisStore(t)
	inner := &fakeDetector{items: []string{"desk"}}
	d := NewCachedDetector(inner, store, time.Hour, zap.NewNop())
	path := writeTestImage(t)

	key, err := detectCacheKey(path)
	require.NoError(t, err)
	require.NoError(t, mr.Set(key, "not json"))

	items, err := d.Detect(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"desk"}, items)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedDetector_MissingImage(t *testing.T) {
	_, store := newMiniredisStore(t)
	d := NewCachedDetector(&fakeDetector{}, store, time.Hour, zap.NewNop())

	_, err := d.Detect(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)
	assert.True(t, IsExternalDependencyError(err))
}
