package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingStore struct {
	*MemoryStore
	gets, lists, urls int
	url               string
	failPut           bool
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: NewMemoryStore()}
}

func (s *countingStore) Put(ctx context.Context, namespace, path string, content []byte) error {
	if s.failPut {
		return errors.New("put failed")
	}
	return s.MemoryStore.Put(ctx, namespace, path, content)
}

func (s *countingStore) Get(ctx context.Context, namespace, path string) ([]byte, error) {
	s.gets++
	return s.MemoryStore.Get(ctx, namespace, path)
}

func (s *countingStore) List(ctx context.Context, namespace string) ([]string, error) {
	s.lists++
	return s.MemoryStore.List(ctx, namespace)
}

func (s *countingStore) GetURL(context.Context, string, string) (string, error) {
	s.urls++
	return s.url, nil
}

func TestMemoryStorePutGetList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, "gen1", "slide.json", []byte(`{}`)))
	require.NoError(t, s.Put(ctx, "gen1", "/prompt.txt", []byte("p")))
	require.NoError(t, s.Put(ctx, "gen2", "slide.json", []byte(`{}`)))

	got, err := s.Get(ctx, "gen1", "prompt.txt")
	require.NoError(t, err)
	require.Equal(t, "p", string(got))

	paths, err := s.List(ctx, "gen1")
	require.NoError(t, err)
	require.Equal(t, []string{"prompt.txt", "slide.json"}, paths)

	_, err = s.Get(ctx, "gen1", "missing.txt")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesContent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Put(ctx, "ns", "f", buf))
	buf[0] = 'x'

	got, err := s.Get(ctx, "ns", "f")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
	got[1] = 'y'

	again, _ := s.Get(ctx, "ns", "f")
	require.Equal(t, "abc", string(again))
}

func TestMemoryStoreRejectsEmptyKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.Error(t, s.Put(ctx, " ", "f", nil))
	require.Error(t, s.Put(ctx, "ns", "", nil))
	_, err := s.List(ctx, "")
	require.Error(t, err)
}

func testCacheConfig() CacheConfig {
	return CacheConfig{
		BlobTTL: time.Minute, BlobMaxEntries: 8, BlobMaxBytes: 16,
		ListTTL: time.Minute, ListMaxEntries: 8,
		URLTTL: time.Minute, URLMaxEntries: 8,
	}
}

func TestCachedStoreReadThroughAndMetrics(t *testing.T) {
	ctx := context.Background()
	origin := newCountingStore()
	require.NoError(t, origin.MemoryStore.Put(ctx, "r1", "a.txt", []byte("hello")))
	s := NewCachedStore(origin, testCacheConfig())

	for range 2 {
		got, err := s.Get(ctx, "r1", "a.txt")
		require.NoError(t, err)
		require.Equal(t, "hello", string(got))
	}
	require.Equal(t, 1, origin.gets)

	m := s.Metrics()
	require.Equal(t, uint64(1), m.BlobHits)
	require.Equal(t, uint64(1), m.BlobMisses)
	require.Equal(t, uint64(1), m.OriginReads)
}

func TestCachedStorePutInvalidatesList(t *testing.T) {
	ctx := context.Background()
	origin := newCountingStore()
	s := NewCachedStore(origin, testCacheConfig())

	require.NoError(t, s.Put(ctx, "r1", "a.txt", []byte("a")))
	paths, err := s.List(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt"}, paths)

	_, _ = s.List(ctx, "r1")
	require.Equal(t, 1, origin.lists)

	require.NoError(t, s.Put(ctx, "r1", "b.txt", []byte("b")))
	paths, err = s.List(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "b.txt"}, paths)
	require.Equal(t, 2, origin.lists)

	got, err := s.Get(ctx, "r1", "b.txt")
	require.NoError(t, err)
	require.Equal(t, "b", string(got))
	require.Equal(t, 0, origin.gets)
}

func TestCachedStoreSkipsLargeBlobs(t *testing.T) {
	ctx := context.Background()
	origin := newCountingStore()
	s := NewCachedStore(origin, testCacheConfig())

	big := make([]byte, 32)
	require.NoError(t, s.Put(ctx, "r1", "big.bin", big))
	_, err := s.Get(ctx, "r1", "big.bin")
	require.NoError(t, err)
	require.Equal(t, 1, origin.gets)
}

func TestCachedStoreFailedPutLeavesCacheAlone(t *testing.T) {
	ctx := context.Background()
	origin := newCountingStore()
	origin.failPut = true
	s := NewCachedStore(origin, testCacheConfig())

	require.Error(t, s.Put(ctx, "r1", "a.txt", []byte("a")))
	_, err := s.Get(ctx, "r1", "a.txt")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, uint64(1), s.Metrics().OriginWriteErr)
	require.Zero(t, s.Metrics().OriginReadErr)
}

func TestCachedStoreURLCache(t *testing.T) {
	ctx := context.Background()
	origin := newCountingStore()
	s := NewCachedStore(origin, testCacheConfig())

	u, err := s.GetURL(ctx, "r1", "a.txt")
	require.NoError(t, err)
	require.Empty(t, u)
	_, _ = s.GetURL(ctx, "r1", "a.txt")
	require.Equal(t, 2, origin.urls, "empty URLs are not cached")

	origin.url = "https://bucket/r1/a.txt?sig"
	for range 3 {
		u, err = s.GetURL(ctx, "r1", "a.txt")
		require.NoError(t, err)
		require.Equal(t, origin.url, u)
	}
	require.Equal(t, 3, origin.urls)
}

func TestS3ConfigComplete(t *testing.T) {
	cfg := S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "b"}
	require.True(t, cfg.Complete())
	cfg.Bucket = " "
	require.False(t, cfg.Complete())

	_, err := NewS3Store(cfg)
	require.Error(t, err)
}

func TestS3StoreURLExpiryDefault(t *testing.T) {
	s, err := NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "b"})
	require.NoError(t, err)
	require.Equal(t, time.Hour, s.urlExpiry)
	require.Equal(t, "us-east-1", s.region)
}

func TestS3StorePresignsWithoutNetwork(t *testing.T) {
	s, err := NewS3Store(S3Config{
		Endpoint: "localhost:9000", Region: "us-east-1",
		AccessKey: "a", SecretKey: "s", Bucket: "artifacts",
	})
	require.NoError(t, err)
	u, err := s.GetURL(context.Background(), "gen1", "slide.json")
	require.NoError(t, err)
	require.Contains(t, u, "/artifacts/gen1/slide.json")
	require.Contains(t, u, "X-Amz-Signature=")
}

func TestOpenDefaultsToMemory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), Config{}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	_, ok := s.origin.(*MemoryStore)
	require.True(t, ok)
}

func TestContentType(t *testing.T) {
	require.Equal(t, "application/json", contentType("slide.json"))
	require.Equal(t, "text/plain; charset=utf-8", contentType("prompt.txt"))
	require.Equal(t, "application/octet-stream", contentType("blob"))
}
