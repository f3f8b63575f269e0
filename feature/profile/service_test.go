package profile_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gacha-tracker/core/apperr"
	"gacha-tracker/core/storage"
	storagemocks "gacha-tracker/core/storage/mocks"
	upstreammocks "gacha-tracker/core/upstream/mocks"
	"gacha-tracker/feature/profile"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBucket = "profiles"

func envelopeBody(t *testing.T, uid int32, document string) io.ReadCloser {
	t.Helper()
	raw, err := json.Marshal(&profile.Envelope{
		UID:       uid,
		FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Document:  json.RawMessage(document),
	})
	require.NoError(t, err)
	return io.NopCloser(bytes.NewReader(raw))
}

func TestGet_CacheHitSkipsProvider(t *testing.T) {
	storageMock := new(storagemocks.Client)
	upstreamMock := new(upstreammocks.Client)
	svc := profile.NewService(storageMock, testBucket, upstreamMock, zap.NewNop())

	storageMock.On("GetObject", mock.Anything, testBucket, "7.json", mock.Anything).
		Return(envelopeBody(t, 7, `{"nickname":"Aether"}`), nil)

	env, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int32(7), env.UID)
	assert.JSONEq(t, `{"nickname":"Aether"}`, string(env.Document))
	upstreamMock.AssertNotCalled(t, "FetchProfile")
}

func TestGet_MissFetchesAndStores(t *testing.T) {
	storageMock := new(storagemocks.Client)
	upstreamMock := new(upstreammocks.Client)
	svc := profile.NewService(storageMock, testBucket, upstreamMock, zap.NewNop())

	storageMock.On("GetObject", mock.Anything, testBucket, "7.json", mock.Anything).
		Return(nil, storage.ErrObjectNotFound)
	upstreamMock.On("FetchProfile", mock.Anything, int32(7)).
		Return([]byte(`{"nickname":"Aether"}`), nil)
	storageMock.On("PutObject", mock.Anything, testBucket, "7.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	env, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int32(7), env.UID)
	assert.False(t, env.FetchedAt.IsZero())
	storageMock.AssertExpectations(t)
	upstreamMock.AssertExpectations(t)
}

func TestGet_ConcurrentMissesCollapse(t *testing.T) {
	storageMock := new(storagemocks.Client)
	upstreamMock := new(upstreammocks.Client)
	svc := profile.NewService(storageMock, testBucket, upstreamMock, zap.NewNop())

	storageMock.On("GetObject", mock.Anything, testBucket, "7.json", mock.Anything).
		Return(nil, storage.ErrObjectNotFound)
	storageMock.On("PutObject", mock.Anything, testBucket, "7.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	var fetches atomic.Int32
	proceed := make(chan struct{})
	upstreamMock.On("FetchProfile", mock.Anything, int32(7)).
		Run(func(mock.Arguments) {
			fetches.Add(1)
			<-proceed
		}).
		Return([]byte(`{"nickname":"Aether"}`), nil)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*profile.Envelope, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			env, err := svc.Get(context.Background(), 7)
			if assert.NoError(t, err) {
				results[i] = env
			}
		}(i)
	}

	// Give every caller time to miss and join the flight, then release the
	// single provider fetch.
	time.Sleep(100 * time.Millisecond)
	close(proceed)
	wg.Wait()

	assert.Equal(t, int32(1), fetches.Load(), "concurrent misses must collapse into one provider fetch")
	for _, env := range results {
		require.NotNil(t, env)
		assert.Equal(t, results[0].FetchedAt, env.FetchedAt, "all callers share the flight's envelope")
	}
}

func TestGet_FlightSurvivesCallerCancellation(t *testing.T) {
	storageMock := new(storagemocks.Client)
	upstreamMock := new(upstreammocks.Client)
	svc := profile.NewService(storageMock, testBucket, upstreamMock, zap.NewNop())

	storageMock.On("GetObject", mock.Anything, testBucket, "7.json", mock.Anything).
		Return(nil, storage.ErrObjectNotFound)
	storageMock.On("PutObject", mock.Anything, testBucket, "7.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	var fetchCtx context.Context
	upstreamMock.On("FetchProfile", mock.Anything, int32(7)).
		Run(func(args mock.Arguments) {
			fetchCtx = args.Get(0).(context.Context)
		}).
		Return([]byte(`{"nickname":"Aether"}`), nil)

	// The caller's context is already cancelled; the shared flight must still
	// run to completion because its result serves every collapsed caller.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int32(7), env.UID)
	require.NotNil(t, fetchCtx)
	assert.NoError(t, fetchCtx.Err(), "the provider fetch must run on a context detached from the caller's cancellation")
}

func TestGet_ProviderFailureSurfacesWhole(t *testing.T) {
	storageMock := new(storagemocks.Client)
	upstreamMock := new(upstreammocks.Client)
	svc := profile.NewService(storageMock, testBucket, upstreamMock, zap.NewNop())

	storageMock.On("GetObject", mock.Anything, testBucket, "7.json", mock.Anything).
		Return(nil, storage.ErrObjectNotFound)
	upstreamMock.On("FetchProfile", mock.Anything, int32(7)).
		Return(nil, apperr.ErrUpstreamUnavailable)

	_, err := svc.Get(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstreamUnavailable)
	storageMock.AssertNotCalled(t, "PutObject")
}

func TestRefresh_OverwritesCache(t *testing.T) {
	storageMock := new(storagemocks.Client)
	upstreamMock := new(upstreammocks.Client)
	svc := profile.NewService(storageMock, testBucket, upstreamMock, zap.NewNop())

	upstreamMock.On("FetchProfile", mock.Anything, int32(7)).
		Return([]byte(`{"nickname":"Lumine"}`), nil)
	storageMock.On("PutObject", mock.Anything, testBucket, "7.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	env, err := svc.Refresh(context.Background(), 7)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nickname":"Lumine"}`, string(env.Document))
	// Refresh never consults the cache first.
	storageMock.AssertNotCalled(t, "GetObject")
}

func TestRefresh_RejectsInvalidDocument(t *testing.T) {
	storageMock := new(storagemocks.Client)
	upstreamMock := new(upstreammocks.Client)
	svc := profile.NewService(storageMock, testBucket, upstreamMock, zap.NewNop())

	upstreamMock.On("FetchProfile", mock.Anything, int32(7)).
		Return([]byte("<html>maintenance</html>"), nil)

	_, err := svc.Refresh(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstreamUnavailable)
	storageMock.AssertNotCalled(t, "PutObject")
}

func TestGet_CorruptEnvelope(t *testing.T) {
	storageMock := new(storagemocks.Client)
	upstreamMock := new(upstreammocks.Client)
	svc := profile.NewService(storageMock, testBucket, upstreamMock, zap.NewNop())

	storageMock.On("GetObject", mock.Anything, testBucket, "7.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("not json"))), nil)

	_, err := svc.Get(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	upstreamMock.AssertNotCalled(t, "FetchProfile")
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Creates Missing Bucket", func(t *testing.T) {
		storageMock := new(storagemocks.Client)
		svc := profile.NewService(storageMock, testBucket, new(upstreammocks.Client), zap.NewNop())

		storageMock.On("BucketExists", mock.Anything, testBucket).Return(false, nil)
		storageMock.On("MakeBucket", mock.Anything, testBucket, mock.Anything).Return(nil)

		require.NoError(t, svc.EnsureBucket(context.Background()))
		storageMock.AssertExpectations(t)
	})

	t.Run("Keeps Existing Bucket", func(t *testing.T) {
		storageMock := new(storagemocks.Client)
		svc := profile.NewService(storageMock, testBucket, new(upstreammocks.Client), zap.NewNop())

		storageMock.On("BucketExists", mock.Anything, testBucket).Return(true, nil)

		require.NoError(t, svc.EnsureBucket(context.Background()))
		storageMock.AssertNotCalled(t, "MakeBucket")
	})

	t.Run("Check Failure", func(t *testing.T) {
		storageMock := new(storagemocks.Client)
		svc := profile.NewService(storageMock, testBucket, new(upstreammocks.Client), zap.NewNop())

		storageMock.On("BucketExists", mock.Anything, testBucket).
			Return(false, errors.New("connection refused"))

		assert.ErrorIs(t, svc.EnsureBucket(context.Background()), apperr.ErrStoreUnavailable)
	})
}
