package assets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/logger"
	"github.com/goalline/sportscache/internal/media/transformer"
	"github.com/goalline/sportscache/internal/mocks"
	"github.com/goalline/sportscache/internal/store"
	"github.com/goalline/sportscache/internal/store/schema"
)

type testMocks struct {
	ctrl        *gomock.Controller
	store       *mocks.MockStore
	origin      *mocks.MockOriginClient
	storage     *mocks.MockBlobStorage
	transformer *mocks.MockTransformer
	clock       *mocks.MockClock
}

func setupTest(t *testing.T) *testMocks {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	return &testMocks{
		ctrl:        ctrl,
		store:       mocks.NewMockStore(ctrl),
		origin:      mocks.NewMockOriginClient(ctrl),
		storage:     mocks.NewMockBlobStorage(ctrl),
		transformer: mocks.NewMockTransformer(ctrl),
		clock:       mocks.NewMockClock(ctrl),
	}
}

func (m *testMocks) tearDown() {
	m.ctrl.Finish()
}

func (m *testMocks) newService(cfg Config) *Service {
	if cfg.PlaceholderPrefix == "" {
		cfg.PlaceholderPrefix = "https://cdn.example.com/placeholders"
	}
	return NewService(m.store, m.origin, m.storage, m.transformer, m.clock, cfg)
}

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

const placeholderPlayerURL = "https://cdn.example.com/placeholders/player_photo.png"

// expectMaterialization wires the happy path for one player photo: lock won,
// image fetched, three variants rendered and uploaded, record marked ready.
func (m *testMocks) expectMaterialization(entityID int64, publicURL string) {
	m.store.EXPECT().AcquireAssetLock(gomock.Any(), store.AcquireAssetLockInput{
		AssetKind:          domain.AssetKindPlayerPhoto,
		EntityID:           entityID,
		Now:                testNow,
		PendingStaleBefore: testNow.Add(-domain.MaxPendingAge),
	}).Return(true, nil)
	m.origin.EXPECT().FetchImage(gomock.Any(), domain.AssetKindPlayerPhoto, entityID).
		Return([]byte("raw-image"), nil)
	m.transformer.EXPECT().
		RenderVariants(gomock.Any(), []byte("raw-image"), SpecsFor(domain.AssetKindPlayerPhoto), transformer.FormatJPEG).
		Return([]*transformer.Variant{
			{Name: "sm", Data: []byte("sm"), ContentType: "image/jpeg"},
			{Name: "md", Data: []byte("md"), ContentType: "image/jpeg"},
			{Name: "lg", Data: []byte("lg"), ContentType: "image/jpeg"},
		}, nil)
	for _, name := range []string{"sm", "md", "lg"} {
		m.storage.EXPECT().
			Upload(gomock.Any(), VariantPath(domain.AssetKindPlayerPhoto, entityID, name), "image/jpeg", []byte(name)).
			Return(nil)
	}
	mdPath := VariantPath(domain.AssetKindPlayerPhoto, entityID, DefaultVariant)
	m.store.EXPECT().MarkAssetReady(gomock.Any(), domain.AssetKindPlayerPhoto, entityID, mdPath, testNow).Return(nil)
	m.storage.EXPECT().PublicURL(mdPath).Return(publicURL)
}

func TestResolveOneMaterializesMissingAsset(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(nil, nil)
	m.expectMaterialization(874, "https://cdn.example.com/player_photo/md/874.jpg")

	svc := m.newService(Config{})
	url, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 874)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/player_photo/md/874.jpg", url)
}

func TestResolveOneServesReadyAssetWithoutOrigin(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	ready := &schema.AssetRecord{
		AssetKind:   domain.AssetKindPlayerPhoto.String(),
		EntityID:    874,
		Status:      schema.AssetStatusReady,
		StoragePath: "player_photo/md/874.jpg",
		CheckedAt:   testNow.Add(-time.Hour),
	}

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(ready, nil)
	m.storage.EXPECT().PublicURL("player_photo/md/874.jpg").Return("https://cdn.example.com/player_photo/md/874.jpg")

	svc := m.newService(Config{})
	url, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 874)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/player_photo/md/874.jpg", url)
}

func TestResolveOneLockContentionWaitsForWinner(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(nil, nil)
	m.store.EXPECT().AcquireAssetLock(gomock.Any(), gomock.Any()).Return(false, nil)

	// The loser sleeps once, re-reads once, and finds the winner's result
	m.clock.EXPECT().Sleep(domain.PendingWait)
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(&schema.AssetRecord{
		AssetKind:   domain.AssetKindPlayerPhoto.String(),
		EntityID:    874,
		Status:      schema.AssetStatusReady,
		StoragePath: "player_photo/md/874.jpg",
		CheckedAt:   testNow,
	}, nil)
	m.storage.EXPECT().PublicURL("player_photo/md/874.jpg").Return("https://cdn.example.com/player_photo/md/874.jpg")

	svc := m.newService(Config{})
	url, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 874)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/player_photo/md/874.jpg", url)
}

func TestResolveOnePendingRecordRechecksOnce(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	pending := &schema.AssetRecord{
		AssetKind: domain.AssetKindPlayerPhoto.String(),
		EntityID:  874,
		Status:    schema.AssetStatusPending,
		CheckedAt: testNow.Add(-time.Minute),
	}

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(pending, nil)
	m.clock.EXPECT().Sleep(domain.PendingWait)
	// Still pending after the grace period; placeholder, no second wait
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(pending, nil)

	svc := m.newService(Config{})
	url, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 874)
	require.NoError(t, err)
	assert.Equal(t, placeholderPlayerURL, url)
}

func TestResolveOneTakesOverAbandonedPending(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	abandoned := &schema.AssetRecord{
		AssetKind: domain.AssetKindPlayerPhoto.String(),
		EntityID:  874,
		Status:    schema.AssetStatusPending,
		CheckedAt: testNow.Add(-10 * time.Minute),
	}

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(abandoned, nil)
	m.expectMaterialization(874, "https://cdn.example.com/player_photo/md/874.jpg")

	svc := m.newService(Config{})
	url, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 874)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/player_photo/md/874.jpg", url)
}

func TestResolveOneErrorCooldownServesPlaceholder(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	message := "origin returned 404"
	failed := &schema.AssetRecord{
		AssetKind:    domain.AssetKindPlayerPhoto.String(),
		EntityID:     874,
		Status:       schema.AssetStatusError,
		ErrorMessage: &message,
		CheckedAt:    testNow.Add(-30 * time.Minute),
	}

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	// No lock attempt and no origin call while cooling down
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(failed, nil)

	svc := m.newService(Config{})
	url, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 874)
	require.NoError(t, err)
	assert.Equal(t, placeholderPlayerURL, url)
}

func TestResolveOneRetriesAfterCooldownElapses(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	message := "origin returned 404"
	failed := &schema.AssetRecord{
		AssetKind:    domain.AssetKindPlayerPhoto.String(),
		EntityID:     874,
		Status:       schema.AssetStatusError,
		ErrorMessage: &message,
		CheckedAt:    testNow.Add(-2 * time.Hour),
	}

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).Return(failed, nil)
	m.expectMaterialization(874, "https://cdn.example.com/player_photo/md/874.jpg")

	svc := m.newService(Config{})
	url, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 874)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/player_photo/md/874.jpg", url)
}

func TestResolveOneRecordReadFailureServesPlaceholder(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	m.store.EXPECT().GetAssetRecord(gomock.Any(), domain.AssetKindPlayerPhoto, int64(874)).
		Return(nil, errors.New("db down"))

	svc := m.newService(Config{})
	url, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 874)
	require.NoError(t, err)
	assert.Equal(t, placeholderPlayerURL, url)
}

func TestResolveOneRejectsInvalidSubjects(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	svc := m.newService(Config{})

	_, err := svc.ResolveOne(context.Background(), domain.AssetKindPlayerPhoto, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)

	_, err = svc.ResolveOne(context.Background(), domain.AssetKind("bogus"), 874)
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)
}

func TestResolveManyMapsEveryValidID(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	cooldownMessage := "origin returned 404"
	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	// Duplicates and non-positive IDs are dropped before the bulk read
	m.store.EXPECT().
		GetAssetRecords(gomock.Any(), domain.AssetKindPlayerPhoto, []int64{874, 20, 999}).
		Return([]*schema.AssetRecord{
			{
				AssetKind:   domain.AssetKindPlayerPhoto.String(),
				EntityID:    874,
				Status:      schema.AssetStatusReady,
				StoragePath: "player_photo/md/874.jpg",
				CheckedAt:   testNow.Add(-time.Hour),
			},
			{
				AssetKind:    domain.AssetKindPlayerPhoto.String(),
				EntityID:     20,
				Status:       schema.AssetStatusError,
				ErrorMessage: &cooldownMessage,
				CheckedAt:    testNow.Add(-time.Minute),
			},
		}, nil)
	m.storage.EXPECT().PublicURL("player_photo/md/874.jpg").Return("https://cdn.example.com/player_photo/md/874.jpg")

	// 999 has no record and its materialization dies at the origin
	m.store.EXPECT().AcquireAssetLock(gomock.Any(), gomock.Any()).Return(true, nil)
	m.origin.EXPECT().FetchImage(gomock.Any(), domain.AssetKindPlayerPhoto, int64(999)).
		Return(nil, domain.ErrOriginUnavailable)
	m.store.EXPECT().MarkAssetError(gomock.Any(), domain.AssetKindPlayerPhoto, int64(999), gomock.Any(), testNow).Return(nil)

	svc := m.newService(Config{})
	urls, err := svc.ResolveMany(context.Background(), domain.AssetKindPlayerPhoto,
		[]int64{874, 874, -1, 0, 20, 999})
	require.NoError(t, err)

	assert.Equal(t, map[int64]string{
		874: "https://cdn.example.com/player_photo/md/874.jpg",
		20:  placeholderPlayerURL,
		999: placeholderPlayerURL,
	}, urls)
}

func TestResolveManyRepeatCallIsIdempotent(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	ready := &schema.AssetRecord{
		AssetKind:   domain.AssetKindPlayerPhoto.String(),
		EntityID:    874,
		Status:      schema.AssetStatusReady,
		StoragePath: "player_photo/md/874.jpg",
		CheckedAt:   testNow.Add(-time.Hour),
	}

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	// Two identical calls, two reads, zero materializations
	m.store.EXPECT().
		GetAssetRecords(gomock.Any(), domain.AssetKindPlayerPhoto, []int64{874}).
		Return([]*schema.AssetRecord{ready}, nil).
		Times(2)
	m.storage.EXPECT().PublicURL("player_photo/md/874.jpg").
		Return("https://cdn.example.com/player_photo/md/874.jpg").
		Times(2)

	svc := m.newService(Config{})
	first, err := svc.ResolveMany(context.Background(), domain.AssetKindPlayerPhoto, []int64{874})
	require.NoError(t, err)
	second, err := svc.ResolveMany(context.Background(), domain.AssetKindPlayerPhoto, []int64{874})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveManyEmptyInput(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	svc := m.newService(Config{})
	urls, err := svc.ResolveMany(context.Background(), domain.AssetKindPlayerPhoto, []int64{-3, 0})
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestResolveManyRejectsInvalidKind(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	svc := m.newService(Config{})
	_, err := svc.ResolveMany(context.Background(), domain.AssetKind("bogus"), []int64{1, 2})
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)
}

func TestResolveManyBulkReadFailureFallsBackPerEntity(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	m.clock.EXPECT().Now().Return(testNow).AnyTimes()
	m.store.EXPECT().GetAssetRecords(gomock.Any(), domain.AssetKindPlayerPhoto, []int64{874}).
		Return(nil, errors.New("db down"))
	m.expectMaterialization(874, "https://cdn.example.com/player_photo/md/874.jpg")

	svc := m.newService(Config{})
	urls, err := svc.ResolveMany(context.Background(), domain.AssetKindPlayerPhoto, []int64{874})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{874: "https://cdn.example.com/player_photo/md/874.jpg"}, urls)
}

func TestPlaceholderURLFallsBackToStorage(t *testing.T) {
	m := setupTest(t)
	defer m.tearDown()

	m.storage.EXPECT().PublicURL("placeholders/team_logo.png").
		Return("https://blob.example.com/storage/v1/object/public/assets/placeholders/team_logo.png")

	svc := NewService(m.store, m.origin, m.storage, m.transformer, m.clock, Config{})
	url := svc.PlaceholderURL(domain.AssetKindTeamLogo)
	assert.Equal(t, "https://blob.example.com/storage/v1/object/public/assets/placeholders/team_logo.png", url)
}
