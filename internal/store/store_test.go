package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/store/schema"
)

// RunStoreTests runs the store test suite against any Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	t.Run("DataRecordRoundTrip", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()

		// Missing record returns nil, nil
		record, err := s.GetDataRecord(ctx, 42, domain.DataKindTeamInfo, 0)
		require.NoError(t, err)
		assert.Nil(t, record)

		fetchedAt := time.Now().UTC().Truncate(time.Millisecond)
		err = s.UpsertDataRecord(ctx, UpsertDataRecordInput{
			SubjectID: 42,
			DataKind:  domain.DataKindTeamInfo,
			Season:    0,
			Payload:   datatypes.JSON(`{"name":"Arsenal"}`),
			FetchedAt: fetchedAt,
		})
		require.NoError(t, err)

		record, err = s.GetDataRecord(ctx, 42, domain.DataKindTeamInfo, 0)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, int64(42), record.SubjectID)
		assert.JSONEq(t, `{"name":"Arsenal"}`, string(record.Payload))
		assert.WithinDuration(t, fetchedAt, record.UpdatedAt, time.Second)
	})

	t.Run("DataRecordUpsertOverwrites", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()

		first := time.Now().UTC().Add(-time.Hour)
		require.NoError(t, s.UpsertDataRecord(ctx, UpsertDataRecordInput{
			SubjectID: 7,
			DataKind:  domain.DataKindStandings,
			Season:    2025,
			Payload:   datatypes.JSON(`{"rank":3}`),
			FetchedAt: first,
		}))

		second := time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, s.UpsertDataRecord(ctx, UpsertDataRecordInput{
			SubjectID: 7,
			DataKind:  domain.DataKindStandings,
			Season:    2025,
			Payload:   datatypes.JSON(`{"rank":1}`),
			FetchedAt: second,
		}))

		record, err := s.GetDataRecord(ctx, 7, domain.DataKindStandings, 2025)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.JSONEq(t, `{"rank":1}`, string(record.Payload))
		assert.WithinDuration(t, second, record.UpdatedAt, time.Second)
	})

	t.Run("DataRecordSeasonsAreIndependent", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()

		now := time.Now().UTC()
		for _, season := range []int{2024, 2025} {
			require.NoError(t, s.UpsertDataRecord(ctx, UpsertDataRecordInput{
				SubjectID: 9,
				DataKind:  domain.DataKindSquad,
				Season:    season,
				Payload:   datatypes.JSON(fmt.Sprintf(`{"season":%d}`, season)),
				FetchedAt: now,
			}))
		}

		record, err := s.GetDataRecord(ctx, 9, domain.DataKindSquad, 2024)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.JSONEq(t, `{"season":2024}`, string(record.Payload))

		record, err = s.GetDataRecord(ctx, 9, domain.DataKindSquad, 2025)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.JSONEq(t, `{"season":2025}`, string(record.Payload))
	})

	t.Run("AcquireAssetLockFirstCallerWins", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()
		now := time.Now().UTC()

		acquired, err := s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindPlayerPhoto,
			EntityID:           100,
			Now:                now,
			PendingStaleBefore: now.Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		assert.True(t, acquired)

		// Second attempt against a live pending row must lose
		acquired, err = s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindPlayerPhoto,
			EntityID:           100,
			Now:                now.Add(time.Second),
			PendingStaleBefore: now.Add(time.Second).Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		assert.False(t, acquired)

		record, err := s.GetAssetRecord(ctx, domain.AssetKindPlayerPhoto, 100)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, schema.AssetStatusPending, record.Status)
	})

	t.Run("AcquireAssetLockTakesOverAbandonedPending", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()
		start := time.Now().UTC()

		acquired, err := s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindTeamLogo,
			EntityID:           200,
			Now:                start,
			PendingStaleBefore: start.Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		require.True(t, acquired)

		// A caller arriving after the pending max age may take over
		later := start.Add(6 * time.Minute)
		acquired, err = s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindTeamLogo,
			EntityID:           200,
			Now:                later,
			PendingStaleBefore: later.Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		assert.True(t, acquired)

		record, err := s.GetAssetRecord(ctx, domain.AssetKindTeamLogo, 200)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, schema.AssetStatusPending, record.Status)
		assert.WithinDuration(t, later, record.CheckedAt, time.Second)
	})

	t.Run("AcquireAssetLockAfterReady", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()
		now := time.Now().UTC()

		acquired, err := s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindLeagueLogo,
			EntityID:           300,
			Now:                now,
			PendingStaleBefore: now.Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, s.MarkAssetReady(ctx, domain.AssetKindLeagueLogo, 300, "league_logo/300", now))

		// Re-materialization of a ready asset re-acquires the lock
		acquired, err = s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindLeagueLogo,
			EntityID:           300,
			Now:                now.Add(time.Minute),
			PendingStaleBefore: now.Add(time.Minute).Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("MarkAssetReadyAndError", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Millisecond)

		acquired, err := s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindVenuePhoto,
			EntityID:           400,
			Now:                now,
			PendingStaleBefore: now.Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, s.MarkAssetReady(ctx, domain.AssetKindVenuePhoto, 400, "venue_photo/400", now))

		record, err := s.GetAssetRecord(ctx, domain.AssetKindVenuePhoto, 400)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, schema.AssetStatusReady, record.Status)
		assert.Equal(t, "venue_photo/400", record.StoragePath)
		assert.Nil(t, record.ErrorMessage)

		later := now.Add(time.Minute)
		acquired, err = s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindVenuePhoto,
			EntityID:           400,
			Now:                later,
			PendingStaleBefore: later.Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, s.MarkAssetError(ctx, domain.AssetKindVenuePhoto, 400, "origin returned 404", later))

		record, err = s.GetAssetRecord(ctx, domain.AssetKindVenuePhoto, 400)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, schema.AssetStatusError, record.Status)
		require.NotNil(t, record.ErrorMessage)
		assert.Equal(t, "origin returned 404", *record.ErrorMessage)
		assert.WithinDuration(t, later, record.CheckedAt, time.Second)
	})

	t.Run("GetAssetRecordsBulk", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()
		now := time.Now().UTC()

		for _, id := range []int64{500, 501, 502} {
			acquired, err := s.AcquireAssetLock(ctx, AcquireAssetLockInput{
				AssetKind:          domain.AssetKindPlayerPhoto,
				EntityID:           id,
				Now:                now,
				PendingStaleBefore: now.Add(-5 * time.Minute),
			})
			require.NoError(t, err)
			require.True(t, acquired)
		}

		records, err := s.GetAssetRecords(ctx, domain.AssetKindPlayerPhoto, []int64{500, 501, 502, 999})
		require.NoError(t, err)
		assert.Len(t, records, 3)

		// Empty input short-circuits without a query
		records, err = s.GetAssetRecords(ctx, domain.AssetKindPlayerPhoto, nil)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ListReadyAssetsCheckedBefore", func(t *testing.T) {
		s := initDB(t)
		ctx := context.Background()
		now := time.Now().UTC()
		old := now.Add(-40 * 24 * time.Hour)

		// Two old ready assets, one recent, one old error
		for i, checkedAt := range []time.Time{old, old.Add(time.Hour), now} {
			id := int64(600 + i)
			acquired, err := s.AcquireAssetLock(ctx, AcquireAssetLockInput{
				AssetKind:          domain.AssetKindCoachPhoto,
				EntityID:           id,
				Now:                checkedAt,
				PendingStaleBefore: checkedAt.Add(-5 * time.Minute),
			})
			require.NoError(t, err)
			require.True(t, acquired)
			require.NoError(t, s.MarkAssetReady(ctx, domain.AssetKindCoachPhoto, id, "coach_photo/x", checkedAt))
		}

		acquired, err := s.AcquireAssetLock(ctx, AcquireAssetLockInput{
			AssetKind:          domain.AssetKindCoachPhoto,
			EntityID:           700,
			Now:                old,
			PendingStaleBefore: old.Add(-5 * time.Minute),
		})
		require.NoError(t, err)
		require.True(t, acquired)
		require.NoError(t, s.MarkAssetError(ctx, domain.AssetKindCoachPhoto, 700, "boom", old))

		cutoff := now.Add(-30 * 24 * time.Hour)
		records, err := s.ListReadyAssetsCheckedBefore(ctx, cutoff, 10, 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, record := range records {
			assert.Equal(t, schema.AssetStatusReady, record.Status)
			assert.True(t, record.CheckedAt.Before(cutoff))
		}

		// Pagination by last seen ID
		page, err := s.ListReadyAssetsCheckedBefore(ctx, cutoff, 1, 0)
		require.NoError(t, err)
		require.Len(t, page, 1)
		next, err := s.ListReadyAssetsCheckedBefore(ctx, cutoff, 1, page[0].ID)
		require.NoError(t, err)
		require.Len(t, next, 1)
		assert.Greater(t, next[0].ID, page[0].ID)
	})
}
