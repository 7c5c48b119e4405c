package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clk := &fakeClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	s := NewRedisStore(client, ttl)
	s.now = clk.Now
	return s, mr, client
}

func TestRedisStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	s, mr, _ := newTestRedisStore(t, time.Hour)

	created, err := s.Create(ctx, &domain.BookingDraft{ID: "d1", Step: domain.FirstStep})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), created.ExpiresAt)
	assert.Equal(t, time.Hour, mr.TTL(key("d1")))

	got, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.Create(ctx, &domain.BookingDraft{ID: "d1"})
	assert.ErrorIs(t, err, ErrDraftExists)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRedisStore_Update(t *testing.T) {
	ctx := context.Background()
	s, mr, _ := newTestRedisStore(t, time.Hour)

	_, err := s.Create(ctx, &domain.BookingDraft{ID: "d1"})
	require.NoError(t, err)
	mr.FastForward(40 * time.Minute)

	updated, err := s.Update(ctx, "d1", func(d *domain.BookingDraft) error {
		d.PersonalInfo.Brand = "Acme"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.PersonalInfo.Brand)
	assert.Equal(t, time.Hour, mr.TTL(key("d1")), "update extends the ttl")

	errBoom := errors.New("boom")
	_, err = s.Update(ctx, "d1", func(d *domain.BookingDraft) error {
		d.PersonalInfo.Brand = "Other"
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	got, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.PersonalInfo.Brand, "failed update is not persisted")

	_, err = s.Update(ctx, "missing", func(*domain.BookingDraft) error { return nil })
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRedisStore_Expiration(t *testing.T) {
	ctx := context.Background()
	s, mr, _ := newTestRedisStore(t, 10*time.Minute)

	_, err := s.Create(ctx, &domain.BookingDraft{ID: "d1"})
	require.NoError(t, err)

	mr.FastForward(11 * time.Minute)

	_, err = s.Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, mr, _ := newTestRedisStore(t, time.Hour)

	_, err := s.Create(ctx, &domain.BookingDraft{ID: "d1"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "d1"))
	assert.False(t, mr.Exists(key("d1")))
	require.NoError(t, s.Delete(ctx, "d1"), "deleting a missing draft is not an error")
}

func TestRedisStore_UpdateRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	s, _, client := newTestRedisStore(t, time.Hour)

	_, err := s.Create(ctx, &domain.BookingDraft{ID: "d1"})
	require.NoError(t, err)

	// Параллельная запись между чтением и EXEC первой попытки
	concurrent, err := encode(&domain.BookingDraft{ID: "d1", PersonalInfo: domain.PersonalInfo{Brand: "Acme"}})
	require.NoError(t, err)

	attempts := 0
	updated, err := s.Update(ctx, "d1", func(d *domain.BookingDraft) error {
		attempts++
		if attempts == 1 {
			require.NoError(t, client.Set(ctx, key("d1"), concurrent, time.Hour).Err())
		}
		d.Duration = 2
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	assert.Equal(t, "Acme", updated.PersonalInfo.Brand, "retry sees the concurrent write")
	assert.Equal(t, 2, updated.Duration)
}

func TestRedisStore_UpdateGivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	s, _, client := newTestRedisStore(t, time.Hour)

	_, err := s.Create(ctx, &domain.BookingDraft{ID: "d1"})
	require.NoError(t, err)
	payload, err := encode(&domain.BookingDraft{ID: "d1"})
	require.NoError(t, err)

	attempts := 0
	_, err = s.Update(ctx, "d1", func(d *domain.BookingDraft) error {
		attempts++
		return client.Set(ctx, key("d1"), payload, time.Hour).Err()
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxUpdateRetries, attempts)
}

func TestRedisStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestRedisStore(t, time.Hour)

	_, err := s.Create(ctx, &domain.BookingDraft{ID: "d1"})
	require.NoError(t, err)

	// Каждый раунд WATCH выигрывает хотя бы один writer,
	// поэтому maxUpdateRetries writer'ов всегда укладываются в лимит попыток
	var wg sync.WaitGroup
	for i := 0; i < maxUpdateRetries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, "d1", func(d *domain.BookingDraft) error {
				d.Duration++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, maxUpdateRetries, got.Duration)
}
