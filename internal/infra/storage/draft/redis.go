package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

const (
	keyPrefix        = "booking:draft:"
	maxUpdateRetries = 5
)

// RedisStore хранит черновики в Redis с TTL.
// Update использует WATCH/MULTI: при конкурентной записи транзакция повторяется.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	now    clock
}

// NewRedisStore создает хранилище поверх готового клиента
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = domain.DefaultDraftTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create сохраняет новый черновик (SET NX)
func (s *RedisStore) Create(ctx context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error) {
	stored := d.Clone()
	s.touch(stored)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}

	payload, err := encode(stored)
	if err != nil {
		return nil, err
	}

	ok, err := s.client.SetNX(ctx, key(stored.ID), payload, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - setnx: %v", ErrBackend, err)
	}
	if !ok {
		return nil, ErrDraftExists
	}

	return stored, nil
}

// Get читает черновик
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.BookingDraft, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get: %v", ErrBackend, err)
	}
	return decode(data)
}

// Update атомарно изменяет черновик
func (s *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*domain.BookingDraft, error) {
	k := key(id)
	var result *domain.BookingDraft

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrDraftNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: Update - get: %v", ErrBackend, err)
		}

		d, err := decode(data)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		d.ID = id
		s.touch(d)

		payload, err := encode(d)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = d
		return nil
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := s.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: draft %s after %d attempts", ErrConflict, id, maxUpdateRetries)
}

// Delete удаляет черновик
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrBackend, err)
	}
	return nil
}

// Ping проверяет доступность Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrBackend, err)
	}
	return nil
}

func (s *RedisStore) touch(d *domain.BookingDraft) {
	now := s.now()
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(s.ttl)
}

func key(id string) string {
	return keyPrefix + id
}

func encode(d *domain.BookingDraft) ([]byte, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return payload, nil
}

func decode(data []byte) (*domain.BookingDraft, error) {
	var d domain.BookingDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &d, nil
}
