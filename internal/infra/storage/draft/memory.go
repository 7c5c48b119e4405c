package draft

import (
	"context"
	"sync"
	"time"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

// MemoryStore хранит черновики в памяти процесса.
// Черновики живут ttl с момента последнего изменения.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]*domain.BookingDraft
	ttl    time.Duration
	gauge  Gauge
	now    clock
}

// NewMemoryStore создает хранилище; gauge может быть nil
func NewMemoryStore(ttl time.Duration, gauge Gauge) *MemoryStore {
	if ttl <= 0 {
		ttl = domain.DefaultDraftTTL
	}
	return &MemoryStore{
		drafts: make(map[string]*domain.BookingDraft),
		ttl:    ttl,
		gauge:  gauge,
		now:    time.Now,
	}
}

// Create сохраняет новый черновик
func (s *MemoryStore) Create(_ context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.drafts[d.ID]; ok && !existing.IsExpired(s.now()) {
		return nil, ErrDraftExists
	}

	stored := d.Clone()
	s.touch(stored)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}
	s.drafts[stored.ID] = stored
	s.reportSize()

	return stored.Clone(), nil
}

// Get возвращает копию черновика
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return d.Clone(), nil
}

// Update атомарно изменяет черновик; fn вызывается под блокировкой и не должен блокироваться
func (s *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (*domain.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	work := current.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.ID = id
	s.touch(work)
	s.drafts[id] = work

	return work.Clone(), nil
}

// Delete удаляет черновик; отсутствие черновика не ошибка
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, id)
	s.reportSize()
	return nil
}

// Len возвращает количество хранимых черновиков (включая истекшие, но не вычищенные)
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// RunJanitor периодически удаляет истекшие черновики до отмены контекста
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purgeExpired()
		}
	}
}

func (s *MemoryStore) purgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, d := range s.drafts {
		if d.IsExpired(now) {
			delete(s.drafts, id)
			removed++
		}
	}
	s.reportSize()
	return removed
}

func (s *MemoryStore) lookup(id string) (*domain.BookingDraft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if d.IsExpired(s.now()) {
		delete(s.drafts, id)
		s.reportSize()
		return nil, ErrDraftNotFound
	}
	return d, nil
}

func (s *MemoryStore) touch(d *domain.BookingDraft) {
	now := s.now()
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(s.ttl)
}

func (s *MemoryStore) reportSize() {
	if s.gauge != nil {
		s.gauge.SetActiveDrafts(len(s.drafts))
	}
}
