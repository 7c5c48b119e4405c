package drafts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
)

// Service сервис жизненного цикла черновиков бронирования
type Service struct {
	store  DraftStore
	logger Logger
	newID  func() string
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(store DraftStore, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Create создает черновик. Студия и шаг из запроса опциональны.
func (s *Service) Create(ctx context.Context, req *models.CreateDraftRequest) (*models.DraftResponse, error) {
	d := &domain.BookingDraft{
		ID:   s.newID(),
		Step: domain.FirstStep,
	}

	if req != nil && req.Studio != nil {
		if strings.TrimSpace(req.Studio.ID) == "" {
			return nil, fmt.Errorf("%w: studio id is required", ErrInvalidInput)
		}
		d.Studio = &domain.StudioRef{ID: req.Studio.ID, Name: req.Studio.Name, Thumbnail: req.Studio.Thumbnail}
	}
	if req != nil && req.Step != nil {
		d.Step = domain.Step(*req.Step).Clamp()
	}
	// Нельзя начать дальше первого незаполненного шага
	for step := domain.FirstStep; step < d.Step; step++ {
		if selection.Validate(d, step) != nil {
			d.Step = step
			break
		}
	}

	created, err := s.store.Create(ctx, d)
	if err != nil {
		s.logger.Error("Create: store error for draft=%s: %v", d.ID, err)
		return nil, fmt.Errorf("%w: Create - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: draft=%s created at step=%s", created.ID, created.Step)
	return models.FromDomainDraft(created), nil
}

// Get возвращает черновик с пересчитанными суммами
func (s *Service) Get(ctx context.Context, id string) (*models.DraftResponse, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapError("Get", id, err)
	}
	return models.FromDomainDraft(d), nil
}

// Mutate атомарно применяет список изменений
func (s *Service) Mutate(ctx context.Context, id string, mutations []selection.Mutation) (*models.DraftResponse, error) {
	if len(mutations) == 0 {
		return nil, fmt.Errorf("%w: at least one mutation is required", ErrInvalidInput)
	}

	names := make([]string, 0, len(mutations))
	for _, m := range mutations {
		if m == nil {
			return nil, fmt.Errorf("%w: nil mutation", ErrInvalidInput)
		}
		names = append(names, m.Name())
	}

	updated, err := s.store.Update(ctx, id, func(d *domain.BookingDraft) error {
		if d.Submitting {
			return ErrDraftLocked
		}
		return selection.Apply(d, mutations...)
	})
	if err != nil {
		return nil, s.mapError("Mutate", id, err)
	}

	s.logger.Info("Mutate: draft=%s applied %s", id, strings.Join(names, ","))
	return models.FromDomainDraft(updated), nil
}

// Next переходит к следующему шагу, если текущий заполнен
func (s *Service) Next(ctx context.Context, id string) (*models.DraftResponse, error) {
	updated, err := s.store.Update(ctx, id, func(d *domain.BookingDraft) error {
		if d.Submitting {
			return ErrDraftLocked
		}
		return selection.NextStep(d)
	})
	if err != nil {
		return nil, s.mapError("Next", id, err)
	}

	s.logger.Info("Next: draft=%s now at step=%s", id, updated.Step)
	return models.FromDomainDraft(updated), nil
}

// Prev возвращается на предыдущий шаг
func (s *Service) Prev(ctx context.Context, id string) (*models.DraftResponse, error) {
	updated, err := s.store.Update(ctx, id, func(d *domain.BookingDraft) error {
		if d.Submitting {
			return ErrDraftLocked
		}
		selection.PrevStep(d)
		return nil
	})
	if err != nil {
		return nil, s.mapError("Prev", id, err)
	}

	s.logger.Info("Prev: draft=%s now at step=%s", id, updated.Step)
	return models.FromDomainDraft(updated), nil
}

// Discard удаляет черновик (пользователь покинул мастер)
func (s *Service) Discard(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return s.mapError("Discard", id, err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mapError("Discard", id, err)
	}

	s.logger.Info("Discard: draft=%s removed", id)
	return nil
}

func (s *Service) mapError(op, id string, err error) error {
	switch {
	case errors.Is(err, draftStore.ErrDraftNotFound):
		s.logger.Warn("%s: draft=%s not found", op, id)
		return ErrDraftNotFound
	case errors.Is(err, ErrDraftLocked):
		s.logger.Warn("%s: draft=%s is locked by submission", op, id)
		return ErrDraftLocked
	case errors.Is(err, selection.ErrStepInvalid):
		s.logger.Warn("%s: draft=%s: %v", op, id, err)
		return fmt.Errorf("%w: %w", ErrStepIncomplete, err)
	case errors.Is(err, selection.ErrPrerequisite):
		s.logger.Warn("%s: draft=%s: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrPrerequisite, err)
	case errors.Is(err, selection.ErrInvalidValue),
		errors.Is(err, selection.ErrSlotOutOfDay),
		errors.Is(err, selection.ErrUnknownEndSlot):
		s.logger.Warn("%s: draft=%s: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: draft=%s store error: %v", op, id, err)
		return fmt.Errorf("%w: %s - store error: %v", ErrInternal, op, err)
	}
}
