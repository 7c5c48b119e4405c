package receipts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	receiptRepo "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/receipt"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts/models"
)

const (
	// DefaultListLimit максимальное число квитанций в ответе ListByEmail
	DefaultListLimit = 50

	// MaxBookingRefLength совпадает с колонкой receipts.booking_ref
	MaxBookingRefLength = 64
)

// Service сервис для чтения квитанций отправленных бронирований
type Service struct {
	receiptRepo ReceiptRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса квитанций
func NewService(receiptRepo ReceiptRepository, logger Logger) *Service {
	return &Service{
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

// GetByBookingRef получает квитанцию по номеру бронирования.
// Последовательный ID наружу как ключ не используется.
func (s *Service) GetByBookingRef(ctx context.Context, bookingRef string) (*models.ReceiptResponse, error) {
	bookingRef = strings.TrimSpace(bookingRef)
	if bookingRef == "" || len(bookingRef) > MaxBookingRefLength {
		return nil, fmt.Errorf("%w: booking ref must be 1..%d characters", ErrInvalidInput, MaxBookingRefLength)
	}

	s.logger.Info("GetByBookingRef: fetching receipt booking_ref=%s", bookingRef)

	rec, err := s.receiptRepo.GetByBookingRef(ctx, bookingRef)
	if err != nil {
		if errors.Is(err, receiptRepo.ErrReceiptNotFound) {
			s.logger.Warn("GetByBookingRef: receipt booking_ref=%s not found", bookingRef)
			return nil, ErrReceiptNotFound
		}
		s.logger.Error("GetByBookingRef: repository error for booking_ref=%s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: GetByBookingRef - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReceipt(rec), nil
}

// ListByEmail получает квитанции клиента, новые первыми
func (s *Service) ListByEmail(ctx context.Context, email string) (*models.ReceiptListResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	receipts, err := s.receiptRepo.ListByEmail(ctx, email, DefaultListLimit)
	if err != nil {
		s.logger.Error("ListByEmail: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByEmail - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByEmail: fetched %d receipts", len(receipts))
	return models.FromDomainReceiptList(receipts), nil
}
