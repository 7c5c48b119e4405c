package studioapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxErrorBodySize = 64 << 10

// Операции (метки метрик)
const (
	OpAvailableSlots    = "available_slots"
	OpAvailableEndSlots = "available_end_slots"
	OpApplyCoupon       = "apply_coupon"
	OpCreateBooking     = "create_booking"
)

// Client клиент для работы с REST API студий
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	observer   Observer
}

// NewClient создает новый экземпляр клиента; observer может быть nil
func NewClient(baseURL string, timeout time.Duration, log Logger, observer Observer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:      log,
		observer: observer,
	}
}

// GetAvailableSlots получает стартовые слоты студии на дату
func (c *Client) GetAvailableSlots(ctx context.Context, req AvailableSlotsRequest) ([]StartSlot, error) {
	var slots []StartSlot
	if err := c.post(ctx, OpAvailableSlots, "/bookings/available-slots", req, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetAvailableEndSlots получает допустимые окончания для выбранного начала и пакета
func (c *Client) GetAvailableEndSlots(ctx context.Context, req EndSlotsRequest) ([]EndSlot, error) {
	var slots []EndSlot
	if err := c.post(ctx, OpAvailableEndSlots, "/bookings/available-end-slots", req, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ApplyCoupon проверяет купон для email и возвращает процент скидки
func (c *Client) ApplyCoupon(ctx context.Context, req ApplyCouponRequest) (*CouponResult, error) {
	var result CouponResult
	if err := c.post(ctx, OpApplyCoupon, "/coupons/apply", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateBooking создает бронирование
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreatedBooking, error) {
	var created CreatedBooking
	if err := c.post(ctx, OpCreateBooking, "/bookings", req, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("%w: created booking has no id", ErrInvalidResponse)
	}
	return &created, nil
}

// post выполняет POST запрос и раскрывает конверт {"data": ...} в out
func (c *Client) post(ctx context.Context, op, path string, body, out interface{}) (err error) {
	started := time.Now()
	defer func() {
		c.observe(op, err, time.Since(started))
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &RejectedError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%w: response has no data", ErrInvalidResponse)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: failed to decode data: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) observe(op string, err error, duration time.Duration) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrRejected):
		outcome = "rejected"
	case errors.Is(err, ErrInvalidResponse):
		outcome = "invalid_response"
	default:
		outcome = "unavailable"
	}

	if err != nil && outcome != "rejected" {
		c.log.Error("studio API %s failed after %s: %v", op, duration, err)
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(op, outcome, duration)
	}
}

// readErrorMessage извлекает сообщение из тела ошибки: {"message": ...} или {"error": ...}
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil || len(data) == 0 {
		return ""
	}

	var parsed ErrorResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return parsed.Error
}
