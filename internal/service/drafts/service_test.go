package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/selection"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts/models"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/logger"
)

func newTestService() (*Service, *draftStore.MemoryStore) {
	store := draftStore.NewMemoryStore(time.Hour, nil)
	svc := NewService(store, logger.NewNop())
	svc.newID = func() string { return "d1" }
	return svc, store
}

func intPtr(v int) *int { return &v }

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		req      *models.CreateDraftRequest
		wantStep int
		wantErr  error
	}{
		{name: "empty request", req: nil, wantStep: 1},
		{name: "studio seed", req: &models.CreateDraftRequest{Studio: &models.StudioInput{ID: "S1"}}, wantStep: 1},
		{
			name:     "studio seed with step",
			req:      &models.CreateDraftRequest{Studio: &models.StudioInput{ID: "S1"}, Step: intPtr(2)},
			wantStep: 2,
		},
		{
			name:     "step clamped to first incomplete step",
			req:      &models.CreateDraftRequest{Studio: &models.StudioInput{ID: "S1"}, Step: intPtr(9)},
			wantStep: 2,
		},
		{name: "step without studio", req: &models.CreateDraftRequest{Step: intPtr(3)}, wantStep: 1},
		{name: "blank studio id", req: &models.CreateDraftRequest{Studio: &models.StudioInput{ID: " "}}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			resp, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "d1", resp.ID)
			assert.Equal(t, tt.wantStep, resp.Step.Current)
			assert.Equal(t, domain.TotalSteps, resp.Step.Total)
		})
	}
}

func TestMutate_ScenarioTotals(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	_, err := svc.Create(ctx, &models.CreateDraftRequest{Studio: &models.StudioInput{ID: "S1", Name: "One"}})
	require.NoError(t, err)

	resp, err := svc.Mutate(ctx, "d1", []selection.Mutation{
		selection.SetStartSlot{StartTime: "10:00"},
	})
	assert.ErrorIs(t, err, ErrPrerequisite, "date is not selected yet")
	assert.Nil(t, resp)

	reqs := []models.MutationRequest{
		{Type: models.MutationDate, Value: json.RawMessage(`"2024-06-01"`)},
		{Type: models.MutationStudio, Value: json.RawMessage(`{"id":"S1","name":"One"}`)},
		{Type: models.MutationPackage, Value: json.RawMessage(`{"id":"P1","name":"Basic","pricePerHour":500}`)},
		{Type: models.MutationStartSlot, Value: json.RawMessage(`"10:00"`)},
		{Type: models.MutationDuration, Value: json.RawMessage(`3`)},
		{Type: models.MutationAddOnIncrement, Value: json.RawMessage(`{"id":"mic","name":"Mic","price":50}`)},
	}
	muts, err := models.ToMutations(reqs)
	require.NoError(t, err)

	resp, err = svc.Mutate(ctx, "d1", muts)
	require.NoError(t, err)
	assert.Equal(t, "13:00", resp.EndSlot)
	assert.Equal(t, 1500.0, resp.Totals.PackageTotal)
	assert.Equal(t, 50.0, resp.Totals.AddOnsTotal)
	assert.Equal(t, 1550.0, resp.Totals.TotalAfterDiscount)

	_, err = store.Update(ctx, "d1", func(d *domain.BookingDraft) error {
		return selection.ApplyCoupon(d, "SAVE20", 20)
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.InDelta(t, 310.0, got.Totals.DiscountAmount, 1e-9)
	assert.InDelta(t, 1240.0, got.Totals.TotalAfterDiscount, 1e-9)
}

func TestMutate_IsAtomic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, &models.CreateDraftRequest{Studio: &models.StudioInput{ID: "S1"}})
	require.NoError(t, err)

	_, err = svc.Mutate(ctx, "d1", []selection.Mutation{
		selection.SetPersonalInfoFirstName{Value: "Mona"},
		selection.SetDuration{Hours: 2},
	})
	assert.ErrorIs(t, err, ErrPrerequisite)

	got, err := svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, got.PersonalInfo.FirstName)
}

func TestMutate_Errors(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	_, err := svc.Mutate(ctx, "d1", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Mutate(ctx, "missing", []selection.Mutation{selection.ClearCoupon{}})
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.Mutate(ctx, "d1", []selection.Mutation{selection.SetPaymentMethod{Method: "BITCOIN"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = store.Update(ctx, "d1", func(d *domain.BookingDraft) error {
		d.Submitting = true
		return nil
	})
	require.NoError(t, err)

	_, err = svc.Mutate(ctx, "d1", []selection.Mutation{selection.ClearCoupon{}})
	assert.ErrorIs(t, err, ErrDraftLocked)
}

func TestNextPrev(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.Next(ctx, "d1")
	assert.ErrorIs(t, err, ErrStepIncomplete)

	resp, err := svc.Prev(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Step.Current, "prev on the first step is a no-op")

	_, err = svc.Mutate(ctx, "d1", []selection.Mutation{selection.SetStudio{Studio: domain.StudioRef{ID: "S1"}}})
	require.NoError(t, err)

	resp, err = svc.Next(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Step.Current)
	assert.Equal(t, "select_date_time", resp.Step.Name)

	resp, err = svc.Prev(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Step.Current)
}

func TestNextPrev_LockedDuringSubmission(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	_, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = store.Update(ctx, "d1", func(d *domain.BookingDraft) error {
		d.Studio = &domain.StudioRef{ID: "S1"}
		d.Step = domain.StepSelectDateTime
		d.Submitting = true
		return nil
	})
	require.NoError(t, err)

	_, err = svc.Next(ctx, "d1")
	assert.ErrorIs(t, err, ErrDraftLocked)

	_, err = svc.Prev(ctx, "d1")
	assert.ErrorIs(t, err, ErrDraftLocked)

	d, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectDateTime, d.Step)
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, "d1"))
	assert.ErrorIs(t, svc.Discard(ctx, "d1"), ErrDraftNotFound)

	_, err = svc.Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

type failingStore struct {
	DraftStore
}

func (failingStore) Create(context.Context, *domain.BookingDraft) (*domain.BookingDraft, error) {
	return nil, errors.New("redis down")
}

func TestCreate_StoreFailure(t *testing.T) {
	svc := NewService(failingStore{}, logger.NewNop())
	_, err := svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInternal)
}
