package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"pitchbook/models"
	"pitchbook/services/reservation"
	"pitchbook/utils"
)

// --- fakes ---

// fakeProvider honors idempotency keys the way a real provider does: a key
// seen before returns the existing charge reference without opening a new
// charge. failOn makes the Nth call fail, for partial-failure scenarios.
type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	failOn  int
	refs    map[string]string
	charges []int64
}

func (p *fakeProvider) CreateCharge(ctx context.Context, amountMinorUnits int64, currency, idempotencyKey string, metadata map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failOn != 0 && p.calls == p.failOn {
		return "", utils.PaymentProviderError{Message: "failed to create charge", Err: errors.New("provider down")}
	}
	if ref, ok := p.refs[idempotencyKey]; ok {
		return ref, nil
	}
	if p.refs == nil {
		p.refs = map[string]string{}
	}
	p.charges = append(p.charges, amountMinorUnits)
	ref := fmt.Sprintf("pi_%d", len(p.charges))
	p.refs[idempotencyKey] = ref
	return ref, nil
}

type fakeReservationService struct {
	res          *models.Reservation
	recordResult *reservation.RecordPaymentResult
	recordErr    error
	recordedWith []string
}

func (s *fakeReservationService) Create(ctx context.Context, input models.CreateReservationInput) (*models.Reservation, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeReservationService) RecordPayment(ctx context.Context, reservationID, payerID string) (*reservation.RecordPaymentResult, error) {
	s.recordedWith = append(s.recordedWith, payerID)
	if s.recordErr != nil {
		return nil, s.recordErr
	}
	return s.recordResult, nil
}

func (s *fakeReservationService) ResolveParticipant(ctx context.Context, email, userID string) error {
	return nil
}

func (s *fakeReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	if s.res == nil || s.res.ID != id {
		return nil, utils.NotFoundError{Message: "reservation not found"}
	}
	return s.res, nil
}

func (s *fakeReservationService) GetByReference(ctx context.Context, ref string) (*models.Reservation, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeReservationService) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return nil, nil
}

func (s *fakeReservationService) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return nil, nil
}

func (s *fakeReservationService) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Reservation, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeReservationService) SetStatus(ctx context.Context, id, status string) (*models.Reservation, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeReservationService) Delete(ctx context.Context, id string) error { return nil }

func newCoordinator(res *models.Reservation, provider *fakeProvider) (*DefaultPaymentCoordinator, *fakeReservationService) {
	svc := &fakeReservationService{res: res}
	return &DefaultPaymentCoordinator{
		Reservations: svc,
		Provider:     provider,
		Logger:       zap.NewNop(),
		Currency:     "eur",
	}, svc
}

// --- tests ---

func TestInitiate(t *testing.T) {
	t.Parallel()

	t.Run("full payment opens one organizer charge", func(t *testing.T) {
		provider := &fakeProvider{}
		coordinator, _ := newCoordinator(&models.Reservation{
			ID:          "r1",
			OrganizerID: "u1",
			TotalPrice:  45.00,
			Participants: []models.Participant{
				{UserID: "u2"},
			},
			Status: models.ReservationPending,
		}, provider)

		plan, err := coordinator.Initiate(context.Background(), "r1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if plan.Split {
			t.Fatalf("expected a full-payment plan")
		}
		if len(plan.Requests) != 1 {
			t.Fatalf("expected 1 request, got %d", len(plan.Requests))
		}
		req := plan.Requests[0]
		if req.PayerID != "u1" || req.AmountMinorUnits != 4500 {
			t.Fatalf("expected organizer charged 4500, got %+v", req)
		}
		if req.ExternalReference == "" {
			t.Fatalf("expected a provider reference on the request")
		}
	})

	t.Run("split payment charges registered payers and skips placeholders", func(t *testing.T) {
		provider := &fakeProvider{}
		coordinator, _ := newCoordinator(&models.Reservation{
			ID:          "r1",
			OrganizerID: "u1",
			TotalPrice:  100.00,
			Participants: []models.Participant{
				{UserID: "u2"},
				{Email: "later@example.com"},
			},
			IsSplitPayment: true,
			Status:         models.ReservationPending,
		}, provider)

		plan, err := coordinator.Initiate(context.Background(), "r1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !plan.Split {
			t.Fatalf("expected a split plan")
		}
		// Three-way split of 100.00: organizer takes the remainder, the
		// unregistered invitee gets no charge yet.
		if len(plan.Requests) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(plan.Requests))
		}
		if plan.Requests[0].PayerID != "u1" || plan.Requests[0].AmountMinorUnits != 3334 {
			t.Fatalf("expected organizer charged 3334, got %+v", plan.Requests[0])
		}
		if plan.Requests[1].PayerID != "u2" || plan.Requests[1].AmountMinorUnits != 3333 {
			t.Fatalf("expected u2 charged 3333, got %+v", plan.Requests[1])
		}
	})

	t.Run("provider failure surfaces and opens nothing further", func(t *testing.T) {
		provider := &fakeProvider{failOn: 1}
		coordinator, _ := newCoordinator(&models.Reservation{
			ID:          "r1",
			OrganizerID: "u1",
			TotalPrice:  45.00,
			Status:      models.ReservationPending,
		}, provider)

		_, err := coordinator.Initiate(context.Background(), "r1")
		var providerErr utils.PaymentProviderError
		if !errors.As(err, &providerErr) {
			t.Fatalf("expected PaymentProviderError, got %v", err)
		}
		if len(provider.charges) != 0 {
			t.Fatalf("expected no charges recorded, got %v", provider.charges)
		}
	})

	t.Run("retry after partial failure reuses existing charges", func(t *testing.T) {
		provider := &fakeProvider{failOn: 2}
		coordinator, _ := newCoordinator(&models.Reservation{
			ID:          "r1",
			OrganizerID: "u1",
			TotalPrice:  45.00,
			Participants: []models.Participant{
				{UserID: "u2"},
			},
			IsSplitPayment: true,
			Status:         models.ReservationPending,
		}, provider)

		_, err := coordinator.Initiate(context.Background(), "r1")
		var providerErr utils.PaymentProviderError
		if !errors.As(err, &providerErr) {
			t.Fatalf("expected PaymentProviderError on first attempt, got %v", err)
		}

		plan, err := coordinator.Initiate(context.Background(), "r1")
		if err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if len(plan.Requests) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(plan.Requests))
		}
		// The organizer's charge from the failed attempt must be reused, not
		// duplicated.
		if len(provider.charges) != 2 {
			t.Fatalf("expected 2 charges opened across both attempts, got %d", len(provider.charges))
		}
		if plan.Requests[0].ExternalReference != "pi_1" {
			t.Fatalf("expected organizer request to carry the original reference, got %s", plan.Requests[0].ExternalReference)
		}
	})

	t.Run("unknown reservation yields not found", func(t *testing.T) {
		coordinator, _ := newCoordinator(nil, &fakeProvider{})

		_, err := coordinator.Initiate(context.Background(), "missing")
		var notFoundErr utils.NotFoundError
		if !errors.As(err, &notFoundErr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("rejects non-positive totals", func(t *testing.T) {
		coordinator, _ := newCoordinator(&models.Reservation{
			ID:          "r1",
			OrganizerID: "u1",
			TotalPrice:  0,
			Status:      models.ReservationPending,
		}, &fakeProvider{})

		_, err := coordinator.Initiate(context.Background(), "r1")
		var validationErr utils.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	t.Run("reports remaining payers while pending", func(t *testing.T) {
		coordinator, svc := newCoordinator(nil, &fakeProvider{})
		svc.recordResult = &reservation.RecordPaymentResult{Confirmed: false, PendingCount: 2}

		result, err := coordinator.Confirm(context.Background(), "r1", "u1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.FullyConfirmed {
			t.Fatalf("expected pending result")
		}
		if len(svc.recordedWith) != 1 || svc.recordedWith[0] != "u1" {
			t.Fatalf("expected RecordPayment called for u1, got %v", svc.recordedWith)
		}
	})

	t.Run("reports full confirmation on the last payment", func(t *testing.T) {
		coordinator, svc := newCoordinator(nil, &fakeProvider{})
		svc.recordResult = &reservation.RecordPaymentResult{Confirmed: true}

		result, err := coordinator.Confirm(context.Background(), "r1", "u2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !result.FullyConfirmed {
			t.Fatalf("expected fully confirmed result")
		}
	})

	t.Run("propagates recording errors", func(t *testing.T) {
		coordinator, svc := newCoordinator(nil, &fakeProvider{})
		svc.recordErr = utils.ValidationError{Message: "payer is not part of this reservation"}

		_, err := coordinator.Confirm(context.Background(), "r1", "intruder")
		var validationErr utils.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestCheckCompletion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status string
		want   bool
	}{
		{models.ReservationPending, false},
		{models.ReservationConfirmed, true},
		{models.ReservationCancelled, false},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			coordinator, _ := newCoordinator(&models.Reservation{ID: "r1", Status: tc.status}, &fakeProvider{})
			done, err := coordinator.CheckCompletion(context.Background(), "r1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if done != tc.want {
				t.Fatalf("status %s: got %v, want %v", tc.status, done, tc.want)
			}
		})
	}
}
