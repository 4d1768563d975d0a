package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"pitchbook/models"
	"pitchbook/services/pricing"
	"pitchbook/services/reservation"
	"pitchbook/utils"
)

// planTTL is how long an initiated payment plan stays cached. Within the
// window, repeated initiations return the same charge references instead of
// opening duplicate charges.
const planTTL = 30 * time.Minute

// ConfirmResult reports the outcome of one payment confirmation.
type ConfirmResult struct {
	FullyConfirmed bool   `json:"fullyConfirmed"`
	Message        string `json:"message"`
}

// PaymentCoordinator creates payment requests against the external provider
// and records confirmations on the reservation.
type PaymentCoordinator interface {
	// Initiate builds the payment plan for a reservation: one charge for the
	// organizer under full payment, one charge per registered participant
	// under split payment.
	Initiate(ctx context.Context, reservationID string) (*models.PaymentPlan, error)
	// Confirm records one payer's completed payment. Idempotent.
	Confirm(ctx context.Context, reservationID, payerID string) (*ConfirmResult, error)
	// CheckCompletion reports whether the reservation is fully confirmed.
	CheckCompletion(ctx context.Context, reservationID string) (bool, error)
}

// DefaultPaymentCoordinator implements PaymentCoordinator.
type DefaultPaymentCoordinator struct {
	Reservations reservation.ReservationService
	Provider     PaymentProvider
	Pricing      pricing.Calculator
	Cache        *redis.Client
	Logger       *zap.Logger
	Currency     string
}

func (c *DefaultPaymentCoordinator) Initiate(ctx context.Context, reservationID string) (*models.PaymentPlan, error) {
	if cached := c.cachedPlan(ctx, reservationID); cached != nil {
		return cached, nil
	}

	res, err := c.Reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.TotalPrice <= 0 {
		return nil, utils.ValidationError{Message: fmt.Sprintf("reservation %s has a non-positive total", reservationID)}
	}

	plan, err := c.buildPlan(ctx, res)
	if err != nil {
		return nil, err
	}

	c.cachePlan(ctx, plan)
	c.Logger.Info("payment plan initiated",
		zap.String("reservationId", reservationID),
		zap.Bool("split", plan.Split),
		zap.Int("charges", len(plan.Requests)))
	return plan, nil
}

// buildPlan sizes and opens the charges. Under split payment the total is
// divided across the organizer plus every invited participant; charges are
// created only for payers with an account. A pending invitee's share becomes
// collectible once they register and the plan is re-initiated after expiry.
func (c *DefaultPaymentCoordinator) buildPlan(ctx context.Context, res *models.Reservation) (*models.PaymentPlan, error) {
	plan := &models.PaymentPlan{
		ReservationID: res.ID,
		Split:         res.IsSplitPayment,
	}

	if !res.IsSplitPayment {
		req, err := c.createRequest(ctx, res, res.OrganizerID, pricing.MinorUnits(res.TotalPrice))
		if err != nil {
			return nil, err
		}
		plan.Requests = append(plan.Requests, req)
		return plan, nil
	}

	shares, err := c.Pricing.Shares(res.TotalPrice, 1+len(res.Participants))
	if err != nil {
		return nil, utils.ValidationError{Message: err.Error()}
	}

	req, err := c.createRequest(ctx, res, res.OrganizerID, shares[0])
	if err != nil {
		return nil, err
	}
	plan.Requests = append(plan.Requests, req)

	for i, p := range res.Participants {
		if !p.Registered() {
			continue
		}
		req, err := c.createRequest(ctx, res, p.UserID, shares[i+1])
		if err != nil {
			return nil, err
		}
		plan.Requests = append(plan.Requests, req)
	}
	return plan, nil
}

// chargeKey is the provider idempotency key for one payer's charge. Stable
// across retries: if a later charge in the plan fails, re-initiating reuses
// the charges already opened instead of billing those payers again.
func chargeKey(reservationID, payerID string) string {
	return "initiate:" + reservationID + ":" + payerID
}

func (c *DefaultPaymentCoordinator) createRequest(ctx context.Context, res *models.Reservation, payerID string, amount int64) (models.PaymentRequest, error) {
	metadata := map[string]string{
		"reservationId":    res.ID,
		"bookingReference": res.BookingReference,
		"payerId":          payerID,
	}
	ref, err := c.Provider.CreateCharge(ctx, amount, c.Currency, chargeKey(res.ID, payerID), metadata)
	if err != nil {
		return models.PaymentRequest{}, err
	}
	return models.PaymentRequest{
		ReservationID:     res.ID,
		PayerID:           payerID,
		AmountMinorUnits:  amount,
		Currency:          c.Currency,
		ExternalReference: ref,
	}, nil
}

func (c *DefaultPaymentCoordinator) Confirm(ctx context.Context, reservationID, payerID string) (*ConfirmResult, error) {
	result, err := c.Reservations.RecordPayment(ctx, reservationID, payerID)
	if err != nil {
		return nil, err
	}

	if result.Confirmed {
		return &ConfirmResult{
			FullyConfirmed: true,
			Message:        "all payments received, reservation confirmed",
		}, nil
	}
	return &ConfirmResult{
		FullyConfirmed: false,
		Message:        fmt.Sprintf("payment recorded, waiting on %d more payer(s)", result.PendingCount),
	}, nil
}

func (c *DefaultPaymentCoordinator) CheckCompletion(ctx context.Context, reservationID string) (bool, error) {
	res, err := c.Reservations.Get(ctx, reservationID)
	if err != nil {
		return false, err
	}
	return res.Status == models.ReservationConfirmed, nil
}

func planKey(reservationID string) string {
	return "paymentplan:" + reservationID
}

func (c *DefaultPaymentCoordinator) cachedPlan(ctx context.Context, reservationID string) *models.PaymentPlan {
	if c.Cache == nil {
		return nil
	}
	data, err := c.Cache.Get(ctx, planKey(reservationID)).Result()
	if err != nil {
		return nil
	}
	var plan models.PaymentPlan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		c.Logger.Warn("failed to parse cached payment plan", zap.String("reservationId", reservationID), zap.Error(err))
		return nil
	}
	return &plan
}

func (c *DefaultPaymentCoordinator) cachePlan(ctx context.Context, plan *models.PaymentPlan) {
	if c.Cache == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		c.Logger.Warn("failed to marshal payment plan", zap.String("reservationId", plan.ReservationID), zap.Error(err))
		return
	}
	if err := c.Cache.Set(ctx, planKey(plan.ReservationID), data, planTTL).Err(); err != nil {
		c.Logger.Warn("failed to cache payment plan", zap.String("reservationId", plan.ReservationID), zap.Error(err))
	}
}
