// Package pricing computes reservation totals and per-participant shares.
// All functions are pure; money amounts are split in currency minor units so
// the shares always sum back to the total.
package pricing

import (
	"math"

	"pitchbook/models"
)

// minorUnitFactor converts major currency amounts to minor units (cents).
const minorUnitFactor = 100

// MinorUnits converts a major-unit amount (e.g. 22.50) to minor units (2250).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * minorUnitFactor))
}

// MajorUnits converts minor units back to a major-unit amount.
func MajorUnits(amount int64) float64 {
	return float64(amount) / minorUnitFactor
}

// Total sums the prices of the given sessions.
func (c Calculator) Total(sessions []models.Session) (float64, error) {
	if len(sessions) == 0 {
		return 0, ErrNoSessions
	}
	var totalMinor int64
	for _, s := range sessions {
		totalMinor += MinorUnits(s.Price)
	}
	return MajorUnits(totalMinor), nil
}

// Shares divides the total evenly across participantCount payers and returns
// each payer's amount in minor units, organizer first. The division remainder
// lands on the organizer's share, so the shares always sum to the total.
func (c Calculator) Shares(total float64, participantCount int) ([]int64, error) {
	if participantCount < 1 {
		return nil, ErrBadParticipantCount
	}
	totalMinor := MinorUnits(total)
	if totalMinor <= 0 {
		return nil, ErrBadTotal
	}

	base := totalMinor / int64(participantCount)
	remainder := totalMinor % int64(participantCount)

	shares := make([]int64, participantCount)
	for i := range shares {
		shares[i] = base
	}
	shares[0] += remainder
	return shares, nil
}

// Calculator is a stateless price calculator. A value type so services can
// embed it without wiring.
type Calculator struct{}
