package models

import (
	"reflect"
	"testing"
)

func TestRequiredPayerIDs(t *testing.T) {
	t.Parallel()

	t.Run("organizer first, registered participants after", func(t *testing.T) {
		r := Reservation{
			OrganizerID: "u1",
			Participants: []Participant{
				{UserID: "u2"},
				{Email: "pending@example.com"},
				{UserID: "u3"},
			},
		}
		got := r.RequiredPayerIDs()
		want := []string{"u1", "u2", "u3"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("never duplicates the organizer", func(t *testing.T) {
		r := Reservation{
			OrganizerID: "u1",
			Participants: []Participant{
				{UserID: "u1"},
				{UserID: "u2"},
			},
		}
		got := r.RequiredPayerIDs()
		want := []string{"u1", "u2"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}

func TestFullyPaid(t *testing.T) {
	t.Parallel()

	r := Reservation{
		OrganizerID: "u1",
		Participants: []Participant{
			{UserID: "u2"},
			{Email: "pending@example.com"},
		},
	}

	if r.FullyPaid() {
		t.Fatalf("expected unpaid reservation not to be fully paid")
	}

	r.PaidParticipantIDs = []string{"u1"}
	if r.FullyPaid() {
		t.Fatalf("expected one missing payer")
	}
	if got := r.PendingPayerCount(); got != 1 {
		t.Fatalf("expected 1 pending payer, got %d", got)
	}

	// The unresolved email placeholder is not a required payer.
	r.PaidParticipantIDs = []string{"u1", "u2"}
	if !r.FullyPaid() {
		t.Fatalf("expected fully paid once all registered payers paid")
	}
}
