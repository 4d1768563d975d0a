package venue

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	sessionRepo "pitchbook/database/repository/session"
	"pitchbook/models"
	"pitchbook/utils"
)

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo(sessions ...models.Session) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: map[string]*models.Session{}}
	for i := range sessions {
		s := sessions[i]
		repo.sessions[s.ID] = &s
	}
	return repo
}

func (r *fakeSessionRepo) GetByID(id string) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) GetByIDs(ids []string) ([]models.Session, error) {
	var out []models.Session
	for _, id := range ids {
		if s, ok := r.sessions[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindAvailable(venueID, fromDate, toDate, status string) ([]models.Session, error) {
	if status == "" {
		status = models.SessionAvailable
	}
	out := []models.Session{}
	for _, s := range r.sessions {
		if s.VenueID == venueID && s.Status == status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Create(session *models.Session) error {
	for _, existing := range r.sessions {
		if existing.VenueID == session.VenueID && existing.Date == session.Date &&
			existing.Status != models.SessionCanceled &&
			existing.Start < session.End && session.Start < existing.End {
			return sessionRepo.ErrConflict
		}
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) Claim(ctx context.Context, ids []string) error   { return nil }
func (r *fakeSessionRepo) Release(ctx context.Context, ids []string) error { return nil }

func (r *fakeSessionRepo) SetStatus(id, status string) error {
	s, ok := r.sessions[id]
	if !ok {
		return sessionRepo.ErrNotFound
	}
	s.Status = status
	return nil
}

func (r *fakeSessionRepo) Delete(id string) error {
	if _, ok := r.sessions[id]; !ok {
		return sessionRepo.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func newVenueService(repo *fakeSessionRepo) *DefaultVenueService {
	return &DefaultVenueService{Sessions: repo, Logger: zap.NewNop()}
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	valid := CreateSessionInput{Date: "2026-09-05", Start: 1080, End: 1140, Price: 20.00}

	t.Run("publishes an available session", func(t *testing.T) {
		svc := newVenueService(newFakeSessionRepo())

		session, err := svc.CreateSession(context.Background(), "v1", valid)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.Status != models.SessionAvailable {
			t.Fatalf("expected status available, got %s", session.Status)
		}
		if session.ID == "" {
			t.Fatalf("expected a generated session id")
		}
	})

	t.Run("rejects overlapping windows on the same date", func(t *testing.T) {
		svc := newVenueService(newFakeSessionRepo(models.Session{
			ID: "s1", VenueID: "v1", Date: "2026-09-05", Start: 1050, End: 1110, Price: 20.00, Status: models.SessionAvailable,
		}))

		_, err := svc.CreateSession(context.Background(), "v1", valid)
		var conflictErr utils.ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
	})

	t.Run("validates input", func(t *testing.T) {
		svc := newVenueService(newFakeSessionRepo())

		cases := []struct {
			name  string
			venue string
			input CreateSessionInput
		}{
			{"missing venue", "", valid},
			{"bad date", "v1", CreateSessionInput{Date: "05/09/2026", Start: 1080, End: 1140, Price: 20.00}},
			{"inverted window", "v1", CreateSessionInput{Date: "2026-09-05", Start: 1140, End: 1080, Price: 20.00}},
			{"end past midnight", "v1", CreateSessionInput{Date: "2026-09-05", Start: 1380, End: 1500, Price: 20.00}},
			{"non-positive price", "v1", CreateSessionInput{Date: "2026-09-05", Start: 1080, End: 1140, Price: 0}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.CreateSession(context.Background(), tc.venue, tc.input)
				var validationErr utils.ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
			})
		}
	})
}

func TestListSessions(t *testing.T) {
	t.Parallel()

	repo := newFakeSessionRepo(
		models.Session{ID: "s1", VenueID: "v1", Date: "2026-09-05", Status: models.SessionAvailable},
		models.Session{ID: "s2", VenueID: "v1", Date: "2026-09-05", Status: models.SessionBooked},
		models.Session{ID: "s3", VenueID: "v2", Date: "2026-09-05", Status: models.SessionAvailable},
	)
	svc := newVenueService(repo)

	t.Run("defaults to available sessions of the venue", func(t *testing.T) {
		sessions, err := svc.ListSessions(context.Background(), "v1", "", "", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(sessions) != 1 || sessions[0].ID != "s1" {
			t.Fatalf("expected only s1, got %v", sessions)
		}
	})

	t.Run("rejects unknown status filters", func(t *testing.T) {
		_, err := svc.ListSessions(context.Background(), "v1", "", "", "taken")
		var validationErr utils.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestCancelSession(t *testing.T) {
	t.Parallel()

	t.Run("marks the session canceled", func(t *testing.T) {
		repo := newFakeSessionRepo(models.Session{ID: "s1", VenueID: "v1", Status: models.SessionAvailable})
		svc := newVenueService(repo)

		if err := svc.CancelSession(context.Background(), "s1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo.sessions["s1"].Status != models.SessionCanceled {
			t.Fatalf("expected canceled, got %s", repo.sessions["s1"].Status)
		}
	})

	t.Run("unknown session yields not found", func(t *testing.T) {
		svc := newVenueService(newFakeSessionRepo())

		err := svc.CancelSession(context.Background(), "missing")
		var notFoundErr utils.NotFoundError
		if !errors.As(err, &notFoundErr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}
