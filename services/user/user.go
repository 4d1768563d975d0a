package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "pitchbook/database/repository/user"
	"pitchbook/models"
	"pitchbook/services/reservation"
	"pitchbook/utils"
)

// RegisterInput carries a new account request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FCMToken string `json:"fcmToken,omitempty"`
}

// AuthResponse is returned on successful registration.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// UserService covers the slice of account management the booking core needs:
// registration (which attaches pending invitations to the new account) and
// lookups used by participant resolution and notifications.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo         userRepo.UserRepository
	Reservations reservation.ReservationService
	Logger       *zap.Logger
}

// Register creates the account, then rewrites any pending reservation
// placeholders for the email to the new user id. Resolution failures are
// logged and absorbed: the account is created either way and resolution can
// be repeated.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.ValidationError{Message: "a valid email is required"}
	}
	if len(input.Password) < 8 {
		return nil, utils.ValidationError{Message: "password must be at least 8 characters"}
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, utils.ConflictError{Message: fmt.Sprintf("an account already exists for %s", email)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		FCMToken:     input.FCMToken,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	if err := s.Reservations.ResolveParticipant(ctx, email, u.ID); err != nil {
		s.Logger.Error("failed to resolve pending invitations for new user",
			zap.String("userId", u.ID), zap.String("email", email), zap.Error(err))
	}

	token, err := utils.GenerateToken(u.ID, "user", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.Logger.Info("user registered", zap.String("userId", u.ID))
	return &AuthResponse{User: *u, Token: token}, nil
}

// GetByID retrieves a user by id.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NotFoundError{Message: fmt.Sprintf("user %s not found", id)}
		}
		return nil, err
	}
	return u, nil
}

// UpdateFCMToken stores the device token used for push notifications.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.FCMToken = token
	return s.Repo.Update(u)
}
