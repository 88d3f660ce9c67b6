package user

import (
	"context"

	"github.com/go-redis/redis/v8"

	userRepo "safelife/database/repository/user"
	"safelife/models"
)

// SignupRequest carries the fields of the registration form. Professionals
// must supply a CRP registration number.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	UserType        string `json:"userType"`
	CRP             string `json:"crp"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthResponse contains the authenticated user's ID, token, and profile.
type AuthResponse struct {
	ID             string `json:"id"`
	Token          string `json:"token"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	UserType       string `json:"userType,omitempty"`
	PrivacyConsent bool   `json:"privacyConsent"`
}

// AvailabilitySeeder creates a professional's availability document on first
// registration. Satisfied by the availability repository.
type AvailabilitySeeder interface {
	EnsureForProfessional(ctx context.Context, prof models.Professional) error
}

// UserService covers account lifecycle: registration, authentication,
// sign-out, deletion, password reset, and the privacy consent flag.
type UserService interface {
	Register(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	SignOut(ctx context.Context, userID string) error
	DeleteAccount(ctx context.Context, userID string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error

	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	// GetUserType returns the account type, or "" when the lookup fails; the
	// client routes to the default home screen in that case.
	GetUserType(ctx context.Context, userID string) string

	GetConsent(ctx context.Context, userID string) (bool, error)
	AcceptConsent(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo         userRepo.UserRepository
	Availability AvailabilitySeeder
	AuthCache    *redis.Client
	ResetCache   *redis.Client
}
