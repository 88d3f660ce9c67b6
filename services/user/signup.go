package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"safelife/models"
	"safelife/utils"
)

// Register validates the signup form, creates the account, and signs the new
// user in. Professionals get their availability document seeded so the
// booking screens can find them right away.
func (s *DefaultUserService) Register(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validateSignup(req); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, NewValidationError("a user with this email already exists")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	newUser := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		UserType:     req.UserType,
		CRP:          req.CRP,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, newUser); err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if newUser.UserType == models.UserTypeProfessional {
		prof := models.Professional{
			ID:       newUser.ID,
			Name:     newUser.Name,
			Email:    newUser.Email,
			CRP:      newUser.CRP,
			UserType: newUser.UserType,
		}
		if err := s.Availability.EnsureForProfessional(ctx, prof); err != nil {
			// The account exists; availability is re-ensured on next login.
			utils.GetLogger().Warn("Register: failed to seed availability",
				zap.String("professionalId", newUser.ID), zap.Error(err))
		}
	}

	return s.issueToken(ctx, newUser)
}

func validateSignup(req SignupRequest) error {
	switch {
	case req.Name == "":
		return NewValidationError("name is required")
	case req.Email == "":
		return NewValidationError("email is required")
	case req.Phone == "":
		return NewValidationError("phone is required")
	case req.Password == "":
		return NewValidationError("password is required")
	case req.Password != req.ConfirmPassword:
		return NewValidationError("passwords do not match")
	case req.UserType != models.UserTypePatient && req.UserType != models.UserTypeProfessional:
		return NewValidationError("account type must be paciente or profissional")
	case req.UserType == models.UserTypeProfessional && req.CRP == "":
		return NewValidationError("CRP is required for professional accounts")
	}
	return nil
}
