package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"safelife/models"
	"safelife/utils"
)

const tokenTTL = 24 * time.Hour

// Authenticate verifies credentials and issues a fresh token, replacing any
// previously cached token hash for the account.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, NewValidationError("email and password are required")
	}

	userRec, err := s.Repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := checkPassword(userRec.PasswordHash, password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	// Professionals may have registered before the availability collection
	// existed; merge on every login, never overwriting schedule data.
	if userRec.UserType == models.UserTypeProfessional {
		prof := models.Professional{
			ID:       userRec.ID,
			Name:     userRec.Name,
			Email:    userRec.Email,
			CRP:      userRec.CRP,
			UserType: userRec.UserType,
		}
		if err := s.Availability.EnsureForProfessional(ctx, prof); err != nil {
			utils.GetLogger().Warn("Authenticate: failed to ensure availability",
				zap.String("professionalId", userRec.ID), zap.Error(err))
		}
	}

	return s.issueToken(ctx, userRec)
}

func (s *DefaultUserService) issueToken(ctx context.Context, userRec *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(userRec.ID, userRec.Email, userRec.UserType, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	cacheKey := utils.AuthCachePrefix + userRec.ID
	if err := s.AuthCache.Set(ctx, cacheKey, utils.HashToken(token), tokenTTL).Err(); err != nil {
		utils.GetLogger().Error("issueToken: failed to cache token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:             userRec.ID,
		Token:          token,
		Name:           userRec.Name,
		Email:          userRec.Email,
		UserType:       userRec.UserType,
		PrivacyConsent: userRec.PrivacyConsent,
	}, nil
}
