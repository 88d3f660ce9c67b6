package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"safelife/models"
	"safelife/utils"
)

const (
	resetTokenPrefix = "reset:"
	resetTokenTTL    = 30 * time.Minute
)

// SignOut revokes the cached token hash, invalidating the current session.
func (s *DefaultUserService) SignOut(ctx context.Context, userID string) error {
	if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// DeleteAccount removes the account and its active session.
func (s *DefaultUserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("DeleteAccount: failed to clear session",
			zap.String("userId", userID), zap.Error(err))
	}
	return nil
}

// RequestPasswordReset issues a single-use reset token for the account. The
// token is what the reset mail would carry; it expires after resetTokenTTL.
// An unknown email gets the same success shape so addresses cannot be probed.
func (s *DefaultUserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	userRec, err := s.Repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		utils.GetLogger().Error("RequestPasswordReset: lookup failed", zap.Error(err))
		return "", fmt.Errorf("password reset failed, please try again")
	}
	if userRec == nil {
		return "", nil
	}

	token := uuid.New().String()
	if err := s.ResetCache.Set(ctx, resetTokenPrefix+token, userRec.ID, resetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("password reset failed, please try again")
	}
	return token, nil
}

// ConfirmPasswordReset consumes the token and sets the new password.
func (s *DefaultUserService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return NewValidationError("reset token is required")
	}
	if newPassword == "" {
		return NewValidationError("new password is required")
	}

	userID, err := s.ResetCache.Get(ctx, resetTokenPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return NewValidationError("reset token is invalid or expired")
		}
		return fmt.Errorf("password reset failed, please try again")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password reset failed, please try again")
	}
	if err := s.Repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}
	// Single use: the token dies with the reset.
	_ = s.ResetCache.Del(ctx, resetTokenPrefix+token).Err()
	return nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// GetUserType resolves the account type for routing. Failures collapse to ""
// after logging; the client falls back to the default home screen.
func (s *DefaultUserService) GetUserType(ctx context.Context, userID string) string {
	userRec, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("GetUserType: lookup failed",
			zap.String("userId", userID), zap.Error(err))
		return ""
	}
	return userRec.UserType
}

// GetConsent reads the privacy policy consent flag.
func (s *DefaultUserService) GetConsent(ctx context.Context, userID string) (bool, error) {
	userRec, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return userRec.PrivacyConsent, nil
}

// AcceptConsent records the privacy policy acceptance, written once.
func (s *DefaultUserService) AcceptConsent(ctx context.Context, userID string) error {
	return s.Repo.SetConsent(ctx, userID, time.Now())
}
