package usecase

import (
	"context"
	"errors"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

// invalidCredentialsMsg is shared between the unknown-email and
// wrong-password paths so the response never reveals account existence.
const invalidCredentialsMsg = "Invalid email or password"

type authUsecase struct {
	admins  domain.AdminRepository
	tokens  *token.Service
	tracker *security.LoginTracker
	seclog  *security.SecurityLogger
}

func NewAuthUsecase(admins domain.AdminRepository, tokens *token.Service, tracker *security.LoginTracker) domain.AuthUsecase {
	return &authUsecase{
		admins:  admins,
		tokens:  tokens,
		tracker: tracker,
		seclog:  security.DefaultLogger(),
	}
}

// Login verifies credentials and issues a signed bearer token. Failed
// attempts are counted in Redis and mirrored to the admin row; crossing the
// threshold blocks the email and IP for the configured duration.
func (uc *authUsecase) Login(ctx context.Context, emailAddr, password, clientIP string) (string, error) {
	blocked, err := uc.tracker.IsBlocked(ctx, emailAddr, clientIP)
	if err != nil {
		logger.Log.Error("login block check failed", "error", err)
	}
	if blocked {
		uc.seclog.LogEvent(security.SecurityEvent{
			Event:   security.EventLoginBlocked,
			Subject: security.MaskEmail(emailAddr),
			IP:      clientIP,
		})
		return "", apperror.Unauthorized("Too many failed attempts. Try again later.")
	}

	admin, err := uc.admins.GetByEmail(ctx, emailAddr)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			// Unknown email must look exactly like a wrong password.
			uc.recordFailure(ctx, emailAddr, clientIP, false)
			return "", apperror.Unauthorized(invalidCredentialsMsg)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		uc.recordFailure(ctx, emailAddr, clientIP, true)
		return "", apperror.Unauthorized(invalidCredentialsMsg)
	}

	if !admin.IsActive {
		uc.seclog.LogEvent(security.SecurityEvent{
			Event:   security.EventLoginFailed,
			Subject: security.MaskEmail(emailAddr),
			IP:      clientIP,
			Details: map[string]interface{}{"reason": "account_disabled"},
		})
		return "", apperror.Forbidden("Account is disabled")
	}

	signed, err := uc.tokens.Issue(admin.Email, admin.Role)
	if err != nil {
		return "", apperror.Internal(err)
	}

	if err := uc.tracker.Reset(ctx, emailAddr, clientIP); err != nil {
		logger.Log.Error("failed to reset login tracker", "error", err)
	}
	if err := uc.admins.ResetLoginAttempts(ctx, emailAddr); err != nil {
		logger.Log.Error("failed to reset login attempts", "error", err)
	}

	uc.seclog.LogEvent(security.SecurityEvent{
		Event:   security.EventLoginSuccess,
		Subject: security.MaskEmail(emailAddr),
		IP:      clientIP,
	})
	return signed, nil
}

// Verify validates the token and returns its claims. All failure causes
// collapse into one externally-visible error; the cause is logged internally.
func (uc *authUsecase) Verify(ctx context.Context, tokenString string) (*domain.AuthClaims, error) {
	claims, err := uc.tokens.Verify(tokenString)
	if err != nil {
		logger.Log.Debug("token verification failed", "error", err)
		uc.seclog.LogEvent(security.SecurityEvent{Event: security.EventTokenRejected})
		return nil, apperror.Unauthorized("Invalid token")
	}
	return &domain.AuthClaims{Email: claims.Email, Role: claims.Role}, nil
}

// recordFailure updates both failure counters. knownAccount guards the DB
// counter so attempts against nonexistent emails do not error on the update.
func (uc *authUsecase) recordFailure(ctx context.Context, emailAddr, clientIP string, knownAccount bool) {
	if _, _, err := uc.tracker.RecordFailedAttempt(ctx, emailAddr, clientIP, "", ""); err != nil {
		logger.Log.Debug("login tracker unavailable", "error", err)
	}
	if knownAccount {
		if _, err := uc.admins.IncrementLoginAttempts(ctx, emailAddr); err != nil {
			logger.Log.Error("failed to increment login attempts", "error", err)
		}
	}
}
