package authservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/pkg/auth"
	"github.com/campuspoints/campuspoints/pkg/mailer"
	"github.com/campuspoints/campuspoints/pkg/ratelimit"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

const (
	tokenTTL      = 2 * time.Hour
	resetTokenTTL = 1 * time.Hour
)

type Repo interface {
	GetByUtorid(ctx context.Context, utorid string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, utorid string, at time.Time) error
	UpdatePassword(ctx context.Context, utorid, passwordHash string) error
	SetResetToken(ctx context.Context, utorid, token string, expires time.Time) error
	FindByResetToken(ctx context.Context, token string) (*domain.User, time.Time, error)
}

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	throttle    ratelimit.Store
	mail        mailer.MailerI
}

func New(userRepo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, throttle ratelimit.Store, mail mailer.MailerI) *Service {
	return &Service{
		userRepo:    userRepo,
		hashService: hashService,
		jwtService:  jwtService,
		throttle:    throttle,
		mail:        mail,
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyRequests    = errors.New("too many reset requests")
	ErrTokenNotFound      = errors.New("reset token not found")
	ErrTokenMismatch      = errors.New("reset token does not belong to user")
	ErrTokenExpired       = errors.New("reset token has expired")
)

func (s *Service) Login(ctx context.Context, utorid, password string) (string, time.Time, error) {
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil || user == nil {
		zap.L().Info("login failed", zap.String("utorid", utorid))
		return "", time.Time{}, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Info("login failed", zap.String("utorid", utorid))
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(tokenTTL)
	token, err := s.jwtService.GenerateJWT(user.ID, user.Utorid, user.Role, expiresAt)
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", time.Time{}, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.Utorid, time.Now()); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// RequestReset issues a one-hour reset token and queues the notification
// mail. Requests are throttled per client IP and utorid.
func (s *Service) RequestReset(ctx context.Context, utorid, clientIP string) (string, time.Time, error) {
	if !s.throttle.Allow(clientIP + ":" + utorid) {
		return "", time.Time{}, ErrTooManyRequests
	}

	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return "", time.Time{}, err
	}
	if user == nil {
		return "", time.Time{}, fmt.Errorf("%w: utorid=%s", ErrUserNotFound, utorid)
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.Utorid, token, expiresAt); err != nil {
		return "", time.Time{}, err
	}

	err = s.mail.Enqueue(ctx, mailer.Message{
		To:      user.Email,
		Subject: "Password reset",
		Body:    "Your password reset token: " + token,
	})
	if err != nil {
		zap.L().Error("can't queue reset mail", zap.Error(err))
		return "", time.Time{}, err
	}

	zap.L().Info("reset token issued", zap.String("utorid", utorid))
	return token, expiresAt, nil
}

func (s *Service) CompleteReset(ctx context.Context, token, utorid, newPassword string) error {
	user, expires, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrTokenNotFound
	}
	if user.Utorid != utorid {
		return ErrTokenMismatch
	}
	if time.Now().After(expires) {
		return ErrTokenExpired
	}

	hash, err := s.hashService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.Utorid, hash); err != nil {
		return err
	}

	zap.L().Info("password reset completed", zap.String("utorid", utorid))
	return nil
}
