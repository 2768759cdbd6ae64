package userservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/pkg/auth"
	"github.com/campuspoints/campuspoints/pkg/clearance"
)

//go:generate mockgen -source=userservice.go -destination=mock_userservice.go -package=userservice

const activationTokenTTL = 7 * 24 * time.Hour

type Repo interface {
	GetByUtorid(ctx context.Context, utorid string) (*domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, utorid, passwordHash string) error
	SetResetToken(ctx context.Context, utorid, token string, expires time.Time) error
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	Count(ctx context.Context, filter domain.UserFilter) (int, error)
}

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
}

func New(userRepo Repo, hashService auth.HashServiceInterface) *Service {
	return &Service{
		userRepo:    userRepo,
		hashService: hashService,
	}
}

var (
	ErrUserExists     = errors.New("utorid or email already registered")
	ErrUserNotFound   = errors.New("user not found")
	ErrWrongPassword  = errors.New("current password is incorrect")
	ErrRoleNotAllowed = errors.New("not allowed to assign this role")
)

// Register creates an unverified regular user and returns the activation
// token the new user needs to set a password.
func (s *Service) Register(ctx context.Context, utorid, name, email string) (*domain.User, string, error) {
	user := &domain.User{
		Utorid: utorid,
		Name:   name,
		Email:  email,
		Role:   clearance.Regular,
	}
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, "", ErrUserExists
		}
		zap.L().Error("can't register user", zap.Error(err))
		return nil, "", err
	}

	token := uuid.NewString()
	expires := time.Now().Add(activationTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, created.Utorid, token, expires); err != nil {
		return nil, "", err
	}

	zap.L().Info("user registered", zap.String("utorid", utorid))
	return created, token, nil
}

func (s *Service) Get(ctx context.Context, utorid string) (*domain.User, error) {
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: utorid=%s", ErrUserNotFound, utorid)
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: ID=%d", ErrUserNotFound, id)
	}
	return user, nil
}

type ManagerPatch struct {
	Email      *string
	Verified   *bool
	Suspicious *bool
	Role       *clearance.Role
}

// Update applies the manager-only patch. Managers may move users between
// regular and cashier; only a superuser assigns manager or superuser.
func (s *Service) Update(ctx context.Context, actorRole clearance.Role, utorid string, patch ManagerPatch) (*domain.User, error) {
	user, err := s.Get(ctx, utorid)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Verified != nil {
		user.Verified = *patch.Verified
	}
	if patch.Suspicious != nil {
		user.Suspicious = *patch.Suspicious
	}
	if patch.Role != nil {
		newRole := *patch.Role
		if !clearance.Valid(newRole) {
			return nil, ErrRoleNotAllowed
		}
		if clearance.AtLeast(newRole, clearance.Manager) && actorRole != clearance.Superuser {
			return nil, ErrRoleNotAllowed
		}
		user.Role = newRole
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		zap.L().Error("can't update user", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *Service) UpdateSelf(ctx context.Context, utorid string, name, email *string) (*domain.User, error) {
	user, err := s.Get(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if name != nil {
		user.Name = *name
	}
	if email != nil {
		user.Email = *email
	}
	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		zap.L().Error("can't update profile", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *Service) ChangePassword(ctx context.Context, utorid, oldPassword, newPassword string) error {
	user, err := s.Get(ctx, utorid)
	if err != nil {
		return err
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, oldPassword); !ok {
		return ErrWrongPassword
	}
	hash, err := s.hashService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, utorid, hash)
}

func (s *Service) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int, error) {
	count, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}
