package userrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/pg"
)

const userColumns = "id, utorid, name, email, password_hash, role, points, verified, suspicious, created_at, last_login"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) scanOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Utorid, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Points, &user.Verified, &user.Suspicious,
		&user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetByUtorid(ctx context.Context, utorid string) (*domain.User, error) {
	user, err := r.scanOne(ctx, "SELECT "+userColumns+" FROM users WHERE utorid = $1", utorid)
	if err != nil || user == nil {
		return user, err
	}
	if user.UsedPromotionIDs, err = r.usedPromotionIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := r.scanOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err != nil || user == nil {
		return user, err
	}
	if user.UsedPromotionIDs, err = r.usedPromotionIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repository) usedPromotionIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.db.Query(ctx, "SELECT promotion_id FROM user_promotions WHERE user_id = $1", userID)
	if err != nil {
		zap.L().Error("can't fetch used promotions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (utorid, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, user.Utorid, user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, verified = $4, suspicious = $5
		WHERE utorid = $6
		RETURNING ` + userColumns
	return r.scanOne(ctx, query, user.Name, user.Email, user.Role, user.Verified, user.Suspicious, user.Utorid)
}

// IncrementPoints applies a signed delta to the stored balance with a single
// atomic UPDATE. Concurrent deltas against the same user serialize on the row
// and never lose an update.
func (r *Repository) IncrementPoints(ctx context.Context, utorid string, delta int) (int, error) {
	var balance int
	query := `
		UPDATE users
		SET points = points + $1
		WHERE utorid = $2
		RETURNING points
	`
	err := r.db.QueryRow(ctx, query, delta, utorid).Scan(&balance)
	if err != nil {
		zap.L().Error("can't increment points", zap.String("utorid", utorid), zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (r *Repository) UpdateLastLogin(ctx context.Context, utorid string, at time.Time) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET last_login = $1 WHERE utorid = $2", at, utorid)
	if err != nil {
		zap.L().Error("can't update last login", zap.Error(err))
	}
	return err
}

func (r *Repository) UpdatePassword(ctx context.Context, utorid, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_expires = NULL
		WHERE utorid = $2
	`
	_, err := r.db.Exec(ctx, query, passwordHash, utorid)
	if err != nil {
		zap.L().Error("can't update password", zap.Error(err))
	}
	return err
}

func (r *Repository) SetResetToken(ctx context.Context, utorid, token string, expires time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $1, reset_expires = $2
		WHERE utorid = $3
	`
	_, err := r.db.Exec(ctx, query, token, expires, utorid)
	if err != nil {
		zap.L().Error("can't set reset token", zap.Error(err))
	}
	return err
}

func (r *Repository) FindByResetToken(ctx context.Context, token string) (*domain.User, time.Time, error) {
	var user domain.User
	var expires time.Time
	query := `
		SELECT ` + userColumns + `, reset_expires
		FROM users
		WHERE reset_token = $1
	`
	err := r.db.QueryRow(ctx, query, token).Scan(
		&user.ID, &user.Utorid, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Points, &user.Verified, &user.Suspicious,
		&user.CreatedAt, &user.LastLogin, &expires,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, time.Time{}, nil
		}
		zap.L().Error("can't find user by reset token", zap.Error(err))
		return nil, time.Time{}, err
	}
	return &user, expires, nil
}

func (r *Repository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(
		"SELECT %s FROM users%s ORDER BY id LIMIT $%d OFFSET $%d",
		userColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID, &user.Utorid, &user.Name, &user.Email, &user.PasswordHash,
			&user.Role, &user.Points, &user.Verified, &user.Suspicious,
			&user.CreatedAt, &user.LastLogin,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *Repository) Count(ctx context.Context, filter domain.UserFilter) (int, error) {
	where, args := buildWhere(filter)
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM users"+where, args...).Scan(&count)
	if err != nil {
		zap.L().Error("failed to count users", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func buildWhere(filter domain.UserFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("(utorid LIKE $%d OR name LIKE $%d)", len(args), len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Verified != nil {
		args = append(args, *filter.Verified)
		conds = append(conds, fmt.Sprintf("verified = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
