package promorepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/pg"
)

const promoColumns = "id, name, description, type, start_time, end_time, min_spending, rate, points, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Promotion, error) {
	var promo domain.Promotion
	err := r.db.QueryRow(ctx, "SELECT "+promoColumns+" FROM promotions WHERE id = $1", id).Scan(
		&promo.ID, &promo.Name, &promo.Description, &promo.Type,
		&promo.StartTime, &promo.EndTime, &promo.MinSpending, &promo.Rate,
		&promo.Points, &promo.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find promotion", zap.Error(err))
		return nil, err
	}
	return &promo, nil
}

func (r *Repository) Create(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error) {
	query := `
		INSERT INTO promotions (name, description, type, start_time, end_time, min_spending, rate, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		promo.Name, promo.Description, promo.Type, promo.StartTime,
		promo.EndTime, promo.MinSpending, promo.Rate, promo.Points,
	).Scan(&promo.ID, &promo.CreatedAt)
	if err != nil {
		zap.L().Error("can't save promotion", zap.Error(err))
		return nil, err
	}
	return promo, nil
}

func (r *Repository) Update(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error) {
	query := `
		UPDATE promotions
		SET name = $1, description = $2, type = $3, start_time = $4, end_time = $5,
		    min_spending = $6, rate = $7, points = $8
		WHERE id = $9
	`
	tag, err := r.db.Exec(ctx, query,
		promo.Name, promo.Description, promo.Type, promo.StartTime,
		promo.EndTime, promo.MinSpending, promo.Rate, promo.Points, promo.ID,
	)
	if err != nil {
		zap.L().Error("can't update promotion", zap.Error(err))
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return promo, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM promotions WHERE id = $1", id)
	if err != nil {
		zap.L().Error("can't delete promotion", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// MarkConsumed records promotion consumption for a user. The insert is a
// set-union: replays and concurrent requests for the same pair collapse into
// one membership row.
func (r *Repository) MarkConsumed(ctx context.Context, userID int, promotionIDs []int) error {
	for _, promoID := range promotionIDs {
		_, err := r.db.Exec(ctx,
			"INSERT INTO user_promotions (user_id, promotion_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			userID, promoID,
		)
		if err != nil {
			zap.L().Error("can't mark promotion consumed", zap.Error(err))
			return err
		}
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter domain.PromotionFilter) ([]domain.Promotion, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(
		"SELECT %s FROM promotions%s ORDER BY id LIMIT $%d OFFSET $%d",
		promoColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch promotions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var promos []domain.Promotion
	for rows.Next() {
		var promo domain.Promotion
		err := rows.Scan(
			&promo.ID, &promo.Name, &promo.Description, &promo.Type,
			&promo.StartTime, &promo.EndTime, &promo.MinSpending, &promo.Rate,
			&promo.Points, &promo.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		promos = append(promos, promo)
	}
	return promos, rows.Err()
}

func (r *Repository) Count(ctx context.Context, filter domain.PromotionFilter) (int, error) {
	where, args := buildWhere(filter)
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM promotions"+where, args...).Scan(&count)
	if err != nil {
		zap.L().Error("failed to count promotions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func buildWhere(filter domain.PromotionFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name LIKE $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
