package trxrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/pg"
)

const trxColumns = "id, utorid, type, spent, amount, redeemed, related_id, suspicious, remark, created_by, processed_by, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create appends one immutable ledger row. Ids come from the serial sequence
// and are monotonic. Applied promotion ids are linked in the same call.
func (r *Repository) Create(ctx context.Context, trx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (utorid, type, spent, amount, redeemed, related_id, suspicious, remark, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		trx.Utorid, trx.Type, trx.Spent, trx.Amount, trx.Redeemed,
		trx.RelatedID, trx.Suspicious, trx.Remark, trx.CreatedBy,
	).Scan(&trx.ID, &trx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}

	for _, promoID := range trx.PromotionIDs {
		_, err := r.db.Exec(ctx,
			"INSERT INTO transaction_promotions (transaction_id, promotion_id) VALUES ($1, $2)",
			trx.ID, promoID,
		)
		if err != nil {
			zap.L().Error("can't link promotion to transaction", zap.Error(err))
			return nil, err
		}
	}
	return trx, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Transaction, error) {
	var trx domain.Transaction
	err := r.db.QueryRow(ctx, "SELECT "+trxColumns+" FROM transactions WHERE id = $1", id).Scan(
		&trx.ID, &trx.Utorid, &trx.Type, &trx.Spent, &trx.Amount, &trx.Redeemed,
		&trx.RelatedID, &trx.Suspicious, &trx.Remark, &trx.CreatedBy,
		&trx.ProcessedBy, &trx.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find transaction", zap.Error(err))
		return nil, err
	}
	if trx.PromotionIDs, err = r.promotionIDs(ctx, trx.ID); err != nil {
		return nil, err
	}
	return &trx, nil
}

func (r *Repository) promotionIDs(ctx context.Context, trxID int) ([]int, error) {
	rows, err := r.db.Query(ctx, "SELECT promotion_id FROM transaction_promotions WHERE transaction_id = $1", trxID)
	if err != nil {
		zap.L().Error("can't fetch transaction promotions", zap.Error(err))
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

// SetSuspicious is one of the two permitted patches on a ledger row.
func (r *Repository) SetSuspicious(ctx context.Context, id int, suspicious bool) error {
	tag, err := r.db.Exec(ctx, "UPDATE transactions SET suspicious = $1 WHERE id = $2", suspicious, id)
	if err != nil {
		zap.L().Error("can't update suspicious flag", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// MarkProcessed records the one-shot transition of a redemption from pending
// to processed. The guard on processed_by makes a second call a no-op that
// surfaces as ErrNoRows.
func (r *Repository) MarkProcessed(ctx context.Context, id int, processedBy string, relatedID int) error {
	query := `
		UPDATE transactions
		SET processed_by = $1, related_id = $2, redeemed = amount
		WHERE id = $3 AND processed_by IS NULL
	`
	tag, err := r.db.Exec(ctx, query, processedBy, relatedID, id)
	if err != nil {
		zap.L().Error("can't mark transaction processed", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(
		"SELECT %s FROM transactions%s ORDER BY id LIMIT $%d OFFSET $%d",
		trxColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var trxs []domain.Transaction
	for rows.Next() {
		var trx domain.Transaction
		err := rows.Scan(
			&trx.ID, &trx.Utorid, &trx.Type, &trx.Spent, &trx.Amount, &trx.Redeemed,
			&trx.RelatedID, &trx.Suspicious, &trx.Remark, &trx.CreatedBy,
			&trx.ProcessedBy, &trx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		trxs = append(trxs, trx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range trxs {
		if trxs[i].PromotionIDs, err = r.promotionIDs(ctx, trxs[i].ID); err != nil {
			return nil, err
		}
	}
	return trxs, nil
}

func (r *Repository) Count(ctx context.Context, filter domain.TransactionFilter) (int, error) {
	where, args := buildWhere(filter)
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM transactions"+where, args...).Scan(&count)
	if err != nil {
		zap.L().Error("failed to count transactions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func buildWhere(filter domain.TransactionFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Utorid != "" {
		args = append(args, filter.Utorid)
		conds = append(conds, fmt.Sprintf("utorid = $%d", len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("utorid LIKE $%d", len(args)))
	}
	if filter.CreatedBy != "" {
		args = append(args, "%"+filter.CreatedBy+"%")
		conds = append(conds, fmt.Sprintf("created_by LIKE $%d", len(args)))
	}
	if filter.Suspicious != nil {
		args = append(args, *filter.Suspicious)
		conds = append(conds, fmt.Sprintf("suspicious = $%d", len(args)))
	}
	if filter.PromotionID != nil {
		args = append(args, *filter.PromotionID)
		conds = append(conds, fmt.Sprintf("id IN (SELECT transaction_id FROM transaction_promotions WHERE promotion_id = $%d)", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.RelatedID != nil {
		args = append(args, *filter.RelatedID)
		conds = append(conds, fmt.Sprintf("related_id = $%d", len(args)))
	}
	if filter.Amount != nil {
		op := ">="
		if filter.Operator == "lte" {
			op = "<="
		}
		args = append(args, *filter.Amount)
		conds = append(conds, fmt.Sprintf("amount %s $%d", op, len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
