package eventrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/pg"
)

const eventColumns = "id, name, description, location, start_time, end_time, capacity, points_remain, points_awarded, published, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	var event domain.Event
	err := r.db.QueryRow(ctx, "SELECT "+eventColumns+" FROM events WHERE id = $1", id).Scan(
		&event.ID, &event.Name, &event.Description, &event.Location,
		&event.StartTime, &event.EndTime, &event.Capacity,
		&event.PointsRemain, &event.PointsAwarded, &event.Published,
		&event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find event", zap.Error(err))
		return nil, err
	}

	if event.Organizers, err = r.members(ctx, "event_organizers", id); err != nil {
		return nil, err
	}
	if event.Guests, err = r.members(ctx, "event_guests", id); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *Repository) members(ctx context.Context, table string, eventID int) ([]domain.EventMember, error) {
	query := fmt.Sprintf(`
		SELECT u.id, u.utorid, u.name
		FROM %s m
		JOIN users u ON u.id = m.user_id
		WHERE m.event_id = $1
		ORDER BY u.id
	`, table)
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		zap.L().Error("can't fetch event members", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var members []domain.EventMember
	for rows.Next() {
		var m domain.EventMember
		if err := rows.Scan(&m.ID, &m.Utorid, &m.Name); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	query := `
		INSERT INTO events (name, description, location, start_time, end_time, capacity, points_remain, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		event.Name, event.Description, event.Location, event.StartTime,
		event.EndTime, event.Capacity, event.PointsRemain, event.Published,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		zap.L().Error("can't save event", zap.Error(err))
		return nil, err
	}
	return event, nil
}

func (r *Repository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	query := `
		UPDATE events
		SET name = $1, description = $2, location = $3, start_time = $4, end_time = $5,
		    capacity = $6, points_remain = $7, published = $8
		WHERE id = $9
	`
	tag, err := r.db.Exec(ctx, query,
		event.Name, event.Description, event.Location, event.StartTime,
		event.EndTime, event.Capacity, event.PointsRemain, event.Published, event.ID,
	)
	if err != nil {
		zap.L().Error("can't update event", zap.Error(err))
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return event, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		zap.L().Error("can't delete event", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// RewardUpdate moves amount points from the remaining pool to the awarded
// counter in one statement. The points_remain guard keeps the pool invariant:
// the two columns always sum to the value set at creation.
func (r *Repository) RewardUpdate(ctx context.Context, eventID, amount int) error {
	query := `
		UPDATE events
		SET points_remain = points_remain - $1, points_awarded = points_awarded + $1
		WHERE id = $2 AND points_remain >= $1
	`
	tag, err := r.db.Exec(ctx, query, amount, eventID)
	if err != nil {
		zap.L().Error("can't update event point pool", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) AddOrganizer(ctx context.Context, eventID, userID int) error {
	return r.addMember(ctx, "event_organizers", eventID, userID)
}

func (r *Repository) RemoveOrganizer(ctx context.Context, eventID, userID int) error {
	return r.removeMember(ctx, "event_organizers", eventID, userID)
}

func (r *Repository) AddGuest(ctx context.Context, eventID, userID int) error {
	return r.addMember(ctx, "event_guests", eventID, userID)
}

func (r *Repository) RemoveGuest(ctx context.Context, eventID, userID int) error {
	return r.removeMember(ctx, "event_guests", eventID, userID)
}

func (r *Repository) addMember(ctx context.Context, table string, eventID, userID int) error {
	query := fmt.Sprintf("INSERT INTO %s (event_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", table)
	_, err := r.db.Exec(ctx, query, eventID, userID)
	if err != nil {
		zap.L().Error("can't add event member", zap.Error(err))
	}
	return err
}

func (r *Repository) removeMember(ctx context.Context, table string, eventID, userID int) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE event_id = $1 AND user_id = $2", table)
	tag, err := r.db.Exec(ctx, query, eventID, userID)
	if err != nil {
		zap.L().Error("can't remove event member", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(
		"SELECT %s FROM events%s ORDER BY id LIMIT $%d OFFSET $%d",
		eventColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		err := rows.Scan(
			&event.ID, &event.Name, &event.Description, &event.Location,
			&event.StartTime, &event.EndTime, &event.Capacity,
			&event.PointsRemain, &event.PointsAwarded, &event.Published,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].Guests, err = r.members(ctx, "event_guests", events[i].ID); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (r *Repository) Count(ctx context.Context, filter domain.EventFilter) (int, error) {
	where, args := buildWhere(filter)
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM events"+where, args...).Scan(&count)
	if err != nil {
		zap.L().Error("failed to count events", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func buildWhere(filter domain.EventFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name LIKE $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		conds = append(conds, fmt.Sprintf("location LIKE $%d", len(args)))
	}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		conds = append(conds, fmt.Sprintf("published = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
