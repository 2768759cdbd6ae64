package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/pkg/clearance"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func userRow(createdAt time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "utorid", "name", "email", "password_hash", "role",
		"points", "verified", "suspicious", "created_at", "last_login",
	}).AddRow(
		3, "student1", "Student One", "student1@campus.edu", "hashed",
		clearance.Regular, 120, true, false, createdAt, nil,
	)
}

func TestRepository_GetByUtorid(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	tests := []struct {
		name      string
		utorid    string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name:   "User found with used promotions",
			utorid: "student1",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT "+userColumns+" FROM users WHERE utorid = $1")).
					WithArgs("student1").
					WillReturnRows(userRow(createdAt))
				mock.ExpectQuery(regexp.QuoteMeta("SELECT promotion_id FROM user_promotions WHERE user_id = $1")).
					WithArgs(3).
					WillReturnRows(pgxmock.NewRows([]string{"promotion_id"}).AddRow(7).AddRow(8))
			},
			found: true,
		},
		{
			name:   "User not found",
			utorid: "nobody01",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT "+userColumns+" FROM users WHERE utorid = $1")).
					WithArgs("nobody01").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:   "Database error",
			utorid: "student1",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT "+userColumns+" FROM users WHERE utorid = $1")).
					WithArgs("student1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := repo.GetByUtorid(context.Background(), tt.utorid)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if !tt.found {
				assert.Nil(t, user)
				return
			}
			assert.Equal(t, "student1", user.Utorid)
			assert.Equal(t, clearance.Regular, user.Role)
			assert.Equal(t, []int{7, 8}, user.UsedPromotionIDs)
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	query := regexp.QuoteMeta(`
		INSERT INTO users (utorid, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`)

	t.Run("Create user successfully", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("student1", "Student One", "student1@campus.edu", "hashed", clearance.Regular).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(3, createdAt))

		user := &domain.User{
			Utorid:       "student1",
			Name:         "Student One",
			Email:        "student1@campus.edu",
			PasswordHash: "hashed",
			Role:         clearance.Regular,
		}
		created, err := repo.Create(context.Background(), user)
		assert.NoError(t, err)
		assert.Equal(t, 3, created.ID)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("student1", "Student One", "student1@campus.edu", "hashed", clearance.Regular).
			WillReturnError(errors.New("database error"))

		_, err := repo.Create(context.Background(), &domain.User{
			Utorid:       "student1",
			Name:         "Student One",
			Email:        "student1@campus.edu",
			PasswordHash: "hashed",
			Role:         clearance.Regular,
		})
		assert.Error(t, err)
	})
}

func TestRepository_IncrementPoints(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`
		UPDATE users
		SET points = points + $1
		WHERE utorid = $2
		RETURNING points
	`)

	t.Run("Delta applied and new balance returned", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(80, "student1").
			WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(200))

		balance, err := repo.IncrementPoints(context.Background(), "student1", 80)
		assert.NoError(t, err)
		assert.Equal(t, 200, balance)
	})

	t.Run("Negative delta", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(-150, "student1").
			WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(50))

		balance, err := repo.IncrementPoints(context.Background(), "student1", -150)
		assert.NoError(t, err)
		assert.Equal(t, 50, balance)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(80, "student1").
			WillReturnError(errors.New("database error"))

		_, err := repo.IncrementPoints(context.Background(), "student1", 80)
		assert.Error(t, err)
	})
}

func TestRepository_FindByResetToken(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()
	expires := time.Now().Add(time.Hour)

	query := regexp.QuoteMeta(`
		SELECT ` + userColumns + `, reset_expires
		FROM users
		WHERE reset_token = $1
	`)

	t.Run("Token found", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{
			"id", "utorid", "name", "email", "password_hash", "role",
			"points", "verified", "suspicious", "created_at", "last_login", "reset_expires",
		}).AddRow(
			3, "student1", "Student One", "student1@campus.edu", "hashed",
			clearance.Regular, 120, true, false, createdAt, nil, expires,
		)
		mock.ExpectQuery(query).WithArgs("tok").WillReturnRows(rows)

		user, gotExpires, err := repo.FindByResetToken(context.Background(), "tok")
		assert.NoError(t, err)
		assert.Equal(t, "student1", user.Utorid)
		assert.Equal(t, expires, gotExpires)
	})

	t.Run("Token not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("bad").WillReturnError(pgx.ErrNoRows)

		user, _, err := repo.FindByResetToken(context.Background(), "bad")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	t.Run("Name filter matches utorid or name", func(t *testing.T) {
		query := regexp.QuoteMeta(
			"SELECT " + userColumns + " FROM users WHERE (utorid LIKE $1 OR name LIKE $1) ORDER BY id LIMIT $2 OFFSET $3",
		)
		mock.ExpectQuery(query).
			WithArgs("%stu%", 10, 0).
			WillReturnRows(userRow(createdAt))

		users, err := repo.List(context.Background(), domain.UserFilter{Name: "stu", Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("Role and verified filters", func(t *testing.T) {
		query := regexp.QuoteMeta(
			"SELECT " + userColumns + " FROM users WHERE role = $1 AND verified = $2 ORDER BY id LIMIT $3 OFFSET $4",
		)
		verified := true
		mock.ExpectQuery(query).
			WithArgs(clearance.Cashier, true, 10, 10).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "utorid", "name", "email", "password_hash", "role",
				"points", "verified", "suspicious", "created_at", "last_login",
			}))

		users, err := repo.List(context.Background(), domain.UserFilter{
			Role: clearance.Cashier, Verified: &verified, Page: 2, Limit: 10,
		})
		assert.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestRepository_Count(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM users WHERE role = $1")).
		WithArgs(clearance.Manager).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.Count(context.Background(), domain.UserFilter{Role: clearance.Manager})
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
