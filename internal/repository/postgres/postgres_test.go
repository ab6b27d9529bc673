package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumnNames = []string{
	"id", "type", "display_name", "is_active", "created_at",
	"company", "country", "company_size", "bio",
	"interests", "sectors", "objectives", "collaboration_types",
}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(userColumnNames).AddRow(
		"u-1", "exhibitor", "Atlas Cranes", true, createdAt,
		"Atlas", "Morocco", "51-200", "Cranes and handling",
		"{AI,\"Smart Ports\"}", "{Logistics}", "{\"Trouver des clients\"}", "{Distribution}",
	)
	mock.ExpectQuery(`FROM users u\s+LEFT JOIN user_profiles p ON p.user_id = u.id\s+WHERE u.id = \$1`).
		WithArgs("u-1").
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)

	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, domain.UserTypeExhibitor, user.Type)
	assert.Equal(t, "Atlas", user.Profile.Company)
	assert.Equal(t, []string{"AI", "Smart Ports"}, user.Profile.Interests)
	assert.Equal(t, []string{"Logistics"}, user.Profile.Sectors)
	assert.Equal(t, []string{"Trouver des clients"}, user.Profile.Objectives)
	require.NotNil(t, user.Profile.Country)
	assert.Equal(t, "Morocco", *user.Profile.Country)
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_MissingProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows(userColumnNames).AddRow(
		"u-2", "visitor", "Jane", true, time.Now(),
		nil, nil, nil, nil, nil, nil, nil, nil,
	)
	mock.ExpectQuery(`WHERE u.id = \$1`).WithArgs("u-2").WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), "u-2")
	require.NoError(t, err)
	assert.Empty(t, user.Profile.Company)
	assert.Nil(t, user.Profile.Country)
	assert.Empty(t, user.Profile.Interests)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`WHERE u.id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userColumnNames))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ListCandidates(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows(userColumnNames).
		AddRow("u-2", "partner", "Blue Port", true, time.Now(), "Blue", nil, nil, nil, "{}", "{Energy}", nil, nil).
		AddRow("u-3", "visitor", "Sam", true, time.Now(), nil, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`WHERE u.is_active = true AND u.id <> \$1\s+ORDER BY u.created_at, u.id\s+LIMIT \$2`).
		WithArgs("u-1", 50).
		WillReturnRows(rows)

	users, err := repo.ListCandidates(context.Background(), "u-1", 50)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domain.UserTypePartner, users[0].Type)
	assert.Equal(t, []string{"Energy"}, users[0].Profile.Sectors)
	assert.Equal(t, "u-3", users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListCandidates_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`FROM users u`).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListCandidates(context.Background(), "u-1", 10)
	assert.EqualError(t, err, "connection reset")
}

func TestAvailabilityRepository_AvailableUsers(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAvailabilityRepository(db)
	from := time.Date(2026, 5, 12, 8, 0, 0, 0, time.UTC)
	to := from.Add(72 * time.Hour)

	mock.ExpectQuery(`SELECT DISTINCT user_id FROM availability_slots`).
		WithArgs(sqlmock.AnyArg(), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u-2").AddRow("u-4"))

	available, err := repo.AvailableUsers(context.Background(), []string{"u-2", "u-3", "u-4"}, from, to)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"u-2": true, "u-4": true}, available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepository_EmptyIDsSkipsQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAvailabilityRepository(db)

	available, err := repo.AvailableUsers(context.Background(), nil, time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_MutualConnections(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)

	mock.ExpectQuery(`FROM connections c1\s+JOIN connections c2`).
		WithArgs("u-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "mutual"}).AddRow("u-2", 4).AddRow("u-3", 1))

	counts, err := repo.MutualConnections(context.Background(), "u-1", []string{"u-2", "u-3", "u-5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"u-2": 4, "u-3": 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)

	mock.ExpectQuery(`FROM connections c1`).WillReturnError(errors.New("timeout"))

	_, err := repo.MutualConnections(context.Background(), "u-1", []string{"u-2"})
	assert.Error(t, err)
}
