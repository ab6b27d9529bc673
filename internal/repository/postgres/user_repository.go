package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/gdugdh24/expo-networking/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const userColumns = `
	u.id, u.type, u.display_name, u.is_active, u.created_at,
	p.company, p.country, p.company_size, p.bio,
	p.interests, p.sectors, p.objectives, p.collaboration_types
`

// userRow mirrors users joined with user_profiles. Profile columns are
// nullable because a user may not have completed their profile yet.
type userRow struct {
	ID                 string         `db:"id"`
	Type               string         `db:"type"`
	DisplayName        string         `db:"display_name"`
	IsActive           bool           `db:"is_active"`
	CreatedAt          sql.NullTime   `db:"created_at"`
	Company            *string        `db:"company"`
	Country            *string        `db:"country"`
	CompanySize        *string        `db:"company_size"`
	Bio                *string        `db:"bio"`
	Interests          pq.StringArray `db:"interests"`
	Sectors            pq.StringArray `db:"sectors"`
	Objectives         pq.StringArray `db:"objectives"`
	CollaborationTypes pq.StringArray `db:"collaboration_types"`
}

func (r *userRow) toDomain() *domain.User {
	user := &domain.User{
		ID:          r.ID,
		Type:        domain.UserType(r.Type),
		DisplayName: r.DisplayName,
		IsActive:    r.IsActive,
		Profile: domain.UserProfile{
			Country:            r.Country,
			CompanySize:        r.CompanySize,
			Bio:                r.Bio,
			Interests:          []string(r.Interests),
			Sectors:            []string(r.Sectors),
			Objectives:         []string(r.Objectives),
			CollaborationTypes: []string(r.CollaborationTypes),
		},
	}
	if r.Company != nil {
		user.Profile.Company = *r.Company
	}
	if r.CreatedAt.Valid {
		user.CreatedAt = r.CreatedAt.Time
	}
	return user
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *userRepository) ListCandidates(ctx context.Context, excludeID string, limit int) ([]*domain.User, error) {
	var rows []userRow
	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.is_active = true AND u.id <> $1
		ORDER BY u.created_at, u.id
		LIMIT $2`
	if err := r.db.SelectContext(ctx, &rows, query, excludeID, limit); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toDomain())
	}
	return users, nil
}
