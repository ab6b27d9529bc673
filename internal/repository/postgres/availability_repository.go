package postgres

import (
	"context"
	"time"

	"github.com/gdugdh24/expo-networking/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type availabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) AvailableUsers(ctx context.Context, ids []string, from, to time.Time) (map[string]bool, error) {
	available := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return available, nil
	}

	var userIDs []string
	query := `
		SELECT DISTINCT user_id FROM availability_slots
		WHERE user_id = ANY($1) AND is_booked = false
		  AND starts_at >= $2 AND starts_at < $3
	`
	if err := r.db.SelectContext(ctx, &userIDs, query, pq.Array(ids), from, to); err != nil {
		return nil, err
	}

	for _, id := range userIDs {
		available[id] = true
	}
	return available, nil
}
