package postgres

import (
	"context"

	"github.com/gdugdh24/expo-networking/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) MutualConnections(ctx context.Context, userID string, ids []string) (map[string]int, error) {
	counts := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		UserID string `db:"user_id"`
		Mutual int    `db:"mutual"`
	}
	query := `
		SELECT c2.user_id AS user_id, COUNT(*) AS mutual
		FROM connections c1
		JOIN connections c2 ON c2.connected_user_id = c1.connected_user_id
		WHERE c1.user_id = $1 AND c2.user_id = ANY($2)
		  AND c1.status = 'accepted' AND c2.status = 'accepted'
		GROUP BY c2.user_id
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID, pq.Array(ids)); err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.UserID] = row.Mutual
	}
	return counts, nil
}
