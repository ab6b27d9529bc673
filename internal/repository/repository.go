package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/expo-networking/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// ListCandidates returns active users other than excludeID, oldest first.
	ListCandidates(ctx context.Context, excludeID string, limit int) ([]*domain.User, error)
}

type AvailabilityRepository interface {
	// AvailableUsers reports, for each of ids, whether the user has at least
	// one unbooked meeting slot starting in [from, to). Users without open
	// slots are absent from the result.
	AvailableUsers(ctx context.Context, ids []string, from, to time.Time) (map[string]bool, error)
}

type ConnectionRepository interface {
	// MutualConnections counts, for each of ids, the accepted connections it
	// shares with userID. Users with none are absent from the result.
	MutualConnections(ctx context.Context, userID string, ids []string) (map[string]int, error)
}

type RecommendationCache interface {
	Get(ctx context.Context, key string) ([]domain.Recommendation, error)
	Set(ctx context.Context, key string, recs []domain.Recommendation, ttl time.Duration) error
	InvalidateUser(ctx context.Context, userID string) error
}

const RecommendationKeyPrefix = "recommendations"

// RecommendationCacheKey builds the cache key for a subject. The fingerprint
// changes whenever the subject's profile does, so stale entries are never
// read again and simply expire.
func RecommendationCacheKey(userID, fingerprint string) string {
	return RecommendationKeyPrefix + ":" + userID + ":" + fingerprint
}
