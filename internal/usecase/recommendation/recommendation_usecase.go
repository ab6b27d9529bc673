package recommendation

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/gdugdh24/expo-networking/internal/repository"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

type Config struct {
	MaxResults         int
	PoolLimit          int
	CacheTTL           time.Duration
	AvailabilityWindow time.Duration
}

// IntroGenerator drafts opening messages for a recommended contact.
type IntroGenerator interface {
	GenerateIntro(ctx context.Context, subject, candidate *domain.User, reasons []string) ([]string, error)
}

type RecommendationUseCase struct {
	userRepo         repository.UserRepository
	availabilityRepo repository.AvailabilityRepository
	connectionRepo   repository.ConnectionRepository
	cache            repository.RecommendationCache
	scorer           *MatchScorer
	introGenerator   IntroGenerator
	cfg              Config
	logger           *zap.Logger
	now              func() time.Time
}

func NewRecommendationUseCase(
	userRepo repository.UserRepository,
	availabilityRepo repository.AvailabilityRepository,
	connectionRepo repository.ConnectionRepository,
	cache repository.RecommendationCache,
	scorer *MatchScorer,
	introGenerator IntroGenerator,
	cfg Config,
	logger *zap.Logger,
) *RecommendationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationUseCase{
		userRepo:         userRepo,
		availabilityRepo: availabilityRepo,
		connectionRepo:   connectionRepo,
		cache:            cache,
		scorer:           scorer,
		introGenerator:   introGenerator,
		cfg:              cfg,
		logger:           logger.With(zap.String("component", "recommendation_usecase")),
		now:              time.Now,
	}
}

// ScoreRequest is a caller-supplied subject and pool scored without storage.
type ScoreRequest struct {
	Subject          *domain.User   `json:"subject" binding:"required"`
	Pool             []*domain.User `json:"pool" binding:"max=1000"`
	AvailableUserIDs []string       `json:"available_user_ids"`
	MutualCounts     map[string]int `json:"mutual_connections"`
}

// GetRecommendations returns the best matches for userID, at most limit.
func (uc *RecommendationUseCase) GetRecommendations(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 || limit > uc.cfg.MaxResults {
		limit = uc.cfg.MaxResults
	}

	subject, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	key := repository.RecommendationCacheKey(subject.ID, fingerprint(subject))
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, key)
		if err == nil {
			uc.logger.Debug("recommendations served from cache", zap.String("user_id", userID))
			return truncate(cached, limit), nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			uc.logger.Warn("recommendation cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	pool, err := uc.userRepo.ListCandidates(ctx, subject.ID, uc.cfg.PoolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	recs, err := uc.scorer.Recommend(subject, pool, uc.loadSignals(ctx, subject.ID, pool))
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, recs, uc.cfg.CacheTTL); err != nil {
			uc.logger.Warn("recommendation cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	uc.logger.Info("recommendations computed",
		zap.String("user_id", userID),
		zap.Int("pool", len(pool)),
		zap.Int("recommended", len(recs)),
	)

	return truncate(recs, limit), nil
}

// ScorePool ranks a supplied pool. Nothing is read from or written to storage.
func (uc *RecommendationUseCase) ScorePool(req *ScoreRequest) ([]domain.Recommendation, error) {
	if req == nil {
		return nil, &domain.InvalidInputError{Field: "request", Reason: "is required"}
	}
	return uc.scorer.Recommend(req.Subject, req.Pool, Signals{
		Availability: NewAvailabilitySet(req.AvailableUserIDs...),
		Connections:  ConnectionCounts(req.MutualCounts),
	})
}

// Explain reports how candidateID scores for userID.
func (uc *RecommendationUseCase) Explain(ctx context.Context, userID, candidateID string) (*domain.Explanation, error) {
	subject, candidate, err := uc.loadPair(ctx, userID, candidateID)
	if err != nil {
		return nil, err
	}
	return uc.scorer.Explain(subject, candidate, uc.loadSignals(ctx, subject.ID, []*domain.User{candidate}))
}

// GenerateIntro drafts opening messages from userID to candidateID.
func (uc *RecommendationUseCase) GenerateIntro(ctx context.Context, userID, candidateID string) (*domain.Intro, error) {
	if uc.introGenerator == nil {
		return nil, domain.ErrAIUnavailable
	}

	subject, candidate, err := uc.loadPair(ctx, userID, candidateID)
	if err != nil {
		return nil, err
	}

	_, reasons := uc.scorer.Score(subject, candidate, Signals{})
	messages, err := uc.introGenerator.GenerateIntro(ctx, subject, candidate, reasons)
	if err != nil {
		return nil, fmt.Errorf("failed to generate intro: %w", err)
	}

	return &domain.Intro{CandidateUserID: candidate.ID, Messages: messages}, nil
}

// InvalidateUser drops cached recommendations for userID, e.g. after a
// profile update.
func (uc *RecommendationUseCase) InvalidateUser(ctx context.Context, userID string) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.InvalidateUser(ctx, userID)
}

func (uc *RecommendationUseCase) loadPair(ctx context.Context, userID, candidateID string) (*domain.User, *domain.User, error) {
	if userID == candidateID {
		return nil, nil, domain.ErrSelfMatch
	}

	subject, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get subject: %w", err)
	}
	candidate, err := uc.userRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return subject, candidate, nil
}

// loadSignals snapshots availability and mutual connections for the pool.
// Failures degrade to "unavailable" and zero connections.
func (uc *RecommendationUseCase) loadSignals(ctx context.Context, subjectID string, pool []*domain.User) Signals {
	ids := make([]string, 0, len(pool))
	for _, candidate := range pool {
		if candidate != nil {
			ids = append(ids, candidate.ID)
		}
	}

	signals := Signals{
		Availability: AvailabilitySet{},
		Connections:  ConnectionCounts{},
	}
	if len(ids) == 0 {
		return signals
	}

	if uc.availabilityRepo != nil {
		from := uc.now()
		available, err := uc.availabilityRepo.AvailableUsers(ctx, ids, from, from.Add(uc.cfg.AvailabilityWindow))
		if err != nil {
			uc.logger.Warn("availability lookup failed", zap.String("user_id", subjectID), zap.Error(err))
		} else {
			signals.Availability = AvailabilitySet(available)
		}
	}

	if uc.connectionRepo != nil {
		counts, err := uc.connectionRepo.MutualConnections(ctx, subjectID, ids)
		if err != nil {
			uc.logger.Warn("mutual connections lookup failed", zap.String("user_id", subjectID), zap.Error(err))
		} else {
			signals.Connections = ConnectionCounts(counts)
		}
	}

	return signals
}

// fingerprint hashes the parts of a user that affect their recommendations.
func fingerprint(user *domain.User) string {
	data, err := json.Marshal(struct {
		Type    domain.UserType    `json:"type"`
		Profile domain.UserProfile `json:"profile"`
	}{user.Type, user.Profile})
	if err != nil {
		return "nofp"
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

func truncate(recs []domain.Recommendation, limit int) []domain.Recommendation {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
