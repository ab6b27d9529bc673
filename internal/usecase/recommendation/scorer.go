package recommendation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScorerConfig struct {
	// MinScore is exclusive: a candidate needs a raw score above it.
	MinScore int
	MaxScore int
	// BidirectionalPriority applies the type priority table from both sides
	// of the pair and sums the two bonuses.
	BidirectionalPriority bool
}

func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		MinScore:              30,
		MaxScore:              100,
		BidirectionalPriority: true,
	}
}

// MatchScorer ranks a pool of attendees against a subject using additive,
// fixed-weight rules. It holds no mutable state and is safe for concurrent use.
type MatchScorer struct {
	cfg      ScorerConfig
	validate *validator.Validate
	logger   *zap.Logger
}

func NewMatchScorer(cfg ScorerConfig, logger *zap.Logger) *MatchScorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchScorer{
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger.With(zap.String("component", "match_scorer")),
	}
}

// Recommend scores every candidate in pool against subject and returns those
// above the threshold, best first. Candidates with equal scores keep their
// pool order. A candidate that cannot be scored is skipped and logged.
func (s *MatchScorer) Recommend(subject *domain.User, pool []*domain.User, signals Signals) ([]domain.Recommendation, error) {
	if err := s.validateUser("subject", subject); err != nil {
		return nil, err
	}

	log := s.logger.With(
		zap.String("pass_id", uuid.NewString()),
		zap.String("subject_id", subject.ID),
	)

	recommendations := make([]domain.Recommendation, 0, len(pool))
	skipped := 0
	for i, candidate := range pool {
		rec, ok, err := s.scoreCandidate(subject, candidate, signals)
		if err != nil {
			skipped++
			log.Warn("skipping candidate", zap.Int("index", i), zap.Error(err))
			continue
		}
		if ok {
			recommendations = append(recommendations, rec)
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	log.Debug("scoring pass complete",
		zap.Int("pool", len(pool)),
		zap.Int("recommended", len(recommendations)),
		zap.Int("skipped", skipped),
	)

	return recommendations, nil
}

// Score evaluates one pair and returns the raw score and its reasons. It does
// not apply exclusion, threshold or clamping.
func (s *MatchScorer) Score(subject, candidate *domain.User, signals Signals) (int, []string) {
	ev := s.evaluate(subject, candidate, signals)
	return ev.score, ev.reasons
}

// Explain evaluates one pair the way Recommend would and reports why.
func (s *MatchScorer) Explain(subject, candidate *domain.User, signals Signals) (*domain.Explanation, error) {
	if err := s.validateUser("subject", subject); err != nil {
		return nil, err
	}
	if err := s.validateUser("candidate", candidate); err != nil {
		return nil, err
	}

	exp := &domain.Explanation{
		SubjectUserID:   subject.ID,
		CandidateUserID: candidate.ID,
		Reasons:         []string{},
	}
	if s.excluded(subject, candidate) {
		exp.Excluded = true
		return exp, nil
	}

	raw, reasons := s.Score(subject, candidate, signals)
	exp.RawScore = raw
	exp.Score = s.clamp(raw)
	if reasons != nil {
		exp.Reasons = reasons
	}
	exp.Recommended = raw > s.cfg.MinScore
	return exp, nil
}

func (s *MatchScorer) scoreCandidate(subject, candidate *domain.User, signals Signals) (rec domain.Recommendation, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, ok, err = domain.Recommendation{}, false, fmt.Errorf("scoring panicked: %v", r)
		}
	}()

	if err := s.validateUser("candidate", candidate); err != nil {
		return rec, false, err
	}
	if s.excluded(subject, candidate) {
		return rec, false, nil
	}

	raw, reasons := s.Score(subject, candidate, signals)
	if raw <= s.cfg.MinScore {
		return rec, false, nil
	}

	return domain.Recommendation{
		SubjectUserID:     subject.ID,
		CandidateUserID:   candidate.ID,
		Score:             s.clamp(raw),
		Reasons:           reasons,
		MutualConnections: signals.mutualConnections(candidate.ID),
	}, true, nil
}

func (s *MatchScorer) excluded(subject, candidate *domain.User) bool {
	return subject.ID == candidate.ID || subject.Profile.SameCompany(&candidate.Profile)
}

func (s *MatchScorer) clamp(raw int) int {
	return max(0, min(raw, s.cfg.MaxScore))
}

func (s *MatchScorer) validateUser(field string, user *domain.User) error {
	if user == nil {
		return &domain.InvalidInputError{Field: field, Reason: "is required"}
	}
	if err := s.validate.Struct(user); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &domain.InvalidInputError{
				Field:  fmt.Sprintf("%s.%s", field, verrs[0].Field()),
				Reason: fmt.Sprintf("failed %q validation", verrs[0].Tag()),
			}
		}
		return &domain.InvalidInputError{Field: field, Reason: err.Error()}
	}
	return nil
}
