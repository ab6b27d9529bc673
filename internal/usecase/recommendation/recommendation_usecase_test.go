package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/gdugdh24/expo-networking/internal/repository/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeUserRepo struct {
	users     map[string]*domain.User
	order     []string
	listErr   error
	listCalls int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
		repo.order = append(repo.order, u.ID)
	}
	return repo
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListCandidates(_ context.Context, excludeID string, limit int) ([]*domain.User, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.User
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, r.users[id])
	}
	return out, nil
}

type fakeAvailabilityRepo struct {
	available map[string]bool
	err       error
	from, to  time.Time
}

func (r *fakeAvailabilityRepo) AvailableUsers(_ context.Context, ids []string, from, to time.Time) (map[string]bool, error) {
	r.from, r.to = from, to
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]bool)
	for _, id := range ids {
		if r.available[id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeConnectionRepo struct {
	counts map[string]int
	err    error
}

func (r *fakeConnectionRepo) MutualConnections(_ context.Context, _ string, _ []string) (map[string]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.counts, nil
}

type fakeIntroGenerator struct {
	gotReasons []string
}

func (g *fakeIntroGenerator) GenerateIntro(_ context.Context, _, candidate *domain.User, reasons []string) ([]string, error) {
	g.gotReasons = reasons
	return []string{"Hello " + candidate.DisplayName}, nil
}

var testConfig = Config{
	MaxResults:         2,
	PoolLimit:          100,
	CacheTTL:           10 * time.Minute,
	AvailabilityWindow: 72 * time.Hour,
}

func fixtureUsers() []*domain.User {
	return []*domain.User{
		newUser("v1", domain.UserTypeVisitor, domain.UserProfile{Sectors: []string{"Logistics"}}),
		newUser("e1", domain.UserTypeExhibitor, domain.UserProfile{Sectors: []string{"Logistics"}}),
		newUser("p1", domain.UserTypePartner, domain.UserProfile{Sectors: []string{"Energy"}}),
		newUser("e2", domain.UserTypeExhibitor, domain.UserProfile{Sectors: []string{"Tourism"}}),
		newUser("v2", domain.UserTypeVisitor, domain.UserProfile{Sectors: []string{"Logistics"}}),
	}
}

func setupCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func newTestUseCase(t *testing.T, users *fakeUserRepo, avail *fakeAvailabilityRepo, conns *fakeConnectionRepo) *RecommendationUseCase {
	_, client := setupCache(t)
	return NewRecommendationUseCase(
		users, avail, conns,
		cache.NewRecommendationCache(client),
		NewMatchScorer(DefaultScorerConfig(), zaptest.NewLogger(t)),
		&fakeIntroGenerator{},
		testConfig,
		zaptest.NewLogger(t),
	)
}

func TestRecommendationUseCase_GetRecommendations(t *testing.T) {
	users := newFakeUserRepo(fixtureUsers()...)
	avail := &fakeAvailabilityRepo{available: map[string]bool{"e1": true}}
	conns := &fakeConnectionRepo{counts: map[string]int{"p1": 3}}
	uc := newTestUseCase(t, users, avail, conns)
	now := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	recs, err := uc.GetRecommendations(context.Background(), "v1", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// e1: 20 + 20 + 15, p1: 50, e2: 20 is filtered out.
	assert.Equal(t, "e1", recs[0].CandidateUserID)
	assert.Equal(t, 55, recs[0].Score)
	assert.Equal(t, "p1", recs[1].CandidateUserID)
	assert.Equal(t, 3, recs[1].MutualConnections)

	assert.Equal(t, now, avail.from)
	assert.Equal(t, now.Add(72*time.Hour), avail.to)
}

func TestRecommendationUseCase_LimitIsCapped(t *testing.T) {
	uc := newTestUseCase(t, newFakeUserRepo(fixtureUsers()...), &fakeAvailabilityRepo{}, &fakeConnectionRepo{})

	recs, err := uc.GetRecommendations(context.Background(), "v1", 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = uc.GetRecommendations(context.Background(), "v1", 50)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recs), testConfig.MaxResults)
}

func TestRecommendationUseCase_ServesFromCache(t *testing.T) {
	users := newFakeUserRepo(fixtureUsers()...)
	uc := newTestUseCase(t, users, &fakeAvailabilityRepo{}, &fakeConnectionRepo{})
	ctx := context.Background()

	first, err := uc.GetRecommendations(ctx, "v1", 0)
	require.NoError(t, err)
	second, err := uc.GetRecommendations(ctx, "v1", 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, users.listCalls)

	require.NoError(t, uc.InvalidateUser(ctx, "v1"))
	_, err = uc.GetRecommendations(ctx, "v1", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, users.listCalls)
}

func TestRecommendationUseCase_ProfileChangeBypassesCache(t *testing.T) {
	users := newFakeUserRepo(fixtureUsers()...)
	uc := newTestUseCase(t, users, &fakeAvailabilityRepo{}, &fakeConnectionRepo{})
	ctx := context.Background()

	_, err := uc.GetRecommendations(ctx, "v1", 0)
	require.NoError(t, err)

	users.users["v1"].Profile.Sectors = []string{"Energy"}
	_, err = uc.GetRecommendations(ctx, "v1", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, users.listCalls)
}

func TestRecommendationUseCase_CollaboratorFailuresDegrade(t *testing.T) {
	users := newFakeUserRepo(fixtureUsers()...)
	avail := &fakeAvailabilityRepo{err: errors.New("availability down")}
	conns := &fakeConnectionRepo{err: errors.New("graph down")}
	uc := newTestUseCase(t, users, avail, conns)

	recs, err := uc.GetRecommendations(context.Background(), "v1", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "p1", recs[0].CandidateUserID)
	assert.Equal(t, 0, recs[0].MutualConnections)
	assert.Equal(t, "e1", recs[1].CandidateUserID)
	assert.Equal(t, 40, recs[1].Score)
}

func TestRecommendationUseCase_SubjectNotFound(t *testing.T) {
	uc := newTestUseCase(t, newFakeUserRepo(), &fakeAvailabilityRepo{}, &fakeConnectionRepo{})

	_, err := uc.GetRecommendations(context.Background(), "ghost", 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRecommendationUseCase_ListFailure(t *testing.T) {
	users := newFakeUserRepo(fixtureUsers()...)
	users.listErr = errors.New("db down")
	uc := newTestUseCase(t, users, &fakeAvailabilityRepo{}, &fakeConnectionRepo{})

	_, err := uc.GetRecommendations(context.Background(), "v1", 0)
	assert.ErrorContains(t, err, "db down")
}

func TestRecommendationUseCase_WithoutCache(t *testing.T) {
	users := newFakeUserRepo(fixtureUsers()...)
	uc := NewRecommendationUseCase(users, nil, nil, nil, NewMatchScorer(DefaultScorerConfig(), nil), nil, testConfig, nil)

	recs, err := uc.GetRecommendations(context.Background(), "v1", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.NoError(t, uc.InvalidateUser(context.Background(), "v1"))
}

func TestRecommendationUseCase_ScorePool(t *testing.T) {
	uc := newTestUseCase(t, newFakeUserRepo(), nil, nil)
	users := fixtureUsers()

	recs, err := uc.ScorePool(&ScoreRequest{
		Subject:          users[0],
		Pool:             users[1:],
		AvailableUserIDs: []string{"e1"},
		MutualCounts:     map[string]int{"e1": 2},
	})
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.Equal(t, "e1", recs[0].CandidateUserID)
	assert.Equal(t, 55, recs[0].Score)
	assert.Equal(t, 2, recs[0].MutualConnections)

	_, err = uc.ScorePool(&ScoreRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ScorePool(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecommendationUseCase_Explain(t *testing.T) {
	avail := &fakeAvailabilityRepo{available: map[string]bool{"e1": true}}
	uc := newTestUseCase(t, newFakeUserRepo(fixtureUsers()...), avail, &fakeConnectionRepo{})

	exp, err := uc.Explain(context.Background(), "v1", "e1")
	require.NoError(t, err)
	assert.Equal(t, 55, exp.Score)
	assert.True(t, exp.Recommended)
	assert.Len(t, exp.Reasons, 3)

	_, err = uc.Explain(context.Background(), "v1", "v1")
	assert.ErrorIs(t, err, domain.ErrSelfMatch)

	_, err = uc.Explain(context.Background(), "v1", "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRecommendationUseCase_GenerateIntro(t *testing.T) {
	users := fixtureUsers()
	users[1].DisplayName = "Atlas Cranes"
	gen := &fakeIntroGenerator{}
	uc := NewRecommendationUseCase(newFakeUserRepo(users...), nil, nil, nil,
		NewMatchScorer(DefaultScorerConfig(), nil), gen, testConfig, nil)

	intro, err := uc.GenerateIntro(context.Background(), "v1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", intro.CandidateUserID)
	assert.Equal(t, []string{"Hello Atlas Cranes"}, intro.Messages)
	assert.Equal(t, []string{"exhibitor priority over visitor", "shared sectors: Logistics"}, gen.gotReasons)

	noAI := NewRecommendationUseCase(newFakeUserRepo(users...), nil, nil, nil,
		NewMatchScorer(DefaultScorerConfig(), nil), nil, testConfig, nil)
	_, err = noAI.GenerateIntro(context.Background(), "v1", "e1")
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
}

func TestFingerprint(t *testing.T) {
	a := newUser("v1", domain.UserTypeVisitor, domain.UserProfile{Interests: []string{"AI"}})
	b := newUser("v1", domain.UserTypeVisitor, domain.UserProfile{Interests: []string{"AI"}})
	c := newUser("v1", domain.UserTypeExhibitor, domain.UserProfile{Interests: []string{"AI"}})

	assert.Equal(t, fingerprint(a), fingerprint(b))
	assert.NotEqual(t, fingerprint(a), fingerprint(c))
	assert.Len(t, fingerprint(a), 32)
}
