//go:build integration

package rediscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"watchlist/internal/screening"
	"watchlist/internal/screening/store/memory"
	"watchlist/internal/screening/store/rediscache"
	id "watchlist/pkg/domain"
	"watchlist/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	inner *memory.Store
	store *rediscache.Store
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.inner = memory.NewStore()
	s.store = rediscache.NewStore(s.inner, s.redis.Client, time.Minute, nil)
}

func (s *RedisCacheSuite) addEntity(primary string) screening.ReferenceEntity {
	e := screening.ReferenceEntity{
		ID:             id.EntityID(uuid.NewString()),
		ListID:         "ofac-sdn",
		Type:           screening.EntityTypeIndividual,
		PrimaryName:    primary,
		NormalizedName: screening.Normalize(primary),
	}
	s.Require().NoError(s.inner.Add(context.Background(), e))
	return e
}

func (s *RedisCacheSuite) TestExactLookupCaches() {
	ctx := context.Background()
	e := s.addEntity("John Smith")

	first, err := s.store.ExactLookup(ctx, "john smith")
	s.Require().NoError(err)
	s.Require().Len(first, 1)
	s.Equal(e.ID, first[0].ID)

	// A second lookup is served from Redis: removing the entity from the
	// inner store must not change the answer until the TTL expires.
	s.Require().NoError(s.inner.ReplaceList(ctx, "ofac-sdn", nil))

	second, err := s.store.ExactLookup(ctx, "john smith")
	s.Require().NoError(err)
	s.Require().Len(second, 1)
	s.Equal(e.ID, second[0].ID)
}

func (s *RedisCacheSuite) TestEmptyResultIsCachedToo() {
	ctx := context.Background()

	miss, err := s.store.ExactLookup(ctx, "jane doe")
	s.Require().NoError(err)
	s.Empty(miss)

	s.addEntity("Jane Doe")

	still, err := s.store.ExactLookup(ctx, "jane doe")
	s.Require().NoError(err)
	s.Empty(still, "negative result stays cached within the TTL")
}

func (s *RedisCacheSuite) TestCandidateMethodsBypassCache() {
	ctx := context.Background()
	s.addEntity("John Smith")

	got, err := s.store.FuzzyCandidates(ctx, "john smyth", 0.85)
	s.Require().NoError(err)
	s.Len(got, 1)

	s.Require().NoError(s.inner.ReplaceList(ctx, "ofac-sdn", nil))

	got, err = s.store.FuzzyCandidates(ctx, "john smyth", 0.85)
	s.Require().NoError(err)
	s.Empty(got, "candidate retrieval always hits the inner store")
}
