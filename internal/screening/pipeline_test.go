package screening_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"watchlist/internal/screening"
	"watchlist/internal/screening/mocks"
	"watchlist/internal/screening/store/memory"
	id "watchlist/pkg/domain"
	"watchlist/pkg/requestcontext"
)

type PipelineSuite struct {
	suite.Suite
	store *memory.Store
	ctx   context.Context
}

func (s *PipelineSuite) SetupTest() {
	s.store = memory.NewStore()
	s.ctx = context.Background()
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func (s *PipelineSuite) addEntity(primary string, aliases ...string) screening.ReferenceEntity {
	e := screening.ReferenceEntity{
		ID:             id.EntityID(uuid.NewString()),
		ListID:         "ofac-sdn",
		Type:           screening.EntityTypeIndividual,
		PrimaryName:    primary,
		NameVariants:   aliases,
		NormalizedName: screening.Normalize(primary),
	}
	s.Require().NoError(s.store.Add(s.ctx, e))
	return e
}

func (s *PipelineSuite) newPipeline() *screening.Pipeline {
	p, err := screening.New(s.store)
	s.Require().NoError(err)
	return p
}

func (s *PipelineSuite) TestConstruction() {
	s.Run("requires an entity store", func() {
		_, err := screening.New(nil)
		s.Require().Error(err)
	})

	s.Run("succeeds with only a store", func() {
		_, err := screening.New(s.store)
		s.Require().NoError(err)
	})
}

// TestScreenLadder walks the documented end-to-end scenarios against the
// in-memory store.
func (s *PipelineSuite) TestScreenLadder() {
	s.addEntity("John Smith", "Jon Smith")
	s.addEntity("Acme Trading Corp")
	p := s.newPipeline()

	s.Run("exact match regardless of case", func() {
		res := p.Screen(s.ctx, screening.NewQuery("JOHN SMITH"))

		s.Equal(screening.StatusSanctioned, res.Status)
		s.Require().Len(res.Matches, 1)
		s.Equal(screening.StageExact, res.Matches[0].Stage)
		s.Equal(1.0, res.Matches[0].Score)
		s.Equal(screening.ConfidenceHigh, res.Matches[0].Confidence)
		s.Equal(1, res.Counters.ExactMatches)
	})

	s.Run("alias match when exact finds nothing", func() {
		res := p.Screen(s.ctx, screening.NewQuery("Jon Smith"))

		s.Equal(screening.StatusSanctioned, res.Status)
		s.Require().NotEmpty(res.Matches)
		s.Equal(screening.StageAlias, res.Matches[0].Stage)
		s.Equal("Jon Smith", res.Matches[0].MatchedName)
		s.Equal(1.0, res.Matches[0].Score)
	})

	s.Run("typo reaches the fuzzy stage and is never clear", func() {
		q := screening.NewQuery("John Smyth")
		q.Threshold = 0.80
		res := p.Screen(s.ctx, q)

		s.NotEqual(screening.StatusClear, res.Status)
		s.Require().NotEmpty(res.Matches)
		s.Equal(screening.StageFuzzy, res.Matches[0].Stage)
		s.GreaterOrEqual(res.Matches[0].Score, 0.80)
	})

	s.Run("unrelated name is clear", func() {
		res := p.Screen(s.ctx, screening.NewQuery("Jane Doe"))

		s.Equal(screening.StatusClear, res.Status)
		s.Empty(res.Matches)
	})

	s.Run("empty name is clear without store calls", func() {
		res := p.Screen(s.ctx, screening.NewQuery(""))

		s.Equal(screening.StatusClear, res.Status)
		s.Empty(res.Matches)
		s.Zero(res.Counters.EntitiesChecked)
	})
}

func (s *PipelineSuite) TestPhoneticStage() {
	s.addEntity("Mohammed Al-Farsi")
	p := s.newPipeline()

	s.Run("sound-alike spelling is flagged", func() {
		q := screening.NewQuery("Muhammad Al-Farsi")
		res := p.Screen(s.ctx, q)

		s.NotEqual(screening.StatusClear, res.Status)
		s.Require().NotEmpty(res.Matches)
	})

	s.Run("disabled phonetic stage suppresses the match", func() {
		q := screening.NewQuery("Muhammad Al-Farsi")
		q.Stages = screening.StageSet{Exact: true, Fuzzy: true}
		res := p.Screen(s.ctx, q)

		s.Equal(screening.StatusClear, res.Status)
	})
}

func (s *PipelineSuite) TestAliasToggle() {
	s.addEntity("John Smith", "Jon Smith")
	p := s.newPipeline()

	q := screening.NewQuery("Jon Smith")
	q.IncludeAliases = false
	res := p.Screen(s.ctx, q)

	for _, m := range res.Matches {
		s.NotEqual(screening.StageAlias, m.Stage)
	}
}

func (s *PipelineSuite) TestTypeFilter() {
	s.addEntity("Orion Holdings")
	p := s.newPipeline()

	q := screening.NewQuery("Orion Holdings")
	q.TypeFilter = screening.EntityTypeVessel
	res := p.Screen(s.ctx, q)

	s.Equal(screening.StatusClear, res.Status)
	s.Empty(res.Matches)
}

// TestThresholdMonotonic verifies that raising the threshold never produces
// more fuzzy matches.
func (s *PipelineSuite) TestThresholdMonotonic() {
	s.addEntity("John Smith")
	s.addEntity("Jon Smythe")
	s.addEntity("Joan Smithson")
	p := s.newPipeline()

	thresholds := []float64{0.70, 0.80, 0.85, 0.90, 0.95}
	prev := -1
	for i := len(thresholds) - 1; i >= 0; i-- {
		q := screening.NewQuery("John Smyth")
		q.Threshold = thresholds[i]
		res := p.Screen(s.ctx, q)

		if prev >= 0 {
			s.GreaterOrEqual(len(res.Matches), prev,
				"lowering the threshold to %.2f lost matches", thresholds[i])
		}
		prev = len(res.Matches)
	}
}

func TestScreenStoreDegradation(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockEntityStore(ctrl)
	ctx := context.Background()

	boom := errors.New("connection refused")
	store.EXPECT().ExactLookup(gomock.Any(), "john smith").Return(nil, boom)
	store.EXPECT().AliasLookup(gomock.Any(), "John Smith", "john smith").Return(nil, boom)
	store.EXPECT().FuzzyCandidates(gomock.Any(), "john smith", 0.85).Return(nil, boom)
	store.EXPECT().PhoneticCandidates(gomock.Any(), "john smith").Return(nil, boom)

	p, err := screening.New(store)
	if err != nil {
		t.Fatal(err)
	}

	res := p.Screen(ctx, screening.NewQuery("John Smith"))

	if res.Status != screening.StatusClear {
		t.Fatalf("degraded stages must yield CLEAR, got %s", res.Status)
	}
	if len(res.Warnings) != 4 {
		t.Fatalf("expected one warning per degraded stage, got %v", res.Warnings)
	}
}

func TestScreenAuditFailureDoesNotPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	store := memory.NewStore()
	entity := screening.ReferenceEntity{
		ID:             id.EntityID(uuid.NewString()),
		ListID:         "ofac-sdn",
		Type:           screening.EntityTypeIndividual,
		PrimaryName:    "John Smith",
		NormalizedName: "john smith",
	}
	if err := store.Add(ctx, entity); err != nil {
		t.Fatal(err)
	}

	recorder := mocks.NewMockAuditRecorder(ctrl)
	recorder.EXPECT().
		RecordMatch(gomock.Any(), gomock.Any()).
		Return(errors.New("audit store down"))

	p, err := screening.New(store, screening.WithAuditRecorder(recorder))
	if err != nil {
		t.Fatal(err)
	}

	res := p.Screen(ctx, screening.NewQuery("John Smith"))

	if res.Status != screening.StatusSanctioned {
		t.Fatalf("audit failure must not change the verdict, got %s", res.Status)
	}
}

func TestScreenAuditRecordsEveryMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	store := memory.NewStore()
	for _, name := range []string{"John Smith", "John Smith"} {
		e := screening.ReferenceEntity{
			ID:             id.EntityID(uuid.NewString()),
			ListID:         "ofac-sdn",
			Type:           screening.EntityTypeIndividual,
			PrimaryName:    name,
			NormalizedName: screening.Normalize(name),
		}
		if err := store.Add(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	recorder := mocks.NewMockAuditRecorder(ctrl)
	recorder.EXPECT().
		RecordMatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec screening.MatchAuditRecord) error {
			if rec.QueryName != "John Smith" {
				t.Errorf("unexpected query name %q", rec.QueryName)
			}
			if rec.Status != screening.StatusSanctioned {
				t.Errorf("record carries status %s", rec.Status)
			}
			if !rec.Timestamp.Equal(fixed) {
				t.Errorf("record timestamp %v, want request-scoped %v", rec.Timestamp, fixed)
			}
			return nil
		}).
		Times(2)

	p, err := screening.New(store, screening.WithAuditRecorder(recorder))
	if err != nil {
		t.Fatal(err)
	}
	p.Screen(ctx, screening.NewQuery("John Smith"))
}
