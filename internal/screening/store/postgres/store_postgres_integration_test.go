//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"watchlist/internal/screening"
	"watchlist/internal/screening/store/postgres"
	id "watchlist/pkg/domain"
	"watchlist/pkg/testutil/containers"
)

const entitySchema = `
CREATE TABLE IF NOT EXISTS reference_entities (
    id              TEXT PRIMARY KEY,
    list_id         TEXT NOT NULL,
    external_id     TEXT NOT NULL,
    entity_type     TEXT NOT NULL,
    primary_name    TEXT NOT NULL,
    name_variants   TEXT[] NOT NULL DEFAULT '{}',
    normalized_name TEXT NOT NULL,
    soundex_code    TEXT NOT NULL DEFAULT '',
    program         TEXT NOT NULL DEFAULT '',
    nationality     TEXT[] NOT NULL DEFAULT '{}',
    UNIQUE (list_id, external_id)
);
CREATE INDEX IF NOT EXISTS idx_reference_entities_normalized ON reference_entities (normalized_name);
CREATE INDEX IF NOT EXISTS idx_reference_entities_soundex ON reference_entities (soundex_code);
CREATE INDEX IF NOT EXISTS idx_reference_entities_variants ON reference_entities USING GIN (name_variants);
`

type PostgresEntityStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestPostgresEntityStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresEntityStoreSuite))
}

func (s *PostgresEntityStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(s.postgres.ApplySchema(context.Background(), entitySchema))
	s.store = postgres.NewStore(s.postgres.DB)
}

func (s *PostgresEntityStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "reference_entities"))
}

func newEntity(listID id.ListID, external, primary string, aliases ...string) screening.ReferenceEntity {
	return screening.ReferenceEntity{
		ID:             id.EntityID(uuid.NewString()),
		ListID:         listID,
		ExternalID:     external,
		Type:           screening.EntityTypeIndividual,
		PrimaryName:    primary,
		NameVariants:   aliases,
		NormalizedName: screening.Normalize(primary),
		Program:        "SDGT",
		Nationality:    []string{"US"},
	}
}

func (s *PostgresEntityStoreSuite) seed(entities ...screening.ReferenceEntity) {
	byList := make(map[id.ListID][]screening.ReferenceEntity)
	for _, e := range entities {
		byList[e.ListID] = append(byList[e.ListID], e)
	}
	for listID, batch := range byList {
		s.Require().NoError(s.store.ReplaceList(context.Background(), listID, batch))
	}
}

func (s *PostgresEntityStoreSuite) TestExactLookup() {
	s.seed(newEntity("ofac-sdn", "SDN-1", "John Smith", "Jon Smith"))
	ctx := context.Background()

	s.Run("finds by normalized name", func() {
		got, err := s.store.ExactLookup(ctx, "john smith")
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("SDN-1", got[0].ExternalID)
		s.Equal([]string{"Jon Smith"}, got[0].NameVariants)
		s.Equal([]string{"US"}, got[0].Nationality)
	})

	s.Run("misses an unknown name", func() {
		got, err := s.store.ExactLookup(ctx, "jane doe")
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *PostgresEntityStoreSuite) TestAliasLookup() {
	s.seed(newEntity("ofac-sdn", "SDN-1", "John Smith", "Jon Smith", "Johnny S"))
	ctx := context.Background()

	s.Run("finds by verbatim alias", func() {
		got, err := s.store.AliasLookup(ctx, "Jon Smith", "jon smith")
		s.Require().NoError(err)
		s.Len(got, 1)
	})

	s.Run("finds by normalized name fallback", func() {
		got, err := s.store.AliasLookup(ctx, "not an alias", "john smith")
		s.Require().NoError(err)
		s.Len(got, 1)
	})
}

func (s *PostgresEntityStoreSuite) TestFuzzyCandidates() {
	s.seed(
		newEntity("ofac-sdn", "SDN-1", "John Smith"),
		newEntity("ofac-sdn", "SDN-2", "Jon Smythe"),
		newEntity("ofac-sdn", "SDN-3", "Vladimir Putin"),
	)
	ctx := context.Background()

	got, err := s.store.FuzzyCandidates(ctx, "john smyth", 0.85)
	s.Require().NoError(err)
	s.Len(got, 2)

	none, err := s.store.FuzzyCandidates(ctx, "", 0.85)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *PostgresEntityStoreSuite) TestPhoneticCandidates() {
	s.seed(newEntity("ofac-sdn", "SDN-1", "Mohammed Al-Farsi"))
	ctx := context.Background()

	got, err := s.store.PhoneticCandidates(ctx, "muhammad al farsi")
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *PostgresEntityStoreSuite) TestReplaceList() {
	ctx := context.Background()
	s.seed(
		newEntity("ofac-sdn", "SDN-1", "John Smith"),
		newEntity("eu-consolidated", "EU-1", "Acme Trading Corp"),
	)

	s.Require().NoError(s.store.ReplaceList(ctx, "ofac-sdn", []screening.ReferenceEntity{
		newEntity("ofac-sdn", "SDN-2", "Jane Doe"),
	}))

	gone, err := s.store.ExactLookup(ctx, "john smith")
	s.Require().NoError(err)
	s.Empty(gone)

	fresh, err := s.store.ExactLookup(ctx, "jane doe")
	s.Require().NoError(err)
	s.Len(fresh, 1)

	other, err := s.store.ExactLookup(ctx, "acme trading corp")
	s.Require().NoError(err)
	s.Len(other, 1)
}
