package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist/internal/screening"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestScreenRequestValidate(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		req := ScreenRequest{Name: "John Smith"}
		require.NoError(t, req.Validate())

		q := req.ParsedQuery()
		assert.Equal(t, "John Smith", q.Name)
		assert.Equal(t, screening.DefaultThreshold, q.Threshold)
		assert.True(t, q.IncludeAliases)
		assert.Equal(t, screening.AllStages(), q.Stages)
		assert.Empty(t, q.TypeFilter)
	})

	t.Run("empty name is legal", func(t *testing.T) {
		req := ScreenRequest{}
		require.NoError(t, req.Validate())
	})

	t.Run("overrides carried into the query", func(t *testing.T) {
		req := ScreenRequest{
			Name:           "John Smith",
			EntityType:     "vessel",
			Threshold:      floatPtr(0.7),
			IncludeAliases: boolPtr(false),
			EnabledStages:  []string{"exact", "fuzzy"},
		}
		require.NoError(t, req.Validate())

		q := req.ParsedQuery()
		assert.Equal(t, screening.EntityTypeVessel, q.TypeFilter)
		assert.Equal(t, 0.7, q.Threshold)
		assert.False(t, q.IncludeAliases)
		assert.Equal(t, screening.StageSet{Exact: true, Fuzzy: true}, q.Stages)
	})

	tests := []struct {
		name string
		req  ScreenRequest
	}{
		{"name too long", ScreenRequest{Name: string(make([]byte, 513))}},
		{"unknown entity type", ScreenRequest{Name: "x", EntityType: "spacecraft"}},
		{"threshold zero", ScreenRequest{Name: "x", Threshold: floatPtr(0)}},
		{"threshold above one", ScreenRequest{Name: "x", Threshold: floatPtr(1.1)}},
		{"unknown stage", ScreenRequest{Name: "x", EnabledStages: []string{"psychic"}}},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestBatchScreenRequestValidate(t *testing.T) {
	t.Run("valid batch", func(t *testing.T) {
		req := BatchScreenRequest{Queries: []ScreenRequest{
			{Name: "John Smith"},
			{Name: "Jane Doe"},
		}}
		require.NoError(t, req.Validate())

		queries := req.ParsedQueries()
		require.Len(t, queries, 2)
		assert.Equal(t, "John Smith", queries[0].Name)
		assert.Equal(t, "Jane Doe", queries[1].Name)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		req := BatchScreenRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects oversized batch", func(t *testing.T) {
		req := BatchScreenRequest{Queries: make([]ScreenRequest, maxBatchSize+1)}
		assert.Error(t, req.Validate())
	})

	t.Run("reports the failing index", func(t *testing.T) {
		req := BatchScreenRequest{Queries: []ScreenRequest{
			{Name: "ok"},
			{Name: "x", EntityType: "spacecraft"},
		}}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "index 1")
	})
}
