package repositories_test

import (
	"testing"

	"gemstore/internal/models"
	"gemstore/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func seedRepo(t *testing.T) *repositories.MockGemRepository {
	t.Helper()
	repo := repositories.NewMockGemRepository()

	gems := []models.Gem{
		{ID: "g1", Price: 999, Available: true, GemType: models.GemTypeRuby, SellerID: "s1"},
		{ID: "g2", Price: 1000, Available: true, GemType: models.GemTypeRuby, SellerID: "s1"},
		{ID: "g3", Price: 100, Available: true, GemType: models.GemTypeDiamond, SellerID: "s2"},
		{ID: "g4", Price: 900, Available: false, GemType: models.GemTypeDiamond, SellerID: "s2"},
		{ID: "g5", Price: 700, Available: true, GemType: models.GemTypeEmerald, SellerID: "s1"},
	}
	for i := range gems {
		props := models.GemProperties{Size: 1}
		if err := repo.Create(&gems[i], &props); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return repo
}

func ids(pairs []models.GemWithProperties) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Gem.ID)
	}
	return out
}

func TestMockGemRepository_List_MinPriceBoundary(t *testing.T) {
	repo := seedRepo(t)

	pairs, err := repo.List(models.GemFilter{MinPrice: floatPtr(1000)})
	assert.NoError(t, err)
	// gte=1000 excludes 999 and includes exactly 1000.
	assert.Equal(t, []string{"g2"}, ids(pairs))
}

func TestMockGemRepository_List_MaxPrice(t *testing.T) {
	repo := seedRepo(t)

	pairs, err := repo.List(models.GemFilter{MaxPrice: floatPtr(700)})
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"g3", "g5"}, ids(pairs))
}

func TestMockGemRepository_List_TypeFilterOrdering(t *testing.T) {
	repo := seedRepo(t)

	pairs, err := repo.List(models.GemFilter{
		Types: []models.GemType{models.GemTypeDiamond, models.GemTypeRuby, models.GemTypeEmerald},
	})
	assert.NoError(t, err)
	// Type ascending, then price descending within each type.
	assert.Equal(t, []string{"g4", "g3", "g5", "g2", "g1"}, ids(pairs))
}

func TestMockGemRepository_List_FiltersCombine(t *testing.T) {
	repo := seedRepo(t)

	pairs, err := repo.List(models.GemFilter{
		MinPrice: floatPtr(500),
		MaxPrice: floatPtr(999),
		Types:    []models.GemType{models.GemTypeRuby, models.GemTypeDiamond},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"g4", "g1"}, ids(pairs))
}

func TestMockGemRepository_ListBySeller(t *testing.T) {
	repo := seedRepo(t)

	pairs, err := repo.ListBySeller("s1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"g5", "g2", "g1"}, ids(pairs))

	pairs, err = repo.ListBySeller("nobody")
	assert.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestMockGemRepository_CreatePairsGemWithProperties(t *testing.T) {
	repo := repositories.NewMockGemRepository()

	clarity := models.ClarityFL
	props := models.GemProperties{Size: 2, Clarity: &clarity}
	gem := models.Gem{Price: 1200, Available: true, GemType: models.GemTypeDiamond}

	assert.NoError(t, repo.Create(&gem, &props))
	assert.NotEmpty(t, gem.ID)
	assert.NotEmpty(t, props.ID)
	assert.Equal(t, props.ID, gem.GemPropertiesID)

	fetched, err := repo.GetByID(gem.ID)
	assert.NoError(t, err)
	assert.Equal(t, props.ID, fetched.GemProperties.ID)
	assert.InDelta(t, 2.0, fetched.GemProperties.Size, 1e-9)
}

func TestMockGemRepository_UpdateAndDeleteMissing(t *testing.T) {
	repo := repositories.NewMockGemRepository()

	err := repo.Update(&models.Gem{ID: "missing"})
	assert.ErrorIs(t, err, models.ErrGemNotFound)

	err = repo.Delete("missing")
	assert.ErrorIs(t, err, models.ErrGemNotFound)

	_, err = repo.GetByID("missing")
	assert.ErrorIs(t, err, models.ErrGemNotFound)
}
