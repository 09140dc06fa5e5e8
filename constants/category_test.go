package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCategoriesOrderStable(t *testing.T) {
	cats := AllCategories()
	require.Len(t, cats, 7)
	assert.Equal(t, Food, cats[0])
	assert.Equal(t, Education, cats[6])

	// Mutating the returned slice must not affect the taxonomy.
	cats[0] = "mutated"
	assert.Equal(t, Food, AllCategories()[0])
}

func TestKeywordsFor(t *testing.T) {
	assert.Contains(t, KeywordsFor(Food), "restaurante")
	assert.Contains(t, KeywordsFor(Transport), "uber")
	assert.Nil(t, KeywordsFor(Category("unknown")))
}

func TestCanonicalize(t *testing.T) {
	got, ok := Canonicalize("  Food ")
	assert.True(t, ok)
	assert.Equal(t, Food, got)

	_, ok = Canonicalize("nonsense")
	assert.False(t, ok)

	_, ok = Canonicalize("")
	assert.False(t, ok)
}

func TestNormalizeContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", NormalizeContentType("IMAGE/JPEG; charset=binary"))
	assert.Equal(t, "image/png", NormalizeContentType(" image/png "))
}
