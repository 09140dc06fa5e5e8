package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/receipt-engine/constants"
)

func TestSuggestCategory_FoodFromVendorAndTranscript(t *testing.T) {
	got := SuggestCategory("RESTAURANTE EJEMPLO\nTOTAL: $45.000", "RESTAURANTE EJEMPLO", "expense")
	require.True(t, got.Present())
	assert.Equal(t, constants.Food, *got.Value)
	assert.Greater(t, got.Confidence, 0.0)
	assert.LessOrEqual(t, got.Confidence, 0.9)
	// "restaurante" and its substring keyword "restaurant" both hit the
	// transcript and the vendor, so the score saturates at the ceiling.
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
}

func TestSuggestCategory_ConfidenceCeiling(t *testing.T) {
	// Many keyword hits saturate at the 0.9 ceiling.
	transcript := "restaurante café comida alimentos restaurant cafe"
	got := SuggestCategory(transcript, "restaurante cafe", "expense")
	require.True(t, got.Present())
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
}

func TestSuggestCategory_CaseInsensitive(t *testing.T) {
	got := SuggestCategory("FARMACIA DEL AHORRO", "", "expense")
	require.True(t, got.Present())
	assert.Equal(t, constants.Health, *got.Value)
}

func TestSuggestCategory_TransportKeywords(t *testing.T) {
	got := SuggestCategory("viaje uber aeropuerto", "", "expense")
	require.True(t, got.Present())
	assert.Equal(t, constants.Transport, *got.Value)
	assert.InDelta(t, 0.3, got.Confidence, 1e-9)
}

func TestSuggestCategory_ZeroScore(t *testing.T) {
	got := SuggestCategory("texto sin señales utiles", "", "expense")
	assert.False(t, got.Present())
	assert.Zero(t, got.Confidence)
}

func TestSuggestCategory_Deterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := SuggestCategory("taxi y tienda", "", "expense")
		require.True(t, got.Present())
		// Both score 0.3; transport precedes shopping in taxonomy order.
		assert.Equal(t, constants.Transport, *got.Value)
	}
}
