package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceAnalysis_Validate(t *testing.T) {
	a := &PlaceAnalysis{InputType: InputPlacePhoto, Confidence: 0.8}
	require.NoError(t, a.Validate())
	require.True(t, a.IsPlace())

	a.Confidence = 1.5
	require.ErrorIs(t, a.Validate(), ErrInvalidAnalysis)

	a = &PlaceAnalysis{InputType: "landscape", Confidence: 0.5}
	require.ErrorIs(t, a.Validate(), ErrInvalidAnalysis)
}

func TestPlaceGuess_Location(t *testing.T) {
	name, country := "Eiffel Tower", "France"
	g := PlaceGuess{Name: &name, Country: &country}
	require.Equal(t, "Eiffel Tower, France", g.Location())
	require.Equal(t, "", PlaceGuess{}.Location())
}
