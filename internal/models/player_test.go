package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionFromElementType(t *testing.T) {
	assert.Equal(t, PositionGK, PositionFromElementType(1))
	assert.Equal(t, PositionDEF, PositionFromElementType(2))
	assert.Equal(t, PositionMID, PositionFromElementType(3))
	assert.Equal(t, PositionFWD, PositionFromElementType(4))

	unknown := PositionFromElementType(9)
	assert.False(t, unknown.IsValid())
}

func TestFieldsHas(t *testing.T) {
	fs := FieldForm | FieldStats
	assert.True(t, fs.Has(FieldForm))
	assert.True(t, fs.Has(FieldForm|FieldStats))
	assert.False(t, fs.Has(FieldForm|FieldPointsPerGame))
}

func TestCloneRecordsIsolatesCopies(t *testing.T) {
	original := []*PlayerRecord{{ID: 1, Name: "Salah", Form: 7.5}}

	clone := CloneRecords(original)
	clone[0].Form = 1.0
	clone[0].IsCaptain = true

	assert.Equal(t, 7.5, original[0].Form)
	assert.False(t, original[0].IsCaptain)
}

func TestFixtureInGameweek(t *testing.T) {
	gw := 34
	assert.True(t, Fixture{Event: &gw}.InGameweek(34))
	assert.False(t, Fixture{Event: &gw}.InGameweek(35))
	assert.False(t, Fixture{}.InGameweek(34))
}
