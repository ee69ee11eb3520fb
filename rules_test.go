package wld

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOption_DefaultsToZeroForUnknownType(t *testing.T) {
	assert.Equal(t, 0, resolveOption(9999, 100, 100, 0))
}

func TestResolveOption_DemonAltar(t *testing.T) {
	assert.Equal(t, 0, resolveOption(TileDemonAltar, 0, 0, 0))
	assert.Equal(t, 1, resolveOption(TileDemonAltar, 54, 0, 0))
}

func TestResolveOption_Pots_StepFunction(t *testing.T) {
	cases := []struct {
		v    int16
		want int
	}{
		{0, 0},
		{143, 0},
		{144, 1},
		{1222, potsOptions[len(potsOptions)-1]},
		{5000, potsOptions[len(potsOptions)-1]},
	}
	for _, tc := range cases {
		got := resolveOption(TilePots, 0, tc.v, 0)
		assert.Equal(t, tc.want, got, "v=%d", tc.v)
	}
}

func TestResolveOption_PressurePlates(t *testing.T) {
	assert.Equal(t, 0, resolveOption(TilePressurePlates, 0, 0, 0))
	assert.Equal(t, 1, resolveOption(TilePressurePlates, 18, 0, 0))
}

func TestResolveOption_HolidayLightsUsesRow(t *testing.T) {
	assert.Equal(t, 0, resolveOption(TileHolidayLights, 0, 0, 0))
	assert.Equal(t, 1, resolveOption(TileHolidayLights, 0, 0, 1))
	assert.Equal(t, 2, resolveOption(TileHolidayLights, 0, 0, 2))
	assert.Equal(t, 0, resolveOption(TileHolidayLights, 0, 0, 3))
}

func TestRatioClamp_ClampsToMax(t *testing.T) {
	assert.Equal(t, 0, ratioClamp(0, 18, 6))
	assert.Equal(t, 6, ratioClamp(1000, 18, 6))
}

func TestResolveOption_Idempotent(t *testing.T) {
	a := resolveOption(TileStalactite, 40, 0, 0)
	b := resolveOption(TileStalactite, 40, 0, 0)
	assert.Equal(t, a, b)
}
