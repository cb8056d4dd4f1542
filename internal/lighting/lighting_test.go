package lighting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTripsLabels(t *testing.T) {
	for _, p := range Presets {
		got, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestParseAcceptsLooseInput(t *testing.T) {
	p, err := Parse("  SPOT ")
	require.NoError(t, err)
	assert.Equal(t, Spot, p)

	p, err = Parse("omni")
	require.NoError(t, err)
	assert.Equal(t, Omnidirectional, p)
}

func TestParseRejectsUnknown(t *testing.T) {
	_, err := Parse("area")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"area"`)
	// errors carry a stack trace
	assert.Contains(t, fmt.Sprintf("%+v", err), "lighting.Parse")
}

func TestPresetLights(t *testing.T) {
	assert.Empty(t, None.Lights())
	assert.False(t, None.Lit())

	omni := Omnidirectional.Lights()
	require.Len(t, omni, 1)
	assert.False(t, omni[0].IsSpot())
	assert.Equal(t, [3]float32{0, 5, 5}, omni[0].Position)

	spot := Spot.Lights()
	require.Len(t, spot, 1)
	assert.True(t, spot[0].IsSpot())
	assert.Equal(t, float32(30), spot[0].SpotCutoff)
	assert.Equal(t, float32(2), spot[0].SpotExponent)

	multi := Multiple.Lights()
	require.Len(t, multi, MaxLights)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, multi[0].Diffuse)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, multi[1].Diffuse)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, multi[2].Diffuse)
}

func TestUnknownPresetString(t *testing.T) {
	assert.Equal(t, "Preset(9)", Preset(9).String())
	assert.Nil(t, Preset(9).Lights())
}
