package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonfocus/carbonfocus/internal/region"
)

func TestEffectiveElectricityFactor(t *testing.T) {
	e := defaultEngine()

	tests := []struct {
		name       string
		regionCode string
		adjust     float64
		want       float64
	}{
		{name: "defaults", want: 0.233},
		{name: "renewable adjust halves default", adjust: 0.5, want: 0.1165},
		{name: "adjust clamped above one", adjust: 1.7, want: 0.0},
		{name: "adjust clamped below zero", adjust: -0.4, want: 0.233},
		{name: "region override wins", regionCode: "FR", want: 0.07},
		{name: "region override ignores adjust", regionCode: "FR", adjust: 0.9, want: 0.07},
		{name: "unknown region falls back", regionCode: "atlantis", adjust: 0.5, want: 0.1165},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.EffectiveElectricityFactor(tt.regionCode, tt.adjust)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestGridMixNormalization(t *testing.T) {
	e := defaultEngine()

	for _, code := range []string{"EU-avg", "US-avg", "FR"} {
		mix := e.GridMix(code)
		require.NotEmpty(t, mix, "builtin region %s should have a mix", code)

		sum := 0.0
		for _, share := range mix {
			assert.GreaterOrEqual(t, share, 0.0)
			sum += share
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "shares for %s must normalize to 1", code)
	}
}

func TestGridMixUnknownOrEmptyRegion(t *testing.T) {
	e := defaultEngine()

	assert.Empty(t, e.GridMix(""))
	assert.Empty(t, e.GridMix("  "))
	assert.Empty(t, e.GridMix("nope"))
}

func TestGridMixFiltersBadShares(t *testing.T) {
	snap := region.NewSnapshot("test", map[string]region.Pack{
		"X": {GridMix: map[string]float64{"Coal": 3.0, "wind": -2.0, "solar": 1.0}},
	})
	e := New(region.NewRegistry(snap))

	mix := e.GridMix("X")
	// Negative wind clamps to zero; coal/solar normalize over 4.0.
	assert.InDelta(t, 0.75, mix["coal"], 1e-9)
	assert.InDelta(t, 0.25, mix["solar"], 1e-9)
	assert.InDelta(t, 0.0, mix["wind"], 1e-9)
}

func TestGridMixAllZeroSharesReturnedUnnormalized(t *testing.T) {
	snap := region.NewSnapshot("test", map[string]region.Pack{
		"Z": {GridMix: map[string]float64{"coal": 0, "wind": 0}},
	})
	e := New(region.NewRegistry(snap))

	mix := e.GridMix("Z")
	assert.Len(t, mix, 2)
	for source, share := range mix {
		assert.Zero(t, share, "source %s", source)
	}
}

func TestImpliedIntensity(t *testing.T) {
	tests := []struct {
		name string
		mix  map[string]float64
		want float64
	}{
		{
			name: "coal and wind",
			mix:  map[string]float64{"coal": 0.5, "wind": 0.5},
			want: 0.455, // 0.5*0.9 + 0.5*0.01
		},
		{
			name: "unknown sources excluded without renormalizing",
			mix:  map[string]float64{"coal": 0.5, "fusion": 0.5},
			want: 0.45, // only coal counts; no renormalization over known share
		},
		{
			name: "empty mix",
			mix:  map[string]float64{},
			want: 0.0,
		},
		{
			name: "mixed case source names",
			mix:  map[string]float64{"Nuclear": 1.0},
			want: 0.012,
		},
		{
			name: "non-positive shares skipped",
			mix:  map[string]float64{"coal": -0.5, "gas": 1.0},
			want: 0.45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ImpliedIntensity(tt.mix), 1e-9)
		})
	}
}

func TestMeta(t *testing.T) {
	e := defaultEngine()

	t.Run("defaults", func(t *testing.T) {
		meta := e.Meta("")
		assert.Equal(t, "Default factors", meta["source"])
		assert.Equal(t, "default", meta["region_code"])
	})

	t.Run("known region overlays provenance", func(t *testing.T) {
		meta := e.Meta("FR")
		assert.Equal(t, "Illustrative France", meta["source"])
		assert.Equal(t, "2024.1", meta["version"])
		assert.Equal(t, "FR", meta["region_code"])
	})

	t.Run("unknown region keeps defaults but records the code", func(t *testing.T) {
		meta := e.Meta("XX")
		assert.Equal(t, "Default factors", meta["source"])
		assert.Equal(t, "XX", meta["region_code"])
	})
}
