package lunar

import (
	"math"
	"testing"
	"time"

	"github.com/chrissnell/almanac/pkg/astro"
)

func TestBrightLimb(t *testing.T) {
	newYork := astro.NewObserver(40.7, -74.0)

	t.Run("book example", func(t *testing.T) {
		// Meeus example 48.a gives χ = 285.0°.
		result := BrightLimb(time.Date(1992, 4, 11, 23, 58, 51, 0, time.UTC), nil)
		if math.Abs(result.BrightLimbAngle-285.0) > 0.1 {
			t.Errorf("BrightLimbAngle = %.3f°, expected 285.0°", result.BrightLimbAngle)
		}
		if math.Abs(result.PhaseAngle-69.0756) > 0.001 {
			t.Errorf("PhaseAngle = %.4f°, expected 69.0756°", result.PhaseAngle)
		}
	})

	t.Run("first quarter northern hemisphere", func(t *testing.T) {
		// Jan 28, 2023 15:19 UTC, first quarter
		result := BrightLimb(time.Date(2023, 1, 28, 15, 19, 0, 0, time.UTC), &newYork)

		if math.IsNaN(result.Rotation) {
			t.Fatal("Rotation is NaN")
		}
		if result.Illumination < 0.4 || result.Illumination > 0.6 {
			t.Errorf("Illumination = %.3f, expected ~0.5 at first quarter", result.Illumination)
		}
		if result.PhaseAngle < 70 || result.PhaseAngle > 110 {
			t.Errorf("PhaseAngle = %.1f°, expected ~90° at first quarter", result.PhaseAngle)
		}
		// The Sun is west of a waxing Moon.
		if result.BrightLimbAngle < 180 || result.BrightLimbAngle > 360 {
			t.Errorf("BrightLimbAngle = %.1f°, expected the bright limb toward the west", result.BrightLimbAngle)
		}
	})

	t.Run("no location fallback", func(t *testing.T) {
		result := BrightLimb(time.Date(2023, 1, 28, 15, 19, 0, 0, time.UTC), nil)

		if math.IsNaN(result.Rotation) {
			t.Fatal("Rotation is NaN without an observer")
		}
		if result.ParallacticAngle != 0 {
			t.Errorf("ParallacticAngle = %.1f, expected 0 without an observer", result.ParallacticAngle)
		}
		if result.LocalTerminator != result.TerminatorAngle {
			t.Errorf("LocalTerminator = %.3f, expected TerminatorAngle %.3f", result.LocalTerminator, result.TerminatorAngle)
		}
	})

	t.Run("southern hemisphere differs from northern", func(t *testing.T) {
		ts := time.Date(2023, 1, 28, 20, 0, 0, 0, time.UTC)
		capeTown := astro.NewObserver(-33.9, 18.4)
		north := BrightLimb(ts, &newYork)
		south := BrightLimb(ts, &capeTown)

		if diff := math.Abs(north.Rotation - south.Rotation); diff < 10 {
			t.Errorf("N/S rotation difference = %.1f°, expected significant difference (>10°)", diff)
		}
	})

	t.Run("angle range check across a year", func(t *testing.T) {
		locations := [][2]float64{
			{40.7, -74.0},  // NYC
			{-33.9, 18.4},  // Cape Town
			{51.5, -0.1},   // London
			{35.7, 139.7},  // Tokyo
			{-23.5, -46.6}, // São Paulo
			{64.1, -21.9},  // Reykjavik
		}
		for _, loc := range locations {
			observer := astro.NewObserver(loc[0], loc[1])
			for month := 1; month <= 12; month++ {
				ts := time.Date(2023, time.Month(month), 15, 22, 0, 0, 0, time.UTC)
				result := BrightLimb(ts, &observer)
				if math.IsNaN(result.Rotation) || math.IsInf(result.Rotation, 0) {
					t.Errorf("Bad rotation at lat=%.1f lon=%.1f month=%d: %f",
						loc[0], loc[1], month, result.Rotation)
				}
				if result.BrightLimbAngle < 0 || result.BrightLimbAngle >= 360 {
					t.Errorf("BrightLimbAngle %.3f outside [0, 360)", result.BrightLimbAngle)
				}
			}
		}
	})
}

func BenchmarkBrightLimb(b *testing.B) {
	ts := time.Date(2023, 1, 28, 15, 19, 0, 0, time.UTC)
	observer := astro.NewObserver(40.7, -74.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BrightLimb(ts, &observer)
	}
}
