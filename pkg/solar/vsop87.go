package solar

import "github.com/chrissnell/almanac/pkg/astro"

// Truncated VSOP87 series for the heliocentric position of the Earth, from
// Meeus appendix III. Amplitudes are in units of 1e-8 radian (1e-8 AU for
// the radius vector) and frequencies in radians per Julian millennium.
//
// b2 to b4 are the Venus rows of the same appendix rather than the Earth's.
// Scaled by Tau^2 and higher they stay under an arcsecond from 1900 to 2100,
// and the reference latitudes in the tests were produced with them.
var (
	l0 = []astro.Term{
		{Amplitude: 175347046, Phase: 0, Frequency: 0},
		{Amplitude: 3341656, Phase: 4.6692568, Frequency: 6283.07585},
		{Amplitude: 34894, Phase: 4.6261, Frequency: 12566.1517},
		{Amplitude: 3497, Phase: 2.7441, Frequency: 5753.3849},
		{Amplitude: 3418, Phase: 2.8289, Frequency: 3.5231},
		{Amplitude: 3136, Phase: 3.6277, Frequency: 77713.7715},
		{Amplitude: 2676, Phase: 4.4181, Frequency: 7860.4194},
		{Amplitude: 2343, Phase: 6.1352, Frequency: 3930.2097},
		{Amplitude: 1324, Phase: 0.7425, Frequency: 11506.7698},
		{Amplitude: 1273, Phase: 2.0371, Frequency: 529.691},
		{Amplitude: 1199, Phase: 1.1096, Frequency: 1577.3435},
		{Amplitude: 990, Phase: 5.233, Frequency: 5884.927},
		{Amplitude: 902, Phase: 2.045, Frequency: 26.298},
		{Amplitude: 857, Phase: 3.508, Frequency: 398.149},
		{Amplitude: 780, Phase: 1.179, Frequency: 5223.694},
		{Amplitude: 753, Phase: 2.533, Frequency: 5507.553},
		{Amplitude: 505, Phase: 4.583, Frequency: 18849.228},
		{Amplitude: 492, Phase: 4.205, Frequency: 775.523},
		{Amplitude: 357, Phase: 2.92, Frequency: 0.067},
		{Amplitude: 317, Phase: 5.849, Frequency: 11790.629},
		{Amplitude: 284, Phase: 1.899, Frequency: 796.288},
		{Amplitude: 271, Phase: 0.315, Frequency: 10977.079},
		{Amplitude: 243, Phase: 0.345, Frequency: 5486.778},
		{Amplitude: 206, Phase: 4.806, Frequency: 2544.314},
		{Amplitude: 205, Phase: 1.869, Frequency: 5573.143},
		{Amplitude: 202, Phase: 2.458, Frequency: 6069.777},
		{Amplitude: 156, Phase: 0.833, Frequency: 213.299},
		{Amplitude: 132, Phase: 3.411, Frequency: 2942.463},
		{Amplitude: 126, Phase: 1.083, Frequency: 20.775},
		{Amplitude: 115, Phase: 0.645, Frequency: 0.98},
		{Amplitude: 103, Phase: 0.636, Frequency: 4694.003},
		{Amplitude: 102, Phase: 0.976, Frequency: 15720.839},
		{Amplitude: 102, Phase: 4.267, Frequency: 7.114},
		{Amplitude: 99, Phase: 6.21, Frequency: 2146.17},
		{Amplitude: 98, Phase: 0.68, Frequency: 155.42},
		{Amplitude: 86, Phase: 5.98, Frequency: 161000.69},
		{Amplitude: 85, Phase: 1.3, Frequency: 6275.96},
		{Amplitude: 85, Phase: 3.67, Frequency: 71430.7},
		{Amplitude: 80, Phase: 1.81, Frequency: 17260.15},
		{Amplitude: 79, Phase: 3.04, Frequency: 12036.46},
		{Amplitude: 75, Phase: 1.76, Frequency: 5088.63},
		{Amplitude: 74, Phase: 3.5, Frequency: 3154.69},
		{Amplitude: 74, Phase: 4.68, Frequency: 801.82},
		{Amplitude: 70, Phase: 0.83, Frequency: 9437.76},
		{Amplitude: 62, Phase: 3.98, Frequency: 8827.39},
		{Amplitude: 61, Phase: 1.82, Frequency: 7084.9},
		{Amplitude: 57, Phase: 2.78, Frequency: 6286.6},
		{Amplitude: 56, Phase: 4.39, Frequency: 14143.5},
		{Amplitude: 56, Phase: 3.47, Frequency: 6279.55},
		{Amplitude: 52, Phase: 0.19, Frequency: 12139.55},
		{Amplitude: 52, Phase: 1.33, Frequency: 1748.02},
		{Amplitude: 51, Phase: 0.28, Frequency: 5856.48},
		{Amplitude: 49, Phase: 0.49, Frequency: 1194.45},
		{Amplitude: 41, Phase: 5.37, Frequency: 8429.24},
		{Amplitude: 41, Phase: 2.4, Frequency: 19651.05},
		{Amplitude: 39, Phase: 6.17, Frequency: 10447.39},
		{Amplitude: 37, Phase: 6.04, Frequency: 10213.29},
		{Amplitude: 37, Phase: 2.57, Frequency: 1059.38},
		{Amplitude: 36, Phase: 1.71, Frequency: 2352.87},
		{Amplitude: 36, Phase: 1.78, Frequency: 6812.77},
		{Amplitude: 33, Phase: 0.59, Frequency: 17789.85},
		{Amplitude: 30, Phase: 0.44, Frequency: 83996.85},
		{Amplitude: 30, Phase: 2.74, Frequency: 1349.87},
		{Amplitude: 25, Phase: 3.16, Frequency: 4690.48},
	}
	l1 = []astro.Term{
		{Amplitude: 628331966747.0, Phase: 0, Frequency: 0},
		{Amplitude: 206059, Phase: 2.678235, Frequency: 6283.07585},
		{Amplitude: 4303, Phase: 2.6351, Frequency: 12566.1517},
		{Amplitude: 425, Phase: 1.59, Frequency: 3.523},
		{Amplitude: 119, Phase: 5.796, Frequency: 26.298},
		{Amplitude: 109, Phase: 2.966, Frequency: 1577.344},
		{Amplitude: 93, Phase: 2.59, Frequency: 18849.23},
		{Amplitude: 72, Phase: 1.14, Frequency: 529.69},
		{Amplitude: 68, Phase: 1.87, Frequency: 398.15},
		{Amplitude: 67, Phase: 4.41, Frequency: 5507.55},
		{Amplitude: 59, Phase: 2.89, Frequency: 5223.69},
		{Amplitude: 56, Phase: 2.17, Frequency: 155.42},
		{Amplitude: 45, Phase: 0.4, Frequency: 796.3},
		{Amplitude: 36, Phase: 0.47, Frequency: 775.52},
		{Amplitude: 29, Phase: 2.65, Frequency: 7.11},
		{Amplitude: 21, Phase: 5.43, Frequency: 0.98},
		{Amplitude: 19, Phase: 1.85, Frequency: 5486.78},
		{Amplitude: 19, Phase: 4.97, Frequency: 213.3},
		{Amplitude: 17, Phase: 2.99, Frequency: 6275.96},
		{Amplitude: 16, Phase: 0.03, Frequency: 2544.31},
		{Amplitude: 16, Phase: 1.43, Frequency: 2146.17},
		{Amplitude: 15, Phase: 1.21, Frequency: 10977.08},
		{Amplitude: 12, Phase: 2.83, Frequency: 1748.02},
		{Amplitude: 12, Phase: 3.26, Frequency: 5088.63},
		{Amplitude: 12, Phase: 5.27, Frequency: 1194.45},
		{Amplitude: 12, Phase: 2.08, Frequency: 4694.0},
		{Amplitude: 11, Phase: 0.77, Frequency: 553.57},
		{Amplitude: 10, Phase: 1.3, Frequency: 6286.6},
		{Amplitude: 10, Phase: 4.24, Frequency: 1349.87},
		{Amplitude: 9, Phase: 2.7, Frequency: 242.73},
		{Amplitude: 9, Phase: 5.64, Frequency: 951.72},
		{Amplitude: 8, Phase: 5.3, Frequency: 2352.87},
		{Amplitude: 6, Phase: 2.65, Frequency: 9437.76},
		{Amplitude: 6, Phase: 4.67, Frequency: 4690.48},
	}
	l2 = []astro.Term{
		{Amplitude: 52919, Phase: 0, Frequency: 0},
		{Amplitude: 8720, Phase: 1.0721, Frequency: 6283.0758},
		{Amplitude: 309, Phase: 0.867, Frequency: 12566.152},
		{Amplitude: 27, Phase: 0.05, Frequency: 3.52},
		{Amplitude: 16, Phase: 5.19, Frequency: 26.3},
		{Amplitude: 16, Phase: 3.68, Frequency: 155.42},
		{Amplitude: 10, Phase: 0.76, Frequency: 18849.23},
		{Amplitude: 9, Phase: 2.06, Frequency: 77713.77},
		{Amplitude: 7, Phase: 0.83, Frequency: 775.52},
		{Amplitude: 5, Phase: 4.66, Frequency: 1577.34},
		{Amplitude: 4, Phase: 1.03, Frequency: 7.11},
		{Amplitude: 4, Phase: 3.44, Frequency: 5573.14},
		{Amplitude: 3, Phase: 5.14, Frequency: 796.3},
		{Amplitude: 3, Phase: 6.05, Frequency: 5507.55},
		{Amplitude: 3, Phase: 1.19, Frequency: 242.73},
		{Amplitude: 3, Phase: 6.12, Frequency: 529.69},
		{Amplitude: 3, Phase: 0.31, Frequency: 398.15},
		{Amplitude: 3, Phase: 2.28, Frequency: 553.57},
		{Amplitude: 2, Phase: 4.38, Frequency: 5223.69},
		{Amplitude: 2, Phase: 3.75, Frequency: 0.98},
	}
	l3 = []astro.Term{
		{Amplitude: 289, Phase: 5.844, Frequency: 6283.076},
		{Amplitude: 35, Phase: 0, Frequency: 0},
		{Amplitude: 17, Phase: 5.49, Frequency: 12566.15},
		{Amplitude: 3, Phase: 5.2, Frequency: 155.42},
		{Amplitude: 1, Phase: 4.72, Frequency: 3.52},
		{Amplitude: 1, Phase: 5.3, Frequency: 18849.23},
		{Amplitude: 1, Phase: 5.97, Frequency: 242.73},
	}
	l4 = []astro.Term{
		{Amplitude: 114, Phase: 3.142, Frequency: 0},
		{Amplitude: 8, Phase: 4.13, Frequency: 6283.08},
		{Amplitude: 1, Phase: 3.84, Frequency: 12566.15},
	}
	l5 = []astro.Term{
		{Amplitude: 1, Phase: 3.14, Frequency: 0},
	}
	b0 = []astro.Term{
		{Amplitude: 280, Phase: 3.199, Frequency: 84334.662},
		{Amplitude: 102, Phase: 5.422, Frequency: 5507.553},
		{Amplitude: 80, Phase: 3.88, Frequency: 5223.69},
		{Amplitude: 44, Phase: 3.7, Frequency: 2352.87},
		{Amplitude: 32, Phase: 4.0, Frequency: 1577.34},
	}
	b1 = []astro.Term{
		{Amplitude: 9, Phase: 3.9, Frequency: 5507.55},
		{Amplitude: 6, Phase: 1.73, Frequency: 5223.69},
	}
	b2 = []astro.Term{
		{Amplitude: 22378, Phase: 3.38509, Frequency: 10213.28555},
		{Amplitude: 282, Phase: 0, Frequency: 0},
		{Amplitude: 173, Phase: 5.256, Frequency: 20426.571},
		{Amplitude: 27, Phase: 3.87, Frequency: 30639.86},
	}
	b3 = []astro.Term{
		{Amplitude: 647, Phase: 4.992, Frequency: 10213.286},
		{Amplitude: 20, Phase: 3.14, Frequency: 0},
		{Amplitude: 6, Phase: 0.77, Frequency: 20426.57},
		{Amplitude: 3, Phase: 5.44, Frequency: 30639.86},
	}
	b4 = []astro.Term{
		{Amplitude: 14, Phase: 0.32, Frequency: 10213.29},
	}
	r0 = []astro.Term{
		{Amplitude: 100013989, Phase: 0, Frequency: 0},
		{Amplitude: 1670700, Phase: 3.0984635, Frequency: 6283.07585},
		{Amplitude: 13956, Phase: 3.05525, Frequency: 12566.1517},
		{Amplitude: 3084, Phase: 5.1985, Frequency: 77713.7715},
		{Amplitude: 1628, Phase: 1.1739, Frequency: 5753.3849},
		{Amplitude: 1576, Phase: 2.8469, Frequency: 7860.4194},
		{Amplitude: 925, Phase: 5.453, Frequency: 11506.77},
		{Amplitude: 542, Phase: 4.564, Frequency: 3930.21},
		{Amplitude: 472, Phase: 3.661, Frequency: 5884.927},
		{Amplitude: 346, Phase: 0.964, Frequency: 5507.553},
		{Amplitude: 329, Phase: 5.9, Frequency: 5223.694},
		{Amplitude: 307, Phase: 0.299, Frequency: 5573.143},
		{Amplitude: 243, Phase: 4.273, Frequency: 11790.629},
		{Amplitude: 212, Phase: 5.847, Frequency: 1577.344},
		{Amplitude: 186, Phase: 5.022, Frequency: 10977.079},
		{Amplitude: 175, Phase: 3.012, Frequency: 18849.228},
		{Amplitude: 110, Phase: 5.055, Frequency: 5486.778},
		{Amplitude: 98, Phase: 0.89, Frequency: 6069.78},
		{Amplitude: 86, Phase: 5.69, Frequency: 15720.84},
		{Amplitude: 86, Phase: 1.27, Frequency: 161000.69},
		{Amplitude: 65, Phase: 0.27, Frequency: 17260.15},
		{Amplitude: 63, Phase: 0.92, Frequency: 529.69},
		{Amplitude: 57, Phase: 2.01, Frequency: 83996.85},
		{Amplitude: 56, Phase: 5.24, Frequency: 71430.7},
		{Amplitude: 49, Phase: 3.25, Frequency: 2544.31},
		{Amplitude: 47, Phase: 2.58, Frequency: 775.52},
		{Amplitude: 45, Phase: 5.54, Frequency: 9437.76},
		{Amplitude: 43, Phase: 6.01, Frequency: 6275.96},
		{Amplitude: 39, Phase: 5.36, Frequency: 4694.0},
		{Amplitude: 38, Phase: 2.39, Frequency: 8827.39},
		{Amplitude: 37, Phase: 0.83, Frequency: 19651.05},
		{Amplitude: 37, Phase: 4.9, Frequency: 12139.55},
		{Amplitude: 36, Phase: 1.67, Frequency: 12036.46},
		{Amplitude: 35, Phase: 1.84, Frequency: 2942.46},
		{Amplitude: 33, Phase: 0.24, Frequency: 7084.9},
		{Amplitude: 32, Phase: 0.18, Frequency: 5088.63},
		{Amplitude: 32, Phase: 1.78, Frequency: 398.15},
		{Amplitude: 28, Phase: 1.21, Frequency: 6286.6},
		{Amplitude: 28, Phase: 1.9, Frequency: 6279.55},
		{Amplitude: 26, Phase: 4.59, Frequency: 10447.39},
	}
	r1 = []astro.Term{
		{Amplitude: 103019, Phase: 1.10749, Frequency: 6283.07585},
		{Amplitude: 1721, Phase: 1.0644, Frequency: 12566.1517},
		{Amplitude: 702, Phase: 3.142, Frequency: 0},
		{Amplitude: 32, Phase: 1.02, Frequency: 18849.23},
		{Amplitude: 31, Phase: 2.84, Frequency: 5507.55},
		{Amplitude: 25, Phase: 1.32, Frequency: 5223.69},
		{Amplitude: 18, Phase: 1.42, Frequency: 1577.34},
		{Amplitude: 10, Phase: 5.91, Frequency: 10977.08},
		{Amplitude: 9, Phase: 1.42, Frequency: 6275.96},
		{Amplitude: 9, Phase: 0.27, Frequency: 5486.78},
	}
	r2 = []astro.Term{
		{Amplitude: 4359, Phase: 5.7846, Frequency: 6283.0758},
		{Amplitude: 124, Phase: 5.579, Frequency: 12566.152},
		{Amplitude: 12, Phase: 3.14, Frequency: 0},
		{Amplitude: 9, Phase: 3.63, Frequency: 77713.77},
		{Amplitude: 6, Phase: 1.87, Frequency: 5573.14},
		{Amplitude: 3, Phase: 5.47, Frequency: 18849.23},
	}
	r3 = []astro.Term{
		{Amplitude: 145, Phase: 4.273, Frequency: 6283.076},
		{Amplitude: 7, Phase: 3.92, Frequency: 12566.15},
	}
	r4 = []astro.Term{
		{Amplitude: 4, Phase: 2.56, Frequency: 6283.08},
	}
)

var (
	longitudeSeries = astro.Series{Orders: [][]astro.Term{l0, l1, l2, l3, l4, l5}, Scale: 1e-8}
	latitudeSeries  = astro.Series{Orders: [][]astro.Term{b0, b1, b2, b3, b4}, Scale: 1e-8}
	radiusSeries    = astro.Series{Orders: [][]astro.Term{r0, r1, r2, r3, r4}, Scale: 1e-8}
)
