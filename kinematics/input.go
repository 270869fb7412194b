package kinematics

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/armlab-robotics/kinchain/utils"
)

// Input wraps the input to a joint, e.g. a joint angle or a slide position.
//
// revolute inputs should be in radians.
// prismatic inputs should be in mm.
type Input struct {
	Value float64
}

// Limit describes the minimum and maximum allowable values for a joint input.
type Limit struct {
	Min float64
	Max float64
}

// limitsAlmostEqual returns true if the provided limit slices are the same
// length and pairwise equal to within a small epsilon.
func limitsAlmostEqual(limits0, limits1 []Limit) bool {
	if len(limits0) != len(limits1) {
		return false
	}

	for i, l0 := range limits0 {
		if !boundAlmostEqual(l0.Min, limits1[i].Min) || !boundAlmostEqual(l0.Max, limits1[i].Max) {
			return false
		}
	}
	return true
}

// boundAlmostEqual treats matching infinities as equal, since subtracting
// them yields NaN.
func boundAlmostEqual(b0, b1 float64) bool {
	if math.IsInf(b0, 0) || math.IsInf(b1, 0) {
		return b0 == b1
	}
	const epsilon = 1e-5
	return utils.Float64AlmostEqual(b0, b1, epsilon)
}

// unlimited is the limit used for joints whose range is unconstrained.
var unlimited = Limit{Min: math.Inf(-1), Max: math.Inf(1)}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	inputs := make([]Input, len(floats))
	for i, f := range floats {
		inputs[i] = Input{f}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	floats := make([]float64, len(inputs))
	for i, f := range inputs {
		floats[i] = f.Value
	}
	return floats
}

// InputsL2Distance returns the two-norm of the difference between the a and b
// vectors, or +Inf if they differ in length.
func InputsL2Distance(a, b []Input) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	diff := make([]float64, 0, len(a))
	for i, f := range a {
		diff = append(diff, f.Value-b[i].Value)
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Norm(diff, 2)
}

// RandomInputs returns a slice of random joint inputs within the model's
// limits, suitable for seeding solvers or fuzzing transforms.
func RandomInputs(m *Model, rSeed *rand.Rand) []Input {
	if rSeed == nil {
		//nolint:gosec
		rSeed = rand.New(rand.NewSource(1))
	}
	inputs := make([]Input, 0, len(m.limits))
	for _, limit := range m.limits {
		// Note: since rand.Float64() obtains a value between 0 and 1, then
		// multiply by range and add to min, and we get a random value in range.
		lowerBound, upperBound := limit.Min, limit.Max
		if math.IsInf(lowerBound, -1) {
			lowerBound = -999
		}
		if math.IsInf(upperBound, 1) {
			upperBound = 999
		}
		inputs = append(inputs, Input{rSeed.Float64()*(upperBound-lowerBound) + lowerBound})
	}
	return inputs
}
