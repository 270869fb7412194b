package kinematics

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestInputConversions(t *testing.T) {
	values := []float64{1.1, -2.2, 3.3}
	inputs := FloatsToInputs(values)
	test.That(t, inputs, test.ShouldResemble, []Input{{1.1}, {-2.2}, {3.3}})
	test.That(t, InputsToFloats(inputs), test.ShouldResemble, values)
}

func TestInputsL2Distance(t *testing.T) {
	a := FloatsToInputs([]float64{0, 0})
	test.That(t, InputsL2Distance(a, a), test.ShouldEqual, 0)

	b := FloatsToInputs([]float64{3, 4})
	test.That(t, InputsL2Distance(a, b), test.ShouldAlmostEqual, 5)

	c := FloatsToInputs([]float64{1})
	test.That(t, math.IsInf(InputsL2Distance(a, c), 1), test.ShouldBeTrue)
}

func TestRandomInputs(t *testing.T) {
	m, err := NewRRP3Model("")
	test.That(t, err, test.ShouldBeNil)

	rSeed := rand.New(rand.NewSource(17))
	limits := m.DoF()
	for i := 0; i < 20; i++ {
		inputs := RandomInputs(m, rSeed)
		test.That(t, inputs, test.ShouldHaveLength, 3)
		for j, input := range inputs {
			test.That(t, input.Value >= limits[j].Min, test.ShouldBeTrue)
			test.That(t, input.Value <= limits[j].Max, test.ShouldBeTrue)
		}
	}

	// unconstrained joints draw from a bounded surrogate range
	free, err := NewPlanar2Model("")
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 20; i++ {
		inputs := RandomInputs(free, rSeed)
		for _, input := range inputs {
			test.That(t, input.Value >= -999, test.ShouldBeTrue)
			test.That(t, input.Value <= 999, test.ShouldBeTrue)
		}
	}

	// same seed, same draws
	first := RandomInputs(m, rand.New(rand.NewSource(42)))
	second := RandomInputs(m, rand.New(rand.NewSource(42)))
	test.That(t, first, test.ShouldResemble, second)
}

func TestLimitsAlmostEqual(t *testing.T) {
	a := []Limit{{-1, 1}, {0, 2}}
	test.That(t, limitsAlmostEqual(a, []Limit{{-1 + 1e-7, 1}, {0, 2}}), test.ShouldBeTrue)
	test.That(t, limitsAlmostEqual(a, []Limit{{-1.1, 1}, {0, 2}}), test.ShouldBeFalse)
	test.That(t, limitsAlmostEqual(a, a[:1]), test.ShouldBeFalse)

	// unconstrained joints compare equal to each other
	test.That(t, limitsAlmostEqual([]Limit{unlimited}, []Limit{unlimited}), test.ShouldBeTrue)
	test.That(t, limitsAlmostEqual([]Limit{unlimited}, []Limit{{-1, 1}}), test.ShouldBeFalse)
	test.That(t, limitsAlmostEqual([]Limit{{math.Inf(-1), 1}}, []Limit{{-1, 1}}), test.ShouldBeFalse)
}
