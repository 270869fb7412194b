package kinematics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/armlab-robotics/kinchain/spatialmath"
)

// planar2Model is the two-joint planar arm with unit links, both joints
// rotating about Z.
func planar2Model(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(
		"planar2",
		[]r3.Vector{zAxis, zAxis},
		[]r3.Vector{{}, {X: 1}, {X: 1}},
		[]JointType{Rotary, Rotary},
	)
	test.That(t, err, test.ShouldBeNil)
	return m
}

// rrp3Model is a rotary-rotary-prismatic arm in mm: a base yaw joint atop a
// riser, a shoulder pitch joint, and a telescoping wrist.
func rrp3Model(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(
		"rrp3",
		[]r3.Vector{zAxis, yAxis, zAxis},
		[]r3.Vector{{Z: 200}, {Z: 300}, {X: 400}, {X: 100}},
		[]JointType{Rotary, Rotary, Prismatic},
	)
	test.That(t, err, test.ShouldBeNil)
	return m
}

func vectorAlmostEqual(t *testing.T, actual, expected r3.Vector, tolerance float64) {
	t.Helper()
	test.That(t, actual.X, test.ShouldAlmostEqual, expected.X, tolerance)
	test.That(t, actual.Y, test.ShouldAlmostEqual, expected.Y, tolerance)
	test.That(t, actual.Z, test.ShouldAlmostEqual, expected.Z, tolerance)
}

func TestTransformPlanar2(t *testing.T) {
	m := planar2Model(t)

	// stretched flat along X
	pose, err := m.Transform(FloatsToInputs([]float64{0, 0}))
	test.That(t, err, test.ShouldBeNil)
	vectorAlmostEqual(t, pose.P, r3.Vector{X: 2}, 1e-12)
	test.That(t, spatialmath.RotationMatrixAlmostEqual(pose.R, spatialmath.NewZeroRotationMatrix(), 1e-12), test.ShouldBeTrue)

	// elbow bent a quarter turn
	pose, err = m.Transform(FloatsToInputs([]float64{0, math.Pi / 2}))
	test.That(t, err, test.ShouldBeNil)
	vectorAlmostEqual(t, pose.P, r3.Vector{X: 1, Y: 1}, 1e-12)
	wantR := spatialmath.NewRotationMatrixFromAxisAngle(zAxis, math.Pi/2)
	test.That(t, spatialmath.RotationMatrixAlmostEqual(pose.R, wantR, 1e-12), test.ShouldBeTrue)

	// shoulder and elbow each a quarter turn folds the arm back over the base
	pose, err = m.Transform(FloatsToInputs([]float64{math.Pi / 2, math.Pi / 2}))
	test.That(t, err, test.ShouldBeNil)
	vectorAlmostEqual(t, pose.P, r3.Vector{X: -1, Y: 1}, 1e-12)
}

func TestTransformRRP3(t *testing.T) {
	m := rrp3Model(t)

	pose, err := m.Transform(FloatsToInputs([]float64{0, 0, 0}))
	test.That(t, err, test.ShouldBeNil)
	vectorAlmostEqual(t, pose.P, r3.Vector{X: 500, Z: 500}, 1e-9)

	// pitching the shoulder straight down points the telescoping wrist along X
	pose, err = m.Transform(FloatsToInputs([]float64{0, math.Pi / 2, 250}))
	test.That(t, err, test.ShouldBeNil)
	vectorAlmostEqual(t, pose.P, r3.Vector{X: 250}, 1e-9)
	wantR := spatialmath.NewRotationMatrixFromAxisAngle(yAxis, math.Pi/2)
	test.That(t, spatialmath.RotationMatrixAlmostEqual(pose.R, wantR, 1e-9), test.ShouldBeTrue)

	// yawing the base swings the whole arm around Z
	pose, err = m.Transform(FloatsToInputs([]float64{math.Pi / 2, 0, 0}))
	test.That(t, err, test.ShouldBeNil)
	vectorAlmostEqual(t, pose.P, r3.Vector{Y: 500, Z: 500}, 1e-9)
}

func TestTransformMobileBase(t *testing.T) {
	// a bare mobile base: drive along X, then heading about Z
	m, err := NewModel(
		"base",
		[]r3.Vector{xAxis, zAxis},
		[]r3.Vector{{}, {}, {}},
		[]JointType{MobileTranslational, MobileRotational},
	)
	test.That(t, err, test.ShouldBeNil)

	// the drive displacement happens before the heading rotation, so the base
	// ends up on the X axis no matter the final heading
	pose, err := m.Transform(FloatsToInputs([]float64{2, math.Pi / 2}))
	test.That(t, err, test.ShouldBeNil)
	vectorAlmostEqual(t, pose.P, r3.Vector{X: 2}, 1e-12)
	wantR := spatialmath.NewRotationMatrixFromAxisAngle(zAxis, math.Pi/2)
	test.That(t, spatialmath.RotationMatrixAlmostEqual(pose.R, wantR, 1e-12), test.ShouldBeTrue)

	// anything mounted after the heading joint swings with it
	arm, err := NewModel(
		"base-with-stick",
		[]r3.Vector{xAxis, zAxis},
		[]r3.Vector{{}, {}, {X: 1}},
		[]JointType{MobileTranslational, MobileRotational},
	)
	test.That(t, err, test.ShouldBeNil)
	pose, err = arm.Transform(FloatsToInputs([]float64{2, math.Pi / 2}))
	test.That(t, err, test.ShouldBeNil)
	vectorAlmostEqual(t, pose.P, r3.Vector{X: 2, Y: 1}, 1e-12)
}

func TestTransformOutOfBounds(t *testing.T) {
	m, err := NewModelWithLimits(
		"limited",
		[]r3.Vector{zAxis, zAxis},
		[]r3.Vector{{}, {X: 1}, {X: 1}},
		[]JointType{Rotary, Rotary},
		[]Limit{{-math.Pi / 2, math.Pi / 2}, {-math.Pi, math.Pi}},
	)
	test.That(t, err, test.ShouldBeNil)

	// 0.1 above the max
	pose, err := m.Transform(FloatsToInputs([]float64{math.Pi/2 + 0.1, 0}))
	test.That(t, pose, test.ShouldBeNil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, OOBErrString)
	test.That(t, err.Error(), test.ShouldContainSubstring, "joint 0")

	// 0.1 below the min
	pose, err = m.Transform(FloatsToInputs([]float64{0, -math.Pi - 0.1}))
	test.That(t, pose, test.ShouldBeNil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, OOBErrString)
	test.That(t, err.Error(), test.ShouldContainSubstring, "joint 1")

	// values exactly on the boundary are valid
	pose, err = m.Transform(FloatsToInputs([]float64{math.Pi / 2, -math.Pi}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose, test.ShouldNotBeNil)
}

func TestTransformWrongInputLength(t *testing.T) {
	m := planar2Model(t)
	pose, err := m.Transform(FloatsToInputs([]float64{0}))
	test.That(t, pose, test.ShouldBeNil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected 2 but got 1")
}

func TestWalkChainTrace(t *testing.T) {
	m := rrp3Model(t)
	rSeed := rand.New(rand.NewSource(513))
	for i := 0; i < 10; i++ {
		inputs := RandomInputs(m, rSeed)
		theta := InputsToFloats(inputs)
		trace := m.walkChain(theta)

		// the walk ends where Transform says it does
		pose, err := m.Transform(inputs)
		test.That(t, err, test.ShouldBeNil)
		vectorAlmostEqual(t, trace.p, pose.P, 1e-9)
		test.That(t, trace.origins, test.ShouldHaveLength, 4)
		vectorAlmostEqual(t, trace.origins[3], pose.P, 1e-9)
		vectorAlmostEqual(t, trace.origins[0], r3.Vector{Z: 200}, 1e-9)

		// rotations preserve axis length
		for _, axis := range trace.worldAxes {
			test.That(t, axis.Norm(), test.ShouldAlmostEqual, 1, 1e-9)
		}
	}
}
