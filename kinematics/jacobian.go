package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/armlab-robotics/kinchain/spatialmath"
)

// Jacobian computes the 6xM manipulator Jacobian at the given joint inputs.
// Rows 0-2 are the angular velocity of the tool and rows 3-5 the linear
// velocity, both in the base frame. M is Columns(): one column per joint,
// except that a mobile base pair shares a single column in which the drive
// direction is rotated by the pair's heading before being added to the
// linear rows. It returns an error containing OOBErrString if any input
// violates its joint's limit.
func (m *Model) Jacobian(inputs []Input) (*mat.Dense, error) {
	if err := m.validateInputs(inputs); err != nil {
		return nil, err
	}
	theta := InputsToFloats(inputs)
	trace := m.walkChain(theta)

	jacobian := mat.NewDense(6, len(m.steps), nil)
	for col, step := range m.steps {
		switch step.kind {
		case stepRotary:
			axis := trace.worldAxes[step.joint]
			setColumn(jacobian, col, axis, axis.Cross(trace.p.Sub(trace.origins[step.joint])))
		case stepPrismatic:
			setColumn(jacobian, col, r3.Vector{}, trace.worldAxes[step.joint])
		case stepMobilePair:
			drive, heading := step.joint, step.joint+1
			axis := trace.worldAxes[heading]
			linear := axis.Cross(trace.p.Sub(trace.origins[heading]))
			driven := spatialmath.NewRotationMatrixFromAxisAngle(axis, theta[heading]).Mul(trace.worldAxes[drive])
			setColumn(jacobian, col, axis, linear.Add(driven))
		}
	}
	return jacobian, nil
}

func setColumn(jacobian *mat.Dense, col int, angular, linear r3.Vector) {
	jacobian.Set(0, col, angular.X)
	jacobian.Set(1, col, angular.Y)
	jacobian.Set(2, col, angular.Z)
	jacobian.Set(3, col, linear.X)
	jacobian.Set(4, col, linear.Y)
	jacobian.Set(5, col, linear.Z)
}
