package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform: a rotation R followed by a translation P. It
// places a local frame inside the frame the pose is expressed in. Poses are
// plain data; operations return freshly allocated results.
type Pose struct {
	R *RotationMatrix
	P r3.Vector
}

// NewPose creates a pose from a rotation matrix and a translation.
func NewPose(r *RotationMatrix, p r3.Vector) *Pose {
	return &Pose{R: r, P: p}
}

// NewZeroPose returns a pose with no translation or orientation.
func NewZeroPose() *Pose {
	return &Pose{R: NewZeroRotationMatrix()}
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a pose with
// identity orientation.
func NewPoseFromPoint(point r3.Vector) *Pose {
	return &Pose{R: NewZeroRotationMatrix(), P: point}
}

// Compose treats Poses as functions A(x) and B(x) and produces the pose that
// applies B in A's local frame, i.e. A(B(x)): the rotation is A.R * B.R and
// the translation is A.P + A.R * B.P. Composition is not commutative.
func Compose(a, b *Pose) *Pose {
	return &Pose{
		R: a.R.MatMul(b.R),
		P: a.P.Add(a.R.Mul(b.P)),
	}
}

// Invert returns the pose which, composed with the receiver, yields the zero
// pose.
func (p *Pose) Invert() *Pose {
	rt := p.R.Transpose()
	return &Pose{
		R: rt,
		P: rt.Mul(p.P).Mul(-1),
	}
}

// Quaternion returns the orientation of the pose in quaternion
// representation.
func (p *Pose) Quaternion() quat.Number {
	return p.R.Quaternion()
}

// DualQuaternion returns the pose as a dual quaternion: the real part is the
// orientation quaternion and the dual part is half the translation Hamilton
// multiplied with it.
func (p *Pose) DualQuaternion() dualquat.Number {
	r := p.R.Quaternion()
	t := quat.Number{Imag: p.P.X, Jmag: p.P.Y, Kmag: p.P.Z}
	return dualquat.Number{
		Real: r,
		Dual: quat.Scale(0.5, quat.Mul(t, r)),
	}
}

// PoseAlmostEqual returns whether two poses match to within the given
// tolerance, comparing translations component-wise and rotation matrices
// element-wise.
func PoseAlmostEqual(a, b *Pose, tolerance float64) bool {
	if !RotationMatrixAlmostEqual(a.R, b.R, tolerance) {
		return false
	}
	diff := a.P.Sub(b.P)
	return diff.Norm() < tolerance
}
