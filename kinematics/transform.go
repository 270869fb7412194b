package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/armlab-robotics/kinchain/spatialmath"
)

// chainTrace records the state of one walk down the chain: the running
// orientation and position, each joint's axis rotated into the world frame,
// and the chain origin after each joint. origins[0] is the base offset and
// origins[N] is the tool position.
type chainTrace struct {
	r         *spatialmath.RotationMatrix
	p         r3.Vector
	worldAxes []r3.Vector
	origins   []r3.Vector
}

// walkChain accumulates orientation and position joint by joint. Rotary
// joints fold a rotation about their axis into the running orientation;
// prismatic joints displace the running position along their axis as
// currently oriented. Each joint's constant offset is applied after the
// joint itself. World axes are recorded after the joint's own motion, so a
// rotary joint's world axis includes its own rotation.
func (m *Model) walkChain(theta []float64) *chainTrace {
	n := len(m.jointTypes)
	trace := &chainTrace{
		r:         spatialmath.NewZeroRotationMatrix(),
		p:         m.offsets[0],
		worldAxes: make([]r3.Vector, n),
		origins:   make([]r3.Vector, 0, n+1),
	}
	trace.origins = append(trace.origins, trace.p)
	for i, jt := range m.jointTypes {
		if jt.rotates() {
			trace.r = trace.r.MatMul(spatialmath.NewRotationMatrixFromAxisAngle(m.axes[i], theta[i]))
		} else {
			trace.p = trace.p.Add(trace.r.Mul(m.axes[i]).Mul(theta[i]))
		}
		trace.p = trace.p.Add(trace.r.Mul(m.offsets[i+1]))
		trace.worldAxes[i] = trace.r.Mul(m.axes[i])
		trace.origins = append(trace.origins, trace.p)
	}
	return trace
}

// Transform computes the pose of the tool in the base frame for the given
// joint inputs. It returns an error containing OOBErrString if any input
// violates its joint's limit; limit boundary values are valid.
func (m *Model) Transform(inputs []Input) (*spatialmath.Pose, error) {
	if err := m.validateInputs(inputs); err != nil {
		return nil, err
	}
	trace := m.walkChain(InputsToFloats(inputs))
	return spatialmath.NewPose(trace.r, trace.p), nil
}
