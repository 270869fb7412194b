package kinematics

import (
	"fmt"

	"github.com/pkg/errors"
)

// OOBErrString is a string that all out-of-bounds errors contain, so that
// they can be checked for distinct from other errors.
const OOBErrString = "input out of bounds"

var errEmptyModel = errors.New("a chain needs at least one joint")

// newOOBError describes an input that violates its joint's configured limit.
func newOOBError(joint int, value float64, limit Limit) error {
	return fmt.Errorf("joint %d input %.5f %s %v", joint, value, OOBErrString, limit)
}

// NewIncorrectInputLengthError returns an error describing an input slice
// whose length does not match the model's joint count.
func NewIncorrectInputLengthError(length, expected int) error {
	return errors.Errorf("number of inputs does not match joint count: expected %d but got %d", expected, length)
}

func newJointCountError(axes, jointTypes, offsets int) error {
	return errors.Errorf(
		"a chain with %d joint types needs %d axes and %d offsets but got %d axes and %d offsets",
		jointTypes, jointTypes, jointTypes+1, axes, offsets)
}

func newUnitAxisError(joint int, norm float64) error {
	return errors.Errorf("joint %d axis must be a unit vector but has norm %.8f", joint, norm)
}

func newInvalidJointTypeError(joint int, jointType JointType) error {
	return errors.Errorf("joint %d has unsupported type %q", joint, jointType)
}

func newUnpairedMobileError(joint int, jointType JointType) error {
	if jointType == MobileTranslational {
		return errors.Errorf("mobile translational joint %d must be immediately followed by a mobile rotational joint", joint)
	}
	return errors.Errorf("mobile rotational joint %d must be immediately preceded by a mobile translational joint", joint)
}

func newTooManyMobilePairsError(count int) error {
	return errors.Errorf("a chain may contain at most one mobile base pair but has %d", count)
}

func newLimitCountError(limits, expected int) error {
	return errors.Errorf("number of limits does not match joint count: expected %d but got %d", expected, limits)
}

func newLimitOrderError(joint int, limit Limit) error {
	return errors.Errorf("joint %d limit has min %.5f greater than max %.5f", joint, limit.Min, limit.Max)
}

func newInertiaCountError(inertias, expected int) error {
	return errors.Errorf("number of spatial inertia matrices does not match joint count: expected %d but got %d", expected, inertias)
}

func newInertiaDimensionError(joint, rows, cols int) error {
	return errors.Errorf("spatial inertia matrix for joint %d must be 6x6 but is %dx%d", joint, rows, cols)
}
