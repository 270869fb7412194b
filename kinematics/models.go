package kinematics

import (
	_ "embed"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

//go:embed models/planar2.json
var planar2modeljson []byte

//go:embed models/rrp3.json
var rrp3modeljson []byte

//go:embed models/mobile_rp.json
var mobileRPmodeljson []byte

var sampleModels = map[string][]byte{
	"planar2":   planar2modeljson,
	"rrp3":      rrp3modeljson,
	"mobile_rp": mobileRPmodeljson,
}

// NewPlanar2Model returns the embedded two-joint planar arm with unit links,
// both joints rotating about Z.
func NewPlanar2Model(name string) (*Model, error) {
	return UnmarshalModelJSON(planar2modeljson, name)
}

// NewRRP3Model returns the embedded rotary-rotary-prismatic arm, which
// carries joint limits and per-link spatial inertia.
func NewRRP3Model(name string) (*Model, error) {
	return UnmarshalModelJSON(rrp3modeljson, name)
}

// NewMobileRPModel returns the embedded planar mobile base carrying a
// two-joint arm.
func NewMobileRPModel(name string) (*Model, error) {
	return UnmarshalModelJSON(mobileRPmodeljson, name)
}

// SampleModelNames lists the models embedded in this package.
func SampleModelNames() []string {
	names := maps.Keys(sampleModels)
	sort.Strings(names)
	return names
}

// NewSampleModel returns the embedded model with the given name.
func NewSampleModel(name string) (*Model, error) {
	modeljson, ok := sampleModels[name]
	if !ok {
		return nil, errors.Errorf("no sample model named %q, have %v", name, SampleModelNames())
	}
	return UnmarshalModelJSON(modeljson, name)
}
