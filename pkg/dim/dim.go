// Package dim declares the physical dimensions a quantity can carry and the
// canonical SI unit each one is stored in.
//
// Each dimension has a Kind, a string identifier used in configuration and
// storage, and a tag type (Mass, Length, ...) used as the type parameter of
// quantity.Quantity. The tag types form a closed set: Dimension has an
// unexported method, so no other package can add one.
package dim

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a physical dimension.
type Kind string

// Dimension kinds.
const (
	KindMass            Kind = "mass"
	KindLength          Kind = "length"
	KindTime            Kind = "time"
	KindTemperature     Kind = "temperature"
	KindVelocity        Kind = "velocity"
	KindForce           Kind = "force"
	KindMoment          Kind = "moment"
	KindPower           Kind = "power"
	KindEnergy          Kind = "energy"
	KindArea            Kind = "area"
	KindVolume          Kind = "volume"
	KindDensity         Kind = "density"
	KindPressure        Kind = "pressure"
	KindAngularVelocity Kind = "angular_velocity"
	KindVoltage         Kind = "voltage"
	KindCurrent         Kind = "current"
	KindCapacity        Kind = "capacity"
)

// ErrUnknownKind is returned by ParseKind for unrecognized names.
var ErrUnknownKind = errors.New("unknown dimension kind")

// kinds lists every kind in declaration order.
var kinds = []Kind{
	KindMass,
	KindLength,
	KindTime,
	KindTemperature,
	KindVelocity,
	KindForce,
	KindMoment,
	KindPower,
	KindEnergy,
	KindArea,
	KindVolume,
	KindDensity,
	KindPressure,
	KindAngularVelocity,
	KindVoltage,
	KindCurrent,
	KindCapacity,
}

// canonical maps each kind to the unit its quantities are stored in.
var canonical = map[Kind]string{
	KindMass:            "kg",
	KindLength:          "m",
	KindTime:            "s",
	KindTemperature:     "K",
	KindVelocity:        "m/s",
	KindForce:           "N",
	KindMoment:          "N·m",
	KindPower:           "W",
	KindEnergy:          "J",
	KindArea:            "m²",
	KindVolume:          "m³",
	KindDensity:         "kg/m³",
	KindPressure:        "Pa",
	KindAngularVelocity: "rad/s",
	KindVoltage:         "V",
	KindCurrent:         "A",
	KindCapacity:        "A·h",
}

// typeNames maps each kind to the Go name of its quantity type.
var typeNames = map[Kind]string{
	KindMass:            "Mass",
	KindLength:          "Length",
	KindTime:            "Time",
	KindTemperature:     "Temperature",
	KindVelocity:        "Velocity",
	KindForce:           "Force",
	KindMoment:          "Moment",
	KindPower:           "Power",
	KindEnergy:          "Energy",
	KindArea:            "Area",
	KindVolume:          "Volume",
	KindDensity:         "Density",
	KindPressure:        "Pressure",
	KindAngularVelocity: "AngularVelocity",
	KindVoltage:         "Voltage",
	KindCurrent:         "Current",
	KindCapacity:        "Capacity",
}

func init() {
	for _, k := range kinds {
		if _, ok := canonical[k]; !ok {
			panic(fmt.Sprintf("dim: no canonical unit for %q", k))
		}
		if _, ok := typeNames[k]; !ok {
			panic(fmt.Sprintf("dim: no type name for %q", k))
		}
	}
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	_, ok := canonical[k]
	return ok
}

// Canonical returns the canonical unit expression of k, or "" if k is not
// declared.
func (k Kind) Canonical() string {
	return canonical[k]
}

// TypeName returns the Go type name for k, such as "AngularVelocity".
func (k Kind) TypeName() string {
	return typeNames[k]
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a kind from its identifier ("angular_velocity") or its
// type name ("AngularVelocity"). Matching ignores case.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range kinds {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, typeNames[k]) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
}
